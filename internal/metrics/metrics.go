package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepmate",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prepmate",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepmate",
		Name:      "evaluations_total",
		Help:      "Total number of responses evaluated, by question type",
	}, []string{"question_type"})

	oracleFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepmate",
		Name:      "oracle_fallbacks_total",
		Help:      "Oracle calls that failed or returned unparseable output",
	})

	sessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepmate",
		Name:      "sessions_finished_total",
		Help:      "Sessions that reached a terminal state",
	}, []string{"status"})
)

// RecordEvaluation counts one scored response.
func RecordEvaluation(questionType string) {
	evaluationsTotal.WithLabelValues(questionType).Inc()
}

// RecordOracleFallback counts one oracle call recovered via fallback.
func RecordOracleFallback() {
	oracleFallbacksTotal.Inc()
}

// RecordSessionFinished counts one terminal session by final status.
func RecordSessionFinished(status string) {
	sessionsCompleted.WithLabelValues(status).Inc()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request metrics with Prometheus labels.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		labels := prometheus.Labels{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
