package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepmate/interview/internal/aggregator"
	"prepmate/interview/internal/assistant"
	"prepmate/interview/internal/evaluator"
	"prepmate/interview/internal/handlers"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/performance"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/session"
	"prepmate/interview/internal/storage"
)

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store := storage.NewMemoryStore()
	bank := questionbank.NewBank([]models.Question{
		{ID: "g-1", Text: "q", Type: models.TypeGeneral, Difficulty: models.DifficultyEasy},
	}, 1)
	manager := session.NewManager(
		bank,
		evaluator.New(nil, nil, time.Second, nil),
		aggregator.New(aggregator.DefaultPolicy()),
		performance.NewTracker(store, nil),
		store,
		nil,
		session.DefaultOptions(),
	)
	coach := assistant.New(nil, nil, time.Second, nil)

	router := chi.NewRouter()
	HealthRoutes(router, handlers.NewHealthHandler(nil, bank))
	SessionRoutes(router,
		handlers.NewSessionHandler(manager, zap.NewNop()),
		handlers.NewQuestionHandler(bank),
		handlers.NewAssistantHandler(coach, zap.NewNop()),
	)
	return router
}

func TestHealthRoutesRegistered(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestSessionRoutesRegistersEndpoints(t *testing.T) {
	router := testRouter(t)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/v1/sessions/",
		"GET /api/v1/sessions/",
		"GET /api/v1/sessions/{id}",
		"POST /api/v1/sessions/{id}/start",
		"POST /api/v1/sessions/{id}/pause",
		"POST /api/v1/sessions/{id}/resume",
		"POST /api/v1/sessions/{id}/responses",
		"POST /api/v1/sessions/{id}/skip",
		"POST /api/v1/sessions/{id}/complete",
		"POST /api/v1/sessions/{id}/abandon",
		"GET /api/v1/sessions/{id}/export",
		"GET /api/v1/questions/",
		"POST /api/v1/assistant/followups",
		"POST /api/v1/assistant/questions",
		"POST /api/v1/assistant/tips",
		"GET /metrics",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
