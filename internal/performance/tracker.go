// Package performance keeps per-user score history and derives trend data
// across sessions.
package performance

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"go.uber.org/zap"

	"prepmate/interview/internal/models"
	"prepmate/interview/internal/storage"
)

const (
	historyKeyPrefix = "interview:performance:"

	// score windows compared by Trend
	trendWindow = 5
	// score movement below this many points counts as stable
	stableBand = 2.0
)

type Tracker struct {
	store  storage.Store
	logger *zap.Logger

	// serializes read-modify-write of each user's history blob
	mu sync.Mutex
}

func NewTracker(store storage.Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: store, logger: logger}
}

// Record appends one completed session's score to the user's history.
// Appending the same session twice is a no-op, so replaying a persistence
// write cannot duplicate a record. Sessions without a user are not tracked.
func (t *Tracker) Record(ctx context.Context, session *models.Session, overallScore float64) (*models.PerformanceRecord, error) {
	if session.Config.UserID == "" {
		return nil, nil
	}

	record := models.PerformanceRecord{
		UserID:        session.Config.UserID,
		SessionID:     session.ID,
		Score:         overallScore,
		Date:          session.CreatedAt,
		Role:          session.Config.Role,
		Difficulty:    session.Config.Difficulty,
		QuestionTypes: session.Config.QuestionTypes,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	history, err := t.history(ctx, session.Config.UserID)
	if err != nil {
		return nil, err
	}

	for _, existing := range history {
		if existing.SessionID == session.ID {
			return &existing, nil
		}
	}
	history = append(history, record)

	data, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	key := historyKeyPrefix + session.Config.UserID
	if err := t.store.Set(ctx, key, data); err != nil {
		// one retry, then give up; the caller treats this as a warning
		if err = t.store.Set(ctx, key, data); err != nil {
			t.logger.Warn("failed to persist performance record",
				zap.String("user_id", session.Config.UserID), zap.Error(err))
			return &record, err
		}
	}

	return &record, nil
}

// History returns the user's records in insertion order.
func (t *Tracker) History(ctx context.Context, userID string) ([]models.PerformanceRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history(ctx, userID)
}

func (t *Tracker) history(ctx context.Context, userID string) ([]models.PerformanceRecord, error) {
	data, err := t.store.Get(ctx, historyKeyPrefix+userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var history []models.PerformanceRecord
	if err := json.Unmarshal(data, &history); err != nil {
		t.logger.Warn("corrupt performance history, starting fresh",
			zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	}
	return history, nil
}

// Trend compares the most recent records against the preceding window.
// Returns nil when fewer than two records exist; insufficient data is not
// an error.
func Trend(history []models.PerformanceRecord) *models.TrendReport {
	n := len(history)
	if n < 2 {
		return nil
	}

	recentSize := trendWindow
	if n < 2*trendWindow {
		recentSize = n / 2
		if n%2 == 1 {
			recentSize++
		}
	}

	recent := history[n-recentSize:]
	previous := history[n-recentSize-min(trendWindow, n-recentSize) : n-recentSize]

	recentAvg := meanScore(recent)
	previousAvg := meanScore(previous)
	diff := recentAvg - previousAvg

	direction := models.TrendStable
	if diff > stableBand {
		direction = models.TrendImproving
	} else if diff < -stableBand {
		direction = models.TrendDeclining
	}

	return &models.TrendReport{
		Direction:       direction,
		Magnitude:       math.Abs(diff),
		RecentAverage:   recentAvg,
		PreviousAverage: previousAvg,
	}
}

func meanScore(records []models.PerformanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += r.Score
	}
	return sum / float64(len(records))
}
