package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"prepmate/interview/internal/aggregator"
	"prepmate/interview/internal/evaluator"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/session"
	"prepmate/interview/internal/storage"
)

func TestRunPurgeRemovesExpiredSessions(t *testing.T) {
	store := storage.NewMemoryStore()
	bank := questionbank.NewBank([]models.Question{
		{ID: "g-1", Text: "q", Type: models.TypeGeneral, Difficulty: models.DifficultyEasy},
	}, 1)
	manager := session.NewManager(
		bank,
		evaluator.New(nil, nil, time.Second, nil),
		aggregator.New(aggregator.DefaultPolicy()),
		nil,
		store,
		nil,
		session.DefaultOptions(),
	)

	expired := models.Session{
		ID:        "expired",
		Status:    models.StatusCompleted,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -60),
	}
	data, err := json.Marshal([]models.Session{expired})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := store.Set(context.Background(), "interview:sessions", data); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	job := NewRetentionJob(manager, "0 3 * * *", nil)
	job.RunPurge()

	history, err := manager.GetHistory(context.Background(), session.HistoryFilter{})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history after purge, got %d", len(history))
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	store := storage.NewMemoryStore()
	bank := questionbank.NewBank([]models.Question{
		{ID: "g-1", Text: "q", Type: models.TypeGeneral, Difficulty: models.DifficultyEasy},
	}, 1)
	manager := session.NewManager(
		bank,
		evaluator.New(nil, nil, time.Second, nil),
		aggregator.New(aggregator.DefaultPolicy()),
		nil,
		store,
		nil,
		session.DefaultOptions(),
	)

	job := NewRetentionJob(manager, "not a schedule", nil)
	if err := job.Start(); err == nil {
		job.Stop()
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartAndStop(t *testing.T) {
	store := storage.NewMemoryStore()
	bank := questionbank.NewBank([]models.Question{
		{ID: "g-1", Text: "q", Type: models.TypeGeneral, Difficulty: models.DifficultyEasy},
	}, 1)
	manager := session.NewManager(
		bank,
		evaluator.New(nil, nil, time.Second, nil),
		aggregator.New(aggregator.DefaultPolicy()),
		nil,
		store,
		nil,
		session.DefaultOptions(),
	)

	job := NewRetentionJob(manager, "0 3 * * *", nil)
	if err := job.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	job.Stop()
}
