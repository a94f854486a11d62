package performance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prepmate/interview/internal/models"
	"prepmate/interview/internal/storage"
)

func testSession(id, userID string) *models.Session {
	return &models.Session{
		ID:        id,
		Config:    models.SessionConfig{UserID: userID, Role: "software-engineer"},
		CreatedAt: time.Now().UTC(),
	}
}

func TestRecordAndHistory(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryStore(), nil)
	ctx := context.Background()

	record, err := tracker.Record(ctx, testSession("s-1", "user-1"), 72.5)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if record == nil || record.Score != 72.5 {
		t.Fatalf("unexpected record: %+v", record)
	}

	history, err := tracker.History(ctx, "user-1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 1 || history[0].SessionID != "s-1" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestRecordIdempotentPerSession(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryStore(), nil)
	ctx := context.Background()
	session := testSession("s-1", "user-1")

	if _, err := tracker.Record(ctx, session, 70); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if _, err := tracker.Record(ctx, session, 95); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	history, err := tracker.History(ctx, "user-1")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record after replay, got %d", len(history))
	}
	if history[0].Score != 70 {
		t.Fatalf("expected the original score kept, got %.1f", history[0].Score)
	}
}

func TestRecordWithoutUserIsSkipped(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryStore(), nil)

	record, err := tracker.Record(context.Background(), testSession("s-1", ""), 80)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected no record for anonymous session, got %+v", record)
	}
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	tracker := NewTracker(storage.NewMemoryStore(), nil)
	ctx := context.Background()

	if _, err := tracker.Record(ctx, testSession("s-1", "user-a"), 60); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := tracker.Record(ctx, testSession("s-2", "user-b"), 90); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	historyA, err := tracker.History(ctx, "user-a")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(historyA) != 1 || historyA[0].SessionID != "s-1" {
		t.Fatalf("user-a history leaked: %+v", historyA)
	}
}

func historyOf(scores ...float64) []models.PerformanceRecord {
	var records []models.PerformanceRecord
	for i, s := range scores {
		records = append(records, models.PerformanceRecord{
			SessionID: fmt.Sprintf("s-%d", i),
			Score:     s,
		})
	}
	return records
}

func TestTrendNeedsTwoRecords(t *testing.T) {
	if Trend(nil) != nil {
		t.Fatal("expected nil trend for empty history")
	}
	if Trend(historyOf(50)) != nil {
		t.Fatal("expected nil trend for a single record")
	}
}

func TestTrendImproving(t *testing.T) {
	report := Trend(historyOf(50, 50, 50, 50, 50, 80, 80, 80, 80, 80))
	if report == nil {
		t.Fatal("expected a trend report")
	}
	if report.Direction != models.TrendImproving {
		t.Fatalf("expected improving, got %s", report.Direction)
	}
	if report.RecentAverage != 80 || report.PreviousAverage != 50 {
		t.Fatalf("unexpected averages: %+v", report)
	}
	if report.Magnitude != 30 {
		t.Fatalf("expected magnitude 30, got %.2f", report.Magnitude)
	}
}

func TestTrendDeclining(t *testing.T) {
	report := Trend(historyOf(90, 90, 90, 90, 90, 60, 60, 60, 60, 60))
	if report == nil || report.Direction != models.TrendDeclining {
		t.Fatalf("expected declining, got %+v", report)
	}
}

func TestTrendStableWithinBand(t *testing.T) {
	report := Trend(historyOf(70, 70, 70, 70, 70, 71, 71, 71, 71, 71))
	if report == nil || report.Direction != models.TrendStable {
		t.Fatalf("expected stable, got %+v", report)
	}
}

func TestTrendShortHistoryHalvesWindow(t *testing.T) {
	// two records: one recent, one previous
	report := Trend(historyOf(50, 60))
	if report == nil {
		t.Fatal("expected a trend report for two records")
	}
	if report.RecentAverage != 60 || report.PreviousAverage != 50 {
		t.Fatalf("unexpected averages: %+v", report)
	}
	if report.Direction != models.TrendImproving {
		t.Fatalf("expected improving, got %s", report.Direction)
	}
}

func TestTrendOddShortHistory(t *testing.T) {
	// seven records: recent window is the last four, previous the first three
	report := Trend(historyOf(40, 40, 40, 80, 80, 80, 80))
	if report == nil {
		t.Fatal("expected a trend report")
	}
	if report.RecentAverage != 80 || report.PreviousAverage != 40 {
		t.Fatalf("unexpected averages: %+v", report)
	}
}

func TestTrendUsesMostRecentWindow(t *testing.T) {
	// twelve records; only the last ten should matter
	history := historyOf(10, 10, 90, 90, 90, 90, 90, 30, 30, 30, 30, 30)
	report := Trend(history)
	if report == nil {
		t.Fatal("expected a trend report")
	}
	if report.RecentAverage != 30 || report.PreviousAverage != 90 {
		t.Fatalf("unexpected averages: %+v", report)
	}
	if report.Direction != models.TrendDeclining {
		t.Fatalf("expected declining, got %s", report.Direction)
	}
}
