package models

import (
	"testing"
	"time"
)

func TestNewScoreClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-10, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{130, 100},
	}

	for _, tc := range cases {
		if got := NewScore(tc.in).Float(); got != tc.want {
			t.Fatalf("NewScore(%.1f) = %.1f, want %.1f", tc.in, got, tc.want)
		}
	}
}

func TestSessionStatusIsTerminal(t *testing.T) {
	for _, status := range []SessionStatus{StatusCreated, StatusActive, StatusPaused} {
		if status.IsTerminal() {
			t.Fatalf("%s should not be terminal", status)
		}
	}
	for _, status := range []SessionStatus{StatusCompleted, StatusAbandoned} {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
}

func TestQuestionFilterMatches(t *testing.T) {
	q := Question{
		ID:         "q-1",
		Type:       TypeBehavioral,
		Difficulty: DifficultyMedium,
		Role:       "software-engineer",
		Company:    "google",
	}

	if !(QuestionFilter{}).Matches(q) {
		t.Fatal("empty filter should match everything")
	}
	if !(QuestionFilter{Types: []QuestionType{TypeBehavioral}, Role: "software-engineer"}).Matches(q) {
		t.Fatal("matching filter rejected the question")
	}
	if (QuestionFilter{Types: []QuestionType{TypeTechnical}}).Matches(q) {
		t.Fatal("type mismatch should not match")
	}
	if (QuestionFilter{Difficulties: []Difficulty{DifficultyHard}}).Matches(q) {
		t.Fatal("difficulty mismatch should not match")
	}
	if (QuestionFilter{Company: "amazon"}).Matches(q) {
		t.Fatal("company mismatch should not match")
	}
}

func TestCurrentQuestion(t *testing.T) {
	s := &Session{
		Questions: []Question{{ID: "q-1"}, {ID: "q-2"}},
	}

	if q := s.CurrentQuestion(); q == nil || q.ID != "q-1" {
		t.Fatalf("expected q-1, got %v", q)
	}

	s.CurrentQuestionIndex = 2
	if q := s.CurrentQuestion(); q != nil {
		t.Fatalf("expected nil past the last question, got %v", q)
	}
}

func TestElapsedTimeExcludesPauses(t *testing.T) {
	start := time.Now().Add(-10 * time.Minute)
	s := &Session{
		StartTime:        &start,
		PausedDurationMs: (2 * time.Minute).Milliseconds(),
	}

	elapsed := s.ElapsedTime(time.Now())
	if elapsed < 7*time.Minute+59*time.Second || elapsed > 8*time.Minute+time.Second {
		t.Fatalf("expected roughly 8 minutes, got %s", elapsed)
	}
}

func TestElapsedTimeBeforeStart(t *testing.T) {
	s := &Session{}
	if got := s.ElapsedTime(time.Now()); got != 0 {
		t.Fatalf("expected 0 before start, got %s", got)
	}
}
