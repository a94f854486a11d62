package models

import "time"

// PerformanceRecord is one completed session's result for a user.
// Records are append-only; past entries are never rewritten.
type PerformanceRecord struct {
	UserID        string         `json:"user_id"`
	SessionID     string         `json:"session_id"`
	Score         float64        `json:"score"`
	Date          time.Time      `json:"date"`
	Role          string         `json:"role,omitempty"`
	Difficulty    []Difficulty   `json:"difficulty"`
	QuestionTypes []QuestionType `json:"question_types"`
}

// TrendDirection summarizes score movement across recent sessions.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// TrendReport compares the most recent sessions against the preceding ones.
type TrendReport struct {
	Direction       TrendDirection `json:"direction"`
	Magnitude       float64        `json:"magnitude"`
	RecentAverage   float64        `json:"recent_average"`
	PreviousAverage float64        `json:"previous_average"`
}
