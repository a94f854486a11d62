package models

import "time"

// SessionStatus is the lifecycle state of a practice session.
// created and active/paused are working states; completed and abandoned are terminal.
type SessionStatus string

const (
	StatusCreated   SessionStatus = "created"
	StatusActive    SessionStatus = "active"
	StatusPaused    SessionStatus = "paused"
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
)

// IsTerminal reports whether no further mutation of the session is allowed.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// SessionConfig is supplied by the caller at creation time and copied into the
// session; it is never mutated afterwards.
type SessionConfig struct {
	DurationMinutes        int            `json:"duration_minutes"`
	Difficulty             []Difficulty   `json:"difficulty"`
	QuestionTypes          []QuestionType `json:"question_types"`
	AllowSkip              bool           `json:"allow_skip"`
	TimePerQuestionMinutes int            `json:"time_per_question_minutes"`
	Role                   string         `json:"role,omitempty"`
	Company                string         `json:"company,omitempty"`
	UserID                 string         `json:"user_id,omitempty"`
}

// Response records one submitted or skipped answer. Immutable after creation.
type Response struct {
	QuestionID         string       `json:"question_id"`
	Text               string       `json:"text"`
	TimeSpentSeconds   int          `json:"time_spent_seconds"`
	Skipped            bool         `json:"skipped"`
	SubmittedAt        time.Time    `json:"submitted_at"`
	QuestionIndex      int          `json:"question_index"`
	QuestionType       QuestionType `json:"question_type"`
	QuestionDifficulty Difficulty   `json:"question_difficulty"`
}

// Session is one timed question/response sequence.
//
// Invariants maintained by the session manager:
//   - CurrentQuestionIndex == len(Responses)
//   - len(Responses) <= len(Questions)
//   - once Status is terminal, the session is read-only history
type Session struct {
	ID                   string             `json:"id"`
	Config               SessionConfig      `json:"config"`
	Questions            []Question         `json:"questions"`
	Responses            []Response         `json:"responses"`
	StartTime            *time.Time         `json:"start_time,omitempty"`
	EndTime              *time.Time         `json:"end_time,omitempty"`
	PausedAt             *time.Time         `json:"paused_at,omitempty"`
	PausedDurationMs     int64              `json:"paused_duration_ms"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	Status               SessionStatus      `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
	Evaluation           *SessionEvaluation `json:"evaluation,omitempty"`
}

// CurrentQuestion returns the question awaiting a response, or nil when the
// queue is exhausted.
func (s *Session) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// ElapsedTime is wall-clock time since start excluding pause intervals.
func (s *Session) ElapsedTime(now time.Time) time.Duration {
	if s.StartTime == nil {
		return 0
	}
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	elapsed := end.Sub(*s.StartTime) - time.Duration(s.PausedDurationMs)*time.Millisecond
	if s.PausedAt != nil && s.EndTime == nil {
		elapsed -= now.Sub(*s.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
