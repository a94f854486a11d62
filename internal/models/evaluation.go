package models

import "time"

// Score is a rubric sub-score normalized to [0,100]. All scoring paths go
// through NewScore so downstream aggregation never sees out-of-range values.
type Score float64

// NewScore clamps v into [0,100].
func NewScore(v float64) Score {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return Score(v)
}

func (s Score) Float() float64 { return float64(s) }

// FeedbackSource tags where the qualitative feedback on an evaluation came from.
type FeedbackSource string

const (
	FeedbackFromOracle   FeedbackSource = "oracle"
	FeedbackFromFallback FeedbackSource = "fallback"
)

// AIFeedback is advisory commentary on one response. When the text-generation
// oracle fails or returns garbage, a deterministic fallback is substituted;
// numeric scores are never derived from it.
type AIFeedback struct {
	Source       FeedbackSource `json:"source"`
	Summary      string         `json:"summary"`
	Strengths    []string       `json:"strengths,omitempty"`
	Improvements []string       `json:"improvements,omitempty"`
}

// Evaluation scores one response against its question's rubric.
// Derived once, never mutated.
type Evaluation struct {
	QuestionID     string           `json:"question_id"`
	QuestionType   QuestionType     `json:"question_type"`
	Scores         map[string]Score `json:"scores"`
	CompositeScore Score            `json:"composite_score"`
	AIFeedback     *AIFeedback      `json:"ai_feedback,omitempty"`
	Suggestions    []string         `json:"suggestions"`
}

// Weakness is a low-scoring criterion with remediation priority.
type Weakness struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Priority  string  `json:"priority"` // high, medium, low
}

// Recommendation is a concrete improvement entry for one weak criterion.
type Recommendation struct {
	Criterion string   `json:"criterion"`
	Actions   []string `json:"actions"`
	Resources []string `json:"resources"`
	Timeline  string   `json:"timeline"`
}

// ImprovementPlan buckets recommendations by how soon they should be acted on.
type ImprovementPlan struct {
	Immediate []Recommendation `json:"immediate"`
	ShortTerm []Recommendation `json:"short_term"`
	LongTerm  []Recommendation `json:"long_term"`
}

// SkillStats summarizes one criterion across a whole session.
type SkillStats struct {
	Average     float64 `json:"average"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Consistency float64 `json:"consistency"`
}

// SessionFeedback is the structured qualitative output of aggregation.
type SessionFeedback struct {
	Overall         string                `json:"overall"`
	Strengths       []string              `json:"strengths"`
	Weaknesses      []Weakness            `json:"weaknesses"`
	Recommendations []Recommendation      `json:"recommendations"`
	SkillBreakdown  map[string]SkillStats `json:"skill_breakdown"`
	ImprovementPlan ImprovementPlan       `json:"improvement_plan"`
}

// SessionEvaluation is produced exactly once when a session reaches a terminal
// state, and persisted alongside the session.
type SessionEvaluation struct {
	SessionID           string          `json:"session_id"`
	OverallScore        Score           `json:"overall_score"`
	Evaluations         []Evaluation    `json:"evaluations"`
	Feedback            SessionFeedback `json:"feedback"`
	PerformanceTracking *TrendReport    `json:"performance_tracking,omitempty"`
	EvaluatedAt         time.Time       `json:"evaluated_at"`
}
