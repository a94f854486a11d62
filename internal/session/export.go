package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"prepmate/interview/internal/models"
)

// export formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ExportSession renders a session (active or persisted) in the requested
// format.
func (m *Manager) ExportSession(ctx context.Context, id, format string) (string, error) {
	s, err := m.GetSession(ctx, id)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatText:
		return renderText(s), nil
	default:
		return "", &ConfigurationError{Message: "unsupported export format: " + format}
	}
}

func renderText(s *models.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Interview Practice Session %s\n", s.ID)
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	fmt.Fprintf(&b, "Created: %s\n", s.CreatedAt.Format("2006-01-02 15:04 MST"))
	if s.Config.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", s.Config.Role)
	}
	if s.Config.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", s.Config.Company)
	}
	fmt.Fprintf(&b, "Questions: %d, Answered: %d\n", len(s.Questions), len(s.Responses))

	for _, r := range s.Responses {
		q := questionFor(s, r)
		fmt.Fprintf(&b, "\nQ%d (%s/%s): %s\n", r.QuestionIndex+1, q.Type, q.Difficulty, q.Text)
		if r.Skipped {
			b.WriteString("A: (skipped)\n")
		} else {
			fmt.Fprintf(&b, "A: %s\n", r.Text)
		}
		fmt.Fprintf(&b, "Time spent: %ds\n", r.TimeSpentSeconds)
	}

	if s.Evaluation != nil {
		fmt.Fprintf(&b, "\nOverall score: %.1f\n", s.Evaluation.OverallScore.Float())
		fmt.Fprintf(&b, "Assessment: %s\n", s.Evaluation.Feedback.Overall)
		if len(s.Evaluation.Feedback.Strengths) > 0 {
			fmt.Fprintf(&b, "Strengths: %s\n", strings.Join(s.Evaluation.Feedback.Strengths, ", "))
		}
		for _, w := range s.Evaluation.Feedback.Weaknesses {
			fmt.Fprintf(&b, "Weakness: %s (%.1f, %s priority)\n", w.Criterion, w.Score, w.Priority)
		}
	}

	return b.String()
}
