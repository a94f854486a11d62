// Package assistant provides the oracle-backed coaching helpers: follow-up
// questions, personalized practice questions, and coaching tips. Every call
// degrades to a static fallback when the oracle is unavailable or returns
// malformed output.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"prepmate/interview/internal/llm"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/oracle"
	"prepmate/interview/internal/prompts"
)

const defaultTimeout = 10 * time.Second

type Assistant struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	timeout       time.Duration
	logger        *zap.Logger
}

func New(provider llm.Provider, promptManager prompts.PromptProvider, timeout time.Duration, logger *zap.Logger) *Assistant {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		provider:      provider,
		promptManager: promptManager,
		timeout:       timeout,
		logger:        logger,
	}
}

type followUpPayload struct {
	Questions []string `json:"questions"`
}

// FollowUpQuestions suggests follow-up questions an interviewer might ask
// after the given answer.
func (a *Assistant) FollowUpQuestions(ctx context.Context, questionText, responseText string) []string {
	fallback := followUpPayload{Questions: []string{
		"Can you elaborate on the outcome and what you measured?",
		"What would you do differently if you faced this again?",
		"What was the hardest part, and how did you get through it?",
	}}

	result := call(ctx, a, "followups", map[string]string{
		"Question": questionText,
		"Response": responseText,
	}, fallback)

	questions := result.Value().Questions
	if len(questions) == 0 {
		return fallback.Questions
	}
	return questions
}

type personalizedPayload struct {
	Questions []struct {
		Text       string `json:"text"`
		Type       string `json:"type"`
		Difficulty string `json:"difficulty"`
	} `json:"questions"`
}

// PersonalizedQuestions generates practice questions tailored to the user's
// target role, company, and known weak areas. Entries with unknown types or
// difficulties are dropped rather than propagated.
func (a *Assistant) PersonalizedQuestions(ctx context.Context, role, company string, weaknesses []string) []models.Question {
	fallback := personalizedPayload{}

	result := call(ctx, a, "personalized", map[string]string{
		"Role":       role,
		"Company":    company,
		"Weaknesses": strings.Join(weaknesses, ", "),
	}, fallback)

	var questions []models.Question
	for i, q := range result.Value().Questions {
		qType := models.QuestionType(strings.ToLower(strings.TrimSpace(q.Type)))
		difficulty := models.Difficulty(strings.ToLower(strings.TrimSpace(q.Difficulty)))
		if q.Text == "" || !models.IsValidQuestionType(qType) || !models.IsValidDifficulty(difficulty) {
			continue
		}
		questions = append(questions, models.Question{
			ID:         fmt.Sprintf("personalized-%d", i+1),
			Text:       q.Text,
			Type:       qType,
			Difficulty: difficulty,
			Role:       role,
			Company:    company,
		})
	}

	if len(questions) == 0 {
		// deterministic fallback drawn from the weak areas
		for i, weakness := range weaknesses {
			questions = append(questions, models.Question{
				ID:         fmt.Sprintf("personalized-fallback-%d", i+1),
				Text:       fmt.Sprintf("Tell me about a time you demonstrated %s.", weakness),
				Type:       models.TypeBehavioral,
				Difficulty: models.DifficultyMedium,
				Role:       role,
			})
		}
	}

	return questions
}

type coachingPayload struct {
	Tips []string `json:"tips"`
}

// CoachingTips produces short practice tips keyed off the session result.
func (a *Assistant) CoachingTips(ctx context.Context, overallScore float64, weaknesses []string) []string {
	fallback := coachingPayload{Tips: []string{
		"Rehearse answers aloud and time yourself; two minutes is the sweet spot.",
		"Keep a log of concrete achievements with numbers you can cite.",
		"After every practice session, rewrite your weakest answer once.",
	}}

	result := call(ctx, a, "coaching", map[string]string{
		"Score":      fmt.Sprintf("%.0f", overallScore),
		"Weaknesses": strings.Join(weaknesses, ", "),
	}, fallback)

	tips := result.Value().Tips
	if len(tips) == 0 {
		return fallback.Tips
	}
	if len(tips) > 5 {
		tips = tips[:5]
	}
	return tips
}

// call builds the prompt for mode and runs the oracle with the assistant's
// timeout. Methods cannot be generic, hence the package-level helper.
func call[T any](ctx context.Context, a *Assistant, mode string, data map[string]string, fallback T) oracle.Result[T] {
	if a.promptManager == nil {
		return oracle.Fallback(fallback)
	}

	prompt, err := a.promptManager.BuildPrompt(mode, data)
	if err != nil {
		a.logger.Warn("failed to build prompt", zap.String("mode", mode), zap.Error(err))
		return oracle.Fallback(fallback)
	}

	return oracle.Call(ctx, a.provider, prompt, a.timeout, fallback)
}
