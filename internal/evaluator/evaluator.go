// Package evaluator scores one response against its question's rubric.
// Scoring is fully deterministic; the text-generation oracle only contributes
// advisory commentary and is never on the critical path.
package evaluator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"prepmate/interview/internal/llm"
	"prepmate/interview/internal/metrics"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/oracle"
	"prepmate/interview/internal/prompts"
)

const (
	// sub-scores below this threshold generate a remediation suggestion
	suggestionThreshold = 70
	maxSuggestions      = 5

	defaultOracleTimeout = 10 * time.Second
)

type Evaluator struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	oracleTimeout time.Duration
	logger        *zap.Logger
}

// New creates an evaluator. provider may be nil, in which case every
// evaluation carries fallback feedback.
func New(provider llm.Provider, promptManager prompts.PromptProvider, oracleTimeout time.Duration, logger *zap.Logger) *Evaluator {
	if oracleTimeout <= 0 {
		oracleTimeout = defaultOracleTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		provider:      provider,
		promptManager: promptManager,
		oracleTimeout: oracleTimeout,
		logger:        logger,
	}
}

// Evaluate scores the response. It never fails on valid input: malformed or
// missing sub-data degrades the corresponding score to zero.
func (e *Evaluator) Evaluate(ctx context.Context, question models.Question, response models.Response) models.Evaluation {
	scores := e.scoreByType(question, response)

	evaluation := models.Evaluation{
		QuestionID:     question.ID,
		QuestionType:   question.Type,
		Scores:         scores,
		CompositeScore: composite(scores),
		Suggestions:    buildSuggestions(scores),
	}

	feedback := e.oracleFeedback(ctx, question, response, scores)
	evaluation.AIFeedback = &feedback

	metrics.RecordEvaluation(string(question.Type))

	return evaluation
}

// scoreByType dispatches to the rubric for the question type. Skipped
// responses score zero on every criterion.
func (e *Evaluator) scoreByType(question models.Question, response models.Response) map[string]models.Score {
	if response.Skipped {
		return zeroScores(question.Type)
	}

	text := response.Text

	switch question.Type {
	case models.TypeBehavioral:
		return map[string]models.Score{
			"star":        starScore(text),
			"clarity":     clarityScore(text),
			"relevance":   relevanceScore(question.Text, text),
			"depth":       depthScore(text),
			"specificity": specificityScore(text),
		}
	case models.TypeTechnical:
		return map[string]models.Score{
			"technicalAccuracy":    relevanceScore(question.Text, text),
			"completeness":         criteriaCoverage(question.EvaluationCriteria, text),
			"clarity":              clarityScore(text),
			"practicalApplication": markerFamilyScore(text, practicalMarkers),
			"problemSolving":       markerFamilyScore(text, problemSolvingMarkers),
		}
	case models.TypeSituational:
		return map[string]models.Score{
			"problemAnalysis":          markerFamilyScore(text, situationalMarkers["problemAnalysis"]),
			"decisionMaking":           markerFamilyScore(text, situationalMarkers["decisionMaking"]),
			"stakeholderConsideration": markerFamilyScore(text, situationalMarkers["stakeholderConsideration"]),
			"riskAssessment":           markerFamilyScore(text, situationalMarkers["riskAssessment"]),
			"communication":            clarityScore(text),
		}
	default: // general and company-specific share a rubric
		return map[string]models.Score{
			"relevance":    relevanceScore(question.Text, text),
			"clarity":      clarityScore(text),
			"completeness": criteriaCoverage(question.EvaluationCriteria, text),
			"engagement":   engagementScore(text),
		}
	}
}

func zeroScores(questionType models.QuestionType) map[string]models.Score {
	var keys []string
	switch questionType {
	case models.TypeBehavioral:
		keys = []string{"star", "clarity", "relevance", "depth", "specificity"}
	case models.TypeTechnical:
		keys = []string{"technicalAccuracy", "completeness", "clarity", "practicalApplication", "problemSolving"}
	case models.TypeSituational:
		keys = []string{"problemAnalysis", "decisionMaking", "stakeholderConsideration", "riskAssessment", "communication"}
	default:
		keys = []string{"relevance", "clarity", "completeness", "engagement"}
	}

	scores := make(map[string]models.Score, len(keys))
	for _, k := range keys {
		scores[k] = 0
	}
	return scores
}

// composite is the unweighted mean of all sub-scores.
func composite(scores map[string]models.Score) models.Score {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s.Float()
	}
	return models.NewScore(sum / float64(len(scores)))
}

// suggestionCatalog maps a low-scoring criterion to one canned remediation.
var suggestionCatalog = map[string]string{
	"star":                     "Structure behavioral answers with the STAR method: Situation, Task, Action, Result.",
	"clarity":                  "Use complete sentences and aim for two to four sentences per answer.",
	"relevance":                "Address the question directly and reuse its key terms in your answer.",
	"depth":                    "Add a concrete example and explain the reasoning behind your choices.",
	"specificity":              "Include numbers, metrics, or named outcomes instead of general claims.",
	"technicalAccuracy":        "Use precise technical vocabulary that matches the question's subject.",
	"completeness":             "Cover every part of the question; check its evaluation criteria one by one.",
	"practicalApplication":     "Tie the concept to a real project or production experience.",
	"problemSolving":           "Walk through your approach step by step, including trade-offs you considered.",
	"problemAnalysis":          "Start by analyzing the problem and identifying the root cause before acting.",
	"decisionMaking":           "State the options you weighed and why you chose one over the others.",
	"stakeholderConsideration": "Mention who is affected and how you would keep them informed.",
	"riskAssessment":           "Name the risks of your plan and how you would mitigate them.",
	"communication":            "Present your answer in a clear, ordered narrative.",
	"engagement":               "Show genuine interest: speak in the first person and explain what motivates you.",
}

// buildSuggestions maps each sub-score below the threshold to a remediation
// string, capped at maxSuggestions. Keys are sorted so output is stable.
func buildSuggestions(scores map[string]models.Score) []string {
	type lowScore struct {
		criterion string
		score     float64
	}

	var low []lowScore
	for criterion, score := range scores {
		if score.Float() < suggestionThreshold {
			low = append(low, lowScore{criterion, score.Float()})
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].score != low[j].score {
			return low[i].score < low[j].score
		}
		return low[i].criterion < low[j].criterion
	})

	var suggestions []string
	for _, ls := range low {
		if len(suggestions) >= maxSuggestions {
			break
		}
		suggestion, ok := suggestionCatalog[ls.criterion]
		if !ok {
			suggestion = fmt.Sprintf("Practice answers that demonstrate %s.", ls.criterion)
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions
}

// oracleAnalysis is the JSON schema the analysis prompt asks for.
type oracleAnalysis struct {
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// oracleFeedback asks the oracle for commentary on the response, falling back
// to a deterministic summary built from the heuristic scores. The numeric
// scores are computed before this is called and are never affected by it.
func (e *Evaluator) oracleFeedback(ctx context.Context, question models.Question, response models.Response, scores map[string]models.Score) models.AIFeedback {
	fallback := fallbackAnalysis(scores)

	if response.Skipped || strings.TrimSpace(response.Text) == "" || e.provider == nil || e.promptManager == nil {
		return feedbackFrom(fallback, models.FeedbackFromFallback)
	}

	prompt, err := e.promptManager.BuildPrompt("analysis", map[string]string{
		"Type":     string(question.Type),
		"Question": question.Text,
		"Criteria": strings.Join(question.EvaluationCriteria, ", "),
		"Response": response.Text,
	})
	if err != nil {
		e.logger.Warn("failed to build analysis prompt", zap.Error(err), zap.String("question_id", question.ID))
		return feedbackFrom(fallback, models.FeedbackFromFallback)
	}

	result := oracle.Call(ctx, e.provider, prompt, e.oracleTimeout, fallback)
	if result.IsFallback() {
		metrics.RecordOracleFallback()
		e.logger.Debug("oracle analysis unavailable, using fallback", zap.String("question_id", question.ID))
		return feedbackFrom(result.Value(), models.FeedbackFromFallback)
	}

	return feedbackFrom(result.Value(), models.FeedbackFromOracle)
}

func feedbackFrom(analysis oracleAnalysis, source models.FeedbackSource) models.AIFeedback {
	return models.AIFeedback{
		Source:       source,
		Summary:      analysis.Summary,
		Strengths:    analysis.Strengths,
		Improvements: analysis.Improvements,
	}
}

// fallbackAnalysis summarizes the heuristic scores deterministically.
func fallbackAnalysis(scores map[string]models.Score) oracleAnalysis {
	var strengths, improvements []string

	criteria := make([]string, 0, len(scores))
	for criterion := range scores {
		criteria = append(criteria, criterion)
	}
	sort.Strings(criteria)

	for _, criterion := range criteria {
		if scores[criterion].Float() >= 80 {
			strengths = append(strengths, "Strong "+criterion)
		} else if scores[criterion].Float() < 50 {
			improvements = append(improvements, "Work on "+criterion)
		}
	}

	summary := fmt.Sprintf("Automated review: composite score %.0f based on %d criteria.",
		composite(scores).Float(), len(scores))

	return oracleAnalysis{
		Summary:      summary,
		Strengths:    strengths,
		Improvements: improvements,
	}
}
