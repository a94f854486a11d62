// Package aggregator combines per-response evaluations into one session
// evaluation with structured feedback.
package aggregator

import (
	"math"
	"sort"
	"time"

	"prepmate/interview/internal/models"
)

// Policy holds the score-adjustment knobs. The cutoffs are tunable policy,
// not business invariants; DefaultPolicy carries the historical values.
type Policy struct {
	ConsistencyBonus       float64
	LowVarianceThreshold   float64
	SlowThresholdSeconds   float64
	SlowPenalty            float64
	RushedThresholdSeconds float64
	RushedPenalty          float64
}

func DefaultPolicy() Policy {
	return Policy{
		ConsistencyBonus:       5,
		LowVarianceThreshold:   100,
		SlowThresholdSeconds:   300,
		SlowPenalty:            5,
		RushedThresholdSeconds: 60,
		RushedPenalty:          10,
	}
}

type Aggregator struct {
	policy Policy
}

func New(policy Policy) *Aggregator {
	return &Aggregator{policy: policy}
}

// Aggregate produces the session evaluation. It never fails on valid input;
// an empty evaluation list yields a zero score with empty feedback sections.
func (a *Aggregator) Aggregate(session *models.Session, evaluations []models.Evaluation) models.SessionEvaluation {
	overall := a.overallScore(session, evaluations)
	averages := criterionAverages(evaluations)
	weaknesses := findWeaknesses(averages)
	recommendations := buildRecommendations(weaknesses)

	return models.SessionEvaluation{
		SessionID:    session.ID,
		OverallScore: overall,
		Evaluations:  evaluations,
		Feedback: models.SessionFeedback{
			Overall:         overallBand(overall.Float()),
			Strengths:       findStrengths(averages),
			Weaknesses:      weaknesses,
			Recommendations: recommendations,
			SkillBreakdown:  skillBreakdown(evaluations),
			ImprovementPlan: buildImprovementPlan(recommendations),
		},
		EvaluatedAt: time.Now().UTC(),
	}
}

// overallScore is the mean composite adjusted for consistency and pace,
// clamped to [0,100].
func (a *Aggregator) overallScore(session *models.Session, evaluations []models.Evaluation) models.Score {
	if len(evaluations) == 0 {
		return 0
	}

	composites := make([]float64, len(evaluations))
	for i, ev := range evaluations {
		composites[i] = ev.CompositeScore.Float()
	}

	score := mean(composites)

	if variance(composites) < a.policy.LowVarianceThreshold {
		score += a.policy.ConsistencyBonus
	}

	if len(session.Responses) > 0 {
		totalSeconds := 0
		for _, r := range session.Responses {
			totalSeconds += r.TimeSpentSeconds
		}
		perQuestion := float64(totalSeconds) / float64(len(session.Responses))

		if perQuestion > a.policy.SlowThresholdSeconds {
			score -= a.policy.SlowPenalty
		} else if perQuestion < a.policy.RushedThresholdSeconds {
			score -= a.policy.RushedPenalty
		}
	}

	return models.NewScore(score)
}

// overallBand maps a score to its qualitative message.
func overallBand(score float64) string {
	switch {
	case score >= 90:
		return "Excellent: interview-ready performance across the board."
	case score >= 80:
		return "Very Good: strong answers with only minor gaps."
	case score >= 70:
		return "Good: solid foundation, a few areas need polish."
	case score >= 60:
		return "Fair: workable answers, but clear weaknesses to address."
	default:
		return "Needs Improvement: focus on the fundamentals below before your next session."
	}
}

// criterionAverages computes the mean of every criterion across evaluations.
func criterionAverages(evaluations []models.Evaluation) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, ev := range evaluations {
		for criterion, score := range ev.Scores {
			sums[criterion] += score.Float()
			counts[criterion]++
		}
	}

	averages := make(map[string]float64, len(sums))
	for criterion, sum := range sums {
		averages[criterion] = sum / float64(counts[criterion])
	}
	return averages
}

func findStrengths(averages map[string]float64) []string {
	var strengths []string
	for criterion, avg := range averages {
		if avg >= 80 {
			strengths = append(strengths, criterion)
		}
	}
	sort.Strings(strengths)
	if strengths == nil {
		strengths = []string{}
	}
	return strengths
}

// findWeaknesses returns criteria averaging below 60, worst first, tagged
// with remediation priority by score band.
func findWeaknesses(averages map[string]float64) []models.Weakness {
	weaknesses := []models.Weakness{}
	for criterion, avg := range averages {
		if avg >= 60 {
			continue
		}
		priority := "low"
		if avg < 40 {
			priority = "high"
		} else if avg < 50 {
			priority = "medium"
		}
		weaknesses = append(weaknesses, models.Weakness{
			Criterion: criterion,
			Score:     avg,
			Priority:  priority,
		})
	}

	sort.Slice(weaknesses, func(i, j int) bool {
		if weaknesses[i].Score != weaknesses[j].Score {
			return weaknesses[i].Score < weaknesses[j].Score
		}
		return weaknesses[i].Criterion < weaknesses[j].Criterion
	})

	return weaknesses
}

// skillBreakdown summarizes every criterion with average, min, max, and a
// consistency figure derived from the variance.
func skillBreakdown(evaluations []models.Evaluation) map[string]models.SkillStats {
	values := make(map[string][]float64)
	for _, ev := range evaluations {
		for criterion, score := range ev.Scores {
			values[criterion] = append(values[criterion], score.Float())
		}
	}

	breakdown := make(map[string]models.SkillStats, len(values))
	for criterion, scores := range values {
		stats := models.SkillStats{
			Average:     mean(scores),
			Min:         scores[0],
			Max:         scores[0],
			Consistency: math.Max(0, 100-variance(scores)/10),
		}
		for _, v := range scores {
			stats.Min = math.Min(stats.Min, v)
			stats.Max = math.Max(stats.Max, v)
		}
		breakdown[criterion] = stats
	}

	return breakdown
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the population variance.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(values))
}
