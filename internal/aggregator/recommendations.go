package aggregator

import (
	"fmt"
	"strconv"
	"strings"

	"prepmate/interview/internal/models"
)

// recommendationCatalog maps a weak criterion to a concrete improvement
// entry. Unlisted criteria fall back to a generic template.
var recommendationCatalog = map[string]models.Recommendation{
	"star": {
		Criterion: "star",
		Actions: []string{
			"Write out three past projects as Situation, Task, Action, Result bullet points",
			"Rehearse each story aloud until it fits in ninety seconds",
		},
		Resources: []string{"STAR method worksheets", "Recorded mock interviews"},
		Timeline:  "2 weeks",
	},
	"clarity": {
		Criterion: "clarity",
		Actions: []string{
			"Record yourself answering and cut filler words on the second take",
			"Answer in three beats: direct answer, supporting detail, wrap-up",
		},
		Resources: []string{"Toastmasters exercises", "Speech recording apps"},
		Timeline:  "1 month",
	},
	"relevance": {
		Criterion: "relevance",
		Actions: []string{
			"Repeat the question's key terms in your opening sentence",
			"Pause before answering to pick the single point the question asks for",
		},
		Resources: []string{"Question banks by role", "Peer mock sessions"},
		Timeline:  "2 weeks",
	},
	"depth": {
		Criterion: "depth",
		Actions: []string{
			"Prepare one detailed example per core skill with reasoning and outcome",
			"Practice the 'why' chain: explain each decision two levels deep",
		},
		Resources: []string{"Case study write-ups", "Engineering blog post-mortems"},
		Timeline:  "2 months",
	},
	"specificity": {
		Criterion: "specificity",
		Actions: []string{
			"Collect the metrics behind your last three projects and memorize them",
			"Replace every general claim with a number, date, or named outcome",
		},
		Resources: []string{"Personal achievement log", "Resume metrics worksheet"},
		Timeline:  "1 week",
	},
	"technicalAccuracy": {
		Criterion: "technicalAccuracy",
		Actions: []string{
			"Review the fundamentals for your target role one topic per day",
			"Explain each concept aloud using its proper terminology",
		},
		Resources: []string{"Standard textbooks for your stack", "Flashcard decks"},
		Timeline:  "2 months",
	},
	"completeness": {
		Criterion: "completeness",
		Actions: []string{
			"Before finishing, check the question for parts you have not addressed",
			"Practice multi-part questions and enumerate your answer explicitly",
		},
		Resources: []string{"Multi-part question drills"},
		Timeline:  "3 weeks",
	},
	"problemSolving": {
		Criterion: "problemSolving",
		Actions: []string{
			"Narrate your approach before solving: constraints, options, choice",
			"Do one timed problem a day and review the trade-offs afterwards",
		},
		Resources: []string{"Practice problem sets", "System design primers"},
		Timeline:  "2 months",
	},
	"riskAssessment": {
		Criterion: "riskAssessment",
		Actions: []string{
			"For every plan you present, name one risk and its mitigation",
		},
		Resources: []string{"Incident post-mortem archives"},
		Timeline:  "1 month",
	},
	"engagement": {
		Criterion: "engagement",
		Actions: []string{
			"Prepare a genuine answer to 'why this company' with personal motivation",
			"Practice varying tone; flat delivery reads as disinterest",
		},
		Resources: []string{"Company blogs and shareholder letters"},
		Timeline:  "1 week",
	},
}

// buildRecommendations produces one entry per weakness.
func buildRecommendations(weaknesses []models.Weakness) []models.Recommendation {
	recommendations := []models.Recommendation{}
	for _, w := range weaknesses {
		if rec, ok := recommendationCatalog[w.Criterion]; ok {
			recommendations = append(recommendations, rec)
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Criterion: w.Criterion,
			Actions: []string{
				fmt.Sprintf("Practice answers that specifically demonstrate %s", w.Criterion),
				fmt.Sprintf("Ask for targeted feedback on %s after each mock session", w.Criterion),
			},
			Resources: []string{"General interview preparation guides"},
			Timeline:  "1 month",
		})
	}
	return recommendations
}

// buildImprovementPlan buckets recommendations by their timeline:
// immediate within two weeks, short term within two months, long term beyond.
func buildImprovementPlan(recommendations []models.Recommendation) models.ImprovementPlan {
	plan := models.ImprovementPlan{
		Immediate: []models.Recommendation{},
		ShortTerm: []models.Recommendation{},
		LongTerm:  []models.Recommendation{},
	}

	for _, rec := range recommendations {
		weeks := timelineWeeks(rec.Timeline)
		switch {
		case weeks <= 2:
			plan.Immediate = append(plan.Immediate, rec)
		case weeks <= 8:
			plan.ShortTerm = append(plan.ShortTerm, rec)
		default:
			plan.LongTerm = append(plan.LongTerm, rec)
		}
	}

	return plan
}

// timelineWeeks parses strings like "2 weeks" or "1 month" into weeks.
// Unparseable timelines land in the long-term bucket.
func timelineWeeks(timeline string) int {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(timeline)))
	if len(fields) < 2 {
		return 1 << 10
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 1 << 10
	}

	unit := fields[1]
	switch {
	case strings.HasPrefix(unit, "day"):
		return (n + 6) / 7
	case strings.HasPrefix(unit, "week"):
		return n
	case strings.HasPrefix(unit, "month"):
		return n * 4
	default:
		return 1 << 10
	}
}
