package evaluator

import (
	"strings"
	"unicode"

	"prepmate/interview/internal/models"
)

// stopwords excluded from keyword extraction
var stopwords = map[string]bool{
	"the": true, "and": true, "that": true, "this": true, "with": true,
	"for": true, "are": true, "was": true, "were": true, "have": true,
	"has": true, "had": true, "you": true, "your": true, "would": true,
	"could": true, "should": true, "what": true, "when": true, "where": true,
	"which": true, "about": true, "there": true, "their": true, "they": true,
	"from": true, "how": true, "why": true, "describe": true, "tell": true,
	"time": true, "give": true, "example": true, "situation": true,
}

// STAR component keyword families. A behavioral answer earns 25 points per
// component whose markers appear.
var starMarkers = map[string][]string{
	"situation": {"situation", "when i", "in my previous", "at my previous", "faced", "encountered", "while working", "at the time", "context", "during"},
	"task":      {"task", "had to", "needed to", "my responsibility", "responsible for", "goal", "objective", "assigned", "my job was"},
	"action":    {"action", "so i", "i decided", "i implemented", "i created", "i built", "i led", "i organized", "i rewrote", "rewrote", "i took", "i worked", "i set up"},
	"result":    {"result", "outcome", "achieved", "delivered", "shipped", "improved", "increased", "reduced", "saved", "early", "success", "learned", "in the end"},
}

var exampleMarkers = []string{"for example", "for instance", "such as", "in one case", "one time", "specifically"}

var analyticalMarkers = []string{"because", "therefore", "however", "as a result", "which meant", "so that", "consequently", "the reason"}

var concreteMarkers = []string{"specifically", "exactly", "in particular", "precisely", "%", "$"}

var practicalMarkers = []string{"in practice", "in production", "real-world", "we used", "we deployed", "deployed", "implemented", "on a project", "at work", "hands-on"}

var problemSolvingMarkers = []string{"approach", "trade-off", "tradeoff", "complexity", "edge case", "alternative", "optimize", "debug", "break down", "step by step", "consider"}

var pronounMarkers = []string{"i ", "my ", "we ", "our ", "me "}

var enthusiasmMarkers = []string{"excited", "passionate", "love", "enjoy", "thrilled", "keen", "!"}

// pattern families for situational questions
var situationalMarkers = map[string][]string{
	"problemAnalysis":          {"analyze", "understand", "identify", "root cause", "first", "assess", "gather", "investigate"},
	"decisionMaking":           {"decide", "decision", "choose", "option", "weigh", "prioritize", "because", "criteria"},
	"stakeholderConsideration": {"stakeholder", "team", "customer", "communicate", "manager", "align", "inform", "expectations"},
	"riskAssessment":           {"risk", "mitigate", "contingency", "fallback", "worst case", "impact", "rollback", "monitor"},
}

// tokenize lowercases text and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// extractKeywords returns up to limit unique non-trivial words in order of
// first appearance.
func extractKeywords(text string, limit int) []string {
	seen := make(map[string]bool)
	var result []string
	for _, word := range tokenize(text) {
		if len(word) <= 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		result = append(result, word)
		if len(result) >= limit {
			break
		}
	}
	return result
}

func sentenceCount(text string) int {
	count := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func longWordCount(text string) int {
	count := 0
	for _, word := range tokenize(text) {
		if len(word) >= 7 {
			count++
		}
	}
	return count
}

func containsDigit(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsAnyMarker(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func countMarkers(lower string, markers []string) int {
	count := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			count++
		}
	}
	return count
}

// clarityScore averages four boolean structural checks, each worth 25:
// adequate length with punctuation, vocabulary richness, multiple sentences,
// and overall length inside a readable band.
func clarityScore(text string) models.Score {
	trimmed := strings.TrimSpace(text)
	score := 0.0

	if len(trimmed) >= 50 && strings.ContainsAny(trimmed, ".!?") {
		score += 25
	}
	if longWordCount(trimmed) >= 3 {
		score += 25
	}
	if sentenceCount(trimmed) >= 2 {
		score += 25
	}
	if len(trimmed) >= 100 && len(trimmed) <= 500 {
		score += 25
	}

	return models.NewScore(score)
}

// relevanceScore is the keyword overlap between question and response,
// using the top ten non-trivial words of each, scaled to 100.
func relevanceScore(questionText, responseText string) models.Score {
	questionKeywords := extractKeywords(questionText, 10)
	responseKeywords := extractKeywords(responseText, 10)
	if len(questionKeywords) == 0 || len(responseKeywords) == 0 {
		return 0
	}

	responseSet := make(map[string]bool, len(responseKeywords))
	for _, w := range responseKeywords {
		responseSet[w] = true
	}

	overlap := 0
	for _, w := range questionKeywords {
		if responseSet[w] {
			overlap++
		}
	}

	return models.NewScore(float64(overlap) / float64(len(questionKeywords)) * 100)
}

// depthScore rewards examples, analytical connectives, numbers, and room to
// actually develop an argument.
func depthScore(text string) models.Score {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)

	score := 0.0
	if containsAnyMarker(lower, exampleMarkers) {
		score += 30
	}
	if containsAnyMarker(lower, analyticalMarkers) {
		score += 30
	}
	if containsDigit(trimmed) {
		score += 20
	}
	if len(trimmed) >= 200 {
		score += 20
	}

	return models.NewScore(score)
}

// specificityScore rewards numbers, concrete detail markers, and enough
// length to hold detail at all.
func specificityScore(text string) models.Score {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)

	score := 0.0
	if containsDigit(trimmed) {
		score += 35
	}
	if containsAnyMarker(lower, concreteMarkers) {
		score += 35
	}
	if len(trimmed) >= 150 {
		score += 30
	}

	return models.NewScore(score)
}

// engagementScore combines length, personal pronouns, and enthusiasm markers.
func engagementScore(text string) models.Score {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)

	score := 0.0
	if len(trimmed) >= 100 {
		score += 34
	}
	if countMarkers(" "+lower, pronounMarkers) >= 2 {
		score += 33
	}
	if containsAnyMarker(lower, enthusiasmMarkers) {
		score += 33
	}

	return models.NewScore(score)
}

// starScore checks the four STAR components; each present component is worth
// 25 of 100.
func starScore(text string) models.Score {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}

	score := 0.0
	for _, component := range []string{"situation", "task", "action", "result"} {
		if containsAnyMarker(lower, starMarkers[component]) {
			score += 25
		}
	}

	return models.NewScore(score)
}

// markerFamilyScore gives 25 points per distinct marker hit, capped at 100.
func markerFamilyScore(text string, markers []string) models.Score {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}
	return models.NewScore(float64(countMarkers(lower, markers)) * 25)
}

// criteriaCoverage measures how many evaluation criteria are touched by the
// response. No criteria on the question degrades the score to zero rather
// than failing.
func criteriaCoverage(criteria []string, responseText string) models.Score {
	if len(criteria) == 0 {
		return 0
	}
	trimmed := strings.TrimSpace(responseText)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)

	covered := 0
	for _, criterion := range criteria {
		for _, word := range tokenize(criterion) {
			if len(word) > 3 && strings.Contains(lower, word) {
				covered++
				break
			}
		}
	}

	return models.NewScore(float64(covered) / float64(len(criteria)) * 100)
}
