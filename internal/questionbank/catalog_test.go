package questionbank

import (
	"testing"

	"prepmate/interview/internal/models"
)

func TestLoadCatalog(t *testing.T) {
	questions, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	seen := make(map[string]bool)
	for _, q := range questions {
		if q.ID == "" || q.Text == "" {
			t.Fatalf("catalog entry missing id or text: %+v", q)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true

		if !models.IsValidQuestionType(q.Type) {
			t.Fatalf("question %s has invalid type %s", q.ID, q.Type)
		}
		if !models.IsValidDifficulty(q.Difficulty) {
			t.Fatalf("question %s has invalid difficulty %s", q.ID, q.Difficulty)
		}
	}
}

func TestLoadCatalogCoversEveryType(t *testing.T) {
	questions, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	byType := make(map[models.QuestionType]int)
	for _, q := range questions {
		byType[q.Type]++
	}

	for _, qt := range models.ValidQuestionTypes() {
		if byType[qt] == 0 {
			t.Fatalf("catalog has no %s questions", qt)
		}
	}
}
