package questionbank

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"prepmate/interview/internal/models"
)

// embeds the question catalog into the binary at compile time
//
//go:embed catalog/*.yaml
var catalogFS embed.FS

type catalogFile struct {
	Questions []models.Question `yaml:"questions"`
}

// LoadCatalog reads every YAML file in the embedded catalog and returns the
// combined question list.
func LoadCatalog() ([]models.Question, error) {
	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var questions []models.Question
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := catalogFS.ReadFile("catalog/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", entry.Name(), err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse catalog file %s: %w", entry.Name(), err)
		}

		for _, q := range file.Questions {
			if q.ID == "" || q.Text == "" {
				return nil, fmt.Errorf("catalog file %s contains a question without id or text", entry.Name())
			}
			if !models.IsValidQuestionType(q.Type) {
				return nil, fmt.Errorf("catalog question %s has unknown type %q", q.ID, q.Type)
			}
			if !models.IsValidDifficulty(q.Difficulty) {
				return nil, fmt.Errorf("catalog question %s has unknown difficulty %q", q.ID, q.Difficulty)
			}
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("embedded catalog is empty")
	}

	return questions, nil
}
