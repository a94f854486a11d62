// Package questionbank holds the interview question catalog and answers
// allocation queries for new sessions.
package questionbank

import (
	"math/rand"
	"sync"

	"prepmate/interview/internal/models"
)

const (
	// one question per two minutes of session time
	minutesPerQuestion = 2
	// share of the sequence reserved for role-specific questions
	roleShare = 0.6
	// at most this many company-specific questions per session
	maxCompanyQuestions = 3
)

// Bank answers allocation and search queries over an immutable catalog.
type Bank struct {
	questions []models.Question

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBank wraps the given catalog. The seed drives shuffle order; production
// callers pass a time-based seed, tests pass a fixed one.
func NewBank(questions []models.Question, seed int64) *Bank {
	catalog := make([]models.Question, len(questions))
	copy(catalog, questions)

	return &Bank{
		questions: catalog,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Size returns the number of catalogued questions.
func (b *Bank) Size() int {
	return len(b.questions)
}

// Search returns all catalog entries matching the filter. Pure, no side effects.
func (b *Bank) Search(filter models.QuestionFilter) []models.Question {
	var matched []models.Question
	for _, q := range b.questions {
		if filter.Matches(q) {
			matched = append(matched, q)
		}
	}
	return matched
}

// Allocate builds a question sequence for the session configuration.
//
// The sequence is assembled in three passes: role-specific questions first
// (up to 60% of the slots), then up to three company-specific questions,
// then the general pool filtered by the configured types and difficulties.
// If the catalog cannot fill every slot the session simply gets fewer
// questions; allocation never fails.
func (b *Bank) Allocate(config models.SessionConfig) []models.Question {
	total := config.DurationMinutes / minutesPerQuestion
	if total <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	selected := make([]models.Question, 0, total)
	used := make(map[string]bool)

	// pass a: role-specific questions
	if config.Role != "" {
		roleQuestions := b.Search(models.QuestionFilter{
			Role:         config.Role,
			Difficulties: config.Difficulty,
		})
		b.shuffle(roleQuestions)

		roleLimit := int(float64(total) * roleShare)
		for _, q := range roleQuestions {
			if len(selected) >= roleLimit {
				break
			}
			selected = append(selected, q)
			used[q.ID] = true
		}
	}

	// pass b: company-specific questions
	if config.Company != "" {
		companyQuestions := b.Search(models.QuestionFilter{Company: config.Company})
		b.shuffle(companyQuestions)

		taken := 0
		for _, q := range companyQuestions {
			if taken >= maxCompanyQuestions || len(selected) >= total {
				break
			}
			if used[q.ID] {
				continue
			}
			selected = append(selected, q)
			used[q.ID] = true
			taken++
		}
	}

	// pass c: fill remaining slots from the general pool
	general := b.Search(models.QuestionFilter{
		Types:        config.QuestionTypes,
		Difficulties: config.Difficulty,
	})
	b.shuffle(general)

	for _, q := range general {
		if len(selected) >= total {
			break
		}
		if used[q.ID] {
			continue
		}
		selected = append(selected, q)
		used[q.ID] = true
	}

	if len(selected) > total {
		selected = selected[:total]
	}
	b.shuffle(selected)

	return selected
}

func (b *Bank) shuffle(questions []models.Question) {
	b.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
