package models

// QuestionType classifies how a question is asked and how it is scored.
type QuestionType string

const (
	TypeBehavioral      QuestionType = "behavioral"
	TypeTechnical       QuestionType = "technical"
	TypeSituational     QuestionType = "situational"
	TypeCompanySpecific QuestionType = "company-specific"
	TypeGeneral         QuestionType = "general"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is static catalog data, immutable once loaded.
type Question struct {
	ID                 string       `json:"id" yaml:"id"`
	Text               string       `json:"text" yaml:"text"`
	Type               QuestionType `json:"type" yaml:"type"`
	Difficulty         Difficulty   `json:"difficulty" yaml:"difficulty"`
	Role               string       `json:"role,omitempty" yaml:"role,omitempty"`
	Company            string       `json:"company,omitempty" yaml:"company,omitempty"`
	EvaluationCriteria []string     `json:"evaluation_criteria,omitempty" yaml:"evaluation_criteria,omitempty"`
}

// QuestionFilter selects catalog entries; zero-value fields match everything.
type QuestionFilter struct {
	Types        []QuestionType
	Difficulties []Difficulty
	Role         string
	Company      string
}

// Matches reports whether q satisfies every non-empty predicate in f.
func (f QuestionFilter) Matches(q Question) bool {
	if len(f.Types) > 0 && !containsType(f.Types, q.Type) {
		return false
	}
	if len(f.Difficulties) > 0 && !containsDifficulty(f.Difficulties, q.Difficulty) {
		return false
	}
	if f.Role != "" && q.Role != f.Role {
		return false
	}
	if f.Company != "" && q.Company != f.Company {
		return false
	}
	return true
}

func containsType(types []QuestionType, t QuestionType) bool {
	for _, qt := range types {
		if qt == t {
			return true
		}
	}
	return false
}

func containsDifficulty(ds []Difficulty, d Difficulty) bool {
	for _, dd := range ds {
		if dd == d {
			return true
		}
	}
	return false
}

func ValidQuestionTypes() []QuestionType {
	return []QuestionType{TypeBehavioral, TypeTechnical, TypeSituational, TypeCompanySpecific, TypeGeneral}
}

func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValidQuestionType reports whether t is one of the supported question types.
func IsValidQuestionType(t QuestionType) bool {
	return containsType(ValidQuestionTypes(), t)
}

func IsValidDifficulty(d Difficulty) bool {
	return containsDifficulty(ValidDifficulties(), d)
}
