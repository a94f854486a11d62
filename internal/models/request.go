package models

import "strings"

// CreateSessionRequest configures a new practice session.
type CreateSessionRequest struct {
	DurationMinutes        int      `json:"duration_minutes"`
	Difficulty             []string `json:"difficulty"`
	QuestionTypes          []string `json:"question_types"`
	AllowSkip              bool     `json:"allow_skip"`
	TimePerQuestionMinutes int      `json:"time_per_question_minutes"`
	Role                   string   `json:"role"`
	Company                string   `json:"company"`
	UserID                 string   `json:"user_id"`
}

// implements the Validator interface
func (r *CreateSessionRequest) Validate() error {
	if r.DurationMinutes <= 0 {
		return &ErrorResponse{
			Code:    "invalid_duration",
			Message: "duration_minutes must be greater than zero",
		}
	}

	for _, d := range r.Difficulty {
		if !IsValidDifficulty(Difficulty(strings.ToLower(strings.TrimSpace(d)))) {
			return &ErrorResponse{
				Code:    "invalid_difficulty",
				Message: "Difficulty must be one of: easy, medium, hard",
			}
		}
	}

	for _, t := range r.QuestionTypes {
		if !IsValidQuestionType(QuestionType(strings.ToLower(strings.TrimSpace(t)))) {
			return &ErrorResponse{
				Code:    "invalid_question_type",
				Message: "Question type must be one of: behavioral, technical, situational, company-specific, general",
			}
		}
	}

	if r.TimePerQuestionMinutes < 0 {
		return &ErrorResponse{
			Code:    "invalid_time_per_question",
			Message: "time_per_question_minutes must not be negative",
		}
	}

	return nil
}

// ToConfig converts the validated request into a session configuration.
func (r *CreateSessionRequest) ToConfig() SessionConfig {
	cfg := SessionConfig{
		DurationMinutes:        r.DurationMinutes,
		AllowSkip:              r.AllowSkip,
		TimePerQuestionMinutes: r.TimePerQuestionMinutes,
		Role:                   strings.ToLower(strings.TrimSpace(r.Role)),
		Company:                strings.ToLower(strings.TrimSpace(r.Company)),
		UserID:                 strings.TrimSpace(r.UserID),
	}
	for _, d := range r.Difficulty {
		cfg.Difficulty = append(cfg.Difficulty, Difficulty(strings.ToLower(strings.TrimSpace(d))))
	}
	for _, t := range r.QuestionTypes {
		cfg.QuestionTypes = append(cfg.QuestionTypes, QuestionType(strings.ToLower(strings.TrimSpace(t))))
	}
	return cfg
}

// SubmitResponseRequest carries one answer to the current question.
type SubmitResponseRequest struct {
	Text             string `json:"text"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
	Skipped          bool   `json:"skipped"`
}

func (r *SubmitResponseRequest) Validate() error {
	if r.TimeSpentSeconds < 0 {
		return &ErrorResponse{
			Code:    "invalid_time_spent",
			Message: "time_spent_seconds must not be negative",
		}
	}
	return nil
}

// SkipQuestionRequest skips the current question without an answer.
type SkipQuestionRequest struct {
	TimeSpentSeconds int `json:"time_spent_seconds"`
}

func (r *SkipQuestionRequest) Validate() error {
	if r.TimeSpentSeconds < 0 {
		return &ErrorResponse{
			Code:    "invalid_time_spent",
			Message: "time_spent_seconds must not be negative",
		}
	}
	return nil
}
