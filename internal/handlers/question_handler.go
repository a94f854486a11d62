package handlers

import (
	"net/http"
	"strings"

	"prepmate/interview/internal/models"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/utils"
)

type QuestionHandler struct {
	bank *questionbank.Bank
}

func NewQuestionHandler(bank *questionbank.Bank) *QuestionHandler {
	return &QuestionHandler{bank: bank}
}

// SearchHandler filters the catalog by query parameters: type, difficulty
// (both comma-separated), role, and company.
func (h *QuestionHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.QuestionFilter{
		Role:    strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role"))),
		Company: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("company"))),
	}

	for _, t := range splitParam(r.URL.Query().Get("type")) {
		qt := models.QuestionType(t)
		if !models.IsValidQuestionType(qt) {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_question_type",
				Message: "Unknown question type: " + t,
			})
			return
		}
		filter.Types = append(filter.Types, qt)
	}

	for _, d := range splitParam(r.URL.Query().Get("difficulty")) {
		diff := models.Difficulty(d)
		if !models.IsValidDifficulty(diff) {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_difficulty",
				Message: "Unknown difficulty: " + d,
			})
			return
		}
		filter.Difficulties = append(filter.Difficulties, diff)
	}

	questions := h.bank.Search(filter)
	if questions == nil {
		questions = []models.Question{}
	}

	utils.JSON(w, http.StatusOK, models.QuestionListResponse{Questions: questions, Count: len(questions)})
}

func splitParam(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
