package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"prepmate/interview/internal/assistant"
	"prepmate/interview/internal/middleware"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/utils"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
	logger    *zap.Logger
}

func NewAssistantHandler(a *assistant.Assistant, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: a, logger: logger}
}

func (h *AssistantHandler) FollowUpsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.FollowUpRequest](r)

	questions := h.assistant.FollowUpQuestions(r.Context(), req.QuestionText, req.ResponseText)
	utils.JSON(w, http.StatusOK, models.FollowUpResponse{Questions: questions})
}

func (h *AssistantHandler) PersonalizedQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.PersonalizedQuestionsRequest](r)

	questions := h.assistant.PersonalizedQuestions(r.Context(), req.Role, req.Company, req.Weaknesses)
	if questions == nil {
		questions = []models.Question{}
	}
	utils.JSON(w, http.StatusOK, models.QuestionListResponse{Questions: questions, Count: len(questions)})
}

func (h *AssistantHandler) CoachingTipsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CoachingTipsRequest](r)

	tips := h.assistant.CoachingTips(r.Context(), req.OverallScore, req.Weaknesses)
	utils.JSON(w, http.StatusOK, models.CoachingTipsResponse{Tips: tips})
}
