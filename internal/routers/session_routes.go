package routers

import (
	"github.com/go-chi/chi/v5"

	"prepmate/interview/internal/handlers"
	"prepmate/interview/internal/middleware"
	"prepmate/interview/internal/models"
)

func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, questionHandler *handlers.QuestionHandler, assistantHandler *handlers.AssistantHandler) {
	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/", sessionHandler.CreateHandler)
		r.Get("/", sessionHandler.HistoryHandler)
		r.Get("/{id}", sessionHandler.GetHandler)
		r.Post("/{id}/start", sessionHandler.StartHandler)
		r.Post("/{id}/pause", sessionHandler.PauseHandler)
		r.Post("/{id}/resume", sessionHandler.ResumeHandler)
		r.With(middleware.ValidateRequest[*models.SubmitResponseRequest]()).Post("/{id}/responses", sessionHandler.SubmitResponseHandler)
		r.With(middleware.ValidateRequest[*models.SkipQuestionRequest]()).Post("/{id}/skip", sessionHandler.SkipHandler)
		r.Post("/{id}/complete", sessionHandler.CompleteHandler)
		r.Post("/{id}/abandon", sessionHandler.AbandonHandler)
		r.Get("/{id}/export", sessionHandler.ExportHandler)
	})

	router.Route("/api/v1/questions", func(r chi.Router) {
		r.Get("/", questionHandler.SearchHandler)
	})

	router.Route("/api/v1/assistant", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.FollowUpRequest]()).Post("/followups", assistantHandler.FollowUpsHandler)
		r.With(middleware.ValidateRequest[*models.PersonalizedQuestionsRequest]()).Post("/questions", assistantHandler.PersonalizedQuestionsHandler)
		r.With(middleware.ValidateRequest[*models.CoachingTipsRequest]()).Post("/tips", assistantHandler.CoachingTipsHandler)
	})
}
