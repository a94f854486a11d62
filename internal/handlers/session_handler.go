package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepmate/interview/internal/middleware"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/session"
	"prepmate/interview/internal/utils"
)

type SessionHandler struct {
	manager *session.Manager
	logger  *zap.Logger
}

func NewSessionHandler(manager *session.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: logger}
}

// writeSessionError maps the session error taxonomy onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	var (
		configErr   *session.ConfigurationError
		notFoundErr *session.NotFoundError
		stateErr    *session.InvalidStateError
		rangeErr    *session.OutOfRangeError
	)

	switch {
	case errors.As(err, &configErr):
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code: "invalid_configuration", Message: configErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code: "session_not_found", Message: notFoundErr.Error(),
		})
	case errors.As(err, &stateErr):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code: "invalid_state", Message: stateErr.Error(),
		})
	case errors.As(err, &rangeErr):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code: "no_current_question", Message: rangeErr.Error(),
		})
	default:
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code: "internal_error", Message: "Unexpected error",
		})
	}
}

func (h *SessionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateSessionRequest](r)

	s, err := h.manager.CreateSession(r.Context(), req.ToConfig())
	if err != nil {
		h.logger.Warn("session creation rejected", zap.Error(err))
		writeSessionError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, models.SessionResponse{Session: s})
}

func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.StartSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.PauseSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.ResumeSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) SubmitResponseHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitResponseRequest](r)

	s, err := h.manager.SubmitResponse(r.Context(), chi.URLParam(r, "id"), *req)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) SkipHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SkipQuestionRequest](r)

	s, err := h.manager.SkipQuestion(r.Context(), chi.URLParam(r, "id"), req.TimeSpentSeconds)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.CompleteSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) AbandonHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.AbandonSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.manager.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.SessionResponse{Session: s})
}

func (h *SessionHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	filter := session.HistoryFilter{
		UserID: r.URL.Query().Get("user_id"),
		Status: models.SessionStatus(r.URL.Query().Get("status")),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	sessions, err := h.manager.GetHistory(r.Context(), filter)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	utils.JSON(w, http.StatusOK, models.HistoryResponse{Sessions: sessions, Count: len(sessions)})
}

func (h *SessionHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = session.FormatJSON
	}

	data, err := h.manager.ExportSession(r.Context(), id, format)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.ExportResponse{SessionID: id, Format: format, Data: data})
}
