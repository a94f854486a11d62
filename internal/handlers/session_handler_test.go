package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"prepmate/interview/internal/aggregator"
	"prepmate/interview/internal/evaluator"
	"prepmate/interview/internal/middleware"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/performance"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/session"
	"prepmate/interview/internal/storage"
)

func testBank() *questionbank.Bank {
	var questions []models.Question
	for i := 0; i < 20; i++ {
		questions = append(questions, models.Question{
			ID:         fmt.Sprintf("g-%d", i),
			Text:       fmt.Sprintf("general question %d", i),
			Type:       models.TypeGeneral,
			Difficulty: models.DifficultyMedium,
		})
	}
	return questionbank.NewBank(questions, 1)
}

func newTestRouter(t *testing.T) (*chi.Mux, *session.Manager) {
	t.Helper()

	store := storage.NewMemoryStore()
	manager := session.NewManager(
		testBank(),
		evaluator.New(nil, nil, time.Second, nil),
		aggregator.New(aggregator.DefaultPolicy()),
		performance.NewTracker(store, nil),
		store,
		nil,
		session.DefaultOptions(),
	)

	handler := NewSessionHandler(manager, testLogger())
	router := chi.NewRouter()
	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/", handler.CreateHandler)
		r.Get("/", handler.HistoryHandler)
		r.Get("/{id}", handler.GetHandler)
		r.Post("/{id}/start", handler.StartHandler)
		r.Post("/{id}/pause", handler.PauseHandler)
		r.Post("/{id}/resume", handler.ResumeHandler)
		r.With(middleware.ValidateRequest[*models.SubmitResponseRequest]()).Post("/{id}/responses", handler.SubmitResponseHandler)
		r.Post("/{id}/complete", handler.CompleteHandler)
		r.Get("/{id}/export", handler.ExportHandler)
	})

	return router, manager
}

func createSession(t *testing.T, router *chi.Mux) models.Session {
	t.Helper()

	body := `{"duration_minutes":8,"question_types":["general"],"user_id":"user-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return *resp.Session
}

func do(router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSessionEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	s := createSession(t, router)
	if s.Status != models.StatusCreated {
		t.Fatalf("expected created status, got %s", s.Status)
	}
	if len(s.Questions) != 4 {
		t.Fatalf("expected 4 questions for 8 minutes, got %d", len(s.Questions))
	}
}

func TestCreateSessionEndpointRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodPost, "/api/v1/sessions/", `{"duration_minutes":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "invalid_duration" {
		t.Fatalf("expected invalid_duration, got %s", errResp.Code)
	}

	rec = do(router, http.MethodPost, "/api/v1/sessions/", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router)

	base := "/api/v1/sessions/" + s.ID

	if rec := do(router, http.MethodPost, base+"/start", ""); rec.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", rec.Code)
	}
	if rec := do(router, http.MethodPost, base+"/pause", ""); rec.Code != http.StatusOK {
		t.Fatalf("pause: expected 200, got %d", rec.Code)
	}
	if rec := do(router, http.MethodPost, base+"/resume", ""); rec.Code != http.StatusOK {
		t.Fatalf("resume: expected 200, got %d", rec.Code)
	}

	rec := do(router, http.MethodPost, base+"/responses", `{"text":"my answer","time_spent_seconds":60}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Session.CurrentQuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d", resp.Session.CurrentQuestionIndex)
	}

	if rec := do(router, http.MethodPost, base+"/complete", ""); rec.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", rec.Code)
	}
}

func TestInvalidStateReturnsConflict(t *testing.T) {
	router, _ := newTestRouter(t)
	s := createSession(t, router)

	// pausing a created session is illegal
	rec := do(router, http.MethodPost, "/api/v1/sessions/"+s.ID+"/pause", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %s", errResp.Code)
	}
}

func TestGetSessionNotFoundEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/v1/sessions/does-not-exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "session_not_found" {
		t.Fatalf("expected session_not_found, got %s", errResp.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	router, manager := newTestRouter(t)
	s := createSession(t, router)

	ctx := context.Background()
	if _, err := manager.StartSession(ctx, s.ID); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := manager.CompleteSession(ctx, s.ID); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	rec := do(router, http.MethodGet, "/api/v1/sessions/?user_id=user-1&status=completed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid history body: %v", err)
	}
	if resp.Count != 1 || resp.Sessions[0].ID != s.ID {
		t.Fatalf("unexpected history: %+v", resp)
	}
}

func TestExportEndpoint(t *testing.T) {
	router, manager := newTestRouter(t)
	s := createSession(t, router)

	ctx := context.Background()
	if _, err := manager.StartSession(ctx, s.ID); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := manager.CompleteSession(ctx, s.ID); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	rec := do(router, http.MethodGet, "/api/v1/sessions/"+s.ID+"/export?format=text", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.ExportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid export body: %v", err)
	}
	if resp.Format != "text" || resp.Data == "" {
		t.Fatalf("unexpected export: %+v", resp)
	}

	rec = do(router, http.MethodGet, "/api/v1/sessions/"+s.ID+"/export?format=xml", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rec.Code)
	}
}
