package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prepmate/interview/internal/models"
)

func TestValidateRequestPassesValidBody(t *testing.T) {
	var captured *models.CreateSessionRequest

	handler := ValidateRequest[*models.CreateSessionRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetValidatedRequest[*models.CreateSessionRequest](r)
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"duration_minutes":30,"question_types":["general"]}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured == nil || captured.DurationMinutes != 30 {
		t.Fatalf("validated request not stored in context: %+v", captured)
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	handler := ValidateRequest[*models.CreateSessionRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for invalid JSON")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %s", errResp.Code)
	}
}

func TestValidateRequestRejectsFailedValidation(t *testing.T) {
	handler := ValidateRequest[*models.CreateSessionRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for invalid request")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"duration_minutes":-5}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if errResp.Code != "invalid_duration" {
		t.Fatalf("expected the validator's error code, got %s", errResp.Code)
	}
}
