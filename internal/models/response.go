package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

// Error lets request validators return an ErrorResponse directly.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// SessionResponse wraps a session for the HTTP surface.
type SessionResponse struct {
	Session *Session `json:"session"`
}

// QuestionListResponse carries catalog search or generation results.
type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Count     int        `json:"count"`
}

// HistoryResponse carries persisted sessions, newest first.
type HistoryResponse struct {
	Sessions []Session `json:"sessions"`
	Count    int       `json:"count"`
}

// ExportResponse wraps a rendered session export.
type ExportResponse struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`
	Data      string `json:"data"`
}
