package session

import (
	"fmt"

	"prepmate/interview/internal/models"
)

// ConfigurationError reports an invalid or unsatisfiable session config;
// the session is not created.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "invalid session configuration: " + e.Message
}

// NotFoundError reports an unknown session id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "session not found: " + e.ID
}

// InvalidStateError reports an operation that is illegal in the session's
// current lifecycle state. No mutation occurs.
type InvalidStateError struct {
	ID        string
	Status    models.SessionStatus
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s session %s in state %s", e.Operation, e.ID, e.Status)
}

// OutOfRangeError reports a response submission with no current question.
type OutOfRangeError struct {
	ID    string
	Index int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("session %s has no question at index %d", e.ID, e.Index)
}
