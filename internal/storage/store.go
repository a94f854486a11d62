// Package storage provides the durable key-value contract used for session
// and evaluation history. Values are arbitrary JSON blobs keyed by string;
// the store itself guarantees no read-modify-write atomicity, so callers
// serialize their own updates.
package storage

import "context"

// Store is the persistence contract. Get returns (nil, nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PersistenceError wraps a store failure. Persistence problems are retried
// once and then surfaced as warnings; they never invalidate in-memory state.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return "storage " + e.Op + " failed for key " + e.Key + ": " + e.Err.Error()
	}
	return "storage " + e.Op + " failed for key " + e.Key
}

func (e *PersistenceError) Unwrap() error { return e.Err }
