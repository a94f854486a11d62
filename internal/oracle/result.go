// Package oracle wraps text-generation calls with the timeout and defensive
// parsing every call site needs. The oracle is advisory only: a failed or
// malformed call yields the caller's static fallback, never an error on the
// session path.
package oracle

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"prepmate/interview/internal/llm"
)

// Result is the outcome of one oracle call: either parsed output or the
// caller's fallback value.
type Result[T any] struct {
	value    T
	fallback bool
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fallback[T any](value T) Result[T] {
	return Result[T]{value: value, fallback: true}
}

func (r Result[T]) Value() T { return r.value }

// IsFallback reports whether the oracle output was unusable and the static
// fallback was substituted.
func (r Result[T]) IsFallback() bool { return r.fallback }

// Call runs provider.Analyze bounded by timeout and parses the response as
// JSON into T. Any failure along the way returns Fallback(fallback).
func Call[T any](ctx context.Context, provider llm.Provider, prompt string, timeout time.Duration, fallback T) Result[T] {
	if provider == nil {
		return Fallback(fallback)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := provider.Analyze(callCtx, prompt)
	if err != nil {
		return Fallback(fallback)
	}

	var parsed T
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return Fallback(fallback)
	}

	return Ok(parsed)
}

// StripFences removes a surrounding markdown code fence, which models emit
// even when asked for bare JSON.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
