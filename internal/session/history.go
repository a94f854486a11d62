package session

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"prepmate/interview/internal/models"
)

// persistence keys; each holds one JSON array
const (
	sessionHistoryKey    = "interview:sessions"
	evaluationHistoryKey = "interview:evaluations"
)

// persistFinished appends the terminal session and its evaluation to the
// persisted history lists. Failures are warnings: in-memory state stays
// authoritative.
func (m *Manager) persistFinished(ctx context.Context, s *models.Session, eval *models.SessionEvaluation) {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()

	if err := m.appendSessionLocked(ctx, s); err != nil {
		m.logger.Warn("failed to persist session history", zap.String("session_id", s.ID), zap.Error(err))
	}
	if err := m.appendEvaluationLocked(ctx, eval); err != nil {
		m.logger.Warn("failed to persist evaluation history", zap.String("session_id", s.ID), zap.Error(err))
	}
}

// appendSessionLocked is idempotent: re-persisting an already-stored session
// replaces its entry rather than appending a duplicate. The list is kept
// newest-first and capped; the oldest entries by creation time are evicted.
func (m *Manager) appendSessionLocked(ctx context.Context, s *models.Session) error {
	sessions, err := m.loadSessionHistoryLocked(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == s.ID {
			sessions[i] = *cloneSession(s)
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, *cloneSession(s))
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	if len(sessions) > m.opts.HistoryLimit {
		sessions = sessions[:m.opts.HistoryLimit]
	}

	return m.saveJSON(ctx, sessionHistoryKey, sessions)
}

func (m *Manager) appendEvaluationLocked(ctx context.Context, eval *models.SessionEvaluation) error {
	data, err := m.getWithRetry(ctx, evaluationHistoryKey)
	if err != nil {
		return err
	}

	var evaluations []models.SessionEvaluation
	if data != nil {
		if err := json.Unmarshal(data, &evaluations); err != nil {
			m.logger.Warn("corrupt evaluation history, starting fresh", zap.Error(err))
			evaluations = nil
		}
	}

	for i := range evaluations {
		if evaluations[i].SessionID == eval.SessionID {
			evaluations[i] = *eval
			return m.saveJSON(ctx, evaluationHistoryKey, evaluations)
		}
	}

	evaluations = append(evaluations, *eval)
	sort.Slice(evaluations, func(i, j int) bool {
		return evaluations[i].EvaluatedAt.After(evaluations[j].EvaluatedAt)
	})
	if len(evaluations) > m.opts.EvaluationHistoryLimit {
		evaluations = evaluations[:m.opts.EvaluationHistoryLimit]
	}

	return m.saveJSON(ctx, evaluationHistoryKey, evaluations)
}

func (m *Manager) loadSessionHistory(ctx context.Context) ([]models.Session, error) {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()
	return m.loadSessionHistoryLocked(ctx)
}

func (m *Manager) loadSessionHistoryLocked(ctx context.Context) ([]models.Session, error) {
	data, err := m.getWithRetry(ctx, sessionHistoryKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var sessions []models.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		m.logger.Warn("corrupt session history, starting fresh", zap.Error(err))
		return nil, nil
	}
	return sessions, nil
}

// PurgeExpired removes persisted sessions and evaluations older than the
// retention window, then drops terminal sessions from the in-memory map once
// history has a record of them. Returns how many sessions were removed from
// history.
func (m *Manager) PurgeExpired(ctx context.Context) (int, error) {
	removed, known, err := m.purgeHistory(ctx)
	if err != nil {
		return 0, err
	}
	m.evictTerminal(known)
	return removed, nil
}

// purgeHistory returns the removal count plus the set of session ids the
// persisted history knew about before the purge (kept and removed alike).
func (m *Manager) purgeHistory(ctx context.Context) (int, map[string]bool, error) {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -m.opts.RetentionDays)

	sessions, err := m.loadSessionHistoryLocked(ctx)
	if err != nil {
		return 0, nil, err
	}

	known := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		known[s.ID] = true
	}

	kept := sessions[:0]
	removed := 0
	removedIDs := make(map[string]bool)
	for _, s := range sessions {
		if s.CreatedAt.Before(cutoff) {
			removed++
			removedIDs[s.ID] = true
			continue
		}
		kept = append(kept, s)
	}

	if removed == 0 {
		return 0, known, nil
	}

	if err := m.saveJSON(ctx, sessionHistoryKey, kept); err != nil {
		return 0, nil, err
	}

	// drop the matching evaluations as well
	data, err := m.getWithRetry(ctx, evaluationHistoryKey)
	if err == nil && data != nil {
		var evaluations []models.SessionEvaluation
		if json.Unmarshal(data, &evaluations) == nil {
			keptEvals := evaluations[:0]
			for _, ev := range evaluations {
				if !removedIDs[ev.SessionID] {
					keptEvals = append(keptEvals, ev)
				}
			}
			if err := m.saveJSON(ctx, evaluationHistoryKey, keptEvals); err != nil {
				m.logger.Warn("failed to purge evaluation history", zap.Error(err))
			}
		}
	}

	return removed, known, nil
}

// evictTerminal drops terminal sessions from the in-memory map when history
// already has a record of them. GetSession keeps serving evicted sessions
// from history; a terminal session whose persist failed stays in memory.
// Must run without historyMu held: finalize takes historyMu while holding
// the per-session lock.
func (m *Manager) evictTerminal(known map[string]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ms := range m.sessions {
		if !known[id] {
			continue
		}
		ms.mu.Lock()
		terminal := ms.session.Status.IsTerminal()
		ms.mu.Unlock()
		if terminal {
			delete(m.sessions, id)
		}
	}
}

// saveJSON marshals and writes with a single retry on store failure.
func (m *Manager) saveJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, key, data); err != nil {
		return m.store.Set(ctx, key, data)
	}
	return nil
}

func (m *Manager) getWithRetry(ctx context.Context, key string) ([]byte, error) {
	data, err := m.store.Get(ctx, key)
	if err != nil {
		return m.store.Get(ctx, key)
	}
	return data, nil
}
