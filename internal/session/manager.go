// Package session owns the practice-session lifecycle: the state machine,
// response recording, the evaluation pipeline on completion, and persisted
// history.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepmate/interview/internal/aggregator"
	"prepmate/interview/internal/evaluator"
	"prepmate/interview/internal/metrics"
	"prepmate/interview/internal/models"
	"prepmate/interview/internal/performance"
	"prepmate/interview/internal/questionbank"
	"prepmate/interview/internal/storage"
)

// SkippedText is recorded as the response text for skipped questions.
const SkippedText = "[SKIPPED]"

// Options holds retention policy knobs. These are policy, not correctness
// invariants; readers must not assume a particular retention window.
type Options struct {
	HistoryLimit           int // persisted sessions kept, newest first
	EvaluationHistoryLimit int // persisted session evaluations kept
	RetentionDays          int // age cutoff for the purge job
}

func DefaultOptions() Options {
	return Options{
		HistoryLimit:           50,
		EvaluationHistoryLimit: 100,
		RetentionDays:          30,
	}
}

// managedSession pairs an active session with its lock. All mutating calls
// on one session id serialize on this lock, which makes the current-question
// check and the index increment atomic.
type managedSession struct {
	mu      sync.Mutex
	session *models.Session
}

type Manager struct {
	bank       *questionbank.Bank
	evaluator  *evaluator.Evaluator
	aggregator *aggregator.Aggregator
	tracker    *performance.Tracker
	store      storage.Store
	logger     *zap.Logger
	opts       Options

	mu       sync.RWMutex
	sessions map[string]*managedSession

	// serializes read-modify-write of the persisted history blobs, since the
	// store itself guarantees no atomicity
	historyMu sync.Mutex
}

func NewManager(
	bank *questionbank.Bank,
	eval *evaluator.Evaluator,
	agg *aggregator.Aggregator,
	tracker *performance.Tracker,
	store storage.Store,
	logger *zap.Logger,
	opts Options,
) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultOptions().HistoryLimit
	}
	if opts.EvaluationHistoryLimit <= 0 {
		opts.EvaluationHistoryLimit = DefaultOptions().EvaluationHistoryLimit
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = DefaultOptions().RetentionDays
	}

	return &Manager{
		bank:       bank,
		evaluator:  eval,
		aggregator: agg,
		tracker:    tracker,
		store:      store,
		logger:     logger,
		opts:       opts,
		sessions:   make(map[string]*managedSession),
	}
}

// CreateSession validates the config, allocates a question sequence, and
// registers the new session in the created state.
func (m *Manager) CreateSession(ctx context.Context, config models.SessionConfig) (*models.Session, error) {
	if config.DurationMinutes <= 0 {
		return nil, &ConfigurationError{Message: "duration must be greater than zero"}
	}

	questions := m.bank.Allocate(config)
	if len(questions) == 0 {
		return nil, &ConfigurationError{Message: "no questions match the requested configuration"}
	}

	s := &models.Session{
		ID:        uuid.New().String(),
		Config:    config,
		Questions: questions,
		Responses: []models.Response{},
		Status:    models.StatusCreated,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = &managedSession{session: s}
	m.mu.Unlock()

	m.logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.Int("questions", len(questions)),
		zap.String("user_id", config.UserID))

	return cloneSession(s), nil
}

// StartSession moves a created session to active and stamps the start time.
func (m *Manager) StartSession(ctx context.Context, id string) (*models.Session, error) {
	return m.withSession(id, func(s *models.Session) error {
		if s.Status != models.StatusCreated {
			return &InvalidStateError{ID: id, Status: s.Status, Operation: "start"}
		}
		now := time.Now().UTC()
		s.StartTime = &now
		s.Status = models.StatusActive
		return nil
	})
}

// PauseSession moves an active session to paused.
func (m *Manager) PauseSession(ctx context.Context, id string) (*models.Session, error) {
	return m.withSession(id, func(s *models.Session) error {
		if s.Status != models.StatusActive {
			return &InvalidStateError{ID: id, Status: s.Status, Operation: "pause"}
		}
		now := time.Now().UTC()
		s.PausedAt = &now
		s.Status = models.StatusPaused
		return nil
	})
}

// ResumeSession moves a paused session back to active and accumulates the
// pause interval so elapsed-time calculations exclude it.
func (m *Manager) ResumeSession(ctx context.Context, id string) (*models.Session, error) {
	return m.withSession(id, func(s *models.Session) error {
		if s.Status != models.StatusPaused {
			return &InvalidStateError{ID: id, Status: s.Status, Operation: "resume"}
		}
		if s.PausedAt != nil {
			s.PausedDurationMs += time.Since(*s.PausedAt).Milliseconds()
			s.PausedAt = nil
		}
		s.Status = models.StatusActive
		return nil
	})
}

// SubmitResponse records an answer for the current question and advances the
// session. Submitting the final answer completes the session and runs the
// evaluation pipeline before returning.
func (m *Manager) SubmitResponse(ctx context.Context, id string, req models.SubmitResponseRequest) (*models.Session, error) {
	return m.withSession(id, func(s *models.Session) error {
		if s.Status != models.StatusActive {
			return &InvalidStateError{ID: id, Status: s.Status, Operation: "submit response to"}
		}

		question := s.CurrentQuestion()
		if question == nil {
			return &OutOfRangeError{ID: id, Index: s.CurrentQuestionIndex}
		}

		s.Responses = append(s.Responses, models.Response{
			QuestionID:         question.ID,
			Text:               req.Text,
			TimeSpentSeconds:   req.TimeSpentSeconds,
			Skipped:            req.Skipped,
			SubmittedAt:        time.Now().UTC(),
			QuestionIndex:      s.CurrentQuestionIndex,
			QuestionType:       question.Type,
			QuestionDifficulty: question.Difficulty,
		})
		s.CurrentQuestionIndex++

		if s.CurrentQuestionIndex >= len(s.Questions) {
			m.finalize(ctx, s, models.StatusCompleted)
		}
		return nil
	})
}

// SkipQuestion records a skipped response for the current question.
func (m *Manager) SkipQuestion(ctx context.Context, id string, timeSpentSeconds int) (*models.Session, error) {
	m.mu.RLock()
	ms, exists := m.sessions[id]
	m.mu.RUnlock()
	if exists {
		ms.mu.Lock()
		allowed := ms.session.Config.AllowSkip
		status := ms.session.Status
		ms.mu.Unlock()
		if !allowed {
			return nil, &InvalidStateError{ID: id, Status: status, Operation: "skip a question in"}
		}
	}

	return m.SubmitResponse(ctx, id, models.SubmitResponseRequest{
		Text:             SkippedText,
		TimeSpentSeconds: timeSpentSeconds,
		Skipped:          true,
	})
}

// CompleteSession force-terminates from any non-terminal state and runs the
// evaluation pipeline over whatever responses exist.
func (m *Manager) CompleteSession(ctx context.Context, id string) (*models.Session, error) {
	return m.terminate(ctx, id, models.StatusCompleted)
}

// AbandonSession is always legal on a non-terminal session; the partial
// response set is still scored for diagnostic purposes.
func (m *Manager) AbandonSession(ctx context.Context, id string) (*models.Session, error) {
	return m.terminate(ctx, id, models.StatusAbandoned)
}

func (m *Manager) terminate(ctx context.Context, id string, status models.SessionStatus) (*models.Session, error) {
	return m.withSession(id, func(s *models.Session) error {
		if s.Status.IsTerminal() {
			return &InvalidStateError{ID: id, Status: s.Status, Operation: "terminate"}
		}
		m.finalize(ctx, s, status)
		return nil
	})
}

// GetSession returns the session by id, consulting active sessions first and
// persisted history second. Returns NotFoundError when neither has it.
func (m *Manager) GetSession(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	ms, exists := m.sessions[id]
	m.mu.RUnlock()

	if exists {
		ms.mu.Lock()
		defer ms.mu.Unlock()
		return cloneSession(ms.session), nil
	}

	persisted, err := m.loadSessionHistory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range persisted {
		if persisted[i].ID == id {
			return cloneSession(&persisted[i]), nil
		}
	}

	return nil, &NotFoundError{ID: id}
}

// HistoryFilter narrows GetHistory results; zero values match everything.
type HistoryFilter struct {
	UserID string
	Status models.SessionStatus
	Limit  int
}

// GetHistory returns persisted sessions, newest first.
func (m *Manager) GetHistory(ctx context.Context, filter HistoryFilter) ([]models.Session, error) {
	persisted, err := m.loadSessionHistory(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Session
	for _, s := range persisted {
		if filter.UserID != "" && s.Config.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// withSession runs fn with the session's lock held and returns a copy of the
// session afterwards. The per-session lock is what makes check-and-increment
// atomic under concurrent submissions.
func (m *Manager) withSession(id string, fn func(*models.Session) error) (*models.Session, error) {
	m.mu.RLock()
	ms, exists := m.sessions[id]
	m.mu.RUnlock()
	if !exists {
		return nil, &NotFoundError{ID: id}
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err := fn(ms.session); err != nil {
		return nil, err
	}
	return cloneSession(ms.session), nil
}

// finalize moves the session to its terminal state and runs evaluation,
// tracking, and persistence. It never fails: evaluation degrades rather than
// aborts, and persistence problems are warnings. Caller holds the session
// lock.
func (m *Manager) finalize(ctx context.Context, s *models.Session, status models.SessionStatus) {
	now := time.Now().UTC()
	if s.PausedAt != nil {
		s.PausedDurationMs += now.Sub(*s.PausedAt).Milliseconds()
		s.PausedAt = nil
	}
	s.EndTime = &now
	s.Status = status

	evaluations := make([]models.Evaluation, 0, len(s.Responses))
	for _, response := range s.Responses {
		question := questionFor(s, response)
		evaluations = append(evaluations, m.evaluator.Evaluate(ctx, question, response))
	}

	sessionEval := m.aggregator.Aggregate(s, evaluations)

	if m.tracker != nil && s.Config.UserID != "" {
		if _, err := m.tracker.Record(ctx, s, sessionEval.OverallScore.Float()); err != nil {
			m.logger.Warn("failed to record performance", zap.String("session_id", s.ID), zap.Error(err))
		}
		history, err := m.tracker.History(ctx, s.Config.UserID)
		if err != nil {
			m.logger.Warn("failed to load performance history", zap.String("session_id", s.ID), zap.Error(err))
		} else {
			sessionEval.PerformanceTracking = performance.Trend(history)
		}
	}

	s.Evaluation = &sessionEval

	m.persistFinished(ctx, s, &sessionEval)
	metrics.RecordSessionFinished(string(status))

	m.logger.Info("session finished",
		zap.String("session_id", s.ID),
		zap.String("status", string(status)),
		zap.Int("responses", len(s.Responses)),
		zap.Float64("overall_score", sessionEval.OverallScore.Float()))
}

// questionFor resolves the question a response answered. A response whose
// index no longer resolves is scored against an empty question rather than
// aborting the pipeline.
func questionFor(s *models.Session, response models.Response) models.Question {
	if response.QuestionIndex >= 0 && response.QuestionIndex < len(s.Questions) {
		return s.Questions[response.QuestionIndex]
	}
	return models.Question{ID: response.QuestionID, Type: response.QuestionType, Difficulty: response.QuestionDifficulty}
}

func cloneSession(s *models.Session) *models.Session {
	out := *s
	out.Questions = append([]models.Question(nil), s.Questions...)
	out.Responses = append([]models.Response(nil), s.Responses...)
	if s.StartTime != nil {
		t := *s.StartTime
		out.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	if s.PausedAt != nil {
		t := *s.PausedAt
		out.PausedAt = &t
	}
	if s.Evaluation != nil {
		ev := *s.Evaluation
		out.Evaluation = &ev
	}
	return &out
}
