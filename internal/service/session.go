package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/metrics"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
)

// SessionService applies the fail-closed policy on top of a session.Store:
// read failures become "not authenticated" and "count 0".
type SessionService struct {
	store   session.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(store session.Store, m *metrics.Metrics, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:   store,
		metrics: m,
		logger:  logger.Named("session-service"),
	}
}

func (s *SessionService) degrade(op, sessionID string, err error) {
	s.metrics.StoreError(op)
	s.logger.Warn("Session store operation failed",
		zap.String("operation", op),
		zap.String("session_id", sessionID),
		zap.Error(err),
	)
}

// Create mints a session. If the store cannot record it, a fresh id is still
// returned; it reads as a zero-count unauthenticated session.
func (s *SessionService) Create(ctx context.Context) string {
	id, err := s.store.Create(ctx)
	if err != nil {
		id = session.NewID()
		s.degrade("create", id, err)
	}
	return id
}

// IsAuthenticated reports the flag, false on any store error.
func (s *SessionService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	ok, err := s.store.IsAuthenticated(ctx, sessionID)
	if err != nil {
		s.degrade("is_authenticated", sessionID, err)
		return false
	}
	return ok
}

// Count returns the counter, 0 on any store error.
func (s *SessionService) Count(ctx context.Context, sessionID string) int {
	n, err := s.store.Count(ctx, sessionID)
	if err != nil {
		s.degrade("count", sessionID, err)
		return 0
	}
	return n
}

// Increment adds one to the counter and returns the new value, 0 on any store error.
func (s *SessionService) Increment(ctx context.Context, sessionID string) int {
	n, err := s.store.IncrementCount(ctx, sessionID)
	if err != nil {
		s.degrade("increment_count", sessionID, err)
		return 0
	}
	return n
}

// SetAuthenticated sets the flag. The error is logged and returned so callers
// that must report write failures can do so.
func (s *SessionService) SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error {
	if err := s.store.SetAuthenticated(ctx, sessionID, authenticated); err != nil {
		s.degrade("set_authenticated", sessionID, err)
		return err
	}
	return nil
}

// SetCount overwrites the counter.
func (s *SessionService) SetCount(ctx context.Context, sessionID string, count int) error {
	if err := s.store.SetCount(ctx, sessionID, count); err != nil {
		s.degrade("set_count", sessionID, err)
		return err
	}
	return nil
}

// Reset clears both the flag and the counter.
func (s *SessionService) Reset(ctx context.Context, sessionID string) error {
	if err := s.SetAuthenticated(ctx, sessionID, false); err != nil {
		return err
	}
	return s.SetCount(ctx, sessionID, 0)
}

// Ping checks the underlying store.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
