package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/challenge"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/metrics"
)

// ChallengeResult is the verdict for one submission.
type ChallengeResult struct {
	Correct bool `json:"correct"`
	Count   int  `json:"challenge_count"`
}

// ChallengeService grades answers and tracks per-session progress
type ChallengeService struct {
	sessions *SessionService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(sessions *SessionService, m *metrics.Metrics, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		sessions: sessions,
		metrics:  m,
		logger:   logger.Named("challenge-service"),
	}
}

// Submit grades s. A correct answer with a session id increments that
// session's counter; repeated correct answers each count.
func (c *ChallengeService) Submit(ctx context.Context, sessionID string, s challenge.Submission) ChallengeResult {
	correct := challenge.Grade(s)
	typ := strings.TrimSpace(s.Type)
	c.metrics.Submission(typ, challenge.Known(typ), correct)

	if sessionID == "" {
		return ChallengeResult{Correct: correct}
	}

	if !correct {
		return ChallengeResult{Correct: false, Count: c.sessions.Count(ctx, sessionID)}
	}

	count := c.sessions.Increment(ctx, sessionID)
	c.logger.Debug("Challenge solved",
		zap.String("session_id", sessionID),
		zap.String("type", typ),
		zap.Int("challenge_count", count),
	)
	return ChallengeResult{Correct: true, Count: count}
}
