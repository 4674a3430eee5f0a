package service

import (
	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/content"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/metrics"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
)

// Services aggregates all application services
type Services struct {
	Sessions   *SessionService
	Challenges *ChallengeService
	Content    *content.Loader
	Metrics    *metrics.Metrics
}

// NewServices creates a new Services instance
func NewServices(store session.Store, loader *content.Loader, m *metrics.Metrics, logger *zap.Logger) *Services {
	sessions := NewSessionService(store, m, logger)

	return &Services{
		Sessions:   sessions,
		Challenges: NewChallengeService(sessions, m, logger),
		Content:    loader,
		Metrics:    m,
	}
}
