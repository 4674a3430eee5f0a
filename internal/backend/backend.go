// Package backend selects the session store implementation at startup.
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/config"
)

// Type defines the type of session backend
type Type string

const (
	// TypeMemory keeps sessions in process memory (no expiry)
	TypeMemory Type = config.StoreTypeMemory
	// TypeRedis keeps sessions in Redis with a TTL
	TypeRedis Type = config.StoreTypeRedis
)

// Backend is the selected session store together with the type actually in use.
type Backend struct {
	session.Store
	Type Type
	// Degraded is set when a redis store was requested but memory is in use.
	Degraded bool
}

// New creates a session backend from configuration. An unreachable redis
// falls back to memory with a warning rather than failing startup.
func New(ctx context.Context, cfg *config.SessionStoreConfig, logger *zap.Logger) (*Backend, error) {
	storeType := Type(cfg.Type)

	switch storeType {
	case TypeMemory, "":
		return &Backend{Store: session.NewMemoryStore(logger), Type: TypeMemory}, nil

	case TypeRedis:
		store, err := session.NewRedisStore(ctx, &session.RedisConfig{
			Address:     cfg.Redis.Address(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			KeyPrefix:   cfg.Redis.KeyPrefix,
			TTL:         cfg.TTL(),
			DialTimeout: time.Duration(cfg.Redis.DialTimeoutSeconds) * time.Second,
		}, logger)
		if err != nil {
			logger.Warn("Redis session store unavailable, falling back to in-memory sessions",
				zap.String("address", cfg.Redis.Address()),
				zap.Error(err),
			)
			return &Backend{Store: session.NewMemoryStore(logger), Type: TypeMemory, Degraded: true}, nil
		}
		return &Backend{Store: store, Type: TypeRedis}, nil

	default:
		return nil, fmt.Errorf("unsupported session store type: %s", storeType)
	}
}
