package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	authKeyPrefix      = "auth:"
	challengeKeyPrefix = "challenge:"
	authenticatedValue = "true"
)

// RedisStore stores sessions in Redis. Every write refreshes the key's TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig configures a Redis session store.
type RedisConfig struct {
	Address     string
	Password    string
	DB          int
	KeyPrefix   string
	TTL         time.Duration
	DialTimeout time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg *RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   -1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       ttl,
		logger:    logger.Named("redis_store"),
	}, nil
}

func (r *RedisStore) authKey(sessionID string) string {
	return r.keyPrefix + authKeyPrefix + sessionID
}

func (r *RedisStore) challengeKey(sessionID string) string {
	return r.keyPrefix + challengeKeyPrefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context) (string, error) {
	id := NewID()
	if err := r.client.Set(ctx, r.challengeKey(id), "0", r.ttl).Err(); err != nil {
		return "", err
	}
	r.logger.Debug("Created session", zap.String("session_id", id))
	return id, nil
}

func (r *RedisStore) SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error {
	if !authenticated {
		return r.client.Del(ctx, r.authKey(sessionID)).Err()
	}
	return r.client.Set(ctx, r.authKey(sessionID), authenticatedValue, r.ttl).Err()
}

func (r *RedisStore) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	val, err := r.client.Get(ctx, r.authKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == authenticatedValue, nil
}

func (r *RedisStore) Count(ctx context.Context, sessionID string) (int, error) {
	val, err := r.client.Get(ctx, r.challengeKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt challenge count %q: %w", val, err)
	}
	return count, nil
}

func (r *RedisStore) IncrementCount(ctx context.Context, sessionID string) (int, error) {
	key := r.challengeKey(sessionID)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (r *RedisStore) SetCount(ctx context.Context, sessionID string, count int) error {
	if count < 0 {
		return ErrNegativeCount
	}
	return r.client.Set(ctx, r.challengeKey(sessionID), strconv.Itoa(count), r.ttl).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
