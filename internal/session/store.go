// Package session tracks visitor sessions: an authenticated flag and a
// challenge counter per session id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL bounds session lifetime in backends that support expiry.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidID is returned when a session id is not a UUID.
	ErrInvalidID = errors.New("invalid session id")
	// ErrNegativeCount is returned by SetCount for counts below zero.
	ErrNegativeCount = errors.New("challenge count must not be negative")
)

// Store provides session state storage.
// Implementations must be safe for concurrent use. Unknown session ids read as
// not authenticated with a zero count.
type Store interface {
	// Create mints a new session id with its counter set to zero.
	Create(ctx context.Context) (string, error)

	// SetAuthenticated sets the authenticated flag for a session.
	SetAuthenticated(ctx context.Context, sessionID string, authenticated bool) error

	// IsAuthenticated reports the authenticated flag for a session.
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)

	// Count returns the challenge counter for a session.
	Count(ctx context.Context, sessionID string) (int, error)

	// IncrementCount atomically adds one to the counter and returns the new value.
	IncrementCount(ctx context.Context, sessionID string) (int, error)

	// SetCount overwrites the challenge counter.
	SetCount(ctx context.Context, sessionID string, count int) error

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ParseID validates a client-supplied session id and returns its canonical form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}
