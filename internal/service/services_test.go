package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/QinCai-rui/The-Forbidden-Sector/internal/challenge"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/content"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/metrics"
	"github.com/QinCai-rui/The-Forbidden-Sector/internal/session"
	"github.com/QinCai-rui/The-Forbidden-Sector/web"
)

var errUnreachable = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// unreachableStore fails every operation, like a redis that went away.
type unreachableStore struct{}

func (unreachableStore) Create(context.Context) (string, error) { return "", errUnreachable }
func (unreachableStore) SetAuthenticated(context.Context, string, bool) error {
	return errUnreachable
}
func (unreachableStore) IsAuthenticated(context.Context, string) (bool, error) {
	return true, errUnreachable
}
func (unreachableStore) Count(context.Context, string) (int, error) { return 7, errUnreachable }
func (unreachableStore) IncrementCount(context.Context, string) (int, error) {
	return 8, errUnreachable
}
func (unreachableStore) SetCount(context.Context, string, int) error { return errUnreachable }
func (unreachableStore) Ping(context.Context) error                  { return errUnreachable }
func (unreachableStore) Close() error                                { return nil }

func TestNewServices(t *testing.T) {
	store := session.NewMemoryStore(zap.NewNop())
	services := NewServices(store, content.NewLoader(web.EmbeddedFS()), metrics.New(), zap.NewNop())

	require.NotNil(t, services)
	assert.NotNil(t, services.Sessions)
	assert.NotNil(t, services.Challenges)
	assert.NotNil(t, services.Content)
	assert.NotNil(t, services.Metrics)
}

func TestSessionService_FailClosed(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewSessionService(unreachableStore{}, metrics.New(), zap.New(core))
	ctx := context.Background()
	id := session.NewID()

	assert.False(t, svc.IsAuthenticated(ctx, id))
	assert.Equal(t, 0, svc.Count(ctx, id))
	assert.Equal(t, 0, svc.Increment(ctx, id))
	assert.Error(t, svc.SetAuthenticated(ctx, id, true))
	assert.Error(t, svc.SetCount(ctx, id, 1))
	assert.Error(t, svc.Reset(ctx, id))
	assert.Error(t, svc.Ping(ctx))

	assert.GreaterOrEqual(t, logs.Len(), 6)
}

func TestSessionService_CreateDegrades(t *testing.T) {
	svc := NewSessionService(unreachableStore{}, nil, zap.NewNop())

	id := svc.Create(context.Background())
	_, err := session.ParseID(id)
	assert.NoError(t, err)
}

func TestSessionService_RoundTrip(t *testing.T) {
	svc := NewSessionService(session.NewMemoryStore(zap.NewNop()), nil, zap.NewNop())
	ctx := context.Background()

	id := svc.Create(ctx)
	assert.False(t, svc.IsAuthenticated(ctx, id))

	require.NoError(t, svc.SetAuthenticated(ctx, id, true))
	assert.True(t, svc.IsAuthenticated(ctx, id))

	assert.Equal(t, 1, svc.Increment(ctx, id))
	require.NoError(t, svc.Reset(ctx, id))
	assert.False(t, svc.IsAuthenticated(ctx, id))
	assert.Equal(t, 0, svc.Count(ctx, id))
}

func newChallengeService(t *testing.T) (*ChallengeService, *SessionService) {
	t.Helper()
	sessions := NewSessionService(session.NewMemoryStore(zap.NewNop()), nil, zap.NewNop())
	return NewChallengeService(sessions, metrics.New(), zap.NewNop()), sessions
}

func TestChallengeService_CorrectIncrements(t *testing.T) {
	svc, sessions := newChallengeService(t)
	ctx := context.Background()
	id := sessions.Create(ctx)

	res := svc.Submit(ctx, id, challenge.Submission{Type: "riddle", Value: "The Web"})
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Count)

	res = svc.Submit(ctx, id, challenge.Submission{Type: "crab", Value: "summerofmaking"})
	assert.True(t, res.Correct)
	assert.Equal(t, 2, res.Count)
}

func TestChallengeService_DuplicateCorrectCountsTwice(t *testing.T) {
	svc, sessions := newChallengeService(t)
	ctx := context.Background()
	id := sessions.Create(ctx)

	first := svc.Submit(ctx, id, challenge.Submission{Type: "username", Value: "github"})
	second := svc.Submit(ctx, id, challenge.Submission{Type: "username", Value: "github"})

	assert.Equal(t, first.Correct, second.Correct)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 2, second.Count)
}

func TestChallengeService_IncorrectKeepsCount(t *testing.T) {
	svc, sessions := newChallengeService(t)
	ctx := context.Background()
	id := sessions.Create(ctx)
	require.NoError(t, sessions.SetCount(ctx, id, 3))

	res := svc.Submit(ctx, id, challenge.Submission{Type: "password", Value: "0000"})
	assert.False(t, res.Correct)
	assert.Equal(t, 3, res.Count)
}

func TestChallengeService_NoSession(t *testing.T) {
	svc, _ := newChallengeService(t)

	res := svc.Submit(context.Background(), "", challenge.Submission{Type: "password", Value: "1550"})
	assert.True(t, res.Correct)
	assert.Equal(t, 0, res.Count)
}

func TestChallengeService_UnknownType(t *testing.T) {
	svc, sessions := newChallengeService(t)
	ctx := context.Background()
	id := sessions.Create(ctx)

	res := svc.Submit(ctx, id, challenge.Submission{Type: "dragon", Value: "github"})
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Count)
}

func TestChallengeService_StoreDown(t *testing.T) {
	sessions := NewSessionService(unreachableStore{}, nil, zap.NewNop())
	svc := NewChallengeService(sessions, nil, zap.NewNop())

	res := svc.Submit(context.Background(), session.NewID(), challenge.Submission{Type: "crab", Value: "summerofmaking"})
	assert.True(t, res.Correct)
	assert.Equal(t, 0, res.Count)
}
