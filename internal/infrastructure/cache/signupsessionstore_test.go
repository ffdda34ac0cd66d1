package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/application/identity/usecases"
	"tessera/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSignupSessionStoreRoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisSignupSessionStore(client, 30*time.Minute, nopLogger{})

	session := &usecases.SignupSession{
		Token:        "tok123",
		Email:        "jo@example.com",
		Name:         "Jo",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(context.Background(), session))

	got, err := store.Get(context.Background(), "tok123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Email, got.Email)
	assert.Equal(t, session.PasswordHash, got.PasswordHash)

	require.NoError(t, store.Delete(context.Background(), "tok123"))
	got, err = store.Get(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSignupSessionStoreMiss(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisSignupSessionStore(client, 30*time.Minute, nopLogger{})

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSignupSessionStoreExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisSignupSessionStore(client, time.Minute, nopLogger{})

	session := &usecases.SignupSession{Token: "tok123", Email: "jo@example.com"}
	require.NoError(t, store.Put(context.Background(), session))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Nil(t, got)
}
