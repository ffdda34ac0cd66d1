package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tessera/internal/application/identity/usecases"
	"tessera/internal/shared/logger"
)

const signupKeyPrefix = "signup:session:"

// RedisSignupSessionStore keeps pending signups in Redis under a TTL. Expiry
// is handled entirely by Redis; there is no sweep job for abandoned signups.
type RedisSignupSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisSignupSessionStore(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisSignupSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSignupSessionStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisSignupSessionStore) key(token string) string {
	return signupKeyPrefix + token
}

func (s *RedisSignupSessionStore) Put(ctx context.Context, session *usecases.SignupSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal signup session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.Token), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store signup session: %w", err)
	}
	return nil
}

func (s *RedisSignupSessionStore) Get(ctx context.Context, token string) (*usecases.SignupSession, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load signup session: %w", err)
	}

	var session usecases.SignupSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signup session: %w", err)
	}
	return &session, nil
}

func (s *RedisSignupSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete signup session: %w", err)
	}
	return nil
}
