package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps cookie sessions in Redis with a fixed TTL
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store backed by client
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Create starts a session for userID and returns its opaque ID
func (s *RedisSessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+sessionID, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return sessionID, nil
}

// Lookup returns the user owning sessionID
func (s *RedisSessionStore) Lookup(ctx context.Context, sessionID string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	return userID, nil
}

// Delete ends a session. Deleting an unknown session is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}
