package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "inventory"

// RedisStore keeps sessions in Redis as JSON values with a TTL, so they
// survive restarts and are shared across processes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds the store and verifies connectivity.
func NewRedisStore(ctx context.Context, client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(token string) string {
	return keyNamespace + ":session:" + token
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.Token), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}

func (r *RedisStore) SetError(ctx context.Context, token, msg string) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	if s == nil {
		s = &Session{Token: token}
	}
	s.Error = msg
	return r.Save(ctx, s)
}

func (r *RedisStore) PopError(ctx context.Context, token string) (string, error) {
	s, err := r.Get(ctx, token)
	if err != nil || s == nil || s.Error == "" {
		return "", err
	}
	msg := s.Error
	s.Error = ""
	if err := r.Save(ctx, s); err != nil {
		return "", err
	}
	return msg, nil
}
