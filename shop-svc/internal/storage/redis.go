package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	Client *redis.Client
	Prefix string
	// SessionTTL expires checkout sessions; other keys never expire.
	SessionTTL time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{Client: client, Prefix: prefix, SessionTTL: sessionTTL}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	var ttl time.Duration
	if strings.HasPrefix(key, SessionKey("")) {
		ttl = s.SessionTTL
	}
	return s.Client.Set(ctx, s.Prefix+key, value, ttl).Err()
}

