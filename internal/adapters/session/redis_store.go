package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"route-finder-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "route-finder:last-map:"

// RedisStore keeps the last result of every session in Redis as JSON.
// Entries expire ttl after the last save; ttl <= 0 keeps them forever.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.RouteResult, bool, error) {
	if sessionID == "" {
		return nil, false, errEmptySessionID
	}

	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var r domain.RouteResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("load session %s: decode: %w", sessionID, err)
	}
	return &r, true, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, result *domain.RouteResult) error {
	if sessionID == "" {
		return errEmptySessionID
	}
	if result == nil {
		return errors.New("save session result: result is nil")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("save session %s: encode: %w", sessionID, err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}
