package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(key string) string { return "idem:appointment:" + key }

const pending = 0

func (s *RedisStore) Reserve(ctx context.Context, key string) (uint, error) {
	ok, err := s.rdb.SetNX(ctx, redisKey(key), pending, PendingTTL).Result()
	if err != nil {
		return 0, fmt.Errorf("redis reserve idempotency key: %w", err)
	}
	if ok {
		return 0, nil
	}

	id, err := s.rdb.Get(ctx, redisKey(key)).Uint64()
	switch {
	case errors.Is(err, redis.Nil):
		// The holder released or the reservation expired in between.
		return 0, ErrInProgress
	case err != nil:
		return 0, fmt.Errorf("redis get idempotency key: %w", err)
	case id == pending:
		return 0, ErrInProgress
	}
	return uint(id), nil
}

func (s *RedisStore) Remember(ctx context.Context, key string, appointmentID uint) error {
	if err := s.rdb.Set(ctx, redisKey(key), appointmentID, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set idempotency key: %w", err)
	}
	return nil
}

// releaseScript deletes the key only while it is still pending.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == "0" then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.rdb, []string{redisKey(key)}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis release idempotency key: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
