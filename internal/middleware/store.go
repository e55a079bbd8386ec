package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keepTTL overwrites a value without touching its expiry.
const keepTTL = redis.KeepTTL

// kvStore is the slice of Redis the response cache and the duplicate guard use.
type kvStore interface {
	get(ctx context.Context, key string) (string, bool, error)
	set(ctx context.Context, key, value string, ttl time.Duration) error
	// setNX stores value only when key is absent and reports whether it did.
	setNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	del(ctx context.Context, keys ...string) (int64, error)
	keys(ctx context.Context, pattern string) ([]string, error)
}

type redisStore struct {
	rdb *redis.Client
}

// newStore returns nil for a nil client so callers can test one value.
func newStore(rdb *redis.Client) kvStore {
	if rdb == nil {
		return nil
	}
	return redisStore{rdb: rdb}
}

func (s redisStore) get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s redisStore) set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s redisStore) setNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (s redisStore) del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

// keys walks SCAN rather than KEYS so a large cache never blocks the server.
func (s redisStore) keys(ctx context.Context, pattern string) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	for {
		batch, next, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return out, err
		}
		out = append(out, batch...)
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}
