package availability

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the set holding reserved values.
const DefaultRedisKey = "formkit:taken"

// RedisOption configures a RedisChecker.
type RedisOption func(*RedisChecker)

// WithKey sets the Redis set that holds reserved values.
func WithKey(key string) RedisOption {
	return func(r *RedisChecker) {
		if key != "" {
			r.key = key
		}
	}
}

// RedisChecker is a Checker backed by a Redis set, shared by every process
// using the same key.
type RedisChecker struct {
	client redis.UniversalClient
	key    string
}

// NewRedisChecker creates a checker using client.
func NewRedisChecker(client redis.UniversalClient, opts ...RedisOption) *RedisChecker {
	r := &RedisChecker{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsTaken reports whether value is a member of the set.
func (r *RedisChecker) IsTaken(ctx context.Context, value string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, Normalize(value)).Result()
	if err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}
	return ok, nil
}

// Reserve adds value to the set.
func (r *RedisChecker) Reserve(ctx context.Context, value string) error {
	if err := r.client.SAdd(ctx, r.key, Normalize(value)).Err(); err != nil {
		return errors.Join(ErrCheckFailed, err)
	}
	return nil
}

// Release removes value from the set.
func (r *RedisChecker) Release(ctx context.Context, value string) error {
	if err := r.client.SRem(ctx, r.key, Normalize(value)).Err(); err != nil {
		return errors.Join(ErrCheckFailed, err)
	}
	return nil
}
