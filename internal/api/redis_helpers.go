package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginCounter is the slice of the redis client the login throttle needs.
type loginCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrWithTTL bumps a counter key and, on the first hit, starts its expiry
// window. Expiry failures are ignored: a counter that lives too long only
// throttles harder.
func incrWithTTL(ctx context.Context, client loginCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
