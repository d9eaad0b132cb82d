package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedis parses a redis:// URL into a client. It does not dial.
func NewRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	return redis.NewClient(opts), nil
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindowLimiter counts hits per key in a fixed window and blocks a key
// for a cool-down period once it exceeds the limit.
type FixedWindowLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	block  time.Duration
}

func NewFixedWindowLimiter(
	rdb redis.Cmdable,
	prefix string,
	limit int,
	window time.Duration,
	block time.Duration,
) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		block:  block,
	}
}

// Allow returns an error only when redis is unreachable; callers fail open.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	countKey := l.prefix + ":" + key
	blockKey := countKey + ":blocked"

	ttl, err := l.rdb.TTL(ctx, blockKey).Result()
	if err != nil {
		return Decision{}, err
	}
	if ttl > 0 {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}

	var (
		incr   *redis.IntCmd
		expiry *redis.DurationCmd
	)
	if _, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, countKey)
		expiry = p.TTL(ctx, countKey)
		return nil
	}); err != nil {
		return Decision{}, err
	}
	count := incr.Val()

	// A counter without an expiry would never reset, so any hit that finds
	// one re-arms the window.
	if expiry.Val() < 0 {
		if err := l.rdb.Expire(ctx, countKey, l.window).Err(); err != nil {
			return Decision{}, err
		}
	}

	if count > int64(l.limit) {
		if err := l.rdb.Set(ctx, blockKey, "1", l.block).Err(); err != nil {
			return Decision{}, err
		}
		return Decision{Allowed: false, RetryAfter: l.block}, nil
	}

	return Decision{Allowed: true, Remaining: l.limit - int(count)}, nil
}
