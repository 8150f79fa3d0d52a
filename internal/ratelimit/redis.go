package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// reserveScript implements an atomic sliding window over a sorted set keyed by
// request timestamp. Expired members are pruned before counting so the window
// slides continuously instead of resetting on a boundary.
var reserveScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call("zremrangebyscore", key, "-inf", window_start)

	local current = redis.call("zcard", key)
	if current < limit then
		redis.call("zadd", key, now, now .. "-" .. math.random())
		redis.call("pexpire", key, window_ms)
		return {1, 0}
	end

	local oldest = redis.call("zrange", key, 0, 0, "WITHSCORES")
	if #oldest > 0 then
		return {0, oldest[2]}
	end
	return {0, 0}
`)

// RedisWindow is a sliding window shared across workers through Redis. All
// workers reserving against the same key draw from one quota.
type RedisWindow struct {
	client redis.UniversalClient
	key    string
	limit  int
	window time.Duration
}

// NewRedisWindow builds a shared window identified by key.
func NewRedisWindow(client redis.UniversalClient, key string, limit int, window time.Duration) *RedisWindow {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisWindow{
		client: client,
		key:    "ratelimit:" + key,
		limit:  limit,
		window: window,
	}
}

func (w *RedisWindow) Reserve(ctx context.Context, now time.Time) (bool, time.Duration, error) {
	result, err := reserveScript.Run(ctx, w.client, []string{w.key},
		now.UnixMilli(),
		now.Add(-w.window).UnixMilli(),
		w.limit,
		w.window.Milliseconds(),
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: reserve %q: %w", w.key, err)
	}
	if len(result) < 2 {
		return false, 0, fmt.Errorf("ratelimit: reserve %q: short reply", w.key)
	}

	allowed, err := scriptInt(result[0])
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: reserve %q: %w", w.key, err)
	}
	if allowed == 1 {
		return true, 0, nil
	}

	oldestMs, err := scriptInt(result[1])
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: reserve %q: %w", w.key, err)
	}
	retryIn := time.Duration(0)
	if oldestMs > 0 {
		retryIn = time.UnixMilli(oldestMs).Add(w.window).Sub(now)
		if retryIn < 0 {
			retryIn = 0
		}
	}
	return false, retryIn, nil
}

// scriptInt coerces Lua reply values, which arrive as int64 or string
// depending on how the script produced them.
func scriptInt(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(n, 64)
			if ferr != nil {
				return 0, err
			}
			return int64(f), nil
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unexpected script reply type %T", v)
	}
}
