package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript increments the counter and opens the window on the first
// hit. It returns {count, pttl}.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { count, ttl }
`)

// RedisStore shares windows between instances through Redis.
type RedisStore struct {
	rdb    redis.Scripter
	prefix string
}

func NewRedisStore(rdb redis.Scripter, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, length time.Duration) (int64, time.Duration, error) {
	vals, err := fixedWindowScript.Run(ctx, s.rdb, []string{s.prefix + ":" + key}, length.Milliseconds()).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit script: %w", err)
	}

	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit script result %#v", vals)
	}
	return asInt64(arr[0]), time.Duration(asInt64(arr[1])) * time.Millisecond, nil
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
