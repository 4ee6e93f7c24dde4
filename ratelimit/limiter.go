// Package ratelimit implements the fixed-window request limiter applied per
// client address and route category.
package ratelimit

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
)

// Store counts hits in fixed windows. Hit increments the counter for key,
// starting a new window of the given length when none is open, and returns the
// updated count with the time left in the window.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// Info describes the outcome of one Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int
}

type Limiter struct {
	store  Store
	limits map[string]config.RateLimit
	logger zerolog.Logger
}

// NewLimiter uses config.RateLimits when limits is nil.
func NewLimiter(store Store, limits map[string]config.RateLimit) *Limiter {
	if limits == nil {
		limits = config.RateLimits
	}
	return &Limiter{
		store:  store,
		limits: limits,
		logger: log.With().Str("component", "ratelimit").Logger(),
	}
}

func (l *Limiter) limitFor(category string) config.RateLimit {
	if rl, ok := l.limits[category]; ok {
		return rl
	}
	if rl, ok := l.limits[config.RouteDefault]; ok {
		return rl
	}
	return config.RateLimitFor(category)
}

// Allow records a request from clientID against category. Store failures let
// the request through.
func (l *Limiter) Allow(ctx context.Context, clientID, category string) Info {
	rl := l.limitFor(category)
	key := clientID + ":" + category

	count, ttl, err := l.store.Hit(ctx, key, rl.Window)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return Info{Allowed: true, Limit: rl.MaxRequests, Remaining: rl.MaxRequests}
	}

	info := Info{Limit: rl.MaxRequests, Remaining: max(rl.MaxRequests-int(count), 0)}
	if count <= int64(rl.MaxRequests) {
		info.Allowed = true
		return info
	}

	info.RetryAfter = retryAfterSeconds(ttl)
	return info
}

func retryAfterSeconds(ttl time.Duration) int {
	secs := int(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
