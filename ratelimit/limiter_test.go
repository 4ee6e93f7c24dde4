package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumitcodes/portfolio-backend/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(clock *fakeClock) (*Limiter, *MemoryStore) {
	store := NewMemoryStore(WithClock(clock.Now))
	limits := map[string]config.RateLimit{
		config.RouteContact: {Window: time.Minute, MaxRequests: 5},
		config.RouteDefault: {Window: time.Minute, MaxRequests: 100},
	}
	return NewLimiter(store, limits), store
}

func TestLimiterRejectsSixthRequest(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter, _ := newTestLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		info := limiter.Allow(ctx, "1.2.3.4", config.RouteContact)
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 5-(i+1), info.Remaining)
		clock.Advance(time.Second)
	}

	info := limiter.Allow(ctx, "1.2.3.4", config.RouteContact)
	assert.False(t, info.Allowed)
	assert.Equal(t, 5, info.Limit)
	assert.Greater(t, info.RetryAfter, 0)
	assert.LessOrEqual(t, info.RetryAfter, 60)
	assert.Equal(t, 55, info.RetryAfter)

	clock.Advance(time.Minute)
	info = limiter.Allow(ctx, "1.2.3.4", config.RouteContact)
	assert.True(t, info.Allowed)
	assert.Equal(t, 4, info.Remaining)
}

func TestLimiterKeysByClientAndCategory(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter, store := newTestLimiter(clock)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.Allow(ctx, "a", config.RouteContact)
	}
	assert.False(t, limiter.Allow(ctx, "a", config.RouteContact).Allowed)
	assert.True(t, limiter.Allow(ctx, "b", config.RouteContact).Allowed)
	assert.True(t, limiter.Allow(ctx, "a", config.RouteStats).Allowed)
	assert.Equal(t, 3, store.Len())
}

func TestLimiterConcurrentHits(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	limiter, _ := newTestLimiter(clock)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(context.Background(), "burst", config.RouteContact).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, allowed)
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestLimiterFailsOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, nil)
	assert.True(t, limiter.Allow(context.Background(), "x", config.RouteContact).Allowed)
}

func TestMemoryStoreSweep(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	store := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	_, _, _ = store.Hit(ctx, "short", time.Second)
	_, _, _ = store.Hit(ctx, "long", time.Hour)
	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestSweeperRejectsBadSpec(t *testing.T) {
	s := NewSweeper(NewMemoryStore(), "not a schedule")
	assert.Error(t, s.Start())
}

func TestClientAddress(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "9.9.9.9", "X-Forwarded-For": "1.1.1.1"}, "9.9.9.9"},
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "1.1.1.1, 10.0.0.1"}, "1.1.1.1"},
		{"no headers", nil, UnknownClient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/stats", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientAddress(r))
		})
	}
}
