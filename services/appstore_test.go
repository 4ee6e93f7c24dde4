package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
)

const lookupBody = `{
  "resultCount": 1,
  "results": [{
    "trackId": 1234567890,
    "trackName": "Pocket Notes",
    "description": "Notes in your pocket",
    "artworkUrl100": "https://example.com/icon.png",
    "screenshotUrls": ["https://example.com/1.png"],
    "trackViewUrl": "https://apps.apple.com/app/id1234567890",
    "version": "2.1.0",
    "averageUserRating": 4.5,
    "userRatingCount": 120,
    "price": 0,
    "currency": "USD",
    "artistName": "Sumit",
    "primaryGenreName": "Productivity",
    "releaseDate": "2022-05-01T07:00:00Z",
    "fileSizeBytes": "52428800"
  }]
}`

type countingObserver struct {
	hits, misses atomic.Int32
}

func (o *countingObserver) CacheHit(string)  { o.hits.Add(1) }
func (o *countingObserver) CacheMiss(string) { o.misses.Add(1) }

func newLookupServer(t *testing.T, status int, body string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAppStore(url string, cacheMB int, opts ...AppStoreOption) *AppStoreService {
	return NewAppStoreService(config.AppStoreConfig{
		LookupURL: url,
		Country:   "us",
		Timeout:   2 * time.Second,
		CacheMB:   cacheMB,
		CacheTTL:  time.Minute,
	}, opts...)
}

func TestGetAppStoreApp(t *testing.T) {
	var calls atomic.Int32
	srv := newLookupServer(t, http.StatusOK, lookupBody, &calls)
	observer := &countingObserver{}
	svc := newTestAppStore(srv.URL, 1, WithCacheObserver(observer))

	app, err := svc.GetAppStoreApp(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", app.ID)
	assert.Equal(t, "Pocket Notes", app.Name)
	assert.Equal(t, "https://example.com/icon.png", app.Icon)
	assert.Equal(t, 4.5, app.Rating)
	assert.EqualValues(t, 120, app.RatingCount)
	assert.EqualValues(t, 52428800, app.Size)
	assert.Equal(t, "Sumit", app.Developer)
	assert.Equal(t, "Productivity", app.Category)

	again, err := svc.GetAppStoreApp(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.Equal(t, app, again)
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualValues(t, 1, observer.hits.Load())
	assert.EqualValues(t, 1, observer.misses.Load())
}

func TestGetAppStoreAppToleratesMissingFields(t *testing.T) {
	var calls atomic.Int32
	srv := newLookupServer(t, http.StatusOK, `{"resultCount":1,"results":[{"trackId":7}]}`, &calls)

	app, err := newTestAppStore(srv.URL, 0).GetAppStoreApp(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", app.ID)
	assert.NotNil(t, app.Screenshots)
	assert.Empty(t, app.Screenshots)
}

func TestGetAppStoreAppUpstreamFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"non success status", http.StatusServiceUnavailable, `{}`},
		{"empty results", http.StatusOK, `{"resultCount":0,"results":[]}`},
		{"garbage body", http.StatusOK, `<html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newLookupServer(t, tc.status, tc.body, &calls)

			_, err := newTestAppStore(srv.URL, 0).GetAppStoreApp(context.Background(), "1")
			require.Error(t, err)
			assert.True(t, errs.IsUpstream(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			assert.Equal(t, "Failed to fetch App Store data", apiErr.Title)
		})
	}
}

func TestGetPlayStoreAppIsGone(t *testing.T) {
	svc := newTestAppStore("http://unused.invalid", 0)
	for _, id := range []string{"123", "com.example.app", ""} {
		_, err := svc.GetPlayStoreApp(context.Background(), id)
		require.Error(t, err)
		assert.True(t, errs.IsWithdrawn(err))
		assert.Equal(t, http.StatusGone, errs.StatusCode(err))
	}
}
