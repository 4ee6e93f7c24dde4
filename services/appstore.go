package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
	"golang.org/x/sync/singleflight"
)

const lookupUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const appStoreFailure = "Failed to fetch App Store data"

// CacheObserver is told about every cache lookup.
type CacheObserver interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)  {}
func (nopObserver) CacheMiss(string) {}

type AppStoreService struct {
	client    *http.Client
	lookupURL string
	country   string
	timeout   time.Duration
	cache     LookupCache
	observer  CacheObserver
	group     singleflight.Group
	logger    zerolog.Logger
}

type AppStoreOption func(*AppStoreService)

func WithHTTPClient(client *http.Client) AppStoreOption {
	return func(s *AppStoreService) {
		s.client = client
	}
}

func WithCacheObserver(observer CacheObserver) AppStoreOption {
	return func(s *AppStoreService) {
		s.observer = observer
	}
}

func NewAppStoreService(cfg config.AppStoreConfig, opts ...AppStoreOption) *AppStoreService {
	s := &AppStoreService{
		client:    &http.Client{},
		lookupURL: cfg.LookupURL,
		country:   cfg.Country,
		timeout:   cfg.Timeout,
		cache:     NewLookupCache(cfg.CacheMB, cfg.CacheTTL),
		observer:  nopObserver{},
		logger:    log.With().Str("service", "appStore").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAppStoreApp looks up an iOS app by its numeric store id. Concurrent
// lookups of the same id share one upstream request.
func (s *AppStoreService) GetAppStoreApp(ctx context.Context, id string) (*models.AppStoreApp, error) {
	if cached, ok := s.cache.Get(id); ok {
		var app models.AppStoreApp
		if err := json.Unmarshal(cached, &app); err == nil {
			s.observer.CacheHit("appStore")
			return &app, nil
		}
	}
	s.observer.CacheMiss("appStore")

	v, err, _ := s.group.Do(id, func() (interface{}, error) {
		return s.lookup(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("error fetching App Store data")
		return nil, errs.NewUpstreamError(appStoreFailure, appStoreFailure, err)
	}

	app := *v.(*models.AppStoreApp)
	return &app, nil
}

// GetPlayStoreApp is withdrawn. It always fails with a gone error.
func (s *AppStoreService) GetPlayStoreApp(context.Context, string) (*models.AppStoreApp, error) {
	return nil, errs.NewGoneError(
		"Play Store scraping is deprecated",
		"This endpoint is deprecated due to unreliable web scraping. Use the frontend implementation instead.",
	)
}

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	TrackID           flexInt  `json:"trackId"`
	TrackName         string   `json:"trackName"`
	Description       string   `json:"description"`
	ArtworkURL100     string   `json:"artworkUrl100"`
	ScreenshotURLs    []string `json:"screenshotUrls"`
	TrackViewURL      string   `json:"trackViewUrl"`
	Version           string   `json:"version"`
	AverageUserRating float64  `json:"averageUserRating"`
	UserRatingCount   flexInt  `json:"userRatingCount"`
	Price             float64  `json:"price"`
	Currency          string   `json:"currency"`
	ArtistName        string   `json:"artistName"`
	PrimaryGenreName  string   `json:"primaryGenreName"`
	ReleaseDate       string   `json:"releaseDate"`
	FileSizeBytes     flexInt  `json:"fileSizeBytes"`
}

func (s *AppStoreService) lookup(ctx context.Context, id string) (*models.AppStoreApp, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := url.Parse(s.lookupURL)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup url: %w", err)
	}
	q := u.Query()
	q.Set("id", id)
	q.Set("country", s.country)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating lookup request: %w", err)
	}
	req.Header.Set("User-Agent", lookupUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", errs.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: iTunes API error: %d", errs.ErrUpstream, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding lookup response: %v", errs.ErrUpstream, err)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: app %s not found", errs.ErrUpstreamNotFound, id)
	}

	r := body.Results[0]
	screenshots := r.ScreenshotURLs
	if screenshots == nil {
		screenshots = []string{}
	}
	app := &models.AppStoreApp{
		ID:          strconv.FormatInt(int64(r.TrackID), 10),
		Name:        r.TrackName,
		Description: r.Description,
		Icon:        r.ArtworkURL100,
		Screenshots: screenshots,
		AppStoreURL: r.TrackViewURL,
		Version:     r.Version,
		Rating:      r.AverageUserRating,
		RatingCount: int64(r.UserRatingCount),
		Price:       r.Price,
		Currency:    r.Currency,
		Developer:   r.ArtistName,
		Category:    r.PrimaryGenreName,
		ReleaseDate: r.ReleaseDate,
		Size:        int64(r.FileSizeBytes),
	}

	if encoded, err := json.Marshal(app); err == nil {
		s.cache.Set(id, encoded)
	}
	return app, nil
}

// flexInt accepts both JSON numbers and numeric strings; iTunes sends
// fileSizeBytes as a string.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("flexInt: %w", err)
	}
	*f = flexInt(n)
	return nil
}
