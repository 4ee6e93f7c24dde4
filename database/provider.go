package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// recheckAfter bounds how long a pooled client is trusted without a ping.
const recheckAfter = 30 * time.Second

// closeTimeout bounds the disconnect of a client that stopped answering.
const closeTimeout = 5 * time.Second

// Provider owns the process-wide MongoDB client. Connect establishes it,
// Acquire hands out the configured database for one request and Disconnect
// closes the pool on shutdown.
type Provider struct {
	cfg    config.MongoConfig
	logger zerolog.Logger
	dial   func(ctx context.Context) (*mongo.Client, error)

	// reconnects are shared between concurrent callers and run outside mu
	group singleflight.Group

	mu        sync.Mutex
	client    *mongo.Client
	checkedAt time.Time
}

func NewProvider(cfg config.MongoConfig) *Provider {
	p := &Provider{
		cfg:    cfg,
		logger: log.With().Str("component", "mongo").Logger(),
	}
	p.dial = p.connect
	return p
}

// Connect dials the cluster if there is no live client yet.
func (p *Provider) Connect(ctx context.Context) error {
	_, err := p.liveClient(ctx, true)
	return err
}

// Acquire returns a database handle backed by the shared pool, reconnecting
// when the previous client stopped answering pings.
func (p *Provider) Acquire(ctx context.Context) (*mongo.Database, error) {
	client, err := p.liveClient(ctx, false)
	if err != nil {
		return nil, err
	}
	return client.Database(p.cfg.Database), nil
}

// Release is a no-op; handles share the pooled client.
func (p *Provider) Release(*mongo.Database) {}

// Ping probes the current client without reconnecting.
func (p *Provider) Ping(ctx context.Context) error {
	client, _ := p.current()
	if client == nil {
		return fmt.Errorf("%w: client not initialised", errs.ErrDatabaseConnection)
	}
	if err := p.ping(ctx, client); err != nil {
		return err
	}
	p.markChecked(client)
	return nil
}

func (p *Provider) IsConnected(ctx context.Context) bool {
	return p.Ping(ctx) == nil
}

func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	client := p.client
	p.client = nil
	p.checkedAt = time.Time{}
	p.mu.Unlock()

	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongo: %w", err)
	}
	p.logger.Info().Msg("disconnected from MongoDB")
	return nil
}

func (p *Provider) current() (*mongo.Client, time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client, p.checkedAt
}

func (p *Provider) markChecked(client *mongo.Client) {
	p.mu.Lock()
	if p.client == client {
		p.checkedAt = time.Now()
	}
	p.mu.Unlock()
}

// liveClient returns the pooled client, pinging it first when verify is set or
// the last check is older than recheckAfter. A caller whose context ends while
// a shared reconnect is in flight returns without waiting for it.
func (p *Provider) liveClient(ctx context.Context, verify bool) (*mongo.Client, error) {
	client, checkedAt := p.current()
	if client != nil && !verify && time.Since(checkedAt) <= recheckAfter {
		return client, nil
	}

	ch := p.group.DoChan("client", func() (interface{}, error) {
		return p.refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mongo.Client), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: waiting for connection: %v", errs.ErrDatabaseConnection, ctx.Err())
	}
}

// refresh pings the pooled client and replaces it when the ping fails.
func (p *Provider) refresh(ctx context.Context) (*mongo.Client, error) {
	if client, _ := p.current(); client != nil {
		if err := p.ping(ctx, client); err == nil {
			p.markChecked(client)
			return client, nil
		}
		p.logger.Warn().Msg("pooled client failed ping, reconnecting")
		p.drop(client)
	}

	client, err := p.dial(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.client = client
	p.checkedAt = time.Now()
	p.mu.Unlock()
	return client, nil
}

// drop forgets a dead client and closes it in the background.
func (p *Provider) drop(client *mongo.Client) {
	p.mu.Lock()
	if p.client == client {
		p.client = nil
	}
	p.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()
}

func (p *Provider) connect(ctx context.Context) (*mongo.Client, error) {
	if p.cfg.URI == "" {
		return nil, fmt.Errorf("%w: %w: MONGODB_URI is not set", errs.ErrDatabaseConnection, errs.ErrConfigMissing)
	}

	uri := p.cfg.URI
	if p.cfg.Direct {
		uri = directURI(uri)
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(p.cfg.ConnectTimeout).
		SetConnectTimeout(p.cfg.ConnectTimeout).
		SetMaxPoolSize(p.cfg.MaxPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDatabaseConnection, err)
	}
	if err := p.ping(ctx, client); err != nil {
		closeCtx, cancelClose := context.WithTimeout(context.Background(), closeTimeout)
		defer cancelClose()
		_ = client.Disconnect(closeCtx)
		return nil, err
	}

	p.logger.Info().Str("database", p.cfg.Database).Bool("direct", p.cfg.Direct).Msg("connected to MongoDB")
	return client, nil
}

func (p *Provider) ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, p.cfg.PingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: ping timed out: %v", errs.ErrDatabaseConnection, err)
		}
		return fmt.Errorf("%w: %v", errs.ErrDatabaseConnection, err)
	}
	return nil
}

// directURI rewrites a mongodb+srv URI into a single-host mongodb URI so local
// runs skip the SRV and TXT lookups. Any other URI is returned unchanged.
func directURI(raw string) string {
	if !strings.HasPrefix(raw, "mongodb+srv://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = "mongodb"
	if u.Port() == "" {
		u.Host += ":27017"
	}
	q := u.Query()
	q.Set("directConnection", "true")
	if q.Get("tls") == "" && q.Get("ssl") == "" {
		q.Set("tls", "true")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
