package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sumitcodes/portfolio-backend/api"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/database"
	"github.com/sumitcodes/portfolio-backend/ratelimit"
	"github.com/sumitcodes/portfolio-backend/services"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server (default)",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load(config.New())
	if servePort != "" {
		cfg.Port = servePort
	}
	configureLogging(cfg)
	log.Info().Str("env", cfg.Env).Msg("Initializing app...")

	db := database.New(cfg.Mongo)
	provider := db.Provider()

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout+cfg.Mongo.PingTimeout)
	if err := provider.Connect(connectCtx); err != nil {
		// Health checks and queries reconnect on demand.
		log.Warn().Err(err).Msg("MongoDB unavailable at startup")
	}
	cancel()

	store, closeStore, err := newRateLimitStore(cfg.Limiter)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := api.NewMetrics(cfg.MetricsEnabled)
	experiences := services.NewExperienceService(db.ExperienceRepo())

	server := api.NewServer(cfg, api.Services{
		Health:      provider,
		Experiences: experiences,
		ClosedTests: services.NewClosedTestService(db.ClosedTestRepo()),
		Apps:        services.NewAppStoreService(cfg.AppStore, services.WithCacheObserver(metrics)),
		Contact:     services.NewEmailService(services.NewSMTPMailer(cfg.SMTP), cfg.SMTP),
		Stats:       services.NewStatsService(db.ExperienceRepo()),
		Limiter:     ratelimit.NewLimiter(store, config.RateLimits),
		Metrics:     metrics,
	})

	if n, err := experiences.Count(context.Background()); err == nil {
		log.Info().Int64("experiences", n).Msg("experience collection ready")
	}

	errChannel := make(chan error, 2)
	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	disconnectCtx, cancelDisconnect := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelDisconnect()
	if err := provider.Disconnect(disconnectCtx); err != nil {
		log.Error().Err(err).Msg("error disconnecting from MongoDB")
	}
	return nil
}

// newRateLimitStore builds the configured store. Redis failures at start-up
// fall back to the in-memory store.
func newRateLimitStore(cfg config.LimiterConfig) (ratelimit.Store, func(), error) {
	if cfg.Store == "redis" {
		store, closeFn, err := newRedisStore(cfg)
		if err == nil {
			log.Info().Msg("rate limiting backed by Redis")
			return store, closeFn, nil
		}
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory rate limiting")
	}

	store := ratelimit.NewMemoryStore()
	sweeper := ratelimit.NewSweeper(store, cfg.Sweep)
	if err := sweeper.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting rate limit sweeper: %w", err)
	}
	return store, sweeper.Stop, nil
}

func newRedisStore(cfg config.LimiterConfig) (ratelimit.Store, func(), error) {
	if cfg.RedisURL == "" {
		return nil, nil, fmt.Errorf("REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("pinging redis: %w", err)
	}

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis client")
		}
	}
	return ratelimit.NewRedisStore(rdb, cfg.Prefix), closeFn, nil
}
