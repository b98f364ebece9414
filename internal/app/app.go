// Package app wires the aggregator service together and manages its
// lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/pulsefeed/aggregator/internal/aggregator"
	"github.com/pulsefeed/aggregator/internal/api"
	"github.com/pulsefeed/aggregator/internal/config"
	"github.com/pulsefeed/aggregator/internal/logger"
	"github.com/pulsefeed/aggregator/internal/metrics"
	"github.com/pulsefeed/aggregator/internal/models"
	"github.com/pulsefeed/aggregator/internal/providers"
	"github.com/pulsefeed/aggregator/internal/store"
)

const (
	// DefaultShutdownTimeout is the timeout for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second

	redisPingTimeout = 2 * time.Second
)

// App holds the assembled service.
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sqlx.DB
	redisClient redis.UniversalClient
	httpServer  *http.Server
	version     string
}

// Options configures New.
type Options struct {
	ConfigPath string
	Version    string
}

// New loads configuration and initializes every dependency.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	appLogger = appLogger.With(
		logger.String("service", "aggregator"),
		logger.String("version", opts.Version),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Redis: %w", pingErr)
	}

	db, err := store.NewPostgresConnection(store.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	tracker := metrics.NewTracker(redisClient, appLogger)

	agg, err := buildAggregator(cfg, tracker, appLogger)
	if err != nil {
		db.Close()
		_ = appLogger.Sync()
		return nil, err
	}

	router := api.NewRouter(api.Deps{
		Aggregation: agg,
		Preferences: store.NewPreferenceRepository(db),
		Favorites:   store.NewFavoriteRepository(db),
		Stats:       tracker,
		DB:          db.DB,
		RedisClient: redisClient,
		Config:      cfg,
		Logger:      appLogger,
		Version:     opts.Version,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		redisClient: redisClient,
		httpServer:  httpServer,
		version:     opts.Version,
	}, nil
}

// buildAggregator registers the live providers and their fallback datasets.
func buildAggregator(cfg *config.Config, tracker *metrics.Tracker, log logger.Logger) (*aggregator.Aggregator, error) {
	agg := aggregator.New(tracker, log)

	newsCfg := providers.NewsAPIConfig{
		APIKey:  cfg.Providers.NewsAPI.APIKey,
		Country: cfg.Providers.NewsAPI.Country,
		Timeout: cfg.Aggregation.ProviderTimeout,
	}
	for _, category := range []models.Category{
		models.CategoryNews,
		models.CategoryTechnology,
		models.CategorySports,
		models.CategoryEntertainment,
	} {
		provider, err := providers.NewNewsAPIProvider(category, newsCfg, log)
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", category, err)
		}
		agg.Register(provider)
	}

	agg.Register(providers.NewTMDBProvider(providers.TMDBConfig{
		APIKey:  cfg.Providers.TMDB.APIKey,
		Timeout: cfg.Aggregation.ProviderTimeout,
	}, log))

	agg.Register(providers.NewSpotifyProvider(providers.SpotifyConfig{
		ClientID:     cfg.Providers.Spotify.ClientID,
		ClientSecret: cfg.Providers.Spotify.ClientSecret,
		Timeout:      cfg.Aggregation.ProviderTimeout,
	}, log))

	for category, items := range providers.SampleItems() {
		agg.RegisterFallback(providers.NewStaticProvider(category, items))
	}

	return agg, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting",
			logger.String("address", a.config.Server.Address),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	}

	return a.Shutdown()
}

// Shutdown stops the server and closes connections.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("shutdown http server: %w", err)
	}

	if err := a.db.Close(); err != nil {
		a.logger.Warn("Failed to close database", logger.Error(err))
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warn("Failed to close Redis client", logger.Error(err))
	}

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()

	return shutdownErr
}
