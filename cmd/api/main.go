// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"orbitfield/internal/adapter/anthropic"
	"orbitfield/internal/adapter/news"
	"orbitfield/internal/adapter/polymarket"
	"orbitfield/internal/adapter/social"
	"orbitfield/internal/adapter/storage"
	"orbitfield/internal/config"
	"orbitfield/internal/server"
	"orbitfield/internal/service/events"
	"orbitfield/internal/service/marketable"
	"orbitfield/internal/service/match"
	"orbitfield/internal/service/predict"
)

func main() {
	// Load .env if present, real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Close()

	// Initialize storage adapters
	trendStore := storage.NewTrendStore(db)
	userStore := storage.NewUserStore(db)

	// Initialize source adapters
	marketClient := polymarket.NewClient(cfg.Sources.PolymarketBaseURL, logger)
	newsClient := news.NewClient(cfg.Sources.NewsAPIKey, cfg.Sources.NewsBaseURL, logger)
	redditClient := social.NewRedditClient("", logger)

	var twitterSource predict.TwitterSource
	if cfg.Sources.TwitterBearerToken != "" {
		twitterSource = social.NewTwitterClient(cfg.Sources.TwitterBearerToken, logger)
	}

	var ranker events.Ranker
	if cfg.Sources.AnthropicAPIKey != "" {
		ranker = anthropic.NewRanker(cfg.Sources.AnthropicAPIKey, logger)
	}

	// Initialize services
	engine := match.NewEngine(nil)

	generator := predict.NewGenerator(
		newsClient,
		redditClient,
		twitterSource,
		marketClient,
		engine,
		logger,
	)

	trendDetector := predict.NewTrendDetector(
		generator,
		trendStore,
		natsConn,
		predict.DetectorConfig{
			ScanInterval: cfg.Trend.ScanInterval,
			Interests:    cfg.Trend.Interests,
			EventsTopic:  cfg.Trend.EventsTopic,
		},
		logger,
	)

	eventsService := events.NewService(marketClient, engine, ranker, logger)
	marketableService := marketable.NewService(newsClient, logger)

	// Start the trend detector
	if err := trendDetector.Start(ctx); err != nil {
		logger.Fatal("Failed to start trend detector", zap.Error(err))
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Deps{
		TrendStore:    trendStore,
		TrendDetector: trendDetector,
		UserStore:     userStore,
		Events:        eventsService,
		Marketable:    marketableService,
		NATS:          natsConn,
		EventsTopic:   cfg.Trend.EventsTopic,
		Logger:        logger,
	})

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	if err := trendDetector.Stop(shutdownCtx); err != nil {
		logger.Warn("Trend detector shutdown error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// newLogger builds the process logger for the environment
func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger *zap.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
