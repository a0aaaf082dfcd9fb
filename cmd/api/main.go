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
	"github.com/phuslu/log"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/cache"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/events"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/adapter/storage"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/server"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/server/handlers"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/analysis"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/source"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/trending"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(cfg.LogLevel),
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: cfg.Environment == "development"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Optional search-log database
	var searchStore *storage.SearchStore
	var db *pgxpool.Pool
	if cfg.Database.Enabled() {
		db, err = initDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer db.Close()

		searchStore = storage.NewSearchStore(db)
		if err := searchStore.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure search schema")
		}
	}

	// Optional event bus
	var natsConn *nats.Conn
	if cfg.NATS.Enabled() {
		natsConn, err = initNATS(cfg.NATS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer natsConn.Close()
	}

	// One cache instance, injected into the adapters that need it
	store := cache.New()
	synthetic := source.NewSynthetic()

	googleAdapter := source.NewGoogleAdapter(cfg.Google, store, cfg.Cache.GoogleTTL, synthetic)
	redditAdapter := source.NewRedditAdapter(cfg.Reddit, store, cfg.Cache.RedditTTL, synthetic)
	summarizer := source.NewSummarizer(cfg.OpenAI)

	// nil interfaces stay nil unless the optional backends exist
	var searchLog analysis.SearchLog
	var weekly handlers.WeeklySearches
	if searchStore != nil {
		searchLog = searchStore
		weekly = searchStore
	}
	var publisher analysis.Publisher
	if natsConn != nil {
		publisher = events.NewNATSPublisher(natsConn, cfg.NATS.Subject)
	}

	aggregator := analysis.NewAggregator(googleAdapter, redditAdapter, summarizer, searchLog, publisher)
	generator := trending.NewGenerator(trending.NewTwitterClient(cfg.Twitter.BearerToken), redditAdapter)

	httpServer := server.NewServer(cfg, aggregator, generator, weekly, natsConn)

	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Bool("openai", cfg.OpenAI.Configured()).
			Bool("reddit", cfg.Reddit.Configured()).
			Bool("twitter", cfg.Twitter.Configured()).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-shutdown
	log.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
