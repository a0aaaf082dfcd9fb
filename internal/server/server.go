// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/config"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/server/handlers"
	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/service/trending"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.Config,
	aggregator handlers.Analyzer,
	generator *trending.Generator,
	searches handlers.WeeklySearches,
	natsConn *nats.Conn,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	analysisHandler := handlers.NewAnalysisHandler(aggregator)
	trendingHandler := handlers.NewTrendingHandler(generator, searches)
	suggestHandler := handlers.NewSuggestHandler()
	healthHandler := handlers.NewHealthHandler(cfg)

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Post("/analyze", analysisHandler.Analyze)
		r.Get("/trending", trendingHandler.Trending)
		r.Get("/top-trends-weekly", trendingHandler.TopTrendsWeekly)
		r.Get("/global-trending", trendingHandler.GlobalTrending)
		r.Get("/suggestions", suggestHandler.Suggestions)
	})

	// WebSocket endpoint for the live analysis feed
	router.Get("/ws/trends", handlers.TrendFeedHandler(natsConn, cfg.NATS.Subject))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
