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
	"go.uber.org/zap"

	"orbitfield/internal/config"
	"orbitfield/internal/domain/trend"
	"orbitfield/internal/domain/user"
	"orbitfield/internal/server/handlers"
	"orbitfield/internal/service/events"
	"orbitfield/internal/service/marketable"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Deps bundles the services the HTTP surface exposes
type Deps struct {
	TrendStore    trend.Store
	TrendDetector trend.Detector
	UserStore     user.Store
	Events        *events.Service
	Marketable    *marketable.Service
	NATS          *nats.Conn
	EventsTopic   string
	Logger        *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(deps.TrendStore, deps.TrendDetector, deps.Marketable, deps.Logger)
	eventsHandler := handlers.NewEventsHandler(deps.Events, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.UserStore, deps.Logger)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/", trendHandler.GetTrends)
				r.Post("/", trendHandler.SaveTrend)
				r.Get("/predict", trendHandler.PredictTrends)
				r.Get("/marketable", trendHandler.GetMarketableEvents)
				r.Get("/{id}", trendHandler.GetTrend)
			})

			// Polymarket events API
			r.Route("/events", func(r chi.Router) {
				r.Get("/similar", eventsHandler.GetSimilarEvents)
			})

			// Users API
			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/interests", userHandler.GetInterests)
				r.Put("/interests", userHandler.UpdateInterests)

				r.Route("/subscriptions", func(r chi.Router) {
					r.Get("/", userHandler.ListSubscriptions)
					r.Post("/", userHandler.CreateSubscription)
					r.Delete("/{subID}", userHandler.DeleteSubscription)
				})
			})
		})
	})

	// WebSocket endpoint for the live trend feed
	router.Get("/ws/trends", handlers.TrendWebSocketHandler(deps.NATS, deps.EventsTopic, deps.Logger))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
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
