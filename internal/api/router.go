package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/speech-subs/backend/internal/api/handlers"
	"github.com/speech-subs/backend/internal/api/middleware"
	"github.com/speech-subs/backend/internal/arbiter"
	"github.com/speech-subs/backend/internal/auth"
	"github.com/speech-subs/backend/internal/config"
	"github.com/speech-subs/backend/internal/db"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, arb *arbiter.Arbitrator, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	convertHandler := handlers.NewConvertHandler(arb, database, cfg.MaxUploadBytes)
	usageHandler := handlers.NewUsageHandler(database)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/health", handlers.Health)
		r.With(loginLimiter.Handler, middleware.MaxBodySize(1<<20)).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/usage", usageHandler.GetUsage)

			// Upload route enforces its own body limit
			r.Post("/convert", convertHandler.Convert)
		})
	})

	return r
}
