package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/davidmoss/fplytics/internal/api/handler"
	"github.com/davidmoss/fplytics/internal/cache"
	"github.com/davidmoss/fplytics/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *pgxpool.Pool, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Dashboard
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", h.GetSummary)
			r.Get("/trends", h.GetTrends)
			r.Get("/distributions", h.GetDistributions)
			r.Get("/top-players", h.GetTopPlayers)
			r.Get("/standings", h.GetStandings)
			r.Get("/filters", h.GetFilters)
			r.Get("/players", h.SearchPlayers)
			r.Get("/players/{playerID}/trends", h.GetPlayerTrends)
			r.Get("/teams/{teamID}/squad", h.GetTeamSquad)
		})

		// Predictions
		r.Route("/prediction", func(r chi.Router) {
			r.Get("/best-players", h.GetBestPlayers)
			r.Post("/refresh", h.RefreshPredictions)
			r.Get("/optimized-squad", h.GetOptimizedSquad)
			r.Get("/player/{playerID}", h.GetPlayerPrediction)
		})
	})

	return r
}
