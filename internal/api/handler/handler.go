// Package handler provides HTTP handlers for all API endpoints. Handlers
// resolve the requested season to a schema, run the matching query
// service, and cache marshaled responses with ETags.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidmoss/fplytics/internal/api/respond"
	"github.com/davidmoss/fplytics/internal/cache"
	"github.com/davidmoss/fplytics/internal/config"
	"github.com/davidmoss/fplytics/internal/dashboard"
	"github.com/davidmoss/fplytics/internal/predict"
	"github.com/davidmoss/fplytics/internal/season"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool        *pgxpool.Pool
	cache       *cache.Cache
	cfg         *config.Config
	dashboard   *dashboard.Service
	predictions *predict.Store
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		pool:        pool,
		cache:       c,
		cfg:         cfg,
		dashboard:   dashboard.New(pool),
		predictions: predict.NewStore(pool),
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Fplytics API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"seasons": season.Known(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "SELECT 1").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// resolveSeason resolves the season query parameter, defaulting to the
// current season. Writes a 400 and returns nil on unknown seasons.
func (h *Handler) resolveSeason(w http.ResponseWriter, r *http.Request) *season.Schema {
	name := r.URL.Query().Get("season")
	if name == "" {
		name = season.Current
	}
	sc, err := season.Resolve(name)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "UNKNOWN_SEASON", err.Error())
		return nil
	}
	return sc
}

// seasonTTL picks the cache TTL for a season's responses.
func seasonTTL(sc *season.Schema) time.Duration {
	if sc.IsHistorical {
		return cache.TTLHistorical
	}
	return cache.TTLCurrentSeason
}

// intQuery parses an optional integer query parameter, falling back when
// absent or malformed.
func intQuery(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// floatQuery parses an optional float query parameter.
func floatQuery(r *http.Request, key string, fallback float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// writeServerError maps a query-layer error onto the response. Unknown
// seasons and bad formations are client errors; everything else is a 500.
func writeServerError(w http.ResponseWriter, err error) {
	var use *season.UnknownSeasonError
	if errors.As(err, &use) {
		respond.WriteError(w, http.StatusBadRequest, "UNKNOWN_SEASON", use.Error())
		return
	}
	var ife *predict.InvalidFormationError
	if errors.As(err, &ife) {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FORMATION", ife.Error())
		return
	}
	slog.Error("query failed", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Query failed")
}

// serveFromCache emits a cached entry if present, honoring If-None-Match.
// Returns true when the response has been written.
func (h *Handler) serveFromCache(w http.ResponseWriter, r *http.Request, cacheKey string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(cacheKey)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeCached marshals a value, stores it in the cache, and emits it with
// ETag headers.
func (h *Handler) writeCached(w http.ResponseWriter, cacheKey string, ttl time.Duration, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal response", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode response")
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}
