package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davidmoss/fplytics/internal/api/respond"
	"github.com/davidmoss/fplytics/internal/cache"
	"github.com/davidmoss/fplytics/internal/dashboard"
	"github.com/davidmoss/fplytics/internal/trend"
)

// GetSummary returns season KPI totals, optionally scoped to one team.
// @Summary Dashboard summary KPIs
// @Description Returns season-wide totals: players, points, goals, assists, clean sheets, average cost.
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name, e.g. 2024-25"
// @Param team_id query int false "Restrict totals to one team"
// @Success 200 {object} dashboard.Summary
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	teamID := intQuery(r, "team_id", 0)

	cacheKey := fmt.Sprintf("dashboard:summary:%s:%d", sc.Name, teamID)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), sc, teamID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, summary)
}

// GetTrends returns the dense per-gameweek trend series for a season.
// @Summary Gameweek trend series
// @Description Returns one point per gameweek from 1 to the latest played, with zero rows filled in for gameweeks without data.
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name"
// @Param team_id query int false "Restrict to one team's players"
// @Success 200 {array} trend.Point
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/trends [get]
func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	teamID := intQuery(r, "team_id", 0)

	cacheKey := fmt.Sprintf("dashboard:trends:%s:%d", sc.Name, teamID)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	sparse, err := h.dashboard.Trends(r.Context(), sc, teamID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if teamID != 0 && len(sparse) == 0 {
		// A team filter that matches no players returns an empty series.
		h.writeCached(w, cacheKey, ttl, []trend.Point{})
		return
	}
	maxGW, err := h.dashboard.MaxGameweek(r.Context(), sc)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, trend.Fill(sparse, maxGW))
}

// GetPlayerTrends returns a single player's per-gameweek series.
// @Summary Player trend series
// @Description Returns one point per gameweek for a single player, gap-filled to the latest played gameweek.
// @Tags dashboard
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/players/{playerID}/trends [get]
func (h *Handler) GetPlayerTrends(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "playerID must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("dashboard:player-trends:%s:%d", sc.Name, playerID)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	name, sparse, err := h.dashboard.PlayerTrends(r.Context(), sc, playerID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	maxGW, err := h.dashboard.MaxGameweek(r.Context(), sc)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, map[string]interface{}{
		"player_id":   playerID,
		"player_name": name,
		"season":      sc.Name,
		"gameweeks":   trend.FillPlayer(sparse, maxGW),
	})
}

// GetDistributions returns player counts by position and by team.
// @Summary Position and team distributions
// @Description Returns player counts grouped by position, and by team when the season has team data.
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name"
// @Success 200 {object} dashboard.Distributions
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/distributions [get]
func (h *Handler) GetDistributions(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}

	cacheKey := "dashboard:distributions:" + sc.Name
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	dist, err := h.dashboard.Distributions(r.Context(), sc)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, dist)
}

// GetTopPlayers returns the highest-scoring players for a season.
// @Summary Top players by total points
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name"
// @Param limit query int false "Row cap, default 10"
// @Success 200 {array} dashboard.TopPlayer
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/top-players [get]
func (h *Handler) GetTopPlayers(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	limit := intQuery(r, "limit", 10)

	cacheKey := fmt.Sprintf("dashboard:top-players:%s:%d", sc.Name, limit)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	players, err := h.dashboard.TopPlayers(r.Context(), sc, limit)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, players)
}

// SearchPlayers returns a filtered, sorted player listing.
// @Summary Search players
// @Description Filters players by name substring, position, and team; sorts by an allowlisted column.
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name"
// @Param name query string false "Name substring"
// @Param position query string false "Position code" Enums(GKP, DEF, MID, FWD)
// @Param team_id query int false "Team filter"
// @Param sort_by query string false "Sort key" Enums(total_points, name, cost, form, position)
// @Param order query string false "Sort direction" Enums(asc, desc)
// @Param limit query int false "Row cap, default 50, max 100"
// @Success 200 {array} dashboard.PlayerSummary
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/players [get]
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	q := r.URL.Query()
	opts := dashboard.SearchOptions{
		Name:     q.Get("name"),
		Position: q.Get("position"),
		TeamID:   intQuery(r, "team_id", 0),
		SortBy:   q.Get("sort_by"),
		Order:    q.Get("order"),
		Limit:    intQuery(r, "limit", 0),
	}

	cacheKey := fmt.Sprintf("dashboard:players:%s:%s:%s:%d:%s:%s:%d",
		sc.Name, opts.Name, opts.Position, opts.TeamID, opts.SortBy, opts.Order, opts.Limit)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	players, err := h.dashboard.SearchPlayers(r.Context(), sc, opts)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, players)
}

// GetStandings returns the ranked league table for a season.
// @Summary League standings
// @Description Returns the ranked league table. Seasons without team data return an empty list.
// @Tags dashboard
// @Produce json
// @Param season query string false "Season name"
// @Success 200 {array} dashboard.StandingRow
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}

	cacheKey := "dashboard:standings:" + sc.Name
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	rows, err := h.dashboard.Standings(r.Context(), sc)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, rows)
}

// GetTeamSquad returns one team's full squad with per-player stats.
// @Summary Team squad
// @Tags dashboard
// @Produce json
// @Param teamID path int true "Team ID"
// @Param season query string false "Season name"
// @Success 200 {object} dashboard.TeamSquad
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/dashboard/teams/{teamID}/squad [get]
func (h *Handler) GetTeamSquad(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID", "teamID must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("dashboard:squad:%s:%d", sc.Name, teamID)
	ttl := seasonTTL(sc)
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	squad, err := h.dashboard.TeamSquad(r.Context(), sc, teamID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, squad)
}

// GetFilters returns the filter options the dashboard UI offers.
// @Summary Dashboard filter options
// @Description Returns known seasons, current-season teams, and selectable gameweeks.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboard.Filters
// @Router /api/v1/dashboard/filters [get]
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	cacheKey := "dashboard:filters"
	ttl := cache.TTLFilters
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	filters, err := h.dashboard.Filters(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, filters)
}
