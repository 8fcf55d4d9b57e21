package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davidmoss/fplytics/internal/api/respond"
	"github.com/davidmoss/fplytics/internal/cache"
	"github.com/davidmoss/fplytics/internal/predict"
)

// GetBestPlayers returns the ranked prediction list for a season.
// @Summary Best predicted players
// @Description Returns today's predictions ranked by predicted points, regenerating the batch first if none exists for today.
// @Tags prediction
// @Produce json
// @Param season query string false "Season name"
// @Param position query string false "Position filter" Enums(GKP, DEF, MID, FWD)
// @Param team_id query int false "Team filter"
// @Param max_price query number false "Maximum cost in millions"
// @Param min_price query number false "Minimum cost in millions"
// @Param min_minutes query int false "Minimum minutes played"
// @Param limit query int false "Row cap, default 20"
// @Success 200 {array} predict.PredictedPlayer
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/prediction/best-players [get]
func (h *Handler) GetBestPlayers(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	q := r.URL.Query()
	filters := predict.BestFilters{
		Season:     sc.Name,
		Position:   q.Get("position"),
		TeamID:     intQuery(r, "team_id", 0),
		MaxPrice:   floatQuery(r, "max_price", 0),
		MinPrice:   floatQuery(r, "min_price", 0),
		MinMinutes: intQuery(r, "min_minutes", 0),
		Limit:      intQuery(r, "limit", 20),
	}

	cacheKey := fmt.Sprintf("prediction:best:%s:%s:%d:%.1f:%.1f:%d:%d",
		sc.Name, filters.Position, filters.TeamID, filters.MaxPrice,
		filters.MinPrice, filters.MinMinutes, filters.Limit)
	ttl := cache.TTLPredictions
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	players, err := h.predictions.BestPlayers(r.Context(), sc, filters)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, players)
}

// RefreshPredictions recomputes today's prediction batch for a season.
// @Summary Refresh predictions
// @Description Recomputes and upserts predicted points for every qualifying player in the season.
// @Tags prediction
// @Produce json
// @Param season query string false "Season name"
// @Param min_minutes query int false "Minimum minutes to qualify"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/prediction/refresh [post]
func (h *Handler) RefreshPredictions(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	minMinutes := intQuery(r, "min_minutes", h.cfg.PredictionMinMinutes)

	scored, err := h.predictions.Refresh(r.Context(), sc, minMinutes)
	if err != nil {
		writeServerError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":         "refreshed",
		"season":         sc.Name,
		"players_scored": scored,
	})
}

// GetPlayerPrediction returns one player's prediction with its inputs.
// @Summary Player prediction detail
// @Tags prediction
// @Produce json
// @Param playerID path int true "Player ID"
// @Param season query string false "Season name"
// @Success 200 {object} predict.PlayerDetail
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/prediction/player/{playerID} [get]
func (h *Handler) GetPlayerPrediction(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	playerID, err := strconv.Atoi(chi.URLParam(r, "playerID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PLAYER_ID", "playerID must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("prediction:player:%s:%d", sc.Name, playerID)
	ttl := cache.TTLPredictions
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	detail, err := h.predictions.PlayerDetail(r.Context(), sc, playerID)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if detail == nil {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND",
			fmt.Sprintf("No prediction for player %d in %s", playerID, sc.Name))
		return
	}
	h.writeCached(w, cacheKey, ttl, detail)
}

// GetOptimizedSquad builds a budget-constrained squad from predictions.
// @Summary Optimized squad
// @Description Greedily fills a starting eleven for the requested formation, maximizing predicted points per million under the budget.
// @Tags prediction
// @Produce json
// @Param season query string false "Season name"
// @Param budget query number false "Total budget in millions, default 100"
// @Param formation query string false "Outfield formation, default 4-4-2"
// @Success 200 {object} predict.Squad
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/prediction/optimized-squad [get]
func (h *Handler) GetOptimizedSquad(w http.ResponseWriter, r *http.Request) {
	sc := h.resolveSeason(w, r)
	if sc == nil {
		return
	}
	budget := floatQuery(r, "budget", 100.0)
	formationStr := r.URL.Query().Get("formation")
	if formationStr == "" {
		formationStr = "4-4-2"
	}
	formation, err := predict.ParseFormation(formationStr)
	if err != nil {
		writeServerError(w, err)
		return
	}
	if budget <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BUDGET", "budget must be positive")
		return
	}

	cacheKey := fmt.Sprintf("prediction:squad:%s:%.1f:%s", sc.Name, budget, formation)
	ttl := cache.TTLPredictions
	if h.serveFromCache(w, r, cacheKey, ttl) {
		return
	}

	candidates, err := h.predictions.Candidates(r.Context(), sc)
	if err != nil {
		writeServerError(w, err)
		return
	}
	h.writeCached(w, cacheKey, ttl, predict.Optimize(candidates, budget, formation))
}
