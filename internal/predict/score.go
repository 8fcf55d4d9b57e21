// Package predict derives next-gameweek point estimates from season
// aggregates and selects budget-constrained squads from the scored
// population.
package predict

import (
	"log/slog"
	"math"
)

// Confidence labels how much data backs a prediction.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Prediction bounds. Single-gameweek hauls outside this range exist but a
// forward-looking estimate beyond it is noise.
const (
	minPredicted = 2.0
	maxPredicted = 15.0
)

// Confidence thresholds. Fixed by design, not configuration.
const (
	highMinutes   = 1500
	highForm      = 5.0
	mediumMinutes = 900
	mediumForm    = 3.0
)

// positionMultiplier adjusts for the scoring ceiling of each position.
var positionMultiplier = map[string]float64{
	"GKP": 0.9,
	"DEF": 0.95,
	"MID": 1.0,
	"FWD": 1.05,
}

// PlayerSeason holds the season aggregates the scorer consumes.
type PlayerSeason struct {
	TotalPoints int
	Minutes     int
	Form        float64
	Goals       int
	Assists     int
	Position    string // GKP, DEF, MID, FWD
	GamesPlayed int
}

// Score computes a predicted-points estimate and a confidence label.
// Deterministic: identical inputs always produce identical output, so
// results can be cached and regression-tested. Division by zero is guarded
// and yields 0, never NaN or Inf.
//
// Weighting: form 40%, points-per-90 30%, season average 20%, goal
// threat 10%, scaled by a position multiplier and clamped to
// [2.0, 15.0].
func Score(p PlayerSeason) (float64, Confidence) {
	var ptsPer90 float64
	if p.Minutes > 0 {
		ptsPer90 = float64(p.TotalPoints) / (float64(p.Minutes) / 90.0)
	}

	var avgPerGame float64
	if p.GamesPlayed > 0 {
		avgPerGame = float64(p.TotalPoints) / float64(p.GamesPlayed)
	}

	goalThreat := float64(p.Goals)*0.5 + float64(p.Assists)*0.3

	raw := p.Form*0.40 + ptsPer90*0.30 + avgPerGame*0.20 + goalThreat*0.10

	mult, ok := positionMultiplier[p.Position]
	if !ok {
		// Bad position codes come from upstream ingestion; score anyway.
		slog.Warn("unrecognized position, using neutral multiplier", "position", p.Position)
		mult = 1.0
	}

	predicted := raw * mult
	predicted = math.Max(minPredicted, math.Min(predicted, maxPredicted))
	predicted = math.Round(predicted*100) / 100

	return predicted, confidence(p.Minutes, p.Form)
}

func confidence(minutes int, form float64) Confidence {
	switch {
	case minutes >= highMinutes && form >= highForm:
		return ConfidenceHigh
	case minutes >= mediumMinutes && form >= mediumForm:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
