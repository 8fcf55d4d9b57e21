package predict

import (
	"math"
	"sort"
)

// bucketOrder fixes the position processing order so budget carry-over is
// deterministic.
var bucketOrder = [4]string{"GKP", "DEF", "MID", "FWD"}

// Candidate is a scored, priced player eligible for squad selection.
type Candidate struct {
	PlayerID        int     `json:"player_id"`
	Name            string  `json:"player_name"`
	TeamName        string  `json:"team_name"`
	Position        string  `json:"position"`
	Cost            float64 `json:"now_cost"`
	PredictedPoints float64 `json:"predicted_points"`
}

// valueRatio ranks candidates by predicted points per unit cost.
func (c Candidate) valueRatio() float64 {
	if c.Cost <= 0 {
		return 0
	}
	return c.PredictedPoints / c.Cost
}

// Squad is the result of a budget-constrained selection. A bucket may hold
// fewer players than the formation requires when the affordable pool runs
// out; Shortfall reports the deficit per position so callers can surface a
// warning instead of silently presenting a short squad.
type Squad struct {
	Players              map[string][]Candidate `json:"squad"`
	Formation            string                 `json:"formation"`
	TotalCost            float64                `json:"total_cost"`
	BudgetRemaining      float64                `json:"budget_remaining"`
	TotalPredictedPoints float64                `json:"total_predicted_points"`
	PlayerCount          int                    `json:"player_count"`
	Shortfall            map[string]int         `json:"shortfall,omitempty"`
}

// Complete reports whether every bucket reached its required count.
func (s *Squad) Complete() bool {
	return len(s.Shortfall) == 0
}

// costEpsilon absorbs float drift when summing tenth-of-a-million prices.
const costEpsilon = 1e-9

// Optimize selects a squad from the candidate population, greedily per
// position in a fixed order. For each bucket it computes a per-player
// ceiling from the remaining budget, ranks affordable candidates by value
// ratio, and adds them until the bucket is full, skipping any that would
// push total cost past the budget.
//
// Greedy by design: it is not a knapsack solver and can miss the global
// optimum, but it is fast, predictable, and close enough for a suggestion
// endpoint. Ties in value ratio break by predicted points descending, then
// player ID ascending, so identical inputs always yield identical squads.
func Optimize(candidates []Candidate, maxBudget float64, formation Formation) *Squad {
	byPosition := make(map[string][]Candidate, 4)
	for _, c := range candidates {
		byPosition[c.Position] = append(byPosition[c.Position], c)
	}

	squad := &Squad{
		Players:   make(map[string][]Candidate, 4),
		Formation: formation.String(),
	}
	totalCost := 0.0
	totalPredicted := 0.0

	for _, position := range bucketOrder {
		required := formation.Required(position)
		squad.Players[position] = []Candidate{}
		if required == 0 {
			continue
		}

		remaining := maxBudget - totalCost
		ceiling := remaining / float64(required)

		pool := affordable(byPosition[position], ceiling)
		rankByValue(pool)

		selected := 0
		for _, c := range pool {
			if selected >= required {
				break
			}
			if totalCost+c.Cost > maxBudget+costEpsilon {
				continue
			}
			squad.Players[position] = append(squad.Players[position], c)
			totalCost += c.Cost
			totalPredicted += c.PredictedPoints
			selected++
		}

		if selected < required {
			if squad.Shortfall == nil {
				squad.Shortfall = make(map[string]int)
			}
			squad.Shortfall[position] = required - selected
		}
		squad.PlayerCount += selected
	}

	squad.TotalCost = round1(totalCost)
	squad.BudgetRemaining = round1(maxBudget - totalCost)
	squad.TotalPredictedPoints = round2f(totalPredicted)
	return squad
}

// affordable filters to candidates costing at most ceiling.
func affordable(pool []Candidate, ceiling float64) []Candidate {
	out := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if c.Cost <= ceiling+costEpsilon {
			out = append(out, c)
		}
	}
	return out
}

// rankByValue sorts by value ratio descending with deterministic
// tie-breaks.
func rankByValue(pool []Candidate) {
	sort.Slice(pool, func(i, j int) bool {
		ri, rj := pool[i].valueRatio(), pool[j].valueRatio()
		if ri != rj {
			return ri > rj
		}
		if pool[i].PredictedPoints != pool[j].PredictedPoints {
			return pool[i].PredictedPoints > pool[j].PredictedPoints
		}
		return pool[i].PlayerID < pool[j].PlayerID
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}
