package predict

import (
	"testing"
)

// fixtureCandidates is a fixed population with hand-computed value ratios.
// Def A and Def C carry power-of-two costs, so their 1.1 ratios are
// bit-identical in float64 and the tie genuinely falls through to the
// predicted-points comparison.
func fixtureCandidates() []Candidate {
	return []Candidate{
		// Goalkeepers
		{PlayerID: 1, Name: "Keeper A", Position: "GKP", Cost: 5.5, PredictedPoints: 5.5},  // ratio 1.0
		{PlayerID: 2, Name: "Keeper B", Position: "GKP", Cost: 4.0, PredictedPoints: 4.4},  // ratio 1.1
		// Defenders
		{PlayerID: 10, Name: "Def A", Position: "DEF", Cost: 8.0, PredictedPoints: 8.8},    // ratio 1.1
		{PlayerID: 11, Name: "Def B", Position: "DEF", Cost: 5.0, PredictedPoints: 6.0},    // ratio 1.2
		{PlayerID: 12, Name: "Def C", Position: "DEF", Cost: 4.0, PredictedPoints: 4.4},    // ratio 1.1
		{PlayerID: 13, Name: "Def D", Position: "DEF", Cost: 4.5, PredictedPoints: 4.0},    // ratio 0.89
		// Midfielders
		{PlayerID: 20, Name: "Mid A", Position: "MID", Cost: 13.0, PredictedPoints: 13.0},  // ratio 1.0
		{PlayerID: 21, Name: "Mid B", Position: "MID", Cost: 8.0, PredictedPoints: 9.6},    // ratio 1.2
		{PlayerID: 22, Name: "Mid C", Position: "MID", Cost: 7.5, PredictedPoints: 8.25},   // ratio 1.1
		{PlayerID: 23, Name: "Mid D", Position: "MID", Cost: 6.5, PredictedPoints: 6.5},    // ratio 1.0
		{PlayerID: 24, Name: "Mid E", Position: "MID", Cost: 5.0, PredictedPoints: 4.5},    // ratio 0.9
		// Forwards
		{PlayerID: 30, Name: "Fwd A", Position: "FWD", Cost: 14.0, PredictedPoints: 14.0},  // ratio 1.0
		{PlayerID: 31, Name: "Fwd B", Position: "FWD", Cost: 10.0, PredictedPoints: 11.0},  // ratio 1.1
		{PlayerID: 32, Name: "Fwd C", Position: "FWD", Cost: 8.0, PredictedPoints: 8.0},    // ratio 1.0
		{PlayerID: 33, Name: "Fwd D", Position: "FWD", Cost: 16.0, PredictedPoints: 15.0},  // over FWD ceiling
	}
}

func selectedIDs(s *Squad, position string) []int {
	ids := make([]int, 0, len(s.Players[position]))
	for _, c := range s.Players[position] {
		ids = append(ids, c.PlayerID)
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOptimize_GoldenSquad343(t *testing.T) {
	formation, err := ParseFormation("3-4-3")
	if err != nil {
		t.Fatal(err)
	}

	squad := Optimize(fixtureCandidates(), 100.0, formation)

	// Hand-computed greedy walk:
	// GKP ceiling 100:   pick 2 (ratio 1.1)                         -> spent  4.0
	// DEF ceiling 32:    pick 11, then 10 over 12 on the exact 1.1
	//                    ratio tie (8.8 > 4.4 predicted)            -> spent 21.0
	// MID ceiling 19.75: pick 21, 22, then 20 over 23 (1.0 tie)     -> spent 56.0
	// FWD ceiling 14.67: 33 filtered out; pick 31, 30, 32           -> spent 88.0
	want := map[string][]int{
		"GKP": {2},
		"DEF": {11, 10, 12},
		"MID": {21, 22, 20, 23},
		"FWD": {31, 30, 32},
	}
	for pos, ids := range want {
		if got := selectedIDs(squad, pos); !equalIDs(got, ids) {
			t.Errorf("%s = %v, want %v", pos, got, ids)
		}
	}

	if squad.PlayerCount != 11 {
		t.Errorf("PlayerCount = %d, want 11", squad.PlayerCount)
	}
	if !almostEqual(squad.TotalCost, 88.0) {
		t.Errorf("TotalCost = %v, want 88.0", squad.TotalCost)
	}
	if !almostEqual(squad.BudgetRemaining, 12.0) {
		t.Errorf("BudgetRemaining = %v, want 12.0", squad.BudgetRemaining)
	}
	if !almostEqual(squad.TotalPredictedPoints, 93.95) {
		t.Errorf("TotalPredictedPoints = %v, want 93.95", squad.TotalPredictedPoints)
	}
	if !squad.Complete() {
		t.Errorf("Shortfall = %v, want none", squad.Shortfall)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")
	a := Optimize(fixtureCandidates(), 100.0, formation)
	b := Optimize(fixtureCandidates(), 100.0, formation)

	for _, pos := range []string{"GKP", "DEF", "MID", "FWD"} {
		if !equalIDs(selectedIDs(a, pos), selectedIDs(b, pos)) {
			t.Errorf("%s differs across runs: %v vs %v", pos, selectedIDs(a, pos), selectedIDs(b, pos))
		}
	}
	if a.TotalCost != b.TotalCost || a.TotalPredictedPoints != b.TotalPredictedPoints {
		t.Error("totals differ across runs")
	}
}

func TestOptimize_NeverExceedsBudget(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")
	for _, budget := range []float64{100.0, 88.0, 50.0, 30.0, 10.0, 0.0} {
		squad := Optimize(fixtureCandidates(), budget, formation)
		if squad.TotalCost > budget+costEpsilon {
			t.Errorf("budget %v: TotalCost = %v", budget, squad.TotalCost)
		}
	}
}

func TestOptimize_PartialFillReportsShortfall(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")

	// Only one defender in the population: DEF must end two short, and the
	// result is still returned rather than failing.
	candidates := []Candidate{
		{PlayerID: 1, Position: "GKP", Cost: 4.0, PredictedPoints: 4.0},
		{PlayerID: 10, Position: "DEF", Cost: 4.0, PredictedPoints: 4.0},
		{PlayerID: 20, Position: "MID", Cost: 5.0, PredictedPoints: 5.0},
		{PlayerID: 21, Position: "MID", Cost: 5.0, PredictedPoints: 5.0},
		{PlayerID: 22, Position: "MID", Cost: 5.0, PredictedPoints: 5.0},
		{PlayerID: 23, Position: "MID", Cost: 5.0, PredictedPoints: 5.0},
		{PlayerID: 30, Position: "FWD", Cost: 6.0, PredictedPoints: 6.0},
		{PlayerID: 31, Position: "FWD", Cost: 6.0, PredictedPoints: 6.0},
		{PlayerID: 32, Position: "FWD", Cost: 6.0, PredictedPoints: 6.0},
	}

	squad := Optimize(candidates, 100.0, formation)

	if squad.Complete() {
		t.Fatal("expected an incomplete squad")
	}
	if squad.Shortfall["DEF"] != 2 {
		t.Errorf("Shortfall[DEF] = %d, want 2", squad.Shortfall["DEF"])
	}
	if squad.PlayerCount != 9 {
		t.Errorf("PlayerCount = %d, want 9", squad.PlayerCount)
	}
}

func TestOptimize_ExactRatioTieBreaksByPredicted(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")

	// Power-of-two costs keep both ratios at exactly the same float64
	// value of 1.1, so ranking must fall through to predicted points.
	// Prices like 6.6/6.0 would land a hair below 4.4/4.0 instead and
	// never reach the tie-break.
	candidates := []Candidate{
		{PlayerID: 12, Position: "DEF", Cost: 4.0, PredictedPoints: 4.4},
		{PlayerID: 10, Position: "DEF", Cost: 8.0, PredictedPoints: 8.8},
	}
	squad := Optimize(candidates, 100.0, formation)
	if got := selectedIDs(squad, "DEF"); !equalIDs(got, []int{10, 12}) {
		t.Errorf("DEF = %v, want [10 12]", got)
	}
}

func TestOptimize_TieBreaksByPlayerID(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")

	// Same cost, same predicted points: the lower ID must win the single
	// goalkeeper slot.
	candidates := []Candidate{
		{PlayerID: 9, Position: "GKP", Cost: 4.5, PredictedPoints: 4.5},
		{PlayerID: 3, Position: "GKP", Cost: 4.5, PredictedPoints: 4.5},
		{PlayerID: 7, Position: "GKP", Cost: 4.5, PredictedPoints: 4.5},
	}
	squad := Optimize(candidates, 100.0, formation)
	if got := selectedIDs(squad, "GKP"); !equalIDs(got, []int{3}) {
		t.Errorf("GKP = %v, want [3]", got)
	}
}

func TestOptimize_ZeroCostCandidatesNeverPreferred(t *testing.T) {
	formation, _ := ParseFormation("3-4-3")

	// A zero-cost row (bad ingestion) gets ratio 0, so a real candidate
	// still wins.
	candidates := []Candidate{
		{PlayerID: 1, Position: "GKP", Cost: 0, PredictedPoints: 9.9},
		{PlayerID: 2, Position: "GKP", Cost: 4.0, PredictedPoints: 4.0},
	}
	squad := Optimize(candidates, 100.0, formation)
	if got := selectedIDs(squad, "GKP"); !equalIDs(got, []int{2}) {
		t.Errorf("GKP = %v, want [2]", got)
	}
}
