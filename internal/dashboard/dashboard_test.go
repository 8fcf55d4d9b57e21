package dashboard

import (
	"math"
	"strings"
	"testing"
)

func TestPointsPer90(t *testing.T) {
	tests := []struct {
		points, minutes int
		want            float64
	}{
		{90, 900, 9.0},
		{50, 1800, 2.5},
		{10, 0, 0},  // no minutes: 0, never NaN
		{0, 0, 0},
		{-5, 0, 0},
		{7, 90, 7.0},
	}
	for _, tt := range tests {
		got := pointsPer90(tt.points, tt.minutes)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("pointsPer90(%d, %d) = %v", tt.points, tt.minutes, got)
		}
		if got != tt.want {
			t.Errorf("pointsPer90(%d, %d) = %v, want %v", tt.points, tt.minutes, got, tt.want)
		}
	}
}

func TestBuildSummary_ZeroPlayers(t *testing.T) {
	got := buildSummary(0, 38, 0, 0, 0, 0)
	if got.TotalPlayers != 0 || got.AvgPointsPerPlayer != 0 || got.AvgPlayerValue != 0 {
		t.Errorf("empty store summary = %+v, want zero KPIs", got)
	}
	if got.TotalGameweeks != 38 {
		t.Errorf("TotalGameweeks = %d", got.TotalGameweeks)
	}
}

func TestBuildSummary_Averages(t *testing.T) {
	got := buildSummary(100, 22, 4500, 300, 250, 55.0)
	if got.AvgPointsPerPlayer != 45.0 {
		t.Errorf("AvgPointsPerPlayer = %v, want 45.0", got.AvgPointsPerPlayer)
	}
	if got.AvgPlayerValue != 5.5 {
		t.Errorf("AvgPlayerValue = %v, want 5.5", got.AvgPlayerValue)
	}
	if got.TotalGoals != 300 || got.TotalAssists != 250 {
		t.Errorf("totals = %d/%d", got.TotalGoals, got.TotalAssists)
	}
}

func TestRankStandings_TotalOrder(t *testing.T) {
	table := []StandingRow{
		{TeamName: "Spurs", Points: 60, GoalDiff: 10},
		{TeamName: "Arsenal", Points: 80, GoalDiff: 40},
		{TeamName: "Burnley", Points: 60, GoalDiff: 10},
		{TeamName: "Chelsea", Points: 60, GoalDiff: 15},
		{TeamName: "Villa", Points: 80, GoalDiff: 30},
	}
	rankStandings(table)

	wantOrder := []string{"Arsenal", "Villa", "Chelsea", "Burnley", "Spurs"}
	for i, name := range wantOrder {
		if table[i].TeamName != name {
			t.Errorf("rank %d = %s, want %s", i+1, table[i].TeamName, name)
		}
		if table[i].Rank != i+1 {
			t.Errorf("%s Rank = %d, want %d", table[i].TeamName, table[i].Rank, i+1)
		}
	}
}

func TestRankStandings_EqualTeamsSortByName(t *testing.T) {
	// Equal points and equal goal difference: lexicographically smaller
	// name ranks first, no matter the input order.
	a := []StandingRow{
		{TeamName: "Wolves", Points: 50, GoalDiff: 0},
		{TeamName: "Brentford", Points: 50, GoalDiff: 0},
	}
	b := []StandingRow{
		{TeamName: "Brentford", Points: 50, GoalDiff: 0},
		{TeamName: "Wolves", Points: 50, GoalDiff: 0},
	}
	rankStandings(a)
	rankStandings(b)
	if a[0].TeamName != "Brentford" || b[0].TeamName != "Brentford" {
		t.Errorf("tie order = %s / %s, want Brentford first in both", a[0].TeamName, b[0].TeamName)
	}
}

func TestOrderClause_Allowlist(t *testing.T) {
	tests := []struct {
		sortBy, order string
		want          string
	}{
		{"total_points", "desc", "ORDER BY p.total_points DESC"},
		{"name", "asc", "ORDER BY p.second_name ASC"},
		{"cost", "", "ORDER BY p.now_cost DESC"},
		{"form", "ASC", "ORDER BY COALESCE(p.form, 0) ASC"},
		{"position", "desc", "ORDER BY p.element_type DESC"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.sortBy, tt.order); got != tt.want {
			t.Errorf("orderClause(%q, %q) = %q, want %q", tt.sortBy, tt.order, got, tt.want)
		}
	}
}

func TestOrderClause_RejectsInjection(t *testing.T) {
	// Anything outside the allowlist falls back to total points; raw input
	// must never reach the clause.
	for _, hostile := range []string{"", "now_cost; DROP TABLE players", "1=1 --", "xG"} {
		got := orderClause(hostile, "desc")
		if got != "ORDER BY p.total_points DESC" {
			t.Errorf("orderClause(%q) = %q", hostile, got)
		}
		if strings.Contains(got, hostile) && hostile != "" {
			t.Errorf("caller input leaked into ORDER BY: %q", got)
		}
	}
}

func TestPositionLabel(t *testing.T) {
	want := map[int]string{1: "GKP", 2: "DEF", 3: "MID", 4: "FWD", 0: "UNK", 9: "UNK"}
	for code, label := range want {
		if got := positionLabel(code); got != label {
			t.Errorf("positionLabel(%d) = %q, want %q", code, got, label)
		}
	}
}
