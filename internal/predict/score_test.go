package predict

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_WeightedFormula(t *testing.T) {
	// form 5.0, pts/90 = 100/(1500/90) = 6.0, avg = 100/20 = 5.0,
	// goal threat = 10*0.5 + 5*0.3 = 6.5
	// raw = 2.0 + 1.8 + 1.0 + 0.65 = 5.45, MID multiplier 1.0
	p := PlayerSeason{
		TotalPoints: 100, Minutes: 1500, Form: 5.0,
		Goals: 10, Assists: 5, Position: "MID", GamesPlayed: 20,
	}
	pts, conf := Score(p)
	if !almostEqual(pts, 5.45) {
		t.Errorf("predicted = %v, want 5.45", pts)
	}
	if conf != ConfidenceHigh {
		t.Errorf("confidence = %s, want HIGH", conf)
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := PlayerSeason{
		TotalPoints: 87, Minutes: 1320, Form: 4.2,
		Goals: 7, Assists: 4, Position: "FWD", GamesPlayed: 17,
	}
	pts1, conf1 := Score(p)
	pts2, conf2 := Score(p)
	if pts1 != pts2 || conf1 != conf2 {
		t.Errorf("Score not deterministic: (%v,%s) vs (%v,%s)", pts1, conf1, pts2, conf2)
	}
}

func TestScore_PositionMultipliers(t *testing.T) {
	// Form-only input: raw = 10*0.40 = 4.0, scaled per position.
	tests := []struct {
		position string
		want     float64
	}{
		{"GKP", 3.6},
		{"DEF", 3.8},
		{"MID", 4.0},
		{"FWD", 4.2},
		{"UNK", 4.0}, // unrecognized position keeps a neutral multiplier
	}
	for _, tt := range tests {
		pts, _ := Score(PlayerSeason{Form: 10.0, Position: tt.position})
		if !almostEqual(pts, tt.want) {
			t.Errorf("Score(form=10, %s) = %v, want %v", tt.position, pts, tt.want)
		}
	}
}

func TestScore_ClampedToBounds(t *testing.T) {
	// All-zero input floors at 2.0.
	pts, conf := Score(PlayerSeason{Position: "MID"})
	if pts != 2.0 {
		t.Errorf("zero input predicted = %v, want floor 2.0", pts)
	}
	if conf != ConfidenceLow {
		t.Errorf("zero input confidence = %s, want LOW", conf)
	}

	// Monster season caps at 15.0.
	pts, _ = Score(PlayerSeason{
		TotalPoints: 300, Minutes: 900, Form: 10.0,
		Goals: 30, Assists: 15, Position: "FWD", GamesPlayed: 10,
	})
	if pts != 15.0 {
		t.Errorf("huge input predicted = %v, want cap 15.0", pts)
	}
}

func TestScore_DivisionGuards(t *testing.T) {
	// minutes = 0 and games_played = 0 must not produce NaN or Inf.
	pts, _ := Score(PlayerSeason{TotalPoints: 50, Form: 3.0, Position: "DEF"})
	if math.IsNaN(pts) || math.IsInf(pts, 0) {
		t.Fatalf("predicted = %v", pts)
	}
	if pts < minPredicted || pts > maxPredicted {
		t.Errorf("predicted %v outside [%v, %v]", pts, minPredicted, maxPredicted)
	}
}

func TestScore_ConfidenceBoundaries(t *testing.T) {
	tests := []struct {
		minutes int
		form    float64
		want    Confidence
	}{
		{1500, 5.0, ConfidenceHigh},   // exact HIGH boundary
		{1499, 5.0, ConfidenceMedium}, // one minute short of HIGH
		{1500, 4.99, ConfidenceMedium},
		{900, 3.0, ConfidenceMedium}, // exact MEDIUM boundary
		{899, 9.9, ConfidenceLow},
		{2000, 2.99, ConfidenceLow},
		{0, 0, ConfidenceLow},
	}
	for _, tt := range tests {
		_, conf := Score(PlayerSeason{Minutes: tt.minutes, Form: tt.form, Position: "MID", GamesPlayed: 10})
		if conf != tt.want {
			t.Errorf("confidence(minutes=%d, form=%v) = %s, want %s", tt.minutes, tt.form, conf, tt.want)
		}
	}
}

func TestParseFormation(t *testing.T) {
	valid := map[string]Formation{
		"3-4-3": {3, 4, 3},
		"4-4-2": {4, 4, 2},
		"5-4-1": {5, 4, 1},
		"4-3-3": {4, 3, 3},
	}
	for in, want := range valid {
		got, err := ParseFormation(in)
		if err != nil {
			t.Errorf("ParseFormation(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormation(%q) = %+v, want %+v", in, got, want)
		}
		if got.String() != in {
			t.Errorf("Formation.String() = %q, want %q", got.String(), in)
		}
	}
}

func TestParseFormation_Invalid(t *testing.T) {
	for _, in := range []string{"", "3-4", "3-4-3-1", "a-b-c", "3-4-4", "10-0-1", "3--7", "4-4-3"} {
		_, err := ParseFormation(in)
		if err == nil {
			t.Errorf("ParseFormation(%q) = nil error", in)
			continue
		}
		if _, ok := err.(*InvalidFormationError); !ok {
			t.Errorf("ParseFormation(%q) error type = %T", in, err)
		}
	}
}

func TestFormationRequired(t *testing.T) {
	f := Formation{Defenders: 3, Midfielders: 4, Forwards: 3}
	if f.Required("GKP") != 1 {
		t.Error("goalkeeper count must be fixed at 1")
	}
	if f.Required("DEF") != 3 || f.Required("MID") != 4 || f.Required("FWD") != 3 {
		t.Errorf("outfield counts = %d-%d-%d", f.Required("DEF"), f.Required("MID"), f.Required("FWD"))
	}
	if f.Required("UNK") != 0 {
		t.Error("unknown bucket must require 0")
	}
}
