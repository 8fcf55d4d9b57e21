package trend

import (
	"reflect"
	"testing"
)

func TestFill_GapsGetZeroRows(t *testing.T) {
	rows := []Point{
		{Gameweek: 2, TotalPoints: 50, TotalGoals: 4, TotalAssists: 3, AvgMinutes: 61.5},
		{Gameweek: 5, TotalPoints: 80, TotalGoals: 9, TotalAssists: 6, AvgMinutes: 70.2},
	}

	got := Fill(rows, 6)

	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	for i, p := range got {
		if p.Gameweek != i+1 {
			t.Errorf("got[%d].Gameweek = %d, want %d", i, p.Gameweek, i+1)
		}
	}
	if !reflect.DeepEqual(got[1], rows[0]) {
		t.Errorf("present gameweek 2 altered: %+v", got[1])
	}
	if !reflect.DeepEqual(got[4], rows[1]) {
		t.Errorf("present gameweek 5 altered: %+v", got[4])
	}
	for _, i := range []int{0, 2, 3, 5} {
		want := Point{Gameweek: i + 1}
		if got[i] != want {
			t.Errorf("gap at gameweek %d = %+v, want zero row", i+1, got[i])
		}
	}
}

func TestFill_LengthAlwaysMaxGameweek(t *testing.T) {
	for _, max := range []int{1, 10, 38} {
		got := Fill(nil, max)
		if len(got) != max {
			t.Errorf("Fill(nil, %d) len = %d", max, len(got))
		}
	}
}

func TestFill_DenseInputIsNoOp(t *testing.T) {
	rows := []Point{
		{Gameweek: 1, TotalPoints: 10},
		{Gameweek: 2, TotalPoints: 20},
		{Gameweek: 3, TotalPoints: 30},
	}
	got := Fill(rows, 3)
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("dense input changed: %+v", got)
	}
	// Idempotent: filling its own output again changes nothing.
	if again := Fill(got, 3); !reflect.DeepEqual(again, got) {
		t.Errorf("second fill changed output: %+v", again)
	}
}

func TestFill_ZeroMaxGameweek(t *testing.T) {
	if got := Fill([]Point{{Gameweek: 1}}, 0); len(got) != 0 {
		t.Errorf("Fill(_, 0) len = %d, want 0", len(got))
	}
}

func TestFillPlayer(t *testing.T) {
	rows := []PlayerPoint{
		{Gameweek: 3, Points: 9, Minutes: 90, Goals: 1, Assists: 1, Value: 7.5},
	}
	got := FillPlayer(rows, 4)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[2] != rows[0] {
		t.Errorf("present row altered: %+v", got[2])
	}
	for _, i := range []int{0, 1, 3} {
		if got[i] != (PlayerPoint{Gameweek: i + 1}) {
			t.Errorf("gap at %d = %+v", i+1, got[i])
		}
	}
}
