package predict

import (
	"fmt"
	"strconv"
	"strings"
)

// Formation is the outfield shape of a starting XI. The goalkeeper count
// is always 1, so the three outfield counts must sum to 10.
type Formation struct {
	Defenders   int
	Midfielders int
	Forwards    int
}

func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d", f.Defenders, f.Midfielders, f.Forwards)
}

// Required returns the required player count for a position bucket.
func (f Formation) Required(position string) int {
	switch position {
	case "GKP":
		return 1
	case "DEF":
		return f.Defenders
	case "MID":
		return f.Midfielders
	case "FWD":
		return f.Forwards
	default:
		return 0
	}
}

// InvalidFormationError is returned for formation strings that are not
// three dash-separated integers summing to 10.
type InvalidFormationError struct {
	Input  string
	Reason string
}

func (e *InvalidFormationError) Error() string {
	return fmt.Sprintf("invalid formation %q: %s", e.Input, e.Reason)
}

// ParseFormation parses strings like "3-4-3" or "4-4-2".
func ParseFormation(s string) (Formation, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Formation{}, &InvalidFormationError{Input: s, Reason: "expected three dash-separated counts"}
	}

	counts := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Formation{}, &InvalidFormationError{Input: s, Reason: fmt.Sprintf("%q is not a valid count", p)}
		}
		counts[i] = n
	}

	if counts[0]+counts[1]+counts[2] != 10 {
		return Formation{}, &InvalidFormationError{Input: s, Reason: "outfield counts must sum to 10"}
	}

	return Formation{Defenders: counts[0], Midfielders: counts[1], Forwards: counts[2]}, nil
}
