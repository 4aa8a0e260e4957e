package matcher

import (
	"fmt"
	"strings"

	"github.com/eugenenazirov/boxfit/internal/geometry"
)

// Mode selects which side of the comparison the catalog boxes play.
type Mode int

const (
	// Over ranks boxes that can cover the target.
	Over Mode = iota
	// Into ranks boxes that fit inside the target.
	Into
)

func (m Mode) String() string {
	if m == Into {
		return "into"
	}
	return "over"
}

// ParseMode accepts "into" or "over", case-insensitively.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "over", "":
		return Over, nil
	case "into":
		return Into, nil
	default:
		return Over, fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// Record is a named box with the dimensions used for matching.
type Record struct {
	Name       string
	Dimensions geometry.Dimensions
}

// Result is a matched record and its fill ratio.
type Result struct {
	Record
	Ratio float64
}

// Percent is the fill ratio expressed as a percentage.
func (r Result) Percent() float64 {
	return r.Ratio * 100
}

// Query bundles the inputs of a single lookup.
type Query struct {
	Target   geometry.Dimensions
	Mode     Mode
	Sideways bool
	Results  int
}

// Matcher describes the behaviour required from a box matcher.
type Matcher interface {
	Match(records []Record, query Query) ([]Result, error)
}
