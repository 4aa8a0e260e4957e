package matcher

import (
	"slices"
	"sort"

	"github.com/eugenenazirov/boxfit/internal/geometry"
)

// DefaultResults is the number of matches returned when none is requested.
const DefaultResults = 5

type rankingMatcher struct{}

// New creates a Matcher that filters by fit and ranks by size.
func New() Matcher {
	return &rankingMatcher{}
}

func (m *rankingMatcher) Match(records []Record, query Query) ([]Result, error) {
	return Match(records, query.Target, query.Mode, query.Sideways, query.Results)
}

// Match returns at most count records that fit target in the given mode,
// ranked smallest first for Over and largest first for Into.
func Match(records []Record, target geometry.Dimensions, mode Mode, sideways bool, count int) ([]Result, error) {
	if sideways && !target.HasHeight() {
		return nil, ErrSidewaysWithoutHeight
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	candidates := make([]Record, 0, len(records))
	for _, rec := range records {
		if fits(rec.Dimensions, target, mode, sideways) {
			candidates = append(candidates, rec)
		}
	}

	key := sizeKey(target)
	sort.SliceStable(candidates, func(i, j int) bool {
		return key(candidates[i].Dimensions) < key(candidates[j].Dimensions)
	})
	if mode == Into {
		slices.Reverse(candidates)
	}

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	results := make([]Result, 0, len(candidates))
	for _, rec := range candidates {
		results = append(results, Result{
			Record: rec,
			Ratio:  FillRatio(rec.Dimensions, target, mode),
		})
	}
	return results, nil
}

// FillRatio reports how closely candidate matches target. For flat targets
// the footprints are compared, otherwise the volumes. Over mode inverts the
// ratio; the value is not clamped and may exceed 1.
func FillRatio(candidate, target geometry.Dimensions, mode Mode) float64 {
	var ratio float64
	if !target.HasHeight() {
		ratio = float64(target.Area()) / float64(candidate.Area())
	} else {
		ratio = float64(candidate.Volume()) / float64(target.Volume())
	}
	if mode == Over {
		ratio = 1 / ratio
	}
	return ratio
}

func fits(candidate, target geometry.Dimensions, mode Mode, sideways bool) bool {
	if mode == Into {
		return candidate.FitsInto(target, sideways)
	}
	return candidate.FitsOver(target, sideways)
}

func sizeKey(target geometry.Dimensions) func(geometry.Dimensions) int64 {
	if target.HasHeight() {
		return geometry.Dimensions.Volume
	}
	return geometry.Dimensions.Area
}
