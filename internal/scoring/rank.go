package scoring

import (
	"fmt"
	"sort"
)

// OrderRange is the closed interval of order values across a result set. Together with
// each entry's own Order it is all a downstream weighting step needs.
type OrderRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max-Min.
func (r OrderRange) Span() float64 {
	return r.Max - r.Min
}

func (r OrderRange) include(v float64) OrderRange {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// RangeOf returns the minimum and maximum Order over entries.
func RangeOf(entries []ScoreEntry) (OrderRange, error) {
	if len(entries) == 0 {
		return OrderRange{}, fmt.Errorf("%w: no score entries", ErrInsufficientData)
	}
	r := OrderRange{Min: entries[0].Order, Max: entries[0].Order}
	for _, e := range entries[1:] {
		r = r.include(e.Order)
	}
	return r, nil
}

// Rank returns a copy of entries sorted by ascending Order, most preferred first.
// Ties keep their input order.
func Rank(entries []ScoreEntry) []ScoreEntry {
	ranked := make([]ScoreEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Order < ranked[j].Order
	})
	return ranked
}
