package scoring

import (
	"fmt"
	"math"
)

// neutralNorm is the normalized value assigned when every candidate shares the same
// attribute value and min-max normalization is undefined.
const neutralNorm = 0.5

// DualAttributeScorer combines two attributes, each min-max normalized across the
// candidates and weighted:
//
//	order = norm(v1)*Weight1 + norm(v2)*Weight2,  norm(v) = (v-min)/(max-min)
//
// A PreferHigh attribute contributes 1-norm instead. Only candidates holding both
// keys are scored, and every value must be numeric.
type DualAttributeScorer struct {
	Key1        string
	Preference1 Preference
	Weight1     float64

	Key2        string
	Preference2 Preference
	Weight2     float64
}

type dualValues struct {
	loc    Location
	v1, v2 float64
}

// Score returns one entry per candidate holding both keys. It fails with
// ErrInsufficientData when no candidate qualifies, ErrAttributeNotNumeric when a
// value cannot be parsed and ErrScoreOverflow when a weighted sum leaves the float64
// range; no entries are returned on failure.
func (s DualAttributeScorer) Score(candidates []Location, inventory []InventoryRecord) ([]ScoreEntry, error) {
	var rows []dualValues
	for _, loc := range candidates {
		raw1, ok1 := loc.Attributes[s.Key1]
		raw2, ok2 := loc.Attributes[s.Key2]
		if !ok1 || !ok2 {
			continue
		}
		v1, ok := parseAttribute(raw1)
		if !ok {
			return nil, fmt.Errorf("%w: location %d %q=%q", ErrAttributeNotNumeric, loc.ID, s.Key1, raw1)
		}
		v2, ok := parseAttribute(raw2)
		if !ok {
			return nil, fmt.Errorf("%w: location %d %q=%q", ErrAttributeNotNumeric, loc.ID, s.Key2, raw2)
		}
		rows = append(rows, dualValues{loc: loc, v1: v1, v2: v2})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no candidate holds both %q and %q", ErrInsufficientData, s.Key1, s.Key2)
	}

	r1 := OrderRange{Min: rows[0].v1, Max: rows[0].v1}
	r2 := OrderRange{Min: rows[0].v2, Max: rows[0].v2}
	for _, row := range rows[1:] {
		r1 = r1.include(row.v1)
		r2 = r2.include(row.v2)
	}

	stock := inventoryIndex(inventory)
	entries := make([]ScoreEntry, 0, len(rows))
	for _, row := range rows {
		n1 := normalize(row.v1, r1, s.Preference1)
		n2 := normalize(row.v2, r2, s.Preference2)
		order := n1*s.Weight1 + n2*s.Weight2
		if math.IsNaN(order) || math.IsInf(order, 0) {
			return nil, fmt.Errorf("%w: location %d weights %g and %g", ErrScoreOverflow, row.loc.ID, s.Weight1, s.Weight2)
		}
		entries = append(entries, ScoreEntry{
			LocationID: row.loc.ID,
			Order:      order,
			Available:  stock[row.loc.ID],
		})
	}
	return entries, nil
}

// normalize maps v into [0,1] over r. Values whose difference overflows float64 are
// halved first so the quotient stays finite.
func normalize(v float64, r OrderRange, pref Preference) float64 {
	if r.Min == r.Max {
		return neutralNorm
	}
	var n float64
	if span := r.Span(); !math.IsInf(span, 0) {
		n = (v - r.Min) / span
	} else {
		n = (v/2 - r.Min/2) / (r.Max/2 - r.Min/2)
	}
	if pref == PreferHigh {
		n = 1 - n
	}
	return n
}
