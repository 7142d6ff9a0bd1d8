package scoring

import (
	"math"
	"strconv"
	"strings"
)

// SingleAttributeScorer orders locations by the raw value of one attribute.
type SingleAttributeScorer struct {
	Key        string
	Preference Preference
}

// Score returns one entry per candidate holding the key. Empty or unparsable values
// score 0; PreferHigh negates the value so that higher values rank first.
// Candidates without the key are skipped.
func (s SingleAttributeScorer) Score(candidates []Location, inventory []InventoryRecord) ([]ScoreEntry, error) {
	stock := inventoryIndex(inventory)

	entries := []ScoreEntry{}
	for _, loc := range candidates {
		raw, ok := loc.Attributes[s.Key]
		if !ok {
			continue
		}

		order, _ := parseAttribute(raw)
		if s.Preference == PreferHigh && order != 0 {
			order = -order
		}

		entries = append(entries, ScoreEntry{
			LocationID: loc.ID,
			Order:      order,
			Available:  stock[loc.ID],
		})
	}
	return entries, nil
}

// parseAttribute parses a string-encoded attribute value. ok is false for empty,
// malformed or non-finite values, in which case v is 0.
func parseAttribute(raw string) (v float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
