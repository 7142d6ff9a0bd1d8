package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

// MaxRangeSpan bounds a single a-b range so a typo cannot expand into millions of ids.
const MaxRangeSpan = 10000

// MaxListSize bounds the number of distinct ids one location list may expand to.
const MaxListSize = 50000

// ParseIDs parses a location list such as "1, 4-6;9" into ids. Separators are commas,
// semicolons and whitespace; ranges are inclusive. Duplicates are dropped, keeping
// the first occurrence.
func ParseIDs(spec string) ([]scoring.LocationID, error) {
	tokens := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(tokens) == 0 {
		return nil, errors.New("location list is empty")
	}

	seen := make(map[scoring.LocationID]bool)
	var out []scoring.LocationID
	add := func(id scoring.LocationID) error {
		if seen[id] {
			return nil
		}
		if len(out) >= MaxListSize {
			return fmt.Errorf("list expands to more than %d locations", MaxListSize)
		}
		seen[id] = true
		out = append(out, id)
		return nil
	}

	for _, tok := range tokens {
		lo, hi, isRange := strings.Cut(tok, "-")
		if !isRange {
			id, err := parseID(tok)
			if err != nil {
				return nil, err
			}
			if err := add(id); err != nil {
				return nil, err
			}
			continue
		}

		from, err := parseID(lo)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", tok, err)
		}
		to, err := parseID(hi)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", tok, err)
		}
		if to < from {
			return nil, fmt.Errorf("range %q: end before start", tok)
		}
		if to-from >= MaxRangeSpan {
			return nil, fmt.Errorf("range %q: spans more than %d locations", tok, MaxRangeSpan)
		}
		for id := from; id <= to; id++ {
			if err := add(id); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ValidateSpec returns "" when spec parses and the parse error text otherwise.
func ValidateSpec(spec string) string {
	if _, err := ParseIDs(spec); err != nil {
		return "Invalid inventory location list: " + err.Error()
	}
	return ""
}

func parseID(s string) (scoring.LocationID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid location id %q", s)
	}
	return scoring.LocationID(n), nil
}
