package scoring

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRangeOf(t *testing.T) {
	entries := []ScoreEntry{
		{LocationID: 1, Order: 3},
		{LocationID: 2, Order: -1.5},
		{LocationID: 3, Order: 8},
	}
	r, err := RangeOf(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Min != -1.5 || r.Max != 8 {
		t.Errorf("expected [-1.5, 8], got [%v, %v]", r.Min, r.Max)
	}
	if r.Span() != 9.5 {
		t.Errorf("expected span 9.5, got %v", r.Span())
	}
}

func TestRangeOfEmpty(t *testing.T) {
	_, err := RangeOf(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRank(t *testing.T) {
	entries := []ScoreEntry{
		{LocationID: 1, Order: 2},
		{LocationID: 2, Order: -1},
		{LocationID: 3, Order: 2},
		{LocationID: 4, Order: 0},
	}
	ranked := Rank(entries)

	got := make([]LocationID, len(ranked))
	for i, e := range ranked {
		got[i] = e.LocationID
	}
	if diff := cmp.Diff([]LocationID{2, 4, 1, 3}, got); diff != "" {
		t.Errorf("rank order mismatch (-want +got):\n%s", diff)
	}
	if entries[0].LocationID != 1 {
		t.Error("Rank must not reorder its input")
	}
}
