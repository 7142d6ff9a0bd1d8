package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []scoring.LocationID
	}{
		{"single", "7", []scoring.LocationID{7}},
		{"comma list", "3,1,2", []scoring.LocationID{3, 1, 2}},
		{"mixed separators", "1; 2\t3\n4", []scoring.LocationID{1, 2, 3, 4}},
		{"range", "4-6", []scoring.LocationID{4, 5, 6}},
		{"range and list", "10, 1-3, 2, 10", []scoring.LocationID{10, 1, 2, 3}},
		{"trailing comma", "5,", []scoring.LocationID{5}},
		{"one element range", "8-8", []scoring.LocationID{8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDs(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDsErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		msg  string
	}{
		{"empty", "", "location list is empty"},
		{"only separators", " , ; ", "location list is empty"},
		{"not a number", "1,abc", `invalid location id "abc"`},
		{"zero", "0", `invalid location id "0"`},
		{"reversed range", "9-3", "end before start"},
		{"open range", "3-", `invalid location id ""`},
		{"huge range", "1-20000", "spans more than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIDs(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseIDsTotalSizeCap(t *testing.T) {
	var ranges []string
	for from := 1; from <= MaxListSize+MaxRangeSpan; from += MaxRangeSpan {
		ranges = append(ranges, fmt.Sprintf("%d-%d", from, from+MaxRangeSpan-1))
	}

	_, err := ParseIDs(strings.Join(ranges, ","))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than 50000 locations")

	got, err := ParseIDs(strings.Join(ranges[:MaxListSize/MaxRangeSpan], ",") + ",1,2")
	require.NoError(t, err)
	assert.Len(t, got, MaxListSize)
}

func TestValidateSpec(t *testing.T) {
	assert.Equal(t, "", ValidateSpec("1-3,7"))
	assert.Contains(t, ValidateSpec("x"), "Invalid inventory location list")
}

type countingSource struct {
	MemorySource
	calls int
	err   error
}

func (s *countingSource) GetLocations(ctx context.Context, ids []scoring.LocationID) ([]scoring.Location, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.MemorySource.GetLocations(ctx, ids)
}

func newSource() *countingSource {
	return &countingSource{MemorySource: NewMemorySource([]scoring.Location{
		{ID: 1, Attributes: map[string]string{"FillRate": "0.9"}},
		{ID: 2, Attributes: map[string]string{"FillRate": "0.7"}},
		{ID: 3, Attributes: map[string]string{}},
	})}
}

func TestParseByIDKeepsSpecOrderAndSkipsUnknown(t *testing.T) {
	c := New(newSource(), 0, discardLogger())

	got, err := c.ParseByID(context.Background(), "3, 42, 1, 3")
	require.NoError(t, err)

	var ids []scoring.LocationID
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []scoring.LocationID{3, 1}, ids)
}

func TestParseByIDInvalidSpec(t *testing.T) {
	c := New(newSource(), 0, discardLogger())
	_, err := c.ParseByID(context.Background(), "one,two")
	assert.Error(t, err)
}

func TestParseByIDSourceError(t *testing.T) {
	src := newSource()
	src.err = errors.New("db down")
	c := New(src, 0, discardLogger())

	_, err := c.ParseByID(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestParseByIDCachesLocations(t *testing.T) {
	src := newSource()
	c := New(src, time.Minute, discardLogger())

	_, err := c.ParseByID(context.Background(), "1,2")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	got, err := c.ParseByID(context.Background(), "2,1")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second lookup should be served from cache")
	assert.Len(t, got, 2)

	c.Invalidate(1)
	_, err = c.ParseByID(context.Background(), "1,2")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestParseByIDWithoutCacheAlwaysReadsThrough(t *testing.T) {
	src := newSource()
	c := New(src, 0, discardLogger())

	for i := 0; i < 3; i++ {
		_, err := c.ParseByID(context.Background(), "1")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)
}
