package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/MikeSquared-Agency/Sourcing/internal/metrics"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

// Source loads locations by id. Unknown ids are omitted from the result.
type Source interface {
	GetLocations(ctx context.Context, ids []scoring.LocationID) ([]scoring.Location, error)
}

// Catalog resolves location-list specifications into locations.
type Catalog struct {
	source Source
	cache  *ttlcache.Cache[scoring.LocationID, scoring.Location]
	logger *slog.Logger
}

// New creates a Catalog over source. A positive ttl caches each location for that long.
func New(source Source, ttl time.Duration, logger *slog.Logger) *Catalog {
	c := &Catalog{source: source, logger: logger}
	if ttl > 0 {
		c.cache = ttlcache.New[scoring.LocationID, scoring.Location](
			ttlcache.WithTTL[scoring.LocationID, scoring.Location](ttl),
			ttlcache.WithDisableTouchOnHit[scoring.LocationID, scoring.Location](),
		)
	}
	return c
}

// Start runs cache expiry until Stop is called. It blocks.
func (c *Catalog) Start() {
	if c.cache != nil {
		c.cache.Start()
	}
}

// Stop halts cache expiry started by Start.
func (c *Catalog) Stop() {
	if c.cache != nil {
		c.cache.Stop()
	}
}

// Validate implements scoring.LocationListValidator.
func (c *Catalog) Validate(spec string) string {
	return ValidateSpec(spec)
}

// Invalidate drops a cached location so the next lookup reads through to the source.
func (c *Catalog) Invalidate(id scoring.LocationID) {
	if c.cache != nil {
		c.cache.Delete(id)
	}
}

// ParseByID parses spec and returns the matching locations in spec order, deduplicated.
// Ids the source does not know are skipped.
func (c *Catalog) ParseByID(ctx context.Context, spec string) ([]scoring.Location, error) {
	ids, err := ParseIDs(spec)
	if err != nil {
		return nil, err
	}

	found := make(map[scoring.LocationID]scoring.Location, len(ids))
	var missing []scoring.LocationID
	for _, id := range ids {
		if c.cache != nil {
			if item := c.cache.Get(id); item != nil {
				found[id] = item.Value()
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		metrics.CatalogCacheMisses.Add(float64(len(missing)))
		loaded, err := c.source.GetLocations(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("load locations: %w", err)
		}
		for _, l := range loaded {
			found[l.ID] = l
			if c.cache != nil {
				c.cache.Set(l.ID, l, ttlcache.DefaultTTL)
			}
		}
	}

	out := make([]scoring.Location, 0, len(ids))
	for _, id := range ids {
		l, ok := found[id]
		if !ok {
			c.logger.Debug("unknown location in list", "location_id", id)
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// MemorySource is a Source over a fixed set of locations.
type MemorySource map[scoring.LocationID]scoring.Location

// NewMemorySource indexes locations by id.
func NewMemorySource(locations []scoring.Location) MemorySource {
	m := make(MemorySource, len(locations))
	for _, l := range locations {
		m[l.ID] = l
	}
	return m
}

func (m MemorySource) GetLocations(_ context.Context, ids []scoring.LocationID) ([]scoring.Location, error) {
	var out []scoring.Location
	for _, id := range ids {
		if l, ok := m[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
