// Package metrics holds the Prometheus collectors exported on the metrics router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for Evaluations.
const (
	OutcomeScored       = "scored"
	OutcomeNoLocations  = "no_locations"
	OutcomeInvalid      = "invalid"
	OutcomeNotNumeric   = "not_numeric"
	OutcomeInsufficient = "insufficient_data"
	OutcomeOverflow     = "overflow"
	OutcomeError        = "error"
)

// KindUnknown labels evaluations of rules whose kind is not a known variant.
const KindUnknown = "unknown"

var (
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sourcing",
		Name:      "evaluations_total",
		Help:      "Rule evaluations by rule kind and outcome.",
	}, []string{"kind", "outcome"})

	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sourcing",
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent evaluating a rule for one order line.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"kind"})

	AvailabilityFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sourcing",
		Name:      "availability_fallbacks_total",
		Help:      "Evaluations where no location had stock and every location stayed a candidate.",
	})

	ScoredEntries = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sourcing",
		Name:      "scored_entries",
		Help:      "Number of score entries produced per evaluation.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})

	CatalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sourcing",
		Name:      "catalog_cache_misses_total",
		Help:      "Location lookups that went to the backing store.",
	})
)
