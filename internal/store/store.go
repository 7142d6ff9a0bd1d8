package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

// Rule is a persisted routing rule: a named scoring configuration.
type Rule struct {
	ID        uuid.UUID             `json:"rule_id"`
	Name      string                `json:"name"`
	Config    scoring.ScoringConfig `json:"config"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Evaluation records the outcome of evaluating a rule for one order line.
type Evaluation struct {
	ID            uuid.UUID            `json:"evaluation_id"`
	RuleID        uuid.UUID            `json:"rule_id"`
	OrderDetailID string               `json:"order_detail_id"`
	ItemID        string               `json:"item_id"`
	Entries       []scoring.ScoreEntry `json:"entries,omitempty"`
	Candidates    int                  `json:"candidates"`
	Fallback      bool                 `json:"fallback"`
	Error         string               `json:"error,omitempty"`
	DurationMs    int64                `json:"duration_ms"`
	CreatedAt     time.Time            `json:"created_at"`
}

type LocationFilter struct {
	Limit  int
	Offset int
}

type EvaluationFilter struct {
	RuleID uuid.UUID
	Limit  int
}

type Store interface {
	// Locations
	UpsertLocation(ctx context.Context, loc *scoring.Location) error
	GetLocation(ctx context.Context, id scoring.LocationID) (*scoring.Location, error)
	GetLocations(ctx context.Context, ids []scoring.LocationID) ([]scoring.Location, error)
	ListLocations(ctx context.Context, filter LocationFilter) ([]scoring.Location, error)

	// Rules
	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, id uuid.UUID) (*Rule, error)
	ListRules(ctx context.Context) ([]*Rule, error)
	UpdateRule(ctx context.Context, rule *Rule) error
	DeleteRule(ctx context.Context, id uuid.UUID) error

	// Evaluations
	CreateEvaluation(ctx context.Context, e *Evaluation) error
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]*Evaluation, error)

	Close() error
}
