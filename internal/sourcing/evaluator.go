package sourcing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Sourcing/internal/hermes"
	"github.com/MikeSquared-Agency/Sourcing/internal/inventory"
	"github.com/MikeSquared-Agency/Sourcing/internal/metrics"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

// LocationResolver turns a location-list specification into locations.
type LocationResolver interface {
	ParseByID(ctx context.Context, spec string) ([]scoring.Location, error)
	Validate(spec string) string
}

// Recorder persists evaluation outcomes.
type Recorder interface {
	CreateEvaluation(ctx context.Context, e *store.Evaluation) error
}

// OrderLine identifies the order detail and item a rule is evaluated for.
type OrderLine struct {
	OrderDetailID string `json:"order_detail_id" yaml:"order_detail_id"`
	ItemID        string `json:"item_id" yaml:"item_id" validate:"required"`
}

// Result is the outcome of evaluating one rule for one order line.
// Entries is nil when the rule's location list resolved to no locations.
type Result struct {
	RuleID        uuid.UUID            `json:"rule_id"`
	OrderDetailID string               `json:"order_detail_id,omitempty"`
	ItemID        string               `json:"item_id"`
	Candidates    int                  `json:"candidates"`
	Fallback      bool                 `json:"fallback"`
	Entries       []scoring.ScoreEntry `json:"entries"`
	Ranked        []scoring.ScoreEntry `json:"ranked,omitempty"`
	Range         *scoring.OrderRange  `json:"range,omitempty"`
}

// ValidationError lists every reason a rule's configuration cannot be scored.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid scoring config: " + strings.Join(e.Messages, "; ")
}

type Evaluator struct {
	locations LocationResolver
	inventory inventory.Service
	hermes    hermes.Client
	recorder  Recorder
	logger    *slog.Logger
}

// New creates an Evaluator. h and rec may be nil, in which case outcomes are neither
// published nor recorded.
func New(locations LocationResolver, inv inventory.Service, h hermes.Client, rec Recorder, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		locations: locations,
		inventory: inv,
		hermes:    h,
		recorder:  rec,
		logger:    logger,
	}
}

// Check validates cfg against the location catalog.
func (e *Evaluator) Check(cfg scoring.ScoringConfig) (bool, []string) {
	return scoring.Validate(cfg, e.locations.Validate)
}

// Evaluate scores the rule's inventory locations for the order line.
func (e *Evaluator) Evaluate(ctx context.Context, rule *store.Rule, line OrderLine) (*Result, error) {
	start := time.Now()

	if ok, messages := e.Check(rule.Config); !ok {
		err := &ValidationError{Messages: messages}
		e.finish(ctx, rule, line, nil, err, start)
		return nil, err
	}

	res, err := e.evaluate(ctx, rule, line)
	e.finish(ctx, rule, line, res, err, start)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Evaluator) evaluate(ctx context.Context, rule *store.Rule, line OrderLine) (*Result, error) {
	locs, err := e.locations.ParseByID(ctx, rule.Config.InventoryLocations)
	if err != nil {
		return nil, fmt.Errorf("resolve locations: %w", err)
	}

	res := &Result{RuleID: rule.ID, OrderDetailID: line.OrderDetailID, ItemID: line.ItemID}
	if len(locs) == 0 {
		return res, nil
	}

	var records []scoring.InventoryRecord
	if e.inventory != nil {
		records, err = e.inventory.GetRealtimeInventory(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("inventory for %s: %w", line.ItemID, err)
		}
	}

	candidates, fallback := scoring.FilterAvailableWithFallback(locs, records)
	res.Candidates = len(candidates)
	res.Fallback = fallback

	scorer, err := scoring.NewScorer(rule.Config)
	if err != nil {
		return nil, err
	}
	entries, err := scorer.Score(candidates, records)
	if err != nil {
		return nil, err
	}
	res.Entries = entries

	if r, err := scoring.RangeOf(entries); err == nil {
		res.Range = &r
		res.Ranked = scoring.Rank(entries)
	}
	return res, nil
}

func (e *Evaluator) finish(ctx context.Context, rule *store.Rule, line OrderLine, res *Result, evalErr error, start time.Time) {
	elapsed := time.Since(start)
	kind := kindLabel(rule.Config.Kind)
	outcome := outcomeOf(res, evalErr)

	metrics.Evaluations.WithLabelValues(kind, outcome).Inc()
	metrics.EvaluationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if res != nil {
		metrics.ScoredEntries.Observe(float64(len(res.Entries)))
		if res.Fallback {
			metrics.AvailabilityFallbacks.Inc()
		}
	}

	logger := e.logger.With("rule_id", rule.ID, "item_id", line.ItemID, "order_detail_id", line.OrderDetailID)
	if evalErr != nil {
		logger.Warn("rule evaluation failed", "outcome", outcome, "error", evalErr)
	} else {
		logger.Debug("rule evaluated", "outcome", outcome, "entries", len(res.Entries), "fallback", res.Fallback)
	}

	e.record(ctx, rule, line, res, evalErr, elapsed)
	e.publish(ctx, rule, line, res, evalErr)
}

func (e *Evaluator) record(ctx context.Context, rule *store.Rule, line OrderLine, res *Result, evalErr error, elapsed time.Duration) {
	if e.recorder == nil || rule.ID == uuid.Nil {
		return
	}
	ev := &store.Evaluation{
		RuleID:        rule.ID,
		OrderDetailID: line.OrderDetailID,
		ItemID:        line.ItemID,
		DurationMs:    elapsed.Milliseconds(),
	}
	if res != nil {
		ev.Entries = res.Entries
		ev.Candidates = res.Candidates
		ev.Fallback = res.Fallback
	}
	if evalErr != nil {
		ev.Error = evalErr.Error()
	}
	if err := e.recorder.CreateEvaluation(ctx, ev); err != nil {
		e.logger.Error("failed to record evaluation", "rule_id", rule.ID, "error", err)
	}
}

func (e *Evaluator) publish(ctx context.Context, rule *store.Rule, line OrderLine, res *Result, evalErr error) {
	if e.hermes == nil {
		return
	}
	ruleID := rule.ID.String()

	var (
		subject string
		payload interface{}
	)
	if evalErr != nil {
		ev := hermes.RuleFailedEvent{
			RuleID:        ruleID,
			Kind:          rule.Config.Kind,
			OrderDetailID: line.OrderDetailID,
			ItemID:        line.ItemID,
			Error:         evalErr.Error(),
			Timestamp:     time.Now().UTC(),
		}
		var verr *ValidationError
		if errors.As(evalErr, &verr) {
			ev.Messages = verr.Messages
		}
		subject, payload = hermes.SubjectRuleFailed(ruleID), ev
	} else {
		subject, payload = hermes.SubjectRuleEvaluated(ruleID), hermes.RuleEvaluatedEvent{
			RuleID:        ruleID,
			Kind:          rule.Config.Kind,
			OrderDetailID: line.OrderDetailID,
			ItemID:        line.ItemID,
			Candidates:    res.Candidates,
			Fallback:      res.Fallback,
			Entries:       res.Entries,
			Range:         res.Range,
			Timestamp:     time.Now().UTC(),
		}
	}

	if err := e.hermes.Publish(ctx, subject, payload); err != nil {
		e.logger.Warn("failed to publish evaluation event", "subject", subject, "error", err)
	}
}

func outcomeOf(res *Result, err error) string {
	var verr *ValidationError
	switch {
	case err == nil && res != nil && res.Entries == nil:
		return metrics.OutcomeNoLocations
	case err == nil:
		return metrics.OutcomeScored
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	case errors.Is(err, scoring.ErrAttributeNotNumeric):
		return metrics.OutcomeNotNumeric
	case errors.Is(err, scoring.ErrInsufficientData):
		return metrics.OutcomeInsufficient
	case errors.Is(err, scoring.ErrScoreOverflow):
		return metrics.OutcomeOverflow
	default:
		return metrics.OutcomeError
	}
}

// kindLabel keeps the metric label set fixed; stored configs may carry any kind string.
func kindLabel(k scoring.RuleKind) string {
	switch k {
	case scoring.KindFieldValue, scoring.KindMultiFieldValue:
		return string(k)
	default:
		return metrics.KindUnknown
	}
}

// SetupSubscriptions drops cached locations when another replica reports a location
// update. It is a no-op without an events client or a cache to invalidate.
func (e *Evaluator) SetupSubscriptions() {
	inv, ok := e.locations.(interface{ Invalidate(scoring.LocationID) })
	if e.hermes == nil || !ok {
		return
	}
	err := e.hermes.Subscribe(hermes.SubjectLocationUpdated("*"), func(subject string, data []byte) {
		var ev hermes.LocationUpdatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			e.logger.Warn("bad location event", "subject", subject, "error", err)
			return
		}
		inv.Invalidate(scoring.LocationID(ev.LocationID))
		e.logger.Debug("location invalidated", "location_id", ev.LocationID)
	})
	if err != nil {
		e.logger.Error("failed to subscribe to location updates", "error", err)
	}
}
