package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the sourcing tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Locations ---

func (s *PostgresStore) UpsertLocation(ctx context.Context, loc *scoring.Location) error {
	attrs := loc.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO sourcing_locations (id, name, attributes, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, attributes = EXCLUDED.attributes, updated_at = now()`,
		int64(loc.ID), loc.Name, attrsJSON,
	)
	return err
}

func (s *PostgresStore) GetLocation(ctx context.Context, id scoring.LocationID) (*scoring.Location, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, attributes FROM sourcing_locations WHERE id = $1`, int64(id))
	loc, err := scanLocation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *PostgresStore) GetLocations(ctx context.Context, ids []scoring.LocationID) ([]scoring.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, attributes FROM sourcing_locations WHERE id = ANY($1)`, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLocations(rows)
}

func (s *PostgresStore) ListLocations(ctx context.Context, filter LocationFilter) ([]scoring.Location, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, attributes FROM sourcing_locations
		ORDER BY id LIMIT $1 OFFSET $2`, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLocations(rows)
}

func scanLocation(row pgx.Row) (scoring.Location, error) {
	var (
		loc       scoring.Location
		id        int64
		attrsJSON []byte
	)
	if err := row.Scan(&id, &loc.Name, &attrsJSON); err != nil {
		return scoring.Location{}, err
	}
	loc.ID = scoring.LocationID(id)
	loc.Attributes = map[string]string{}
	if len(attrsJSON) > 0 {
		if err := json.Unmarshal(attrsJSON, &loc.Attributes); err != nil {
			return scoring.Location{}, fmt.Errorf("location %d attributes: %w", id, err)
		}
	}
	return loc, nil
}

func collectLocations(rows pgx.Rows) ([]scoring.Location, error) {
	var out []scoring.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// --- Rules ---

const ruleColumns = `rule_id, name, config, created_at, updated_at`

func (s *PostgresStore) CreateRule(ctx context.Context, rule *Rule) error {
	configJSON, err := json.Marshal(rule.Config)
	if err != nil {
		return fmt.Errorf("marshal rule config: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO sourcing_rules (name, config)
		VALUES ($1, $2)
		RETURNING rule_id, created_at, updated_at`,
		rule.Name, configJSON,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (s *PostgresStore) GetRule(ctx context.Context, id uuid.UUID) (*Rule, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+ruleColumns+` FROM sourcing_rules WHERE rule_id = $1`, id)
	r, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func (s *PostgresStore) ListRules(ctx context.Context) ([]*Rule, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+ruleColumns+` FROM sourcing_rules ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Rule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateRule(ctx context.Context, rule *Rule) error {
	configJSON, err := json.Marshal(rule.Config)
	if err != nil {
		return fmt.Errorf("marshal rule config: %w", err)
	}
	err = s.pool.QueryRow(ctx, `
		UPDATE sourcing_rules SET name = $2, config = $3, updated_at = now()
		WHERE rule_id = $1
		RETURNING updated_at`,
		rule.ID, rule.Name, configJSON,
	).Scan(&rule.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("rule %s not found", rule.ID)
	}
	return err
}

func (s *PostgresStore) DeleteRule(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sourcing_rules WHERE rule_id = $1`, id)
	return err
}

func scanRule(row pgx.Row) (*Rule, error) {
	r := &Rule{}
	var configJSON []byte
	if err := row.Scan(&r.ID, &r.Name, &configJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(configJSON, &r.Config); err != nil {
		return nil, fmt.Errorf("rule %s config: %w", r.ID, err)
	}
	return r, nil
}

// --- Evaluations ---

func (s *PostgresStore) CreateEvaluation(ctx context.Context, e *Evaluation) error {
	var entriesJSON []byte
	if e.Entries != nil {
		var err error
		if entriesJSON, err = json.Marshal(e.Entries); err != nil {
			return fmt.Errorf("marshal entries: %w", err)
		}
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO sourcing_evaluations (rule_id, order_detail_id, item_id, entries,
			candidates, fallback, error, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING evaluation_id, created_at`,
		e.RuleID, e.OrderDetailID, e.ItemID, entriesJSON,
		e.Candidates, e.Fallback, e.Error, e.DurationMs,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]*Evaluation, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT evaluation_id, rule_id, order_detail_id, item_id, entries,
			candidates, fallback, error, duration_ms, created_at
		FROM sourcing_evaluations
		WHERE rule_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, filter.RuleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Evaluation
	for rows.Next() {
		e := &Evaluation{}
		var entriesJSON []byte
		if err := rows.Scan(&e.ID, &e.RuleID, &e.OrderDetailID, &e.ItemID, &entriesJSON,
			&e.Candidates, &e.Fallback, &e.Error, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(entriesJSON) > 0 {
			if err := json.Unmarshal(entriesJSON, &e.Entries); err != nil {
				return nil, fmt.Errorf("evaluation %s entries: %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
