package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/MikeSquared-Agency/Sourcing/internal/catalog"
	"github.com/MikeSquared-Agency/Sourcing/internal/inventory"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
	"github.com/MikeSquared-Agency/Sourcing/internal/sourcing"
	"github.com/MikeSquared-Agency/Sourcing/internal/store"
)

// MockStore implements store.Store for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) UpsertLocation(ctx context.Context, loc *scoring.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockStore) GetLocation(ctx context.Context, id scoring.LocationID) (*scoring.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.Location), args.Error(1)
}

func (m *MockStore) GetLocations(ctx context.Context, ids []scoring.LocationID) ([]scoring.Location, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.Location), args.Error(1)
}

func (m *MockStore) ListLocations(ctx context.Context, filter store.LocationFilter) ([]scoring.Location, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.Location), args.Error(1)
}

func (m *MockStore) CreateRule(ctx context.Context, rule *store.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockStore) GetRule(ctx context.Context, id uuid.UUID) (*store.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Rule), args.Error(1)
}

func (m *MockStore) ListRules(ctx context.Context) ([]*store.Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Rule), args.Error(1)
}

func (m *MockStore) UpdateRule(ctx context.Context, rule *store.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockStore) DeleteRule(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateEvaluation(ctx context.Context, e *store.Evaluation) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockStore) ListEvaluations(ctx context.Context, filter store.EvaluationFilter) ([]*store.Evaluation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Evaluation), args.Error(1)
}

func (m *MockStore) Close() error { return nil }

type mockHermes struct {
	subjects []string
}

func (m *mockHermes) Publish(_ context.Context, subject string, _ interface{}) error {
	m.subjects = append(m.subjects, subject)
	return nil
}
func (m *mockHermes) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *mockHermes) Close()                                           {}

type mockCache struct {
	invalidated []scoring.LocationID
}

func (m *mockCache) Invalidate(id scoring.LocationID) {
	m.invalidated = append(m.invalidated, id)
}

const testToken = "test-token"

type testEnv struct {
	router http.Handler
	store  *MockStore
	hermes *mockHermes
	cache  *mockCache
}

func testLocations() []scoring.Location {
	return []scoring.Location{
		{ID: 1, Attributes: map[string]string{"Cost": "4", "Days": "2"}},
		{ID: 2, Attributes: map[string]string{"Cost": "7", "Days": "x"}},
		{ID: 3, Attributes: map[string]string{"Cost": "1"}},
	}
}

func setupTestRouter() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{store: &MockStore{}, hermes: &mockHermes{}, cache: &mockCache{}}

	cat := catalog.New(catalog.NewMemorySource(testLocations()), 0, logger)
	inv := inventory.StaticService{"SKU-1": {{LocationID: 1, Available: 3}, {LocationID: 3, Available: 9}}}
	ev := sourcing.New(cat, inv, env.hermes, env.store, logger)

	env.router = NewRouter(env.store, env.hermes, ev, env.cache, testToken, 1000, logger)
	return env
}
