package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/model"
)

// MockRepository is a mock implementation of repository.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeDetail), args.Error(1)
}

func (m *MockRepository) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecipeDetail), args.Error(1)
}

func (m *MockRepository) CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AddCookLog(ctx context.Context, log *model.CookLog) (*model.CookLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CookLog), args.Error(1)
}

func (m *MockRepository) ListTags(ctx context.Context) ([]model.TagUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TagUsage), args.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStatsStore is a mock implementation of service.StatsStore
type MockStatsStore struct {
	mock.Mock
}

func (m *MockStatsStore) Totals(ctx context.Context) (model.Totals, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Totals), args.Error(1)
}

func (m *MockStatsStore) CookDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockStatsStore) MostCooked(ctx context.Context, limit uint64) ([]model.RecipeStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeStat), args.Error(1)
}

func (m *MockStatsStore) HighestRated(ctx context.Context, limit uint64) ([]model.RecipeStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeStat), args.Error(1)
}

func (m *MockStatsStore) RecentActivity(ctx context.Context, limit uint64) ([]model.ActivityEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityEntry), args.Error(1)
}
