package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cookbook/backend/internal/model"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) AddCookLog(ctx context.Context, recipeID uuid.UUID, in model.CookLogInput) (*model.CookLog, error) {
	args := m.Called(ctx, recipeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CookLog), args.Error(1)
}

func (m *MockRecipeService) ListTags(ctx context.Context) ([]model.TagUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TagUsage), args.Error(1)
}

func (m *MockRecipeService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDescriptionService is a mock implementation of service.IDescriptionService
type MockDescriptionService struct {
	mock.Mock
}

func (m *MockDescriptionService) GenerateDescription(ctx context.Context, name string, ingredients []string) (string, error) {
	args := m.Called(ctx, name, ingredients)
	return args.String(0), args.Error(1)
}

// MockImageService is a mock implementation of service.IImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockDashboardService is a mock implementation of service.IDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context, rangeName string) (*model.DashboardStats, error) {
	args := m.Called(ctx, rangeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}
