package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/cookbook/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error)
	ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error)
	CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	AddCookLog(ctx context.Context, recipeID uuid.UUID, in model.CookLogInput) (*model.CookLog, error)
	ListTags(ctx context.Context) ([]model.TagUsage, error)
	Ping(ctx context.Context) error
}

// IDescriptionService writes recipe descriptions.
type IDescriptionService interface {
	GenerateDescription(ctx context.Context, name string, ingredients []string) (string, error)
}

// IImageService generates recipe images.
type IImageService interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// IDashboardService defines the interface for dashboard statistics
type IDashboardService interface {
	Stats(ctx context.Context, rangeName string) (*model.DashboardStats, error)
}

var (
	_ IRecipeService      = (*RecipeService)(nil)
	_ IDescriptionService = (*DescriptionService)(nil)
	_ IImageService       = (*ImageService)(nil)
	_ IDashboardService   = (*DashboardService)(nil)
)
