package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/pageza/cookbook/backend/internal/model"
)

// ErrNotFound is returned when the referenced recipe does not exist.
var ErrNotFound = errors.New("record not found")

var errNotInitialised = errors.New("repository not initialised")

// Repository defines the recipe journal's persistence operations
type Repository interface {
	// Recipes
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error)
	ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error)
	CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error

	// Cook logs
	AddCookLog(ctx context.Context, log *model.CookLog) (*model.CookLog, error)

	// Tags
	ListTags(ctx context.Context) ([]model.TagUsage, error)

	Ping(ctx context.Context) error
}

// Embedder turns recipe text into a search vector.
type Embedder func(text string) pgvector.Vector
