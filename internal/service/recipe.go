package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/repository"
)

const (
	msgRecipeRequired  = "Name, description, and cooking time are required"
	msgRecipeNotFound  = "Recipe not found"
	msgCookLogRequired = "Date and rating are required"
)

// RecipeService validates recipe requests and hands them to the repository.
type RecipeService struct {
	repo repository.Repository
	now  func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(repo repository.Repository) *RecipeService {
	return &RecipeService{repo: repo, now: time.Now}
}

// GetRecipe returns one recipe with all of its children.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	detail, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return nil, s.translate(err, "Failed to fetch recipe")
	}
	return detail, nil
}

// ListRecipes returns every recipe matching filter, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error) {
	details, err := s.repo.ListRecipes(ctx, filter)
	if err != nil {
		return nil, s.translate(err, "Failed to fetch recipes")
	}
	if details == nil {
		details = []*model.RecipeDetail{}
	}
	return details, nil
}

// CreateRecipe validates and stores a new recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Description == "" || in.CookingTime <= 0 {
		return nil, validationError(msgRecipeRequired)
	}

	in.Image = strings.TrimSpace(in.Image)
	if in.Image == "" {
		in.Image = model.PlaceholderImage
	}
	in.Ingredients = cleanLines(in.Ingredients)
	in.Steps = cleanLines(in.Steps)
	in.Tags = cleanTags(in.Tags)

	recipe, err := s.repo.CreateRecipe(ctx, in)
	if err != nil {
		return nil, s.translate(err, "Failed to create recipe")
	}

	logrus.WithFields(logrus.Fields{
		"recipe_id":   recipe.ID,
		"ingredients": len(in.Ingredients),
		"steps":       len(in.Steps),
		"tags":        len(in.Tags),
	}).Info("recipe created")
	return recipe, nil
}

// UpdateRecipe applies a partial update. Supplied text fields must not be
// blank and a supplied cooking time must be positive.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("Name cannot be empty")
		}
		patch.Name = &name
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if desc == "" {
			return nil, validationError("Description cannot be empty")
		}
		patch.Description = &desc
	}
	if patch.CookingTime != nil && *patch.CookingTime <= 0 {
		return nil, validationError("Cooking time must be greater than zero")
	}
	if patch.Image != nil {
		image := strings.TrimSpace(*patch.Image)
		if image == "" {
			image = model.PlaceholderImage
		}
		patch.Image = &image
	}
	if patch.Ingredients != nil {
		lines := cleanLines(*patch.Ingredients)
		patch.Ingredients = &lines
	}
	if patch.Steps != nil {
		lines := cleanLines(*patch.Steps)
		patch.Steps = &lines
	}
	if patch.Tags != nil {
		tags := cleanTags(*patch.Tags)
		patch.Tags = &tags
	}

	recipe, err := s.repo.UpdateRecipe(ctx, id, patch)
	if err != nil {
		return nil, s.translate(err, "Failed to update recipe")
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe and everything attached to it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		return s.translate(err, "Failed to delete recipe")
	}
	logrus.WithField("recipe_id", id).Info("recipe deleted")
	return nil
}

// AddCookLog records a cook and refreshes the recipe's stored average.
func (s *RecipeService) AddCookLog(ctx context.Context, recipeID uuid.UUID, in model.CookLogInput) (*model.CookLog, error) {
	if strings.TrimSpace(in.Date) == "" || in.Rating == nil {
		return nil, validationError(msgCookLogRequired)
	}
	date, err := ParseCookDate(in.Date)
	if err != nil {
		return nil, validationError("Date must be YYYY-MM-DD or RFC 3339")
	}
	if *in.Rating < 1 || *in.Rating > 5 {
		return nil, validationError("Rating must be between 1 and 5")
	}

	var notes *string
	if in.Notes != nil {
		if trimmed := strings.TrimSpace(*in.Notes); trimmed != "" {
			notes = &trimmed
		}
	}

	log, err := s.repo.AddCookLog(ctx, &model.CookLog{
		RecipeID: recipeID,
		Date:     date,
		Rating:   *in.Rating,
		Notes:    notes,
	})
	if err != nil {
		return nil, s.translate(err, "Failed to add cook log")
	}
	return log, nil
}

// ListTags returns every tag with the number of recipes using it.
func (s *RecipeService) ListTags(ctx context.Context) ([]model.TagUsage, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, s.translate(err, "Failed to fetch tags")
	}
	if tags == nil {
		tags = []model.TagUsage{}
	}
	return tags, nil
}

// Ping reports whether the store is reachable.
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *RecipeService) translate(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError(msgRecipeNotFound)
	}
	logrus.WithError(err).Error(msg)
	return storageError(msg, err)
}

// ParseCookDate accepts a calendar date or a full RFC 3339 timestamp and
// returns it in UTC.
func ParseCookDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// cleanLines trims entries and drops blank ones, keeping order.
func cleanLines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// cleanTags trims tag names, drops blanks and collapses duplicates. The first
// occurrence wins. Comparison is case-sensitive.
func cleanTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
