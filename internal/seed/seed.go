// Package seed loads a fixture of recipes and cook logs into a fresh
// database through the recipe service.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/pageza/cookbook/backend/internal/model"
)

//go:embed recipes.yaml
var defaultFixture []byte

// Fixture is the YAML document the seeder reads.
type Fixture struct {
	Recipes []FixtureRecipe `yaml:"recipes"`
}

type FixtureRecipe struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Image       string           `yaml:"image"`
	CookingTime int              `yaml:"cooking_time"`
	Ingredients []string         `yaml:"ingredients"`
	Steps       []string         `yaml:"steps"`
	Tags        []string         `yaml:"tags"`
	CookLogs    []FixtureCookLog `yaml:"cook_logs"`
}

type FixtureCookLog struct {
	Date   string `yaml:"date"`
	Rating int    `yaml:"rating"`
	Notes  string `yaml:"notes"`
}

// Parse decodes a fixture document.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// Default returns the fixture shipped with the binary.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// RecipeWriter is the subset of the recipe service the seeder needs.
type RecipeWriter interface {
	ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error)
	CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error)
	AddCookLog(ctx context.Context, recipeID uuid.UUID, in model.CookLogInput) (*model.CookLog, error)
}

// Result describes what happened to one fixture recipe.
type Result struct {
	Name     string
	ID       uuid.UUID
	CookLogs int
	Skipped  bool
}

// Seeder writes fixtures through a RecipeWriter so every row passes the
// same validation as an API request.
type Seeder struct {
	recipes RecipeWriter
}

func NewSeeder(recipes RecipeWriter) *Seeder {
	return &Seeder{recipes: recipes}
}

// Run creates every recipe in the fixture. A recipe whose name already
// exists is skipped, so running twice does not duplicate anything.
func (s *Seeder) Run(ctx context.Context, f *Fixture) ([]Result, error) {
	results := make([]Result, 0, len(f.Recipes))
	for _, fr := range f.Recipes {
		exists, err := s.exists(ctx, fr.Name)
		if err != nil {
			return results, err
		}
		if exists {
			logrus.WithField("name", fr.Name).Info("recipe already present, skipping")
			results = append(results, Result{Name: fr.Name, Skipped: true})
			continue
		}

		recipe, err := s.recipes.CreateRecipe(ctx, model.RecipeInput{
			Name:        fr.Name,
			Description: fr.Description,
			Image:       fr.Image,
			CookingTime: fr.CookingTime,
			Ingredients: fr.Ingredients,
			Steps:       fr.Steps,
			Tags:        fr.Tags,
		})
		if err != nil {
			return results, fmt.Errorf("seed %q: %w", fr.Name, err)
		}

		res := Result{Name: recipe.Name, ID: recipe.ID}
		for _, fl := range fr.CookLogs {
			rating := fl.Rating
			in := model.CookLogInput{Date: fl.Date, Rating: &rating}
			if fl.Notes != "" {
				notes := fl.Notes
				in.Notes = &notes
			}
			if _, err := s.recipes.AddCookLog(ctx, recipe.ID, in); err != nil {
				return results, fmt.Errorf("seed cook log for %q: %w", fr.Name, err)
			}
			res.CookLogs++
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Seeder) exists(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	found, err := s.recipes.ListRecipes(ctx, model.RecipeFilter{Query: name})
	if err != nil {
		return false, err
	}
	for _, r := range found {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}
