package model

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// PlaceholderImage is stored when a recipe is created without an image.
const PlaceholderImage = "/placeholder.svg?height=400&width=600"

type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"type:text;not null" json:"name"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Image         string           `gorm:"type:text;not null" json:"image"`
	CookingTime   int              `gorm:"not null" json:"cookingTime"`
	AverageRating float64          `gorm:"not null;default:0" json:"averageRating"`
	Embedding     *pgvector.Vector `gorm:"type:vector(3)" json:"-"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index:idx_ingredients_recipe_position,priority:1" json:"recipeId"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Position int       `gorm:"not null;index:idx_ingredients_recipe_position,priority:2" json:"position"`
	Recipe   *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Step is one instruction of a recipe's method.
type Step struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index:idx_steps_recipe_position,priority:1" json:"recipeId"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Position int       `gorm:"not null;index:idx_steps_recipe_position,priority:2" json:"position"`
	Recipe   *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Step) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// RecipeDetail is a recipe together with everything hanging off it.
// Collections are never nil so they encode as [] rather than null.
type RecipeDetail struct {
	Recipe
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Tags        []string  `json:"tags"`
	CookLogs    []CookLog `json:"cookLogs"`
}

// NewRecipeDetail wraps a recipe with empty collections.
func NewRecipeDetail(r Recipe) *RecipeDetail {
	return &RecipeDetail{
		Recipe:      r,
		Ingredients: []string{},
		Steps:       []string{},
		Tags:        []string{},
		CookLogs:    []CookLog{},
	}
}

// ComputeAverage sets AverageRating from the loaded cook logs.
func (d *RecipeDetail) ComputeAverage() {
	d.AverageRating = AverageRating(d.CookLogs)
}
