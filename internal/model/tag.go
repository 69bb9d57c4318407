package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag names are unique and case-sensitive.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// RecipeTag joins recipes and tags.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipeId"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tagId"`
	Recipe   *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Tag      *Tag      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TagUsage is a tag name and the number of recipes carrying it.
type TagUsage struct {
	Name    string `json:"name"`
	Recipes int64  `json:"recipes"`
}
