package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CookLog records one attempt at cooking a recipe. Logs are append-only.
type CookLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Rating    int       `gorm:"not null" json:"rating"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	Recipe    *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (l *CookLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// AverageRating is the mean rating of logs, or 0 when there are none.
func AverageRating(logs []CookLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	var sum int
	for _, l := range logs {
		sum += l.Rating
	}
	return float64(sum) / float64(len(logs))
}

// RoundRating rounds to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
