package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeStat is a recipe ranked by how often or how well it was cooked.
type RecipeStat struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Image         string    `db:"image" json:"image"`
	CookCount     int64     `db:"cook_count" json:"cookCount"`
	AverageRating float64   `db:"average_rating" json:"averageRating"`
}

// ActivityEntry is a cook log joined with the recipe it belongs to.
type ActivityEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RecipeID    uuid.UUID `db:"recipe_id" json:"recipeId"`
	RecipeName  string    `db:"recipe_name" json:"recipeName"`
	RecipeImage string    `db:"recipe_image" json:"recipeImage"`
	Date        time.Time `db:"date" json:"date"`
	Rating      int       `db:"rating" json:"rating"`
	Notes       *string   `db:"notes" json:"notes"`
}

// DayCount is the number of cooks logged on one calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Totals are catalogue-wide counters.
type Totals struct {
	Recipes       int64   `db:"recipes"`
	Cooks         int64   `db:"cooks"`
	AverageRating float64 `db:"average_rating"`
}

// DashboardStats is the payload behind the dashboard page.
type DashboardStats struct {
	Range          string          `json:"range"`
	TotalRecipes   int64           `json:"totalRecipes"`
	TotalCooks     int64           `json:"totalCooks"`
	AverageRating  float64         `json:"averageRating"`
	CooksInRange   int64           `json:"cooksInRange"`
	MostCooked     []RecipeStat    `json:"mostCooked"`
	HighestRated   []RecipeStat    `json:"highestRated"`
	RecentActivity []ActivityEntry `json:"recentActivity"`
	Activity       []DayCount      `json:"activity"`
}
