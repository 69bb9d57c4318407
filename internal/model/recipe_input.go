package model

// RecipeInput carries the fields accepted when creating a recipe.
type RecipeInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	CookingTime int      `json:"cookingTime"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tags        []string `json:"tags"`
}

// RecipePatch is a partial update. Nil fields are left untouched; a
// non-nil collection, even an empty one, replaces the stored one.
type RecipePatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	CookingTime *int      `json:"cookingTime"`
	Ingredients *[]string `json:"ingredients"`
	Steps       *[]string `json:"steps"`
	Tags        *[]string `json:"tags"`
}

// TouchesText reports whether the patch changes the searchable text.
func (p RecipePatch) TouchesText() bool {
	return p.Name != nil || p.Description != nil
}

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	Query string
	Tag   string
}

// CookLogInput is the body of a cook log request. Date accepts YYYY-MM-DD or
// RFC 3339.
type CookLogInput struct {
	Date   string  `json:"date"`
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}
