package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]CookLog{{Rating: 4}}))
	assert.Equal(t, 3.0, AverageRating([]CookLog{{Rating: 4}, {Rating: 2}}))
	assert.InDelta(t, 3.6667, AverageRating([]CookLog{{Rating: 5}, {Rating: 4}, {Rating: 2}}), 0.001)
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 3.7, RoundRating(3.6667))
	assert.Equal(t, 4.0, RoundRating(4))
}

func TestRecipeDetailJSON(t *testing.T) {
	d := NewRecipeDetail(Recipe{ID: uuid.New(), Name: "Toast", Description: "desc", CookingTime: 5})

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "Toast", out["name"])
	assert.Equal(t, float64(5), out["cookingTime"])
	assert.Equal(t, float64(0), out["averageRating"])
	assert.Equal(t, []any{}, out["ingredients"])
	assert.Equal(t, []any{}, out["steps"])
	assert.Equal(t, []any{}, out["tags"])
	assert.Equal(t, []any{}, out["cookLogs"])
	assert.NotContains(t, out, "embedding")
}

func TestComputeAverage(t *testing.T) {
	d := NewRecipeDetail(Recipe{AverageRating: 1})
	d.CookLogs = []CookLog{{Rating: 5}, {Rating: 3}}
	d.ComputeAverage()
	assert.Equal(t, 4.0, d.AverageRating)
}
