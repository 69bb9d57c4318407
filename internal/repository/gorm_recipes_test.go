package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/testhelpers"
)

func newTestRepo(t *testing.T) (*GormRepository, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	return NewGormRepository(db, nil), db
}

func strPtr(s string) *string { return &s }

func slicePtr(s ...string) *[]string {
	if s == nil {
		s = []string{}
	}
	return &s
}

func createRecipe(t *testing.T, repo *GormRepository, in model.RecipeInput) *model.Recipe {
	t.Helper()
	if in.Name == "" {
		in.Name = "Toast"
	}
	if in.Description == "" {
		in.Description = "desc"
	}
	if in.CookingTime == 0 {
		in.CookingTime = 5
	}
	if in.Image == "" {
		in.Image = model.PlaceholderImage
	}
	recipe, err := repo.CreateRecipe(context.Background(), in)
	require.NoError(t, err)
	return recipe
}

func TestCreateAndGetRecipe(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created := createRecipe(t, repo, model.RecipeInput{
		Ingredients: []string{"a", "b", "c"},
		Steps:       []string{"toast", "butter"},
		Tags:        []string{"breakfast", "quick"},
	})
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toast", got.Name)
	assert.Equal(t, []string{"a", "b", "c"}, got.Ingredients)
	assert.Equal(t, []string{"toast", "butter"}, got.Steps)
	assert.Equal(t, []string{"breakfast", "quick"}, got.Tags)
	assert.Empty(t, got.CookLogs)
	assert.Equal(t, 0.0, got.AverageRating)
}

func TestCreateRecipeEmptyCollections(t *testing.T) {
	repo, _ := newTestRepo(t)

	created := createRecipe(t, repo, model.RecipeInput{})
	got, err := repo.GetRecipe(context.Background(), created.ID)
	require.NoError(t, err)

	assert.NotNil(t, got.Ingredients)
	assert.NotNil(t, got.Steps)
	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.CookLogs)
	assert.Empty(t, got.Ingredients)
}

func TestCreateRecipeDuplicateTagsInRequest(t *testing.T) {
	repo, db := newTestRepo(t)

	created := createRecipe(t, repo, model.RecipeInput{Tags: []string{"x", "x", "y"}})
	got, err := repo.GetRecipe(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got.Tags)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCreateRecipeRollsBackOnFailure(t *testing.T) {
	repo, db := newTestRepo(t)

	require.NoError(t, db.Exec("DROP TABLE steps").Error)

	_, err := repo.CreateRecipe(context.Background(), model.RecipeInput{
		Name: "Broken", Description: "desc", Image: model.PlaceholderImage, CookingTime: 5,
		Ingredients: []string{"a"},
		Steps:       []string{"b"},
	})
	require.Error(t, err)

	var recipes, ingredients int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&model.Ingredient{}).Count(&ingredients).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, ingredients)
}

func TestGetRecipeNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipeNameOnlyLeavesChildren(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created := createRecipe(t, repo, model.RecipeInput{
		Ingredients: []string{"bread"},
		Steps:       []string{"toast"},
		Tags:        []string{"breakfast"},
	})
	_, err := repo.AddCookLog(ctx, &model.CookLog{RecipeID: created.ID, Date: time.Now().UTC(), Rating: 4})
	require.NoError(t, err)

	updated, err := repo.UpdateRecipe(ctx, created.ID, model.RecipePatch{Name: strPtr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "desc", updated.Description)

	got, err := repo.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, []string{"bread"}, got.Ingredients)
	assert.Equal(t, []string{"toast"}, got.Steps)
	assert.Equal(t, []string{"breakfast"}, got.Tags)
	assert.Len(t, got.CookLogs, 1)
}

func TestUpdateRecipeReplacesCollections(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created := createRecipe(t, repo, model.RecipeInput{
		Ingredients: []string{"a", "b", "c"},
		Steps:       []string{"one", "two"},
	})

	cookingTime := 12
	_, err := repo.UpdateRecipe(ctx, created.ID, model.RecipePatch{
		CookingTime: &cookingTime,
		Ingredients: slicePtr("c", "a"),
		Steps:       slicePtr(),
	})
	require.NoError(t, err)

	got, err := repo.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.CookingTime)
	assert.Equal(t, []string{"c", "a"}, got.Ingredients)
	assert.Empty(t, got.Steps)
}

func TestUpdateRecipeReassignsContiguousPositions(t *testing.T) {
	repo, db := newTestRepo(t)

	created := createRecipe(t, repo, model.RecipeInput{Ingredients: []string{"a", "b", "c", "d"}})
	_, err := repo.UpdateRecipe(context.Background(), created.ID, model.RecipePatch{Ingredients: slicePtr("x", "y")})
	require.NoError(t, err)

	var positions []int
	require.NoError(t, db.Model(&model.Ingredient{}).
		Where("recipe_id = ?", created.ID).
		Order("position").
		Pluck("position", &positions).Error)
	assert.Equal(t, []int{0, 1}, positions)
}

func TestUpdateRecipeTagsReusesExisting(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created := createRecipe(t, repo, model.RecipeInput{Tags: []string{"x", "y"}})

	var yBefore model.Tag
	require.NoError(t, db.Where("name = ?", "y").First(&yBefore).Error)

	_, err := repo.UpdateRecipe(ctx, created.ID, model.RecipePatch{Tags: slicePtr("y", "z")})
	require.NoError(t, err)

	got, err := repo.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, got.Tags)

	var yCount, zCount int64
	require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "y").Count(&yCount).Error)
	require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "z").Count(&zCount).Error)
	assert.Equal(t, int64(1), yCount)
	assert.Equal(t, int64(1), zCount)

	var yAfter model.Tag
	require.NoError(t, db.Where("name = ?", "y").First(&yAfter).Error)
	assert.Equal(t, yBefore.ID, yAfter.ID)

	var xLinks int64
	require.NoError(t, db.Table("recipe_tags").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("tags.name = ?", "x").
		Count(&xLinks).Error)
	assert.Zero(t, xLinks)
}

func TestTagsAreSharedAcrossRecipes(t *testing.T) {
	repo, db := newTestRepo(t)

	createRecipe(t, repo, model.RecipeInput{Name: "A", Tags: []string{"dinner"}})
	createRecipe(t, repo, model.RecipeInput{Name: "B", Tags: []string{"dinner", "Dinner"}})

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(2), count, "tag names are case-sensitive")

	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, model.TagUsage{Name: "Dinner", Recipes: 1}, tags[0])
	assert.Equal(t, model.TagUsage{Name: "dinner", Recipes: 2}, tags[1])
}

func TestUpdateRecipeNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.UpdateRecipe(context.Background(), uuid.New(), model.RecipePatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecipeCascades(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created := createRecipe(t, repo, model.RecipeInput{
		Ingredients: []string{"a"},
		Steps:       []string{"b"},
		Tags:        []string{"c"},
	})
	_, err := repo.AddCookLog(ctx, &model.CookLog{RecipeID: created.ID, Date: time.Now().UTC(), Rating: 3})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteRecipe(ctx, created.ID))

	for _, m := range []interface{}{&model.Recipe{}, &model.Ingredient{}, &model.Step{}, &model.RecipeTag{}, &model.CookLog{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", m)
	}

	_, err = repo.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecipeNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.ErrorIs(t, repo.DeleteRecipe(context.Background(), uuid.New()), ErrNotFound)
}

func TestListRecipesComposesAndOrders(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := createRecipe(t, repo, model.RecipeInput{Name: "Pancakes", Ingredients: []string{"flour", "milk"}, Tags: []string{"breakfast"}})
	second := createRecipe(t, repo, model.RecipeInput{Name: "Soup", Description: "hot tomato soup", Steps: []string{"simmer"}, Tags: []string{"dinner"}})

	_, err := repo.AddCookLog(ctx, &model.CookLog{RecipeID: first.ID, Date: time.Now().UTC(), Rating: 5})
	require.NoError(t, err)

	all, err := repo.ListRecipes(ctx, model.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[uuid.UUID]*model.RecipeDetail{}
	for _, d := range all {
		byID[d.ID] = d
	}
	assert.Equal(t, []string{"flour", "milk"}, byID[first.ID].Ingredients)
	assert.Equal(t, 5.0, byID[first.ID].AverageRating)
	assert.Equal(t, []string{"simmer"}, byID[second.ID].Steps)
	assert.Empty(t, byID[second.ID].CookLogs)

	found, err := repo.ListRecipes(ctx, model.RecipeFilter{Query: "TOMATO"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Soup", found[0].Name)

	tagged, err := repo.ListRecipes(ctx, model.RecipeFilter{Tag: "breakfast"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Pancakes", tagged[0].Name)
}

func TestListRecipesEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	all, err := repo.ListRecipes(context.Background(), model.RecipeFilter{})
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestCreateRecipeStoresEmbedding(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	calls := 0
	repo := NewGormRepository(db, func(text string) pgvector.Vector {
		calls++
		return pgvector.NewVector([]float32{float32(len(text)), 0, 0})
	})

	created := createRecipe(t, repo, model.RecipeInput{})
	require.NotNil(t, created.Embedding)
	assert.Equal(t, 1, calls)

	_, err := repo.UpdateRecipe(context.Background(), created.ID, model.RecipePatch{Image: strPtr("/x.png")})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "image changes do not re-embed")

	_, err = repo.UpdateRecipe(context.Background(), created.ID, model.RecipePatch{Description: strPtr("crunchy")})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPing(t *testing.T) {
	repo, _ := newTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))

	var nilRepo *GormRepository
	assert.Error(t, nilRepo.Ping(context.Background()))
}

func TestPingReportsClosedDatabase(t *testing.T) {
	repo, db := newTestRepo(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Error(t, repo.Ping(context.Background()))
}
