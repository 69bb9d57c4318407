package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/model"
)

// GetRecipe loads one recipe with its ingredients, steps, tags and cook logs.
func (r *GormRepository) GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetail, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	var detail *model.RecipeDetail
	err := r.readTx(ctx, func(tx *gorm.DB) error {
		var recipe model.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		details, err := loadDetails(tx, []model.Recipe{recipe})
		if err != nil {
			return err
		}
		detail = details[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListRecipes loads every recipe matching filter, newest first. Children are
// fetched with one query per table regardless of how many recipes match.
func (r *GormRepository) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]*model.RecipeDetail, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	var details []*model.RecipeDetail
	err := r.readTx(ctx, func(tx *gorm.DB) error {
		query := tx.Model(&model.Recipe{})

		if q := strings.TrimSpace(filter.Query); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(recipes.name) LIKE ? OR LOWER(recipes.description) LIKE ?", like, like)
			if r.isPostgres() && r.embed != nil {
				vec := r.embed(q)
				query = query.Clauses(clause.OrderBy{
					Expression: clause.Expr{SQL: "recipes.embedding <-> ?", Vars: []interface{}{vec}},
				})
			}
		}

		if tag := strings.TrimSpace(filter.Tag); tag != "" {
			query = query.Where(
				"EXISTS (SELECT 1 FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE recipe_tags.recipe_id = recipes.id AND tags.name = ?)",
				tag,
			)
		}

		var recipes []model.Recipe
		if err := query.Order("recipes.created_at DESC").Find(&recipes).Error; err != nil {
			return err
		}

		var err error
		details, err = loadDetails(tx, recipes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// CreateRecipe inserts a recipe and all of its children in one transaction.
func (r *GormRepository) CreateRecipe(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	recipe := model.Recipe{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		CookingTime: in.CookingTime,
	}
	if r.embed != nil {
		vec := r.embed(recipe.Name + " " + recipe.Description)
		recipe.Embedding = &vec
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if err := insertIngredients(tx, recipe.ID, in.Ingredients); err != nil {
			return err
		}
		if err := insertSteps(tx, recipe.ID, in.Steps); err != nil {
			return err
		}
		return linkTags(tx, recipe.ID, in.Tags)
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies a partial update. Supplied collections are replaced
// wholesale, with positions reassigned from the new array order.
func (r *GormRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, patch model.RecipePatch) (*model.Recipe, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	var recipe model.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&recipe, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			recipe.Name = *patch.Name
			updates["name"] = recipe.Name
		}
		if patch.Description != nil {
			recipe.Description = *patch.Description
			updates["description"] = recipe.Description
		}
		if patch.Image != nil {
			recipe.Image = *patch.Image
			updates["image"] = recipe.Image
		}
		if patch.CookingTime != nil {
			recipe.CookingTime = *patch.CookingTime
			updates["cooking_time"] = recipe.CookingTime
		}
		if patch.TouchesText() && r.embed != nil {
			vec := r.embed(recipe.Name + " " + recipe.Description)
			recipe.Embedding = &vec
			updates["embedding"] = vec
		}

		if len(updates) > 0 || patch.Ingredients != nil || patch.Steps != nil || patch.Tags != nil {
			recipe.UpdatedAt = time.Now()
			updates["updated_at"] = recipe.UpdatedAt
			if err := tx.Model(&model.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredients(tx, id, *patch.Ingredients); err != nil {
				return err
			}
		}
		if patch.Steps != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.Step{}).Error; err != nil {
				return err
			}
			if err := insertSteps(tx, id, *patch.Steps); err != nil {
				return err
			}
		}
		if patch.Tags != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := linkTags(tx, id, *patch.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe. Children go with it through ON DELETE CASCADE.
func (r *GormRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Recipe{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	rows := make([]model.Ingredient, len(texts))
	for i, text := range texts {
		rows[i] = model.Ingredient{RecipeID: recipeID, Text: text, Position: i}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertSteps(tx *gorm.DB, recipeID uuid.UUID, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	rows := make([]model.Step, len(texts))
	for i, text := range texts {
		rows[i] = model.Step{RecipeID: recipeID, Text: text, Position: i}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

// loadDetails composes recipes with their children, preserving the order of
// recipes.
func loadDetails(tx *gorm.DB, recipes []model.Recipe) ([]*model.RecipeDetail, error) {
	details := make([]*model.RecipeDetail, len(recipes))
	if len(recipes) == 0 {
		return details, nil
	}

	byID := make(map[uuid.UUID]*model.RecipeDetail, len(recipes))
	ids := make([]uuid.UUID, len(recipes))
	for i, recipe := range recipes {
		details[i] = model.NewRecipeDetail(recipe)
		byID[recipe.ID] = details[i]
		ids[i] = recipe.ID
	}

	var ingredients []model.Ingredient
	if err := tx.Where("recipe_id IN ?", ids).Order("recipe_id, position").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		if d, ok := byID[ing.RecipeID]; ok {
			d.Ingredients = append(d.Ingredients, ing.Text)
		}
	}

	var steps []model.Step
	if err := tx.Where("recipe_id IN ?", ids).Order("recipe_id, position").Find(&steps).Error; err != nil {
		return nil, err
	}
	for _, step := range steps {
		if d, ok := byID[step.RecipeID]; ok {
			d.Steps = append(d.Steps, step.Text)
		}
	}

	var tags []recipeTagName
	err := tx.Table("recipe_tags").
		Select("recipe_tags.recipe_id, tags.name").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", ids).
		Order("tags.name").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if d, ok := byID[tag.RecipeID]; ok {
			d.Tags = append(d.Tags, tag.Name)
		}
	}

	var logs []model.CookLog
	if err := tx.Where("recipe_id IN ?", ids).Order("date DESC, created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	for _, l := range logs {
		if d, ok := byID[l.RecipeID]; ok {
			d.CookLogs = append(d.CookLogs, l)
		}
	}

	for _, d := range details {
		d.ComputeAverage()
	}
	return details, nil
}

type recipeTagName struct {
	RecipeID uuid.UUID
	Name     string
}
