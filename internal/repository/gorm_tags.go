package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/model"
)

// ListTags returns all tags with the number of recipes using them.
func (r *GormRepository) ListTags(ctx context.Context) ([]model.TagUsage, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	tags := []model.TagUsage{}
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.name AS name, COUNT(recipe_tags.recipe_id) AS recipes").
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// linkTags attaches names to a recipe, creating any tag that does not exist
// yet. Creation is an upsert on the unique name so concurrent writers never
// produce duplicate tags.
func linkTags(tx *gorm.DB, recipeID uuid.UUID, names []string) error {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil
	}

	candidates := make([]model.Tag, len(names))
	for i, name := range names {
		candidates[i] = model.Tag{Name: name}
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidates).Error
	if err != nil {
		return err
	}

	// ids of rows that already existed are unknown until read back
	var tags []model.Tag
	if err := tx.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return err
	}

	links := make([]model.RecipeTag, len(tags))
	for i, tag := range tags {
		links[i] = model.RecipeTag{RecipeID: recipeID, TagID: tag.ID}
	}
	return tx.Omit(clause.Associations).Create(&links).Error
}

// uniqueNames drops blanks and repeats, keeping first occurrences in order.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
