package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/cookbook/backend/internal/model"
)

// AddCookLog appends a log and refreshes the recipe's stored average in the
// same transaction. The recipe row stays locked until commit so two logs
// landing together cannot both write a stale mean.
func (r *GormRepository) AddCookLog(ctx context.Context, log *model.CookLog) (*model.CookLog, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe model.Recipe
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&recipe, "id = ?", log.RecipeID).Error
		if err != nil {
			return translate(err)
		}

		if err := tx.Omit(clause.Associations).Create(log).Error; err != nil {
			return err
		}

		return tx.Exec(
			"UPDATE recipes SET average_rating = (SELECT COALESCE(CAST(AVG(rating) AS DOUBLE PRECISION), 0) FROM cook_logs WHERE recipe_id = ?) WHERE id = ?",
			log.RecipeID, log.RecipeID,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}
