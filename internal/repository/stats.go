package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

// StatsRepository answers the dashboard's reporting queries. It shares the
// gorm connection pool but builds its SQL with squirrel.
type StatsRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewStatsRepository wraps db, picking the placeholder style from its driver.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	var format sq.PlaceholderFormat = sq.Question
	switch db.DriverName() {
	case "postgres", "pgx":
		format = sq.Dollar
	}
	return &StatsRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// NewStatsRepositoryFromGorm reuses the pool behind a gorm handle.
func NewStatsRepositoryFromGorm(g *gorm.DB) (*StatsRepository, error) {
	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	driver := "sqlite3"
	if g.Dialector.Name() == "postgres" {
		driver = "postgres"
	}
	return NewStatsRepository(sqlx.NewDb(sqlDB, driver)), nil
}

// Totals counts recipes and cook logs and averages every rating.
func (s *StatsRepository) Totals(ctx context.Context) (model.Totals, error) {
	var totals model.Totals

	query, args, err := s.sb.Select("COUNT(*)").From("recipes").ToSql()
	if err != nil {
		return totals, fmt.Errorf("build recipe count: %w", err)
	}
	if err := s.db.GetContext(ctx, &totals.Recipes, query, args...); err != nil {
		return totals, err
	}

	query, args, err = s.sb.
		Select("COUNT(*) AS cooks", "COALESCE(CAST(AVG(rating) AS DOUBLE PRECISION), 0) AS average_rating").
		From("cook_logs").
		ToSql()
	if err != nil {
		return totals, fmt.Errorf("build cook totals: %w", err)
	}
	var row struct {
		Cooks         int64   `db:"cooks"`
		AverageRating float64 `db:"average_rating"`
	}
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return totals, err
	}
	totals.Cooks = row.Cooks
	totals.AverageRating = row.AverageRating
	return totals, nil
}

// CookDatesSince returns the date of every cook logged at or after since.
func (s *StatsRepository) CookDatesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	query, args, err := s.sb.
		Select("date").
		From("cook_logs").
		Where(sq.GtOrEq{"date": since}).
		OrderBy("date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cook dates: %w", err)
	}

	dates := []time.Time{}
	if err := s.db.SelectContext(ctx, &dates, query, args...); err != nil {
		return nil, err
	}
	return dates, nil
}

// MostCooked ranks recipes by number of cook logs.
func (s *StatsRepository) MostCooked(ctx context.Context, limit uint64) ([]model.RecipeStat, error) {
	return s.rankRecipes(ctx, limit, "cook_count DESC", "average_rating DESC", "r.name ASC")
}

// HighestRated ranks cooked recipes by their mean rating.
func (s *StatsRepository) HighestRated(ctx context.Context, limit uint64) ([]model.RecipeStat, error) {
	return s.rankRecipes(ctx, limit, "average_rating DESC", "cook_count DESC", "r.name ASC")
}

func (s *StatsRepository) rankRecipes(ctx context.Context, limit uint64, orderBy ...string) ([]model.RecipeStat, error) {
	query, args, err := s.sb.
		Select(
			"r.id AS id",
			"r.name AS name",
			"r.image AS image",
			"COUNT(c.id) AS cook_count",
			"COALESCE(CAST(AVG(c.rating) AS DOUBLE PRECISION), 0) AS average_rating",
		).
		From("recipes r").
		Join("cook_logs c ON c.recipe_id = r.id").
		GroupBy("r.id", "r.name", "r.image").
		OrderBy(orderBy...).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipe ranking: %w", err)
	}

	stats := []model.RecipeStat{}
	if err := s.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentActivity returns the latest cook logs with their recipe.
func (s *StatsRepository) RecentActivity(ctx context.Context, limit uint64) ([]model.ActivityEntry, error) {
	query, args, err := s.sb.
		Select(
			"c.id AS id",
			"c.recipe_id AS recipe_id",
			"r.name AS recipe_name",
			"r.image AS recipe_image",
			"c.date AS date",
			"c.rating AS rating",
			"c.notes AS notes",
		).
		From("cook_logs c").
		Join("recipes r ON r.id = c.recipe_id").
		OrderBy("c.date DESC", "c.created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent activity: %w", err)
	}

	entries := []model.ActivityEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}
	return entries, nil
}
