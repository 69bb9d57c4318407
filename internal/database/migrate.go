package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/db/migrations"
	"github.com/pageza/cookbook/backend/internal/model"
)

// Models lists every table the application owns, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Recipe{},
		&model.Ingredient{},
		&model.Step{},
		&model.Tag{},
		&model.RecipeTag{},
		&model.CookLog{},
	}
}

// RunMigrations brings the schema up to date. SQLite has no migration
// files of its own and is built from the gorm models instead.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		logrus.Info("using gorm auto-migration for sqlite")
		return db.AutoMigrate(Models()...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return MigratePostgres(sqlDB)
}

// NewMigrator builds a golang-migrate instance over the embedded SQL files.
func NewMigrator(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return migrator, nil
}

// MigratePostgres applies every pending up migration.
func MigratePostgres(sqlDB *sql.DB) error {
	migrator, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := migrator.Version()
	if err == nil {
		logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("database schema is up to date")
	}
	return nil
}
