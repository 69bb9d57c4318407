package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/database"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db    *gorm.DB
	embed Embedder
}

// NewGormRepository creates a new repository instance. embed may be nil,
// in which case recipes are stored without a search vector.
func NewGormRepository(db *gorm.DB, embed Embedder) *GormRepository {
	return &GormRepository{db: db, embed: embed}
}

func (r *GormRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// readTx runs fn in a transaction that sees one consistent snapshot.
func (r *GormRepository) readTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if r.isPostgres() {
		return r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
			Isolation: sql.LevelRepeatableRead,
			ReadOnly:  true,
		})
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// Ping checks that the database answers.
func (r *GormRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	return database.HealthCheck(ctx, r.db)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var _ Repository = (*GormRepository)(nil)
