package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pageza/cookbook/backend/config"
)

// SaveOptions controls how a backend names a stored object. Category groups
// objects; Extension is given without the leading dot.
type SaveOptions struct {
	Category     string
	Extension    string
	BaseName     string
	ContentType  string
	SkipIfExists bool
}

// Storage persists binary data and returns the URL clients can load it from.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by backends whose files can be served
// straight from disk.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
	PublicBaseURL() string
}

// NewStorage builds the backend selected by STORAGE_TYPE. It returns nil and
// no error for "none", meaning generated images are not persisted.
func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageType)) {
	case "", config.StorageNone:
		return nil, nil
	case config.StorageLocal:
		return NewLocalStorage(cfg.StorageLocalDir, cfg.StoragePublicBaseURL)
	case config.StorageS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
