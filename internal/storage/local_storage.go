package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under a directory served by the API.
type LocalStorage struct {
	baseDir   string
	publicURL string
}

// NewLocalStorage creates a LocalStorage. The directory is created if it does
// not exist.
func NewLocalStorage(baseDir, publicURL string) (*LocalStorage, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "data/images"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	publicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if publicURL == "" {
		publicURL = "/files"
	}
	return &LocalStorage{baseDir: baseDir, publicURL: publicURL}, nil
}

func (s *LocalStorage) LocalBaseDir() string { return s.baseDir }

func (s *LocalStorage) PublicBaseURL() string { return s.publicURL }

// Save writes data to disk and returns its public URL.
func (s *LocalStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	rel := buildObjectPath(opts.Category, opts.BaseName, opts.Extension)
	abs := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	if opts.SkipIfExists {
		if _, err := os.Stat(abs); err == nil {
			return s.publicURL + "/" + rel, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return s.publicURL + "/" + rel, nil
}

var _ Storage = (*LocalStorage)(nil)
var _ LocalBaseDirProvider = (*LocalStorage)(nil)
