// Package migrations holds the PostgreSQL schema, compiled into the binary.
package migrations

import "embed"

// Files exposes the compiled-in migration SQL files.
//
//go:embed *.sql
var Files embed.FS
