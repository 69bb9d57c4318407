package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// buildObjectPath returns category/basename.ext. A missing base name gets a
// random uuid.
func buildObjectPath(category, baseName, ext string) string {
	category = sanitizePathSegment(category)
	if category == "" {
		category = "misc"
	}
	baseName = sanitizePathSegment(baseName)
	if baseName == "" {
		baseName = uuid.NewString()
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return path.Join(category, baseName+"."+strings.ToLower(ext))
}

func joinPrefix(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + strings.TrimLeft(key, "/")
}

func detectContentType(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	}
	return ""
}

// sanitizePathSegment keeps lowercase letters, digits, '-' and '_'.
func sanitizePathSegment(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			b.WriteByte(ch)
		}
	}
	return b.String()
}
