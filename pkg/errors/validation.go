package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a path the CLI is about to write to.
// It rejects empty paths, control characters and directory targets.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}
	return nil
}

// ValidateID validates a layer or segment identifier.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidConfig, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidConfig, "id %q too long (max 128 characters)", id[:16]+"..")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "id contains control characters")
		}
	}
	return nil
}
