package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/fanchart/pkg/errors"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell config format of %q (use .json or .toml)", path)
	}
}
