package io

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
)

// ReadJSON decodes a chart from r. It does not close r.
func ReadJSON(r io.Reader) (*chart.Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var c chart.Config
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return &c, nil
}

// ReadTOML decodes a chart from r. It does not close r.
func ReadTOML(r io.Reader) (*chart.Config, error) {
	var c chart.Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &c, nil
}

// Read decodes a chart in the given format.
func Read(r io.Reader, f Format) (*chart.Config, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", f)
	}
}

// Import reads the chart at path, picking the format from its extension,
// and validates it with opts.
func Import(path string, opts ...chart.ValidateOption) (*chart.Config, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	c, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	if err := chart.Validate(c, opts...); err != nil {
		return nil, err
	}
	return c, nil
}
