package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a catalog file with an unrecognized extension.
var ErrUnknownFormat = errors.New("unknown catalog format")

// Source produces a normalized catalog.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

// FileSource reads a catalog from disk. The format is taken from the file
// extension (.json, .yaml, .yml).
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(s.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.Path, err)
	}

	cat, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", s.Path, err)
	}
	return cat, nil
}

// BytesSource decodes a catalog held in memory.
type BytesSource struct {
	Data   []byte
	Format Format
}

// Load implements Source.
func (s BytesSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Decode(s.Data, s.Format)
}

// FormatFromPath picks the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode parses and normalizes a catalog document.
func Decode(data []byte, format Format) (Catalog, error) {
	var cat Catalog
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&cat); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if cat == nil {
		cat = make(Catalog)
	}
	cat.Normalize()
	return cat, nil
}
