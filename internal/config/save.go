package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/autokey/internal/atomicfile"
)

type persistedConfig struct {
	Catalog       *string          `toml:"catalog,omitempty"`
	Index         *string          `toml:"index,omitempty"`
	DefaultPrefix *string          `toml:"default_prefix,omitempty"`
	Strict        bool             `toml:"strict,omitempty"`
	LogLevel      *string          `toml:"log_level,omitempty"`
	LogStyle      *string          `toml:"log_style,omitempty"`
	Render        *persistedRender `toml:"render,omitempty"`
}

type persistedRender struct {
	IncludeCommented bool `toml:"include_commented,omitempty"`
	FieldHeaders     bool `toml:"field_headers,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the config to path atomically, leaving out unset values.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Catalog:       nonEmptyPtr(cfg.Catalog),
		Index:         nonEmptyPtr(cfg.Index),
		DefaultPrefix: nonEmptyPtr(cfg.DefaultPrefix),
		Strict:        cfg.Strict,
		LogLevel:      nonEmptyPtr(cfg.LogLevel),
		LogStyle:      nonEmptyPtr(cfg.LogStyle),
	}
	if cfg.Render.IncludeCommented || cfg.Render.FieldHeaders {
		out.Render = &persistedRender{
			IncludeCommented: cfg.Render.IncludeCommented,
			FieldHeaders:     cfg.Render.FieldHeaders,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
