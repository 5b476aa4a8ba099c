// Package config handles global autokey configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvLevel   = "AUTOKEY_LEVEL"
	EnvStyle   = "AUTOKEY_STYLE"
	EnvCatalog = "AUTOKEY_CATALOG"
	EnvStrict  = "AUTOKEY_STRICT"
)

// Config represents the global autokey configuration.
type Config struct {
	// Catalog is the path of the keyword catalog (.json, .yaml or .yml).
	Catalog string `toml:"catalog"`

	// Index is the path of the SQLite search index. Defaults to index.db
	// next to the config file.
	Index string `toml:"index"`

	// DefaultPrefix is used by "deck new" when --prefix is not given.
	DefaultPrefix string `toml:"default_prefix"`

	// Strict rejects invalid catalog fields and repeated field records.
	Strict bool `toml:"strict"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogStyle controls colored log output: always, never or auto.
	LogStyle string `toml:"log_style"`

	Render RenderConfig `toml:"render"`
}

// RenderConfig holds defaults for "deck render".
type RenderConfig struct {
	IncludeCommented bool `toml:"include_commented"`
	FieldHeaders     bool `toml:"field_headers"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), path)
	}
	return &config, nil
}

// ApplyEnv overrides config values from environment variables. lookup is
// normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvStyle); ok && v != "" {
		c.LogStyle = v
	}
	if v, ok := lookup(EnvCatalog); ok && v != "" {
		c.Catalog = v
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, v, err)
		}
		c.Strict = strict
	}
	return nil
}

// IndexPath returns the configured index path, or index.db next to
// configPath.
func (c *Config) IndexPath(configPath string) string {
	if c.Index != "" {
		return expandHome(c.Index)
	}
	return filepath.Join(filepath.Dir(configPath), "index.db")
}

// CatalogPath returns the catalog path with a leading ~ expanded.
func (c *Config) CatalogPath() string {
	return expandHome(c.Catalog)
}

// ResolveConfigPath returns the explicit path if set, otherwise DefaultPath().
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/autokey/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "autokey", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "autokey", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a commented default config file at path if it
// doesn't exist. It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# autokey configuration

# Keyword catalog (.json, .yaml or .yml). AUTOKEY_CATALOG overrides it.
# catalog = "~/decks/kwd.json"

# SQLite search index; defaults to index.db next to this file.
# index = "~/.cache/autokey/index.db"

# Prefix for new decks.
# default_prefix = ""

# Reject invalid catalog fields instead of accepting them as-is.
# strict = false

# Logging: debug, info, warn, error. AUTOKEY_LEVEL overrides it.
# log_level = "info"
# Colored logs: always, never, auto. AUTOKEY_STYLE overrides it.
# log_style = "auto"

# [render]
# include_commented = false
# field_headers = false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
