package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Catalog:       "/data/kwd.json",
		DefaultPrefix: "crash",
		Strict:        true,
		Render:        RenderConfig{FieldHeaders: true},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", *loaded, *cfg)
	}

	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "index") {
		t.Errorf("expected unset keys to be omitted, got:\n%s", content)
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo(" ", &Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}
