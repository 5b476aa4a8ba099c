package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidanlsb/autokey/internal/catalog"
	"github.com/aidanlsb/autokey/internal/config"
)

const testCatalogJSON = `{
  "PART": [{
    "pid":   [{"name": "pid", "default": null, "help": "Part identification.", "position": 0, "options": [], "width": 10}],
    "secid": [{"name": "secid", "default": "0", "help": "Section identification.", "position": 10, "options": [], "width": 10}],
    "mid":   [{"name": "mid", "default": 1, "help": "Material identification.", "position": 20, "options": [], "width": 10}]
  }],
  "CONTROL_TERMINATION": [{
    "endtim": [{"name": "endtim", "default": "0.0", "help": "Termination time.", "position": 0, "options": [], "width": 10}]
  }],
  "DATABASE_BINARY_D3PLOT": [{
    "dt":   [{"name": "dt", "default": "0.0", "help": "Time interval between outputs.", "position": 0, "options": [], "width": 10}],
    "beam": [{"name": "beam", "default": "0", "help": "Discrete element output option.", "position": 10, "options": ["0", "1", "2", "3"], "width": 10}]
  }]
}`

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	outputCh := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	return <-outputCh
}

// setupCLI points the package globals at a temporary catalog and config and
// restores them when the test ends.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	catPath := filepath.Join(dir, "kwd.json")
	require.NoError(t, os.WriteFile(catPath, []byte(testCatalogJSON), 0o644))

	prevCfg, prevConfigPath, prevJSON, prevLogger := cfg, configPath, jsonOutput, logger
	t.Cleanup(func() {
		cfg, configPath, jsonOutput, logger = prevCfg, prevConfigPath, prevJSON, prevLogger
		deckAddPolicy = catalog.Abort
		deckNewPrefix, deckNewForce = "", false
		deckMergeOutput, deckSetForce, deckShowCards = "", false, false
		deckClearKeyWordRef = ""
		renderOutput, renderWrite = "", false
		renderIncludeCommented, renderFieldHeaders = false, false
		for _, c := range []*cobra.Command{deckNewCmd, deckAddCmd, deckRenderCmd, configSetCmd} {
			resetChanged(c)
		}
	})

	cfg = &config.Config{Catalog: catPath, Index: filepath.Join(dir, "index.db")}
	configPath = filepath.Join(dir, "config.toml")
	jsonOutput = false
	logger = zap.NewNop()
	return dir
}

func resetChanged(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
}

func setFlag(t *testing.T, c *cobra.Command, name, value string) {
	t.Helper()
	require.NoError(t, c.Flags().Set(name, value))
}

func runCmd(t *testing.T, c *cobra.Command, args ...string) string {
	t.Helper()
	var runErr error
	out := captureStdout(t, func() {
		runErr = c.RunE(c, args)
	})
	require.NoError(t, runErr, out)
	return out
}

// runJSON runs c in JSON mode and decodes the envelope.
func runJSON(t *testing.T, c *cobra.Command, args ...string) Response {
	t.Helper()
	jsonOutput = true
	defer func() { jsonOutput = false }()

	out := runCmd(t, c, args...)
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}
