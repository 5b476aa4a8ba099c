package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/autokey/internal/config"
)

func TestConfigInitCreatesConfigFile(t *testing.T) {
	dir := setupCLI(t)
	configPath = filepath.Join(dir, "nested", "config.toml")

	resp := runJSON(t, configInitCmd)
	require.True(t, resp.OK)
	assert.Equal(t, true, resp.Data.(map[string]interface{})["created"])

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# autokey configuration")

	resp = runJSON(t, configInitCmd)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["created"])
}

func TestConfigSetUpdatesFields(t *testing.T) {
	setupCLI(t)
	require.NoError(t, os.WriteFile(configPath, []byte("default_prefix = \"old\"\n"), 0o644))

	setFlag(t, configSetCmd, "catalog", "~/kwd.json")
	setFlag(t, configSetCmd, "log-level", "debug")
	setFlag(t, configSetCmd, "field-headers", "true")

	resp := runJSON(t, configSetCmd)
	require.True(t, resp.OK)
	assert.ElementsMatch(t, []interface{}{"catalog", "log_level", "render.field_headers"},
		resp.Data.(map[string]interface{})["changed"])

	loaded, err := config.LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, "~/kwd.json", loaded.Catalog)
	assert.Equal(t, "old", loaded.DefaultPrefix)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.True(t, loaded.Render.FieldHeaders)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	setupCLI(t)

	resp := runJSON(t, configSetCmd)
	require.False(t, resp.OK)
	assert.Equal(t, ErrInvalidInput, resp.Error.Code)

	setFlag(t, configSetCmd, "log-style", "sometimes")
	resp = runJSON(t, configSetCmd)
	require.False(t, resp.OK)
	assert.Equal(t, ErrInvalidInput, resp.Error.Code)

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigPath(t *testing.T) {
	setupCLI(t)

	out := runCmd(t, configPathCmd)
	assert.Equal(t, configPath+"\n", out)
}
