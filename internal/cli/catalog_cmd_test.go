package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogList(t *testing.T) {
	setupCLI(t)

	resp := runJSON(t, catalogListCmd)
	require.True(t, resp.OK)
	assert.Equal(t, 3, resp.Meta.Count)

	out := runCmd(t, catalogListCmd)
	assert.Contains(t, out, "*CONTROL_TERMINATION")
	assert.Contains(t, out, "1 card")
}

func TestCatalogNotConfigured(t *testing.T) {
	setupCLI(t)
	cfg.Catalog = ""

	resp := runJSON(t, catalogListCmd)
	require.False(t, resp.OK)
	assert.Equal(t, ErrCatalogNotConfigured, resp.Error.Code)
	assert.Contains(t, resp.Error.Suggestion, "AUTOKEY_CATALOG")
}

func TestCatalogShow(t *testing.T) {
	setupCLI(t)
	t.Cleanup(func() { catalogShowRaw, catalogShowHTML = false, false })

	catalogShowRaw = true
	out := runCmd(t, catalogShowCmd, "*part")
	assert.Contains(t, out, "# *PART")
	assert.Contains(t, out, "| secid | 10 | 10 | 0 |")
	assert.Contains(t, out, "- **mid**: Material identification.")

	catalogShowRaw, catalogShowHTML = false, true
	out = runCmd(t, catalogShowCmd, "PART")
	assert.Contains(t, out, "<table>")

	resp := runJSON(t, catalogShowCmd, "NOPE")
	require.False(t, resp.OK)
	assert.Equal(t, ErrKeyWordNotFound, resp.Error.Code)
}

func TestCatalogIndexAndSearch(t *testing.T) {
	setupCLI(t)

	resp := runJSON(t, catalogSearchCmd, "material")
	require.True(t, resp.OK)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, WarnIndexEmpty, resp.Warnings[0].Code)

	resp = runJSON(t, catalogIndexCmd)
	require.True(t, resp.OK)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 3, data["keywords"])
	assert.EqualValues(t, 6, data["fields"])

	resp = runJSON(t, catalogSearchCmd, "material")
	require.True(t, resp.OK)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, 1, resp.Meta.Count)

	out := runCmd(t, catalogSearchCmd, "termination")
	assert.Contains(t, out, "*CONTROL_TERMINATION")

	out = runCmd(t, catalogSearchCmd, "zzz")
	assert.Contains(t, out, `No keywords match "zzz"`)
}
