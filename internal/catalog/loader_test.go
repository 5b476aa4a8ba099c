package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T, name string) Catalog {
	t.Helper()
	cat, err := FileSource{Path: filepath.Join("testdata", name)}.Load(context.Background())
	require.NoError(t, err)
	return cat
}

func TestFileSourceJSON(t *testing.T) {
	cat := loadTestCatalog(t, "kwd.json")

	assert.Equal(t, []string{"BROKEN", "CONTROL_TERMINATION", "DATABASE_BINARY_D3PLOT", "PART"}, cat.Keywords())

	templates, ok := cat.Lookup("DATABASE_BINARY_D3PLOT")
	require.True(t, ok)
	require.Len(t, templates, 2)

	beam := templates[0]["beam"][0]
	assert.Equal(t, []string{"0", "1", "2", "3"}, beam.Options)
	assert.Equal(t, int8(20), beam.Position)
}

func TestFileSourceNormalizesDefaults(t *testing.T) {
	cat := loadTestCatalog(t, "kwd.json")
	part := cat["PART"][0]

	t.Run("null becomes empty", func(t *testing.T) {
		require.NotNil(t, part["pid"][0].Default)
		assert.Equal(t, "", *part["pid"][0].Default)
	})

	t.Run("numbers keep their text", func(t *testing.T) {
		assert.Equal(t, "1", part["mid"][0].DefaultValue())
		assert.Equal(t, "0.0", cat["CONTROL_TERMINATION"][0]["endtim"][0].DefaultValue())
	})
}

func TestFileSourceYAML(t *testing.T) {
	cat := loadTestCatalog(t, "kwd.yaml")

	tmpl := cat["SECTION_SHELL"][0]
	assert.Equal(t, "1", tmpl["secid"][0].DefaultValue())
	assert.Equal(t, "2", tmpl["elform"][0].DefaultValue())
	assert.Equal(t, "", tmpl["nip"][0].DefaultValue())
	assert.Equal(t, int8(10), tmpl["secid"][0].Width, "missing width should default")
}

func TestFileSourceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown extension", func(t *testing.T) {
		_, err := FileSource{Path: "catalog.txt"}.Load(ctx)
		assert.True(t, errors.Is(err, ErrUnknownFormat))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"PART": [`), 0o644))
		_, err := FileSource{Path: path}.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("non-scalar default", func(t *testing.T) {
		_, err := Decode([]byte(`{"K": [{"f": [{"name": "f", "default": [1]}]}]}`), FormatJSON)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := BytesSource{Data: []byte(`{}`), Format: FormatJSON}.Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBytesSourceEmptyDocument(t *testing.T) {
	cat, err := BytesSource{Data: []byte("null"), Format: FormatJSON}.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Keywords())
}

func TestCardTemplateSpecsOrder(t *testing.T) {
	tmpl := CardTemplate{
		"c": {{Name: "c", Position: 20}},
		"a": {{Name: "a", Position: 0}},
		"b": {{Name: "b", Position: 10}, {Name: "b", Position: 10, Width: 5}},
	}

	var names []string
	for _, s := range tmpl.Specs() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"a", "b", "b", "c"}, names)
}

func TestFieldCount(t *testing.T) {
	cat := loadTestCatalog(t, "kwd.json")
	assert.Equal(t, 13, cat.FieldCount())
}
