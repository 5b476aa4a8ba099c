package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/autokey/internal/catalog"
)

func TestPolicyValue(t *testing.T) {
	var p catalog.Policy
	v := newPolicyValue(&p, catalog.Skip)
	assert.Equal(t, "skip", v.String())
	assert.Equal(t, "policy", v.Type())

	require.NoError(t, v.Set(" ABORT "))
	assert.Equal(t, catalog.Abort, p)

	require.NoError(t, v.Set("skip"))
	assert.Equal(t, catalog.Skip, p)

	assert.Error(t, v.Set("retry"))
	assert.Equal(t, catalog.Skip, p)
}

func TestKeywordName(t *testing.T) {
	tests := map[string]string{
		"part":        "PART",
		"*part":       "PART",
		" *SECTION ":  "SECTION",
		"control_ter": "CONTROL_TER",
	}
	for in, want := range tests {
		assert.Equal(t, want, keywordName(in), in)
	}
}
