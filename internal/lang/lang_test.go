package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Language
	}{
		{"spanish", Spanish},
		{"English", English},
		{"  FRENCH  ", French},
		{"portuguese", Portuguese},
	}
	for _, tc := range tests {
		got, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseUnknown(t *testing.T) {
	t.Parallel()

	_, err := Parse("klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown language "klingon"`)
	assert.Contains(t, err.Error(), "spanish")
}

func TestLanguageAccessors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "spanish", Spanish.String())
	assert.Equal(t, "es", Spanish.ISO())
	assert.Equal(t, "Spanish", Spanish.Title())
	assert.False(t, Spanish.IsZero())

	var zero Language
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.Title())
}

func TestContains(t *testing.T) {
	t.Parallel()

	pairs := []Pair{
		{From: English, To: Spanish},
		{From: Spanish, To: English},
	}
	assert.True(t, Contains(pairs, English, Spanish))
	assert.False(t, Contains(pairs, English, French))
	assert.False(t, Contains(pairs, Spanish, Spanish))

	assert.True(t, Contains(nil, German, Italian))
}
