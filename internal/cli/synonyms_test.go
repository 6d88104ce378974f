package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThesaurus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesaurus.json")
	content := `{"happy": ["glad", "cheerful"], "sad": ["unhappy"]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	thesaurus, err := loadThesaurus(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"glad", "cheerful"}, thesaurus["happy"])
	assert.Equal(t, []string{"unhappy"}, thesaurus["sad"])
}

func TestLoadThesaurusInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesaurus.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := loadThesaurus(path)
	assert.ErrorContains(t, err, "parsing thesaurus file")
}

func TestLoadThesaurusWrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesaurus.txt")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	_, err := loadThesaurus(path)
	assert.Error(t, err)
}

func TestFormatSynonyms(t *testing.T) {
	set := map[string]bool{"glad": true, "cheerful": true, "happy": true}
	assert.Equal(t, "{cheerful, glad, happy}", formatSynonyms(set))
}
