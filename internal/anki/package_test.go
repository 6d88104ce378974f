package anki

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() *Model {
	return &Model{
		ID:     1098765432,
		Name:   "Language learning flashcard model",
		Fields: []string{"deck_id", "word", "definition"},
		Templates: []Template{
			{
				Name:           "Card 1",
				QuestionFormat: "{{word}}",
				AnswerFormat:   "{{FrontSide}}<hr>{{definition}}",
			},
		},
	}
}

func TestNewNoteValidatesFieldCount(t *testing.T) {
	t.Parallel()

	model := testModel()

	note, err := NewNote(model, []string{"1", "hola", "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.GUID)
	assert.Equal(t, "1", note.SortField())

	_, err = NewNote(model, []string{"hola"})
	assert.Error(t, err)

	_, err = NewNote(nil, []string{"hola"})
	assert.Error(t, err)
}

func TestDeckModels(t *testing.T) {
	t.Parallel()

	model := testModel()
	deck := NewDeck(2059400110, "Test deck")
	for _, word := range []string{"hola", "adios"} {
		note, err := NewNote(model, []string{"2059400110", word, "x"})
		require.NoError(t, err)
		deck.AddNote(note)
	}

	require.Len(t, deck.Models(), 1)
	assert.Equal(t, model.ID, deck.Models()[0].ID)
}

func TestFieldChecksum(t *testing.T) {
	t.Parallel()

	// First 8 hex digits of sha1("abc") = "a9993e36...", as an integer.
	assert.Equal(t, int64(0xa9993e36), fieldChecksum("abc"))
}

func TestWriteAndReadPackage(t *testing.T) {
	t.Parallel()

	model := testModel()
	deck := NewDeck(2059400110, "Spanish vocabulary")
	words := [][]string{
		{"2059400110", "hola", "hello"},
		{"2059400110", "adios", "goodbye"},
		{"2059400110", "gato", "cat"},
	}
	for _, fields := range words {
		note, err := NewNote(model, fields)
		require.NoError(t, err)
		deck.AddNote(note)
	}

	path := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, WritePackage(path, deck))

	decks, err := ReadPackage(path)
	require.NoError(t, err)
	require.Len(t, decks, 1)

	got := decks[0]
	assert.Equal(t, deck.ID, got.ID)
	assert.Equal(t, "Spanish vocabulary", got.Name)
	require.Len(t, got.Notes, 3)
	assert.Equal(t, []string{"deck_id", "word", "definition"}, got.Notes[0].Model.Fields)

	seen := make(map[string]bool)
	for _, note := range got.Notes {
		require.Len(t, note.Fields, 3)
		seen[note.Fields[1]] = true
	}
	assert.True(t, seen["hola"] && seen["adios"] && seen["gato"])
}

func TestReadPackageMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadPackage(filepath.Join(t.TempDir(), "absent.apkg"))
	assert.Error(t, err)
}

func TestWritePackageNilDeck(t *testing.T) {
	t.Parallel()

	assert.Error(t, WritePackage(filepath.Join(t.TempDir(), "out.apkg"), nil))
}
