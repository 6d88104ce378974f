package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjrm500/lexideck/internal/domain"
)

func TestFormatTranslations(t *testing.T) {
	def1, err := domain.NewDefinition("song", []domain.SentencePair{
		{SourceSentence: "Me gusta esta canción.", TargetSentence: "I like this song."},
	})
	require.NoError(t, err)
	def2, err := domain.NewDefinition("tune", []domain.SentencePair{
		{SourceSentence: "Tarareó una canción.", TargetSentence: "She hummed a tune."},
	})
	require.NoError(t, err)
	translation, err := domain.NewTranslation("canción", "noun", []*domain.Definition{def1, def2})
	require.NoError(t, err)

	got := formatTranslations([]*domain.Translation{translation})
	want := "canción (noun) - song, tune\n" +
		"   song\n" +
		"      Me gusta esta canción. - I like this song.\n" +
		"   tune\n" +
		"      Tarareó una canción. - She hummed a tune.\n\n"
	assert.Equal(t, want, got)
}
