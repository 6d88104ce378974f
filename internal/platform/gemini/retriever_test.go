package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), retrieval.Options{
		From:   lang.Spanish,
		To:     lang.English,
		Logger: testLogger(),
	})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	prompt := systemPrompt(lang.Spanish, lang.English)
	assert.Contains(t, prompt, "You are a spanish to english dictionary.")
	assert.Contains(t, prompt, `"word_to_translate"`)
}

func TestUserPrompt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Language from: spanish\nLanguage to: english\nWord to translate: amanecer",
		userPrompt(lang.Spanish, lang.English, "amanecer"))
}

const sampleReply = `{
	"translations": [
		{
			"word_to_translate": "amanecer",
			"part_of_speech": "noun",
			"definitions": [
				{
					"text": "dawn",
					"sentence_pairs": [
						{"source_sentence": "El amanecer es hermoso.", "target_sentence": "Dawn is beautiful."}
					]
				}
			]
		},
		{
			"word_to_translate": "amanecer",
			"part_of_speech": "intransitive verb",
			"definitions": [
				{
					"text": "to wake up",
					"sentence_pairs": [
						{"source_sentence": "Amanecí a las 6:00.", "target_sentence": "I woke up at 6:00."}
					]
				},
				{
					"text": "to stay up all night",
					"sentence_pairs": [
						{"source_sentence": "Amanecí estudiando.", "target_sentence": "I stayed up all night studying."}
					]
				}
			]
		}
	]
}`

func testRetriever(concise bool) *Retriever {
	return &Retriever{
		log:     testLogger(),
		from:    lang.Spanish,
		to:      lang.English,
		concise: concise,
	}
}

func TestTranslationsFromSchema(t *testing.T) {
	t.Parallel()

	var schema responseSchema
	require.NoError(t, json.Unmarshal([]byte(sampleReply), &schema))

	translations := testRetriever(false).translationsFromSchema("amanecer", schema)
	require.Len(t, translations, 2)

	noun := translations[0]
	assert.Equal(t, "amanecer", noun.Word)
	assert.Equal(t, "noun", noun.PartOfSpeech)
	require.Len(t, noun.Definitions, 1)
	assert.Equal(t, "dawn", noun.Definitions[0].Text)
	require.Len(t, noun.Definitions[0].SentencePairs, 1)
	assert.Equal(t, "El amanecer es hermoso.", noun.Definitions[0].SentencePairs[0].SourceSentence)

	verb := translations[1]
	assert.Equal(t, "intransitive verb", verb.PartOfSpeech)
	assert.Len(t, verb.Definitions, 2)
}

func TestTranslationsFromSchemaConcise(t *testing.T) {
	t.Parallel()

	var schema responseSchema
	require.NoError(t, json.Unmarshal([]byte(sampleReply), &schema))

	translations := testRetriever(true).translationsFromSchema("amanecer", schema)
	require.Len(t, translations, 2)
	assert.Len(t, translations[1].Definitions, 1)
}

func TestTranslationsFromSchemaSkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	schema := responseSchema{Translations: []translationSchema{
		{WordToTranslate: "amanecer", PartOfSpeech: "noun", Definitions: nil},
		{
			WordToTranslate: "amanecer",
			PartOfSpeech:    "verb",
			Definitions: []definitionSchema{
				{Text: "", SentencePairs: []sentencePairSchema{{SourceSentence: "a", TargetSentence: "b"}}},
				{Text: "to dawn", SentencePairs: []sentencePairSchema{{SourceSentence: "a", TargetSentence: "b"}}},
			},
		},
	}}

	translations := testRetriever(false).translationsFromSchema("amanecer", schema)
	require.Len(t, translations, 1)
	require.Len(t, translations[0].Definitions, 1)
	assert.Equal(t, "to dawn", translations[0].Definitions[0].Text)
}

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(` {"a":1} `))
}

func TestLinksAreEmpty(t *testing.T) {
	t.Parallel()

	r := testRetriever(false)
	assert.Empty(t, r.Link("amanecer"))
	assert.Empty(t, r.ReverseLink("dawn"))

	limited, err := r.RateLimited(context.Background())
	require.NoError(t, err)
	assert.False(t, limited)
}
