package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const collinsPage = `<html><body>
<div class="hom">
  <span class="hi rend-sc pos">feminine noun</span>
  <div class="sense">
    <span class="quote">house</span>
    <span class="cit type-example">
      <span class="quote">La casa es grande.</span>
      <span class="quote">The house is big.</span>
    </span>
  </div>
  <div class="sense">
    <span class="quote">home</span>
    <span class="cit type-example">
      <span class="quote">Estoy en casa.</span>
      <span class="quote">I am at home.</span>
    </span>
    <span class="cit type-example">
      <span class="quote">truncated example</span>
    </span>
  </div>
  <div class="sense">
    <span class="quote">glossless sense without examples</span>
  </div>
</div>
</body></html>`

func TestCollinsRetrieveTranslations(t *testing.T) {
	t.Parallel()

	c, err := NewCollins(testOptions(lang.Spanish, lang.English))
	require.NoError(t, err)
	seedPage(&c.site, c.Link("casa"), docFromHTML(t, collinsPage))

	translations, err := c.RetrieveTranslations(context.Background(), "casa")
	require.NoError(t, err)
	require.Len(t, translations, 1)

	got := translations[0]
	assert.Equal(t, "casa", got.Word)
	assert.Equal(t, "feminine noun", got.PartOfSpeech)
	require.Len(t, got.Definitions, 2)
	assert.Equal(t, "house", got.Definitions[0].Text)
	assert.Equal(t, "home", got.Definitions[1].Text)
	require.Len(t, got.Definitions[1].SentencePairs, 1)
	assert.Equal(t, "Estoy en casa.", got.Definitions[1].SentencePairs[0].SourceSentence)
	assert.Equal(t, "I am at home.", got.Definitions[1].SentencePairs[0].TargetSentence)
}

func TestCollinsBotProtection(t *testing.T) {
	t.Parallel()

	c, err := NewCollins(testOptions(lang.Spanish, lang.English))
	require.NoError(t, err)
	page := "<html><body><p>Enable JavaScript and cookies to continue</p></body></html>"
	seedPage(&c.site, c.Link("casa"), docFromHTML(t, page))

	_, err = c.RetrieveTranslations(context.Background(), "casa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrape-resistant")
}

func TestCollinsLinks(t *testing.T) {
	t.Parallel()

	c, err := NewCollins(testOptions(lang.Spanish, lang.English))
	require.NoError(t, err)

	assert.Equal(t, "https://www.collinsdictionary.com/dictionary/spanish-english/casa", c.Link("Casa!"))
	assert.Equal(t, "https://www.collinsdictionary.com/dictionary/english-spanish/house", c.ReverseLink("house"))
}

func TestCollinsUnsupportedPair(t *testing.T) {
	t.Parallel()

	_, err := NewCollins(testOptions(lang.French, lang.Spanish))
	assert.ErrorIs(t, err, retrieval.ErrUnsupportedLanguagePair)
}
