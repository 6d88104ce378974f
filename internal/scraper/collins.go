package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const collinsBaseURL = "https://www.collinsdictionary.com/dictionary"

var collinsPairs = []lang.Pair{
	{From: lang.English, To: lang.French},
	{From: lang.English, To: lang.German},
	{From: lang.English, To: lang.Italian},
	{From: lang.English, To: lang.Portuguese},
	{From: lang.English, To: lang.Spanish},
	{From: lang.French, To: lang.English},
	{From: lang.German, To: lang.English},
	{From: lang.Italian, To: lang.English},
	{From: lang.Portuguese, To: lang.English},
	{From: lang.Spanish, To: lang.English},
}

func init() {
	retrieval.Register("collins", func(_ context.Context, opts retrieval.Options) (retrieval.Retriever, error) {
		return NewCollins(opts)
	})
}

// Collins scrapes the Collins online bilingual dictionaries.
type Collins struct {
	site
}

// NewCollins builds a Collins scraper for the given options.
func NewCollins(opts retrieval.Options) (*Collins, error) {
	s, err := newSite(opts, collinsPairs)
	if err != nil {
		return nil, fmt.Errorf("collins: %w", err)
	}
	return &Collins{site: s}, nil
}

// Link returns the dictionary page URL for a word.
func (c *Collins) Link(word string) string {
	return fmt.Sprintf("%s/%s-%s/%s", collinsBaseURL, c.from, c.to, url.PathEscape(standardize(word)))
}

// ReverseLink returns the dictionary page URL for a translated gloss.
func (c *Collins) ReverseLink(gloss string) string {
	return fmt.Sprintf("%s/%s-%s/%s", collinsBaseURL, c.to, c.from, url.PathEscape(standardize(gloss)))
}

// RateLimited probes the dictionary root for throttling.
func (c *Collins) RateLimited(ctx context.Context) (bool, error) {
	return c.fetch.RateLimited(ctx, collinsBaseURL)
}

// RetrieveTranslations fetches the dictionary page for a word and builds
// one Translation per "hom" block.
func (c *Collins) RetrieveTranslations(ctx context.Context, word string) ([]*domain.Translation, error) {
	doc, err := c.fetch.Document(ctx, c.Link(word))
	if err != nil {
		return nil, err
	}

	if strings.Contains(doc.Text(), "Enable JavaScript and cookies to continue") {
		return nil, errors.New("Collins remains scrape-resistant, owing to Cloudflare's anti-bot protection")
	}

	var translations []*domain.Translation
	doc.Find("div.hom").Each(func(_ int, posDiv *goquery.Selection) {
		if t := c.translationFromPartOfSpeechDiv(word, posDiv); t != nil {
			translations = append(translations, t)
		}
	})
	return translations, nil
}

func (c *Collins) translationFromPartOfSpeechDiv(word string, posDiv *goquery.Selection) *domain.Translation {
	partOfSpeech := strings.TrimSpace(posDiv.Find(".hi, .rend-sc, .pos").First().Text())

	var definitions []*domain.Definition
	posDiv.Find("div.sense").Each(func(_ int, senseDiv *goquery.Selection) {
		text := strings.TrimSpace(senseDiv.Find(".quote, .ref").First().Text())

		var pairs []domain.SentencePair
		senseDiv.Find(".cit, .type-example").Each(func(_ int, exampleDiv *goquery.Selection) {
			quotes := exampleDiv.Find(".quote")
			if quotes.Length() != 2 {
				return
			}
			pairs = append(pairs, domain.SentencePair{
				SourceSentence: strings.TrimSpace(quotes.Eq(0).Text()),
				TargetSentence: strings.TrimSpace(quotes.Eq(1).Text()),
			})
		})
		if len(pairs) == 0 {
			return
		}

		def, err := domain.NewDefinition(text, pairs, domain.WithMaxSentencePairs(c.maxSentencePairs()))
		if err != nil {
			c.log.Warn("skipping malformed sense", "word", word, "error", err)
			return
		}
		definitions = append(definitions, def)
	})
	if len(definitions) == 0 {
		return nil
	}

	t, err := domain.NewTranslation(word, partOfSpeech, definitions,
		domain.WithMaxDefinitions(c.maxDefinitions()), domain.WithSource(c))
	if err != nil {
		c.log.Warn("skipping malformed hom block", "word", word, "error", err)
		return nil
	}
	return t
}
