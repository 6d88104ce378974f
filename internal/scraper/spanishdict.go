package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const spanishDictBaseURL = "https://www.spanishdict.com"

var spanishDictPairs = []lang.Pair{
	{From: lang.English, To: lang.Spanish},
	{From: lang.Spanish, To: lang.English},
}

func init() {
	retrieval.Register("spanishdict", func(_ context.Context, opts retrieval.Options) (retrieval.Retriever, error) {
		return NewSpanishDict(opts)
	})
}

// SpanishDict scrapes translation data from the SpanishDict.com
// dictionary pane, creating one Translation per part of speech listed
// there.
type SpanishDict struct {
	site
}

// NewSpanishDict builds a SpanishDict scraper for the given options.
func NewSpanishDict(opts retrieval.Options) (*SpanishDict, error) {
	s, err := newSite(opts, spanishDictPairs)
	if err != nil {
		return nil, fmt.Errorf("spanishdict: %w", err)
	}
	return &SpanishDict{site: s}, nil
}

// Link returns the dictionary page URL for a word.
func (s *SpanishDict) Link(word string) string {
	return fmt.Sprintf("%s/translate/%s?langFrom=%s",
		spanishDictBaseURL, url.PathEscape(standardize(word)), s.from.ISO())
}

// ReverseLink returns the dictionary page URL for a translated gloss.
func (s *SpanishDict) ReverseLink(gloss string) string {
	return fmt.Sprintf("%s/translate/%s?langFrom=%s",
		spanishDictBaseURL, url.PathEscape(standardize(gloss)), s.to.ISO())
}

// RateLimited probes the site root for throttling.
func (s *SpanishDict) RateLimited(ctx context.Context) (bool, error) {
	return s.fetch.RateLimited(ctx, spanishDictBaseURL)
}

// RetrieveTranslations fetches the dictionary page for a word and builds
// one Translation per part-of-speech block in the "Dictionary" pane. In
// concise mode the result is additionally intersected against the page's
// quickdef list.
func (s *SpanishDict) RetrieveTranslations(ctx context.Context, word string) ([]*domain.Translation, error) {
	doc, err := s.fetch.Document(ctx, s.Link(word))
	if err != nil {
		return nil, err
	}

	// The page heading carries the word with its canonical accents.
	if heading := strings.TrimSpace(doc.Find("h1.MskJYfNq").First().Text()); heading != "" {
		word = heading
	}

	pane := doc.Find("div#dictionary-neodict-" + s.from.ISO())
	if pane.Length() == 0 {
		return nil, fmt.Errorf("could not parse translation data for %q - are you sure it is a valid %s word?",
			word, s.from.Title())
	}

	var translations []*domain.Translation
	pane.Find(".W4_X2sG1").Each(func(_ int, posDiv *goquery.Selection) {
		if t := s.translationFromPartOfSpeechDiv(word, posDiv); t != nil {
			translations = append(translations, t)
		}
	})

	if s.concise {
		translations = s.intersectWithQuickdefs(doc, translations)
	}
	return translations, nil
}

// translationFromPartOfSpeechDiv extracts one Translation from a part of
// speech block. Blocks holding only "no direct translation" entries, or
// only definitions without complete sentence pairs, yield nil.
func (s *SpanishDict) translationFromPartOfSpeechDiv(word string, posDiv *goquery.Selection) *domain.Translation {
	partOfSpeech := strings.TrimSpace(posDiv.
		Find(".VlFhSoPR, .L0ywlHB1, .cNX9vGLU, .CDAsok0l, .VEBez1ed").First().
		Find("a, span").First().Text())

	var definitions []*domain.Definition
	posDiv.Find(".tmBfjszm").Each(func(_ int, defDiv *goquery.Selection) {
		// "No direct translation" entries carry no hyperlink.
		signal := defDiv.Find("a").First()
		if signal.Length() == 0 {
			return
		}
		text := strings.TrimSpace(signal.Text())

		var pairs []domain.SentencePair
		defDiv.Find("a").Each(func(_ int, marker *goquery.Selection) {
			container := marker.Parent().Parent()
			src := container.Find("span[lang=" + s.from.ISO() + "]").First()
			tgt := container.Find("span[lang=" + s.to.ISO() + "]").First()
			if src.Length() == 0 || tgt.Length() == 0 {
				return
			}
			pairs = append(pairs, domain.SentencePair{
				SourceSentence: src.Text(),
				TargetSentence: tgt.Text(),
			})
		})
		if len(pairs) == 0 {
			return
		}

		def, err := domain.NewDefinition(text, pairs, domain.WithMaxSentencePairs(s.maxSentencePairs()))
		if err != nil {
			s.log.Warn("skipping malformed definition", "word", word, "error", err)
			return
		}
		definitions = append(definitions, def)
	})
	if len(definitions) == 0 {
		return nil
	}

	t, err := domain.NewTranslation(word, partOfSpeech, definitions, domain.WithSource(s))
	if err != nil {
		s.log.Warn("skipping malformed part of speech block", "word", word, "error", err)
		return nil
	}
	return t
}

// intersectWithQuickdefs keeps only the definitions whose gloss appears
// in the page's quickdef list, dropping translations left empty.
func (s *SpanishDict) intersectWithQuickdefs(doc *goquery.Document, translations []*domain.Translation) []*domain.Translation {
	var quickdefs []string
	doc.Find("div[id^=quickdef]").Each(func(_ int, d *goquery.Selection) {
		id, _ := d.Attr("id")
		if !strings.HasSuffix(id, s.from.ISO()) {
			return
		}
		if a := d.Find("a").First(); a.Length() > 0 {
			quickdefs = append(quickdefs, a.Text())
		} else {
			quickdefs = append(quickdefs, d.Text())
		}
	})

	kept := translations[:0]
	for _, t := range translations {
		remaining := t.KeepDefinitions(func(d *domain.Definition) bool {
			for _, q := range quickdefs {
				if stripArticle(d.Text) == stripArticle(q) {
					return true
				}
			}
			return false
		})
		if remaining > 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

var articlePrefix = regexp.MustCompile(`(?i)^(el|la|el/la)\s+`)

// stripArticle removes a leading Spanish article so quickdef glosses
// compare equal to dictionary-pane glosses.
func stripArticle(word string) string {
	return articlePrefix.ReplaceAllString(word, "")
}
