package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const wordReferenceBaseURL = "https://www.wordreference.com"

var wordReferencePairs = []lang.Pair{
	{From: lang.English, To: lang.French},
	{From: lang.English, To: lang.German},
	{From: lang.English, To: lang.Italian},
	{From: lang.English, To: lang.Portuguese},
	{From: lang.English, To: lang.Spanish},
	{From: lang.French, To: lang.English},
	{From: lang.French, To: lang.Spanish},
	{From: lang.German, To: lang.English},
	{From: lang.German, To: lang.Spanish},
	{From: lang.Italian, To: lang.English},
	{From: lang.Italian, To: lang.Spanish},
	{From: lang.Portuguese, To: lang.English},
	{From: lang.Portuguese, To: lang.Spanish},
	{From: lang.Spanish, To: lang.English},
	{From: lang.Spanish, To: lang.French},
	{From: lang.Spanish, To: lang.German},
	{From: lang.Spanish, To: lang.Italian},
	{From: lang.Spanish, To: lang.Portuguese},
}

func init() {
	retrieval.Register("wordreference", func(_ context.Context, opts retrieval.Options) (retrieval.Retriever, error) {
		return NewWordReference(opts)
	})
}

// WordReference scrapes the WordReference bilingual dictionaries. The
// site lays out each dictionary entry as consecutive rows of one big
// table, so extraction groups rows by their alternating even/odd class
// before reading out the entry fields.
type WordReference struct {
	site
}

// NewWordReference builds a WordReference scraper for the given options.
func NewWordReference(opts retrieval.Options) (*WordReference, error) {
	s, err := newSite(opts, wordReferencePairs)
	if err != nil {
		return nil, fmt.Errorf("wordreference: %w", err)
	}
	return &WordReference{site: s}, nil
}

// Link returns the dictionary page URL for a word. The Spanish-English
// dictionaries predate the site's uniform URL scheme and keep their own.
func (w *WordReference) Link(word string) string {
	escaped := url.QueryEscape(standardize(word))
	switch {
	case w.from == lang.English && w.to == lang.Spanish:
		return fmt.Sprintf("%s/es/translation.asp?tranword=%s", wordReferenceBaseURL, escaped)
	case w.from == lang.Spanish && w.to == lang.English:
		return fmt.Sprintf("%s/es/en/translation.asp?spen=%s", wordReferenceBaseURL, escaped)
	}
	return fmt.Sprintf("%s/%s%s/%s", wordReferenceBaseURL, w.from.ISO(), w.to.ISO(), url.PathEscape(standardize(word)))
}

// ReverseLink returns the dictionary page URL for a translated gloss.
func (w *WordReference) ReverseLink(gloss string) string {
	escaped := url.QueryEscape(standardize(gloss))
	switch {
	case w.from == lang.English && w.to == lang.Spanish:
		return fmt.Sprintf("%s/es/en/translation.asp?spen=%s", wordReferenceBaseURL, escaped)
	case w.from == lang.Spanish && w.to == lang.English:
		return fmt.Sprintf("%s/es/translation.asp?tranword=%s", wordReferenceBaseURL, escaped)
	}
	return fmt.Sprintf("%s/%s%s/%s", wordReferenceBaseURL, w.from.ISO(), w.to.ISO(), url.PathEscape(standardize(gloss)))
}

// RateLimited probes the site root for throttling.
func (w *WordReference) RateLimited(ctx context.Context) (bool, error) {
	return w.fetch.RateLimited(ctx, wordReferenceBaseURL)
}

// entryKey identifies one dictionary entry: a source word in one part of
// speech.
type entryKey struct {
	fromWord     string
	partOfSpeech string
}

// RetrieveTranslations fetches the dictionary page for a word and builds
// one Translation per (source word, part of speech) entry in the results
// table. Entries without a complete example sentence pair are skipped.
func (w *WordReference) RetrieveTranslations(ctx context.Context, word string) ([]*domain.Translation, error) {
	doc, err := w.fetch.Document(ctx, w.Link(word))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.WRD").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("could not parse translation data for %q - are you sure it is a valid %s word?",
			word, w.from.Title())
	}

	var (
		order   []entryKey
		glosses = make(map[entryKey][]string)
		pairs   = make(map[entryKey]map[string]domain.SentencePair)
	)
	addEntry := func(key entryKey, gloss string, pair domain.SentencePair) {
		if _, ok := pairs[key]; !ok {
			order = append(order, key)
			pairs[key] = make(map[string]domain.SentencePair)
		}
		if _, ok := pairs[key][gloss]; !ok {
			glosses[key] = append(glosses[key], gloss)
		}
		pairs[key][gloss] = pair
	}

	for _, group := range groupRowsByClass(table.Find("tr")) {
		key, gloss, pair, ok := w.entryFromRowGroup(group)
		if !ok {
			continue
		}
		addEntry(key, gloss, pair)
	}

	translations := make([]*domain.Translation, 0, len(order))
	for _, key := range order {
		defs := make([]*domain.Definition, 0, len(glosses[key]))
		for _, gloss := range glosses[key] {
			def, err := domain.NewDefinition(gloss, []domain.SentencePair{pairs[key][gloss]},
				domain.WithMaxSentencePairs(w.maxSentencePairs()))
			if err != nil {
				w.log.Warn("skipping malformed definition", "word", word, "error", err)
				continue
			}
			defs = append(defs, def)
		}
		if len(defs) == 0 {
			continue
		}
		t, err := domain.NewTranslation(key.fromWord, key.partOfSpeech, defs,
			domain.WithMaxDefinitions(w.maxDefinitions()), domain.WithSource(w))
		if err != nil {
			w.log.Warn("skipping malformed entry", "word", word, "error", err)
			continue
		}
		translations = append(translations, t)
	}

	if w.concise && len(translations) > 3 {
		translations = translations[:3]
	}
	return translations, nil
}

// groupRowsByClass splits consecutive table rows into runs sharing the
// same first class attribute, keeping only the even/odd runs that carry
// dictionary entries.
func groupRowsByClass(rows *goquery.Selection) [][]*goquery.Selection {
	var (
		groups  [][]*goquery.Selection
		current []*goquery.Selection
		class   string
	)
	flush := func() {
		if len(current) > 0 && (class == "even" || class == "odd") {
			groups = append(groups, current)
		}
		current = nil
	}
	rows.Each(func(_ int, row *goquery.Selection) {
		rowClass := firstClass(row)
		if rowClass != class {
			flush()
			class = rowClass
		}
		current = append(current, row)
	})
	flush()
	return groups
}

// entryFromRowGroup reads one dictionary entry out of a row group. The
// group is only usable when it carries a source word, a part of speech,
// a target gloss and a complete example sentence pair.
func (w *WordReference) entryFromRowGroup(group []*goquery.Selection) (entryKey, string, domain.SentencePair, bool) {
	var frWrd, posTag, toWrd *goquery.Selection
	for _, row := range group {
		if frWrd == nil {
			if s := row.Find("td.FrWrd").First(); s.Length() > 0 {
				frWrd = s
			}
		}
		if posTag == nil {
			if s := row.Find("em.POS2").First(); s.Length() > 0 {
				posTag = s
			}
		}
		if toWrd == nil {
			if s := row.Find("td.ToWrd").First(); s.Length() > 0 {
				toWrd = s
			}
		}
	}
	if frWrd == nil || posTag == nil || toWrd == nil {
		return entryKey{}, "", domain.SentencePair{}, false
	}

	var fromExample, toExample string
	for _, row := range group {
		if fromExample == "" {
			if s := row.Find("td.FrEx").First(); s.Length() > 0 {
				fromExample = strings.TrimSpace(s.Text())
			}
		}
		if toExample == "" {
			if s := row.Find("td.ToEx").First(); s.Length() > 0 {
				cleaned := s.Clone()
				cleaned.Find("span.tooltip").Remove()
				toExample = strings.TrimSpace(cleaned.Text())
			}
		}
		if fromExample != "" && toExample != "" {
			break
		}
	}
	if fromExample == "" || toExample == "" {
		return entryKey{}, "", domain.SentencePair{}, false
	}

	key := entryKey{
		fromWord:     fromWordFromCell(frWrd),
		partOfSpeech: strings.TrimSpace(posTag.Text()),
	}
	gloss := firstTextNode(toWrd)
	if key.fromWord == "" || key.partOfSpeech == "" || gloss == "" {
		return entryKey{}, "", domain.SentencePair{}, false
	}
	return key, gloss, domain.SentencePair{SourceSentence: fromExample, TargetSentence: toExample}, true
}

// fromWordFromCell extracts the headword from a FrWrd cell: annotation
// tags are dropped, and trailing variants after a comma are cut.
func fromWordFromCell(cell *goquery.Selection) string {
	cleaned := cell.Clone()
	cleaned.Find("strong").Find("a, span").Remove()
	text := cleaned.Find("strong").First().Text()
	if i := strings.Index(text, ","); i >= 0 {
		text = text[:i]
	}
	return collapseSpaces(text)
}

// firstClass returns the first class listed in the row's class attribute.
func firstClass(row *goquery.Selection) string {
	attr, ok := row.Attr("class")
	if !ok {
		return ""
	}
	fields := strings.Fields(attr)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// firstTextNode returns the first non-blank direct text child of the
// selection's first node.
func firstTextNode(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	for n := s.Get(0).FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				return text
			}
		}
	}
	return ""
}
