// Package scraper implements the page-scraping retriever family. Each
// site scraper knows the HTML structure of one dictionary website; the
// rate-limit and redirect behavior they share lives in Fetcher, and the
// normalization rules live in the domain package.
package scraper

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

// site carries the state every site scraper shares.
type site struct {
	from    lang.Language
	to      lang.Language
	concise bool
	fetch   *Fetcher
	log     *slog.Logger
}

func newSite(opts retrieval.Options, supported []lang.Pair) (site, error) {
	if !lang.Contains(supported, opts.From, opts.To) {
		return site{}, retrieval.ErrUnsupportedLanguagePair
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return site{
		from:    opts.From,
		to:      opts.To,
		concise: opts.ConciseMode,
		fetch:   NewFetcher(log),
		log:     log,
	}, nil
}

// maxSentencePairs is the per-definition cap; concise mode keeps only the
// first example per definition.
func (s *site) maxSentencePairs() int {
	if s.concise {
		return 1
	}
	return domain.DefaultMaxSentencePairs
}

// maxDefinitions is the per-translation cap under the same rule.
func (s *site) maxDefinitions() int {
	if s.concise {
		return 1
	}
	return domain.DefaultMaxDefinitions
}

func (s *site) RequestsMade() int64 {
	return s.fetch.Requests()
}

func (s *site) Close() error {
	return s.fetch.Close()
}

var punctuation = regexp.MustCompile(`[.,;:!?-]`)

// standardize strips punctuation, surrounding whitespace and case from a
// word so it can be embedded in a lookup URL.
func standardize(text string) string {
	return strings.ToLower(strings.TrimSpace(punctuation.ReplaceAllString(text, "")))
}

var whitespace = regexp.MustCompile(`\s+`)

// collapseSpaces trims text and folds internal whitespace runs into
// single spaces.
func collapseSpaces(text string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(text), " ")
}
