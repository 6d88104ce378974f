// Package dictionary wraps a retriever with per-word memoization, so a
// deck containing repeated words costs one lookup per distinct word.
package dictionary

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

// Dictionary memoizes successful lookups. Failed lookups are not cached,
// so a word that failed once is retried on its next request.
type Dictionary struct {
	retriever retrieval.Retriever
	log       *slog.Logger

	mu   sync.Mutex
	memo map[string][]*domain.Translation
}

// New builds a Dictionary over the given retriever. A nil retriever is
// allowed and yields empty results for every word.
func New(retriever retrieval.Retriever, log *slog.Logger) *Dictionary {
	if log == nil {
		log = slog.Default()
	}
	return &Dictionary{
		retriever: retriever,
		log:       log,
		memo:      make(map[string][]*domain.Translation),
	}
}

// Retriever returns the underlying retriever, which may be nil.
func (d *Dictionary) Retriever() retrieval.Retriever {
	return d.retriever
}

// Translate returns the translations for a word, consulting the memo
// first. Concurrent first lookups of the same word may each hit the
// retriever; the duplicate results are identical and the last store
// wins.
func (d *Dictionary) Translate(ctx context.Context, word string) ([]*domain.Translation, error) {
	if d.retriever == nil {
		return nil, nil
	}

	d.mu.Lock()
	if cached, ok := d.memo[word]; ok {
		d.mu.Unlock()
		d.log.DebugContext(ctx, "dictionary cache hit", "word", word)
		return cached, nil
	}
	d.mu.Unlock()

	translations, err := d.retriever.RetrieveTranslations(ctx, word)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.memo[word] = translations
	d.mu.Unlock()
	return translations, nil
}
