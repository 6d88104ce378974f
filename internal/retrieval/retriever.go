package retrieval

import (
	"context"
	"log/slog"
	"time"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
)

// Retriever fetches translation data for single words from an external
// source and normalizes it into the domain model.
type Retriever interface {
	domain.Linker

	// RetrieveTranslations returns the translations for a word, one per
	// part of speech. A word the source does not know yields an empty
	// list, not an error. Fails with ErrRateLimited, *RedirectError or
	// an ordinary lookup error.
	RetrieveTranslations(ctx context.Context, word string) ([]*domain.Translation, error)

	// RateLimited probes the source's base endpoint, independent of any
	// word page, to test whether throttling is currently in effect.
	RateLimited(ctx context.Context) (bool, error)

	// RequestsMade returns the number of network requests issued so far.
	// Observability only; not used for correctness.
	RequestsMade() int64

	// Close releases the retriever's network resources. Called once, after
	// all in-flight lookups have completed or been cancelled.
	Close() error
}

// Options carries everything a retriever factory may need. Fields that do
// not apply to a given implementation are ignored by it.
type Options struct {
	From        lang.Language
	To          lang.Language
	ConciseMode bool
	Logger      *slog.Logger

	// API-backed retrievers only.
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}
