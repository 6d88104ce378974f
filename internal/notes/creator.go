// Package notes turns words into Anki notes. The Creator pulls
// translations through a dictionary, renders them as flashcard fields,
// and shields the underlying retriever with a concurrency permit pool,
// a rate-limit recovery protocol and a redirect circuit breaker.
package notes

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/wjrm500/lexideck/internal/anki"
	"github.com/wjrm500/lexideck/internal/dictionary"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const (
	minConcurrency = 1
	maxConcurrency = 5

	defaultBackoff           = 30 * time.Second
	defaultRedirectThreshold = 5
)

// PromptFunc asks the operator to intervene after repeated redirects,
// blocking until they acknowledge.
type PromptFunc func(count int)

// Creator converts words into Anki notes with bounded concurrency.
type Creator struct {
	deckID    int64
	dict      *dictionary.Dictionary
	log       *slog.Logger
	sem       *semaphore.Weighted
	backoff   time.Duration
	prompt    PromptFunc
	gate      *rateLimitGate
	redirects *redirectTracker
}

// Option customizes a Creator.
type Option func(*Creator)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Creator) { c.log = log }
}

// WithBackoff sets the delay between rate-limit recovery probes.
func WithBackoff(d time.Duration) Option {
	return func(c *Creator) { c.backoff = d }
}

// WithPrompt replaces the operator prompt used when redirects pile up.
func WithPrompt(p PromptFunc) Option {
	return func(c *Creator) { c.prompt = p }
}

// NewCreator builds a Creator for one deck. The concurrency limit is
// clamped to [1, 5]; anything higher tends to trip scraping targets'
// defenses.
func NewCreator(deckID int64, dict *dictionary.Dictionary, concurrency int, opts ...Option) *Creator {
	c := &Creator{
		deckID:    deckID,
		dict:      dict,
		log:       slog.Default(),
		backoff:   defaultBackoff,
		gate:      newRateLimitGate(),
		redirects: newRedirectTracker(defaultRedirectThreshold),
	}
	for _, opt := range opts {
		opt(c)
	}
	if concurrency < minConcurrency {
		c.log.Warn("concurrency limit below minimum, clamping",
			"requested", concurrency, "using", minConcurrency)
		concurrency = minConcurrency
	}
	if concurrency > maxConcurrency {
		c.log.Warn("concurrency limit above maximum, clamping",
			"requested", concurrency, "using", maxConcurrency)
		concurrency = maxConcurrency
	}
	c.sem = semaphore.NewWeighted(int64(concurrency))
	if c.prompt == nil {
		c.prompt = stdinPrompt
	}
	return c
}

// CreateNotes produces the notes for one word. Lookup problems other
// than cancellation are absorbed: the word yields zero notes and the
// run continues. A rate-limited lookup waits out the limit via the
// recovery protocol and is retried once.
func (c *Creator) CreateNotes(ctx context.Context, word string) ([]*anki.Note, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	notes, err := c.createNotes(ctx, word)
	if err == nil {
		return notes, nil
	}

	var redirect *retrieval.RedirectError
	switch {
	case errors.Is(err, retrieval.ErrRateLimited):
		if err := c.recoverFromRateLimit(ctx); err != nil {
			return nil, err
		}
		notes, err = c.createNotes(ctx, word)
		if err == nil {
			return notes, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Error("giving up on word after rate limit recovery", "word", word, "error", err)
		return nil, nil
	case errors.As(err, &redirect):
		c.log.Warn("lookup redirected",
			"word", word, "requested_url", redirect.RequestedURL, "target_url", redirect.TargetURL)
		c.redirects.record(c.prompt)
		return nil, nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		c.log.Error("error processing word", "word", word, "error", err)
		return nil, nil
	}
}

func (c *Creator) createNotes(ctx context.Context, word string) ([]*anki.Note, error) {
	translations, err := c.dict.Translate(ctx, word)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		c.log.Warn("no translations found", "word", word)
		return nil, nil
	}

	notes := make([]*anki.Note, 0, len(translations))
	for _, t := range translations {
		note, err := c.noteFromTranslation(t)
		if err != nil {
			return nil, fmt.Errorf("render note for %q: %w", word, err)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// recoverFromRateLimit waits until the source stops throttling. One
// caller coordinates: it sleeps, probes, and repeats until the source
// answers normally. Everyone else blocks on the gate. Probe failures
// count as "still limited"; giving up instead would strand the waiters.
func (c *Creator) recoverFromRateLimit(ctx context.Context) error {
	if !c.gate.tryStartHandling() {
		return c.gate.awaitClear(ctx)
	}
	defer c.gate.finish()

	retriever := c.dict.Retriever()
	if retriever == nil {
		return nil
	}
	c.log.Warn("rate limit activated", "wait", c.backoff)
	for {
		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
		limited, err := retriever.RateLimited(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn("rate limit probe failed, assuming still limited", "error", err)
			continue
		}
		if !limited {
			break
		}
		c.log.Warn("rate limit still active", "wait", c.backoff)
	}
	c.log.Info("rate limit deactivated")
	return nil
}

// stdinPrompt blocks the run until the operator presses enter, giving
// them a chance to visit the site and clear whatever interstitial page
// is causing the redirects.
func stdinPrompt(count int) {
	fmt.Printf("Hit %d redirected lookups. The site may be showing a captcha or maintenance page.\n", count)
	fmt.Print("Resolve it in a browser, then press enter to continue: ")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
