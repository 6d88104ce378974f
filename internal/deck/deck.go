// Package deck orchestrates a deck build end to end: it fans a word
// list out over a note creator, drains results in completion order,
// honors the note quota, and writes the shuffled result as an Anki
// package.
package deck

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/wjrm500/lexideck/internal/anki"
	"github.com/wjrm500/lexideck/internal/dictionary"
	"github.com/wjrm500/lexideck/internal/notes"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

// Deck IDs are drawn from this range, matching what Anki's own client
// generates for new decks.
const (
	minDeckID = 1_000_000_000
	maxDeckID = 5_000_000_000
)

// PackageWriter persists a finished deck. Swappable in tests.
type PackageWriter func(path string, deck *anki.Deck) error

// Options configures a deck build.
type Options struct {
	// Name is the deck name shown in Anki.
	Name string

	// PackagePath is where the .apkg file is written.
	PackagePath string

	// ConcurrencyLimit bounds simultaneous lookups, clamped to [1, 5].
	ConcurrencyLimit int

	// NoteLimit stops processing once this many notes are prepared.
	// Zero means unlimited.
	NoteLimit int

	// Backoff overrides the rate-limit recovery poll interval.
	Backoff time.Duration

	// Prompt overrides the redirect-threshold operator prompt.
	Prompt notes.PromptFunc

	// Writer overrides how the package is written. Defaults to
	// anki.WritePackage.
	Writer PackageWriter

	Logger *slog.Logger
}

// Summary reports what a build accomplished.
type Summary struct {
	DeckID         int64
	WordsProcessed int
	NotesCreated   int
	RequestsMade   int64
}

// Create builds a deck for the given words using the retriever and
// writes it to disk. The retriever is closed before Create returns. An
// empty word list, or a run that yields no notes, writes nothing and is
// not an error.
func Create(ctx context.Context, words []string, retriever retrieval.Retriever, opts Options) (Summary, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Name == "" {
		opts.Name = "Language learning flashcards"
	}
	if opts.PackagePath == "" {
		opts.PackagePath = "output.apkg"
	}
	writer := opts.Writer
	if writer == nil {
		writer = anki.WritePackage
	}

	defer func() {
		if err := retriever.Close(); err != nil {
			log.Warn("error closing retriever", "error", err)
		}
	}()

	if len(words) == 0 {
		log.Warn("no words to translate, exiting")
		return Summary{}, nil
	}

	deckID := minDeckID + rand.Int63n(maxDeckID-minDeckID)
	creatorOpts := []notes.Option{notes.WithLogger(log)}
	if opts.Backoff > 0 {
		creatorOpts = append(creatorOpts, notes.WithBackoff(opts.Backoff))
	}
	if opts.Prompt != nil {
		creatorOpts = append(creatorOpts, notes.WithPrompt(opts.Prompt))
	}
	creator := notes.NewCreator(deckID, dictionary.New(retriever, log), opts.ConcurrencyLimit, creatorOpts...)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		notes []*anki.Note
		err   error
	}
	results := make(chan result, len(words))
	var wg sync.WaitGroup
	log.Info("processing words", "count", len(words))
	for _, word := range words {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			created, err := creator.CreateNotes(runCtx, word)
			results <- result{notes: created, err: err}
		}(word)
	}

	summary := Summary{DeckID: deckID}
	var all []*anki.Note
	for range words {
		r := <-results
		if r.err != nil {
			// Cancellation of laggard words after an early stop is
			// expected and carries no information.
			if !errors.Is(r.err, context.Canceled) && !errors.Is(r.err, context.DeadlineExceeded) {
				log.Error("word processing failed", "error", r.err)
			}
			continue
		}
		summary.WordsProcessed++
		if len(r.notes) == 0 {
			continue
		}
		all = append(all, r.notes...)
		log.Debug("prepared notes for word",
			"word", r.notes[0].Fields[1],
			"notes", len(r.notes),
			"total_notes", len(all))
		if opts.NoteLimit > 0 && len(all) >= opts.NoteLimit {
			log.Info("note limit reached, stopping processing", "note_limit", opts.NoteLimit)
			break
		}
	}
	cancel()
	wg.Wait()

	summary.RequestsMade = retriever.RequestsMade()
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if len(all) == 0 {
		log.Warn("no notes to create, exiting")
		return summary, nil
	}

	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})

	log.Info("creating deck",
		"name", opts.Name, "deck_id", deckID, "notes", len(all), "path", opts.PackagePath)
	out := anki.NewDeck(deckID, opts.Name)
	for _, note := range all {
		out.AddNote(note)
	}
	if err := writer(opts.PackagePath, out); err != nil {
		return summary, err
	}
	summary.NotesCreated = len(all)
	log.Info("processing complete", "requests_made", summary.RequestsMade)
	return summary, nil
}
