package notes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjrm500/lexideck/internal/dictionary"
	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTranslation(t *testing.T, word string, source domain.Linker) *domain.Translation {
	t.Helper()
	def, err := domain.NewDefinition("hello", []domain.SentencePair{
		{SourceSentence: "Hola, ¿qué tal?", TargetSentence: "Hello, how are you?"},
	})
	require.NoError(t, err)
	opts := []domain.TranslationOption{}
	if source != nil {
		opts = append(opts, domain.WithSource(source))
	}
	translation, err := domain.NewTranslation(word, "interjection", []*domain.Definition{def}, opts...)
	require.NoError(t, err)
	return translation
}

// scriptedRetriever fails each word the configured number of times
// before succeeding, and can simulate throttling shared across words.
type scriptedRetriever struct {
	mu      sync.Mutex
	fail    map[string]error
	cleared bool
	limited bool
	calls   int
	probes  int
	test    *testing.T
}

func (s *scriptedRetriever) Link(string) string        { return "" }
func (s *scriptedRetriever) ReverseLink(string) string { return "" }
func (s *scriptedRetriever) RequestsMade() int64       { return 0 }
func (s *scriptedRetriever) Close() error              { return nil }

func (s *scriptedRetriever) RetrieveTranslations(_ context.Context, word string) ([]*domain.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.limited && !s.cleared {
		return nil, retrieval.ErrRateLimited
	}
	if err, ok := s.fail[word]; ok {
		delete(s.fail, word)
		return nil, err
	}
	return []*domain.Translation{sampleTranslation(s.test, word, nil)}, nil
}

func (s *scriptedRetriever) RateLimited(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes++
	s.cleared = true
	return false, nil
}

func newTestCreator(t *testing.T, retriever retrieval.Retriever, opts ...Option) *Creator {
	t.Helper()
	dict := dictionary.New(retriever, testLogger())
	opts = append([]Option{WithLogger(testLogger()), WithBackoff(time.Millisecond)}, opts...)
	return NewCreator(2059400110, dict, 4, opts...)
}

func TestCreateNotes(t *testing.T) {
	t.Parallel()

	retriever := &scriptedRetriever{test: t}
	creator := newTestCreator(t, retriever)

	notes, err := creator.CreateNotes(context.Background(), "hola")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "hola", notes[0].Fields[1])
}

func TestCreateNotesAbsorbsLookupErrors(t *testing.T) {
	t.Parallel()

	retriever := &scriptedRetriever{
		test: t,
		fail: map[string]error{"hola": errors.New("boom")},
	}
	creator := newTestCreator(t, retriever)

	notes, err := creator.CreateNotes(context.Background(), "hola")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestCreateNotesPropagatesCancellation(t *testing.T) {
	t.Parallel()

	retriever := &scriptedRetriever{
		test: t,
		fail: map[string]error{"hola": context.Canceled},
	}
	creator := newTestCreator(t, retriever)

	_, err := creator.CreateNotes(context.Background(), "hola")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateNotesRecoversFromRateLimit(t *testing.T) {
	t.Parallel()

	retriever := &scriptedRetriever{test: t, limited: true}
	creator := newTestCreator(t, retriever)

	words := []string{"uno", "dos", "tres", "cuatro"}
	results := make(chan int, len(words))
	var wg sync.WaitGroup
	for _, word := range words {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			notes, err := creator.CreateNotes(context.Background(), word)
			assert.NoError(t, err)
			results <- len(notes)
		}(word)
	}
	wg.Wait()
	close(results)

	total := 0
	for n := range results {
		total += n
	}
	assert.Equal(t, len(words), total)
	assert.GreaterOrEqual(t, retriever.probes, 1)
}

func TestCreateNotesRedirectThreshold(t *testing.T) {
	t.Parallel()

	redirect := &retrieval.RedirectError{RequestedURL: "https://a/x", TargetURL: "https://a/captcha"}
	retriever := &scriptedRetriever{test: t, fail: map[string]error{}}

	var prompts []int
	creator := newTestCreator(t, retriever, WithPrompt(func(count int) {
		prompts = append(prompts, count)
	}))

	for i := 0; i < 12; i++ {
		retriever.mu.Lock()
		retriever.fail["palabra"] = redirect
		retriever.mu.Unlock()

		notes, err := creator.CreateNotes(context.Background(), "palabra")
		require.NoError(t, err)
		assert.Empty(t, notes)
	}

	// The prompt fires on the sixth redirect, then the count restarts.
	assert.Equal(t, []int{6, 6}, prompts)
}

func TestRateLimitGate(t *testing.T) {
	t.Parallel()

	gate := newRateLimitGate()

	// Open at rest.
	require.NoError(t, gate.awaitClear(context.Background()))

	require.True(t, gate.tryStartHandling())
	require.False(t, gate.tryStartHandling())

	waited := make(chan error, 1)
	go func() {
		waited <- gate.awaitClear(context.Background())
	}()

	select {
	case <-waited:
		t.Fatal("awaitClear returned while gate was closed")
	case <-time.After(20 * time.Millisecond):
	}

	gate.finish()
	select {
	case err := <-waited:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("awaitClear did not return after finish")
	}

	// Reusable for the next limit.
	require.True(t, gate.tryStartHandling())
	gate.finish()
}

func TestRateLimitGateAwaitCancellation(t *testing.T) {
	t.Parallel()

	gate := newRateLimitGate()
	require.True(t, gate.tryStartHandling())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, gate.awaitClear(ctx), context.Canceled)
	gate.finish()
}

func TestNewCreatorClampsConcurrency(t *testing.T) {
	t.Parallel()

	dict := dictionary.New(nil, testLogger())
	for _, requested := range []int{-1, 0, 6, 100} {
		creator := NewCreator(1, dict, requested, WithLogger(testLogger()))
		require.NotNil(t, creator.sem)
	}
}
