package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"google.golang.org/genai"

	"github.com/wjrm500/lexideck/internal/domain"
	"github.com/wjrm500/lexideck/internal/lang"
	"github.com/wjrm500/lexideck/internal/retrieval"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

func init() {
	retrieval.Register("gemini", func(ctx context.Context, opts retrieval.Options) (retrieval.Retriever, error) {
		return New(ctx, opts)
	})
}

// Retriever asks the Gemini API for translation data as structured JSON.
// Any language pair is accepted; the model itself is the dictionary.
type Retriever struct {
	log        *slog.Logger
	client     *genai.Client
	model      string
	from       lang.Language
	to         lang.Language
	concise    bool
	maxRetries int
	retryDelay time.Duration
	requests   atomic.Int64
}

// New builds a Gemini-backed retriever. The API key is required; the
// model name and retry tuning fall back to defaults when unset.
func New(ctx context.Context, opts retrieval.Options) (*Retriever, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Retriever{
		log:        log,
		client:     client,
		model:      model,
		from:       opts.From,
		to:         opts.To,
		concise:    opts.ConciseMode,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

// Link returns no URL; the model is not a browsable source.
func (r *Retriever) Link(string) string { return "" }

// ReverseLink returns no URL; the model is not a browsable source.
func (r *Retriever) ReverseLink(string) string { return "" }

// RateLimited always reports false. API quota errors surface as lookup
// failures with their own retry handling rather than as the scraping
// retrievers' throttling state.
func (r *Retriever) RateLimited(context.Context) (bool, error) {
	return false, nil
}

// RequestsMade returns the number of API calls issued so far.
func (r *Retriever) RequestsMade() int64 {
	return r.requests.Load()
}

// Close is a no-op; the API client holds no resources needing shutdown.
func (r *Retriever) Close() error {
	return nil
}

// RetrieveTranslations asks the model to translate a word and parses its
// JSON reply. An empty reply means the model knows no translations and
// yields an empty list.
func (r *Retriever) RetrieveTranslations(ctx context.Context, word string) ([]*domain.Translation, error) {
	text, err := r.generate(ctx, word)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var schema responseSchema
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return r.translationsFromSchema(word, schema), nil
}

// generate calls the model with exponential backoff and jitter. API
// transport failures are treated as transient and retried; blocked or
// malformed responses are permanent.
func (r *Retriever) generate(ctx context.Context, word string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt(r.from, r.to)}}},
	}
	prompt := genai.Text(userPrompt(r.from, r.to, word))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		r.log.DebugContext(ctx, "calling gemini",
			"word", word, "model", r.model, "attempt", attempt+1, "max_attempts", r.maxRetries+1)

		resp, err := r.client.Models.GenerateContent(ctx, r.model, prompt, config)
		r.requests.Add(1)
		if err == nil {
			if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
				return "", fmt.Errorf("%w: word %q", ErrContentBlocked, word)
			}
			return resp.Text(), nil
		}

		r.log.WarnContext(ctx, "gemini call failed",
			"word", word, "attempt", attempt+1, "error", err)
		if attempt >= r.maxRetries {
			return "", fmt.Errorf("%w: exceeded %d attempts: %v", ErrTransientFailure, r.maxRetries+1, err)
		}

		// delay = base * 2^attempt, scaled by a jitter in [0.5, 1.0).
		backoff := float64(r.retryDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// translationsFromSchema maps the model's reply onto the domain model,
// skipping entries too malformed to keep.
func (r *Retriever) translationsFromSchema(word string, schema responseSchema) []*domain.Translation {
	maxPairs := domain.DefaultMaxSentencePairs
	maxDefs := domain.DefaultMaxDefinitions
	if r.concise {
		maxPairs, maxDefs = 1, 1
	}

	translations := make([]*domain.Translation, 0, len(schema.Translations))
	for _, ts := range schema.Translations {
		definitions := make([]*domain.Definition, 0, len(ts.Definitions))
		for _, ds := range ts.Definitions {
			pairs := make([]domain.SentencePair, 0, len(ds.SentencePairs))
			for _, ps := range ds.SentencePairs {
				pairs = append(pairs, domain.SentencePair{
					SourceSentence: ps.SourceSentence,
					TargetSentence: ps.TargetSentence,
				})
			}
			def, err := domain.NewDefinition(ds.Text, pairs, domain.WithMaxSentencePairs(maxPairs))
			if err != nil {
				r.log.Warn("skipping malformed definition from model", "word", word, "error", err)
				continue
			}
			definitions = append(definitions, def)
		}
		t, err := domain.NewTranslation(ts.WordToTranslate, ts.PartOfSpeech, definitions,
			domain.WithMaxDefinitions(maxDefs), domain.WithSource(r))
		if err != nil {
			r.log.Warn("skipping malformed translation from model", "word", word, "error", err)
			continue
		}
		translations = append(translations, t)
	}
	return translations
}

// stripCodeFences unwraps a reply the model wrapped in a Markdown code
// fence despite the JSON response instruction.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

var _ retrieval.Retriever = (*Retriever)(nil)
