package domain

// Default caps applied when constructing definitions and translations.
// Lists longer than these are truncated, earliest entries first.
const (
	DefaultMaxDefinitions   = 3
	DefaultMaxSentencePairs = 3
)

// Linker produces hyperlinks back to the source that supplied a
// translation. Implemented by retrievers; declared here so the data model
// does not depend on the retrieval layer.
type Linker interface {
	// Link returns a URL showing more information for the word being
	// translated, or "" if the source has no such page.
	Link(word string) string

	// ReverseLink returns a URL showing more information for a translated
	// gloss, or "" if the source has no such page.
	ReverseLink(gloss string) string
}

// SynonymChecker decides which glosses in a list are synonymous with an
// earlier entry. It is an external collaborator consulted during
// Translation construction when synonym pruning is enabled.
type SynonymChecker interface {
	// MarkSynonymous returns one mark per gloss; a true mark means the
	// gloss shares a synonym cluster with an earlier gloss in the list.
	MarkSynonymous(glosses []string, partOfSpeech string) []bool
}

// SentencePair is a sentence in the source language together with its
// translation into the target language. Pairs give context for one
// definition of a word. Value semantics; two pairs are equal when both
// sentences match.
type SentencePair struct {
	SourceSentence string
	TargetSentence string
}

// Definition is one gloss for a word within a part of speech, with the
// sentence pairs that illustrate it.
type Definition struct {
	Text          string
	SentencePairs []SentencePair

	translation *Translation
}

// DefinitionOption customizes definition construction.
type DefinitionOption func(*definitionConfig)

type definitionConfig struct {
	maxSentencePairs int
}

// WithMaxSentencePairs overrides the cap on retained sentence pairs.
func WithMaxSentencePairs(n int) DefinitionOption {
	return func(c *definitionConfig) {
		c.maxSentencePairs = n
	}
}

// NewDefinition builds a Definition from a gloss and its sentence pairs.
// The pair list is truncated to the configured cap (default
// DefaultMaxSentencePairs), keeping source order. Construction fails if
// the gloss or the pair list is empty.
func NewDefinition(text string, pairs []SentencePair, opts ...DefinitionOption) (*Definition, error) {
	if text == "" {
		return nil, ErrEmptyGloss
	}
	if len(pairs) == 0 {
		return nil, ErrNoSentencePairs
	}

	cfg := definitionConfig{maxSentencePairs: DefaultMaxSentencePairs}
	for _, opt := range opts {
		opt(&cfg)
	}

	kept := pairs
	if cfg.maxSentencePairs > 0 && len(kept) > cfg.maxSentencePairs {
		kept = kept[:cfg.maxSentencePairs]
	}
	return &Definition{
		Text:          text,
		SentencePairs: append([]SentencePair(nil), kept...),
	}, nil
}

// Translation returns the owning Translation, set when the definition is
// attached during Translation construction. Nil for a free definition.
func (d *Definition) Translation() *Translation {
	return d.translation
}

// Translation is one part-of-speech sense cluster for a word: the word
// itself, the part of speech, and the definitions the word has within
// that part of speech.
type Translation struct {
	Word         string
	PartOfSpeech string
	Definitions  []*Definition

	source Linker
}

// TranslationOption customizes translation construction.
type TranslationOption func(*translationConfig)

type translationConfig struct {
	maxDefinitions int
	source         Linker
	synonyms       SynonymChecker
}

// WithMaxDefinitions overrides the cap on retained definitions. A value
// of 0 disables truncation.
func WithMaxDefinitions(n int) TranslationOption {
	return func(c *translationConfig) {
		c.maxDefinitions = n
	}
}

// WithSource records the retriever that produced the translation so
// notes can hyperlink back to it.
func WithSource(l Linker) TranslationOption {
	return func(c *translationConfig) {
		c.source = l
	}
}

// WithSynonymPruning drops definitions whose gloss is synonymous with an
// earlier kept definition's gloss, keeping the earliest of each cluster.
func WithSynonymPruning(checker SynonymChecker) TranslationOption {
	return func(c *translationConfig) {
		c.synonyms = checker
	}
}

// NewTranslation builds a Translation. Definitions are deduplicated by
// gloss (first occurrence wins), then truncated to the configured cap
// (default DefaultMaxDefinitions), then optionally pruned of synonymous
// glosses. Each kept definition receives a back-reference to the new
// translation. Construction fails if the word, the part of speech or the
// definitions list is empty.
func NewTranslation(word, partOfSpeech string, definitions []*Definition, opts ...TranslationOption) (*Translation, error) {
	if word == "" {
		return nil, ErrEmptyWord
	}
	if partOfSpeech == "" {
		return nil, ErrEmptyPartOfSpeech
	}
	if len(definitions) == 0 {
		return nil, ErrNoDefinitions
	}

	cfg := translationConfig{maxDefinitions: DefaultMaxDefinitions}
	for _, opt := range opts {
		opt(&cfg)
	}

	seen := make(map[string]bool, len(definitions))
	deduped := make([]*Definition, 0, len(definitions))
	for _, d := range definitions {
		if seen[d.Text] {
			continue
		}
		seen[d.Text] = true
		deduped = append(deduped, d)
	}
	if cfg.maxDefinitions > 0 && len(deduped) > cfg.maxDefinitions {
		deduped = deduped[:cfg.maxDefinitions]
	}

	if cfg.synonyms != nil {
		glosses := make([]string, len(deduped))
		for i, d := range deduped {
			glosses[i] = d.Text
		}
		marks := cfg.synonyms.MarkSynonymous(glosses, partOfSpeech)
		pruned := deduped[:0]
		for i, d := range deduped {
			if i < len(marks) && marks[i] {
				continue
			}
			pruned = append(pruned, d)
		}
		deduped = pruned
	}

	t := &Translation{
		Word:         word,
		PartOfSpeech: partOfSpeech,
		Definitions:  deduped,
		source:       cfg.source,
	}
	for _, d := range t.Definitions {
		d.translation = t
	}
	return t, nil
}

// Source returns the Linker of the retriever that produced this
// translation, or nil if none was recorded.
func (t *Translation) Source() Linker {
	return t.source
}

// KeepDefinitions retains only the definitions for which keep returns
// true, preserving order, and reports how many remain. Used by concise
// mode to intersect a translation's definitions against a site's head
// definition list; a translation left with zero definitions should be
// dropped by the caller.
func (t *Translation) KeepDefinitions(keep func(*Definition) bool) int {
	kept := t.Definitions[:0]
	for _, d := range t.Definitions {
		if keep(d) {
			kept = append(kept, d)
		}
	}
	t.Definitions = kept
	return len(kept)
}
