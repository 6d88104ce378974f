package domain

import "errors"

// Validation errors returned when constructing data model values.
var (
	// ErrEmptyWord is returned when a translation is built without a word.
	ErrEmptyWord = errors.New("word to translate cannot be empty")

	// ErrEmptyPartOfSpeech is returned when a translation is built without
	// a part of speech.
	ErrEmptyPartOfSpeech = errors.New("part of speech cannot be empty")

	// ErrNoDefinitions is returned when a translation is built with an
	// empty definitions list.
	ErrNoDefinitions = errors.New("definitions cannot be empty")

	// ErrEmptyGloss is returned when a definition is built without text.
	ErrEmptyGloss = errors.New("definition text cannot be empty")

	// ErrNoSentencePairs is returned when a definition is built with an
	// empty sentence pair list.
	ErrNoSentencePairs = errors.New("sentence pairs cannot be empty")
)
