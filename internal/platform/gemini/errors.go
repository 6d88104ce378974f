package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrMissingAPIKey is returned at construction time when no Gemini
	// API key is configured.
	ErrMissingAPIKey = errors.New("gemini API key cannot be empty")

	// ErrContentBlocked is returned when the model refuses to answer
	// because of its safety filters. Permanent; never retried.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrInvalidResponse is returned when the model's reply cannot be
	// parsed as the expected JSON structure. Permanent; never retried.
	ErrInvalidResponse = errors.New("invalid response from model")

	// ErrTransientFailure is returned when all retry attempts for a
	// transient API failure are exhausted.
	ErrTransientFailure = errors.New("transient failure calling model")
)
