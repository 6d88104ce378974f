package retrieval

import (
	"errors"
	"fmt"
)

// Common errors returned by retrievers and the registry.
var (
	// ErrRateLimited is returned when the remote source answers with a
	// "too many requests" status. It is an expected, recoverable outcome
	// handled by the note creator's recovery protocol.
	ErrRateLimited = errors.New("rate limited by remote source")

	// ErrUnsupportedLanguagePair is returned at construction time when a
	// retriever does not support the requested language pair.
	ErrUnsupportedLanguagePair = errors.New("language pair not supported")

	// ErrUnknownRetriever is returned by the registry when no retriever
	// is registered under the requested key.
	ErrUnknownRetriever = errors.New("unknown retriever type")
)

// RedirectError is returned when the resolved response URL differs from
// the requested URL. The target may be a captcha or error page, so the
// fetch result is discarded rather than silently followed.
type RedirectError struct {
	RequestedURL string
	TargetURL    string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("URL redirected from %s to %s", e.RequestedURL, e.TargetURL)
}
