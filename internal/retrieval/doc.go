// Package retrieval defines the boundary between the application core and
// the external sources that supply translation data. A Retriever is given
// a word and returns the normalized translations for it; implementations
// either scrape a dictionary website or call a structured-response API.
//
// The rate-limit and redirect contract is part of this boundary, not of
// any one implementation: a fetch that is throttled fails with
// ErrRateLimited, and a fetch whose resolved URL differs from the
// requested one fails with a *RedirectError, so the orchestrator can run
// its recovery protocols without knowing which source is in use.
package retrieval
