package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wjrm500/lexideck/internal/retrieval"
)

// pageCacheSize bounds the number of parsed pages kept per fetcher;
// least-recently-used entries are evicted beyond it.
const pageCacheSize = 128

// Fetcher retrieves and parses HTML pages over a persistent HTTP client.
// It enforces the scraping side of the retrieval contract: a 429 response
// fails with retrieval.ErrRateLimited, and a response whose resolved URL
// differs from the requested one fails with a *retrieval.RedirectError.
// Successfully parsed pages are cached by exact URL.
type Fetcher struct {
	client   *http.Client
	cache    *lru.Cache[string, *goquery.Document]
	requests atomic.Int64
	log      *slog.Logger
}

// NewFetcher builds a Fetcher with its own HTTP client and page cache.
func NewFetcher(log *slog.Logger) *Fetcher {
	cache, err := lru.New[string, *goquery.Document](pageCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  cache,
		log:    log,
	}
}

// Document fetches pageURL and returns its parsed form, consulting the
// cache first. The redirect check compares the requested URL against the
// URL the response actually resolved to; a changed URL usually means the
// site bounced the request to a captcha or error page.
func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if doc, ok := f.cache.Get(pageURL); ok {
		return doc, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	f.requests.Add(1)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, retrieval.ErrRateLimited
	}
	if resolved := resp.Request.URL.String(); resolved != pageURL {
		return nil, &retrieval.RedirectError{RequestedURL: pageURL, TargetURL: resolved}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	f.cache.Add(pageURL, doc)
	return doc, nil
}

// RateLimited probes baseURL directly, ignoring the page cache, and
// reports whether the source currently answers with "too many requests".
func (f *Fetcher) RateLimited(ctx context.Context, baseURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return false, fmt.Errorf("build probe request for %s: %w", baseURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", baseURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	f.requests.Add(1)
	return resp.StatusCode == http.StatusTooManyRequests, nil
}

// Requests returns the number of HTTP requests issued so far.
func (f *Fetcher) Requests() int64 {
	return f.requests.Load()
}

// Close releases idle connections held by the HTTP client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
