package scraper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjrm500/lexideck/internal/retrieval"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcherDocument(t *testing.T) {
	t.Parallel()

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("<html><body><h1>hola</h1></body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testLogger())
	defer func() {
		require.NoError(t, f.Close())
	}()

	doc, err := f.Document(context.Background(), server.URL+"/hola")
	require.NoError(t, err)
	assert.Equal(t, "hola", doc.Find("h1").Text())
	assert.Equal(t, int64(1), f.Requests())

	// A second fetch of the same URL is served from the cache.
	_, err = f.Document(context.Background(), server.URL+"/hola")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, int64(1), f.Requests())
}

func TestFetcherDocumentRateLimited(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := NewFetcher(testLogger())
	_, err := f.Document(context.Background(), server.URL+"/word")
	assert.ErrorIs(t, err, retrieval.ErrRateLimited)
}

func TestFetcherDocumentRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/word", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/captcha", http.StatusFound)
	})
	mux.HandleFunc("/captcha", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewFetcher(testLogger())
	_, err := f.Document(context.Background(), server.URL+"/word")

	var redirect *retrieval.RedirectError
	require.True(t, errors.As(err, &redirect))
	assert.Equal(t, server.URL+"/word", redirect.RequestedURL)
	assert.Equal(t, server.URL+"/captcha", redirect.TargetURL)
}

func TestFetcherRateLimitedProbe(t *testing.T) {
	t.Parallel()

	limited := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limited {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testLogger())

	got, err := f.RateLimited(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, got)

	limited = false
	got, err = f.RateLimited(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, int64(2), f.Requests())
}

func TestStandardize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hola", standardize("  Hola! "))
	assert.Equal(t, "que tal", standardize("Que tal?"))
	assert.Equal(t, "bienvenido", standardize("bien-venido"))
}

func TestCollapseSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", collapseSpaces("  a \t b\n c "))
}
