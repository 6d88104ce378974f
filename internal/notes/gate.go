package notes

import (
	"context"
	"sync"
)

// rateLimitGate coordinates recovery when a shared source starts
// throttling. Exactly one worker becomes the coordinator and polls for
// recovery; the rest wait until the coordinator declares the limit
// lifted.
type rateLimitGate struct {
	mu       sync.Mutex
	handling bool
	clear    chan struct{}
}

func newRateLimitGate() *rateLimitGate {
	clear := make(chan struct{})
	close(clear)
	return &rateLimitGate{clear: clear}
}

// tryStartHandling elects a coordinator. The first caller during a limit
// closes the gate and gets true; later callers get false and should wait
// via awaitClear.
func (g *rateLimitGate) tryStartHandling() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handling {
		return false
	}
	g.handling = true
	g.clear = make(chan struct{})
	return true
}

// finish reopens the gate, releasing every waiter. Coordinator only.
func (g *rateLimitGate) finish() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handling = false
	close(g.clear)
}

// awaitClear blocks until the gate is open or the context ends.
func (g *rateLimitGate) awaitClear(ctx context.Context) error {
	g.mu.Lock()
	clear := g.clear
	g.mu.Unlock()
	select {
	case <-clear:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// redirectTracker counts redirected lookups across all words. Redirects
// usually mean the site is serving interstitial pages, so after the
// count passes the threshold the operator is asked to intervene before
// scraping continues, and the count starts over.
type redirectTracker struct {
	mu        sync.Mutex
	count     int
	threshold int
}

func newRedirectTracker(threshold int) *redirectTracker {
	return &redirectTracker{threshold: threshold}
}

// record registers one redirect. When the count passes the threshold the
// prompt runs, serialized under the tracker's lock so concurrent
// redirect handlers cannot race past it, and the count resets.
func (t *redirectTracker) record(prompt func(count int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	if t.count <= t.threshold {
		return
	}
	if prompt != nil {
		prompt(t.count)
	}
	t.count = 0
}
