package retrieval

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a Retriever from the given options. Factories fail
// when the options are invalid for the implementation, e.g. an
// unsupported language pair or a missing API credential.
type Factory func(ctx context.Context, opts Options) (Retriever, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a retriever factory available under the given key.
// Implementations call it from their init functions, in the manner of
// database/sql drivers. Registering the same key twice panics.
func Register(key string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("retrieval: Register called twice for %q", key))
	}
	registry[key] = f
}

// New constructs the retriever registered under key.
func New(ctx context.Context, key string, opts Options) (Retriever, error) {
	registryMu.RLock()
	f, ok := registry[key]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (options: %v)", ErrUnknownRetriever, key, Keys())
	}
	return f(ctx, opts)
}

// Keys returns the registered retriever keys in sorted order.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
