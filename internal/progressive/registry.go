package progressive

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownStrategy reports a strategy name with no registered
// implementation. Callers classify it with errors.Is.
var ErrUnknownStrategy = errors.New("unknown search strategy")

// SearcherFactory provides access to the registered search strategies.
// Using the interface type enables dependency injection in tests and in
// the HTTP service layer.
type SearcherFactory interface {
	// Get returns the strategy registered under name.
	Get(name string) (Searcher, error)
	// List returns the registered strategy names in sorted order.
	List() []string
	// GetAll returns all registered strategies, ordered by name.
	GetAll() []Searcher
}

// registry is the default SearcherFactory implementation.
type registry struct {
	mu        sync.RWMutex
	searchers map[string]Searcher
}

// Get returns the strategy registered under name.
func (r *registry) Get(name string) (Searcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.searchers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// List returns the registered strategy names in sorted order.
func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.searchers))
	for name := range r.searchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns all registered strategies, ordered by name.
func (r *registry) GetAll() []Searcher {
	names := r.List()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Searcher, 0, len(names))
	for _, name := range names {
		out = append(out, r.searchers[name])
	}
	return out
}

// register adds a strategy under name, replacing any previous entry.
func (r *registry) register(name string, s Searcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchers[name] = s
}

var (
	globalFactory     *registry
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide strategy registry, populated with
// the built-in strategies on first use.
func GlobalFactory() SearcherFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = &registry{searchers: make(map[string]Searcher)}
		globalFactory.register("sequential", &SequentialSearch{})
		globalFactory.register("parallel", &ParallelSearch{})
	})
	return globalFactory
}
