// Package service implements the business layer between the transports
// (HTTP server, CLI) and the search strategies. It owns strategy
// resolution and result caching.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/agbru/progsquare/internal/config"
	"github.com/agbru/progsquare/internal/progressive"
)

// Service defines the search operations exposed to the transports.
type Service interface {
	// Search runs the named strategy against the fixed bound and returns
	// the solution set together with the wall-clock duration. An empty
	// strategy name selects the default.
	Search(ctx context.Context, strategy string) (*progressive.SolutionSet, time.Duration, error)
	// Strategies returns the sorted names of the registered strategies.
	Strategies() []string
}

// DefaultStrategy is the strategy used when a request does not name one.
const DefaultStrategy = "parallel"

// cachedResult stores a completed search. The bound is a compile-time
// constant and every strategy is deterministic, so a successful result
// never goes stale.
type cachedResult struct {
	sols     *progressive.SolutionSet
	duration time.Duration
}

// searchService is the default Service implementation backed by the
// strategy factory.
type searchService struct {
	factory progressive.SearcherFactory
	cfg     config.AppConfig
	obs     progressive.ProgressObserver

	mu    sync.Mutex
	cache map[string]cachedResult
}

// NewSearchService creates a Service resolving strategies through factory.
// Progress of server-side searches is exported through the Prometheus
// observer so long-running requests are visible on /metrics.
//
// Parameters:
//   - factory: The strategy factory to resolve names against.
//   - cfg: The application configuration (worker count).
//
// Returns:
//   - Service: The initialized service.
func NewSearchService(factory progressive.SearcherFactory, cfg config.AppConfig) Service {
	return &searchService{
		factory: factory,
		cfg:     cfg,
		obs:     progressive.NewMetricsObserver(),
		cache:   make(map[string]cachedResult),
	}
}

// Search implements Service. Results are cached per strategy: the search
// space is fixed, so repeated requests are served from memory.
func (s *searchService) Search(ctx context.Context, strategy string) (*progressive.SolutionSet, time.Duration, error) {
	if strategy == "" {
		strategy = DefaultStrategy
	}
	strategy = strings.ToLower(strategy)

	s.mu.Lock()
	if cached, ok := s.cache[strategy]; ok {
		s.mu.Unlock()
		return cached.sols, cached.duration, nil
	}
	s.mu.Unlock()

	searcher, err := s.factory.Get(strategy)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	sols, err := searcher.Search(ctx, s.obs, 0, progressive.Bound, s.cfg.ToSearchOptions())
	duration := time.Since(start)
	if err != nil {
		return nil, duration, err
	}

	s.mu.Lock()
	s.cache[strategy] = cachedResult{sols: sols, duration: duration}
	s.mu.Unlock()

	return sols, duration, nil
}

// Strategies implements Service.
func (s *searchService) Strategies() []string {
	return s.factory.List()
}
