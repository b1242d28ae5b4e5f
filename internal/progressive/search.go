package progressive

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/agbru/progsquare/internal/parallel"
)

// Options configures a search run.
type Options struct {
	// Workers is the number of goroutines used by the parallel strategy.
	// Zero or negative selects runtime.NumCPU(). The sequential strategy
	// ignores it.
	Workers int
}

// Searcher defines a search strategy that enumerates every progressive
// perfect square below bound. All strategies must produce identical
// solution sets; the orchestrator cross-checks them against each other.
type Searcher interface {
	// Name returns a descriptive name for the strategy.
	Name() string

	// Search enumerates the progressive perfect squares below bound.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and timeouts.
	//   - obs: The progress observer (may be nil to discard progress).
	//   - idx: The strategy instance identifier passed to the observer.
	//   - bound: The exclusive upper limit for solutions.
	//   - opts: Strategy options (worker count).
	//
	// Returns:
	//   - *SolutionSet: The distinct solutions found.
	//   - error: A context error if the search was cancelled, nil otherwise.
	Search(ctx context.Context, obs ProgressObserver, idx int, bound int64, opts Options) (*SolutionSet, error)
}

// ensureObserver substitutes a no-op observer for nil.
func ensureObserver(obs ProgressObserver) ProgressObserver {
	if obs == nil {
		return NewNoOpObserver()
	}
	return obs
}

// searchOuter tests every candidate for a fixed outer parameter a,
// inserting the perfect squares found into sols.
//
// The inner loop terminates because n = c²a³b + cb² is strictly increasing
// in c for fixed (a, b) with a, b >= 1; once a candidate reaches the bound
// no larger c can produce one below it. This monotonicity is load-bearing:
// reordering the loop variables would break the early exit.
func searchOuter(a, bound int64, sols *SolutionSet) {
	a3 := a * a * a
	// b < a enforces the common ratio a/b > 1 and the ordering r < d <= q.
	for b := int64(1); b < a; b++ {
		for c := int64(1); ; c++ {
			n := c*c*a3*b + c*b*b
			if n >= bound {
				break
			}
			if IsPerfectSquare(n) {
				sols.Add(n)
			}
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sequential strategy
// ─────────────────────────────────────────────────────────────────────────────

// SequentialSearch is the reference single-threaded enumeration. It visits
// the (a, b, c) space in order with no synchronization overhead, which makes
// it the baseline the parallel strategy is validated against.
type SequentialSearch struct{}

// Name returns the name of the sequential strategy.
func (s *SequentialSearch) Name() string {
	return "Sequential Scan"
}

// Search implements Searcher with a single-threaded triple enumeration.
func (s *SequentialSearch) Search(ctx context.Context, obs ProgressObserver, idx int, bound int64, opts Options) (*SolutionSet, error) {
	obs = ensureObserver(obs)
	sols := NewSolutionSet()

	// The leading candidate term is c²a³b, so a is bounded by the cube
	// root of the bound: beyond it even the smallest (b=1, c=1) candidate
	// already reaches the bound.
	aMax := CubeRootCeil(bound)
	for a := int64(1); a <= aMax; a++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		searchOuter(a, bound, sols)
		obs.Update(idx, float64(a)/float64(aMax))
	}

	obs.Update(idx, 1.0)
	return sols, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Parallel strategy
// ─────────────────────────────────────────────────────────────────────────────

// ParallelSearch distributes the outer-loop values of a across a bounded
// worker pool. The (a, b) subspaces are independent, so each worker fills a
// private SolutionSet and the partial sets are merged once all workers have
// finished, preserving deduplication without per-insert locking.
type ParallelSearch struct{}

// Name returns the name of the parallel strategy.
func (s *ParallelSearch) Name() string {
	return "Parallel Scan"
}

// Search implements Searcher with a worker pool over outer-loop values.
func (s *ParallelSearch) Search(ctx context.Context, obs ProgressObserver, idx int, bound int64, opts Options) (*SolutionSet, error) {
	obs = ensureObserver(obs)

	aMax := CubeRootCeil(bound)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if int64(workers) > aMax {
		workers = int(aMax)
	}

	feed := make(chan int64, workers)
	partials := make([]*SolutionSet, workers)

	var wg sync.WaitGroup
	var ec parallel.ErrorCollector
	var completed atomic.Int64

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		local := NewSolutionSet()
		partials[w] = local
		go func() {
			defer wg.Done()
			for a := range feed {
				if err := ctx.Err(); err != nil {
					ec.SetError(err)
					// Keep draining so the feeder never blocks.
					continue
				}
				searchOuter(a, bound, local)
				obs.Update(idx, float64(completed.Add(1))/float64(aMax))
			}
		}()
	}

	// Feed outer-loop values. Low values of a carry most of the work
	// (their inner c ranges are longest), so handing them out first keeps
	// the pool busy until the tail.
	go func() {
		defer close(feed)
		for a := int64(1); a <= aMax; a++ {
			select {
			case feed <- a:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	if err := ec.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := NewSolutionSet()
	for _, p := range partials {
		merged.Merge(p)
	}
	obs.Update(idx, 1.0)
	return merged, nil
}
