package progressive

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// knownSmallBound is the primary regression scenario from the problem
// statement: the progressive perfect squares below one hundred thousand
// sum to 124657.
const knownSmallBound = int64(100_000)

var knownSmallSolutions = []int64{9, 10404, 16900, 97344}

// allSearchers returns every registered strategy under test.
func allSearchers(t *testing.T) map[string]Searcher {
	t.Helper()
	factory := GlobalFactory()
	out := make(map[string]Searcher)
	for _, name := range factory.List() {
		s, err := factory.Get(name)
		if err != nil {
			t.Fatalf("factory.Get(%q): %v", name, err)
		}
		out[name] = s
	}
	return out
}

// TestSearchSmallBound validates every strategy against the known
// small-bound scenario.
func TestSearchSmallBound(t *testing.T) {
	ctx := context.Background()
	for name, searcher := range allSearchers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sols, err := searcher.Search(ctx, nil, 0, knownSmallBound, Options{})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if got := sols.Sum(); got != 124657 {
				t.Errorf("Sum() = %d, want 124657", got)
			}
			if sols.Len() != len(knownSmallSolutions) {
				t.Errorf("Len() = %d, want %d", sols.Len(), len(knownSmallSolutions))
			}
			for _, n := range knownSmallSolutions {
				if !sols.Contains(n) {
					t.Errorf("solution %d missing from set", n)
				}
			}
		})
	}
}

// TestSearchKnownExamples checks the examples given in the problem
// statement: 9 = 3² appears for any bound above 9, and 10404 = 102²
// appears for any bound above 10404.
func TestSearchKnownExamples(t *testing.T) {
	ctx := context.Background()
	seq := &SequentialSearch{}

	cases := []struct {
		bound   int64
		present []int64
		absent  []int64
	}{
		{10, []int64{9}, []int64{10404}},
		{10404, []int64{9}, []int64{10404}}, // Bound is exclusive
		{10405, []int64{9, 10404}, nil},
	}
	for _, tc := range cases {
		sols, err := seq.Search(ctx, nil, 0, tc.bound, Options{})
		if err != nil {
			t.Fatalf("Search(bound=%d) failed: %v", tc.bound, err)
		}
		for _, n := range tc.present {
			if !sols.Contains(n) {
				t.Errorf("bound %d: expected %d in solution set", tc.bound, n)
			}
		}
		for _, n := range tc.absent {
			if sols.Contains(n) {
				t.Errorf("bound %d: did not expect %d in solution set", tc.bound, n)
			}
		}
	}
}

// TestSearchTrivialBounds covers the degenerate bounds where the set must
// come back empty.
func TestSearchTrivialBounds(t *testing.T) {
	ctx := context.Background()
	for name, searcher := range allSearchers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, bound := range []int64{0, 1, 9} {
				sols, err := searcher.Search(ctx, nil, 0, bound, Options{})
				if err != nil {
					t.Fatalf("Search(bound=%d) failed: %v", bound, err)
				}
				if sols.Len() != 0 {
					t.Errorf("bound %d: Len() = %d, want 0", bound, sols.Len())
				}
				if sols.Sum() != 0 {
					t.Errorf("bound %d: Sum() = %d, want 0", bound, sols.Sum())
				}
			}
		})
	}
}

// TestParallelMatchesSequential cross-checks the parallel strategy against
// the sequential baseline across worker counts, including a worker count
// larger than the outer-loop range.
func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	const bound = int64(1_000_000)

	want, err := (&SequentialSearch{}).Search(ctx, nil, 0, bound, Options{})
	if err != nil {
		t.Fatalf("sequential Search failed: %v", err)
	}

	for _, workers := range []int{0, 1, 2, 8, 1000} {
		sols, err := (&ParallelSearch{}).Search(ctx, nil, 0, bound, Options{Workers: workers})
		if err != nil {
			t.Fatalf("parallel Search (workers=%d) failed: %v", workers, err)
		}
		if !sols.Equal(want) {
			t.Errorf("workers=%d: parallel set %v differs from sequential %v",
				workers, sols.Values(), want.Values())
		}
	}
}

// TestSearchCancellation verifies both strategies abort with the context
// error when cancelled before the search starts.
func TestSearchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, searcher := range allSearchers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := searcher.Search(ctx, nil, 0, knownSmallBound, Options{})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	}
}

// recordingObserver captures every progress value it receives.
type recordingObserver struct {
	mu     sync.Mutex
	values []float64
}

func (o *recordingObserver) Update(strategyIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.values = append(o.values, progress)
}

func (o *recordingObserver) last() (float64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.values) == 0 {
		return 0, false
	}
	return o.values[len(o.values)-1], true
}

// TestSearchReportsCompletion checks that a finished search always reports
// a final progress of 1.0.
func TestSearchReportsCompletion(t *testing.T) {
	ctx := context.Background()
	for name, searcher := range allSearchers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			obs := &recordingObserver{}
			if _, err := searcher.Search(ctx, obs, 0, knownSmallBound, Options{Workers: 2}); err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			last, ok := obs.last()
			if !ok {
				t.Fatal("no progress updates received")
			}
			if last != 1.0 {
				t.Errorf("final progress = %f, want 1.0", last)
			}
		})
	}
}

// TestSearchEveryMemberIsProgressiveSquare re-validates the designed trust
// boundary end to end: each member of the result must be a perfect square
// AND admit a divisor decomposition n = d*q + r with r > 0, r < d <= q and
// d² = r*q, checked by exhaustive divisor scan.
func TestSearchEveryMemberIsProgressiveSquare(t *testing.T) {
	ctx := context.Background()
	sols, err := (&SequentialSearch{}).Search(ctx, nil, 0, int64(10_000_000), Options{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, n := range sols.Values() {
		if !IsPerfectSquare(n) {
			t.Errorf("%d is in the set but is not a perfect square", n)
		}
		if !isProgressiveByTrialDivision(n) {
			t.Errorf("%d is in the set but no divisor yields a geometric (r, d, q)", n)
		}
	}
}

// isProgressiveByTrialDivision is an independent oracle: it scans every
// divisor d <= sqrt(n) and tests the progression conditions directly.
func isProgressiveByTrialDivision(n int64) bool {
	for d := int64(1); d*d <= n; d++ {
		q := n / d
		r := n % d
		if r > 0 && r < d && d <= q && d*d == r*q {
			return true
		}
	}
	return false
}
