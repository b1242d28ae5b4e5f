package orchestration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agbru/progsquare/internal/config"
	apperrors "github.com/agbru/progsquare/internal/errors"
	"github.com/agbru/progsquare/internal/progressive"
)

// MockSearcher is a mock implementation of progressive.Searcher used for
// testing the orchestration logic without running real enumerations.
type MockSearcher struct {
	NameFunc   func() string
	SearchFunc func(ctx context.Context, obs progressive.ProgressObserver, idx int, bound int64, opts progressive.Options) (*progressive.SolutionSet, error)
}

// Name returns the mocked name of the searcher.
func (m *MockSearcher) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "Mock"
}

// Search invokes the mocked SearchFunc.
func (m *MockSearcher) Search(ctx context.Context, obs progressive.ProgressObserver, idx int, bound int64, opts progressive.Options) (*progressive.SolutionSet, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, obs, idx, bound, opts)
	}
	return progressive.NewSolutionSet(), nil
}

func solutionsOf(values ...int64) *progressive.SolutionSet {
	sols := progressive.NewSolutionSet()
	for _, v := range values {
		sols.Add(v)
	}
	return sols
}

// TestExecuteSearches verifies that the orchestrator correctly runs
// strategies and aggregates their results.
func TestExecuteSearches(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		searchers   []progressive.Searcher
		expectedLen int
		expectError bool
	}{
		{
			name: "Single success",
			searchers: []progressive.Searcher{
				&MockSearcher{
					SearchFunc: func(ctx context.Context, obs progressive.ProgressObserver, idx int, bound int64, opts progressive.Options) (*progressive.SolutionSet, error) {
						obs.Update(idx, 1.0)
						return solutionsOf(9), nil
					},
				},
			},
			expectedLen: 1,
			expectError: false,
		},
		{
			name: "Single failure",
			searchers: []progressive.Searcher{
				&MockSearcher{
					SearchFunc: func(ctx context.Context, obs progressive.ProgressObserver, idx int, bound int64, opts progressive.Options) (*progressive.SolutionSet, error) {
						return nil, errors.New("mock error")
					},
				},
			},
			expectedLen: 1,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteSearches(context.Background(), tt.searchers, 100, config.AppConfig{}, &DiscardWriter{})
			if len(results) != tt.expectedLen {
				t.Errorf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			if tt.expectError {
				if results[0].Err == nil {
					t.Errorf("expected error, got nil")
				}
			} else {
				if results[0].Err != nil {
					t.Errorf("unexpected error: %v", results[0].Err)
				}
			}
		})
	}
}

// TestExecuteSearchesWrapsStrategyErrors verifies that a strategy failure
// surfaces as a SearchError while keeping the original cause reachable for
// errors.Is, which the exit-code mapping depends on.
func TestExecuteSearchesWrapsStrategyErrors(t *testing.T) {
	t.Parallel()
	cause := errors.New("worker exploded")
	searchers := []progressive.Searcher{
		&MockSearcher{
			SearchFunc: func(ctx context.Context, obs progressive.ProgressObserver, idx int, bound int64, opts progressive.Options) (*progressive.SolutionSet, error) {
				return nil, cause
			},
		},
	}

	results := ExecuteSearches(context.Background(), searchers, 100, config.AppConfig{}, &DiscardWriter{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	var searchErr apperrors.SearchError
	if !errors.As(results[0].Err, &searchErr) {
		t.Fatalf("Err = %T (%v), want a SearchError", results[0].Err, results[0].Err)
	}
	if !errors.Is(results[0].Err, cause) {
		t.Error("the original cause should remain reachable through the wrapper")
	}
}

// TestExecuteSearchesAgainstRealStrategies runs the registered strategies at
// a small bound through the full orchestration path.
func TestExecuteSearchesAgainstRealStrategies(t *testing.T) {
	t.Parallel()
	searchers := []progressive.Searcher{&progressive.SequentialSearch{}, &progressive.ParallelSearch{}}
	results := ExecuteSearches(context.Background(), searchers, 100_000, config.AppConfig{}, &DiscardWriter{})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Name, res.Err)
		}
		if sum := res.Solutions.Sum(); sum != 124657 {
			t.Errorf("%s: sum = %d, want 124657", res.Name, sum)
		}
	}
	if !results[0].Solutions.Equal(results[1].Solutions) {
		t.Error("strategies disagree on the solution set")
	}
}

// TestAnalyzeComparisonResults verifies the logic for comparing results from
// multiple strategies. It checks for consistent results, handling of
// failures, and detection of mismatches.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []SearchResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []SearchResult{
				{Name: "A", Solutions: solutionsOf(9, 10404), Duration: time.Millisecond, Err: nil},
				{Name: "B", Solutions: solutionsOf(9, 10404), Duration: time.Millisecond, Err: nil},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []SearchResult{
				{Name: "A", Solutions: solutionsOf(9, 10404), Duration: time.Millisecond, Err: nil},
				{Name: "B", Solutions: solutionsOf(9), Duration: time.Millisecond, Err: nil},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []SearchResult{
				{Name: "A", Solutions: nil, Duration: time.Millisecond, Err: errors.New("fail")},
				{Name: "B", Solutions: nil, Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []SearchResult{
				{Name: "A", Solutions: solutionsOf(9, 10404), Duration: time.Millisecond, Err: nil},
				{Name: "B", Solutions: nil, Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status := AnalyzeComparisonResults(tt.results, config.AppConfig{}, &DiscardWriter{})
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

// DiscardWriter is a helper that implements io.Writer and discards all data.
type DiscardWriter struct{}

func (d *DiscardWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}
