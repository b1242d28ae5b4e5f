package progressive

import "sort"

// SolutionSet is a deduplicating set of progressive perfect squares.
// The same n is typically produced by several (a, b, c) triples (the ratio
// a/b need not be reduced); set semantics collapse the duplicates.
//
// A SolutionSet has a single logical owner and is not safe for concurrent
// mutation. The parallel search strategy gives each worker a private set and
// merges them once the workers have finished.
type SolutionSet struct {
	values map[int64]struct{}
}

// NewSolutionSet creates an empty solution set.
func NewSolutionSet() *SolutionSet {
	return &SolutionSet{values: make(map[int64]struct{})}
}

// Add inserts n into the set and reports whether n was newly inserted.
func (s *SolutionSet) Add(n int64) bool {
	if _, ok := s.values[n]; ok {
		return false
	}
	s.values[n] = struct{}{}
	return true
}

// Contains reports whether n is a member of the set.
func (s *SolutionSet) Contains(n int64) bool {
	_, ok := s.values[n]
	return ok
}

// Len returns the number of distinct solutions.
func (s *SolutionSet) Len() int {
	return len(s.values)
}

// Sum returns the sum of all solutions. For Bound = 10^12 the sum fits
// comfortably in an int64; larger bounds must re-derive this precondition.
func (s *SolutionSet) Sum() int64 {
	var sum int64
	for n := range s.values {
		sum += n
	}
	return sum
}

// Values returns the solutions in ascending order.
func (s *SolutionSet) Values() []int64 {
	out := make([]int64, 0, len(s.values))
	for n := range s.values {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Roots returns the integer square roots of the solutions in ascending order.
// Every member is a perfect square by construction, so the roots are exact.
func (s *SolutionSet) Roots() []int64 {
	values := s.Values()
	roots := make([]int64, len(values))
	for i, n := range values {
		roots[i] = Isqrt(n)
	}
	return roots
}

// Merge inserts every member of other into s. The receiver is returned to
// allow chaining during the parallel merge phase.
func (s *SolutionSet) Merge(other *SolutionSet) *SolutionSet {
	if other == nil {
		return s
	}
	for n := range other.values {
		s.values[n] = struct{}{}
	}
	return s
}

// Equal reports whether two sets hold exactly the same solutions.
// Used by the orchestrator to cross-check strategies against each other.
func (s *SolutionSet) Equal(other *SolutionSet) bool {
	if other == nil || len(s.values) != len(other.values) {
		return false
	}
	for n := range s.values {
		if _, ok := other.values[n]; !ok {
			return false
		}
	}
	return true
}
