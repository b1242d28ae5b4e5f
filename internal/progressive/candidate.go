package progressive

// This file contains the algebraic reparameterization at the heart of the
// search. A progressive number admits n = d*q + r with r < d <= q and
// (r, d, q) in geometric progression. Writing the common ratio as a/b with
// a > b >= 1, both d = r*(a/b) and q = r*(a/b)² must be integers, which
// forces b² to divide r. Introducing c = r/b² gives:
//
//	r = c*b²
//	d = c*a*b
//	q = c*a²
//
// and therefore n = d*q + r = c²a³b + cb². Every positive (a, b, c) with
// a > b yields a self-consistent progressive triple, and every progressive
// number arises from some such triple, so enumerating (a, b, c) replaces
// trial division over (n, d) pairs entirely. Redundant triples (non-reduced
// a/b) regenerate the same n; the solution set absorbs the duplicates.

// Candidate maps a parameter triple to its candidate value n = c²a³b + cb².
// For fixed (a, b) the value is strictly increasing in c, which the search
// relies on to terminate the innermost loop.
func Candidate(a, b, c int64) int64 {
	return c*c*a*a*a*b + c*b*b
}

// Progression holds the remainder, divisor and quotient derived from a
// parameter triple. Its fields satisfy R < D <= Q and form consecutive
// terms of a geometric sequence with ratio a/b.
type Progression struct {
	// R is the remainder, the smallest term: c*b².
	R int64
	// D is the divisor, the middle term: c*a*b.
	D int64
	// Q is the quotient, the largest term: c*a².
	Q int64
}

// N reconstructs the progressive number d*q + r described by the progression.
func (p Progression) N() int64 {
	return p.D*p.Q + p.R
}

// Decompose returns the (r, d, q) progression encoded by a parameter triple.
// It is the inverse view of Candidate: Decompose(a, b, c).N() equals
// Candidate(a, b, c) for every valid triple.
func Decompose(a, b, c int64) Progression {
	return Progression{
		R: c * b * b,
		D: c * a * b,
		Q: c * a * a,
	}
}

// CubeRootCeil returns the smallest integer whose cube is >= n.
// The outer search loop runs a up to this limit: the leading candidate term
// is c²a³b, so once a³ alone reaches the bound no larger a can contribute.
func CubeRootCeil(n int64) int64 {
	if n <= 1 {
		return 1
	}
	r := int64(1)
	for r*r*r < n {
		r++
	}
	return r
}
