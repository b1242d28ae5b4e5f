// Package progressive implements the search for progressive perfect squares:
// positive integers n = d*q + r (d a divisor, q the quotient, r the remainder)
// whose d, q and r are three consecutive terms of a geometric sequence, and
// which are also perfect squares.
//
// The package provides the two-stage perfect-square classifier, the algebraic
// candidate generator, the deduplicating solution set, and the sequential and
// parallel search strategies built on top of them.
package progressive

import "math"

const (
	// Bound is the exclusive upper limit for the reference search instance.
	// It is fixed at build time; the CLI deliberately exposes no flag for it.
	Bound int64 = 1_000_000_000_000

	// Modulus is the modulus used for fast perfect-square testing.
	// It must be a power of two: powers of two admit few quadratic residues
	// while allowing table lookups via bit masking.
	Modulus = 64
)

// quadraticResidues is a bitmask over [0, Modulus) where bit i is set iff
// some natural number's square is congruent to i modulo Modulus. Because
// (k*k) mod m = ((k mod m) * (k mod m)) mod m, a single pass over [0, Modulus)
// captures every residue any perfect square can ever take. For Modulus = 64
// only 12 of the 64 bits are set, so the mask rejects most non-squares
// without any floating-point work.
//
// Built once at package init and immutable thereafter.
var quadraticResidues = computeQuadraticResidues()

// computeQuadraticResidues builds the quadratic-residue bitmask for Modulus.
// Requires Modulus <= 64 so the table fits a single uint64 word.
func computeQuadraticResidues() uint64 {
	var mask uint64
	for i := uint64(0); i < Modulus; i++ {
		mask |= 1 << ((i * i) % Modulus)
	}
	return mask
}

// ResidueCount returns the number of quadratic residues modulo Modulus.
// Exposed for tests and diagnostics; for Modulus = 64 this is 12.
func ResidueCount() int {
	count := 0
	for mask := quadraticResidues; mask != 0; mask &= mask - 1 {
		count++
	}
	return count
}

// IsQuadraticResidue reports whether v mod Modulus is achievable as the
// residue of a perfect square. A false result proves v is not a square;
// a true result is inconclusive.
func IsQuadraticResidue(v int64) bool {
	return quadraticResidues&(1<<(uint64(v)%Modulus)) != 0
}

// Isqrt returns the integer square root of n, i.e. floor(sqrt(n)).
// It starts from the floating-point estimate and corrects it to the exact
// neighbor, so the result never drifts even when the float64 mantissa
// cannot represent n precisely. Returns 0 for negative n.
func Isqrt(n int64) int64 {
	if n < 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(n)))
	for r > 0 && r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// IsPerfectSquare reports whether n is a perfect square.
//
// The test is a two-stage filter: a residue lookup first rejects the large
// majority of non-squares in a few instructions, and the survivors are
// verified exactly via Isqrt. The floating-point square root is never
// trusted on its own.
func IsPerfectSquare(n int64) bool {
	if n < 0 {
		return false
	}
	if !IsQuadraticResidue(n) {
		return false
	}
	r := Isqrt(n)
	return r*r == n
}
