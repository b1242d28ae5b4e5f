// Command generate-golden regenerates the golden test data for the
// progressive package. It enumerates solutions with a brute-force
// trial-division oracle that shares no code with the search strategies,
// so the golden file is an independent cross-check.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// GoldenCase represents a single test case in the golden file.
type GoldenCase struct {
	Bound int64   `json:"bound"`
	Count int     `json:"count"`
	Sum   int64   `json:"sum"`
	Roots []int64 `json:"roots"`
}

func main() {
	outputDir := flag.String("out", "internal/progressive/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "progressive_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Bounds kept small enough that the quadratic oracle stays fast.
	bounds := []int64{10, 100, 100_000, 1_000_000, 10_000_000}

	var data []GoldenCase

	fmt.Println("Generating golden data...")

	for _, bound := range bounds {
		data = append(data, enumerate(bound))
		fmt.Printf("Generated cases below %d\n", bound)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// enumerate finds every progressive perfect square below bound by brute
// force: walk the perfect squares and test each divisor d of n directly
// against the definition. This serves as our oracle, deliberately distinct
// from the algebraic enumeration used by the search strategies.
func enumerate(bound int64) GoldenCase {
	c := GoldenCase{Bound: bound, Roots: []int64{}}

	for root := int64(1); root*root < bound; root++ {
		n := root * root
		if isProgressive(n) {
			c.Roots = append(c.Roots, root)
			c.Sum += n
		}
	}
	sort.Slice(c.Roots, func(i, j int) bool { return c.Roots[i] < c.Roots[j] })
	c.Count = len(c.Roots)
	return c
}

// isProgressive reports whether n = d*q + r for some divisor d of n-r with
// quotient q and remainder r forming a geometric progression r < d <= q.
// The progression condition d² = r*q pins down q once r and d are chosen.
func isProgressive(n int64) bool {
	for d := int64(2); d*d <= n; d++ {
		q := n / d
		r := n % d
		if r == 0 {
			continue
		}
		// r < d holds by construction of the remainder; require d <= q
		// and the geometric progression d/r == q/d.
		if d <= q && d*d == r*q {
			return true
		}
	}
	return false
}
