// Package cli provides output utilities for exporting search results.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/progsquare/internal/progressive"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything but the plain roots/sum contract.
	Quiet bool
	// Verbose shows the square next to each root.
	Verbose bool
	// Details prints execution metrics alongside the result.
	Details bool
}

// FormatPlainResult renders the canonical plain-text result: each square
// root on its own line in ascending order, a blank line, then the sum of
// the progressive perfect squares. This is the stable, script-friendly
// output format.
//
// Parameters:
//   - sols: The deduplicated solution set.
//
// Returns:
//   - string: The formatted result, terminated by a newline.
func FormatPlainResult(sols *progressive.SolutionSet) string {
	var builder strings.Builder
	for _, root := range sols.Roots() {
		fmt.Fprintf(&builder, "%d\n", root)
	}
	builder.WriteByte('\n')
	fmt.Fprintf(&builder, "%d\n", sols.Sum())
	return builder.String()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output):
// exactly the plain roots/sum contract and nothing else.
//
// Parameters:
//   - out: The output writer.
//   - sols: The solution set to render.
func DisplayQuietResult(out io.Writer, sols *progressive.SolutionSet) {
	fmt.Fprint(out, FormatPlainResult(sols))
}

// WriteResultToFile writes a search result to a file. The file carries a
// commented header with metadata followed by the plain roots/sum contract.
//
// Parameters:
//   - sols: The solution set to save.
//   - duration: The search duration.
//   - strategy: The strategy name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(sols *progressive.SolutionSet, duration time.Duration, strategy string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Progressive Perfect Square Search Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", strategy)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Bound: %d\n", progressive.Bound)
	fmt.Fprintf(file, "# Solutions: %d\n", sols.Len())
	fmt.Fprintf(file, "\n")

	fmt.Fprint(file, FormatPlainResult(sols))
	return nil
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - sols: The solution set to render.
//   - duration: The search duration.
//   - strategy: The strategy name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, sols *progressive.SolutionSet, duration time.Duration, strategy string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, sols)
	} else {
		DisplayResult(sols, duration, config.Verbose, config.Details, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(sols, duration, strategy, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%sResult saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
