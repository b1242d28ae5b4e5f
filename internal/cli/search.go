package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/progsquare/internal/config"
	"github.com/agbru/progsquare/internal/progressive"
)

// GetSearchersToRun determines which search strategies should be executed
// based on the configuration. Returns strategies in alphabetically sorted
// order for consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the strategy selection.
//   - factory: The searcher factory to retrieve implementations from.
//
// Returns:
//   - []progressive.Searcher: A slice of searchers to execute.
func GetSearchersToRun(cfg config.AppConfig, factory progressive.SearcherFactory) []progressive.Searcher {
	if cfg.Strategy == "all" {
		keys := factory.List() // List() returns sorted keys
		searchers := make([]progressive.Searcher, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				searchers = append(searchers, s)
			}
		}
		return searchers
	}
	if s, err := factory.Get(cfg.Strategy); err == nil {
		return []progressive.Searcher{s}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the
// user: the search bound, the timeout and the environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Searching progressive perfect squares below %s%s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), formatNumberString(fmt.Sprintf("%d", progressive.Bound)), ColorReset(),
		ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	writeOut(out, "Parallel strategy workers: %s%d%s.\n", ColorCyan(), workers, ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs
// comparison).
//
// Parameters:
//   - searchers: The slice of searchers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(searchers []progressive.Searcher, out io.Writer) {
	var modeDesc string
	if len(searchers) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single search with the %s%s%s strategy",
			ColorGreen(), searchers[0].Name(), ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
