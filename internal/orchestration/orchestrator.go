// Package orchestration coordinates the concurrent execution of search
// strategies and the analysis of their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/progsquare/internal/cli"
	"github.com/agbru/progsquare/internal/config"
	apperrors "github.com/agbru/progsquare/internal/errors"
	"github.com/agbru/progsquare/internal/progressive"
	"github.com/agbru/progsquare/internal/ui"

	"github.com/rs/zerolog"
)

// SearchResult encapsulates the outcome of a single search strategy run.
// It serves as a standardized container for results from different
// strategies, facilitating comparison and reporting.
type SearchResult struct {
	// Name is the identifier of the strategy used (e.g., "Parallel Scan").
	Name string
	// Solutions is the set of progressive perfect squares found. It is nil
	// if an error occurred.
	Solutions *progressive.SolutionSet
	// Duration is the time taken to complete the search.
	Duration time.Duration
	// Err contains any error that occurred during the search.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking search
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteSearches orchestrates the concurrent execution of one or more
// search strategies.
//
// It manages the lifecycle of the strategy goroutines, collects their
// results, and coordinates the display of progress updates. This function is
// the core of the application's concurrency model.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - searchers: A slice of strategies to execute.
//   - bound: The exclusive upper limit for solutions.
//   - cfg: The application configuration (workers, output flags).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []SearchResult: A slice containing the result of each strategy.
func ExecuteSearches(ctx context.Context, searchers []progressive.Searcher, bound int64, cfg config.AppConfig, out io.Writer) []SearchResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SearchResult, len(searchers))
	progressChan := make(chan progressive.ProgressUpdate, len(searchers)*ProgressBufferMultiplier)

	var obs progressive.ProgressObserver = progressive.NewChannelObserver(progressChan)
	if cfg.Details {
		// In details mode also log progress milestones to stderr so slow
		// runs leave a trace even when the terminal scrolls.
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		obs = progressive.NewCompositeObserver(obs, progressive.NewLoggingObserver(logger, 0.1))
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(searchers), out)

	for i, s := range searchers {
		idx, searcher := i, s
		g.Go(func() error {
			startTime := time.Now()
			sols, err := searcher.Search(ctx, obs, idx, bound, cfg.ToSearchOptions())
			if err != nil {
				// Mark the failure as a search failure; the cause stays
				// reachable through errors.Is/As for exit-code mapping.
				err = apperrors.SearchError{Cause: err}
			}
			results[idx] = SearchResult{
				Name: searcher.Name(), Solutions: sols, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults processes the results from multiple strategies and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful searches, and displays a comparative table. It handles the logic
// for determining global success or failure based on the individual outcomes.
//
// Parameters:
//   - results: The slice of search results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SearchResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *SearchResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sStrategy%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if firstValid == nil {
				firstValid = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the search.\n")
		return apperrors.HandleSearchError(firstError, 0, out, cli.CLIColorProvider{})
	}

	// Every successful strategy must agree on the exact solution set; a
	// divergence means one of the enumerations is wrong.
	mismatch := false
	for i := range results {
		if results[i].Err == nil && !results[i].Solutions.Equal(firstValid.Solutions) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the strategies.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.")
	cli.DisplayResult(firstValid.Solutions, firstValid.Duration, cfg.Verbose, cfg.Details, out)
	return apperrors.ExitSuccess
}
