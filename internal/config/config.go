// Package config provides the configuration management for the progsquare
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
//
// The search bound (10^12) and the residue modulus (64) are build-time
// constants of the progressive package and are intentionally not
// configurable here.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/progsquare/internal/errors"
	"github.com/agbru/progsquare/internal/progressive"
)

const (
	// EnvPrefix is the prefix for all environment variables used by
	// progsquare. Environment variables provide an alternative to CLI
	// flags, following the 12-Factor App methodology.
	EnvPrefix = "PROGSQUARE_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultTimeout is the default search timeout. The full 10^12 search
	// completes in well under a minute on commodity hardware; the margin
	// covers heavily loaded machines.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultStrategy is the default strategy selection.
	DefaultStrategy = "all"
	// DefaultWorkers selects the worker count for the parallel strategy.
	// Zero means one worker per logical CPU.
	DefaultWorkers = 0
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from strategy selection to output shaping.
type AppConfig struct {
	// Strategy specifies the search strategy ("all", "sequential", "parallel").
	// "all" runs every registered strategy and cross-checks the results.
	Strategy string
	// Workers is the goroutine count for the parallel strategy (0 = NumCPU).
	Workers int
	// Timeout sets the maximum duration for the search.
	Timeout time.Duration
	// Verbose, if true, also lists the progressive perfect squares
	// themselves next to their roots.
	Verbose bool
	// Details, if true, provides a detailed report including solution
	// count, largest root and timing.
	Details bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes. Emits exactly
	// the plain output contract: roots, a blank line, then the sum.
	Quiet bool
}

// ToSearchOptions converts the application configuration into
// progressive.Options for use by the search strategies.
func (c AppConfig) ToSearchOptions() progressive.Options {
	return progressive.Options{Workers: c.Workers}
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableStrategies: A slice of strings listing the valid strategy
//     names (e.g., ["parallel", "sequential"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableStrategies []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	isStrategyAvailable := false
	for _, s := range availableStrategies {
		if s == c.Strategy {
			isStrategyAvailable = true
			break
		}
	}
	if c.Strategy != "all" && !isStrategyAvailable {
		return apperrors.NewConfigError("unrecognized strategy: '%s'. Valid strategies are: 'all' or [%s]", c.Strategy, strings.Join(availableStrategies, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableStrategies: A slice of valid strategy names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	strategyHelp := fmt.Sprintf("Search strategy: 'all' (default) or one of [%s].", strings.Join(availableStrategies, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Strategy, "strategy", DefaultStrategy, strategyHelp)
	fs.IntVar(&config.Workers, "workers", DefaultWorkers, "Worker count for the parallel strategy (0 = number of logical CPUs).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the search.")
	fs.BoolVar(&config.Verbose, "v", false, "Also list the progressive perfect squares next to their roots.")
	fs.BoolVar(&config.Details, "d", false, "Display performance details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - plain roots/sum output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Strategy = strings.ToLower(config.Strategy)
	if err := config.Validate(availableStrategies); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
