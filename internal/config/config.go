// Package config defines the application configuration: command-line flags,
// RECIPSUM_ environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/input"
	"github.com/agbru/recipsum/internal/reciprocal"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "RECIPSUM_"

// StrategyAll runs every reduction strategy and compares the results.
const StrategyAll = "all"

// Default values for the command-line flags.
const (
	DefaultSize     = 1_000_000
	DefaultSeed     = 1
	DefaultTimeout  = 1 * time.Minute
	DefaultEpsilon  = 1e-9
	DefaultStrategy = StrategyAll
)

// Strategies lists the accepted values of the -strategy flag.
func Strategies() []string {
	return []string{reciprocal.StrategySequential, reciprocal.StrategyTwoWay, reciprocal.StrategyChunked, StrategyAll}
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Size is the number of elements of the generated input.
	Size int
	// Seed drives the uniform input distribution.
	Seed uint64
	// Distribution names the input distribution (see input.Distributions).
	Distribution string
	// Tasks is the number of chunks of the chunked strategy. Zero selects an
	// adaptive value.
	Tasks int
	// MaxLeafSize is the longest range summed without splitting. Zero keeps
	// the default of half the input length.
	MaxLeafSize int
	// Workers is the scheduler capacity. Zero selects an adaptive value.
	Workers int
	// Strategy is one of Strategies().
	Strategy string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Epsilon is the relative tolerance used to compare results.
	Epsilon float64
	// Verbose prints scheduler statistics and the leaf size in use.
	Verbose bool
	// Quiet prints only the result value.
	Quiet bool
	// ShowMetrics dumps the Prometheus metrics after the run.
	ShowMetrics bool
	// NoColor disables ANSI colors.
	NoColor bool
	// Students, when positive, also runs the student analytics on a
	// generated roster of that size.
	Students int
	// TUI runs the strategies in the interactive dashboard.
	TUI bool
	// Completion, when set, prints a completion script for that shell
	// instead of running.
	Completion string
}

// CompletionShells lists the shells accepted by -completion.
func CompletionShells() []string {
	return []string{"bash", "zsh", "fish"}
}

// ToEngineOptions converts the configuration into reduction engine options.
func (c AppConfig) ToEngineOptions() []reciprocal.EngineOption {
	return []reciprocal.EngineOption{reciprocal.WithMaxLeafSize(c.MaxLeafSize)}
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError describing the first invalid field, or nil.
func (c AppConfig) Validate() error {
	switch {
	case c.Size <= 0:
		return apperrors.NewConfigError("size (-n) must be positive, got %d", c.Size)
	case c.Tasks < 0:
		return apperrors.NewConfigError("tasks must not be negative, got %d", c.Tasks)
	case c.MaxLeafSize < 0:
		return apperrors.NewConfigError("leaf must not be negative, got %d", c.MaxLeafSize)
	case c.Workers < 0:
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	case c.Students < 0:
		return apperrors.NewConfigError("students must not be negative, got %d", c.Students)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be strictly positive, got %s", c.Timeout)
	case c.Epsilon < 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0):
		return apperrors.NewConfigError("epsilon must be a finite non-negative number, got %v", c.Epsilon)
	case c.Quiet && c.Verbose:
		return apperrors.NewConfigError("-q and -v are mutually exclusive")
	case c.Quiet && c.TUI:
		return apperrors.NewConfigError("-q and -tui are mutually exclusive")
	}
	if !slices.Contains(Strategies(), c.Strategy) {
		return apperrors.NewConfigError("unknown strategy %q (want one of %s)", c.Strategy, strings.Join(Strategies(), ", "))
	}
	if _, err := input.ParseDistribution(c.Distribution); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Completion != "" && !slices.Contains(CompletionShells(), c.Completion) {
		return apperrors.NewConfigError("unsupported completion shell %q (want one of %s)", c.Completion, strings.Join(CompletionShells(), ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags that were not set, and validates the result.
//
// Parameters:
//   - programName: The name used in usage messages.
//   - args: The arguments, without the program name.
//   - errWriter: Destination of usage and error messages.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp when -h was given, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nComputes the sum of reciprocals of a generated array with several fork/join strategies.\n\nOptions:\n", programName)
		fs.PrintDefaults()
	}

	cfg := AppConfig{}
	fs.IntVar(&cfg.Size, "n", DefaultSize, "Number of input elements.")
	fs.Uint64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the uniform input distribution.")
	fs.StringVar(&cfg.Distribution, "dist", string(input.Uniform), "Input distribution (uniform, ones, ramp).")
	fs.IntVar(&cfg.Tasks, "tasks", 0, "Chunk count of the chunked strategy (0 = number of CPUs).")
	fs.IntVar(&cfg.MaxLeafSize, "leaf", 0, "Maximum leaf size (0 = half the input length).")
	fs.IntVar(&cfg.Workers, "workers", 0, "Scheduler worker slots (0 = number of CPUs).")
	fs.StringVar(&cfg.Strategy, "strategy", DefaultStrategy, "Strategy to run: "+strings.Join(Strategies(), ", ")+".")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.Float64Var(&cfg.Epsilon, "epsilon", DefaultEpsilon, "Relative tolerance when comparing strategies.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.ShowMetrics, "metrics", false, "Print Prometheus metrics after the run.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.IntVar(&cfg.Students, "students", 0, "Also analyze a generated roster of this many students.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run in the interactive dashboard.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}
