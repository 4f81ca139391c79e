package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/recipsum/internal/cli"
	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/logging"
	"github.com/agbru/recipsum/internal/parallel"
	"github.com/agbru/recipsum/internal/ui"
)

// Application represents the recipsum application instance. It owns the
// process-wide scheduler unless one was injected.
type Application struct {
	// RunID tags every log line of this run.
	RunID     string
	Config    config.AppConfig
	Scheduler *parallel.Scheduler
	Logger    logging.Logger
	ErrWriter io.Writer

	ownsScheduler bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithScheduler injects the scheduler used by every strategy. The caller
// keeps ownership: Close does not shut it down.
func WithScheduler(s *parallel.Scheduler) AppOption {
	return func(a *Application) { a.Scheduler = s }
}

// WithLogger sets a custom logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "recipsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveDefaults(cfg)

	app := &Application{RunID: uuid.NewString(), Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Scheduler == nil {
		app.Scheduler = parallel.New(cfg.Workers)
		app.ownsScheduler = true
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, app.RunID, errWriter)
	}
	return app, nil
}

// newLogger writes human-readable lines to w: debug and above in verbose
// mode, warnings and errors otherwise.
func newLogger(cfg config.AppConfig, runID string, w io.Writer) logging.Logger {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Str("component", "recipsum").Str("run_id", runID).
		Logger()
	return logging.NewZerologAdapter(zl)
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	a.Logger.Debug("starting run",
		logging.Int("size", a.Config.Size),
		logging.String("strategy", a.Config.Strategy),
		logging.Int("workers", a.Scheduler.Workers()),
		logging.Int("tasks", a.Config.Tasks))

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	code := a.runReduce(ctx, out)
	if a.Config.Students > 0 {
		if studentsCode := a.runStudents(ctx, out); code == apperrors.ExitSuccess {
			code = studentsCode
		}
	}
	a.Logger.Debug("run finished", logging.Int("exit_code", code))
	return code
}

// Close releases the scheduler when the application created it.
func (a *Application) Close() {
	if a.ownsScheduler {
		a.Scheduler.Close()
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, config.Strategies()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
