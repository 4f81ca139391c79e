package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape sequences used to highlight error output.
// The CLI passes its theme-aware implementation; tests pass a no-op one.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code without printing anything.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.Is(err, ErrInvalidArgument):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleComputationError prints a human-readable description of err and
// returns the matching exit code.
//
// Parameters:
//   - err: The error returned by a strategy (nil means success).
//   - duration: How long the strategy ran before failing; zero hides it.
//   - out: Destination for the message.
//   - colors: Escape sequences for highlighting.
//
// Returns:
//   - int: The exit code for the error.
func HandleComputationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sComputation timed out%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sComputation canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sComputation failed%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
	}
	return code
}
