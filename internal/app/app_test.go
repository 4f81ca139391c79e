package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/logging"
	"github.com/agbru/recipsum/internal/parallel"
)

func newTestApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	app, err := New(append([]string{"recipsum", "-no-color", "-workers", "2"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	t.Cleanup(app.Close)
	return app, &errBuf
}

func TestNewAppliesAdaptiveDefaults(t *testing.T) {
	app, _ := newTestApp(t, "-n", "100")
	if app.Config.Workers != 2 {
		t.Errorf("Workers = %d, want 2", app.Config.Workers)
	}
	if app.Config.Tasks != config.EstimateTaskCount(2, 100) {
		t.Errorf("Tasks = %d, want %d", app.Config.Tasks, config.EstimateTaskCount(2, 100))
	}
	if app.Scheduler.Workers() != 2 {
		t.Errorf("scheduler workers = %d, want 2", app.Scheduler.Workers())
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New([]string{"recipsum", "--help"}, io.Discard)
	if !IsHelpError(err) {
		t.Errorf("--help: expected help error, got %v", err)
	}

	_, err = New([]string{"recipsum", "-n", "0"}, io.Discard)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("-n 0: expected ConfigError, got %T: %v", err, err)
	}
	if IsHelpError(err) {
		t.Error("a config error is not a help error")
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  []string
	}{
		{
			name:     "all strategies on ones",
			args:     []string{"-n", "1000", "-dist", "ones"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  []string{"Comparison Summary", "seq", "par", "chunked", "Global Status: Success", "Sum of reciprocals of 1,000 elements = 1000"},
		},
		{
			name:     "verbose prints stats",
			args:     []string{"-n", "64", "-strategy", "par", "-v"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  []string{"Workers:      2", "Reference strategy: par"},
		},
		{
			name:     "metrics dump",
			args:     []string{"-n", "64", "-strategy", "chunked", "-tasks", "4", "-metrics"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  []string{`recipsum_strategy_runs_total{status="success",strategy="chunked"} 1`, "recipsum_scheduler_workers 2"},
		},
		{
			name:     "student analytics",
			args:     []string{"-n", "16", "-students", "500"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  []string{"Student Analytics", "Roster size:                      500", "consistent"},
		},
		{
			name:     "completion",
			args:     []string{"-completion", "bash"},
			wantCode: apperrors.ExitSuccess,
			wantOut:  []string{"complete -F _recipsum_completions recipsum"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, tt.args...)
			var out bytes.Buffer
			if code := app.Run(context.Background(), &out); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\n%s", code, tt.wantCode, out.String())
			}
			for _, s := range tt.wantOut {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output should contain %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestRunQuiet(t *testing.T) {
	app, errBuf := newTestApp(t, "-q", "-strategy", "all", "-dist", "ones", "-n", "4")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errBuf.String())
	}
	if out.String() != "4\n" {
		t.Errorf("quiet output = %q, want %q", out.String(), "4\n")
	}
}

func TestRunInjectedScheduler(t *testing.T) {
	sched := parallel.New(2)
	sched.Close()

	var errBuf bytes.Buffer
	app, err := New([]string{"recipsum", "-q", "-no-color", "-strategy", "par", "-n", "8"}, &errBuf,
		WithScheduler(sched), WithLogger(logging.NopLogger{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if app.Scheduler != sched {
		t.Fatal("injected scheduler should be used")
	}

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code == apperrors.ExitSuccess {
		t.Errorf("run on a closed scheduler should fail, output %q", out.String())
	}
	if out.Len() != 0 {
		t.Errorf("quiet failure should not write a value, got %q", out.String())
	}
	if errBuf.Len() == 0 {
		t.Error("failure should be reported on the error writer")
	}
	app.Close()
}

func TestRunWrapsInputErrors(t *testing.T) {
	app, errBuf := newTestApp(t, "-n", "8")
	app.Config.Distribution = "zipf"

	if code := app.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "preparing input: ") || !strings.Contains(errBuf.String(), "zipf") {
		t.Errorf("error output should name the failing step and value:\n%s", errBuf.String())
	}
}

func TestRunLogsInterruptedStrategies(t *testing.T) {
	var logBuf, errBuf bytes.Buffer
	app, err := New([]string{"recipsum", "-q", "-no-color", "-strategy", "seq", "-n", "8"}, &errBuf,
		WithLogger(logging.NewLogger(&logBuf, "app")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if code := app.Run(ctx, io.Discard); code == apperrors.ExitSuccess {
		t.Error("a canceled run should not succeed")
	}
	logs := logBuf.String()
	if !strings.Contains(logs, "strategy interrupted") || !strings.Contains(logs, `"level":"info"`) {
		t.Errorf("cancellation should be logged at info level:\n%s", logs)
	}
	if strings.Contains(logs, "strategy failed") {
		t.Errorf("cancellation should not be logged as a failure:\n%s", logs)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-n", "10", "-V"}, true},
		{[]string{"-version"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}

	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "recipsum "+Version) {
		t.Errorf("unexpected banner %q", buf.String())
	}
}

func TestRunIDIsUniqueAndLogged(t *testing.T) {
	a, errBuf := newTestApp(t, "-v", "-n", "8", "-strategy", "seq")
	b, _ := newTestApp(t, "-n", "8")
	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Fatalf("RunID %q is not a UUID: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Error("each application should get its own run ID")
	}
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errBuf.String(), a.RunID) {
		t.Errorf("verbose log should carry the run ID:\n%s", errBuf.String())
	}
}
