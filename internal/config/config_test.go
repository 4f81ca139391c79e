package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/recipsum/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("recipsum", nil, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != DefaultSize || cfg.Seed != DefaultSeed || cfg.Strategy != StrategyAll {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout || cfg.Epsilon != DefaultEpsilon {
		t.Errorf("unexpected timeout/epsilon defaults: %+v", cfg)
	}
	if cfg.Tasks != 0 || cfg.Workers != 0 || cfg.MaxLeafSize != 0 {
		t.Errorf("adaptive fields should stay zero until ApplyAdaptiveDefaults: %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{
		"-n", "1000", "-tasks", "8", "-leaf", "64", "-workers", "3",
		"-strategy", "Chunked", "-seed", "42", "-dist", "ramp",
		"-timeout", "5s", "-epsilon", "1e-6", "-verbose", "-metrics", "-no-color",
		"-students", "50", "-completion", "zsh", "-tui",
	}
	cfg, err := ParseConfig("recipsum", args, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := AppConfig{
		Size: 1000, Seed: 42, Distribution: "ramp", Tasks: 8, MaxLeafSize: 64,
		Workers: 3, Strategy: "chunked", Timeout: 5 * time.Second, Epsilon: 1e-6,
		Verbose: true, ShowMetrics: true, NoColor: true, Students: 50,
		TUI: true, Completion: "zsh",
	}
	if cfg != want {
		t.Errorf("got %+v\nwant %+v", cfg, want)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero size", []string{"-n", "0"}},
		{"negative tasks", []string{"-tasks", "-1"}},
		{"negative leaf", []string{"-leaf", "-2"}},
		{"negative workers", []string{"-workers", "-1"}},
		{"unknown strategy", []string{"-strategy", "quantum"}},
		{"unknown distribution", []string{"-dist", "gauss"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"negative epsilon", []string{"-epsilon", "-1"}},
		{"quiet and verbose", []string{"-q", "-v"}},
		{"negative students", []string{"-students", "-3"}},
		{"quiet and tui", []string{"-q", "-tui"}},
		{"unsupported completion shell", []string{"-completion", "powershell"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("recipsum", tt.args, &buf)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T: %v", err, err)
			}
			if !strings.Contains(buf.String(), "Configuration error") {
				t.Errorf("error output should explain the problem, got %q", buf.String())
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("recipsum", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "Usage: recipsum") {
		t.Errorf("usage not printed: %q", buf.String())
	}
}

func TestParseConfigBadFlagValue(t *testing.T) {
	if _, err := ParseConfig("recipsum", []string{"-n", "many"}, io.Discard); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"N", "500")
	t.Setenv(EnvPrefix+"TASKS", "6")
	t.Setenv(EnvPrefix+"STRATEGY", "par")
	t.Setenv(EnvPrefix+"TIMEOUT", "2s")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"WORKERS", "not-a-number")

	cfg, err := ParseConfig("recipsum", []string{"-n", "700"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Size != 700 {
		t.Errorf("flag should win over env: Size = %d, want 700", cfg.Size)
	}
	if cfg.Tasks != 6 || cfg.Strategy != "par" || cfg.Timeout != 2*time.Second || !cfg.Quiet {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Workers != 0 {
		t.Errorf("invalid env value should be ignored, Workers = %d", cfg.Workers)
	}
}

func TestEnvOverrideAliasedFlag(t *testing.T) {
	t.Setenv(EnvPrefix+"VERBOSE", "false")
	cfg, err := ParseConfig("recipsum", []string{"-v"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Verbose {
		t.Error("-v on the command line should shadow RECIPSUM_VERBOSE")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestApplyAdaptiveDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills zero values", func(t *testing.T) {
		cfg := ApplyAdaptiveDefaults(AppConfig{Size: 1_000_000})
		if cfg.Workers != runtime.NumCPU() {
			t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
		}
		if cfg.Tasks < cfg.Workers {
			t.Errorf("Tasks = %d, want at least one per worker", cfg.Tasks)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := ApplyAdaptiveDefaults(AppConfig{Size: 10, Workers: 2, Tasks: 7})
		if cfg.Workers != 2 || cfg.Tasks != 7 {
			t.Errorf("explicit values overwritten: %+v", cfg)
		}
	})
}

func TestEstimateTaskCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		workers, size, want int
	}{
		{1, 100, 1},
		{2, 100, 4},
		{4, 100, 8},
		{8, 100, 32},
		{8, 5, 5},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := EstimateTaskCount(tt.workers, tt.size); got != tt.want {
			t.Errorf("EstimateTaskCount(%d, %d) = %d, want %d", tt.workers, tt.size, got, tt.want)
		}
	}
}

func TestToEngineOptions(t *testing.T) {
	t.Parallel()
	if opts := (AppConfig{MaxLeafSize: 16}).ToEngineOptions(); len(opts) != 1 {
		t.Errorf("expected one engine option, got %d", len(opts))
	}
}
