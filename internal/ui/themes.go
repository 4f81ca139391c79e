package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes used for inline colored text.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Reset     string
}

var (
	// DefaultTheme is a 256-color palette readable on dark backgrounds.
	DefaultTheme = Theme{
		Name:      "default",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;214m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape codes.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DefaultTheme
	themeMutex   sync.RWMutex
)

// StyleTheme holds the lipgloss colors for boxes, tables and the dashboard.
type StyleTheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DefaultStyleTheme pairs with DefaultTheme.
	DefaultStyleTheme = StyleTheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// NoColorStyleTheme renders with the terminal's default colors.
	NoColorStyleTheme = StyleTheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentStyleTheme returns the style theme matching the active theme.
func GetCurrentStyleTheme() StyleTheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorStyleTheme
	}
	return DefaultStyleTheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects NoColorTheme when noColor is set or the NO_COLOR
// environment variable is present (https://no-color.org/), and
// DefaultTheme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DefaultTheme)
}
