// Package ui provides theme and color support for the command-line output.
// It defines ANSI color schemes, the matching lipgloss styles, and respects
// NO_COLOR and the -no-color flag.
package ui
