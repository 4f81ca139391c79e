// Package logging provides the structured logging interface used by the
// command-line application. The reduction engine does not log; its events
// reach the application through reciprocal.Observer instead.
package logging
