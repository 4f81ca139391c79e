// Package orchestration runs the selected reduction strategies concurrently
// and compares their results against the sequential baseline. It decouples
// the run from presentation via ProgressReporter and ResultPresenter.
package orchestration
