package orchestration

// ProgressAggregator counts finished strategies for progress displays.
// It is not safe for concurrent use; a single reporter goroutine owns it.
type ProgressAggregator struct {
	total     int
	completed int
	failed    int
}

// NewProgressAggregator creates an aggregator for numStrategies runs.
// Returns nil if numStrategies <= 0.
func NewProgressAggregator(numStrategies int) *ProgressAggregator {
	if numStrategies <= 0 {
		return nil
	}
	return &ProgressAggregator{total: numStrategies}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	// Name is the strategy that just finished.
	Name      string
	Completed int
	Failed    int
	Total     int
	// Fraction is Completed/Total, in [0, 1].
	Fraction float64
}

// Update records a finished strategy.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	a.completed++
	if update.Err != nil {
		a.failed++
	}
	return a.snapshot(update.Name)
}

// Current returns the state without recording anything.
func (a *ProgressAggregator) Current() AggregatedProgress {
	return a.snapshot("")
}

func (a *ProgressAggregator) snapshot(name string) AggregatedProgress {
	return AggregatedProgress{
		Name:      name,
		Completed: a.completed,
		Failed:    a.failed,
		Total:     a.total,
		Fraction:  float64(a.completed) / float64(a.total),
	}
}

// IsMultiStrategy returns true if tracking more than one strategy.
func (a *ProgressAggregator) IsMultiStrategy() bool {
	return a.total > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(updates <-chan ProgressUpdate) {
	for range updates {
	}
}
