// Package metrics collects Prometheus metrics for reductions and runtime
// memory snapshots for the CLI report.
package metrics

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/agbru/recipsum/internal/chunk"
	"github.com/agbru/recipsum/internal/parallel"
)

const namespace = "recipsum"

// ReductionCollector records task-tree shape and strategy timings in its own
// registry. It implements reciprocal.Observer and is safe for concurrent use.
type ReductionCollector struct {
	registry *prometheus.Registry

	splits      prometheus.Counter
	leaves      prometheus.Counter
	emptyLeaves prometheus.Counter
	leafSize    prometheus.Histogram
	maxDepth    atomic.Int64
	runs        *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewReductionCollector creates a collector with a fresh registry that also
// exports the Go runtime collector.
func NewReductionCollector() *ReductionCollector {
	c := &ReductionCollector{
		registry: prometheus.NewRegistry(),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_splits_total",
			Help:      "Tasks that forked two children.",
		}),
		leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaf_tasks_total",
			Help:      "Tasks that summed their range directly.",
		}),
		emptyLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_leaf_tasks_total",
			Help:      "Chunks of the chunked strategy that held no element.",
		}),
		leafSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "leaf_elements",
			Help:      "Number of elements summed per leaf task.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_runs_total",
			Help:      "Strategy runs by outcome.",
		}, []string{"strategy", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall time per strategy run.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"strategy"}),
	}
	c.registry.MustRegister(
		c.splits, c.leaves, c.emptyLeaves, c.leafSize, c.runs, c.duration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_leaf_depth",
			Help:      "Deepest leaf observed in any task tree.",
		}, func() float64 { return float64(c.maxDepth.Load()) }),
		collectors.NewGoCollector(),
	)
	return c
}

// TaskSplit implements reciprocal.Observer.
func (c *ReductionCollector) TaskSplit(chunk.Range, int) {
	c.splits.Inc()
}

// LeafComputed implements reciprocal.Observer.
func (c *ReductionCollector) LeafComputed(r chunk.Range, depth int) {
	c.leaves.Inc()
	c.leafSize.Observe(float64(r.Len()))
	c.observeDepth(int64(depth))
}

// EmptyChunks implements reciprocal.Observer. Empty chunks count as leaves
// at depth 0 but are left out of the leaf size histogram.
func (c *ReductionCollector) EmptyChunks(n int) {
	c.leaves.Add(float64(n))
	c.emptyLeaves.Add(float64(n))
}

func (c *ReductionCollector) observeDepth(d int64) {
	for {
		cur := c.maxDepth.Load()
		if d <= cur || c.maxDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

// ObserveRun records one strategy run.
func (c *ReductionCollector) ObserveRun(strategy string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.runs.WithLabelValues(strategy, status).Inc()
	c.duration.WithLabelValues(strategy).Observe(d.Seconds())
}

// RegisterScheduler exports the fork counters of s.
func (c *ReductionCollector) RegisterScheduler(s *parallel.Scheduler) error {
	for _, m := range []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_workers",
			Help:      "Worker slots of the shared scheduler.",
		}, func() float64 { return float64(s.Workers()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_async_forks_total",
			Help:      "Forks whose right half ran on a new goroutine.",
		}, func() float64 { return float64(s.Stats().AsyncForks) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_inline_forks_total",
			Help:      "Forks run entirely on the caller because no slot was free.",
		}, func() float64 { return float64(s.Stats().InlineForks) }),
	} {
		if err := c.registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Registry returns the registry holding every metric of the collector.
func (c *ReductionCollector) Registry() *prometheus.Registry { return c.registry }

// WriteText writes all gathered metrics to w in the Prometheus text format.
func (c *ReductionCollector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
