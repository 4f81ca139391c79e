package config

import "runtime"

// Resolution chain for Workers and Tasks (highest priority first):
//   1. CLI flags (-workers, -tasks)
//   2. Environment variables (RECIPSUM_WORKERS, RECIPSUM_TASKS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills the scheduler capacity and the chunk count from
// the hardware when they were left at zero. MaxLeafSize is left alone: zero
// already means half the input length.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Tasks == 0 {
		cfg.Tasks = EstimateTaskCount(cfg.Workers, cfg.Size)
	}
	return cfg
}

// EstimateTaskCount returns a chunk count for the chunked strategy: a few
// chunks per worker so slow chunks do not leave workers idle, never more
// chunks than elements.
func EstimateTaskCount(workers, size int) int {
	var perWorker int
	switch {
	case workers <= 1:
		perWorker = 1
	case workers <= 4:
		perWorker = 2
	default:
		perWorker = 4
	}
	tasks := workers * perWorker
	if size > 0 && tasks > size {
		tasks = size
	}
	return max(tasks, 1)
}
