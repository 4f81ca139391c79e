package orchestration

import (
	"context"

	"github.com/agbru/recipsum/internal/config"
	"github.com/agbru/recipsum/internal/reciprocal"
)

// sequentialReducer runs reciprocal.SeqSum on the calling goroutine.
type sequentialReducer struct{}

func (sequentialReducer) Name() string { return reciprocal.StrategySequential }

func (sequentialReducer) Reduce(ctx context.Context, input []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return reciprocal.SeqSum(input), nil
}

// twoWayReducer runs Engine.Sum.
type twoWayReducer struct {
	engine *reciprocal.Engine
}

func (twoWayReducer) Name() string { return reciprocal.StrategyTwoWay }

func (r twoWayReducer) Reduce(ctx context.Context, input []float64) (float64, error) {
	return r.engine.Sum(ctx, input)
}

// chunkedReducer runs Engine.SumChunked with a fixed task count.
type chunkedReducer struct {
	engine   *reciprocal.Engine
	numTasks int
}

func (chunkedReducer) Name() string { return reciprocal.StrategyChunked }

func (r chunkedReducer) Reduce(ctx context.Context, input []float64) (float64, error) {
	return r.engine.SumChunked(ctx, input, r.numTasks)
}

// NewReducer returns the reducer for a single strategy name, or nil if the
// name is unknown.
func NewReducer(name string, engine *reciprocal.Engine, numTasks int) Reducer {
	switch name {
	case reciprocal.StrategySequential:
		return sequentialReducer{}
	case reciprocal.StrategyTwoWay:
		return twoWayReducer{engine: engine}
	case reciprocal.StrategyChunked:
		return chunkedReducer{engine: engine, numTasks: numTasks}
	}
	return nil
}

// GetReducersToRun determines which reducers should be executed based on the
// configuration. "all" yields seq, par and chunked in that order.
//
// Parameters:
//   - cfg: The application configuration holding the strategy and task count.
//   - engine: The engine shared by the parallel strategies.
//
// Returns:
//   - []Reducer: The reducers to execute, empty for an unknown strategy.
func GetReducersToRun(cfg config.AppConfig, engine *reciprocal.Engine) []Reducer {
	names := []string{cfg.Strategy}
	if cfg.Strategy == config.StrategyAll {
		names = []string{reciprocal.StrategySequential, reciprocal.StrategyTwoWay, reciprocal.StrategyChunked}
	}
	reducers := make([]Reducer, 0, len(names))
	for _, name := range names {
		if r := NewReducer(name, engine, cfg.Tasks); r != nil {
			reducers = append(reducers, r)
		}
	}
	return reducers
}
