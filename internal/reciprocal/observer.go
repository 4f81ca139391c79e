//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

package reciprocal

import "github.com/agbru/recipsum/internal/chunk"

// Observer receives task-tree events from the drivers. Methods are called
// concurrently from many goroutines and must not block.
type Observer interface {
	// TaskSplit is called when a task over r forks two children.
	TaskSplit(r chunk.Range, depth int)
	// LeafComputed is called after a leaf over r has computed its sum.
	LeafComputed(r chunk.Range, depth int)
	// EmptyChunks is called once per chunked run with the number of
	// chunks that hold no element. Those chunks are never scheduled.
	EmptyChunks(n int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TaskSplit(chunk.Range, int)    {}
func (NopObserver) LeafComputed(chunk.Range, int) {}
func (NopObserver) EmptyChunks(int)               {}
