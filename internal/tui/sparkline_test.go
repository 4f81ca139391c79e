package tui

import (
	"slices"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()
	r := NewRingBuffer(3)
	if r.Len() != 0 || r.Last() != 0 || r.Slice() != nil {
		t.Fatalf("new buffer should be empty: len=%d last=%v", r.Len(), r.Last())
	}

	for _, v := range []float64{1, 2, 3, 4, 5} {
		r.Push(v)
	}
	if got := r.Slice(); !slices.Equal(got, []float64{3, 4, 5}) {
		t.Errorf("Slice() = %v, want [3 4 5]", got)
	}
	if r.Last() != 5 || r.Len() != 3 {
		t.Errorf("Last() = %v, Len() = %d", r.Last(), r.Len())
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len() after Reset = %d", r.Len())
	}
	r.Push(9)
	if got := r.Slice(); !slices.Equal(got, []float64{9}) {
		t.Errorf("Slice() after Reset = %v", got)
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	t.Parallel()
	r := NewRingBuffer(0)
	r.Push(1)
	r.Push(2)
	if got := r.Slice(); !slices.Equal(got, []float64{2}) {
		t.Errorf("Slice() = %v, want [2]", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"bounds", []float64{0, 100}, "▁█"},
		{"clamped", []float64{-5, 250}, "▁█"},
		{"middle", []float64{50}, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
