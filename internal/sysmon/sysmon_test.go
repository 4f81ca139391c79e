package sysmon

import (
	"context"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample(context.Background())
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
	if s.TotalMemory == 0 {
		t.Error("expected non-zero TotalMemory on a running system")
	}
}

func TestMeasure(t *testing.T) {
	stop := Measure(context.Background())
	sum := 0.0
	for i := 1; i < 1_000_000; i++ {
		sum += 1 / float64(i)
	}
	s := stop()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f (sum %f)", s.CPUPercent, sum)
	}
	if s.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want at least 1", s.LogicalCPUs)
	}
}
