package gemini

import (
	"testing"
	"time"
)

func TestStats_EmptySnapshot(t *testing.T) {
	s := NewStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 || snap.AvgMs != 0 {
		t.Errorf("empty stats should yield zero snapshot, got %+v", snap)
	}
}

func TestStats_Aggregates(t *testing.T) {
	s := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("count = %d, want 4", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("min/max = %d/%d, want 100/400", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("avg = %v, want 250", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("p50 = %v, want 250", snap.P50Ms)
	}
}

func TestStats_NegativeDurationClamped(t *testing.T) {
	s := NewStats(time.Hour)
	s.Record(-5)
	if snap := s.Snapshot(); snap.MinMs != 0 {
		t.Errorf("negative durations must clamp to 0, got %d", snap.MinMs)
	}
}

func TestStats_WindowPrunesOldSamples(t *testing.T) {
	s := NewStats(10 * time.Millisecond)
	s.Record(100)
	time.Sleep(25 * time.Millisecond)
	s.Record(200)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("count = %d, want 1 after window pruning", snap.Count)
	}
	if snap.MinMs != 200 {
		t.Errorf("surviving sample = %d, want 200", snap.MinMs)
	}
}

func TestPercentile(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}
	if got := percentile(values, 0); got != 10 {
		t.Errorf("p0 = %v, want 10", got)
	}
	if got := percentile(values, 100); got != 50 {
		t.Errorf("p100 = %v, want 50", got)
	}
	if got := percentile(values, 50); got != 30 {
		t.Errorf("p50 = %v, want 30", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("empty percentile = %v, want 0", got)
	}
}
