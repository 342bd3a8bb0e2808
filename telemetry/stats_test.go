package telemetry

import (
	"math"
	"testing"
)

func TestNewTimingRecord(t *testing.T) {
	times := []float64{0.5, 0.4, 0.6, 0.45, 0.55}
	rec := NewTimingRecord("loop", 800, 10, 4, times)

	if rec.Kernel != "loop" || rec.ModelSize != 800 || rec.NumSteps != 10 || rec.Workers != 4 {
		t.Errorf("run parameters not carried through: %+v", rec)
	}
	if rec.Repeats != 5 {
		t.Errorf("repeats = %d, want 5", rec.Repeats)
	}

	if rec.MinSec != 0.4 {
		t.Errorf("min = %v, want 0.4", rec.MinSec)
	}
	if math.Abs(rec.MeanSec-0.5) > 0.001 {
		t.Errorf("mean = %v, want 0.5", rec.MeanSec)
	}
	if rec.StdSec <= 0 {
		t.Errorf("std = %v, want positive", rec.StdSec)
	}

	// Throughput uses the minimum time: 800*800*10 cells in 0.4s.
	wantRate := 800.0 * 800.0 * 10.0 / 0.4
	if math.Abs(rec.CellRate-wantRate) > 1 {
		t.Errorf("cell rate = %v, want %v", rec.CellRate, wantRate)
	}
}

func TestNewTimingRecordSingleRepeat(t *testing.T) {
	rec := NewTimingRecord("unrolled", 200, 10, 1, []float64{0.25})

	if rec.MinSec != 0.25 || rec.MeanSec != 0.25 {
		t.Errorf("single repeat: min = %v, mean = %v, want both 0.25", rec.MinSec, rec.MeanSec)
	}
	if rec.StdSec != 0 {
		t.Errorf("std = %v, want 0 for a single repeat", rec.StdSec)
	}
}

func TestNewTimingRecordEmpty(t *testing.T) {
	rec := NewTimingRecord("loop", 200, 10, 1, nil)

	if rec.Repeats != 0 {
		t.Errorf("repeats = %d, want 0", rec.Repeats)
	}
	if rec.MinSec != 0 || rec.MeanSec != 0 || rec.StdSec != 0 || rec.CellRate != 0 {
		t.Errorf("empty times should leave aggregates zero: %+v", rec)
	}
}
