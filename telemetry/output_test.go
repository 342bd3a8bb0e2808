package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// Nil receiver methods must be safe no-ops.
	if err := om.WriteTiming(TimingRecord{}); err != nil {
		t.Errorf("WriteTiming on nil: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("WritePerf on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir on nil: %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerTimingRoundTrip(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	recs := []TimingRecord{
		NewTimingRecord("loop", 200, 10, 1, []float64{0.5, 0.4}),
		NewTimingRecord("unrolled", 200, 10, 4, []float64{0.2, 0.3}),
	}
	for _, rec := range recs {
		if err := om.WriteTiming(rec); err != nil {
			t.Fatalf("WriteTiming: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "timings.csv"))
	if err != nil {
		t.Fatalf("opening timings.csv: %v", err)
	}
	defer f.Close()

	var got []TimingRecord
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("reading timings.csv: %v", err)
	}

	if len(got) != len(recs) {
		t.Fatalf("rows: got %d, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i] != recs[i] {
			t.Errorf("row %d: got %+v, want %+v", i, got[i], recs[i])
		}
	}
}

func TestOutputManagerPerfFile(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	pc := NewPerfCollector(4)
	pc.SetCellsPerStep(100)
	for i := 0; i < 4; i++ {
		pc.StartStep()
		pc.EndStep()
	}

	if err := om.WritePerf(pc.Stats(), 4); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WritePerf(pc.Stats(), 8); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("opening perf.csv: %v", err)
	}
	defer f.Close()

	var got []PerfStatsCSV
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows: got %d, want 2", len(got))
	}
	if got[0].WindowEnd != 4 || got[1].WindowEnd != 8 {
		t.Errorf("window markers: got %d, %d", got[0].WindowEnd, got[1].WindowEnd)
	}
}
