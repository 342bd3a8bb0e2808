package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TimingRecord holds the aggregated result of timing one kernel variant on one
// model configuration. MinSec reports the minimum over repeats, which is the
// least noise-contaminated estimate of the true cost.
type TimingRecord struct {
	Kernel    string  `csv:"kernel"`
	ModelSize int     `csv:"model_size"`
	NumSteps  int     `csv:"num_steps"`
	Workers   int     `csv:"workers"`
	Repeats   int     `csv:"repeats"`
	MinSec    float64 `csv:"time"`
	MeanSec   float64 `csv:"time_mean"`
	StdSec    float64 `csv:"time_std"`
	CellRate  float64 `csv:"cells_per_sec"`
}

// NewTimingRecord aggregates repeat wall times (seconds) for a run that
// stepped numSteps times over a modelSize x modelSize interior.
func NewTimingRecord(kernel string, modelSize, numSteps, workers int, times []float64) TimingRecord {
	rec := TimingRecord{
		Kernel:    kernel,
		ModelSize: modelSize,
		NumSteps:  numSteps,
		Workers:   workers,
		Repeats:   len(times),
	}
	if len(times) == 0 {
		return rec
	}

	rec.MinSec = floats.Min(times)
	rec.MeanSec = stat.Mean(times, nil)
	if len(times) > 1 {
		rec.StdSec = stat.StdDev(times, nil)
	}
	if rec.MinSec > 0 {
		rec.CellRate = float64(modelSize) * float64(modelSize) * float64(numSteps) / rec.MinSec
	}
	return rec
}

// LogValue implements slog.LogValuer for structured logging.
func (r TimingRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kernel", r.Kernel),
		slog.Int("model_size", r.ModelSize),
		slog.Int("num_steps", r.NumSteps),
		slog.Int("workers", r.Workers),
		slog.Int("repeats", r.Repeats),
		slog.Float64("time", r.MinSec),
		slog.Float64("time_mean", r.MeanSec),
		slog.Float64("time_std", r.StdSec),
		slog.Float64("cells_per_sec", r.CellRate),
	)
}
