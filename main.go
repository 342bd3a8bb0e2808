package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/mopshell/wave-2d-fd-perf/config"
	"github.com/mopshell/wave-2d-fd-perf/model"
	"github.com/mopshell/wave-2d-fd-perf/propagator"
	"github.com/mopshell/wave-2d-fd-perf/telemetry"
	"github.com/mopshell/wave-2d-fd-perf/wavelet"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	steps := flag.Int("steps", 0, "Time steps to run (0 = use config)")
	size := flag.Int("size", 0, "Interior model size (0 = use config)")
	kernelName := flag.String("kernel", "", "Stencil kernel: loop or unrolled (empty = use config)")
	workers := flag.Int("workers", -1, "Stencil worker goroutines (-1 = use config, 0 = GOMAXPROCS)")
	seed := flag.Int64("seed", 0, "RNG seed for model generation (0 = time-based)")
	dumpPath := flag.String("dump", "", "Write the final interior wavefield to this file (gnuplot matrix)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *steps > 0 {
		cfg.Time.Steps = *steps
	}
	if *size > 0 {
		cfg.Grid.Size = *size
	}
	if *kernelName != "" {
		cfg.Run.Kernel = *kernelName
	}
	if *workers >= 0 {
		cfg.Run.Workers = *workers
	}
	cfg.ComputeDerived()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(cfg, rngSeed, *outputDir, *dumpPath); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run executes one propagation per the config and reports timing.
func run(cfg *config.Config, seed int64, outputDir, dumpPath string) error {
	n := cfg.Grid.Size

	velocity, err := buildVelocity(cfg, seed)
	if err != nil {
		return err
	}

	setup, err := model.New(velocity, n, n, cfg.Grid.DX, model.Options{
		DT:    cfg.Time.DT,
		Align: cfg.Grid.Align,
	})
	if err != nil {
		return fmt.Errorf("building model setup: %w", err)
	}

	kernel, err := propagator.ParseKernel(cfg.Run.Kernel)
	if err != nil {
		return err
	}

	src := propagator.Source{
		X: cfg.Derived.SourceX,
		Y: cfg.Derived.SourceY,
		Amplitude: wavelet.Ricker(cfg.Source.PeakFrequency, cfg.Time.Steps,
			float64(setup.DT), cfg.Source.PeakTime),
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	perf.SetCellsPerStep(n * n)

	prop, err := setup.Propagator([]propagator.Source{src}, propagator.Options{
		Kernel:  kernel,
		Workers: cfg.Run.Workers,
		Timer:   perf,
	})
	if err != nil {
		return err
	}
	defer prop.Close()

	slog.Info("starting propagation",
		"seed", seed,
		"size", n,
		"nx", setup.NX,
		"ny", setup.NY,
		"dx", setup.DX,
		"dt", setup.DT,
		"steps", cfg.Time.Steps,
		"kernel", kernel.String(),
		"workers", cfg.Run.Workers,
	)

	start := time.Now()
	if err := prop.Step(cfg.Time.Steps); err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := perf.Stats()
	stats.LogStats()
	slog.Info("propagation finished", "elapsed", elapsed.Seconds())

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	if om != nil {
		defer om.Close()
		if err := om.WriteConfig(cfg); err != nil {
			return err
		}
		if err := om.WritePerf(stats, cfg.Time.Steps); err != nil {
			return err
		}
		rec := telemetry.NewTimingRecord(kernel.String(), n, cfg.Time.Steps,
			cfg.Run.Workers, []float64{elapsed.Seconds()})
		if err := om.WriteTiming(rec); err != nil {
			return err
		}
	}

	if dumpPath != "" {
		interior := setup.Interior(prop.Field().Current())
		if err := writeWavefield(dumpPath, interior, setup.NXI); err != nil {
			return err
		}
		slog.Info("wavefield written", "path", dumpPath)
	}

	return nil
}

// buildVelocity generates the interior velocity model selected by the config.
func buildVelocity(cfg *config.Config, seed int64) ([]float32, error) {
	n := cfg.Grid.Size
	switch cfg.Model.Kind {
	case "uniform":
		return model.UniformVelocity(n, n, float32(cfg.Model.UniformVelocity)), nil
	case "random":
		rng := rand.New(rand.NewSource(seed))
		return model.RandomVelocity(rng, n, n,
			float32(cfg.Model.MinVelocity), float32(cfg.Model.MaxVelocity)), nil
	case "smooth":
		return model.SmoothVelocity(seed, n, n,
			float32(cfg.Model.MinVelocity), float32(cfg.Model.MaxVelocity),
			cfg.Model.NoiseScale), nil
	}
	return nil, fmt.Errorf("unknown model kind %q", cfg.Model.Kind)
}

// writeWavefield writes a row-major interior wavefield as a gnuplot-style
// matrix, one row per line.
// Plot with: plot 'wavefield.dat' matrix with image
func writeWavefield(path string, field []float32, nx int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wavefield file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < len(field); i += nx {
		for j, v := range field[i : i+nx] {
			if j > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(strconv.FormatFloat(float64(v), 'e', 6, 32)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
