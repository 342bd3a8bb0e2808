// Package main times the propagator kernels across model sizes and step
// counts so their runtimes can be compared.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mopshell/wave-2d-fd-perf/config"
	"github.com/mopshell/wave-2d-fd-perf/model"
	"github.com/mopshell/wave-2d-fd-perf/propagator"
	"github.com/mopshell/wave-2d-fd-perf/telemetry"
	"github.com/mopshell/wave-2d-fd-perf/wavelet"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for results")
	sizes := flag.String("sizes", "200,400,600,800,1000", "Comma-separated interior model sizes")
	steps := flag.Int("steps", 10, "Time steps per run")
	repeats := flag.Int("repeats", 10, "Timed repeats per variant (minimum is reported)")
	kernels := flag.String("kernels", "loop,unrolled", "Comma-separated kernel names")
	workerCounts := flag.String("workers", "1,0", "Comma-separated worker counts (0 = GOMAXPROCS)")
	seed := flag.Int64("seed", 42, "RNG seed for model generation")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	sizeList, err := parseInts(*sizes)
	if err != nil {
		log.Fatalf("invalid --sizes: %v", err)
	}
	workerList, err := parseInts(*workerCounts)
	if err != nil {
		log.Fatalf("invalid --workers: %v", err)
	}
	kernelList, err := parseKernels(*kernels)
	if err != nil {
		log.Fatalf("invalid --kernels: %v", err)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output manager: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		log.Fatalf("failed to write config snapshot: %v", err)
	}

	start := time.Now()
	for _, n := range sizeList {
		if err := timeSize(cfg, om, n, *steps, *repeats, *seed, kernelList, workerList); err != nil {
			log.Fatalf("timing size %d: %v", n, err)
		}
	}

	slog.Info("sweep finished",
		"sizes", len(sizeList),
		"elapsed", time.Since(start).Seconds(),
		"output", om.Dir(),
	)
}

// timeSize times every kernel/worker combination on one model size. All
// combinations share the same velocity model and source series so their
// results are comparable.
func timeSize(cfg *config.Config, om *telemetry.OutputManager, n, steps, repeats int, seed int64, kernels []propagator.Kernel, workerList []int) error {
	rng := rand.New(rand.NewSource(seed))
	velocity := model.RandomVelocity(rng, n, n,
		float32(cfg.Model.MinVelocity), float32(cfg.Model.MaxVelocity))

	setup, err := model.New(velocity, n, n, cfg.Grid.DX, model.Options{
		DT:    cfg.Time.DT,
		Align: cfg.Grid.Align,
	})
	if err != nil {
		return err
	}

	src := propagator.Source{
		X: n / 2,
		Y: n / 2,
		Amplitude: wavelet.Ricker(cfg.Source.PeakFrequency, steps,
			float64(setup.DT), cfg.Source.PeakTime),
	}

	for _, kernel := range kernels {
		for _, workers := range workerList {
			times, err := timeVariant(setup, src, kernel, workers, steps, repeats)
			if err != nil {
				return err
			}

			rec := telemetry.NewTimingRecord(kernel.String(), n, steps, workers, times)
			if err := om.WriteTiming(rec); err != nil {
				return err
			}
			slog.Info("timed", "result", rec)
		}
	}
	return nil
}

// timeVariant runs one kernel/worker combination repeats times, each on a
// fresh zero wavefield, and returns the wall times in seconds.
func timeVariant(setup *model.Setup, src propagator.Source, kernel propagator.Kernel, workers, steps, repeats int) ([]float64, error) {
	times := make([]float64, 0, repeats)
	for r := 0; r < repeats; r++ {
		prop, err := setup.Propagator([]propagator.Source{src}, propagator.Options{
			Kernel:  kernel,
			Workers: workers,
		})
		if err != nil {
			return nil, err
		}

		start := time.Now()
		err = prop.Step(steps)
		elapsed := time.Since(start)
		prop.Close()
		if err != nil {
			return nil, err
		}

		times = append(times, elapsed.Seconds())
	}
	return times, nil
}

// parseInts parses a comma-separated integer list.
func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseKernels parses a comma-separated kernel name list.
func parseKernels(s string) ([]propagator.Kernel, error) {
	parts := strings.Split(s, ",")
	out := make([]propagator.Kernel, 0, len(parts))
	for _, p := range parts {
		k, err := propagator.ParseKernel(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
