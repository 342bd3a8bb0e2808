// Package propagator advances a 2-D scalar acoustic wavefield on a padded
// regular grid using an explicit leapfrog scheme with an 8th-order spatial
// Laplacian. It is the computational core of the wave-simulation pipeline:
// grid padding, model construction, and source-series generation live in the
// model and wavelet packages, and the caller supplies stable parameters.
//
// The propagator never touches the halo. Whatever boundary policy the caller
// wants (zero fill, absorbing taper) must be baked into the buffers it
// provides; halo cells are only ever read as stencil neighbors.
package propagator

import (
	"fmt"
)

// PhaseTimer receives phase boundaries during stepping. telemetry.PerfCollector
// satisfies it; a nil timer disables instrumentation.
type PhaseTimer interface {
	StartStep()
	StartPhase(name string)
	EndStep()
}

// Phase names reported to a PhaseTimer.
const (
	PhaseStencil = "stencil"
	PhaseInject  = "inject"
	PhaseSwap    = "swap"
)

// Options configures a Propagator beyond its required inputs.
type Options struct {
	// Kernel selects the stencil formulation. Zero value is KernelLoop.
	Kernel Kernel
	// Workers is the goroutine count for the row-parallel stencil.
	// 0 means GOMAXPROCS; 1 forces single-threaded stepping.
	Workers int
	// Timer, if non-nil, is notified at phase boundaries of every step.
	Timer PhaseTimer
}

// Propagator steps a wavefield through time. Create one with New, call Step,
// and Close it when done to release the worker pool.
type Propagator struct {
	field     *Field
	nx, ny    int
	nxi       int
	modelTerm []float32
	coeff     [Pad + 1]float32
	sources   []Source

	kernelFn kernelFunc
	pool     *workerPool
	timer    PhaseTimer

	// Per-step buffer views, published before the parallel region starts and
	// read-only while workers run.
	stepCur, stepNext []float32
}

// New validates its inputs once and builds a propagator over the given buffer
// set. nxi is the interior column count; the interior rectangle is
// [Pad, ny-Pad) x [Pad, nxi+Pad) in padded coordinates. modelTerm holds the
// per-cell v²·dt² factor and is read-only during stepping. Sources may be
// empty. The field buffers are owned by the caller and mutated in place.
func New(field *Field, nxi int, modelTerm []float32, dx float32, sources []Source, opts Options) (*Propagator, error) {
	nx, ny := field.NX(), field.NY()

	if dx <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositiveDX, dx)
	}
	if len(modelTerm) != nx*ny {
		return nil, fmt.Errorf("%w: model term %d, want %d", ErrBadExtent, len(modelTerm), nx*ny)
	}
	if nxi <= 0 || nxi+2*Pad > nx || ny < 2*Pad {
		return nil, fmt.Errorf("%w: nxi=%d inside %dx%d", ErrBadInterior, nxi, nx, ny)
	}
	for i, s := range sources {
		sx, sy := s.X+Pad, s.Y+Pad
		if sx < 0 || sx >= nx || sy < 0 || sy >= ny {
			return nil, fmt.Errorf("%w: source %d at (%d, %d)", ErrSourceOutOfRange, i, s.X, s.Y)
		}
	}

	return &Propagator{
		field:     field,
		nx:        nx,
		ny:        ny,
		nxi:       nxi,
		modelTerm: modelTerm,
		coeff:     coefficients(dx),
		sources:   sources,
		kernelFn:  opts.Kernel.fn(),
		pool:      newWorkerPool(opts.Workers),
		timer:     opts.Timer,
	}, nil
}

// Field returns the buffer set being stepped. Field.Current holds the most
// recent time level at any point between steps.
func (p *Propagator) Field() *Field { return p.field }

// Step advances the wavefield numSteps times, indexing each source's time
// series from 0. A zero count leaves both buffers untouched. After an odd
// count the buffer roles are exchanged; use Field().Current() rather than the
// slices originally passed in.
func (p *Propagator) Step(numSteps int) error {
	if numSteps < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSteps, numSteps)
	}
	for i, s := range p.sources {
		if len(s.Amplitude) < numSteps {
			return fmt.Errorf("%w: source %d has %d samples, want %d",
				ErrShortSource, i, len(s.Amplitude), numSteps)
		}
	}

	for step := 0; step < numSteps; step++ {
		p.advance(step)
	}
	return nil
}

// advance runs one time step: stencil update over the interior, source
// injection, then the buffer-role swap.
func (p *Propagator) advance(step int) {
	if p.timer != nil {
		p.timer.StartStep()
		p.timer.StartPhase(PhaseStencil)
	}

	cur, next := p.field.Current(), p.field.Previous()
	i0, i1 := Pad, p.ny-Pad

	if i1-i0 < parallelThreshold || p.pool.numWorkers == 1 {
		p.kernelFn(cur, next, p.modelTerm, &p.coeff, p.nx, p.nxi, i0, i1)
	} else {
		p.stepCur, p.stepNext = cur, next
		p.pool.dispatch(p, i0, i1)
	}

	if p.timer != nil {
		p.timer.StartPhase(PhaseInject)
	}
	p.inject(next, step)

	if p.timer != nil {
		p.timer.StartPhase(PhaseSwap)
	}
	p.field.swap()

	if p.timer != nil {
		p.timer.EndStep()
	}
}

// computeChunk runs the kernel over one worker's row range.
func (p *Propagator) computeChunk(i0, i1 int) {
	p.kernelFn(p.stepCur, p.stepNext, p.modelTerm, &p.coeff, p.nx, p.nxi, i0, i1)
}

// Close stops the worker pool. The propagator must not be stepped afterwards.
func (p *Propagator) Close() {
	p.pool.stop()
}
