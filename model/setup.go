// Package model prepares padded velocity models for the propagator: halo
// padding by edge replication, optional row-stride alignment, time-step
// derivation, and the precomputed per-cell v²·dt² term.
package model

import (
	"errors"
	"fmt"

	"github.com/mopshell/wave-2d-fd-perf/propagator"
)

var (
	// ErrBadModel reports a velocity slice whose length does not match the
	// stated interior dimensions.
	ErrBadModel = errors.New("model: velocity extent does not match dimensions")

	// ErrBadVelocity reports a model with no positive velocity, which leaves
	// the derived time step undefined.
	ErrBadVelocity = errors.New("model: maximum velocity must be positive")
)

// Options configures Setup construction.
type Options struct {
	// DT is the time step in seconds. 0 derives a Courant-style default of
	// 0.6*dx/maxVelocity from the model.
	DT float64
	// Align rounds the padded row stride up to a multiple of this many
	// float32 elements. Values below 2 leave the stride at nxi + 2*Pad.
	Align int
}

// Setup holds a velocity model padded for propagation. NX is the padded row
// stride (interior plus halo plus any trailing alignment pad), NY the padded
// row count. Term is the per-cell velocity²·dt² factor over the padded grid.
type Setup struct {
	NX, NY   int
	NXI, NYI int
	DX, DT   float32
	Term     []float32
}

// New pads an nyi*nxi interior velocity model (row-major, m/s) with an 8-cell
// halo by edge replication and precomputes the model term.
func New(velocity []float32, nyi, nxi int, dx float64, opts Options) (*Setup, error) {
	if nyi <= 0 || nxi <= 0 || len(velocity) != nyi*nxi {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrBadModel, len(velocity), nyi, nxi)
	}
	if dx <= 0 {
		return nil, fmt.Errorf("%w: %v", propagator.ErrNonPositiveDX, dx)
	}

	pad := propagator.Pad

	dt := opts.DT
	if dt == 0 {
		var maxVel float32
		for _, v := range velocity {
			if v > maxVel {
				maxVel = v
			}
		}
		if maxVel <= 0 {
			return nil, ErrBadVelocity
		}
		dt = 0.6 * dx / float64(maxVel)
	}

	// Trailing padding in x so the row stride is a multiple of the alignment
	// quantum, at least a full halo on the right.
	nx := nxi + 2*pad
	if opts.Align > 1 {
		nx = (nx + opts.Align - 1) / opts.Align * opts.Align
	}
	ny := nyi + 2*pad

	s := &Setup{
		NX: nx, NY: ny,
		NXI: nxi, NYI: nyi,
		DX: float32(dx), DT: float32(dt),
		Term: make([]float32, nx*ny),
	}

	dt2 := float32(dt * dt)
	for i := 0; i < ny; i++ {
		srcRow := clamp(i-pad, 0, nyi-1) * nxi
		for j := 0; j < nx; j++ {
			v := velocity[srcRow+clamp(j-pad, 0, nxi-1)]
			s.Term[i*nx+j] = v * v * dt2
		}
	}
	return s, nil
}

// NewField allocates a zero-filled wavefield buffer set matching the padded
// grid. Zero halo cells are a valid boundary precondition for the propagator.
func (s *Setup) NewField() *propagator.Field {
	return propagator.NewField(s.NX, s.NY)
}

// Propagator builds a propagator over a fresh field for this setup.
func (s *Setup) Propagator(sources []propagator.Source, opts propagator.Options) (*propagator.Propagator, error) {
	return propagator.New(s.NewField(), s.NXI, s.Term, s.DX, sources, opts)
}

// Interior copies the interior rectangle out of a padded buffer, dropping the
// halo and any alignment padding. The result is row-major nyi*nxi.
func (s *Setup) Interior(padded []float32) []float32 {
	pad := propagator.Pad
	out := make([]float32, s.NYI*s.NXI)
	for i := 0; i < s.NYI; i++ {
		src := (i+pad)*s.NX + pad
		copy(out[i*s.NXI:(i+1)*s.NXI], padded[src:src+s.NXI])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
