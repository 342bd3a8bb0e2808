package model

import (
	"errors"
	"math"
	"testing"

	"github.com/mopshell/wave-2d-fd-perf/propagator"
)

func TestSetupDimensions(t *testing.T) {
	velocity := UniformVelocity(4, 6, 2000)

	s, err := New(velocity, 4, 6, 5, Options{DT: 0.001})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.NX != 6+2*propagator.Pad || s.NY != 4+2*propagator.Pad {
		t.Errorf("padded dims: got %dx%d, want %dx%d", s.NX, s.NY, 6+2*propagator.Pad, 4+2*propagator.Pad)
	}
	if s.NXI != 6 || s.NYI != 4 {
		t.Errorf("interior dims: got %dx%d, want 6x4", s.NXI, s.NYI)
	}
	if len(s.Term) != s.NX*s.NY {
		t.Errorf("term length: got %d, want %d", len(s.Term), s.NX*s.NY)
	}
}

func TestSetupEdgeReplication(t *testing.T) {
	// Distinct corner velocities must replicate into the halo.
	const nyi, nxi = 3, 4
	velocity := make([]float32, nyi*nxi)
	for i := range velocity {
		velocity[i] = float32(1000 + 100*i)
	}
	const dt = 0.001

	s, err := New(velocity, nyi, nxi, 5, Options{DT: dt})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	dt2 := float32(dt * dt)
	term := func(v float32) float32 { return v * v * dt2 }
	pad := propagator.Pad

	// Padded corner (0,0) replicates interior (0,0); padded far corner
	// replicates interior (nyi-1, nxi-1).
	if got, want := s.Term[0], term(velocity[0]); got != want {
		t.Errorf("top-left halo: got %v, want %v", got, want)
	}
	last := (s.NY-1)*s.NX + s.NX - 1
	if got, want := s.Term[last], term(velocity[nyi*nxi-1]); got != want {
		t.Errorf("bottom-right halo: got %v, want %v", got, want)
	}

	// Interior cells map one to one through the halo offset.
	for i := 0; i < nyi; i++ {
		for j := 0; j < nxi; j++ {
			got := s.Term[(i+pad)*s.NX+j+pad]
			want := term(velocity[i*nxi+j])
			if got != want {
				t.Fatalf("interior (%d,%d): got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestSetupDerivedDT(t *testing.T) {
	velocity := UniformVelocity(10, 10, 3000)

	s, err := New(velocity, 10, 10, 5, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := 0.6 * 5.0 / 3000.0
	if math.Abs(float64(s.DT)-want) > 1e-9 {
		t.Errorf("derived dt: got %v, want %v", s.DT, want)
	}
}

func TestSetupAlign(t *testing.T) {
	velocity := UniformVelocity(10, 10, 2000)

	s, err := New(velocity, 10, 10, 5, Options{DT: 0.001, Align: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.NX%16 != 0 {
		t.Errorf("stride %d not a multiple of 16", s.NX)
	}
	if s.NX < 10+2*propagator.Pad {
		t.Errorf("stride %d smaller than interior plus halo", s.NX)
	}
	// Alignment padding replicates the right edge.
	pad := propagator.Pad
	row := pad
	if got, want := s.Term[row*s.NX+s.NX-1], s.Term[row*s.NX+pad+9]; got != want {
		t.Errorf("alignment pad: got %v, want edge value %v", got, want)
	}
}

func TestSetupErrors(t *testing.T) {
	velocity := UniformVelocity(4, 4, 2000)

	if _, err := New(velocity, 4, 5, 5, Options{DT: 0.001}); !errors.Is(err, ErrBadModel) {
		t.Errorf("bad extent: got %v, want %v", err, ErrBadModel)
	}
	if _, err := New(velocity, 4, 4, 0, Options{DT: 0.001}); !errors.Is(err, propagator.ErrNonPositiveDX) {
		t.Errorf("bad dx: got %v, want %v", err, propagator.ErrNonPositiveDX)
	}
	zeros := make([]float32, 16)
	if _, err := New(zeros, 4, 4, 5, Options{}); !errors.Is(err, ErrBadVelocity) {
		t.Errorf("zero velocity with derived dt: got %v, want %v", err, ErrBadVelocity)
	}
	// An explicit dt sidesteps the velocity requirement.
	if _, err := New(zeros, 4, 4, 5, Options{DT: 0.001}); err != nil {
		t.Errorf("explicit dt with zero velocity: %v", err)
	}
}

func TestInteriorExtraction(t *testing.T) {
	velocity := UniformVelocity(3, 5, 2000)
	s, err := New(velocity, 3, 5, 5, Options{DT: 0.001, Align: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	padded := make([]float32, s.NX*s.NY)
	for i := range padded {
		padded[i] = float32(i)
	}

	interior := s.Interior(padded)
	if len(interior) != 3*5 {
		t.Fatalf("interior length: got %d, want 15", len(interior))
	}
	pad := propagator.Pad
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			want := float32((i+pad)*s.NX + j + pad)
			if interior[i*5+j] != want {
				t.Fatalf("interior (%d,%d): got %v, want %v", i, j, interior[i*5+j], want)
			}
		}
	}
}

func TestSetupPropagatorRoundTrip(t *testing.T) {
	// A setup-produced propagator must place an impulse at the mapped cell.
	velocity := UniformVelocity(20, 20, 2500)
	s, err := New(velocity, 20, 20, 5, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	src := propagator.Source{X: 10, Y: 10, Amplitude: []float32{1}}
	p, err := s.Propagator([]propagator.Source{src}, propagator.Options{Workers: 1})
	if err != nil {
		t.Fatalf("Propagator: %v", err)
	}
	defer p.Close()

	if err := p.Step(1); err != nil {
		t.Fatalf("Step: %v", err)
	}

	interior := s.Interior(p.Field().Current())
	got := interior[10*20+10]
	want := s.Term[(10+propagator.Pad)*s.NX+10+propagator.Pad]
	if math.Abs(float64(got-want)) > 1e-9 {
		t.Errorf("impulse: got %v, want %v", got, want)
	}
}
