package propagator

// Source is a point source at interior coordinates (X, Y) with a per-step
// forcing amplitude. The coordinates are offset by the halo width when mapped
// onto the padded grid.
type Source struct {
	X, Y      int
	Amplitude []float32
}

// inject adds each source's forcing for the given step into the freshly
// computed next-level buffer, scaled by the local model term. Runs strictly
// after the stencil join and before the buffer-role swap. Sources are visited
// in slice order; contributions to a shared cell accumulate.
func (p *Propagator) inject(next []float32, step int) {
	for _, s := range p.sources {
		idx := (s.Y+Pad)*p.nx + s.X + Pad
		next[idx] += p.modelTerm[idx] * s.Amplitude[step]
	}
}
