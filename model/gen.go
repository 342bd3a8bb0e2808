package model

import "math/rand"

// RandomVelocity fills an nyi*nxi interior model with uniform random
// velocities in [minVel, maxVel). This is the synthetic model the timing
// harness uses; every cell is independent, so nothing in the wavefield can
// hide behind a smooth structure.
func RandomVelocity(rng *rand.Rand, nyi, nxi int, minVel, maxVel float32) []float32 {
	v := make([]float32, nyi*nxi)
	span := maxVel - minVel
	for i := range v {
		v[i] = minVel + rng.Float32()*span
	}
	return v
}

// SmoothVelocity builds an nyi*nxi interior model from low-frequency Perlin
// noise, giving geologically plausible velocity structure between minVel and
// maxVel. scale is the noise frequency in cycles per grid span; around 3 is a
// reasonable default.
func SmoothVelocity(seed int64, nyi, nxi int, minVel, maxVel float32, scale float64) []float32 {
	if scale <= 0 {
		scale = 3
	}
	noise := newPerlinNoise(seed)
	v := make([]float32, nyi*nxi)
	span := float64(maxVel - minVel)
	for i := 0; i < nyi; i++ {
		y := float64(i) / float64(nyi) * scale
		for j := 0; j < nxi; j++ {
			x := float64(j) / float64(nxi) * scale
			n := 0.5 + 0.5*noise.noise2D(x, y)
			if n < 0 {
				n = 0
			} else if n > 1 {
				n = 1
			}
			v[i*nxi+j] = minVel + float32(n*span)
		}
	}
	return v
}

// UniformVelocity fills an nyi*nxi interior model with a constant velocity.
func UniformVelocity(nyi, nxi int, vel float32) []float32 {
	v := make([]float32, nyi*nxi)
	for i := range v {
		v[i] = vel
	}
	return v
}
