// Package wavelet generates source time series for acoustic simulations.
package wavelet

import "math"

// Ricker returns a Ricker wavelet with the given peak frequency (Hz), sampled
// at interval dt over length samples, with the peak at peakTime seconds.
func Ricker(freq float64, length int, dt, peakTime float64) []float32 {
	w := make([]float32, length)
	for i := range w {
		t := float64(i)*dt - peakTime
		x := math.Pi * freq * t
		x *= x
		w[i] = float32((1 - 2*x) * math.Exp(-x))
	}
	return w
}
