package propagator

// Pad is the halo width surrounding the interior grid. It equals the stencil
// radius, so every interior cell can read its neighbors without bounds checks.
const Pad = 8

// fdNumerators are the exact rational numerators of the 8th-order-accurate
// second-derivative finite-difference weights. Index 0 is the center weight,
// index r the weight for the neighbors at distance r along one axis.
var fdNumerators = [Pad + 1]float32{
	-924708642,
	538137600,
	-94174080,
	22830080,
	-5350800,
	1053696,
	-156800,
	15360,
	-735,
}

// fdDenominator is the common denominator of the weight set.
const fdDenominator = 302702400

// coefficients returns the finite-difference weights scaled for a spatial
// sample interval dx. The same weights apply along both axes.
func coefficients(dx float32) [Pad + 1]float32 {
	var c [Pad + 1]float32
	for r, num := range fdNumerators {
		c[r] = num / fdDenominator / (dx * dx)
	}
	return c
}
