// Package softening implements the two closed-form smoothing kernels
// that regularize the 1/r² Newtonian force at short range.
package softening

import "math"

// EpsMin is the shared softening floor used by both kernels.
const EpsMin = 1e-4

// NodeSoftening returns ε for a particle-node interaction: a node of
// half-width size and total mass mass, at distance dist from the target.
// r² should be incremented by ε², not ε, wherever it is consumed.
func NodeSoftening(size, mass, dist float64) float64 {
	epsSize := size * 0.015
	epsMass := math.Cbrt(mass) * 0.002
	epsTaper := 1.0 / (1.0 + dist*10.0)

	eps := (epsSize + epsMass) * epsTaper
	if eps < EpsMin {
		eps = EpsMin
	}
	return eps
}

// PairSoftening returns ε for a direct two-body interaction between
// masses mi and mj. As with NodeSoftening, callers add ε² to r².
func PairSoftening(mi, mj float64) float64 {
	ei := math.Cbrt(mi) * 0.002
	ej := math.Cbrt(mj) * 0.002
	eps := math.Sqrt(ei*ei + ej*ej)
	if eps < EpsMin {
		eps = EpsMin
	}
	return eps
}
