// Package timestep implements the adaptive per-step timestep controller:
// a pre-step scan of the velocity field returning a global Δt scaled by
// the maximum speed, clamped to [0.01·Δt₀, Δt₀].
package timestep

import (
	"math"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// speedClip bounds the scan's effective max speed before it enters the
// Δt formula. Any max speed above 99 already puts Δt₀/(1+vMax) below
// the 0.01·Δt₀ lower clamp, so a runaway particle still yields the
// lower clamp.
const speedClip = 1e4

// stationaryThreshold: below this speed the field is treated as at
// rest and the base Δt is returned unscaled.
const stationaryThreshold = 1e-8

// Adaptive returns the Δt to use for the next step, given the base Δt₀
// and the store's current velocity field, per spec.md §4.4.
func Adaptive(store *particle.Store, dt0 float64) float64 {
	vMax := math.Min(store.MaxSpeed(), speedClip)

	if vMax < stationaryThreshold {
		return dt0
	}

	dt := dt0 / (1 + vMax)

	lower := dt0 * 0.01
	if dt < lower {
		dt = lower
	}
	if dt > dt0 {
		dt = dt0
	}
	return dt
}
