// Package directsum implements the brute-force O(N²) pairwise gravity
// kernel used as a regression oracle against the Barnes-Hut tree
// (opening-criterion convergence, spec.md §8) and for two-body momentum
// tests. It is never on the hot path of a simulation step.
package directsum

import (
	"math"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/softening"
)

// G is the gravitational constant; matches internal/octree.G.
const G = 1.0

// Accel returns the gravitational acceleration on particle i from every
// other body in store, using PairSoftening at each pair.
func Accel(i int, store *particle.Store) (ax, ay, az float64) {
	n := store.Len()
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		dx := store.X[j] - store.X[i]
		dy := store.Y[j] - store.Y[i]
		dz := store.Z[j] - store.Z[i]

		eps := softening.PairSoftening(store.M[i], store.M[j])
		r2 := dx*dx + dy*dy + dz*dz + eps*eps
		invR3 := 1.0 / (r2 * math.Sqrt(r2))

		fac := G * store.M[j] * invR3
		ax += dx * fac
		ay += dy * fac
		az += dz * fac
	}
	return
}

// Kick applies one symmetric pairwise velocity update of step dt to
// every pair (i, j) in store, by Newton's third law — this is the
// "direct kernel" of the momentum-conservation property in spec.md §8:
// total linear momentum is preserved to roundoff, and the force on i
// from j is exactly the negative of the force on j from i.
func Kick(store *particle.Store, dt float64) {
	n := store.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := store.X[j] - store.X[i]
			dy := store.Y[j] - store.Y[i]
			dz := store.Z[j] - store.Z[i]

			eps := softening.PairSoftening(store.M[i], store.M[j])
			r2 := dx*dx + dy*dy + dz*dz + eps*eps
			invR3 := 1.0 / (r2 * math.Sqrt(r2))
			fBase := G * invR3 * dt

			store.VX[i] += fBase * store.M[j] * dx
			store.VY[i] += fBase * store.M[j] * dy
			store.VZ[i] += fBase * store.M[j] * dz

			store.VX[j] -= fBase * store.M[i] * dx
			store.VY[j] -= fBase * store.M[i] * dy
			store.VZ[j] -= fBase * store.M[i] * dz
		}
	}
}
