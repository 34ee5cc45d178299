// Package particle holds the simulation's structure-of-arrays body table.
package particle

import (
	"fmt"
	"math"
)

// Type tags a body as a star or a dark-matter particle.
type Type uint8

const (
	Star Type = 0
	Dark Type = 1
)

// Store is the SoA particle table: parallel lanes, one slot per body.
// Index is identity — it does not change across steps.
type Store struct {
	X, Y, Z    []float64
	VX, VY, VZ []float64
	M          []float64
	T          []Type
}

// NewStore allocates a store with n zeroed bodies.
func NewStore(n int) *Store {
	return &Store{
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n),
		VX: make([]float64, n), VY: make([]float64, n), VZ: make([]float64, n),
		M: make([]float64, n),
		T: make([]Type, n),
	}
}

// Len returns the number of bodies.
func (s *Store) Len() int { return len(s.X) }

// Append adds one body and returns its index.
func (s *Store) Append(x, y, z, vx, vy, vz, m float64, t Type) int {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
	s.Z = append(s.Z, z)
	s.VX = append(s.VX, vx)
	s.VY = append(s.VY, vy)
	s.VZ = append(s.VZ, vz)
	s.M = append(s.M, m)
	s.T = append(s.T, t)
	return len(s.X) - 1
}

// Validate checks the lane-length and value invariants of §3.
func (s *Store) Validate() error {
	n := len(s.X)
	lanes := map[string][]float64{"Y": s.Y, "Z": s.Z, "VX": s.VX, "VY": s.VY, "VZ": s.VZ, "M": s.M}
	for name, lane := range lanes {
		if len(lane) != n {
			return fmt.Errorf("particle: lane %s has length %d, want %d", name, len(lane), n)
		}
	}
	if len(s.T) != n {
		return fmt.Errorf("particle: lane T has length %d, want %d", len(s.T), n)
	}
	for i, m := range s.M {
		if !(m > 0) {
			return fmt.Errorf("particle: mass at index %d is non-positive (%g)", i, m)
		}
	}
	for i, t := range s.T {
		if t != Star && t != Dark {
			return fmt.Errorf("particle: type at index %d is %d, want 0 or 1", i, t)
		}
	}
	return nil
}

// KineticEnergy returns the kinetic energy of body i.
func (s *Store) KineticEnergy(i int) float64 {
	v2 := s.VX[i]*s.VX[i] + s.VY[i]*s.VY[i] + s.VZ[i]*s.VZ[i]
	return 0.5 * s.M[i] * v2
}

// TotalKineticEnergy sums KineticEnergy over every body.
func (s *Store) TotalKineticEnergy() float64 {
	total := 0.0
	for i := range s.X {
		total += s.KineticEnergy(i)
	}
	return total
}

// TotalMomentum returns the total linear momentum vector (Σ m·v).
func (s *Store) TotalMomentum() (px, py, pz float64) {
	for i := range s.X {
		px += s.M[i] * s.VX[i]
		py += s.M[i] * s.VY[i]
		pz += s.M[i] * s.VZ[i]
	}
	return
}

// TotalMass sums the mass lane.
func (s *Store) TotalMass() float64 {
	total := 0.0
	for _, m := range s.M {
		total += m
	}
	return total
}

// CenterOfMass returns the mass-weighted center of mass.
func (s *Store) CenterOfMass() (cx, cy, cz float64) {
	m := s.TotalMass()
	if m == 0 {
		return 0, 0, 0
	}
	for i := range s.X {
		cx += s.M[i] * s.X[i]
		cy += s.M[i] * s.Y[i]
		cz += s.M[i] * s.Z[i]
	}
	return cx / m, cy / m, cz / m
}

// MaxSpeed returns the fastest body's speed, used by the adaptive
// timestep scan (internal/timestep).
func (s *Store) MaxSpeed() float64 {
	max2 := 0.0
	for i := range s.VX {
		v2 := s.VX[i]*s.VX[i] + s.VY[i]*s.VY[i] + s.VZ[i]*s.VZ[i]
		if v2 > max2 {
			max2 = v2
		}
	}
	return math.Sqrt(max2)
}

// Bounds returns the axis-aligned bounding box of the current positions.
// With zero bodies it returns a degenerate box at the origin; callers
// (internal/octree) are responsible for the size<=0 fallback of §4.2.
func (s *Store) Bounds() (minX, minY, minZ, maxX, maxY, maxZ float64) {
	if len(s.X) == 0 {
		return 0, 0, 0, 0, 0, 0
	}
	minX, maxX = s.X[0], s.X[0]
	minY, maxY = s.Y[0], s.Y[0]
	minZ, maxZ = s.Z[0], s.Z[0]
	for i := 1; i < len(s.X); i++ {
		if s.X[i] < minX {
			minX = s.X[i]
		}
		if s.X[i] > maxX {
			maxX = s.X[i]
		}
		if s.Y[i] < minY {
			minY = s.Y[i]
		}
		if s.Y[i] > maxY {
			maxY = s.Y[i]
		}
		if s.Z[i] < minZ {
			minZ = s.Z[i]
		}
		if s.Z[i] > maxZ {
			maxZ = s.Z[i]
		}
	}
	return
}
