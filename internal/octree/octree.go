// Package octree implements the Barnes-Hut spatial index: an
// arena-backed octree over the bounding cube of the current particle
// positions, carrying monopole and quadrupole moments at every internal
// node, plus the acceleration traversal that consumes it.
//
// The tree is an arena of node records indexed by int32 rather than a
// tree of pointer-owning nodes (see DESIGN.md, the internal/octree
// entry): the arena owns all storage, and a node references its children
// and its particle by index, never by pointer. This sidesteps any
// ownership/lifetime question entirely — an Arena is built fresh every
// half-step and discarded at step end.
package octree

import (
	"math"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/softening"
)

// G is the gravitational constant; the simulation runs in natural units.
const G = 1.0

// epsFloat64 is the machine epsilon for float64, used to derive the
// recursion depth floor for coincident or near-coincident particles.
const epsFloat64 = 2.220446049250313e-16

// DefaultTheta is the opening angle used when the caller has none of
// its own.
const DefaultTheta = 0.5

// dmSofteningFactor widens the softening floor for dark-matter targets
// against heavy nodes. Retained from the original design as a tunable
// constant, not a derived physical law (spec.md §9(c)).
const dmSofteningFactor = 2.0

const noChild int32 = -1

// node is one arena slot: a cubic cell plus its aggregated moments.
type node struct {
	cx, cy, cz float64 // geometric center of the cell
	half       float64 // half-width of the cell

	m                  float64 // aggregate mass of the subtree
	comX, comY, comZ   float64 // mass-weighted center of mass

	Qxx, Qyy, Qzz float64
	Qxy, Qxz, Qyz float64

	leaf   bool
	child  [8]int32
	bodies []int32 // empty, one (normal case), or many (coincident depth-floor fallback)
}

// Arena owns every node of one octree. It holds no reference to the
// particle store that outlives the step that built it.
type Arena struct {
	nodes []node
}

// Len returns the number of nodes allocated (for telemetry/diagnostics).
func (a *Arena) Len() int { return len(a.nodes) }

// Build constructs a fresh octree over the current positions in store.
func Build(store *particle.Store) *Arena {
	n := store.Len()
	a := &Arena{nodes: make([]node, 0, n*2+1)}
	if n == 0 {
		a.nodes = append(a.nodes, newNode(0, 0, 0, 1))
		return a
	}

	minX, minY, minZ, maxX, maxY, maxZ := store.Bounds()
	cx := (minX + maxX) * 0.5
	cy := (minY + maxY) * 0.5
	cz := (minZ + maxZ) * 0.5
	size := maxOf3(maxX-minX, maxY-minY, maxZ-minZ) * 0.5
	if size <= 0 {
		size = 1
	}

	a.nodes = append(a.nodes, newNode(cx, cy, cz, size))
	floor := size * epsFloat64

	for i := 0; i < n; i++ {
		a.insert(0, int32(i), store, floor)
	}
	a.computeMass(0, store)
	return a
}

func newNode(cx, cy, cz, half float64) node {
	return node{
		cx: cx, cy: cy, cz: cz, half: half,
		leaf:  true,
		child: [8]int32{noChild, noChild, noChild, noChild, noChild, noChild, noChild, noChild},
	}
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// octantOf returns which of the eight octants a particle's position
// falls into relative to a node's geometric center.
func (a *Arena) octantOf(idx int32, i int32, store *particle.Store) int {
	n := &a.nodes[idx]
	oct := 0
	if store.X[i] > n.cx {
		oct |= 1
	}
	if store.Y[i] > n.cy {
		oct |= 2
	}
	if store.Z[i] > n.cz {
		oct |= 4
	}
	return oct
}

// ensureChild returns the child index for octant oct of idx, creating
// it if absent. It never caches a *node across the append that may grow
// a.nodes — every field write goes through a.nodes[idx], which stays
// valid across reallocation.
func (a *Arena) ensureChild(idx int32, oct int) int32 {
	if c := a.nodes[idx].child[oct]; c != noChild {
		return c
	}
	parent := a.nodes[idx] // value copy, safe to read after the append below
	hs := parent.half * 0.5
	cx, cy, cz := parent.cx, parent.cy, parent.cz
	if oct&1 != 0 {
		cx += hs
	} else {
		cx -= hs
	}
	if oct&2 != 0 {
		cy += hs
	} else {
		cy -= hs
	}
	if oct&4 != 0 {
		cz += hs
	} else {
		cz -= hs
	}

	a.nodes = append(a.nodes, newNode(cx, cy, cz, hs))
	newIdx := int32(len(a.nodes) - 1)
	a.nodes[idx].child[oct] = newIdx
	return newIdx
}

// insert places particle index i into the subtree rooted at idx.
func (a *Arena) insert(idx int32, i int32, store *particle.Store, floor float64) {
	if a.nodes[idx].leaf && len(a.nodes[idx].bodies) == 0 {
		a.nodes[idx].bodies = append(a.nodes[idx].bodies, i)
		return
	}

	if a.nodes[idx].leaf {
		if a.nodes[idx].half < floor {
			// Depth floor: coincident/near-coincident particles, accept
			// a multi-occupant leaf rather than recursing forever.
			a.nodes[idx].bodies = append(a.nodes[idx].bodies, i)
			return
		}

		old := a.nodes[idx].bodies
		a.nodes[idx].bodies = nil
		a.nodes[idx].leaf = false
		for _, oi := range old {
			oct := a.octantOf(idx, oi, store)
			child := a.ensureChild(idx, oct)
			a.insert(child, oi, store, floor)
		}
	}

	oct := a.octantOf(idx, i, store)
	child := a.ensureChild(idx, oct)
	a.insert(child, i, store, floor)
}

// computeMass performs the post-order mass and quadrupole aggregation
// of §4.2. The quadrupole shape tensor uses the unsoftened r² (spec.md
// §9(b) — a deliberate divergence from the C++ original, which softens
// r² inside the shape tensor too and biases the far-field moment).
func (a *Arena) computeMass(idx int32, store *particle.Store) {
	n := &a.nodes[idx]

	if n.leaf {
		switch len(n.bodies) {
		case 0:
			n.m, n.comX, n.comY, n.comZ = 0, 0, 0, 0
		case 1:
			i := n.bodies[0]
			n.m = store.M[i]
			n.comX, n.comY, n.comZ = store.X[i], store.Y[i], store.Z[i]
		default:
			var m, cx, cy, cz float64
			for _, i := range n.bodies {
				m += store.M[i]
				cx += store.M[i] * store.X[i]
				cy += store.M[i] * store.Y[i]
				cz += store.M[i] * store.Z[i]
			}
			if m > 0 {
				cx, cy, cz = cx/m, cy/m, cz/m
			}
			n.m, n.comX, n.comY, n.comZ = m, cx, cy, cz
		}
		n.Qxx, n.Qyy, n.Qzz, n.Qxy, n.Qxz, n.Qyz = 0, 0, 0, 0, 0, 0
		return
	}

	var m, cx, cy, cz float64
	for _, c := range n.child {
		if c == noChild {
			continue
		}
		a.computeMass(c, store)
		cn := &a.nodes[c]
		if cn.m == 0 {
			continue
		}
		m += cn.m
		cx += cn.comX * cn.m
		cy += cn.comY * cn.m
		cz += cn.comZ * cn.m
	}
	if m > 0 {
		cx, cy, cz = cx/m, cy/m, cz/m
	}
	n.m, n.comX, n.comY, n.comZ = m, cx, cy, cz

	var Qxx, Qyy, Qzz, Qxy, Qxz, Qyz float64
	for _, c := range n.child {
		if c == noChild {
			continue
		}
		cn := &a.nodes[c]
		if cn.m == 0 {
			continue
		}
		rx := cn.comX - cx
		ry := cn.comY - cy
		rz := cn.comZ - cz
		r2 := rx*rx + ry*ry + rz*rz
		mc := cn.m
		Qxx += mc * (3*rx*rx - r2)
		Qyy += mc * (3*ry*ry - r2)
		Qzz += mc * (3*rz*rz - r2)
		Qxy += mc * (3 * rx * ry)
		Qxz += mc * (3 * rx * rz)
		Qyz += mc * (3 * ry * rz)
	}
	n.Qxx, n.Qyy, n.Qzz, n.Qxy, n.Qxz, n.Qyz = Qxx, Qyy, Qzz, Qxy, Qxz, Qyz
}

// TotalMass returns the root node's aggregate mass, for the mass
// conservation property of §8.
func (a *Arena) TotalMass() float64 {
	if len(a.nodes) == 0 {
		return 0
	}
	return a.nodes[0].m
}

// CenterOfMass returns the root node's center of mass.
func (a *Arena) CenterOfMass() (float64, float64, float64) {
	if len(a.nodes) == 0 {
		return 0, 0, 0
	}
	return a.nodes[0].comX, a.nodes[0].comY, a.nodes[0].comZ
}

// Accel returns the gravitational acceleration on particle i from the
// tree rooted at this arena, per the traversal of §4.3.
func (a *Arena) Accel(i int, store *particle.Store, theta float64) (ax, ay, az float64) {
	a.accel(0, i, store, theta, &ax, &ay, &az)
	return
}

func (a *Arena) accel(idx int32, i int, store *particle.Store, theta float64, ax, ay, az *float64) {
	n := &a.nodes[idx]
	if n.m == 0 {
		return
	}
	if n.leaf && len(n.bodies) == 1 && int(n.bodies[0]) == i {
		return
	}

	dx := n.comX - store.X[i]
	dy := n.comY - store.Y[i]
	dz := n.comZ - store.Z[i]
	r2 := dx*dx + dy*dy + dz*dz
	dist := math.Sqrt(r2 + 1e-20)

	eps := softening.NodeSoftening(n.half, n.m, dist)
	if store.T[i] == particle.Dark {
		widened := dmSofteningFactor * n.half / math.Cbrt(n.m/store.M[i])
		if widened > eps {
			eps = widened
		}
	}

	r2Soft := r2 + eps*eps
	invR := 1.0 / math.Sqrt(r2Soft)

	if n.leaf || n.half/dist < theta {
		invR3 := invR * invR * invR
		fac := G * n.m * invR3
		*ax += dx * fac
		*ay += dy * fac
		*az += dz * fac

		invR5 := invR3 * invR * invR
		invR7 := invR5 * invR * invR

		q := n.Qxx*dx*dx + n.Qyy*dy*dy + n.Qzz*dz*dz +
			2*(n.Qxy*dx*dy+n.Qxz*dx*dz+n.Qyz*dy*dz)

		Qrx := 2 * (n.Qxx*dx + n.Qxy*dy + n.Qxz*dz)
		Qry := 2 * (n.Qxy*dx + n.Qyy*dy + n.Qyz*dz)
		Qrz := 2 * (n.Qxz*dx + n.Qyz*dy + n.Qzz*dz)

		*ax += 0.5 * G * (Qrx*invR5 - 5*q*invR7*dx)
		*ay += 0.5 * G * (Qry*invR5 - 5*q*invR7*dy)
		*az += 0.5 * G * (Qrz*invR5 - 5*q*invR7*dz)
		return
	}

	for _, c := range n.child {
		if c != noChild {
			a.accel(c, i, store, theta, ax, ay, az)
		}
	}
}
