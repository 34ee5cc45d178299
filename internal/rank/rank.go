// Package rank models the optional inter-rank, replicated-tree domain
// decomposition of spec.md §5: every rank builds the full octree over
// the full particle count, but each rank only computes forces for the
// contiguous particle slice it owns, then the owned slice is
// all-gathered into every rank's mirror of the lane before the next
// phase begins.
//
// This is an in-process stand-in for an MPI-style multi-rank run: no
// MPI binding appears anywhere in the retrieval pack (checked the full
// corpus, see DESIGN.md), so ranks are modeled as goroutines sharing
// one particle.Store rather than separate processes with a real
// network collective. The Group type is the "explicit context value"
// DESIGN NOTE §9 calls for — there is no package-level singleton.
package rank

import (
	"errors"
	"sync"
)

// Context identifies one rank within a Group.
type Context struct {
	Rank int
	Size int
}

// Single is the degenerate, single-rank context — the default run mode.
var Single = Context{Rank: 0, Size: 1}

// Owned returns the contiguous particle index range [lo, hi) this rank
// is responsible for out of n total particles.
func (c Context) Owned(n int) (lo, hi int) {
	lo = c.Rank * n / c.Size
	hi = (c.Rank + 1) * n / c.Size
	return
}

// AllGather stands in for the MPI all-gather collective a real
// distributed run would issue after each rank finishes writing its
// owned slice of lane: every rank's contribution is made visible to
// every other rank before the next phase starts. In this in-process
// model every rank already shares the same backing array (there is no
// separate per-rank copy to reconcile), so the collective degenerates
// to a no-op — the barrier that would otherwise precede it is
// Group.ForEachRank's wg.Wait.
func (c Context) AllGather(lane []float64) error {
	if lane == nil {
		return errors.New("rank: AllGather requires a non-nil lane")
	}
	return nil
}

// Group coordinates Size ranks cooperating in-process over one shared
// particle store.
type Group struct {
	Size int
}

// NewGroup returns a Group of the given rank count. size<1 is treated
// as 1 (no distribution).
func NewGroup(size int) *Group {
	if size < 1 {
		size = 1
	}
	return &Group{Size: size}
}

// Contexts returns one Context per rank in the group.
func (g *Group) Contexts() []Context {
	ctxs := make([]Context, g.Size)
	for r := range ctxs {
		ctxs[r] = Context{Rank: r, Size: g.Size}
	}
	return ctxs
}

// ForEachRank runs fn once per rank concurrently and blocks until every
// rank has returned — this is the barrier every all-gather collective
// sits behind: no rank may begin the next phase until every other rank
// has finished writing its owned slice of the previous one.
func (g *Group) ForEachRank(fn func(c Context)) {
	if g.Size == 1 {
		fn(Context{Rank: 0, Size: 1})
		return
	}
	var wg sync.WaitGroup
	wg.Add(g.Size)
	for _, c := range g.Contexts() {
		c := c
		go func() {
			defer wg.Done()
			fn(c)
		}()
	}
	wg.Wait()
}
