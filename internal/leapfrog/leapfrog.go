// Package leapfrog drives one KDK (kick-drift-kick) step of the
// simulation: build tree, half-kick, drift, build tree again,
// half-kick. Phase ordering is strict — no goroutine may read a
// velocity or position lane that a previous phase has not finished
// writing across every particle, so each phase is its own worker-pool
// fan-out with a join before the next phase starts.
package leapfrog

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/TimGoTheCreator/NEXT/internal/octree"
	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/rank"
)

// kickGrabSize is the unit of work a kick-phase goroutine claims at a
// time. Tree traversal cost varies with local particle density, so
// kick uses dynamic work-stealing over small grabs rather than static
// chunking; drift's per-particle cost is uniform and stays static.
const kickGrabSize = 64

// Phase names the five states a Step passes through, in order.
type Phase int

const (
	BuildA Phase = iota
	Kick1
	Drift
	BuildB
	Kick2
)

func (p Phase) String() string {
	switch p {
	case BuildA:
		return "build_a"
	case Kick1:
		return "kick1"
	case Drift:
		return "drift"
	case BuildB:
		return "build_b"
	case Kick2:
		return "kick2"
	default:
		return "unknown"
	}
}

// Observer is notified as a Step completes each phase. nodes is the tree
// size as of BuildA/BuildB, 0 otherwise. Implementations must not
// mutate store.
type Observer func(phase Phase, nodes int)

// Step advances store by dt using Barnes-Hut KDK leapfrog, fanning the
// per-particle force loop of each kick phase across a worker pool.
// threads is the worker count per rank (the CLI's <threads> argument);
// threads <= 0 falls back to runtime.NumCPU. theta is the opening
// angle; group partitions the per-particle loops across ranks when
// running distributed (nil means single-rank). obs may be nil.
func Step(store *particle.Store, dt, theta float64, threads int, group *rank.Group, obs Observer) {
	if store.Len() == 0 {
		return
	}
	if group == nil {
		group = rank.NewGroup(1)
	}
	threads = resolveWorkers(threads)
	half := dt * 0.5

	treeA := octree.Build(store)
	notify(obs, BuildA, treeA.Len())
	kick(treeA, store, theta, half, threads, group)
	notify(obs, Kick1, 0)

	drift(store, dt, threads, group)
	notify(obs, Drift, 0)

	treeB := octree.Build(store)
	notify(obs, BuildB, treeB.Len())
	kick(treeB, store, theta, half, threads, group)
	notify(obs, Kick2, 0)
}

func resolveWorkers(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

func notify(obs Observer, phase Phase, nodes int) {
	if obs != nil {
		obs(phase, nodes)
	}
}

// kick applies a half-step velocity update from tree-computed
// accelerations, fanned out first across ranks (via group) and then,
// within each rank's owned slice, across a dynamically scheduled
// worker pool — traversal cost varies with local particle density, so
// idle workers steal the next grab of kickGrabSize indices instead of
// sitting on a fixed static chunk.
func kick(tree *octree.Arena, store *particle.Store, theta, halfDt float64, threads int, group *rank.Group) {
	n := store.Len()
	group.ForEachRank(func(c rank.Context) {
		lo, hi := c.Owned(n)
		parallelRangeDynamic(lo, hi, threads, kickGrabSize, func(i int) {
			ax, ay, az := tree.Accel(i, store, theta)
			store.VX[i] += ax * halfDt
			store.VY[i] += ay * halfDt
			store.VZ[i] += az * halfDt
		})
	})
}

// drift applies the full-step position update. Per-particle cost is
// uniform here (no tree traversal), so drift uses static equal-sized
// chunking rather than kick's work-stealing.
func drift(store *particle.Store, dt float64, threads int, group *rank.Group) {
	n := store.Len()
	group.ForEachRank(func(c rank.Context) {
		lo, hi := c.Owned(n)
		parallelRange(lo, hi, threads, func(i int) {
			store.X[i] += store.VX[i] * dt
			store.Y[i] += store.VY[i] * dt
			store.Z[i] += store.VZ[i] * dt
		})
	})
}

// parallelRange runs fn(i) for i in [lo, hi) across numWorkers
// goroutines, each owning a fixed contiguous chunk.
func parallelRange(lo, hi, numWorkers int, fn func(i int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers <= 1 {
		for i := lo; i < hi; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := lo + w*chunk
		end := start + chunk
		if end > hi {
			end = hi
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// parallelRangeDynamic runs fn(i) for i in [lo, hi) across numWorkers
// goroutines that repeatedly claim the next grabSize-sized slice from
// a shared cursor, so a worker stuck on a dense region doesn't leave
// the others idle the way a static chunk split would.
func parallelRangeDynamic(lo, hi, numWorkers, grabSize int, fn func(i int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers <= 1 {
		for i := lo; i < hi; i++ {
			fn(i)
		}
		return
	}

	cursor := int64(lo)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				start := atomic.AddInt64(&cursor, int64(grabSize)) - int64(grabSize)
				if start >= int64(hi) {
					return
				}
				end := start + int64(grabSize)
				if end > int64(hi) {
					end = int64(hi)
				}
				for i := int(start); i < int(end); i++ {
					fn(i)
				}
			}
		}()
	}
	wg.Wait()
}
