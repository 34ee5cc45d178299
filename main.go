// Command next runs the N-body KDK leapfrog simulation: load
// particles, advance by an adaptively chosen Δt each step, and dump a
// snapshot once simulated time crosses the next dump threshold.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/TimGoTheCreator/NEXT/internal/config"
	"github.com/TimGoTheCreator/NEXT/internal/errorreport"
	"github.com/TimGoTheCreator/NEXT/internal/leapfrog"
	"github.com/TimGoTheCreator/NEXT/internal/loader"
	"github.com/TimGoTheCreator/NEXT/internal/obslog"
	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/rank"
	"github.com/TimGoTheCreator/NEXT/internal/snapshot"
	"github.com/TimGoTheCreator/NEXT/internal/telemetry"
	"github.com/TimGoTheCreator/NEXT/internal/timestep"
)

const banner = `
 _  _ ________   _________
| \ | |  ____\ \ / /__   __|
|  \| | |__   \ V /   | |
| . ` + "`" + ` |  __|   > <    | |
| |\  | |____ / . \   | |
|_| \_|______/_/ \_\  |_|
`

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := errorreport.Init("next@dev"); err != nil {
		log.Println(err)
	}
	defer errorreport.Flush(2 * time.Second)

	obslog.Once(cfg.Rank, banner)
	obslog.Once(cfg.Rank, "starting run", "threads", cfg.Threads, "rank_size", cfg.Size)

	store, err := loader.Load(cfg.InputFile)
	if err != nil {
		errorreport.Capture(err, map[string]string{"stage": "load"})
		log.Fatalf("loading particles: %v", err)
	}
	if err := store.Validate(); err != nil {
		log.Fatalf("invalid particle data: %v", err)
	}
	obslog.Once(cfg.Rank, "particles loaded", "count", store.Len())

	run(cfg, store)
}

func run(cfg *config.Config, store *particle.Store) {
	group := rank.NewGroup(cfg.Size)
	writer := snapshot.For(cfg.Format)

	var simTime float64
	var nextDump float64
	step := 0

	stdin := bufio.NewReader(os.Stdin)
	quit := watchForQuit(stdin)

	for {
		dt := timestep.Adaptive(store, cfg.Dt0)
		telemetry.AdaptiveDt.Set(dt)

		phaseStart := time.Now()
		leapfrog.Step(store, dt, cfg.Theta, cfg.Threads, group, func(phase leapfrog.Phase, nodes int) {
			now := time.Now()
			telemetry.StepDuration.WithLabelValues(phase.String()).Observe(now.Sub(phaseStart).Seconds())
			phaseStart = now

			if nodes > 0 {
				telemetry.TreeNodes.Set(float64(nodes))
			}
		})
		simTime += dt
		telemetry.StepsTotal.Inc()

		if simTime >= nextDump {
			dumpOnce(cfg, store, writer, step, simTime)
			nextDump += cfg.DumpInterval
			step++
		}

		select {
		case <-quit:
			obslog.Once(cfg.Rank, "exiting")
			return
		default:
		}
	}
}

func dumpOnce(cfg *config.Config, store *particle.Store, writer snapshot.Writer, step int, simTime float64) {
	base := filepath.Join(".", snapshot.Filename(step))
	path, err := writer.Write(store, base)
	if err != nil {
		telemetry.SnapshotWritesTotal.WithLabelValues("failed").Inc()
		errorreport.Capture(err, map[string]string{"stage": "dump", "format": cfg.Format.String()})
		obslog.Once(cfg.Rank, "snapshot write failed", "error", err)
		return
	}
	telemetry.SnapshotWritesTotal.WithLabelValues("success").Inc()
	obslog.Once(cfg.Rank, "dump written", "step", step, "t", simTime, "file", path)
}

// watchForQuit spawns a background reader that signals on the returned
// channel the first time it reads a 'q' or 'Q' line from stdin,
// matching the run loop's non-blocking exit check.
func watchForQuit(r *bufio.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if line == "q\n" || line == "Q\n" {
				close(ch)
				return
			}
		}
	}()
	return ch
}
