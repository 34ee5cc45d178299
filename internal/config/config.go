// Package config parses and validates NEXT's command-line arguments.
package config

import (
	"fmt"
	"strconv"

	"github.com/TimGoTheCreator/NEXT/internal/snapshot"
)

// Config holds every parameter a run needs.
type Config struct {
	// Input
	InputFile string

	// Execution
	Threads int
	Rank    int
	Size    int

	// Physics
	Dt0   float64
	Theta float64

	// Output
	DumpInterval float64
	Format       snapshot.Format
}

// Default returns a single-rank, default-theta configuration with no
// input file or dt set — callers fill those in from argv.
func Default() *Config {
	return &Config{
		Threads: 1,
		Rank:    0,
		Size:    1,
		Theta:   0.5,
		Format:  snapshot.VTK,
	}
}

// ParseArgs parses the five positional arguments
// "<input> <threads> <dt> <dump_interval> <vtk|vtu|hdf5>".
func ParseArgs(argv []string) (*Config, error) {
	if len(argv) != 5 {
		return nil, fmt.Errorf("usage: next <input.txt> <threads> <dt> <dump_interval> <vtk|vtu|hdf5>")
	}

	threads, err := strconv.Atoi(argv[1])
	if err != nil {
		return nil, fmt.Errorf("invalid thread count %q: %w", argv[1], err)
	}

	dt, err := strconv.ParseFloat(argv[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid dt %q: %w", argv[2], err)
	}

	dumpInterval, err := strconv.ParseFloat(argv[3], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid dump interval %q: %w", argv[3], err)
	}

	format, err := snapshot.ParseFormat(argv[4])
	if err != nil {
		return nil, err
	}

	c := Default()
	c.InputFile = argv[0]
	c.Threads = threads
	c.Dt0 = dt
	c.DumpInterval = dumpInterval
	c.Format = format
	return c, nil
}

// Validate checks that every field is in a runnable state.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if c.Threads <= 0 {
		return fmt.Errorf("invalid thread count: %d", c.Threads)
	}
	if c.Dt0 <= 0 {
		return fmt.Errorf("invalid dt: %g", c.Dt0)
	}
	if c.DumpInterval <= 0 {
		return fmt.Errorf("invalid dump interval: %g", c.DumpInterval)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("invalid theta: %g", c.Theta)
	}
	if c.Size <= 0 {
		return fmt.Errorf("invalid rank size: %d", c.Size)
	}
	if c.Rank < 0 || c.Rank >= c.Size {
		return fmt.Errorf("invalid rank %d for size %d", c.Rank, c.Size)
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
