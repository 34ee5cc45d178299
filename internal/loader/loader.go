// Package loader reads a particle store from disk: the binary
// container snapshot.HDF5Writer produces, with a fallback to the plain
// whitespace-delimited ASCII column format
// "x y z vx vy vz m type" used for hand-authored initial conditions.
package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

var hdf5Magic = [8]byte{'N', 'E', 'X', 'T', 'H', '5', 'S', 'F'}

// Load reads filename into a new Store, trying the binary container
// first and falling back to the ASCII column format.
func Load(filename string) (*particle.Store, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic, err := r.Peek(len(hdf5Magic))
	if err == nil && string(magic) == string(hdf5Magic[:]) {
		return loadBinary(r)
	}
	return loadASCII(r)
}

func loadBinary(r *bufio.Reader) (*particle.Store, error) {
	if _, err := r.Discard(len(hdf5Magic)); err != nil {
		return nil, err
	}

	store := particle.NewStore(0)
	if err := readGroup(r, store, particle.Dark); err != nil {
		return nil, fmt.Errorf("reading dark matter group: %w", err)
	}
	if err := readGroup(r, store, particle.Star); err != nil {
		return nil, fmt.Errorf("reading star group: %w", err)
	}
	return store, nil
}

func readGroup(r io.Reader, store *particle.Store, t particle.Type) error {
	var n int64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	coords := make([]float32, n*3)
	vels := make([]float32, n*3)
	masses := make([]float32, n)
	ids := make([]int32, n)

	if err := binary.Read(r, binary.LittleEndian, coords); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, vels); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, masses); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, ids); err != nil {
		return err
	}

	for i := int64(0); i < n; i++ {
		store.Append(
			float64(coords[3*i]), float64(coords[3*i+1]), float64(coords[3*i+2]),
			float64(vels[3*i]), float64(vels[3*i+1]), float64(vels[3*i+2]),
			float64(masses[i]), t,
		)
	}
	return nil
}

func loadASCII(r *bufio.Reader) (*particle.Store, error) {
	store := particle.NewStore(0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var x, y, z, vx, vy, vz, m float64
		var t int
		n, err := fmt.Sscan(line, &x, &y, &z, &vx, &vy, &vz, &m, &t)
		if err != nil || n != 8 {
			return nil, fmt.Errorf("malformed particle line %q: %w", line, err)
		}
		store.Append(x, y, z, vx, vy, vz, m, particle.Type(t))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return store, nil
}
