// Package snapshot writes particle-store dumps in the three formats
// NEXT's external tooling consumes: VTK legacy ASCII, VTU XML, and a
// binary HDF5-sidecar container with an accompanying .xdmf descriptor.
package snapshot

import (
	"fmt"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// Format selects which Writer For returns.
type Format int

const (
	VTK Format = iota
	VTU
	HDF5
)

func (f Format) String() string {
	switch f {
	case VTK:
		return "vtk"
	case VTU:
		return "vtu"
	case HDF5:
		return "hdf5"
	default:
		return "unknown"
	}
}

// ParseFormat maps "vtk"/"vtu"/"hdf5" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "vtk":
		return VTK, nil
	case "vtu":
		return VTU, nil
	case "hdf5":
		return HDF5, nil
	default:
		return 0, fmt.Errorf("choose a file format: vtk, vtu, or hdf5")
	}
}

// Writer persists a particle store to disk under a base filename
// (without extension) and returns the path actually written.
type Writer interface {
	Write(store *particle.Store, baseName string) (string, error)
}

// For returns the Writer for a Format.
func For(f Format) Writer {
	switch f {
	case VTU:
		return VTUWriter{}
	case HDF5:
		return HDF5Writer{}
	default:
		return VTKWriter{}
	}
}

// Filename builds the dump_<step> base name a snapshot is written
// under; the Writer appends the format's extension.
func Filename(step int) string {
	return fmt.Sprintf("dump_%d", step)
}
