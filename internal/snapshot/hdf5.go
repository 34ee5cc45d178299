package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// hdf5Magic tags the container so Loader can recognize it without
// depending on a real HDF5 library (see DESIGN.md: no HDF5 binding
// exists anywhere in the retrieval pack).
var hdf5Magic = [8]byte{'N', 'E', 'X', 'T', 'H', '5', 'S', 'F'}

// HDF5Writer emits a self-contained binary container shaped like the
// PartType1 (dark matter)/PartType4 (star) group layout of a real
// Gadget-style HDF5 snapshot — Coordinates/Velocities/Masses/
// ParticleIDs per group, float32 throughout — plus an .xdmf sidecar
// pointing ParaView at it.
type HDF5Writer struct{}

func (HDF5Writer) Write(store *particle.Store, baseName string) (string, error) {
	path := baseName + ".hdf5"
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(hdf5Magic[:]); err != nil {
		return "", err
	}

	dm := partitionByType(store, particle.Dark)
	stars := partitionByType(store, particle.Star)

	if err := writeGroup(w, dm); err != nil {
		return "", err
	}
	if err := writeGroup(w, stars); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	if err := writeXDMF(baseName+".xdmf", path, store.Len()); err != nil {
		return "", err
	}
	return path, nil
}

type groupData struct {
	coords, vels []float32
	masses       []float32
	ids          []int32
}

func partitionByType(store *particle.Store, t particle.Type) groupData {
	var g groupData
	for i := 0; i < store.Len(); i++ {
		if store.T[i] != t {
			continue
		}
		g.coords = append(g.coords, float32(store.X[i]), float32(store.Y[i]), float32(store.Z[i]))
		g.vels = append(g.vels, float32(store.VX[i]), float32(store.VY[i]), float32(store.VZ[i]))
		g.masses = append(g.masses, float32(store.M[i]))
		g.ids = append(g.ids, int32(i)+1)
	}
	return g
}

func writeGroup(w *bufio.Writer, g groupData) error {
	n := int64(len(g.ids))
	if err := binary.Write(w, binary.LittleEndian, n); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, g.coords); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, g.vels); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, g.masses); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, g.ids)
}

func writeXDMF(path, hdf5Path string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprint(w, "<?xml version=\"1.0\" ?>\n<Xdmf Version=\"3.0\">\n  <Domain>\n")
	fmt.Fprint(w, "    <Grid Name=\"Particles\" GridType=\"Uniform\">\n")
	fmt.Fprintf(w, "      <Topology TopologyType=\"Polyvertex\" NumberOfElements=\"%d\"/>\n", n)
	fmt.Fprint(w, "      <Geometry GeometryType=\"XYZ\">\n")
	fmt.Fprintf(w, "        <DataItem Dimensions=\"%d 3\" NumberType=\"Float\" Precision=\"4\" Format=\"Binary\">\n", n)
	fmt.Fprintf(w, "          %s\n", hdf5Path)
	fmt.Fprint(w, "        </DataItem>\n      </Geometry>\n")
	fmt.Fprint(w, "    </Grid>\n  </Domain>\n</Xdmf>\n")
	return w.Flush()
}
