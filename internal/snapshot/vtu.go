package snapshot

import (
	"bufio"
	"fmt"
	"os"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// VTUWriter emits the VTU (XML UnstructuredGrid) format: one Piece of
// N points, each its own VTK_VERTEX cell, with type/velocity/mass as
// PointData arrays.
type VTUWriter struct{}

func (VTUWriter) Write(store *particle.Store, baseName string) (string, error) {
	path := baseName + ".vtu"
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := store.Len()

	fmt.Fprint(w, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(w, "<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprint(w, "  <UnstructuredGrid>\n")
	fmt.Fprintf(w, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", n, n)

	fmt.Fprint(w, "      <Points>\n")
	fmt.Fprint(w, "        <DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g %g %g ", store.X[i], store.Y[i], store.Z[i])
	}
	fmt.Fprint(w, "\n        </DataArray>\n      </Points>\n")

	fmt.Fprint(w, "      <Cells>\n")
	fmt.Fprint(w, "        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprint(w, "\n        </DataArray>\n")

	fmt.Fprint(w, "        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n          ")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprint(w, "\n        </DataArray>\n")

	fmt.Fprint(w, "        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "1 ")
	}
	fmt.Fprint(w, "\n        </DataArray>\n      </Cells>\n")

	fmt.Fprint(w, "      <PointData>\n")

	fmt.Fprint(w, "        <DataArray type=\"Int32\" Name=\"type\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%d ", store.T[i])
	}
	fmt.Fprint(w, "\n        </DataArray>\n")

	fmt.Fprint(w, "        <DataArray type=\"Float32\" Name=\"velocity\" NumberOfComponents=\"3\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g %g %g ", store.VX[i], store.VY[i], store.VZ[i])
	}
	fmt.Fprint(w, "\n        </DataArray>\n")

	fmt.Fprint(w, "        <DataArray type=\"Float32\" Name=\"mass\" format=\"ascii\">\n          ")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g ", store.M[i])
	}
	fmt.Fprint(w, "\n        </DataArray>\n")

	fmt.Fprint(w, "      </PointData>\n    </Piece>\n  </UnstructuredGrid>\n</VTKFile>\n")

	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}
