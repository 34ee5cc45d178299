package snapshot

import (
	"bufio"
	"fmt"
	"os"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// VTKWriter emits the VTK legacy ASCII POLYDATA format ParaView reads
// directly: points, a vertex per point, then type/velocity/mass as
// point data.
type VTKWriter struct{}

func (VTKWriter) Write(store *particle.Store, baseName string) (string, error) {
	path := baseName + ".vtk"
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := store.Len()

	fmt.Fprint(w, "# vtk DataFile Version 3.0\n")
	fmt.Fprint(w, "NEXT snapshot\n")
	fmt.Fprint(w, "ASCII\n")
	fmt.Fprint(w, "DATASET POLYDATA\n")

	fmt.Fprintf(w, "POINTS %d double\n", n)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g %g %g\n", store.X[i], store.Y[i], store.Z[i])
	}

	fmt.Fprintf(w, "VERTICES %d %d\n", n, n*2)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "1 %d\n", i)
	}

	fmt.Fprintf(w, "POINT_DATA %d\n", n)

	fmt.Fprint(w, "SCALARS type int 1\n")
	fmt.Fprint(w, "LOOKUP_TABLE default\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%d\n", store.T[i])
	}

	fmt.Fprint(w, "VECTORS velocity double\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g %g %g\n", store.VX[i], store.VY[i], store.VZ[i])
	}

	fmt.Fprint(w, "SCALARS mass double 1\n")
	fmt.Fprint(w, "LOOKUP_TABLE default\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "%g\n", store.M[i])
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}
