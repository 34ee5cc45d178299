// Package pm implements a particle-mesh gravity solver: Cloud-in-Cell
// mass deposit, an FFT Poisson solve, and a central-difference
// gradient. It is a standalone solver exercised only by its own tests:
// the run loop never calls it, and the octree's opening-criterion tests
// compare against internal/directsum, not against this package.
package pm

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

// Grid is a size×size×size periodic box, indexed [x][y][z].
type Grid [][][]float64

func newGrid(size int) Grid {
	g := make(Grid, size)
	for x := range g {
		g[x] = make([][]float64, size)
		for y := range g[x] {
			g[x][y] = make([]float64, size)
		}
	}
	return g
}

// DepositCIC distributes each particle's mass onto a size×size×size
// periodic grid spanning [-size/2, size/2) per axis using Cloud-in-Cell
// (trilinear) weighting.
func DepositCIC(store *particle.Store, size int) Grid {
	grid := newGrid(size)
	half := float64(size) / 2.0

	for p := 0; p < store.Len(); p++ {
		gx := store.X[p] + half
		gy := store.Y[p] + half
		gz := store.Z[p] + half

		i := int(math.Floor(gx))
		j := int(math.Floor(gy))
		k := int(math.Floor(gz))
		fx := gx - float64(i)
		fy := gy - float64(j)
		fz := gz - float64(k)

		m := store.M[p]
		for di := 0; di <= 1; di++ {
			for dj := 0; dj <= 1; dj++ {
				for dk := 0; dk <= 1; dk++ {
					xi := wrap(i+di, size)
					yj := wrap(j+dj, size)
					zk := wrap(k+dk, size)

					wx := fx
					if di == 0 {
						wx = 1 - fx
					}
					wy := fy
					if dj == 0 {
						wy = 1 - fy
					}
					wz := fz
					if dk == 0 {
						wz = 1 - fz
					}
					grid[xi][yj][zk] += m * wx * wy * wz
				}
			}
		}
	}
	return grid
}

func wrap(i, size int) int {
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// SolvePoisson solves ∇²Φ = 4πGρ on the periodic grid via a separable
// 3D FFT: a 2D FFT over each z-slice's (x,y) plane, then a 1D FFT along
// z, mirroring force_calculation.go's 2D solve generalized to the third
// axis.
func SolvePoisson(rho Grid, g float64) Grid {
	size := len(rho)

	// Forward transform: FFT2 over xy per z-slice, then FFT along z.
	spec := fftForward(rho, size)

	kFactor := 2.0 * math.Pi / float64(size)
	for u := 0; u < size; u++ {
		kx := wavenumber(u, size) * kFactor
		for v := 0; v < size; v++ {
			ky := wavenumber(v, size) * kFactor
			for w := 0; w < size; w++ {
				kz := wavenumber(w, size) * kFactor
				kSq := kx*kx + ky*ky + kz*kz
				if kSq == 0 {
					spec[u][v][w] = 0
					continue
				}
				scale := -4.0 * math.Pi * g / kSq
				spec[u][v][w] *= complex(scale, 0)
			}
		}
	}

	return fftInverse(spec, size)
}

func wavenumber(u, size int) float64 {
	if u > size/2 {
		return float64(u - size)
	}
	return float64(u)
}

func fftForward(rho Grid, size int) [][][]complex128 {
	spec := make([][][]complex128, size)
	for z := 0; z < size; z++ {
		plane := make([][]complex128, size)
		for x := 0; x < size; x++ {
			plane[x] = make([]complex128, size)
			for y := 0; y < size; y++ {
				plane[x][y] = complex(rho[x][y][z], 0)
			}
		}
		transformed := fft.FFT2(plane)
		for x := 0; x < size; x++ {
			if spec[x] == nil {
				spec[x] = make([][]complex128, size)
			}
		}
		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				if spec[x][y] == nil {
					spec[x][y] = make([]complex128, size)
				}
				spec[x][y][z] = transformed[x][y]
			}
		}
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			spec[x][y] = fft.FFT(spec[x][y])
		}
	}
	return spec
}

func fftInverse(spec [][][]complex128, size int) Grid {
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			spec[x][y] = fft.IFFT(spec[x][y])
		}
	}

	out := newGrid(size)
	for z := 0; z < size; z++ {
		plane := make([][]complex128, size)
		for x := 0; x < size; x++ {
			plane[x] = make([]complex128, size)
			for y := 0; y < size; y++ {
				plane[x][y] = spec[x][y][z]
			}
		}
		inverted := fft.IFFT2(plane)
		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				out[x][y][z] = real(inverted[x][y])
			}
		}
	}
	return out
}

// Gradient computes a = -∇Φ per axis via periodic central differences.
func Gradient(phi Grid) (ax, ay, az Grid) {
	size := len(phi)
	ax, ay, az = newGrid(size), newGrid(size), newGrid(size)

	for x := 0; x < size; x++ {
		xp, xm := wrap(x+1, size), wrap(x-1, size)
		for y := 0; y < size; y++ {
			yp, ym := wrap(y+1, size), wrap(y-1, size)
			for z := 0; z < size; z++ {
				zp, zm := wrap(z+1, size), wrap(z-1, size)
				ax[x][y][z] = -(phi[xp][y][z] - phi[xm][y][z]) / 2.0
				ay[x][y][z] = -(phi[x][yp][z] - phi[x][ym][z]) / 2.0
				az[x][y][z] = -(phi[x][y][zp] - phi[x][y][zm]) / 2.0
			}
		}
	}
	return
}

// Accel trilinearly interpolates the PM acceleration field at particle
// i's position. This is a regression oracle only, never used for the
// simulation's own force evaluation.
func Accel(i int, store *particle.Store, ax, ay, az Grid) (fx, fy, fz float64) {
	size := len(ax)
	half := float64(size) / 2.0

	gx := store.X[i] + half
	gy := store.Y[i] + half
	gz := store.Z[i] + half

	x0 := int(math.Floor(gx))
	y0 := int(math.Floor(gy))
	z0 := int(math.Floor(gz))
	tx := gx - float64(x0)
	ty := gy - float64(y0)
	tz := gz - float64(z0)

	interp := func(g Grid) float64 {
		var acc float64
		for di := 0; di <= 1; di++ {
			for dj := 0; dj <= 1; dj++ {
				for dk := 0; dk <= 1; dk++ {
					wx := tx
					if di == 0 {
						wx = 1 - tx
					}
					wy := ty
					if dj == 0 {
						wy = 1 - ty
					}
					wz := tz
					if dk == 0 {
						wz = 1 - tz
					}
					xi := wrap(x0+di, size)
					yj := wrap(y0+dj, size)
					zk := wrap(z0+dk, size)
					acc += g[xi][yj][zk] * wx * wy * wz
				}
			}
		}
		return acc
	}

	return interp(ax), interp(ay), interp(az)
}
