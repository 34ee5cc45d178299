package octree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimGoTheCreator/NEXT/internal/directsum"
	"github.com/TimGoTheCreator/NEXT/internal/particle"
)

func randomStore(n int, seed int64) *particle.Store {
	r := rand.New(rand.NewSource(seed))
	s := particle.NewStore(0)
	for i := 0; i < n; i++ {
		t := particle.Star
		if i%3 == 0 {
			t = particle.Dark
		}
		s.Append(r.Float64(), r.Float64(), r.Float64(), 0, 0, 0, 0.5+r.Float64(), t)
	}
	return s
}

func TestMassConservation(t *testing.T) {
	s := randomStore(200, 1)
	a := Build(s)

	want := s.TotalMass()
	got := a.TotalMass()
	require.InDelta(t, want, got, 1e-10*want)
}

func TestCOMConsistency(t *testing.T) {
	s := randomStore(200, 2)
	a := Build(s)

	wantX, wantY, wantZ := s.CenterOfMass()
	gotX, gotY, gotZ := a.CenterOfMass()

	minX, minY, minZ, maxX, maxY, maxZ := s.Bounds()
	extent := maxOf3(maxX-minX, maxY-minY, maxZ-minZ)
	if extent == 0 {
		extent = 1
	}

	assert.InDelta(t, wantX, gotX, 1e-9*extent)
	assert.InDelta(t, wantY, gotY, 1e-9*extent)
	assert.InDelta(t, wantZ, gotZ, 1e-9*extent)
}

func TestSelfForceExclusion(t *testing.T) {
	s := particle.NewStore(0)
	s.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)
	a := Build(s)

	ax, ay, az := a.Accel(0, s, DefaultTheta)
	if ax != 0 || ay != 0 || az != 0 {
		t.Errorf("expected zero self-acceleration, got (%g, %g, %g)", ax, ay, az)
	}
}

func TestOpeningCriterionConvergesToDirectSum(t *testing.T) {
	s := randomStore(50, 3)

	a := Build(s)
	axTree, ayTree, azTree := a.Accel(0, s, 0.3)
	axDirect, ayDirect, azDirect := directsum.Accel(0, s)

	tol := 0.05 * vecLen(axDirect, ayDirect, azDirect)
	if tol == 0 {
		tol = 1e-6
	}

	assert.InDelta(t, axDirect, axTree, tol)
	assert.InDelta(t, ayDirect, ayTree, tol)
	assert.InDelta(t, azDirect, azTree, tol)
}

func TestOpeningCriterionMonotonicity(t *testing.T) {
	s := randomStore(80, 4)
	a := Build(s)
	axD, ayD, azD := directsum.Accel(0, s)

	errAt := func(theta float64) float64 {
		ax, ay, az := a.Accel(0, s, theta)
		return vecLen(ax-axD, ay-ayD, az-azD)
	}

	errLoose := errAt(0.9)
	errTight := errAt(0.1)

	if errTight > errLoose {
		t.Errorf("expected smaller theta to converge toward direct sum: theta=0.9 err=%g theta=0.1 err=%g", errLoose, errTight)
	}
}

func TestBuildHandlesEmptyStore(t *testing.T) {
	s := particle.NewStore(0)
	a := Build(s)
	if a.TotalMass() != 0 {
		t.Errorf("expected zero mass for empty store, got %g", a.TotalMass())
	}
}

func TestBuildHandlesZeroExtentBoundingBox(t *testing.T) {
	s := particle.NewStore(0)
	s.Append(1, 1, 1, 0, 0, 0, 1, particle.Star)
	s.Append(1, 1, 1, 0, 0, 0, 1, particle.Star)
	a := Build(s)
	require.Equal(t, 2.0, a.TotalMass())
}

func TestCoincidentParticlesDoNotRecurseForever(t *testing.T) {
	s := particle.NewStore(0)
	for i := 0; i < 10; i++ {
		s.Append(0, 0, 0, 0, 0, 0, 1, particle.Star)
	}
	a := Build(s)
	require.Equal(t, 10.0, a.TotalMass())

	ax, ay, az := a.Accel(0, s, DefaultTheta)
	if math.IsNaN(ax) || math.IsNaN(ay) || math.IsNaN(az) {
		t.Errorf("expected finite acceleration for coincident cluster, got (%g, %g, %g)", ax, ay, az)
	}
}

func vecLen(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
