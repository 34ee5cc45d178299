package physics

import (
	"math"
	"testing"
)

// TestMat4Multiply tests matrix multiplication
func TestMat4Multiply(t *testing.T) {
	identity := Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	m := Mat4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}

	result := m.Multiply(identity)

	// Result should be the same as m
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(result[i][j]-m[i][j]) > 0.001 {
				t.Errorf("Identity multiplication failed at [%d][%d]: expected %f, got %f",
					i, j, m[i][j], result[i][j])
			}
		}
	}

	// Test actual multiplication
	a := Mat4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	b := Mat4{
		{2, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 2, 0},
		{0, 0, 0, 2},
	}

	result = a.Multiply(b)

	// Result should be a * 2
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := a[i][j] * 2
			if math.Abs(result[i][j]-expected) > 0.001 {
				t.Errorf("Multiplication failed at [%d][%d]: expected %f, got %f",
					i, j, expected, result[i][j])
			}
		}
	}
}

// TestMat4TransformPoint tests transforming a point by a matrix
func TestMat4TransformPoint(t *testing.T) {
	translation := Mat4{
		{1, 0, 0, 10},
		{0, 1, 0, 20},
		{0, 0, 1, 30},
		{0, 0, 0, 1},
	}
	point := NewVec3(1, 2, 3)

	result := translation.TransformPoint(point)

	if result.X != 11 || result.Y != 22 || result.Z != 33 {
		t.Errorf("Expected translated point (11, 22, 33), got (%f, %f, %f)",
			result.X, result.Y, result.Z)
	}

	scale := Mat4{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{0, 0, 4, 0},
		{0, 0, 0, 1},
	}
	point = NewVec3(1, 1, 1)

	result = scale.TransformPoint(point)

	if result.X != 2 || result.Y != 3 || result.Z != 4 {
		t.Errorf("Expected scaled point (2, 3, 4), got (%f, %f, %f)",
			result.X, result.Y, result.Z)
	}
}

// TestMat4LookAtFacesTarget checks the view matrix's forward row
// points from eye to target.
func TestMat4LookAtFacesTarget(t *testing.T) {
	view := Mat4LookAt(NewVec3(0, 0, 5), NewVec3(0, 0, 0), NewVec3(0, 1, 0))

	// Row 2 is -forward; eye looks down -Z, so forward is (0,0,-1).
	if math.Abs(view[2][0]) > 1e-9 || math.Abs(view[2][1]) > 1e-9 || math.Abs(view[2][2]-1) > 1e-9 {
		t.Errorf("expected forward row (0,0,-1), got (%f,%f,%f)", -view[2][0], -view[2][1], -view[2][2])
	}
}

// TestMat4PerspectiveCarriesNegativeZIntoW checks the perspective
// matrix's bottom row carries -z into w, which TransformPoint's
// perspective divide relies on.
func TestMat4PerspectiveCarriesNegativeZIntoW(t *testing.T) {
	proj := Mat4Perspective(math.Pi/4, 1.0, 0.1, 100.0)
	if proj[3][2] != -1 {
		t.Errorf("expected row 3 to carry -z into w, got %f", proj[3][2])
	}
}

// TestMat4OrthographicMapsBoundsToUnitCube checks the orthographic
// matrix maps the given left/right/bottom/top box to [-1,1].
func TestMat4OrthographicMapsBoundsToUnitCube(t *testing.T) {
	proj := Mat4Orthographic(-10, 10, -5, 5, 0.1, 100)
	corner := proj.TransformPoint(NewVec3(10, 5, 0))

	if math.Abs(corner.X-1) > 1e-9 || math.Abs(corner.Y-1) > 1e-9 {
		t.Errorf("expected top-right corner to map near (1,1,_), got (%f,%f,%f)", corner.X, corner.Y, corner.Z)
	}
}
