// Command nextview renders a single particle snapshot with an
// orbiting camera, for a quick visual sanity check without leaving
// the terminal for ParaView.
package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/TimGoTheCreator/NEXT/internal/loader"
	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/physics"
	"github.com/TimGoTheCreator/NEXT/internal/renderer"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: nextview <snapshot-file>")
		os.Exit(1)
	}

	store, err := loader.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading snapshot: %v\n", err)
		os.Exit(1)
	}

	rl.InitWindow(screenWidth, screenHeight, "nextview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cam := newOrbitCamera(store)
	cam.SetPerspective(45.0, float64(screenWidth)/float64(screenHeight), 0.1, 100000.0)

	pr := renderer.NewParticleRenderer()
	pr.SetStore(store)
	pr.SetCamera(cam)
	pr.EnableCulling(true)
	pr.SetParticleSize(0.05)

	rlCam := toRaylibCamera(cam)

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&rlCam, rl.CameraOrbital)
		cam.SetPosition(physics.Vec3FromRaylib(rlCam.Position))
		cam.SetTarget(physics.Vec3FromRaylib(rlCam.Target))
		pr.Recull()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		rl.BeginMode3D(rlCam)
		drawParticles(store, pr)
		rl.DrawGrid(10, 1.0)
		rl.EndMode3D()

		rl.DrawText(fmt.Sprintf("particles: %d / %d visible", store.Len(), pr.GetVisibleParticleCount()), 10, 10, 20, rl.RayWhite)
		rl.EndDrawing()
	}
}

// newOrbitCamera frames the camera on the store's center of mass, at a
// distance proportional to its bounding radius so both a tight cluster
// and a sparse halo fit the view.
func newOrbitCamera(store *particle.Store) *renderer.Camera {
	cx, cy, cz := store.CenterOfMass()
	minX, minY, minZ, maxX, maxY, maxZ := store.Bounds()
	radius := maxOf3(maxX-minX, maxY-minY, maxZ-minZ)
	if radius <= 0 {
		radius = 10
	}

	target := physics.NewVec3(cx, cy, cz)
	dist := radius * 1.5
	position := physics.NewVec3(cx+dist, cy+dist*0.5, cz+dist)

	return renderer.NewCamera(position, target, physics.NewVec3(0, 1, 0))
}

// toRaylibCamera bridges the hand-rolled Camera (used for frustum
// culling and particle sizing) to raylib's own Camera3D, which owns
// the actual window and orbit-drag input handling.
func toRaylibCamera(cam *renderer.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   cam.Position.ToRaylib(),
		Target:     cam.Target.ToRaylib(),
		Up:         cam.Up.ToRaylib(),
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// drawParticles renders stars as small spheres and dark-matter
// particles as faint points, colored and sized by the particle
// renderer and restricted to the camera's visible set.
func drawParticles(store *particle.Store, pr *renderer.ParticleRenderer) {
	for _, i := range pr.GetVisibleIndices() {
		pos := rl.Vector3{X: float32(store.X[i]), Y: float32(store.Y[i]), Z: float32(store.Z[i])}
		c := pr.GetParticleColor(i)
		color := rl.Color{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}

		if store.T[i] == particle.Dark {
			rl.DrawPoint3D(pos, color)
			continue
		}

		radius := pr.GetScaledParticleSize(i)
		if radius < 0.02 {
			radius = 0.02
		}
		rl.DrawSphere(pos, radius, color)
	}
}
