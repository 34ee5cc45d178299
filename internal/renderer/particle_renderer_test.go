package renderer

import (
	"testing"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/physics"
)

func TestParticleRendererCreation(t *testing.T) {
	renderer := NewParticleRenderer()

	if renderer == nil {
		t.Fatal("Failed to create particle renderer")
	}

	if renderer.GetParticleSize() == 0 {
		t.Error("Particle size should have a default value")
	}
}

func TestParticleRendererSetup(t *testing.T) {
	renderer := NewParticleRenderer()

	err := renderer.Setup()
	if err != nil {
		t.Logf("Setup failed (expected in test): %v", err)
	}
}

func TestAddParticles(t *testing.T) {
	renderer := NewParticleRenderer()

	store := particle.NewStore(0)
	store.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)
	store.Append(10, 0, 0, 0, 0, 0, 2.0, particle.Star)
	store.Append(0, 0, 10, 0, 0, 0, 3.0, particle.Dark)

	renderer.SetStore(store)

	if renderer.GetParticleCount() != store.Len() {
		t.Errorf("Expected %d particles, got %d", store.Len(), renderer.GetParticleCount())
	}
}

func TestRenderBatch(t *testing.T) {
	renderer := NewParticleRenderer()

	numParticles := 1000
	store := particle.NewStore(numParticles)
	for i := 0; i < numParticles; i++ {
		store.Append(float64(i%10)*10, 0, float64(i/10)*10, 0, 0, 0, 1.0, particle.Star)
	}

	renderer.SetStore(store)

	batches := renderer.GetBatchInfo()
	if batches.TotalBatches == 0 {
		t.Error("Should have at least one batch")
	}
	if batches.ParticlesPerBatch == 0 {
		t.Error("Particles per batch should be non-zero")
	}

	totalInBatches := batches.TotalBatches * batches.ParticlesPerBatch
	if totalInBatches < numParticles {
		t.Error("Batches don't cover all particles")
	}

	if err := renderer.RenderBatch(0); err != nil {
		t.Errorf("RenderBatch(0) failed: %v", err)
	}
	if err := renderer.RenderBatch(batches.TotalBatches); err == nil {
		t.Error("expected out-of-range batch index to error")
	}
}

func TestColorMapping(t *testing.T) {
	renderer := NewParticleRenderer()

	store := particle.NewStore(0)
	store.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)
	store.Append(0, 0, 0, 0, 0, 0, 100.0, particle.Star)
	store.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Dark)
	renderer.SetStore(store)

	lightColor := renderer.GetParticleColor(0)
	heavyColor := renderer.GetParticleColor(1)
	darkColor := renderer.GetParticleColor(2)

	if lightColor.R == heavyColor.R && lightColor.G == heavyColor.G && lightColor.B == heavyColor.B {
		t.Error("stars with different masses should have different colors")
	}
	if darkColor == lightColor {
		t.Error("dark matter should be colored differently from stars")
	}
}

func TestParticleSize(t *testing.T) {
	renderer := NewParticleRenderer()
	renderer.SetParticleSize(2.0)
	if renderer.GetParticleSize() != 2.0 {
		t.Error("Failed to set particle size")
	}

	store := particle.NewStore(0)
	store.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)
	store.Append(0, 0, 0, 0, 0, 0, 10.0, particle.Star)
	renderer.SetStore(store)

	smallSize := renderer.GetScaledParticleSize(0)
	largeSize := renderer.GetScaledParticleSize(1)

	if largeSize <= smallSize {
		t.Error("Larger mass should result in larger particle size")
	}
}

func TestCulling(t *testing.T) {
	renderer := NewParticleRenderer()

	camera := NewCamera(
		physics.NewVec3(0, 0, 0),
		physics.NewVec3(0, 0, -1),
		physics.NewVec3(0, 1, 0),
	)
	camera.SetPerspective(60.0, 1.0, 1.0, 100.0)

	store := particle.NewStore(0)
	store.Append(0, 0, -10, 0, 0, 0, 1.0, particle.Star)   // visible
	store.Append(0, 0, 10, 0, 0, 0, 1.0, particle.Star)    // behind camera
	store.Append(0, 0, -200, 0, 0, 0, 1.0, particle.Star)  // beyond far plane
	store.Append(200, 0, -10, 0, 0, 0, 1.0, particle.Star) // outside frustum

	renderer.SetStore(store)
	renderer.SetCamera(camera)
	renderer.EnableCulling(true)

	visibleCount := renderer.GetVisibleParticleCount()
	if visibleCount != 1 {
		t.Errorf("Expected 1 visible particle, got %d", visibleCount)
	}

	visible := renderer.GetVisibleIndices()
	if len(visible) != 1 || visible[0] != 0 {
		t.Errorf("expected visible indices [0], got %v", visible)
	}
}

func TestRenderMode(t *testing.T) {
	renderer := NewParticleRenderer()

	renderer.SetRenderMode(RenderModePoints)
	if renderer.GetRenderMode() != RenderModePoints {
		t.Error("Failed to set point sprite mode")
	}

	renderer.SetRenderMode(RenderModeSpheres)
	if renderer.GetRenderMode() != RenderModeSpheres {
		t.Error("Failed to set sphere mode")
	}

	renderer.SetRenderMode(RenderModeBillboards)
	if renderer.GetRenderMode() != RenderModeBillboards {
		t.Error("Failed to set billboard mode")
	}
}

func TestCleanup(t *testing.T) {
	renderer := NewParticleRenderer()

	store := particle.NewStore(0)
	store.Append(0, 0, 0, 0, 0, 0, 1.0, particle.Star)
	renderer.SetStore(store)

	if err := renderer.Cleanup(); err != nil {
		t.Errorf("Cleanup failed: %v", err)
	}

	if renderer.GetParticleCount() != 0 {
		t.Error("Particles not cleared after cleanup")
	}
}
