package renderer

import (
	"errors"
	"math"

	"github.com/TimGoTheCreator/NEXT/internal/particle"
	"github.com/TimGoTheCreator/NEXT/internal/physics"
)

// RenderMode represents the particle rendering mode
type RenderMode int

const (
	// RenderModePoints renders particles as points
	RenderModePoints RenderMode = iota
	// RenderModeSpheres renders particles as spheres
	RenderModeSpheres
	// RenderModeBillboards renders particles as billboards
	RenderModeBillboards
)

// Color represents an RGBA color
type Color struct {
	R, G, B, A float32
}

// BatchInfo contains batch rendering information
type BatchInfo struct {
	TotalBatches      int
	ParticlesPerBatch int
}

// ParticleRenderer culls and styles a particle.Store for a frontend
// draw call. It never touches a graphics API itself — nextview pulls
// GetVisibleIndices/GetParticleColor/GetScaledParticleSize and issues
// the actual raylib draw calls.
type ParticleRenderer struct {
	store          *particle.Store
	camera         *Camera
	particleSize   float32
	renderMode     RenderMode
	cullingEnabled bool

	visibleIndices []int
	maxBatchSize   int
}

// NewParticleRenderer creates a new particle renderer
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{
		particleSize: 1.0,
		renderMode:   RenderModePoints,
		maxBatchSize: 1000,
	}
}

// Setup initializes the renderer
func (r *ParticleRenderer) Setup() error {
	// In a real implementation, this would initialize shaders
	// For now, return an error since we don't have OpenGL context
	return errors.New("OpenGL context not available")
}

// SetStore sets the particle store to render.
func (r *ParticleRenderer) SetStore(store *particle.Store) {
	r.store = store
	r.updateVisibleIndices()
}

// GetParticleCount returns the number of particles
func (r *ParticleRenderer) GetParticleCount() int {
	if r.store == nil {
		return 0
	}
	return r.store.Len()
}

// GetParticleSize returns the base particle size
func (r *ParticleRenderer) GetParticleSize() float32 {
	return r.particleSize
}

// SetParticleSize sets the base particle size
func (r *ParticleRenderer) SetParticleSize(size float32) {
	r.particleSize = size
}

// GetBatchInfo returns batch rendering information
func (r *ParticleRenderer) GetBatchInfo() BatchInfo {
	n := r.GetParticleCount()
	if n == 0 {
		return BatchInfo{TotalBatches: 0, ParticlesPerBatch: 0}
	}

	totalBatches := (n + r.maxBatchSize - 1) / r.maxBatchSize
	return BatchInfo{
		TotalBatches:      totalBatches,
		ParticlesPerBatch: r.maxBatchSize,
	}
}

// GetParticleColor returns the color for particle i based on its mass
// and type — stars read warm (yellow-white), dark matter reads cool
// and dim regardless of mass.
func (r *ParticleRenderer) GetParticleColor(i int) Color {
	if r.store.T[i] == particle.Dark {
		return Color{R: 0.5, G: 0.5, B: 0.6, A: 0.4}
	}

	massNorm := math.Min(r.store.M[i]/100.0, 1.0)
	return Color{
		R: 1.0,
		G: float32(1.0 - 0.5*massNorm),
		B: float32(0.3 * (1.0 - massNorm)),
		A: 1.0,
	}
}

// GetScaledParticleSize returns the scaled draw size for particle i,
// cube-root of mass so volume (not radius) tracks mass linearly.
func (r *ParticleRenderer) GetScaledParticleSize(i int) float32 {
	massScale := float32(math.Cbrt(r.store.M[i]))
	return r.particleSize * massScale
}

// SetCamera sets the camera for culling
func (r *ParticleRenderer) SetCamera(camera *Camera) {
	r.camera = camera
	r.updateVisibleIndices()
}

// EnableCulling enables or disables frustum culling
func (r *ParticleRenderer) EnableCulling(enable bool) {
	r.cullingEnabled = enable
	r.updateVisibleIndices()
}

// GetVisibleParticleCount returns the number of visible particles
func (r *ParticleRenderer) GetVisibleParticleCount() int {
	return len(r.visibleIndices)
}

// Recull recomputes the visible set against the camera's current
// position. Callers that move the camera every frame (an orbit
// controller, say) must call this before reading visibility each
// frame — SetCamera/EnableCulling only capture a snapshot.
func (r *ParticleRenderer) Recull() {
	r.updateVisibleIndices()
}

func (r *ParticleRenderer) position(i int) physics.Vec3 {
	return physics.NewVec3(r.store.X[i], r.store.Y[i], r.store.Z[i])
}

// updateVisibleIndices recomputes which store indices pass the
// camera's frustum test.
func (r *ParticleRenderer) updateVisibleIndices() {
	if r.store == nil {
		r.visibleIndices = nil
		return
	}

	n := r.store.Len()
	if !r.cullingEnabled || r.camera == nil {
		r.visibleIndices = make([]int, n)
		for i := range r.visibleIndices {
			r.visibleIndices[i] = i
		}
		return
	}

	visible := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if r.camera.IsPointInFrustum(r.position(i)) {
			visible = append(visible, i)
		}
	}
	r.visibleIndices = visible
}

// SetRenderMode sets the rendering mode
func (r *ParticleRenderer) SetRenderMode(mode RenderMode) {
	r.renderMode = mode
}

// GetRenderMode returns the current rendering mode
func (r *ParticleRenderer) GetRenderMode() RenderMode {
	return r.renderMode
}

// Render renders all particles
func (r *ParticleRenderer) Render() error {
	if r.camera == nil {
		return errors.New("camera not set")
	}

	// In a real implementation, this would:
	// 1. Bind shaders
	// 2. Set uniforms (view, projection matrices)
	// 3. Upload particle data to GPU
	// 4. Draw particles based on render mode

	// For now, this is a no-op
	return nil
}

// RenderBatch renders a batch of particles
func (r *ParticleRenderer) RenderBatch(batchIndex int) error {
	batchInfo := r.GetBatchInfo()
	if batchIndex >= batchInfo.TotalBatches {
		return errors.New("batch index out of range")
	}

	// In a real implementation, render store indices
	// [batchIndex*maxBatchSize : min((batchIndex+1)*maxBatchSize, n)]
	return nil
}

// Cleanup releases renderer resources
func (r *ParticleRenderer) Cleanup() error {
	r.store = nil
	r.visibleIndices = nil
	return nil
}

// GetVisibleIndices returns the store indices that passed culling, in
// store order.
func (r *ParticleRenderer) GetVisibleIndices() []int {
	return r.visibleIndices
}

// SetMaxBatchSize sets the maximum batch size
func (r *ParticleRenderer) SetMaxBatchSize(size int) {
	if size > 0 {
		r.maxBatchSize = size
	}
}
