package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// polarEpsilon keeps the camera off the poles, where the view's up vector degenerates.
	polarEpsilon = 1e-3

	// settleEpsilon is the residual below which pending motion is dropped.
	settleEpsilon = 1e-6

	// zoomBase is the distance scale applied per unit of zoom input.
	zoomBase = 0.95

	// Accumulated zoom is bounded so a burst of scroll events cannot
	// underflow to zero or overflow to infinity before the next frame.
	minPendingScale = 1e-6
	maxPendingScale = 1e6
)

// orbitControllerImpl is the single implementation of OrbitController.
type orbitControllerImpl struct {
	mu *sync.Mutex

	state CameraState

	// Motion accumulated from input and not yet applied.
	pendingAzimuth float32
	pendingPolar   float32
	pendingScale   float32

	damping        float32
	rotateSpeed    float32
	zoomSpeed      float32
	viewportHeight float32
}

// Compile-time interface compliance check
var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller positioned on +Z looking at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu: &sync.Mutex{},
		state: CameraState{
			Distance:    5,
			Azimuth:     0,
			Polar:       math.Pi / 2,
			MinDistance: 2,
			MaxDistance: 15,
			MinPolar:    0,
			MaxPolar:    math.Pi,
		},
		pendingScale:   1,
		damping:        0.05,
		rotateSpeed:    1,
		zoomSpeed:      1,
		viewportHeight: 720,
	}

	for _, option := range options {
		option(oc)
	}

	oc.state.MinPolar = max(oc.state.MinPolar, polarEpsilon)
	oc.state.MaxPolar = min(oc.state.MaxPolar, math.Pi-polarEpsilon)
	oc.clamp()
	return oc
}

// clamp restricts distance and polar angle to their bounds.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) clamp() {
	oc.state.Distance = mgl32.Clamp(oc.state.Distance, oc.state.MinDistance, oc.state.MaxDistance)
	oc.state.Polar = mgl32.Clamp(oc.state.Polar, oc.state.MinPolar, oc.state.MaxPolar)
}

// transform computes the camera placement from the orbit state.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) transform() Transform {
	offset := common.Spherical(oc.state.Distance, oc.state.Azimuth, oc.state.Polar)
	return Transform{
		Position: oc.state.Target.Add(offset),
		Target:   oc.state.Target,
		Up:       mgl32.Vec3{0, 1, 0},
	}
}

func (oc *orbitControllerImpl) Rotate(dx, dy float32) {
	if !finite(dx) || !finite(dy) {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	perPixel := 2 * math.Pi / oc.viewportHeight * oc.rotateSpeed
	oc.pendingAzimuth -= dx * perPixel
	oc.pendingPolar -= dy * perPixel
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	if !finite(delta) {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	scale := oc.pendingScale * float32(math.Pow(zoomBase, float64(delta*oc.zoomSpeed)))
	oc.pendingScale = mgl32.Clamp(scale, minPendingScale, maxPendingScale)
}

func (oc *orbitControllerImpl) Advance() Transform {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.damping > 0 {
		oc.state.Azimuth += oc.pendingAzimuth * oc.damping
		oc.state.Polar += oc.pendingPolar * oc.damping
		oc.pendingAzimuth = settle(oc.pendingAzimuth * (1 - oc.damping))
		oc.pendingPolar = settle(oc.pendingPolar * (1 - oc.damping))
	} else {
		oc.state.Azimuth += oc.pendingAzimuth
		oc.state.Polar += oc.pendingPolar
		oc.pendingAzimuth, oc.pendingPolar = 0, 0
	}

	oc.state.Distance *= oc.pendingScale
	oc.pendingScale = 1

	oc.clamp()
	return oc.transform()
}

func (oc *orbitControllerImpl) Transform() Transform {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.transform()
}

func (oc *orbitControllerImpl) State() CameraState {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.state
}

func (oc *orbitControllerImpl) Pending() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.pendingAzimuth != 0 || oc.pendingPolar != 0 || oc.pendingScale != 1
}

func (oc *orbitControllerImpl) SetViewportHeight(height int) {
	if height <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.viewportHeight = float32(height)
}

func (oc *orbitControllerImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.damping
}

func (oc *orbitControllerImpl) RotateSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.rotateSpeed
}

func (oc *orbitControllerImpl) ZoomSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomSpeed
}

// settle drops residual motion too small to be visible.
func settle(v float32) float32 {
	if v > -settleEpsilon && v < settleEpsilon {
		return 0
	}
	return v
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
