// Package engine ties the scene, camera, render loop and viewport host into a
// single mountable pose viewer.
package engine

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/loop"
	"github.com/Carmen-Shannon/oxy-pose/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pose/engine/renderer/software"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
)

// State is a Viewport lifecycle state.
type State int

const (
	StateUnmounted State = iota
	StateInitializing
	StateRunning
	StateTearingDown
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTearingDown:
		return "tearing down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadyActive is returned when Activate is called on a mounted Viewport.
var ErrAlreadyActive = errors.New("viewport is already active")

// Viewport owns one mounted pose viewer: the surface it draws into, the scene
// for the current pose, the orbit camera and the scheduled render loop.
//
// All of these are created by Activate and released together by Deactivate.
// Methods are safe to call from any goroutine; frame work itself runs on
// whichever goroutine ticks the scheduler.
type Viewport struct {
	mu *sync.Mutex

	host       viewport.Host
	scheduler  loop.FrameScheduler
	loop       *loop.RenderLoop
	logger     *log.Logger
	build      scene.Builder
	profiling  bool
	controller []camera.OrbitControllerOption
	camera     []camera.CameraBuilderOption

	state   State
	poseKey scene.PoseKey
	builds  int

	surface viewport.Surface
	scene   *scene.Scene
	orbit   camera.OrbitController
	cam     camera.Camera
	handle  *loop.LoopHandle
}

// NewViewport creates an unmounted Viewport. Without options it renders through
// the software host on its own scheduler.
//
// Parameters:
//   - options: functional options to configure the viewport
//
// Returns:
//   - *Viewport: the unmounted viewport
func NewViewport(options ...ViewportBuilderOption) *Viewport {
	v := &Viewport{
		mu:     &sync.Mutex{},
		logger: log.Default(),
		build:  scene.Build,
		state:  StateUnmounted,
	}
	for _, option := range options {
		option(v)
	}
	if v.host == nil {
		v.host = software.NewHost(software.WithLogger(v.logger))
	}
	if v.scheduler == nil {
		v.scheduler = loop.NewScheduler()
	}

	loopOptions := []loop.RenderLoopBuilderOption{loop.WithLogger(v.logger)}
	if v.profiling {
		loopOptions = append(loopOptions, loop.WithProfiler(profiler.NewProfiler(profiler.WithLogger(v.logger))))
	}
	v.loop = loop.NewRenderLoop(v.scheduler, loopOptions...)
	return v
}

// Activate creates a Viewport and mounts it on container.
//
// Parameters:
//   - container: the drawable area to mount on
//   - poseKey: the initial pose, unknown keys fall back to the default pose
//   - options: functional options to configure the viewport
//
// Returns:
//   - *Viewport: the running viewport
//   - error: a *viewport.SurfaceAcquisitionError when no surface could be acquired
func Activate(container viewport.Container, poseKey string, options ...ViewportBuilderOption) (*Viewport, error) {
	v := NewViewport(options...)
	if err := v.Activate(container, poseKey); err != nil {
		return nil, err
	}
	return v, nil
}

// Activate acquires a surface on container, builds the scene for poseKey,
// creates the orbit camera and starts the render loop. On failure the
// viewport stays unmounted and nothing is left allocated.
//
// Parameters:
//   - container: the drawable area to mount on
//   - poseKey: the initial pose, unknown keys fall back to the default pose
//
// Returns:
//   - error: ErrAlreadyActive, or the host's acquisition error
func (v *Viewport) Activate(container viewport.Container, poseKey string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateUnmounted {
		return fmt.Errorf("%w: %s", ErrAlreadyActive, v.state)
	}
	v.state = StateInitializing

	surface, err := v.host.Acquire(container)
	if err != nil {
		v.state = StateUnmounted
		return fmt.Errorf("activate viewport: %w", err)
	}
	v.surface = surface

	v.poseKey = v.resolve(poseKey)
	v.scene = v.build(v.poseKey)
	v.builds++

	width, height := surface.Size()
	v.orbit = camera.NewOrbitController(slices.Concat(v.controller,
		[]camera.OrbitControllerOption{camera.WithViewportHeight(height)},
	)...)
	v.cam = camera.NewCamera(slices.Concat(v.camera, []camera.CameraBuilderOption{
		camera.WithAspect(viewport.Aspect(width, height)),
		camera.WithController(v.orbit),
	})...)
	v.cam.Update()

	if v.handle != nil {
		v.handle.Cancel()
	}
	v.handle = v.loop.Start(v.currentScene, v.orbit, v.cam, surface)

	v.state = StateRunning
	v.logger.Printf("[viewport] running pose=%s size=%dx%d", v.poseKey, width, height)
	return nil
}

// SetPoseKey replaces the scene with one built for poseKey. The surface, the
// camera and the render loop are left as they are. Ignored unless running.
//
// Parameters:
//   - poseKey: the new pose, unknown keys fall back to the default pose
func (v *Viewport) SetPoseKey(poseKey string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateRunning {
		v.logger.Printf("[viewport] pose change ignored while %s", v.state)
		return
	}
	v.poseKey = v.resolve(poseKey)
	v.scene = v.build(v.poseKey)
	v.builds++
}

// NotifyResize resizes the surface in place and updates the camera aspect
// ratio and drag sensitivity to match. Ignored unless running, and for sizes
// with a zero or negative dimension.
//
// Parameters:
//   - width: new container width in pixels
//   - height: new container height in pixels
func (v *Viewport) NotifyResize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateRunning {
		v.logger.Printf("[viewport] resize to %dx%d ignored while %s", width, height, v.state)
		return
	}
	if width <= 0 || height <= 0 {
		v.logger.Printf("[viewport] resize to %dx%d ignored", width, height)
		return
	}
	if err := v.host.Resize(v.surface, width, height); err != nil {
		v.logger.Printf("[viewport] resize failed: %v", err)
		return
	}
	v.cam.SetAspect(viewport.Aspect(width, height))
	v.orbit.SetViewportHeight(height)
}

// Deactivate cancels the render loop, releases the surface and drops the
// scene and camera. Failures are logged and teardown continues. Calling it on
// an unmounted viewport does nothing.
func (v *Viewport) Deactivate() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == StateUnmounted {
		return
	}
	v.state = StateTearingDown

	if v.handle != nil {
		v.handle.Cancel()
		v.handle = nil
	}
	if v.surface != nil {
		if err := v.host.Release(v.surface); err != nil {
			v.logger.Printf("[viewport] release surface: %v", err)
		}
		v.surface = nil
	}
	v.scene = nil
	v.cam = nil
	v.orbit = nil

	v.state = StateUnmounted
	v.logger.Printf("[viewport] deactivated")
}

// Drag feeds a pointer drag delta in pixels to the orbit controller.
func (v *Viewport) Drag(dx, dy float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == StateRunning {
		v.orbit.Rotate(dx, dy)
	}
}

// Scroll feeds a scroll step to the orbit controller. Positive values zoom in.
func (v *Viewport) Scroll(delta float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == StateRunning {
		v.orbit.Zoom(delta)
	}
}

// resolve parses a host pose key, logging unknown keys.
// Caller must hold the mutex.
func (v *Viewport) resolve(raw string) scene.PoseKey {
	key, err := scene.ParsePoseKey(raw)
	if err != nil {
		v.logger.Printf("[viewport] %v", err)
	}
	return key
}

// currentScene is the render loop's scene source.
func (v *Viewport) currentScene() *scene.Scene {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scene
}

// State returns the lifecycle state.
func (v *Viewport) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// PoseKey returns the resolved pose of the current scene.
func (v *Viewport) PoseKey() scene.PoseKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.poseKey
}

// Scene returns the current scene, nil when unmounted.
func (v *Viewport) Scene() *scene.Scene {
	return v.currentScene()
}

// SceneBuilds returns how many scenes have been built over the viewport's lifetime.
func (v *Viewport) SceneBuilds() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.builds
}

// Surface returns the acquired surface, nil when unmounted.
func (v *Viewport) Surface() viewport.Surface {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.surface
}

// Camera returns the camera, nil when unmounted.
func (v *Viewport) Camera() camera.Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cam
}

// Controller returns the orbit controller, nil when unmounted.
func (v *Viewport) Controller() camera.OrbitController {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.orbit
}

// Handle returns the live loop handle, nil when unmounted.
func (v *Viewport) Handle() *loop.LoopHandle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.handle
}

// LiveHandles returns the number of render loops this viewport has running.
func (v *Viewport) LiveHandles() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.handle != nil && v.handle.Live() {
		return 1
	}
	return 0
}
