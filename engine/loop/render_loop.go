package loop

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
)

// SceneSource returns the scene to draw on the current frame.
type SceneSource func() *scene.Scene

// RenderLoop starts recurring draw cycles on a FrameScheduler.
type RenderLoop struct {
	scheduler FrameScheduler
	logger    *log.Logger
	profiler  *profiler.Profiler
}

// NewRenderLoop creates a render loop bound to a scheduler.
//
// Parameters:
//   - scheduler: the frame scheduler that provides the display cadence
//   - options: functional options to configure the loop
//
// Returns:
//   - *RenderLoop: the render loop
func NewRenderLoop(scheduler FrameScheduler, options ...RenderLoopBuilderOption) *RenderLoop {
	l := &RenderLoop{
		scheduler: scheduler,
		logger:    log.Default(),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Start schedules the first frame and returns the handle that controls the cycle.
// Each frame advances the controller, updates the camera and draws the source's
// current scene once, then requests the next frame unless the handle was cancelled.
//
// Parameters:
//   - source: supplies the scene for each frame
//   - controller: the orbit controller advanced once per frame
//   - cam: the camera drawn through
//   - surface: the draw target
//
// Returns:
//   - *LoopHandle: the live handle
func (l *RenderLoop) Start(source SceneSource, controller camera.OrbitController, cam camera.Camera, surface viewport.Surface) *LoopHandle {
	h := &LoopHandle{
		mu:         &sync.Mutex{},
		loop:       l,
		source:     source,
		controller: controller,
		camera:     cam,
		surface:    surface,
		done:       make(chan struct{}),
	}
	h.mu.Lock()
	h.id = l.scheduler.RequestFrame(h.frame)
	h.mu.Unlock()
	return h
}

// LoopHandle is the cancellable token for one running render cycle.
type LoopHandle struct {
	mu   *sync.Mutex
	once sync.Once
	loop *RenderLoop

	source     SceneSource
	controller camera.OrbitController
	camera     camera.Camera
	surface    viewport.Surface

	id        FrameID
	cancelled bool
	frames    uint64
	done      chan struct{}
}

func (h *LoopHandle) frame(now time.Time) {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.controller.Advance()
	h.camera.Update()

	start := time.Now()
	if err := h.surface.Draw(h.source(), h.camera); err != nil {
		h.loop.logger.Printf("[loop] draw failed: %v", err)
	}
	if h.loop.profiler != nil {
		h.loop.profiler.Tick(time.Since(start))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames++
	if !h.cancelled {
		h.id = h.loop.scheduler.RequestFrame(h.frame)
	}
}

// Cancel stops the cycle. The pending frame is deregistered; a frame already
// running completes its draw but does not reschedule. Safe to call repeatedly.
func (h *LoopHandle) Cancel() {
	h.once.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.cancelled = true
		h.loop.scheduler.CancelFrame(h.id)
		close(h.done)
	})
}

// Live reports whether the handle has not been cancelled.
func (h *LoopHandle) Live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.cancelled
}

// Frames returns the number of frames drawn so far.
func (h *LoopHandle) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Done is closed when the handle is cancelled.
func (h *LoopHandle) Done() <-chan struct{} {
	return h.done
}
