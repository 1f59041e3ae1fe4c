package engine

import (
	"log"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/loop"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
)

// ViewportBuilderOption is a functional option for configuring a Viewport.
// Use the With* functions to create options that are applied directly to the viewport instance.
type ViewportBuilderOption func(*Viewport)

// WithHost sets the backend that acquires and releases surfaces.
//
// Parameters:
//   - h: the viewport host, e.g. a renderer.Host for a native window
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithHost(h viewport.Host) ViewportBuilderOption {
	return func(v *Viewport) {
		v.host = h
	}
}

// WithScheduler sets the frame scheduler that paces the render loop. The
// caller is responsible for driving it, e.g. by calling Tick from the window
// message loop.
//
// Parameters:
//   - s: the frame scheduler
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithScheduler(s loop.FrameScheduler) ViewportBuilderOption {
	return func(v *Viewport) {
		v.scheduler = s
	}
}

// WithLogger sets the logger for lifecycle diagnostics. It is also handed to
// the default host and the render loop.
//
// Parameters:
//   - logger: destination logger, ignored when nil
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithLogger(logger *log.Logger) ViewportBuilderOption {
	return func(v *Viewport) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithSceneBuilder replaces the function that turns a pose key into a scene.
//
// Parameters:
//   - b: the scene builder, ignored when nil
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithSceneBuilder(b scene.Builder) ViewportBuilderOption {
	return func(v *Viewport) {
		if b != nil {
			v.build = b
		}
	}
}

// WithControllerOptions appends options for the orbit controller created on activation.
func WithControllerOptions(options ...camera.OrbitControllerOption) ViewportBuilderOption {
	return func(v *Viewport) {
		v.controller = append(v.controller, options...)
	}
}

// WithCameraOptions appends options for the camera created on activation.
// The aspect ratio and controller are always set from the surface.
func WithCameraOptions(options ...camera.CameraBuilderOption) ViewportBuilderOption {
	return func(v *Viewport) {
		v.camera = append(v.camera, options...)
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, the render loop logs frame statistics once per second
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithProfiling(enabled bool) ViewportBuilderOption {
	return func(v *Viewport) {
		v.profiling = enabled
	}
}
