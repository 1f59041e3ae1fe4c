package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// wgpu maps the mode to its WebGPU equivalent.
func (m PresentMode) wgpu() wgpu.PresentMode {
	switch m {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	default:
		return wgpu.PresentModeFifo
	}
}

// MSAASampleCount is the number of samples per pixel rendered before the
// color attachment is resolved onto the swapchain.
type MSAASampleCount uint32

const (
	// MSAAOff renders one sample per pixel straight into the swapchain.
	MSAAOff MSAASampleCount = 1

	// MSAA4x renders four samples per pixel. Every WebGPU adapter supports it
	// for renderable formats.
	MSAA4x MSAASampleCount = 4
)

// samples returns the texture sample count. Counts other than 4 fall back to 1,
// the only other value WebGPU guarantees.
func (c MSAASampleCount) samples() uint32 {
	if c == MSAA4x {
		return 4
	}
	return 1
}

// SurfaceProvider is a viewport container backed by a native window that
// WebGPU can present to.
type SurfaceProvider interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)

	// SurfaceDescriptor returns a platform-specific descriptor for creating a WebGPU surface,
	// or nil if the native window is not available.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}
