// Package viewport defines the contract between the pose engine and the backend
// that owns a drawable surface: a host hands out surfaces sized to a container,
// resizes them in place and releases them.
package viewport

import (
	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
)

// Container is the host-provided area a surface is sized to, such as a window
// or an offscreen canvas.
type Container interface {
	// Size returns the drawable area in pixels.
	//
	// Returns:
	//   - width, height: current pixel dimensions
	Size() (width, height int)
}

// Surface is a drawable target plus its rendering context. Surfaces are created,
// resized and released only through the Host that produced them.
type Surface interface {
	// Size returns the current pixel dimensions of the drawable target.
	//
	// Returns:
	//   - width, height: pixel dimensions
	Size() (width, height int)

	// Draw renders one frame of the scene as seen by the camera.
	//
	// Parameters:
	//   - s: the scene to render
	//   - cam: the camera providing view and projection
	//
	// Returns:
	//   - error: ErrSurfaceReleased after release, or a backend failure
	Draw(s *scene.Scene, cam camera.Camera) error
}

// Host owns the lifecycle of surfaces for one rendering backend.
type Host interface {
	// Acquire creates a surface sized to the container.
	//
	// Parameters:
	//   - c: the container to draw into
	//
	// Returns:
	//   - Surface: the new surface
	//   - error: a *SurfaceAcquisitionError when no drawable context is available
	Acquire(c Container) (Surface, error)

	// Resize updates a surface's dimensions in place.
	//
	// Parameters:
	//   - s: a surface previously returned by Acquire
	//   - width, height: new pixel dimensions, both positive
	//
	// Returns:
	//   - error: ErrInvalidSize, ErrSurfaceReleased or ErrForeignSurface
	Resize(s Surface, width, height int) error

	// Release destroys a surface and its context. Releasing an already released
	// surface is a no-op.
	//
	// Parameters:
	//   - s: a surface previously returned by Acquire
	//
	// Returns:
	//   - error: ErrForeignSurface, or a backend failure during teardown
	Release(s Surface) error
}

// StaticContainer is a Container with fixed dimensions, used for headless
// rendering and tests.
type StaticContainer struct {
	Width  int
	Height int
}

var _ Container = &StaticContainer{}

// NewStaticContainer creates a fixed-size container.
//
// Parameters:
//   - width, height: pixel dimensions
//
// Returns:
//   - *StaticContainer: the container
func NewStaticContainer(width, height int) *StaticContainer {
	return &StaticContainer{Width: width, Height: height}
}

func (c *StaticContainer) Size() (int, int) {
	return c.Width, c.Height
}

// Aspect returns width / height, or 1 when either dimension is not positive.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
