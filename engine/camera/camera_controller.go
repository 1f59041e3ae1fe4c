package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraState is a snapshot of the orbit parameters around the target.
type CameraState struct {
	// Target is the fixed look-at point the camera orbits.
	Target mgl32.Vec3

	// Distance is the orbit radius, always within [MinDistance, MaxDistance].
	Distance float32

	// Azimuth is the horizontal angle around the Y axis in radians (0 = +Z).
	Azimuth float32

	// Polar is the angle from the +Y axis in radians, within [MinPolar, MaxPolar].
	Polar float32

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32
}

// Transform is the camera placement emitted by the controller each frame.
type Transform struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// OrbitController translates pointer drag and scroll input into damped
// spherical camera motion around a fixed target. Input only accumulates
// pending motion; Advance applies it one frame at a time.
type OrbitController interface {
	// Rotate accumulates a pointer drag. Horizontal motion orbits around the Y
	// axis and vertical motion tilts toward or away from the poles. A full
	// viewport height of drag corresponds to one full turn at unit rotate speed.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the last event
	Rotate(dx, dy float32)

	// Zoom accumulates a scroll step. Positive delta zooms in (closer to target).
	// The change is applied on the next Advance and clamped to the distance bounds.
	//
	// Parameters:
	//   - delta: scroll amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Advance applies one frame of damped motion and returns the resulting transform.
	// With no pending input it returns the same transform as the previous call.
	//
	// Returns:
	//   - Transform: the camera placement for this frame
	Advance() Transform

	// Transform returns the current camera placement without advancing.
	//
	// Returns:
	//   - Transform: the camera placement
	Transform() Transform

	// State returns a snapshot of the orbit parameters.
	//
	// Returns:
	//   - CameraState: the current orbit state
	State() CameraState

	// Pending reports whether rotation or zoom input is still being applied.
	//
	// Returns:
	//   - bool: true while Advance would change the transform
	Pending() bool

	// SetViewportHeight sets the pixel height used to convert drag distance to angles.
	// Non-positive heights are ignored.
	//
	// Parameters:
	//   - height: viewport height in pixels
	SetViewportHeight(height int)

	// DampingFactor returns the fraction of pending motion applied per frame.
	//
	// Returns:
	//   - float32: damping factor in [0, 1], 0 meaning damping is disabled
	DampingFactor() float32

	// RotateSpeed returns the drag rotation multiplier.
	//
	// Returns:
	//   - float32: multiplier for drag input
	RotateSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for scroll input
	ZoomSpeed() float32
}
