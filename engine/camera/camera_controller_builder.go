package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithDistance sets the initial orbit radius (distance from target).
//
// Parameters:
//   - distance: distance from the orbit target
//
// Returns:
//   - OrbitControllerOption: functional option to set the distance
func WithDistance(distance float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.state.Distance = distance
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - OrbitControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.state.Azimuth = azimuth
	}
}

// WithPolarAngle sets the initial angle from the +Y axis.
//
// Parameters:
//   - polar: angle in radians (pi/2 = level with the target)
//
// Returns:
//   - OrbitControllerOption: functional option to set the polar angle
func WithPolarAngle(polar float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.state.Polar = polar
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.state.Target = mgl32.Vec3{x, y, z}
	}
}

// WithDistanceBounds sets the minimum and maximum orbit radius.
// Bounds given in the wrong order are swapped.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if min > max {
			min, max = max, min
		}
		oc.state.MinDistance = min
		oc.state.MaxDistance = max
	}
}

// WithPolarBounds sets the minimum and maximum polar angles.
// Values are further restricted to stay clear of the poles.
//
// Parameters:
//   - min: smallest angle from +Y in radians (limits looking down)
//   - max: largest angle from +Y in radians (limits looking up)
//
// Returns:
//   - OrbitControllerOption: functional option to set polar bounds
func WithPolarBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.state.MinPolar = min
		oc.state.MaxPolar = max
	}
}

// WithDampingFactor sets the fraction of pending motion applied each frame.
// Zero disables damping so input is applied in full on the next Advance.
//
// Parameters:
//   - factor: damping factor, clamped to [0, 1]
//
// Returns:
//   - OrbitControllerOption: functional option to set the damping factor
func WithDampingFactor(factor float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.damping = mgl32.Clamp(factor, 0, 1)
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
//
// Parameters:
//   - speed: multiplier for drag input
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for scroll input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithViewportHeight sets the initial pixel height used to scale drag input.
//
// Parameters:
//   - height: viewport height in pixels
//
// Returns:
//   - OrbitControllerOption: functional option to set the viewport height
func WithViewportHeight(height int) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if height > 0 {
			oc.viewportHeight = float32(height)
		}
	}
}
