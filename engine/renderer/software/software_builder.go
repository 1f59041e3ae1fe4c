package software

import "log"

// HostBuilderOption is a functional option for configuring a software Host.
type HostBuilderOption func(*Host)

// WithLogger sets the logger used for surface lifecycle messages.
//
// Parameters:
//   - logger: the destination logger, ignored when nil
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithLogger(logger *log.Logger) HostBuilderOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMaxSize caps the surface dimensions a container may request.
//
// Parameters:
//   - width, height: maximum pixel dimensions
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithMaxSize(width, height int) HostBuilderOption {
	return func(h *Host) {
		h.maxWidth = width
		h.maxHeight = height
	}
}

// WithBackfaceCulling toggles rejection of triangles facing away from the camera.
//
// Parameters:
//   - enabled: true to cull back faces
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithBackfaceCulling(enabled bool) HostBuilderOption {
	return func(h *Host) {
		h.backfaceCulling = enabled
	}
}
