package viewport

import (
	"errors"
	"fmt"
)

var (
	// ErrSurfaceAcquisition matches every *SurfaceAcquisitionError via errors.Is.
	ErrSurfaceAcquisition = errors.New("surface acquisition failed")

	// ErrSurfaceReleased is returned when drawing to or resizing a released surface.
	ErrSurfaceReleased = errors.New("surface already released")

	// ErrForeignSurface is returned when a host is handed a surface it did not create.
	ErrForeignSurface = errors.New("surface does not belong to this host")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("invalid surface size")
)

// SurfaceAcquisitionError reports that no drawable context could be obtained
// for a container. It is fatal for activation and never retried.
type SurfaceAcquisitionError struct {
	// Backend names the host that failed, e.g. "wgpu" or "software".
	Backend string

	// Err is the underlying cause.
	Err error
}

// NewSurfaceAcquisitionError wraps a backend failure.
//
// Parameters:
//   - backend: name of the failing host
//   - err: the underlying cause
//
// Returns:
//   - *SurfaceAcquisitionError: the wrapped error
func NewSurfaceAcquisitionError(backend string, err error) *SurfaceAcquisitionError {
	return &SurfaceAcquisitionError{Backend: backend, Err: err}
}

func (e *SurfaceAcquisitionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Backend, ErrSurfaceAcquisition)
	}
	return fmt.Sprintf("%s: %v: %v", e.Backend, ErrSurfaceAcquisition, e.Err)
}

func (e *SurfaceAcquisitionError) Unwrap() error {
	return e.Err
}

// Is reports ErrSurfaceAcquisition as a match so callers need not type-assert.
func (e *SurfaceAcquisitionError) Is(target error) bool {
	return target == ErrSurfaceAcquisition
}
