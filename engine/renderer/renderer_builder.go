package renderer

import "log"

// HostBuilderOption is a functional option applied to a Host during construction via NewHost.
type HostBuilderOption func(*Host)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - HostBuilderOption: a function that applies the present mode option to a Host
func WithPresentMode(mode PresentMode) HostBuilderOption {
	return func(h *Host) {
		h.presentMode = mode
	}
}

// WithMSAA sets the multisample count used to smooth polygon edges.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - HostBuilderOption: a function that applies the MSAA option to a Host
func WithMSAA(count MSAASampleCount) HostBuilderOption {
	return func(h *Host) {
		h.sampleCount = count
	}
}

// WithForceSoftwareAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - HostBuilderOption: a function that applies the option to a Host
func WithForceSoftwareAdapter(force bool) HostBuilderOption {
	return func(h *Host) {
		h.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger used for device and surface diagnostics.
//
// Parameters:
//   - logger: the destination logger, ignored when nil
//
// Returns:
//   - HostBuilderOption: a function that applies the logger option to a Host
func WithLogger(logger *log.Logger) HostBuilderOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}
