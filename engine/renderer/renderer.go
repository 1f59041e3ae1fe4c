// Package renderer implements the WebGPU viewport host used for on-screen rendering.
package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/engine/model"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/cogentcore/webgpu/wgpu"
)

// BackendName identifies this host in errors and logs.
const BackendName = "wgpu"

var (
	// ErrNoNativeSurface is wrapped in the acquisition error when the container
	// does not expose a native window.
	ErrNoNativeSurface = errors.New("container does not provide a native surface")
)

// Host creates WebGPU surfaces for native windows. Each surface owns its own
// instance, adapter and device, so surfaces are fully independent.
type Host struct {
	mu       *sync.Mutex
	logger   *log.Logger
	surfaces map[*Surface]struct{}
	meshes   *model.Cache

	presentMode          PresentMode
	sampleCount          MSAASampleCount
	forceFallbackAdapter bool
}

var _ viewport.Host = &Host{}

// NewHost creates a WebGPU host.
//
// Parameters:
//   - options: functional options to configure the host
//
// Returns:
//   - *Host: the host
func NewHost(options ...HostBuilderOption) *Host {
	h := &Host{
		mu:          &sync.Mutex{},
		logger:      log.Default(),
		surfaces:    make(map[*Surface]struct{}),
		meshes:      model.NewCache(),
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *Host) Acquire(c viewport.Container) (viewport.Surface, error) {
	sp, ok := c.(SurfaceProvider)
	if !ok || sp == nil {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName, ErrNoNativeSurface)
	}
	desc := sp.SurfaceDescriptor()
	if desc == nil {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName, ErrNoNativeSurface)
	}
	width, height := sp.Size()
	if width <= 0 || height <= 0 {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName,
			fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, width, height))
	}

	s, err := h.createSurface(desc, width, height)
	if err != nil {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName, err)
	}

	h.mu.Lock()
	h.surfaces[s] = struct{}{}
	h.mu.Unlock()

	h.logger.Printf("[wgpu] acquired %dx%d surface (%v, %dx MSAA)", width, height, s.format, s.sampleCount)
	return s, nil
}

// createSurface builds the full GPU context for one window. The native layer
// panics on some driver failures; those are reported as errors instead.
func (h *Host) createSurface(desc *wgpu.SurfaceDescriptor, width, height int) (_ *Surface, err error) {
	runtime.LockOSThread()

	s := &Surface{
		mu:          &sync.Mutex{},
		host:        h,
		presentMode: h.presentMode.wgpu(),
		sampleCount: h.sampleCount.samples(),
		meshes:      make(map[meshKey]*gpuMesh),
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gpu initialization panicked: %v", r)
		}
		if err != nil {
			s.destroy()
		}
	}()

	s.instance = wgpu.CreateInstance(nil)
	s.surface = s.instance.CreateSurface(desc)
	if s.surface == nil {
		return nil, errors.New("create surface returned nil")
	}

	s.adapter, err = s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: h.forceFallbackAdapter,
		CompatibleSurface:    s.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	s.device, err = s.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Pose Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	s.queue = s.device.GetQueue()

	capabilities := s.surface.GetCapabilities(s.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return nil, errors.New("surface reports no supported formats")
	}
	s.format = capabilities.Formats[0]
	s.alphaMode = capabilities.AlphaModes[0]

	if err := s.configure(width, height); err != nil {
		return nil, err
	}
	if err := s.createPipeline(); err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	return s, nil
}

func (h *Host) Resize(vs viewport.Surface, width, height int) error {
	s, err := h.own(vs)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, width, height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return viewport.ErrSurfaceReleased
	}
	if s.width == width && s.height == height {
		return nil
	}
	return s.configure(width, height)
}

func (h *Host) Release(vs viewport.Surface) error {
	s, err := h.own(vs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return nil
	}
	s.released = true
	s.destroy()
	s.mu.Unlock()

	h.mu.Lock()
	delete(h.surfaces, s)
	h.mu.Unlock()

	h.logger.Printf("[wgpu] released surface")
	return nil
}

// Live returns the number of surfaces acquired and not yet released.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

func (h *Host) own(vs viewport.Surface) (*Surface, error) {
	s, ok := vs.(*Surface)
	if !ok || s == nil || s.host != h {
		return nil, viewport.ErrForeignSurface
	}
	return s, nil
}
