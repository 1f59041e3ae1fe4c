// Package software implements a headless viewport host that rasterizes scenes
// on the CPU into an in-memory RGBA image.
package software

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/engine/model"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
)

// BackendName identifies this host in errors and logs.
const BackendName = "software"

// Host hands out CPU-backed surfaces. All surfaces from one host share a mesh cache.
type Host struct {
	mu       *sync.Mutex
	logger   *log.Logger
	meshes   *model.Cache
	surfaces map[*Surface]struct{}

	maxWidth        int
	maxHeight       int
	backfaceCulling bool
}

var _ viewport.Host = &Host{}

// NewHost creates a software host.
//
// Parameters:
//   - options: functional options to configure the host
//
// Returns:
//   - *Host: the host
func NewHost(options ...HostBuilderOption) *Host {
	h := &Host{
		mu:              &sync.Mutex{},
		logger:          log.Default(),
		meshes:          model.NewCache(),
		surfaces:        make(map[*Surface]struct{}),
		maxWidth:        8192,
		maxHeight:       8192,
		backfaceCulling: true,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *Host) Acquire(c viewport.Container) (viewport.Surface, error) {
	if c == nil {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName, errors.New("nil container"))
	}
	width, height := c.Size()
	if err := h.checkSize(width, height); err != nil {
		return nil, viewport.NewSurfaceAcquisitionError(BackendName, err)
	}

	s := &Surface{
		mu:   &sync.Mutex{},
		host: h,
	}
	s.allocate(width, height)

	h.mu.Lock()
	h.surfaces[s] = struct{}{}
	h.mu.Unlock()

	h.logger.Printf("[software] acquired %dx%d surface", width, height)
	return s, nil
}

func (h *Host) Resize(vs viewport.Surface, width, height int) error {
	s, err := h.own(vs)
	if err != nil {
		return err
	}
	if err := h.checkSize(width, height); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return viewport.ErrSurfaceReleased
	}
	if s.width == width && s.height == height {
		return nil
	}
	s.allocate(width, height)
	return nil
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
	s.color = nil
	s.depth = nil
	s.mu.Unlock()

	h.mu.Lock()
	delete(h.surfaces, s)
	h.mu.Unlock()

	h.logger.Printf("[software] released surface")
	return nil
}

// Live returns the number of surfaces acquired and not yet released.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

// own checks that a surface was created by this host.
func (h *Host) own(vs viewport.Surface) (*Surface, error) {
	s, ok := vs.(*Surface)
	if !ok || s == nil || s.host != h {
		return nil, viewport.ErrForeignSurface
	}
	return s, nil
}

func (h *Host) checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > h.maxWidth || height > h.maxHeight {
		return fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, width, height)
	}
	return nil
}

// Surface is a CPU color and depth buffer pair.
type Surface struct {
	mu   *sync.Mutex
	host *Host

	width    int
	height   int
	color    *image.RGBA
	depth    []float32
	released bool

	stats Stats
}

var _ viewport.Surface = &Surface{}

// Stats describes the work done by the most recent Draw, plus the frame total.
type Stats struct {
	// Frames is the number of completed draws since acquisition.
	Frames int

	// Triangles is the number of triangles submitted in the last draw.
	Triangles int

	// Culled is the number of triangles rejected before rasterization in the last draw.
	Culled int

	// Fragments is the number of pixels written in the last draw.
	Fragments int
}

// allocate replaces the buffers with new ones of the given size.
// Caller must hold the mutex or own the surface exclusively.
func (s *Surface) allocate(width, height int) {
	s.width = width
	s.height = height
	s.color = image.NewRGBA(image.Rect(0, 0, width, height))
	s.depth = make([]float32, width*height)
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Stats returns the statistics of the most recent draw.
func (s *Surface) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Released reports whether the surface has been released by its host.
func (s *Surface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// Snapshot returns a copy of the last rendered frame, or nil once released.
//
// Returns:
//   - *image.RGBA: an independent copy of the color buffer
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.color == nil {
		return nil
	}
	out := image.NewRGBA(s.color.Rect)
	copy(out.Pix, s.color.Pix)
	return out
}
