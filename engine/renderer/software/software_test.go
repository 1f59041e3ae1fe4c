package software

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestHost(t *testing.T, options ...HostBuilderOption) (*Host, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	options = append([]HostBuilderOption{WithLogger(log.New(&buf, "", 0))}, options...)
	return NewHost(options...), &buf
}

func newTestCamera(width, height int) camera.Camera {
	return camera.NewCamera(
		camera.WithAspect(viewport.Aspect(width, height)),
		camera.WithController(camera.NewOrbitController()),
	)
}

// project maps a world point to pixel coordinates.
func project(cam camera.Camera, width, height int, p mgl32.Vec3) (int, int) {
	clip := cam.ViewProjectionMatrix().Mul4x1(p.Vec4(1))
	x := (clip.X()/clip.W() + 1) * 0.5 * float32(width)
	y := (1 - clip.Y()/clip.W()) * 0.5 * float32(height)
	return int(x), int(y)
}

func TestAcquireRejectsEmptyContainer(t *testing.T) {
	h, _ := newTestHost(t)
	tests := []struct {
		name string
		c    viewport.Container
	}{
		{"nil", nil},
		{"zero width", viewport.NewStaticContainer(0, 100)},
		{"negative height", viewport.NewStaticContainer(100, -5)},
		{"too large", viewport.NewStaticContainer(100000, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := h.Acquire(tt.c)
			if s != nil {
				t.Fatal("expected nil surface")
			}
			var acq *viewport.SurfaceAcquisitionError
			if !errors.As(err, &acq) || acq.Backend != BackendName {
				t.Fatalf("err = %v, want SurfaceAcquisitionError", err)
			}
		})
	}
	if h.Live() != 0 {
		t.Fatalf("Live = %d after failed acquisitions", h.Live())
	}
}

func TestSurfaceLifecycle(t *testing.T) {
	h, logs := newTestHost(t)
	s, err := h.Acquire(viewport.NewStaticContainer(320, 240))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if w, ht := s.Size(); w != 320 || ht != 240 {
		t.Fatalf("Size = %dx%d", w, ht)
	}
	if h.Live() != 1 {
		t.Fatalf("Live = %d, want 1", h.Live())
	}

	if err := h.Resize(s, 600, 400); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, ht := s.Size(); w != 600 || ht != 400 {
		t.Fatalf("Size after resize = %dx%d", w, ht)
	}
	if err := h.Resize(s, 0, 400); !errors.Is(err, viewport.ErrInvalidSize) {
		t.Fatalf("Resize(0, 400) err = %v", err)
	}

	for range 2 {
		if err := h.Release(s); err != nil {
			t.Fatalf("Release: %v", err)
		}
	}
	if h.Live() != 0 {
		t.Fatalf("Live = %d after release", h.Live())
	}
	if !s.(*Surface).Released() {
		t.Fatal("surface not marked released")
	}
	if err := s.Draw(scene.Build(scene.PoseStanding), newTestCamera(600, 400)); !errors.Is(err, viewport.ErrSurfaceReleased) {
		t.Fatalf("Draw after release err = %v", err)
	}
	if err := h.Resize(s, 10, 10); !errors.Is(err, viewport.ErrSurfaceReleased) {
		t.Fatalf("Resize after release err = %v", err)
	}
	if got := bytes.Count(logs.Bytes(), []byte("released surface")); got != 1 {
		t.Fatalf("release logged %d times, want 1", got)
	}
}

func TestForeignSurface(t *testing.T) {
	a, _ := newTestHost(t)
	b, _ := newTestHost(t)
	s, err := a.Acquire(viewport.NewStaticContainer(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Release(s); !errors.Is(err, viewport.ErrForeignSurface) {
		t.Fatalf("Release err = %v", err)
	}
	if err := b.Resize(s, 20, 20); !errors.Is(err, viewport.ErrForeignSurface) {
		t.Fatalf("Resize err = %v", err)
	}
}

func TestDrawRendersFigure(t *testing.T) {
	const width, height = 200, 200
	h, _ := newTestHost(t)
	vs, err := h.Acquire(viewport.NewStaticContainer(width, height))
	if err != nil {
		t.Fatal(err)
	}
	s := vs.(*Surface)
	cam := newTestCamera(width, height)
	sc := scene.Build(scene.PoseStanding)

	if err := s.Draw(sc, cam); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := s.Snapshot()
	bg := sc.Background.RGBA8()
	if got := img.RGBAAt(0, 0); got != bg {
		t.Fatalf("corner pixel = %v, want background %v", got, bg)
	}

	x, y := project(cam, width, height, mgl32.Vec3{0, 0.8, 0.2})
	torso := img.RGBAAt(x, y)
	if torso == bg || torso.B <= torso.R {
		t.Fatalf("torso pixel = %v, want a blue figure color", torso)
	}

	st := s.Stats()
	if st.Frames != 1 || st.Fragments == 0 || st.Culled == 0 || st.Triangles <= st.Culled {
		t.Fatalf("stats = %+v", st)
	}
}

func TestDrawPoseChangesImage(t *testing.T) {
	const width, height = 160, 120
	h, _ := newTestHost(t)
	vs, err := h.Acquire(viewport.NewStaticContainer(width, height))
	if err != nil {
		t.Fatal(err)
	}
	s := vs.(*Surface)
	cam := newTestCamera(width, height)

	if err := s.Draw(scene.Build(scene.PoseStanding), cam); err != nil {
		t.Fatal(err)
	}
	standing := s.Snapshot()
	if err := s.Draw(scene.Build(scene.PoseSquat), cam); err != nil {
		t.Fatal(err)
	}
	squat := s.Snapshot()

	if bytes.Equal(standing.Pix, squat.Pix) {
		t.Fatal("squat and standing rendered identically")
	}
	if s.Stats().Frames != 2 {
		t.Fatalf("Frames = %d, want 2", s.Stats().Frames)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	h, _ := newTestHost(t)
	vs, _ := h.Acquire(viewport.NewStaticContainer(4, 4))
	s := vs.(*Surface)
	snap := s.Snapshot()
	snap.Pix[0] = 42
	if s.Snapshot().Pix[0] == 42 {
		t.Fatal("snapshot aliases the color buffer")
	}
}

func TestDrawAddsSpecularHighlight(t *testing.T) {
	const width, height = 160, 160
	h, _ := newTestHost(t)
	vs, err := h.Acquire(viewport.NewStaticContainer(width, height))
	if err != nil {
		t.Fatal(err)
	}
	s := vs.(*Surface)
	cam := newTestCamera(width, height)
	cam.Update()

	shiny := scene.Build(scene.PoseStanding)
	matte := scene.Build(scene.PoseStanding)
	for i := range matte.Primitives {
		matte.Primitives[i].Material = light.Phong{}
	}

	if err := s.Draw(matte, cam); err != nil {
		t.Fatal(err)
	}
	flat := s.Snapshot()
	if err := s.Draw(shiny, cam); err != nil {
		t.Fatal(err)
	}
	lit := s.Snapshot()

	brighter := 0
	for i := range lit.Pix {
		if lit.Pix[i] < flat.Pix[i] {
			t.Fatalf("byte %d darkened by the highlight: %d < %d", i, lit.Pix[i], flat.Pix[i])
		}
		if lit.Pix[i] > flat.Pix[i] {
			brighter++
		}
	}
	if brighter == 0 {
		t.Fatal("specular material left the image unchanged")
	}
}
