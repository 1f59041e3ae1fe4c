package window

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestDragTracker(t *testing.T) {
	var d dragTracker

	if _, _, ok := d.move(10, 10); ok {
		t.Fatal("move reported a drag before any press")
	}

	d.press(100, 50)
	steps := []struct {
		x, y   float64
		dx, dy float32
	}{
		{x: 110, y: 50, dx: 10, dy: 0},
		{x: 110, y: 40, dx: 0, dy: -10},
		{x: 95, y: 45, dx: -15, dy: 5},
	}
	for i, s := range steps {
		dx, dy, ok := d.move(s.x, s.y)
		if !ok {
			t.Fatalf("step %d: drag not active", i)
		}
		if dx != s.dx || dy != s.dy {
			t.Errorf("step %d: delta = (%v, %v), want (%v, %v)", i, dx, dy, s.dx, s.dy)
		}
	}

	d.release()
	if _, _, ok := d.move(0, 0); ok {
		t.Error("move reported a drag after release")
	}
}

func TestSetSizeForwardsResize(t *testing.T) {
	w := &engineWindow{mu: &sync.Mutex{}}
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })

	w.setSize(800, 600)
	if gotW != 800 || gotH != 600 {
		t.Errorf("callback got %dx%d, want 800x600", gotW, gotH)
	}
	if width, height := w.Size(); width != 800 || height != 600 {
		t.Errorf("Size() = %dx%d, want 800x600", width, height)
	}
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{mu: &sync.Mutex{}}
	if w.IsRunning() {
		t.Error("uninitialized window reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("uninitialized window returned a surface descriptor")
	}
	if err := w.Close(); !errors.Is(err, errNotInitialized) {
		t.Errorf("Close on uninitialized window = %v, want errNotInitialized", err)
	}

	// A closed binding reports stopped and closes again without error.
	w.internalWindow = &glfwWindow{owner: w}
	if w.IsRunning() || w.SurfaceDescriptor() != nil {
		t.Error("closed window still live")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("poses"), WithSize(640, 480),
		WithMinSize(100, 90), WithMaxSize(2000, 1000),
	} {
		opt(w)
	}
	if w.title != "poses" || w.width != 640 || w.height != 480 {
		t.Errorf("title/size = %q %dx%d", w.title, w.width, w.height)
	}
	want := sizeLimits{minWidth: 100, minHeight: 90, maxWidth: 2000, maxHeight: 1000}
	if w.limits != want {
		t.Errorf("limits = %+v, want %+v", w.limits, want)
	}
}

func TestSizeLimitsClamp(t *testing.T) {
	limits := sizeLimits{minWidth: 320, minHeight: 240, maxWidth: 1920, maxHeight: 1080}
	tests := []struct {
		name         string
		limits       sizeLimits
		w, h         int
		wantW, wantH int
	}{
		{"inside", limits, 800, 600, 800, 600},
		{"below minimum", limits, 100, 50, 320, 240},
		{"above maximum", limits, 4000, 3000, 1920, 1080},
		{"unbounded", sizeLimits{}, 5, 9000, 5, 9000},
		{"crossed bounds", sizeLimits{minWidth: 500, maxWidth: 400}, 450, 10, 500, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := tt.limits.clamp(tt.w, tt.h)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("clamp(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGLFWBound(t *testing.T) {
	if glfwBound(0) != glfw.DontCare || glfwBound(-3) != glfw.DontCare {
		t.Error("unset limit not mapped to DontCare")
	}
	if glfwBound(640) != 640 {
		t.Error("set limit changed")
	}
}
