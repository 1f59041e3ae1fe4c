package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotInitialized = errors.New("window is not initialized")

// glfwWindow binds one GLFW window to the engineWindow that receives its events.
type glfwWindow struct {
	owner   *engineWindow
	handle  *glfw.Window
	running bool
}

// newPlatformWindow opens a GLFW window without a client API, since the
// surface is driven by WebGPU, and routes its input into w.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create glfw window: %w", err)
	}
	l := w.limits
	handle.SetSizeLimits(glfwBound(l.minWidth), glfwBound(l.minHeight), glfwBound(l.maxWidth), glfwBound(l.maxHeight))

	gw := &glfwWindow{owner: w, handle: handle, running: true}
	handle.SetKeyCallback(gw.key)
	handle.SetScrollCallback(gw.scroll)
	handle.SetMouseButtonCallback(gw.button)
	handle.SetCursorPosCallback(gw.cursor)
	// The surface is configured in pixels, so track the framebuffer rather
	// than the window's screen-coordinate size.
	handle.SetFramebufferSizeCallback(gw.framebuffer)
	w.internalWindow = gw

	w.width, w.height = handle.GetFramebufferSize()
	return nil
}

func (gw *glfwWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		gw.running = false
		gw.handle.SetShouldClose(true)
		return
	}
	if cb := gw.owner.onKeyDown; cb != nil {
		cb(uint32(key))
	}
}

// scroll forwards vertical wheel motion; positive is away from the user.
func (gw *glfwWindow) scroll(_ *glfw.Window, _, yoff float64) {
	if cb := gw.owner.onScroll; cb != nil {
		cb(float32(yoff))
	}
}

func (gw *glfwWindow) button(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	if action == glfw.Press {
		gw.owner.drag.press(gw.handle.GetCursorPos())
	} else if action == glfw.Release {
		gw.owner.drag.release()
	}
}

func (gw *glfwWindow) cursor(_ *glfw.Window, x, y float64) {
	dx, dy, dragging := gw.owner.drag.move(x, y)
	if cb := gw.owner.onDrag; dragging && cb != nil {
		cb(dx, dy)
	}
}

func (gw *glfwWindow) framebuffer(_ *glfw.Window, width, height int) {
	gw.owner.setSize(width, height)
}

// platformWindow returns the live GLFW binding, or nil before creation and after Close.
func platformWindow(w *engineWindow) *glfwWindow {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.handle == nil {
		return nil
	}
	return gw
}

// platformGetSurfaceDescriptor asks wgpuglfw for the native handle of the
// current platform (Win32, Xlib, Wayland or Metal layer).
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw := platformWindow(w)
	if gw == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw := platformWindow(w)
	return gw != nil && gw.running && !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the window and terminates GLFW. Closing twice is a no-op.
//
// Returns:
//   - error: errNotInitialized if the window was never created
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return errNotInitialized
	}
	gw := platformWindow(w)
	if gw == nil {
		return nil
	}
	gw.running = false
	gw.handle.Destroy()
	gw.handle = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages drains pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

// glfwBound maps an unset limit to glfw.DontCare.
func glfwBound(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}
