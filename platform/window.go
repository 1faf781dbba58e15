// Package platform owns the glfw window and GL context and pumps glfw events
// into an input.State.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"skyrunner/config"
	"skyrunner/input"
)

func init() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	input *input.State
	// lastX/lastY track the cursor between callbacks; hasLast is false until
	// the first event after a capture change.
	lastX, lastY float64
	hasLast      bool

	onResize func(width, height int)
}

// NewWindow creates a window with an OpenGL 4.1 core context and makes the
// context current.
func NewWindow(cfg config.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(cfg.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Handle: handle,
		Title:  cfg.Title,
		input:  input.NewState(),
	}
	w.Width, w.Height = handle.GetFramebufferSize()

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width, w.Height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	handle.SetKeyCallback(w.keyCallback)
	handle.SetMouseButtonCallback(w.mouseButtonCallback)
	handle.SetCursorPosCallback(w.cursorPosCallback)
	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		// glfw reports wheel-up as positive; positive lines zoom out.
		w.input.Scroll(float32(-yoff))
	})

	if glfw.RawMouseMotionSupported() {
		handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	return w, nil
}

// Input is the per-frame input state fed by this window's callbacks.
func (w *Window) Input() *input.State {
	return w.input
}

// OnResize registers fn for framebuffer size changes.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// Time is seconds since glfw was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

// SetCaptured locks or releases the pointer. While captured the cursor is
// hidden and its movement feeds the input deltas.
func (w *Window) SetCaptured(captured bool) {
	if captured == w.input.Captured() {
		return
	}
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.Handle.SetInputMode(glfw.CursorMode, mode)
	w.input.SetCaptured(captured)
	w.hasLast = false
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	w.input.KeyEvent(translateKey(key), action == glfw.Press)
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := buttons[button]
	if !ok {
		return
	}
	w.input.ButtonEvent(b, action == glfw.Press)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, x, y float64) {
	if w.hasLast {
		w.input.MoveBy(float32(x-w.lastX), float32(y-w.lastY))
	}
	w.lastX, w.lastY = x, y
	w.hasLast = true
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
