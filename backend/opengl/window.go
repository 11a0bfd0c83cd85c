package opengl

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/lite-xl/widgets"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// doubleClickTime is the window within which successive presses on the
// same button accumulate a click count.
const doubleClickTime = 400 * time.Millisecond

// NativeHandler receives events the widget tree declined. All methods
// are optional at the call site; a nil handler is valid.
type NativeHandler interface {
	MousePressed(button widgets.MouseButton, x, y float32, clicks int)
	MouseReleased(button widgets.MouseButton, x, y float32)
	MouseMoved(x, y, dx, dy float32)
	MouseWheel(delta float32)
	TextInput(text string)
	Update()
	Draw()
}

// Window owns the GLFW window, the renderer and the event filter chain.
// It implements widgets.EventChain: filters registered through AddFilter
// see every input event before the native handler, in registration
// order, and the first filter that consumes an event stops dispatch.
type Window struct {
	win      *glfw.Window
	renderer *Renderer
	filters  []widgets.EventFilter
	native   NativeHandler

	cursors map[widgets.CursorShape]*glfw.Cursor

	lastX, lastY    float32
	lastClickAt     time.Time
	lastClickButton widgets.MouseButton
	clicks          int
}

// NewWindow initializes GLFW and GL and opens a window. Call Destroy
// when done.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("opengl: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("opengl: create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("opengl: gl init: %w", err)
	}

	renderer, err := NewRenderer(width, height)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	w := &Window{
		win:      win,
		renderer: renderer,
		cursors: map[widgets.CursorShape]*glfw.Cursor{
			widgets.CursorArrow: glfw.CreateStandardCursor(glfw.ArrowCursor),
			widgets.CursorHand:  glfw.CreateStandardCursor(glfw.HandCursor),
			widgets.CursorIBeam: glfw.CreateStandardCursor(glfw.IBeamCursor),
		},
	}
	renderer.SetCursorFunc(w.applyCursor)

	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)
	win.SetScrollCallback(w.scrollCallback)
	win.SetCharCallback(w.charCallback)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, fw, fh int) {
		gl.Viewport(0, 0, int32(fw), int32(fh))
	})
	win.SetSizeCallback(func(_ *glfw.Window, sw, sh int) {
		renderer.Resize(sw, sh)
	})

	return w, nil
}

// Renderer returns the window's renderer.
func (w *Window) Renderer() *Renderer { return w.renderer }

// SetNativeHandler installs the fallback handler for events no filter
// consumed.
func (w *Window) SetNativeHandler(h NativeHandler) { w.native = h }

// AddFilter implements widgets.EventChain.
func (w *Window) AddFilter(f widgets.EventFilter) {
	w.filters = append(w.filters, f)
}

// RemoveFilter implements widgets.EventChain.
func (w *Window) RemoveFilter(f widgets.EventFilter) {
	for i, cur := range w.filters {
		if cur == f {
			w.filters = append(w.filters[:i], w.filters[i+1:]...)
			return
		}
	}
}

// Run drives the frame loop until the window closes. Each frame pumps
// events, then routes update and draw through the filter chain so
// bridged widget trees run interleaved with the native handler.
func (w *Window) Run() {
	for !w.win.ShouldClose() {
		glfw.PollEvents()

		for _, f := range w.filters {
			f.FilterUpdate()
		}
		if w.native != nil {
			w.native.Update()
		}

		gl.ClearColor(0.1, 0.1, 0.1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		w.renderer.Begin()
		if w.native != nil {
			w.native.Draw()
		}
		for _, f := range w.filters {
			f.FilterDraw()
		}
		w.renderer.End()

		w.win.SwapBuffers()
	}
}

// Destroy releases the renderer, the window and GLFW.
func (w *Window) Destroy() {
	w.renderer.Delete()
	for _, c := range w.cursors {
		c.Destroy()
	}
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) applyCursor(shape widgets.CursorShape) {
	if c, ok := w.cursors[shape]; ok {
		w.win.SetCursor(c)
	}
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	mb, ok := mapButton(button)
	if !ok {
		return
	}
	x, y := w.lastX, w.lastY
	switch action {
	case glfw.Press:
		now := time.Now()
		if mb == w.lastClickButton && now.Sub(w.lastClickAt) < doubleClickTime {
			w.clicks++
		} else {
			w.clicks = 1
		}
		w.lastClickAt = now
		w.lastClickButton = mb
		for _, f := range w.filters {
			if f.FilterMousePressed(mb, x, y, w.clicks) {
				return
			}
		}
		if w.native != nil {
			w.native.MousePressed(mb, x, y, w.clicks)
		}
	case glfw.Release:
		for _, f := range w.filters {
			if f.FilterMouseReleased(mb, x, y) {
				return
			}
		}
		if w.native != nil {
			w.native.MouseReleased(mb, x, y)
		}
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	x, y := float32(xpos), float32(ypos)
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	for _, f := range w.filters {
		if f.FilterMouseMoved(x, y, dx, dy) {
			return
		}
	}
	if w.native != nil {
		w.native.MouseMoved(x, y, dx, dy)
	}
}

func (w *Window) scrollCallback(_ *glfw.Window, _, yoff float64) {
	delta := float32(yoff)
	for _, f := range w.filters {
		if f.FilterMouseWheel(delta) {
			return
		}
	}
	if w.native != nil {
		w.native.MouseWheel(delta)
	}
}

func (w *Window) charCallback(_ *glfw.Window, char rune) {
	text := string(char)
	for _, f := range w.filters {
		if f.FilterTextInput(text) {
			return
		}
	}
	if w.native != nil {
		w.native.TextInput(text)
	}
}

func mapButton(button glfw.MouseButton) (widgets.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return widgets.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return widgets.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return widgets.MouseButtonMiddle, true
	default:
		return 0, false
	}
}
