package widgets

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// CursorShape is a pointer cursor hint the tree requests from the host.
type CursorShape int

const (
	CursorArrow CursorShape = iota
	CursorHand
	CursorIBeam
)

// Font is a host font handle. The tree only ever queries metrics and
// hands the font back to the Renderer; rasterization stays on the host
// side.
type Font interface {
	// LineHeight returns the height of one text line in pixels.
	LineHeight() float32

	// TextWidth returns the rendered width of text in pixels.
	TextWidth(text string) float32
}

// Renderer is the immediate drawing capability the host supplies.
// Draw calls issued outside the current clip rectangle are not visible;
// clip rectangles nest as a stack.
type Renderer interface {
	// DrawRect fills an axis-aligned rectangle.
	DrawRect(x, y, w, h float32, color uint32)

	// DrawText draws a single line of text and returns the advance width.
	DrawText(font Font, text string, x, y float32, color uint32) float32

	// PushClip pushes a clip rectangle. Subsequent draw calls are limited
	// to the intersection of all pushed rectangles.
	PushClip(x, y, w, h float32)

	// PopClip pops the most recent clip rectangle.
	PopClip()

	// SetCursor requests a pointer cursor shape.
	SetCursor(shape CursorShape)

	// WindowSize returns the current window dimensions.
	WindowSize() (w, h float32)
}

// EventFilter receives host events before the host's native handling.
// Every method returns whether the event was consumed; a false return
// lets the host continue with its own dispatch.
//
// The root bridge implements EventFilter on behalf of a whole widget
// tree, but hosts may register additional filters of their own.
type EventFilter interface {
	FilterMousePressed(button MouseButton, x, y float32, clicks int) bool
	FilterMouseReleased(button MouseButton, x, y float32) bool
	FilterMouseMoved(x, y, dx, dy float32) bool
	FilterMouseWheel(delta float32) bool
	FilterTextInput(text string) bool
	FilterUpdate() bool
	FilterDraw() bool
}

// EventChain is the registration interface a host exposes so widget
// trees can interpose themselves before the host's top-level input,
// update and draw entry points. Filters run in registration order; the
// first filter that consumes an event stops the chain.
type EventChain interface {
	AddFilter(f EventFilter)
	RemoveFilter(f EventFilter)
}

// DocView is the host's single-line text document view. The TextBox
// widget delegates editing, caret handling and text drawing to it
// wholesale; the widget tree only routes events and activation.
type DocView interface {
	// SetActive grants or revokes exclusive text-input focus.
	SetActive(active bool)

	// TextInput inserts typed text at the caret.
	TextInput(text string) bool

	// Update advances blink timers and similar per-frame state.
	Update()

	// Draw renders the document line into the given content rectangle.
	Draw(r Renderer, x, y, w, h float32)

	// Text returns the current document content.
	Text() string
}
