package widgets

import "errors"

// ErrNotRoot is returned when a bridge is requested for a widget that
// has a parent.
var ErrNotRoot = errors.New("widgets: bridge requires a parentless root widget")

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithoutUpdateIntercept leaves the host's update entry point alone;
// the host must call Update on the tree itself.
func WithoutUpdateIntercept() BridgeOption {
	return func(b *Bridge) { b.interceptUpdate = false }
}

// WithoutDrawIntercept leaves the host's draw entry point alone; the
// host must call Draw on the tree itself.
func WithoutDrawIntercept() BridgeOption {
	return func(b *Bridge) { b.interceptDraw = false }
}

// Bridge interposes a root widget in front of a host's top-level input,
// update and draw entry points. It registers itself as an EventFilter on
// the host's chain; the host runs its native handling only when the tree
// declines an event.
//
// A press that lands outside the root suppresses interception until the
// matching release, so drag gestures that belong to neighboring host UI
// regions are never captured mid-flight.
type Bridge struct {
	root            Node
	chain           EventChain
	pressedOutside  bool
	interceptUpdate bool
	interceptDraw   bool
}

// InstallBridge registers root as a pre-dispatch filter on the host's
// event chain. Only parentless widgets can be bridged.
func InstallBridge(root Node, chain EventChain, opts ...BridgeOption) (*Bridge, error) {
	if root.Base().parent != nil {
		return nil, ErrNotRoot
	}
	b := &Bridge{
		root:            root,
		chain:           chain,
		interceptUpdate: true,
		interceptDraw:   true,
	}
	for _, opt := range opts {
		opt(b)
	}
	chain.AddFilter(b)
	logger.Debug("bridge installed",
		"interceptUpdate", b.interceptUpdate,
		"interceptDraw", b.interceptDraw)
	return b, nil
}

// Uninstall removes the bridge from the host's chain.
func (b *Bridge) Uninstall() {
	b.chain.RemoveFilter(b)
}

// Root returns the bridged widget.
func (b *Bridge) Root() Node { return b.root }

// FilterMousePressed implements EventFilter.
func (b *Bridge) FilterMousePressed(button MouseButton, x, y float32, clicks int) bool {
	if !b.root.Base().MouseOnTop(x, y) {
		b.pressedOutside = true
		return b.root.OnMousePressed(button, x, y, clicks)
	}
	b.pressedOutside = false
	return b.root.OnMousePressed(button, x, y, clicks)
}

// FilterMouseReleased implements EventFilter.
func (b *Bridge) FilterMouseReleased(button MouseButton, x, y float32) bool {
	b.pressedOutside = false
	return b.root.OnMouseReleased(button, x, y)
}

// FilterMouseMoved implements EventFilter.
func (b *Bridge) FilterMouseMoved(x, y, dx, dy float32) bool {
	if b.pressedOutside {
		return false
	}
	return b.root.OnMouseMoved(x, y, dx, dy)
}

// FilterMouseWheel implements EventFilter.
func (b *Bridge) FilterMouseWheel(delta float32) bool {
	if b.pressedOutside {
		return false
	}
	return b.root.OnMouseWheel(delta)
}

// FilterTextInput implements EventFilter.
func (b *Bridge) FilterTextInput(text string) bool {
	return b.root.OnTextInput(text)
}

// FilterUpdate implements EventFilter. The tree updates alongside the
// host rather than instead of it, so this never consumes the call.
func (b *Bridge) FilterUpdate() bool {
	if !b.interceptUpdate {
		return false
	}
	b.root.Update()
	return false
}

// FilterDraw implements EventFilter. As with update, drawing is
// interleaved with the host's own drawing, never exclusive.
func (b *Bridge) FilterDraw() bool {
	if !b.interceptDraw {
		return false
	}
	b.root.Draw()
	return false
}
