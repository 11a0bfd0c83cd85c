package widgets

import (
	"log/slog"
	"os"
	"sort"
)

var logLevel = new(slog.LevelVar)

// logger is the package logger. Debug output is off unless enabled via
// SetDebugLogging or the WIDGETS_DEBUG environment variable.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

func init() {
	if os.Getenv("WIDGETS_DEBUG") != "" {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetDebugLogging enables or disables debug logging for the package.
func SetDebugLogging(enabled bool) {
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Node is the capability set every widget variant implements. Concrete
// variants (ListBox, TextBox, ...) compose *Widget and override the
// methods whose behavior they specialize, calling the base implementation
// explicitly where they extend rather than replace it.
type Node interface {
	// Base returns the shared widget core.
	Base() *Widget

	// Update advances per-frame state. Returns false for invisible nodes.
	Update() bool

	// Draw renders the node and its children. Returns false for
	// invisible nodes.
	Draw() bool

	// ContentOffset is the origin children's relative coordinates are
	// resolved against. Scrollable variants shift it to realize
	// scrolling without touching children's relative coordinates.
	ContentOffset() (x, y float32)

	OnMousePressed(button MouseButton, x, y float32, clicks int) bool
	OnMouseReleased(button MouseButton, x, y float32) bool
	OnMouseMoved(x, y, dx, dy float32) bool
	OnMouseWheel(delta float32) bool
	OnTextInput(text string) bool
}

// activatable is implemented by variants that hold exclusive text-input
// focus (TextBox). The event router toggles it when the active child
// changes.
type activatable interface {
	SetActive(active bool)
}

// Widget is the base tree node. It owns its children exclusively and
// keeps a non-owning reference to its parent. Children are kept sorted
// descending by z-index after every insertion; hit-testing and drawing
// always traverse highest-z-first.
type Widget struct {
	parent   Node
	children []Node

	style    *Style
	renderer Renderer

	position Position
	size     Size
	border   Border
	zindex   int
	nextZ    int // running z counter handed to inserted children

	// Behavior flags.
	Visible    bool
	Clickable  bool
	Draggable  bool
	Scrollable bool
	TextInput  bool

	// Callbacks. All optional.
	OnClick      func(button MouseButton, x, y float32)
	OnMouseEnter func(x, y float32)
	OnMouseLeave func(x, y float32)

	// Transient interaction state.
	mousePressed bool
	hovering     bool
	dragged      bool
	wasScrolling bool
	tooltipOpen  bool
	lastX, lastY float32

	activeChild Node
	hiddenSize  Size

	label   []Segment
	tooltip []Segment
}

// New creates a widget. With a non-nil parent the widget attaches
// immediately and starts visible; with a nil parent it becomes a root and
// stays hidden until Show is called. Roots take their style and renderer
// from the arguments; parented widgets inherit both from the parent and
// ignore the arguments.
func New(parent Node, style *Style, r Renderer) *Widget {
	w := &Widget{}
	w.init(parent, style, r)
	if parent != nil {
		attach(parent, w)
	}
	return w
}

// init fills the shared core. Variant constructors call it on their
// embedded Widget before attaching themselves, so the node handed to the
// parent is the outer variant, not the bare base.
func (w *Widget) init(parent Node, style *Style, r Renderer) {
	if parent != nil {
		pb := parent.Base()
		style, r = pb.style, pb.renderer
	}
	w.style = style
	w.renderer = r
	w.Visible = parent != nil
	w.Clickable = true
}

// attach links child under parent, assigns the next z-index and keeps the
// sibling list sorted descending by z-index.
func attach(parent, child Node) {
	pb := parent.Base()
	cb := child.Base()
	cb.parent = parent
	if cb.zindex == 0 {
		pb.nextZ++
		cb.zindex = pb.nextZ
	}
	pb.children = append(pb.children, child)
	sort.SliceStable(pb.children, func(i, j int) bool {
		return pb.children[i].Base().zindex > pb.children[j].Base().zindex
	})
}

// Base returns the widget itself; it makes *Widget satisfy Node.
func (w *Widget) Base() *Widget { return w }

// Parent returns the owning node, or nil for a root.
func (w *Widget) Parent() Node { return w.parent }

// Children returns the child list in traversal order (descending
// z-index). The returned slice is owned by the widget; do not mutate it.
func (w *Widget) Children() []Node { return w.children }

// ZIndex returns the widget's z-order key.
func (w *Widget) ZIndex() int { return w.zindex }

// SetZIndex overrides the automatically assigned z-order key and
// re-sorts the sibling list.
func (w *Widget) SetZIndex(z int) {
	w.zindex = z
	if w.parent == nil {
		return
	}
	siblings := w.parent.Base().children
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].Base().zindex > siblings[j].Base().zindex
	})
}

// Style returns the injected style.
func (w *Widget) Style() *Style { return w.style }

// Renderer returns the host renderer.
func (w *Widget) Renderer() Renderer { return w.renderer }

// RemoveChild detaches child from the widget. The active-child reference
// is cleared if it pointed at the removed node. Removing a node that is
// not a child is a no-op.
func (w *Widget) RemoveChild(child Node) {
	cb := child.Base()
	for i, c := range w.children {
		if c.Base() == cb {
			w.children = append(w.children[:i], w.children[i+1:]...)
			cb.parent = nil
			if w.activeChild != nil && w.activeChild.Base() == cb {
				w.setActiveChild(nil)
			}
			return
		}
	}
}

// Destroy detaches the widget from its parent. Descendants stay owned by
// the widget and are released with it.
func (w *Widget) Destroy() {
	if w.parent != nil {
		w.parent.Base().RemoveChild(w)
	}
}

// SetLabel sets the widget's label content.
func (w *Widget) SetLabel(segs ...Segment) { w.label = segs }

// SetTooltip sets the tooltip shown while the pointer hovers the widget.
func (w *Widget) SetTooltip(segs ...Segment) { w.tooltip = segs }

// Position returns the widget's current coordinates.
func (w *Widget) Position() Position { return w.position }

// Size returns the widget's content size, excluding border.
func (w *Widget) Size() Size { return w.size }

// SetSize sets the content size.
func (w *Widget) SetSize(width, height float32) {
	w.size = Size{X: width, Y: height}
}

// SetBorder sets the border width and color.
func (w *Widget) SetBorder(width float32, color uint32) {
	w.border = Border{Width: width, Color: color}
}

// Border returns the current border.
func (w *Widget) Border() Border { return w.border }

// Width returns the occupied width including border on both sides.
func (w *Widget) Width() float32 { return w.size.X + w.border.Width*2 }

// Height returns the occupied height including border on both sides.
func (w *Widget) Height() float32 { return w.size.Y + w.border.Width*2 }

// boundedRect is the widget's occupied rectangle, border included.
func (w *Widget) boundedRect() Rect {
	return Rect{
		X: w.position.X - w.border.Width,
		Y: w.position.Y - w.border.Width,
		W: w.Width(),
		H: w.Height(),
	}
}

// MouseOnTop reports whether the point lies on the widget's bordered
// rectangle. Invisible widgets never report containment.
func (w *Widget) MouseOnTop(x, y float32) bool {
	if !w.Visible {
		return false
	}
	return w.boundedRect().Contains(x, y)
}

// SetPosition sets the widget's relative coordinates and re-derives the
// absolute ones from the parent's content offset. Every descendant is
// repositioned from its own stored relative coordinates, so moving a
// container cascades without disturbing the relative layout.
func (w *Widget) SetPosition(x, y float32) {
	w.position.RX, w.position.RY = x, y
	if w.parent != nil {
		px, py := w.parent.ContentOffset()
		w.position.X = px + x + w.border.Width
		w.position.Y = py + y + w.border.Width
	} else {
		w.position.X = x
		w.position.Y = y
	}
	for _, c := range w.children {
		cb := c.Base()
		cb.SetPosition(cb.position.RX, cb.position.RY)
	}
}

// UpdatePosition recomputes the absolute position from the stored
// relative coordinates and the parent's current content offset. A
// scrollable parent repositions its subtree every frame purely by
// changing its offset.
func (w *Widget) UpdatePosition() {
	if w.parent == nil {
		return
	}
	px, py := w.parent.ContentOffset()
	w.position.X = px + w.position.RX + w.border.Width
	w.position.Y = py + w.position.RY + w.border.Width
}

// ContentOffset implements Node. The base content origin is the absolute
// position; scrollable variants override this.
func (w *Widget) ContentOffset() (float32, float32) {
	return w.position.X, w.position.Y
}

// Show makes the widget visible. For a root whose size was stashed by
// Hide, the pre-hide size is restored; if the size is already positive
// the call leaves it alone.
func (w *Widget) Show() {
	w.Visible = true
	if w.parent == nil && w.size.X <= 0 && w.size.Y <= 0 {
		w.size = w.hiddenSize
	}
}

// Hide makes the widget invisible. A root additionally stashes its size
// and collapses to zero so the host layout ignores it; a later Show with
// no intervening resize restores the original size.
func (w *Widget) Hide() {
	w.Visible = false
	if w.parent == nil {
		if w.size.X > 0 || w.size.Y > 0 {
			w.hiddenSize = w.size
		}
		w.size = Size{}
	}
}

// Update implements Node: reposition against the parent's current
// content offset, then update children. Invisible widgets are a no-op.
func (w *Widget) Update() bool {
	if !w.Visible {
		return false
	}
	w.UpdatePosition()
	for _, c := range w.children {
		c.Update()
	}
	return true
}

// Draw implements Node: border, background, label, then children in
// z-order, then the tooltip on top. Invisible widgets are a no-op.
func (w *Widget) Draw() bool {
	if !w.Visible {
		return false
	}
	w.DrawBase()
	for _, c := range w.children {
		c.Draw()
	}
	w.drawTooltip()
	return true
}

// DrawBase renders the widget's own chrome: border, background and
// label. Variants call it from their Draw overrides before adding their
// specialized content.
func (w *Widget) DrawBase() {
	if w.border.Width > 0 && w.border.Color != 0 {
		r := w.boundedRect()
		w.renderer.DrawRect(r.X, r.Y, r.W, r.H, w.border.Color)
	}
	if w.style.BackgroundColor != 0 {
		w.renderer.DrawRect(w.position.X, w.position.Y, w.size.X, w.size.Y, w.style.BackgroundColor)
	}
	if len(w.label) > 0 {
		x := w.position.X + w.style.Padding.X
		y := w.position.Y + w.style.Padding.Y
		renderSegments(w.renderer, w.style, w.label, 0, len(w.label), x, y, true)
	}
}

// drawTooltip renders the tooltip next to the last pointer position.
func (w *Widget) drawTooltip() {
	if !w.tooltipOpen || len(w.tooltip) == 0 {
		return
	}
	ts := *w.style
	ts.TextColor = w.style.TooltipTextColor
	tw, th := renderSegments(w.renderer, &ts, w.tooltip, 0, len(w.tooltip), 0, 0, false)
	pad := w.style.Padding
	x := w.lastX + 12
	y := w.lastY + 16
	if ww, _ := w.renderer.WindowSize(); x+tw+pad.X*2 > ww {
		x = ww - tw - pad.X*2
	}
	w.renderer.DrawRect(x, y, tw+pad.X*2, th+pad.Y*2, w.style.TooltipColor)
	renderSegments(w.renderer, &ts, w.tooltip, 0, len(w.tooltip), x+pad.X, y+pad.Y, true)
}

// setActiveChild moves exclusive text-input focus to c, deactivating the
// previous holder. Passing nil clears focus; clearing twice is a no-op.
func (w *Widget) setActiveChild(c Node) {
	if w.activeChild == c {
		return
	}
	if w.activeChild != nil {
		if a, ok := w.activeChild.(activatable); ok {
			a.SetActive(false)
		}
		logger.Debug("active child cleared")
	}
	w.activeChild = c
	if c != nil {
		if a, ok := c.(activatable); ok {
			a.SetActive(true)
		}
		logger.Debug("active child set")
	}
}

// ActiveChild returns the descendant currently holding text-input focus,
// or nil.
func (w *Widget) ActiveChild() Node { return w.activeChild }
