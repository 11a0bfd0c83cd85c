package widgets

// TextBox is a single-line text entry widget wrapping a host-provided
// document view. It does no text editing itself; keystrokes, caret and
// rendering are delegated to the DocView, keeping the widget layer free
// of editor semantics. A TextBox marks itself as a text-input node, so
// the release path in its parent promotes it to active child and text
// events start flowing to it.
type TextBox struct {
	*Widget

	view   DocView
	active bool

	// OnChange fires after the view accepted a text event.
	OnChange func(text string)
}

// NewTextBox creates a text entry widget around view.
func NewTextBox(parent Node, style *Style, r Renderer, view DocView) *TextBox {
	t := &TextBox{view: view}
	t.Widget = &Widget{}
	t.Widget.init(parent, style, r)
	t.TextInput = true
	if parent != nil {
		attach(parent, t)
	}
	return t
}

// Text returns the view's current content.
func (t *TextBox) Text() string { return t.view.Text() }

// Active reports whether the box holds text-input focus.
func (t *TextBox) Active() bool { return t.active }

// SetActive toggles text-input focus on the underlying view. Called by
// the event router when the active child changes.
func (t *TextBox) SetActive(active bool) {
	if t.active == active {
		return
	}
	t.active = active
	t.view.SetActive(active)
	logger.Debug("textbox focus changed", "active", active)
}

// Update implements Node: base repositioning plus the view's own tick.
func (t *TextBox) Update() bool {
	if !t.Widget.Update() {
		return false
	}
	t.view.Update()
	return true
}

// Draw implements Node. The view draws the text content inside the
// widget's padded content rectangle.
func (t *TextBox) Draw() bool {
	if !t.Visible {
		return false
	}
	t.DrawBase()
	pad := t.style.Padding
	t.renderer.PushClip(t.position.X, t.position.Y, t.size.X, t.size.Y)
	t.view.Draw(t.renderer,
		t.position.X+pad.X, t.position.Y+pad.Y,
		t.size.X-pad.X*2, t.size.Y-pad.Y*2)
	t.renderer.PopClip()
	for _, c := range t.children {
		c.Draw()
	}
	t.drawTooltip()
	return true
}

// OnTextInput implements Node: the event goes straight to the view.
func (t *TextBox) OnTextInput(text string) bool {
	if !t.Visible {
		return false
	}
	handled := t.view.TextInput(text)
	if handled && t.OnChange != nil {
		t.OnChange(t.view.Text())
	}
	return handled
}
