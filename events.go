package widgets

// Event dispatch is strict top-down z-order: a widget offers every event
// to its children (highest z first) before considering itself hit. The
// child list is kept sorted descending by z-index, so plain iteration is
// already the correct order.

// OnMousePressed implements Node. The first child whose bordered
// rectangle contains the point and that is clickable absorbs the event
// exclusively; siblings are never tried. A press outside the widget
// clears any active-child focus and reports the event unhandled so
// ancestors or the host can treat it as a miss.
func (w *Widget) OnMousePressed(button MouseButton, x, y float32, clicks int) bool {
	if !w.Visible {
		return false
	}
	for _, c := range w.children {
		cb := c.Base()
		if cb.MouseOnTop(x, y) && cb.Clickable {
			return c.OnMousePressed(button, x, y, clicks)
		}
	}
	if !w.MouseOnTop(x, y) {
		w.setActiveChild(nil)
		return false
	}
	w.mousePressed = true
	if w.parent != nil {
		w.parent.Base().mousePressed = true
	}
	if w.Draggable && w.activeChild == nil {
		w.position.DX = x - w.position.X
		w.position.DY = y - w.position.Y
	}
	return true
}

// OnMouseReleased implements Node. Focus is cleared first in every case.
// Unless a drag is in progress the release is forwarded to exactly one
// child that is hovered, mid-scroll or pressed; a text-input child
// becomes the new active child. Click synthesis happens in the pressed
// widget's own finalize step, so a press and a matching release raise
// exactly one click.
func (w *Widget) OnMouseReleased(button MouseButton, x, y float32) bool {
	if !w.Visible {
		return false
	}
	w.setActiveChild(nil)

	if !w.dragged {
		for _, c := range w.children {
			cb := c.Base()
			if !cb.hovering && !cb.wasScrolling && !cb.mousePressed {
				continue
			}
			scrolling := cb.wasScrolling
			handled := c.OnMouseReleased(button, x, y)
			if cb.TextInput {
				w.setActiveChild(c)
			}
			if scrolling {
				// A mid-scroll child consumes the release unconditionally.
				cb.wasScrolling = false
				w.wasScrolling = false
				return true
			}
			return handled
		}
	}

	if w.mousePressed || w.wasScrolling {
		wasPressed := w.mousePressed
		w.mousePressed = false
		w.wasScrolling = false
		if w.parent != nil {
			w.parent.Base().mousePressed = false
		}
		if w.Draggable {
			w.dragged = false
			w.renderer.SetCursor(CursorArrow)
		}
		if wasPressed && w.MouseOnTop(x, y) && w.OnClick != nil {
			w.OnClick(button, x, y)
		}
		return true
	}
	return false
}

// OnMouseMoved implements Node. The last pointer position is cached
// because wheel events carry no coordinates. While not dragging, at most
// one child receives the move — the first z-order match that contains
// the point or is mid-scroll or pressed — and every other child that was
// hovered gets its leave transition. When no child is hit the widget runs
// its own enter/leave transition, tooltip visibility, and drag
// translation.
func (w *Widget) OnMouseMoved(x, y, dx, dy float32) bool {
	if !w.Visible {
		return false
	}
	w.lastX, w.lastY = x, y

	if !w.dragged {
		var target Node
		for _, c := range w.children {
			cb := c.Base()
			if target == nil && (cb.MouseOnTop(x, y) || cb.wasScrolling || cb.mousePressed) {
				target = c
				continue
			}
			if cb.hovering {
				cb.leave(x, y)
			}
		}
		if target != nil {
			return target.OnMouseMoved(x, y, dx, dy)
		}
	}

	inScope := w.MouseOnTop(x, y) || w.mousePressed || w.wasScrolling
	if !inScope {
		if w.hovering {
			w.leave(x, y)
		}
		return false
	}

	if w.MouseOnTop(x, y) {
		if !w.hovering {
			w.hovering = true
			w.tooltipOpen = len(w.tooltip) > 0
			if w.OnMouseEnter != nil {
				w.OnMouseEnter(x, y)
			}
		}
	} else if w.hovering {
		w.leave(x, y)
	}

	if w.activeChild == nil && w.mousePressed && w.Draggable {
		w.dragged = true
		w.renderer.SetCursor(CursorHand)
		nx, ny := x-w.position.DX, y-w.position.DY
		if w.parent != nil {
			px, py := w.parent.ContentOffset()
			w.SetPosition(nx-px-w.border.Width, ny-py-w.border.Width)
		} else {
			w.SetPosition(nx, ny)
		}
	}
	return true
}

// leave fires the widget's leave transition: hover state, tooltip and
// cursor reset, leave callback, and the same recursively for hovered
// children.
func (w *Widget) leave(x, y float32) {
	w.hovering = false
	w.tooltipOpen = false
	w.renderer.SetCursor(CursorArrow)
	if w.OnMouseLeave != nil {
		w.OnMouseLeave(x, y)
	}
	for _, c := range w.children {
		if cb := c.Base(); cb.hovering {
			cb.leave(x, y)
		}
	}
}

// OnMouseWheel implements Node. Wheel events carry no coordinates, so
// containment is tested against the last cached pointer position. The
// first child that contains the position and reports handling the event
// consumes it; only then does a scrollable widget consume it itself.
func (w *Widget) OnMouseWheel(delta float32) bool {
	if !w.Visible {
		return false
	}
	for _, c := range w.children {
		cb := c.Base()
		cb.lastX, cb.lastY = w.lastX, w.lastY
		if cb.MouseOnTop(w.lastX, w.lastY) && c.OnMouseWheel(delta) {
			return true
		}
	}
	if w.Scrollable {
		w.wasScrolling = true
		return true
	}
	return false
}

// OnTextInput implements Node. Text goes to the active child only;
// without one the event is unhandled.
func (w *Widget) OnTextInput(text string) bool {
	if !w.Visible {
		return false
	}
	if w.activeChild != nil {
		return w.activeChild.OnTextInput(text)
	}
	return false
}
