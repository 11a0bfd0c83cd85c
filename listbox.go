package widgets

// Column describes one list column. A non-expanding column keeps its
// fixed width; an expanding column's width follows its widest cell,
// cached through the index of the row currently holding the longest
// measured content so updates avoid rescanning every row.
type Column struct {
	Name   string
	Width  float32
	Expand bool

	longestRow int
}

// colRange is a half-open segment index range covering one column of a
// row. Ranges are derived once at insertion and only change when the
// row's segment sequence changes.
type colRange struct {
	start, end int
}

// listRow is one list row: its styled segments, the per-column segment
// ranges, the lazily cached layout and an opaque payload.
type listRow struct {
	segments []Segment
	cols     []colRange
	y, h     float32
	data     any
}

// ListBox is a virtualized list widget. Rows are plain data, not child
// widgets; only the rows intersecting the scrolled viewport are laid out
// on screen each frame, tracked by an incrementally maintained visible
// window.
type ListBox struct {
	*Widget

	columns []Column
	rows    []*listRow
	totalH  float32

	// visible is the window of row indices believed to intersect the
	// viewport. It is always a contiguous ascending run.
	visible []int
	scrollY float32

	hoveredRow  int
	pressedRow  int
	selectedRow int

	// OnRowClick fires when a press and the matching release both land
	// on the same row.
	OnRowClick func(index int, data any)
}

// NewListBox creates a list widget. Style and renderer follow the same
// root/parented rules as New.
func NewListBox(parent Node, style *Style, r Renderer) *ListBox {
	l := &ListBox{
		hoveredRow:  -1,
		pressedRow:  -1,
		selectedRow: -1,
	}
	l.Widget = &Widget{}
	l.Widget.init(parent, style, r)
	l.Scrollable = true
	if parent != nil {
		attach(parent, l)
	}
	return l
}

// AddColumn appends a column. For an expanding column width is the
// minimum width; it grows with the widest cell.
func (l *ListBox) AddColumn(name string, width float32, expand bool) {
	if name != "" {
		width = maxf(width, l.style.Font.TextWidth(name))
	}
	l.columns = append(l.columns, Column{
		Name:       name,
		Width:      width,
		Expand:     expand,
		longestRow: -1,
	})
}

// Columns returns the current column set.
func (l *ListBox) Columns() []Column { return l.columns }

// AddRow appends a row built from styled segments; ColumnEnd markers
// split the sequence into per-column ranges. The row's column ranges and
// layout are computed once here. Returns the new row's index.
func (l *ListBox) AddRow(data any, segs ...Segment) int {
	row := &listRow{
		segments: segs,
		cols:     splitColumns(segs),
		data:     data,
	}
	idx := len(l.rows)
	l.rows = append(l.rows, row)
	l.layoutRow(idx)
	row.y = l.totalH
	l.totalH += row.h
	l.updateVisibleRows()
	return idx
}

// splitColumns derives the half-open segment ranges per column by
// splitting on ColumnEnd markers. The markers themselves belong to no
// column.
func splitColumns(segs []Segment) []colRange {
	var cols []colRange
	start := 0
	for i, seg := range segs {
		if seg.Kind == SegmentColumnEnd {
			cols = append(cols, colRange{start: start, end: i})
			start = i + 1
		}
	}
	cols = append(cols, colRange{start: start, end: len(segs)})
	return cols
}

// layoutRow measures the row's cells, caches the row height and feeds
// expanding column widths. This is the only O(columns × segments) step
// per row and runs at insertion or on an explicit relayout.
func (l *ListBox) layoutRow(idx int) {
	row := l.rows[idx]
	row.h = l.style.Font.LineHeight()
	for ci, cr := range row.cols {
		if ci >= len(l.columns) {
			break
		}
		cw, ch := MeasureSegments(l.style, row.segments, cr.start, cr.end)
		row.h = maxf(row.h, ch)
		col := &l.columns[ci]
		if col.Expand && cw > col.Width {
			col.Width = cw
			col.longestRow = idx
		}
	}
	row.h += l.style.Padding.Y
}

// RemoveRow deletes the row at idx. Every later row shifts up by the
// removed row's cached height; expanding columns whose longest-row cache
// pointed at the row are rescanned; the visible window is renumbered, or
// fully recomputed when the removed row was inside it. An out-of-range
// index is a no-op.
func (l *ListBox) RemoveRow(idx int) {
	if idx < 0 || idx >= len(l.rows) {
		return
	}
	removed := l.rows[idx]
	for _, row := range l.rows[idx+1:] {
		row.y -= removed.h
	}
	l.totalH -= removed.h
	l.rows = append(l.rows[:idx], l.rows[idx+1:]...)

	for ci := range l.columns {
		col := &l.columns[ci]
		if !col.Expand {
			continue
		}
		switch {
		case col.longestRow == idx:
			l.recalcColumnWidth(ci)
		case col.longestRow > idx:
			col.longestRow--
		}
	}

	for _, ref := range []*int{&l.selectedRow, &l.hoveredRow, &l.pressedRow} {
		switch {
		case *ref == idx:
			*ref = -1
		case *ref > idx:
			*ref--
		}
	}

	if n := len(l.visible); n > 0 && idx >= l.visible[0] && idx <= l.visible[n-1] {
		// Removed inside the window: the remaining indices no longer
		// describe a valid band, recompute from scratch.
		l.visible = l.visible[:0]
		logger.Debug("visible window reset after in-window removal", "row", idx)
	} else {
		for i, vi := range l.visible {
			if vi > idx {
				l.visible[i] = vi - 1
			}
		}
	}
	l.SetScrollOffset(l.scrollY)
	l.updateVisibleRows()
}

// recalcColumnWidth rescans all rows for an expanding column after its
// longest row went away.
func (l *ListBox) recalcColumnWidth(ci int) {
	col := &l.columns[ci]
	col.Width = l.style.Font.TextWidth(col.Name)
	col.longestRow = -1
	for ri, row := range l.rows {
		if ci >= len(row.cols) {
			continue
		}
		cw, _ := MeasureSegments(l.style, row.segments, row.cols[ci].start, row.cols[ci].end)
		if cw > col.Width {
			col.Width = cw
			col.longestRow = ri
		}
	}
}

// RowCount returns the number of rows.
func (l *ListBox) RowCount() int { return len(l.rows) }

// RowData returns the payload stored with a row. The second result is
// false when the index has no row or the row carries no payload.
func (l *ListBox) RowData(idx int) (any, bool) {
	if idx < 0 || idx >= len(l.rows) || l.rows[idx].data == nil {
		return nil, false
	}
	return l.rows[idx].data, true
}

// SelectedRow returns the last clicked row index, or -1.
func (l *ListBox) SelectedRow() int { return l.selectedRow }

// ScrollOffset returns the current vertical scroll offset.
func (l *ListBox) ScrollOffset() float32 { return l.scrollY }

// SetScrollOffset scrolls the list, clamped to the content height, and
// updates the visible window incrementally.
func (l *ListBox) SetScrollOffset(y float32) {
	y = clampf(y, 0, maxf(0, l.totalH-l.viewportHeight()))
	if y != l.scrollY || len(l.visible) == 0 {
		l.scrollY = y
		l.updateVisibleRows()
	}
}

// SetSize sets the content size and refreshes the visible window, so a
// grown viewport admits newly visible rows without waiting for a scroll.
func (l *ListBox) SetSize(width, height float32) {
	l.Widget.SetSize(width, height)
	l.scrollY = clampf(l.scrollY, 0, maxf(0, l.totalH-l.viewportHeight()))
	l.updateVisibleRows()
}

// Relayout recomputes every row's layout and all column widths. The cost
// is O(rows); callers invoke it only on an explicit scale change or
// after bulk row mutation, never per frame.
func (l *ListBox) Relayout() {
	for ci := range l.columns {
		col := &l.columns[ci]
		if col.Expand {
			col.Width = l.style.Font.TextWidth(col.Name)
			col.longestRow = -1
		}
	}
	l.totalH = 0
	for i, row := range l.rows {
		l.layoutRow(i)
		row.y = l.totalH
		l.totalH += row.h
	}
	l.visible = l.visible[:0]
	l.SetScrollOffset(l.scrollY)
	l.updateVisibleRows()
}

// headerHeight returns the header band height, zero when no column has a
// name.
func (l *ListBox) headerHeight() float32 {
	for _, c := range l.columns {
		if c.Name != "" {
			return l.style.Font.LineHeight() + l.style.Padding.Y*2
		}
	}
	return 0
}

// viewportHeight is the body band available to rows.
func (l *ListBox) viewportHeight() float32 {
	return maxf(0, l.size.Y-l.headerHeight())
}

// VisibleRows returns the current window of row indices. The slice is
// owned by the list; do not mutate it.
func (l *ListBox) VisibleRows() []int { return l.visible }

// updateVisibleRows maintains the visible window incrementally. Both
// window edges slide from their previous values, so the cost is
// proportional to the scroll distance rather than the row count, and the
// result is independent of scroll direction: it always equals the full
// brute-force scan. The window is widened by one row past the last
// visible row as a safety margin against height-accumulation rounding
// and is always a contiguous ascending index run.
func (l *ListBox) updateVisibleRows() {
	top := l.scrollY
	bottom := top + l.viewportHeight()
	if len(l.rows) == 0 || bottom <= top {
		l.visible = l.visible[:0]
		return
	}

	first, last := 0, len(l.rows)-1
	if n := len(l.visible); n > 0 {
		first = clampi(l.visible[0], 0, len(l.rows)-1)
		last = clampi(l.visible[n-1], 0, len(l.rows)-1)
	}

	for first > 0 && l.rows[first-1].y+l.rows[first-1].h > top {
		first--
	}
	for first < len(l.rows)-1 && l.rows[first].y+l.rows[first].h <= top {
		first++
	}
	if last < first {
		last = first
	}
	for last < len(l.rows)-1 && l.rows[last+1].y < bottom {
		last++
	}
	for last > first && l.rows[last].y >= bottom {
		last--
	}
	if last < len(l.rows)-1 {
		last++
	}

	l.visible = l.visible[:0]
	for i := first; i <= last; i++ {
		l.visible = append(l.visible, i)
	}
}

// visibleRowsFullScan computes the visible window from scratch by
// scanning every row. It is the authoritative definition of visibility;
// updateVisibleRows must always agree with it. Kept as the recovery path
// and as the oracle for tests.
func (l *ListBox) visibleRowsFullScan() []int {
	top := l.scrollY
	bottom := top + l.viewportHeight()
	if bottom <= top {
		return nil
	}
	var out []int
	for i, row := range l.rows {
		if row.y+row.h > top && row.y < bottom {
			out = append(out, i)
		}
	}
	if n := len(out); n > 0 && out[n-1] < len(l.rows)-1 {
		out = append(out, out[n-1]+1)
	}
	return out
}

// ContentOffset implements Node: children and rows are positioned below
// the header band, shifted by the scroll offset.
func (l *ListBox) ContentOffset() (float32, float32) {
	return l.position.X, l.position.Y + l.headerHeight() - l.scrollY
}

// columnX returns the screen x of column ci's cell content.
func (l *ListBox) columnX(ci int) float32 {
	x := l.position.X + l.style.Padding.X
	for i := 0; i < ci && i < len(l.columns); i++ {
		x += l.columns[i].Width + l.style.Padding.X*2
	}
	return x
}

// rowAt maps a screen point to a row index within the visible window,
// or -1.
func (l *ListBox) rowAt(x, y float32) int {
	if x < l.position.X || x > l.position.X+l.size.X {
		return -1
	}
	hh := l.headerHeight()
	if y < l.position.Y+hh {
		return -1
	}
	cy := y - l.position.Y - hh + l.scrollY
	for _, idx := range l.visible {
		row := l.rows[idx]
		if cy >= row.y && cy < row.y+row.h {
			return idx
		}
	}
	return -1
}

// Draw implements Node. Only the rows in the visible window touch the
// renderer; everything is clipped to the body band. Hover state for the
// interaction state machine is derived here from each drawn row's cached
// rectangle.
func (l *ListBox) Draw() bool {
	if !l.Visible {
		return false
	}
	l.DrawBase()

	pos := l.position
	hh := l.headerHeight()
	if hh > 0 {
		l.renderer.DrawRect(pos.X, pos.Y, l.size.X, hh, l.style.HeaderColor)
		for ci, col := range l.columns {
			if col.Name != "" {
				l.renderer.DrawText(l.style.Font, col.Name, l.columnX(ci), pos.Y+l.style.Padding.Y, l.style.TextColor)
			}
		}
	}

	viewH := l.viewportHeight()
	l.renderer.PushClip(pos.X, pos.Y+hh, l.size.X, viewH)
	l.hoveredRow = -1
	for _, idx := range l.visible {
		row := l.rows[idx]
		ry := pos.Y + hh + row.y - l.scrollY
		rect := Rect{X: pos.X, Y: ry, W: l.size.X, H: row.h}
		if l.hovering && rect.Contains(l.lastX, l.lastY) {
			l.hoveredRow = idx
		}
		switch {
		case idx == l.selectedRow:
			l.renderer.DrawRect(rect.X, rect.Y, rect.W, rect.H, l.style.SelectedColor)
		case idx == l.hoveredRow:
			l.renderer.DrawRect(rect.X, rect.Y, rect.W, rect.H, l.style.HoverColor)
		}
		for ci, cr := range row.cols {
			if ci >= len(l.columns) {
				break
			}
			DrawSegments(l.renderer, l.style, row.segments, cr.start, cr.end, l.columnX(ci), ry)
		}
	}
	l.renderer.PopClip()
	l.drawScrollbar(pos, hh, viewH)

	for _, c := range l.children {
		c.Draw()
	}
	l.drawTooltip()
	return true
}

// drawScrollbar renders a thin thumb when the content overflows the
// viewport.
func (l *ListBox) drawScrollbar(pos Position, hh, viewH float32) {
	if l.totalH <= viewH || viewH <= 0 {
		return
	}
	const barW = 6
	thumbH := maxf(20, viewH*viewH/l.totalH)
	maxScroll := l.totalH - viewH
	thumbY := pos.Y + hh + (l.scrollY/maxScroll)*(viewH-thumbH)
	l.renderer.DrawRect(pos.X+l.size.X-barW, thumbY, barW, thumbH, l.style.ScrollbarColor)
}

// OnMousePressed implements Node: base dispatch plus recording the
// pressed row for the press/release click pair. A press absorbed by a
// child widget belongs to that child, not to a row, even though the
// base router marks the list pressed on the child's behalf.
func (l *ListBox) OnMousePressed(button MouseButton, x, y float32, clicks int) bool {
	childTook := false
	for _, c := range l.children {
		if cb := c.Base(); cb.MouseOnTop(x, y) && cb.Clickable {
			childTook = true
			break
		}
	}
	handled := l.Widget.OnMousePressed(button, x, y, clicks)
	if handled && !childTook && l.mousePressed {
		l.pressedRow = l.rowAt(x, y)
	}
	return handled
}

// OnMouseReleased implements Node. A release landing on the same row the
// press did confirms the selection and fires the row-click callback with
// the row's payload.
func (l *ListBox) OnMouseReleased(button MouseButton, x, y float32) bool {
	handled := l.Widget.OnMouseReleased(button, x, y)
	if handled && l.pressedRow >= 0 {
		if row := l.rowAt(x, y); row == l.pressedRow {
			l.selectedRow = row
			if l.OnRowClick != nil {
				data, _ := l.RowData(row)
				l.OnRowClick(row, data)
			}
		}
	}
	l.pressedRow = -1
	return handled
}

// OnMouseWheel implements Node: children get first refusal at the last
// pointer position, then the list scrolls itself.
func (l *ListBox) OnMouseWheel(delta float32) bool {
	if !l.Visible {
		return false
	}
	for _, c := range l.children {
		cb := c.Base()
		cb.lastX, cb.lastY = l.lastX, l.lastY
		if cb.MouseOnTop(l.lastX, l.lastY) && c.OnMouseWheel(delta) {
			return true
		}
	}
	l.wasScrolling = true
	l.SetScrollOffset(l.scrollY - delta*l.style.Font.LineHeight()*3)
	return true
}

// clampi clamps an int to a range.
func clampi(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
