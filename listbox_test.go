package widgets

import "testing"

// newTestList returns a shown root list with 10px rows and a 30px
// viewport, filled with n single-column rows.
func newTestList(r *mockRenderer, n int) *ListBox {
	l := NewListBox(nil, testStyle(), r)
	l.SetSize(100, 30)
	l.SetPosition(0, 0)
	l.Show()
	for i := 0; i < n; i++ {
		l.AddRow(i, Text("row"))
	}
	return l
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListBox_VisibleWindowInitial(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	want := []int{0, 1, 2, 3} // three on screen plus the margin row
	if got := l.VisibleRows(); !equalInts(got, want) {
		t.Errorf("VisibleRows = %v, want %v", got, want)
	}
}

func TestListBox_VisibleWindowAfterOneRowScroll(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	l.SetScrollOffset(10)
	want := []int{1, 2, 3, 4}
	if got := l.VisibleRows(); !equalInts(got, want) {
		t.Errorf("VisibleRows = %v, want %v", got, want)
	}
}

func TestListBox_WindowMatchesFullScanBothDirections(t *testing.T) {
	l := newTestList(newMockRenderer(), 200)
	offsets := []float32{0, 5, 10, 95, 100, 730, 1970, 1969.5, 400, 33, 0, 1250, 1249, 1251, 0}
	for _, off := range offsets {
		l.SetScrollOffset(off)
		got := l.VisibleRows()
		want := l.visibleRowsFullScan()
		if !equalInts(got, want) {
			t.Fatalf("offset %v: incremental window %v, full scan %v", off, got, want)
		}
		for i := 1; i < len(got); i++ {
			if got[i] != got[i-1]+1 {
				t.Fatalf("offset %v: window not contiguous ascending: %v", off, got)
			}
		}
	}
}

func TestListBox_ScrollClampsToContent(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	l.SetScrollOffset(10000)
	if got := l.ScrollOffset(); got != 20 { // 50px content minus 30px viewport
		t.Errorf("ScrollOffset = %v, want 20", got)
	}
	l.SetScrollOffset(-50)
	if got := l.ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset = %v, want 0", got)
	}
}

func TestListBox_ColumnRangesSplitOnMarkers(t *testing.T) {
	l := newTestList(newMockRenderer(), 0)
	l.AddRow(nil,
		Text("a"), Text("b"),
		ColumnEnd(),
		WithColor(ColorWhite), Text("c"),
		ColumnEnd(),
	)
	row := l.rows[0]
	want := []colRange{{0, 2}, {3, 5}, {6, 6}}
	if len(row.cols) != len(want) {
		t.Fatalf("got %d column ranges, want %d", len(row.cols), len(want))
	}
	for i, cr := range row.cols {
		if cr != want[i] {
			t.Errorf("column %d range = %v, want %v", i, cr, want[i])
		}
	}
}

func TestListBox_ExpandingColumnTracksWidestRow(t *testing.T) {
	l := newTestList(newMockRenderer(), 0)
	l.AddColumn("", 0, true)

	// Cell widths: 10px, 30px, 20px at 5px per glyph.
	l.AddRow(nil, Text("ab"))
	l.AddRow(nil, Text("abcdef"))
	l.AddRow(nil, Text("abcd"))

	if w := l.Columns()[0].Width; w != 30 {
		t.Fatalf("expanding column width = %v, want 30", w)
	}

	l.RemoveRow(1)
	if w := l.Columns()[0].Width; w != 20 {
		t.Errorf("after removing the widest row width = %v, want 20", w)
	}
	if lr := l.columns[0].longestRow; lr != 1 {
		t.Errorf("longest row cache = %d, want 1", lr)
	}
}

func TestListBox_FixedColumnIgnoresContent(t *testing.T) {
	l := newTestList(newMockRenderer(), 0)
	l.AddColumn("", 25, false)
	l.AddRow(nil, Text("very long content here"))
	if w := l.Columns()[0].Width; w != 25 {
		t.Errorf("fixed column width = %v, want 25", w)
	}
}

func TestListBox_RemoveRowShiftsFollowing(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	y3 := l.rows[3].y
	l.RemoveRow(1)

	if n := l.RowCount(); n != 4 {
		t.Fatalf("RowCount = %d, want 4", n)
	}
	// Old row 3 is now row 2, shifted up by the removed row's height.
	if got := l.rows[2].y; got != y3-10 {
		t.Errorf("shifted row y = %v, want %v", got, y3-10)
	}
	if got, want := l.VisibleRows(), l.visibleRowsFullScan(); !equalInts(got, want) {
		t.Errorf("window after removal %v, full scan %v", got, want)
	}
}

func TestListBox_RemoveRowOutOfRangeIsNoop(t *testing.T) {
	l := newTestList(newMockRenderer(), 3)
	l.RemoveRow(-1)
	l.RemoveRow(3)
	if n := l.RowCount(); n != 3 {
		t.Errorf("RowCount = %d, want 3", n)
	}
}

func TestListBox_RemoveRowRenumbersSelection(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	l.selectedRow = 3
	l.RemoveRow(1)
	if l.selectedRow != 2 {
		t.Errorf("selection should follow the renumbered row, got %d", l.selectedRow)
	}
	l.RemoveRow(2)
	if l.selectedRow != -1 {
		t.Errorf("removing the selected row should clear selection, got %d", l.selectedRow)
	}
}

func TestListBox_RowData(t *testing.T) {
	l := newTestList(newMockRenderer(), 0)
	l.AddRow("payload", Text("a"))
	l.AddRow(nil, Text("b"))

	if data, ok := l.RowData(0); !ok || data != "payload" {
		t.Errorf("RowData(0) = %v, %v", data, ok)
	}
	if _, ok := l.RowData(1); ok {
		t.Error("row without payload should report absence")
	}
	if _, ok := l.RowData(99); ok {
		t.Error("out-of-range index should report absence")
	}
}

func TestListBox_ClickSelectsRowAndFiresCallback(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	var gotIdx int = -1
	var gotData any
	l.OnRowClick = func(index int, data any) {
		gotIdx = index
		gotData = data
	}

	l.OnMousePressed(MouseButtonLeft, 50, 15, 1)
	l.OnMouseReleased(MouseButtonLeft, 50, 15)

	if gotIdx != 1 {
		t.Fatalf("clicked row = %d, want 1", gotIdx)
	}
	if gotData != 1 {
		t.Errorf("payload = %v, want 1", gotData)
	}
	if l.SelectedRow() != 1 {
		t.Errorf("SelectedRow = %d, want 1", l.SelectedRow())
	}
}

func TestListBox_PressReleaseOnDifferentRowsDoesNotClick(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	fired := false
	l.OnRowClick = func(index int, data any) { fired = true }

	l.OnMousePressed(MouseButtonLeft, 50, 5, 1)
	l.OnMouseReleased(MouseButtonLeft, 50, 25)

	if fired {
		t.Error("press and release on different rows should not click")
	}
	if l.SelectedRow() != -1 {
		t.Error("selection should be unchanged")
	}
}

func TestListBox_ClickAccountsForScroll(t *testing.T) {
	l := newTestList(newMockRenderer(), 20)
	l.SetScrollOffset(50)
	var gotIdx int = -1
	l.OnRowClick = func(index int, data any) { gotIdx = index }

	l.OnMousePressed(MouseButtonLeft, 50, 5, 1)
	l.OnMouseReleased(MouseButtonLeft, 50, 5)

	if gotIdx != 5 {
		t.Errorf("clicked row = %d, want 5", gotIdx)
	}
}

func TestListBox_HeaderShrinksViewport(t *testing.T) {
	l := newTestList(newMockRenderer(), 0)
	l.AddColumn("name", 50, false)
	for i := 0; i < 5; i++ {
		l.AddRow(nil, Text("row"))
	}
	// Header is 10px line height with zero padding, leaving 20px of body.
	want := []int{0, 1, 2}
	if got := l.visibleRowsFullScan(); !equalInts(got, want) {
		t.Errorf("full scan = %v, want %v", got, want)
	}
	if got := l.VisibleRows(); !equalInts(got, want) {
		t.Errorf("VisibleRows = %v, want %v", got, want)
	}
}

func TestListBox_RelayoutAfterMetricsChange(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	l.style.Font = &mockFont{lineH: 20, charW: 10}
	l.Relayout()

	if h := l.rows[0].h; h != 20 {
		t.Errorf("row height after relayout = %v, want 20", h)
	}
	if got, want := l.VisibleRows(), l.visibleRowsFullScan(); !equalInts(got, want) {
		t.Errorf("window after relayout %v, full scan %v", got, want)
	}
}

func TestListBox_ResizeRefreshesVisibleWindow(t *testing.T) {
	l := newTestList(newMockRenderer(), 20)
	if got, want := l.VisibleRows(), []int{0, 1, 2, 3}; !equalInts(got, want) {
		t.Fatalf("VisibleRows = %v, want %v", got, want)
	}

	l.SetSize(100, 80)
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	if got := l.VisibleRows(); !equalInts(got, want) {
		t.Errorf("window after growing the viewport = %v, want %v", got, want)
	}
	if got, want := l.VisibleRows(), l.visibleRowsFullScan(); !equalInts(got, want) {
		t.Errorf("incremental window %v, full scan %v", got, want)
	}

	l.SetSize(100, 20)
	if got, want := l.VisibleRows(), l.visibleRowsFullScan(); !equalInts(got, want) {
		t.Errorf("window after shrinking the viewport %v, full scan %v", got, want)
	}
}

func TestListBox_ResizeClampsScrollOffset(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	l.SetScrollOffset(20) // content 50, viewport 30
	l.SetSize(100, 45)
	if got := l.ScrollOffset(); got != 5 {
		t.Errorf("ScrollOffset after resize = %v, want 5", got)
	}
}

func TestListBox_OverlayChildAbsorbsRowClick(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	overlay := New(l, nil, nil)
	overlay.SetSize(100, 20)
	overlay.SetPosition(0, 0)
	fired := false
	l.OnRowClick = func(index int, data any) { fired = true }

	l.OnMousePressed(MouseButtonLeft, 50, 5, 1)
	if l.pressedRow != -1 {
		t.Fatalf("press absorbed by a child should not arm a row, pressedRow = %d", l.pressedRow)
	}
	l.OnMouseReleased(MouseButtonLeft, 50, 5)

	if fired {
		t.Error("press and release on an overlay child should not click a row")
	}
	if l.SelectedRow() != -1 {
		t.Error("selection should be unchanged")
	}
}

func TestListBox_RemoveUnrelatedRowKeepsPressCoherent(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	var gotIdx int = -1
	var gotData any
	l.OnRowClick = func(index int, data any) {
		gotIdx = index
		gotData = data
	}

	l.OnMousePressed(MouseButtonLeft, 50, 35, 1) // row 3
	l.RemoveRow(0)
	l.OnMouseReleased(MouseButtonLeft, 50, 25) // same row, shifted up

	if gotIdx != 2 {
		t.Fatalf("clicked row = %d, want renumbered 2", gotIdx)
	}
	if gotData != 3 {
		t.Errorf("payload = %v, want the originally pressed row's payload 3", gotData)
	}
}

func TestListBox_RemovePressedRowCancelsGesture(t *testing.T) {
	l := newTestList(newMockRenderer(), 5)
	fired := false
	l.OnRowClick = func(index int, data any) { fired = true }

	l.OnMousePressed(MouseButtonLeft, 50, 15, 1) // row 1
	l.RemoveRow(1)
	l.OnMouseReleased(MouseButtonLeft, 50, 15)

	if fired {
		t.Error("removing the pressed row should cancel the click gesture")
	}
}

func TestListBox_DrawOnlyTouchesVisibleRows(t *testing.T) {
	r := newMockRenderer()
	l := NewListBox(nil, testStyle(), r)
	l.SetSize(100, 30)
	l.SetPosition(0, 0)
	l.Show()
	l.AddColumn("", 50, false)
	for i := 0; i < 200; i++ {
		l.AddRow(i, Text("row"))
	}
	l.Draw()

	if len(r.texts) != len(l.VisibleRows()) {
		t.Errorf("drew %d rows, window has %d", len(r.texts), len(l.VisibleRows()))
	}
	if r.clipDepth != 0 {
		t.Errorf("clip push/pop should balance, depth = %d", r.clipDepth)
	}
}
