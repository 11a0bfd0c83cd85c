package widgets

import "testing"

// mockChain is a minimal event chain recording registrations.
type mockChain struct {
	filters []EventFilter
}

func (c *mockChain) AddFilter(f EventFilter) { c.filters = append(c.filters, f) }

func (c *mockChain) RemoveFilter(f EventFilter) {
	for i, cur := range c.filters {
		if cur == f {
			c.filters = append(c.filters[:i], c.filters[i+1:]...)
			return
		}
	}
}

func newBridgedRoot(t *testing.T) (*Widget, *Bridge, *mockChain) {
	t.Helper()
	root := New(nil, testStyle(), newMockRenderer())
	root.SetSize(100, 100)
	root.SetPosition(100, 100)
	root.Show()
	chain := &mockChain{}
	b, err := InstallBridge(root, chain)
	if err != nil {
		t.Fatalf("InstallBridge: %v", err)
	}
	return root, b, chain
}

func TestInstallBridge_RejectsParentedWidget(t *testing.T) {
	root := newTestRoot(newMockRenderer())
	child := New(root, nil, nil)
	if _, err := InstallBridge(child, &mockChain{}); err != ErrNotRoot {
		t.Fatalf("err = %v, want ErrNotRoot", err)
	}
}

func TestInstallBridge_RegistersOnChain(t *testing.T) {
	_, b, chain := newBridgedRoot(t)
	if len(chain.filters) != 1 {
		t.Fatalf("chain has %d filters, want 1", len(chain.filters))
	}
	b.Uninstall()
	if len(chain.filters) != 0 {
		t.Error("Uninstall should remove the filter")
	}
}

func TestBridge_ConsumesEventsInsideRoot(t *testing.T) {
	_, b, _ := newBridgedRoot(t)
	if !b.FilterMousePressed(MouseButtonLeft, 150, 150, 1) {
		t.Error("press inside the tree should be consumed")
	}
	if !b.FilterMouseReleased(MouseButtonLeft, 150, 150) {
		t.Error("release finishing a press should be consumed")
	}
}

func TestBridge_DeclinesEventsOutsideRoot(t *testing.T) {
	_, b, _ := newBridgedRoot(t)
	if b.FilterMousePressed(MouseButtonLeft, 10, 10, 1) {
		t.Error("press outside the tree should fall through to the host")
	}
}

func TestBridge_OutsidePressSuppressesUntilRelease(t *testing.T) {
	root, b, _ := newBridgedRoot(t)

	b.FilterMousePressed(MouseButtonLeft, 10, 10, 1)

	// A host-side drag swinging over the tree must not be captured.
	if b.FilterMouseMoved(150, 150, 140, 140) {
		t.Fatal("move during an outside press should fall through")
	}
	if root.hovering {
		t.Error("suppressed moves should not reach the tree")
	}
	if b.FilterMouseWheel(1) {
		t.Error("wheel during an outside press should fall through")
	}

	b.FilterMouseReleased(MouseButtonLeft, 150, 150)
	if !b.FilterMouseMoved(150, 150, 0, 0) {
		t.Error("after the release, moves should route normally again")
	}
	if !root.hovering {
		t.Error("tree should see moves again after the release")
	}
}

func TestBridge_UpdateAndDrawNeverConsume(t *testing.T) {
	_, b, _ := newBridgedRoot(t)
	if b.FilterUpdate() {
		t.Error("update interception must stay interleaved with the host")
	}
	if b.FilterDraw() {
		t.Error("draw interception must stay interleaved with the host")
	}
}

func TestBridge_InterceptOptOut(t *testing.T) {
	r := newMockRenderer()
	root := New(nil, testStyle(), r)
	root.SetSize(100, 100)
	root.SetPosition(0, 0)
	root.SetLabel(Text("x"))
	root.Show()
	chain := &mockChain{}
	b, err := InstallBridge(root, chain, WithoutDrawIntercept())
	if err != nil {
		t.Fatalf("InstallBridge: %v", err)
	}

	b.FilterDraw()
	if len(r.texts) != 0 {
		t.Error("draw opt-out should leave drawing to the host")
	}
	b.FilterUpdate() // update interception still on
}
