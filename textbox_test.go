package widgets

import "testing"

// mockDocView is a minimal host document view for tests.
type mockDocView struct {
	text    string
	active  bool
	updates int
	draws   int
}

func (v *mockDocView) SetActive(active bool) { v.active = active }

func (v *mockDocView) TextInput(text string) bool {
	v.text += text
	return true
}

func (v *mockDocView) Update() { v.updates++ }

func (v *mockDocView) Draw(r Renderer, x, y, w, h float32) { v.draws++ }

func (v *mockDocView) Text() string { return v.text }

func TestTextBox_ClickActivates(t *testing.T) {
	root := newTestRoot(newMockRenderer())
	view := &mockDocView{}
	box := NewTextBox(root, nil, nil, view)
	box.SetSize(100, 20)
	box.SetPosition(10, 10)

	if box.Active() {
		t.Fatal("textbox should start inactive")
	}
	root.OnMousePressed(MouseButtonLeft, 20, 20, 1)
	root.OnMouseReleased(MouseButtonLeft, 20, 20)

	if !box.Active() {
		t.Fatal("click should activate the textbox")
	}
	if !view.active {
		t.Error("activation should reach the view")
	}
	if root.ActiveChild() != Node(box) {
		t.Error("textbox should be the root's active child")
	}
}

func TestTextBox_FocusMovesBetweenBoxes(t *testing.T) {
	root := newTestRoot(newMockRenderer())
	a := NewTextBox(root, nil, nil, &mockDocView{})
	a.SetSize(100, 20)
	a.SetPosition(10, 10)
	b := NewTextBox(root, nil, nil, &mockDocView{})
	b.SetSize(100, 20)
	b.SetPosition(10, 50)

	root.OnMousePressed(MouseButtonLeft, 20, 20, 1)
	root.OnMouseReleased(MouseButtonLeft, 20, 20)
	root.OnMousePressed(MouseButtonLeft, 20, 55, 1)
	root.OnMouseReleased(MouseButtonLeft, 20, 55)

	if a.Active() {
		t.Error("first box should have lost focus")
	}
	if !b.Active() {
		t.Error("second box should hold focus")
	}
}

func TestTextBox_OnChangeFiresPerInput(t *testing.T) {
	root := newTestRoot(newMockRenderer())
	view := &mockDocView{}
	box := NewTextBox(root, nil, nil, view)
	box.SetSize(100, 20)
	box.SetPosition(10, 10)
	var last string
	box.OnChange = func(text string) { last = text }

	root.OnMousePressed(MouseButtonLeft, 20, 20, 1)
	root.OnMouseReleased(MouseButtonLeft, 20, 20)
	root.OnTextInput("h")
	root.OnTextInput("i")

	if box.Text() != "hi" {
		t.Errorf("Text = %q, want %q", box.Text(), "hi")
	}
	if last != "hi" {
		t.Errorf("OnChange saw %q, want %q", last, "hi")
	}
}

func TestTextBox_UpdateAndDrawDelegate(t *testing.T) {
	root := newTestRoot(newMockRenderer())
	view := &mockDocView{}
	box := NewTextBox(root, nil, nil, view)
	box.SetSize(100, 20)
	box.SetPosition(10, 10)

	root.Update()
	root.Draw()
	if view.updates != 1 {
		t.Errorf("view updates = %d, want 1", view.updates)
	}
	if view.draws != 1 {
		t.Errorf("view draws = %d, want 1", view.draws)
	}

	box.Hide()
	root.Update()
	root.Draw()
	if view.updates != 1 || view.draws != 1 {
		t.Error("hidden textbox should not tick or draw its view")
	}
}
