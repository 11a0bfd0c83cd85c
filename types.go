// Package widgets implements a retained-mode widget tree that renders
// through a host-provided immediate drawing API. Widgets form a z-ordered
// hierarchy; the tree owns hit-testing, event dispatch, focus delegation
// and drag handling, while all pixel output goes through the Renderer
// capability interface.
package widgets

// Position holds a widget's coordinates. X and Y are absolute screen
// coordinates and are derived from the parent's content offset whenever
// the widget has a parent; RX and RY are the coordinates relative to the
// parent's content area and are the authoritative pair for parented
// widgets. DX and DY are the drag anchor offsets recorded on press.
type Position struct {
	X, Y   float32
	RX, RY float32
	DX, DY float32
}

// Size is a widget's content size, excluding border.
type Size struct {
	X, Y float32
}

// Border describes a widget border. The border inflates the widget's
// occupied rectangle symmetrically on all sides. A zero Color means the
// border is not drawn but still affects geometry.
type Border struct {
	Width float32
	Color uint32
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32
	W, H float32
}

// Contains returns true if the point lies inside the rectangle.
// The test is inclusive on all edges.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorLightGray   uint32 = 0xFFC0C0C0
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA extracts RGBA components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
