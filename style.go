package widgets

// Style defines the visual constants of a widget tree. It is injected at
// construction and shared by reference down the tree; treat it as
// immutable while the tree is live. There is no global style: two trees
// can carry two different styles side by side.
type Style struct {
	// Fonts
	Font Font // default text font

	// Colors
	TextColor        uint32
	BackgroundColor  uint32
	BorderColor      uint32
	HoverColor       uint32
	SelectedColor    uint32
	HeaderColor      uint32
	TooltipColor     uint32
	TooltipTextColor uint32
	ScrollbarColor   uint32

	// Sizing
	Padding Size    // inner padding around labels and cells
	Scale   float32 // global UI scale factor
}

// DefaultStyle returns the default dark style. The Font field is left nil
// and must be set by the caller before the style is used.
func DefaultStyle() Style {
	return Style{
		TextColor:        ColorWhite,
		BackgroundColor:  RGBA(30, 30, 30, 255),
		BorderColor:      RGBA(80, 80, 80, 255),
		HoverColor:       RGBA(60, 60, 60, 255),
		SelectedColor:    RGBA(50, 100, 150, 255),
		HeaderColor:      RGBA(40, 40, 45, 255),
		TooltipColor:     RGBA(20, 20, 20, 240),
		TooltipTextColor: ColorLightGray,
		ScrollbarColor:   RGBA(80, 80, 80, 255),
		Padding:          Size{X: 8, Y: 4},
		Scale:            1,
	}
}

// LightStyle returns a light theme.
func LightStyle() Style {
	return Style{
		TextColor:        RGBA(20, 20, 20, 255),
		BackgroundColor:  RGBA(245, 245, 245, 255),
		BorderColor:      RGBA(200, 200, 200, 255),
		HoverColor:       RGBA(225, 225, 225, 255),
		SelectedColor:    RGBA(0, 120, 215, 255),
		HeaderColor:      RGBA(230, 230, 230, 255),
		TooltipColor:     RGBA(255, 255, 235, 255),
		TooltipTextColor: RGBA(20, 20, 20, 255),
		ScrollbarColor:   RGBA(180, 180, 180, 255),
		Padding:          Size{X: 8, Y: 4},
		Scale:            1,
	}
}
