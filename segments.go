package widgets

import "strings"

// SegmentKind tags the meaning of one styled segment.
type SegmentKind int

const (
	// SegmentText is a literal text run; embedded newlines split it into
	// multiple visual lines.
	SegmentText SegmentKind = iota
	// SegmentFont switches the current font without advancing position.
	SegmentFont
	// SegmentColor switches the current color without advancing position.
	SegmentColor
	// SegmentLineBreak forces a new visual line and resets the cursor.
	SegmentLineBreak
	// SegmentColumnEnd marks a column boundary in list rows. The walker
	// itself treats it as inert.
	SegmentColumnEnd
)

// Segment is one element of a styled content sequence: a font switch, a
// color switch, a line-break marker, a column-end marker, or a text run.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Font  Font
	Color uint32
}

// Text returns a text-run segment.
func Text(s string) Segment { return Segment{Kind: SegmentText, Text: s} }

// WithFont returns a font-switch segment.
func WithFont(f Font) Segment { return Segment{Kind: SegmentFont, Font: f} }

// WithColor returns a color-switch segment.
func WithColor(c uint32) Segment { return Segment{Kind: SegmentColor, Color: c} }

// LineBreak returns a line-break marker segment.
func LineBreak() Segment { return Segment{Kind: SegmentLineBreak} }

// ColumnEnd returns a column-end marker segment.
func ColumnEnd() Segment { return Segment{Kind: SegmentColumnEnd} }

// MeasureSegments returns the dimensions segs[from:to) would occupy when
// drawn with style's default font and color. It shares one code path with
// DrawSegments, so measuring and drawing the same range always agree.
func MeasureSegments(style *Style, segs []Segment, from, to int) (w, h float32) {
	return renderSegments(nil, style, segs, from, to, 0, 0, false)
}

// DrawSegments draws segs[from:to) at (x, y) and returns the occupied
// dimensions.
func DrawSegments(r Renderer, style *Style, segs []Segment, from, to int, x, y float32) (w, h float32) {
	return renderSegments(r, style, segs, from, to, x, y, true)
}

// renderSegments walks the half-open range segs[from:to) left to right,
// maintaining a current font and color. Text runs advance the cursor by
// their measured width; line breaks (explicit markers or embedded
// newlines) reset the cursor and accumulate the current line height. The
// returned pair is the max width over visual lines and the sum of line
// heights. The draw flag only adds DrawText calls; geometry is identical
// either way.
func renderSegments(r Renderer, style *Style, segs []Segment, from, to int, x, y float32, draw bool) (float32, float32) {
	font := style.Font
	color := style.TextColor

	startX := x
	var maxW, totalH float32
	lineH := font.LineHeight()

	newline := func() {
		maxW = maxf(maxW, x-startX)
		totalH += lineH
		y += lineH
		x = startX
		lineH = font.LineHeight()
	}

	if from < 0 {
		from = 0
	}
	if to > len(segs) {
		to = len(segs)
	}
	for i := from; i < to; i++ {
		seg := segs[i]
		switch seg.Kind {
		case SegmentFont:
			if seg.Font != nil {
				font = seg.Font
			}
			lineH = maxf(lineH, font.LineHeight())
		case SegmentColor:
			color = seg.Color
		case SegmentLineBreak:
			newline()
		case SegmentColumnEnd:
			// Column boundaries carry no geometry of their own.
		case SegmentText:
			parts := strings.Split(seg.Text, "\n")
			for j, part := range parts {
				if j > 0 {
					newline()
				}
				if part == "" {
					continue
				}
				if draw {
					r.DrawText(font, part, x, y, color)
				}
				x += font.TextWidth(part)
				lineH = maxf(lineH, font.LineHeight())
			}
		}
	}
	maxW = maxf(maxW, x-startX)
	totalH += lineH
	return maxW, totalH
}
