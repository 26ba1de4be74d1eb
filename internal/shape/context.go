package shape

import "image/color"

// LineCap controls how open path ends are drawn.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// Context is the drawing surface a shape renders onto. It mirrors the
// stateful 2D canvas model: style setters apply to subsequent draw calls
// until changed or until Restore pops the state pushed by Save.
type Context interface {
	Save()
	Restore()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)
	SetFontSize(size float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Arc adds a circular arc from start to end radians, clockwise in
	// screen space.
	Arc(cx, cy, r, start, end float64)
	Stroke()

	// FillText and StrokeText draw text with its baseline-left corner at
	// (x, y).
	FillText(text string, x, y float64)
	StrokeText(text string, x, y float64)
}
