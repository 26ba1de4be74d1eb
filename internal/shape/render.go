package shape

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// Stroke styling shared by the outline variants.
const (
	LineWidth = 10

	TextFontSize    = 32
	TextStrokeWidth = 2
)

var (
	ArrowColor  color.Color = colornames.Red
	BoxColor    color.Color = colornames.Blue
	CircleColor color.Color = colornames.Green
	TextFill    color.Color = colornames.White
	TextStroke  color.Color = colornames.Black
)

// Render draws s onto ctx. Each variant sets its own style first so the
// result does not depend on whatever state ctx was left in.
func (s Shape) Render(ctx Context) {
	switch s.Kind {
	case Arrow:
		s.renderArrow(ctx)
	case Box:
		s.renderBox(ctx)
	case Circle:
		s.renderCircle(ctx)
	case Text:
		s.renderText(ctx)
	}
}

func outline(ctx Context, c color.Color) {
	ctx.SetStrokeColor(c)
	ctx.SetFillColor(c)
	ctx.SetLineWidth(LineWidth)
	ctx.SetLineCap(LineCapRound)
}

func (s Shape) renderArrow(ctx Context) {
	outline(ctx, ArrowColor)
	left, right := s.ArrowHead()
	ctx.BeginPath()
	ctx.MoveTo(s.Begin.X, s.Begin.Y)
	ctx.LineTo(s.End.X, s.End.Y)
	ctx.MoveTo(s.End.X, s.End.Y)
	ctx.LineTo(left.X, left.Y)
	ctx.MoveTo(s.End.X, s.End.Y)
	ctx.LineTo(right.X, right.Y)
	ctx.Stroke()
}

// dot marks p with a disc one line width across. Zero-size outlines have
// no length to stroke.
func dot(ctx Context, p Point) {
	ctx.BeginPath()
	ctx.Arc(p.X, p.Y, LineWidth/4.0, 0, 2*math.Pi)
	ctx.SetLineWidth(LineWidth / 2)
	ctx.Stroke()
}

func (s Shape) renderBox(ctx Context) {
	outline(ctx, BoxColor)
	if s.Width() == 0 && s.Height() == 0 {
		dot(ctx, s.Begin)
		return
	}
	c := s.Corners()
	ctx.BeginPath()
	ctx.MoveTo(c[0].X, c[0].Y)
	for _, p := range c[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.ClosePath()
	ctx.Stroke()
}

func (s Shape) renderCircle(ctx Context) {
	outline(ctx, CircleColor)
	if s.Radius() == 0 {
		dot(ctx, s.Begin)
		return
	}
	ctx.BeginPath()
	ctx.Arc(s.Begin.X, s.Begin.Y, s.Radius(), 0, 2*math.Pi)
	ctx.Stroke()
}

// renderText fills the label then strokes it so it stays legible on both
// light and dark screenshots.
func (s Shape) renderText(ctx Context) {
	ctx.SetFontSize(TextFontSize)
	ctx.SetLineCap(LineCapRound)
	ctx.SetFillColor(TextFill)
	ctx.FillText(s.Text, s.Begin.X, s.Begin.Y)
	ctx.SetStrokeColor(TextStroke)
	ctx.SetLineWidth(TextStrokeWidth)
	ctx.StrokeText(s.Text, s.Begin.X, s.Begin.Y)
}
