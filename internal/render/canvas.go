// Package render composites a session's image and shapes into pixels.
package render

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/example/shotmark/internal/shape"
)

// Surface is what the compositor draws a frame onto.
type Surface interface {
	shape.Context
	// Resize makes the surface exactly w by h pixels.
	Resize(w, h int)
	// Clear sets every pixel to transparent.
	Clear()
	// DrawImage paints img at native size with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)
}

type canvasStyle struct {
	stroke   color.Color
	fill     color.Color
	fontSize float64
}

var defaultStyle = canvasStyle{
	stroke:   color.Black,
	fill:     color.Black,
	fontSize: 10,
}

// Canvas is a Surface backed by a gg context. gg's own Push and Pop carry
// line width, cap and clip; Canvas keeps the stroke and fill colours and
// font size on a parallel stack because gg holds only one active colour
// for text.
type Canvas struct {
	dc    *gg.Context
	style canvasStyle
	stack []canvasStyle
	faces faceCache
	sbuf  sfnt.Buffer
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.reset(w, h)
	return c
}

func (c *Canvas) reset(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.dc = gg.NewContext(w, h)
	c.style = defaultStyle
	c.stack = c.stack[:0]
}

// Resize replaces the backing image when the size changes. Existing
// pixels and saved state are discarded.
func (c *Canvas) Resize(w, h int) {
	if w == c.dc.Width() && h == c.dc.Height() {
		return
	}
	c.reset(w, h)
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (w, h int) { return c.dc.Width(), c.dc.Height() }

func (c *Canvas) Clear() {
	c.dc.Push()
	c.dc.ResetClip()
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
	c.dc.Pop()
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	c.dc.DrawImage(img, x-b.Min.X, y-b.Min.Y)
}

// Image returns the canvas pixels. The image is reused by later frames.
func (c *Canvas) Image() *image.RGBA {
	return c.dc.Image().(*image.RGBA)
}

// Copy returns a snapshot of the canvas pixels that later frames will not
// overwrite.
func (c *Canvas) Copy() *image.RGBA {
	src := c.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.style)
	c.dc.Push()
}

// Restore pops the state pushed by the matching Save. Unbalanced calls
// are ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.style = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

func (c *Canvas) SetStrokeColor(col color.Color) { c.style.stroke = col }
func (c *Canvas) SetFillColor(col color.Color)   { c.style.fill = col }
func (c *Canvas) SetLineWidth(w float64)         { c.dc.SetLineWidth(w) }
func (c *Canvas) SetFontSize(size float64)       { c.style.fontSize = size }

func (c *Canvas) SetLineCap(lc shape.LineCap) {
	switch lc {
	case shape.LineCapRound:
		c.dc.SetLineCap(gg.LineCapRound)
	case shape.LineCapSquare:
		c.dc.SetLineCap(gg.LineCapSquare)
	default:
		c.dc.SetLineCap(gg.LineCapButt)
	}
}

func (c *Canvas) BeginPath()          { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.dc.ClosePath() }

func (c *Canvas) Arc(cx, cy, r, start, end float64) {
	if r <= 0 || math.IsNaN(r) {
		c.dc.MoveTo(cx, cy)
		return
	}
	c.dc.DrawArc(cx, cy, r, start, end)
}

func (c *Canvas) Stroke() {
	c.dc.SetStrokeStyle(gg.NewSolidPattern(c.style.stroke))
	c.dc.Stroke()
}

// FillText draws text filled with the fill colour, baseline-left at (x, y).
func (c *Canvas) FillText(text string, x, y float64) {
	face, err := c.faces.face(c.style.fontSize)
	if err != nil {
		log.Printf("fill text: %v", err)
		return
	}
	c.dc.Push()
	c.dc.SetFontFace(face)
	c.dc.SetColor(c.style.fill)
	c.dc.DrawString(text, x, y)
	c.dc.Pop()
}

// StrokeText outlines text with the stroke colour, baseline-left at
// (x, y). The glyph outlines are traced into the path and stroked with the
// current line width.
func (c *Canvas) StrokeText(text string, x, y float64) {
	if err := loadFonts(); err != nil {
		log.Printf("stroke text: %v", err)
		return
	}
	c.dc.ClearPath()
	c.traceText(text, x, y)
	c.Stroke()
}

func (c *Canvas) traceText(text string, x, y float64) {
	f := fontSFNT
	ppem := fixed.Int26_6(c.style.fontSize * 64)
	dot := x
	var prev sfnt.GlyphIndex
	for i, r := range text {
		idx, err := f.GlyphIndex(&c.sbuf, r)
		if err != nil || idx == 0 {
			continue
		}
		if i > 0 && prev != 0 {
			if k, err := f.Kern(&c.sbuf, prev, idx, ppem, font.HintingNone); err == nil {
				dot += fromFixed(k)
			}
		}
		segs, err := f.LoadGlyph(&c.sbuf, idx, ppem, nil)
		if err != nil {
			continue
		}
		open := false
		for _, s := range segs {
			switch s.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					c.dc.ClosePath()
				}
				c.dc.MoveTo(dot+fromFixed(s.Args[0].X), y+fromFixed(s.Args[0].Y))
				open = true
			case sfnt.SegmentOpLineTo:
				c.dc.LineTo(dot+fromFixed(s.Args[0].X), y+fromFixed(s.Args[0].Y))
			case sfnt.SegmentOpQuadTo:
				c.dc.QuadraticTo(
					dot+fromFixed(s.Args[0].X), y+fromFixed(s.Args[0].Y),
					dot+fromFixed(s.Args[1].X), y+fromFixed(s.Args[1].Y),
				)
			case sfnt.SegmentOpCubeTo:
				c.dc.CubicTo(
					dot+fromFixed(s.Args[0].X), y+fromFixed(s.Args[0].Y),
					dot+fromFixed(s.Args[1].X), y+fromFixed(s.Args[1].Y),
					dot+fromFixed(s.Args[2].X), y+fromFixed(s.Args[2].Y),
				)
			}
		}
		if open {
			c.dc.ClosePath()
		}
		if adv, err := f.GlyphAdvance(&c.sbuf, idx, ppem, font.HintingNone); err == nil {
			dot += fromFixed(adv)
		}
		prev = idx
	}
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
