package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/shotmark/internal/session"
	"github.com/example/shotmark/internal/shape"
)

type fakeSurface struct {
	calls []string
}

func (f *fakeSurface) add(s string) { f.calls = append(f.calls, s) }

func (f *fakeSurface) Resize(w, h int)                    { f.add(fmt.Sprintf("resize %dx%d", w, h)) }
func (f *fakeSurface) Clear()                             { f.add("clear") }
func (f *fakeSurface) DrawImage(img image.Image, x, y int) { f.add(fmt.Sprintf("image %d,%d", x, y)) }
func (f *fakeSurface) Save()                              { f.add("save") }
func (f *fakeSurface) Restore()                           { f.add("restore") }
func (f *fakeSurface) SetStrokeColor(color.Color)         {}
func (f *fakeSurface) SetFillColor(color.Color)           {}
func (f *fakeSurface) SetLineWidth(float64)               {}
func (f *fakeSurface) SetLineCap(shape.LineCap)           {}
func (f *fakeSurface) SetFontSize(float64)                {}
func (f *fakeSurface) BeginPath()                         { f.add("begin") }
func (f *fakeSurface) MoveTo(x, y float64)                {}
func (f *fakeSurface) LineTo(x, y float64)                {}
func (f *fakeSurface) ClosePath()                         {}
func (f *fakeSurface) Arc(cx, cy, r, s, e float64)        {}
func (f *fakeSurface) Stroke()                            { f.add("stroke") }
func (f *fakeSurface) FillText(string, float64, float64)  { f.add("fill-text") }
func (f *fakeSurface) StrokeText(string, float64, float64) {
	f.add("stroke-text")
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRenderFrameSkipsWithoutRaster(t *testing.T) {
	sess := session.New()
	sess.List().Append(shape.New(shape.Box, shape.Pt(0, 0), ""))
	var f fakeSurface
	if RenderFrame(sess, &f) {
		t.Fatal("frame rendered without a raster")
	}
	if len(f.calls) != 0 {
		t.Fatalf("surface touched: %v", f.calls)
	}
}

func TestRenderFrameOrder(t *testing.T) {
	sess := session.New(session.WithRaster(solid(30, 20, color.RGBA{A: 255})))
	sess.List().Append(shape.New(shape.Arrow, shape.Pt(0, 0), ""))
	sess.List().Append(shape.New(shape.Text, shape.Pt(1, 1), "x"))
	var f fakeSurface
	if !RenderFrame(sess, &f) {
		t.Fatal("frame skipped")
	}
	got := strings.Join(f.calls, ";")
	want := "resize 30x20;clear;image 0,0;save;begin;stroke;restore;save;fill-text;stroke-text;restore"
	if got != want {
		t.Fatalf("calls\n got %s\nwant %s", got, want)
	}
}

func TestCanvasDrawsShapes(t *testing.T) {
	sess := session.New(session.WithRaster(solid(100, 60, color.RGBA{R: 255, G: 255, B: 255, A: 255})))
	arrow := shape.New(shape.Arrow, shape.Pt(10, 30), "")
	arrow.SetEnd(shape.Pt(90, 30))
	sess.List().Append(arrow)

	img, ok := Snapshot(sess)
	if !ok {
		t.Fatal("no snapshot")
	}
	if img.Bounds() != image.Rect(0, 0, 100, 60) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(50, 30); got.R < 200 || got.G > 60 || got.B > 60 {
		t.Fatalf("arrow body pixel %+v, want red", got)
	}
	if got := img.RGBAAt(50, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background pixel %+v, want white", got)
	}
}

func TestCanvasMarksClickWithoutDrag(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, k := range []shape.Kind{shape.Arrow, shape.Box, shape.Circle} {
		sess := session.New(session.WithRaster(solid(100, 100, white)))
		sess.List().Append(shape.New(k, shape.Pt(50, 50), ""))

		img, ok := Snapshot(sess)
		if !ok {
			t.Fatalf("%s: no snapshot", k)
		}
		if got := img.RGBAAt(50, 50); got == white {
			t.Fatalf("%s: click point left unmarked", k)
		}
		if got := img.RGBAAt(60, 60); got != white {
			t.Fatalf("%s: mark spread to %+v", k, got)
		}
	}
}

func TestCanvasText(t *testing.T) {
	grey := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	sess := session.New(session.WithRaster(solid(200, 60, grey)))
	sess.List().Append(shape.New(shape.Text, shape.Pt(10, 45), "HI"))
	img, _ := Snapshot(sess)

	var light, dark int
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			c := img.RGBAAt(x, y)
			if c.R > 200 {
				light++
			}
			if c.R < 60 {
				dark++
			}
		}
	}
	if light == 0 || dark == 0 {
		t.Fatalf("expected white fill and black outline, light=%d dark=%d", light, dark)
	}
}

func TestCompositeIsDeterministic(t *testing.T) {
	sess := session.New(session.WithRaster(solid(64, 64, color.RGBA{G: 90, A: 255})))
	for _, k := range shape.Kinds {
		s := shape.New(k, shape.Pt(8, 40), "ok")
		s.SetEnd(shape.Pt(50, 12))
		sess.List().Append(s)
	}
	c := NewCanvas(1, 1)
	RenderFrame(sess, c)
	first := c.Copy()
	RenderFrame(sess, c)
	if !bytes.Equal(first.Pix, c.Image().Pix) {
		t.Fatal("two composites of the same state differ")
	}
}

func TestCanvasFollowsRasterSize(t *testing.T) {
	sess := session.New()
	c := NewCanvas(1, 1)
	sess.SetRaster(solid(800, 600, color.RGBA{A: 255}))
	RenderFrame(sess, c)
	sess.SetRaster(solid(400, 300, color.RGBA{A: 255}))
	RenderFrame(sess, c)
	if w, h := c.Size(); w != 400 || h != 300 {
		t.Fatalf("canvas %dx%d, want 400x300", w, h)
	}
}

func TestCanvasExtremeShapes(t *testing.T) {
	sess := session.New(session.WithRaster(solid(16, 16, color.RGBA{A: 255})))
	for _, k := range shape.Kinds {
		s := shape.New(k, shape.Pt(-1e4, 1e4), "far")
		s.SetEnd(shape.Pt(1e4, -1e4))
		sess.List().Append(s)
		sess.List().Append(shape.New(k, shape.Pt(3, 3), "dot"))
	}
	if _, ok := Snapshot(sess); !ok {
		t.Fatal("snapshot failed")
	}
}

func TestCanvasRestoreUnbalanced(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Restore()
	c.Save()
	c.SetFontSize(50)
	c.Restore()
	if c.style.fontSize != defaultStyle.fontSize {
		t.Fatalf("font size %v after restore", c.style.fontSize)
	}
}

func TestLoopTicksUntilCancelled(t *testing.T) {
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(200, func(time.Time) {
		if n.Add(1) == 3 {
			cancel()
		}
	})
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	if n.Load() < 3 {
		t.Fatalf("ticked %d times", n.Load())
	}
}

func TestNewLoopDefaultRate(t *testing.T) {
	if l := NewLoop(0, nil); l.Interval != time.Second/DefaultFrameRate {
		t.Fatalf("interval %v", l.Interval)
	}
}
