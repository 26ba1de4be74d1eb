package window

import (
	"image"

	"github.com/example/shotmark/internal/shape"
)

const (
	statusHeight  = 24
	defaultWidth  = 800
	defaultHeight = 600
	minWidth      = 480
)

// layout places the image inside the window. The image is anchored at the
// top left and shrunk to fit, never enlarged.
type layout struct {
	win image.Point
	img image.Point
}

// windowSize is the initial window size for an image of size img.
func windowSize(img image.Point) image.Point {
	if img.X <= 0 || img.Y <= 0 {
		return image.Pt(defaultWidth, defaultHeight)
	}
	w := img.X
	if w < minWidth {
		w = minWidth
	}
	return image.Pt(w, img.Y+statusHeight)
}

func (l layout) area() image.Rectangle {
	h := l.win.Y - statusHeight
	if h < 0 {
		h = 0
	}
	return image.Rect(0, 0, l.win.X, h)
}

func (l layout) status() image.Rectangle {
	return image.Rect(0, l.area().Max.Y, l.win.X, l.win.Y)
}

func (l layout) zoom() float64 {
	if l.img.X <= 0 || l.img.Y <= 0 {
		return 1
	}
	a := l.area()
	zx := float64(a.Dx()) / float64(l.img.X)
	zy := float64(a.Dy()) / float64(l.img.Y)
	z := zx
	if zy < z {
		z = zy
	}
	if z > 1 || z <= 0 {
		return 1
	}
	return z
}

// view is where the image is drawn.
func (l layout) view() image.Rectangle {
	z := l.zoom()
	return image.Rect(0, 0, int(float64(l.img.X)*z), int(float64(l.img.Y)*z))
}

// toImage maps window pixels to image coordinates. Points outside the view
// map outside the image, which shapes are free to reach.
func (l layout) toImage(x, y float32) shape.Point {
	z := l.zoom()
	return shape.Pt(float64(x)/z, float64(y)/z)
}

func (l layout) inStatus(y float32) bool {
	return int(y) >= l.area().Max.Y
}
