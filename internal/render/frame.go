package render

import (
	"image"

	"github.com/example/shotmark/internal/shape"
	"github.com/example/shotmark/internal/session"
)

// RenderFrame draws one frame of sess onto surf: the base image at native
// size, then every shape in list order, each isolated by Save and Restore.
// Nothing is drawn until an image has been loaded; the return value
// reports whether a frame was produced.
func RenderFrame(sess *session.Session, surf Surface) bool {
	if !sess.HasRaster() {
		return false
	}
	w, h := sess.Size()
	surf.Resize(w, h)
	surf.Clear()
	surf.DrawImage(sess.Raster(), 0, 0)
	sess.List().Each(func(_ int, s shape.Shape) {
		surf.Save()
		s.Render(surf)
		surf.Restore()
	})
	return true
}

// Snapshot composites sess onto a fresh canvas and returns its pixels.
func Snapshot(sess *session.Session) (*image.RGBA, bool) {
	if !sess.HasRaster() {
		return nil, false
	}
	w, h := sess.Size()
	c := NewCanvas(w, h)
	RenderFrame(sess, c)
	return c.Image(), true
}
