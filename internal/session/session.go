// Package session holds the state of one annotation session: the base
// image, the drawing surface size and the shapes drawn over it.
package session

import (
	"image"
	"log"

	"github.com/google/uuid"

	"github.com/example/shotmark/internal/annotation"
)

// Session groups everything the compositor reads for one frame.
type Session struct {
	ID string

	raster image.Image
	width  int
	height int
	list   annotation.List

	clearOnLoad bool
	onSize      func(w, h int)
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithClearOnLoad discards existing shapes whenever a new image is loaded.
func WithClearOnLoad(v bool) Option { return func(s *Session) { s.clearOnLoad = v } }

// WithSizeListener registers a callback for surface size changes.
func WithSizeListener(fn func(w, h int)) Option { return func(s *Session) { s.onSize = fn } }

// WithID overrides the generated session identifier.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// WithRaster loads img as the initial image.
func WithRaster(img image.Image) Option {
	return func(s *Session) { s.raster = img; s.resize(img.Bounds()) }
}

// New creates an empty session with a fresh identifier.
func New(opts ...Option) *Session {
	s := &Session{ID: uuid.NewString()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetRaster replaces the base image and resizes the surface to its bounds.
// Shapes are kept unless the session clears on load.
func (s *Session) SetRaster(img image.Image) {
	s.raster = img
	if img == nil {
		return
	}
	if s.clearOnLoad && s.list.Len() > 0 {
		log.Printf("session %s: clearing %d shapes", s.ID, s.list.Len())
		s.list.Clear()
	}
	s.resize(img.Bounds())
	if s.onSize != nil {
		s.onSize(s.width, s.height)
	}
}

func (s *Session) resize(r image.Rectangle) {
	s.width, s.height = r.Dx(), r.Dy()
}

// Raster returns the current base image, or nil before the first load.
func (s *Session) Raster() image.Image { return s.raster }

// HasRaster reports whether an image has been loaded.
func (s *Session) HasRaster() bool { return s.raster != nil }

// Size returns the surface size in pixels.
func (s *Session) Size() (w, h int) { return s.width, s.height }

// List returns the session's annotation list.
func (s *Session) List() *annotation.List { return &s.list }

func (s *Session) ClearOnLoad() bool { return s.clearOnLoad }

// SetSizeListener replaces the size change callback.
func (s *Session) SetSizeListener(fn func(w, h int)) { s.onSize = fn }
