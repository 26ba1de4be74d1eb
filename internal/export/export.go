// Package export writes flattened annotation images to files, writers and
// the clipboard.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/shotmark/internal/clipboard"
	"github.com/example/shotmark/internal/notify"
	"github.com/example/shotmark/internal/render"
)

// Format is an output encoding.
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

var (
	// ErrNoImage is returned when there is nothing to export.
	ErrNoImage = errors.New("no image to export")
	// ErrUnknownFormat is returned for unsupported output formats.
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension, or fallback
// when the extension says nothing.
func FormatFromPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG
	case ".pdf":
		return PDF
	default:
		return fallback
	}
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img == nil {
		return ErrNoImage
	}
	switch f {
	case PNG, "":
		return png.Encode(w, img)
	case PDF:
		return WritePDF(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WritePDF writes a single page PDF sized to img, one point per pixel,
// with the image covering the page.
func WritePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("shotmark", true)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("annotated", opts, &buf)
	pdf.ImageOptions("annotated", 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// Exporter applies output preferences and reports finished exports.
type Exporter struct {
	dir      string
	format   Format
	shadow   bool
	shadowOp render.ShadowOptions
	notifier *notify.Notifier
	now      func() time.Time
	copy     func(image.Image) error
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithDir sets the directory for generated file names.
func WithDir(dir string) Option { return func(x *Exporter) { x.dir = dir } }

// WithFormat sets the format used when a path has no known extension.
func WithFormat(f Format) Option { return func(x *Exporter) { x.format = f } }

// WithShadow adds a drop shadow to every export.
func WithShadow(enabled bool) Option { return func(x *Exporter) { x.shadow = enabled } }

// WithShadowOptions overrides the drop shadow parameters.
func WithShadowOptions(o render.ShadowOptions) Option {
	return func(x *Exporter) { x.shadowOp = o }
}

// WithNotifier reports exports and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(x *Exporter) { x.notifier = n } }

// New creates an Exporter writing PNG to the working directory.
func New(opts ...Option) *Exporter {
	x := &Exporter{
		format:   PNG,
		shadowOp: render.DefaultShadowOptions(),
		now:      time.Now,
		copy:     clipboard.WriteImage,
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Prepare returns the image that will actually be written.
func (x *Exporter) Prepare(img *image.RGBA) *image.RGBA {
	if x.shadow {
		return render.ApplyShadow(img, x.shadowOp)
	}
	return img
}

// DefaultPath names a new export file inside the configured directory.
func (x *Exporter) DefaultPath() string {
	name := fmt.Sprintf("annotated-%s.%s", x.now().Format("20060102-150405"), x.format)
	if x.dir == "" {
		return name
	}
	return filepath.Join(x.dir, name)
}

// ToFile writes img to path, or to DefaultPath when path is empty, and
// returns the path written.
func (x *Exporter) ToFile(img *image.RGBA, path string) (string, error) {
	if img == nil {
		return "", ErrNoImage
	}
	if path == "" {
		path = x.DefaultPath()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out := x.Prepare(img)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, out, FormatFromPath(path, x.format)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("exported %s", path)
	x.notifier.Export(path, out)
	return path, nil
}

// ToWriter encodes img to w using the configured format.
func (x *Exporter) ToWriter(w io.Writer, img *image.RGBA) error {
	if img == nil {
		return ErrNoImage
	}
	return Encode(w, x.Prepare(img), x.format)
}

// ToClipboard publishes img as PNG on the system clipboard.
func (x *Exporter) ToClipboard(img *image.RGBA) error {
	if img == nil {
		return ErrNoImage
	}
	out := x.Prepare(img)
	if err := x.copy(out); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	log.Printf("copied %dx%d image to clipboard", out.Bounds().Dx(), out.Bounds().Dy())
	x.notifier.Copy("annotated image", out)
	return nil
}
