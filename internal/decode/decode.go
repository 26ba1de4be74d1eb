// Package decode turns pasted or loaded payloads into rasters.
package decode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidPasteType is returned for payloads that are not images.
var ErrInvalidPasteType = errors.New("invalid paste type")

// Blob is an image payload together with its declared media type.
type Blob struct {
	Data []byte
	Type string
}

// Result is the outcome of an asynchronous decode.
type Result struct {
	Image  *image.RGBA
	Format string
	Err    error
}

// Check rejects blobs whose media type is not an image type.
func Check(b Blob) error {
	if !strings.HasPrefix(strings.ToLower(b.Type), "image") {
		return fmt.Errorf("%w: %q", ErrInvalidPasteType, b.Type)
	}
	return nil
}

// Decode checks the blob type and decodes its data into an RGBA raster
// anchored at the origin.
func Decode(b Blob) (*image.RGBA, string, error) {
	if err := Check(b); err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b.Data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", b.Type, err)
	}
	return toRGBA(img), format, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Async decodes b on its own goroutine and passes the result to done. done
// is not called if ctx is cancelled first.
func Async(ctx context.Context, b Blob, done func(Result)) {
	go func() {
		img, format, err := Decode(b)
		if ctx.Err() != nil {
			return
		}
		done(Result{Image: img, Format: format, Err: err})
	}()
}

// FromFile reads path into a blob. The type comes from the file extension,
// falling back to content sniffing.
func FromFile(path string) (Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, err
	}
	typ := TypeByName(path)
	if typ == "" {
		typ = http.DetectContentType(data)
	}
	return Blob{Data: data, Type: typ}, nil
}

// TypeByName maps a file name to an image media type, or "" when the
// extension is not a supported image format.
func TypeByName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
