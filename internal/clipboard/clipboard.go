// Package clipboard moves images between the system clipboard and the
// editor. Reads return the raw payload with its media type so the caller
// can reject non-image content; writes publish PNG.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"

	"github.com/example/shotmark/internal/decode"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrEmpty is returned when the clipboard holds nothing readable.
	ErrEmpty = errors.New("clipboard is empty")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Read returns the clipboard content. Image content is preferred; text is
// returned as text/plain so callers can tell the user it is not an image.
func Read() (decode.Blob, error) {
	if err := ensureInit(); err != nil {
		return decode.Blob{}, err
	}
	return readBlob()
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return writePNG(buf.Bytes())
}
