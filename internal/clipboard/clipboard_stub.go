//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"errors"

	"github.com/example/shotmark/internal/decode"
)

var errUnsupported = errors.New("clipboard image operations are not supported on this platform")

func ensureInit() error { return errUnsupported }

func readBlob() (decode.Blob, error) { return decode.Blob{}, errUnsupported }

func writePNG([]byte) error { return errUnsupported }
