//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/example/shotmark/internal/decode"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func readBlob() (decode.Blob, error) {
	if data := clipboard.Read(clipboard.FmtImage); len(data) > 0 {
		return decode.Blob{Data: data, Type: "image/png"}, nil
	}
	if data := clipboard.Read(clipboard.FmtText); len(data) > 0 {
		return decode.Blob{Data: data, Type: "text/plain"}, nil
	}
	return decode.Blob{}, ErrEmpty
}

func writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}
