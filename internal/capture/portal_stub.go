//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"fmt"

	"github.com/example/shotmark/internal/decode"
)

func portalScreenshot(context.Context, Options) (decode.Blob, error) {
	return decode.Blob{}, fmt.Errorf("portal screenshot is not supported on this platform")
}
