// Package capture grabs screenshots through the desktop portal and hands
// them over as image payloads.
package capture

import (
	"context"
	"errors"
	"time"

	"github.com/example/shotmark/internal/decode"
)

// ErrCancelled is returned when the user dismisses the portal dialog.
var ErrCancelled = errors.New("screenshot cancelled")

// Options tunes the screenshot request.
type Options struct {
	// Interactive lets the user pick a region or window in the portal UI.
	Interactive bool
	// IncludeCursor embeds the pointer in the image.
	IncludeCursor bool
	// Timeout bounds the wait for the portal response. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration
}

// Screenshot asks the desktop portal for a screenshot and returns the
// file it wrote as a blob. The portal's temporary file is removed.
func Screenshot(ctx context.Context, opts Options) (decode.Blob, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return portalScreenshot(ctx, opts)
}
