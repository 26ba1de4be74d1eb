package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/example/shotmark/internal/capture"
	"github.com/example/shotmark/internal/clipboard"
	"github.com/example/shotmark/internal/decode"
)

var (
	captureScreenshotFn = capture.Screenshot
	readClipboardFn     = clipboard.Read
)

// source selects where the first image comes from.
type source struct {
	file               string
	capture            bool
	captureInteractive bool
	fromClipboard      bool
}

func (s *source) register(fs *flag.FlagSet) {
	fs.StringVar(&s.file, "file", "", "image file to annotate")
	fs.BoolVar(&s.capture, "capture", false, "start from a screenshot taken through the desktop portal")
	fs.BoolVar(&s.captureInteractive, "capture-interactive", false, "like -capture but let the portal ask for a region or window")
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	fs.BoolVar(&s.fromClipboard, "from-clip", false, "start from the image on the clipboard (alias)")
}

func (s *source) validate() error {
	n := 0
	for _, set := range []bool{s.file != "", s.capture || s.captureInteractive, s.fromClipboard} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errors.New("-file, -capture and -from-clipboard are mutually exclusive")
	}
	return nil
}

func (s *source) empty() bool {
	return s.file == "" && !s.capture && !s.captureInteractive && !s.fromClipboard
}

// read returns the configured payload. ok is false when no source is set.
func (s *source) read(ctx context.Context) (b decode.Blob, ok bool, err error) {
	switch {
	case s.file != "":
		b, err = decode.FromFile(s.file)
		if err != nil {
			return b, false, fmt.Errorf("failed to read %s: %w", s.file, err)
		}
		return b, true, nil
	case s.capture || s.captureInteractive:
		b, err = captureScreenshotFn(ctx, capture.Options{Interactive: s.captureInteractive})
		if err != nil {
			return b, false, fmt.Errorf("failed to capture screen: %w", err)
		}
		return b, true, nil
	case s.fromClipboard:
		b, err = readClipboardFn()
		if err != nil {
			return b, false, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return b, true, nil
	}
	return decode.Blob{}, false, nil
}
