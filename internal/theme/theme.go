package theme

import (
	"image/color"
)

// Theme defines the colours of the annotation window chrome. Shape colours
// are fixed and not themed.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area outside the image
	Foreground color.RGBA // Hint text when no image is loaded

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Shape selector buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonBorder           color.RGBA

	// Notices (invalid paste, export done)
	NoticeBackground color.RGBA
	NoticeText       color.RGBA

	// Canvas, shown through transparent image regions
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		StatusBackground:       color.RGBA{200, 200, 200, 255},
		StatusText:             color.RGBA{0, 0, 0, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonTextActive:       color.RGBA{255, 255, 255, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		NoticeBackground:       color.RGBA{255, 255, 204, 255},
		NoticeText:             color.RGBA{0, 0, 0, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
	}
}
