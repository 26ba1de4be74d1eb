package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
)

// Labels are set in Go Bold. The same font is parsed twice: freetype
// rasterises filled text through gg, sfnt supplies glyph outlines for
// stroked text.
var (
	fontOnce  sync.Once
	fontTT    *truetype.Font
	fontSFNT  *sfnt.Font
	fontError error
)

func loadFonts() error {
	fontOnce.Do(func() {
		tt, err := truetype.Parse(gobold.TTF)
		if err != nil {
			fontError = fmt.Errorf("parse go bold: %w", err)
			return
		}
		sf, err := sfnt.Parse(gobold.TTF)
		if err != nil {
			fontError = fmt.Errorf("parse go bold outlines: %w", err)
			return
		}
		fontTT, fontSFNT = tt, sf
	})
	return fontError
}

// faceCache holds one freetype face per pixel size.
type faceCache struct {
	faces map[float64]font.Face
}

func (c *faceCache) face(size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	if c.faces == nil {
		c.faces = map[float64]font.Face{}
	}
	f := truetype.NewFace(fontTT, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	c.faces[size] = f
	return f, nil
}
