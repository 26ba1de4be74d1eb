package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ShadowOptions configures the drop shadow added to exported images.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is a soft shadow down and to the right.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55}
}

// ApplyShadow returns img placed over a blurred copy of its own alpha. The
// canvas grows to fit the shadow and always starts at the origin. img is
// returned unchanged when there is no visible shadow.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}

	src := img.Bounds()
	mask := image.NewAlpha(src.Inset(-opts.Radius))
	draw.Draw(mask, src, img, src.Min, draw.Src)
	boxBlur(mask, opts.Radius)

	shadowAt := mask.Bounds().Add(opts.Offset)
	whole := src.Union(shadowAt)
	out := image.NewRGBA(whole.Sub(whole.Min))

	tint := image.NewUniform(color.NRGBA{A: uint8(opts.Opacity*255 + 0.5)})
	draw.DrawMask(out, shadowAt.Sub(whole.Min), tint, image.Point{}, mask, mask.Bounds().Min, draw.Over)
	draw.Draw(out, src.Sub(whole.Min), img, src.Min, draw.Over)
	return out
}

// boxBlur blurs a alpha mask in place with a square window of the given
// radius, one horizontal pass then one vertical pass. Pixels outside the
// mask count as transparent.
func boxBlur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	n := 2*radius + 1
	line := make([]uint8, max(w, h))

	blurLine := func(get func(i int) uint8, set func(i int, v uint8), length int) {
		for i := 0; i < length; i++ {
			line[i] = get(i)
		}
		sum := 0
		for i := 0; i <= radius && i < length; i++ {
			sum += int(line[i])
		}
		for i := 0; i < length; i++ {
			set(i, uint8(sum/n))
			if in := i + radius + 1; in < length {
				sum += int(line[in])
			}
			if out := i - radius; out >= 0 {
				sum -= int(line[out])
			}
		}
	}

	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		blurLine(func(i int) uint8 { return row[i] }, func(i int, v uint8) { row[i] = v }, w)
	}
	for x := 0; x < w; x++ {
		blurLine(
			func(i int) uint8 { return m.Pix[i*m.Stride+x] },
			func(i int, v uint8) { m.Pix[i*m.Stride+x] = v },
			h,
		)
	}
}
