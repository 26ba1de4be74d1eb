package window

import (
	"image"
	"image/color"
	"image/draw"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shotmark/internal/shape"
	"github.com/example/shotmark/internal/theme"
)

const checkerSize = 8

// paintState is everything a single paint needs, copied out under the lock.
type paintState struct {
	layout layout
	frame  *image.RGBA
	kind   shape.Kind
	typing bool
	label  string
	notice string
	hover  int
}

type button struct {
	label string
	kind  shape.Kind
	rect  image.Rectangle
}

// buttons lays out the shape selector in the status bar.
func buttons(status image.Rectangle) []button {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	x := status.Min.X + 4
	out := make([]button, 0, len(shape.Kinds))
	for _, k := range shape.Kinds {
		lbl := string(unicode.ToUpper(k.Key())) + ":" + k.String()
		w := meas.MeasureString(lbl).Ceil()
		out = append(out, button{label: lbl, kind: k, rect: image.Rect(x, status.Min.Y+3, x+w+8, status.Max.Y-3)})
		x += w + 12
	}
	return out
}

func drawFrame(dst *image.RGBA, st paintState, th *theme.Theme) {
	area := st.layout.area()
	draw.Draw(dst, area, &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if st.frame == nil {
		drawCentered(dst, area, "Paste an image (Ctrl+V) to start annotating", th.Foreground)
	} else {
		view := st.layout.view()
		drawCheckerboard(dst, view, th.CheckerLight, th.CheckerDark)
		if view.Size() == st.frame.Bounds().Size() {
			draw.Draw(dst, view, st.frame, image.Point{}, draw.Over)
		} else {
			xdraw.ApproxBiLinear.Scale(dst, view, st.frame, st.frame.Bounds(), draw.Over, nil)
		}
	}
	drawStatus(dst, st, th)
	if st.notice != "" {
		drawNotice(dst, area, st.notice, th)
	}
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/checkerSize)+(y/checkerSize))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawStatus(dst *image.RGBA, st paintState, th *theme.Theme) {
	status := st.layout.status()
	draw.Draw(dst, status, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	bs := buttons(status)
	for i, b := range bs {
		bg, fg := th.ButtonBackground, th.ButtonText
		if b.kind == st.kind || i == st.hover {
			bg, fg = th.ButtonBackgroundActive, th.ButtonTextActive
		}
		draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		drawRect(dst, b.rect, th.ButtonBorder)
		drawString(dst, b.rect.Min.X+4, b.rect.Max.Y-5, b.label, fg)
	}
	x := status.Min.X + 4
	if len(bs) > 0 {
		x = bs[len(bs)-1].rect.Max.X + 12
	}
	hint := "^Z:undo  R:export  ^V:paste  ^C:copy  Q:quit"
	if st.typing {
		hint = "Label: " + st.label + "|  Enter:place  Esc:cancel"
	}
	drawString(dst, x, status.Max.Y-7, hint, th.StatusText)
}

func drawNotice(dst *image.RGBA, area image.Rectangle, msg string, th *theme.Theme) {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	w := meas.MeasureString(msg).Ceil()
	c := area.Min.Add(area.Size().Div(2))
	r := image.Rect(c.X-w/2-12, c.Y-16, c.X+w/2+12, c.Y+16)
	draw.Draw(dst, r, &image.Uniform{th.NoticeBackground}, image.Point{}, draw.Over)
	drawRect(dst, r, th.ButtonBorder)
	drawString(dst, c.X-w/2, c.Y+4, msg, th.NoticeText)
}

func drawCentered(dst *image.RGBA, area image.Rectangle, msg string, col color.Color) {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	w := meas.MeasureString(msg).Ceil()
	c := area.Min.Add(area.Size().Div(2))
	drawString(dst, c.X-w/2, c.Y, msg, col)
}

func drawString(dst *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}
