package window

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/shotmark/internal/decode"
	"github.com/example/shotmark/internal/editor"
	"github.com/example/shotmark/internal/interact"
	"github.com/example/shotmark/internal/session"
	"github.com/example/shotmark/internal/shape"
	"github.com/example/shotmark/internal/theme"
)

type fakeEditor struct {
	mu     sync.Mutex
	calls  []string
	points []shape.Point
	kinds  []shape.Kind
	pasted []decode.Blob
}

func (f *fakeEditor) record(call string, p shape.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.points = append(f.points, p)
}

func (f *fakeEditor) PointerDown(p shape.Point) { f.record("down", p) }
func (f *fakeEditor) PointerMove(p shape.Point) { f.record("move", p) }
func (f *fakeEditor) PointerUp(p shape.Point)   { f.record("up", p) }
func (f *fakeEditor) Undo()                     { f.record("undo", shape.Point{}) }
func (f *fakeEditor) Select(k shape.Kind) {
	f.mu.Lock()
	f.kinds = append(f.kinds, k)
	f.mu.Unlock()
}
func (f *fakeEditor) Paste(b decode.Blob) <-chan error {
	f.mu.Lock()
	f.pasted = append(f.pasted, b)
	f.mu.Unlock()
	ch := make(chan error, 1)
	ch <- nil
	return ch
}
func (f *fakeEditor) Export(context.Context) (*image.RGBA, error) {
	return nil, errors.New("no image loaded")
}

func TestWindowSize(t *testing.T) {
	if got := windowSize(image.Point{}); got != image.Pt(defaultWidth, defaultHeight) {
		t.Fatalf("empty %v", got)
	}
	if got := windowSize(image.Pt(800, 600)); got != image.Pt(800, 600+statusHeight) {
		t.Fatalf("800x600 %v", got)
	}
	if got := windowSize(image.Pt(100, 50)); got.X != minWidth {
		t.Fatalf("narrow %v", got)
	}
}

func TestLayoutZoom(t *testing.T) {
	l := layout{win: image.Pt(400, 300+statusHeight), img: image.Pt(800, 600)}
	if z := l.zoom(); z != 0.5 {
		t.Fatalf("zoom %v", z)
	}
	if v := l.view(); v != image.Rect(0, 0, 400, 300) {
		t.Fatalf("view %v", v)
	}
	if p := l.toImage(100, 50); p != shape.Pt(200, 100) {
		t.Fatalf("toImage %v", p)
	}

	small := layout{win: image.Pt(800, 600), img: image.Pt(100, 100)}
	if z := small.zoom(); z != 1 {
		t.Fatalf("small image zoom %v", z)
	}
	if !small.inStatus(590) || small.inStatus(10) {
		t.Fatal("status hit test")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		ev   key.Event
		want action
	}{
		{"arrow", key.Event{Rune: 'a', Code: key.CodeA}, actionArrow},
		{"box upper", key.Event{Rune: 'B', Code: key.CodeB, Modifiers: key.ModShift}, actionBox},
		{"circle", key.Event{Rune: 'c', Code: key.CodeC}, actionCircle},
		{"text rune only", key.Event{Rune: 't'}, actionText},
		{"undo", key.Event{Rune: 0x1a, Code: key.CodeZ, Modifiers: key.ModControl}, actionUndo},
		{"undo mac", key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModMeta}, actionUndo},
		{"export", key.Event{Rune: 'r', Code: key.CodeR}, actionExport},
		{"copy", key.Event{Code: key.CodeC, Modifiers: key.ModControl}, actionCopy},
		{"paste", key.Event{Code: key.CodeV, Modifiers: key.ModControl}, actionPaste},
		{"escape", key.Event{Rune: -1, Code: key.CodeEscape}, actionCancel},
		{"unbound", key.Event{Rune: 'x', Code: key.CodeX}, actionNone},
		{"ctrl a", key.Event{Code: key.CodeA, Modifiers: key.ModControl}, actionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lookup(tc.ev); got != tc.want {
				t.Fatalf("lookup = %q, want %q", got, tc.want)
			}
		})
	}
}

func press(r rune, c key.Code) key.Event {
	return key.Event{Rune: r, Code: c, Direction: key.DirPress}
}

func TestTextLabelFlow(t *testing.T) {
	w := New()
	ed := &fakeEditor{}
	ctx := context.Background()

	w.handleKey(ctx, ed, press('t', key.CodeT))
	for _, r := range "Hi!" {
		w.handleKey(ctx, ed, press(r, key.CodeUnknown))
	}
	w.handleKey(ctx, ed, press('x', key.CodeX))
	w.handleKey(ctx, ed, press(-1, key.CodeDeleteBackspace))
	if st := w.snapshot(time.Now()); !st.typing || st.label != "Hi!" {
		t.Fatalf("typing=%v label=%q", st.typing, st.label)
	}
	w.handleKey(ctx, ed, press(-1, key.CodeReturnEnter))

	if len(ed.kinds) != 1 || ed.kinds[0] != shape.Text {
		t.Fatalf("selected %v", ed.kinds)
	}
	if label, ok := w.pending.Prompt(); !ok || label != "Hi!" {
		t.Fatalf("pending %q %v", label, ok)
	}
	if st := w.snapshot(time.Now()); st.typing {
		t.Fatal("still typing after enter")
	}
}

func TestTextEscapeWithdraws(t *testing.T) {
	w := New()
	ed := &fakeEditor{}
	ctx := context.Background()
	w.handleKey(ctx, ed, press('t', key.CodeT))
	w.handleKey(ctx, ed, press('a', key.CodeA))
	w.handleKey(ctx, ed, press(-1, key.CodeEscape))
	if _, ok := w.pending.Peek(); ok {
		t.Fatal("label offered after escape")
	}
	if len(ed.kinds) != 1 {
		t.Fatalf("typed 'a' should not select arrow: %v", ed.kinds)
	}
}

func TestPressCommitsTypedLabel(t *testing.T) {
	w := New(WithImageSize(200, 100))
	ed := &fakeEditor{}
	w.handleKey(context.Background(), ed, press('t', key.CodeT))
	w.handleKey(context.Background(), ed, press('o', key.CodeO))
	w.handleMouse(ed, mouse.Event{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if label, ok := w.pending.Peek(); !ok || label != "o" {
		t.Fatalf("pending %q %v", label, ok)
	}
	if len(ed.calls) != 1 || ed.calls[0] != "down" {
		t.Fatalf("calls %v", ed.calls)
	}
	if st := w.snapshot(time.Now()); !st.typing || st.label != "" {
		t.Fatalf("label field not reopened: typing=%v label=%q", st.typing, st.label)
	}
}

func TestTextLabelsInARow(t *testing.T) {
	w := New()
	ed := editor.New(w.EditorOptions()...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ed.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	count := func() int {
		var n int
		if err := ed.Do(ctx, func(s *session.Session, _ *interact.Machine) { n = s.List().Len() }); err != nil {
			t.Fatal(err)
		}
		return n
	}
	place := func(r rune, code key.Code, x, y float32) {
		w.handleKey(ctx, ed, press(r, code))
		w.handleMouse(ed, mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
		w.handleMouse(ed, mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	}

	w.handleKey(ctx, ed, press('t', key.CodeT))
	place('A', key.CodeA, 10, 20)
	if n := count(); n != 1 {
		t.Fatalf("after first label: %d shapes", n)
	}
	place('B', key.CodeB, 50, 50)
	if n := count(); n != 2 {
		t.Fatalf("after second label: %d shapes", n)
	}
	if st := w.snapshot(time.Now()); !st.typing {
		t.Fatal("label field closed while text is selected")
	}

	// A press with nothing typed is declined and the field stays open.
	w.handleMouse(ed, mouse.Event{X: 80, Y: 80, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	w.handleMouse(ed, mouse.Event{X: 80, Y: 80, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if n := count(); n != 2 {
		t.Fatalf("empty label placed a shape: %d shapes", n)
	}
	if st := w.snapshot(time.Now()); !st.typing {
		t.Fatal("label field closed after a declined press")
	}
}

func TestMouseDrag(t *testing.T) {
	w := New(WithImageSize(200, 100))
	ed := &fakeEditor{}
	w.handleMouse(ed, mouse.Event{X: 5, Y: 5, Direction: mouse.DirNone})
	w.handleMouse(ed, mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	w.handleMouse(ed, mouse.Event{X: 20, Y: 15, Direction: mouse.DirNone})
	w.handleMouse(ed, mouse.Event{X: 30, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	w.handleMouse(ed, mouse.Event{X: 40, Y: 20, Direction: mouse.DirNone})

	want := []string{"down", "move", "up"}
	if len(ed.calls) != len(want) {
		t.Fatalf("calls %v", ed.calls)
	}
	for i := range want {
		if ed.calls[i] != want[i] {
			t.Fatalf("calls %v", ed.calls)
		}
	}
	if ed.points[0] != shape.Pt(10, 10) || ed.points[2] != shape.Pt(30, 20) {
		t.Fatalf("points %v", ed.points)
	}
}

func TestStatusButtonSelects(t *testing.T) {
	w := New(WithImageSize(600, 400))
	ed := &fakeEditor{}
	bs := buttons(w.lay.status())
	c := bs[2].rect.Min.Add(image.Pt(2, 2))
	w.handleMouse(ed, mouse.Event{X: float32(c.X), Y: float32(c.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if len(ed.kinds) != 1 || ed.kinds[0] != shape.Circle {
		t.Fatalf("selected %v", ed.kinds)
	}
	if len(ed.calls) != 0 {
		t.Fatalf("status click reached the image: %v", ed.calls)
	}
}

func TestNoticeDismissedByPressAndEscape(t *testing.T) {
	w := New()
	ed := &fakeEditor{}
	w.Alert("Paste an image, please")
	if st := w.snapshot(time.Now()); st.notice == "" {
		t.Fatal("notice not shown")
	}
	w.handleMouse(ed, mouse.Event{X: 1, Y: 1, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if st := w.snapshot(time.Now()); st.notice != "" {
		t.Fatal("press did not dismiss notice")
	}
	if len(ed.calls) != 0 {
		t.Fatalf("dismissing press reached the editor: %v", ed.calls)
	}

	w.Alert("again")
	w.handleKey(context.Background(), ed, press(-1, key.CodeEscape))
	if st := w.snapshot(time.Now()); st.notice != "" {
		t.Fatal("escape did not dismiss notice")
	}
	w.Alert("later")
	if st := w.snapshot(time.Now().Add(time.Hour)); st.notice != "" {
		t.Fatal("notice did not expire")
	}
}

func TestPasteReadsClipboard(t *testing.T) {
	blob := decode.Blob{Data: []byte("x"), Type: "text/plain"}
	w := New(WithClipboardReader(func() (decode.Blob, error) { return blob, nil }))
	ed := &fakeEditor{}
	w.paste(ed)
	if len(ed.pasted) != 1 || ed.pasted[0].Type != "text/plain" {
		t.Fatalf("pasted %v", ed.pasted)
	}

	w = New(WithClipboardReader(func() (decode.Blob, error) { return decode.Blob{}, errors.New("empty") }))
	w.paste(ed)
	if len(ed.pasted) != 2 || ed.pasted[1].Type != "" {
		t.Fatalf("failed read should still reach the editor for the alert: %v", ed.pasted)
	}
}

func TestPresentCopiesFrame(t *testing.T) {
	w := New()
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Pix[0] = 9
	w.Present(src)
	src.Pix[0] = 1
	st := w.snapshot(time.Now())
	if st.frame.Pix[0] != 9 {
		t.Fatal("frame aliases the editor canvas")
	}
	if st.layout.img != image.Pt(3, 2) {
		t.Fatalf("layout image %v", st.layout.img)
	}
}

func TestRepaintCollapses(t *testing.T) {
	w := New()
	var n int
	w.send = func(interface{}) { n++ }
	w.repaint()
	w.repaint()
	if n != 1 {
		t.Fatalf("sent %d paints", n)
	}
	w.snapshot(time.Now())
	w.repaint()
	if n != 2 {
		t.Fatalf("sent %d paints after snapshot", n)
	}
}

func TestDrawFrameChrome(t *testing.T) {
	th := theme.Default()
	th.StatusBackground = color.RGBA{1, 2, 3, 255}
	frame := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i], frame.Pix[i+3] = 255, 255
	}
	st := paintState{layout: layout{win: image.Pt(minWidth, 50+statusHeight), img: frame.Bounds().Size()}, frame: frame, hover: -1}
	dst := image.NewRGBA(image.Rect(0, 0, minWidth, 50+statusHeight))
	drawFrame(dst, st, th)

	if got := dst.RGBAAt(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("image pixel %+v", got)
	}
	if got := dst.RGBAAt(minWidth-1, 50+statusHeight-1); got != th.StatusBackground {
		t.Fatalf("status pixel %+v", got)
	}
	if got := dst.RGBAAt(300, 10); got != th.Background {
		t.Fatalf("background pixel %+v", got)
	}
}

func TestImageSizedBeforeOpen(t *testing.T) {
	w := New()
	w.imageSized(640, 480)
	if st := w.snapshot(time.Now()); st.layout.win != image.Pt(640, 480+statusHeight) {
		t.Fatalf("window %v", st.layout.win)
	}

	w.send = func(interface{}) {}
	w.imageSized(1000, 1000)
	st := w.snapshot(time.Now())
	if st.layout.win != image.Pt(640, 480+statusHeight) || st.layout.img != image.Pt(1000, 1000) {
		t.Fatalf("open window resized: %+v", st.layout)
	}
}
