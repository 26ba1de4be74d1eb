// Package window is the desktop front-end. It shows composited frames from
// the editor, turns mouse and keyboard input into editor events, and draws
// a status bar with the shape selector.
package window

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shotmark/internal/clipboard"
	"github.com/example/shotmark/internal/decode"
	"github.com/example/shotmark/internal/editor"
	"github.com/example/shotmark/internal/export"
	"github.com/example/shotmark/internal/interact"
	"github.com/example/shotmark/internal/shape"
	"github.com/example/shotmark/internal/theme"
)

const defaultNoticeFor = 4 * time.Second

// Editor is the part of the editor the window drives.
type Editor interface {
	PointerDown(p shape.Point)
	PointerMove(p shape.Point)
	PointerUp(p shape.Point)
	Select(k shape.Kind)
	Undo()
	Paste(b decode.Blob) <-chan error
	Export(ctx context.Context) (*image.RGBA, error)
}

// Window holds the UI state shared between the shiny event loop and the
// editor goroutine.
type Window struct {
	title     string
	theme     *theme.Theme
	exporter  *export.Exporter
	readClip  func() (decode.Blob, error)
	imgSize   image.Point
	noticeFor time.Duration
	onClose   func()

	pending interact.Pending

	mu          sync.Mutex
	frame       *image.RGBA
	kind        shape.Kind
	typing      bool
	label       []rune
	notice      string
	noticeUntil time.Time
	hover       int
	pressed     bool
	paintQueued bool
	lay         layout
	send        func(interface{})
}

// Option configures a Window.
type Option func(*Window)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

// WithTheme colours the window chrome.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

// WithExporter sets where exports and copies go.
func WithExporter(x *export.Exporter) Option { return func(w *Window) { w.exporter = x } }

// WithClipboardReader replaces the system clipboard as the paste source.
func WithClipboardReader(fn func() (decode.Blob, error)) Option {
	return func(w *Window) { w.readClip = fn }
}

// WithImageSize sizes the window for an image that is already loaded.
func WithImageSize(width, height int) Option {
	return func(w *Window) { w.imgSize = image.Pt(width, height) }
}

// WithOnClose is called once the window has closed.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a window. It is not shown until Run.
func New(opts ...Option) *Window {
	w := &Window{
		title:     "shotmark",
		theme:     theme.Default(),
		readClip:  clipboard.Read,
		noticeFor: defaultNoticeFor,
		hover:     -1,
	}
	for _, o := range opts {
		o(w)
	}
	if w.exporter == nil {
		w.exporter = export.New()
	}
	w.lay = layout{win: windowSize(w.imgSize), img: w.imgSize}
	return w
}

// EditorOptions connects an editor's output to this window.
func (w *Window) EditorOptions() []editor.Option {
	return []editor.Option{
		editor.WithPresenter(w),
		editor.WithAlerter(w),
		editor.WithPrompter(&w.pending),
		editor.WithSelectListener(w.selected),
		editor.WithSizeListener(w.imageSized),
	}
}

// imageSized follows the image size. Before the window opens it also picks
// the initial window size.
func (w *Window) imageSized(width, height int) {
	w.mu.Lock()
	w.imgSize = image.Pt(width, height)
	w.lay.img = w.imgSize
	if w.send == nil {
		w.lay.win = windowSize(w.imgSize)
	}
	w.mu.Unlock()
	w.repaint()
}

// Present copies frame for the next paint.
func (w *Window) Present(frame *image.RGBA) {
	w.mu.Lock()
	if w.frame == nil || w.frame.Bounds() != frame.Bounds() {
		w.frame = image.NewRGBA(frame.Bounds())
	}
	copy(w.frame.Pix, frame.Pix)
	w.lay.img = frame.Bounds().Size()
	w.mu.Unlock()
	w.repaint()
}

// Alert shows msg over the image until it times out or is dismissed.
func (w *Window) Alert(msg string) {
	w.mu.Lock()
	w.notice = msg
	w.noticeUntil = time.Now().Add(w.noticeFor)
	w.mu.Unlock()
	w.repaint()
	go func() {
		time.Sleep(w.noticeFor)
		w.repaint()
	}()
}

func (w *Window) selected(k shape.Kind) {
	w.mu.Lock()
	w.kind = k
	w.mu.Unlock()
	w.repaint()
}

// repaint queues one paint event. Requests made while one is queued
// collapse into it.
func (w *Window) repaint() {
	w.mu.Lock()
	send := w.send
	if send == nil || w.paintQueued {
		w.mu.Unlock()
		return
	}
	w.paintQueued = true
	w.mu.Unlock()
	send(paint.Event{})
}

func (w *Window) snapshot(now time.Time) paintState {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paintQueued = false
	st := paintState{
		layout: w.lay,
		frame:  w.frame,
		kind:   w.kind,
		typing: w.typing,
		label:  string(w.label),
		hover:  w.hover,
	}
	if w.notice != "" && now.Before(w.noticeUntil) {
		st.notice = w.notice
	}
	return st
}

// Run opens the window and processes its events until it is closed or ctx
// ends. It must be called from the main goroutine.
func (w *Window) Run(ctx context.Context, ed Editor) {
	driver.Main(func(s screen.Screen) { w.main(ctx, s, ed) })
}

func (w *Window) main(ctx context.Context, s screen.Screen, ed Editor) {
	if w.onClose != nil {
		defer w.onClose()
	}
	w.mu.Lock()
	initial := w.lay.win
	w.mu.Unlock()
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: initial.X, Height: initial.Y, Title: w.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()

	w.mu.Lock()
	w.send = win.Send
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.send = nil
		w.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			win.Send(lifecycle.Event{To: lifecycle.StageDead})
		case <-done:
		}
	}()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			w.mu.Lock()
			w.lay.win = image.Pt(e.WidthPx, e.HeightPx)
			w.mu.Unlock()
			w.repaint()
		case paint.Event:
			w.paint(s, win)
		case mouse.Event:
			w.handleMouse(ed, e)
		case key.Event:
			if w.handleKey(ctx, ed, e) {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (w *Window) paint(s screen.Screen, win screen.Window) {
	st := w.snapshot(time.Now())
	if st.layout.win.X <= 0 || st.layout.win.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.layout.win)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	drawFrame(b.RGBA(), st, w.theme)
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

func (w *Window) handleMouse(ed Editor, e mouse.Event) {
	w.mu.Lock()
	lay := w.lay
	noticeUp := w.notice != "" && time.Now().Before(w.noticeUntil)
	pressed := w.pressed
	w.mu.Unlock()

	if noticeUp && e.Direction == mouse.DirPress {
		w.dismiss()
		return
	}
	if lay.inStatus(e.Y) && !pressed {
		w.handleStatus(ed, lay, e)
		return
	}
	if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonNone {
		return
	}
	p := lay.toImage(e.X, e.Y)
	switch e.Direction {
	case mouse.DirPress:
		w.commitLabel()
		w.setPressed(true)
		ed.PointerDown(p)
		w.reopenLabel()
	case mouse.DirNone:
		if pressed {
			ed.PointerMove(p)
		}
	case mouse.DirRelease:
		if pressed {
			w.setPressed(false)
			ed.PointerUp(p)
		}
	}
}

func (w *Window) handleStatus(ed Editor, lay layout, e mouse.Event) {
	pt := image.Pt(int(e.X), int(e.Y))
	hover := -1
	for i, b := range buttons(lay.status()) {
		if pt.In(b.rect) {
			hover = i
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				w.choose(ed, b.kind)
			}
			break
		}
	}
	w.mu.Lock()
	changed := w.hover != hover
	w.hover = hover
	w.mu.Unlock()
	if changed {
		w.repaint()
	}
}

func (w *Window) setPressed(v bool) {
	w.mu.Lock()
	w.pressed = v
	w.mu.Unlock()
}

// handleKey applies a key press and reports whether the window should
// close.
func (w *Window) handleKey(ctx context.Context, ed Editor, e key.Event) bool {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return false
	}
	w.mu.Lock()
	typing := w.typing
	w.mu.Unlock()
	if typing {
		w.handleTyping(e)
		return false
	}

	switch lookup(e) {
	case actionArrow:
		w.choose(ed, shape.Arrow)
	case actionBox:
		w.choose(ed, shape.Box)
	case actionCircle:
		w.choose(ed, shape.Circle)
	case actionText:
		w.choose(ed, shape.Text)
	case actionUndo:
		ed.Undo()
	case actionExport:
		go w.export(ctx, ed)
	case actionCopy:
		go w.copyImage(ctx, ed)
	case actionPaste:
		go w.paste(ed)
	case actionCancel:
		w.dismiss()
	case actionQuit:
		return true
	}
	return false
}

func (w *Window) handleTyping(e key.Event) {
	switch e.Code {
	case key.CodeReturnEnter:
		w.commitLabel()
	case key.CodeEscape:
		w.pending.Withdraw()
		w.mu.Lock()
		w.typing, w.label = false, nil
		w.mu.Unlock()
	case key.CodeDeleteBackspace:
		w.mu.Lock()
		if n := len(w.label); n > 0 {
			w.label = w.label[:n-1]
		}
		w.mu.Unlock()
	default:
		if e.Rune <= 0 || e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
			return
		}
		w.mu.Lock()
		w.label = append(w.label, e.Rune)
		w.mu.Unlock()
	}
	w.repaint()
}

// choose selects k. Text opens the label field; the label is used by the
// next press on the image.
func (w *Window) choose(ed Editor, k shape.Kind) {
	ed.Select(k)
	w.pending.Withdraw()
	w.mu.Lock()
	w.kind = k
	w.typing, w.label = k == shape.Text, nil
	w.mu.Unlock()
	w.repaint()
}

// reopenLabel starts a fresh label after a press while Text stays
// selected, whether or not the press used the previous one.
func (w *Window) reopenLabel() {
	w.mu.Lock()
	if w.kind != shape.Text || w.typing {
		w.mu.Unlock()
		return
	}
	w.typing, w.label = true, nil
	w.mu.Unlock()
	w.repaint()
}

// commitLabel offers the typed label to the next text press.
func (w *Window) commitLabel() {
	w.mu.Lock()
	if !w.typing {
		w.mu.Unlock()
		return
	}
	label := string(w.label)
	w.typing, w.label = false, nil
	w.mu.Unlock()
	if label != "" {
		w.pending.Offer(label)
	}
	w.repaint()
}

func (w *Window) dismiss() {
	w.mu.Lock()
	w.notice, w.noticeUntil = "", time.Time{}
	w.mu.Unlock()
	w.repaint()
}

func (w *Window) export(ctx context.Context, ed Editor) {
	img, err := ed.Export(ctx)
	if err != nil {
		w.Alert("Export failed: " + err.Error())
		return
	}
	path, err := w.exporter.ToFile(img, "")
	if err != nil {
		log.Printf("export: %v", err)
		w.Alert("Export failed: " + err.Error())
		return
	}
	w.Alert("Saved " + path)
}

func (w *Window) copyImage(ctx context.Context, ed Editor) {
	img, err := ed.Export(ctx)
	if err != nil {
		w.Alert("Copy failed: " + err.Error())
		return
	}
	if err := w.exporter.ToClipboard(img); err != nil {
		log.Printf("copy: %v", err)
		w.Alert("Copy failed: " + err.Error())
		return
	}
	w.Alert("Copied to clipboard")
}

// paste hands the clipboard content to the editor, which rejects anything
// that is not an image.
func (w *Window) paste(ed Editor) {
	b, err := w.readClip()
	if err != nil {
		log.Printf("paste: %v", err)
		b = decode.Blob{}
	}
	if err := <-ed.Paste(b); err != nil {
		log.Printf("paste: %v", err)
	}
}
