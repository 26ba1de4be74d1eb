// Package editor runs an annotation session on a single goroutine.
//
// Front-ends never touch the session directly. They post events (pointer
// input, shape selection, undo, paste, export) and the editor applies them
// in order on its own loop, interleaved with frame ticks. Decoding happens
// off the loop and its result is posted back like any other event.
package editor

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/example/shotmark/internal/decode"
	"github.com/example/shotmark/internal/interact"
	"github.com/example/shotmark/internal/render"
	"github.com/example/shotmark/internal/session"
	"github.com/example/shotmark/internal/shape"
)

// InvalidPasteMessage is shown when a paste does not carry an image.
const InvalidPasteMessage = "Paste an image, please"

// ErrNoImage is returned by Export before any image has been loaded.
var ErrNoImage = errors.New("no image loaded")

// Alerter shows a blocking or transient notice to the user.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// Presenter receives each composited frame. The image is owned by the
// editor and is overwritten by the next frame, so it must be copied or
// uploaded before Present returns.
type Presenter interface {
	Present(frame *image.RGBA)
}

// PresentFunc adapts a function to Presenter.
type PresentFunc func(*image.RGBA)

func (f PresentFunc) Present(frame *image.RGBA) { f(frame) }

// Event is applied on the editor loop with exclusive access to its state.
type Event func(e *Editor)

// Editor owns a session, its interaction machine and the render canvas.
type Editor struct {
	sess    *session.Session
	machine *interact.Machine
	canvas  *render.Canvas

	events chan Event
	frames chan struct{}
	rate   int
	dirty  bool

	alerter   Alerter
	presenter Presenter

	prompter interact.Prompter
	onSelect func(shape.Kind)
	onSize   func(w, h int)

	runCtx context.Context
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithSession uses sess instead of a fresh session.
func WithSession(sess *session.Session) Option { return func(e *Editor) { e.sess = sess } }

// WithFrameRate sets how many frames per second are composited.
func WithFrameRate(rate int) Option { return func(e *Editor) { e.rate = rate } }

// WithAlerter sets where user notices go. Notices are logged otherwise.
func WithAlerter(a Alerter) Option { return func(e *Editor) { e.alerter = a } }

// WithPresenter sets the receiver of composited frames.
func WithPresenter(p Presenter) Option { return func(e *Editor) { e.presenter = p } }

// WithPrompter sets the source of text labels.
func WithPrompter(p interact.Prompter) Option { return func(e *Editor) { e.prompter = p } }

// WithSelectListener is called on the loop whenever the shape kind changes.
func WithSelectListener(fn func(shape.Kind)) Option { return func(e *Editor) { e.onSelect = fn } }

// WithSizeListener is called on the loop whenever a new image resizes the
// surface.
func WithSizeListener(fn func(w, h int)) Option { return func(e *Editor) { e.onSize = fn } }

// New creates an editor. Call Run to start processing events.
func New(opts ...Option) *Editor {
	e := &Editor{
		events: make(chan Event, 64),
		frames: make(chan struct{}, 1),
		rate:   render.DefaultFrameRate,
		dirty:  true,
	}
	for _, o := range opts {
		o(e)
	}
	if e.sess == nil {
		e.sess = session.New()
	}
	e.sess.SetSizeListener(func(w, h int) {
		log.Printf("session %s: surface %dx%d", e.sess.ID, w, h)
		if e.onSize != nil {
			e.onSize(w, h)
		}
	})
	e.machine = interact.New(e.sess.List(),
		interact.WithPrompter(e.prompter),
		interact.WithSelectListener(e.onSelect),
	)
	w, h := e.sess.Size()
	e.canvas = render.NewCanvas(w, h)
	return e
}

// Session returns the edited session. Only touch it from an Event.
func (e *Editor) Session() *session.Session { return e.sess }

// Machine returns the interaction machine. Only touch it from an Event.
func (e *Editor) Machine() *interact.Machine { return e.machine }

// Run processes events and frame ticks until ctx is done.
func (e *Editor) Run(ctx context.Context) error {
	e.runCtx = ctx
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := render.NewLoop(e.rate, func(time.Time) {
		select {
		case e.frames <- struct{}{}:
		default:
		}
	})
	go func() { _ = loop.Run(loopCtx) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.events:
			ev(e)
		case <-e.frames:
			e.frame()
		}
	}
}

// frame composites and presents when something changed since the last
// frame. Unchanged state composites to identical pixels, so it is skipped.
func (e *Editor) frame() {
	if !e.dirty {
		return
	}
	if !render.RenderFrame(e.sess, e.canvas) {
		return
	}
	e.dirty = false
	if e.presenter != nil {
		e.presenter.Present(e.canvas.Image())
	}
}

// Invalidate forces the next tick to composite a frame.
func (e *Editor) Invalidate() { e.dirty = true }

// Post queues ev for the loop. It blocks while the queue is full.
func (e *Editor) Post(ev Event) { e.events <- ev }

// post queues ev unless ctx ends first.
func (e *Editor) post(ctx context.Context, ev Event) error {
	select {
	case e.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Editor) alert(msg string) {
	log.Printf("session %s: %s", e.sess.ID, msg)
	if e.alerter != nil {
		e.alerter.Alert(msg)
	}
}

// PointerDown starts a shape at p.
func (e *Editor) PointerDown(p shape.Point) {
	e.Post(func(e *Editor) {
		if e.machine.PointerDown(p) {
			e.dirty = true
		}
	})
}

// PointerMove drags the newest shape while the pointer is down.
func (e *Editor) PointerMove(p shape.Point) {
	e.Post(func(e *Editor) {
		if e.machine.PointerMove(p) {
			e.dirty = true
		}
	})
}

// PointerUp ends the drag at p.
func (e *Editor) PointerUp(p shape.Point) {
	e.Post(func(e *Editor) {
		if e.machine.PointerUp(p) {
			e.dirty = true
		}
	})
}

// Select chooses the kind of the next shape.
func (e *Editor) Select(k shape.Kind) {
	e.Post(func(e *Editor) { e.machine.Select(k) })
}

// Undo removes the newest shape.
func (e *Editor) Undo() {
	e.Post(func(e *Editor) {
		if e.machine.Undo() {
			e.dirty = true
		}
	})
}

// Paste checks and decodes b, then loads it as the session image. The
// returned channel receives the outcome once the image is in place or the
// paste has failed. A non-image paste raises an alert and changes nothing.
func (e *Editor) Paste(b decode.Blob) <-chan error {
	done := make(chan error, 1)
	e.Post(func(e *Editor) {
		if err := decode.Check(b); err != nil {
			e.alert(InvalidPasteMessage)
			done <- err
			return
		}
		ctx := e.runCtx
		if ctx == nil {
			ctx = context.Background()
		}
		decode.Async(ctx, b, func(r decode.Result) {
			if err := e.post(ctx, func(e *Editor) { done <- e.load(r) }); err != nil {
				done <- err
			}
		})
	})
	return done
}

func (e *Editor) load(r decode.Result) error {
	if r.Err != nil {
		log.Printf("session %s: paste: %v", e.sess.ID, r.Err)
		return r.Err
	}
	e.sess.SetRaster(r.Image)
	e.dirty = true
	w, h := e.sess.Size()
	log.Printf("session %s: image loaded %dx%d (%s)", e.sess.ID, w, h, r.Format)
	return nil
}

// Load pastes b and waits for the outcome.
func (e *Editor) Load(ctx context.Context, b decode.Blob) error {
	select {
	case err := <-e.Paste(b):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Export composites the current state once more and returns the flattened
// image. The image is not reused by later frames.
func (e *Editor) Export(ctx context.Context) (*image.RGBA, error) {
	type reply struct {
		img *image.RGBA
		err error
	}
	ch := make(chan reply, 1)
	if err := e.post(ctx, func(e *Editor) {
		img, ok := render.Snapshot(e.sess)
		if !ok {
			ch <- reply{err: ErrNoImage}
			return
		}
		ch <- reply{img: img}
	}); err != nil {
		return nil, err
	}
	select {
	case r := <-ch:
		return r.img, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Do runs fn on the loop and waits for it to finish.
func (e *Editor) Do(ctx context.Context, fn func(sess *session.Session, m *interact.Machine)) error {
	done := make(chan struct{})
	if err := e.post(ctx, func(e *Editor) {
		defer close(done)
		fn(e.sess, e.machine)
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
