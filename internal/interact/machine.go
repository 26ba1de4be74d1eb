// Package interact turns pointer and key input into edits of an annotation
// list.
//
// The machine has two states. Idle waits for a pointer press; Dragging
// follows the pointer and moves the end anchor of the shape created by the
// press. Releasing the pointer always returns to Idle.
package interact

import (
	"github.com/example/shotmark/internal/annotation"
	"github.com/example/shotmark/internal/shape"
)

// Prompter asks the user for the label of a new text shape. ok is false
// when the user declined.
type Prompter interface {
	Prompt() (text string, ok bool)
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func() (string, bool)

func (f PromptFunc) Prompt() (string, bool) { return f() }

// Machine is the drag-to-create state machine. It is not safe for
// concurrent use.
type Machine struct {
	list     *annotation.List
	current  shape.Kind
	dragging bool

	prompter Prompter
	onSelect func(shape.Kind)
}

// Option configures a Machine during creation.
type Option func(*Machine)

// WithKind sets the variant created by the next press.
func WithKind(k shape.Kind) Option { return func(m *Machine) { m.current = k } }

// WithPrompter sets the source of text labels.
func WithPrompter(p Prompter) Option { return func(m *Machine) { m.prompter = p } }

// WithSelectListener registers a callback invoked whenever the selected
// variant changes, typically to update an on-screen indicator.
func WithSelectListener(fn func(shape.Kind)) Option {
	return func(m *Machine) { m.onSelect = fn }
}

// New creates an idle machine editing list. Arrow is selected by default.
func New(list *annotation.List, opts ...Option) *Machine {
	m := &Machine{list: list, current: shape.Arrow}
	for _, o := range opts {
		o(m)
	}
	return m
}

// PointerDown starts a new shape at p. For text shapes the label is
// requested first; a declined or empty label leaves the machine idle and
// the list untouched. It reports whether a shape was started.
func (m *Machine) PointerDown(p shape.Point) bool {
	var text string
	if m.current == shape.Text {
		var ok bool
		if m.prompter != nil {
			text, ok = m.prompter.Prompt()
		}
		if !ok || text == "" {
			return false
		}
	}
	m.dragging = true
	m.list.Append(shape.New(m.current, p, text))
	return true
}

// PointerMove drags the end anchor of the newest shape while a drag is in
// progress. It reports whether anything changed.
func (m *Machine) PointerMove(p shape.Point) bool {
	if !m.dragging {
		return false
	}
	return m.list.UpdateLast(p)
}

// PointerUp ends any drag and pins the newest shape's end anchor at p.
// A release without a matching press still updates the newest shape.
func (m *Machine) PointerUp(p shape.Point) bool {
	m.dragging = false
	return m.list.UpdateLast(p)
}

// Select changes the variant used by the next press. A drag already in
// progress keeps its shape.
func (m *Machine) Select(k shape.Kind) {
	m.current = k
	if m.onSelect != nil {
		m.onSelect(k)
	}
}

// Undo removes the newest shape. It reports false when there was nothing
// to remove.
func (m *Machine) Undo() bool {
	_, ok := m.list.RemoveLast()
	return ok
}

func (m *Machine) Dragging() bool { return m.dragging }

func (m *Machine) Current() shape.Kind { return m.current }
