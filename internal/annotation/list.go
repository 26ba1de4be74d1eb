// Package annotation keeps the ordered set of shapes drawn over an image.
package annotation

import "github.com/example/shotmark/internal/shape"

// List holds shapes in insertion order, which is also their paint order.
// Only the most recent shape is ever edited or removed.
//
// List is not safe for concurrent use; the editor loop owns it.
type List struct {
	shapes []shape.Shape
}

// Append adds s on top of every existing shape.
func (l *List) Append(s shape.Shape) {
	l.shapes = append(l.shapes, s)
}

// RemoveLast drops the most recent shape. It reports false when the list is
// already empty.
func (l *List) RemoveLast() (shape.Shape, bool) {
	n := len(l.shapes)
	if n == 0 {
		return shape.Shape{}, false
	}
	s := l.shapes[n-1]
	l.shapes[n-1] = shape.Shape{}
	l.shapes = l.shapes[:n-1]
	return s, true
}

// UpdateLast moves the end anchor of the most recent shape.
func (l *List) UpdateLast(p shape.Point) bool {
	n := len(l.shapes)
	if n == 0 {
		return false
	}
	l.shapes[n-1].SetEnd(p)
	return true
}

func (l *List) Len() int { return len(l.shapes) }

func (l *List) Last() (shape.Shape, bool) {
	if len(l.shapes) == 0 {
		return shape.Shape{}, false
	}
	return l.shapes[len(l.shapes)-1], true
}

// Each calls fn for every shape from bottom to top.
func (l *List) Each(fn func(i int, s shape.Shape)) {
	for i, s := range l.shapes {
		fn(i, s)
	}
}

// Shapes returns a copy of the current shapes.
func (l *List) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(l.shapes))
	copy(out, l.shapes)
	return out
}

func (l *List) Clear() {
	l.shapes = l.shapes[:0]
}
