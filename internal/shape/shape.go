// Package shape defines the annotation primitives drawn over a screenshot.
//
// A Shape is a tagged union over the Arrow, Box, Circle and Text variants.
// Every variant is anchored by two points: Begin, recorded when the drag
// starts, and End, which follows the pointer until the drag is released.
// Derived geometry (box size, circle radius, arrow head) is always computed
// from those two points and never cached.
package shape

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in surface pixel coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the Euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Kind identifies a shape variant.
type Kind int

const (
	Arrow Kind = iota
	Box
	Circle
	Text
)

// Kinds lists every variant in selector order.
var Kinds = []Kind{Arrow, Box, Circle, Text}

func (k Kind) String() string {
	switch k {
	case Arrow:
		return "arrow"
	case Box:
		return "box"
	case Circle:
		return "circle"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key returns the single-letter shortcut used to select the variant.
func (k Kind) Key() rune {
	switch k {
	case Arrow:
		return 'a'
	case Box:
		return 'b'
	case Circle:
		return 'c'
	case Text:
		return 't'
	default:
		return 0
	}
}

// ParseKind accepts a variant name or its shortcut letter.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if name == k.String() || (len(name) == 1 && rune(name[0]) == k.Key()) {
			return k, nil
		}
	}
	switch name {
	case "rect", "rectangle":
		return Box, nil
	case "label":
		return Text, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// Arrow head constants.
const (
	ArrowHeadLength = 30
	ArrowHeadAngle  = math.Pi / 6
)

// Shape is one annotation primitive.
type Shape struct {
	Kind  Kind
	Begin Point
	End   Point
	// Text is only meaningful for the Text variant and is fixed at creation.
	Text string
}

// New creates a shape of the given kind with both anchors at p.
func New(kind Kind, p Point, text string) Shape {
	s := Shape{Kind: kind, Begin: p, End: p}
	if kind == Text {
		s.Text = text
	}
	return s
}

// SetBegin replaces the start anchor.
func (s *Shape) SetBegin(p Point) { s.Begin = p }

// SetEnd replaces the end anchor.
func (s *Shape) SetEnd(p Point) { s.End = p }

// Width is the signed horizontal extent of the drag.
func (s Shape) Width() float64 { return s.End.X - s.Begin.X }

// Height is the signed vertical extent of the drag.
func (s Shape) Height() float64 { return s.End.Y - s.Begin.Y }

// Center is the circle centre, which stays at the drag start.
func (s Shape) Center() Point { return s.Begin }

// Radius treats the drag vector as the circle's diameter.
func (s Shape) Radius() float64 { return s.End.Sub(s.Begin).Len() / 2 }

// Angle is the direction of the drag in radians.
func (s Shape) Angle() float64 {
	return math.Atan2(s.End.Y-s.Begin.Y, s.End.X-s.Begin.X)
}

// ArrowHead returns the far ends of the two head segments drawn back from End.
func (s Shape) ArrowHead() (left, right Point) {
	a := s.Angle()
	left = Point{
		X: s.End.X - ArrowHeadLength*math.Cos(a-ArrowHeadAngle),
		Y: s.End.Y - ArrowHeadLength*math.Sin(a-ArrowHeadAngle),
	}
	right = Point{
		X: s.End.X - ArrowHeadLength*math.Cos(a+ArrowHeadAngle),
		Y: s.End.Y - ArrowHeadLength*math.Sin(a+ArrowHeadAngle),
	}
	return left, right
}

// Corners returns the box outline in drawing order, starting and ending at
// Begin. Signed width and height are used as is.
func (s Shape) Corners() [5]Point {
	w, h := s.Width(), s.Height()
	b := s.Begin
	return [5]Point{
		b,
		{X: b.X + w, Y: b.Y},
		{X: b.X + w, Y: b.Y + h},
		{X: b.X, Y: b.Y + h},
		b,
	}
}

func (s Shape) String() string {
	if s.Kind == Text {
		return fmt.Sprintf("%s %q %v", s.Kind, s.Text, s.Begin)
	}
	return fmt.Sprintf("%s %v-%v", s.Kind, s.Begin, s.End)
}
