package annotation

import (
	"testing"

	"github.com/example/shotmark/internal/shape"
)

func TestAppendAndUndo(t *testing.T) {
	var l List
	for i := 0; i < 3; i++ {
		l.Append(shape.New(shape.Box, shape.Pt(float64(i), 0), ""))
	}
	if l.Len() != 3 {
		t.Fatalf("len %d, want 3", l.Len())
	}
	s, ok := l.RemoveLast()
	if !ok || s.Begin.X != 2 {
		t.Fatalf("removed %v ok=%v", s, ok)
	}
	if l.Len() != 2 {
		t.Fatalf("len after undo %d, want 2", l.Len())
	}
}

func TestRemoveLastEmpty(t *testing.T) {
	var l List
	if _, ok := l.RemoveLast(); ok {
		t.Fatal("expected no shape from empty list")
	}
	if l.Len() != 0 {
		t.Fatalf("len %d, want 0", l.Len())
	}
}

func TestUpdateLastOnlyTouchesTop(t *testing.T) {
	var l List
	l.Append(shape.New(shape.Arrow, shape.Pt(0, 0), ""))
	l.Append(shape.New(shape.Circle, shape.Pt(5, 5), ""))
	if !l.UpdateLast(shape.Pt(9, 9)) {
		t.Fatal("UpdateLast reported empty list")
	}
	got := l.Shapes()
	if got[0].End != shape.Pt(0, 0) {
		t.Fatalf("bottom shape moved: %v", got[0])
	}
	if got[1].End != shape.Pt(9, 9) {
		t.Fatalf("top shape end %v", got[1].End)
	}

	var empty List
	if empty.UpdateLast(shape.Pt(1, 1)) {
		t.Fatal("UpdateLast on empty list reported success")
	}
}

func TestEachOrderAndShapesCopy(t *testing.T) {
	var l List
	kinds := []shape.Kind{shape.Arrow, shape.Box, shape.Text}
	for _, k := range kinds {
		l.Append(shape.New(k, shape.Pt(0, 0), "x"))
	}
	var order []shape.Kind
	l.Each(func(i int, s shape.Shape) {
		if i != len(order) {
			t.Fatalf("index %d out of order", i)
		}
		order = append(order, s.Kind)
	})
	for i := range kinds {
		if order[i] != kinds[i] {
			t.Fatalf("order %v, want %v", order, kinds)
		}
	}

	cp := l.Shapes()
	cp[0].Kind = shape.Circle
	if l.Shapes()[0].Kind != shape.Arrow {
		t.Fatal("Shapes did not return a copy")
	}

	l.Clear()
	if _, ok := l.Last(); ok || l.Len() != 0 {
		t.Fatal("Clear left shapes behind")
	}
}
