package implicit

import (
	"errors"
	"math"
	"testing"
)

func TestIntersectCircles(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(1, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := Intersect(a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{
		{0.5, -math.Sqrt(3) / 2},
		{0.5, math.Sqrt(3) / 2},
	}
	diff(t, want, pts, approx(1e-6))
}

func TestIntersectCircleLine(t *testing.T) {
	circle, err := NewCircle(Pt(0, 0), 2)
	if err != nil {
		t.Fatal(err)
	}
	line, err := NewPolynomialCurve("y - x")
	if err != nil {
		t.Fatal(err)
	}
	pts, err := Intersect(circle, line, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Point{
		{-math.Sqrt2, -math.Sqrt2},
		{math.Sqrt2, math.Sqrt2},
	}
	diff(t, want, pts, approx(1e-6))
}

func TestIntersectDisjoint(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(10, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := Intersect(a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pts == nil {
		t.Fatal("disjoint curves must yield an empty list, not nil")
	}
	diff(t, 0, len(pts))
}

func TestIntersectTangent(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(2, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := Intersect(a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	// The tangential contact collapses to a single reported point.
	diff(t, []Point{{1, 0}}, pts, approx(1e-3))
}

func TestIntersectWindow(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPolynomialCurve("y - x")
	if err != nil {
		t.Fatal(err)
	}
	// Restricting the window to the first quadrant keeps only one of the
	// two crossings.
	pts, err := Intersect(a, b, &IntersectOptions{Window: Rect{0, 0, 3, 3}})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{{math.Sqrt2, math.Sqrt2}}, pts, approx(1e-6))
}

func TestIntersectIncompatible(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewConicSectionXY("u^2 + v^2 - 1", "u", "v")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Intersect(a, b, nil); !errors.Is(err, ErrIncompatibleCurve) {
		t.Errorf("got %v, want ErrIncompatibleCurve", err)
	}
	if _, err := Intersect(a, nil, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestBlend(t *testing.T) {
	a, err := NewPolynomialCurve("x^2 + y^2 - 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPolynomialCurve("x^2 + y^2 - 9")
	if err != nil {
		t.Fatal(err)
	}

	// The even blend vanishes where r² = 5.
	c, err := Blend(a, b, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0.0, c.Evaluate(Pt(math.Sqrt(5), 0)), approx(1e-12))
	diff(t, 0.5, c.Weight())

	// The endpoints reproduce the operands.
	c0, err := Blend(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	c1, err := Blend(a, b, 1)
	if err != nil {
		t.Fatal(err)
	}
	pt := Pt(1.3, -0.4)
	diff(t, a.Evaluate(pt), c0.Evaluate(pt))
	diff(t, b.Evaluate(pt), c1.Evaluate(pt))
	diff(t, a.Gradient(pt), c0.Gradient(pt))

	for _, w := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := Blend(a, b, w); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("weight %v: got %v, want ErrInvalidParameter", w, err)
		}
	}
}

func TestOffsetCircle(t *testing.T) {
	base, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Offset(base, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0.5, out.Distance())

	// Offsetting the unit circle outward by 0.5 yields the circle of
	// radius 1.5.
	for _, pt := range []Point{Pt(1.5, 0), Pt(0, 1.5), Pt(-1.5, 0), Pt(1.5 * math.Sqrt2 / 2, 1.5 * math.Sqrt2 / 2)} {
		diff(t, 0.0, out.Evaluate(pt), approx(1e-9))
	}
	if f := out.Evaluate(Pt(0.5, 0)); f >= 0 {
		t.Errorf("inside value %v, want negative", f)
	}
	if f := out.Evaluate(Pt(3, 0)); f <= 0 {
		t.Errorf("outside value %v, want positive", f)
	}

	box, ok := out.BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	diff(t, Rect{-1.5, -1.5, 1.5, 1.5}, box, approx(1e-9))

	// The gradient is the base's unit gradient.
	diff(t, Vec(1, 0), out.Gradient(Pt(1.5, 0)), approx(1e-9))

	// A negative distance shrinks the circle.
	in, err := Offset(base, -0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0.0, in.Evaluate(Pt(0.5, 0)), approx(1e-9))

	if _, err := Offset(base, math.NaN()); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestBooleanCurves(t *testing.T) {
	a, err := NewCircle(Pt(-0.5, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(0.5, 0), 1)
	if err != nil {
		t.Fatal(err)
	}

	u, err := Union(a, b)
	if err != nil {
		t.Fatal(err)
	}
	i, err := Intersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Difference(a, b)
	if err != nil {
		t.Fatal(err)
	}

	inside := func(c Curve, pt Point) bool { return c.Evaluate(pt) < 0 }
	tests := []struct {
		pt      Point
		u, i, d bool
	}{
		{Pt(0, 0), true, true, false},
		{Pt(-1.2, 0), true, false, true},
		{Pt(1.2, 0), true, false, false},
		{Pt(0, 1.4), false, false, false},
	}
	for _, tt := range tests {
		if got := inside(u, tt.pt); got != tt.u {
			t.Errorf("union at %v: got %v, want %v", tt.pt, got, tt.u)
		}
		if got := inside(i, tt.pt); got != tt.i {
			t.Errorf("intersection at %v: got %v, want %v", tt.pt, got, tt.i)
		}
		if got := inside(d, tt.pt); got != tt.d {
			t.Errorf("difference at %v: got %v, want %v", tt.pt, got, tt.d)
		}
	}

	// The active operand supplies the gradient.
	diff(t, a.Gradient(Pt(-1.2, 0)), u.Gradient(Pt(-1.2, 0)))

	boxU, ok := u.BoundingBox()
	if !ok {
		t.Fatal("expected a union bounding box")
	}
	diff(t, Rect{-1.5, -1, 1.5, 1}, boxU, approx(1e-9))

	boxI, ok := i.BoundingBox()
	if !ok {
		t.Fatal("expected an intersection bounding box")
	}
	diff(t, Rect{-0.5, -1, 0.5, 1}, boxI, approx(1e-9))

	diff(t, OpUnion, u.Op())
	diff(t, "difference", d.Op().String())
}
