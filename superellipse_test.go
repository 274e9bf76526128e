package implicit

import (
	"errors"
	"math"
	"testing"
)

func TestSuperellipseShapes(t *testing.T) {
	tests := []struct {
		a, b, n float64
		want    SuperellipseShape
	}{
		{1, 1, 2, SuperellipseCircle},
		{2, 1, 2, SuperellipseEllipse},
		{1, 1, 1, SuperellipseDiamond},
		{3, 2, 1, SuperellipseDiamond},
		{1, 1, 1.5, SuperellipseRoundedDiamond},
		{1, 1, 4, SuperellipseSquarish},
		{2, 1, 4, SuperellipseGeneric},
		{1, 1, 0.5, SuperellipseGeneric},
	}
	for _, tt := range tests {
		s, err := NewSuperellipse(tt.a, tt.b, tt.n)
		if err != nil {
			t.Errorf("(%v, %v, %v): %v", tt.a, tt.b, tt.n, err)
			continue
		}
		if got := s.Shape(); got != tt.want {
			t.Errorf("(%v, %v, %v): got %v, want %v", tt.a, tt.b, tt.n, got, tt.want)
		}
	}
}

func TestSuperellipseInvalidParameters(t *testing.T) {
	for _, tt := range [][3]float64{
		{0, 1, 2},
		{1, -1, 2},
		{1, 1, 0},
		{math.NaN(), 1, 2},
	} {
		if _, err := NewSuperellipse(tt[0], tt[1], tt[2]); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("(%v, %v, %v): got %v, want ErrInvalidParameter", tt[0], tt[1], tt[2], err)
		}
	}
}

func TestSuperellipseEvaluate(t *testing.T) {
	s, err := NewSuperellipse(2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range []Point{Pt(2, 0), Pt(-2, 0), Pt(0, 1), Pt(0, -1)} {
		diff(t, 0.0, s.Evaluate(pt), approx(1e-12))
	}
	if f := s.Evaluate(Pt(0, 0)); f >= 0 {
		t.Errorf("center value %v, want negative", f)
	}
	if f := s.Evaluate(Pt(3, 3)); f <= 0 {
		t.Errorf("outside value %v, want positive", f)
	}
}

func TestSuperellipseGradient(t *testing.T) {
	s, err := NewSuperellipse(2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Away from the axes the analytic branch must agree with a central
	// difference of the relation itself.
	for _, pt := range []Point{Pt(0.5, 0.6), Pt(-1.3, 0.4), Pt(0.8, -0.9)} {
		want := centralGradient(func(x, y float64) float64 {
			return s.Evaluate(Pt(x, y))
		}, pt, 1e-6)
		diff(t, want, s.Gradient(pt), approx(1e-5))
	}

	// On the axes the relation has a crease; the fallback must still
	// produce a finite, outward-pointing gradient.
	g := s.Gradient(Pt(2, 0))
	if math.IsNaN(g.X) || math.IsNaN(g.Y) {
		t.Fatalf("gradient at axis is %v", g)
	}
	if g.X <= 0 {
		t.Errorf("gradient at (2, 0) is %v, want positive X component", g)
	}

	n, err := s.Normal(Pt(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 1.0, n.Hypot(), approx(1e-9))
}

func TestSuperellipseBoundingBox(t *testing.T) {
	s, err := NewSuperellipse(2.5, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	box, ok := s.BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	diff(t, Rect{-2.5, -0.5, 2.5, 0.5}, box)
}
