package implicit

import (
	"errors"
	"testing"
)

func TestPolynomialDegree(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"x + y - 1", 1},
		{"x*y", 2},
		{"x^2 + y^2 - 1", 2},
		{"x^3*y + x*y^3 - 1", 4},
		{"x^4 + y^4 - 2*x^2*y^2 - 1", 4},
		{"(x + y)^3 - x", 3},
		{"x/2 + y/3", 1},
		{"7", 0},
		// The leading cubes cancel.
		{"(x + 1)^3 - x^3", 2},
	}
	for _, tt := range tests {
		c, err := NewPolynomialCurve(tt.src)
		if err != nil {
			t.Errorf("%q: %v", tt.src, err)
			continue
		}
		if got := c.Degree(); got != tt.want {
			t.Errorf("%q: got degree %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestPolynomialRejectsNonPolynomial(t *testing.T) {
	bad := []string{
		"sin(x) + y",
		"sqrt(x) - y",
		"1/x",
		"y / (x + 1)",
		"x^0.5",
		"x^y",
		"x^-1",
	}
	for _, src := range bad {
		if _, err := NewPolynomialCurve(src); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("%q: got %v, want ErrInvalidExpression", src, err)
		}
	}
}

func TestPolynomialEvaluateGradient(t *testing.T) {
	// Lemniscate of Bernoulli, a² = 1.
	c, err := NewPolynomialCurve("(x^2 + y^2)^2 - 2*(x^2 - y^2)")
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range []Point{Pt(0, 0), Pt(1.4142135623730951, 0), Pt(-1.4142135623730951, 0)} {
		if f := c.Evaluate(pt); f > 1e-12 || f < -1e-12 {
			t.Errorf("f%v = %v, want 0", pt, f)
		}
	}

	pt := Pt(0.5, 0.25)
	r2 := pt.X*pt.X + pt.Y*pt.Y
	want := Vec(4*r2*pt.X-4*pt.X, 4*r2*pt.Y+4*pt.Y)
	diff(t, want, c.Gradient(pt), approx(1e-12))
}

func TestPolynomialBoundingBox(t *testing.T) {
	c, err := NewPolynomialCurve("x^3 - y^2")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.BoundingBox(); ok {
		t.Error("expected no bounding box for a general polynomial")
	}
}

func TestPolynomialCustomVariables(t *testing.T) {
	c, err := NewPolynomialCurveXY("u^2 - v", "u", "v")
	if err != nil {
		t.Fatal(err)
	}
	xv, yv := c.Variables()
	diff(t, "u", xv)
	diff(t, "v", yv)
	diff(t, 0.0, c.Evaluate(Pt(3, 9)))
}

func TestPolynomialExpressionReparses(t *testing.T) {
	c, err := NewPolynomialCurve("x^3*y - 2*x + 1")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewPolynomialCurve(c.Expression())
	if err != nil {
		t.Fatalf("reparse %q: %v", c.Expression(), err)
	}
	diff(t, c.Degree(), c2.Degree())
	for _, pt := range []Point{Pt(0, 0), Pt(1, 1), Pt(-2, 0.5), Pt(0.3, -1.7)} {
		diff(t, c.Evaluate(pt), c2.Evaluate(pt))
	}
}
