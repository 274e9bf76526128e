package implicit

import (
	"errors"
	"testing"
)

func TestNormal(t *testing.T) {
	c, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	n, err := c.Normal(Pt(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(1, 0), n, approx(1e-12))

	n, err = c.Normal(Pt(0, -1))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(0, -1), n, approx(1e-12))
}

func TestNormalSingularGradient(t *testing.T) {
	// Two crossing lines; the gradient vanishes at the crossing.
	c, err := NewPolynomialCurve("x^2 - y^2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Normal(Pt(0, 0)); !errors.Is(err, ErrSingularGradient) {
		t.Errorf("got %v, want ErrSingularGradient", err)
	}
	// Away from the crossing the branches are smooth.
	if _, err := c.Normal(Pt(1, 1)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCheckCompatible(t *testing.T) {
	xy, err := NewPolynomialCurve("x + y")
	if err != nil {
		t.Fatal(err)
	}
	uv, err := NewPolynomialCurveXY("u + v", "u", "v")
	if err != nil {
		t.Fatal(err)
	}
	if err := checkCompatible(xy, xy); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := checkCompatible(xy, uv); !errors.Is(err, ErrIncompatibleCurve) {
		t.Errorf("got %v, want ErrIncompatibleCurve", err)
	}
}
