package implicit

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 4).Sub(Pt(1, 1)), Vec(2, 3))
	diff(t, Pt(0, 0).Lerp(Pt(10, -4), 0.5), Pt(5, -2))
	diff(t, Pt(2, 2).Midpoint(Pt(4, 6)), Pt(3, 4))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.DistanceSquared(p4); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
}

func TestVec2(t *testing.T) {
	v := Vec(3, 4)
	if h := v.Hypot(); h != 5 {
		t.Errorf("got hypot %v, want 5", h)
	}
	if h := v.Hypot2(); h != 25 {
		t.Errorf("got hypot² %v, want 25", h)
	}
	diff(t, 11.0, v.Dot(Vec(1, 2)))
	diff(t, 2.0, v.Cross(Vec(1, 2)))
	diff(t, Vec(0.6, 0.8), v.Normalize(), approx(1e-12))
	diff(t, math.Pi/2, Vec(0, 1).Angle())
	diff(t, Vec(-3, -4), v.Negate())
}
