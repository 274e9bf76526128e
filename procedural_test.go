package implicit

import (
	"errors"
	"math"
	"testing"
)

func TestProceduralCurve(t *testing.T) {
	p, err := NewProceduralCurve("wavy", func(x, y float64) float64 {
		return y - math.Sin(x)
	})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, "wavy", p.Name())
	diff(t, 0.0, p.Evaluate(Pt(math.Pi/2, 1)), approx(1e-12))

	// Finite-difference gradient of y − sin(x) is (−cos(x), 1).
	pt := Pt(0.7, 0.2)
	diff(t, Vec(-math.Cos(pt.X), 1), p.Gradient(pt), approx(1e-6))

	n, err := p.Normal(pt)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 1.0, n.Hypot(), approx(1e-9))

	if _, ok := p.BoundingBox(); ok {
		t.Error("expected no bounding box for a procedural curve")
	}

	if _, err := NewProceduralCurve("nil", nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestProceduralBatch(t *testing.T) {
	p, err := NewProceduralCurve("circle", func(x, y float64) float64 {
		return x*x + y*y - 1
	})
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0, 1, 0.5, -2}
	ys := []float64{0, 0, 0.5, 1}
	dst := make([]float64, len(xs))
	p.EvalBatch(xs, ys, dst)
	for i := range xs {
		diff(t, p.Evaluate(Pt(xs[i], ys[i])), dst[i])
	}

	// A custom batch function takes over vectorized evaluation.
	called := false
	pb := p.WithBatch(func(xs, ys, dst []float64) {
		called = true
		for i := range xs {
			dst[i] = xs[i]*xs[i] + ys[i]*ys[i] - 1
		}
	})
	pb.EvalBatch(xs, ys, dst)
	if !called {
		t.Error("custom batch function was not used")
	}
}

func TestProceduralDiffStep(t *testing.T) {
	p, err := NewProceduralCurve("step", func(x, y float64) float64 {
		return x + y
	})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, DefaultDiffStep, p.DiffStep())
	diff(t, 1e-5, p.WithDiffStep(1e-5).DiffStep())
	// The original is unchanged.
	diff(t, DefaultDiffStep, p.DiffStep())
	// Non-positive steps are ignored.
	diff(t, DefaultDiffStep, p.WithDiffStep(-1).DiffStep())
}

func TestUnreconstructableCurve(t *testing.T) {
	u := &UnreconstructableCurve{name: "lost"}
	diff(t, "lost", u.Name())
	if err := u.Err(); !errors.Is(err, ErrUnreconstructable) {
		t.Errorf("got %v, want ErrUnreconstructable", err)
	}
	if _, err := u.Normal(Pt(0, 0)); !errors.Is(err, ErrUnreconstructable) {
		t.Errorf("got %v, want ErrUnreconstructable", err)
	}

	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("expected Evaluate to panic")
		}
		err, ok := v.(error)
		if !ok || !errors.Is(err, ErrUnreconstructable) {
			t.Errorf("panicked with %v, want ErrUnreconstructable", v)
		}
	}()
	u.Evaluate(Pt(0, 0))
}
