package implicit

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluatorEval(t *testing.T) {
	tests := []struct {
		src  string
		x, y float64
		want float64
	}{
		{"x^2 + y^2 - 1", 1, 0, 0},
		{"x^2 + y^2 - 1", 0, 0, -1},
		{"x^2 + y^2 = 4", 2, 0, 0},
		{"x*y - 3", 1.5, 2, 0},
		{"(x + y)^3", 1, 1, 8},
		{"-x^2", 2, 0, -4},
		{"x / 2 - y", 3, 1.5, 0},
		{"sin(x)^2 + cos(x)^2", 0.7, 0, 1},
		{"exp(x) * exp(y)", 1, 2, math.E * math.E * math.E},
		{"sqrt(x^2 + y^2)", 3, 4, 5},
		{"log(x)", math.E, 0, 1},
		{"abs(x - y)", 2, 5, 3},
		{"2*pi", 0, 0, 2 * math.Pi},
		{"x^2*y + x*y^2", 2, 3, 30},
	}
	for _, tt := range tests {
		ev, err := NewEvaluator(tt.src, "x", "y")
		if err != nil {
			t.Errorf("%q: %v", tt.src, err)
			continue
		}
		if got := ev.Eval(tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%q at (%v, %v): got %v, want %v", tt.src, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEvaluatorPartials(t *testing.T) {
	ev, err := NewEvaluator("x^2*y + sin(y)", "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	dx := ev.PartialX()
	dy := ev.PartialY()
	for _, pt := range []Point{Pt(0, 0), Pt(1, 2), Pt(-0.5, 3), Pt(2, -1)} {
		wantX := 2 * pt.X * pt.Y
		wantY := pt.X*pt.X + math.Cos(pt.Y)
		if got := dx(pt.X, pt.Y); math.Abs(got-wantX) > 1e-12 {
			t.Errorf("∂f/∂x at %v: got %v, want %v", pt, got, wantX)
		}
		if got := dy(pt.X, pt.Y); math.Abs(got-wantY) > 1e-12 {
			t.Errorf("∂f/∂y at %v: got %v, want %v", pt, got, wantY)
		}
		diff(t, Vec(wantX, wantY), ev.GradientAt(pt.X, pt.Y), approx(1e-12))
	}
}

func TestEvaluatorBatch(t *testing.T) {
	ev, err := NewEvaluator("x^2 - y", "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0, 1, 2, 3, -1}
	ys := []float64{0, 1, 4, 9, 1}
	dst := make([]float64, len(xs))
	ev.EvalBatch(xs, ys, dst)
	for i := range xs {
		if want := ev.Eval(xs[i], ys[i]); dst[i] != want {
			t.Errorf("batch[%d]: got %v, want %v", i, dst[i], want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched slice lengths")
		}
	}()
	ev.EvalBatch(xs, ys[:2], dst)
}

func TestEvaluatorStringRoundTrip(t *testing.T) {
	srcs := []string{
		"x^2 + y^2 - 1",
		"x^3*y - 2*x*y^3 + 7",
		"sin(x*y) / (1 + x^2)",
		"-(x + y)^2 + sqrt(abs(x))",
		"x^2 + 2*x*y + y^2 = 9",
	}
	for _, src := range srcs {
		ev, err := NewEvaluator(src, "x", "y")
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		ev2, err := NewEvaluator(ev.String(), "x", "y")
		if err != nil {
			t.Fatalf("%q: reparse %q: %v", src, ev.String(), err)
		}
		for _, x := range []float64{-1.5, -0.3, 0.2, 1, 2.7} {
			for _, y := range []float64{-2, -0.1, 0.5, 1.3} {
				a, b := ev.Eval(x, y), ev2.Eval(x, y)
				if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
					t.Errorf("%q normalized to %q: values differ at (%v, %v): %v vs %v",
						src, ev.String(), x, y, a, b)
				}
			}
		}
	}
}

func TestEvaluatorCustomVariables(t *testing.T) {
	ev, err := NewEvaluator("u^2 + v^2 - 1", "u", "v")
	if err != nil {
		t.Fatal(err)
	}
	xv, yv := ev.Variables()
	diff(t, "u", xv)
	diff(t, "v", yv)
	diff(t, 0.0, ev.Eval(0, 1))

	// x is not declared for this variable pair.
	if _, err := NewEvaluator("x^2 + v^2", "u", "v"); !errors.Is(err, ErrInvalidExpression) {
		t.Errorf("got %v, want ErrInvalidExpression", err)
	}
}

func TestEvaluatorParseErrors(t *testing.T) {
	bad := []string{
		"",
		"x +",
		"(x + y",
		"x ^",
		"x + z",
		"foo(x)",
		"sin x",
		"1..2 + x",
		"x = y = 1",
	}
	for _, src := range bad {
		if _, err := NewEvaluator(src, "x", "y"); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("%q: got %v, want ErrInvalidExpression", src, err)
		}
	}

	if _, err := NewEvaluator("x + y", "x", "x"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("duplicate variables: got %v, want ErrInvalidParameter", err)
	}
	if _, err := NewEvaluator("x + y", "", "y"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty variable: got %v, want ErrInvalidParameter", err)
	}
}
