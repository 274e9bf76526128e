package implicit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats and float-bearing structs within an absolute
// margin.
func approx(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

// quarterArc trims the unit circle to the quarter starting at angle
// start, sweeping counterclockwise by π/2.
func quarterArc(t *testing.T, start float64) *TrimmedImplicitCurve {
	t.Helper()
	base, err := NewCircle(Pt(0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	sweep := math.Pi / 2
	arc, err := NewTrimmedCurve(
		base,
		WedgeDomain{Center: Pt(0, 0), StartAngle: start, SweepAngle: sweep},
		Pt(math.Cos(start), math.Sin(start)),
		Pt(math.Cos(start+sweep), math.Sin(start+sweep)),
	)
	if err != nil {
		t.Fatal(err)
	}
	return arc
}

// unitCircleChain builds the closed four-arc composite tracing the unit
// circle.
func unitCircleChain(t *testing.T) *CompositeCurve {
	t.Helper()
	cc, err := NewCompositeCurve(
		quarterArc(t, 0),
		quarterArc(t, math.Pi/2),
		quarterArc(t, math.Pi),
		quarterArc(t, 3*math.Pi/2),
	)
	if err != nil {
		t.Fatal(err)
	}
	return cc
}
