package implicit

import (
	"fmt"
	"math"
)

// DefaultAccuracy is the default geometric tolerance, used for endpoint
// chaining, trim validation, and intersection dedup. It is suitable for
// general-purpose 2D work.
const DefaultAccuracy = 1e-6

// DefaultDiffStep is the default step for central finite differences.
const DefaultDiffStep = 1e-8

// gradientEpsilon is the gradient magnitude below which no unit normal is
// defined.
const gradientEpsilon = 1e-9

// Curve is an implicit planar curve, the zero set of a real function
// f(x, y). Every variant in this package implements it.
//
// Curves are immutable value objects: all derived quantities (degree,
// coefficients, classification, compiled evaluators) are computed at most
// once, during construction, and never change afterwards. A curve may
// therefore be shared freely between goroutines without locking.
type Curve interface {
	// Evaluate computes f at the given point. The sign convention is
	// negative inside and positive outside for closed curves.
	Evaluate(pt Point) float64

	// Gradient computes the vector of first partial derivatives (∂f/∂x,
	// ∂f/∂y) at the given point.
	Gradient(pt Point) Vec2

	// Normal computes the unit normal at the given point. It fails with
	// [ErrSingularGradient] when the gradient magnitude is below epsilon,
	// which happens at self-intersections, cusps, and points off every
	// smooth branch.
	Normal(pt Point) (Vec2, error)

	// BoundingBox returns the smallest known rectangle enclosing the
	// curve's zero set. The second return value is false for unbounded
	// curves and for curves whose extent cannot be determined.
	BoundingBox() (Rect, bool)

	// Variables returns the names of the curve's two free variables.
	// Geometric variants use ("x", "y").
	Variables() (string, string)
}

// unitNormal is the shared Normal implementation: normalize the gradient,
// failing when it vanishes.
func unitNormal(c Curve, pt Point) (Vec2, error) {
	g := c.Gradient(pt)
	n := g.Hypot()
	if n < gradientEpsilon || math.IsNaN(n) {
		return Vec2{}, fmt.Errorf("no unit normal at %v: %w", pt, ErrSingularGradient)
	}
	return g.Mul(1 / n), nil
}

// centralGradient estimates the gradient of f at pt by central finite
// differences with step h.
func centralGradient(f func(x, y float64) float64, pt Point, h float64) Vec2 {
	if h <= 0 {
		h = DefaultDiffStep
	}
	inv := 1 / (2 * h)
	return Vec2{
		X: (f(pt.X+h, pt.Y) - f(pt.X-h, pt.Y)) * inv,
		Y: (f(pt.X, pt.Y+h) - f(pt.X, pt.Y-h)) * inv,
	}
}

// sameVariables reports whether two curves share a free-variable pair.
func sameVariables(a, b Curve) bool {
	ax, ay := a.Variables()
	bx, by := b.Variables()
	return ax == bx && ay == by
}

// checkCompatible fails with [ErrIncompatibleCurve] unless both curves use
// the same free-variable pair.
func checkCompatible(a, b Curve) error {
	if !sameVariables(a, b) {
		ax, ay := a.Variables()
		bx, by := b.Variables()
		return fmt.Errorf("variable pairs (%s, %s) and (%s, %s): %w",
			ax, ay, bx, by, ErrIncompatibleCurve)
	}
	return nil
}

// endpointer is implemented by curve variants that represent a finite
// segment with distinguished endpoints, such as [TrimmedImplicitCurve].
// CompositeCurve chaining requires it.
type endpointer interface {
	Start() Point
	End() Point
}
