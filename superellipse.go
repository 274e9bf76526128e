package implicit

import (
	"fmt"
	"math"
)

// SuperellipseShape classifies a superellipse by its exponent and aspect
// ratio.
type SuperellipseShape uint8

const (
	SuperellipseCircle SuperellipseShape = iota
	SuperellipseEllipse
	SuperellipseDiamond
	SuperellipseRoundedDiamond
	SuperellipseSquarish
	SuperellipseGeneric
)

func (s SuperellipseShape) String() string {
	switch s {
	case SuperellipseCircle:
		return "circle"
	case SuperellipseEllipse:
		return "ellipse"
	case SuperellipseDiamond:
		return "diamond"
	case SuperellipseRoundedDiamond:
		return "rounded-diamond"
	case SuperellipseSquarish:
		return "square-like"
	case SuperellipseGeneric:
		return "generic"
	default:
		return fmt.Sprintf("SuperellipseShape(%d)", uint8(s))
	}
}

// Superellipse is the curve |x/a|ⁿ + |y/b|ⁿ = 1 with a, b, n > 0.
//
// The absolute-value terms make the relation non-smooth on the coordinate
// axes; there the gradient falls back to a central finite difference,
// sign-consistent with the analytic branch elsewhere.
type Superellipse struct {
	a, b, n float64
	step    float64
	shape   SuperellipseShape
}

var _ Curve = (*Superellipse)(nil)

// NewSuperellipse builds the superellipse with semi-axes a, b and exponent
// n. All three must be strictly positive, else it fails with
// [ErrInvalidParameter].
func NewSuperellipse(a, b, n float64) (*Superellipse, error) {
	if !(a > 0) || !(b > 0) || !(n > 0) {
		return nil, fmt.Errorf("superellipse a=%g b=%g n=%g (all must be > 0): %w",
			a, b, n, ErrInvalidParameter)
	}
	return &Superellipse{
		a:     a,
		b:     b,
		n:     n,
		step:  DefaultDiffStep,
		shape: classifySuperellipse(a, b, n),
	}, nil
}

// WithDiffStep returns a copy using step h for the finite-difference
// gradient fallback on the axes.
func (s *Superellipse) WithDiffStep(h float64) *Superellipse {
	c := *s
	if h > 0 {
		c.step = h
	}
	return &c
}

func classifySuperellipse(a, b, n float64) SuperellipseShape {
	const eps = DefaultAccuracy
	round := math.Abs(a-b) <= eps*max(a, b)
	switch {
	case math.Abs(n-2) <= eps:
		if round {
			return SuperellipseCircle
		}
		return SuperellipseEllipse
	case math.Abs(n-1) <= eps:
		return SuperellipseDiamond
	case n > 1 && n < 2:
		return SuperellipseRoundedDiamond
	case n > 2 && round:
		return SuperellipseSquarish
	default:
		return SuperellipseGeneric
	}
}

// Shape returns the derived classification, computed once at construction.
func (s *Superellipse) Shape() SuperellipseShape {
	return s.shape
}

// SemiAxes returns the semi-axis lengths (a, b).
func (s *Superellipse) SemiAxes() (a, b float64) {
	return s.a, s.b
}

// Exponent returns the exponent n.
func (s *Superellipse) Exponent() float64 {
	return s.n
}

func (s *Superellipse) Evaluate(pt Point) float64 {
	return math.Pow(math.Abs(pt.X/s.a), s.n) + math.Pow(math.Abs(pt.Y/s.b), s.n) - 1
}

// Gradient uses the analytic partials
//
//	∂f/∂x = (n/a)·|x/a|^(n−1)·sign(x)
//
// away from the axes. On the axes (|x| or |y| below the difference step)
// the absolute-value term is non-differentiable and a central finite
// difference is used for both components instead.
func (s *Superellipse) Gradient(pt Point) Vec2 {
	if math.Abs(pt.X) <= s.step || math.Abs(pt.Y) <= s.step {
		return centralGradient(func(x, y float64) float64 {
			return s.Evaluate(Pt(x, y))
		}, pt, s.step)
	}
	return Vec2{
		X: math.Copysign(s.n/s.a*math.Pow(math.Abs(pt.X/s.a), s.n-1), pt.X),
		Y: math.Copysign(s.n/s.b*math.Pow(math.Abs(pt.Y/s.b), s.n-1), pt.Y),
	}
}

func (s *Superellipse) Normal(pt Point) (Vec2, error) {
	return unitNormal(s, pt)
}

func (s *Superellipse) BoundingBox() (Rect, bool) {
	return Rect{X0: -s.a, Y0: -s.b, X1: s.a, Y1: s.b}, true
}

func (s *Superellipse) Variables() (string, string) {
	return "x", "y"
}
