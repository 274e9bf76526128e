package implicit

import (
	"fmt"
	"math"
)

// ConicType classifies a conic section by the sign of its discriminant.
type ConicType uint8

const (
	ConicCircle ConicType = iota
	ConicEllipse
	ConicParabola
	ConicHyperbola
	ConicDegenerate
)

func (t ConicType) String() string {
	switch t {
	case ConicCircle:
		return "circle"
	case ConicEllipse:
		return "ellipse"
	case ConicParabola:
		return "parabola"
	case ConicHyperbola:
		return "hyperbola"
	case ConicDegenerate:
		return "degenerate"
	default:
		return fmt.Sprintf("ConicType(%d)", uint8(t))
	}
}

// ConicSection is a degree-2 implicit curve in the general form
// Ax² + Bxy + Cy² + Dx + Ey + F = 0. The six coefficients and the
// classification are extracted once, at construction.
type ConicSection struct {
	ev               *Evaluator
	a, b, c, d, e, f float64
	kind             ConicType
}

var _ Curve = (*ConicSection)(nil)

// NewConicSection parses src as a quadratic relation in x and y. It fails
// with [ErrNotAConic] if the expression does not match the general
// quadratic form, e.g. if its total degree exceeds 2 or it is not a
// polynomial at all.
func NewConicSection(src string) (*ConicSection, error) {
	return NewConicSectionXY(src, "x", "y")
}

// NewConicSectionXY is [NewConicSection] with explicit variable names.
func NewConicSectionXY(src, xvar, yvar string) (*ConicSection, error) {
	ev, err := NewEvaluator(src, xvar, yvar)
	if err != nil {
		return nil, err
	}
	m, ok := ev.polynomial()
	if !ok {
		return nil, fmt.Errorf("%q does not match the quadratic form: %w", ev.String(), ErrNotAConic)
	}
	if deg := totalDegree(m); deg > 2 {
		return nil, fmt.Errorf("%q has total degree %d: %w", ev.String(), deg, ErrNotAConic)
	}
	cs := &ConicSection{
		ev: ev,
		a:  m[[2]int{2, 0}],
		b:  m[[2]int{1, 1}],
		c:  m[[2]int{0, 2}],
		d:  m[[2]int{1, 0}],
		e:  m[[2]int{0, 1}],
		f:  m[[2]int{0, 0}],
	}
	cs.kind = classifyConic(cs.a, cs.b, cs.c, cs.d, cs.e, cs.f)
	return cs, nil
}

// NewConicFromCoefficients builds a conic directly from the six
// coefficients of the general quadratic form.
func NewConicFromCoefficients(a, b, c, d, e, f float64) (*ConicSection, error) {
	return NewConicFromCoefficientsXY(a, b, c, d, e, f, "x", "y")
}

// NewConicFromCoefficientsXY is [NewConicFromCoefficients] with explicit
// variable names.
func NewConicFromCoefficientsXY(a, b, c, d, e, f float64, xvar, yvar string) (*ConicSection, error) {
	for _, v := range [...]float64{a, b, c, d, e, f} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite conic coefficient %g: %w", v, ErrInvalidParameter)
		}
	}
	if xvar == "" || yvar == "" || xvar == yvar {
		return nil, fmt.Errorf("variable pair (%q, %q): %w", xvar, yvar, ErrInvalidParameter)
	}
	x := exprNode(varNode(0))
	y := exprNode(varNode(1))
	node := eAdd(
		eAdd(
			eAdd(eMul(eNum(a), ePow(x, eNum(2))), eMul(eNum(b), eMul(x, y))),
			eAdd(eMul(eNum(c), ePow(y, eNum(2))), eMul(eNum(d), x)),
		),
		eAdd(eMul(eNum(e), y), eNum(f)),
	)
	return &ConicSection{
		ev:   newEvaluatorFromNode(node, xvar, yvar),
		a:    a,
		b:    b,
		c:    c,
		d:    d,
		e:    e,
		f:    f,
		kind: classifyConic(a, b, c, d, e, f),
	}, nil
}

// NewCircle builds the conic (x−cx)² + (y−cy)² = r².
func NewCircle(center Point, radius float64) (*ConicSection, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidParameter)
	}
	cx, cy := center.Splat()
	return NewConicFromCoefficients(1, 0, 1, -2*cx, -2*cy, cx*cx+cy*cy-radius*radius)
}

// NewEllipseConic builds the conic (x−cx)²/rx² + (y−cy)²/ry² = 1.
func NewEllipseConic(center Point, rx, ry float64) (*ConicSection, error) {
	if !(rx > 0) || !(ry > 0) {
		return nil, fmt.Errorf("ellipse radii (%g, %g): %w", rx, ry, ErrInvalidParameter)
	}
	cx, cy := center.Splat()
	return NewConicFromCoefficients(
		1/(rx*rx), 0, 1/(ry*ry),
		-2*cx/(rx*rx), -2*cy/(ry*ry),
		cx*cx/(rx*rx)+cy*cy/(ry*ry)-1,
	)
}

// classifyConic decides the conic type from the discriminant B²−4AC with a
// tolerance scaled by the coefficient magnitudes. Degeneracy (vanishing
// coefficients, rank-deficient forms such as a pair of lines) is detected
// through the determinant of the full conic matrix.
func classifyConic(a, b, c, d, e, f float64) ConicType {
	scale := 0.0
	for _, v := range [...]float64{a, b, c, d, e, f} {
		scale = max(scale, math.Abs(v))
	}
	if scale == 0 {
		return ConicDegenerate
	}
	eps := 1e-9 * scale
	if math.Abs(a) <= eps && math.Abs(b) <= eps && math.Abs(c) <= eps {
		// No quadratic part at all.
		return ConicDegenerate
	}
	// det of [[A, B/2, D/2], [B/2, C, E/2], [D/2, E/2, F]]
	det3 := a*(c*f-e*e/4) - b/2*(b/2*f-e/2*d/2) + d/2*(b/2*e/2-c*d/2)
	if math.Abs(det3) <= 1e-9*scale*scale*scale {
		return ConicDegenerate
	}
	disc := b*b - 4*a*c
	tol2 := 1e-9 * scale * scale
	if math.Abs(a-c) <= eps && math.Abs(b) <= eps && disc < -tol2 {
		return ConicCircle
	}
	switch {
	case disc < -tol2:
		return ConicEllipse
	case disc > tol2:
		return ConicHyperbola
	default:
		return ConicParabola
	}
}

// Type returns the conic classification, computed once at construction.
func (cs *ConicSection) Type() ConicType {
	return cs.kind
}

// Coefficients returns the six cached coefficients (A, B, C, D, E, F) of
// the general quadratic form.
func (cs *ConicSection) Coefficients() (a, b, c, d, e, f float64) {
	return cs.a, cs.b, cs.c, cs.d, cs.e, cs.f
}

// Expression returns the normalized source form of the conic.
func (cs *ConicSection) Expression() string {
	return cs.ev.String()
}

func (cs *ConicSection) Evaluate(pt Point) float64 {
	return cs.ev.Eval(pt.X, pt.Y)
}

func (cs *ConicSection) Gradient(pt Point) Vec2 {
	return cs.ev.GradientAt(pt.X, pt.Y)
}

func (cs *ConicSection) Normal(pt Point) (Vec2, error) {
	return unitNormal(cs, pt)
}

// BoundingBox computes the exact extent of bounded conics (circles and
// ellipses). Parabolas, hyperbolas, and degenerate conics are unbounded
// and report no box.
//
// The x extent solves for where the relation, read as a quadratic in y,
// loses its real solutions, and symmetrically for y.
func (cs *ConicSection) BoundingBox() (Rect, bool) {
	if cs.kind != ConicCircle && cs.kind != ConicEllipse {
		return Rect{}, false
	}
	disc := cs.b*cs.b - 4*cs.a*cs.c
	xs, nx := SolveQuadratic(cs.e*cs.e-4*cs.c*cs.f, 2*cs.b*cs.e-4*cs.c*cs.d, disc)
	ys, ny := SolveQuadratic(cs.d*cs.d-4*cs.a*cs.f, 2*cs.b*cs.d-4*cs.a*cs.e, disc)
	if nx != 2 || ny != 2 {
		return Rect{}, false
	}
	return Rect{X0: xs[0], Y0: ys[0], X1: xs[1], Y1: ys[1]}, true
}

func (cs *ConicSection) Variables() (string, string) {
	return cs.ev.Variables()
}
