package implicit

import (
	"fmt"
	"math"
)

// TrimDomain restricts a curve to the part of its zero set inside the
// domain. Domains form a closed set of serializable variants: [RectDomain]
// and [WedgeDomain].
type TrimDomain interface {
	// ContainsPoint reports whether pt lies in the trim domain.
	ContainsPoint(pt Point) bool

	// BoundingBox returns the domain's extent; the second return value is
	// false for unbounded domains.
	BoundingBox() (Rect, bool)
}

// RectDomain trims to an axis-aligned rectangle.
type RectDomain struct {
	Rect Rect
}

func (d RectDomain) ContainsPoint(pt Point) bool {
	return d.Rect.ContainsPoint(pt)
}

func (d RectDomain) BoundingBox() (Rect, bool) {
	return d.Rect.Abs(), true
}

// WedgeDomain trims to an angular interval around a center point, the
// natural domain for arc segments of circles and ellipses.
type WedgeDomain struct {
	Center     Point
	StartAngle float64
	SweepAngle float64
}

func (d WedgeDomain) ContainsPoint(pt Point) bool {
	start, sweep := d.StartAngle, d.SweepAngle
	if sweep < 0 {
		start, sweep = start+sweep, -sweep
	}
	if sweep >= 2*math.Pi {
		return true
	}
	a := math.Mod(pt.Sub(d.Center).Angle()-start, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a <= sweep+1e-12
}

func (d WedgeDomain) BoundingBox() (Rect, bool) {
	return Rect{}, false
}

// trimResidual is the tolerance for "endpoint lies on the base curve",
// measured on the function value normalized by the gradient magnitude.
const trimResidual = 1e-6

// TrimmedImplicitCurve restricts a base curve to a segment between two
// declared endpoints. All differential queries delegate to the base
// curve's math; only containment and extent respect the trim.
type TrimmedImplicitCurve struct {
	base       Curve
	domain     TrimDomain
	start, end Point
}

var _ Curve = (*TrimmedImplicitCurve)(nil)
var _ endpointer = (*TrimmedImplicitCurve)(nil)

// NewTrimmedCurve trims base to the given domain, declaring start and end
// as the segment's endpoints. Both endpoints must lie on the base curve
// within tolerance and inside the domain, else construction fails with
// [ErrInvalidTrim].
func NewTrimmedCurve(base Curve, domain TrimDomain, start, end Point) (*TrimmedImplicitCurve, error) {
	if base == nil || domain == nil {
		return nil, fmt.Errorf("trim requires a base curve and a domain: %w", ErrInvalidParameter)
	}
	for _, pt := range [...]Point{start, end} {
		if r := onCurveResidual(base, pt); r > trimResidual {
			return nil, fmt.Errorf("endpoint %v is off the base curve (residual %g): %w",
				pt, r, ErrInvalidTrim)
		}
		if !domain.ContainsPoint(pt) {
			return nil, fmt.Errorf("endpoint %v is outside the trim domain: %w", pt, ErrInvalidTrim)
		}
	}
	return &TrimmedImplicitCurve{
		base:   base,
		domain: domain,
		start:  start,
		end:    end,
	}, nil
}

// onCurveResidual measures how far pt is from the zero set of c, as the
// function value normalized by the gradient magnitude (a first-order
// distance estimate).
func onCurveResidual(c Curve, pt Point) float64 {
	f := math.Abs(c.Evaluate(pt))
	g := c.Gradient(pt).Hypot()
	if g > 1 {
		return f / g
	}
	return f
}

// Base returns the underlying untrimmed curve.
func (t *TrimmedImplicitCurve) Base() Curve {
	return t.base
}

// Domain returns the trim domain.
func (t *TrimmedImplicitCurve) Domain() TrimDomain {
	return t.domain
}

// Start returns the segment's declared start point.
func (t *TrimmedImplicitCurve) Start() Point {
	return t.start
}

// End returns the segment's declared end point.
func (t *TrimmedImplicitCurve) End() Point {
	return t.end
}

// InDomain reports whether pt lies inside the trim domain.
func (t *TrimmedImplicitCurve) InDomain(pt Point) bool {
	return t.domain.ContainsPoint(pt)
}

func (t *TrimmedImplicitCurve) Evaluate(pt Point) float64 {
	return t.base.Evaluate(pt)
}

func (t *TrimmedImplicitCurve) Gradient(pt Point) Vec2 {
	return t.base.Gradient(pt)
}

func (t *TrimmedImplicitCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(t, pt)
}

// BoundingBox intersects the base curve's extent with the domain's, using
// whichever are known.
func (t *TrimmedImplicitCurve) BoundingBox() (Rect, bool) {
	db, dok := t.domain.BoundingBox()
	bb, bok := t.base.BoundingBox()
	switch {
	case dok && bok:
		return db.Intersect(bb), true
	case dok:
		return db, true
	case bok:
		return bb, true
	default:
		return Rect{}, false
	}
}

func (t *TrimmedImplicitCurve) Variables() (string, string) {
	return t.base.Variables()
}
