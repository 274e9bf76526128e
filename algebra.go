package implicit

import (
	"fmt"
	"math"
	"slices"
)

// IntersectOptions tunes the intersection search. The zero value (or a nil
// pointer) selects defaults.
type IntersectOptions struct {
	// Window is the search window. If zero, the window derives from the
	// operands' bounding boxes, falling back to [-16, 16]² for unbounded
	// operands.
	Window Rect

	// Grid is the seed density per axis. Default 48.
	Grid int

	// Accuracy is the residual tolerance for accepting a root. Default
	// [DefaultAccuracy].
	Accuracy float64

	// MaxIterations bounds the Newton iterations per seed, so that
	// numerically unstable inputs fail deterministically instead of
	// spinning. Default 24.
	MaxIterations int
}

func (opts *IntersectOptions) withDefaults(a, b Curve) IntersectOptions {
	var o IntersectOptions
	if opts != nil {
		o = *opts
	}
	if o.Grid <= 0 {
		o.Grid = 48
	}
	if o.Accuracy <= 0 {
		o.Accuracy = DefaultAccuracy
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = 24
	}
	if o.Window.IsEmpty() {
		ba, oka := a.BoundingBox()
		bb, okb := b.BoundingBox()
		switch {
		case oka && okb:
			o.Window = ba.Intersect(bb).Inflate(o.Accuracy)
		case oka:
			o.Window = ba
		case okb:
			o.Window = bb
		default:
			o.Window = Rect{-16, -16, 16, 16}
		}
	}
	return o
}

// Intersect finds the common zero points of two curves inside the search
// window. Curves that do not meet yield an empty list, not an error.
// Tangential contacts are collapsed to a single point within tolerance.
//
// The search seeds a Newton iteration on (f_a, f_b) from a regular grid;
// all iteration counts are bounded, and cancellation beyond that is the
// caller's responsibility.
func Intersect(a, b Curve, opts *IntersectOptions) ([]Point, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("intersect requires two curves: %w", ErrInvalidParameter)
	}
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	o := opts.withDefaults(a, b)
	if o.Window.IsEmpty() {
		// Disjoint bounding boxes; the boundaries cannot meet.
		return []Point{}, nil
	}

	// Tangential contacts stop the Newton iteration while the residual is
	// still ~sqrt(accuracy) away from the true root along the curve, so
	// near-duplicates are merged on that scale.
	dedup := 4 * math.Sqrt(o.Accuracy)
	accept := o.Window.Inflate(dedup)

	var pts []Point
	var residuals []float64
	converged := 0
	for i := 0; i < o.Grid; i++ {
		for j := 0; j < o.Grid; j++ {
			seed := Pt(
				o.Window.X0+(float64(i)+0.5)/float64(o.Grid)*o.Window.Width(),
				o.Window.Y0+(float64(j)+0.5)/float64(o.Grid)*o.Window.Height(),
			)
			pt, res, ok := newton2(a, b, seed, o.Accuracy, o.MaxIterations)
			if !ok || !accept.ContainsPoint(pt) {
				continue
			}
			converged++
			merged := false
			for k, q := range pts {
				if q.Distance(pt) <= dedup {
					if res < residuals[k] {
						pts[k], residuals[k] = pt, res
					}
					merged = true
					break
				}
			}
			if !merged {
				pts = append(pts, pt)
				residuals = append(residuals, res)
			}
		}
	}
	// Sort just to be friendly and make results deterministic.
	slices.SortFunc(pts, func(p, q Point) int {
		if p.X != q.X {
			if p.X < q.X {
				return -1
			}
			return 1
		}
		switch {
		case p.Y < q.Y:
			return -1
		case p.Y > q.Y:
			return 1
		default:
			return 0
		}
	})
	logger().Debug("intersection search finished",
		"seeds", o.Grid*o.Grid, "converged", converged, "unique", len(pts))
	if pts == nil {
		pts = []Point{}
	}
	return pts, nil
}

// newton2 runs a bounded 2×2 Newton iteration on F = (f_a, f_b) from the
// seed. It reports the final point, its combined residual, and whether the
// iteration converged below accuracy.
func newton2(a, b Curve, seed Point, accuracy float64, maxIter int) (Point, float64, bool) {
	q := seed
	for iter := 0; iter < maxIter; iter++ {
		fa := a.Evaluate(q)
		fb := b.Evaluate(q)
		ga := a.Gradient(q)
		gb := b.Gradient(q)
		det := ga.X*gb.Y - ga.Y*gb.X
		if math.Abs(det) < 1e-14 {
			break
		}
		dx := (fa*gb.Y - fb*ga.Y) / det
		dy := (fb*ga.X - fa*gb.X) / det
		q = Pt(q.X-dx, q.Y-dy)
		if q.IsNaN() || q.IsInf() {
			return Point{}, math.Inf(1), false
		}
		if dx*dx+dy*dy < 1e-28 {
			break
		}
	}
	res := onCurveResidual(a, q) + onCurveResidual(b, q)
	return q, res, res <= accuracy
}

// BlendCurve smoothly interpolates between two source curves:
// f = (1−t)·f_a + t·f_b.
type BlendCurve struct {
	a, b Curve
	t    float64
}

var _ Curve = (*BlendCurve)(nil)

// Blend interpolates between two curves with weight t ∈ [0, 1]; t = 0
// yields a's relation, t = 1 yields b's. The result is a full curve with
// analytic gradients delegating to the operands.
func Blend(a, b Curve, t float64) (*BlendCurve, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("blend requires two curves: %w", ErrInvalidParameter)
	}
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || t < 0 || t > 1 {
		return nil, fmt.Errorf("blend weight %g outside [0, 1]: %w", t, ErrInvalidParameter)
	}
	return &BlendCurve{a: a, b: b, t: t}, nil
}

// Operands returns the two source curves.
func (c *BlendCurve) Operands() (a, b Curve) {
	return c.a, c.b
}

// Weight returns the interpolation weight t.
func (c *BlendCurve) Weight() float64 {
	return c.t
}

func (c *BlendCurve) Evaluate(pt Point) float64 {
	return (1-c.t)*c.a.Evaluate(pt) + c.t*c.b.Evaluate(pt)
}

func (c *BlendCurve) Gradient(pt Point) Vec2 {
	return c.a.Gradient(pt).Mul(1 - c.t).Add(c.b.Gradient(pt).Mul(c.t))
}

func (c *BlendCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

func (c *BlendCurve) BoundingBox() (Rect, bool) {
	return Rect{}, false
}

func (c *BlendCurve) Variables() (string, string) {
	return c.a.Variables()
}

// OffsetCurve is the curve parallel to a base curve at a signed distance,
// positive outward under the inside-negative convention.
//
// Its relation is the base curve's estimated signed distance minus the
// offset; the estimate projects the query point onto the base curve along
// the gradient, which is exact for circles and accurate wherever the base
// gradient is well-behaved.
type OffsetCurve struct {
	base     Curve
	distance float64
}

var _ Curve = (*OffsetCurve)(nil)

// Offset builds the parallel curve at signed distance d.
func Offset(c Curve, d float64) (*OffsetCurve, error) {
	if c == nil {
		return nil, fmt.Errorf("offset requires a curve: %w", ErrInvalidParameter)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, fmt.Errorf("offset distance %g: %w", d, ErrInvalidParameter)
	}
	return &OffsetCurve{base: c, distance: d}, nil
}

// Base returns the source curve.
func (c *OffsetCurve) Base() Curve {
	return c.base
}

// Distance returns the signed offset distance.
func (c *OffsetCurve) Distance() float64 {
	return c.distance
}

func (c *OffsetCurve) Evaluate(pt Point) float64 {
	return signedPseudoDistance(c.base, pt) - c.distance
}

func (c *OffsetCurve) Gradient(pt Point) Vec2 {
	g := c.base.Gradient(pt)
	n := g.Hypot()
	if n < gradientEpsilon {
		return centralGradient(func(x, y float64) float64 {
			return c.Evaluate(Pt(x, y))
		}, pt, DefaultDiffStep)
	}
	return g.Mul(1 / n)
}

func (c *OffsetCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

func (c *OffsetCurve) BoundingBox() (Rect, bool) {
	b, ok := c.base.BoundingBox()
	if !ok {
		return Rect{}, false
	}
	return b.Inflate(max(c.distance, 0)), true
}

func (c *OffsetCurve) Variables() (string, string) {
	return c.base.Variables()
}

// signedPseudoDistance estimates the signed distance from pt to the zero
// set of c by iterated gradient projection. The sign follows the curve's
// own convention: negative inside.
func signedPseudoDistance(c Curve, pt Point) float64 {
	q := pt
	for i := 0; i < 8; i++ {
		f := c.Evaluate(q)
		g := c.Gradient(q)
		n2 := g.Hypot2()
		if n2 < gradientEpsilon*gradientEpsilon {
			break
		}
		step := g.Mul(f / n2)
		q = q.Translate(step.Negate())
		if step.Hypot2() < 1e-24 {
			break
		}
	}
	d := pt.Distance(q)
	if c.Evaluate(pt) < 0 {
		return -d
	}
	return d
}

// BoolOp selects a boolean combination.
type BoolOp uint8

const (
	OpUnion BoolOp = iota
	OpIntersection
	OpDifference
)

func (op BoolOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	default:
		return fmt.Sprintf("BoolOp(%d)", uint8(op))
	}
}

// BooleanCurve combines two curves with the R-function identities over the
// inside-negative convention:
//
//	union         min(f_a, f_b)
//	intersection  max(f_a, f_b)
//	difference    max(f_a, −f_b)
//
// Containment of the combined curve matches the boolean combination of the
// operands' containment predicates.
type BooleanCurve struct {
	op   BoolOp
	a, b Curve
}

var _ Curve = (*BooleanCurve)(nil)

// Union combines two curves so that a point is inside iff it is inside
// either operand.
func Union(a, b Curve) (*BooleanCurve, error) {
	return newBooleanCurve(OpUnion, a, b)
}

// Intersection combines two curves so that a point is inside iff it is
// inside both operands.
func Intersection(a, b Curve) (*BooleanCurve, error) {
	return newBooleanCurve(OpIntersection, a, b)
}

// Difference combines two curves so that a point is inside iff it is
// inside a but not inside b.
func Difference(a, b Curve) (*BooleanCurve, error) {
	return newBooleanCurve(OpDifference, a, b)
}

func newBooleanCurve(op BoolOp, a, b Curve) (*BooleanCurve, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s requires two curves: %w", op, ErrInvalidParameter)
	}
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	return &BooleanCurve{op: op, a: a, b: b}, nil
}

// Op returns the boolean operation.
func (c *BooleanCurve) Op() BoolOp {
	return c.op
}

// Operands returns the two source curves.
func (c *BooleanCurve) Operands() (a, b Curve) {
	return c.a, c.b
}

func (c *BooleanCurve) Evaluate(pt Point) float64 {
	fa := c.a.Evaluate(pt)
	fb := c.b.Evaluate(pt)
	switch c.op {
	case OpUnion:
		return min(fa, fb)
	case OpIntersection:
		return max(fa, fb)
	default:
		return max(fa, -fb)
	}
}

// Gradient returns the gradient of the active operand, the one whose value
// the min/max combinator selects at pt.
func (c *BooleanCurve) Gradient(pt Point) Vec2 {
	fa := c.a.Evaluate(pt)
	fb := c.b.Evaluate(pt)
	switch c.op {
	case OpUnion:
		if fa <= fb {
			return c.a.Gradient(pt)
		}
		return c.b.Gradient(pt)
	case OpIntersection:
		if fa >= fb {
			return c.a.Gradient(pt)
		}
		return c.b.Gradient(pt)
	default:
		if fa >= -fb {
			return c.a.Gradient(pt)
		}
		return c.b.Gradient(pt).Negate()
	}
}

func (c *BooleanCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

func (c *BooleanCurve) BoundingBox() (Rect, bool) {
	ba, oka := c.a.BoundingBox()
	bb, okb := c.b.BoundingBox()
	if !oka || !okb {
		return Rect{}, false
	}
	if c.op == OpIntersection {
		return ba.Intersect(bb), true
	}
	return ba.Union(bb), true
}

func (c *BooleanCurve) Variables() (string, string) {
	return c.a.Variables()
}
