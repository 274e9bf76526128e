package implicit

import (
	"fmt"
	"math"
	"slices"
)

// AreaRegion is a closed outer boundary plus zero or more hole boundaries.
// A point is inside the region iff it is inside the outer boundary and
// outside every hole.
type AreaRegion struct {
	outer Curve
	holes []Curve
}

// NewAreaRegion builds a region from a closed outer boundary and optional
// holes. Composite boundaries must be closed chains; implicit boundaries
// must be bounded (their sign defines containment). All boundaries must
// share a free-variable pair.
func NewAreaRegion(outer Curve, holes ...Curve) (*AreaRegion, error) {
	if outer == nil {
		return nil, fmt.Errorf("region requires an outer boundary: %w", ErrInvalidParameter)
	}
	if err := checkClosedBoundary(outer); err != nil {
		return nil, fmt.Errorf("outer boundary: %w", err)
	}
	for i, h := range holes {
		if err := checkClosedBoundary(h); err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
		if err := checkCompatible(outer, h); err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
	}
	return &AreaRegion{
		outer: outer,
		holes: slices.Clone(holes),
	}, nil
}

func checkClosedBoundary(c Curve) error {
	if c == nil {
		return fmt.Errorf("nil boundary: %w", ErrInvalidParameter)
	}
	if cc, ok := c.(*CompositeCurve); ok {
		if !cc.IsClosed() {
			return fmt.Errorf("composite boundary is not closed: %w", ErrInvalidParameter)
		}
		return nil
	}
	if _, ok := c.BoundingBox(); !ok {
		return fmt.Errorf("boundary is unbounded: %w", ErrInvalidParameter)
	}
	return nil
}

// Outer returns the outer boundary.
func (r *AreaRegion) Outer() Curve {
	return r.outer
}

// Holes returns a copy of the hole boundary list.
func (r *AreaRegion) Holes() []Curve {
	return slices.Clone(r.holes)
}

// Contains reports whether pt is inside the region: inside the outer
// boundary and outside every hole.
func (r *AreaRegion) Contains(pt Point) bool {
	if !insideBoundary(r.outer, pt) {
		return false
	}
	for _, h := range r.holes {
		if insideBoundary(h, pt) {
			return false
		}
	}
	return true
}

// insideBoundary decides containment for a single closed boundary:
// crossing parity for composite chains, the sign of the relation for
// implicit curves.
func insideBoundary(c Curve, pt Point) bool {
	if cc, ok := c.(*CompositeCurve); ok {
		return compositeContains(cc, pt)
	}
	return c.Evaluate(pt) < 0
}

// compositeContains casts a horizontal ray from pt and counts boundary
// crossings per segment, restricted to each segment's trim domain.
func compositeContains(cc *CompositeCurve, pt Point) bool {
	box := compositeExtent(cc)
	if !box.Inflate(DefaultAccuracy).ContainsPoint(pt) {
		return false
	}
	var roots []float64
	for _, seg := range cc.Segments() {
		roots = rayRoots(seg, pt, box.X1+1, roots)
	}
	// Adjacent segments share their junction points. A ray through a
	// junction finds the same root once per incident segment, which must
	// count as a single crossing.
	slices.Sort(roots)
	crossings := 0
	for i, r := range roots {
		if i == 0 || r-roots[i-1] > DefaultAccuracy {
			crossings++
		}
	}
	return crossings%2 == 1
}

// compositeExtent returns the composite's bounding box, or an estimate
// from the segment endpoints when segment extents are unknown (e.g. wedge
// trim domains).
func compositeExtent(cc *CompositeCurve) Rect {
	if box, ok := cc.BoundingBox(); ok {
		return box
	}
	segs := cc.Segments()
	box := NewRectFromPoints(segs[0].(endpointer).Start(), segs[0].(endpointer).End())
	for _, seg := range segs[1:] {
		ep := seg.(endpointer)
		box = box.Union(NewRectFromPoints(ep.Start(), ep.End()))
	}
	// Endpoints underestimate arc extents; pad by half the diagonal.
	return box.Inflate(0.5 * math.Hypot(box.Width(), box.Height()))
}

// rayRoots appends the zero crossings of the segment's relation along the
// horizontal ray from pt to x1, keeping only roots inside the segment's
// trim domain.
func rayRoots(seg Curve, pt Point, x1 float64, roots []float64) []float64 {
	f := func(x float64) float64 { return seg.Evaluate(Pt(x, pt.Y)) }
	const steps = 256
	prevX := pt.X
	prevF := f(prevX)
	for i := 1; i <= steps; i++ {
		x := pt.X + (x1-pt.X)*float64(i)/steps
		fx := f(x)
		if (prevF < 0) != (fx < 0) {
			root := solveBracket(f, prevX, x, 1e-9)
			in := true
			if t, ok := seg.(*TrimmedImplicitCurve); ok {
				in = t.InDomain(Pt(root, pt.Y))
			}
			if in {
				roots = append(roots, root)
			}
		}
		prevX, prevF = x, fx
	}
	return roots
}

// areaGridSize is the per-axis sample density for quadrature.
const areaGridSize = 256

// Area estimates the region's area by midpoint quadrature over the outer
// boundary's extent.
func (r *AreaRegion) Area() float64 {
	var box Rect
	if cc, ok := r.outer.(*CompositeCurve); ok {
		box = compositeExtent(cc)
	} else {
		box, _ = r.outer.BoundingBox()
	}
	if box.IsEmpty() {
		return 0
	}
	dx := box.Width() / areaGridSize
	dy := box.Height() / areaGridSize
	inside := 0
	for i := 0; i < areaGridSize; i++ {
		for j := 0; j < areaGridSize; j++ {
			pt := Pt(box.X0+(float64(i)+0.5)*dx, box.Y0+(float64(j)+0.5)*dy)
			if r.Contains(pt) {
				inside++
			}
		}
	}
	return float64(inside) * dx * dy
}

// Union returns the region containing a point iff at least one of r and o
// contains it.
func (r *AreaRegion) Union(o *AreaRegion) (*AreaRegion, error) {
	return r.combine(OpUnion, o)
}

// Intersect returns the region containing a point iff both r and o
// contain it.
func (r *AreaRegion) Intersect(o *AreaRegion) (*AreaRegion, error) {
	return r.combine(OpIntersection, o)
}

// Difference returns the region containing a point iff r contains it and
// o does not.
func (r *AreaRegion) Difference(o *AreaRegion) (*AreaRegion, error) {
	return r.combine(OpDifference, o)
}

func (r *AreaRegion) combine(op BoolOp, o *AreaRegion) (*AreaRegion, error) {
	if o == nil {
		return nil, fmt.Errorf("%s requires two regions: %w", op, ErrInvalidParameter)
	}
	outer, err := newBooleanCurve(op, r.fieldCurve(), o.fieldCurve())
	if err != nil {
		return nil, err
	}
	// The combined boundary already encodes the holes of both operands,
	// so the result has none of its own.
	return &AreaRegion{outer: outer}, nil
}

// fieldCurve folds the region into a single implicit relation that is
// negative exactly inside the region, holes included.
func (r *AreaRegion) fieldCurve() Curve {
	field := boundaryFieldCurve(r.outer)
	for _, h := range r.holes {
		field = &BooleanCurve{op: OpDifference, a: field, b: boundaryFieldCurve(h)}
	}
	return field
}

// boundaryFieldCurve adapts a boundary for R-function combination. An
// implicit boundary already is a signed relation; a composite chain is
// wrapped as a [CompositeFieldCurve].
func boundaryFieldCurve(c Curve) Curve {
	cc, ok := c.(*CompositeCurve)
	if !ok {
		return c
	}
	// Region boundaries are validated closed at construction.
	return &CompositeFieldCurve{chain: cc}
}

// CompositeFieldCurve turns a closed composite chain into a signed
// relation: negative inside the chain, positive outside, with the chain's
// pseudo-distance as magnitude. Region boolean operations produce these
// whenever an operand boundary is a composite, so that the combined
// boundary keeps the chain's extent, variables, and structured form.
type CompositeFieldCurve struct {
	chain *CompositeCurve
}

var _ Curve = (*CompositeFieldCurve)(nil)

// NewCompositeField wraps a closed composite chain as a signed relation.
// Open chains do not partition the plane and fail with
// [ErrInvalidParameter].
func NewCompositeField(cc *CompositeCurve) (*CompositeFieldCurve, error) {
	if cc == nil || !cc.IsClosed() {
		return nil, fmt.Errorf("composite field requires a closed chain: %w", ErrInvalidParameter)
	}
	return &CompositeFieldCurve{chain: cc}, nil
}

// Chain returns the underlying composite boundary.
func (c *CompositeFieldCurve) Chain() *CompositeCurve {
	return c.chain
}

func (c *CompositeFieldCurve) Evaluate(pt Point) float64 {
	d := math.Abs(c.chain.Evaluate(pt))
	if compositeContains(c.chain, pt) {
		return -d
	}
	return d
}

// Gradient orients the chain's gradient to agree with the field's
// inside-negative sign.
func (c *CompositeFieldCurve) Gradient(pt Point) Vec2 {
	g := c.chain.Gradient(pt)
	if (c.Evaluate(pt) < 0) != (c.chain.Evaluate(pt) < 0) {
		return g.Negate()
	}
	return g
}

func (c *CompositeFieldCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

func (c *CompositeFieldCurve) BoundingBox() (Rect, bool) {
	return compositeExtent(c.chain), true
}

func (c *CompositeFieldCurve) Variables() (string, string) {
	return c.chain.Variables()
}
