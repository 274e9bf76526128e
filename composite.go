package implicit

import (
	"fmt"
	"math"
	"slices"
)

// CompositeCurve is an ordered sequence of curve segments joined
// endpoint-to-endpoint within [DefaultAccuracy]. Segments are typically
// [TrimmedImplicitCurve] values, but any variant with endpoints
// (including a nested composite) can be chained.
type CompositeCurve struct {
	segments []Curve
	closed   bool
}

var _ Curve = (*CompositeCurve)(nil)
var _ endpointer = (*CompositeCurve)(nil)

// NewCompositeCurve chains the given segments. Every segment must expose
// endpoints, segment i's end must coincide with segment i+1's start within
// tolerance ([ErrDisjointSegments] otherwise), and all segments must share
// a free-variable pair.
func NewCompositeCurve(segments ...Curve) (*CompositeCurve, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("composite requires at least one segment: %w", ErrInvalidParameter)
	}
	ends := make([]endpointer, len(segments))
	for i, seg := range segments {
		ep, ok := seg.(endpointer)
		if !ok {
			return nil, fmt.Errorf("segment %d (%T) has no endpoints: %w", i, seg, ErrInvalidParameter)
		}
		ends[i] = ep
		if i > 0 {
			if err := checkCompatible(segments[0], seg); err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			if d := ends[i-1].End().Distance(ep.Start()); d > DefaultAccuracy {
				return nil, fmt.Errorf("segment %d starts %g away from segment %d's end: %w",
					i, d, i-1, ErrDisjointSegments)
			}
		}
	}
	return &CompositeCurve{
		segments: slices.Clone(segments),
		closed:   ends[0].Start().Distance(ends[len(ends)-1].End()) <= DefaultAccuracy,
	}, nil
}

// IsClosed reports whether the first segment's start coincides with the
// last segment's end.
func (c *CompositeCurve) IsClosed() bool {
	return c.closed
}

// Segments returns a copy of the ordered segment list.
func (c *CompositeCurve) Segments() []Curve {
	return slices.Clone(c.segments)
}

// Start returns the first segment's start point.
func (c *CompositeCurve) Start() Point {
	return c.segments[0].(endpointer).Start()
}

// End returns the last segment's end point.
func (c *CompositeCurve) End() Point {
	return c.segments[len(c.segments)-1].(endpointer).End()
}

// nearestSegment returns the segment whose function magnitude is smallest
// at pt, preferring segments whose trim domain contains the point.
func (c *CompositeCurve) nearestSegment(pt Point) Curve {
	best := c.segments[0]
	bestVal := math.Inf(1)
	bestIn := false
	for _, seg := range c.segments {
		in := true
		if t, ok := seg.(*TrimmedImplicitCurve); ok {
			in = t.InDomain(pt)
		}
		v := math.Abs(seg.Evaluate(pt))
		if (in && !bestIn) || (in == bestIn && v < bestVal) {
			best, bestVal, bestIn = seg, v, in
		}
	}
	return best
}

// Evaluate returns the value of the segment nearest to pt, a
// pseudo-distance to the composite boundary. Its sign is that of the
// nearest segment's base relation; containment queries on composite
// boundaries use crossing parity instead of this sign.
func (c *CompositeCurve) Evaluate(pt Point) float64 {
	return c.nearestSegment(pt).Evaluate(pt)
}

func (c *CompositeCurve) Gradient(pt Point) Vec2 {
	return c.nearestSegment(pt).Gradient(pt)
}

func (c *CompositeCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

// BoundingBox unions the segment boxes; the extent is unknown if any
// segment's is.
func (c *CompositeCurve) BoundingBox() (Rect, bool) {
	var box Rect
	for i, seg := range c.segments {
		b, ok := seg.BoundingBox()
		if !ok {
			return Rect{}, false
		}
		if i == 0 {
			box = b
		} else {
			box = box.Union(b)
		}
	}
	return box, true
}

func (c *CompositeCurve) Variables() (string, string) {
	return c.segments[0].Variables()
}
