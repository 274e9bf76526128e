package implicit

// Rect is an axis-aligned rectangle, used for bounding boxes and
// rectangular trim domains.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1,
// ensuring that width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromCenter returns a rectangle of the given half-extents centered
// around the center point.
func NewRectFromCenter(center Point, hw, hh float64) Rect {
	return Rect{
		X0: center.X - hw,
		Y0: center.Y - hh,
		X1: center.X + hw,
		Y1: center.Y + hh,
	}
}

// Abs returns a new rectangle with the same extents as r, but ensuring that
// width and height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

// Width returns the rectangle's width, defined as X1 − X0.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Area returns the rectangle's area. It may be negative if the rectangle
// isn't normalized via [Rect.Abs].
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Union returns the smallest rectangle enclosing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// Intersect returns the largest rectangle enclosed by both r and o. The
// result has zero width or height if the rectangles don't overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X0, o.X0)
	y0 := max(r.Y0, o.Y0)
	x1 := min(r.X1, o.X1)
	y1 := min(r.Y1, o.Y1)
	return Rect{x0, y0, max(x0, x1), max(y0, y1)}
}

// Inflate returns a rectangle grown by d on every side. A negative d
// shrinks the rectangle instead.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		X0: r.X0 - d,
		Y0: r.Y0 - d,
		X1: r.X1 + d,
		Y1: r.Y1 + d,
	}
}

// ContainsPoint reports whether the rectangle contains pt. Points on the
// boundary count as contained.
func (r Rect) ContainsPoint(pt Point) bool {
	return pt.X >= r.X0 && pt.X <= r.X1 &&
		pt.Y >= r.Y0 && pt.Y <= r.Y1
}

// IsEmpty reports whether the normalized rectangle has zero area.
func (r Rect) IsEmpty() bool {
	a := r.Abs()
	return a.Width() == 0 || a.Height() == 0
}
