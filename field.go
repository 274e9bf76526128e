package implicit

import "math"

// Field is a scalar field over the plane, produced from a region by a
// [FieldStrategy].
type Field func(pt Point) float64

// FieldStrategy turns a region into a scalar field. Strategies are
// supplied by field-generation collaborators; the kernel ships
// [SignedDistanceStrategy] and [OccupancyStrategy] as conveniences.
type FieldStrategy interface {
	Field(r *AreaRegion) Field
}

// SignedDistanceStrategy produces an approximate signed-distance field:
// at each point, the distance to the nearest boundary (outer or hole),
// negative inside the region and positive outside.
type SignedDistanceStrategy struct{}

var _ FieldStrategy = SignedDistanceStrategy{}

func (SignedDistanceStrategy) Field(r *AreaRegion) Field {
	boundaries := append([]Curve{r.outer}, r.holes...)
	return func(pt Point) float64 {
		d := math.Inf(1)
		for _, b := range boundaries {
			d = min(d, math.Abs(signedPseudoDistance(b, pt)))
		}
		if r.Contains(pt) {
			return -d
		}
		return d
	}
}

// OccupancyStrategy produces a two-valued indicator field. The zero value
// maps inside to −1 and outside to +1.
type OccupancyStrategy struct {
	Inside  float64
	Outside float64
}

var _ FieldStrategy = OccupancyStrategy{}

func (s OccupancyStrategy) Field(r *AreaRegion) Field {
	inside, outside := s.Inside, s.Outside
	if inside == 0 && outside == 0 {
		inside, outside = -1, 1
	}
	return func(pt Point) float64 {
		if r.Contains(pt) {
			return inside
		}
		return outside
	}
}

// ToField produces a scalar field from the region using the given
// strategy.
func (r *AreaRegion) ToField(s FieldStrategy) Field {
	return s.Field(r)
}
