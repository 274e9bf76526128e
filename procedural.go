package implicit

import "fmt"

// Func2 is an opaque two-argument numeric function defining a procedural
// curve as its zero set.
type Func2 func(x, y float64) float64

// BatchFunc2 is an optional vectorized form of [Func2] over coordinate
// slices.
type BatchFunc2 func(xs, ys, dst []float64)

// ProceduralCurve wraps an arbitrary numeric function with no symbolic
// form. The gradient is always a central finite difference.
//
// Serialization cannot capture the callback: the structured form records
// only the curve's name and difference step, and reconstruction produces
// an [UnreconstructableCurve] placeholder. This is a documented, permanent
// limitation.
type ProceduralCurve struct {
	name  string
	fn    Func2
	batch BatchFunc2
	step  float64
}

var _ Curve = (*ProceduralCurve)(nil)

// NewProceduralCurve wraps fn as an implicit curve. The name identifies
// the curve in structured forms and diagnostics. A nil fn fails with
// [ErrInvalidParameter].
func NewProceduralCurve(name string, fn Func2) (*ProceduralCurve, error) {
	if fn == nil {
		return nil, fmt.Errorf("procedural curve %q has nil function: %w", name, ErrInvalidParameter)
	}
	return &ProceduralCurve{
		name: name,
		fn:   fn,
		step: DefaultDiffStep,
	}, nil
}

// WithDiffStep returns a copy using step h for gradient estimation.
func (p *ProceduralCurve) WithDiffStep(h float64) *ProceduralCurve {
	c := *p
	if h > 0 {
		c.step = h
	}
	return &c
}

// WithBatch returns a copy that uses fn for vectorized evaluation.
func (p *ProceduralCurve) WithBatch(fn BatchFunc2) *ProceduralCurve {
	c := *p
	c.batch = fn
	return &c
}

// Name returns the identifying name given at construction.
func (p *ProceduralCurve) Name() string {
	return p.name
}

// DiffStep returns the finite-difference step.
func (p *ProceduralCurve) DiffStep() float64 {
	return p.step
}

func (p *ProceduralCurve) Evaluate(pt Point) float64 {
	return p.fn(pt.X, pt.Y)
}

// EvalBatch evaluates the curve over coordinate slices, using the
// underlying function's batched form when one was supplied.
func (p *ProceduralCurve) EvalBatch(xs, ys, dst []float64) {
	if len(xs) != len(ys) || len(xs) != len(dst) {
		panic("EvalBatch: slice lengths differ")
	}
	if p.batch != nil {
		p.batch(xs, ys, dst)
		return
	}
	for i := range xs {
		dst[i] = p.fn(xs[i], ys[i])
	}
}

func (p *ProceduralCurve) Gradient(pt Point) Vec2 {
	return centralGradient(p.fn, pt, p.step)
}

func (p *ProceduralCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(p, pt)
}

func (p *ProceduralCurve) BoundingBox() (Rect, bool) {
	return Rect{}, false
}

func (p *ProceduralCurve) Variables() (string, string) {
	return "x", "y"
}

// UnreconstructableCurve is the placeholder produced when a procedural
// curve is rebuilt from structured data. The original callback is gone, so
// every numeric query panics with an error wrapping
// [ErrUnreconstructable]; use [UnreconstructableCurve.Err] to detect the
// condition before use.
type UnreconstructableCurve struct {
	name string
}

var _ Curve = (*UnreconstructableCurve)(nil)

// Name returns the name recorded in the structured form.
func (u *UnreconstructableCurve) Name() string {
	return u.name
}

// Err returns the error describing why this curve cannot be evaluated.
func (u *UnreconstructableCurve) Err() error {
	return fmt.Errorf("procedural curve %q was rebuilt from structured data: %w",
		u.name, ErrUnreconstructable)
}

func (u *UnreconstructableCurve) Evaluate(Point) float64 {
	panic(u.Err())
}

func (u *UnreconstructableCurve) Gradient(Point) Vec2 {
	panic(u.Err())
}

func (u *UnreconstructableCurve) Normal(Point) (Vec2, error) {
	return Vec2{}, u.Err()
}

func (u *UnreconstructableCurve) BoundingBox() (Rect, bool) {
	return Rect{}, false
}

func (u *UnreconstructableCurve) Variables() (string, string) {
	return "x", "y"
}
