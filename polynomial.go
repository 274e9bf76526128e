package implicit

import "fmt"

// PolynomialCurve is the zero set of a polynomial in two variables of
// arbitrary total degree.
type PolynomialCurve struct {
	ev     *Evaluator
	coeffs map[[2]int]float64
	degree int
}

var _ Curve = (*PolynomialCurve)(nil)

// NewPolynomialCurve parses src as a polynomial relation in the variables
// x and y.
func NewPolynomialCurve(src string) (*PolynomialCurve, error) {
	return NewPolynomialCurveXY(src, "x", "y")
}

// NewPolynomialCurveXY parses src as a polynomial relation in the two
// named free variables. It fails with [ErrInvalidExpression] if src is not
// a polynomial, e.g. if it divides by a variable or calls a transcendental
// function.
func NewPolynomialCurveXY(src, xvar, yvar string) (*PolynomialCurve, error) {
	ev, err := NewEvaluator(src, xvar, yvar)
	if err != nil {
		return nil, err
	}
	return newPolynomialCurve(ev)
}

func newPolynomialCurve(ev *Evaluator) (*PolynomialCurve, error) {
	coeffs, ok := ev.polynomial()
	if !ok {
		return nil, fmt.Errorf("%q is not a polynomial: %w", ev.String(), ErrInvalidExpression)
	}
	return &PolynomialCurve{
		ev:     ev,
		coeffs: coeffs,
		degree: totalDegree(coeffs),
	}, nil
}

// Degree returns the polynomial's total degree: the maximum over all
// monomials of the sum of variable exponents. It is computed once, at
// construction.
func (c *PolynomialCurve) Degree() int {
	return c.degree
}

// Expression returns the normalized source form of the polynomial.
func (c *PolynomialCurve) Expression() string {
	return c.ev.String()
}

func (c *PolynomialCurve) Evaluate(pt Point) float64 {
	return c.ev.Eval(pt.X, pt.Y)
}

func (c *PolynomialCurve) Gradient(pt Point) Vec2 {
	return c.ev.GradientAt(pt.X, pt.Y)
}

func (c *PolynomialCurve) Normal(pt Point) (Vec2, error) {
	return unitNormal(c, pt)
}

// BoundingBox reports no box: a general polynomial zero set is unbounded
// or expensive to bound, so the extent is left undetermined. The conic
// specialization does better for bounded conics.
func (c *PolynomialCurve) BoundingBox() (Rect, bool) {
	return Rect{}, false
}

func (c *PolynomialCurve) Variables() (string, string) {
	return c.ev.Variables()
}
