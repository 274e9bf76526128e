package implicit

import "errors"

// Failure conditions reported by the kernel. Errors returned by this package
// wrap one of these sentinels with contextual detail; use [errors.Is] to
// test for a condition.
//
// The kernel fails fast: every error is reported at the point of detection
// and nothing is retried or silently downgraded to a default value.
var (
	// ErrInvalidExpression reports a symbolic expression that cannot be
	// turned into a real-valued function of the declared variable pair,
	// including references to undeclared free variables.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrInvalidParameter reports an out-of-domain constructor argument,
	// such as a non-positive superellipse exponent.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSingularGradient reports a vanishing gradient at a query point,
	// where no unit normal exists. This occurs at self-intersections,
	// cusps, and points off every smooth branch of a curve.
	ErrSingularGradient = errors.New("singular gradient")

	// ErrNotAConic reports an expression whose total degree is not
	// compatible with the general quadratic form.
	ErrNotAConic = errors.New("not a conic")

	// ErrInvalidTrim reports a trim whose declared endpoints do not lie on
	// the base curve, or lie outside the trim domain.
	ErrInvalidTrim = errors.New("invalid trim")

	// ErrDisjointSegments reports composite construction from segments
	// whose endpoints do not chain within tolerance.
	ErrDisjointSegments = errors.New("disjoint segments")

	// ErrIncompatibleCurve reports an algebra operation across curves with
	// mismatched free-variable pairs.
	ErrIncompatibleCurve = errors.New("incompatible curves")

	// ErrUnreconstructable reports use of a procedural curve that was
	// rebuilt from structured data. The opaque callback cannot be
	// serialized, so such reconstructions are permanent placeholders.
	ErrUnreconstructable = errors.New("unreconstructable procedural curve")

	// ErrMalformedSceneData reports structured data that cannot be decoded
	// back into a curve.
	ErrMalformedSceneData = errors.New("malformed scene data")
)
