// Package implicit provides primitives and routines for planar shapes
// described implicitly, as the zero set of a scalar field f(x, y). It is
// intended for geometric modeling applications that want set operations and
// smooth blends to come cheap, which they do in the implicit representation.
//
// # Curves
//
// [Curve] describes implicit curves: anything that can evaluate its defining
// field at a point, report the field's gradient, and name its coordinate
// variables. The sign of the field partitions the plane: negative inside,
// positive outside, zero on the curve itself.
//
// This package includes the following curves:
//   - [PolynomialCurve]
//   - [ConicSection]
//   - [Superellipse]
//   - [ProceduralCurve]
//   - [TrimmedImplicitCurve]
//   - [CompositeCurve]
//
// Polynomial and conic curves are built from textual expressions via
// [NewEvaluator], which parses, differentiates, and compiles expressions in
// two variables. Conics additionally expose their quadratic coefficients and
// classify themselves as circle, ellipse, parabola, or hyperbola.
//
// [TrimmedImplicitCurve] restricts a curve to a [TrimDomain], turning an
// unbounded zero set into a finite arc with start and end points. Chains of
// trimmed curves whose endpoints meet form a [CompositeCurve], and a closed
// composite can bound an [AreaRegion], which supports containment tests,
// area computation, holes, and conversion to scalar fields via [ToField].
//
// # Algebra
//
// Curves combine without losing their implicit form: [Intersect] finds the
// common zeros of two curves numerically, [Blend] interpolates two fields,
// [Offset] displaces a curve along its normals, and [Union], [Intersection],
// and [Difference] are the min/max set operations on fields.
//
// # Serialization
//
// [ToStructured] and [FromStructured] convert curves to and from nested
// key-value documents with type tags, which [EncodeJSON], [DecodeJSON],
// [EncodeYAML], and [DecodeYAML] carry over the wire. Every curve except
// [ProceduralCurve] round-trips exactly; procedural curves decode to an
// [UnreconstructableCurve] placeholder.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [R-functions] by V. L. Rvachev, for the boolean field operations
//   - [Implicit surfaces] course notes by Jules Bloomenthal
//
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [R-functions]: https://en.wikipedia.org/wiki/Rvachev_function
// [Implicit surfaces]: https://www.unchainedgeometry.com/jbloom/papers.html
package implicit
