package implicit

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Structured-form type tags. Every curve variant carries exactly one.
const (
	tagPolynomial   = "polynomial"
	tagConic        = "conic"
	tagSuperellipse = "superellipse"
	tagProcedural   = "procedural"
	tagTrimmed      = "trimmed"
	tagComposite    = "composite"
	tagBlend        = "blend"
	tagOffset       = "offset"
	tagBoolean      = "boolean"
	tagField        = "composite_field"
	tagRegion       = "area_region"
)

// ToStructured encodes a curve as a nested key-value document with a
// "type" discriminator, suitable for JSON or YAML transport. Nested curves
// (trim bases, composite segments, algebra operands) encode recursively.
//
// A procedural curve's callback cannot be captured; its structured form
// records only the name and difference step, and decodes to an
// [UnreconstructableCurve].
func ToStructured(c Curve) (map[string]any, error) {
	xv, yv := c.Variables()
	switch c := c.(type) {
	case *PolynomialCurve:
		return map[string]any{
			"type":       tagPolynomial,
			"expression": c.Expression(),
			"variables":  []any{xv, yv},
			"degree":     c.Degree(),
		}, nil
	case *ConicSection:
		a, b, cc, d, e, f := c.Coefficients()
		return map[string]any{
			"type": tagConic,
			"coefficients": map[string]any{
				"a": a, "b": b, "c": cc, "d": d, "e": e, "f": f,
			},
			"variables":  []any{xv, yv},
			"conic_type": c.Type().String(),
		}, nil
	case *Superellipse:
		return map[string]any{
			"type":       tagSuperellipse,
			"a":          c.a,
			"b":          c.b,
			"n":          c.n,
			"diff_step":  c.step,
			"shape_type": c.Shape().String(),
		}, nil
	case *ProceduralCurve:
		return map[string]any{
			"type":      tagProcedural,
			"name":      c.Name(),
			"diff_step": c.DiffStep(),
		}, nil
	case *UnreconstructableCurve:
		return map[string]any{
			"type":      tagProcedural,
			"name":      c.Name(),
			"diff_step": DefaultDiffStep,
		}, nil
	case *TrimmedImplicitCurve:
		base, err := ToStructured(c.Base())
		if err != nil {
			return nil, err
		}
		domain, err := domainToStructured(c.Domain())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":   tagTrimmed,
			"base":   base,
			"domain": domain,
			"start":  pointToStructured(c.Start()),
			"end":    pointToStructured(c.End()),
		}, nil
	case *CompositeCurve:
		segs := c.Segments()
		docs := make([]any, len(segs))
		for i, seg := range segs {
			doc, err := ToStructured(seg)
			if err != nil {
				return nil, err
			}
			docs[i] = doc
		}
		return map[string]any{
			"type":     tagComposite,
			"closed":   c.IsClosed(),
			"segments": docs,
		}, nil
	case *BlendCurve:
		a, b := c.Operands()
		da, err := ToStructured(a)
		if err != nil {
			return nil, err
		}
		db, err := ToStructured(b)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":   tagBlend,
			"weight": c.Weight(),
			"a":      da,
			"b":      db,
		}, nil
	case *OffsetCurve:
		base, err := ToStructured(c.Base())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":     tagOffset,
			"distance": c.Distance(),
			"base":     base,
		}, nil
	case *BooleanCurve:
		a, b := c.Operands()
		da, err := ToStructured(a)
		if err != nil {
			return nil, err
		}
		db, err := ToStructured(b)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type": tagBoolean,
			"op":   c.Op().String(),
			"a":    da,
			"b":    db,
		}, nil
	case *CompositeFieldCurve:
		chain, err := ToStructured(c.Chain())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":  tagField,
			"chain": chain,
		}, nil
	default:
		return nil, fmt.Errorf("cannot encode curve type %T: %w", c, ErrMalformedSceneData)
	}
}

// FromStructured decodes a structured document back into a curve,
// dispatching on the "type" discriminator. Nested documents decode
// recursively, so trimmed bases and composite segment types are preserved.
// Missing or mistyped fields fail with [ErrMalformedSceneData].
func FromStructured(doc map[string]any) (Curve, error) {
	tag, err := docString(doc, "type")
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagPolynomial:
		expr, err := docString(doc, "expression")
		if err != nil {
			return nil, err
		}
		xv, yv, err := docVariables(doc)
		if err != nil {
			return nil, err
		}
		c, err := NewPolynomialCurveXY(expr, xv, yv)
		if err != nil {
			return nil, fmt.Errorf("polynomial: %w", err)
		}
		return c, nil
	case tagConic:
		coeffs, err := docMap(doc, "coefficients")
		if err != nil {
			return nil, err
		}
		var v [6]float64
		for i, key := range [...]string{"a", "b", "c", "d", "e", "f"} {
			v[i], err = docFloat(coeffs, key)
			if err != nil {
				return nil, err
			}
		}
		xv, yv, err := docVariables(doc)
		if err != nil {
			return nil, err
		}
		c, err := NewConicFromCoefficientsXY(v[0], v[1], v[2], v[3], v[4], v[5], xv, yv)
		if err != nil {
			return nil, fmt.Errorf("conic: %w", err)
		}
		return c, nil
	case tagSuperellipse:
		a, err := docFloat(doc, "a")
		if err != nil {
			return nil, err
		}
		b, err := docFloat(doc, "b")
		if err != nil {
			return nil, err
		}
		n, err := docFloat(doc, "n")
		if err != nil {
			return nil, err
		}
		step, err := docFloat(doc, "diff_step")
		if err != nil {
			return nil, err
		}
		c, err := NewSuperellipse(a, b, n)
		if err != nil {
			return nil, fmt.Errorf("superellipse: %w", err)
		}
		return c.WithDiffStep(step), nil
	case tagProcedural:
		name, err := docString(doc, "name")
		if err != nil {
			return nil, err
		}
		return &UnreconstructableCurve{name: name}, nil
	case tagTrimmed:
		baseDoc, err := docMap(doc, "base")
		if err != nil {
			return nil, err
		}
		base, err := FromStructured(baseDoc)
		if err != nil {
			return nil, err
		}
		domainDoc, err := docMap(doc, "domain")
		if err != nil {
			return nil, err
		}
		domain, err := domainFromStructured(domainDoc)
		if err != nil {
			return nil, err
		}
		start, err := docPoint(doc, "start")
		if err != nil {
			return nil, err
		}
		end, err := docPoint(doc, "end")
		if err != nil {
			return nil, err
		}
		if _, ok := base.(*UnreconstructableCurve); ok {
			// The placeholder cannot be evaluated, so the on-curve check
			// is skipped; the trim was validated when first constructed.
			return &TrimmedImplicitCurve{base: base, domain: domain, start: start, end: end}, nil
		}
		c, err := NewTrimmedCurve(base, domain, start, end)
		if err != nil {
			return nil, fmt.Errorf("trimmed: %w", err)
		}
		return c, nil
	case tagComposite:
		list, err := docList(doc, "segments")
		if err != nil {
			return nil, err
		}
		segs := make([]Curve, len(list))
		for i, item := range list {
			segDoc, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("segment %d is not a document: %w", i, ErrMalformedSceneData)
			}
			segs[i], err = FromStructured(segDoc)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		c, err := NewCompositeCurve(segs...)
		if err != nil {
			return nil, fmt.Errorf("composite: %w", err)
		}
		return c, nil
	case tagBlend:
		t, err := docFloat(doc, "weight")
		if err != nil {
			return nil, err
		}
		a, b, err := docOperands(doc)
		if err != nil {
			return nil, err
		}
		c, err := Blend(a, b, t)
		if err != nil {
			return nil, fmt.Errorf("blend: %w", err)
		}
		return c, nil
	case tagOffset:
		d, err := docFloat(doc, "distance")
		if err != nil {
			return nil, err
		}
		baseDoc, err := docMap(doc, "base")
		if err != nil {
			return nil, err
		}
		base, err := FromStructured(baseDoc)
		if err != nil {
			return nil, err
		}
		c, err := Offset(base, d)
		if err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		return c, nil
	case tagBoolean:
		opName, err := docString(doc, "op")
		if err != nil {
			return nil, err
		}
		op, ok := boolOpFromString(opName)
		if !ok {
			return nil, fmt.Errorf("unknown boolean op %q: %w", opName, ErrMalformedSceneData)
		}
		a, b, err := docOperands(doc)
		if err != nil {
			return nil, err
		}
		c, err := newBooleanCurve(op, a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opName, err)
		}
		return c, nil
	case tagField:
		chainDoc, err := docMap(doc, "chain")
		if err != nil {
			return nil, err
		}
		inner, err := FromStructured(chainDoc)
		if err != nil {
			return nil, fmt.Errorf("composite field: %w", err)
		}
		cc, ok := inner.(*CompositeCurve)
		if !ok {
			return nil, fmt.Errorf("composite field chain is %T: %w", inner, ErrMalformedSceneData)
		}
		c, err := NewCompositeField(cc)
		if err != nil {
			return nil, fmt.Errorf("composite field: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown curve type %q: %w", tag, ErrMalformedSceneData)
	}
}

// ToStructuredRegion encodes a region: outer boundary plus holes, each as
// a nested curve document.
func ToStructuredRegion(r *AreaRegion) (map[string]any, error) {
	outer, err := ToStructured(r.Outer())
	if err != nil {
		return nil, err
	}
	holes := r.Holes()
	holeDocs := make([]any, len(holes))
	for i, h := range holes {
		doc, err := ToStructured(h)
		if err != nil {
			return nil, err
		}
		holeDocs[i] = doc
	}
	return map[string]any{
		"type":  tagRegion,
		"outer": outer,
		"holes": holeDocs,
	}, nil
}

// FromStructuredRegion decodes a region document.
func FromStructuredRegion(doc map[string]any) (*AreaRegion, error) {
	tag, err := docString(doc, "type")
	if err != nil {
		return nil, err
	}
	if tag != tagRegion {
		return nil, fmt.Errorf("expected type %q, got %q: %w", tagRegion, tag, ErrMalformedSceneData)
	}
	outerDoc, err := docMap(doc, "outer")
	if err != nil {
		return nil, err
	}
	outer, err := FromStructured(outerDoc)
	if err != nil {
		return nil, err
	}
	list, err := docList(doc, "holes")
	if err != nil {
		return nil, err
	}
	holes := make([]Curve, len(list))
	for i, item := range list {
		holeDoc, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("hole %d is not a document: %w", i, ErrMalformedSceneData)
		}
		holes[i], err = FromStructured(holeDoc)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
	}
	return NewAreaRegion(outer, holes...)
}

func domainToStructured(d TrimDomain) (map[string]any, error) {
	switch d := d.(type) {
	case RectDomain:
		return map[string]any{
			"kind": "rect",
			"x0":   d.Rect.X0,
			"y0":   d.Rect.Y0,
			"x1":   d.Rect.X1,
			"y1":   d.Rect.Y1,
		}, nil
	case WedgeDomain:
		return map[string]any{
			"kind":        "wedge",
			"center":      pointToStructured(d.Center),
			"start_angle": d.StartAngle,
			"sweep_angle": d.SweepAngle,
		}, nil
	default:
		return nil, fmt.Errorf("cannot encode trim domain type %T: %w", d, ErrMalformedSceneData)
	}
}

func domainFromStructured(doc map[string]any) (TrimDomain, error) {
	kind, err := docString(doc, "kind")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "rect":
		var v [4]float64
		for i, key := range [...]string{"x0", "y0", "x1", "y1"} {
			v[i], err = docFloat(doc, key)
			if err != nil {
				return nil, err
			}
		}
		return RectDomain{Rect{v[0], v[1], v[2], v[3]}}, nil
	case "wedge":
		center, err := docPoint(doc, "center")
		if err != nil {
			return nil, err
		}
		start, err := docFloat(doc, "start_angle")
		if err != nil {
			return nil, err
		}
		sweep, err := docFloat(doc, "sweep_angle")
		if err != nil {
			return nil, err
		}
		return WedgeDomain{Center: center, StartAngle: start, SweepAngle: sweep}, nil
	default:
		return nil, fmt.Errorf("unknown trim domain kind %q: %w", kind, ErrMalformedSceneData)
	}
}

func boolOpFromString(s string) (BoolOp, bool) {
	switch s {
	case "union":
		return OpUnion, true
	case "intersection":
		return OpIntersection, true
	case "difference":
		return OpDifference, true
	default:
		return 0, false
	}
}

func pointToStructured(pt Point) []any {
	return []any{pt.X, pt.Y}
}

// Field access helpers. Decoded documents come from both JSON (numbers as
// float64) and YAML (numbers as int or float64), so numeric fields coerce.

func docString(doc map[string]any, key string) (string, error) {
	v, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("missing field %q: %w", key, ErrMalformedSceneData)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, want string: %w", key, v, ErrMalformedSceneData)
	}
	return s, nil
}

func docFloat(doc map[string]any, key string) (float64, error) {
	v, ok := doc[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q: %w", key, ErrMalformedSceneData)
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, fmt.Errorf("field %q is %T, want number: %w", key, v, ErrMalformedSceneData)
	}
	return f, nil
}

func asFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func docMap(doc map[string]any, key string) (map[string]any, error) {
	v, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("missing field %q: %w", key, ErrMalformedSceneData)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q is %T, want document: %w", key, v, ErrMalformedSceneData)
	}
	return m, nil
}

func docList(doc map[string]any, key string) ([]any, error) {
	v, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("missing field %q: %w", key, ErrMalformedSceneData)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q is %T, want list: %w", key, v, ErrMalformedSceneData)
	}
	return l, nil
}

// docOperands decodes the "a" and "b" curve documents of a binary algebra
// form.
func docOperands(doc map[string]any) (Curve, Curve, error) {
	aDoc, err := docMap(doc, "a")
	if err != nil {
		return nil, nil, err
	}
	a, err := FromStructured(aDoc)
	if err != nil {
		return nil, nil, err
	}
	bDoc, err := docMap(doc, "b")
	if err != nil {
		return nil, nil, err
	}
	b, err := FromStructured(bDoc)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func docPoint(doc map[string]any, key string) (Point, error) {
	l, err := docList(doc, key)
	if err != nil {
		return Point{}, err
	}
	if len(l) != 2 {
		return Point{}, fmt.Errorf("field %q has %d coordinates, want 2: %w", key, len(l), ErrMalformedSceneData)
	}
	x, okx := asFloat(l[0])
	y, oky := asFloat(l[1])
	if !okx || !oky {
		return Point{}, fmt.Errorf("field %q has non-numeric coordinates: %w", key, ErrMalformedSceneData)
	}
	return Pt(x, y), nil
}

func docVariables(doc map[string]any) (string, string, error) {
	l, err := docList(doc, "variables")
	if err != nil {
		return "", "", err
	}
	if len(l) != 2 {
		return "", "", fmt.Errorf("field \"variables\" has %d entries, want 2: %w", len(l), ErrMalformedSceneData)
	}
	xv, okx := l[0].(string)
	yv, oky := l[1].(string)
	if !okx || !oky {
		return "", "", fmt.Errorf("field \"variables\" has non-string entries: %w", ErrMalformedSceneData)
	}
	return xv, yv, nil
}

// EncodeJSON encodes a curve's structured form as indented JSON.
func EncodeJSON(c Curve) ([]byte, error) {
	doc, err := ToStructured(c)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeJSON decodes a curve from its JSON structured form.
func DecodeJSON(data []byte) (Curve, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %v: %w", err, ErrMalformedSceneData)
	}
	return FromStructured(doc)
}

// EncodeYAML encodes a curve's structured form as YAML.
func EncodeYAML(c Curve) ([]byte, error) {
	doc, err := ToStructured(c)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// DecodeYAML decodes a curve from its YAML structured form.
func DecodeYAML(data []byte) (Curve, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %v: %w", err, ErrMalformedSceneData)
	}
	return FromStructured(doc)
}
