package implicit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The expression engine turns a symbolic relation in two free variables
// into compiled numeric evaluators. Supported syntax: the operators + - *
// / ^ (right-associative power), unary minus, parentheses, numeric
// literals, the two declared variables, the function set sin cos tan exp
// log sqrt abs, and an optional single '=' turning a relation f = g into
// f − g.

// exprNode is a node of the immutable expression tree.
type exprNode interface {
	isExpr()
}

type numNode float64

type varNode int // 0 = first variable, 1 = second

type unaryNode struct {
	arg exprNode // negation is the only unary operator
}

type binNode struct {
	op   byte // '+', '-', '*', '/', '^'
	l, r exprNode
}

type callNode struct {
	fn  string
	arg exprNode
}

func (numNode) isExpr()   {}
func (varNode) isExpr()   {}
func (unaryNode) isExpr() {}
func (binNode) isExpr()   {}
func (callNode) isExpr()  {}

var exprFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
}

// Smart constructors fold constants so that derivative trees stay small.

func eNum(f float64) exprNode { return numNode(f) }

func eNeg(n exprNode) exprNode {
	switch n := n.(type) {
	case numNode:
		return numNode(-n)
	case unaryNode:
		return n.arg
	}
	return unaryNode{n}
}

func eAdd(l, r exprNode) exprNode {
	if a, ok := l.(numNode); ok {
		if b, ok := r.(numNode); ok {
			return numNode(a + b)
		}
		if a == 0 {
			return r
		}
	}
	if b, ok := r.(numNode); ok && b == 0 {
		return l
	}
	return binNode{'+', l, r}
}

func eSub(l, r exprNode) exprNode {
	if a, ok := l.(numNode); ok {
		if b, ok := r.(numNode); ok {
			return numNode(a - b)
		}
		if a == 0 {
			return eNeg(r)
		}
	}
	if b, ok := r.(numNode); ok && b == 0 {
		return l
	}
	return binNode{'-', l, r}
}

func eMul(l, r exprNode) exprNode {
	if a, ok := l.(numNode); ok {
		if b, ok := r.(numNode); ok {
			return numNode(a * b)
		}
		if a == 0 {
			return numNode(0)
		}
		if a == 1 {
			return r
		}
	}
	if b, ok := r.(numNode); ok {
		if b == 0 {
			return numNode(0)
		}
		if b == 1 {
			return l
		}
	}
	return binNode{'*', l, r}
}

func eDiv(l, r exprNode) exprNode {
	if a, ok := l.(numNode); ok && a == 0 {
		return numNode(0)
	}
	if b, ok := r.(numNode); ok {
		if a, ok := l.(numNode); ok && b != 0 {
			return numNode(a / b)
		}
		if b == 1 {
			return l
		}
	}
	return binNode{'/', l, r}
}

func ePow(l, r exprNode) exprNode {
	if b, ok := r.(numNode); ok {
		if b == 0 {
			return numNode(1)
		}
		if b == 1 {
			return l
		}
		if a, ok := l.(numNode); ok {
			return numNode(math.Pow(float64(a), float64(b)))
		}
	}
	return binNode{'^', l, r}
}

func eCall(fn string, arg exprNode) exprNode {
	if a, ok := arg.(numNode); ok {
		return numNode(exprFuncs[fn](float64(a)))
	}
	return callNode{fn, arg}
}

// compileNode builds a closure tree for fast repeated evaluation. The
// result is computed once per curve, at construction.
func compileNode(n exprNode) func(x, y float64) float64 {
	switch n := n.(type) {
	case numNode:
		c := float64(n)
		return func(x, y float64) float64 { return c }
	case varNode:
		if n == 0 {
			return func(x, y float64) float64 { return x }
		}
		return func(x, y float64) float64 { return y }
	case unaryNode:
		f := compileNode(n.arg)
		return func(x, y float64) float64 { return -f(x, y) }
	case binNode:
		l := compileNode(n.l)
		r := compileNode(n.r)
		switch n.op {
		case '+':
			return func(x, y float64) float64 { return l(x, y) + r(x, y) }
		case '-':
			return func(x, y float64) float64 { return l(x, y) - r(x, y) }
		case '*':
			return func(x, y float64) float64 { return l(x, y) * r(x, y) }
		case '/':
			return func(x, y float64) float64 { return l(x, y) / r(x, y) }
		case '^':
			if c, ok := n.r.(numNode); ok && float64(c) == math.Trunc(float64(c)) && c >= 2 && c <= 8 {
				// Small integer powers by repeated multiplication; this is
				// the hot path for polynomial curves.
				k := int(c)
				return func(x, y float64) float64 {
					v := l(x, y)
					out := v
					for i := 1; i < k; i++ {
						out *= v
					}
					return out
				}
			}
			return func(x, y float64) float64 { return math.Pow(l(x, y), r(x, y)) }
		default:
			panic(fmt.Sprintf("unhandled operator %q", n.op))
		}
	case callNode:
		fn := exprFuncs[n.fn]
		arg := compileNode(n.arg)
		return func(x, y float64) float64 { return fn(arg(x, y)) }
	default:
		panic("unreachable")
	}
}

// diffNode computes the partial derivative with respect to variable v
// (0 or 1) as a new tree.
func diffNode(n exprNode, v int) exprNode {
	switch n := n.(type) {
	case numNode:
		return numNode(0)
	case varNode:
		if int(n) == v {
			return numNode(1)
		}
		return numNode(0)
	case unaryNode:
		return eNeg(diffNode(n.arg, v))
	case binNode:
		dl := diffNode(n.l, v)
		dr := diffNode(n.r, v)
		switch n.op {
		case '+':
			return eAdd(dl, dr)
		case '-':
			return eSub(dl, dr)
		case '*':
			return eAdd(eMul(dl, n.r), eMul(n.l, dr))
		case '/':
			return eDiv(eSub(eMul(dl, n.r), eMul(n.l, dr)), eMul(n.r, n.r))
		case '^':
			if c, ok := n.r.(numNode); ok {
				// c·u^(c−1)·u′
				return eMul(eMul(n.r, ePow(n.l, numNode(float64(c)-1))), dl)
			}
			// u^v · (v′·log u + v·u′/u)
			return eMul(n, eAdd(eMul(dr, eCall("log", n.l)), eDiv(eMul(n.r, dl), n.l)))
		default:
			panic(fmt.Sprintf("unhandled operator %q", n.op))
		}
	case callNode:
		du := diffNode(n.arg, v)
		switch n.fn {
		case "sin":
			return eMul(eCall("cos", n.arg), du)
		case "cos":
			return eNeg(eMul(eCall("sin", n.arg), du))
		case "tan":
			c := eCall("cos", n.arg)
			return eDiv(du, eMul(c, c))
		case "exp":
			return eMul(n, du)
		case "log":
			return eDiv(du, n.arg)
		case "sqrt":
			return eDiv(du, eMul(numNode(2), n))
		case "abs":
			// u/|u| · u′; undefined at u = 0, callers that care use a
			// finite-difference fallback there.
			return eMul(eDiv(n.arg, n), du)
		default:
			panic(fmt.Sprintf("unhandled function %q", n.fn))
		}
	default:
		panic("unreachable")
	}
}

// Printing. Precedence levels: sum 1, product 2, unary 3, power 4, atom 5.

func nodePrecedence(n exprNode) int {
	switch n := n.(type) {
	case numNode:
		if n < 0 {
			return 3
		}
		return 5
	case varNode, callNode:
		return 5
	case unaryNode:
		return 3
	case binNode:
		switch n.op {
		case '+', '-':
			return 1
		case '*', '/':
			return 2
		case '^':
			return 4
		}
	}
	panic("unreachable")
}

func printNode(sb *strings.Builder, n exprNode, names [2]string, parent int) {
	prec := nodePrecedence(n)
	if prec < parent {
		sb.WriteByte('(')
		defer sb.WriteByte(')')
	}
	switch n := n.(type) {
	case numNode:
		sb.WriteString(strconv.FormatFloat(float64(n), 'g', -1, 64))
	case varNode:
		sb.WriteString(names[n])
	case unaryNode:
		sb.WriteByte('-')
		printNode(sb, n.arg, names, 3)
	case binNode:
		switch n.op {
		case '+', '-':
			printNode(sb, n.l, names, 1)
			sb.WriteString(" ")
			sb.WriteByte(n.op)
			sb.WriteString(" ")
			printNode(sb, n.r, names, 2)
		case '*', '/':
			printNode(sb, n.l, names, 2)
			sb.WriteByte(n.op)
			printNode(sb, n.r, names, 3)
		case '^':
			printNode(sb, n.l, names, 5)
			sb.WriteByte('^')
			printNode(sb, n.r, names, 4)
		}
	case callNode:
		sb.WriteString(n.fn)
		sb.WriteByte('(')
		printNode(sb, n.arg, names, 0)
		sb.WriteByte(')')
	}
}

// Monomial expansion for polynomial analysis. The key is the exponent pair
// (i, j) of x^i·y^j.

const maxPolyPower = 64

// polyCoeffs expands the tree into monomial coefficients. It reports
// failure if the tree is not a polynomial (function calls, division by a
// non-constant, fractional or negative powers).
func polyCoeffs(n exprNode) (map[[2]int]float64, bool) {
	switch n := n.(type) {
	case numNode:
		if n == 0 {
			return map[[2]int]float64{}, true
		}
		return map[[2]int]float64{{0, 0}: float64(n)}, true
	case varNode:
		if n == 0 {
			return map[[2]int]float64{{1, 0}: 1}, true
		}
		return map[[2]int]float64{{0, 1}: 1}, true
	case unaryNode:
		m, ok := polyCoeffs(n.arg)
		if !ok {
			return nil, false
		}
		for k, v := range m {
			m[k] = -v
		}
		return m, true
	case binNode:
		switch n.op {
		case '+', '-':
			l, ok := polyCoeffs(n.l)
			if !ok {
				return nil, false
			}
			r, ok := polyCoeffs(n.r)
			if !ok {
				return nil, false
			}
			sign := 1.0
			if n.op == '-' {
				sign = -1.0
			}
			for k, v := range r {
				c := l[k] + sign*v
				if c == 0 {
					delete(l, k)
				} else {
					l[k] = c
				}
			}
			return l, true
		case '*':
			l, ok := polyCoeffs(n.l)
			if !ok {
				return nil, false
			}
			r, ok := polyCoeffs(n.r)
			if !ok {
				return nil, false
			}
			return convolveMonomials(l, r), true
		case '/':
			l, ok := polyCoeffs(n.l)
			if !ok {
				return nil, false
			}
			c, ok := constantMonomials(n.r)
			if !ok || c == 0 {
				return nil, false
			}
			for k, v := range l {
				l[k] = v / c
			}
			return l, true
		case '^':
			e, ok := n.r.(numNode)
			if !ok || float64(e) != math.Trunc(float64(e)) || e < 0 || e > maxPolyPower {
				return nil, false
			}
			base, ok := polyCoeffs(n.l)
			if !ok {
				return nil, false
			}
			out := map[[2]int]float64{{0, 0}: 1}
			for i := 0; i < int(e); i++ {
				out = convolveMonomials(out, base)
			}
			return out, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func convolveMonomials(l, r map[[2]int]float64) map[[2]int]float64 {
	out := make(map[[2]int]float64, len(l)*len(r))
	for kl, vl := range l {
		for kr, vr := range r {
			k := [2]int{kl[0] + kr[0], kl[1] + kr[1]}
			c := out[k] + vl*vr
			if c == 0 {
				delete(out, k)
			} else {
				out[k] = c
			}
		}
	}
	return out
}

// constantMonomials reports the tree's value if it is a constant polynomial.
func constantMonomials(n exprNode) (float64, bool) {
	m, ok := polyCoeffs(n)
	if !ok {
		return 0, false
	}
	c := 0.0
	for k, v := range m {
		if k != [2]int{0, 0} {
			return 0, false
		}
		c = v
	}
	return c, true
}

// totalDegree returns the maximum exponent sum across monomials. Mixed
// terms count fully: x²y³ contributes 5. The zero polynomial has degree 0.
func totalDegree(m map[[2]int]float64) int {
	deg := 0
	for k, v := range m {
		if v == 0 {
			continue
		}
		if d := k[0] + k[1]; d > deg {
			deg = d
		}
	}
	return deg
}

// Parser, a small recursive descent grammar.

type exprParser struct {
	src        string
	pos        int
	xvar, yvar string
}

func (p *exprParser) errorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("parsing %q at offset %d: %s: %w", p.src, p.pos, detail, ErrInvalidExpression)
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) parseRelation() (exprNode, error) {
	lhs, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek() == '=' {
		p.pos++
		rhs, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		lhs = eSub(lhs, rhs)
	}
	if p.peek() != 0 {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return lhs, nil
}

func (p *exprParser) parseSum() (exprNode, error) {
	n, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			n = eAdd(n, r)
		case '-':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			n = eSub(n, r)
		default:
			return n, nil
		}
	}
}

func (p *exprParser) parseProduct() (exprNode, error) {
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			n = eMul(n, r)
		case '/':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			n = eDiv(n, r)
		default:
			return n, nil
		}
	}
}

func (p *exprParser) parseUnary() (exprNode, error) {
	if p.peek() == '-' {
		p.pos++
		n, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return eNeg(n), nil
	}
	return p.parsePower()
}

func (p *exprParser) parsePower() (exprNode, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() == '^' {
		p.pos++
		// Right-associative; the exponent may carry a unary minus.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ePow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parseAtom() (exprNode, error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return n, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseIdent()
	case c == 0:
		return nil, p.errorf("unexpected end of expression")
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *exprParser) parseNumber() (exprNode, error) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		p.pos++
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		q := p.pos + 1
		if q < len(p.src) && (p.src[q] == '+' || p.src[q] == '-') {
			q++
		}
		if q < len(p.src) && p.src[q] >= '0' && p.src[q] <= '9' {
			p.pos = q
			for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
				p.pos++
			}
		}
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, p.errorf("bad number %q", p.src[start:p.pos])
	}
	return eNum(f), nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func (p *exprParser) parseIdent() (exprNode, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	switch name {
	case p.xvar:
		return varNode(0), nil
	case p.yvar:
		return varNode(1), nil
	case "pi":
		return eNum(math.Pi), nil
	}
	if _, ok := exprFuncs[name]; ok {
		if p.peek() != '(' {
			return nil, p.errorf("function %s requires parentheses", name)
		}
		p.pos++
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis after %s", name)
		}
		p.pos++
		return eCall(name, arg), nil
	}
	return nil, p.errorf("unknown identifier %q (free variables are %q and %q)", name, p.xvar, p.yvar)
}

// Evaluator wraps a symbolic relation over two free variables and provides
// compiled scalar and batched evaluation plus both first partials. The
// compiled forms are built once, at construction, and never invalidated.
type Evaluator struct {
	xvar, yvar string
	node       exprNode
	dx, dy     exprNode
	fn         func(x, y float64) float64
	dxFn       func(x, y float64) float64
	dyFn       func(x, y float64) float64
}

// NewEvaluator parses src as a relation in the two named free variables.
// It fails with [ErrInvalidExpression] if src references any other
// identifier or cannot be parsed, and with [ErrInvalidParameter] for a
// degenerate variable pair.
func NewEvaluator(src, xvar, yvar string) (*Evaluator, error) {
	if xvar == "" || yvar == "" || xvar == yvar {
		return nil, fmt.Errorf("variable pair (%q, %q): %w", xvar, yvar, ErrInvalidParameter)
	}
	p := &exprParser{src: src, xvar: xvar, yvar: yvar}
	node, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	return newEvaluatorFromNode(node, xvar, yvar), nil
}

func newEvaluatorFromNode(node exprNode, xvar, yvar string) *Evaluator {
	dx := diffNode(node, 0)
	dy := diffNode(node, 1)
	return &Evaluator{
		xvar: xvar,
		yvar: yvar,
		node: node,
		dx:   dx,
		dy:   dy,
		fn:   compileNode(node),
		dxFn: compileNode(dx),
		dyFn: compileNode(dy),
	}
}

// Eval computes the relation's value at (x, y).
func (ev *Evaluator) Eval(x, y float64) float64 {
	return ev.fn(x, y)
}

// EvalBatch evaluates the relation over coordinate slices, writing results
// to dst. All three slices must have the same length.
func (ev *Evaluator) EvalBatch(xs, ys, dst []float64) {
	if len(xs) != len(ys) || len(xs) != len(dst) {
		panic("EvalBatch: slice lengths differ")
	}
	fn := ev.fn
	for i := range xs {
		dst[i] = fn(xs[i], ys[i])
	}
}

// PartialX returns the compiled ∂f/∂x.
func (ev *Evaluator) PartialX() func(x, y float64) float64 {
	return ev.dxFn
}

// PartialY returns the compiled ∂f/∂y.
func (ev *Evaluator) PartialY() func(x, y float64) float64 {
	return ev.dyFn
}

// GradientAt computes both first partials at (x, y).
func (ev *Evaluator) GradientAt(x, y float64) Vec2 {
	return Vec2{
		X: ev.dxFn(x, y),
		Y: ev.dyFn(x, y),
	}
}

// Variables returns the declared free-variable names.
func (ev *Evaluator) Variables() (string, string) {
	return ev.xvar, ev.yvar
}

// String returns a normalized source form that parses back to an
// equivalent relation.
func (ev *Evaluator) String() string {
	sb := &strings.Builder{}
	printNode(sb, ev.node, [2]string{ev.xvar, ev.yvar}, 0)
	return sb.String()
}

// polynomial expands the relation into monomial coefficients, reporting
// failure for non-polynomial relations.
func (ev *Evaluator) polynomial() (map[[2]int]float64, bool) {
	return polyCoeffs(ev.node)
}
