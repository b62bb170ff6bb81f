package compiler

import (
	"github.com/chazu/chlc/pkg/bytecode"
)

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Every parse function returns the index of the node it collapsed, or -1
// when the input does not start with its rule. With fail set, a missing
// rule is a syntax error instead.

// expression parses an arithmetic expression. * / % bind tighter than
// + -, and both levels are left associative.
func (p *parser) expression(fail bool) (int, error) {
	start := p.pos()
	n, err := p.term(fail)
	if n < 0 || err != nil {
		return n, err
	}
	for {
		i := p.peek()
		var mnemonic string
		switch {
		case p.is(i, "+"):
			mnemonic = "ADDF"
		case p.is(i, "-"):
			mnemonic = "SUBF"
		default:
			return n, nil
		}
		p.next()
		if _, err := p.term(true); err != nil {
			return -1, err
		}
		p.op(mnemonic)
		n = p.collapse(start, "EXPRESSION")
	}
}

func (p *parser) term(fail bool) (int, error) {
	start := p.pos()
	n, err := p.unary(fail)
	if n < 0 || err != nil {
		return n, err
	}
	for {
		i := p.peek()
		var mnemonic string
		switch {
		case p.is(i, "*"):
			mnemonic = "MUL"
		case p.is(i, "/"):
			mnemonic = "DIV"
		case p.is(i, "%"):
			mnemonic = "MOD"
		default:
			return n, nil
		}
		p.next()
		if _, err := p.unary(true); err != nil {
			return -1, err
		}
		p.op(mnemonic)
		n = p.collapse(start, "EXPRESSION")
	}
}

func (p *parser) unary(fail bool) (int, error) {
	start := p.pos()
	if p.is(p.peek(), "-") {
		p.next()
		if _, err := p.unary(true); err != nil {
			return -1, err
		}
		p.op("NEG")
		return p.collapse(start, "EXPRESSION"), nil
	}
	return p.primary(fail)
}

func (p *parser) primary(fail bool) (int, error) {
	start := p.pos()
	i := p.peek()
	switch {
	case p.isType(i, TokenIdentifier) || p.isType(i, TokenNumber):
		if p.is(p.s.peek(1), "of") {
			// CONSTANT of VARIABLE
			c, err := p.constant(p.next())
			if err != nil {
				return -1, err
			}
			p.next()
			v, err := p.acceptType(TokenIdentifier)
			if err != nil {
				return -1, err
			}
			p.pushi(c)
			p.pushVar(v)
			p.sys(bytecode.NativeGetProperty)
			break
		}
		p.next()
		if p.isType(i, TokenNumber) {
			f, err := p.number(i)
			if err != nil {
				return -1, err
			}
			p.pushf(f)
		} else {
			p.pushVar(i)
		}
	case p.is(i, "("):
		p.next()
		if _, err := p.expression(true); err != nil {
			return -1, err
		}
		if _, err := p.accept(")"); err != nil {
			return -1, err
		}
	case p.is(i, "number"):
		if err := p.match("number from EXPRESSION to EXPRESSION"); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeRandom)
	case p.is(i, "variable"):
		p.next()
		if _, err := p.constExpr(true); err != nil {
			return -1, err
		}
		p.op("CASTF")
	case p.is(i, "get"):
		if err := p.match("get distance from COORD_EXPR to COORD_EXPR"); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeGetDistance)
	case p.is(i, "square"):
		return -1, p.notImplemented(i, "square root")
	default:
		if fail {
			return -1, p.unexpected(i, "EXPRESSION")
		}
		return -1, nil
	}
	return p.collapse(start, "EXPRESSION"), nil
}

func (p *parser) number(i int) (float32, error) {
	f, err := p.node(i).Token.NumberValue()
	if err != nil {
		return 0, p.errorf(i, "Invalid number: %s", p.text(i))
	}
	return f, nil
}

// str stores a string literal in the data section and pushes its offset.
func (p *parser) str() error {
	i, err := p.acceptType(TokenString)
	if err != nil {
		return err
	}
	s, err := Unquote(p.text(i))
	if err != nil {
		return p.errorf(i, "%v", err)
	}
	off, err := p.unit.StoreString(s)
	if err != nil {
		return p.semanticf(i, "%v", err)
	}
	p.pushi(off)
	return nil
}

// ---------------------------------------------------------------------------
// Conditions
// ---------------------------------------------------------------------------

var comparisons = map[string]string{
	"==": "EQ",
	"!=": "NEQ",
	">=": "GEQ",
	"<=": "LEQ",
	">":  "GT",
	"<":  "LT",
}

// condition parses a boolean condition. and binds tighter than or.
func (p *parser) condition(fail bool) (int, error) {
	start := p.pos()
	n, err := p.conjunction(fail)
	if n < 0 || err != nil {
		return n, err
	}
	for p.is(p.peek(), "or") {
		p.next()
		if _, err := p.conjunction(true); err != nil {
			return -1, err
		}
		p.op("OR")
		n = p.collapse(start, "CONDITION")
	}
	return n, nil
}

func (p *parser) conjunction(fail bool) (int, error) {
	start := p.pos()
	n, err := p.negation(fail)
	if n < 0 || err != nil {
		return n, err
	}
	for p.is(p.peek(), "and") {
		p.next()
		if _, err := p.negation(true); err != nil {
			return -1, err
		}
		p.op("AND")
		n = p.collapse(start, "CONDITION")
	}
	return n, nil
}

func (p *parser) negation(fail bool) (int, error) {
	start := p.pos()
	if p.is(p.peek(), "not") {
		p.next()
		if _, err := p.negation(true); err != nil {
			return -1, err
		}
		p.op("NOT")
		return p.collapse(start, "CONDITION"), nil
	}
	return p.simpleCondition(fail)
}

func (p *parser) simpleCondition(fail bool) (int, error) {
	start := p.pos()
	i := p.peek()
	if p.is(i, "key") {
		if err := p.match("key CONST_EXPR down"); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeKeyDown)
		return p.collapse(start, "CONDITION"), nil
	}
	if p.is(i, "(") {
		n, err := p.attempt(func() (int, error) {
			return p.parenCondition(start)
		})
		if n >= 0 || err != nil {
			return n, err
		}
	}
	if p.isAny(i, "[", "camera", "(", "-") {
		n, err := p.attempt(func() (int, error) {
			return p.coordCondition(start)
		})
		if n >= 0 || err != nil {
			return n, err
		}
	}
	n, err := p.expression(false)
	if err != nil {
		return -1, err
	}
	if n < 0 {
		if fail {
			return -1, p.unexpected(i, "CONDITION")
		}
		return -1, nil
	}
	i = p.next()
	switch {
	case p.isAny(i, "second", "seconds"):
		p.op("SLEEP")
	case p.isType(i, TokenKeyword) && comparisons[p.text(i)] != "":
		mnemonic := comparisons[p.text(i)]
		if _, err := p.expression(true); err != nil {
			return -1, err
		}
		p.op(mnemonic)
	default:
		return -1, p.unexpected(i, "==|!=|>=|<=|>|<|second|seconds")
	}
	return p.collapse(start, "CONDITION"), nil
}

// parenCondition parses ( CONDITION ). Parenthesised expressions start the
// same way, so callers attempt it first.
func (p *parser) parenCondition(start int) (int, error) {
	p.next()
	if _, err := p.condition(true); err != nil {
		return -1, err
	}
	if _, err := p.accept(")"); err != nil {
		return -1, err
	}
	return p.collapse(start, "CONDITION"), nil
}

// coordCondition parses the near and at forms.
func (p *parser) coordCondition(start int) (int, error) {
	if _, err := p.coordExpr(true); err != nil {
		return -1, err
	}
	negate := false
	if p.is(p.peek(), "not") {
		p.next()
		negate = true
	}
	i := p.next()
	switch {
	case p.is(i, "near"):
		if _, err := p.coordExpr(true); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeGetDistance)
		if err := p.match("radius EXPRESSION"); err != nil {
			return -1, err
		}
		p.op("LT")
		if negate {
			p.op("NOT")
		}
	case p.is(i, "at"):
		if _, err := p.coordExpr(true); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeGetDistance)
		p.pushf(0)
		if negate {
			p.op("NEQ")
		} else {
			p.op("EQ")
		}
	default:
		return -1, p.unexpected(i, "near|at")
	}
	return p.collapse(start, "CONDITION"), nil
}

// ---------------------------------------------------------------------------
// Objects
// ---------------------------------------------------------------------------

func (p *parser) object(fail bool) (int, error) {
	start := p.pos()
	i := p.peek()
	switch {
	case p.isType(i, TokenIdentifier):
		if err := p.match("VARIABLE"); err != nil {
			return -1, err
		}
	case p.is(i, "marker"):
		return -1, p.notImplemented(i, "marker at COORD_EXPR")
	default:
		if fail {
			return -1, p.unexpected(i, "OBJECT")
		}
		return -1, nil
	}
	return p.collapse(start, "OBJECT"), nil
}

// ---------------------------------------------------------------------------
// Constant expressions
// ---------------------------------------------------------------------------

func (p *parser) constExpr(fail bool) (int, error) {
	start := p.pos()
	i := p.peek()
	switch {
	case p.isType(i, TokenIdentifier) || p.isType(i, TokenNumber):
		if err := p.match("CONSTANT"); err != nil {
			return -1, err
		}
	case p.is(i, "("):
		if err := p.match("( CONST_EXPR )"); err != nil {
			return -1, err
		}
	case p.is(i, "constant"):
		if err := p.match("constant EXPRESSION"); err != nil {
			return -1, err
		}
		p.op("CASTI")
	case p.is(i, "state"):
		if err := p.match("state of OBJECT"); err != nil {
			return -1, err
		}
		p.sys(bytecode.NativeGetObjectState)
	default:
		if fail {
			return -1, p.unexpected(i, "CONST_EXPR")
		}
		return -1, nil
	}
	return p.collapse(start, "CONST_EXPR"), nil
}

// constant resolves node i, a number or a constant name, to its value.
func (p *parser) constant(i int) (int, error) {
	switch {
	case p.isType(i, TokenNumber):
		v, err := p.node(i).Token.IntValue()
		if err != nil {
			return 0, p.errorf(i, "Invalid integer: %s", p.text(i))
		}
		return v, nil
	case p.isType(i, TokenIdentifier):
		if v, ok := p.lookupConstant(p.text(i)); ok {
			return v, nil
		}
		return 0, p.semanticf(i, "Undefined constant: %s", p.text(i))
	}
	return 0, p.unexpected(i, "CONSTANT")
}

// ---------------------------------------------------------------------------
// Coordinates
// ---------------------------------------------------------------------------

func (p *parser) coordExpr(fail bool) (int, error) {
	start := p.pos()
	n, err := p.coordTerm(fail)
	if n < 0 || err != nil {
		return n, err
	}
	for {
		i := p.peek()
		var mnemonic string
		switch {
		case p.is(i, "+"):
			mnemonic = "ADDC"
		case p.is(i, "-"):
			mnemonic = "SUBC"
		case p.is(i, "/"):
			return -1, p.notImplemented(i, "COORD_EXPR / EXPRESSION")
		default:
			return n, nil
		}
		p.next()
		if _, err := p.coordTerm(true); err != nil {
			return -1, err
		}
		p.op(mnemonic)
		n = p.collapse(start, "COORD_EXPR")
	}
}

func (p *parser) coordTerm(fail bool) (int, error) {
	start := p.pos()
	i := p.peek()
	switch {
	case p.is(i, "["):
		// [OBJECT] first, then [x, z] or [x, y, z]
		n, err := p.attempt(func() (int, error) {
			return p.objectPosition(start)
		})
		if n >= 0 || err != nil {
			return n, err
		}
		if err := p.coordComponent("["); err != nil {
			return -1, err
		}
		if err := p.coordComponent(","); err != nil {
			return -1, err
		}
		if p.is(p.peek(), ",") {
			if err := p.coordComponent(","); err != nil {
				return -1, err
			}
		} else {
			p.pushc(0)
			p.op("SWAP")
		}
		if _, err := p.accept("]"); err != nil {
			return -1, err
		}
	case p.is(i, "camera"):
		p.next()
		j := p.next()
		switch {
		case p.is(j, "position"):
			p.sys(bytecode.NativeGetCameraPosition)
		case p.is(j, "focus"):
			p.sys(bytecode.NativeGetCameraFocus)
		default:
			return -1, p.unexpected(j, "position|focus")
		}
	case p.is(i, "("):
		if err := p.match("( COORD_EXPR )"); err != nil {
			return -1, err
		}
	case p.is(i, "-"):
		// negated expressions start the same way
		n, err := p.attempt(p.negatedCoordTerm)
		if err != nil {
			return -1, err
		}
		if n >= 0 {
			return -1, p.notImplemented(i, "- COORD_EXPR")
		}
		if fail {
			return -1, p.unexpected(i, "COORD_EXPR")
		}
		return -1, nil
	default:
		if fail {
			return -1, p.unexpected(i, "COORD_EXPR")
		}
		return -1, nil
	}
	return p.collapse(start, "COORD_EXPR"), nil
}

// objectPosition parses [OBJECT], the position of an object.
func (p *parser) objectPosition(start int) (int, error) {
	p.next()
	if _, err := p.object(true); err != nil {
		return -1, err
	}
	if _, err := p.accept("]"); err != nil {
		return -1, err
	}
	p.sys(bytecode.NativeGetPosition)
	return p.collapse(start, "COORD_EXPR"), nil
}

func (p *parser) negatedCoordTerm() (int, error) {
	p.next()
	return p.coordTerm(true)
}

// coordComponent parses the separator sep followed by one component.
func (p *parser) coordComponent(sep string) error {
	if _, err := p.accept(sep); err != nil {
		return err
	}
	if _, err := p.expression(true); err != nil {
		return err
	}
	p.op("CASTC")
	return nil
}
