package compiler

import (
	"github.com/chazu/chlc/pkg/bytecode"
)

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

type statementFunc func(p *parser) (int, error)

// statementTable maps the leading keyword of a statement to its parser.
// Statements starting with an identifier or a number are assignments.
var statementTable map[string]statementFunc

func init() {
	statementTable = map[string]statementFunc{
		"if":        (*parser).ifStatement,
		"while":     (*parser).whileStatement,
		"begin":     (*parser).loopStatement,
		"wait":      (*parser).waitStatement,
		"run":       (*parser).runStatement,
		"say":       (*parser).sayStatement,
		"set":       (*parser).cameraStatement,
		"delete":    (*parser).deleteStatement,
		"challenge": (*parser).challengeStatement,
	}
}

// statements parses statements until a token that cannot start one.
func (p *parser) statements() (int, error) {
	start := p.pos()
	for {
		n, err := p.statement()
		if err != nil {
			return -1, err
		}
		if n < 0 {
			break
		}
	}
	return p.collapse(start, "STATEMENTS"), nil
}

// statement parses one statement, or returns -1 when the next token cannot
// start one.
func (p *parser) statement() (int, error) {
	p.furthest = nil
	i := p.peek()
	if p.isType(i, TokenIdentifier) || p.isType(i, TokenNumber) {
		if p.is(p.s.peek(1), "of") {
			return p.propertyAssignment()
		}
		return p.assignment()
	}
	if !p.isType(i, TokenKeyword) {
		return -1, nil
	}
	fn, ok := statementTable[p.text(i)]
	if !ok {
		return -1, nil
	}
	return fn(p)
}

var assignOps = map[string]string{
	"+=": "ADDF",
	"-=": "SUBF",
	"*=": "MUL",
	"/=": "DIV",
	"%=": "MOD",
}

func (p *parser) assignment() (int, error) {
	start := p.pos()
	v, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return -1, err
	}
	i := p.next()
	switch {
	case p.is(i, "="):
		if err := p.value(); err != nil {
			return -1, err
		}
	case p.isAny(i, "++", "--"):
		p.pushVar(v)
		p.pushf(1)
		if p.is(i, "++") {
			p.op("ADDF")
		} else {
			p.op("SUBF")
		}
	case p.isType(i, TokenKeyword) && assignOps[p.text(i)] != "":
		mnemonic := assignOps[p.text(i)]
		p.pushVar(v)
		if _, err := p.expression(true); err != nil {
			return -1, err
		}
		p.op(mnemonic)
	default:
		return -1, p.unexpected(i, "=|+=|-=|*=|/=|%=|++|--")
	}
	p.popVar(v)
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	return p.collapse(start, "ASSIGNMENT"), nil
}

// value parses the right side of an assignment: an expression, or failing
// that an object.
func (p *parser) value() error {
	n, err := p.attempt(func() (int, error) {
		return p.expression(false)
	})
	if err != nil || n >= 0 {
		return err
	}
	_, err = p.object(true)
	return err
}

func (p *parser) propertyAssignment() (int, error) {
	start := p.pos()
	c, err := p.constant(p.next())
	if err != nil {
		return -1, err
	}
	if _, err := p.accept("of"); err != nil {
		return -1, err
	}
	v, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return -1, err
	}
	i := p.next()
	switch {
	case p.is(i, "="):
		p.pushi(c)
		p.pushVar(v)
		if _, err := p.expression(true); err != nil {
			return -1, err
		}
	case p.isAny(i, "+=", "-=", "*=", "/="):
		p.pushi(c)
		p.pushVar(v)
		p.pushi(c)
		p.pushVar(v)
		p.sys2(bytecode.NativeGetProperty)
		if _, err := p.expression(true); err != nil {
			return -1, err
		}
		p.op(assignOps[p.text(i)])
	default:
		return -1, p.unexpected(i, "=|+=|-=|*=|/=")
	}
	p.sys2(bytecode.NativeSetProperty)
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	return p.collapse(start, "PROPERTY_ASSIGNMENT"), nil
}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

func (p *parser) ifStatement() (int, error) {
	start := p.pos()
	var exits []int
	branch := func(kw string) error {
		if err := p.match(kw + " CONDITION EOL"); err != nil {
			return err
		}
		jz := p.jz(-1)
		if _, err := p.statements(); err != nil {
			return err
		}
		if p.isAny(p.peek(), "elsif", "else") {
			exits = append(exits, p.jmp(-1))
		}
		p.patch(jz)
		return nil
	}
	if err := branch("if"); err != nil {
		return -1, err
	}
	for p.is(p.peek(), "elsif") {
		if err := branch("elsif"); err != nil {
			return -1, err
		}
	}
	if p.is(p.peek(), "else") {
		if err := p.match("else EOL"); err != nil {
			return -1, err
		}
		if _, err := p.statements(); err != nil {
			return -1, err
		}
	}
	if err := p.match("end if EOL"); err != nil {
		return -1, err
	}
	for _, ip := range exits {
		p.patch(ip)
	}
	return p.collapse(start, "IF_STATEMENT"), nil
}

func (p *parser) whileStatement() (int, error) {
	start := p.pos()
	if _, err := p.accept("while"); err != nil {
		return -1, err
	}
	handler := p.except()
	guard := p.ip()
	if err := p.match("CONDITION EOL"); err != nil {
		return -1, err
	}
	exit := p.jz(-1)
	if _, err := p.statements(); err != nil {
		return -1, err
	}
	back := p.jmp(guard)
	p.patch(exit)
	p.op("ENDEXCEPT")
	skip := p.jmp(-1)
	p.patch(handler)
	if _, err := p.exceptions(); err != nil {
		return -1, err
	}
	if err := p.match("end while EOL"); err != nil {
		return -1, err
	}
	p.unit.At(back).Line = int32(p.line)
	p.patch(skip)
	return p.collapse(start, "WHILE_STATEMENT"), nil
}

func (p *parser) loopStatement() (int, error) {
	start := p.pos()
	if _, err := p.accept("begin"); err != nil {
		return -1, err
	}
	handler := p.except()
	top := p.ip()
	if err := p.match("loop EOL"); err != nil {
		return -1, err
	}
	if _, err := p.statements(); err != nil {
		return -1, err
	}
	p.jmp(top)
	p.patch(handler)
	if _, err := p.exceptions(); err != nil {
		return -1, err
	}
	if err := p.match("end loop EOL"); err != nil {
		return -1, err
	}
	return p.collapse(start, "LOOP_STATEMENT"), nil
}

// exceptions parses the when and until handlers of a script or loop and
// closes the handler block with ITEREXCEPT.
func (p *parser) exceptions() (int, error) {
	start := p.pos()
	var breaks []int
	for {
		i := p.peek()
		if !p.isAny(i, "when", "until") {
			break
		}
		hstart := p.pos()
		if err := p.match(p.text(i) + " CONDITION EOL"); err != nil {
			return -1, err
		}
		skip := p.jz(-1)
		if p.is(i, "when") {
			if _, err := p.statements(); err != nil {
				return -1, err
			}
		} else {
			p.pushb(false)
			p.sys(bytecode.NativeSetWidescreen)
			p.sys(bytecode.NativeEndGameSpeed)
			p.sys(bytecode.NativeEndDialogue)
			p.sys(bytecode.NativeEndCameraControl)
			p.op("BRKEXCEPT")
			breaks = append(breaks, p.jmp(-1))
		}
		p.patch(skip)
		p.collapse(hstart, "EXCEPTION")
	}
	p.op("ITEREXCEPT")
	for _, ip := range breaks {
		p.patch(ip)
	}
	return p.collapse(start, "EXCEPTIONS"), nil
}

func (p *parser) waitStatement() (int, error) {
	start := p.pos()
	if _, err := p.accept("wait"); err != nil {
		return -1, err
	}
	if p.is(p.peek(), "until") {
		p.next()
	}
	top := p.ip()
	if _, err := p.condition(true); err != nil {
		return -1, err
	}
	p.jz(top)
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	return p.collapse(start, "WAIT_STATEMENT"), nil
}

// ---------------------------------------------------------------------------
// Simple statements
// ---------------------------------------------------------------------------

func (p *parser) runStatement() (int, error) {
	start := p.pos()
	if _, err := p.accept("run"); err != nil {
		return -1, err
	}
	background := false
	if p.is(p.peek(), "background") {
		p.next()
		background = true
	}
	if _, err := p.accept("script"); err != nil {
		return -1, err
	}
	name, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return -1, err
	}
	argc := 0
	if p.is(p.peek(), "(") {
		if argc, err = p.parameters(); err != nil {
			return -1, err
		}
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	p.call(name, argc, background)
	return p.collapse(start, "RUN_STATEMENT"), nil
}

// parameters parses a parenthesized argument list and returns its length.
func (p *parser) parameters() (int, error) {
	start := p.pos()
	if _, err := p.accept("("); err != nil {
		return 0, err
	}
	argc := 0
	for !p.is(p.peek(), ")") {
		if argc > 0 {
			if _, err := p.accept(","); err != nil {
				return 0, err
			}
		}
		if err := p.value(); err != nil {
			return 0, err
		}
		argc++
	}
	p.next()
	p.collapse(start, "PARAMETERS")
	return argc, nil
}

// Interaction modes of a say statement.
const (
	interactionNone = iota
	interactionWith
	interactionWithout
)

func (p *parser) sayStatement() (int, error) {
	start := p.pos()
	if err := p.match("say [single line]"); err != nil {
		return -1, err
	}
	native := bytecode.NativeRunText
	if p.isType(p.peek(), TokenString) {
		if err := p.str(); err != nil {
			return -1, err
		}
		native = bytecode.NativeTempText
	} else if _, err := p.constExpr(true); err != nil {
		return -1, err
	}
	mode := interactionNone
	switch i := p.peek(); {
	case p.is(i, "with"):
		mode = interactionWith
	case p.is(i, "without"):
		mode = interactionWithout
	}
	if mode != interactionNone {
		p.next()
		if _, err := p.accept("interaction"); err != nil {
			return -1, err
		}
	}
	p.pushi(mode)
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	p.sys(native)
	return p.collapse(start, "SAY_STATEMENT"), nil
}

func (p *parser) cameraStatement() (int, error) {
	start := p.pos()
	if err := p.match("set camera"); err != nil {
		return -1, err
	}
	i := p.next()
	var native int
	switch {
	case p.is(i, "position"):
		native = bytecode.NativeSetCameraPosition
	case p.is(i, "focus"):
		native = bytecode.NativeSetCameraFocus
	default:
		return -1, p.unexpected(i, "position|focus")
	}
	if err := p.match("to COORD_EXPR EOL"); err != nil {
		return -1, err
	}
	p.sys(native)
	return p.collapse(start, "CAMERA_STATEMENT"), nil
}

func (p *parser) deleteStatement() (int, error) {
	start := p.pos()
	if err := p.match("delete OBJECT [with fade] EOL"); err != nil {
		return -1, err
	}
	p.sys(bytecode.NativeObjectDelete)
	return p.collapse(start, "DELETE_STATEMENT"), nil
}

func (p *parser) challengeStatement() (int, error) {
	start := p.pos()
	if err := p.match("challenge IDENTIFIER EOL"); err != nil {
		return -1, err
	}
	return p.collapse(start, "STATEMENT"), nil
}
