package compiler

import (
	"errors"
	"strings"

	"github.com/chazu/chlc/compiler/grammar"
	"github.com/chazu/chlc/pkg/diag"
	"github.com/chazu/chlc/pkg/link"
)

// ---------------------------------------------------------------------------
// Parser: backtracking recursive descent over the node stream
// ---------------------------------------------------------------------------

// parser compiles one source file into the unit of its Compiler. Parsing
// and code generation happen in the same pass: every parse function emits
// the instructions of what it recognizes, and a failed attempt is undone by
// rolling back both the stream and the unit to a checkpoint.
type parser struct {
	c       *Compiler
	unit    *link.Unit
	grammar *grammar.Grammar
	s       *stream

	file   string // file name used in diagnostics
	source string // source name recorded on scripts

	line, col int

	localConst map[string]int

	// furthest is the syntax error of an abandoned attempt that got
	// furthest into the input. It replaces less precise errors.
	furthest *diag.Error
}

func newParser(c *Compiler, file string, tokens []Token) *parser {
	return &parser{
		c:          c,
		unit:       c.unit,
		grammar:    c.grammar,
		s:          newStream(tokens),
		file:       file,
		source:     file,
		localConst: make(map[string]int),
	}
}

// ---------------------------------------------------------------------------
// Cursor
// ---------------------------------------------------------------------------

func (p *parser) track(i int) {
	if n := p.s.node(i); n.IsLeaf() {
		p.line = n.Token.Line
		p.col = n.Token.Column
	}
}

// next consumes one node. EOLs are only consumed by nextEOL.
func (p *parser) next() int {
	i := p.s.next()
	p.track(i)
	return i
}

func (p *parser) prev() int {
	return p.s.prev()
}

func (p *parser) peek() int {
	i := p.s.peek(0)
	p.track(i)
	return i
}

func (p *parser) peekAt(k int) int {
	i := p.s.peek(k)
	p.track(i)
	return i
}

func (p *parser) seek(pos int) {
	p.s.seek(pos)
	p.peek()
}

func (p *parser) pos() int {
	return p.s.pos()
}

func (p *parser) collapse(start int, rule string) int {
	if _, ok := p.grammar.Symbol(rule); !ok {
		panic("compiler: collapse into unknown rule " + rule)
	}
	return p.s.collapse(start, rule)
}

// checkpoint records the stream and the unit before a speculative attempt.
type checkpoint struct {
	stream streamMark
	unit   link.Mark
}

func (p *parser) checkpoint() checkpoint {
	return checkpoint{stream: p.s.mark(), unit: p.unit.Mark()}
}

func (p *parser) revert(cp checkpoint) {
	p.s.rollback(cp.stream)
	p.unit.Truncate(cp.unit)
	p.peek()
}

// attempt runs fn speculatively. A syntax error or a negative result undo
// everything fn consumed and emitted, and attempt reports no match. Other
// errors are returned as they are.
func (p *parser) attempt(fn func() (int, error)) (int, error) {
	cp := p.checkpoint()
	n, err := fn()
	if err != nil {
		if !diag.Is(err, diag.Syntax) {
			return -1, err
		}
		p.remember(err)
		p.revert(cp)
		return -1, nil
	}
	if n < 0 {
		p.revert(cp)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Node tests
// ---------------------------------------------------------------------------

func (p *parser) node(i int) *Node {
	return p.s.node(i)
}

// is reports whether node i is the keyword kw.
func (p *parser) is(i int, kw string) bool {
	n := p.s.node(i)
	return n.IsLeaf() && n.Token.Type == TokenKeyword && n.Token.Text == kw
}

// isAny reports whether node i is one of the given keywords.
func (p *parser) isAny(i int, kws ...string) bool {
	for _, kw := range kws {
		if p.is(i, kw) {
			return true
		}
	}
	return false
}

func (p *parser) isType(i int, t TokenType) bool {
	n := p.s.node(i)
	return n.IsLeaf() && n.Token.Type == t
}

func (p *parser) isRule(i int, rule string) bool {
	return p.s.node(i).Rule == rule
}

func (p *parser) text(i int) string {
	return p.s.node(i).Token.Text
}

func (p *parser) posOf(i int) diag.Pos {
	tok := p.s.node(i).Token
	return diag.Pos{File: p.file, Line: tok.Line, Column: tok.Column}
}

func (p *parser) here() diag.Pos {
	return diag.Pos{File: p.file, Line: p.line, Column: p.col}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func (p *parser) errorf(i int, format string, args ...interface{}) error {
	return diag.Errorf(diag.Syntax, p.posOf(i), format, args...)
}

func (p *parser) semanticf(i int, format string, args ...interface{}) error {
	return diag.Errorf(diag.Semantic, p.posOf(i), format, args...)
}

func (p *parser) notImplemented(i int, what string) error {
	return diag.Errorf(diag.NotImplemented, p.posOf(i), "Statement not implemented: %s", what)
}

// unexpected reports node i where expected was required. The error of an
// abandoned attempt that went further is preferred.
func (p *parser) unexpected(i int, expected string) error {
	err := diag.Errorf(diag.Syntax, p.posOf(i), "Unexpected token: %s. Expected: %s", p.node(i), expected)
	if f := p.furthest; f != nil && after(f.Pos, err.Pos) {
		return f
	}
	return err
}

func (p *parser) remember(err error) {
	var de *diag.Error
	if errors.As(err, &de) && (p.furthest == nil || after(de.Pos, p.furthest.Pos)) {
		p.furthest = de
	}
}

func after(a, b diag.Pos) bool {
	if a.Line != b.Line {
		return a.Line > b.Line
	}
	return a.Column > b.Column
}

// ---------------------------------------------------------------------------
// Accepting tokens
// ---------------------------------------------------------------------------

// accept consumes the keyword kw.
func (p *parser) accept(kw string) (int, error) {
	i := p.next()
	if !p.is(i, kw) {
		return -1, p.unexpected(i, kw)
	}
	return i, nil
}

// acceptType consumes a token of one of the given types.
func (p *parser) acceptType(types ...TokenType) (int, error) {
	i := p.next()
	for _, t := range types {
		if p.isType(i, t) {
			return i, nil
		}
	}
	names := make([]string, len(types))
	for k, t := range types {
		names[k] = t.String()
	}
	return -1, p.unexpected(i, strings.Join(names, "|"))
}

// checkAhead reports whether the next nodes match pattern without consuming
// them. ANY matches any node; IDENTIFIER, NUMBER and STRING match the token
// type; other words match keywords.
func (p *parser) checkAhead(pattern string) bool {
	for k, sym := range strings.Fields(pattern) {
		i := p.s.peek(k)
		switch sym {
		case "ANY":
		case "IDENTIFIER":
			if !p.isType(i, TokenIdentifier) {
				return false
			}
		case "NUMBER":
			if !p.isType(i, TokenNumber) {
				return false
			}
		case "STRING":
			if !p.isType(i, TokenString) {
				return false
			}
		default:
			if !p.is(i, sym) {
				return false
			}
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Pattern matching
// ---------------------------------------------------------------------------

// match parses a fixed sequence written in grammar notation and emits the
// code of each element. Supported elements are keywords, a|b keyword
// alternations, the token classes IDENTIFIER NUMBER STRING EOL, VARIABLE
// and CONSTANT, the rules EXPRESSION CONDITION OBJECT CONST_EXPR COORD_EXPR,
// and optional groups [..].
//
// An optional group of keywords pushes a boolean telling whether it was
// present. An optional rule pushes a neutral value of its type when absent.
func (p *parser) match(pattern string) error {
	for _, elem := range splitPattern(pattern) {
		if err := p.matchElement(elem); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) matchElement(elem string) error {
	if strings.HasPrefix(elem, "[") && strings.HasSuffix(elem, "]") {
		return p.matchOptional(elem[1 : len(elem)-1])
	}
	var err error
	switch elem {
	case "EXPRESSION":
		_, err = p.expression(true)
	case "CONDITION":
		_, err = p.condition(true)
	case "OBJECT":
		_, err = p.object(true)
	case "CONST_EXPR":
		_, err = p.constExpr(true)
	case "COORD_EXPR":
		_, err = p.coordExpr(true)
	case "IDENTIFIER":
		_, err = p.acceptType(TokenIdentifier)
	case "NUMBER":
		_, err = p.acceptType(TokenNumber)
	case "EOL":
		_, err = p.acceptType(TokenEOL)
	case "VARIABLE":
		var i int
		if i, err = p.acceptType(TokenIdentifier); err == nil {
			p.pushVar(i)
		}
	case "CONSTANT":
		var v int
		if v, err = p.constant(p.next()); err == nil {
			p.pushi(v)
		}
	case "STRING":
		err = p.str()
	default:
		if strings.Contains(elem, "|") {
			i := p.next()
			if !p.isAny(i, strings.Split(elem, "|")...) {
				err = p.unexpected(i, elem)
			}
		} else {
			_, err = p.accept(elem)
		}
	}
	return err
}

func (p *parser) matchOptional(inner string) error {
	elems := splitPattern(inner)
	if len(elems) == 1 {
		switch elems[0] {
		case "EXPRESSION":
			n, err := p.expression(false)
			if err == nil && n < 0 {
				p.pushf(0)
			}
			return err
		case "CONST_EXPR":
			n, err := p.constExpr(false)
			if err == nil && n < 0 {
				p.pushi(0)
			}
			return err
		case "OBJECT":
			n, err := p.object(false)
			if err == nil && n < 0 {
				p.pusho(0)
			}
			return err
		case "COORD_EXPR":
			n, err := p.coordExpr(false)
			if err != nil {
				return err
			}
			if n < 0 {
				p.pushc(0)
				p.pushc(0)
				p.pushc(0)
			}
			p.pushb(n >= 0)
			return nil
		}
	}
	// keywords only
	first := strings.Split(elems[0], "|")
	if !p.isAny(p.peek(), first...) {
		p.pushb(false)
		return nil
	}
	p.next()
	for _, elem := range elems[1:] {
		if err := p.matchElement(elem); err != nil {
			return err
		}
	}
	p.pushb(true)
	return nil
}

// splitPattern splits a pattern into elements, keeping [..] groups whole.
func splitPattern(pattern string) []string {
	var (
		out   []string
		group []string
	)
	for _, f := range strings.Fields(pattern) {
		switch {
		case group != nil:
			group = append(group, f)
			if strings.HasSuffix(f, "]") {
				out = append(out, strings.Join(group, " "))
				group = nil
			}
		case strings.HasPrefix(f, "[") && !strings.HasSuffix(f, "]"):
			group = []string{f}
		default:
			out = append(out, f)
		}
	}
	if group != nil {
		out = append(out, strings.Join(group, " "))
	}
	return out
}
