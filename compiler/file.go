package compiler

import (
	"strings"

	"github.com/chazu/chlc/pkg/bytecode"
)

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// parseFile parses a whole source file.
func (p *parser) parseFile() (int, error) {
	start := p.pos()
	for {
		p.furthest = nil
		i := p.peek()
		var err error
		switch {
		case p.is(i, "challenge"):
			err = p.challengeDecl()
		case p.is(i, "global"):
			err = p.globalDecl()
		case p.is(i, "define"):
			err = p.defineDecl()
		case p.is(i, "run"):
			err = p.autorun()
		case p.is(i, "source"):
			err = p.sourceDecl()
		case p.is(i, "begin"):
			_, err = p.script()
		default:
			if _, err := p.acceptType(TokenEOF); err != nil {
				return -1, err
			}
			return p.collapse(start, "FILE"), nil
		}
		if err != nil {
			return -1, err
		}
	}
}

func (p *parser) challengeDecl() error {
	start := p.pos()
	if err := p.match("challenge"); err != nil {
		return err
	}
	i, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return err
	}
	name := p.text(i)
	if id, ok := p.lookupConstant("CHALLENGE_" + name); !ok || id == -1 {
		log.Noticef("%s: challenge %s has no id", p.posOf(i), name)
	}
	p.collapse(start, "FILE_STATEMENT")
	return nil
}

func (p *parser) globalDecl() error {
	start := p.pos()
	if _, err := p.accept("global"); err != nil {
		return err
	}
	if p.is(p.peek(), "constant") {
		p.next()
		name, err := p.acceptType(TokenIdentifier)
		if err != nil {
			return err
		}
		if _, err := p.accept("="); err != nil {
			return err
		}
		v, err := p.constant(p.next())
		if err != nil {
			return err
		}
		if _, err := p.acceptType(TokenEOL); err != nil {
			return err
		}
		p.c.DefineConstant(p.text(name), v, p.posOf(name).String())
		p.collapse(start, "GLOBAL_DECL")
		return nil
	}
	name, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.unit.DeclareGlobal(p.posOf(name), p.text(name)); err != nil {
		return err
	}
	if p.is(p.peek(), "=") {
		p.next()
		sign := float32(1)
		if p.is(p.peek(), "-") {
			p.next()
			sign = -1
		}
		i, err := p.acceptType(TokenNumber)
		if err != nil {
			return err
		}
		f, err := p.number(i)
		if err != nil {
			return err
		}
		p.unit.InitGlobal(p.text(name), sign*f)
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return err
	}
	p.collapse(start, "GLOBAL_DECL")
	return nil
}

func (p *parser) defineDecl() error {
	start := p.pos()
	if _, err := p.accept("define"); err != nil {
		return err
	}
	typ, err := p.scriptType()
	if err != nil {
		return err
	}
	name, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return err
	}
	var params []string
	if p.is(p.peek(), "(") {
		if params, err = p.args(); err != nil {
			return err
		}
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return err
	}
	if err := p.c.define(p.posOf(name), p.text(name), typ, len(params)); err != nil {
		return err
	}
	p.collapse(start, "FILE_STATEMENT")
	return nil
}

func (p *parser) autorun() error {
	start := p.pos()
	if err := p.match("run script"); err != nil {
		return err
	}
	name, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return err
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return err
	}
	if err := p.unit.AddAutorun(p.posOf(name), p.text(name)); err != nil {
		return err
	}
	p.collapse(start, "AUTORUN")
	return nil
}

func (p *parser) sourceDecl() error {
	start := p.pos()
	if _, err := p.accept("source"); err != nil {
		return err
	}
	i, err := p.acceptType(TokenString)
	if err != nil {
		return err
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return err
	}
	p.source = p.node(i).Token.StringValue()
	p.collapse(start, "FILE_STATEMENT")
	return nil
}

// scriptType parses one of the script type keywords, which all end with
// the word script.
func (p *parser) scriptType() (bytecode.ScriptType, error) {
	start := p.pos()
	var words []string
	for len(words) < 3 {
		i := p.next()
		if !p.isType(i, TokenKeyword) {
			return 0, p.unexpected(i, "SCRIPT_TYPE")
		}
		words = append(words, p.text(i))
		if p.is(i, "script") {
			break
		}
	}
	kw := strings.Join(words, " ")
	typ, ok := bytecode.ParseScriptType(kw)
	if !ok {
		return 0, p.errorf(p.s.peek(-1), "Unknown script type: %s", kw)
	}
	p.collapse(start, "SCRIPT_TYPE")
	return typ, nil
}

// args parses a parenthesized list of parameter names.
func (p *parser) args() ([]string, error) {
	if _, err := p.accept("("); err != nil {
		return nil, err
	}
	var names []string
	if !p.is(p.peek(), ")") {
		start := p.pos()
		for {
			i, err := p.acceptType(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			names = append(names, p.text(i))
			if !p.is(p.peek(), ",") {
				break
			}
			p.next()
		}
		p.collapse(start, "ARGS")
	}
	if _, err := p.accept(")"); err != nil {
		return nil, err
	}
	return names, nil
}

// ---------------------------------------------------------------------------
// Scripts
// ---------------------------------------------------------------------------

// script parses a script definition. The generated code is laid out as
//
//	EXCEPT handler
//	POPF param...        parameters, in declaration order
//	...                  local initialisers
//	FREE
//	...                  statements
//	ENDEXCEPT
//	JMP end
//	handler: ...         when and until handlers
//	ITEREXCEPT
//	end: END
func (p *parser) script() (int, error) {
	start := p.pos()
	p.localConst = make(map[string]int)
	if _, err := p.accept("begin"); err != nil {
		return -1, err
	}
	typ, err := p.scriptType()
	if err != nil {
		return -1, err
	}
	name, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return -1, err
	}
	var params []string
	if p.is(p.peek(), "(") {
		if params, err = p.args(); err != nil {
			return -1, err
		}
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	pos := p.posOf(name)
	if err := p.c.define(pos, p.text(name), typ, len(params)); err != nil {
		return -1, err
	}
	if _, err := p.unit.BeginScript(pos, p.text(name), typ, params, p.source); err != nil {
		return -1, err
	}
	defer p.unit.EndScript()

	handler := p.except()
	for _, param := range params {
		instr := bytecode.MustMnemonic("POPF")
		instr.Flags = bytecode.FlagRef
		ip := p.emit(instr)
		p.unit.RefVar(pos, ip, param)
	}
	if err := p.locals(); err != nil {
		return -1, err
	}
	if err := p.match("start EOL"); err != nil {
		return -1, err
	}
	p.op("FREE")

	if _, err := p.statements(); err != nil {
		return -1, err
	}
	p.op("ENDEXCEPT")
	end := p.jmp(-1)
	p.patch(handler)
	if _, err := p.exceptions(); err != nil {
		return -1, err
	}
	p.patch(end)

	if !p.checkAhead("end script") {
		return -1, p.errorf(p.peek(), "Unrecognized statement")
	}
	p.next()
	p.next()
	p.op("END")
	closing, err := p.acceptType(TokenIdentifier)
	if err != nil {
		return -1, err
	}
	if p.text(closing) != p.text(name) {
		return -1, p.semanticf(closing, "The script name at \"end script\" must match the one at \"begin script\"")
	}
	if _, err := p.acceptType(TokenEOL); err != nil {
		return -1, err
	}
	return p.collapse(start, "SCRIPT"), nil
}

// locals parses the local variable and constant declarations between the
// script header and start.
func (p *parser) locals() error {
	for {
		start := p.pos()
		i := p.peek()
		switch {
		case p.is(i, "constant"):
			p.next()
			name, err := p.acceptType(TokenIdentifier)
			if err != nil {
				return err
			}
			if _, err := p.accept("="); err != nil {
				return err
			}
			v, err := p.constant(p.next())
			if err != nil {
				return err
			}
			if _, err := p.acceptType(TokenEOL); err != nil {
				return err
			}
			if _, ok := p.localConst[p.text(name)]; ok {
				return p.semanticf(name, "Duplicate constant: %s", p.text(name))
			}
			p.localConst[p.text(name)] = v
		case p.isType(i, TokenIdentifier):
			p.next()
			if _, err := p.accept("="); err != nil {
				return err
			}
			if err := p.value(); err != nil {
				return err
			}
			if _, err := p.acceptType(TokenEOL); err != nil {
				return err
			}
			if err := p.unit.AddLocal(p.posOf(i), p.text(i)); err != nil {
				return err
			}
			p.popVar(i)
		default:
			return nil
		}
		p.collapse(start, "LOCAL")
	}
}
