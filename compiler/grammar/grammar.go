// Package grammar loads the declarative description of the challenge
// language into a registry of named rules.
//
// The registry is not used to drive parsing. The hand-written parser uses
// it to tell keywords from identifiers and to validate the rule names it
// gives to collapsed parse nodes.
package grammar

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/chazu/chlc/pkg/diag"
)

//go:embed syntax.txt
var defaultSyntax string

// TerminalType tells which kind of token a terminal symbol matches.
type TerminalType int

const (
	NonTerminal TerminalType = iota
	EOF
	EOL
	Identifier
	Number
	String
	Keyword
)

var terminalNames = [...]string{"NON_TERMINAL", "EOF", "EOL", "IDENTIFIER", "NUMBER", "STRING", "KEYWORD"}

func (t TerminalType) String() string {
	if int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return fmt.Sprintf("TerminalType(%d)", int(t))
}

// Symbol is a grammar rule. A symbol is a terminal, a sequence
// (Expression) or an alternation (Alternatives).
type Symbol struct {
	Name         string
	Terminal     TerminalType
	Implicit     bool // created from an inline [..], {..} or a | b
	Root         bool // defined by a top-level NAME: line
	Optional     bool
	Repeat       bool
	Expression   []*Symbol
	Alternatives []*Symbol
}

// IsTerminal reports whether the symbol matches a single token.
func (s *Symbol) IsTerminal() bool {
	return s.Terminal != NonTerminal
}

// String renders the symbol definition.
func (s *Symbol) String() string {
	switch {
	case s.Alternatives != nil:
		names := make([]string, len(s.Alternatives))
		for i, alt := range s.Alternatives {
			names[i] = alt.Name
		}
		return s.Name + ": {" + strings.Join(names, " | ") + "}"
	case s.Expression != nil:
		names := make([]string, len(s.Expression))
		for i, e := range s.Expression {
			names[i] = e.Name
		}
		return s.Name + ": " + strings.Join(names, " ")
	default:
		return s.Name + ": " + s.Terminal.String()
	}
}

// Grammar is a loaded rule registry. It is read-only after loading and
// safe for concurrent use.
type Grammar struct {
	symbols  map[string]*Symbol
	order    []*Symbol
	keywords map[string]bool

	EOF        *Symbol
	EOL        *Symbol
	Identifier *Symbol
	Number     *Symbol
	String     *Symbol
}

var (
	defaultOnce    sync.Once
	defaultGrammar *Grammar
)

// Default returns the grammar of the challenge language. It is loaded
// once; a broken embedded description is a build defect and panics.
func Default() *Grammar {
	defaultOnce.Do(func() {
		g, err := Load("syntax.txt", strings.NewReader(defaultSyntax))
		if err != nil {
			panic(err)
		}
		defaultGrammar = g
	})
	return defaultGrammar
}

// Symbol returns a rule by name.
func (g *Grammar) Symbol(name string) (*Symbol, bool) {
	s, ok := g.symbols[name]
	return s, ok
}

// MustSymbol returns a rule by name and panics if it does not exist.
func (g *Grammar) MustSymbol(name string) *Symbol {
	s, ok := g.symbols[name]
	if !ok {
		panic("grammar: undefined symbol " + name)
	}
	return s
}

// IsKeyword reports whether s is a reserved word or operator.
func (g *Grammar) IsKeyword(s string) bool {
	return g.keywords[s]
}

// Keywords returns all keywords in sorted order.
func (g *Grammar) Keywords() []string {
	out := make([]string, 0, len(g.keywords))
	for kw := range g.keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Roots returns the explicitly defined rules in definition order.
func (g *Grammar) Roots() []*Symbol {
	var out []*Symbol
	for _, s := range g.order {
		if s.Root {
			out = append(out, s)
		}
	}
	return out
}

// ----------------------------------------------------------------------------
// Loading
// ----------------------------------------------------------------------------

type loader struct {
	g    *Grammar
	file string
	line int
}

// Load reads a grammar description.
func Load(name string, r io.Reader) (*Grammar, error) {
	g := &Grammar{
		symbols:  make(map[string]*Symbol),
		keywords: make(map[string]bool),
	}
	l := &loader{g: g, file: name}
	g.EOF = l.add("EOF", EOF, true, true)
	g.EOL = l.add("EOL", EOL, true, true)
	g.Identifier = l.add("IDENTIFIER", Identifier, true, true)
	g.Number = l.add("NUMBER", Number, true, true)
	g.String = l.add("STRING", String, true, true)

	if err := l.read(r); err != nil {
		return nil, err
	}
	if err := l.finish(); err != nil {
		return nil, err
	}
	return g, nil
}

func (l *loader) errorf(format string, args ...interface{}) error {
	return diag.Errorf(diag.Syntax, diag.Pos{File: l.file, Line: l.line}, format, args...)
}

func (l *loader) add(name string, t TerminalType, implicit, root bool) *Symbol {
	s := &Symbol{Name: name, Terminal: t, Implicit: implicit, Root: root}
	l.g.symbols[name] = s
	l.g.order = append(l.g.order, s)
	return s
}

// symbol returns the named symbol, creating a keyword for lower-case names
// and an undefined rule otherwise.
func (l *loader) symbol(name string) *Symbol {
	if s, ok := l.g.symbols[name]; ok {
		return s
	}
	if name == strings.ToLower(name) {
		return l.add(name, Keyword, true, false)
	}
	return l.add(name, NonTerminal, true, false)
}

func (l *loader) read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	var (
		inBlock      bool
		block        *Symbol
		alternatives []*Symbol
	)
	for sc.Scan() {
		l.line++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if inBlock {
			if line == "}" {
				block.Alternatives = alternatives
				block.Expression = nil
				inBlock, block, alternatives = false, nil, nil
				continue
			}
			alt, err := l.expression(line, line)
			if err != nil {
				return err
			}
			alternatives = append(alternatives, alt)
			continue
		}

		name, expr, ok := strings.Cut(line, ":")
		if !ok {
			return l.errorf("bad syntax")
		}
		name = strings.TrimSpace(name)
		expr = strings.TrimSpace(expr)
		if name == "" {
			return l.errorf("missing rule name")
		}
		if expr == "{" {
			block = l.define(name)
			inBlock = true
			continue
		}
		// the expression continues up to the first empty line
		for sc.Scan() {
			l.line++
			next := strings.TrimSpace(sc.Text())
			if next == "" {
				break
			}
			expr += " " + next
		}
		s, err := l.expression(name, expr)
		if err != nil {
			return err
		}
		s.Terminal, s.Implicit, s.Root = NonTerminal, false, true
		if len(s.Expression) == 1 && s.Expression[0].Optional {
			s.Optional = true
		}
	}
	if err := sc.Err(); err != nil {
		return diag.Wrap(diag.IO, diag.Pos{File: l.file}, err)
	}
	if inBlock {
		return l.errorf("unterminated block for %s", block.Name)
	}
	return nil
}

func (l *loader) define(name string) *Symbol {
	s, ok := l.g.symbols[name]
	if !ok {
		return l.add(name, NonTerminal, false, true)
	}
	s.Terminal, s.Implicit, s.Root = NonTerminal, false, true
	return s
}

func (l *loader) expression(name, expr string) (*Symbol, error) {
	tokens := splitExpression(expr)
	return l.sequence(name, tokens)
}

// sequence builds the symbol for tokens. An empty name makes an implicit
// symbol named after its tokens.
func (l *loader) sequence(name string, tokens []string) (*Symbol, error) {
	implicit := name == ""
	if implicit {
		name = strings.Join(tokens, " ")
	}
	s, ok := l.g.symbols[name]
	if !ok {
		s = l.add(name, NonTerminal, implicit, false)
	}

	var seq []*Symbol
	depth, nestStart := 0, -1
	escape := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if escape {
			if depth == 0 {
				seq = append(seq, l.symbol(tok))
			}
			escape = false
			continue
		}
		switch tok {
		case "[", "{":
			if depth == 0 {
				nestStart = i + 1
			}
			depth++
		case "]", "}":
			depth--
			if depth < 0 {
				return nil, l.errorf("unbalanced %q in %s", tok, name)
			}
			if depth == 0 {
				sub, err := l.nested(tok == "}", tokens[nestStart:i])
				if err != nil {
					return nil, err
				}
				seq = append(seq, sub)
			}
		default:
			if depth > 0 {
				if tok == "\\" {
					escape = true
				}
				continue
			}
			if tok == "\\" {
				escape = true
				continue
			}
			if i+1 < len(tokens) && tokens[i+1] == "|" {
				alt, last := l.alternation(tokens, i)
				seq = append(seq, alt)
				i = last
				continue
			}
			seq = append(seq, l.symbol(tok))
		}
	}
	if depth != 0 {
		return nil, l.errorf("unbalanced brackets in %s", name)
	}
	if len(seq) > 1 || len(seq) == 1 && seq[0] != s {
		s.Expression = seq
	}
	return s, nil
}

// nested builds the implicit optional symbol for [inner] or {inner}.
func (l *loader) nested(repeat bool, inner []string) (*Symbol, error) {
	name := "[" + strings.Join(inner, " ") + "]"
	if repeat {
		name = "{" + strings.Join(inner, " ") + "}"
	}
	if sub, ok := l.g.symbols[name]; ok {
		return sub, nil
	}
	sub := l.add(name, NonTerminal, true, false)
	body, err := l.sequence("", inner)
	if err != nil {
		return nil, err
	}
	sub.Expression = []*Symbol{body}
	sub.Optional = true
	sub.Repeat = repeat
	return sub, nil
}

// alternation builds the implicit symbol for a | b | c starting at tokens[i]
// and returns it with the index of its last token.
func (l *loader) alternation(tokens []string, i int) (*Symbol, int) {
	var alts []*Symbol
	last := i
	for j := i + 1; j <= len(tokens); j += 2 {
		last = j - 1
		alts = append(alts, l.symbol(tokens[last]))
		if j >= len(tokens) || tokens[j] != "|" {
			break
		}
	}
	name := strings.Join(tokens[i:last+1], "")
	s, ok := l.g.symbols[name]
	if !ok {
		s = l.add(name, NonTerminal, true, false)
		s.Alternatives = alts
	}
	return s, last
}

// finish turns undefined lower-case rules into keywords and rejects
// undefined upper-case ones.
func (l *loader) finish() error {
	for _, s := range l.g.order {
		if !s.Optional && s.Alternatives == nil && s.Expression == nil && s.Name == strings.ToLower(s.Name) {
			s.Terminal = Keyword
		}
		if s.IsTerminal() {
			if s.Terminal == Keyword {
				l.g.keywords[s.Name] = true
			}
			continue
		}
		if s.Expression == nil && s.Alternatives == nil {
			l.line = 0
			return l.errorf("non-terminal symbol %s hasn't been defined", s.Name)
		}
	}
	return nil
}

// splitExpression splits a rule body into words, single bracket
// characters and runs of other symbol characters.
func splitExpression(expr string) []string {
	var (
		tokens []string
		cur    strings.Builder
		kind   byte
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, c := range expr {
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_':
			if kind != 'w' {
				flush()
				kind = 'w'
			}
			cur.WriteRune(c)
		case strings.ContainsRune("()[]{}", c):
			flush()
			kind = ' '
			tokens = append(tokens, string(c))
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			flush()
			kind = ' '
		default:
			if kind != 's' {
				flush()
				kind = 's'
			}
			cur.WriteRune(c)
		}
	}
	flush()
	return tokens
}
