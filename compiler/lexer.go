package compiler

import (
	"strings"
	"unicode"

	"github.com/chazu/chlc/pkg/diag"
)

// ---------------------------------------------------------------------------
// Lexer: state machine over source characters
// ---------------------------------------------------------------------------

// DefaultTabWidth is the column width of a tab stop.
const DefaultTabWidth = 4

const eof rune = -1

type lexState int

const (
	stateDefault lexState = iota
	stateIdentifier
	stateNumber
	stateString
	stateComment
	stateBlockComment
	stateBlank
)

var lexStateNames = [...]string{"DEFAULT", "IDENTIFIER", "NUMBER", "STRING", "COMMENT", "BLOCK_COMMENT", "BLANK"}

// KeywordSet tells the lexer which identifiers are reserved words.
type KeywordSet interface {
	IsKeyword(s string) bool
}

// Lexer tokenizes challenge source code. Every character of the input ends
// up in some token, including blanks and comments.
type Lexer struct {
	file     string
	input    []rune
	pos      int
	line     int
	col      int
	tabWidth int
	keywords KeywordSet

	state   lexState
	tok     Token
	buf     strings.Builder
	depth   int // block comment nesting
	numDots int
	escape  bool
	tokens  []Token
}

// NewLexer creates a lexer for input. file is only used in diagnostics.
func NewLexer(file, input string, keywords KeywordSet, tabWidth int) *Lexer {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Lexer{
		file:     file,
		input:    []rune(input),
		line:     1,
		tabWidth: tabWidth,
		keywords: keywords,
	}
}

func (l *Lexer) read() rune {
	var c rune = eof
	if l.pos < len(l.input) {
		c = l.input[l.pos]
	}
	l.pos++
	l.col++
	return c
}

func (l *Lexer) unread() {
	l.pos--
	l.col--
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return diag.Errorf(diag.Lexical, diag.Pos{File: l.file, Line: l.line, Column: l.col}, format, args...)
}

func (l *Lexer) emit(typ TokenType, text string) {
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Line: l.line, Column: l.col})
}

func (l *Lexer) begin(state lexState, typ TokenType, c rune) {
	l.state = state
	l.tok = Token{Type: typ, Line: l.line, Column: l.col}
	l.buf.Reset()
	l.buf.WriteRune(c)
}

func (l *Lexer) finish() {
	l.tok.Text = l.buf.String()
	l.tokens = append(l.tokens, l.tok)
	l.buf.Reset()
	l.state = stateDefault
}

func (l *Lexer) tab() {
	l.col += l.tabWidth - (l.col-1)%l.tabWidth - 1
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// Tokenize runs the lexer to the end of input.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		c := l.read()
		var err error
		switch l.state {
		case stateDefault:
			err = l.lexDefault(c)
		case stateComment:
			l.lexComment(c)
		case stateBlockComment:
			l.lexBlockComment(c)
		case stateIdentifier:
			l.lexIdentifier(c)
		case stateNumber:
			err = l.lexNumber(c)
		case stateString:
			err = l.lexString(c)
		case stateBlank:
			l.lexBlank(c)
		}
		if err != nil {
			return nil, err
		}
		if c == eof {
			break
		}
	}
	switch l.state {
	case stateDefault:
	case stateBlank, stateComment:
		l.finish()
	default:
		return nil, l.errorf("Unexpected end of file while parsing %s (started at %d:%d)",
			lexStateNames[l.state], l.tok.Line, l.tok.Column)
	}
	return l.tokens, nil
}

// twoChar emits c followed by the next character when it is one of
// seconds, or c alone otherwise.
func (l *Lexer) twoChar(c rune, seconds string) {
	line, col := l.line, l.col
	c2 := l.read()
	text := string(c)
	if c2 != eof && strings.ContainsRune(seconds, c2) {
		text += string(c2)
	} else {
		l.unread()
	}
	l.tokens = append(l.tokens, Token{Type: TokenKeyword, Text: text, Line: line, Column: col})
}

func (l *Lexer) lexDefault(c rune) error {
	switch {
	case c == eof, c == '\r':
	case c == '\n':
		l.emit(TokenEOL, "\n")
		l.line++
		l.col = 0
	case c == '"':
		l.begin(stateString, TokenString, c)
		l.escape = false
	case c == '+':
		l.twoChar(c, "+=")
	case c == '-':
		l.twoChar(c, "-=")
	case c == '*', c == '%', c == '=', c == '<', c == '>':
		l.twoChar(c, "=")
	case c == '/':
		c2 := l.read()
		switch c2 {
		case '/':
			l.begin(stateComment, TokenComment, c)
			l.tok.Column--
			l.buf.WriteRune(c2)
		case '*':
			l.begin(stateBlockComment, TokenBlockComment, c)
			l.tok.Column--
			l.buf.WriteRune(c2)
			l.depth = 1
		default:
			l.unread()
			l.twoChar(c, "=")
		}
	case c == '!':
		if c2 := l.read(); c2 != '=' {
			l.unread()
			return l.errorf("Expected '=' after '!'")
		}
		l.tokens = append(l.tokens, Token{Type: TokenKeyword, Text: "!=", Line: l.line, Column: l.col - 1})
	case strings.ContainsRune(",()[]", c):
		l.emit(TokenKeyword, string(c))
	case isIdentStart(c):
		l.begin(stateIdentifier, TokenIdentifier, c)
	case isDigit(c):
		l.begin(stateNumber, TokenNumber, c)
		l.numDots = 0
	case c == ' ':
		l.begin(stateBlank, TokenBlank, c)
	case c == '\t':
		l.begin(stateBlank, TokenBlank, c)
		l.tab()
	default:
		return l.errorf("Unexpected '%c' character", c)
	}
	return nil
}

func (l *Lexer) lexComment(c rune) {
	switch c {
	case '\n':
		l.finish()
		l.emit(TokenEOL, "\n")
		l.line++
		l.col = 0
	case '\r', eof:
	default:
		l.buf.WriteRune(c)
	}
}

func (l *Lexer) lexBlockComment(c rune) {
	switch c {
	case eof:
	case '\n':
		l.buf.WriteRune(c)
		l.line++
		l.col = 0
	case '/':
		l.buf.WriteRune(c)
		if c2 := l.read(); c2 == '*' {
			l.buf.WriteRune(c2)
			l.depth++
		} else {
			l.unread()
		}
	case '*':
		l.buf.WriteRune(c)
		if c2 := l.read(); c2 == '/' {
			l.buf.WriteRune(c2)
			l.depth--
			if l.depth == 0 {
				l.finish()
			}
		} else {
			l.unread()
		}
	default:
		l.buf.WriteRune(c)
	}
}

func (l *Lexer) lexIdentifier(c rune) {
	if c != eof && isIdentPart(c) {
		l.buf.WriteRune(c)
		return
	}
	l.unread()
	l.finishWord()
}

// finishWord closes an identifier, turning it into a keyword when the
// grammar reserves it.
func (l *Lexer) finishWord() {
	l.finish()
	last := &l.tokens[len(l.tokens)-1]
	if l.keywords != nil && l.keywords.IsKeyword(last.Text) {
		last.Type = TokenKeyword
	}
}

func (l *Lexer) lexNumber(c rune) error {
	switch {
	case c == '.':
		l.numDots++
		if l.numDots > 1 {
			return l.errorf("Invalid number")
		}
		l.buf.WriteRune(c)
	case isDigit(c):
		l.buf.WriteRune(c)
	case c != eof && isIdentPart(c):
		// words starting with digits, such as "3d"
		l.tok.Type = TokenIdentifier
		l.state = stateIdentifier
		l.buf.WriteRune(c)
	default:
		l.unread()
		l.finish()
	}
	return nil
}

func (l *Lexer) lexString(c rune) error {
	switch {
	case c == eof:
	case l.escape:
		if !strings.ContainsRune(`"\rnt`, c) {
			return l.errorf("Invalid escape sequence '\\%c'", c)
		}
		l.buf.WriteRune(c)
		l.escape = false
	case c == '\\':
		l.buf.WriteRune(c)
		l.escape = true
	case c == '\n':
		l.unread()
		return l.errorf("Unterminated string (started at %d:%d)", l.tok.Line, l.tok.Column)
	case c == '"':
		l.buf.WriteRune(c)
		l.finish()
	default:
		l.buf.WriteRune(c)
	}
	return nil
}

func (l *Lexer) lexBlank(c rune) {
	switch c {
	case ' ':
		l.buf.WriteRune(c)
	case '\t':
		l.buf.WriteRune(c)
		l.tab()
	default:
		l.unread()
		l.finish()
	}
}

// Tokenize lexes input with the given keyword set and tab width.
func Tokenize(file, input string, keywords KeywordSet, tabWidth int) ([]Token, error) {
	return NewLexer(file, input, keywords, tabWidth).Tokenize()
}

// ImportantTokens drops blanks and comments, collapses runs of EOL, makes
// sure the last line is terminated and appends an EOF token.
func ImportantTokens(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+2)
	prev := TokenEOL
	line, col := 1, 1
	for _, t := range tokens {
		line, col = t.Line, t.Column
		if !t.Type.IsImportant() {
			continue
		}
		if t.Type == TokenEOL && prev == TokenEOL {
			continue
		}
		out = append(out, t)
		prev = t.Type
	}
	if prev != TokenEOL {
		out = append(out, Token{Type: TokenEOL, Text: "\n", Line: line, Column: col + 1})
	}
	return append(out, Token{Type: TokenEOF, Line: line, Column: col + 1})
}
