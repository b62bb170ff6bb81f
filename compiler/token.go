package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Token types
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenEOL
	TokenIdentifier
	TokenNumber
	TokenString
	TokenKeyword // reserved words, operators and punctuation

	// Insignificant tokens, dropped before parsing
	TokenBlank
	TokenComment
	TokenBlockComment
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenEOL:          "EOL",
	TokenIdentifier:   "IDENTIFIER",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenKeyword:      "KEYWORD",
	TokenBlank:        "BLANK",
	TokenComment:      "COMMENT",
	TokenBlockComment: "BLOCK_COMMENT",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsImportant reports whether tokens of this type reach the parser.
func (t TokenType) IsImportant() bool {
	return t <= TokenKeyword
}

// ---------------------------------------------------------------------------
// Token
// ---------------------------------------------------------------------------

// Token represents a lexical token. Text is the raw source text; for
// strings it includes the quotes and the escape sequences.
type Token struct {
	Type   TokenType
	Text   string
	Line   int
	Column int
}

// String returns a string representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenEOF, TokenEOL:
		return t.Type.String()
	}
	return t.Text
}

// StringValue resolves the escapes of a string token and strips the quotes.
func (t Token) StringValue() string {
	s, _ := Unquote(t.Text)
	return s
}

// NumberValue parses a number token.
func (t Token) NumberValue() (float32, error) {
	f, err := strconv.ParseFloat(t.Text, 32)
	return float32(f), err
}

// IntValue parses a number token that must hold an integer.
func (t Token) IntValue() (int, error) {
	return strconv.Atoi(t.Text)
}

// Unquote resolves a quoted string literal. The supported escapes are
// \" \\ \r \n and \t.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("malformed string literal %s", raw)
	}
	body := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", raw)
		}
		switch body[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", body[i])
		}
	}
	return sb.String(), nil
}

// Quote is the inverse of Unquote.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
