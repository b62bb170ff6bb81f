package compiler

import (
	"strings"
	"testing"

	"github.com/chazu/chlc/compiler/grammar"
	"github.com/chazu/chlc/pkg/diag"
)

type keywordSet map[string]bool

func (k keywordSet) IsKeyword(s string) bool { return k[s] }

func important(t *testing.T, input string) []Token {
	t.Helper()
	toks, err := Tokenize("test.txt", input, grammar.Default(), 4)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", input, err)
	}
	return ImportantTokens(toks)
}

func TestLexerOperators(t *testing.T) {
	input := `a += 1 ++ -- -= *= /= %= == != <= >= < > = + - * / % , ( ) [ ]`
	toks := important(t, input)
	want := []string{"a", "+=", "1", "++", "--", "-=", "*=", "/=", "%=", "==", "!=", "<=", ">=",
		"<", ">", "=", "+", "-", "*", "/", "%", ",", "(", ")", "[", "]"}
	if len(toks) != len(want)+2 {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want)+2, toks)
	}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token[%d] text = %q, want %q", i, toks[i].Text, w)
		}
		if i > 0 && toks[i].Type != TokenKeyword && toks[i].Type != TokenNumber {
			t.Errorf("token[%d] type = %v, want KEYWORD", i, toks[i].Type)
		}
	}
	if toks[len(toks)-2].Type != TokenEOL || toks[len(toks)-1].Type != TokenEOF {
		t.Errorf("stream should end with EOL EOF, got %v %v", toks[len(toks)-2].Type, toks[len(toks)-1].Type)
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	toks := important(t, "begin script Main\ncounter = 3d\n")
	tests := []struct {
		typ  TokenType
		text string
	}{
		{TokenKeyword, "begin"},
		{TokenKeyword, "script"},
		{TokenIdentifier, "Main"},
		{TokenEOL, "\n"},
		{TokenIdentifier, "counter"},
		{TokenKeyword, "="},
		{TokenIdentifier, "3d"},
		{TokenEOL, "\n"},
		{TokenEOF, ""},
	}
	if len(toks) != len(tests) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tests), toks)
	}
	for i, tt := range tests {
		if toks[i].Type != tt.typ {
			t.Errorf("token[%d] type = %v, want %v", i, toks[i].Type, tt.typ)
		}
		if toks[i].Text != tt.text {
			t.Errorf("token[%d] text = %q, want %q", i, toks[i].Text, tt.text)
		}
	}
}

func TestLexerDigitLeadingKeyword(t *testing.T) {
	toks, err := Tokenize("t", "3d", keywordSet{"3d": true}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Type != TokenKeyword {
		t.Errorf("3d type = %v, want KEYWORD", toks[0].Type)
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float32
	}{
		{"42", 42},
		{"0", 0},
		{"3.25", 3.25},
		{"10.", 10},
	}
	for _, tt := range tests {
		toks := important(t, tt.input)
		if toks[0].Type != TokenNumber {
			t.Errorf("Lexer(%q): type = %v, want NUMBER", tt.input, toks[0].Type)
			continue
		}
		v, err := toks[0].NumberValue()
		if err != nil || v != tt.want {
			t.Errorf("Lexer(%q): value = %v, %v, want %v", tt.input, v, err, tt.want)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	toks, err := Tokenize("t", "a b\n\tc\nab\td", nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range toks {
		if tok.Type == TokenIdentifier {
			got = append(got, tok.Text)
			switch tok.Text {
			case "a":
				checkPos(t, tok, 1, 1)
			case "b":
				checkPos(t, tok, 1, 3)
			case "c":
				checkPos(t, tok, 2, 5)
			case "ab":
				checkPos(t, tok, 3, 1)
			case "d":
				checkPos(t, tok, 3, 5)
			}
		}
	}
	if strings.Join(got, ",") != "a,b,c,ab,d" {
		t.Errorf("identifiers = %v", got)
	}
}

func checkPos(t *testing.T, tok Token, line, col int) {
	t.Helper()
	if tok.Line != line || tok.Column != col {
		t.Errorf("%q at %d:%d, want %d:%d", tok.Text, tok.Line, tok.Column, line, col)
	}
}

func TestLexerComments(t *testing.T) {
	input := "a // line comment\n/* block /* nested */ still\ncomment */ b\n"
	toks, err := Tokenize("t", input, nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	var comments, idents []string
	for _, tok := range toks {
		switch tok.Type {
		case TokenComment, TokenBlockComment:
			comments = append(comments, tok.Text)
		case TokenIdentifier:
			idents = append(idents, tok.Text)
		}
	}
	if len(comments) != 2 {
		t.Fatalf("comments = %q, want 2", comments)
	}
	if comments[0] != "// line comment" {
		t.Errorf("comment[0] = %q", comments[0])
	}
	if comments[1] != "/* block /* nested */ still\ncomment */" {
		t.Errorf("comment[1] = %q", comments[1])
	}
	if strings.Join(idents, ",") != "a,b" {
		t.Errorf("identifiers = %v, want a,b", idents)
	}
	for _, tok := range toks {
		if tok.Text == "b" && tok.Line != 3 {
			t.Errorf("b on line %d, want 3", tok.Line)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		line  int
		col   int
	}{
		{"x = 1.2.3", "Invalid number", 1, 8},
		{"a !b", "Expected '=' after '!'", 1, 3},
		{"a ; b", "Unexpected ';' character", 1, 3},
		{`say "abc`, "Unexpected end of file while parsing STRING (started at 1:5)", 1, 0},
		{"/* open", "Unexpected end of file while parsing BLOCK_COMMENT (started at 1:1)", 1, 0},
		{"\"a\nb\"", "Unterminated string", 1, 0},
		{`"\q"`, `Invalid escape sequence '\q'`, 1, 0},
	}
	for _, tt := range tests {
		_, err := Tokenize("bad.txt", tt.input, nil, 4)
		if err == nil {
			t.Errorf("Tokenize(%q) succeeded, want error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Tokenize(%q) error = %q, want %q", tt.input, err, tt.want)
		}
		if !diag.Is(err, diag.Lexical) {
			t.Errorf("Tokenize(%q) error kind is not lexical", tt.input)
		}
		pos, _ := diag.PosOf(err)
		if pos.File != "bad.txt" || pos.Line != tt.line {
			t.Errorf("Tokenize(%q) error position = %v, want line %d", tt.input, pos, tt.line)
		}
		if tt.col > 0 && pos.Column != tt.col {
			t.Errorf("Tokenize(%q) error column = %d, want %d", tt.input, pos.Column, tt.col)
		}
	}
}

func TestStringLiteralRoundTrip(t *testing.T) {
	literals := []string{
		`""`,
		`"plain"`,
		`"say \"hi\""`,
		`"back\\slash"`,
		`"tab\there\r\nnewline"`,
		`"\\\"\\"`,
	}
	for _, lit := range literals {
		toks := important(t, "say "+lit)
		var str Token
		for _, tok := range toks {
			if tok.Type == TokenString {
				str = tok
			}
		}
		if str.Text != lit {
			t.Errorf("raw text = %q, want %q", str.Text, lit)
		}
		if got := Quote(str.StringValue()); got != lit {
			t.Errorf("Quote(StringValue(%s)) = %s", lit, got)
		}
	}

	v, err := Unquote(`"a\"b\\c\nd"`)
	if err != nil || v != "a\"b\\c\nd" {
		t.Errorf("Unquote = %q, %v", v, err)
	}
}

func TestImportantTokens(t *testing.T) {
	toks, err := Tokenize("t", "\n\n  a // c\n\n\nb", nil, 4)
	if err != nil {
		t.Fatal(err)
	}
	got := ImportantTokens(toks)
	var types []string
	for _, tok := range got {
		types = append(types, tok.Type.String())
	}
	want := "IDENTIFIER,EOL,IDENTIFIER,EOL,EOF"
	if strings.Join(types, ",") != want {
		t.Errorf("types = %s, want %s", strings.Join(types, ","), want)
	}
}
