package compiler

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
)

const testDecls = "global x\nglobal y\nglobal o\n"

func render(instrs []bytecode.Instruction) []string {
	out := make([]string, len(instrs))
	for i, instr := range instrs {
		out[i] = instr.String()
	}
	return out
}

func newTestCompiler() *Compiler {
	c := New(Options{})
	c.DefineConstant("HEALTH", 3, "test")
	return c
}

func compileProgram(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	c := newTestCompiler()
	if err := c.Compile("test.txt", []byte(src)); err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	prog, err := c.Seal()
	if err != nil {
		t.Fatalf("Seal error = %v", err)
	}
	if err := prog.Validate(); err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	return prog
}

// body compiles stmt as the only statement of a script and returns the code
// between the prologue (EXCEPT, FREE) and the epilogue (ENDEXCEPT, JMP,
// ITEREXCEPT, END). The statement starts at address 2.
func body(t *testing.T, stmt string) []string {
	t.Helper()
	prog := compileProgram(t, testDecls+"begin script S\nstart\n"+stmt+"\nend script S\n")
	instrs := prog.Instructions
	return render(instrs[2 : len(instrs)-4])
}

func TestStatementLowering(t *testing.T) {
	tests := []struct {
		stmt string
		want []string
	}{
		{"x = 1", []string{"PUSHF 1.0", "POPF 1"}},
		{"x = y + 2 * 3", []string{"PUSHF [2]", "PUSHF 2.0", "PUSHF 3.0", "MUL", "ADDF", "POPF 1"}},
		{"x = 8 - 2 - 1", []string{"PUSHF 8.0", "PUSHF 2.0", "SUBF", "PUSHF 1.0", "SUBF", "POPF 1"}},
		{"x = (8 - 2) % 4", []string{"PUSHF 8.0", "PUSHF 2.0", "SUBF", "PUSHF 4.0", "MOD", "POPF 1"}},
		{"x = -y", []string{"PUSHF [2]", "NEG", "POPF 1"}},
		{"x += 2", []string{"PUSHF [1]", "PUSHF 2.0", "ADDF", "POPF 1"}},
		{"x /= y", []string{"PUSHF [1]", "PUSHF [2]", "DIV", "POPF 1"}},
		{"x ++", []string{"PUSHF [1]", "PUSHF 1.0", "ADDF", "POPF 1"}},
		{"x --", []string{"PUSHF [1]", "PUSHF 1.0", "SUBF", "POPF 1"}},
		{"x = HEALTH of o", []string{"PUSHI 3", "PUSHF [3]", "SYS GET_PROPERTY", "POPF 1"}},
		{"HEALTH of o = 5", []string{"PUSHI 3", "PUSHF [3]", "PUSHF 5.0", "SYS2 SET_PROPERTY"}},
		{"HEALTH of o += 1", []string{
			"PUSHI 3", "PUSHF [3]", "PUSHI 3", "PUSHF [3]", "SYS2 GET_PROPERTY",
			"PUSHF 1.0", "ADDF", "SYS2 SET_PROPERTY",
		}},
		{"x = number from 1 to 10", []string{"PUSHF 1.0", "PUSHF 10.0", "SYS RANDOM", "POPF 1"}},
		{"x = variable HEALTH", []string{"PUSHI 3", "CASTF", "POPF 1"}},
		{"x = variable constant y", []string{"PUSHF [2]", "CASTI", "CASTF", "POPF 1"}},
		{"x = get distance from [o] to camera focus", []string{
			"PUSHF [3]", "SYS GET_POSITION", "SYS GET_CAMERA_FOCUS", "SYS GET_DISTANCE", "POPF 1",
		}},
		{"wait until x == 1", []string{"PUSHF [1]", "PUSHF 1.0", "EQ", "JZ 2"}},
		{"wait 2 seconds", []string{"PUSHF 2.0", "SLEEP", "JZ 2"}},
		{"wait x > 1 and not y < 2 or key 5 down", []string{
			"PUSHF [1]", "PUSHF 1.0", "GT",
			"PUSHF [2]", "PUSHF 2.0", "LT", "NOT", "AND",
			"PUSHI 5", "SYS KEY_DOWN", "OR", "JZ 2",
		}},
		{"wait (x + 1) == 2", []string{"PUSHF [1]", "PUSHF 1.0", "ADDF", "PUSHF 2.0", "EQ", "JZ 2"}},
		{"wait (x == 1 or y == 1) and o != 0", []string{
			"PUSHF [1]", "PUSHF 1.0", "EQ", "PUSHF [2]", "PUSHF 1.0", "EQ", "OR",
			"PUSHF [3]", "PUSHF 0.0", "NEQ", "AND", "JZ 2",
		}},
		{"wait [x, y] near [o] radius 5", []string{
			"PUSHF [1]", "CASTC", "PUSHF [2]", "CASTC", "PUSHC 0.0", "SWAP",
			"PUSHF [3]", "SYS GET_POSITION", "SYS GET_DISTANCE", "PUSHF 5.0", "LT", "JZ 2",
		}},
		{"wait [o] not at camera position", []string{
			"PUSHF [3]", "SYS GET_POSITION", "SYS GET_CAMERA_POSITION", "SYS GET_DISTANCE",
			"PUSHF 0.0", "NEQ", "JZ 2",
		}},
		{"wait [o] + [1, 2, 3] not near camera focus radius 1", []string{
			"PUSHF [3]", "SYS GET_POSITION",
			"PUSHF 1.0", "CASTC", "PUSHF 2.0", "CASTC", "PUSHF 3.0", "CASTC", "ADDC",
			"SYS GET_CAMERA_FOCUS", "SYS GET_DISTANCE", "PUSHF 1.0", "LT", "NOT", "JZ 2",
		}},
		{"run script S", []string{"CALL 1"}},
		{"run background script S", []string{"START 1"}},
		{`say single line "hello" with interaction`, []string{"PUSHB true", "PUSHI 19", "PUSHI 1", "SYS TEMP_TEXT"}},
		{"say HEALTH without interaction", []string{"PUSHB false", "PUSHI 3", "PUSHI 2", "SYS RUN_TEXT"}},
		{"say state of o", []string{"PUSHB false", "PUSHF [3]", "SYS GET_OBJECT_STATE", "PUSHI 0", "SYS RUN_TEXT"}},
		{"set camera focus to [1, 2, 3]", []string{
			"PUSHF 1.0", "CASTC", "PUSHF 2.0", "CASTC", "PUSHF 3.0", "CASTC", "SYS SET_CAMERA_FOCUS",
		}},
		{"set camera position to camera focus - [o]", []string{
			"SYS GET_CAMERA_FOCUS", "PUSHF [3]", "SYS GET_POSITION", "SUBC", "SYS SET_CAMERA_POSITION",
		}},
		{"delete o with fade", []string{"PUSHF [3]", "PUSHB true", "SYS OBJECT_DELETE"}},
		{"delete o", []string{"PUSHF [3]", "PUSHB false", "SYS OBJECT_DELETE"}},
		{"challenge Tutorial", []string{}},
	}
	for _, tt := range tests {
		got := body(t, tt.stmt)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q:\n got %v\nwant %v", tt.stmt, got, tt.want)
		}
	}
}

func TestIfLowering(t *testing.T) {
	got := body(t, "if x == 1\nx = 2\nelsif x == 2\nx = 3\nelse\nx = 4\nend if")
	want := []string{
		"PUSHF [1]", "PUSHF 1.0", "EQ", "JZ 9",
		"PUSHF 2.0", "POPF 1", "JMP 18",
		"PUSHF [1]", "PUSHF 2.0", "EQ", "JZ 16",
		"PUSHF 3.0", "POPF 1", "JMP 18",
		"PUSHF 4.0", "POPF 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("if:\n got %v\nwant %v", got, want)
	}

	got = body(t, "if x == 1\nx = 2\nend if")
	want = []string{"PUSHF [1]", "PUSHF 1.0", "EQ", "JZ 8", "PUSHF 2.0", "POPF 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("if without else:\n got %v\nwant %v", got, want)
	}
}

func TestLoopLowering(t *testing.T) {
	got := body(t, "begin loop\nx ++\nuntil x > 5\nend loop")
	want := []string{
		"EXCEPT 8",
		"PUSHF [1]", "PUSHF 1.0", "ADDF", "POPF 1",
		"JMP 3",
		"PUSHF [1]", "PUSHF 5.0", "GT", "JZ 19",
		"PUSHB false", "SYS SET_WIDESCREEN", "SYS END_GAME_SPEED", "SYS END_DIALOGUE", "SYS END_CAMERA_CONTROL",
		"BRKEXCEPT", "JMP 20",
		"ITEREXCEPT",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loop:\n got %v\nwant %v", got, want)
	}
}

func TestWhileLowering(t *testing.T) {
	prog := compileProgram(t, "begin script Loop\nstart\nwhile 1 == 1\nwait 1 seconds\nend while\nend script Loop\n")
	want := []string{
		"EXCEPT 16", "FREE",
		"EXCEPT 13",
		"PUSHF 1.0", "PUSHF 1.0", "EQ", "JZ 11",
		"PUSHF 1.0", "SLEEP", "JZ 7",
		"JMP 3",
		"ENDEXCEPT", "JMP 14",
		"ITEREXCEPT",
		"ENDEXCEPT", "JMP 17",
		"ITEREXCEPT",
		"END",
	}
	if got := render(prog.Instructions); !reflect.DeepEqual(got, want) {
		t.Fatalf("while:\n got %v\nwant %v", got, want)
	}
	// the guard exit lands right after the back jump
	back := 10
	if prog.Instructions[back].Op != bytecode.OpJmp {
		t.Fatalf("instruction %d = %v, want JMP", back, prog.Instructions[back])
	}
	if exit := int(prog.Instructions[6].Int); exit != back+1 {
		t.Errorf("guard exit = %d, want %d", exit, back+1)
	}
	if !prog.Instructions[6].IsForward() {
		t.Error("guard exit should be a forward jump")
	}
	if prog.Instructions[back].IsForward() {
		t.Error("back jump should not be a forward jump")
	}
}

func TestMainScenario(t *testing.T) {
	src := `global counter

begin script Main()
start
counter = 1
if counter == 1
	run script Main
end if
end script Main

run script Main
`
	c := newTestCompiler()
	if err := c.Compile("main.txt", []byte(src)); err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	prog, err := c.Seal()
	if err != nil {
		t.Fatalf("Seal error = %v", err)
	}
	if !reflect.DeepEqual(prog.Globals, []string{"counter"}) {
		t.Errorf("globals = %v, want [counter]", prog.Globals)
	}
	if len(prog.Scripts) != 1 {
		t.Fatalf("scripts = %d, want 1", len(prog.Scripts))
	}
	s := prog.Scripts[0]
	if s.ID != 1 || s.Name != "Main" || s.ParamCount != 0 || s.Address != 0 {
		t.Errorf("script = %+v", s)
	}
	if s.VarOffset != 1 {
		t.Errorf("var offset = %d, want 1", s.VarOffset)
	}
	want := []string{
		"EXCEPT 11", "FREE",
		"PUSHF 1.0", "POPF 1",
		"PUSHF [1]", "PUSHF 1.0", "EQ", "JZ 9",
		"CALL 1",
		"ENDEXCEPT", "JMP 12",
		"ITEREXCEPT",
		"END",
	}
	if got := render(prog.Instructions); !reflect.DeepEqual(got, want) {
		t.Errorf("code:\n got %v\nwant %v", got, want)
	}
	if !reflect.DeepEqual(prog.Autorun, []int{1}) {
		t.Errorf("autorun = %v, want [1]", prog.Autorun)
	}
	if n := c.Unit().ScriptUsage(1); n < 1 {
		t.Errorf("usage = %d, want >= 1", n)
	}
	if err := prog.Validate(); err != nil {
		t.Errorf("Validate error = %v", err)
	}
}

func TestParametersAndLocals(t *testing.T) {
	src := `global g
begin script Helper(a, b)
	local1 = a
	constant LIMIT = 7
start
g = local1 + b * variable LIMIT
end script Helper

begin script Caller
start
run script Helper(1, g)
end script Caller

run script Caller
`
	prog := compileProgram(t, src)
	helper, ok := prog.ScriptByName("Helper")
	if !ok {
		t.Fatal("Helper not found")
	}
	if helper.ParamCount != 2 || !reflect.DeepEqual(helper.Variables, []string{"a", "b", "local1"}) {
		t.Errorf("Helper params = %d, variables = %v", helper.ParamCount, helper.Variables)
	}
	want := []string{
		"EXCEPT 15",
		"POPF 2", "POPF 3",
		"PUSHF [2]", "POPF 4",
		"FREE",
		"PUSHF [4]", "PUSHF [3]", "PUSHI 7", "CASTF", "MUL", "ADDF", "POPF 1",
		"ENDEXCEPT", "JMP 16", "ITEREXCEPT", "END",
	}
	if got := render(prog.Instructions[:len(want)]); !reflect.DeepEqual(got, want) {
		t.Errorf("Helper:\n got %v\nwant %v", got, want)
	}
	caller, ok := prog.ScriptByName("Caller")
	if !ok {
		t.Fatal("Caller not found")
	}
	if caller.ID != 2 {
		t.Errorf("Caller id = %d, want 2", caller.ID)
	}
	call := render(prog.Instructions[caller.Address+2 : caller.Address+5])
	if !reflect.DeepEqual(call, []string{"PUSHF 1.0", "PUSHF [1]", "CALL 1"}) {
		t.Errorf("call = %v", call)
	}
	if !reflect.DeepEqual(prog.Autorun, []int{2}) {
		t.Errorf("autorun = %v, want [2]", prog.Autorun)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
		line int
		msg  string
	}{
		{"not implemented", "global x\nbegin script A\nstart\nx = square root 4\nend script A\n",
			diag.NotImplemented, 4, "square root"},
		{"coord negation", "begin script A\nstart\nset camera focus to -[1, 2]\nend script A\n",
			diag.NotImplemented, 3, "- COORD_EXPR"},
		{"marker", "begin script A\nstart\ndelete marker at [1, 2]\nend script A\n",
			diag.NotImplemented, 3, "marker"},
		{"name mismatch", "begin script A\nstart\nend script B\n",
			diag.Semantic, 3, "must match"},
		{"undefined constant", "begin script A\nstart\nsay UNKNOWN\nend script A\n",
			diag.Semantic, 3, "Undefined constant: UNKNOWN"},
		{"missing value", "global x\nbegin script A\nstart\nx = = 1\nend script A\n",
			diag.Syntax, 4, "Unexpected token: =. Expected: OBJECT"},
		{"bad operator", "begin script A\nstart\nfoo bar\nend script A\n",
			diag.Syntax, 3, "Unexpected token: bar"},
		{"unrecognized statement", "begin script A\nstart\nend if\nend script A\n",
			diag.Syntax, 3, "Unrecognized statement"},
		{"missing comparison", "global x\nbegin script A\nstart\nwait x\nend script A\n",
			diag.Syntax, 4, "Unexpected token: EOL"},
		{"duplicate global", "global x\nglobal x\n",
			diag.Semantic, 2, "Duplicate global variable: x"},
		{"duplicate autorun", "run script A\nrun script A\n",
			diag.Semantic, 2, "Duplicate autorun definition: A"},
		{"duplicate script", "begin script A\nstart\nend script A\nbegin script A\nstart\nend script A\n",
			diag.Semantic, 4, "Duplicate script definition: A"},
		{"definition mismatch", "define script A(x)\nbegin script A\nstart\nend script A\n",
			diag.Semantic, 2, "defined with 1 parameters"},
		{"duplicate local", "begin script A(p)\np = 1\nstart\nend script A\n",
			diag.Semantic, 2, "Duplicate local variable: p"},
		{"duplicate local constant", "begin script A\nconstant K = 1\nconstant K = 2\nstart\nend script A\n",
			diag.Semantic, 3, "Duplicate constant: K"},
		{"trailing token", "end\n",
			diag.Syntax, 1, "Unexpected token: end. Expected: EOF"},
		{"fractional constant", "global constant FRAC = 2.7\n",
			diag.Syntax, 1, "Invalid integer: 2.7"},
		{"fractional local constant", "begin script A\nconstant K = 0.5\nstart\nend script A\n",
			diag.Syntax, 2, "Invalid integer: 0.5"},
	}
	for _, tt := range tests {
		c := newTestCompiler()
		err := c.Compile("test.txt", []byte(tt.src))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if k, _ := diag.KindOf(err); k != tt.kind {
			t.Errorf("%s: kind = %v, want %v (%v)", tt.name, k, tt.kind, err)
		}
		if pos, _ := diag.PosOf(err); pos.Line != tt.line || pos.File != "test.txt" {
			t.Errorf("%s: pos = %v, want test.txt:%d", tt.name, pos, tt.line)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("%s: error = %q, want it to contain %q", tt.name, err, tt.msg)
		}
	}
}

func TestLinkErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"undefined script", "begin script A\nstart\nrun script Missing\nend script A\n", 3, "Undefined script 'Missing'"},
		{"undefined variable", "begin script A\nstart\nq = 1\nend script A\n", 3, "Undefined variable q"},
		{"argument count", "begin script A(p)\nstart\nend script A\nbegin script B\nstart\nrun script A\nend script B\n",
			6, "A expects 1, got 0"},
	}
	for _, tt := range tests {
		c := newTestCompiler()
		if err := c.Compile("test.txt", []byte(tt.src)); err != nil {
			t.Errorf("%s: Compile error = %v", tt.name, err)
			continue
		}
		_, err := c.Seal()
		if !diag.Is(err, diag.Link) {
			t.Errorf("%s: Seal error = %v, want a link error", tt.name, err)
			continue
		}
		if pos, _ := diag.PosOf(err); pos.Line != tt.line || pos.File != "test.txt" {
			t.Errorf("%s: pos = %v, want test.txt:%d", tt.name, pos, tt.line)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("%s: error = %q, want it to contain %q", tt.name, err, tt.msg)
		}
	}
}

func TestIgnoreMissingScripts(t *testing.T) {
	c := New(Options{IgnoreMissingScripts: true})
	if err := c.Compile("test.txt", []byte("begin script A\nstart\nrun script Missing\nend script A\n")); err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	prog, err := c.Seal()
	if err != nil {
		t.Fatalf("Seal error = %v", err)
	}
	if got := prog.Instructions[2]; got.Op != bytecode.OpCall || got.Int != 0 {
		t.Errorf("call = %v, want CALL 0", got)
	}
}

func TestIntegerConstants(t *testing.T) {
	c := newTestCompiler()
	src := testDecls + "global constant BIG = 16777217\n" +
		"begin script S\nconstant L = 16777219\nstart\nx = L of o\nend script S\n"
	if err := c.Compile("test.txt", []byte(src)); err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	if v, ok := c.Constant("BIG"); !ok || v != 16777217 {
		t.Errorf("BIG = %d, %v; want 16777217, true", v, ok)
	}
	prog, err := c.Seal()
	if err != nil {
		t.Fatalf("Seal error = %v", err)
	}
	got := render(prog.Instructions)
	found := false
	for _, s := range got {
		if s == "PUSHI 16777219" {
			found = true
		}
	}
	if !found {
		t.Errorf("instructions = %v, want PUSHI 16777219", got)
	}
}

func TestAttemptRollback(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		fn       func(p *parser) (int, error)
		furthest string
	}{
		{"coordinate condition", "[a, 1] == 2\n",
			func(p *parser) (int, error) { return p.coordCondition(p.pos()) },
			"Expected: near|at"},
		{"assigned expression", "o + )\n",
			func(p *parser) (int, error) { return p.expression(false) },
			"Expected: EXPRESSION"},
		{"parenthesised condition", "(a + 1) == 2\n",
			func(p *parser) (int, error) { return p.parenCondition(p.pos()) },
			"Expected: ==|!=|>=|<=|>|<|second|seconds"},
		{"object position", "[a, 1]\n",
			func(p *parser) (int, error) { return p.objectPosition(p.pos()) },
			"Expected: ]"},
		{"negated coordinate", "- [a, 1 + )\n",
			func(p *parser) (int, error) { return p.negatedCoordTerm() },
			"Expected: EXPRESSION"},
		{"stored string", "say \"Hello\" with nothing\n",
			func(p *parser) (int, error) { return p.sayStatement() },
			"Expected: interaction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{SharedStrings: true})
			toks, err := Tokenize("test.txt", tt.src, c.grammar, 4)
			if err != nil {
				t.Fatalf("Tokenize error = %v", err)
			}
			p := newParser(c, "test.txt", ImportantTokens(toks))
			ip, pos, arena := p.unit.IP(), p.pos(), len(p.s.arena)
			after := append([]int(nil), p.s.after...)
			mark, data := p.unit.Mark(), len(p.unit.Data())

			n, err := p.attempt(func() (int, error) { return tt.fn(p) })
			if err != nil || n >= 0 {
				t.Fatalf("attempt = %d, %v; want -1, nil", n, err)
			}
			if p.unit.IP() != ip {
				t.Errorf("ip = %d, want %d", p.unit.IP(), ip)
			}
			if p.pos() != pos {
				t.Errorf("pos = %d, want %d", p.pos(), pos)
			}
			if len(p.s.arena) != arena {
				t.Errorf("arena = %d, want %d", len(p.s.arena), arena)
			}
			if !reflect.DeepEqual(p.s.after, after) {
				t.Errorf("after = %v, want %v", p.s.after, after)
			}
			if got := p.unit.Mark(); got != mark {
				t.Errorf("unit mark = %+v, want %+v", got, mark)
			}
			if len(p.unit.Data()) != data {
				t.Errorf("data = %d bytes, want %d", len(p.unit.Data()), data)
			}
			if p.furthest == nil || !strings.Contains(p.furthest.Message, tt.furthest) {
				t.Errorf("furthest = %v, want %q", p.furthest, tt.furthest)
			}

			// A discarded string is stored again rather than shared.
			if _, err := p.unit.StoreString("Hello"); err != nil {
				t.Fatalf("StoreString error = %v", err)
			}
			if len(p.unit.Data()) == data {
				t.Errorf("StoreString reused a string from the discarded attempt")
			}
		})
	}
}

func TestMatchOptional(t *testing.T) {
	tests := []struct {
		pattern string
		src     string
		want    []string
	}{
		{"[EXPRESSION]", "", []string{"PUSHF 0.0"}},
		{"[EXPRESSION]", "2\n", []string{"PUSHF 2.0"}},
		{"[CONST_EXPR]", "", []string{"PUSHI 0"}},
		{"[OBJECT]", "", []string{"PUSHO 0"}},
		{"[COORD_EXPR]", "", []string{"PUSHC 0.0", "PUSHC 0.0", "PUSHC 0.0", "PUSHB false"}},
		{"[COORD_EXPR]", "camera focus\n", []string{"SYS GET_CAMERA_FOCUS", "PUSHB true"}},
		{"[with fade]", "with fade\n", []string{"PUSHB true"}},
		{"[with fade]", "", []string{"PUSHB false"}},
		{"STRING CONSTANT", "\"a\" HEALTH\n", []string{"PUSHI 19", "PUSHI 3"}},
	}
	for _, tt := range tests {
		c := newTestCompiler()
		toks, err := Tokenize("test.txt", tt.src, c.grammar, 4)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", tt.src, err)
		}
		p := newParser(c, "test.txt", ImportantTokens(toks))
		if err := p.match(tt.pattern); err != nil {
			t.Errorf("match(%q) on %q error = %v", tt.pattern, tt.src, err)
			continue
		}
		if got := render(p.unit.Instructions()); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("match(%q) on %q = %v, want %v", tt.pattern, tt.src, got, tt.want)
		}
	}
}

func TestSplitPattern(t *testing.T) {
	got := splitPattern("say [single line] STRING [with|without interaction] EOL")
	want := []string{"say", "[single line]", "STRING", "[with|without interaction]", "EOL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitPattern = %v, want %v", got, want)
	}
}

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"caf\xc3\xa9", "café"},
		{"caf\xe9", "café"},
		{"\x93quoted\x94", "\u201cquoted\u201d"},
	}
	for _, tt := range tests {
		got, err := decodeSource([]byte(tt.src))
		if err != nil {
			t.Errorf("decodeSource(%q) error = %v", tt.src, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeSource(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
