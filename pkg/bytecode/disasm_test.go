package bytecode

import (
	"strings"
	"testing"
)

func instr(name string, operand int32) Instruction {
	i := MustMnemonic(name)
	i.Int = operand
	return i
}

func sampleProgram() *Program {
	ref := func(name string, index int32) Instruction {
		i := instr(name, index)
		i.Flags = FlagRef
		return i
	}
	jz := instr("JZ", 5)
	jz.Flags = FlagForward
	pushf := MustMnemonic("PUSHF")
	pushf.Float = 1
	return &Program{
		Instructions: []Instruction{
			pushf,               // 0
			ref("POPF", 2),      // 1
			ref("PUSHF", 1),     // 2
			jz,                  // 3
			instr("CALL", 1),    // 4
			instr("JMP", 2),     // 5
			MustMnemonic("END"), // 6
		},
		Scripts: []*Script{{
			ID: 1, Name: "Main", SourceFile: "main.txt", Type: ScriptPlain,
			VarOffset: 1, Variables: []string{"x"}, Address: 0,
		}},
		Globals:     []string{"g"},
		InitGlobals: []InitGlobal{{Name: "g", Value: 2}},
		Data:        []byte("Hi \"x\"\x00two\x00"),
		Autorun:     []int{1},
	}
}

func TestDisassemble(t *testing.T) {
	out := sampleProgram().Disassemble()
	want := []string{
		".DATA\n",
		`string "Hi \"x\""`,
		`string "two"`,
		"global g = 2.0\n",
		"SOURCE main.txt\n",
		"begin script Main\n",
		"\tlocal x\n",
		"\tPUSHF 1.0\n",
		"\tPOPF x\n",
		"lbl2:\n",
		"\tPUSHF [g]\n",
		"\tJZ lbl5\n",
		"\tCALL Main\n",
		"lbl5:\n",
		"\tJMP lbl2\n",
		"\tEND\n",
		".AUTORUN\nrun script Main\n",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Disassemble() missing %q\n%s", w, out)
		}
	}
}

func TestDataStrings(t *testing.T) {
	p := &Program{Data: []byte("ab\x00\x00c\x00")}
	got := p.DataStrings()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	offsets := []int{0, 3, 4}
	for i, s := range got {
		if s.Offset != offsets[i] {
			t.Errorf("string[%d].Offset = %d, want %d", i, s.Offset, offsets[i])
		}
	}
	if string(got[2].Raw) != "c" {
		t.Errorf("string[2] = %q, want c", got[2].Raw)
	}
}

func TestVarName(t *testing.T) {
	p := sampleProgram()
	s := p.Scripts[0]
	tests := []struct {
		index int
		want  string
		ok    bool
	}{
		{1, "g", true},
		{2, "x", true},
		{3, "", false},
		{0, "", false},
	}
	for _, tt := range tests {
		got, ok := p.VarName(s, tt.index)
		if got != tt.want || ok != tt.ok {
			t.Errorf("VarName(%d) = %q, %v, want %q, %v", tt.index, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidate(t *testing.T) {
	p := sampleProgram()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	p.Instructions[3].Flags = FlagDefault
	if err := p.Validate(); err == nil {
		t.Errorf("Validate() should reject a forward jump without FORWARD flag")
	}

	p = sampleProgram()
	p.Instructions[4].Int = 9
	if err := p.Validate(); err == nil {
		t.Errorf("Validate() should reject an unknown script id")
	}
}
