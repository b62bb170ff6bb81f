package bytecode

import (
	"strings"
	"testing"
)

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for op := OpEnd; op <= OpSqrt; op++ {
		info := GetOpcodeInfo(op)
		if info.Name == "" || strings.HasPrefix(info.Name, "UNKNOWN") {
			t.Errorf("Opcode %d has no metadata", op)
		}
	}
	if got := OpcodeCount(); got != 44 {
		t.Errorf("OpcodeCount() = %d, want 44", got)
	}
}

func TestOpcodeValues(t *testing.T) {
	tests := []struct {
		op   Opcode
		want uint32
		name string
	}{
		{OpEnd, 0, "END"},
		{OpJz, 1, "JZ"},
		{OpSys, 5, "SYS"},
		{OpJmp, 20, "JMP"},
		{OpExcept, 22, "EXCEPT"},
		{OpCall, 24, "CALL"},
		{OpSwap, 29, "SWAP"},
		{OpSqrt, 43, "SQRT"},
	}
	for _, tt := range tests {
		if uint32(tt.op) != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, uint32(tt.op), tt.want)
		}
		if tt.op.String() != tt.name {
			t.Errorf("Opcode(%d).String() = %q, want %q", tt.want, tt.op.String(), tt.name)
		}
	}
}

func TestUnknownOpcodeString(t *testing.T) {
	op := Opcode(200)
	if got := op.String(); !strings.HasPrefix(got, "UNKNOWN") {
		t.Errorf("Unknown opcode should return UNKNOWN, got %q", got)
	}
	if op.Valid() {
		t.Errorf("Opcode(200).Valid() = true")
	}
}

func TestOpcodeAttributes(t *testing.T) {
	if !OpJz.IsJump() || !OpJmp.IsJump() || OpExcept.IsJump() {
		t.Errorf("IsJump wrong for JZ/JMP/EXCEPT")
	}
	if !OpExcept.IsIP() {
		t.Errorf("EXCEPT should take an address")
	}
	if !OpCall.IsScript() {
		t.Errorf("CALL should take a script id")
	}
	if !OpSys.ForceInt() || !OpSwap.ForceInt() {
		t.Errorf("SYS and SWAP operands are ints")
	}
	if OpAdd.HasArg() || !OpPush.HasArg() {
		t.Errorf("HasArg wrong for ADD/PUSH")
	}
}

func TestMnemonicRoundTrip(t *testing.T) {
	for _, m := range mnemonics {
		instr, ok := FromMnemonic(m.name)
		if !ok {
			t.Fatalf("FromMnemonic(%q) failed", m.name)
		}
		if got := instr.Mnemonic(); got != m.name {
			t.Errorf("FromMnemonic(%q).Mnemonic() = %q", m.name, got)
		}
	}
	if _, ok := FromMnemonic("PUSHX"); ok {
		t.Errorf("FromMnemonic(PUSHX) should fail")
	}
}

func TestReferenceFallsBackToPlainMnemonic(t *testing.T) {
	instr := MustMnemonic("PUSHF")
	instr.Flags = FlagRef
	instr.Int = 3
	if got := instr.Mnemonic(); got != "PUSHF" {
		t.Errorf("Mnemonic() = %q, want PUSHF", got)
	}
	if !instr.IsReference() {
		t.Errorf("IsReference() = false")
	}
	if got := instr.String(); got != "PUSHF [3]" {
		t.Errorf("String() = %q, want %q", got, "PUSHF [3]")
	}

	jz := MustMnemonic("JZ")
	jz.Flags = FlagForward
	if got := jz.Mnemonic(); got != "JZ" {
		t.Errorf("forward JZ Mnemonic() = %q", got)
	}
	start := MustMnemonic("START")
	if !start.IsAsync() || start.Op != OpCall {
		t.Errorf("START should be an async CALL")
	}
	free := MustMnemonic("FREE")
	if !free.IsFree() {
		t.Errorf("FREE should be a free ENDEXCEPT")
	}
}

func TestInstructionString(t *testing.T) {
	pushf := MustMnemonic("PUSHF")
	pushf.Float = 2
	pushb := MustMnemonic("PUSHB")
	pushb.Bool = true
	sys := MustMnemonic("SYS")
	sys.Int = NativeGetDistance
	pop := MustMnemonic("POPI")
	tests := []struct {
		instr Instruction
		want  string
	}{
		{pushf, "PUSHF 2.0"},
		{pushb, "PUSHB true"},
		{sys, "SYS GET_DISTANCE"},
		{pop, "POPI"},
		{MustMnemonic("ADDF"), "ADDF"},
		{MustMnemonic("SWAP"), "SWAP"},
	}
	for _, tt := range tests {
		if got := tt.instr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{1865.61, "1865.61"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOperandBits(t *testing.T) {
	pushf := MustMnemonic("PUSHF")
	pushf.Float = 1.5
	var back Instruction = MustMnemonic("PUSHF")
	if err := back.SetOperandBits(pushf.OperandBits()); err != nil {
		t.Fatal(err)
	}
	if back.Float != 1.5 {
		t.Errorf("Float = %v, want 1.5", back.Float)
	}

	ref := MustMnemonic("POPF")
	ref.Flags = FlagRef
	ref.Int = 7
	if ref.OperandBits() != 7 {
		t.Errorf("variable index should be encoded as int, got %d", ref.OperandBits())
	}

	pushb := MustMnemonic("PUSHB")
	if err := pushb.SetOperandBits(2); err == nil {
		t.Errorf("SetOperandBits(2) on PUSHB should fail")
	}
}

func TestNatives(t *testing.T) {
	tests := []struct {
		id   int
		name string
	}{
		{NativeSetCameraPosition, "SET_CAMERA_POSITION"},
		{NativeGetProperty, "GET_PROPERTY"},
		{NativeRandom, "RANDOM"},
		{NativeKeyDown, "KEY_DOWN"},
		{NativeGetObjectState, "GET_OBJECT_STATE"},
	}
	for _, tt := range tests {
		name, ok := NativeName(tt.id)
		if !ok || name != tt.name {
			t.Errorf("NativeName(%d) = %q, want %q", tt.id, name, tt.name)
		}
		id, ok := NativeID(tt.name)
		if !ok || id != tt.id {
			t.Errorf("NativeID(%q) = %d, want %d", tt.name, id, tt.id)
		}
	}
	if _, ok := NativeName(NativeCount()); ok {
		t.Errorf("NativeName out of range should fail")
	}
}

func TestParseScriptType(t *testing.T) {
	tests := []struct {
		kw   string
		want ScriptType
	}{
		{"script", ScriptPlain},
		{"help script", ScriptHelp},
		{"challenge  help script", ScriptChallengeHelp},
		{"multiplayer help script", ScriptMultiplayerHelp},
	}
	for _, tt := range tests {
		got, ok := ParseScriptType(tt.kw)
		if !ok || got != tt.want {
			t.Errorf("ParseScriptType(%q) = %v, want %v", tt.kw, got, tt.want)
		}
	}
	if _, ok := ParseScriptType("macro"); ok {
		t.Errorf("ParseScriptType(macro) should fail")
	}
}
