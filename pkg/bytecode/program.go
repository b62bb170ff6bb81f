package bytecode

import (
	"bytes"
	"fmt"
	"strings"
)

// ScriptType is the kind of a user script. Values are bit codes fixed by
// the target virtual machine.
type ScriptType uint32

const (
	ScriptPlain           ScriptType = 1
	ScriptHelp            ScriptType = 2
	ScriptChallengeHelp   ScriptType = 4
	ScriptTempleHelp      ScriptType = 8
	ScriptTempleSpecial   ScriptType = 16
	ScriptMultiplayerHelp ScriptType = 64
)

var scriptTypeKeywords = map[ScriptType]string{
	ScriptPlain:           "script",
	ScriptHelp:            "help script",
	ScriptChallengeHelp:   "challenge help script",
	ScriptTempleHelp:      "temple help script",
	ScriptTempleSpecial:   "temple special script",
	ScriptMultiplayerHelp: "multiplayer help script",
}

// String returns the source keyword of the script type.
func (t ScriptType) String() string {
	if kw, ok := scriptTypeKeywords[t]; ok {
		return kw
	}
	return fmt.Sprintf("ScriptType(%d)", uint32(t))
}

// ParseScriptType maps a source keyword such as "help script" to its type.
func ParseScriptType(keyword string) (ScriptType, bool) {
	keyword = strings.Join(strings.Fields(keyword), " ")
	for t, kw := range scriptTypeKeywords {
		if kw == keyword {
			return t, true
		}
	}
	return 0, false
}

// Script is an entry of the script table.
type Script struct {
	ID         int
	Name       string
	SourceFile string
	Type       ScriptType

	// VarOffset is the number of global slots visible to the script. Local
	// variable i (0-based, parameters first) has index VarOffset+1+i.
	VarOffset int

	// Variables holds parameters followed by locals.
	Variables  []string
	ParamCount int
	Address    int
}

// LocalIndex returns the variable index of a local by name.
func (s *Script) LocalIndex(name string) (int, bool) {
	for i, v := range s.Variables {
		if v == name {
			return s.VarOffset + 1 + i, true
		}
	}
	return 0, false
}

// IsLocal reports whether a variable index refers to a local of s.
func (s *Script) IsLocal(index int) bool {
	return index > s.VarOffset
}

// Params returns the parameter names.
func (s *Script) Params() []string {
	return s.Variables[:s.ParamCount]
}

// Locals returns the local variable names, excluding parameters.
func (s *Script) Locals() []string {
	return s.Variables[s.ParamCount:]
}

// Signature formats the script as "type name(params)".
func (s *Script) Signature() string {
	sig := s.Type.String() + " " + s.Name
	if s.ParamCount > 0 {
		sig += "(" + strings.Join(s.Params(), ", ") + ")"
	}
	return sig
}

func (s *Script) String() string {
	return fmt.Sprintf("script[%d]: %s at 0x%08X in %s", s.ID, s.Signature(), s.Address, s.SourceFile)
}

// InitGlobal is an initial value for a global variable.
type InitGlobal struct {
	Name  string
	Value float32
}

// Program is a complete compiled unit: the input of the binary writer and
// of the disassembler.
type Program struct {
	Instructions []Instruction
	Scripts      []*Script
	Globals      []string
	InitGlobals  []InitGlobal
	Data         []byte
	Autorun      []int
}

// ScriptByID returns the script with the given id.
func (p *Program) ScriptByID(id int) (*Script, bool) {
	for _, s := range p.Scripts {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// ScriptByName returns the script with the given name.
func (p *Program) ScriptByName(name string) (*Script, bool) {
	for _, s := range p.Scripts {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ScriptAt returns the script whose code contains the instruction at ip.
func (p *Program) ScriptAt(ip int) (*Script, bool) {
	var found *Script
	for _, s := range p.Scripts {
		if s.Address <= ip && (found == nil || s.Address > found.Address) {
			found = s
		}
	}
	return found, found != nil
}

// VarName resolves a variable index as seen from script s.
func (p *Program) VarName(s *Script, index int) (string, bool) {
	if s != nil && s.IsLocal(index) {
		i := index - s.VarOffset - 1
		if i < len(s.Variables) {
			return s.Variables[i], true
		}
		return "", false
	}
	if index >= 1 && index <= len(p.Globals) {
		return p.Globals[index-1], true
	}
	return "", false
}

// DataString is a NUL-terminated string in the data section.
type DataString struct {
	Offset int
	Raw    []byte // without the terminator
}

// DataStrings splits the data section into its NUL-terminated strings. A
// trailing fragment without terminator is returned as well.
func (p *Program) DataStrings() []DataString {
	var out []DataString
	data := p.Data
	off := 0
	for len(data) > 0 {
		n := bytes.IndexByte(data, 0)
		if n < 0 {
			out = append(out, DataString{Offset: off, Raw: data})
			break
		}
		out = append(out, DataString{Offset: off, Raw: data[:n]})
		data = data[n+1:]
		off += n + 1
	}
	return out
}

// Validate checks operand consistency: jump and handler addresses are in
// range and carry the right FORWARD flag, call operands name existing
// scripts, and native ids are known.
func (p *Program) Validate() error {
	n := len(p.Instructions)
	for ip, instr := range p.Instructions {
		if !instr.Op.Valid() {
			return fmt.Errorf("instruction %d: invalid opcode %d", ip, uint32(instr.Op))
		}
		switch {
		case instr.Op == OpSys:
			if _, ok := NativeName(int(instr.Int)); !ok {
				return fmt.Errorf("instruction %d: unknown native function %d", ip, instr.Int)
			}
		case instr.Op == OpCall && instr.Int != 0:
			if _, ok := p.ScriptByID(int(instr.Int)); !ok {
				return fmt.Errorf("instruction %d: invalid script id %d", ip, instr.Int)
			}
		case instr.Op.IsIP():
			target := int(instr.Int)
			if target < 0 || target >= n {
				return fmt.Errorf("instruction %d: invalid address %d", ip, target)
			}
			if instr.Op.IsJump() && instr.IsForward() != (target > ip) {
				return fmt.Errorf("instruction %d: FORWARD flag does not match target %d", ip, target)
			}
		}
	}
	for _, id := range p.Autorun {
		if _, ok := p.ScriptByID(id); !ok {
			return fmt.Errorf("autorun: invalid script id %d", id)
		}
	}
	return nil
}
