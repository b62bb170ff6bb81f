// Package link holds a compilation unit under construction: the
// instruction buffer, the global and script tables, the string data
// section and every reference that can only be resolved once all sources
// have been read. Seal resolves the references and produces the final
// bytecode.Program.
//
// Both front ends, the challenge language compiler and the assembler,
// build their output through a Unit.
package link

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
)

var log = commonlog.GetLogger("chlc.link")

// Options configure a Unit.
type Options struct {
	// FirstScriptID is the id of the first script. Zero means 1.
	FirstScriptID int

	// SharedStrings makes StoreString reuse the offset of an identical
	// string already in the data section.
	SharedStrings bool

	// IgnoreMissingScripts turns references to undefined scripts into
	// warnings. The operand of the call is left at 0.
	IgnoreMissingScripts bool
}

type varRef struct {
	pos    diag.Pos
	ip     int
	name   string
	script *bytecode.Script
}

type labelKey struct {
	script int // index in the script table, -1 outside scripts
	name   string
}

type labelRef struct {
	pos diag.Pos
	ip  int
	key labelKey
}

type scriptRef struct {
	pos  diag.Pos
	ip   int
	name string
	argc int // -1 when unchecked
}

type autorunRef struct {
	pos  diag.Pos
	name string
}

// Unit is a compilation unit. It is not safe for concurrent use.
type Unit struct {
	opts Options

	instructions []bytecode.Instruction

	globals     []string
	globalIndex map[string]int
	initGlobals []bytecode.InitGlobal

	scripts     []*bytecode.Script
	scriptIndex map[string]*bytecode.Script
	current     *bytecode.Script

	labels map[labelKey]int

	varRefs    []varRef
	labelRefs  []labelRef
	scriptRefs []scriptRef
	autoruns   []autorunRef

	data    []byte
	strings map[string]int

	usage   []int
	sealed  bool
	program *bytecode.Program
	err     error
}

// NewUnit creates an empty compilation unit.
func NewUnit(opts Options) *Unit {
	if opts.FirstScriptID == 0 {
		opts.FirstScriptID = 1
	}
	return &Unit{
		opts:        opts,
		globalIndex: make(map[string]int),
		scriptIndex: make(map[string]*bytecode.Script),
		labels:      make(map[labelKey]int),
		strings:     make(map[string]int),
	}
}

// Options returns the options the unit was created with.
func (u *Unit) Options() Options {
	return u.opts
}

// SetFirstScriptID changes the id given to the first script. It must be
// called before any script is declared.
func (u *Unit) SetFirstScriptID(id int) {
	if len(u.scripts) > 0 {
		panic("link: first script id set after scripts have been declared")
	}
	u.opts.FirstScriptID = id
}

func (u *Unit) checkOpen() {
	if u.sealed {
		panic("link: unit already sealed")
	}
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

// Emit appends an instruction and returns its address.
func (u *Unit) Emit(instr bytecode.Instruction) int {
	u.checkOpen()
	u.instructions = append(u.instructions, instr)
	return len(u.instructions) - 1
}

// IP returns the address of the next instruction.
func (u *Unit) IP() int {
	return len(u.instructions)
}

// At returns the instruction at ip. The pointer is invalidated by the next
// Emit.
func (u *Unit) At(ip int) *bytecode.Instruction {
	return &u.instructions[ip]
}

// Instructions returns the instruction buffer.
func (u *Unit) Instructions() []bytecode.Instruction {
	return u.instructions
}

// PatchJump sets the target of the jump or handler instruction at ip and
// updates its FORWARD flag.
func (u *Unit) PatchJump(ip, target int) {
	instr := &u.instructions[ip]
	instr.Int = int32(target)
	if instr.Op.IsJump() {
		if target > ip {
			instr.Flags = bytecode.FlagForward
		} else {
			instr.Flags = bytecode.FlagDefault
		}
	}
}

// Mark records the current size of everything a speculative parse can
// append to.
type Mark struct {
	instructions int
	varRefs      int
	labelRefs    int
	scriptRefs   int
	data         int
}

// Mark returns a checkpoint for Truncate.
func (u *Unit) Mark() Mark {
	return Mark{
		instructions: len(u.instructions),
		varRefs:      len(u.varRefs),
		labelRefs:    len(u.labelRefs),
		scriptRefs:   len(u.scriptRefs),
		data:         len(u.data),
	}
}

// Truncate discards every instruction, reference and string added after m.
func (u *Unit) Truncate(m Mark) {
	u.checkOpen()
	u.instructions = u.instructions[:m.instructions]
	u.varRefs = u.varRefs[:m.varRefs]
	u.labelRefs = u.labelRefs[:m.labelRefs]
	u.scriptRefs = u.scriptRefs[:m.scriptRefs]
	if len(u.data) > m.data {
		u.data = u.data[:m.data]
		for s, off := range u.strings {
			if off >= m.data {
				delete(u.strings, s)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Globals
// ---------------------------------------------------------------------------

// DeclareGlobal adds a global variable and returns its 1-based index.
func (u *Unit) DeclareGlobal(pos diag.Pos, name string) (int, error) {
	u.checkOpen()
	if _, ok := u.globalIndex[name]; ok {
		return 0, diag.Errorf(diag.Semantic, pos, "Duplicate global variable: %s", name)
	}
	for _, s := range u.scripts {
		if _, ok := s.LocalIndex(name); ok {
			return 0, diag.Errorf(diag.Semantic, pos, "Global variable %s conflicts with a local variable of script %s", name, s.Name)
		}
	}
	u.globals = append(u.globals, name)
	u.globalIndex[name] = len(u.globals)
	return len(u.globals), nil
}

// InitGlobal records the initial value of a declared global.
func (u *Unit) InitGlobal(name string, value float32) {
	u.initGlobals = append(u.initGlobals, bytecode.InitGlobal{Name: name, Value: value})
}

// GlobalIndex returns the index of a global variable.
func (u *Unit) GlobalIndex(name string) (int, bool) {
	i, ok := u.globalIndex[name]
	return i, ok
}

// Globals returns the global variable names in index order.
func (u *Unit) Globals() []string {
	return u.globals
}

// ---------------------------------------------------------------------------
// Scripts
// ---------------------------------------------------------------------------

// BeginScript opens a script at the current address. Parameters become the
// first variables of the script.
func (u *Unit) BeginScript(pos diag.Pos, name string, typ bytecode.ScriptType, params []string, source string) (*bytecode.Script, error) {
	u.checkOpen()
	if u.current != nil {
		panic("link: script " + u.current.Name + " not ended")
	}
	if _, ok := u.scriptIndex[name]; ok {
		return nil, diag.Errorf(diag.Semantic, pos, "Duplicate script definition: %s", name)
	}
	s := &bytecode.Script{
		ID:         u.opts.FirstScriptID + len(u.scripts),
		Name:       name,
		SourceFile: source,
		Type:       typ,
		VarOffset:  len(u.globals),
		Address:    len(u.instructions),
	}
	u.scripts = append(u.scripts, s)
	u.scriptIndex[name] = s
	u.current = s
	for _, p := range params {
		if err := u.AddLocal(pos, p); err != nil {
			return nil, err
		}
	}
	s.ParamCount = len(params)
	return s, nil
}

// AddLocal appends a local variable to the open script.
func (u *Unit) AddLocal(pos diag.Pos, name string) error {
	if u.current == nil {
		panic("link: local variable outside of a script")
	}
	if _, ok := u.current.LocalIndex(name); ok {
		return diag.Errorf(diag.Semantic, pos, "Duplicate local variable: %s", name)
	}
	if _, ok := u.globalIndex[name]; ok {
		return diag.Errorf(diag.Semantic, pos, "Local variable %s hides a global variable", name)
	}
	u.current.Variables = append(u.current.Variables, name)
	return nil
}

// EndScript closes the open script.
func (u *Unit) EndScript() {
	u.current = nil
}

// Current returns the open script, if any.
func (u *Unit) Current() *bytecode.Script {
	return u.current
}

// Script returns a declared script by name.
func (u *Unit) Script(name string) (*bytecode.Script, bool) {
	s, ok := u.scriptIndex[name]
	return s, ok
}

// Scripts returns the script table.
func (u *Unit) Scripts() []*bytecode.Script {
	return u.scripts
}

// ---------------------------------------------------------------------------
// Deferred references
// ---------------------------------------------------------------------------

// RefVar defers the variable operand of the instruction at ip.
func (u *Unit) RefVar(pos diag.Pos, ip int, name string) {
	u.varRefs = append(u.varRefs, varRef{pos: pos, ip: ip, name: name, script: u.current})
}

func (u *Unit) labelKey(name string) labelKey {
	return labelKey{script: len(u.scripts) - 1, name: name}
}

// DeclareLabel binds a label of the open script to the current address.
func (u *Unit) DeclareLabel(pos diag.Pos, name string) error {
	k := u.labelKey(name)
	if _, ok := u.labels[k]; ok {
		return diag.Errorf(diag.Semantic, pos, "Duplicate label: %s", name)
	}
	u.labels[k] = len(u.instructions)
	return nil
}

// RefLabel defers the address operand of the instruction at ip.
func (u *Unit) RefLabel(pos diag.Pos, ip int, name string) {
	u.labelRefs = append(u.labelRefs, labelRef{pos: pos, ip: ip, key: u.labelKey(name)})
}

// RefScript defers the script id operand of the CALL at ip. argc is the
// number of arguments passed, or -1 to skip the check.
func (u *Unit) RefScript(pos diag.Pos, ip int, name string, argc int) {
	u.scriptRefs = append(u.scriptRefs, scriptRef{pos: pos, ip: ip, name: name, argc: argc})
}

// AddAutorun registers a script to start automatically.
func (u *Unit) AddAutorun(pos diag.Pos, name string) error {
	u.checkOpen()
	for _, a := range u.autoruns {
		if a.name == name {
			return diag.Errorf(diag.Semantic, pos, "Duplicate autorun definition: %s", name)
		}
	}
	u.autoruns = append(u.autoruns, autorunRef{pos: pos, name: name})
	return nil
}

// ScriptUsage returns how many calls and autorun entries reference the
// script with the given id. It is only meaningful after Seal.
func (u *Unit) ScriptUsage(id int) int {
	i := id - u.opts.FirstScriptID
	if i < 0 || i >= len(u.usage) {
		return 0
	}
	return u.usage[i]
}

func (u *Unit) String() string {
	return fmt.Sprintf("unit: %d instructions, %d scripts, %d globals, %d bytes of data",
		len(u.instructions), len(u.scripts), len(u.globals), len(u.data))
}
