// Package asm reads challenge assembly, the textual format written by
// bytecode.Program.Disassemble, and builds a program through link.Unit.
//
// A listing is divided in sections:
//
//	.DATA      string "text"
//	.GLOBALS   global name [= value]
//	           global constant NAME = value
//	.SCRIPTS   SOURCE file
//	           begin <type> Name[(param, ...)]
//	           local name
//	           constant NAME = value
//	           label:
//	           MNEMONIC [operand]
//	.AUTORUN   run script Name
//
// Everything after // outside a string is a comment. Variable operands
// (POPF x, PUSHF [x], PUSHV x) and CALL/START operands are resolved when
// the unit is sealed. Jump and EXCEPT operands are labels of the same
// script or absolute addresses.
package asm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
	"github.com/chazu/chlc/pkg/link"
)

var log = commonlog.GetLogger("chlc.asm")

// Options configures an Assembler.
type Options struct {
	FirstScriptID        int
	SharedStrings        bool
	IgnoreMissingScripts bool

	// Constants are usable as integer operands in every file.
	Constants map[string]int
}

// Assembler assembles one or more listings into a single unit.
type Assembler struct {
	unit      *link.Unit
	constants map[string]int
	files     []string
}

// New creates an assembler.
func New(opts Options) *Assembler {
	a := &Assembler{
		unit: link.NewUnit(link.Options{
			FirstScriptID:        opts.FirstScriptID,
			SharedStrings:        opts.SharedStrings,
			IgnoreMissingScripts: opts.IgnoreMissingScripts,
		}),
		constants: make(map[string]int, len(opts.Constants)),
	}
	for name, v := range opts.Constants {
		a.constants[name] = v
	}
	return a
}

// DefineConstants makes values usable as integer operands. Redefining a
// name with a different value logs a warning.
func (a *Assembler) DefineConstants(values map[string]int, source string) {
	for name, v := range values {
		if old, ok := a.constants[name]; ok && old != v {
			log.Warningf("%s: constant %s redefined from %d to %d", source, name, old, v)
		}
		a.constants[name] = v
	}
}

// Unit returns the unit being built.
func (a *Assembler) Unit() *link.Unit {
	return a.unit
}

// Files returns the names of the listings assembled so far.
func (a *Assembler) Files() []string {
	return a.files
}

// AssembleFile reads and assembles a listing.
func (a *Assembler) AssembleFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return diag.Wrap(diag.IO, diag.Pos{File: path}, fmt.Errorf("cannot read %s: %w", path, err))
	}
	return a.Assemble(path, src)
}

// Assemble assembles src, naming it file in diagnostics. Scripts take file
// as their source name until a SOURCE directive changes it.
func (a *Assembler) Assemble(file string, src []byte) error {
	if a.unit.Sealed() {
		panic("asm: assemble after seal")
	}
	log.Infof("assembling %s...", file)
	a.files = append(a.files, file)
	f := &fileState{a: a, file: file, source: file}
	defer f.endScript()
	for n, line := range strings.Split(string(src), "\n") {
		f.line = n + 1
		text := strings.TrimSpace(stripComment(strings.TrimSuffix(line, "\r")))
		if text == "" {
			continue
		}
		if err := f.directive(text); err != nil {
			return err
		}
	}
	return nil
}

// Seal links the unit. See link.Unit.Seal.
func (a *Assembler) Seal() (*bytecode.Program, error) {
	return a.unit.Seal()
}

// ---------------------------------------------------------------------------
// Per-file state
// ---------------------------------------------------------------------------

type fileState struct {
	a       *Assembler
	file    string
	line    int
	section string
	source  string

	inScript   bool
	localConst map[string]int
}

func (f *fileState) pos() diag.Pos {
	return diag.Pos{File: f.file, Line: f.line, Column: 1}
}

func (f *fileState) errorf(format string, args ...interface{}) error {
	return diag.Errorf(diag.Syntax, f.pos(), format, args...)
}

func (f *fileState) endScript() {
	if f.inScript {
		f.a.unit.EndScript()
		f.inScript = false
	}
}

func (f *fileState) directive(text string) error {
	if strings.HasPrefix(text, ".") {
		switch text {
		case ".DATA", ".GLOBALS", ".SCRIPTS", ".AUTORUN":
			f.endScript()
			f.section = text
			return nil
		}
		return f.errorf("Unknown section: %s", text)
	}
	switch f.section {
	case ".DATA":
		return f.data(text)
	case ".GLOBALS":
		return f.global(text)
	case ".SCRIPTS":
		return f.scripts(text)
	case ".AUTORUN":
		return f.autorun(text)
	}
	return f.errorf("Statement outside of a section: %s", text)
}

// ---------------------------------------------------------------------------
// Sections
// ---------------------------------------------------------------------------

func (f *fileState) data(text string) error {
	kw, rest := cut(text)
	if kw != "string" {
		return f.errorf("Expected string, got %s", kw)
	}
	s, err := unquote(rest)
	if err != nil {
		return f.errorf("%s", err)
	}
	if _, err := f.a.unit.StoreString(s); err != nil {
		return diag.Wrap(diag.Semantic, f.pos(), err)
	}
	return nil
}

func (f *fileState) global(text string) error {
	kw, rest := cut(text)
	if kw != "global" {
		return f.errorf("Expected global, got %s", kw)
	}
	name, value, hasValue := splitAssign(rest)
	if c, ok := strings.CutPrefix(name, "constant "); ok {
		if !hasValue {
			return f.errorf("Missing value of constant %s", strings.TrimSpace(c))
		}
		v, err := f.intValue(value)
		if err != nil {
			return err
		}
		f.a.constants[strings.TrimSpace(c)] = v
		return nil
	}
	if !isIdent(name) {
		return f.errorf("Invalid global name: %s", name)
	}
	if _, err := f.a.unit.DeclareGlobal(f.pos(), name); err != nil {
		return err
	}
	if hasValue {
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return f.errorf("Invalid number: %s", value)
		}
		f.a.unit.InitGlobal(name, float32(v))
	}
	return nil
}

func (f *fileState) autorun(text string) error {
	fields := strings.Fields(text)
	if len(fields) != 3 || fields[0] != "run" || fields[1] != "script" {
		return f.errorf("Expected run script NAME")
	}
	return f.a.unit.AddAutorun(f.pos(), fields[2])
}

func (f *fileState) scripts(text string) error {
	kw, rest := cut(text)
	switch {
	case kw == "SOURCE":
		f.source = rest
		return nil
	case kw == "begin":
		return f.begin(rest)
	case !f.inScript:
		return f.errorf("Statement outside of a script: %s", text)
	case kw == "local":
		if !isIdent(rest) {
			return f.errorf("Invalid local name: %s", rest)
		}
		return f.a.unit.AddLocal(f.pos(), rest)
	case kw == "constant":
		name, value, ok := splitAssign(rest)
		if !ok {
			return f.errorf("Missing value of constant %s", name)
		}
		v, err := f.intValue(value)
		if err != nil {
			return err
		}
		f.localConst[name] = v
		return nil
	case rest == "" && strings.HasSuffix(kw, ":"):
		label := strings.TrimSuffix(kw, ":")
		if !isIdent(label) {
			return f.errorf("Invalid label: %s", label)
		}
		return f.a.unit.DeclareLabel(f.pos(), label)
	}
	return f.instruction(kw, rest)
}

// begin parses "<type> Name[(params)]".
func (f *fileState) begin(text string) error {
	f.endScript()
	head, params := text, []string(nil)
	if i := strings.IndexByte(text, '('); i >= 0 {
		if !strings.HasSuffix(text, ")") {
			return f.errorf("Missing ) in script header")
		}
		head = text[:i]
		for _, p := range strings.Split(text[i+1:len(text)-1], ",") {
			if p = strings.TrimSpace(p); p != "" {
				params = append(params, p)
			}
		}
	}
	words := strings.Fields(head)
	if len(words) < 2 {
		return f.errorf("Expected script type and name")
	}
	name := words[len(words)-1]
	kw := strings.Join(words[:len(words)-1], " ")
	typ, ok := bytecode.ParseScriptType(kw)
	if !ok {
		return f.errorf("Unknown script type: %s", kw)
	}
	if _, err := f.a.unit.BeginScript(f.pos(), name, typ, params, f.source); err != nil {
		return err
	}
	f.inScript = true
	f.localConst = make(map[string]int)
	return nil
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

func (f *fileState) instruction(mnemonic, operand string) error {
	instr, ok := bytecode.FromMnemonic(mnemonic)
	if !ok {
		return f.errorf("Unknown mnemonic: %s", mnemonic)
	}
	instr.Line = int32(f.line)
	u := f.a.unit

	if operand == "" {
		u.Emit(instr)
		return nil
	}
	if !instr.Op.HasArg() {
		return f.errorf("%s takes no operand", mnemonic)
	}

	switch {
	case instr.Op.IsIP():
		if isIdent(operand) {
			u.RefLabel(f.pos(), u.Emit(instr), operand)
			return nil
		}
		target, err := strconv.Atoi(operand)
		if err != nil {
			return f.errorf("Invalid address: %s", operand)
		}
		u.PatchJump(u.Emit(instr), target)
		return nil

	case instr.Op == bytecode.OpCall:
		if isIdent(operand) {
			u.RefScript(f.pos(), u.Emit(instr), operand, -1)
			return nil
		}

	case instr.Op == bytecode.OpSys:
		if isIdent(operand) {
			id, ok := bytecode.NativeID(operand)
			if !ok {
				return diag.Errorf(diag.Semantic, f.pos(), "Unknown native function: %s", operand)
			}
			instr.Int = int32(id)
			u.Emit(instr)
			return nil
		}

	case instr.Op == bytecode.OpPush || instr.Op == bytecode.OpPop || instr.Op == bytecode.OpCast:
		return f.variable(instr, operand)
	}

	if err := f.setOperand(&instr, operand); err != nil {
		return err
	}
	u.Emit(instr)
	return nil
}

// variable handles the operand of PUSH, POP and CAST, which is either a
// literal or a variable: [x] for a pushed reference, a bare name for POP,
// CAST and PUSHV.
func (f *fileState) variable(instr bytecode.Instruction, operand string) error {
	u := f.a.unit
	name, bracketed := operand, false
	if strings.HasPrefix(operand, "[") && strings.HasSuffix(operand, "]") {
		name, bracketed = strings.TrimSpace(operand[1:len(operand)-1]), true
	}
	named := instr.Op != bytecode.OpPush || instr.Type == bytecode.TypeVar
	switch {
	case bracketed || (named && instr.Op != bytecode.OpPush):
		instr.Flags = bytecode.FlagRef
	case !named:
		if err := f.setOperand(&instr, operand); err != nil {
			return err
		}
		u.Emit(instr)
		return nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		instr.Int = int32(n)
		u.Emit(instr)
		return nil
	}
	if !isIdent(name) {
		return f.errorf("Invalid variable: %s", name)
	}
	u.RefVar(f.pos(), u.Emit(instr), name)
	return nil
}

func (f *fileState) setOperand(instr *bytecode.Instruction, operand string) error {
	switch {
	case instr.IsIntOperand():
		v, err := f.intValue(operand)
		if err != nil {
			return err
		}
		instr.Int = int32(v)
	case instr.Type == bytecode.TypeBool:
		b, err := strconv.ParseBool(operand)
		if err != nil {
			return f.errorf("Invalid boolean: %s", operand)
		}
		instr.Bool = b
	default:
		v, err := strconv.ParseFloat(operand, 32)
		if err != nil {
			return f.errorf("Invalid number: %s", operand)
		}
		instr.Float = float32(v)
	}
	return nil
}

// intValue parses an integer literal or a constant name.
func (f *fileState) intValue(s string) (int, error) {
	if v, err := strconv.ParseInt(s, 0, 32); err == nil {
		return int(v), nil
	}
	if v, ok := f.localConst[s]; ok {
		return v, nil
	}
	if v, ok := f.a.constants[s]; ok {
		return v, nil
	}
	if isIdent(s) {
		return 0, diag.Errorf(diag.Semantic, f.pos(), "Undefined constant: %s", s)
	}
	return 0, f.errorf("Invalid integer: %s", s)
}
