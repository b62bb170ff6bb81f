package compiler

import (
	"github.com/chazu/chlc/pkg/bytecode"
)

// ---------------------------------------------------------------------------
// Codegen: instruction emission
// ---------------------------------------------------------------------------

// emit appends instr to the unit, tagged with the current source line, and
// returns its address.
func (p *parser) emit(instr bytecode.Instruction) int {
	instr.Line = int32(p.line)
	return p.unit.Emit(instr)
}

func (p *parser) op(mnemonic string) int {
	return p.emit(bytecode.MustMnemonic(mnemonic))
}

func (p *parser) opInt(mnemonic string, v int) int {
	instr := bytecode.MustMnemonic(mnemonic)
	instr.Int = int32(v)
	return p.emit(instr)
}

func (p *parser) ip() int {
	return p.unit.IP()
}

// ---------------------------------------------------------------------------
// Push and pop
// ---------------------------------------------------------------------------

func (p *parser) pushf(v float32) int {
	instr := bytecode.MustMnemonic("PUSHF")
	instr.Float = v
	return p.emit(instr)
}

func (p *parser) pushi(v int) int {
	return p.opInt("PUSHI", v)
}

func (p *parser) pushb(v bool) int {
	instr := bytecode.MustMnemonic("PUSHB")
	instr.Bool = v
	return p.emit(instr)
}

func (p *parser) pushc(v float32) int {
	instr := bytecode.MustMnemonic("PUSHC")
	instr.Float = v
	return p.emit(instr)
}

func (p *parser) pusho(v int) int {
	return p.opInt("PUSHO", v)
}

// pushVar pushes the value of a variable. The index is resolved when the
// unit is sealed.
func (p *parser) pushVar(i int) int {
	instr := bytecode.MustMnemonic("PUSHF")
	instr.Flags = bytecode.FlagRef
	ip := p.emit(instr)
	p.unit.RefVar(p.posOf(i), ip, p.text(i))
	return ip
}

// popVar stores the top of the stack into a variable.
func (p *parser) popVar(i int) int {
	instr := bytecode.MustMnemonic("POPF")
	instr.Flags = bytecode.FlagRef
	ip := p.emit(instr)
	p.unit.RefVar(p.posOf(i), ip, p.text(i))
	return ip
}

// ---------------------------------------------------------------------------
// Native calls
// ---------------------------------------------------------------------------

func (p *parser) sys(native int) int {
	return p.opInt("SYS", native)
}

// sys2 is the native call form used by property access.
func (p *parser) sys2(native int) int {
	return p.opInt("SYS2", native)
}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

// jz emits a conditional jump. A target of -1 is patched later.
func (p *parser) jz(target int) int {
	return p.jump("JZ", target)
}

func (p *parser) jmp(target int) int {
	return p.jump("JMP", target)
}

func (p *parser) jump(mnemonic string, target int) int {
	ip := p.op(mnemonic)
	if target >= 0 {
		p.unit.PatchJump(ip, target)
	}
	return ip
}

// except installs an exception handler whose address is patched later.
func (p *parser) except() int {
	return p.op("EXCEPT")
}

// patch points the jump or handler at ip to the current address.
func (p *parser) patch(ip int) {
	p.unit.PatchJump(ip, p.ip())
}

// call emits a CALL or START of the named script. The script id is
// resolved when the unit is sealed.
func (p *parser) call(i int, argc int, background bool) int {
	mnemonic := "CALL"
	if background {
		mnemonic = "START"
	}
	ip := p.op(mnemonic)
	p.unit.RefScript(p.posOf(i), ip, p.text(i), argc)
	return ip
}
