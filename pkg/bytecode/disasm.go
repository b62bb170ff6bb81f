package bytecode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// AsmVersion is written in the header of disassembled listings.
const AsmVersion = 12

// Disassemble renders the program in the textual assembler format. Feeding
// the result to the assembler reproduces the same instruction list, script
// table, globals, data section and autorun list.
func (p *Program) Disassemble() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "// Challenge ASM version %d\n\n", AsmVersion)

	// Data
	sb.WriteString(".DATA\n")
	for _, s := range p.DataStrings() {
		fmt.Fprintf(&sb, "string %s\t// %d\n", QuoteData(s.Raw), s.Offset)
	}
	sb.WriteString("\n")

	// Globals
	sb.WriteString(".GLOBALS\n")
	initial := make(map[string]float32, len(p.InitGlobals))
	for _, g := range p.InitGlobals {
		initial[g.Name] = g.Value
	}
	for _, name := range p.Globals {
		if v, ok := initial[name]; ok && v != 0 {
			fmt.Fprintf(&sb, "global %s = %s\n", name, FormatFloat(v))
		} else {
			fmt.Fprintf(&sb, "global %s\n", name)
		}
	}
	sb.WriteString("\n")

	// Scripts
	sb.WriteString(".SCRIPTS\n")
	scripts := append([]*Script(nil), p.Scripts...)
	sort.SliceStable(scripts, func(i, j int) bool { return scripts[i].Address < scripts[j].Address })
	labels := p.jumpTargets()
	source := ""
	for i, s := range scripts {
		if s.SourceFile != source {
			source = s.SourceFile
			fmt.Fprintf(&sb, "\nSOURCE %s\n", source)
		}
		end := len(p.Instructions)
		if i+1 < len(scripts) {
			end = scripts[i+1].Address
		}
		sb.WriteString("\n")
		p.disassembleScript(&sb, s, end, labels)
	}
	sb.WriteString("\n")

	// Autorun
	sb.WriteString(".AUTORUN\n")
	for _, id := range p.Autorun {
		if s, ok := p.ScriptByID(id); ok {
			fmt.Fprintf(&sb, "run script %s\n", s.Name)
		}
	}
	return sb.String()
}

func (p *Program) jumpTargets() map[int]bool {
	targets := make(map[int]bool)
	for _, instr := range p.Instructions {
		if instr.Op.IsIP() {
			targets[int(instr.Int)] = true
		}
	}
	return targets
}

func (p *Program) disassembleScript(sb *strings.Builder, s *Script, end int, labels map[int]bool) {
	fmt.Fprintf(sb, "begin %s\n", s.Signature())
	for _, name := range s.Locals() {
		fmt.Fprintf(sb, "\tlocal %s\n", name)
	}
	for ip := s.Address; ip < end; ip++ {
		if labels[ip] {
			fmt.Fprintf(sb, "%s:\n", labelName(ip))
		}
		fmt.Fprintf(sb, "\t%s\n", p.formatInstruction(s, p.Instructions[ip], end))
	}
}

func labelName(ip int) string {
	return "lbl" + strconv.Itoa(ip)
}

// formatInstruction renders one instruction with symbolic operands where
// they can be resolved.
func (p *Program) formatInstruction(s *Script, instr Instruction, end int) string {
	text := instr.Mnemonic()
	if !instr.printsOperand() {
		return text
	}
	switch {
	case instr.IsReference() || (instr.Op == OpPush && instr.Type == TypeVar):
		name, ok := p.VarName(s, int(instr.Int))
		if !ok {
			name = strconv.Itoa(int(instr.Int))
		}
		if instr.Op == OpPush && (instr.Type != TypeVar || instr.IsReference()) {
			return text + " [" + name + "]"
		}
		return text + " " + name
	case instr.Op == OpSys:
		if name, ok := NativeName(int(instr.Int)); ok {
			return text + " " + name
		}
	case instr.Op == OpCall:
		if callee, ok := p.ScriptByID(int(instr.Int)); ok {
			return text + " " + callee.Name
		}
	case instr.Op.IsIP():
		if t := int(instr.Int); t >= s.Address && t < end {
			return text + " " + labelName(t)
		}
	}
	return text + " " + instr.OperandString()
}

// QuoteData decodes a Windows-1252 data string and quotes it with the
// escapes understood by the assembler.
func QuoteData(raw []byte) string {
	text, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		text = raw
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range string(text) {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
