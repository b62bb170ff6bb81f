// Package bytecode defines the in-memory program model of the challenge
// virtual machine: opcodes, instructions, the script table, global
// variables, the string data section and the autorun list.
//
// # Instructions
//
// Every instruction has the same shape: an opcode, a flag word, a data
// type, one 32-bit operand and the source line that produced it. The
// meaning of the single flag bit depends on the opcode:
//
//   - PUSH/POP/CAST: the operand is a variable index (FlagRef)
//   - JZ/JMP: the target is after the jump (FlagForward)
//   - CALL: the script is started in background (FlagAsync, "START")
//   - ENDEXCEPT: the handler is released (FlagFree, "FREE")
//
// The operand is an int, a float or a boolean depending on the opcode and
// the data type. Variable indices, native function ids and SWAP counts are
// always ints.
//
// # Mnemonics
//
// Each {opcode, flags, type} tuple has a mnemonic such as PUSHF, SYS2 or
// START. FromMnemonic builds an instruction template from a name and
// Instruction.Mnemonic maps back.
//
// # Variables
//
// Globals are numbered from 1 in declaration order. Locals of a script
// (parameters first) are numbered from Script.VarOffset+1.
//
// # Listing format
//
// Program.Disassemble renders the textual form read by package asm:
//
//	.DATA
//	string "Hello"
//	.GLOBALS
//	global counter = 1.0
//	.SCRIPTS
//	SOURCE main.txt
//	begin script Main
//		local x
//		EXCEPT lbl7
//		...
//	.AUTORUN
//	run script Main
package bytecode
