package bytecode

import "fmt"

// Opcode is the operation field of an instruction. Values are fixed by the
// target virtual machine and must not be renumbered.
type Opcode uint32

const (
	OpEnd       Opcode = iota // 0 end of script
	OpJz                      // 1 jump if zero (also used for wait loops)
	OpPush                    // 2
	OpPop                     // 3
	OpAdd                     // 4
	OpSys                     // 5 call native function
	OpSub                     // 6
	OpNeg                     // 7
	OpMul                     // 8
	OpDiv                     // 9
	OpMod                     // 10
	OpNot                     // 11
	OpAnd                     // 12
	OpOr                      // 13
	OpEq                      // 14
	OpNeq                     // 15
	OpGeq                     // 16
	OpLeq                     // 17
	OpGt                      // 18
	OpLt                      // 19
	OpJmp                     // 20
	OpSleep                   // 21
	OpExcept                  // 22 install exception handler
	OpCast                    // 23
	OpCall                    // 24 call or start user script
	OpEndExcept               // 25 also FREE
	OpRetExcept               // 26
	OpIterExcept              // 27
	OpBrkExcept               // 28
	OpSwap                    // 29
	OpDup                     // 30
	OpLine                    // 31
	OpRefAndOffsetPush        // 32
	OpRefAndOffsetPop         // 33
	OpRefPush                 // 34
	OpRefAddPush              // 35
	OpTan                     // 36
	OpSin                     // 37
	OpCos                     // 38
	OpAtan                    // 39
	OpAsin                    // 40
	OpAcos                    // 41
	OpAtan2                   // 42
	OpSqrt                    // 43
)

// DataType is the operand type field of an instruction.
type DataType uint32

const (
	TypeNone DataType = iota
	TypeInt
	TypeFloat
	TypeCoords
	TypeObject
	TypeUnk5
	TypeBool
	TypeVar
)

var dataTypeNames = [...]string{"NONE", "INT", "FLOAT", "COORDS", "OBJECT", "UNK5", "BOOLEAN", "VAR"}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", uint32(t))
}

// Instruction flags. There is a single meaningful bit whose interpretation
// depends on the opcode, hence the aliases.
const (
	FlagDefault uint32 = 1

	FlagRef     uint32 = 2 // PUSH/POP/CAST operand is a variable index
	FlagForward uint32 = 2 // jump target is after the jump
	FlagAsync   uint32 = 2 // CALL starts the script in background (START)
	FlagZero    uint32 = 2
	FlagFree    uint32 = 2 // ENDEXCEPT releases the handler (FREE)
)

// Opcode attributes.
const (
	attrArg      = 1 << iota // has an immediate operand
	attrIP                   // operand is an instruction address
	attrJump                 // operand is a jump target (FORWARD flag applies)
	attrScript               // operand is a script id
	attrForceInt             // operand is encoded as int regardless of type
	attrVarStack             // stack effect depends on the operand
)

// OpcodeInfo provides metadata about each opcode.
type OpcodeInfo struct {
	Name      string
	StackPop  int // -1 when attrVarStack is set
	StackPush int
	attrs     int
}

var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpEnd:        {"END", 0, 0, 0},
	OpJz:         {"JZ", 1, 0, attrArg | attrIP | attrJump},
	OpPush:       {"PUSH", 0, 1, attrArg},
	OpPop:        {"POP", 1, 0, attrArg},
	OpAdd:        {"ADD", -1, -1, attrVarStack},
	OpSys:        {"SYS", -1, -1, attrArg | attrForceInt | attrVarStack},
	OpSub:        {"SUB", -1, -1, attrVarStack},
	OpNeg:        {"NEG", 1, 1, 0},
	OpMul:        {"MUL", 2, 1, 0},
	OpDiv:        {"DIV", 2, 1, 0},
	OpMod:        {"MOD", 2, 1, 0},
	OpNot:        {"NOT", 1, 1, 0},
	OpAnd:        {"AND", 2, 1, 0},
	OpOr:         {"OR", 2, 1, 0},
	OpEq:         {"EQ", 2, 1, 0},
	OpNeq:        {"NEQ", 2, 1, 0},
	OpGeq:        {"GEQ", 2, 1, 0},
	OpLeq:        {"LEQ", 2, 1, 0},
	OpGt:         {"GT", 2, 1, 0},
	OpLt:         {"LT", 2, 1, 0},
	OpJmp:        {"JMP", 0, 0, attrArg | attrIP | attrJump},
	OpSleep:      {"SLEEP", 1, 1, 0},
	OpExcept:     {"EXCEPT", 0, 1, attrArg | attrIP},
	OpCast:       {"CAST", 1, 1, 0},
	OpCall:       {"CALL", -1, 0, attrArg | attrScript | attrVarStack},
	OpEndExcept:  {"ENDEXCEPT", 1, 0, 0},
	OpRetExcept:  {"RETEXCEPT", 0, 0, 0},
	OpIterExcept: {"ITEREXCEPT", 0, 0, 0},
	OpBrkExcept:  {"BRKEXCEPT", 1, 0, 0},
	OpSwap:       {"SWAP", -1, -1, attrArg | attrForceInt | attrVarStack},
	OpDup:        {"DUP", 0, 1, attrArg},
	OpLine:       {"LINE", 0, 0, attrArg},

	OpRefAndOffsetPush: {"REF_AND_OFFSET_PUSH", 0, 1, 0},
	OpRefAndOffsetPop:  {"REF_AND_OFFSET_POP", 3, 0, 0},
	OpRefPush:          {"REF_PUSH", 0, 0, 0},
	OpRefAddPush:       {"REF_ADD_PUSH", 0, 0, 0},

	OpTan:   {"TAN", 1, 1, 0},
	OpSin:   {"SIN", 1, 1, 0},
	OpCos:   {"COS", 1, 1, 0},
	OpAtan:  {"ATAN", 1, 1, 0},
	OpAsin:  {"ASIN", 1, 1, 0},
	OpAcos:  {"ACOS", 1, 1, 0},
	OpAtan2: {"ATAN2", 2, 1, 0},
	OpSqrt:  {"SQRT", 1, 1, 0},
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "UNKNOWN" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(%d)", uint32(op))}
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Valid reports whether op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// HasArg returns true if the opcode carries an immediate operand.
func (op Opcode) HasArg() bool { return GetOpcodeInfo(op).attrs&attrArg != 0 }

// IsIP returns true if the operand is an instruction address.
func (op Opcode) IsIP() bool { return GetOpcodeInfo(op).attrs&attrIP != 0 }

// IsJump returns true for JZ and JMP.
func (op Opcode) IsJump() bool { return GetOpcodeInfo(op).attrs&attrJump != 0 }

// IsScript returns true if the operand is a script id.
func (op Opcode) IsScript() bool { return GetOpcodeInfo(op).attrs&attrScript != 0 }

// ForceInt returns true if the operand is always an integer.
func (op Opcode) ForceInt() bool { return GetOpcodeInfo(op).attrs&attrForceInt != 0 }

// VarStack returns true if the stack effect depends on the operand.
func (op Opcode) VarStack() bool { return GetOpcodeInfo(op).attrs&attrVarStack != 0 }

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
