package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// Instruction is one fixed-size VM instruction. Exactly one of Int, Float
// and Bool is meaningful, selected by the opcode and data type (see
// IsIntOperand).
type Instruction struct {
	Op    Opcode
	Flags uint32
	Type  DataType
	Int   int32
	Float float32
	Bool  bool
	Line  int32
}

// ----------------------------------------------------------------------------
// Mnemonics
// ----------------------------------------------------------------------------

type mnemonicKey struct {
	op    Opcode
	flags uint32
	typ   DataType
}

// mnemonics lists every textual form of an instruction. When a tuple has
// more than one name, the first listed is used for printing.
var mnemonics = []struct {
	name  string
	op    Opcode
	flags uint32
	typ   DataType
}{
	{"END", OpEnd, 0, TypeNone},
	{"JZ", OpJz, FlagDefault, TypeInt},
	{"JZ", OpJz, FlagForward, TypeInt},
	{"PUSHI", OpPush, FlagDefault, TypeInt},
	{"PUSHF", OpPush, FlagDefault, TypeFloat},
	{"PUSHC", OpPush, FlagDefault, TypeCoords},
	{"PUSHO", OpPush, FlagDefault, TypeObject},
	{"PUSHB", OpPush, FlagDefault, TypeBool},
	{"PUSHV", OpPush, FlagDefault, TypeVar},
	{"PUSHV", OpPush, FlagRef, TypeVar},
	{"POPI", OpPop, FlagDefault, TypeInt},
	{"POPF", OpPop, FlagDefault, TypeFloat},
	{"POPO", OpPop, FlagDefault, TypeObject},
	{"POPF", OpPop, FlagRef, TypeFloat},
	{"ADDF", OpAdd, FlagDefault, TypeFloat},
	{"ADDC", OpAdd, FlagDefault, TypeCoords},
	{"SYS", OpSys, FlagDefault, TypeNone},
	{"SYS2", OpSys, FlagDefault, TypeFloat},
	{"SUBF", OpSub, FlagDefault, TypeFloat},
	{"SUBC", OpSub, FlagDefault, TypeCoords},
	{"NEG", OpNeg, FlagDefault, TypeFloat},
	{"MUL", OpMul, FlagDefault, TypeFloat},
	{"DIV", OpDiv, FlagDefault, TypeFloat},
	{"MOD", OpMod, FlagDefault, TypeFloat},
	{"NOT", OpNot, FlagDefault, TypeInt},
	{"AND", OpAnd, FlagDefault, TypeInt},
	{"OR", OpOr, FlagDefault, TypeInt},
	{"EQ", OpEq, FlagDefault, TypeFloat},
	{"NEQ", OpNeq, FlagDefault, TypeFloat},
	{"GEQ", OpGeq, FlagDefault, TypeFloat},
	{"LEQ", OpLeq, FlagDefault, TypeFloat},
	{"GT", OpGt, FlagDefault, TypeFloat},
	{"LT", OpLt, FlagDefault, TypeFloat},
	{"JMP", OpJmp, FlagDefault, TypeInt},
	{"JMP", OpJmp, FlagForward, TypeInt},
	{"SLEEP", OpSleep, FlagDefault, TypeFloat},
	{"EXCEPT", OpExcept, FlagDefault, TypeInt},
	{"CASTI", OpCast, FlagDefault, TypeInt},
	{"CASTF", OpCast, FlagDefault, TypeFloat},
	{"CASTC", OpCast, FlagDefault, TypeCoords},
	{"CASTO", OpCast, FlagDefault, TypeObject},
	{"CASTB", OpCast, FlagDefault, TypeBool},
	{"CALL", OpCall, FlagDefault, TypeInt},
	{"START", OpCall, FlagAsync, TypeInt},
	{"ENDEXCEPT", OpEndExcept, FlagDefault, TypeInt},
	{"FREE", OpEndExcept, FlagFree, TypeInt},
	{"RETEXCEPT", OpRetExcept, FlagDefault, TypeInt},
	{"ITEREXCEPT", OpIterExcept, FlagDefault, TypeInt},
	{"BRKEXCEPT", OpBrkExcept, FlagDefault, TypeInt},
	{"SWAP", OpSwap, FlagDefault, TypeInt},
	{"DUP", OpDup, 0, TypeNone},
	{"LINE", OpLine, FlagRef, TypeFloat},
	{"REF_AND_OFFSET_PUSH", OpRefAndOffsetPush, FlagRef, TypeVar},
	{"REF_AND_OFFSET_POP", OpRefAndOffsetPop, FlagRef, TypeFloat},
	{"REF_PUSH", OpRefPush, FlagDefault, TypeVar},
	{"REF_PUSH2", OpRefPush, FlagRef, TypeVar},
	{"REF_ADD_PUSH", OpRefAddPush, FlagDefault, TypeFloat},
	{"TAN", OpTan, 0, TypeNone},
	{"SIN", OpSin, 0, TypeNone},
	{"COS", OpCos, 0, TypeNone},
	{"ATAN", OpAtan, 0, TypeNone},
	{"ASIN", OpAsin, 0, TypeNone},
	{"ACOS", OpAcos, 0, TypeNone},
	{"ATAN2", OpAtan2, 0, TypeNone},
	{"SQRT", OpSqrt, 0, TypeNone},
}

var (
	byMnemonic = make(map[string]mnemonicKey)
	byKey      = make(map[mnemonicKey]string)
)

func init() {
	for _, m := range mnemonics {
		k := mnemonicKey{m.op, m.flags, m.typ}
		if _, ok := byMnemonic[m.name]; !ok {
			byMnemonic[m.name] = k
		}
		if _, ok := byKey[k]; !ok {
			byKey[k] = m.name
		}
	}
}

// FromMnemonic returns a zero-operand instruction for the given mnemonic.
func FromMnemonic(name string) (Instruction, bool) {
	k, ok := byMnemonic[name]
	if !ok {
		return Instruction{}, false
	}
	return Instruction{Op: k.op, Flags: k.flags, Type: k.typ}, true
}

// MustMnemonic is like FromMnemonic but panics on an unknown name. It is
// meant for code generators that only use fixed mnemonics.
func MustMnemonic(name string) Instruction {
	instr, ok := FromMnemonic(name)
	if !ok {
		panic("bytecode: unknown mnemonic " + name)
	}
	return instr
}

// Mnemonic returns the textual name of the instruction. A reference or
// forward flag falls back to the plain form of the same opcode and type,
// so "PUSHF" with FlagRef prints as PUSHF.
func (i Instruction) Mnemonic() string {
	if name, ok := byKey[mnemonicKey{i.Op, i.Flags, i.Type}]; ok {
		return name
	}
	if i.Flags == FlagRef {
		if name, ok := byKey[mnemonicKey{i.Op, FlagDefault, i.Type}]; ok {
			return name
		}
	}
	return fmt.Sprintf("%s<%d,%s>", i.Op, i.Flags, i.Type)
}

// IsReference reports whether the operand is a variable index.
func (i Instruction) IsReference() bool {
	return (i.Op == OpPush || i.Op == OpPop || i.Op == OpCast) && i.Flags&FlagRef != 0
}

// IsForward reports whether a jump targets a later instruction.
func (i Instruction) IsForward() bool {
	return i.Op.IsJump() && i.Flags&FlagForward != 0
}

// IsAsync reports whether a CALL starts the script in background.
func (i Instruction) IsAsync() bool {
	return i.Op == OpCall && i.Flags&FlagAsync != 0
}

// IsFree reports whether an ENDEXCEPT is the FREE form.
func (i Instruction) IsFree() bool {
	return i.Op == OpEndExcept && i.Flags&FlagFree != 0
}

// IsIntOperand reports whether the operand lives in Int.
func (i Instruction) IsIntOperand() bool {
	if i.IsReference() || i.Op.ForceInt() || i.Op.IsIP() || i.Op.IsScript() {
		return true
	}
	switch i.Type {
	case TypeFloat, TypeCoords, TypeBool:
		return false
	}
	return true
}

// OperandBits returns the 32-bit encoding of the operand, as stored in a
// compiled file.
func (i Instruction) OperandBits() uint32 {
	switch {
	case i.IsIntOperand() && i.Type == TypeVar:
		return math.Float32bits(float32(i.Int))
	case i.IsIntOperand():
		return uint32(i.Int)
	case i.Type == TypeBool:
		if i.Bool {
			return 1
		}
		return 0
	default:
		return math.Float32bits(i.Float)
	}
}

// SetOperandBits is the inverse of OperandBits.
func (i *Instruction) SetOperandBits(v uint32) error {
	switch {
	case i.IsIntOperand() && i.Type == TypeVar:
		i.Int = int32(math.Float32frombits(v))
	case i.IsIntOperand():
		i.Int = int32(v)
	case i.Type == TypeBool:
		if v > 1 {
			return fmt.Errorf("invalid boolean operand %d", v)
		}
		i.Bool = v == 1
	default:
		i.Float = math.Float32frombits(v)
	}
	return nil
}

// String renders the instruction without symbol information.
func (i Instruction) String() string {
	s := i.Mnemonic()
	if !i.printsOperand() {
		return s
	}
	switch {
	case i.IsReference() && i.Op == OpPop:
		return s + " " + strconv.Itoa(int(i.Int))
	case i.IsReference():
		return s + " [" + strconv.Itoa(int(i.Int)) + "]"
	case i.Op == OpSys:
		if name, ok := NativeName(int(i.Int)); ok {
			return s + " " + name
		}
	}
	return s + " " + i.OperandString()
}

func (i Instruction) printsOperand() bool {
	if !i.Op.HasArg() {
		return false
	}
	// POP without a variable and plain SWAP take no operand
	if (i.Op == OpPop || i.Op == OpSwap) && i.Int == 0 && !i.IsReference() {
		return false
	}
	return true
}

// OperandString formats the raw operand value.
func (i Instruction) OperandString() string {
	switch {
	case i.IsIntOperand():
		return strconv.Itoa(int(i.Int))
	case i.Type == TypeBool:
		return strconv.FormatBool(i.Bool)
	default:
		return FormatFloat(i.Float)
	}
}

// FormatFloat prints a float32 with the shortest exact representation and
// at least one fractional digit.
func FormatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return s
	}
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}
