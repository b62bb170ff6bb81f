// Package image stores sealed programs as .chlb files: the magic CHLB
// followed by a canonical CBOR document holding the format version and the
// program. Instruction operands are kept as their raw 32-bit encoding, so
// floats and variable indices round-trip exactly.
package image

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/chlc/pkg/bytecode"
)

// Magic opens every image.
const Magic = "CHLB"

// Version is the format version written by Encode. Decode accepts only
// this version.
const Version = 1

// ErrBadMagic is returned by Decode when the input is not an image.
var ErrBadMagic = errors.New("image: not a chlb image")

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type document struct {
	Version int     `cbor:"1,keyasint"`
	Program program `cbor:"2,keyasint"`
}

type program struct {
	Instructions []instruction `cbor:"1,keyasint"`
	Scripts      []script      `cbor:"2,keyasint"`
	Globals      []string      `cbor:"3,keyasint"`
	InitGlobals  []initGlobal  `cbor:"4,keyasint"`
	Data         []byte        `cbor:"5,keyasint"`
	Autorun      []int         `cbor:"6,keyasint"`
}

type instruction struct {
	Op      uint32 `cbor:"1,keyasint"`
	Flags   uint32 `cbor:"2,keyasint"`
	Type    uint32 `cbor:"3,keyasint"`
	Operand uint32 `cbor:"4,keyasint"`
	Line    int32  `cbor:"5,keyasint,omitempty"`
}

type script struct {
	ID         int      `cbor:"1,keyasint"`
	Name       string   `cbor:"2,keyasint"`
	SourceFile string   `cbor:"3,keyasint"`
	Type       uint32   `cbor:"4,keyasint"`
	VarOffset  int      `cbor:"5,keyasint"`
	Variables  []string `cbor:"6,keyasint"`
	ParamCount int      `cbor:"7,keyasint"`
	Address    int      `cbor:"8,keyasint"`
}

type initGlobal struct {
	Name  string  `cbor:"1,keyasint"`
	Value float32 `cbor:"2,keyasint"`
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Encode writes p as an image.
func Encode(w io.Writer, p *bytecode.Program) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	return cborEncMode.NewEncoder(w).Encode(document{Version: Version, Program: toWire(p)})
}

// Marshal returns the image of p.
func Marshal(p *bytecode.Program) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the image of p to path.
func WriteFile(path string, p *bytecode.Program) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

func toWire(p *bytecode.Program) program {
	out := program{
		Instructions: make([]instruction, len(p.Instructions)),
		Scripts:      make([]script, len(p.Scripts)),
		Globals:      p.Globals,
		Data:         p.Data,
		Autorun:      p.Autorun,
	}
	for i, instr := range p.Instructions {
		out.Instructions[i] = instruction{
			Op:      uint32(instr.Op),
			Flags:   instr.Flags,
			Type:    uint32(instr.Type),
			Operand: instr.OperandBits(),
			Line:    instr.Line,
		}
	}
	for i, s := range p.Scripts {
		out.Scripts[i] = script{
			ID:         s.ID,
			Name:       s.Name,
			SourceFile: s.SourceFile,
			Type:       uint32(s.Type),
			VarOffset:  s.VarOffset,
			Variables:  s.Variables,
			ParamCount: s.ParamCount,
			Address:    s.Address,
		}
	}
	if p.InitGlobals != nil {
		out.InitGlobals = make([]initGlobal, len(p.InitGlobals))
		for i, g := range p.InitGlobals {
			out.InitGlobals[i] = initGlobal{Name: g.Name, Value: g.Value}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// Decode reads an image and validates the program it holds.
func Decode(r io.Reader) (*bytecode.Program, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != Magic {
		return nil, ErrBadMagic
	}
	var doc document
	if err := cbor.NewDecoder(br).Decode(&doc); err != nil {
		return nil, fmt.Errorf("image: unmarshal program: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("image: unsupported version %d (want %d)", doc.Version, Version)
	}
	p, err := fromWire(doc.Program)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	return p, nil
}

// Unmarshal decodes an image held in memory.
func Unmarshal(data []byte) (*bytecode.Program, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*bytecode.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func fromWire(in program) (*bytecode.Program, error) {
	p := &bytecode.Program{
		Instructions: make([]bytecode.Instruction, len(in.Instructions)),
		Scripts:      make([]*bytecode.Script, len(in.Scripts)),
		Globals:      in.Globals,
		Data:         in.Data,
		Autorun:      in.Autorun,
	}
	for i, w := range in.Instructions {
		instr := bytecode.Instruction{
			Op:    bytecode.Opcode(w.Op),
			Flags: w.Flags,
			Type:  bytecode.DataType(w.Type),
			Line:  w.Line,
		}
		if err := instr.SetOperandBits(w.Operand); err != nil {
			return nil, fmt.Errorf("image: instruction %d: %w", i, err)
		}
		p.Instructions[i] = instr
	}
	for i, s := range in.Scripts {
		if s.ParamCount < 0 || s.ParamCount > len(s.Variables) {
			return nil, fmt.Errorf("image: script %s: %d parameters but %d variables", s.Name, s.ParamCount, len(s.Variables))
		}
		p.Scripts[i] = &bytecode.Script{
			ID:         s.ID,
			Name:       s.Name,
			SourceFile: s.SourceFile,
			Type:       bytecode.ScriptType(s.Type),
			VarOffset:  s.VarOffset,
			Variables:  s.Variables,
			ParamCount: s.ParamCount,
			Address:    s.Address,
		}
	}
	if in.InitGlobals != nil {
		p.InitGlobals = make([]bytecode.InitGlobal, len(in.InitGlobals))
		for i, g := range in.InitGlobals {
			p.InitGlobals[i] = bytecode.InitGlobal{Name: g.Name, Value: g.Value}
		}
	}
	return p, nil
}
