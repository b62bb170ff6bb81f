// Package compiler translates challenge language source files into
// bytecode. A Compiler is one compilation session: files are compiled in
// order into a shared link.Unit, so later files see the globals, scripts
// and constants of earlier ones, and Seal links the result.
package compiler

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/text/encoding/charmap"

	"github.com/chazu/chlc/compiler/grammar"
	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
	"github.com/chazu/chlc/pkg/link"
)

var log = commonlog.GetLogger("chlc.compiler")

// Banner is the first string of the data section of every compiled
// program.
const Banner = "Compiled with chlc"

// Options configures a compilation session.
type Options struct {
	TabWidth             int  // columns per tab stop, DefaultTabWidth when zero
	FirstScriptID        int  // id of the first script, 1 when zero
	SharedStrings        bool // store each distinct string literal once
	IgnoreMissingScripts bool // undefined scripts are warnings
}

// Compiler is a compilation session.
type Compiler struct {
	opts    Options
	grammar *grammar.Grammar
	unit    *link.Unit

	constants map[string]constDef
	defines   map[string]definition
	files     []string
}

// New creates a compilation session.
func New(opts Options) *Compiler {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	c := &Compiler{
		opts:    opts,
		grammar: grammar.Default(),
		unit: link.NewUnit(link.Options{
			FirstScriptID:        opts.FirstScriptID,
			SharedStrings:        opts.SharedStrings,
			IgnoreMissingScripts: opts.IgnoreMissingScripts,
		}),
		constants: make(map[string]constDef),
		defines:   make(map[string]definition),
	}
	if _, err := c.unit.StoreString(Banner); err != nil {
		panic(err)
	}
	return c
}

// Unit returns the compilation unit being built.
func (c *Compiler) Unit() *link.Unit {
	return c.unit
}

// Files returns the names of the files compiled so far.
func (c *Compiler) Files() []string {
	return c.files
}

// CompileFile reads and compiles a source file.
func (c *Compiler) CompileFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return diag.Wrap(diag.IO, diag.Pos{File: path}, fmt.Errorf("cannot read %s: %w", path, err))
	}
	return c.Compile(path, src)
}

// Compile compiles src, naming it file in diagnostics and in the script
// table. Source that is not valid UTF-8 is read as Windows-1252. The first
// error aborts the file; code already emitted for earlier scripts of the
// file is kept. Compile panics if the session has been sealed.
func (c *Compiler) Compile(file string, src []byte) error {
	if c.unit.Sealed() {
		panic("compiler: compile after seal")
	}
	log.Infof("compiling %s...", file)
	text, err := decodeSource(src)
	if err != nil {
		return diag.Wrap(diag.IO, diag.Pos{File: file}, err)
	}
	tokens, err := Tokenize(file, text, c.grammar, c.opts.TabWidth)
	if err != nil {
		return err
	}
	c.files = append(c.files, file)
	p := newParser(c, file, ImportantTokens(tokens))
	_, err = p.parseFile()
	return err
}

func decodeSource(src []byte) (string, error) {
	if utf8.Valid(src) {
		return string(src), nil
	}
	return charmap.Windows1252.NewDecoder().String(string(src))
}

// Seal links the unit and returns the program. See link.Unit.Seal.
func (c *Compiler) Seal() (*bytecode.Program, error) {
	return c.unit.Seal()
}

// Program returns the sealed program, or nil before a successful Seal.
func (c *Compiler) Program() *bytecode.Program {
	return c.unit.Program()
}
