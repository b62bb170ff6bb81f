package compiler

import (
	"sort"

	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
)

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

type constDef struct {
	value  int
	source string
}

// DefineConstant adds a named integer constant visible to every file
// compiled afterwards. Redefining a name with a different value keeps the
// new value and logs a warning.
func (c *Compiler) DefineConstant(name string, value int, source string) {
	if old, ok := c.constants[name]; ok && old.value != value {
		log.Warningf("%s: constant %s redefined from %d (%s) to %d", source, name, old.value, old.source, value)
	}
	c.constants[name] = constDef{value: value, source: source}
}

// DefineConstants adds every entry of values, in name order.
func (c *Compiler) DefineConstants(values map[string]int, source string) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.DefineConstant(name, values[name], source)
	}
}

// Constant returns the value of a global constant.
func (c *Compiler) Constant(name string) (int, bool) {
	k, ok := c.constants[name]
	return k.value, ok
}

// lookupConstant resolves a name against the constants of the current
// script, then the global ones.
func (p *parser) lookupConstant(name string) (int, bool) {
	if v, ok := p.localConst[name]; ok {
		return v, true
	}
	return p.c.Constant(name)
}

// ---------------------------------------------------------------------------
// Script definitions
// ---------------------------------------------------------------------------

// definition is the signature given by a define statement or by the
// header of a script.
type definition struct {
	pos    diag.Pos
	typ    bytecode.ScriptType
	params int
}

// define records the signature of a script. Every signature given for the
// same name must agree.
func (c *Compiler) define(pos diag.Pos, name string, typ bytecode.ScriptType, params int) error {
	old, ok := c.defines[name]
	if !ok {
		c.defines[name] = definition{pos: pos, typ: typ, params: params}
		return nil
	}
	if old.typ != typ {
		return diag.Errorf(diag.Semantic, pos, "Script %s was defined as %s at %s", name, old.typ, old.pos)
	}
	if old.params != params {
		return diag.Errorf(diag.Semantic, pos, "Script %s was defined with %d parameters at %s", name, old.params, old.pos)
	}
	return nil
}
