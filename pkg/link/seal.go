package link

import (
	"github.com/chazu/chlc/pkg/bytecode"
	"github.com/chazu/chlc/pkg/diag"
)

// ---------------------------------------------------------------------------
// Seal: resolution of deferred references
// ---------------------------------------------------------------------------

// Sealed reports whether Seal has been called.
func (u *Unit) Sealed() bool {
	return u.sealed
}

// Seal resolves every deferred reference and builds the program. Each kind
// of reference is resolved in its own pass; a pass reports all of its
// errors to the log and returns the first one, and later passes are not
// run. After Seal the unit accepts no more code. Calling Seal again
// returns the same result.
func (u *Unit) Seal() (*bytecode.Program, error) {
	if u.sealed {
		return u.program, u.err
	}
	u.sealed = true
	if u.current != nil {
		panic("link: script " + u.current.Name + " not ended")
	}
	u.usage = make([]int, len(u.scripts))

	log.Info("linking...")
	passes := []func() []error{
		u.resolveVars,
		u.resolveLabels,
		u.resolveScripts,
	}
	var autorun []int
	passes = append(passes, func() []error {
		var errs []error
		autorun, errs = u.resolveAutoruns()
		return errs
	})
	for _, pass := range passes {
		if errs := pass(); len(errs) > 0 {
			for _, err := range errs[1:] {
				log.Error(err.Error())
			}
			u.err = errs[0]
			return nil, u.err
		}
	}
	u.reportUnused()

	u.program = &bytecode.Program{
		Instructions: u.instructions,
		Scripts:      u.scripts,
		Globals:      u.globals,
		InitGlobals:  u.initGlobals,
		Data:         u.data,
		Autorun:      autorun,
	}
	return u.program, nil
}

// Program returns the sealed program, or nil before a successful Seal.
func (u *Unit) Program() *bytecode.Program {
	return u.program
}

// reconcileOffsets sets the variable offset of every script to the highest
// global index referenced by any script of the same source file.
func (u *Unit) reconcileOffsets() {
	offsets := make(map[string]int)
	for _, ref := range u.varRefs {
		if ref.script == nil {
			continue
		}
		if g, ok := u.globalIndex[ref.name]; ok && g > offsets[ref.script.SourceFile] {
			offsets[ref.script.SourceFile] = g
		}
	}
	for _, s := range u.scripts {
		s.VarOffset = offsets[s.SourceFile]
	}
}

func (u *Unit) resolveVars() []error {
	u.reconcileOffsets()
	var errs []error
	for _, ref := range u.varRefs {
		index, ok := u.globalIndex[ref.name]
		if !ok && ref.script != nil {
			index, ok = ref.script.LocalIndex(ref.name)
		}
		if !ok {
			errs = append(errs, diag.Errorf(diag.Link, ref.pos, "Undefined variable %s", ref.name))
			continue
		}
		u.instructions[ref.ip].Int = int32(index)
	}
	return errs
}

func (u *Unit) resolveLabels() []error {
	var errs []error
	for _, ref := range u.labelRefs {
		addr, ok := u.labels[ref.key]
		if !ok {
			errs = append(errs, diag.Errorf(diag.Link, ref.pos, "Undefined label %s", ref.key.name))
			continue
		}
		u.PatchJump(ref.ip, addr)
	}
	return errs
}

func (u *Unit) resolveScripts() []error {
	var errs []error
	for _, ref := range u.scriptRefs {
		s, ok := u.scriptIndex[ref.name]
		if !ok {
			if u.opts.IgnoreMissingScripts {
				log.Warningf("%s: undefined script '%s'", ref.pos, ref.name)
				u.instructions[ref.ip].Int = 0
				continue
			}
			errs = append(errs, diag.Errorf(diag.Link, ref.pos, "Undefined script '%s'", ref.name))
			continue
		}
		if ref.argc >= 0 && ref.argc != s.ParamCount {
			errs = append(errs, diag.Errorf(diag.Link, ref.pos,
				"Parameters count doesn't match script declaration: %s expects %d, got %d", s.Name, s.ParamCount, ref.argc))
			continue
		}
		u.usage[s.ID-u.opts.FirstScriptID]++
		u.instructions[ref.ip].Int = int32(s.ID)
	}
	return errs
}

func (u *Unit) resolveAutoruns() ([]int, []error) {
	var (
		ids  []int
		errs []error
	)
	for _, ref := range u.autoruns {
		s, ok := u.scriptIndex[ref.name]
		if !ok {
			errs = append(errs, diag.Errorf(diag.Link, ref.pos, "Undefined script '%s'", ref.name))
			continue
		}
		if s.ParamCount > 0 {
			errs = append(errs, diag.Errorf(diag.Link, ref.pos, "Script with parameters not valid for autorun: %s", ref.name))
			continue
		}
		u.usage[s.ID-u.opts.FirstScriptID]++
		ids = append(ids, s.ID)
	}
	return ids, errs
}

func (u *Unit) reportUnused() {
	for i, s := range u.scripts {
		if u.usage[i] == 0 {
			log.Noticef("script %4d %s is never used (instruction address: %08X)", s.ID, s.Name, s.Address)
		}
	}
}
