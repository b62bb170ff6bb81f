package manifest

import (
	"path/filepath"

	"github.com/chazu/chlc/compiler"
	"github.com/chazu/chlc/pkg/header"
)

// ConstantSink receives named constants. Both the compiler and the
// assembler implement it.
type ConstantSink interface {
	DefineConstants(values map[string]int, source string)
}

// CompilerOptions returns the compiler options of the project.
func (m *Manifest) CompilerOptions() compiler.Options {
	return compiler.Options{
		TabWidth:             m.Options.TabWidth,
		FirstScriptID:        m.Options.FirstScriptID,
		SharedStrings:        m.Options.SharedStrings,
		IgnoreMissingScripts: m.Options.IgnoreMissingScripts,
	}
}

// LoadConstants feeds the constants of the project to sink: the C headers
// first, then the info files, then the [defines] table.
func (m *Manifest) LoadConstants(sink ConstantSink) error {
	for _, path := range m.HeaderPaths() {
		values, err := header.ParseHeaderFile(path)
		if err != nil {
			return err
		}
		sink.DefineConstants(values, path)
	}
	for _, path := range m.InfoPaths() {
		values, err := header.ParseInfoFile(path)
		if err != nil {
			return err
		}
		sink.DefineConstants(values, path)
	}
	if len(m.Defines) > 0 {
		sink.DefineConstants(m.Defines, filepath.Join(m.Dir, FileName))
	}
	return nil
}

// NewCompiler creates a compilation session configured by the project, with
// its constants loaded.
func (m *Manifest) NewCompiler() (*compiler.Compiler, error) {
	c := compiler.New(m.CompilerOptions())
	if err := m.LoadConstants(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Build compiles every source of the project and seals the result.
func (m *Manifest) Build() (*compiler.Compiler, error) {
	c, err := m.NewCompiler()
	if err != nil {
		return nil, err
	}
	paths, err := m.SourcePaths()
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := c.CompileFile(path); err != nil {
			return c, err
		}
	}
	if _, err := c.Seal(); err != nil {
		return c, err
	}
	return c, nil
}
