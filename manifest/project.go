package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/chlc/pkg/diag"
)

// LoadProjectFile reads a project written in the plain line format, one
// "kind path" entry per line:
//
//	source_path scripts
//	headers_path headers
//	info_path info
//	header ScriptEnums.h
//	info info1.txt
//	source Main.txt
//
// A *_path line applies to the entries that follow it. Lines starting with
// # are comments. The result has the same defaults as a chl.toml project
// named after the file.
func LoadProjectFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	m := &Manifest{
		Dir: dir,
		Project: Project{
			Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		},
		Options: Options{SharedStrings: true},
	}
	sourcePath, headersPath, infoPath := dir, dir, dir

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos := diag.Pos{File: path, Line: n, Column: 1}
		kind, arg, ok := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if !ok || arg == "" {
			return nil, diag.Errorf(diag.Syntax, pos, "Invalid line")
		}
		switch kind {
		case "source":
			m.Source.Sources = append(m.Source.Sources, join(sourcePath, arg))
		case "header":
			m.Source.Headers = append(m.Source.Headers, join(headersPath, arg))
		case "info":
			m.Source.Info = append(m.Source.Info, join(infoPath, arg))
		case "source_path":
			sourcePath = join(dir, arg)
		case "headers_path":
			headersPath = join(dir, arg)
		case "info_path":
			infoPath = join(dir, arg)
		default:
			return nil, diag.Errorf(diag.Syntax, pos, "Invalid type: %s", kind)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	m.setDefaults()
	return m, nil
}

func join(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Open loads a project from path, which is a chl.toml file, a directory
// holding one, or a file in the plain line format.
func Open(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	switch {
	case info.IsDir():
		return Load(path)
	case filepath.Base(path) == FileName:
		return Load(filepath.Dir(path))
	}
	return LoadProjectFile(path)
}
