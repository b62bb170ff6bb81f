// Package manifest handles chl.toml project configuration.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

// FileName is the name of the project file.
const FileName = "chl.toml"

var log = commonlog.GetLogger("chlc.manifest")

// Manifest represents a chl.toml project configuration.
type Manifest struct {
	Project Project        `toml:"project"`
	Source  Source         `toml:"source"`
	Defines map[string]int `toml:"defines"`
	Options Options        `toml:"options"`

	// Dir is the directory containing the project file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name"`
}

// Source configures the input files. Paths in Sources and SourceLists are
// relative to SourcePath, Headers to HeadersPath and Info to InfoPath,
// which are themselves relative to the project directory.
type Source struct {
	SourcePath  string   `toml:"source_path"`
	HeadersPath string   `toml:"headers_path"`
	InfoPath    string   `toml:"info_path"`
	Sources     []string `toml:"sources"`
	SourceLists []string `toml:"source_lists"`
	Headers     []string `toml:"headers"`
	Info        []string `toml:"info"`
}

// Options are the compiler options of the project.
type Options struct {
	TabWidth             int    `toml:"tab_width"`
	FirstScriptID        int    `toml:"first_script_id"`
	SharedStrings        bool   `toml:"shared_strings"`
	IgnoreMissingScripts bool   `toml:"ignore_missing_scripts"`
	Output               string `toml:"output"`
}

// Load parses the chl.toml file in the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warningf("%s: unknown key %s", path, key)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if !md.IsDefined("options", "shared_strings") {
		m.Options.SharedStrings = true
	}
	m.setDefaults()
	return &m, nil
}

func (m *Manifest) setDefaults() {
	if m.Options.TabWidth <= 0 {
		m.Options.TabWidth = 4
	}
	if m.Options.FirstScriptID == 0 {
		m.Options.FirstScriptID = 1
	}
	if m.Project.Name == "" {
		m.Project.Name = filepath.Base(m.Dir)
	}
	if m.Options.Output == "" {
		m.Options.Output = m.Project.Name + ".chlb"
	}
}

// FindAndLoad walks up from startDir to find a chl.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

func (m *Manifest) resolve(base, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.Dir, base, name)
}

// SourcePaths returns the source files in compilation order: the entries
// of Sources, then the files named by each source list.
func (m *Manifest) SourcePaths() ([]string, error) {
	var paths []string
	for _, s := range m.Source.Sources {
		paths = append(paths, m.resolve(m.Source.SourcePath, s))
	}
	for _, l := range m.Source.SourceLists {
		listed, err := readSourceList(m.resolve(m.Source.SourcePath, l))
		if err != nil {
			return nil, err
		}
		paths = append(paths, listed...)
	}
	return paths, nil
}

// HeaderPaths returns the absolute paths of the C headers.
func (m *Manifest) HeaderPaths() []string {
	var paths []string
	for _, h := range m.Source.Headers {
		paths = append(paths, m.resolve(m.Source.HeadersPath, h))
	}
	return paths
}

// InfoPaths returns the absolute paths of the info files.
func (m *Manifest) InfoPaths() []string {
	var paths []string
	for _, i := range m.Source.Info {
		paths = append(paths, m.resolve(m.Source.InfoPath, i))
	}
	return paths
}

// OutputPath returns the path of the compiled image.
func (m *Manifest) OutputPath() string {
	return m.resolve("", m.Options.Output)
}

// readSourceList reads a file naming one source per line, relative to the
// list itself. Blank lines and lines starting with # are skipped.
func readSourceList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return paths, nil
}
