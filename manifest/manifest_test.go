package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/chazu/chlc/pkg/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
[project]
name = "land2"

[source]
source_path = "scripts"
headers_path = "headers"
info_path = "info"
sources = ["Main.txt", "Util.txt"]
source_lists = ["_challenges.txt"]
headers = ["ScriptEnums.h"]
info = ["info1.txt"]

[defines]
DEBUG = 1

[options]
tab_width = 8
first_script_id = 5
shared_strings = false
ignore_missing_scripts = true
output = "build/land2.chlb"
`)
	writeFile(t, filepath.Join(dir, "scripts", "_challenges.txt"), "# challenges\nChallenges/A.txt\n\nB.txt\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Project.Name != "land2" {
		t.Errorf("project name = %q, want land2", m.Project.Name)
	}
	wantOpts := Options{TabWidth: 8, FirstScriptID: 5, IgnoreMissingScripts: true, Output: "build/land2.chlb"}
	if m.Options != wantOpts {
		t.Errorf("options = %+v, want %+v", m.Options, wantOpts)
	}
	if m.Defines["DEBUG"] != 1 {
		t.Errorf("defines = %v, want DEBUG=1", m.Defines)
	}

	paths, err := m.SourcePaths()
	if err != nil {
		t.Fatalf("SourcePaths failed: %v", err)
	}
	scripts := filepath.Join(m.Dir, "scripts")
	want := []string{
		filepath.Join(scripts, "Main.txt"),
		filepath.Join(scripts, "Util.txt"),
		filepath.Join(scripts, "Challenges", "A.txt"),
		filepath.Join(scripts, "B.txt"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("source paths = %v, want %v", paths, want)
	}
	if got := m.HeaderPaths(); !reflect.DeepEqual(got, []string{filepath.Join(m.Dir, "headers", "ScriptEnums.h")}) {
		t.Errorf("header paths = %v", got)
	}
	if got := m.InfoPaths(); !reflect.DeepEqual(got, []string{filepath.Join(m.Dir, "info", "info1.txt")}) {
		t.Errorf("info paths = %v", got)
	}
	if got := m.OutputPath(); got != filepath.Join(m.Dir, "build", "land2.chlb") {
		t.Errorf("output path = %q", got)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "minimal")
	writeFile(t, filepath.Join(dir, FileName), "[source]\nsources = [\"a.txt\"]\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Options{TabWidth: 4, FirstScriptID: 1, SharedStrings: true, Output: "minimal.chlb"}
	if m.Options != want {
		t.Errorf("options = %+v, want %+v", m.Options, want)
	}
	if m.Project.Name != "minimal" {
		t.Errorf("project name = %q, want minimal", m.Project.Name)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load without chl.toml should fail")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[options\n")
	if _, err := Load(dir); err == nil {
		t.Error("Load with invalid TOML should fail")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[project]\nname = \"root\"\n")
	sub := filepath.Join(root, "scripts", "deep")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(sub)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil || m.Project.Name != "root" {
		t.Fatalf("FindAndLoad = %v, want project root", m)
	}

	m, err = FindAndLoad(t.TempDir())
	if err != nil || m != nil {
		t.Errorf("FindAndLoad without project = %v, %v, want nil, nil", m, err)
	}
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "land2.txt")
	writeFile(t, path, `# project
source Intro.txt
source_path scripts
headers_path headers
header ScriptEnums.h
source Main.txt
info /abs/info.txt
`)
	m, err := LoadProjectFile(path)
	if err != nil {
		t.Fatalf("LoadProjectFile failed: %v", err)
	}
	paths, err := m.SourcePaths()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(m.Dir, "Intro.txt"), filepath.Join(m.Dir, "scripts", "Main.txt")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("source paths = %v, want %v", paths, want)
	}
	if got := m.HeaderPaths(); !reflect.DeepEqual(got, []string{filepath.Join(m.Dir, "headers", "ScriptEnums.h")}) {
		t.Errorf("header paths = %v", got)
	}
	if got := m.InfoPaths(); !reflect.DeepEqual(got, []string{"/abs/info.txt"}) {
		t.Errorf("info paths = %v", got)
	}
	if m.Options.Output != "land2.chlb" || !m.Options.SharedStrings {
		t.Errorf("options = %+v", m.Options)
	}
}

func TestLoadProjectFileErrors(t *testing.T) {
	tests := []struct {
		content string
		line    int
	}{
		{"source\n", 1},
		{"# ok\nsource a.txt\nlibrary b\n", 3},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "p.txt")
		writeFile(t, path, tt.content)
		_, err := LoadProjectFile(path)
		if !diag.Is(err, diag.Syntax) {
			t.Errorf("LoadProjectFile(%q) error = %v, want a syntax error", tt.content, err)
			continue
		}
		if pos, _ := diag.PosOf(err); pos.Line != tt.line {
			t.Errorf("LoadProjectFile(%q) line = %d, want %d", tt.content, pos.Line, tt.line)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[project]\nname = \"p\"\n")
	writeFile(t, filepath.Join(dir, "legacy.txt"), "source a.txt\n")

	for _, path := range []string{dir, filepath.Join(dir, FileName)} {
		m, err := Open(path)
		if err != nil || m.Project.Name != "p" {
			t.Errorf("Open(%q) = %v, %v", path, m, err)
		}
	}
	m, err := Open(filepath.Join(dir, "legacy.txt"))
	if err != nil || m.Project.Name != "legacy" {
		t.Errorf("Open(legacy.txt) = %v, %v", m, err)
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
[source]
sources = ["main.txt"]
headers = ["enums.h"]
info = ["info.txt"]

[defines]
BONUS = 9
`)
	writeFile(t, filepath.Join(dir, "enums.h"), "enum E {\n\tHEALTH = 3,\n};\n")
	writeFile(t, filepath.Join(dir, "info.txt"), "SPEED 2\n")
	writeFile(t, filepath.Join(dir, "main.txt"), `global x
begin script Main
start
	x = HEALTH of x
	say BONUS
	x = variable SPEED
end script Main
run script Main
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	c, err := m.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for name, want := range map[string]int{"HEALTH": 3, "SPEED": 2, "BONUS": 9} {
		if got, ok := c.Constant(name); !ok || got != want {
			t.Errorf("constant %s = %d, %v, want %d", name, got, ok, want)
		}
	}
	if c.Program() == nil {
		t.Error("Build should seal the program")
	}
	if !reflect.DeepEqual(c.Files(), []string{filepath.Join(m.Dir, "main.txt")}) {
		t.Errorf("files = %v", c.Files())
	}
}
