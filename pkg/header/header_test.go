package header

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/chazu/chlc/pkg/diag"
)

const sampleHeader = `#ifndef SCRIPT_ENUMS_H
#define SCRIPT_ENUMS_H

// not an enum
int enumerations = 3;

enum SCRIPT_OBJECT_TYPE
{
	SCRIPT_OBJECT_TYPE_MARKER,	// 0
	SCRIPT_OBJECT_TYPE_TOWN = 0x10,
	SCRIPT_OBJECT_TYPE_ROCK,
	SCRIPT_OBJECT_TYPE_ANIMAL
		= 040,
	SCRIPT_OBJECT_TYPE_LAST
};

typedef enum { RED = -1, GREEN, BLUE = RED } COLOUR;
#endif
`

func TestParseHeader(t *testing.T) {
	got, err := ParseHeader("enums.h", sampleHeader)
	if err != nil {
		t.Fatalf("ParseHeader error = %v", err)
	}
	want := map[string]int{
		"SCRIPT_OBJECT_TYPE_MARKER": 0,
		"SCRIPT_OBJECT_TYPE_TOWN":   16,
		"SCRIPT_OBJECT_TYPE_ROCK":   17,
		"SCRIPT_OBJECT_TYPE_ANIMAL": 40,
		"SCRIPT_OBJECT_TYPE_LAST":   41,
		"RED":                       -1,
		"GREEN":                     0,
		"BLUE":                      -1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseHeader = %v, want %v", got, want)
	}
}

func TestParseHeaderError(t *testing.T) {
	_, err := ParseHeader("bad.h", "enum E {\n\tA = 1 << 2,\n};\n")
	if !diag.Is(err, diag.Syntax) {
		t.Fatalf("error = %v, want a syntax error", err)
	}
	if pos, _ := diag.PosOf(err); pos.Line != 2 || pos.File != "bad.h" {
		t.Errorf("pos = %v, want bad.h:2", pos)
	}
}

func TestParseInfo(t *testing.T) {
	src := "# constants\nNAME VALUE\nCREATURE_TYPE_APE 3\r\nHAND_GLOW = 0x20\n\nONLY_NAME\nTWICE 4\nTWICE 4\n"
	got, err := ParseInfo("info.txt", src)
	if err != nil {
		t.Fatalf("ParseInfo error = %v", err)
	}
	want := map[string]int{"CREATURE_TYPE_APE": 3, "HAND_GLOW": 32, "TWICE": 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseInfo = %v, want %v", got, want)
	}
}

func TestParseInfoErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind diag.Kind
		line int
	}{
		{"A 1\nB x\n", diag.Syntax, 2},
		{"A 1\nB 2\nA 3\n", diag.Semantic, 3},
	}
	for _, tt := range tests {
		_, err := ParseInfo("info.txt", tt.src)
		if !diag.Is(err, tt.kind) {
			t.Errorf("ParseInfo(%q) error = %v, want kind %v", tt.src, err, tt.kind)
			continue
		}
		if pos, _ := diag.PosOf(err); pos.Line != tt.line {
			t.Errorf("ParseInfo(%q) line = %d, want %d", tt.src, pos.Line, tt.line)
		}
	}
}

func TestDecode(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("A = 1\n")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"ascii", []byte("A 1"), "A 1"},
		{"utf-8 bom", []byte("\xef\xbb\xbfA 1"), "A 1"},
		{"windows-1252", []byte("caf\xe9"), "café"},
		{"utf-16 bom", []byte(utf16), "A = 1\n"},
	}
	for _, tt := range tests {
		got, err := Decode(tt.raw)
		if err != nil {
			t.Errorf("%s: Decode error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: Decode = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParseInfoFile(t *testing.T) {
	raw, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("# info\nMAX_MANA 100\n")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "info.txt")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ParseInfoFile(path)
	if err != nil {
		t.Fatalf("ParseInfoFile error = %v", err)
	}
	if got["MAX_MANA"] != 100 {
		t.Errorf("MAX_MANA = %d, want 100", got["MAX_MANA"])
	}

	if _, err := ParseHeaderFile(filepath.Join(t.TempDir(), "missing.h")); !diag.Is(err, diag.IO) {
		t.Errorf("missing file error = %v, want an IO error", err)
	}
}
