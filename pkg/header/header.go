// Package header reads named integer constants from the files shipped with
// the game: C headers declaring enums and the plain text info files.
package header

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/chazu/chlc/pkg/diag"
)

var log = commonlog.GetLogger("chlc.header")

// ParseHeaderFile reads a C header. See ParseHeader.
func ParseHeaderFile(path string) (map[string]int, error) {
	src, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseHeader(path, src)
}

// ParseInfoFile reads an info file. See ParseInfo.
func ParseInfoFile(path string) (map[string]int, error) {
	src, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInfo(path, src)
}

func readFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", diag.Wrap(diag.IO, diag.Pos{File: path}, fmt.Errorf("cannot read %s: %w", path, err))
	}
	src, err := Decode(raw)
	if err != nil {
		return "", diag.Wrap(diag.IO, diag.Pos{File: path}, fmt.Errorf("cannot decode %s: %w", path, err))
	}
	return src, nil
}

// Decode converts the raw content of a header or info file to a string.
// A byte order mark selects UTF-8 or UTF-16; without one the content is
// UTF-8 when valid and Windows-1252 otherwise.
func Decode(raw []byte) (string, error) {
	var fallback encoding.Encoding = charmap.Windows1252
	if utf8.Valid(raw) {
		fallback = unicode.UTF8
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback.NewDecoder()), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ---------------------------------------------------------------------------
// C headers
// ---------------------------------------------------------------------------

// ParseHeader extracts the enumerators of every enum in a C header.
// Enumerators take the value of an explicit initializer, which may be
// decimal, hexadecimal or the name of an earlier enumerator, or the
// previous value plus one. An enum may span any number of lines. Line
// comments, blank lines and preprocessor directives are skipped, and so is
// everything outside enum bodies.
func ParseHeader(file string, src string) (map[string]int, error) {
	log.Infof("reading header %s...", file)
	consts := make(map[string]int)
	var (
		inEnum  bool
		pending string
		next    int
	)
	for n, line := range strings.Split(src, "\n") {
		pos := diag.Pos{File: file, Line: n + 1, Column: 1}
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !inEnum {
			if !isEnumDecl(line) {
				continue
			}
			inEnum, next, pending = true, 0, ""
			if j := strings.IndexByte(line, '{'); j >= 0 {
				line = line[j+1:]
			} else {
				continue
			}
		}
		line = strings.TrimPrefix(line, "{")
		pending += " " + line
		for inEnum {
			i := strings.IndexAny(pending, ",}")
			if i < 0 {
				break
			}
			item, closing := strings.TrimSpace(pending[:i]), pending[i] == '}'
			pending = pending[i+1:]
			if item != "" {
				name, value, explicit := strings.Cut(item, "=")
				name = strings.TrimSpace(name)
				if explicit {
					v, err := headerValue(strings.TrimSpace(value), consts)
					if err != nil {
						return nil, diag.Errorf(diag.Syntax, pos, "Cannot parse %q as int", strings.TrimSpace(value))
					}
					next = v
				}
				consts[name] = next
				next++
			}
			if closing {
				inEnum, pending = false, ""
			}
		}
	}
	return consts, nil
}

func isEnumDecl(line string) bool {
	words := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '{'
	})
	for _, w := range words {
		if w == "enum" {
			return true
		}
	}
	return false
}

func headerValue(s string, consts map[string]int) (int, error) {
	if v, ok := consts[s]; ok {
		return v, nil
	}
	return parseInt(s)
}

// parseInt parses a decimal or 0x-prefixed hexadecimal integer. A leading
// zero does not mean octal.
func parseInt(s string) (int, error) {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base, digits = 16, digits[2:]
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return int(v), nil
}

// ---------------------------------------------------------------------------
// Info files
// ---------------------------------------------------------------------------

// ParseInfo reads an info file: one constant per line, written NAME VALUE
// or NAME = VALUE. Lines starting with # are comments and a NAME VALUE
// column header is ignored. Defining a name twice with different values
// is an error.
func ParseInfo(file string, src string) (map[string]int, error) {
	log.Infof("reading info file %s...", file)
	consts := make(map[string]int)
	for n, line := range strings.Split(src, "\n") {
		pos := diag.Pos{File: file, Line: n + 1, Column: 1}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(strings.Replace(line, "=", " ", 1))
		if len(fields) < 2 || strings.EqualFold(fields[1], "value") {
			continue
		}
		name := fields[0]
		v, err := parseInt(fields[1])
		if err != nil {
			return nil, diag.Errorf(diag.Syntax, pos, "Cannot parse %q as int", fields[1])
		}
		if old, ok := consts[name]; ok && old != v {
			return nil, diag.Errorf(diag.Semantic, pos, "Constant %s redefined from %d to %d", name, old, v)
		}
		consts[name] = v
	}
	return consts, nil
}
