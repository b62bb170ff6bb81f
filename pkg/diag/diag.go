// Package diag defines the positioned error type shared by every stage of
// the toolchain: lexing, parsing, code generation, linking and assembly.
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a diagnostic by the stage that produced it.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	NotImplemented
	Semantic
	Link
	IO
)

var kindNames = [...]string{
	Lexical:        "lexical error",
	Syntax:         "syntax error",
	NotImplemented: "not implemented",
	Semantic:       "semantic error",
	Link:           "link error",
	IO:             "i/o error",
}

// String returns the human-readable name of a kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a location in a source file. Line and Column are 1-based; a zero
// Line means the position is unknown.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the position carries a line number.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	switch {
	case p.File == "" && !p.IsValid():
		return ""
	case !p.IsValid():
		return p.File
	case p.Column > 0:
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	default:
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
}

// Error is a diagnostic with a kind and a source position.
type Error struct {
	Kind    Kind
	Pos     Pos
	Message string
	Err     error // optional wrapped cause
}

func (e *Error) Error() string {
	if s := e.Pos.String(); s != "" {
		return s + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind at pos.
func Errorf(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a position to an arbitrary error. If err is already an
// *Error it is returned unchanged.
func Wrap(kind Kind, pos Pos, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: kind, Pos: pos, Message: err.Error(), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// Is reports whether err carries a diagnostic of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNotImplemented reports whether err marks a construct that is
// recognized by the grammar but has no code generation.
func IsNotImplemented(err error) bool {
	return Is(err, NotImplemented)
}

// PosOf returns the position attached to err, if any.
func PosOf(err error) (Pos, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Pos, true
	}
	return Pos{}, false
}
