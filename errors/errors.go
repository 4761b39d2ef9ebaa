// Copyright 2024 The toml-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the flat error taxonomy shared by the scanner,
// parser, and decoder façade, modeled on cue/errors: a common Error
// interface carrying a position and a kind, an accumulating List, and a
// Diagnostics formatter that renders a line/column/snippet view for callers
// that ask for it.
package errors

import (
	"fmt"
	"strings"

	"github.com/anttikivi/toml-go/token"
)

// Kind is the flat taxonomy from spec.md §7.
type Kind uint8

const (
	// Encoding covers invalid UTF-8 in the input buffer.
	Encoding Kind = iota
	// Lexical covers unterminated strings, invalid escapes, illegal
	// control characters, and malformed number/date/time literals.
	Lexical
	// Syntactic covers unexpected tokens and missing structural
	// punctuation.
	Syntactic
	// Semantic covers duplicate keys, illegal table redefinition, and
	// illegal extension of inline values or explicit tables.
	Semantic
	// Numeric covers integer overflow and float parse failure.
	Numeric
	// Allocation covers allocator/arena exhaustion.
	Allocation
)

func (k Kind) String() string {
	switch k {
	case Encoding:
		return "encoding"
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	case Numeric:
		return "numeric"
	case Allocation:
		return "allocation"
	default:
		return "unknown"
	}
}

// Error is the interface every error this module returns implements.
type Error interface {
	error
	Position() token.Pos
	Kind() Kind
}

// posError is the concrete Error implementation produced by New/Newf.
type posError struct {
	pos  token.Pos
	kind Kind
	msg  string
}

func (e *posError) Error() string     { return e.msg }
func (e *posError) Position() token.Pos { return e.pos }
func (e *posError) Kind() Kind         { return e.kind }

// New creates a positioned Error of the given kind.
func New(pos token.Pos, kind Kind, msg string) Error {
	return &posError{pos: pos, kind: kind, msg: msg}
}

// Newf creates a positioned Error with a formatted message.
func Newf(pos token.Pos, kind Kind, format string, args ...any) Error {
	return &posError{pos: pos, kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Handler is the callback signature the scanner and parser report errors
// through; it mirrors cue/scanner's error handler shape.
type Handler func(pos token.Pos, kind Kind, msg string)

// List accumulates Errors in the order they were reported. The scanner and
// parser both collect into a List; the façade reports List.First() (or nil)
// as the terminal error, per spec.md §7's "first failure terminates
// parsing" rule.
type List struct {
	errs []Error
}

// Add appends an error to the list.
func (l *List) Add(err Error) {
	l.errs = append(l.errs, err)
}

// Handle has exactly the errors.Handler shape, so it can be passed
// directly as the scanner/parser's error-reporting callback: l.Handle,
// not l.AddNewf (whose extra variadic parameter makes it a different,
// non-assignable function type).
func (l *List) Handle(pos token.Pos, kind Kind, msg string) {
	l.Add(New(pos, kind, msg))
}

// AddNewf is a convenience wrapper combining Newf and Add for call sites
// that already have a format string and args, rather than a finished
// message (as Handle's callers do).
func (l *List) AddNewf(pos token.Pos, kind Kind, format string, args ...any) {
	l.Add(Newf(pos, kind, format, args...))
}

// Len reports how many errors have been collected.
func (l *List) Len() int { return len(l.errs) }

// First returns the first reported error, or nil if none were reported.
// Because parsing stops at the first failure (spec.md §7), this is
// ordinarily also the only error.
func (l *List) First() Error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// All returns every collected error, in report order.
func (l *List) All() []Error { return l.errs }

// Error implements the error interface by joining every message, one per
// line, matching cue/errors.List's rendering.
func (l *List) Error() string {
	var b strings.Builder
	for i, e := range l.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Diagnostics is the caller-facing rendering of a single error: its
// position, the offending source line, and a caret under the column, as
// specified in spec.md §6.
type Diagnostics struct {
	Line     int
	Column   int
	Snippet  string
	Message  string
}

// Format renders the diagnostic in the form spec.md §6 prescribes:
//
//	error parsing TOML document on line L, column C
//	<snippet>
//	<spaces>^
func (d Diagnostics) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "error parsing TOML document on line %d, column %d\n", d.Line, d.Column)
	b.WriteString(d.Snippet)
	b.WriteByte('\n')
	for i := 1; i < d.Column; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}

// NewDiagnostics builds a Diagnostics record for err against the original
// source buffer, slicing out the offending line via file.
func NewDiagnostics(err Error, file *token.File, src []byte) Diagnostics {
	pos := err.Position().Position()
	start, _ := file.LineStart(pos.Line)
	end := file.LineEnd(pos.Line, src)
	snippet := ""
	if start <= end && end <= len(src) {
		snippet = string(src[start:end])
	}
	return Diagnostics{
		Line:    pos.Line,
		Column:  pos.Column,
		Snippet: snippet,
		Message: err.Error(),
	}
}
