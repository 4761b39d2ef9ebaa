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

// Package scanner implements the single-pass lexical scanner for TOML
// 1.0.0 described in spec.md §4.2: a byte cursor with a line counter,
// split into a key-context and a value-context entry point that share one
// internal routine.
package scanner

import (
	"fmt"

	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/token"
)

// Scanner holds the cursor state for a single input buffer. The zero value
// is not usable; call Init first.
type Scanner struct {
	file *token.File
	src  []byte
	errh errors.Handler

	ch       int // current byte, or -1 at end of input
	offset   int // offset of ch
	rdOffset int // offset of the byte after ch

	ErrorCount int
}

// Mark is a cheap, restorable snapshot of the scanner's cursor, available
// to implement the dotted-key lookahead spec.md §9 describes (the parser in
// this module uses a one-token lookahead buffer instead and does not call it):
// speculatively read the next key token, and on a miss restore the cursor
// and line counter exactly.
type Mark struct {
	ch       int
	offset   int
	rdOffset int
}

// Init prepares s to scan src from the beginning.
func (s *Scanner) Init(file *token.File, src []byte, errh errors.Handler) {
	s.file = file
	s.src = src
	s.errh = errh
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.ErrorCount = 0
	s.next()
}

// Mark snapshots the cursor for later Reset.
func (s *Scanner) Mark() Mark {
	return Mark{ch: s.ch, offset: s.offset, rdOffset: s.rdOffset}
}

// Reset restores a previously taken Mark. Because line starts are recorded
// monotonically in the token.File as they're first seen, rewinding the
// cursor never "un-adds" a line; re-scanning the same bytes is a no-op
// for AddLine since offsets are non-increasing on replay of the same span.
func (s *Scanner) Reset(m Mark) {
	s.ch = m.ch
	s.offset = m.offset
	s.rdOffset = m.rdOffset
}

func (s *Scanner) error(offset int, kind errors.Kind, msg string) {
	if s.errh != nil {
		s.errh(s.file.Pos(offset), kind, msg)
	}
	s.ErrorCount++
}

func (s *Scanner) errorf(offset int, kind errors.Kind, format string, args ...any) {
	if s.errh != nil {
		s.errh(s.file.Pos(offset), kind, fmt.Sprintf(format, args...))
	}
	s.ErrorCount++
}

// next advances the cursor by one byte. s.ch == -1 signals end of input.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		ch := s.src[s.rdOffset]
		s.rdOffset++
		s.ch = int(ch)
	} else {
		s.offset = len(s.src)
		s.ch = -1
	}
}

// peek returns the byte after the current one without consuming it, or -1.
func (s *Scanner) peek() int {
	if s.rdOffset < len(s.src) {
		return int(s.src[s.rdOffset])
	}
	return -1
}

// peekAt returns the byte n positions after rdOffset without consuming
// anything, or -1 if out of range.
func (s *Scanner) peekAt(n int) int {
	idx := s.rdOffset + n
	if idx < 0 || idx >= len(s.src) {
		return -1
	}
	return int(s.src[idx])
}

func isControl(b int) bool {
	return b >= 0 && (b <= 0x08 || (b >= 0x0B && b <= 0x1F) || b == 0x7F)
}

func isBareKeyByte(b int) bool {
	return b == '-' || b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

func isDigit(b int) bool { return '0' <= b && b <= '9' }

// consumeNewline advances past a newline at the cursor, normalizing CRLF to
// a single logical line feed: a CR immediately followed by LF is consumed
// as one unit and reported as a single '\n', incrementing the line counter
// once, matching spec.md §4.2.
func (s *Scanner) consumeNewline() {
	if s.ch == '\r' {
		if s.peek() != '\n' {
			// A CR not followed by LF is a control character, not a newline.
			s.errorf(s.offset, errors.Lexical, "illegal control character 0x0D")
			s.next()
			return
		}
		s.next() // consume CR
	}
	// s.ch is now '\n' (either it always was, or we just skipped the CR).
	s.file.AddLine(s.rdOffset)
	s.next()
}

// skipWhitespaceAndComments advances past spaces, tabs, and '#' comments,
// stopping at a newline, EOF, or the start of a real token. Control bytes
// encountered inside a comment other than tab are a lexical failure, per
// spec.md §4.2.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch s.ch {
		case ' ', '\t':
			s.next()
		case '#':
			s.scanComment()
		default:
			return
		}
	}
}

func (s *Scanner) scanComment() {
	// '#' already current; consume it and run to end of line.
	s.next()
	for s.ch != '\n' && s.ch != '\r' && s.ch != -1 {
		if isControl(s.ch) && s.ch != '\t' {
			s.errorf(s.offset, errors.Lexical, "illegal control character in comment: 0x%02X", s.ch)
		}
		s.next()
	}
}

// NextKeyToken scans the next token in key-context: at table-header and
// key-path positions, where `[`/`]` merge into their double forms and a
// bare run of [A-Za-z0-9_-] is an uninterpreted key literal.
func (s *Scanner) NextKeyToken() (token.Pos, token.Token, string) {
	return s.scan(true)
}

// NextValueToken scans the next token in value-context: at the
// right-hand side of `=`, inside arrays and inline tables, where a bare
// run commits to a concrete scalar type (number, date/time, bool).
func (s *Scanner) NextValueToken() (token.Pos, token.Token, string) {
	return s.scan(false)
}

func (s *Scanner) scan(keyMode bool) (token.Pos, token.Token, string) {
	s.skipWhitespaceAndComments()

	offset := s.offset
	pos := s.file.Pos(offset)

	switch ch := s.ch; {
	case ch == -1:
		return pos, token.EOF, ""
	case ch == '\n' || ch == '\r':
		s.consumeNewline()
		return pos, token.LINE_FEED, "\n"
	case ch == '"':
		tok, lit := s.scanBasicString()
		return pos, tok, lit
	case ch == '\'':
		tok, lit := s.scanLiteralString()
		return pos, tok, lit
	case ch == '.':
		s.next()
		return pos, token.DOT, "."
	case ch == '=':
		s.next()
		return pos, token.ASSIGN, "="
	case ch == ',':
		s.next()
		return pos, token.COMMA, ","
	case ch == '{':
		s.next()
		return pos, token.LBRACE, "{"
	case ch == '}':
		s.next()
		return pos, token.RBRACE, "}"
	case ch == '[':
		s.next()
		if keyMode && s.ch == '[' {
			s.next()
			return pos, token.LDBRACK, "[["
		}
		return pos, token.LBRACK, "["
	case ch == ']':
		s.next()
		if keyMode && s.ch == ']' {
			s.next()
			return pos, token.RDBRACK, "]]"
		}
		return pos, token.RBRACK, "]"
	case keyMode && isBareKeyByte(ch):
		lit := s.scanBareKey()
		return pos, token.LITERAL, lit
	case !keyMode && (isDigit(ch) || ch == '+' || ch == '-'):
		tok, lit := s.scanNumberOrDateTime()
		return pos, tok, lit
	case !keyMode && isAsciiLetter(ch):
		tok, lit := s.scanValueWord()
		return pos, tok, lit
	case isControl(ch):
		s.errorf(offset, errors.Lexical, "illegal control character 0x%02X", ch)
		s.next()
		return pos, token.ILLEGAL, string(rune(ch))
	default:
		s.errorf(offset, errors.Syntactic, "unexpected character %q", rune(ch))
		s.next()
		return pos, token.ILLEGAL, string(rune(ch))
	}
}

func isAsciiLetter(b int) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func (s *Scanner) scanBareKey() string {
	offs := s.offset
	for isBareKeyByte(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}
