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

package scanner

import (
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/token"
)

// scanBasicString scans a `"…"` or `"""…"""` string, starting with the
// opening quote still current. The lexeme returned excludes the enclosing
// quotes, per spec.md §4.2; escape sequences are validated for syntax here
// but not interpreted — the parser materializes escaped content per §4.3.
func (s *Scanner) scanBasicString() (token.Token, string) {
	return s.scanQuoted('"', true)
}

// scanLiteralString scans a `'…'` or `'''…'''` string. Literal strings
// permit no escapes.
func (s *Scanner) scanLiteralString() (token.Token, string) {
	return s.scanQuoted('\'', false)
}

// scanQuoted implements the shared logic behind basic and literal strings:
// detect single vs. triple-quoted form, scan to the closing quote run
// (exactly three quotes close a multiline string; one or two extra quotes
// are legal just before the close, six or more are rejected), and validate
// escapes for the basic (allowEscapes) form.
func (s *Scanner) scanQuoted(quote int, allowEscapes bool) (token.Token, string) {
	startOffset := s.offset
	s.next() // consume opening quote

	// Detect the triple-quote (multiline) form: "" immediately followed by
	// either a third quote (entering multiline) or nothing (empty string).
	multiline := false
	if s.ch == quote {
		if s.peek() == quote {
			s.next()
			s.next()
			multiline = true
		} else {
			// Exactly two quotes: an empty single-line string.
			s.next()
			return stringTok(quote, false), ""
		}
	}

	contentStart := s.offset
	if multiline {
		// A leading newline immediately after the opening triple quotes is
		// trimmed from the lexeme, per spec.md §4.2.
		if s.ch == '\r' && s.peek() == '\n' {
			s.consumeNewline()
			contentStart = s.offset
		} else if s.ch == '\n' {
			s.consumeNewline()
			contentStart = s.offset
		}
	}

	for {
		switch {
		case s.ch == -1:
			s.error(startOffset, errors.Lexical, "string literal not terminated")
			return stringTok(quote, multiline), string(s.src[contentStart:s.offset])
		case !multiline && (s.ch == '\n' || s.ch == '\r'):
			s.error(startOffset, errors.Lexical, "string literal not terminated before end of line")
			return stringTok(quote, multiline), string(s.src[contentStart:s.offset])
		case s.ch == quote:
			contentEnd := s.offset
			n := s.consumeQuoteRun(quote)
			if !multiline {
				// n >= 1 always ends a single-line string.
				return stringTok(quote, false), string(s.src[contentStart:contentEnd])
			}
			switch {
			case n == 3:
				return stringTok(quote, true), string(s.src[contentStart:contentEnd])
			case n > 3 && n <= 5:
				// Up to two of the quotes belong to the string content;
				// the last three close it.
				return stringTok(quote, true), string(s.src[contentStart : contentEnd+(n-3)])
			case n > 5:
				s.errorf(contentEnd, errors.Lexical, "too many consecutive quotes (%d) at end of string", n)
				return stringTok(quote, true), string(s.src[contentStart:contentEnd])
			default: // n < 3: not a closing run, these quotes are content
				continue
			}
		case s.ch == '\\' && quote == '"':
			if !allowEscapes {
				s.next()
				continue
			}
			s.scanEscape(multiline)
		case isControl(s.ch) && s.ch != '\t' && !(multiline && (s.ch == '\n' || s.ch == '\r')):
			s.errorf(s.offset, errors.Lexical, "illegal control character 0x%02X in string", s.ch)
			s.next()
		case s.ch == '\r':
			// Only reachable for multiline strings (single-line handled
			// above); consumeNewline folds CRLF into one line feed and
			// reports a lone CR.
			s.consumeNewline()
		case s.ch == '\n':
			s.consumeNewline()
		default:
			s.next()
		}
	}
}

func stringTok(quote int, multiline bool) token.Token {
	if quote == '"' {
		if multiline {
			return token.MULTILINE_BASIC_STRING
		}
		return token.BASIC_STRING
	}
	if multiline {
		return token.MULTILINE_LITERAL_STRING
	}
	return token.LITERAL_STRING
}

// consumeQuoteRun consumes a run of the given quote byte, returning how
// many were seen. The cursor stops on the first non-quote byte.
func (s *Scanner) consumeQuoteRun(quote int) int {
	n := 0
	for s.ch == quote {
		n++
		s.next()
	}
	return n
}

// scanEscape validates (without interpreting) one backslash escape
// sequence in a basic string. The backslash is already current.
func (s *Scanner) scanEscape(multiline bool) {
	offs := s.offset
	s.next() // consume '\'

	if multiline && (s.ch == '\n' || s.ch == '\r' || s.ch == ' ' || s.ch == '\t') {
		// A line-ending backslash: the parser performs the actual
		// continuation trim; the scanner only needs to recognize that
		// whitespace and a single newline here are legal and keep scanning.
		// Validate that, after any spaces/tabs, a newline actually follows;
		// otherwise this is an unknown escape.
		i := s.offset
		for i < len(s.src) && (s.src[i] == ' ' || s.src[i] == '\t') {
			i++
		}
		if i < len(s.src) && (s.src[i] == '\n' || s.src[i] == '\r') {
			for s.ch == ' ' || s.ch == '\t' {
				s.next()
			}
			s.consumeNewline()
			for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
				if s.ch == '\n' || s.ch == '\r' {
					s.consumeNewline()
				} else {
					s.next()
				}
			}
			return
		}
	}

	switch s.ch {
	case '"', '\\', 'b', 'f', 'n', 'r', 't':
		s.next()
		return
	case 'u':
		s.next()
		s.scanHexDigits(offs, 4)
		return
	case 'U':
		s.next()
		s.scanHexDigits(offs, 8)
		return
	default:
		msg := "unknown escape sequence"
		if s.ch == -1 {
			msg = "escape sequence not terminated"
		}
		s.errorf(offs, errors.Lexical, "%s", msg)
	}
}

func (s *Scanner) scanHexDigits(escapeOffset, n int) {
	for i := 0; i < n; i++ {
		if !isHexDigit(s.ch) {
			msg := "escape sequence not terminated"
			if s.ch != -1 {
				msg = "invalid hex digit in unicode escape"
			}
			s.errorf(escapeOffset, errors.Lexical, "%s", msg)
			return
		}
		s.next()
	}
}

func isHexDigit(b int) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
