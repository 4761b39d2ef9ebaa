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

// scanValueWord scans an alphabetic run in value context, which can only
// be one of the bool/float keywords: true, false, inf, nan.
func (s *Scanner) scanValueWord() (token.Token, string) {
	offs := s.offset
	for isAsciiLetter(s.ch) {
		s.next()
	}
	lit := string(s.src[offs:s.offset])
	switch lit {
	case "true", "false":
		return token.BOOL, lit
	case "inf", "nan":
		return token.FLOAT, lit
	default:
		s.errorf(offs, errors.Lexical, "invalid value %q", lit)
		return token.ILLEGAL, lit
	}
}

// scanNumberOrDateTime scans a value-context token that starts with a
// digit or a sign: an integer, a float (including signed inf/nan), a
// local time, a local date, a local datetime, or an offset datetime, per
// spec.md §4.2's lookahead rules.
func (s *Scanner) scanNumberOrDateTime() (token.Token, string) {
	offs := s.offset

	signed := false
	if s.ch == '+' || s.ch == '-' {
		signed = true
		s.next()
	}

	if isAsciiLetter(s.ch) {
		// Signed inf/nan.
		start := s.offset
		for isAsciiLetter(s.ch) {
			s.next()
		}
		word := string(s.src[start:s.offset])
		if word == "inf" || word == "nan" {
			return token.FLOAT, string(s.src[offs:s.offset])
		}
		s.errorf(offs, errors.Lexical, "invalid numeric literal %q", string(s.src[offs:s.offset]))
		return token.ILLEGAL, string(s.src[offs:s.offset])
	}

	if !signed && s.ch == '0' && (s.peek() == 'x' || s.peek() == 'o' || s.peek() == 'b') {
		return s.scanRadixInt(offs)
	}

	if !signed && s.lookingAtTime() {
		return s.scanLocalTime(offs)
	}
	if !signed && s.lookingAtDate() {
		return s.scanDateTime(offs)
	}

	return s.scanDecimalNumber(offs)
}

// lookingAtTime reports whether the cursor sits at "DD:", the lookahead
// spec.md §4.2 uses to commit to a bare local_time.
func (s *Scanner) lookingAtTime() bool {
	return isDigit(s.ch) && isDigit(s.peek()) && s.peekAt(1) == ':'
}

// lookingAtDate reports whether the cursor sits at "DDDD-", the lookahead
// spec.md §4.2 uses to commit to a date (local_date / local_datetime /
// datetime).
func (s *Scanner) lookingAtDate() bool {
	return isDigit(s.ch) && isDigit(s.peek()) && isDigit(s.peekAt(1)) && isDigit(s.peekAt(2)) && s.peekAt(3) == '-'
}

func (s *Scanner) scanRadixInt(offs int) (token.Token, string) {
	s.next() // '0'
	radixCh := s.ch
	s.next() // x/o/b
	var base int
	switch radixCh {
	case 'x':
		base = 16
	case 'o':
		base = 8
	case 'b':
		base = 2
	}
	digitsStart := s.offset
	s.scanDigitRun(base)
	if s.offset == digitsStart {
		s.errorf(offs, errors.Lexical, "malformed radix-%d integer literal", base)
	}
	return token.INT, string(s.src[offs:s.offset])
}

// scanDigitRun consumes a run of digits valid in base, permitting
// underscores strictly between two digits, and reports a lexical error for
// leading, trailing, or doubled underscores.
func (s *Scanner) scanDigitRun(base int) {
	lastWasDigit := false
	lastWasUnderscore := false
	for {
		if s.ch == '_' {
			if !lastWasDigit {
				s.errorf(s.offset, errors.Lexical, "illegal '_' in number")
			}
			lastWasUnderscore = true
			lastWasDigit = false
			s.next()
			continue
		}
		if !digitInBase(s.ch, base) {
			break
		}
		lastWasDigit = true
		lastWasUnderscore = false
		s.next()
	}
	if lastWasUnderscore {
		s.errorf(s.offset-1, errors.Lexical, "illegal trailing '_' in number")
	}
}

func digitInBase(b, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return '0' <= b && b <= '7'
	case 16:
		return isHexDigit(b)
	default:
		return isDigit(b)
	}
}

func (s *Scanner) scanDecimalNumber(offs int) (token.Token, string) {
	tok := token.INT

	if s.ch == '0' && isDigit(s.peek()) {
		// Leading zero followed by another digit: illegal for decimal
		// integers (spec.md §4.2), but still consume the run so the
		// scanner makes progress and the caller sees the full lexeme.
		s.errorf(offs, errors.Lexical, "leading zero in decimal integer")
		s.scanDigitRun(10)
	} else {
		s.scanDigitRun(10)
	}

	if s.ch == '.' && isDigit(s.peek()) {
		tok = token.FLOAT
		s.next() // '.'
		s.scanDigitRun(10)
	}
	if s.ch == 'e' || s.ch == 'E' {
		tok = token.FLOAT
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDigit(s.ch) {
			s.errorf(offs, errors.Lexical, "malformed exponent: expected digit")
		}
		s.scanDigitRun(10)
	}
	return tok, string(s.src[offs:s.offset])
}

func (s *Scanner) scanLocalTime(offs int) (token.Token, string) {
	s.consumeTimeLiteral()
	return token.LOCAL_TIME, string(s.src[offs:s.offset])
}

func (s *Scanner) consumeTimeLiteral() {
	s.scanFixedDigits(2) // hour
	s.expectByte(':')
	s.scanFixedDigits(2) // minute
	s.expectByte(':')
	s.scanFixedDigits(2) // second
	if s.ch == '.' && isDigit(s.peek()) {
		s.next()
		for isDigit(s.ch) {
			s.next()
		}
	}
}

func (s *Scanner) scanDateTime(offs int) (token.Token, string) {
	s.scanFixedDigits(4) // year
	s.expectByte('-')
	s.scanFixedDigits(2) // month
	s.expectByte('-')
	s.scanFixedDigits(2) // day

	if s.ch != 'T' && s.ch != 't' && s.ch != ' ' {
		return token.LOCAL_DATE, string(s.src[offs:s.offset])
	}
	// A space separator is only a datetime separator when followed by a
	// time; otherwise this is just a bare date followed by unrelated text.
	if s.ch == ' ' && !isDigit(s.peek()) {
		return token.LOCAL_DATE, string(s.src[offs:s.offset])
	}
	s.next() // T/t/space
	s.consumeTimeLiteral()

	switch s.ch {
	case 'Z', 'z':
		s.next()
		return token.DATETIME, string(s.src[offs:s.offset])
	case '+', '-':
		s.next()
		s.scanFixedDigits(2)
		s.expectByte(':')
		s.scanFixedDigits(2)
		return token.DATETIME, string(s.src[offs:s.offset])
	default:
		return token.LOCAL_DATETIME, string(s.src[offs:s.offset])
	}
}

func (s *Scanner) scanFixedDigits(n int) {
	for i := 0; i < n; i++ {
		if !isDigit(s.ch) {
			s.errorf(s.offset, errors.Lexical, "malformed date/time literal: expected digit")
			return
		}
		s.next()
	}
}

func (s *Scanner) expectByte(b int) {
	if s.ch != b {
		s.errorf(s.offset, errors.Lexical, "malformed date/time literal: expected %q", rune(b))
		return
	}
	s.next()
}
