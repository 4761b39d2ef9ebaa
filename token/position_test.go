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

package token_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/anttikivi/toml-go/token"
)

func TestFilePositionTracksLinesAndColumns(t *testing.T) {
	src := "abc\ndef\nghi"
	file := token.NewFile("doc.toml", len(src))
	for i, c := range src {
		if c == '\n' {
			file.AddLine(i + 1)
		}
	}

	pos := file.Pos(5) // 'e' in "def"
	p := pos.Position()
	qt.Assert(t, qt.Equals(p.Line, 2))
	qt.Assert(t, qt.Equals(p.Column, 2))
	qt.Assert(t, qt.Equals(p.Filename, "doc.toml"))
}

func TestNoPosIsInvalid(t *testing.T) {
	qt.Assert(t, qt.IsFalse(token.NoPos.IsValid()))
	qt.Assert(t, qt.IsFalse(token.NoPos.Position().IsValid()))
}

func TestLineStartAndLineEnd(t *testing.T) {
	src := "abc\ndef\nghi"
	file := token.NewFile("doc.toml", len(src))
	for i, c := range src {
		if c == '\n' {
			file.AddLine(i + 1)
		}
	}

	start, ok := file.LineStart(2)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(start, 4))

	end := file.LineEnd(2, []byte(src))
	qt.Assert(t, qt.Equals(end, 7))

	_, ok = file.LineStart(99)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestTokenStringNamesAndFallback(t *testing.T) {
	qt.Assert(t, qt.Equals(token.ASSIGN.String(), "="))
	qt.Assert(t, qt.Equals(token.LDBRACK.String(), "[["))
	qt.Assert(t, qt.Matches(token.Token(250).String(), `Token\(250\)`))
}

func TestIsStringToken(t *testing.T) {
	qt.Assert(t, qt.IsTrue(token.BASIC_STRING.IsStringToken()))
	qt.Assert(t, qt.IsTrue(token.MULTILINE_LITERAL_STRING.IsStringToken()))
	qt.Assert(t, qt.IsFalse(token.INT.IsStringToken()))
}
