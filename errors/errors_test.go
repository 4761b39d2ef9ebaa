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

package errors_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/token"
)

func TestKindString(t *testing.T) {
	qt.Assert(t, qt.Equals(errors.Lexical.String(), "lexical"))
	qt.Assert(t, qt.Equals(errors.Semantic.String(), "semantic"))
	qt.Assert(t, qt.Equals(errors.Kind(250).String(), "unknown"))
}

func TestNewAndNewf(t *testing.T) {
	pos := token.Pos(7)
	err := errors.New(pos, errors.Syntactic, "unexpected token")
	qt.Assert(t, qt.Equals(err.Error(), "unexpected token"))
	qt.Assert(t, qt.Equals(err.Position(), pos))
	qt.Assert(t, qt.Equals(err.Kind(), errors.Syntactic))

	errf := errors.Newf(pos, errors.Numeric, "overflow: %d", 42)
	qt.Assert(t, qt.Equals(errf.Error(), "overflow: 42"))
	qt.Assert(t, qt.Equals(errf.Kind(), errors.Numeric))
}

func TestListHandleIsAssignableAsHandler(t *testing.T) {
	var l errors.List
	var h errors.Handler = l.Handle
	h(token.Pos(1), errors.Lexical, "bad escape")

	qt.Assert(t, qt.Equals(l.Len(), 1))
	qt.Assert(t, qt.Equals(l.First().Kind(), errors.Lexical))
}

func TestListAddNewfAndOrdering(t *testing.T) {
	var l errors.List
	l.AddNewf(token.Pos(1), errors.Syntactic, "first %s", "failure")
	l.AddNewf(token.Pos(2), errors.Semantic, "second %s", "failure")

	qt.Assert(t, qt.Equals(l.Len(), 2))
	qt.Assert(t, qt.Equals(l.First().Error(), "first failure"))
	qt.Assert(t, qt.DeepEquals(
		[]string{l.All()[0].Error(), l.All()[1].Error()},
		[]string{"first failure", "second failure"},
	))
}

func TestListErrorJoinsMessages(t *testing.T) {
	var l errors.List
	l.AddNewf(token.Pos(1), errors.Syntactic, "one")
	l.AddNewf(token.Pos(2), errors.Semantic, "two")

	qt.Assert(t, qt.Equals(l.Error(), "one\ntwo"))
}

func TestEmptyListFirstIsNil(t *testing.T) {
	var l errors.List
	qt.Assert(t, qt.IsNil(l.First()))
	qt.Assert(t, qt.Equals(l.Len(), 0))
}

func TestDiagnosticsFormat(t *testing.T) {
	d := errors.Diagnostics{
		Line:    2,
		Column:  4,
		Snippet: "b =",
		Message: "expected value, got LINE_FEED",
	}
	qt.Assert(t, qt.Equals(d.Format(), "error parsing TOML document on line 2, column 4\nb =\n   ^"))
}

func TestNewDiagnosticsSlicesOffendingLine(t *testing.T) {
	src := []byte("a = 1\nb =\n")
	file := token.NewFile("doc.toml", len(src))
	for i, c := range src {
		if c == '\n' {
			file.AddLine(i + 1)
		}
	}

	pos := file.Pos(9) // the LINE_FEED ending "b =\n"
	err := errors.New(pos, errors.Syntactic, "expected value, got LINE_FEED")

	d := errors.NewDiagnostics(err, file, src)
	qt.Assert(t, qt.Equals(d.Line, 2))
	qt.Assert(t, qt.Equals(d.Column, 4))
	qt.Assert(t, qt.Equals(d.Snippet, "b ="))
	qt.Assert(t, qt.Equals(d.Message, "expected value, got LINE_FEED"))
}
