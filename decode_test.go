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

package toml_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	toml "github.com/anttikivi/toml-go"
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/value"
)

func TestParseBasicDocument(t *testing.T) {
	src := `
title = "TOML Example"

[owner]
name = "Tom Preston-Werner"

[database]
ports = [ 8001, 8001, 8002 ]
enabled = true
`
	v, err := toml.Parse([]byte(src))
	qt.Assert(t, qt.IsNil(err))

	root, ok := v.AsTable()
	qt.Assert(t, qt.IsTrue(ok))

	title, ok := root.Get("title")
	qt.Assert(t, qt.IsTrue(ok))
	s, _ := title.AsString()
	qt.Assert(t, qt.Equals(s, "TOML Example"))

	owner, ok := root.Get("owner")
	qt.Assert(t, qt.IsTrue(ok))
	ownerTbl, _ := owner.AsTable()
	name, ok := ownerTbl.Get("name")
	qt.Assert(t, qt.IsTrue(ok))
	n, _ := name.AsString()
	qt.Assert(t, qt.Equals(n, "Tom Preston-Werner"))
}

func TestParseIsIdempotentOnIdenticalInput(t *testing.T) {
	src := []byte("[a]\nb = [1, 2, {c = \"x\"}]\n")

	v1, err := toml.Parse(src)
	qt.Assert(t, qt.IsNil(err))
	v2, err := toml.Parse(src)
	qt.Assert(t, qt.IsNil(err))

	diff := cmp.Diff(v1, v2, cmp.AllowUnexported(value.Value{}, value.TableValue{}))
	qt.Assert(t, qt.Equals(diff, ""), qt.Commentf("re-parsing identical input produced a different tree:\n%s", diff))
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	src := []byte("a = \"\xff\"\n")
	_, _, err := toml.ParseWithDiagnostics(src)
	qt.Assert(t, qt.IsNotNil(err))

	var kindErr errors.Error
	qt.Assert(t, qt.ErrorAs(err, &kindErr))
	qt.Assert(t, qt.Equals(kindErr.Kind(), errors.Encoding))
}

func TestParseWithDiagnosticsFormatsLineAndColumn(t *testing.T) {
	src := []byte("a = 1\nb = \n")
	_, diag, err := toml.ParseWithDiagnostics(src)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(diag.Line, 2))
	qt.Assert(t, qt.Not(qt.Equals(diag.Format(), "")))
}

func TestParseEmptyDocument(t *testing.T) {
	v, err := toml.Parse([]byte(""))
	qt.Assert(t, qt.IsNil(err))
	tbl, ok := v.AsTable()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tbl.Len(), 0))
}
