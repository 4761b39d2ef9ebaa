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

package parser_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/parser"
	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

func mustParse(t *testing.T, src string) *value.Value {
	t.Helper()
	file := token.NewFile("test.toml", len(src))
	var errs errors.List
	p := parser.New(file, []byte(src), &errs)
	root, err := p.Parse()
	qt.Assert(t, qt.IsNil(err), qt.Commentf("src=%q errs=%v", src, errs.All()))
	qt.Assert(t, qt.Equals(errs.Len(), 0))
	return root.ToValue()
}

func mustFail(t *testing.T, src string) {
	t.Helper()
	file := token.NewFile("test.toml", len(src))
	var errs errors.List
	p := parser.New(file, []byte(src), &errs)
	_, err := p.Parse()
	qt.Assert(t, qt.IsNotNil(err), qt.Commentf("src=%q: expected a failure but got none", src))
}

func getTable(t *testing.T, v *value.Value, key string) *value.Value {
	t.Helper()
	tbl, ok := v.AsTable()
	qt.Assert(t, qt.IsTrue(ok))
	child, ok := tbl.Get(key)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("missing key %q", key))
	return child
}

func TestArenaReleasedOnSuccess(t *testing.T) {
	src := []byte("a = 1\n[b]\nc = 2\n")
	file := token.NewFile("test.toml", len(src))
	var errs errors.List
	p := parser.New(file, src, &errs)

	_, err := p.Parse()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(p.NodeCount() > 0))

	p.Release()
	qt.Assert(t, qt.Equals(p.NodeCount(), 0))
}

func TestArenaReleasedOnFailure(t *testing.T) {
	src := []byte("a = 1\na = 2\n")
	file := token.NewFile("test.toml", len(src))
	var errs errors.List
	p := parser.New(file, src, &errs)

	_, err := p.Parse()
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(p.NodeCount() > 0))

	p.Release()
	qt.Assert(t, qt.Equals(p.NodeCount(), 0))
}

func TestParseSimpleKeyValue(t *testing.T) {
	root := mustParse(t, "a = 1\nb = \"two\"\n")
	a := getTable(t, root, "a")
	i, ok := a.AsInt()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(i, int64(1)))

	b := getTable(t, root, "b")
	s, ok := b.AsString()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s, "two"))
}

func TestParseDottedKeyCreatesSubTable(t *testing.T) {
	root := mustParse(t, "a.b.c = 1\n")
	a := getTable(t, root, "a")
	b := getTable(t, a, "b")
	c := getTable(t, b, "c")
	i, _ := c.AsInt()
	qt.Assert(t, qt.Equals(i, int64(1)))
}

func TestParseStandardTableHeader(t *testing.T) {
	root := mustParse(t, "[a.b]\nc = 1\n")
	a := getTable(t, root, "a")
	b := getTable(t, a, "b")
	c := getTable(t, b, "c")
	i, _ := c.AsInt()
	qt.Assert(t, qt.Equals(i, int64(1)))
}

func TestParseArrayOfTablesAppends(t *testing.T) {
	root := mustParse(t, "[[fruit]]\nname = \"apple\"\n[[fruit]]\nname = \"banana\"\n")
	fruit := getTable(t, root, "fruit")
	arr, ok := fruit.AsArray()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(arr), 2))

	name0 := getTable(t, arr[0], "name")
	s0, _ := name0.AsString()
	qt.Assert(t, qt.Equals(s0, "apple"))

	name1 := getTable(t, arr[1], "name")
	s1, _ := name1.AsString()
	qt.Assert(t, qt.Equals(s1, "banana"))
}

func TestParseInlineTableAndArray(t *testing.T) {
	root := mustParse(t, "point = { x = 1, y = 2 }\nlist = [1, 2, 3]\n")
	point := getTable(t, root, "point")
	x := getTable(t, point, "x")
	xi, _ := x.AsInt()
	qt.Assert(t, qt.Equals(xi, int64(1)))

	list := getTable(t, root, "list")
	elems, ok := list.AsArray()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(elems), 3))
}

func TestParseDuplicateKeyFails(t *testing.T) {
	mustFail(t, "a = 1\na = 2\n")
}

func TestParseRedefiningStandardTableFails(t *testing.T) {
	mustFail(t, "[a]\nb = 1\n[a]\nc = 2\n")
}

func TestParseExtendingInlineTableFails(t *testing.T) {
	mustFail(t, "a = { b = 1 }\n[a.c]\nd = 2\n")
}

func TestParseArrayOfTablesThenConflictingStandardTableFails(t *testing.T) {
	// "fruit" is an array of tables; a bare [fruit] header cannot redefine
	// it as a standard table.
	mustFail(t, "[[fruit]]\nname = \"apple\"\n[fruit]\nname = \"oops\"\n")
}

func TestParseHeaderReopeningDottedKeyTableFails(t *testing.T) {
	// "apple" is created by the dotted key "apple.color", not by a header,
	// so it is not Standard; a later "[fruit.apple]" header must not adopt
	// it, even though it is a plain, non-explicit, non-inline table.
	mustFail(t, "[fruit]\napple.color = \"red\"\n[fruit.apple]\ntexture = \"smooth\"\n")
}

func TestParseHeaderDescendingThroughDottedKeyTableSucceeds(t *testing.T) {
	// Descending through "fruit.apple" to add a new child "taste" is legal:
	// it does not redefine "apple" itself, only extends it with a key the
	// dotted assignment never touched.
	root := mustParse(t, "[fruit]\napple.color = \"red\"\n[fruit.apple.taste]\nsweet = true\n")
	apple := getTable(t, getTable(t, root, "fruit"), "apple")
	color := getTable(t, apple, "color")
	s, _ := color.AsString()
	qt.Assert(t, qt.Equals(s, "red"))
	taste := getTable(t, apple, "taste")
	sweet := getTable(t, taste, "sweet")
	b, _ := sweet.AsBool()
	qt.Assert(t, qt.IsTrue(b))
}

func TestParseDateTimeVariants(t *testing.T) {
	root := mustParse(t, "od = 1979-05-27T07:32:00Z\nld = 1979-05-27T07:32:00\nd = 1979-05-27\nlt = 07:32:00\n")

	od := getTable(t, root, "od")
	qt.Assert(t, qt.Equals(od.Kind(), value.Datetime))

	ld := getTable(t, root, "ld")
	qt.Assert(t, qt.Equals(ld.Kind(), value.LocalDatetime))

	d := getTable(t, root, "d")
	qt.Assert(t, qt.Equals(d.Kind(), value.LocalDate))

	lt := getTable(t, root, "lt")
	qt.Assert(t, qt.Equals(lt.Kind(), value.LocalTime))
}

func TestParseInvalidCalendarDateFails(t *testing.T) {
	mustFail(t, "d = 1979-02-30\n")
}

func TestParseTrailingCommaInArrayIsLegal(t *testing.T) {
	root := mustParse(t, "a = [1, 2, 3,]\n")
	arr, _ := getTable(t, root, "a").AsArray()
	qt.Assert(t, qt.Equals(len(arr), 3))
}

func TestParseTrailingCommaInInlineTableFails(t *testing.T) {
	mustFail(t, "a = { x = 1, }\n")
}

func TestParseMultilineArrayWithComments(t *testing.T) {
	root := mustParse(t, "a = [\n  1, # one\n  2, # two\n]\n")
	arr, _ := getTable(t, root, "a").AsArray()
	qt.Assert(t, qt.Equals(len(arr), 2))
}

func TestParseNestedArraysWithAdjacentClosingBrackets(t *testing.T) {
	root := mustParse(t, "a = [[1, 2], [3, 4]]\n")
	outer, _ := getTable(t, root, "a").AsArray()
	qt.Assert(t, qt.Equals(len(outer), 2))

	first, _ := outer[0].AsArray()
	qt.Assert(t, qt.DeepEquals(func() []int64 {
		out := make([]int64, len(first))
		for i, v := range first {
			n, _ := v.AsInt()
			out[i] = n
		}
		return out
	}(), []int64{1, 2}))

	second, _ := outer[1].AsArray()
	qt.Assert(t, qt.Equals(len(second), 2))
}
