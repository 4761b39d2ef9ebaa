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

package parser

import (
	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

// Node is the intermediate "parsing value" spec.md §3.2 describes: a
// value under construction, plus the three independent flags that record
// how it came into being and whether it may still be extended.
type Node struct {
	Kind value.Kind
	Pos  token.Pos

	// Inlined is set for values created by `{ … }` or `[ … ]` inline
	// syntax; inlined values (and, transitively, their descendants) may
	// never be extended after creation.
	Inlined bool
	// Standard is set for a table created by a `[name]` header, or as an
	// implicit ancestor of one; such a table accepts further key/value
	// lines until a new header appears.
	Standard bool
	// Explicit is set once a table's exact path has been directly named,
	// either by a header or by the final key of a dotted assignment.
	Explicit bool

	// Scalar holds the finished value for every non-container Kind
	// (String, Int, Float, Bool, and the four date/time kinds).
	Scalar *value.Value

	// Elems holds the elements of an Array node, in document order. An
	// "array of tables" is simply an Array whose elements are all Table
	// nodes and which is not Inlined.
	Elems []*Node

	// Table holds the key/child mapping of a Table node.
	Table *Table
}

// Table is the intermediate, insertion-ordered key/child map a Table Node
// owns while parsing is in progress.
type Table struct {
	order []string
	index map[string]*Node
}

func newTableMap() *Table {
	return &Table{index: make(map[string]*Node)}
}

// Get looks up a direct child by name.
func (t *Table) Get(name string) (*Node, bool) {
	n, ok := t.index[name]
	return n, ok
}

// Set inserts or overwrites a direct child. The parser only ever calls
// this once per key (duplicate leaves are rejected before Set is called
// a second time for the same name); table descent reuses the existing
// child instead of calling Set again.
func (t *Table) Set(name string, n *Node) {
	if _, exists := t.index[name]; !exists {
		t.order = append(t.order, name)
	}
	t.index[name] = n
}

// Keys returns the table's children in insertion order.
func (t *Table) Keys() []string { return t.order }

// propagateInlined marks n and every descendant of n as Inlined, the rule
// spec.md §3.2 states for inline literals: "Flags propagate to
// descendants of inline literals."
func propagateInlined(n *Node) {
	n.Inlined = true
	switch n.Kind {
	case value.Array:
		for _, e := range n.Elems {
			propagateInlined(e)
		}
	case value.Table:
		for _, k := range n.Table.Keys() {
			child, _ := n.Table.Get(k)
			propagateInlined(child)
		}
	}
}

// ToValue converts the intermediate tree rooted at n into a fresh,
// independently-owned value.Value tree, per spec.md §3.3/§4.4: the
// returned tree rebuilds every array and table so it outlives the scratch
// arena n was allocated from, and shares the scalar values, which hold no
// arena references.
func (n *Node) ToValue() *value.Value {
	switch n.Kind {
	case value.Array:
		elems := make([]*value.Value, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = e.ToValue()
		}
		return value.NewArray(elems)
	case value.Table:
		tv := value.NewTableValue()
		for _, k := range n.Table.Keys() {
			child, _ := n.Table.Get(k)
			tv.Set(k, child.ToValue())
		}
		return value.NewTable(tv)
	default:
		// Scalars were already built as final value.Value instances at
		// scan/convert time; they hold no arena-owned references, so
		// returning the same pointer is safe and allocation-free.
		return n.Scalar
	}
}
