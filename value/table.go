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

package value

// TableValue is an insertion-ordered string-to-Value mapping: spec.md
// §3.1 requires a table's keys be unique and, per the JSON-projection
// harness in §6, that document order survive into the output. A plain Go
// map cannot preserve that order, so TableValue pairs one with a parallel
// slice recording insertion order.
type TableValue struct {
	order []string
	index map[string]*Value
}

// NewTableValue creates an empty table.
func NewTableValue() *TableValue {
	return &TableValue{index: make(map[string]*Value)}
}

// Len reports the number of keys in the table.
func (t *TableValue) Len() int { return len(t.order) }

// Keys returns the table's keys in insertion order. The caller must not
// mutate the returned slice.
func (t *TableValue) Keys() []string { return t.order }

// Get looks up a key, reporting whether it was present.
func (t *TableValue) Get(key string) (*Value, bool) {
	v, ok := t.index[key]
	return v, ok
}

// Has reports whether key is present.
func (t *TableValue) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Set inserts or overwrites key. Overwriting is a parser-level decision
// (the parser rejects duplicate leaves before ever calling Set twice for
// the same key); TableValue itself does not enforce uniqueness.
func (t *TableValue) Set(key string, v *Value) {
	if _, exists := t.index[key]; !exists {
		t.order = append(t.order, key)
	}
	t.index[key] = v
}

// Release recursively releases every value in the table and clears it.
func (t *TableValue) Release() {
	if t == nil {
		return
	}
	for _, k := range t.order {
		t.index[k].Release()
	}
	t.order = nil
	t.index = nil
}
