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

// Package arena implements the scratch-arena allocator spec.md §3.3 and §5
// describe for the parser's intermediate "parsing value" tree: memory is
// handed out from growable slabs during a single parse and released all at
// once when parsing returns, on every exit path including error.
//
// Go's garbage collector does not require an arena for correctness, but
// the slab design keeps the intermediate tree's node allocations batched
// (one allocation per slab instead of one per node) and gives the decoder
// an explicit, testable release point and an allocation-error path for
// pathologically large documents, matching the resource discipline spec.md
// documents.
package arena

// defaultSlabSize is the number of elements a single backing slab holds
// before Arena grows by allocating another one.
const defaultSlabSize = 256

// MaxNodes bounds the total number of elements an Arena will ever hand
// out. A caller-bounded input (spec.md §5: "callers bound work by
// bounding input size") that still manages to request more than this is
// reported as an Allocation-kind failure rather than let the process grow
// without limit.
const MaxNodes = 1 << 24 // ~16.7M nodes

// Arena is a growable slab allocator for values of type T. The zero value
// is ready to use.
type Arena[T any] struct {
	slabs []([]T)
	used  int // elements used in the last slab
	total int // elements handed out across all slabs
}

// New allocates one T from the arena and returns a pointer to it, or
// reports ok=false if doing so would exceed MaxNodes.
func (a *Arena[T]) New() (p *T, ok bool) {
	if a.total >= MaxNodes {
		return nil, false
	}
	if len(a.slabs) == 0 || a.used == len(a.slabs[len(a.slabs)-1]) {
		a.slabs = append(a.slabs, make([]T, defaultSlabSize))
		a.used = 0
	}
	slab := a.slabs[len(a.slabs)-1]
	p = &slab[a.used]
	a.used++
	a.total++
	return p, true
}

// Len reports how many elements have been handed out so far.
func (a *Arena[T]) Len() int { return a.total }

// Release drops every slab, making every previously returned pointer
// unsafe to dereference. It is unconditional and idempotent, matching
// spec.md §5's "acquired at the start of parse and released
// unconditionally on every exit path".
func (a *Arena[T]) Release() {
	a.slabs = nil
	a.used = 0
	a.total = 0
}
