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

// Package parser assembles the TOML token stream into the intermediate
// "parsing value" tree described in spec.md §3.2/§4.3: it resolves dotted
// keys, enforces the standard-table and array-of-tables header rules, and
// tracks the inlined/standard/explicit flags that govern which tables may
// later be extended.
package parser

import (
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/internal/arena"
	"github.com/anttikivi/toml-go/scanner"
	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

// Parser holds the parser's state: the scanner it reads from, a one-token
// lookahead buffer, the current table, and the scratch arena. The arena
// backs the table Nodes created for the root, for headers and for dotted
// keys, and the array Nodes created by `[[header]]` lines; Nodes for
// values (scalars, inline arrays, inline tables) and every Table map are
// ordinary heap allocations outside the arena.
//
// This is the "equivalent design" spec.md §9 allows in place of raw
// scanner cursor save/restore for the dotted-key lookahead: a single
// buffered lookahead token means the parser never needs to un-read
// anything, because it simply doesn't consume a token until it has
// decided what to do with it. Scanner.Mark/Reset remains available (and
// is exercised directly in the scanner's own tests) for callers that
// prefer the rewind-based approach spec.md §9 describes.
type Parser struct {
	file    *token.File
	scanner scanner.Scanner
	errs    *errors.List

	pos token.Pos
	tok token.Token
	lit string

	nodes arena.Arena[Node]

	root    *Node
	current *Node

	failed errors.Error
}

// New creates a Parser reading src, reporting errors (if any) into errs
// and recording line positions into file.
func New(file *token.File, src []byte, errs *errors.List) *Parser {
	p := &Parser{file: file, errs: errs}
	p.scanner.Init(file, src, errs.Handle)
	return p
}

// NodeCount reports how many Nodes the scratch arena has handed out so
// far; it exists so callers (and this package's own tests) can observe
// Release's effect without reaching into the arena directly.
func (p *Parser) NodeCount() int {
	return p.nodes.Len()
}

// Release drops the scratch arena backing the Nodes this Parser allocated
// from it. Callers must call it after Parse returns, on every exit path
// including failure, per spec.md §3.3/§5; it is safe to call after the
// result tree has been converted with Node.ToValue, since ToValue builds an
// independently-owned value.Value tree that holds no arena pointers.
func (p *Parser) Release() {
	p.nodes.Release()
}

func (p *Parser) fail(pos token.Pos, kind errors.Kind, format string, args ...any) {
	if p.failed == nil {
		p.failed = errors.Newf(pos, kind, format, args...)
		p.errs.Add(p.failed)
	}
}

func (p *Parser) ok() bool { return p.failed == nil }

func (p *Parser) nextKey() {
	p.pos, p.tok, p.lit = p.scanner.NextKeyToken()
}

func (p *Parser) nextValue() {
	p.pos, p.tok, p.lit = p.scanner.NextValueToken()
}

// newNode allocates a Node from the parser's scratch arena, reporting an
// Allocation-kind failure if the arena is exhausted (spec.md §7).
func (p *Parser) newNode(kind value.Kind, pos token.Pos) *Node {
	n, ok := p.nodes.New()
	if !ok {
		p.fail(pos, errors.Allocation, "arena exhausted while allocating parse node")
		return &Node{Kind: kind, Pos: pos, Table: newTableMap()}
	}
	*n = Node{Kind: kind, Pos: pos}
	return n
}

func (p *Parser) newTableNode(pos token.Pos, standard, explicit, inlined bool) *Node {
	n := p.newNode(value.Table, pos)
	n.Table = newTableMap()
	n.Standard = standard
	n.Explicit = explicit
	n.Inlined = inlined
	return n
}

// Parse drives the top-level loop described in spec.md §4.3 to EOF,
// returning the root table Node, or the first error encountered.
func (p *Parser) Parse() (*Node, errors.Error) {
	p.root = p.newTableNode(token.NoPos, false, false, false)
	p.current = p.root

	p.nextKey()
	for p.ok() && p.tok != token.EOF {
		switch p.tok {
		case token.LINE_FEED:
			p.nextKey()
		case token.LBRACK:
			p.parseStandardTableHeader()
		case token.LDBRACK:
			p.parseArrayTableHeader()
		case token.LITERAL, token.BASIC_STRING, token.MULTILINE_BASIC_STRING,
			token.LITERAL_STRING, token.MULTILINE_LITERAL_STRING:
			p.parseKeyValueLine(p.current)
		default:
			p.fail(p.pos, errors.Syntactic, "unexpected token %s at start of line", p.tok)
		}
	}
	if p.errs.Len() > 0 {
		// The scanner reports lexical errors into the same list the parser
		// adds its own failure to, so the list's first entry is the first
		// error of the whole parse.
		return nil, p.errs.First()
	}
	return p.root, nil
}

// expectKey advances past the current token if it matches tok, in
// key-context, or records a syntactic failure.
func (p *Parser) expectKey(tok token.Token, what string) {
	if p.tok != tok {
		p.fail(p.pos, errors.Syntactic, "expected %s, got %s", what, p.tok)
		return
	}
	p.nextKey()
}

// expectEndOfLine requires a LINE_FEED or EOF at the current position,
// consuming a LINE_FEED if present.
func (p *Parser) expectEndOfLine() {
	switch p.tok {
	case token.LINE_FEED:
		p.nextKey()
	case token.EOF:
		// fine, top-level loop will exit
	default:
		p.fail(p.pos, errors.Syntactic, "expected newline, got %s", p.tok)
	}
}

// parseStandardTableHeader handles `[a.b.c]`, per spec.md §4.3.
func (p *Parser) parseStandardTableHeader() {
	p.nextKey() // consume '['
	names, poss := p.parseKeyPath()
	if !p.ok() {
		return
	}
	p.expectKey(token.RBRACK, "]")
	if !p.ok() {
		return
	}
	p.expectEndOfLine()
	if !p.ok() {
		return
	}

	node := p.root
	for i := 0; i < len(names)-1; i++ {
		node = p.descendHeaderAncestor(node, names[i], poss[i])
		if !p.ok() {
			return
		}
	}

	last := names[len(names)-1]
	lastPos := poss[len(names)-1]
	child, exists := node.Table.Get(last)
	switch {
	case !exists:
		child = p.newTableNode(lastPos, true, true, false)
		node.Table.Set(last, child)
	case child.Kind == value.Table && !child.Inlined && child.Standard && !child.Explicit:
		// An implicit ancestor created by an earlier header (e.g. "[a.b]"
		// before "[a]" appears) becomes explicit here; nothing else may.
		child.Explicit = true
	case child.Kind == value.Table && !child.Inlined && child.Explicit:
		p.fail(lastPos, errors.Semantic, "table %q defined more than once", last)
		return
	case child.Kind == value.Table && !child.Inlined && !child.Standard:
		p.fail(lastPos, errors.Semantic, "table %q already defined via dotted keys", last)
		return
	default:
		p.fail(lastPos, errors.Semantic, "cannot redefine value as table: %q", last)
		return
	}
	p.current = child
}

// parseArrayTableHeader handles `[[a.b.c]]`, per spec.md §4.3.
func (p *Parser) parseArrayTableHeader() {
	p.nextKey() // consume '[['
	names, poss := p.parseKeyPath()
	if !p.ok() {
		return
	}
	p.expectKey(token.RDBRACK, "]]")
	if !p.ok() {
		return
	}
	p.expectEndOfLine()
	if !p.ok() {
		return
	}

	node := p.root
	for i := 0; i < len(names)-1; i++ {
		node = p.descendHeaderAncestor(node, names[i], poss[i])
		if !p.ok() {
			return
		}
	}

	last := names[len(names)-1]
	lastPos := poss[len(names)-1]
	arrNode, exists := node.Table.Get(last)
	if !exists {
		arrNode = p.newNode(value.Array, lastPos)
		node.Table.Set(last, arrNode)
	} else if arrNode.Kind != value.Array || arrNode.Inlined {
		p.fail(lastPos, errors.Semantic, "cannot append to %q: not an array of tables", last)
		return
	} else if len(arrNode.Elems) > 0 && arrNode.Elems[0].Kind != value.Table {
		p.fail(lastPos, errors.Semantic, "cannot append to %q: not an array of tables", last)
		return
	}

	elem := p.newTableNode(lastPos, true, true, false)
	arrNode.Elems = append(arrNode.Elems, elem)
	p.current = elem
}

// descendHeaderAncestor resolves one dotted segment of a table or
// array-of-tables header path, creating an implicit standard ancestor
// table when the name is absent, per spec.md §4.3's "Standard-table
// header rules" step 1 / "Array-of-tables header rules" step 1.
func (p *Parser) descendHeaderAncestor(node *Node, name string, pos token.Pos) *Node {
	existing, ok := node.Table.Get(name)
	if !ok {
		child := p.newTableNode(pos, true, false, false)
		node.Table.Set(name, child)
		return child
	}
	switch existing.Kind {
	case value.Table:
		if existing.Inlined {
			p.fail(pos, errors.Semantic, "cannot extend inline table %q", name)
			return node
		}
		return existing
	case value.Array:
		if existing.Inlined || len(existing.Elems) == 0 {
			p.fail(pos, errors.Semantic, "cannot descend through %q: not an array of tables", name)
			return node
		}
		last := existing.Elems[len(existing.Elems)-1]
		if last.Kind != value.Table {
			p.fail(pos, errors.Semantic, "cannot descend through %q: not an array of tables", name)
			return node
		}
		return last
	default:
		p.fail(pos, errors.Semantic, "cannot use %q as a table: already defined as a value", name)
		return node
	}
}
