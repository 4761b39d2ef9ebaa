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
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

// parseKeyPath parses a dotted key path in key-context — `a`, `a.b.c`,
// `"a b".c`, `'a.b'.c` — returning each segment's unquoted name alongside
// its starting position, per spec.md §4.1's key grammar. The current
// token must already be the first segment; on return the current token is
// the first one after the path (a `]`, `]]`, or `=`).
func (p *Parser) parseKeyPath() ([]string, []token.Pos) {
	var names []string
	var poss []token.Pos

	name, pos, ok := p.parseKeySegment()
	if !ok {
		return nil, nil
	}
	names = append(names, name)
	poss = append(poss, pos)

	for p.tok == token.DOT {
		p.nextKey()
		name, pos, ok := p.parseKeySegment()
		if !ok {
			return nil, nil
		}
		names = append(names, name)
		poss = append(poss, pos)
	}
	return names, poss
}

// parseKeySegment consumes one bare or quoted key segment.
func (p *Parser) parseKeySegment() (string, token.Pos, bool) {
	pos := p.pos
	switch p.tok {
	case token.LITERAL:
		lit := p.lit
		p.nextKey()
		return lit, pos, true
	case token.BASIC_STRING, token.MULTILINE_BASIC_STRING:
		name, err := unescapeBasicString(p.lit, p.tok == token.MULTILINE_BASIC_STRING)
		if err != nil {
			p.fail(pos, errors.Lexical, "%s", err.Error())
			return "", pos, false
		}
		p.nextKey()
		return name, pos, true
	case token.LITERAL_STRING, token.MULTILINE_LITERAL_STRING:
		lit := p.lit
		p.nextKey()
		return lit, pos, true
	default:
		p.fail(pos, errors.Syntactic, "expected key, got %s", p.tok)
		return "", pos, false
	}
}

// parseKeyValueLine parses one `key = value` line and installs the result
// under current, creating any intermediate dotted-path tables along the
// way, per spec.md §4.3's "Dotted-key assignment rules".
func (p *Parser) parseKeyValueLine(current *Node) {
	names, poss := p.parseKeyPath()
	if !p.ok() {
		return
	}
	p.expectAssign()
	if !p.ok() {
		return
	}

	node := current
	for i := 0; i < len(names)-1; i++ {
		node = p.descendDottedAncestor(node, names[i], poss[i])
		if !p.ok() {
			return
		}
	}

	last := names[len(names)-1]
	lastPos := poss[len(names)-1]
	if _, exists := node.Table.Get(last); exists {
		p.fail(lastPos, errors.Semantic, "duplicate key %q", last)
		return
	}

	val := p.parseValue()
	if !p.ok() {
		return
	}
	node.Table.Set(last, val)

	if !p.ok() {
		return
	}
	switch p.tok {
	case token.LINE_FEED, token.EOF:
		// End of the key/value line.
	default:
		p.fail(p.pos, errors.Syntactic, "expected newline after value, got %s", p.tok)
		return
	}
	p.nextKey()
}

// expectAssign consumes the current `=` token and primes the lookahead
// buffer with the first token of its right-hand side in value-context —
// unlike expectKey, which always re-primes in key-context and would
// otherwise mis-scan a value like `1` as a bare key literal.
func (p *Parser) expectAssign() {
	if p.tok != token.ASSIGN {
		p.fail(p.pos, errors.Syntactic, "expected '=', got %s", p.tok)
		return
	}
	p.nextValue()
}

// descendDottedAncestor resolves one non-final segment of a dotted
// key (in a plain `a.b.c = v` line or an inline-table member; header
// paths go through descendHeaderAncestor instead),
// creating an implicit, non-standard, inlined-false table when the
// segment is absent. Per spec.md §4.3, a dotted key may not reach into a
// table whose exact path was already named by a previous `[header]` —
// i.e. any intermediate table that is both Standard and Explicit is
// closed to further dotted-key extension.
func (p *Parser) descendDottedAncestor(node *Node, name string, pos token.Pos) *Node {
	existing, ok := node.Table.Get(name)
	if !ok {
		child := p.newTableNode(pos, false, false, false)
		node.Table.Set(name, child)
		return child
	}
	if existing.Kind != value.Table {
		p.fail(pos, errors.Semantic, "cannot use %q as a table: already defined as a value", name)
		return node
	}
	if existing.Inlined {
		p.fail(pos, errors.Semantic, "cannot extend inline table %q", name)
		return node
	}
	if existing.Standard && existing.Explicit {
		p.fail(pos, errors.Semantic, "cannot extend table %q defined by a previous header", name)
		return node
	}
	existing.Explicit = true
	return existing
}
