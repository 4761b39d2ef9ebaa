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

// Package toml implements a TOML 1.0.0 decoder: validate the input as
// UTF-8, scan and parse it into the intermediate tree defined in package
// parser, and hand the caller an independently-owned value.Value tree
// defined in package value. There is no encoder; this module only reads
// TOML.
package toml

import (
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/parser"
	"github.com/anttikivi/toml-go/token"
	"github.com/anttikivi/toml-go/value"
)

// Parse decodes src as a TOML 1.0.0 document and returns the root table
// value. On failure it returns the first error encountered, per spec.md
// §7's "first failure terminates parsing" rule.
func Parse(src []byte) (*value.Value, error) {
	v, _, err := ParseWithDiagnostics(src)
	return v, err
}

// ParseWithDiagnostics decodes src like Parse, additionally returning a
// rendered Diagnostics view of the failure (zero value on success), per
// spec.md §6.
func ParseWithDiagnostics(src []byte) (*value.Value, errors.Diagnostics, error) {
	if offset, ok := validateUTF8(src); !ok {
		file := token.NewFile("", len(src))
		err := errors.Newf(file.Pos(offset), errors.Encoding, "invalid UTF-8 sequence at byte offset %d", offset)
		return nil, errors.NewDiagnostics(err, file, src), err
	}

	file := token.NewFile("", len(src))
	var errs errors.List
	p := parser.New(file, src, &errs)
	defer p.Release()

	root, perr := p.Parse()
	if perr != nil {
		return nil, errors.NewDiagnostics(perr, file, src), perr
	}
	if errs.Len() > 0 {
		first := errs.First()
		return nil, errors.NewDiagnostics(first, file, src), first
	}

	return root.ToValue(), errors.Diagnostics{}, nil
}

// validateUTF8 walks src byte by byte, rejecting overlong encodings,
// encoded surrogate halves (U+D800-U+DFFF), and code points above
// U+10FFFF, per spec.md §8's "UTF-8 round trip" invariant. It reports the
// offset of the first invalid byte, or ok=true if src is entirely valid.
func validateUTF8(src []byte) (offset int, ok bool) {
	i := 0
	for i < len(src) {
		b := src[i]
		switch {
		case b < 0x80:
			i++
		case b&0xE0 == 0xC0:
			if !hasContinuation(src, i, 1) || b < 0xC2 {
				return i, false
			}
			i += 2
		case b&0xF0 == 0xE0:
			if !hasContinuation(src, i, 2) {
				return i, false
			}
			r := rune(b&0x0F)<<12 | rune(src[i+1]&0x3F)<<6 | rune(src[i+2]&0x3F)
			if r < 0x800 || (r >= 0xD800 && r <= 0xDFFF) {
				return i, false
			}
			i += 3
		case b&0xF8 == 0xF0:
			if !hasContinuation(src, i, 3) {
				return i, false
			}
			r := rune(b&0x07)<<18 | rune(src[i+1]&0x3F)<<12 | rune(src[i+2]&0x3F)<<6 | rune(src[i+3]&0x3F)
			if r < 0x10000 || r > 0x10FFFF {
				return i, false
			}
			i += 4
		default:
			return i, false
		}
	}
	return 0, true
}

func hasContinuation(src []byte, start, n int) bool {
	if start+n >= len(src) {
		return false
	}
	for j := 1; j <= n; j++ {
		if src[start+j]&0xC0 != 0x80 {
			return false
		}
	}
	return true
}
