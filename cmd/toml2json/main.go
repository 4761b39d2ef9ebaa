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

// Command toml2json is the toml-test-compatible conformance harness
// spec.md treats as an external collaborator: it reads a TOML document
// from stdin and writes its JSON projection to stdout, exiting non-zero
// on any decode failure.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	toml "github.com/anttikivi/toml-go"
	"github.com/anttikivi/toml-go/value"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "toml2json",
		Short:         "Decode a TOML document from stdin and print its JSON projection",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return cmd
}

func run(in io.Reader, out io.Writer) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	v, diag, err := toml.ParseWithDiagnostics(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.Format())
		return err
	}

	tbl, ok := v.AsTable()
	if !ok {
		return fmt.Errorf("decoded root is not a table")
	}

	var b strings.Builder
	projectTable(&b, tbl, 0)
	b.WriteByte('\n')
	_, err = out.Write([]byte(b.String()))
	return err
}

// projectTable renders a TableValue as the toml-test JSON projection: an
// ordinary JSON object whose leaves are {"type": T, "value": S} pairs
// rather than bare JSON scalars, per spec.md §6.
//
// This walks TableValue's insertion order directly and writes JSON text by
// hand rather than building a map[string]any and handing it to
// encoding/json.Marshal, because Go's JSON encoder sorts map keys
// alphabetically — which would silently discard the document order
// TableValue exists to preserve, and that order is load-bearing for this
// harness's output to match a reference TOML decoder's projection.
func projectTable(b *strings.Builder, t *value.TableValue, depth int) {
	if t.Len() == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	keys := t.Keys()
	for i, k := range keys {
		writeIndent(b, depth+1)
		writeJSONString(b, k)
		b.WriteString(": ")
		child, _ := t.Get(k)
		projectValue(b, child, depth+1)
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	writeIndent(b, depth)
	b.WriteByte('}')
}

func projectValue(b *strings.Builder, v *value.Value, depth int) {
	switch v.Kind() {
	case value.Table:
		tbl, _ := v.AsTable()
		projectTable(b, tbl, depth)
	case value.Array:
		elems, _ := v.AsArray()
		if len(elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, e := range elems {
			writeIndent(b, depth+1)
			projectValue(b, e, depth+1)
			if i < len(elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	default:
		projectLeaf(b, v)
	}
}

func projectLeaf(b *strings.Builder, v *value.Value) {
	var typ, val string
	switch v.Kind() {
	case value.String:
		typ = "string"
		val, _ = v.AsString()
	case value.Int:
		typ = "integer"
		i, _ := v.AsInt()
		val = fmt.Sprintf("%d", i)
	case value.Float:
		typ = "float"
		f, _ := v.AsFloat()
		val = formatFloatForJSON(f)
	case value.Bool:
		typ = "bool"
		bv, _ := v.AsBool()
		val = fmt.Sprintf("%t", bv)
	case value.Datetime, value.LocalDatetime, value.LocalDate, value.LocalTime:
		typ = v.Kind().String()
		val = v.Format()
	default:
		typ = "unknown"
		val = v.Format()
	}
	b.WriteString(`{"type": `)
	writeJSONString(b, typ)
	b.WriteString(`, "value": `)
	writeJSONString(b, val)
	b.WriteByte('}')
}

func formatFloatForJSON(f float64) string {
	return fmt.Sprintf("%v", f)
}

// writeJSONString appends s to b as a properly escaped, quoted JSON string,
// delegating to encoding/json for escaping correctness rather than
// hand-rolling it.
func writeJSONString(b *strings.Builder, s string) {
	encoded, _ := json.Marshal(s)
	b.Write(encoded)
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
