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

// Package value defines the decoded TOML value tree: the tagged union
// described in spec.md §3.1, its structural validity predicates, an
// insertion-ordered table type, and a canonical (diagnostic-only)
// formatter.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of the tagged union a Value holds.
type Kind uint8

const (
	String Kind = iota
	Int
	Float
	Bool
	Datetime
	LocalDatetime
	LocalDate
	LocalTime
	Array
	Table
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Datetime:
		return "datetime"
	case LocalDatetime:
		return "datetime-local"
	case LocalDate:
		return "date-local"
	case LocalTime:
		return "time-local"
	case Array:
		return "array"
	case Table:
		return "table"
	default:
		return "unknown"
	}
}

// DateTime holds the fields common to all four date/time payloads. Unused
// fields for a given Kind are zero (e.g. LocalDate leaves Hour/Min/Sec/Nano
// at zero, LocalTime leaves Year/Month/Day at zero).
type DateTime struct {
	Year, Month, Day    int
	Hour, Min, Sec      int
	Nanosecond          int
	HasNanosecond       bool
	OffsetMinutes       int // minutes east of UTC; only meaningful for Kind==Datetime
	HasOffset           bool
}

// Value is the tagged union of TOML values described in spec.md §3.1.
// Exactly one field group is meaningful, selected by Kind.
type Value struct {
	kind Kind

	str   string
	i64   int64
	f64   float64
	bl    bool
	dt    DateTime
	arr   []*Value
	table *TableValue
}

// Kind reports which variant v holds.
func (v *Value) Kind() Kind { return v.kind }

// NewString constructs a string Value. s is assumed to already be valid
// UTF-8; the decoder façade is responsible for that guarantee (spec.md
// §8's "UTF-8 round trip" invariant).
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewInt constructs an integer Value.
func NewInt(i int64) *Value { return &Value{kind: Int, i64: i} }

// NewFloat constructs a float Value.
func NewFloat(f float64) *Value { return &Value{kind: Float, f64: f} }

// NewBool constructs a bool Value.
func NewBool(b bool) *Value { return &Value{kind: Bool, bl: b} }

// NewDatetime constructs an offset-datetime Value. The caller must ensure
// dt satisfies IsValid for Datetime; Parse does this before calling.
func NewDatetime(dt DateTime) *Value { return &Value{kind: Datetime, dt: dt} }

// NewLocalDatetime constructs a local-datetime Value (no offset).
func NewLocalDatetime(dt DateTime) *Value { return &Value{kind: LocalDatetime, dt: dt} }

// NewLocalDate constructs a local-date Value.
func NewLocalDate(dt DateTime) *Value { return &Value{kind: LocalDate, dt: dt} }

// NewLocalTime constructs a local-time Value.
func NewLocalTime(dt DateTime) *Value { return &Value{kind: LocalTime, dt: dt} }

// NewArray constructs an array Value from already-built elements.
func NewArray(elems []*Value) *Value { return &Value{kind: Array, arr: elems} }

// NewTable constructs a table Value wrapping an already-built TableValue.
func NewTable(t *TableValue) *Value { return &Value{kind: Table, table: t} }

// AsString returns the payload of a String value and whether v held one.
func (v *Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// AsInt returns the payload of an Int value and whether v held one.
func (v *Value) AsInt() (int64, bool) {
	if v.kind != Int {
		return 0, false
	}
	return v.i64, true
}

// AsFloat returns the payload of a Float value and whether v held one.
func (v *Value) AsFloat() (float64, bool) {
	if v.kind != Float {
		return 0, false
	}
	return v.f64, true
}

// AsBool returns the payload of a Bool value and whether v held one.
func (v *Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.bl, true
}

// AsDateTime returns the date/time payload for any of the four date/time
// kinds, and whether v held one of them.
func (v *Value) AsDateTime() (DateTime, bool) {
	switch v.kind {
	case Datetime, LocalDatetime, LocalDate, LocalTime:
		return v.dt, true
	default:
		return DateTime{}, false
	}
}

// AsArray returns the element slice of an Array value and whether v held
// one. The returned slice is owned by v; callers must not retain it past a
// Release.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.kind != Array {
		return nil, false
	}
	return v.arr, true
}

// AsTable returns the TableValue of a Table value and whether v held one.
func (v *Value) AsTable() (*TableValue, bool) {
	if v.kind != Table {
		return nil, false
	}
	return v.table, true
}

// Release recursively dissociates v's children, matching spec.md
// §3.3/§5's ownership contract: after Release, no further reads through v
// or its former children are meaningful. Go's garbage collector does not
// require this call for correctness, but it is kept so the documented
// allocation discipline is observable and testable (spec.md §8's "Ownership"
// and "Arena discipline" properties).
func (v *Value) Release() {
	if v == nil {
		return
	}
	switch v.kind {
	case Array:
		for _, e := range v.arr {
			e.Release()
		}
		v.arr = nil
	case Table:
		if v.table != nil {
			v.table.Release()
		}
		v.table = nil
	}
}

// Format renders v in the canonical textual form described in spec.md §4.1:
// dates/times in RFC 3339, floats round-trippable, strings raw (quoted for
// readability), arrays/tables bracket-delimited. This is for diagnostics
// and tests only; it is never used as an encoder.
func (v *Value) Format() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v *Value) format(b *strings.Builder) {
	switch v.kind {
	case String:
		b.WriteString(strconv.Quote(v.str))
	case Int:
		b.WriteString(strconv.FormatInt(v.i64, 10))
	case Float:
		b.WriteString(strconv.FormatFloat(v.f64, 'g', -1, 64))
	case Bool:
		if v.bl {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Datetime, LocalDatetime, LocalDate, LocalTime:
		b.WriteString(formatDateTime(v.kind, v.dt))
	case Array:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			e.format(b)
		}
		b.WriteByte(']')
	case Table:
		b.WriteByte('{')
		for i, k := range v.table.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(" = ")
			val, _ := v.table.Get(k)
			val.format(b)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<invalid kind %d>", v.kind)
	}
}

func formatDateTime(kind Kind, dt DateTime) string {
	var b strings.Builder
	switch kind {
	case Datetime, LocalDatetime, LocalDate:
		fmt.Fprintf(&b, "%04d-%02d-%02d", dt.Year, dt.Month, dt.Day)
	}
	switch kind {
	case Datetime, LocalDatetime:
		b.WriteByte('T')
		fallthrough
	case LocalTime:
		fmt.Fprintf(&b, "%02d:%02d:%02d", dt.Hour, dt.Min, dt.Sec)
		if dt.HasNanosecond {
			fmt.Fprintf(&b, ".%09d", dt.Nanosecond)
		}
	}
	if kind == Datetime {
		if dt.OffsetMinutes == 0 {
			b.WriteByte('Z')
		} else {
			sign := byte('+')
			off := dt.OffsetMinutes
			if off < 0 {
				sign = '-'
				off = -off
			}
			fmt.Fprintf(&b, "%c%02d:%02d", sign, off/60, off%60)
		}
	}
	return b.String()
}
