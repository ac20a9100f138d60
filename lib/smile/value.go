// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	// KindNull is the zero Kind, so the zero Value is null.
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the human-readable name of a kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Value is a JSON-model value: null, bool, 64-bit integer, 64-bit
// float, UTF-8 string, array of values, or an object whose members
// keep their insertion order. The zero Value is null.
//
// Values are immutable once constructed; encoding never mutates its
// input and decoding builds fresh values.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	real    float64
	str     string
	items   []Value
	members []Member
}

// Member is a single object field: a string key and its value.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, integer: v}
}

// Float returns a floating-point value.
func Float(v float64) Value {
	return Value{kind: KindFloat, real: v}
}

// String returns a string value. The string must be valid UTF-8; the
// encoder classifies it by its byte content.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array value holding the given items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object returns an object value holding the given members in order.
// Keys are expected to be distinct; the decoder never produces
// duplicates (a re-read key updates the first occurrence in place).
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: members}
}

// Field constructs an object member.
func Field(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.boolean
}

// Int returns the integer payload. Valid only for KindInt.
func (v Value) Int() int64 {
	return v.integer
}

// Float returns the float payload. Valid only for KindFloat.
func (v Value) Float() float64 {
	return v.real
}

// Str returns the string payload. Valid only for KindString.
func (v Value) Str() string {
	return v.str
}

// Items returns the array elements. Valid only for KindArray. The
// returned slice is the value's backing storage; callers must not
// modify it.
func (v Value) Items() []Value {
	return v.items
}

// Members returns the object members in insertion order. Valid only
// for KindObject. The returned slice is the value's backing storage;
// callers must not modify it.
func (v Value) Members() []Member {
	return v.members
}

// Equal reports whether two values are structurally identical: same
// kind, same payload, same element order, same member order. Floats
// compare with Go's == on float64, so NaN never equals itself and 0
// equals -0.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInt:
		return v.integer == other.integer
	case KindFloat:
		return v.real == other.real
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value in a compact JSON-like notation for error
// messages and test output. This is a diagnostic form, not JSON
// serialization; see lib/codec for that.
func (v Value) String() string {
	var b strings.Builder
	v.render(&b)
	return b.String()
}

func (v Value) render(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolean))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.real, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.render(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, member := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(member.Key))
			b.WriteByte(':')
			member.Value.render(b)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<invalid kind %d>", uint8(v.kind))
	}
}
