// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes value with DefaultOptions. The output starts with
// the four-byte header and is deterministic: the same value and
// options always produce identical bytes.
func Encode(value Value) ([]byte, error) {
	return EncodeWithOptions(value, DefaultOptions())
}

// EncodeWithOptions serializes value under the given header flags.
func EncodeWithOptions(value Value, opts Options) ([]byte, error) {
	e := encoder{opts: opts}
	e.out = appendHeader(nil, opts)
	if err := e.encodeValue(value); err != nil {
		return nil, err
	}
	return e.out, nil
}

// MustEncode is Encode for call sites where an encode failure is a
// programming error. It panics instead of returning one.
func MustEncode(value Value) []byte {
	data, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return data
}

// encoder holds the output buffer and the shared back-reference
// tables for one encode call. The tables map a string to the index it
// was assigned when first emitted inline; lookups on later occurrences
// produce reference tokens. Indices are assigned in emission order,
// which is the contract that lets any conforming decoder rebuild the
// same tables.
type encoder struct {
	out    []byte
	opts   Options
	names  map[string]int
	values map[string]int
}

func (e *encoder) encodeValue(value Value) error {
	switch value.kind {
	case KindNull:
		e.out = append(e.out, tokenNull)

	case KindBool:
		if value.boolean {
			e.out = append(e.out, tokenTrue)
		} else {
			e.out = append(e.out, tokenFalse)
		}

	case KindInt:
		e.encodeInt(value.integer)

	case KindFloat:
		e.out = append(e.out, tokenFloat64)
		e.out = binary.BigEndian.AppendUint64(e.out, math.Float64bits(value.real))

	case KindString:
		e.encodeString(value.str)

	case KindArray:
		e.out = append(e.out, tokenStartArray)
		for _, item := range value.items {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}
		e.out = append(e.out, tokenEndArray)

	case KindObject:
		e.out = append(e.out, tokenStartObject)
		for _, member := range value.members {
			e.encodeKey(member.Key)
			if err := e.encodeValue(member.Value); err != nil {
				return err
			}
		}
		e.out = append(e.out, tokenEndObject)

	default:
		return fmt.Errorf("smile: value kind %d: %w", uint8(value.kind), ErrUnsupportedType)
	}
	return nil
}

// encodeInt picks the smallest integer token: a single byte for
// -16..15, otherwise a zigzag-coded 4- or 8-byte big-endian payload.
func (e *encoder) encodeInt(v int64) {
	switch {
	case v >= smallIntMin && v <= smallIntMax:
		e.out = append(e.out, tokenSmallIntBase|byte(v&0x1F))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		e.out = append(e.out, tokenInt32)
		e.out = binary.BigEndian.AppendUint32(e.out, zigzagEncode32(int32(v)))
	default:
		e.out = append(e.out, tokenInt64)
		e.out = binary.BigEndian.AppendUint64(e.out, zigzagEncode64(v))
	}
}

// encodeString emits a value-context string, consulting the shared
// value table first. A string already in the table becomes a one- or
// two-byte reference; a new qualifying string is emitted inline and
// appended to the table. Strings longer than 64 bytes and the empty
// string never enter the table.
func (e *encoder) encodeString(s string) {
	if len(s) == 0 {
		e.out = append(e.out, tokenEmptyString)
		return
	}

	if e.opts.SharedValues && len(s) <= maxSharedValueLength {
		if index, ok := e.values[s]; ok {
			switch {
			case index <= maxShortSharedValue:
				e.out = append(e.out, byte(index+1))
				return
			case index <= maxLongSharedValue:
				e.out = append(e.out, tokenLongSharedValue, byte(index-31))
				return
			}
			// The entry exists but its index is beyond the reference
			// token range. Emit inline without re-inserting; the
			// decoder skips the duplicate the same way.
		} else if len(e.values) < maxSharedEntries {
			if e.values == nil {
				e.values = make(map[string]int)
			}
			e.values[s] = len(e.values)
		}
	}

	e.appendStringLiteral(s)
}

// appendStringLiteral emits the classified literal form of a
// value-context string: tiny/small tokens embed the length, longer
// strings get a VInt length prefix and an end marker.
func (e *encoder) appendStringLiteral(s string) {
	length := len(s)
	if isASCII(s) {
		switch {
		case length <= 32:
			e.out = append(e.out, byte(tokenTinyASCIIBase+length-1))
		case length <= 64:
			e.out = append(e.out, byte(tokenSmallASCIIBase+length-33))
		default:
			e.out = append(e.out, tokenLongASCII)
			e.out = appendVInt(e.out, uint64(length))
			e.out = append(e.out, s...)
			e.out = append(e.out, tokenEndString)
			return
		}
		e.out = append(e.out, s...)
		return
	}

	switch {
	case length >= 2 && length <= 33:
		e.out = append(e.out, byte(tokenTinyUnicodeBase+length-2))
	case length >= 34 && length <= 64:
		e.out = append(e.out, byte(tokenShortUnicodeBase+length-34))
	default:
		e.out = append(e.out, tokenLongUnicode)
		e.out = appendVInt(e.out, uint64(length))
		e.out = append(e.out, s...)
		e.out = append(e.out, tokenEndString)
		return
	}
	e.out = append(e.out, s...)
}

// encodeKey emits a field name, consulting the shared name table
// first. Unlike the value table, names of any length qualify for
// sharing; only the empty name (its own token) is excluded.
func (e *encoder) encodeKey(name string) {
	if len(name) == 0 {
		e.out = append(e.out, keyEmptyName)
		return
	}

	if e.opts.SharedNames {
		if index, ok := e.names[name]; ok {
			if index <= maxShortSharedName {
				e.out = append(e.out, byte(keyShortSharedBase+index))
			} else {
				e.out = append(e.out, keyLongSharedName)
				e.out = binary.BigEndian.AppendUint16(e.out, uint16(index))
			}
			return
		}
		if len(e.names) < maxSharedEntries {
			if e.names == nil {
				e.names = make(map[string]int)
			}
			e.names[name] = len(e.names)
		}
	}

	length := len(name)
	switch {
	case length <= 64 && isASCII(name):
		e.out = append(e.out, byte(keyShortASCIIBase+length-1))
		e.out = append(e.out, name...)
	case length <= 64:
		e.out = append(e.out, byte(keyShortUnicodeBase+length-1))
		e.out = append(e.out, name...)
	default:
		e.out = append(e.out, keyLongName)
		e.out = appendVInt(e.out, uint64(length))
		e.out = append(e.out, name...)
		e.out = append(e.out, tokenEndString)
	}
}

// isASCII reports whether every byte of s is below 0x80.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
