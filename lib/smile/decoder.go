// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decode parses a complete Smile document. Input must hold exactly one
// document; leftover bytes are ErrTrailingData. Use DecodeFirst to
// read back-to-back documents.
func Decode(data []byte) (Value, error) {
	value, rest, err := DecodeFirst(data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) > 0 {
		return Value{}, fmt.Errorf("smile: %d bytes after document: %w", len(rest), ErrTrailingData)
	}
	return value, nil
}

// DecodeFirst parses the first Smile document in data and returns the
// remaining bytes. Each document carries its own header and its own
// shared-reference tables; concatenated documents decode independently.
func DecodeFirst(data []byte) (Value, []byte, error) {
	opts, pos, err := parseHeader(data)
	if err != nil {
		return Value{}, nil, err
	}

	d := decoder{data: data, pos: pos, opts: opts}
	value, err := d.decodeValue()
	if err != nil {
		return Value{}, nil, err
	}
	return value, data[d.pos:], nil
}

// MustDecode is Decode for call sites where a decode failure is a
// programming error. It panics instead of returning one.
func MustDecode(data []byte) Value {
	value, err := Decode(data)
	if err != nil {
		panic(err)
	}
	return value
}

// Header reports the option flags of the document at the start of
// data without decoding its body.
func Header(data []byte) (Options, error) {
	opts, _, err := parseHeader(data)
	return opts, err
}

// decoder carries the cursor and the shared-reference tables for one
// document. The tables mirror the encoder's: every eligible inline
// string read from the stream is appended (first occurrence only), so
// that a reference at index i always resolves to the i-th eligible
// string the encoder emitted inline.
type decoder struct {
	data []byte
	pos  int
	opts Options

	names     []string
	nameSeen  map[string]bool
	values    []string
	valueSeen map[string]bool
}

func (d *decoder) decodeValue() (Value, error) {
	if d.pos >= len(d.data) {
		return Value{}, fmt.Errorf("smile: at byte %d: %w", d.pos, ErrUnexpectedEndOfInput)
	}
	tokenOffset := d.pos
	token := d.data[d.pos]
	d.pos++

	switch token {
	case tokenEmptyString:
		return String(""), nil
	case tokenNull:
		return Null(), nil
	case tokenFalse:
		return Bool(false), nil
	case tokenTrue:
		return Bool(true), nil

	case tokenInt32:
		raw, err := d.readFixed(4, ErrIncompleteInt32)
		if err != nil {
			return Value{}, err
		}
		return Int(int64(zigzagDecode32(binary.BigEndian.Uint32(raw)))), nil

	case tokenInt64:
		raw, err := d.readFixed(8, ErrIncompleteInt64)
		if err != nil {
			return Value{}, err
		}
		return Int(zigzagDecode64(binary.BigEndian.Uint64(raw))), nil

	case tokenFloat32:
		raw, err := d.readFixed(4, ErrIncompleteFloat32)
		if err != nil {
			return Value{}, err
		}
		return Float(float64(math.Float32frombits(binary.BigEndian.Uint32(raw)))), nil

	case tokenFloat64:
		raw, err := d.readFixed(8, ErrIncompleteFloat64)
		if err != nil {
			return Value{}, err
		}
		return Float(math.Float64frombits(binary.BigEndian.Uint64(raw))), nil

	case tokenLongASCII, tokenLongUnicode:
		s, err := d.readLongString(ErrMissingStringTerminator)
		if err != nil {
			return Value{}, err
		}
		d.shareValue(s)
		return String(s), nil

	case tokenLongSharedValue:
		if d.pos >= len(d.data) {
			return Value{}, fmt.Errorf("smile: at byte %d: %w", tokenOffset, ErrIncompleteSharedReference)
		}
		index := int(d.data[d.pos]) + 31
		d.pos++
		return d.sharedValueAt(index, tokenOffset)

	case tokenStartArray:
		return d.decodeArray()

	case tokenStartObject:
		return d.decodeObject()
	}

	switch {
	case token >= 0x01 && token <= 0x1F:
		return d.sharedValueAt(int(token)-1, tokenOffset)

	case token&0xE0 == tokenTinyASCIIBase:
		return d.readStringValue(int(token&0x1F) + 1)
	case token&0xE0 == tokenSmallASCIIBase:
		return d.readStringValue(int(token&0x1F) + 33)
	case token&0xE0 == tokenTinyUnicodeBase:
		return d.readStringValue(int(token&0x1F) + 2)
	case token&0xE0 == tokenShortUnicodeBase:
		return d.readStringValue(int(token&0x1F) + 34)

	case token&0xE0 == tokenSmallIntBase:
		v := int64(token & 0x1F)
		if v > smallIntMax {
			v -= 32
		}
		return Int(v), nil
	}

	return Value{}, &UnknownTokenError{Token: token, Offset: tokenOffset}
}

func (d *decoder) decodeArray() (Value, error) {
	var items []Value
	for {
		if d.pos >= len(d.data) {
			return Value{}, fmt.Errorf("smile: unterminated array at byte %d: %w", d.pos, ErrUnexpectedEndOfInput)
		}
		if d.data[d.pos] == tokenEndArray {
			d.pos++
			return Array(items...), nil
		}
		item, err := d.decodeValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

func (d *decoder) decodeObject() (Value, error) {
	var members []Member
	position := make(map[string]int)
	for {
		if d.pos >= len(d.data) {
			return Value{}, fmt.Errorf("smile: unterminated object at byte %d: %w", d.pos, ErrUnexpectedEndOfInput)
		}
		if d.data[d.pos] == tokenEndObject {
			d.pos++
			return Object(members...), nil
		}
		key, err := d.decodeKey()
		if err != nil {
			return Value{}, err
		}
		value, err := d.decodeValue()
		if err != nil {
			return Value{}, err
		}
		// Mapping semantics with first-seen order: a repeated key
		// replaces the earlier value in place.
		if at, ok := position[key]; ok {
			members[at].Value = value
		} else {
			position[key] = len(members)
			members = append(members, Member{Key: key, Value: value})
		}
	}
}

func (d *decoder) decodeKey() (string, error) {
	tokenOffset := d.pos
	token := d.data[d.pos]
	d.pos++

	switch token {
	case keyEmptyName:
		return "", nil

	case keyLongSharedName:
		if len(d.data)-d.pos < 2 {
			return "", fmt.Errorf("smile: at byte %d: %w", tokenOffset, ErrIncompleteSharedNameReference)
		}
		index := int(binary.BigEndian.Uint16(d.data[d.pos:]))
		d.pos += 2
		return d.sharedNameAt(index, tokenOffset)

	case keyLongName:
		name, err := d.readLongString(ErrMissingFieldNameTerminator)
		if err != nil {
			return "", err
		}
		d.shareName(name)
		return name, nil
	}

	switch {
	case token&0xC0 == keyShortSharedBase:
		return d.sharedNameAt(int(token&0x3F), tokenOffset)

	case token&0xC0 == keyShortASCIIBase, token&0xC0 == keyShortUnicodeBase:
		name, err := d.readString(int(token&0x3F) + 1)
		if err != nil {
			return "", err
		}
		d.shareName(name)
		return name, nil
	}

	return "", &UnknownKeyTokenError{Token: token, Offset: tokenOffset}
}

// readFixed consumes n payload bytes, reporting truncated as the
// truncation error for the caller's token.
func (d *decoder) readFixed(n int, truncated error) ([]byte, error) {
	if len(d.data)-d.pos < n {
		return nil, fmt.Errorf("smile: %d of %d payload bytes at byte %d: %w",
			len(d.data)-d.pos, n, d.pos, truncated)
	}
	raw := d.data[d.pos : d.pos+n]
	d.pos += n
	return raw, nil
}

// readString consumes an n-byte string payload.
func (d *decoder) readString(n int) (string, error) {
	if len(d.data)-d.pos < n {
		return "", fmt.Errorf("smile: string of %d bytes with %d remaining at byte %d: %w",
			n, len(d.data)-d.pos, d.pos, ErrIncompleteString)
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

// readStringValue reads an n-byte inline string in value context and
// applies the shared value table insertion rule.
func (d *decoder) readStringValue(n int) (Value, error) {
	s, err := d.readString(n)
	if err != nil {
		return Value{}, err
	}
	d.shareValue(s)
	return String(s), nil
}

// readLongString consumes a VInt length prefix, the string bytes, and
// the 0xFC end marker.
func (d *decoder) readLongString(missingTerminator error) (string, error) {
	length, pos, err := readVInt(d.data, d.pos)
	if err != nil {
		return "", err
	}
	d.pos = pos
	if uint64(len(d.data)-d.pos) < length {
		return "", fmt.Errorf("smile: string of %d bytes with %d remaining at byte %d: %w",
			length, len(d.data)-d.pos, d.pos, ErrIncompleteString)
	}
	s := string(d.data[d.pos : d.pos+int(length)])
	d.pos += int(length)
	if d.pos >= len(d.data) || d.data[d.pos] != tokenEndString {
		return "", fmt.Errorf("smile: at byte %d: %w", d.pos, missingTerminator)
	}
	d.pos++
	return s, nil
}

// shareValue applies the value-table insertion rule: shared values
// enabled, 1..64 bytes, table not full, first occurrence. This is the
// exact mirror of the encoder's rule; both sides must agree or
// reference indices drift.
func (d *decoder) shareValue(s string) {
	if !d.opts.SharedValues || len(s) == 0 || len(s) > maxSharedValueLength {
		return
	}
	if len(d.values) >= maxSharedEntries || d.valueSeen[s] {
		return
	}
	if d.valueSeen == nil {
		d.valueSeen = make(map[string]bool)
	}
	d.valueSeen[s] = true
	d.values = append(d.values, s)
}

// shareName applies the name-table insertion rule: shared names
// enabled, non-empty, table not full, first occurrence. Names of any
// length qualify.
func (d *decoder) shareName(name string) {
	if !d.opts.SharedNames || len(name) == 0 {
		return
	}
	if len(d.names) >= maxSharedEntries || d.nameSeen[name] {
		return
	}
	if d.nameSeen == nil {
		d.nameSeen = make(map[string]bool)
	}
	d.nameSeen[name] = true
	d.names = append(d.names, name)
}

func (d *decoder) sharedValueAt(index, offset int) (Value, error) {
	if index >= len(d.values) {
		return Value{}, &InvalidSharedReferenceError{Index: index, Size: len(d.values), Offset: offset}
	}
	return String(d.values[index]), nil
}

func (d *decoder) sharedNameAt(index, offset int) (string, error) {
	if index >= len(d.names) {
		return "", &InvalidSharedReferenceError{Index: index, Size: len(d.names), Name: true, Offset: offset}
	}
	return d.names[index], nil
}
