// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a Smile stream as an annotated token listing: one line
// per token with its offset, raw bytes, and meaning, including shared
// back-reference table activity. Concatenated documents are listed in
// sequence.
//
// On malformed input the listing up to the failure point is returned
// together with the error, so the output still shows where the stream
// went wrong.
func Dump(data []byte) (string, error) {
	w := dumpWriter{}
	pos := 0
	for pos < len(data) {
		next, err := w.document(data, pos)
		if err != nil {
			return w.b.String(), err
		}
		pos = next
	}
	return w.b.String(), nil
}

type dumpWriter struct {
	b strings.Builder
}

// line writes one listing row: offset, up to eight raw bytes (with an
// ellipsis when the token is longer), and the description.
func (w *dumpWriter) line(offset int, raw []byte, format string, args ...any) {
	hexed := make([]string, 0, 9)
	for i, b := range raw {
		if i == 8 {
			hexed = append(hexed, "..")
			break
		}
		hexed = append(hexed, fmt.Sprintf("%02x", b))
	}
	fmt.Fprintf(&w.b, "%06x  %-26s %s\n", offset, strings.Join(hexed, " "), fmt.Sprintf(format, args...))
}

// document lists one header-prefixed document starting at pos and
// returns the offset just past it.
func (w *dumpWriter) document(data []byte, pos int) (int, error) {
	opts, n, err := parseHeader(data[pos:])
	if err != nil {
		return 0, err
	}
	w.line(pos, data[pos:pos+n], "header: version %d, %s", data[pos+3]>>4, describeFlags(opts))

	// The walk drives the real decoder so the listing reports exactly
	// the table indices a decode assigns.
	d := decoder{data: data, pos: pos + n, opts: opts}

	// Explicit container stack: true frames are objects (keys
	// alternate with values), false frames are arrays.
	var stack []bool
	for {
		if len(stack) > 0 && stack[len(stack)-1] {
			closed, err := w.key(&d)
			if err != nil {
				return 0, err
			}
			if closed {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return d.pos, nil
				}
				continue
			}
			// Fall through to the member's value.
		}

		inArray := len(stack) > 0 && !stack[len(stack)-1]
		open, closed, err := w.value(&d, inArray)
		if err != nil {
			return 0, err
		}
		switch {
		case closed:
			stack = stack[:len(stack)-1]
		case open != 0:
			stack = append(stack, open == 'o')
		}
		if len(stack) == 0 {
			return d.pos, nil
		}
	}
}

// value lists one value-context token. open is 'o' or 'a' when the
// token starts an object or array; closed reports the end of the
// enclosing array (only possible when inArray).
func (w *dumpWriter) value(d *decoder, inArray bool) (open byte, closed bool, err error) {
	offset := d.pos
	if offset >= len(d.data) {
		return 0, false, fmt.Errorf("smile: at byte %d: %w", offset, ErrUnexpectedEndOfInput)
	}

	switch token := d.data[offset]; {
	case token == tokenStartArray:
		d.pos++
		w.line(offset, d.data[offset:d.pos], "start array")
		return 'a', false, nil
	case token == tokenStartObject:
		d.pos++
		w.line(offset, d.data[offset:d.pos], "start object")
		return 'o', false, nil
	case token == tokenEndArray && inArray:
		d.pos++
		w.line(offset, d.data[offset:d.pos], "end array")
		return 0, true, nil
	}

	token := d.data[offset]
	value, err := d.decodeValue()
	if err != nil {
		return 0, false, err
	}
	raw := d.data[offset:d.pos]
	w.line(offset, raw, "%s", describeValue(value, token, raw, d))
	return 0, false, nil
}

// key lists one key-context token. closed reports the end of the
// enclosing object.
func (w *dumpWriter) key(d *decoder) (closed bool, err error) {
	offset := d.pos
	if offset >= len(d.data) {
		return false, fmt.Errorf("smile: unterminated object at byte %d: %w", offset, ErrUnexpectedEndOfInput)
	}
	if d.data[offset] == tokenEndObject {
		d.pos++
		w.line(offset, d.data[offset:d.pos], "end object")
		return true, nil
	}

	token := d.data[offset]
	before := len(d.names)
	name, err := d.decodeKey()
	if err != nil {
		return false, err
	}
	raw := d.data[offset:d.pos]

	switch {
	case token == keyEmptyName:
		w.line(offset, raw, "name \"\"")
	case token == keyLongSharedName:
		w.line(offset, raw, "name ref [%d] -> %s", binary.BigEndian.Uint16(raw[1:]), clip(name))
	case token&0xC0 == keyShortSharedBase:
		w.line(offset, raw, "name ref [%d] -> %s", token&0x3F, clip(name))
	case len(d.names) > before:
		w.line(offset, raw, "name %s -> names[%d]", clip(name), before)
	default:
		w.line(offset, raw, "name %s", clip(name))
	}
	return false, nil
}

// describeValue renders the description for a scalar token that the
// decoder has already consumed; raw holds the token and its payload.
func describeValue(value Value, token byte, raw []byte, d *decoder) string {
	switch {
	case token >= 0x01 && token <= 0x1F:
		return fmt.Sprintf("string ref [%d] -> %s", int(token)-1, clip(value.Str()))
	case token == tokenLongSharedValue:
		return fmt.Sprintf("string ref [%d] -> %s", int(raw[1])+31, clip(value.Str()))
	}

	switch value.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(value.Bool())
	case KindInt:
		switch {
		case token&0xE0 == tokenSmallIntBase:
			return fmt.Sprintf("int %d", value.Int())
		case token == tokenInt32:
			return fmt.Sprintf("int32 %d", value.Int())
		default:
			return fmt.Sprintf("int64 %d", value.Int())
		}
	case KindFloat:
		if token == tokenFloat32 {
			return "float32 " + strconv.FormatFloat(value.Float(), 'g', -1, 32)
		}
		return "float64 " + strconv.FormatFloat(value.Float(), 'g', -1, 64)
	case KindString:
		s := value.Str()
		if d.opts.SharedValues && len(s) > 0 && len(s) <= maxSharedValueLength {
			for i := len(d.values) - 1; i >= 0; i-- {
				if d.values[i] == s {
					return fmt.Sprintf("string %s -> values[%d]", clip(s), i)
				}
			}
		}
		return "string " + clip(s)
	default:
		return value.String()
	}
}

// describeFlags renders the header flag bits.
func describeFlags(opts Options) string {
	var parts []string
	if opts.SharedNames {
		parts = append(parts, "shared-names")
	}
	if opts.SharedValues {
		parts = append(parts, "shared-values")
	}
	if opts.RawBinary {
		parts = append(parts, "raw-binary")
	}
	if len(parts) == 0 {
		return "no flags"
	}
	return strings.Join(parts, " ")
}

// clip quotes a string for display, truncating past 40 bytes.
func clip(s string) string {
	if len(s) > 40 {
		return strconv.Quote(s[:40]) + "..."
	}
	return strconv.Quote(s)
}
