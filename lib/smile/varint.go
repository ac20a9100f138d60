// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import "fmt"

// VInt is the variable-length unsigned integer used for long string
// length prefixes: little-endian, 7 bits per byte, high bit set on
// every byte except the last. Zero encodes as a single 0x00.

// appendVInt appends the VInt encoding of v to dst.
func appendVInt(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// readVInt decodes a VInt starting at pos. Returns the value and the
// position of the first byte after it. Input that ends while the
// continuation bit is still set, or that carries continuation past the
// 64-bit range, is reported as ErrIncompleteVInt.
func readVInt(data []byte, pos int) (uint64, int, error) {
	var value uint64
	for shift := 0; ; shift += 7 {
		if pos >= len(data) {
			return 0, 0, fmt.Errorf("smile: at byte %d: %w", pos, ErrIncompleteVInt)
		}
		if shift > 63 {
			return 0, 0, fmt.Errorf("smile: at byte %d: varint exceeds 64 bits: %w", pos, ErrIncompleteVInt)
		}
		b := data[pos]
		pos++
		value |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, pos, nil
		}
	}
}
