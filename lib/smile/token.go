// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

// Token byte values from the Smile 1.0.0 specification. These are
// protocol constants — changing any of them breaks wire compatibility.
//
// The value-context token space is partitioned by the high bits of the
// dispatch byte. Exact tokens first, then the classed ranges.
const (
	// tokenEmptyString is the empty string literal. The same byte
	// means "empty field name" in key context.
	tokenEmptyString = 0x20

	tokenNull  = 0x21
	tokenFalse = 0x22
	tokenTrue  = 0x23

	// tokenInt32 and tokenInt64 introduce a zigzag-coded integer
	// payload: 4 or 8 big-endian bytes.
	tokenInt32 = 0x24
	tokenInt64 = 0x25

	// tokenFloat32 is accepted on decode (widened to float64) but
	// never produced by the encoder, which always emits tokenFloat64.
	tokenFloat32 = 0x28
	tokenFloat64 = 0x29

	// tokenLongASCII and tokenLongUnicode introduce strings longer
	// than 64 bytes: VInt length, the bytes, then tokenEndString.
	tokenLongASCII   = 0xE0
	tokenLongUnicode = 0xE4

	// tokenLongSharedValue is followed by one byte holding
	// (index - 31), covering shared value indices 31..286.
	tokenLongSharedValue = 0xEC

	tokenStartArray  = 0xF8
	tokenEndArray    = 0xF9
	tokenStartObject = 0xFA
	tokenEndObject   = 0xFB
	tokenEndString   = 0xFC
)

// Classed value-context ranges. Each base covers 32 tokens selected by
// the low 5 bits.
const (
	// tokenTinyASCIIBase..+0x1F: ASCII string, length = low5 + 1 (1..32).
	tokenTinyASCIIBase = 0x40
	// tokenSmallASCIIBase..+0x1F: ASCII string, length = low5 + 33 (33..64).
	tokenSmallASCIIBase = 0x60
	// tokenTinyUnicodeBase..+0x1F: Unicode string, length = low5 + 2 (2..33).
	tokenTinyUnicodeBase = 0x80
	// tokenShortUnicodeBase..+0x1F: Unicode string, length = low5 + 34 (34..64).
	tokenShortUnicodeBase = 0xA0
	// tokenSmallIntBase..+0x1F: integer, low 5 bits sign-extended (-16..15).
	tokenSmallIntBase = 0xC0
)

// Key-context tokens. Field names use a separate dispatch table.
const (
	keyEmptyName = 0x20

	// keyLongSharedName is followed by a two-byte big-endian index.
	keyLongSharedName = 0x30

	// keyLongName introduces a name longer than 64 bytes: VInt
	// length, the bytes, then tokenEndString.
	keyLongName = 0x34

	// keyShortSharedBase..0x7F: shared name reference, index = low 6
	// bits (0..63).
	keyShortSharedBase = 0x40
	// keyShortASCIIBase..+0x3F: ASCII name, length = low6 + 1 (1..64).
	keyShortASCIIBase = 0x80
	// keyShortUnicodeBase..0xFF: Unicode name, length = low6 + 1 (1..64).
	keyShortUnicodeBase = 0xC0
)

// Shared back-reference table limits.
const (
	// maxSharedEntries caps both reference tables. Once a table holds
	// this many entries, further qualifying strings are emitted inline
	// and not inserted.
	maxSharedEntries = 1024

	// maxSharedValueLength is the longest string (in UTF-8 bytes)
	// eligible for the shared value table.
	maxSharedValueLength = 64

	// maxShortSharedValue is the highest value index expressible as a
	// one-byte reference (0x01..0x1F).
	maxShortSharedValue = 30

	// maxLongSharedValue is the highest value index expressible at
	// all (tokenLongSharedValue + one byte).
	maxLongSharedValue = 286

	// maxShortSharedName is the highest name index expressible as a
	// one-byte reference (0x40..0x7F).
	maxShortSharedName = 63
)

// smallIntMin and smallIntMax bound the single-byte integer token.
const (
	smallIntMin = -16
	smallIntMax = 15
)
