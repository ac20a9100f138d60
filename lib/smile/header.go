// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import "fmt"

// Every Smile document starts with the four-byte preamble
// ':' ')' '\n' flags. The flag byte carries the shared-table options in
// its low three bits and the format version in its high nibble.
const (
	headerByte0 = 0x3A // ':'
	headerByte1 = 0x29 // ')'
	headerByte2 = 0x0A // '\n'

	headerLength = 4

	flagSharedNames  = 0x01
	flagSharedValues = 0x02
	flagRawBinary    = 0x04

	// headerVersion is the version nibble this encoder writes. The
	// decoder accepts any version; the format has had exactly one.
	headerVersion = 0
)

// Options select the header flag bits and the corresponding shared
// back-reference behavior for a single encode call.
type Options struct {
	// SharedNames enables the field-name back-reference table:
	// repeated object keys encode as one- or three-byte references
	// instead of repeated literals.
	SharedNames bool

	// SharedValues enables the short-string back-reference table for
	// string values of at most 64 UTF-8 bytes.
	SharedValues bool

	// RawBinary sets header bit 2. The flag is preserved on
	// round-trip but no raw-binary token is produced or accepted.
	RawBinary bool
}

// DefaultOptions returns the standard encoding configuration: both
// shared tables enabled, raw binary off.
func DefaultOptions() Options {
	return Options{SharedNames: true, SharedValues: true}
}

// appendHeader appends the four-byte document preamble for opts.
func appendHeader(dst []byte, opts Options) []byte {
	var flags byte = headerVersion << 4
	if opts.SharedNames {
		flags |= flagSharedNames
	}
	if opts.SharedValues {
		flags |= flagSharedValues
	}
	if opts.RawBinary {
		flags |= flagRawBinary
	}
	return append(dst, headerByte0, headerByte1, headerByte2, flags)
}

// parseHeader checks the preamble and extracts the option flags.
// Returns the options and the offset of the first token byte. A wrong
// magic sequence is ErrInvalidHeader; a correct magic cut short before
// the flag byte is ErrUnexpectedEndOfInput. The version nibble is not
// checked.
func parseHeader(data []byte) (Options, int, error) {
	magic := [3]byte{headerByte0, headerByte1, headerByte2}
	for i, want := range magic {
		if i >= len(data) {
			return Options{}, 0, fmt.Errorf("smile: input is %d bytes, header needs %d: %w",
				len(data), headerLength, ErrInvalidHeader)
		}
		if data[i] != want {
			return Options{}, 0, fmt.Errorf("smile: header byte %d is 0x%02X, want 0x%02X: %w",
				i, data[i], want, ErrInvalidHeader)
		}
	}
	if len(data) < headerLength {
		return Options{}, 0, fmt.Errorf("smile: header flag byte missing: %w", ErrUnexpectedEndOfInput)
	}

	flags := data[3]
	return Options{
		SharedNames:  flags&flagSharedNames != 0,
		SharedValues: flags&flagSharedValues != 0,
		RawBinary:    flags&flagRawBinary != 0,
	}, headerLength, nil
}
