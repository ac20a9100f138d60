// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"errors"
	"fmt"
)

// The decode error set is closed: every way a parse can fail maps to
// exactly one of the values or types below. Errors are wrapped with
// byte-offset context, so match with errors.Is / errors.As.
var (
	// ErrInvalidHeader reports input that does not start with the
	// ':' ')' '\n' magic bytes.
	ErrInvalidHeader = errors.New("smile: invalid header")

	// ErrUnexpectedEndOfInput reports input that ends where a token
	// byte was required.
	ErrUnexpectedEndOfInput = errors.New("smile: unexpected end of input")

	// ErrIncompleteInt32 and friends report a fixed-width payload cut
	// short: fewer than 4 or 8 bytes after the numeric token.
	ErrIncompleteInt32   = errors.New("smile: incomplete 32-bit integer")
	ErrIncompleteInt64   = errors.New("smile: incomplete 64-bit integer")
	ErrIncompleteFloat32 = errors.New("smile: incomplete 32-bit float")
	ErrIncompleteFloat64 = errors.New("smile: incomplete 64-bit float")

	// ErrIncompleteString reports a string payload whose declared
	// length exceeds the bytes remaining.
	ErrIncompleteString = errors.New("smile: incomplete string")

	// ErrMissingStringTerminator reports a long string value that ran
	// to end of input without its 0xFC terminator.
	ErrMissingStringTerminator = errors.New("smile: missing string terminator")

	// ErrMissingFieldNameTerminator is the field-name analogue of
	// ErrMissingStringTerminator.
	ErrMissingFieldNameTerminator = errors.New("smile: missing field name terminator")

	// ErrIncompleteVInt reports a variable-length integer whose
	// continuation bits never terminated within the input (or within
	// the 64-bit range).
	ErrIncompleteVInt = errors.New("smile: incomplete variable-length integer")

	// ErrIncompleteSharedReference reports a long shared-value
	// reference token with no index byte after it.
	ErrIncompleteSharedReference = errors.New("smile: incomplete shared value reference")

	// ErrIncompleteSharedNameReference reports a long shared-name
	// reference token with fewer than two index bytes after it.
	ErrIncompleteSharedNameReference = errors.New("smile: incomplete shared name reference")

	// ErrTrailingData reports bytes left over after the single
	// document that Decode expects. DecodeFirst returns the remainder
	// instead.
	ErrTrailingData = errors.New("smile: trailing data after document")

	// ErrUnsupportedType reports an encode input outside the value
	// model (a Value with an invalid kind, or a Go type lib/codec
	// cannot map).
	ErrUnsupportedType = errors.New("smile: unsupported type")

	// ErrIntegerOutOfRange reports an integer that does not fit the
	// signed 64-bit range of the value model.
	ErrIntegerOutOfRange = errors.New("smile: integer out of range")
)

// UnknownTokenError reports a dispatch byte with no defined meaning in
// value context.
type UnknownTokenError struct {
	Token  byte
	Offset int
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("smile: unknown token 0x%02X at byte %d", e.Token, e.Offset)
}

// UnknownKeyTokenError reports a dispatch byte with no defined meaning
// in field-name context.
type UnknownKeyTokenError struct {
	Token  byte
	Offset int
}

func (e *UnknownKeyTokenError) Error() string {
	return fmt.Sprintf("smile: unknown field name token 0x%02X at byte %d", e.Token, e.Offset)
}

// InvalidSharedReferenceError reports a back-reference to a table
// index that has not been populated at the point the reference is
// read.
type InvalidSharedReferenceError struct {
	// Index is the referenced table slot.
	Index int
	// Size is the number of entries the table held when the
	// reference was read.
	Size int
	// Name distinguishes the field-name table from the value table.
	Name bool
	// Offset is the position of the reference token.
	Offset int
}

func (e *InvalidSharedReferenceError) Error() string {
	table := "value"
	if e.Name {
		table = "name"
	}
	return fmt.Sprintf("smile: shared %s reference to index %d at byte %d, table has %d entries",
		table, e.Index, e.Offset, e.Size)
}
