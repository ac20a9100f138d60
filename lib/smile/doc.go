// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package smile implements the Smile binary interchange format
// (FasterXML Smile, version 1.0.0): a binary serialization of the JSON
// data model that is more compact than textual JSON and cheaper to
// process.
//
// The package operates on complete in-memory buffers. [Encode] walks a
// [Value] and produces the wire bytes; [Decode] parses wire bytes back
// into a [Value]. Both directions maintain the format's shared
// back-reference tables (field names and short string values) under
// identical insertion rules, so a stream produced by Encode always
// resolves its references during Decode.
//
//	data, err := smile.Encode(smile.Object(
//	    smile.Field("count", smile.Int(42)),
//	))
//	value, err := smile.Decode(data)
//
// Encoding is deterministic: the same value and options always produce
// identical bytes. [Dump] renders a stream as an annotated token
// listing for debugging wire-level issues.
//
// The format has no streaming mode here and no support for raw binary
// payloads, big integers, or big decimals. The raw-binary header flag
// is preserved on round-trip but no raw-binary token is ever emitted
// or accepted.
package smile
