// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// The smile command inspects, produces, and validates data in the
// Smile binary interchange format.
//
// Subcommands:
//
//   - encode: convert JSON (or JSONC) to Smile.
//   - decode: convert Smile to JSON.
//   - diag: token-level annotated listing of a Smile stream.
//   - validate: check that a stream matches this encoder's
//     deterministic output byte for byte.
//   - from-cbor / to-cbor: transcode between CBOR and Smile.
//
// With no arguments, input on stdin is decoded to pretty-printed
// JSON, so "smile < message.smile" just works. A first argument that
// is not a subcommand name is treated as a jq filter expression: the
// input is decoded to JSON and piped through jq, so
// "smile '.action' request.smile" behaves like jq over Smile data.
//
// All subcommands accept input from stdin or from a trailing file
// path argument. The --hex flag treats input as hex-encoded bytes for
// debugging wire dumps, and zstd-compressed input is detected by its
// frame magic and decompressed transparently.
package main
