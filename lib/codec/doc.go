// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard Smile encoding configuration and
// the boundary between plain Go values and the core codec.
//
// The repo uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: CLI input and output, fixtures,
//     anything a person reads or writes.
//   - Smile for the wire: the compact binary form that lib/smile
//     encodes and decodes.
//
// This package holds the glue so that every caller encodes identically
// without duplicating configuration:
//
//   - [Marshal] / [Unmarshal] convert between plain Go values (nil,
//     bool, integers, floats, string, []any, map[string]any) and Smile
//     bytes under the default options. Map keys are sorted during
//     Marshal, so the same Go value always produces identical bytes.
//     Unmarshal returns map[string]any for objects and therefore does
//     not preserve member order; use [smile.Decode] directly when
//     order matters.
//   - [ValueFromJSON] / [ValueToJSON] convert between JSON text and
//     [smile.Value], preserving object member order and keeping
//     integer literals that fit in int64 as integers. The CLI is built
//     on these.
//
// For buffer-oriented use:
//
//	data, err := codec.Marshal(value)
//	value, err := codec.Unmarshal(data)
//
// [MustMarshal] and [MustUnmarshal] are the panicking forms for call
// sites (tests, init-time fixtures) where failure is a programming
// error.
package codec
