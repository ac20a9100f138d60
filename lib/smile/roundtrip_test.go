// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
)

// optionCombos covers every header flag combination that affects
// shared-table behavior.
var optionCombos = []Options{
	{},
	{SharedNames: true},
	{SharedValues: true},
	{SharedNames: true, SharedValues: true},
	{SharedNames: true, SharedValues: true, RawBinary: true},
}

// roundTripValues is the shared corpus for the property tests below.
func roundTripValues() []Value {
	longASCII := strings.Repeat("the quick brown fox ", 20)
	longUnicode := strings.Repeat("héllo wörld ", 12)

	return []Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(0),
		Int(15),
		Int(-16),
		Int(16),
		Int(-17),
		Int(math.MaxInt32),
		Int(math.MinInt32),
		Int(math.MaxInt64),
		Int(math.MinInt64),
		Float(0),
		Float(1.5),
		Float(-2.25),
		Float(math.Pi),
		Float(math.MaxFloat64),
		Float(math.SmallestNonzeroFloat64),
		Float(math.Inf(1)),
		Float(math.Inf(-1)),
		String(""),
		String("a"),
		String("hello"),
		String(strings.Repeat("x", 32)),
		String(strings.Repeat("x", 33)),
		String(strings.Repeat("x", 64)),
		String(strings.Repeat("x", 65)),
		String("héllo"),
		String("日本語のテキスト"),
		String(longASCII),
		String(longUnicode),
		Array(),
		Array(Int(1), Int(2), Int(3)),
		Array(String("dup"), String("dup"), String("dup")),
		Array(Null(), Bool(true), Float(1.5), String("mixed")),
		Object(),
		Object(Field("a", Int(1))),
		Object(Field("", Int(1))),
		Object(
			Field("zebra", Int(1)),
			Field("apple", Int(2)),
			Field("mango", Int(3)),
		),
		Object(
			Field("name", String("widget")),
			Field("nested", Object(
				Field("name", String("widget")),
				Field("deep", Array(Object(Field("name", Null())))),
			)),
		),
		Object(Field(strings.Repeat("k", 65), String("long key"))),
		Object(Field("ключ", String("значение"))),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, opts := range optionCombos {
		opts := opts
		t.Run(fmt.Sprintf("names=%v values=%v raw=%v", opts.SharedNames, opts.SharedValues, opts.RawBinary), func(t *testing.T) {
			for _, value := range roundTripValues() {
				data, err := EncodeWithOptions(value, opts)
				if err != nil {
					t.Fatalf("Encode(%s): %v", value, err)
				}
				decoded, err := Decode(data)
				if err != nil {
					t.Fatalf("Decode(Encode(%s)) = % X: %v", value, data, err)
				}
				if !decoded.Equal(value) {
					t.Errorf("round trip of %s = %s", value, decoded)
				}
			}
		})
	}
}

// TestRoundTripNaN is separate because NaN != NaN under Equal's ==
// float comparison; check for NaN directly.
func TestRoundTripNaN(t *testing.T) {
	data, err := Encode(Float(math.NaN()))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Kind() != KindFloat || !math.IsNaN(decoded.Float()) {
		t.Errorf("round trip of NaN = %s", decoded)
	}
}

// TestRoundTripOptionIndependence checks that the decoded value does
// not depend on which options produced the stream.
func TestRoundTripOptionIndependence(t *testing.T) {
	value := Object(
		Field("tags", Array(String("dup"), String("dup"))),
		Field("nest", Object(Field("tags", String("dup")))),
	)

	var first Value
	for i, opts := range optionCombos {
		data, err := EncodeWithOptions(value, opts)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		decoded, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if i == 0 {
			first = decoded
			continue
		}
		if !decoded.Equal(first) {
			t.Errorf("options %+v decoded differently: %s vs %s", opts, decoded, first)
		}
	}
}

// TestRoundTripDeepNesting exercises recursion well past typical
// document depth.
func TestRoundTripDeepNesting(t *testing.T) {
	value := Int(7)
	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			value = Array(value)
		} else {
			value = Object(Field("v", value))
		}
	}

	data, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Error("deep nesting round trip mismatch")
	}
}

// TestRoundTripObjectKeyOrder checks insertion order survives even
// when it disagrees with sorted order.
func TestRoundTripObjectKeyOrder(t *testing.T) {
	value := Object(
		Field("zulu", Int(1)),
		Field("alpha", Int(2)),
		Field("mike", Int(3)),
		Field("bravo", Int(4)),
	)
	decoded, err := Decode(MustEncode(value))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	members := decoded.Members()
	wantOrder := []string{"zulu", "alpha", "mike", "bravo"}
	for i, want := range wantOrder {
		if members[i].Key != want {
			t.Fatalf("member %d = %q, want %q (order %v)", i, members[i].Key, want, wantOrder)
		}
	}
}

// TestRoundTripManySharedStrings pushes hundreds of distinct short
// strings through both reference forms and back.
func TestRoundTripManySharedStrings(t *testing.T) {
	var items []Value
	for i := 0; i < 300; i++ {
		items = append(items, String(fmt.Sprintf("shared-%03d", i)))
	}
	// Second pass: indices 0..286 are referenceable, the rest are
	// re-emitted inline.
	for i := 0; i < 300; i++ {
		items = append(items, String(fmt.Sprintf("shared-%03d", i)))
	}
	value := Array(items...)

	data, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Error("shared string round trip mismatch")
	}

	// The second pass must be cheaper than the first: 287 of its 300
	// strings collapse to references.
	unshared, err := EncodeWithOptions(value, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) >= len(unshared) {
		t.Errorf("shared encoding (%d bytes) not smaller than unshared (%d bytes)", len(data), len(unshared))
	}
}

// TestRoundTripManySharedNames puts a hundred distinct keys into the
// name table, with one key ("common") repeated in every object as a
// one-byte name reference.
func TestRoundTripManySharedNames(t *testing.T) {
	var items []Value
	for i := 0; i < 100; i++ {
		items = append(items, Object(
			Field(fmt.Sprintf("key-%03d", i), Int(int64(i))),
			Field("common", Bool(true)),
		))
	}
	value := Array(items...)

	decoded, err := Decode(MustEncode(value))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Error("shared name round trip mismatch")
	}
}

// TestRoundTripValueTableFull drives the value table past its 1024
// entry cap. Strings 1024..1099 arrive with the table full: neither
// side inserts them, and their repeats are re-emitted inline. A
// re-encode of the decoded value must reproduce the stream byte for
// byte, which fails if the two tables ever disagree on an index.
func TestRoundTripValueTableFull(t *testing.T) {
	var items []Value
	for i := 0; i < 1100; i++ {
		items = append(items, String(fmt.Sprintf("entry-%04d", i)))
	}
	// Repeat everything: indices 0..286 collapse to references,
	// 287..1023 are in-table but unreferenceable, 1024.. never
	// entered the table.
	for i := 0; i < 1100; i++ {
		items = append(items, String(fmt.Sprintf("entry-%04d", i)))
	}
	value := Array(items...)

	data, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Fatal("round trip mismatch past the value table cap")
	}

	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("re-encode of decoded value differs; table state diverged")
	}
}

// TestRoundTripNameTableFull is the same check for the name table:
// 1100 distinct keys, then every object repeated so keys 0..1023
// resolve as references and the post-cap keys are spelled out again.
func TestRoundTripNameTableFull(t *testing.T) {
	var items []Value
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < 1100; i++ {
			items = append(items, Object(Field(fmt.Sprintf("field-%04d", i), Int(int64(pass)))))
		}
	}
	value := Array(items...)

	data, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(value) {
		t.Fatal("round trip mismatch past the name table cap")
	}

	reencoded, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Error("re-encode of decoded value differs; table state diverged")
	}
}
