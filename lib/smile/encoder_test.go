// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// TestEncodeWireBytes pins the exact wire form of representative
// values under the default options (flag byte 0x03).
func TestEncodeWireBytes(t *testing.T) {
	header := []byte{0x3A, 0x29, 0x0A, 0x03}
	tests := []struct {
		name  string
		value Value
		body  []byte
	}{
		{"null", Null(), []byte{0x21}},
		{"false", Bool(false), []byte{0x22}},
		{"true", Bool(true), []byte{0x23}},
		{"small int 5", Int(5), []byte{0xC5}},
		{"small int -1", Int(-1), []byte{0xDF}},
		{"small int min", Int(-16), []byte{0xD0}},
		{"small int max", Int(15), []byte{0xCF}},
		{"int32 16", Int(16), []byte{0x24, 0x00, 0x00, 0x00, 0x20}},
		{"int32 -17", Int(-17), []byte{0x24, 0x00, 0x00, 0x00, 0x21}},
		{"int32 max", Int(2147483647), []byte{0x24, 0xFF, 0xFF, 0xFF, 0xFE}},
		{"int64", Int(2147483648), []byte{0x25, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
		{"float 1.5", Float(1.5), []byte{0x29, 0x3F, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"empty string", String(""), []byte{0x20}},
		{"ascii hello", String("hello"), []byte{0x44, 'h', 'e', 'l', 'l', 'o'}},
		{"two byte unicode", String("é"), []byte{0x80, 0xC3, 0xA9}},
		{"empty array", Array(), []byte{0xF8, 0xF9}},
		{"empty object", Object(), []byte{0xFA, 0xFB}},
		{
			"one field object",
			Object(Field("a", Int(1))),
			[]byte{0xFA, 0x80, 'a', 0xC1, 0xFB},
		},
		{
			"repeated string becomes reference",
			Array(String("abc"), String("abc")),
			[]byte{0xF8, 0x42, 'a', 'b', 'c', 0x01, 0xF9},
		},
		{
			"empty strings never shared",
			Array(String(""), String("")),
			[]byte{0xF8, 0x20, 0x20, 0xF9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			want := append(append([]byte{}, header...), tt.body...)
			if !bytes.Equal(got, want) {
				t.Errorf("Encode(%s) = % X, want % X", tt.value, got, want)
			}
		})
	}
}

// TestEncodeSharedNameReuse pins the one-byte short-name reference for
// a key seen earlier in the document, including across nesting.
func TestEncodeSharedNameReuse(t *testing.T) {
	value := Object(
		Field("k", Int(1)),
		Field("k2", Int(2)),
		Field("x", Object(Field("k", Int(3)))),
	)
	got, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{
		0x3A, 0x29, 0x0A, 0x03,
		0xFA,
		0x80, 'k', 0xC1,
		0x81, 'k', '2', 0xC2,
		0x80, 'x',
		0xFA,
		0x40, // shared name reference to index 0 ("k")
		0xC3,
		0xFB,
		0xFB,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % X, want % X", got, want)
	}
}

func TestEncodeStringClassification(t *testing.T) {
	// One case per rung of the length ladder, checked by leading
	// token byte. Shared values are disabled so every string is a
	// literal.
	tests := []struct {
		name      string
		s         string
		wantToken byte
	}{
		{"tiny ascii min", "a", 0x40},
		{"tiny ascii max", strings.Repeat("a", 32), 0x5F},
		{"small ascii min", strings.Repeat("a", 33), 0x60},
		{"small ascii max", strings.Repeat("a", 64), 0x7F},
		{"long ascii", strings.Repeat("a", 65), 0xE0},
		{"tiny unicode min", "é", 0x80},
		{"tiny unicode max", "é" + strings.Repeat("a", 31), 0x9F},
		{"short unicode min", "é" + strings.Repeat("a", 32), 0xA0},
		{"short unicode max", "é" + strings.Repeat("a", 62), 0xBE},
		{"long unicode", "é" + strings.Repeat("a", 64), 0xE4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeWithOptions(String(tt.s), Options{})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if data[4] != tt.wantToken {
				t.Errorf("token for %d-byte string = 0x%02X, want 0x%02X", len(tt.s), data[4], tt.wantToken)
			}

			decoded, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if decoded.Str() != tt.s {
				t.Errorf("round trip mismatch for %q", tt.s)
			}
		})
	}
}

func TestEncodeLongStringTerminated(t *testing.T) {
	s := strings.Repeat("x", 100)
	data, err := Encode(String(s))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 0xE0, VInt(100) = 0x64, 100 bytes, 0xFC.
	want := append([]byte{0x3A, 0x29, 0x0A, 0x03, 0xE0, 0x64}, s...)
	want = append(want, 0xFC)
	if !bytes.Equal(data, want) {
		t.Errorf("Encode = % X..., want % X...", data[:8], want[:8])
	}
}

// TestEncodeLongSharedValueReference drives the value table past the
// one-byte reference range so index 31 uses the 0xEC two-byte form.
func TestEncodeLongSharedValueReference(t *testing.T) {
	var items []Value
	for i := 0; i < 32; i++ {
		items = append(items, String(fmt.Sprintf("value-%02d", i)))
	}
	// Repeat the first and the last: index 0 is a one-byte
	// reference, index 31 takes the 0xEC form.
	items = append(items, items[0], items[31])

	data, err := Encode(Array(items...))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	wantTail := []byte{0x01, 0xEC, 0x00, 0xF9}
	if !bytes.HasSuffix(data, wantTail) {
		t.Errorf("Encode tail = % X, want suffix % X", data[len(data)-6:], wantTail)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(Array(items...)) {
		t.Errorf("round trip mismatch")
	}
}

// TestEncodeLongSharedNameReference drives the name table past the
// short reference range so index 64 uses the 0x30 three-byte form.
func TestEncodeLongSharedNameReference(t *testing.T) {
	var items []Value
	for i := 0; i < 65; i++ {
		items = append(items, Object(Field(fmt.Sprintf("name-%02d", i), Int(0))))
	}
	// Repeat the 65th key (index 64): needs the long reference.
	items = append(items, Object(Field("name-64", Int(1))))

	data, err := Encode(Array(items...))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(data, []byte{0x30, 0x00, 0x40}) {
		t.Errorf("encoded stream missing long shared name reference 30 00 40")
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(Array(items...)) {
		t.Errorf("round trip mismatch")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	value := Object(
		Field("name", String("widget")),
		Field("tags", Array(String("a"), String("b"), String("a"))),
		Field("count", Int(1234567)),
	)
	first, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(value)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("two encodes of the same value differ")
	}
}

// TestEncodeSharedSizeMonotonic checks that enabling a shared table
// never grows the output.
func TestEncodeSharedSizeMonotonic(t *testing.T) {
	values := []Value{
		Null(),
		Int(42),
		String("solo"),
		Array(String("dup"), String("dup"), String("dup")),
		Object(
			Field("key", String("v")),
			Field("nest", Object(Field("key", String("v")))),
		),
	}

	for _, value := range values {
		all, err := EncodeWithOptions(value, Options{SharedNames: true, SharedValues: true})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		noNames, err := EncodeWithOptions(value, Options{SharedValues: true})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		noValues, err := EncodeWithOptions(value, Options{SharedNames: true})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if len(all) > len(noNames) || len(all) > len(noValues) {
			t.Errorf("shared encoding larger than unshared for %s: %d vs %d/%d",
				value, len(all), len(noNames), len(noValues))
		}
	}
}

func TestEncodeUnsupportedKind(t *testing.T) {
	bad := Value{kind: Kind(99)}
	if _, err := Encode(bad); err == nil {
		t.Fatal("Encode of invalid kind succeeded")
	}
	if _, err := Encode(Array(bad)); err == nil {
		t.Fatal("Encode of array holding invalid kind succeeded")
	}
}

func TestMustEncode(t *testing.T) {
	data := MustEncode(Int(5))
	if !bytes.Equal(data, []byte{0x3A, 0x29, 0x0A, 0x03, 0xC5}) {
		t.Errorf("MustEncode = % X", data)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustEncode of invalid kind did not panic")
		}
	}()
	MustEncode(Value{kind: Kind(99)})
}
