// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package smile

import (
	"errors"
	"strings"
	"testing"
)

func TestDumpListing(t *testing.T) {
	data := MustEncode(Object(
		Field("a", Int(1)),
		Field("tags", Array(String("abc"), String("abc"))),
		Field("x", Object(Field("a", Float(1.5)))),
	))

	listing, err := Dump(data)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	wantLines := []string{
		"header: version 0, shared-names shared-values",
		"start object",
		`name "a" -> names[0]`,
		"int 1",
		`name "tags" -> names[1]`,
		"start array",
		`string "abc" -> values[0]`,
		`string ref [0] -> "abc"`,
		"end array",
		`name "x" -> names[2]`,
		"start object",
		`name ref [0] -> "a"`,
		"float64 1.5",
		"end object",
		"end object",
	}
	for _, want := range wantLines {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q\n%s", want, listing)
		}
	}
}

func TestDumpOffsets(t *testing.T) {
	listing, err := Dump(MustEncode(Null()))
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	if len(lines) != 2 {
		t.Fatalf("listing has %d lines, want 2:\n%s", len(lines), listing)
	}
	if !strings.HasPrefix(lines[0], "000000") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "000004") {
		t.Errorf("token line = %q", lines[1])
	}
}

func TestDumpSequence(t *testing.T) {
	stream := append(MustEncode(Int(1)), MustEncode(Int(2))...)
	listing, err := Dump(stream)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if got := strings.Count(listing, "header:"); got != 2 {
		t.Errorf("listing has %d header lines, want 2:\n%s", got, listing)
	}
}

// TestDumpTruncated checks the partial listing survives alongside the
// error.
func TestDumpTruncated(t *testing.T) {
	data := MustEncode(Array(Int(1), Int(2)))
	listing, err := Dump(data[:len(data)-1])
	if !errors.Is(err, ErrUnexpectedEndOfInput) {
		t.Fatalf("Dump error = %v, want ErrUnexpectedEndOfInput", err)
	}
	if !strings.Contains(listing, "start array") || !strings.Contains(listing, "int 2") {
		t.Errorf("partial listing missing decoded prefix:\n%s", listing)
	}
}

func TestDumpLongPayloadElided(t *testing.T) {
	listing, err := Dump(MustEncode(String(strings.Repeat("a", 30))))
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(listing, "..") {
		t.Errorf("long token not elided:\n%s", listing)
	}
}
