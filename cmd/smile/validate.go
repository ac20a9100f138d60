// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
	"github.com/bureau-foundation/smile/lib/smile"
)

func validateCommand() *cli.Command {
	var (
		slurp    bool
		hexInput bool
	)

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether a stream matches this encoder's output",
		Description: `Read Smile data and verify it is byte-identical to what this encoder
produces for the same value under the same header flags. Exits 0 with
"valid" on a match, exits 1 with a diagnostic message otherwise.

Validation decodes the input and re-encodes it under the flag bits
from the input's own header, then compares the bytes. This catches
non-minimal integer tokens, string-class mismatches, and missed
back-reference opportunities — any deviation from the deterministic
encoding.

With -s, validates each document of a sequence independently.`,
		Usage: "smile validate [-s] [-x] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagSet.BoolVarP(&slurp, "slurp", "s", false, "validate each document of a sequence independently")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Validate Smile from a pipeline",
				Command:     "echo '{\"count\":42}' | smile encode | smile validate",
			},
			{
				Description: "Validate a Smile file",
				Command:     "smile validate message.smile",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("validate takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return validateSmile(data, os.Stdout, slurp)
		},
	}
}

// validateSmile checks data against the deterministic re-encoding and
// reports "valid" or a first-difference diagnostic. A mismatch is a
// result, not a malfunction: it prints to stdout and exits 1 via
// cli.ExitError.
func validateSmile(data []byte, w io.Writer, slurp bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected Smile data")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	var reencoded []byte
	if slurp {
		reencoded, err = reencodeSequence(data)
	} else {
		reencoded, err = reencodeSingle(data)
	}
	if err != nil {
		return err
	}

	if bytes.Equal(data, reencoded) {
		fmt.Fprintln(w, "valid")
		return nil
	}

	fmt.Fprintln(w, describeMismatch(data, reencoded))
	return &cli.ExitError{Code: 1}
}

func reencodeSingle(data []byte) ([]byte, error) {
	opts, err := smile.Header(data)
	if err != nil {
		return nil, fmt.Errorf("decode Smile: %w", err)
	}
	value, err := smile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode Smile: %w", err)
	}
	reencoded, err := smile.EncodeWithOptions(value, opts)
	if err != nil {
		return nil, fmt.Errorf("re-encode Smile: %w", err)
	}
	return reencoded, nil
}

func reencodeSequence(data []byte) ([]byte, error) {
	var reencoded []byte
	rest := data
	for count := 0; len(rest) > 0; count++ {
		opts, err := smile.Header(rest)
		if err != nil {
			return nil, fmt.Errorf("decode sequence item %d: %w", count, err)
		}
		value, remaining, err := smile.DecodeFirst(rest)
		if err != nil {
			return nil, fmt.Errorf("decode sequence item %d: %w", count, err)
		}
		item, err := smile.EncodeWithOptions(value, opts)
		if err != nil {
			return nil, fmt.Errorf("re-encode sequence item %d: %w", count, err)
		}
		reencoded = append(reencoded, item...)
		rest = remaining
	}
	return reencoded, nil
}

// describeMismatch reports the first byte where the input diverges
// from the deterministic re-encoding.
func describeMismatch(original, reencoded []byte) string {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength {
		if original[offset] != reencoded[offset] {
			break
		}
		offset++
	}
	return fmt.Sprintf("not canonical: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		offset, len(original), len(reencoded))
}
