// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
	"github.com/bureau-foundation/smile/lib/codec"
	"github.com/bureau-foundation/smile/lib/smile"
)

func decodeCommand() *cli.Command {
	var (
		compact  bool
		slurp    bool
		hexInput bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert Smile to JSON",
		Description: `Read Smile data from stdin (or a file argument) and write the
equivalent JSON to stdout.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output. Object member order from the Smile
stream is preserved in the JSON output.

With -s, reads a sequence of back-to-back Smile documents and outputs
them as a JSON array. Without -s, input holding more than one document
is an error.

zstd-compressed input is detected by its frame magic and decompressed
first. A raw-binary header flag is reported as a warning; no raw
binary tokens exist in this profile of the format.`,
		Usage: "smile decode [-c] [-s] [-x] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&slurp, "slurp", "s", false, "read a Smile sequence as a JSON array")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Decode a Smile file to pretty JSON",
				Command:     "smile decode < message.smile",
			},
			{
				Description: "Decode a sequence of documents to a JSON array",
				Command:     "smile decode -s < sequence.smile",
			},
			{
				Description: "Decode hex from a wire capture",
				Command:     "echo '3a 29 0a 03 c5' | smile decode --hex",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeSmile(data, os.Stdout, compact, slurp)
		},
	}
}

// decodeSmile reads Smile data and writes JSON to w.
func decodeSmile(data []byte, w io.Writer, compact bool, slurp bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected Smile data on stdin")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	warnRawBinary(data)

	var value smile.Value
	if slurp {
		items, err := decodeSequence(data)
		if err != nil {
			return err
		}
		value = smile.Array(items...)
	} else {
		value, err = smile.Decode(data)
		if errors.Is(err, smile.ErrTrailingData) {
			return fmt.Errorf("%w (use -s for a sequence of documents)", err)
		}
		if err != nil {
			return fmt.Errorf("decode Smile: %w", err)
		}
	}

	output, err := codec.ValueToJSON(value, !compact)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// decodeSequence parses back-to-back Smile documents.
func decodeSequence(data []byte) ([]smile.Value, error) {
	var items []smile.Value
	rest := data
	for len(rest) > 0 {
		value, remaining, err := smile.DecodeFirst(rest)
		if err != nil {
			return nil, fmt.Errorf("decode sequence item %d: %w", len(items), err)
		}
		items = append(items, value)
		rest = remaining
	}
	return items, nil
}

// warnRawBinary logs when the header carries the raw-binary bit. The
// flag round-trips but no raw binary token is ever decoded, so data
// encoded by an implementation that uses them will fail later with an
// unknown token error.
func warnRawBinary(data []byte) {
	opts, err := smile.Header(data)
	if err == nil && opts.RawBinary {
		cli.NewLogger().Warn("header has the raw-binary flag set; raw binary tokens are not supported")
	}
}
