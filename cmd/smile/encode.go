// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
	"github.com/bureau-foundation/smile/lib/codec"
	"github.com/bureau-foundation/smile/lib/smile"
)

func encodeCommand() *cli.Command {
	var (
		noSharedNames  bool
		noSharedValues bool
		rawBinary      bool
		compress       bool
	)

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to Smile",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
Smile to stdout.

Input may be JSONC: // line comments, /* block comments */, and
trailing commas are stripped before parsing. Object member order and
the integer/float distinction are preserved.

Both shared back-reference tables are enabled by default, matching the
library defaults; the --no-shared-* flags clear the corresponding
header bits. With -z, the output is wrapped in a zstd frame, which
decode and the other subcommands unwrap transparently.

The output is binary. Pipe to "smile diag" or "xxd" to inspect.`,
		Usage: "smile encode [-z] [--no-shared-names] [--no-shared-values] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flagSet.BoolVar(&noSharedNames, "no-shared-names", false, "disable the shared field name table")
			flagSet.BoolVar(&noSharedValues, "no-shared-values", false, "disable the shared string value table")
			flagSet.BoolVar(&rawBinary, "raw-binary", false, "set the raw binary header bit")
			flagSet.BoolVarP(&compress, "zstd", "z", false, "compress output with zstd")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Encode JSON to Smile",
				Command:     "echo '{\"action\":\"status\"}' | smile encode > request.smile",
			},
			{
				Description: "Encode a JSON file without shared values",
				Command:     "smile encode --no-shared-values input.json > output.smile",
			},
			{
				Description: "Encode and compress",
				Command:     "smile encode -z large.json > large.smile.zst",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			opts := smile.Options{
				SharedNames:  !noSharedNames,
				SharedValues: !noSharedValues,
				RawBinary:    rawBinary,
			}
			return encodeSmile(data, os.Stdout, opts, compress)
		},
	}
}

// encodeSmile parses JSON(C) data, encodes it as Smile under opts,
// and writes the result to w.
func encodeSmile(data []byte, w io.Writer, opts smile.Options, compress bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected JSON data")
	}

	value, err := codec.ValueFromJSON(jsonc.ToJSON(data))
	if err != nil {
		return err
	}

	encoded, err := smile.EncodeWithOptions(value, opts)
	if err != nil {
		return fmt.Errorf("encode Smile: %w", err)
	}

	if compress {
		encoded = compressOutput(encoded)
	}

	_, err = w.Write(encoded)
	return err
}
