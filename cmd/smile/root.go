// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
)

// rootCommand builds the "smile" command tree. The root has both
// subcommands and a Run fallback: with no arguments, input is decoded
// to JSON; when the first positional argument is not a subcommand
// name, it is treated as a jq filter expression.
func rootCommand() *cli.Command {
	var (
		compact   bool
		rawOutput bool
		slurp     bool
		hexInput  bool
	)

	return &cli.Command{
		Name:    "smile",
		Summary: "Inspect, produce, and filter Smile data",
		Description: `Tools for working with the Smile binary interchange format from the
command line.

Smile is a compact binary serialization of the JSON data model with
shared back-reference tables for repeated field names and short string
values. This command converts between Smile and JSON, dumps streams
token by token, and validates deterministic encoding.

With no arguments, decodes Smile on stdin to pretty-printed JSON on
stdout (equivalent to "smile decode").

When the first argument is not a subcommand name (encode, decode,
diag, validate, from-cbor, to-cbor), it is treated as a jq filter
expression. The Smile input is decoded to JSON internally and piped
through jq. Common jq flags (-c, -r) are supported and passed through.

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin. This matches
jq convention: "smile '.field' request.smile". With --hex, input is
treated as hex-encoded bytes rather than raw binary; whitespace in the
hex input is ignored. zstd-compressed input is detected by its frame
magic and decompressed before decoding.`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			diagCommand(),
			validateCommand(),
			fromCBORCommand(),
			toCBORCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("smile", pflag.ContinueOnError)
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&rawOutput, "raw-output", "r", false, "raw string output (passed to jq)")
			flagSet.BoolVarP(&slurp, "slurp", "s", false, "read a Smile sequence as a JSON array")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}

			if len(remainingArgs) == 0 {
				// No arguments: default to decode.
				return decodeSmile(data, os.Stdout, compact, slurp)
			}

			// Remaining positional args are a jq filter expression.
			var jqArgs []string
			if compact {
				jqArgs = append(jqArgs, "-c")
			}
			if rawOutput {
				jqArgs = append(jqArgs, "-r")
			}
			jqArgs = append(jqArgs, remainingArgs...)

			return filterSmile(data, slurp, jqArgs)
		},
		Examples: []cli.Example{
			{
				Description: "Decode Smile to pretty JSON",
				Command:     "smile < message.smile",
			},
			{
				Description: "Decode a Smile file to JSON",
				Command:     "smile decode message.smile",
			},
			{
				Description: "Extract a field with jq",
				Command:     "smile '.action' request.smile",
			},
			{
				Description: "Raw string output from a jq filter",
				Command:     "smile -r '.name' message.smile",
			},
			{
				Description: "Decode hex-encoded Smile",
				Command:     "echo '3a 29 0a 03 c5' | smile --hex",
			},
			{
				Description: "Encode JSON to Smile",
				Command:     "echo '{\"count\":42}' | smile encode",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\":42}' | smile encode | smile decode",
			},
			{
				Description: "Inspect the token structure of a stream",
				Command:     "smile diag message.smile",
			},
			{
				Description: "Validate deterministic encoding",
				Command:     "smile validate message.smile",
			},
		},
	}
}
