// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
	"github.com/bureau-foundation/smile/lib/smile"
)

func diagCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "diag",
		Summary: "Token-level listing of a Smile stream",
		Description: `Read Smile data and write an annotated token listing to stdout: one
line per token with its byte offset, raw bytes, and meaning.

The listing shows shared back-reference table activity — which strings
and field names enter the tables, at which index, and what each
reference token resolves to. This is the tool for diagnosing
wire-level interoperability problems.

On malformed input, the listing up to the failure point is printed
before the error, so the offset of the first bad byte is visible.`,
		Usage: "smile diag [-x] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Show the token structure of a Smile file",
				Command:     "smile diag message.smile",
			},
			{
				Description: "Encode JSON and inspect the Smile structure",
				Command:     "echo '{\"count\":42}' | smile encode | smile diag",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagSmile(data, os.Stdout)
		},
	}
}

// diagSmile writes the token listing for data to w. A partial listing
// is written even when the stream is malformed.
func diagSmile(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected Smile data on stdin")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	listing, err := smile.Dump(data)
	if listing != "" {
		if _, writeErr := io.WriteString(w, listing); writeErr != nil {
			return writeErr
		}
	}
	return err
}
