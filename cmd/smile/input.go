// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// readInput resolves the bytes a subcommand operates on. Following jq
// convention, the last positional argument names the input file when
// it exists on disk; otherwise input comes from stdin. Smile data is
// binary, so there is no mode where a positional argument could be
// the data itself.
//
// With hexMode, the input is a hex dump rather than raw bytes: all
// whitespace is stripped and the remaining digits decoded, so both
// "3a 29 0a 03 c5" and "3a290a03c5" work, as does xxd -p output with
// its newlines.
//
// Returns the resolved bytes and args minus any consumed file path.
// Leftover args are the caller's problem: the root command feeds them
// to jq, the subcommands reject them.
func readInput(args []string, hexMode bool) ([]byte, []string, error) {
	data, remainingArgs, err := readFileArg(args)
	if err != nil {
		return nil, nil, err
	}

	if data == nil {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	if hexMode {
		data, err = decodeHexInput(data)
		if err != nil {
			return nil, nil, err
		}
	}

	return data, remainingArgs, nil
}

// readFileArg reads the file named by the last argument, if that
// argument names an existing path that is not a directory. Returns nil
// data (and args untouched) when it does not, leaving stdin as the
// input source.
func readFileArg(args []string) ([]byte, []string, error) {
	if len(args) == 0 {
		return nil, args, nil
	}

	candidate := args[len(args)-1]
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return nil, args, nil
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", candidate, err)
	}
	return data, args[:len(args)-1], nil
}

// decodeHexInput converts whitespace-tolerant hex text to binary.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
