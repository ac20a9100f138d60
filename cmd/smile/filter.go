// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/bureau-foundation/smile/lib/codec"
	"github.com/bureau-foundation/smile/lib/smile"
)

// filterSmile decodes Smile data, converts it to JSON, and pipes it
// through jq with the given filter expression and extra arguments.
// The jqArgs slice holds any jq flags forwarded by the caller followed
// by the filter expression. Output from jq goes directly to
// stdout/stderr.
//
// With slurp, a sequence of documents is decoded to a JSON array
// before jq sees it, matching "smile decode -s".
func filterSmile(data []byte, slurp bool, jqArgs []string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected Smile data")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	var value smile.Value
	if slurp {
		items, err := decodeSequence(data)
		if err != nil {
			return err
		}
		value = smile.Array(items...)
	} else {
		value, err = smile.Decode(data)
		if err != nil {
			return fmt.Errorf("decode Smile: %w", err)
		}
	}

	jsonData, err := codec.ValueToJSON(value, false)
	if err != nil {
		return fmt.Errorf("encode JSON for jq: %w", err)
	}

	return runJQ(jsonData, jqArgs)
}

// runJQ executes jq with the given arguments, feeding jsonData to its
// stdin. jq's stdout and stderr are connected directly to the process
// stdout and stderr.
func runJQ(jsonData []byte, jqArgs []string) error {
	jqPath, err := exec.LookPath("jq")
	if err != nil {
		return fmt.Errorf("jq not found in PATH; install jq or use \"smile decode\" for raw JSON output")
	}

	cmd := exec.Command(jqPath, jqArgs...)
	cmd.Stdin = bytes.NewReader(jsonData)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			// Propagate jq's exit code so piped commands behave
			// correctly (e.g., jq -e returns 1 for false/null).
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("run jq: %w", err)
	}
	return nil
}
