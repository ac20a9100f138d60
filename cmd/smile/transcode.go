// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	gocbor "github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/smile/cmd/smile/cli"
	"github.com/bureau-foundation/smile/lib/codec"
)

// cborEncMode uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items. The Smile side is already deterministic, so a transcode in
// either direction is reproducible byte for byte.
var cborEncMode gocbor.EncMode

// cborDecMode accepts standard CBOR with the default (any-keyed) map
// type so integer-keyed maps decode; normalizeCBORValue converts the
// result to the JSON data model.
var cborDecMode gocbor.DecMode

func init() {
	var err error
	cborEncMode, err = gocbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("smile: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = gocbor.DecOptions{}.DecMode()
	if err != nil {
		panic("smile: CBOR decoder initialization failed: " + err.Error())
	}
}

func fromCBORCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "from-cbor",
		Summary: "Transcode CBOR to Smile",
		Description: `Read CBOR from stdin (or a file argument) and write the equivalent
Smile to stdout.

CBOR carries more than the JSON data model, so lossy conversions are
applied where needed: integer map keys become decimal string keys,
byte strings become base64 strings, and tags are dropped in favor of
their content. Map keys are sorted, so the output is deterministic.`,
		Usage: "smile from-cbor [-x] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("from-cbor", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Convert a CBOR file to Smile",
				Command:     "smile from-cbor message.cbor > message.smile",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("from-cbor takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return transcodeFromCBOR(data, os.Stdout)
		},
	}
}

func toCBORCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "to-cbor",
		Summary: "Transcode Smile to CBOR",
		Description: `Read Smile from stdin (or a file argument) and write the equivalent
CBOR to stdout, using Core Deterministic Encoding (RFC 8949 §4.2).

CBOR maps are unordered under deterministic encoding, so Smile object
member order is not preserved: keys come out sorted.`,
		Usage: "smile to-cbor [-x] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("to-cbor", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Convert a Smile file to CBOR",
				Command:     "smile to-cbor message.smile > message.cbor",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("to-cbor takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return transcodeToCBOR(data, os.Stdout)
		},
	}
}

// transcodeFromCBOR converts one CBOR item to one Smile document.
func transcodeFromCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	var value any
	if err := cborDecMode.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	encoded, err := codec.Marshal(normalizeCBORValue(value))
	if err != nil {
		return fmt.Errorf("encode Smile: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}

// transcodeToCBOR converts one Smile document to one CBOR item.
func transcodeToCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected Smile data")
	}

	data, err := maybeDecompress(data)
	if err != nil {
		return err
	}

	value, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("decode Smile: %w", err)
	}

	encoded, err := cborEncMode.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode CBOR: %w", err)
	}

	_, err = w.Write(encoded)
	return err
}

// normalizeCBORValue recursively converts CBOR-decoded values to the
// JSON data model: any-keyed maps become string-keyed maps, byte
// strings become base64 strings, and tagged values collapse to their
// content.
func normalizeCBORValue(v any) any {
	switch value := v.(type) {
	case map[any]any:
		result := make(map[string]any, len(value))
		for key, element := range value {
			result[fmt.Sprint(key)] = normalizeCBORValue(element)
		}
		return result

	case map[string]any:
		for key, element := range value {
			value[key] = normalizeCBORValue(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = normalizeCBORValue(element)
		}
		return value

	case []byte:
		return base64.StdEncoding.EncodeToString(value)

	case gocbor.Tag:
		return normalizeCBORValue(value.Content)

	default:
		return v
	}
}
