// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bureau-foundation/smile/lib/smile"
)

// ValueFromJSON parses a single JSON value into a smile.Value. Object
// member order is preserved (encoding/json's map decoding would lose
// it, so this walks the token stream instead). Numbers written as
// integer literals that fit in int64 stay integers; every other number
// (fraction, exponent, or out of int64 range) becomes a float.
func ValueFromJSON(data []byte) (smile.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := readJSONValue(decoder)
	if err != nil {
		return smile.Value{}, fmt.Errorf("parse JSON: %w", err)
	}
	if decoder.More() {
		return smile.Value{}, fmt.Errorf("trailing data after JSON value")
	}
	return value, nil
}

func readJSONValue(decoder *json.Decoder) (smile.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return smile.Value{}, err
	}
	return jsonValueFromToken(decoder, token)
}

func jsonValueFromToken(decoder *json.Decoder, token json.Token) (smile.Value, error) {
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []smile.Member
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return smile.Value{}, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return smile.Value{}, fmt.Errorf("object key is %T, want string", keyToken)
				}
				value, err := readJSONValue(decoder)
				if err != nil {
					return smile.Value{}, err
				}
				members = append(members, smile.Field(key, value))
			}
			// Consume the closing brace.
			if _, err := decoder.Token(); err != nil {
				return smile.Value{}, err
			}
			return smile.Object(members...), nil

		case '[':
			var items []smile.Value
			for decoder.More() {
				value, err := readJSONValue(decoder)
				if err != nil {
					return smile.Value{}, err
				}
				items = append(items, value)
			}
			if _, err := decoder.Token(); err != nil {
				return smile.Value{}, err
			}
			return smile.Array(items...), nil

		default:
			return smile.Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}

	case nil:
		return smile.Null(), nil
	case bool:
		return smile.Bool(t), nil
	case string:
		return smile.String(t), nil
	case json.Number:
		if integer, err := t.Int64(); err == nil {
			return smile.Int(integer), nil
		}
		float, err := t.Float64()
		if err != nil {
			return smile.Value{}, fmt.Errorf("number %q is neither int64 nor float64", t.String())
		}
		return smile.Float(float), nil

	default:
		return smile.Value{}, fmt.Errorf("unexpected JSON token %T", token)
	}
}

// ValueToJSON renders a smile.Value as JSON, preserving object member
// order. With indent, output is pretty-printed with 2-space
// indentation.
func ValueToJSON(value smile.Value, indent bool) ([]byte, error) {
	compact, err := appendJSON(nil, value)
	if err != nil {
		return nil, err
	}
	if !indent {
		return compact, nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indent JSON: %w", err)
	}
	return pretty.Bytes(), nil
}

func appendJSON(dst []byte, value smile.Value) ([]byte, error) {
	switch value.Kind() {
	case smile.KindNull:
		return append(dst, "null"...), nil
	case smile.KindBool:
		return strconv.AppendBool(dst, value.Bool()), nil
	case smile.KindInt:
		return strconv.AppendInt(dst, value.Int(), 10), nil
	case smile.KindFloat:
		// json.Marshal applies JSON's number formatting rules and
		// rejects NaN and the infinities, which JSON cannot carry.
		encoded, err := json.Marshal(value.Float())
		if err != nil {
			return nil, fmt.Errorf("encode float: %w", err)
		}
		return append(dst, encoded...), nil
	case smile.KindString:
		encoded, err := json.Marshal(value.Str())
		if err != nil {
			return nil, fmt.Errorf("encode string: %w", err)
		}
		return append(dst, encoded...), nil
	case smile.KindArray:
		dst = append(dst, '[')
		for i, item := range value.Items() {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendJSON(dst, item)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case smile.KindObject:
		dst = append(dst, '{')
		for i, member := range value.Members() {
			if i > 0 {
				dst = append(dst, ',')
			}
			key, err := json.Marshal(member.Key)
			if err != nil {
				return nil, fmt.Errorf("encode key: %w", err)
			}
			dst = append(dst, key...)
			dst = append(dst, ':')
			dst, err = appendJSON(dst, member.Value)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, fmt.Errorf("value kind %v: %w", value.Kind(), smile.ErrUnsupportedType)
	}
}
