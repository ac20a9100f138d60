// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"math"
	"sort"

	"github.com/bureau-foundation/smile/lib/smile"
)

// Marshal encodes a plain Go value to Smile bytes using the default
// options (both shared tables enabled). Map keys are sorted, so the
// same logical data always produces identical bytes.
func Marshal(v any) ([]byte, error) {
	return MarshalWithOptions(v, smile.DefaultOptions())
}

// MarshalWithOptions encodes a plain Go value under explicit header
// options.
func MarshalWithOptions(v any, opts smile.Options) ([]byte, error) {
	value, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	return smile.EncodeWithOptions(value, opts)
}

// Unmarshal decodes Smile bytes into plain Go values: nil, bool,
// int64, float64, string, []any, and map[string]any.
func Unmarshal(data []byte) (any, error) {
	value, err := smile.Decode(data)
	if err != nil {
		return nil, err
	}
	return ToAny(value), nil
}

// MustMarshal is Marshal panicking on error.
func MustMarshal(v any) []byte {
	data, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// MustUnmarshal is Unmarshal panicking on error.
func MustUnmarshal(data []byte) any {
	v, err := Unmarshal(data)
	if err != nil {
		panic(err)
	}
	return v
}

// FromAny converts a plain Go value to a smile.Value. Maps become
// objects with sorted keys; a smile.Value passes through unchanged
// (including its member order).
func FromAny(v any) (smile.Value, error) {
	switch value := v.(type) {
	case nil:
		return smile.Null(), nil
	case smile.Value:
		return value, nil
	case bool:
		return smile.Bool(value), nil
	case int:
		return smile.Int(int64(value)), nil
	case int8:
		return smile.Int(int64(value)), nil
	case int16:
		return smile.Int(int64(value)), nil
	case int32:
		return smile.Int(int64(value)), nil
	case int64:
		return smile.Int(value), nil
	case uint:
		return fromUint(uint64(value))
	case uint8:
		return smile.Int(int64(value)), nil
	case uint16:
		return smile.Int(int64(value)), nil
	case uint32:
		return smile.Int(int64(value)), nil
	case uint64:
		return fromUint(value)
	case float32:
		return smile.Float(float64(value)), nil
	case float64:
		return smile.Float(value), nil
	case string:
		return smile.String(value), nil
	case []any:
		items := make([]smile.Value, len(value))
		for i, element := range value {
			converted, err := FromAny(element)
			if err != nil {
				return smile.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = converted
		}
		return smile.Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		members := make([]smile.Member, 0, len(value))
		for _, key := range keys {
			converted, err := FromAny(value[key])
			if err != nil {
				return smile.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			members = append(members, smile.Field(key, converted))
		}
		return smile.Object(members...), nil
	default:
		return smile.Value{}, fmt.Errorf("go type %T: %w", v, smile.ErrUnsupportedType)
	}
}

func fromUint(value uint64) (smile.Value, error) {
	if value > math.MaxInt64 {
		return smile.Value{}, fmt.Errorf("unsigned value %d: %w", value, smile.ErrIntegerOutOfRange)
	}
	return smile.Int(int64(value)), nil
}

// ToAny converts a smile.Value to plain Go types. Object member order
// is lost (Go maps are unordered); integers come back as int64 and
// floats as float64.
func ToAny(value smile.Value) any {
	switch value.Kind() {
	case smile.KindNull:
		return nil
	case smile.KindBool:
		return value.Bool()
	case smile.KindInt:
		return value.Int()
	case smile.KindFloat:
		return value.Float()
	case smile.KindString:
		return value.Str()
	case smile.KindArray:
		items := value.Items()
		result := make([]any, len(items))
		for i, item := range items {
			result[i] = ToAny(item)
		}
		return result
	case smile.KindObject:
		members := value.Members()
		result := make(map[string]any, len(members))
		for _, member := range members {
			result[member.Key] = ToAny(member.Value)
		}
		return result
	default:
		// Decode never produces an invalid kind; a zero Value is null.
		return nil
	}
}
