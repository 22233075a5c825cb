// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marshal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
)

// ErrUnsupportedArg is returned for values that cannot cross the host boundary.
var ErrUnsupportedArg = errors.New("marshal: unsupported argument type")

// Normalize converts v to its canonical boundary-safe form:
// every number becomes a float64, numeric slices become []float64,
// and byte slices are copied. Allowed values are nil, bool, integers,
// floats, strings, numeric slices, []byte and [Reference].
func Normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string, float64, Reference:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case []float64:
		return slices.Clone(v), nil
	case []float32:
		r := make([]float64, len(v))
		for i, f := range v {
			r[i] = float64(f)
		}
		return r, nil
	case []int:
		r := make([]float64, len(v))
		for i, f := range v {
			r[i] = float64(f)
		}
		return r, nil
	case []byte:
		return slices.Clone(v), nil
	case *Reference:
		if v == nil {
			return nil, nil
		}
		return *v, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedArg, v)
}

// NormalizeAll normalizes each of args, returning a new slice.
func NormalizeAll(args []any) ([]any, error) {
	r := make([]any, len(args))
	for i, a := range args {
		n, err := Normalize(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		r[i] = n
	}
	return r, nil
}

// Hash folds normalized args into a single order-sensitive 64-bit value.
// Every arity goes through the same accumulator. Equal argument tuples
// always hash equally; distinct tuples may collide, so the hash is only
// suitable as a shard key.
func Hash(args ...any) uint64 {
	h := fnv.New64a()
	var buf [9]byte
	for _, a := range args {
		switch a := a.(type) {
		case nil:
			h.Write([]byte{0})
		case bool:
			buf[0] = 1
			buf[1] = 0
			if a {
				buf[1] = 1
			}
			h.Write(buf[:2])
		case float64:
			buf[0] = 2
			binary.LittleEndian.PutUint64(buf[1:], floatBits(a))
			h.Write(buf[:])
		case string:
			buf[0] = 3
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(a)))
			h.Write(buf[:])
			h.Write([]byte(a))
		case []float64:
			buf[0] = 4
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(a)))
			h.Write(buf[:])
			for _, f := range a {
				binary.LittleEndian.PutUint64(buf[1:], floatBits(f))
				h.Write(buf[1:])
			}
		case []byte:
			buf[0] = 5
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(a)))
			h.Write(buf[:])
			h.Write(a)
		case Reference:
			buf[0] = 6
			if a.IsElementRef {
				buf[0] = 7
			}
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(a.ID)))
			h.Write(buf[:])
			h.Write([]byte(a.ID))
		default:
			h.Write([]byte{0xff})
			fmt.Fprintf(h, "%T:%v", a, a)
		}
	}
	return h.Sum64()
}

// floatBits returns the bits of f with every NaN mapped to one value,
// so that floats compare and hash by identity.
func floatBits(f float64) uint64 {
	if math.IsNaN(f) {
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(f)
}

func floatEqual(a, b float64) bool { return floatBits(a) == floatBits(b) }

// argsEqual compares two normalized argument tuples structurally.
// Floats are equal when their bits are, so NaN equals NaN.
func argsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch av := a[i].(type) {
		case float64:
			bv, ok := b[i].(float64)
			if !ok || !floatEqual(av, bv) {
				return false
			}
		case []float64:
			bv, ok := b[i].([]float64)
			if !ok || !slices.EqualFunc(av, bv, floatEqual) {
				return false
			}
		case []byte:
			bv, ok := b[i].([]byte)
			if !ok || !slices.Equal(av, bv) {
				return false
			}
		default:
			switch b[i].(type) {
			case []float64, []byte:
				return false
			}
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
