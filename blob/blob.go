// Decodes the base64 binary arrays embedded in session files
// into typed numeric sequences.
// Every array is a flat run of 4-byte elements; a trailing
// partial element is dropped.
package blob

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// ElementSize is the width in bytes of every encoded element.
const ElementSize = 4

// DefaultByteOrder is the byte order of the arrays written by
// the drawing application. All the devices producing session files
// are little-endian, so the order is pinned instead of following the host.
var DefaultByteOrder binary.ByteOrder = binary.LittleEndian

// Element lists the supported element types.
type Element interface {
	float32 | int32 | uint32
}

// Decode base64-decodes `payload` and reads it as a sequence of T,
// using `order` for each element (DefaultByteOrder if nil).
func Decode[T Element](payload string, order binary.ByteOrder) ([]T, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if order == nil {
		order = DefaultByteOrder
	}
	out := make([]T, len(raw)/ElementSize)
	for i := range out {
		bits := order.Uint32(raw[i*ElementSize:])
		var v T
		switch p := any(&v).(type) {
		case *float32:
			*p = math.Float32frombits(bits)
		case *int32:
			*p = int32(bits)
		case *uint32:
			*p = bits
		}
		out[i] = v
	}
	return out, nil
}

// Float32s decodes a payload of 32-bit floats.
func Float32s(payload string, order binary.ByteOrder) ([]float32, error) {
	return Decode[float32](payload, order)
}

// Int32s decodes a payload of 32-bit signed integers.
func Int32s(payload string, order binary.ByteOrder) ([]int32, error) {
	return Decode[int32](payload, order)
}

// Uint32s decodes a payload of 32-bit unsigned integers.
func Uint32s(payload string, order binary.ByteOrder) ([]uint32, error) {
	return Decode[uint32](payload, order)
}

// ParseByteOrder maps a configuration value to a byte order.
// The empty string selects DefaultByteOrder.
func ParseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultByteOrder, nil
	case "little", "le", "little-endian":
		return binary.LittleEndian, nil
	case "big", "be", "big-endian":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unsupported byte order %q (expected little or big)", s)
	}
}
