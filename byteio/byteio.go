// Package byteio provides endian-aware primitive decoders over a borrowed
// byte slice. It is the lowest layer of the TIFF/BigTIFF parser: every
// multi-byte value anywhere in a TIFF file passes through one of these
// decoders before it becomes a Go value.
//
// Decoders never panic. A slice shorter than the declared length yields
// ErrInsufficientBuffer instead.
package byteio

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
)

// ErrInsufficientBuffer is returned whenever a decoder is asked to read
// more bytes than the supplied slice holds.
var ErrInsufficientBuffer = errors.New("byteio: insufficient buffer")

// Order selects little-endian (Intel) or big-endian (Moto) byte order.
// It is a plain value type, never a dynamic-dispatch interface, so that
// size/offset math stays a pure function of (Order, count).
type Order int

const (
	// Intel is little-endian byte order ("II" TIFF header).
	Intel Order = iota
	// Moto is big-endian byte order ("MM" TIFF header).
	Moto
)

// byteOrder returns the equivalent encoding/binary.ByteOrder.
func (o Order) byteOrder() binary.ByteOrder {
	if o == Intel {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// String returns "Intel" or "Moto".
func (o Order) String() string {
	if o == Intel {
		return "Intel"
	}
	return "Moto"
}

// Uint8 decodes a single byte.
func (o Order) Uint8(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, ErrInsufficientBuffer
	}
	return b[0], nil
}

// Uint16 decodes a 16-bit unsigned integer.
func (o Order) Uint16(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrInsufficientBuffer
	}
	return o.byteOrder().Uint16(b), nil
}

// Uint32 decodes a 32-bit unsigned integer.
func (o Order) Uint32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrInsufficientBuffer
	}
	return o.byteOrder().Uint32(b), nil
}

// Uint64 decodes a 64-bit unsigned integer.
func (o Order) Uint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrInsufficientBuffer
	}
	return o.byteOrder().Uint64(b), nil
}

// Int8 decodes a signed byte.
func (o Order) Int8(b []byte) (int8, error) {
	v, err := o.Uint8(b)
	return int8(v), err
}

// Int16 decodes a signed 16-bit integer.
func (o Order) Int16(b []byte) (int16, error) {
	v, err := o.Uint16(b)
	return int16(v), err
}

// Int32 decodes a signed 32-bit integer.
func (o Order) Int32(b []byte) (int32, error) {
	v, err := o.Uint32(b)
	return int32(v), err
}

// Int64 decodes a signed 64-bit integer.
func (o Order) Int64(b []byte) (int64, error) {
	v, err := o.Uint64(b)
	return int64(v), err
}

// Float32 decodes a 32-bit IEEE-754 float.
func (o Order) Float32(b []byte) (float32, error) {
	v, err := o.Uint32(b)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float64 decodes a 64-bit IEEE-754 float.
func (o Order) Float64(b []byte) (float64, error) {
	v, err := o.Uint64(b)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Uint8Vec decodes n consecutive bytes, consuming exactly n bytes.
func (o Order) Uint8Vec(n uint64, b []byte) ([]uint8, error) {
	count := int(n)
	if len(b) < count {
		return nil, ErrInsufficientBuffer
	}
	out := make([]uint8, count)
	copy(out, b[:count])
	return out, nil
}

// Uint16Vec decodes n consecutive 16-bit unsigned integers, consuming
// exactly 2*n bytes.
func (o Order) Uint16Vec(n uint64, b []byte) ([]uint16, error) {
	count := int(n)
	if len(b) < count*2 {
		return nil, ErrInsufficientBuffer
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = o.byteOrder().Uint16(b[i*2:])
	}
	return out, nil
}

// Uint32Vec decodes n consecutive 32-bit unsigned integers, consuming
// exactly 4*n bytes.
func (o Order) Uint32Vec(n uint64, b []byte) ([]uint32, error) {
	count := int(n)
	if len(b) < count*4 {
		return nil, ErrInsufficientBuffer
	}
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		out[i] = o.byteOrder().Uint32(b[i*4:])
	}
	return out, nil
}

// Uint64Vec decodes n consecutive 64-bit unsigned integers, consuming
// exactly 8*n bytes.
func (o Order) Uint64Vec(n uint64, b []byte) ([]uint64, error) {
	count := int(n)
	if len(b) < count*8 {
		return nil, ErrInsufficientBuffer
	}
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		out[i] = o.byteOrder().Uint64(b[i*8:])
	}
	return out, nil
}

// ASCII decodes n bytes as a string, one rune per input byte. Every byte
// value 0-255 is a valid Unicode scalar value, so this never drops a
// byte; callers that need to treat a trailing NUL as a terminator strip
// it themselves (see the Leica compatibility probe).
func (o Order) ASCII(n uint64, b []byte) (string, error) {
	count := int(n)
	if len(b) < count {
		return "", ErrInsufficientBuffer
	}
	var sb strings.Builder
	sb.Grow(count)
	for _, c := range b[:count] {
		sb.WriteRune(rune(c))
	}
	return sb.String(), nil
}

// Rational is an unsigned numerator/denominator pair (TIFF RATIONAL).
type Rational struct {
	Numer, Denom uint32
}

// SRational is a signed numerator/denominator pair (TIFF SRATIONAL).
type SRational struct {
	Numer, Denom int32
}

// Rational64 decodes a single RATIONAL (two consecutive LONGs).
func (o Order) Rational64(b []byte) (Rational, error) {
	if len(b) < 8 {
		return Rational{}, ErrInsufficientBuffer
	}
	numer, _ := o.Uint32(b[0:4])
	denom, _ := o.Uint32(b[4:8])
	return Rational{Numer: numer, Denom: denom}, nil
}

// SRational64 decodes a single SRATIONAL (two consecutive SLONGs).
func (o Order) SRational64(b []byte) (SRational, error) {
	if len(b) < 8 {
		return SRational{}, ErrInsufficientBuffer
	}
	numer, _ := o.Int32(b[0:4])
	denom, _ := o.Int32(b[4:8])
	return SRational{Numer: numer, Denom: denom}, nil
}

// RationalVec decodes n consecutive RATIONAL values, consuming exactly
// 8*n bytes.
func (o Order) RationalVec(n uint64, b []byte) ([]Rational, error) {
	count := int(n)
	if len(b) < count*8 {
		return nil, ErrInsufficientBuffer
	}
	out := make([]Rational, count)
	for i := 0; i < count; i++ {
		r, _ := o.Rational64(b[i*8:])
		out[i] = r
	}
	return out, nil
}

// SRationalVec decodes n consecutive SRATIONAL values, consuming exactly
// 8*n bytes.
func (o Order) SRationalVec(n uint64, b []byte) ([]SRational, error) {
	count := int(n)
	if len(b) < count*8 {
		return nil, ErrInsufficientBuffer
	}
	out := make([]SRational, count)
	for i := 0; i < count; i++ {
		r, _ := o.SRational64(b[i*8:])
		out[i] = r
	}
	return out, nil
}
