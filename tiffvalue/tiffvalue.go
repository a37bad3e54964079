// Package tiffvalue implements Value, the tagged union over the TIFF type
// set that every decoded directory entry becomes, plus the decode
// dispatch from (DataType, count, bytes) to a Value.
package tiffvalue

import (
	"fmt"

	"github.com/echoflaresat/wsireader/byteio"
	"github.com/echoflaresat/wsireader/datatype"
)

// Value holds a decoded TIFF entry value. Scalar kinds (count == 1) and
// vector kinds (count > 1) of the same underlying type share one Value
// shape; Type and Count record the TIFF type and element count. A count
// of 1 always decodes to the scalar form, so a one-element vector is
// never produced.
type Value struct {
	Type  datatype.Type
	Count uint64
	raw   any
}

// raw holds exactly one of:
//
//	uint8, []uint8 (BYTE, UNDEFINED)
//	string (ASCII)
//	uint16, []uint16 (SHORT)
//	uint32, []uint32 (LONG)
//	uint64, []uint64 (LONG8, IFD8)
//	int8 (SBYTE)
//	int16 (SSHORT)
//	int32 (SLONG)
//	int64 (SLONG8)
//	float32 (FLOAT)
//	float64 (DOUBLE)
//	byteio.Rational, []byteio.Rational (RATIONAL)
//	byteio.SRational (SRATIONAL)

// Uint64 widens a Byte/Short/Long/Long8/Ifd8/Undefined scalar to uint64.
// It is the type-coercing extractor used throughout level assembly
// (spec component E's to_u64).
func (v Value) Uint64() (uint64, bool) {
	switch x := v.raw.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	default:
		return 0, false
	}
}

// Uint64Vec widens a LongVec or Long8Vec to []uint64 (component E's
// offsets_vec/byte_counts_vec).
func (v Value) Uint64Vec() ([]uint64, bool) {
	switch x := v.raw.(type) {
	case []uint32:
		out := make([]uint64, len(x))
		for i, e := range x {
			out[i] = uint64(e)
		}
		return out, true
	case []uint64:
		return x, true
	default:
		return nil, false
	}
}

// String returns the decoded ASCII text, if this Value is an Ascii.
func (v Value) String() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Bytes returns the raw byte vector for ByteVec/UndefinedVec values (used
// to pull out the JPEGTables payload).
func (v Value) Bytes() ([]byte, bool) {
	b, ok := v.raw.([]byte)
	return b, ok
}

// Uint16 returns the scalar Short value.
func (v Value) Uint16() (uint16, bool) {
	x, ok := v.raw.(uint16)
	return x, ok
}

// GoString renders the value for diagnostics.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s x%d: %v}", v.Type, v.Count, v.raw)
}

// Decode materializes a Value from its TIFF type, element count, and a
// byte payload of at least data_type.Size()*count bytes (bytes past that
// length, such as the unused tail of an inline slot, are ignored).
// Unsupported (type, count) combinations and short payloads return an
// error; callers convert that into an EntryBroken error carrying the type
// for diagnosis.
func Decode(order byteio.Order, typ datatype.Type, count uint64, b []byte) (Value, error) {
	if typ.Size()*count > uint64(len(b)) {
		return Value{}, fmt.Errorf("tiffvalue: buffer too short for %s x%d", typ, count)
	}
	v := Value{Type: typ, Count: count}
	var err error
	switch typ {
	case datatype.BYTE:
		if count == 1 {
			v.raw, err = order.Uint8(b)
		} else {
			v.raw, err = order.Uint8Vec(count, b)
		}
	case datatype.UNDEFINED:
		if count == 1 {
			v.raw, err = order.Uint8(b)
		} else {
			v.raw, err = order.Uint8Vec(count, b)
		}
	case datatype.SHORT:
		if count == 1 {
			v.raw, err = order.Uint16(b)
		} else {
			v.raw, err = order.Uint16Vec(count, b)
		}
	case datatype.LONG:
		if count == 1 {
			v.raw, err = order.Uint32(b)
		} else {
			v.raw, err = order.Uint32Vec(count, b)
		}
	case datatype.LONG8:
		if count == 1 {
			v.raw, err = order.Uint64(b)
		} else {
			v.raw, err = order.Uint64Vec(count, b)
		}
	case datatype.IFD8:
		if count == 1 {
			v.raw, err = order.Uint64(b)
		} else {
			v.raw, err = order.Uint64Vec(count, b)
		}
	case datatype.ASCII:
		v.raw, err = order.ASCII(count, b)
	case datatype.RATIONAL:
		if count == 1 {
			v.raw, err = order.Rational64(b)
		} else {
			v.raw, err = order.RationalVec(count, b)
		}
	case datatype.SBYTE:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector SBYTE is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Int8(b)
	case datatype.SSHORT:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector SSHORT is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Int16(b)
	case datatype.SLONG:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector SLONG is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Int32(b)
	case datatype.SLONG8:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector SLONG8 is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Int64(b)
	case datatype.FLOAT:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector FLOAT is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Float32(b)
	case datatype.DOUBLE:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector DOUBLE is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.Float64(b)
	case datatype.SRATIONAL:
		if count != 1 {
			return Value{}, fmt.Errorf("tiffvalue: vector SRATIONAL is not supported (%s x%d)", typ, count)
		}
		v.raw, err = order.SRational64(b)
	default:
		return Value{}, fmt.Errorf("tiffvalue: unsupported data type %s", typ)
	}
	if err != nil {
		return Value{}, fmt.Errorf("tiffvalue: %w", err)
	}
	return v, nil
}
