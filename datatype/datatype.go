// Package datatype defines the TIFF field type codes used in IFD entries.
// These correspond to the type field of every TIFF directory entry and
// drive both the byte size of a value and how its bytes should be decoded.
//
// For reference, see the TIFF 6.0 specification §2 and the BigTIFF
// supplement for LONG8/SLONG8/IFD8.
package datatype

import "fmt"

// Type represents a TIFF field type, the 16-bit code found at bytes 2-3
// of every directory entry.
type Type uint16

const (
	// BYTE is an 8-bit unsigned integer.
	BYTE Type = 1

	// ASCII is a byte sequence of 7-bit ASCII code, NUL-terminated.
	ASCII Type = 2

	// SHORT is a 16-bit unsigned integer.
	SHORT Type = 3

	// LONG is a 32-bit unsigned integer.
	LONG Type = 4

	// RATIONAL is two LONGs: numerator and denominator.
	RATIONAL Type = 5

	// SBYTE is an 8-bit signed integer.
	SBYTE Type = 6

	// UNDEFINED is an 8-bit byte with arbitrary, field-defined meaning.
	UNDEFINED Type = 7

	// SSHORT is a 16-bit signed integer.
	SSHORT Type = 8

	// SLONG is a 32-bit signed integer.
	SLONG Type = 9

	// SRATIONAL is two SLONGs: numerator and denominator.
	SRATIONAL Type = 10

	// FLOAT is a 32-bit IEEE float.
	FLOAT Type = 11

	// DOUBLE is a 64-bit IEEE float.
	DOUBLE Type = 12

	// LONG8 is a 64-bit unsigned integer (BigTIFF).
	LONG8 Type = 16

	// SLONG8 is a 64-bit signed integer (BigTIFF).
	SLONG8 Type = 17

	// IFD8 is a 64-bit IFD offset (BigTIFF).
	IFD8 Type = 18
)

// FromUint16 maps a raw TIFF type code to a Type, or reports ok=false for
// an unrecognized code. Callers that encounter ok=false should skip the
// entry rather than fail the whole IFD (forward-compatible producer tags).
func FromUint16(code uint16) (t Type, ok bool) {
	switch Type(code) {
	case BYTE, ASCII, SHORT, LONG, RATIONAL, SBYTE, UNDEFINED, SSHORT,
		SLONG, SRATIONAL, FLOAT, DOUBLE, LONG8, SLONG8, IFD8:
		return Type(code), true
	default:
		return 0, false
	}
}

// Size returns the byte size of a single value of this type.
func (t Type) Size() uint64 {
	switch t {
	case BYTE, ASCII, SBYTE, UNDEFINED:
		return 1
	case SHORT, SSHORT:
		return 2
	case LONG, SLONG, FLOAT:
		return 4
	case RATIONAL, SRATIONAL, DOUBLE, LONG8, SLONG8, IFD8:
		return 8
	default:
		return 0
	}
}

// String returns a human-readable name for the data type.
func (t Type) String() string {
	switch t {
	case BYTE:
		return "BYTE"
	case ASCII:
		return "ASCII"
	case SHORT:
		return "SHORT"
	case LONG:
		return "LONG"
	case RATIONAL:
		return "RATIONAL"
	case SBYTE:
		return "SBYTE"
	case UNDEFINED:
		return "UNDEFINED"
	case SSHORT:
		return "SSHORT"
	case SLONG:
		return "SLONG"
	case SRATIONAL:
		return "SRATIONAL"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case LONG8:
		return "LONG8"
	case SLONG8:
		return "SLONG8"
	case IFD8:
		return "IFD8"
	default:
		return fmt.Sprintf("DataType(%d)", uint16(t))
	}
}
