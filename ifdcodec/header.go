// Package ifdcodec implements the byte-exact TIFF/BigTIFF structural
// parser: header detection, per-flavor size descriptors, directory-entry
// decoding (inline or lazily out-of-line), and the walker that drives a
// source.RandomReader to produce the full ordered IFD list.
package ifdcodec

import (
	"github.com/echoflaresat/wsireader/byteio"
)

// Kind distinguishes Classic TIFF (32-bit offsets) from BigTIFF (64-bit
// offsets). It is orthogonal to byte order: the parser is driven by the
// pure (Kind, Order) tuple, never by dynamic dispatch.
type Kind int

const (
	// Classic is the original TIFF 6.0 structure (version 42).
	Classic Kind = iota
	// Big is the BigTIFF structure (version 43).
	Big
)

func (k Kind) String() string {
	if k == Big {
		return "Big"
	}
	return "Classic"
}

// Flavor is the (Kind, Order) pair produced exclusively by header
// detection; every later size/offset computation is a pure function of
// this value.
type Flavor struct {
	Kind  Kind
	Order byteio.Order
}

// Size describes the byte layout of one IFD for a given Flavor.
type Size struct {
	// IfdHeader is the size of the entry-count field.
	IfdHeader uint64
	// Entry is the size of one directory entry.
	Entry uint64
	// NextPointer is the size of the terminating next-IFD offset field.
	NextPointer uint64
}

// Size returns the byte layout for this Flavor's Kind.
func (f Flavor) Size() Size {
	if f.Kind == Big {
		return Size{IfdHeader: 8, Entry: 20, NextPointer: 8}
	}
	return Size{IfdHeader: 2, Entry: 12, NextPointer: 4}
}

// IfdBody returns the number of bytes spanning count directory entries
// plus the trailing next-IFD pointer.
func (s Size) IfdBody(count uint64) uint64 {
	return count*s.Entry + s.NextPointer
}

// inlineSlot is the number of bytes of entry payload that fit inline
// rather than requiring an out-of-line fetch.
func (f Flavor) inlineSlot() uint64 {
	if f.Kind == Big {
		return 8
	}
	return 4
}

// DetectHeader reads the first 16 bytes of a TIFF/BigTIFF file and
// returns the parser Flavor plus the offset of the first IFD.
func DetectHeader(buf []byte) (Flavor, uint64, error) {
	if len(buf) < 8 {
		return Flavor{}, 0, newParseError(RoleHeaderBroken, "header shorter than 8 bytes (%d)", len(buf))
	}
	var order byteio.Order
	switch {
	case buf[0] == 'I' && buf[1] == 'I':
		order = byteio.Intel
	case buf[0] == 'M' && buf[1] == 'M':
		order = byteio.Moto
	default:
		return Flavor{}, 0, newParseError(RoleHeaderBroken, "unrecognized endian marker % x", buf[0:2])
	}
	version, _ := order.Uint16(buf[2:4])
	switch version {
	case 42:
		offset, err := order.Uint32(buf[4:8])
		if err != nil {
			return Flavor{}, 0, newParseError(RoleHeaderBroken, "short classic header")
		}
		return Flavor{Kind: Classic, Order: order}, uint64(offset), nil
	case 43:
		if len(buf) < 16 {
			return Flavor{}, 0, newParseError(RoleHeaderBroken, "BigTIFF header shorter than 16 bytes (%d)", len(buf))
		}
		always8, _ := order.Uint16(buf[4:6])
		always0, _ := order.Uint16(buf[6:8])
		if always8 != 8 || always0 != 0 {
			return Flavor{}, 0, newParseError(RoleHeaderBroken, "BigTIFF placeholder (%d,%d) != (8,0)", always8, always0)
		}
		offset, err := order.Uint64(buf[8:16])
		if err != nil {
			return Flavor{}, 0, newParseError(RoleHeaderBroken, "short BigTIFF header")
		}
		return Flavor{Kind: Big, Order: order}, offset, nil
	default:
		return Flavor{}, 0, newParseError(RoleHeaderBroken, "unrecognized version discriminant %d", version)
	}
}

// EntryCount decodes the entry-count field at the head of an IFD: a u16
// for Classic, a u64 for BigTIFF.
func (f Flavor) EntryCount(buf []byte) (uint64, error) {
	if f.Kind == Big {
		v, err := f.Order.Uint64(buf)
		if err != nil {
			return 0, newParseError(RoleInsufficientBuffer, "entry count: %v", err)
		}
		return v, nil
	}
	v, err := f.Order.Uint16(buf)
	if err != nil {
		return 0, newParseError(RoleInsufficientBuffer, "entry count: %v", err)
	}
	return uint64(v), nil
}

// NextIFD decodes the next-IFD pointer: a u32 for Classic, a u64 for
// BigTIFF. A value of 0 means there is no successor.
func (f Flavor) NextIFD(buf []byte) (offset uint64, hasNext bool, err error) {
	if f.Kind == Big {
		v, err := f.Order.Uint64(buf)
		if err != nil {
			return 0, false, newParseError(RoleInsufficientBuffer, "next IFD pointer: %v", err)
		}
		return v, v != 0, nil
	}
	v, err := f.Order.Uint32(buf)
	if err != nil {
		return 0, false, newParseError(RoleInsufficientBuffer, "next IFD pointer: %v", err)
	}
	return uint64(v), v != 0, nil
}
