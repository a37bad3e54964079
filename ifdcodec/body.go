package ifdcodec

import (
	"github.com/echoflaresat/wsireader/datatype"
	"github.com/echoflaresat/wsireader/tifftag"
	"github.com/echoflaresat/wsireader/tiffvalue"
)

// decodeEntry decodes one directory entry. An unrecognized data type is
// reported via skip=true and a nil error: forward-compatible producer
// tags are dropped silently, never fatal.
func (f Flavor) decodeEntry(buf []byte) (tag tifftag.Tag, value *tiffvalue.Value, pending *PendingEntry, skip bool, err error) {
	order := f.Order
	entrySize := f.Size().Entry
	if uint64(len(buf)) < entrySize {
		return 0, nil, nil, false, newParseError(RoleInsufficientBuffer, "entry buffer %d bytes, want %d", len(buf), entrySize)
	}
	rawTag, _ := order.Uint16(buf[0:2])
	tag = tifftag.Tag(rawTag)

	typeCode, _ := order.Uint16(buf[2:4])
	typ, ok := datatype.FromUint16(typeCode)
	if !ok {
		return tag, nil, nil, true, nil
	}

	var count uint64
	var payload []byte
	if f.Kind == Big {
		count, _ = order.Uint64(buf[4:12])
		payload = buf[12:20]
	} else {
		count32, _ := order.Uint32(buf[4:8])
		count = uint64(count32)
		payload = buf[8:12]
	}

	payloadLen := typ.Size() * count
	if payloadLen <= f.inlineSlot() {
		v, derr := tiffvalue.Decode(order, typ, count, payload)
		if derr != nil {
			return tag, nil, nil, false, newParseError(RoleEntryBroken, "tag %d type %s count %d: %v", rawTag, typ, count, derr)
		}
		return tag, &v, nil, false, nil
	}

	var offset uint64
	if f.Kind == Big {
		offset, _ = order.Uint64(payload)
	} else {
		off32, _ := order.Uint32(payload)
		offset = uint64(off32)
	}
	return tag, nil, &PendingEntry{Tag: tag, Type: typ, Count: count, Offset: offset, Length: payloadLen}, false, nil
}

// DecodeBody decodes count directory entries plus the trailing next-IFD
// pointer out of buf, which must be exactly Size().IfdBody(count) bytes
// (the body decoded in §4.B step by step). Entries whose value is inline
// populate ifd directly; entries whose value lives out-of-line are
// returned in pending for the walker to fetch and insert.
func (f Flavor) DecodeBody(count uint64, buf []byte) (ifd IFD, pending []PendingEntry, nextOffset uint64, hasNext bool, err error) {
	size := f.Size()
	entriesLen := count * size.Entry
	if uint64(len(buf)) < entriesLen+size.NextPointer {
		return nil, nil, 0, false, newParseError(RoleInsufficientBuffer, "IFD body %d bytes, want %d", len(buf), entriesLen+size.NextPointer)
	}
	ifd = make(IFD, count)
	entries := buf[:entriesLen]
	for i := uint64(0); i < count; i++ {
		chunk := entries[i*size.Entry : (i+1)*size.Entry]
		tag, value, pend, skip, derr := f.decodeEntry(chunk)
		if derr != nil {
			return nil, nil, 0, false, derr
		}
		if skip {
			continue
		}
		if value != nil {
			ifd[tag] = *value
		} else if pend != nil {
			pending = append(pending, *pend)
		}
	}
	nextOffset, hasNext, err = f.NextIFD(buf[entriesLen : entriesLen+size.NextPointer])
	if err != nil {
		return nil, nil, 0, false, err
	}
	return ifd, pending, nextOffset, hasNext, nil
}
