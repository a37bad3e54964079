package ifdcodec

import (
	"github.com/echoflaresat/wsireader/source"
	"github.com/echoflaresat/wsireader/tiffvalue"
)

// decodePending decodes the out-of-line value for one pending entry from
// raw, the bytes Walk has already read from the source.
func decodePending(f Flavor, p PendingEntry, raw []byte) (tiffvalue.Value, error) {
	v, err := tiffvalue.Decode(f.Order, p.Type, p.Count, raw)
	if err != nil {
		return tiffvalue.Value{}, newParseError(RoleEntryBroken, "tag %d type %s count %d (out-of-line): %v", p.Tag, p.Type, p.Count, err)
	}
	return v, nil
}

// maxIFDEntries bounds how many entries a single IFD may declare. A real
// producer never comes close; the guard exists so a corrupt or hostile
// entry count cannot force an unbounded allocation or read.
const maxIFDEntries = 1 << 20

// maxIFDCount bounds how many IFDs the walker will follow before giving
// up, alongside cycle detection by offset: together they turn a
// corrupt or adversarial next-IFD chain into an error instead of an
// infinite loop.
const maxIFDCount = 1 << 16

// Walk drives rr through header detection and the full next-IFD linked
// list, fetching out-of-line entry values as it goes, and returns the
// ordered Tiff (head IFD first).
func Walk(rr source.RandomReader) (Tiff, error) {
	head, err := rr.ReadRange(0, 16)
	if err != nil {
		return nil, err
	}
	flavor, offset, err := DetectHeader(head)
	if err != nil {
		return nil, err
	}

	var tiff Tiff
	visited := make(map[uint64]bool)
	size := flavor.Size()

	for offset != 0 {
		if visited[offset] {
			return nil, newParseError(RoleHeaderBroken, "cyclic next-IFD chain revisits offset %d", offset)
		}
		if uint64(len(tiff)) >= maxIFDCount {
			return nil, newParseError(RoleHeaderBroken, "next-IFD chain exceeds %d directories", maxIFDCount)
		}
		visited[offset] = true

		countBuf, err := rr.ReadRange(offset, offset+size.IfdHeader)
		if err != nil {
			return nil, err
		}
		count, err := flavor.EntryCount(countBuf)
		if err != nil {
			return nil, err
		}
		if count > maxIFDEntries {
			return nil, newParseError(RoleEntryBroken, "IFD at %d declares %d entries, exceeds %d", offset, count, maxIFDEntries)
		}

		bodyStart := offset + size.IfdHeader
		bodyLen := size.IfdBody(count)
		body, err := rr.ReadRange(bodyStart, bodyStart+bodyLen)
		if err != nil {
			return nil, err
		}

		ifd, pending, nextOffset, hasNext, err := flavor.DecodeBody(count, body)
		if err != nil {
			return nil, err
		}

		for _, p := range pending {
			raw, err := rr.ReadRange(p.Offset, p.Offset+p.Length)
			if err != nil {
				return nil, err
			}
			v, err := decodePending(flavor, p, raw)
			if err != nil {
				return nil, err
			}
			ifd[p.Tag] = v
		}

		tiff = append(tiff, ifd)
		if !hasNext {
			break
		}
		offset = nextOffset
	}

	return tiff, nil
}
