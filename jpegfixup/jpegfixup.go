// Package jpegfixup normalizes the APP14 Adobe segment of a shared JPEG
// tables stream so that concatenating it with a tile's entropy-coded
// segment decodes in the "Unknown" colorspace transform rather than
// triggering libjpeg's automatic YCbCr conversion.
package jpegfixup

// app14Unknown is the canonical 16-byte APP14 Adobe segment with
// transform=Unknown: marker, length, "Adobe", version, flags0, flags1,
// transform.
var app14Unknown = [16]byte{
	0xff, 0xee, 0x00, 0x0e, 0x41, 0x64, 0x6f, 0x62, 0x65, 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// transformFieldOffset is the offset of the transform byte within an
// APP14 segment, relative to the leading 0xFF of its marker: 2 (marker)
// + 2 (length) + 5 ("Adobe") + 2 (version) + 2 (flags0) + 2 (flags1).
const transformFieldOffset = 15

// SetAdobeTransformUnknown rewrites jpegTables in place (or inserts the
// canonical segment) so colorspace transform reads as Unknown:
//
//   - If an APP14 marker (FF EE) is present, its transform byte (at
//     offset+15) is overwritten with 0x00.
//   - Else if a DHT marker (FF C4) is present, the canonical 16-byte
//     APP14 segment is spliced in at the DHT's offset, growing the
//     buffer by exactly 16 bytes.
//   - Else the buffer is returned unchanged.
//
// Applying the fixup twice is idempotent: the second pass finds the
// already-Unknown APP14 marker and rewrites the same byte to the same
// value.
func SetAdobeTransformUnknown(jpegTables []byte) []byte {
	app14Ofs, dhtOfs := -1, -1
	for i := 0; i+1 < len(jpegTables); i++ {
		if jpegTables[i] == 0xff && jpegTables[i+1] == 0xee {
			app14Ofs = i
			break
		}
		if jpegTables[i] == 0xff && jpegTables[i+1] == 0xc4 {
			dhtOfs = i
		}
	}

	switch {
	case app14Ofs >= 0:
		if app14Ofs+transformFieldOffset < len(jpegTables) {
			jpegTables[app14Ofs+transformFieldOffset] = 0x00
		}
		return jpegTables
	case dhtOfs >= 0:
		out := make([]byte, 0, len(jpegTables)+len(app14Unknown))
		out = append(out, jpegTables[:dhtOfs]...)
		out = append(out, app14Unknown[:]...)
		out = append(out, jpegTables[dhtOfs:]...)
		return out
	default:
		return jpegTables
	}
}
