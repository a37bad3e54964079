package wsi

// kind distinguishes the two tile payload shapes this core produces.
type kind int

const (
	kindJPEG kind = iota
	kindJP2K
)

// Tile is a reconstructed, still-compressed tile payload: a complete
// JPEG (tables concatenated with the tile's entropy-coded segment) or a
// verbatim JPEG 2000 codestream. Decoding the payload is left to the
// caller.
type Tile struct {
	kind kind
	data []byte
}

// Bytes returns the tile's payload, regardless of variant — eozin's
// Tile::buffer() made uniform.
func (t Tile) Bytes() []byte {
	return t.data
}

// MIMEType returns the standard MIME type for the tile's payload kind.
func (t Tile) MIMEType() string {
	switch t.kind {
	case kindJP2K:
		return "image/jp2"
	default:
		return "image/jpeg"
	}
}
