package ifdcodec

import (
	"github.com/echoflaresat/wsireader/datatype"
	"github.com/echoflaresat/wsireader/tifftag"
	"github.com/echoflaresat/wsireader/tiffvalue"
)

// IFD is a mapping from tag to decoded value. Tag uniqueness within one
// IFD is an invariant of the TIFF format; insertion order carries no
// meaning.
type IFD map[tifftag.Tag]tiffvalue.Value

// Tiff is the ordered sequence of IFDs as linked by the file, head IFD
// first, matching on-disk traversal order.
type Tiff []IFD

// PendingEntry describes a directory entry whose value lives out-of-line
// and has not yet been fetched. The walker executes a batch of these
// after decoding an IFD body; this keeps the decoder itself free of I/O
// side effects (a returned plan rather than a callback).
type PendingEntry struct {
	Tag    tifftag.Tag
	Type   datatype.Type
	Count  uint64
	Offset uint64
	Length uint64
}
