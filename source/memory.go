package source

// MemorySource is a RandomReader over an in-memory byte slice. It backs
// unit tests that build a synthetic TIFF/BigTIFF byte-for-byte rather
// than fixture files.
type MemorySource struct {
	data []byte
}

// NewMemorySource wraps data as a RandomReader.
func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

// ReadRange returns a copy of data[start:end].
func (m *MemorySource) ReadRange(start, end uint64) ([]byte, error) {
	if end <= start {
		return nil, &TruncatedReadError{Start: start, End: end, Got: 0}
	}
	if end > uint64(len(m.data)) {
		got := 0
		if start < uint64(len(m.data)) {
			got = len(m.data) - int(start)
		}
		return nil, &TruncatedReadError{Start: start, End: end, Got: got}
	}
	out := make([]byte, end-start)
	copy(out, m.data[start:end])
	return out, nil
}
