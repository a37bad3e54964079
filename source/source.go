// Package source implements the narrow positioned-read interface that is
// the only I/O dependency of the TIFF parser and the WSI overlay on top
// of it: RandomReader, plus a local-file backend and a remote
// byte-range-fetching backend.
package source

import (
	"fmt"
	"io"
	"os"
)

// RandomReader serves an exact byte range of a seekable source. end must
// be greater than start. Implementations return a slice of exactly
// end-start bytes or a TruncatedReadError.
type RandomReader interface {
	ReadRange(start, end uint64) ([]byte, error)
}

// TruncatedReadError is returned when a backend could not deliver the
// full requested range.
type TruncatedReadError struct {
	Start, End uint64
	Got        int
}

func (e *TruncatedReadError) Error() string {
	return fmt.Sprintf("source: truncated read [%d,%d): got %d bytes, want %d", e.Start, e.End, e.Got, e.End-e.Start)
}

// FileSource is a RandomReader backed by a local, read-only os.File.
// Seeks are always absolute from start, so a FileSource may be shared
// by repeated, non-sequential ReadRange calls.
type FileSource struct {
	f *os.File
}

// NewFileSource opens path read-only and wraps it as a RandomReader.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{f: f}, nil
}

// ReadRange reads exactly end-start bytes at absolute offset start.
func (s *FileSource) ReadRange(start, end uint64) ([]byte, error) {
	if end <= start {
		return nil, fmt.Errorf("source: invalid range [%d,%d)", start, end)
	}
	n := end - start
	buf := make([]byte, n)
	got, err := s.f.ReadAt(buf, int64(start))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if uint64(got) != n {
		return nil, &TruncatedReadError{Start: start, End: end, Got: got}
	}
	return buf, nil
}

// Close releases the underlying file handle.
func (s *FileSource) Close() error {
	return s.f.Close()
}
