package heap

import (
	"fmt"
	"os"

	"github.com/heapkit/heapkit/internal/mmbuf"
)

// Segment is the managed byte region, backed by an in-process buffer or a
// memory-mapped file.
type Segment struct {
	data []byte
	buf  *mmbuf.Buf // non-nil when file-backed
}

// New returns a Segment over a fresh zeroed buffer of the given size.
func New(size uint64) *Segment {
	return &Segment{data: make([]byte, size)}
}

// FromBuffer returns a Segment over a caller-supplied buffer. The caller
// must not alias writes into buf while an allocator owns the segment.
func FromBuffer(buf []byte) *Segment {
	return &Segment{data: buf}
}

// Open maps an existing segment file read-write.
func Open(path string) (*Segment, error) {
	b, err := mmbuf.Map(path)
	if err != nil {
		return nil, err
	}
	return &Segment{data: b.Bytes(), buf: b}, nil
}

// Create creates (or truncates) a segment file of the given size and maps it.
func Create(path string, size uint64) (*Segment, error) {
	if size == 0 {
		return nil, fmt.Errorf("heap: segment size must be non-zero")
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return Open(path)
}

// Bytes returns the raw segment bytes.
func (s *Segment) Bytes() []byte { return s.data }

// Size returns the segment size in bytes.
func (s *Segment) Size() uint64 { return uint64(len(s.data)) }

// Sync flushes a file-backed segment to disk. No-op for buffer segments.
func (s *Segment) Sync() error {
	if s.buf == nil {
		return nil
	}
	return s.buf.Sync()
}

// Close releases a file-backed segment's mapping. The segment bytes must
// not be used afterwards. No-op for buffer segments.
func (s *Segment) Close() error {
	if s.buf == nil {
		s.data = nil
		return nil
	}
	err := s.buf.Close()
	s.data = nil
	s.buf = nil
	return err
}
