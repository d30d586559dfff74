//go:build !unix

package mmbuf

import (
	"fmt"
	"os"
)

// Buf is an in-memory copy of a file on platforms without mmap support.
// Writes are buffered and reach the file on Sync or Close.
type Buf struct {
	path string
	data []byte
}

// Map reads the file at path into memory.
func Map(path string) (*Buf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("mmbuf: cannot map empty file %s", path)
	}
	return &Buf{path: path, data: data}, nil
}

// Bytes returns the buffered region.
func (b *Buf) Bytes() []byte { return b.data }

// Sync writes the buffer back to the file.
func (b *Buf) Sync() error {
	if b.data == nil {
		return nil
	}
	return os.WriteFile(b.path, b.data, 0o644)
}

// Close flushes and releases the buffer. Double-close is a no-op.
func (b *Buf) Close() error {
	if b.data == nil {
		return nil
	}
	err := b.Sync()
	b.data = nil
	return err
}
