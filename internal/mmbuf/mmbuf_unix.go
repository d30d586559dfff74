//go:build unix

package mmbuf

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Buf is a writable memory mapping of a file.
type Buf struct {
	data []byte
}

// Map maps the file at path read-write and returns the mapping.
// The file must be non-empty; the mapping covers the whole file.
func Map(path string) (*Buf, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("mmbuf: cannot map empty file %s", path)
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmbuf: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Buf{data: data}, nil
}

// Bytes returns the mapped region. Writes land in the page cache and reach
// the file on Sync or at the kernel's discretion.
func (b *Buf) Bytes() []byte { return b.data }

// Sync flushes the mapping to the backing file.
func (b *Buf) Sync() error {
	if b.data == nil {
		return nil
	}
	return unix.Msync(b.data, unix.MS_SYNC)
}

// Close unmaps the region. Double-close is a no-op.
func (b *Buf) Close() error {
	if b.data == nil {
		return nil
	}
	err := unix.Munmap(b.data)
	b.data = nil
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
