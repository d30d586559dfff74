package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.
//
// Block headers and the embedded free-list links are stored as 8-byte
// little-endian words inside the managed segment. Go's standard library
// implementation is already highly optimized by the compiler, so no unsafe
// variants are provided.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
