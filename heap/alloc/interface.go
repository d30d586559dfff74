package alloc

import "io"

// Allocator defines the operations shared by the explicit-list and
// header-scan allocators.
//
// Implementations:
//   - ListAllocator: explicit free list, first-fit, rightward coalescing
//   - ScanAllocator: header-scan baseline, no free list
type Allocator interface {
	// Alloc allocates a block of at least size bytes.
	// Returns the block reference and a slice over its payload.
	Alloc(size uint64) (Ref, []byte, error)

	// Free marks a block free for reuse. Free(NilRef) is a no-op.
	Free(ref Ref) error

	// Realloc resizes a block, in place when possible.
	// Realloc(NilRef, n) allocates; Realloc(ref, 0) frees and returns NilRef.
	Realloc(ref Ref, size uint64) (Ref, []byte, error)

	// Validate checks the structural invariants of the segment.
	// Read-only diagnostic; not meant for the allocation hot path.
	Validate() bool

	// Dump writes a human-readable listing of every block to w.
	Dump(w io.Writer)
}
