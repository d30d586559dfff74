// Package alloc provides dynamic block allocation over a fixed-size segment.
//
// # Overview
//
// This package implements a classic explicit free-list allocator. The
// segment is tiled by blocks, each starting with a single 8-byte header
// word that encodes the payload size and a free/used tag in its low bits
// (payload sizes are always multiples of 8, so the low three bits are
// spare). Free blocks additionally carry two link words (previous-free and
// next-free) overlaid on the first 16 bytes of their payload, forming a
// doubly linked free list that is independent of physical order.
//
// # Allocators
//
// ListAllocator: the production allocator with an explicit free list
//
//   - O(free blocks) first-fit allocation over a LIFO free list
//   - Block splitting when the last physical block has slack
//   - Rightward coalescing on free and during in-place resize
//   - In-place resize by greedily absorbing free right-neighbors
//
// ScanAllocator: a baseline with no free list
//
//   - Same header encoding, no link words
//   - O(blocks) linear header walk for every operation
//   - Resize is always allocate-copy-free
//
// Both implement the Allocator interface, so harnesses and tools can swap
// strategies without changing call sites.
//
// # Usage Example
//
//	seg := heap.New(1 << 20)
//	la, err := alloc.NewList(seg, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := la.Alloc(100) // rounds to 104
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, free the block
//	err = la.Free(ref)
//
// # Block References
//
// Block references (Ref) are byte offsets of a block's payload from the
// segment start. The header word sits at ref-8. The first payload starts at
// offset 8, so NilRef (0) is never a valid payload offset and doubles as
// the null sentinel for results and for the embedded list links. All
// dereferences index the segment slice, so a corrupted offset faults the
// bounds check instead of reading past the segment.
//
// # Coalescing Policy
//
// Coalescing is rightward only: freeing a block merges it with its physical
// successor when that successor is free, and in-place resize keeps
// absorbing free successors until the request fits. A block is never merged
// into a free predecessor, so freeing the left neighbor last is what
// completes a merge. This asymmetry is a known limitation kept for
// behavioral compatibility.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. A single logical owner must
// issue operations; callers needing concurrency must synchronize
// externally.
package alloc
