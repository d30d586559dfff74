// Package heap owns the managed byte region (the "segment") that the
// allocators in heapkit/heap/alloc carve into blocks.
//
// A Segment is nothing more than a fixed-size contiguous byte slice with
// known bounds. It can sit on an anonymous in-process buffer (New,
// FromBuffer) or on a memory-mapped file (Open, Create), in which case
// Sync flushes the block headers and payloads to disk.
//
// The segment is never resized after creation. All layout decisions
// (headers, free lists, splitting, coalescing) belong to the alloc package;
// Segment only hands out the raw bytes.
package heap
