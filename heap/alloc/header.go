package alloc

import "github.com/heapkit/heapkit/internal/format"

// Header codec.
//
// A block header is one little-endian word holding the payload size plus a
// status tag in the low three bits: a free block stores the bare size, a
// used block stores size+1. "Free" is therefore "low bits are zero". The
// encoding relies on payload sizes being multiples of 8.

const (
	statusMask  uint64 = Alignment - 1
	payloadMask uint64 = ^statusMask
)

// packWord encodes a payload size and free status into a header word.
// size must already be a multiple of Alignment.
func packWord(size uint64, free bool) uint64 {
	if free {
		return size
	}
	return size + 1
}

// wordPayload decodes the payload size from a header word.
func wordPayload(w uint64) uint64 {
	return w & payloadMask
}

// wordFree decodes the free status from a header word.
func wordFree(w uint64) bool {
	return w&statusMask == 0
}

// headerWord reads the raw header word of the block at ref.
func headerWord(data []byte, ref Ref) uint64 {
	return format.ReadU64(data, int(ref-HeaderSize))
}

// setHeaderWord writes the raw header word of the block at ref.
func setHeaderWord(data []byte, ref Ref, w uint64) {
	format.PutU64(data, int(ref-HeaderSize), w)
}

// blockPayload returns the payload size of the block at ref.
func blockPayload(data []byte, ref Ref) uint64 {
	return wordPayload(headerWord(data, ref))
}

// blockFree reports whether the block at ref is free.
func blockFree(data []byte, ref Ref) bool {
	return wordFree(headerWord(data, ref))
}

// nextBlock returns the physical successor of the block at ref, or NilRef
// if ref is the last block in the segment.
func nextBlock(data []byte, ref Ref) Ref {
	end := ref + blockPayload(data, ref)
	if end == uint64(len(data)) {
		return NilRef
	}
	return end + HeaderSize
}

// lastBlock reports whether the block at ref is the last physical block.
func lastBlock(data []byte, ref Ref) bool {
	return ref+blockPayload(data, ref) == uint64(len(data))
}

// roundUp rounds a requested size up to the alignment, flooring at
// MinPayload so every block can later host the free-list links.
func roundUp(size uint64) uint64 {
	r := format.Align8(size)
	if r < MinPayload {
		return MinPayload
	}
	return r
}

// checkRef rejects references that cannot name a block payload inside the
// segment: unaligned offsets, offsets before the first header, or offsets
// too close to the segment end to carry a minimum payload.
func checkRef(data []byte, ref Ref) error {
	if ref < HeaderSize || !format.Aligned8(ref) || ref+MinPayload > uint64(len(data)) {
		return ErrBadRef
	}
	return nil
}
