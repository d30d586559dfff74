package alloc

import (
	"io"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

const (
	// minScanSegment is the smallest segment the ScanAllocator accepts.
	// Without list links there is no 16-byte payload floor, so one header
	// plus one aligned payload suffices.
	minScanSegment = 2 * Alignment

	// scanSplitSlack is the last-block split headroom for the scan
	// allocator: room for the new header plus one aligned payload.
	scanSplitSlack = 2 * Alignment
)

// ScanAllocator is the implicit baseline: the same header encoding as the
// ListAllocator but no free list. Every operation walks the headers from
// the segment start, so allocation is O(blocks) and resize always copies.
// It exists for contrast and as a harness cross-check, not for production
// use.
type ScanAllocator struct {
	seg  *heap.Segment
	data []byte

	stats Stats
}

// NewScan initializes the segment as a single free block and returns a
// header-scan allocator over it.
func NewScan(seg *heap.Segment) (*ScanAllocator, error) {
	if seg.Size() < minScanSegment {
		return nil, ErrSegmentTooSmall
	}
	if !format.Aligned8(seg.Size()) {
		return nil, ErrSegmentUnaligned
	}

	sa := &ScanAllocator{
		seg:  seg,
		data: seg.Bytes(),
	}
	sa.Reset()
	return sa, nil
}

// Reset re-establishes the initial single free block and zeroes counters.
func (sa *ScanAllocator) Reset() {
	setHeaderWord(sa.data, HeaderSize, packWord(sa.seg.Size()-HeaderSize, true))
	sa.stats = Stats{}
}

// Alloc walks the headers for the first free block that fits. The last
// physical block is split when it has slack for another header and payload;
// interior blocks are consumed whole. Zero-size requests fail.
func (sa *ScanAllocator) Alloc(size uint64) (Ref, []byte, error) {
	sa.stats.AllocCalls++
	if size == 0 {
		return NilRef, nil, ErrNoSpace
	}
	request := format.Align8(size)

	for ref := Ref(HeaderSize); ref != NilRef; ref = nextBlock(sa.data, ref) {
		payload := blockPayload(sa.data, ref)
		free := blockFree(sa.data, ref)

		if lastBlock(sa.data, ref) {
			if !free || request > payload {
				return NilRef, nil, ErrNoSpace
			}
			if payload >= request+scanSplitSlack {
				sa.stats.SplitCount++
				setHeaderWord(sa.data, ref, packWord(request, false))
				tail := ref + request + HeaderSize
				setHeaderWord(sa.data, tail, packWord(payload-request-HeaderSize, true))
				sa.stats.BytesAllocated += request
				return ref, sa.data[ref : ref+request], nil
			}
			// Just fits: consume whole.
			setHeaderWord(sa.data, ref, headerWord(sa.data, ref)+1)
			sa.stats.BytesAllocated += payload
			return ref, sa.data[ref : ref+payload], nil
		}

		if free && payload >= request {
			setHeaderWord(sa.data, ref, headerWord(sa.data, ref)+1)
			sa.stats.BytesAllocated += payload
			return ref, sa.data[ref : ref+payload], nil
		}
	}
	return NilRef, nil, ErrNoSpace
}

// Free flips the block's status tag. There is no list to maintain and no
// coalescing; the space becomes visible to later scans as-is.
func (sa *ScanAllocator) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}
	if err := sa.checkScanRef(ref); err != nil {
		return err
	}
	sa.stats.FreeCalls++
	sa.stats.BytesFreed += blockPayload(sa.data, ref)
	setHeaderWord(sa.data, ref, headerWord(sa.data, ref)-1)
	return nil
}

// Realloc is always allocate-copy-free: without a free list there is no
// cheap in-place growth. Realloc(NilRef, n) allocates; Realloc(ref, 0)
// frees and returns NilRef.
func (sa *ScanAllocator) Realloc(ref Ref, size uint64) (Ref, []byte, error) {
	if ref == NilRef {
		return sa.Alloc(size)
	}
	if size == 0 {
		return NilRef, nil, sa.Free(ref)
	}
	if err := sa.checkScanRef(ref); err != nil {
		return NilRef, nil, err
	}
	sa.stats.ReallocCalls++

	oldPayload := blockPayload(sa.data, ref)
	newRef, newPayload, err := sa.Alloc(size)
	if err != nil {
		return NilRef, nil, err
	}
	sa.stats.CopiedResizes++
	n := oldPayload
	if n > uint64(len(newPayload)) {
		n = uint64(len(newPayload))
	}
	copy(newPayload, sa.data[ref:ref+n])
	if err := sa.Free(ref); err != nil {
		return NilRef, nil, err
	}
	return newRef, newPayload, nil
}

// checkScanRef bounds-checks a reference. Scan blocks have no 16-byte
// payload floor, so only one aligned payload word is required.
func (sa *ScanAllocator) checkScanRef(ref Ref) error {
	if ref < HeaderSize || !format.Aligned8(ref) || ref+Alignment > sa.seg.Size() {
		return ErrBadRef
	}
	return nil
}

// Stats returns a copy of the allocator's counters.
func (sa *ScanAllocator) Stats() Stats {
	return sa.stats
}

// Validate walks the segment and reports whether every block is
// well-formed and the blocks tile the segment exactly.
func (sa *ScanAllocator) Validate() bool {
	var total uint64
	err := Walk(sa.seg, func(b Block) bool {
		total += HeaderSize + b.Payload
		return true
	})
	return err == nil && total == sa.seg.Size()
}

// Dump writes a human-readable listing of every block to w.
func (sa *ScanAllocator) Dump(w io.Writer) {
	DumpSegment(sa.seg, w)
}

// Compile-time interface check
var _ Allocator = (*ScanAllocator)(nil)
