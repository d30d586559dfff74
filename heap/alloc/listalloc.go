package alloc

import (
	"fmt"
	"io"
	"os"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// ListAllocator is the explicit free-list allocator. It satisfies requests
// by first-fit search over a LIFO free list, splits the last physical block
// when it has enough slack, and coalesces rightward on free and during
// in-place resize.
type ListAllocator struct {
	seg  *heap.Segment
	data []byte // seg.Bytes(); the segment never resizes

	// Head of the embedded doubly linked free list. NilRef when the whole
	// segment is allocated.
	freeHead Ref

	maxRequest uint64

	stats Stats
}

// NewList initializes the segment as a single free block and returns an
// allocator over it. Any previous contents are forgotten, so calling NewList
// again on the same segment resets it for reuse.
//
// Parameters:
//   - seg: the segment to manage
//   - cfg: tunables (use nil for DefaultConfig)
func NewList(seg *heap.Segment, cfg *Config) (*ListAllocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if seg.Size() < MinSegmentSize {
		return nil, ErrSegmentTooSmall
	}
	if !format.Aligned8(seg.Size()) {
		return nil, ErrSegmentUnaligned
	}

	la := &ListAllocator{
		seg:        seg,
		data:       seg.Bytes(),
		maxRequest: cfg.MaxRequest,
	}
	la.Reset()
	return la, nil
}

// OpenList attaches to a segment that already holds an initialized block
// layout (for example one persisted through a file-backed segment) and
// rebuilds the free list by scanning the headers in physical order. The
// rebuilt list order is the reverse of physical order, not the order frees
// originally happened in.
func OpenList(seg *heap.Segment, cfg *Config) (*ListAllocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if seg.Size() < MinSegmentSize {
		return nil, ErrSegmentTooSmall
	}

	la := &ListAllocator{
		seg:        seg,
		data:       seg.Bytes(),
		maxRequest: cfg.MaxRequest,
	}

	err := Walk(seg, func(b Block) bool {
		if b.Free {
			la.push(b.Ref)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return la, nil
}

// Reset re-establishes the initial layout: one free block spanning the
// whole segment, alone on the free list. Counters are zeroed.
func (la *ListAllocator) Reset() {
	first := Ref(HeaderSize)
	setHeaderWord(la.data, first, packWord(la.seg.Size()-HeaderSize, true))
	la.freeHead = NilRef
	la.push(first)
	la.stats = Stats{}
}

// Alloc allocates a block of at least size bytes. The request is rounded up
// to the alignment with a 16-byte floor. Fails with ErrNoSpace when no free
// block fits and with ErrRequestTooLarge when the rounded request exceeds
// the configured cap.
func (la *ListAllocator) Alloc(size uint64) (Ref, []byte, error) {
	la.stats.AllocCalls++

	request := roundUp(size)
	ref := la.firstFit(request)
	if ref == NilRef {
		if logAlloc {
			blocks, bytes := la.freeSummary()
			fmt.Fprintf(os.Stderr, "[ALLOC] no fit: request=%d, free: %d blocks, %d bytes\n",
				request, blocks, bytes)
		}
		return NilRef, nil, ErrNoSpace
	}
	if request > la.maxRequest {
		return NilRef, nil, ErrRequestTooLarge
	}

	payload := blockPayload(la.data, ref)

	// Splitting is reserved for the last physical block: carving the tail
	// preserves the remaining heap for future allocations instead of
	// exhausting it in one shot. Interior blocks are consumed whole.
	if lastBlock(la.data, ref) && payload >= request+splitSlack {
		la.split(ref, request)
		la.stats.BytesAllocated += request
		return ref, la.data[ref : ref+request], nil
	}

	setHeaderWord(la.data, ref, headerWord(la.data, ref)+1) // flip tag to used
	la.unlink(ref)
	la.stats.BytesAllocated += payload
	return ref, la.data[ref : ref+payload], nil
}

// split carves the block at ref into a used block of exactly request
// payload bytes followed by a new free block covering the remainder. The
// caller guarantees payload >= request + HeaderSize + MinPayload. The new
// trailing block joins the free list and is immediately offered a rightward
// coalesce.
func (la *ListAllocator) split(ref Ref, request uint64) {
	la.stats.SplitCount++

	wasFree := blockFree(la.data, ref)
	payload := blockPayload(la.data, ref)

	setHeaderWord(la.data, ref, packWord(request, false))

	tail := ref + request + HeaderSize
	setHeaderWord(la.data, tail, packWord(payload-request-HeaderSize, true))

	if wasFree {
		la.unlink(ref)
	}
	la.push(tail)
	la.coalesceRight(tail)
}

// coalesceRight merges the block at ref with its physical successor when
// that successor is free, absorbing the successor's header and payload.
// ref itself need not be on the free list; its status tag is preserved.
// Returns whether a merge happened.
func (la *ListAllocator) coalesceRight(ref Ref) bool {
	next := nextBlock(la.data, ref)
	if next == NilRef || !blockFree(la.data, next) {
		return false
	}

	la.stats.CoalesceCount++
	la.unlink(next)
	added := blockPayload(la.data, next) + HeaderSize
	setHeaderWord(la.data, ref, headerWord(la.data, ref)+added)
	return true
}

// coalesceRightUntil keeps merging free right-neighbors into ref until its
// payload reaches target or the successor is not free.
func (la *ListAllocator) coalesceRightUntil(ref Ref, target uint64) {
	for blockPayload(la.data, ref) < target {
		if !la.coalesceRight(ref) {
			return
		}
	}
}

// Free marks the block free, pushes it onto the free list and coalesces
// rightward once. Free(NilRef) is a no-op. Freeing a reference that was
// never returned by Alloc is undefined beyond the bounds check.
func (la *ListAllocator) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}
	if err := checkRef(la.data, ref); err != nil {
		return err
	}
	la.stats.FreeCalls++
	la.stats.BytesFreed += blockPayload(la.data, ref)

	setHeaderWord(la.data, ref, headerWord(la.data, ref)-1) // flip tag to free
	la.push(ref)
	la.coalesceRight(ref)
	return nil
}

// Realloc resizes the block at ref, in place when rightward coalescing can
// make it fit, otherwise by allocate-copy-free. Realloc(NilRef, n) behaves
// as Alloc(n); Realloc(ref, 0) behaves as Free(ref) and returns NilRef.
func (la *ListAllocator) Realloc(ref Ref, size uint64) (Ref, []byte, error) {
	if ref == NilRef {
		return la.Alloc(size)
	}
	if size == 0 {
		return NilRef, nil, la.Free(ref)
	}
	if err := checkRef(la.data, ref); err != nil {
		return NilRef, nil, err
	}
	la.stats.ReallocCalls++

	request := roundUp(size)
	oldPayload := blockPayload(la.data, ref)

	// Greedily absorb free right-neighbors until the block fits the
	// request or the successor is occupied.
	la.coalesceRightUntil(ref, request)

	if payload := blockPayload(la.data, ref); payload >= request {
		la.stats.InPlaceResizes++

		switch {
		case lastBlock(la.data, ref) && request+splitSlack < payload:
			// Last block on the heap: give the tail back rather than
			// keeping the whole span used. The new block borders the
			// segment end, so there is nothing to coalesce.
			tail := ref + request + HeaderSize
			setHeaderWord(la.data, tail, packWord(payload-request-HeaderSize, true))
			setHeaderWord(la.data, ref, packWord(request, false))
			la.push(tail)
		case !lastBlock(la.data, ref) && oldPayload >= request+splitSlack:
			la.split(ref, request)
		}

		final := blockPayload(la.data, ref)
		return ref, la.data[ref : ref+final], nil
	}

	// Could not grow in place: relocate.
	newRef, newPayload, err := la.Alloc(size)
	if err != nil {
		if debugAlloc {
			debugLogf("Realloc(%d→%d): no replacement block", oldPayload, size)
		}
		return NilRef, nil, err
	}
	la.stats.CopiedResizes++
	copy(newPayload, la.data[ref:ref+oldPayload])
	if err := la.Free(ref); err != nil {
		return NilRef, nil, err
	}
	return newRef, newPayload, nil
}

// Stats returns a copy of the allocator's counters.
func (la *ListAllocator) Stats() Stats {
	return la.stats
}

// Segment returns the managed segment.
func (la *ListAllocator) Segment() *heap.Segment {
	return la.seg
}

// Validate walks the whole segment and the free list and reports whether
// the structural invariants hold: every block boundary inside the segment,
// every payload aligned, the blocks tiling the segment exactly, and every
// listed block free and aligned. Read-only.
func (la *ListAllocator) Validate() bool {
	var total uint64
	err := Walk(la.seg, func(b Block) bool {
		total += HeaderSize + b.Payload
		return true
	})
	if err != nil || total != la.seg.Size() {
		return false
	}

	// A well-formed list can never hold more blocks than fit the segment;
	// anything past that bound is a cycle.
	limit := int(la.seg.Size()/(HeaderSize+MinPayload)) + 1
	seen := 0
	for ref := la.freeHead; ref != NilRef; ref = la.nextFree(ref) {
		seen++
		if seen > limit {
			return false
		}
		if checkRef(la.data, ref) != nil {
			return false
		}
		if !blockFree(la.data, ref) || !format.Aligned8(blockPayload(la.data, ref)) {
			return false
		}
	}
	return true
}

// Dump writes a human-readable listing of every block to w.
func (la *ListAllocator) Dump(w io.Writer) {
	DumpSegment(la.seg, w)
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(msg string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+msg+"\n", args...)
	}
}

// Compile-time interface check
var _ Allocator = (*ListAllocator)(nil)
