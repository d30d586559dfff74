package alloc

import "github.com/heapkit/heapkit/internal/format"

// Free-list management.
//
// The free list is doubly linked and unordered relative to physical layout.
// Its link words live in the first 16 bytes of a free block's payload:
// previous-free at ref, next-free at ref+8. Links hold Refs and NilRef
// terminates the list; a block's links are meaningful only while its header
// tag says free. Insertion is LIFO at the head, so it is O(1) and needs no
// scan.

func (la *ListAllocator) prevFree(ref Ref) Ref {
	return format.ReadU64(la.data, int(ref))
}

func (la *ListAllocator) nextFree(ref Ref) Ref {
	return format.ReadU64(la.data, int(ref+Alignment))
}

func (la *ListAllocator) setPrevFree(ref, prev Ref) {
	format.PutU64(la.data, int(ref), prev)
}

func (la *ListAllocator) setNextFree(ref, next Ref) {
	format.PutU64(la.data, int(ref+Alignment), next)
}

// push inserts a free block at the head of the list.
func (la *ListAllocator) push(ref Ref) {
	if la.freeHead != NilRef {
		la.setPrevFree(la.freeHead, ref)
	}
	la.setPrevFree(ref, NilRef)
	la.setNextFree(ref, la.freeHead)
	la.freeHead = ref
}

// unlink removes a block from wherever it sits in the list: head, tail,
// middle, or sole element. The block's payload bytes are left as-is.
func (la *ListAllocator) unlink(ref Ref) {
	prev := la.prevFree(ref)
	next := la.nextFree(ref)

	if prev == NilRef {
		la.freeHead = next
		if next != NilRef {
			la.setPrevFree(next, NilRef)
		}
		return
	}

	la.setNextFree(prev, next)
	if next != NilRef {
		la.setPrevFree(next, prev)
	}
}

// firstFit scans from the head and returns the first free block whose
// payload can hold request, or NilRef if none can.
func (la *ListAllocator) firstFit(request uint64) Ref {
	for ref := la.freeHead; ref != NilRef; ref = la.nextFree(ref) {
		if blockFree(la.data, ref) && blockPayload(la.data, ref) >= request {
			return ref
		}
	}
	return NilRef
}

// freeSummary walks the list and returns the block count and total free
// payload bytes. Diagnostic only.
func (la *ListAllocator) freeSummary() (blocks int, bytes uint64) {
	for ref := la.freeHead; ref != NilRef; ref = la.nextFree(ref) {
		blocks++
		bytes += blockPayload(la.data, ref)
	}
	return blocks, bytes
}

// FreeBlocks returns the number of blocks currently on the free list.
func (la *ListAllocator) FreeBlocks() int {
	n, _ := la.freeSummary()
	return n
}

// FreeBytes returns the total payload bytes currently on the free list.
func (la *ListAllocator) FreeBytes() uint64 {
	_, b := la.freeSummary()
	return b
}
