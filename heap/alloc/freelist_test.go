package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/heap"
)

// Test_PushUnlinkTopologies drives the list through the head, middle, tail
// and sole-element unlink cases via the public operations.
func Test_PushUnlinkTopologies(t *testing.T) {
	la, err := NewList(heap.New(1024), nil)
	require.NoError(t, err)

	// Sole element: the initial block.
	require.Equal(t, Ref(8), la.freeHead)
	require.Equal(t, NilRef, la.prevFree(8))
	require.Equal(t, NilRef, la.nextFree(8))

	// Carve four 32-byte blocks off the front; each split replaces the
	// remainder at the head.
	refs := make([]Ref, 4)
	for i := range refs {
		ref, _, allocErr := la.Alloc(32)
		require.NoError(t, allocErr)
		refs[i] = ref
	}
	require.Equal(t, []Ref{8, 48, 88, 128}, refs, "splits advance front to back")
	require.Equal(t, 1, la.FreeBlocks(), "only the tail remainder is free")

	// LIFO inserts: freeing A then C puts C at the head.
	// List: [88, 8, 168] (168 is the tail remainder).
	require.NoError(t, la.Free(refs[0]))
	require.NoError(t, la.Free(refs[2]))
	require.Equal(t, refs[2], la.freeHead)
	require.Equal(t, refs[0], la.nextFree(refs[2]))
	require.Equal(t, refs[2], la.prevFree(refs[0]))
	require.Equal(t, 3, la.FreeBlocks())

	// Head unlink: first fit takes the head of the list.
	ref, buf, err := la.Alloc(24)
	require.NoError(t, err)
	require.Equal(t, refs[2], ref)
	require.Len(t, buf, 32, "interior blocks are consumed whole")
	require.Equal(t, 2, la.FreeBlocks())

	// Tail unlink: only the 856-byte remainder at 168 fits 600. The split
	// pushes the new remainder (at 776) to the head: [776, 8].
	ref, _, err = la.Alloc(600)
	require.NoError(t, err)
	require.Equal(t, Ref(168), ref)
	require.Equal(t, 2, la.FreeBlocks())

	// Middle unlink: refree 88 ([88, 776, 8]), then allocate 200, which
	// skips 88 and takes 776 out of the middle of the list.
	require.NoError(t, la.Free(refs[2]))
	require.Equal(t, 3, la.FreeBlocks())
	ref, _, err = la.Alloc(200)
	require.NoError(t, err)
	require.Equal(t, Ref(776), ref)
	require.Equal(t, 3, la.FreeBlocks(), "split pushed the 40-byte tail back")

	require.True(t, la.Validate())
}

func Test_SoleElementUnlink(t *testing.T) {
	la, err := NewList(heap.New(64), nil)
	require.NoError(t, err)
	require.Equal(t, 1, la.FreeBlocks())

	// 56-byte payload with a 40-byte request: not enough slack to split,
	// so the sole free block is consumed whole and the list empties.
	ref, buf, err := la.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, Ref(8), ref)
	require.Len(t, buf, 56)
	require.Equal(t, NilRef, la.freeHead)
	require.Equal(t, 0, la.FreeBlocks())

	// Exhausted segment: nothing to satisfy even a minimal request.
	_, _, err = la.Alloc(1)
	require.ErrorIs(t, err, ErrNoSpace)

	require.NoError(t, la.Free(ref))
	require.Equal(t, ref, la.freeHead)
	require.Equal(t, uint64(56), la.FreeBytes())
	require.True(t, la.Validate())
}

// Test_FirstFitOrder pins the search policy: first fit in list order (LIFO
// insertion order), not best fit and not address order.
func Test_FirstFitOrder(t *testing.T) {
	la, err := NewList(heap.New(2048), nil)
	require.NoError(t, err)

	a, _, err := la.Alloc(64)
	require.NoError(t, err)
	b, _, err := la.Alloc(256)
	require.NoError(t, err)
	_, _, err = la.Alloc(64) // keeps b's right neighbor used
	require.NoError(t, err)

	require.NoError(t, la.Free(a))
	require.NoError(t, la.Free(b)) // list head: b, then a, then remainder

	// Both b (256) and a (64) fit a 48-byte request; list order wins even
	// though a is the tighter fit and sits at a lower address.
	ref, buf, err := la.Alloc(48)
	require.NoError(t, err)
	require.Equal(t, b, ref)
	require.Len(t, buf, 256, "interior blocks are consumed whole")

	require.True(t, la.Validate())
}
