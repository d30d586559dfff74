package alloc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heapkit/heapkit/heap"
)

func Test_WalkVisitsPhysicalOrder(t *testing.T) {
	la, err := NewList(heap.New(1024), nil)
	require.NoError(t, err)

	_, _, err = la.Alloc(32)
	require.NoError(t, err)
	b, _, err := la.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, la.Free(b))

	var got []Block
	require.NoError(t, Walk(la.Segment(), func(blk Block) bool {
		got = append(got, blk)
		return true
	}))

	require.Len(t, got, 2, "freed b coalesced with the remainder")
	require.Equal(t, Ref(8), got[0].Ref)
	require.False(t, got[0].Free)
	require.Equal(t, Ref(48), got[1].Ref)
	require.True(t, got[1].Free)
	require.Equal(t, uint64(976), got[1].Payload)
}

func Test_WalkStopsEarly(t *testing.T) {
	la, err := NewList(heap.New(1024), nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, _, allocErr := la.Alloc(32)
		require.NoError(t, allocErr)
	}

	visited := 0
	require.NoError(t, Walk(la.Segment(), func(Block) bool {
		visited++
		return visited < 2
	}))
	require.Equal(t, 2, visited)
}

func Test_WalkDetectsCorruption(t *testing.T) {
	t.Run("invalid status tag", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)

		setHeaderWord(la.data, 8, packWord(248, true)|0x2) // tag 2: neither free nor used
		require.ErrorIs(t, Walk(la.seg, func(Block) bool { return true }), ErrCorruptSegment)
		require.False(t, la.Validate())
	})

	t.Run("block overruns segment", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)

		setHeaderWord(la.data, 8, packWord(4096, true))
		require.ErrorIs(t, Walk(la.seg, func(Block) bool { return true }), ErrCorruptSegment)
		require.False(t, la.Validate())
	})

	t.Run("blocks stop short of the end", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)

		// Shrink the sole block so the tiling no longer reaches 256.
		setHeaderWord(la.data, 8, packWord(240, true))
		require.False(t, la.Validate())
	})
}

func Test_ValidateChecksFreeList(t *testing.T) {
	t.Run("listed block not free", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)
		require.True(t, la.Validate())

		// Flip the listed block to used behind the list's back.
		setHeaderWord(la.data, 8, headerWord(la.data, 8)+1)
		require.False(t, la.Validate())
	})

	t.Run("link cycle", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)

		la.setNextFree(la.freeHead, la.freeHead)
		require.False(t, la.Validate())
	})

	t.Run("link out of bounds", func(t *testing.T) {
		la, err := NewList(heap.New(256), nil)
		require.NoError(t, err)

		la.setNextFree(la.freeHead, 8192)
		require.False(t, la.Validate())
	})
}

func Test_DumpFormat(t *testing.T) {
	la, err := NewList(heap.New(1024), nil)
	require.NoError(t, err)
	_, _, err = la.Alloc(100)
	require.NoError(t, err)

	var out bytes.Buffer
	la.Dump(&out)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, []string{
		"segment: 1024 bytes",
		"block @0x000008 header=0x69 payload=104 used",
		"block @0x000078 header=0x388 payload=904 free",
	}, lines)
}

func Test_DumpReportsCorruption(t *testing.T) {
	la, err := NewList(heap.New(256), nil)
	require.NoError(t, err)
	setHeaderWord(la.data, 8, packWord(4096, true))

	var out bytes.Buffer
	la.Dump(&out)
	require.Contains(t, out.String(), "walk aborted")
}
