package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_WordCodec(t *testing.T) {
	w := packWord(104, false)
	require.Equal(t, uint64(105), w, "used blocks store size+1")
	require.Equal(t, uint64(104), wordPayload(w))
	require.False(t, wordFree(w))

	w = packWord(104, true)
	require.Equal(t, uint64(104), w, "free blocks store the bare size")
	require.Equal(t, uint64(104), wordPayload(w))
	require.True(t, wordFree(w))

	// The tag lives in the low three bits; large sizes are unaffected.
	w = packWord(1<<30, false)
	require.Equal(t, uint64(1<<30), wordPayload(w))
	require.False(t, wordFree(w))
}

func Test_HeaderRoundTrip(t *testing.T) {
	data := make([]byte, 64)

	setHeaderWord(data, 8, packWord(24, false))
	require.Equal(t, uint64(24), blockPayload(data, 8))
	require.False(t, blockFree(data, 8))

	setHeaderWord(data, 8, headerWord(data, 8)-1) // flip to free
	require.True(t, blockFree(data, 8))
	require.Equal(t, uint64(24), blockPayload(data, 8))
}

func Test_NextAndLastBlock(t *testing.T) {
	// Two blocks tiling a 64-byte segment: [hdr+24][hdr+24].
	data := make([]byte, 64)
	setHeaderWord(data, 8, packWord(24, false))
	setHeaderWord(data, 40, packWord(16, true))

	require.Equal(t, Ref(40), nextBlock(data, 8))
	require.False(t, lastBlock(data, 8))

	require.Equal(t, NilRef, nextBlock(data, 40))
	require.True(t, lastBlock(data, 40))
}

func Test_RoundUp(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 16},  // floor
		{1, 16},  // floor
		{16, 16},
		{17, 24},
		{100, 104},
		{104, 104},
	}
	for _, c := range cases {
		require.Equal(t, c.want, roundUp(c.in), "roundUp(%d)", c.in)
	}
}

func Test_CheckRef(t *testing.T) {
	data := make([]byte, 64)

	require.NoError(t, checkRef(data, 8))
	require.NoError(t, checkRef(data, 48))

	require.ErrorIs(t, checkRef(data, 0), ErrBadRef)   // below first header
	require.ErrorIs(t, checkRef(data, 13), ErrBadRef)  // unaligned
	require.ErrorIs(t, checkRef(data, 56), ErrBadRef)  // no room for a payload
	require.ErrorIs(t, checkRef(data, 128), ErrBadRef) // past the end
}
