package format

// Alignment utilities for the segment layout.
// Every block payload must be a multiple of the 8-byte word size so the
// low three bits of a header word stay free for the status tag.

const (
	// WordSize is the alignment unit and the size of a block header.
	WordSize = 8

	wordMask = WordSize - 1
)

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n uint64) uint64 {
	return (n + wordMask) &^ wordMask
}

// Aligned8 reports whether n is a multiple of 8.
func Aligned8(n uint64) bool {
	return n&wordMask == 0
}
