package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrRequestTooLarge indicates the rounded request exceeds the
	// configured maximum request size.
	ErrRequestTooLarge = errors.New("alloc: request exceeds maximum size")

	// ErrBadRef indicates an invalid or out-of-bounds block reference.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrSegmentTooSmall indicates the segment cannot host even one block.
	ErrSegmentTooSmall = errors.New("alloc: segment below minimum viable size")

	// ErrSegmentUnaligned indicates the segment size is not a multiple of
	// the 8-byte alignment unit.
	ErrSegmentUnaligned = errors.New("alloc: segment size must be 8-byte aligned")

	// ErrCorruptSegment indicates a segment walk hit a header that does not
	// describe a well-formed block.
	ErrCorruptSegment = errors.New("alloc: corrupt segment")
)
