package alloc

import (
	"fmt"
	"io"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/internal/format"
)

// Block describes one physical block during a segment walk.
type Block struct {
	Ref     Ref    // payload offset
	Word    uint64 // raw header word
	Payload uint64 // decoded payload size
	Free    bool   // decoded status tag
}

// Walk visits every block in physical order, advancing header-plus-payload
// from the segment start, and stops early when fn returns false. It returns
// ErrCorruptSegment when a header carries a status tag outside the codec
// (only 0 and 1 are valid), a zero payload, or names a block reaching past
// the segment end. Read-only.
func Walk(seg *heap.Segment, fn func(Block) bool) error {
	data := seg.Bytes()
	size := uint64(len(data))

	var off uint64
	for off != size {
		if off+HeaderSize > size {
			return ErrCorruptSegment
		}
		word := format.ReadU64(data, int(off))
		if word&statusMask > 1 {
			return ErrCorruptSegment
		}
		payload := wordPayload(word)
		if payload == 0 {
			return ErrCorruptSegment
		}
		end := off + HeaderSize + payload
		if end > size {
			return ErrCorruptSegment
		}
		cont := fn(Block{
			Ref:     off + HeaderSize,
			Word:    word,
			Payload: payload,
			Free:    wordFree(word),
		})
		if !cont {
			return nil
		}
		off = end
	}
	return nil
}

// DumpSegment writes a human-readable listing of every block to w:
// payload offset, raw header word, decoded payload size and status.
// Debugging aid only.
func DumpSegment(seg *heap.Segment, w io.Writer) {
	fmt.Fprintf(w, "segment: %d bytes\n", seg.Size())
	err := Walk(seg, func(b Block) bool {
		status := "used"
		if b.Free {
			status = "free"
		}
		fmt.Fprintf(w, "block @0x%06x header=0x%x payload=%d %s\n",
			b.Ref, b.Word, b.Payload, status)
		return true
	})
	if err != nil {
		fmt.Fprintf(w, "walk aborted: %v\n", err)
	}
}
