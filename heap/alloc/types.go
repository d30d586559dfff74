package alloc

// Ref is a block reference - the byte offset of the block's payload from the
// segment start. The block's header word sits at ref-8.
type Ref = uint64

// NilRef is the null block reference. Payload offsets start at HeaderSize,
// so 0 is never a valid Ref.
const NilRef Ref = 0

const (
	// Alignment is the payload size granularity. Every payload size is a
	// multiple of Alignment, which keeps the low three header bits free for
	// the status tag.
	Alignment = 8

	// HeaderSize is the size of a block header: one 8-byte word.
	HeaderSize = 8

	// MinPayload is the smallest payload a block may have. Free blocks store
	// two 8-byte list links in their payload, so payloads can never shrink
	// below 16 bytes. Request rounding floors here.
	MinPayload = 16

	// MinSegmentSize is the smallest segment the ListAllocator accepts:
	// room for a header plus a link-capable payload.
	MinSegmentSize = 3 * Alignment

	// DefaultMaxRequest is the default cap on a single allocation request.
	DefaultMaxRequest = 1 << 30

	// splitSlack is the headroom beyond the request that the last physical
	// block must have before Alloc or Realloc splits it instead of
	// consuming it whole.
	splitSlack = 3 * Alignment
)

// Config carries tunables for an allocator instance.
type Config struct {
	// MaxRequest caps a single allocation request (after rounding).
	// Requests above it always fail with ErrRequestTooLarge.
	MaxRequest uint64
}

// DefaultConfig is used when a constructor receives a nil Config.
var DefaultConfig = Config{
	MaxRequest: DefaultMaxRequest,
}
