package alloc

// Stats holds internal allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls   int // Total Alloc() calls
	FreeCalls    int // Total Free() calls
	ReallocCalls int // Total Realloc() calls (excluding degenerate forms)

	SplitCount    int // Number of block splits
	CoalesceCount int // Rightward coalesce operations

	InPlaceResizes int // Reallocs satisfied without moving the payload
	CopiedResizes  int // Reallocs that fell back to allocate-copy-free

	BytesAllocated uint64 // Total payload bytes handed out
	BytesFreed     uint64 // Total payload bytes returned
}
