package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/heap/alloc"
)

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <file> <size>",
		Short: "Create a segment file and lay out an empty heap",
		Long: `The init command creates a file of the given size, maps it, and
initializes it as a single free block ready for the free-list allocator.
Size is in bytes and must be a multiple of 8 and at least 24.

Example:
  heapctl init arena.heap 1048576
  heapctl init arena.heap 4096 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	return cmd
}

func runInit(args []string) error {
	path := args[0]
	size, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[1], err)
	}

	printVerbose("Creating segment: %s (%d bytes)\n", path, size)

	seg, err := heap.Create(path, size)
	if err != nil {
		return fmt.Errorf("failed to create segment: %w", err)
	}
	defer seg.Close()

	la, err := alloc.NewList(seg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}
	if err := seg.Sync(); err != nil {
		return fmt.Errorf("failed to sync segment: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":       path,
			"size":       size,
			"free_bytes": la.FreeBytes(),
		})
	}

	printInfo("Initialized %s: %d bytes, %d free\n", path, size, la.FreeBytes())
	return nil
}
