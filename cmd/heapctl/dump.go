package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/heap/alloc"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "List every block in a segment file",
		Long: `The dump command maps a segment file and walks its block layout,
printing each block's offset, header word, payload size and status.

Example:
  heapctl dump arena.heap
  heapctl dump arena.heap --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

type blockJSON struct {
	Ref     uint64 `json:"ref"`
	Header  uint64 `json:"header"`
	Payload uint64 `json:"payload"`
	Free    bool   `json:"free"`
}

func runDump(args []string) error {
	path := args[0]

	printVerbose("Opening segment: %s\n", path)

	seg, err := heap.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open segment: %w", err)
	}
	defer seg.Close()

	if jsonOut {
		var blocks []blockJSON
		err := alloc.Walk(seg, func(b alloc.Block) bool {
			blocks = append(blocks, blockJSON{
				Ref:     b.Ref,
				Header:  b.Word,
				Payload: b.Payload,
				Free:    b.Free,
			})
			return true
		})
		out := map[string]interface{}{
			"file":   path,
			"size":   seg.Size(),
			"blocks": blocks,
		}
		if err != nil {
			out["error"] = err.Error()
		}
		return printJSON(out)
	}

	alloc.DumpSegment(seg, os.Stdout)
	return nil
}
