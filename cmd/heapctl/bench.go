package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/heap/alloc"
)

var (
	benchOps     int
	benchMaxSize int
	benchSeed    int64
	benchSegSize uint64
	benchFile    string
	benchScan    bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 100000, "Number of operations to run")
	cmd.Flags().IntVar(&benchMaxSize, "max-size", 512, "Largest allocation request in bytes")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Workload seed")
	cmd.Flags().Uint64Var(&benchSegSize, "segment-size", 1<<20, "In-memory segment size in bytes")
	cmd.Flags().StringVar(&benchFile, "file", "", "Run against a file-backed segment instead of memory")
	cmd.Flags().BoolVar(&benchScan, "scan", false, "Use the header-scan baseline allocator")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive a randomized allocation workload",
		Long: `The bench command runs a seeded mix of alloc, free, and realloc
operations against a segment and reports the allocator's counters and
throughput. By default it uses an in-memory segment and the free-list
allocator; --scan switches to the header-scan baseline for comparison.

Example:
  heapctl bench --ops 500000
  heapctl bench --file arena.heap --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

func runBench() error {
	var seg *heap.Segment
	if benchFile != "" {
		var err error
		seg, err = heap.Open(benchFile)
		if err != nil {
			return fmt.Errorf("failed to open segment: %w", err)
		}
		defer seg.Close()
	} else {
		seg = heap.New(benchSegSize)
	}

	var a alloc.Allocator
	var err error
	if benchScan {
		a, err = alloc.NewScan(seg)
	} else {
		a, err = alloc.NewList(seg, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize allocator: %w", err)
	}

	printVerbose("Running %d ops, seed %d\n", benchOps, benchSeed)

	faker := gofakeit.New(benchSeed)
	var live []alloc.Ref
	var noSpace int

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		switch roll := faker.Number(0, 99); {
		case roll < 55 || len(live) == 0:
			ref, _, allocErr := a.Alloc(uint64(faker.Number(1, benchMaxSize)))
			if errors.Is(allocErr, alloc.ErrNoSpace) {
				noSpace++
				continue
			}
			if allocErr != nil {
				return allocErr
			}
			live = append(live, ref)
		case roll < 85:
			j := faker.Number(0, len(live)-1)
			if err := a.Free(live[j]); err != nil {
				return err
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		default:
			j := faker.Number(0, len(live)-1)
			ref, _, reErr := a.Realloc(live[j], uint64(faker.Number(1, benchMaxSize)))
			if errors.Is(reErr, alloc.ErrNoSpace) {
				noSpace++
				continue
			}
			if reErr != nil {
				return reErr
			}
			live[j] = ref
		}
	}
	elapsed := time.Since(start)

	if !a.Validate() {
		return fmt.Errorf("heap invalid after workload")
	}

	stats := allocStats(a)
	opsPerSec := float64(benchOps) / elapsed.Seconds()

	if jsonOut {
		return printJSON(map[string]interface{}{
			"ops":         benchOps,
			"seed":        benchSeed,
			"elapsed_ms":  elapsed.Milliseconds(),
			"ops_per_sec": opsPerSec,
			"no_space":    noSpace,
			"live_blocks": len(live),
			"stats":       stats,
		})
	}

	printInfo("\nWorkload: %d ops in %s (%.0f ops/s)\n", benchOps, elapsed, opsPerSec)
	printInfo("  Allocs:    %d (%d bytes)\n", stats.AllocCalls, stats.BytesAllocated)
	printInfo("  Frees:     %d (%d bytes)\n", stats.FreeCalls, stats.BytesFreed)
	printInfo("  Reallocs:  %d (%d in place, %d copied)\n",
		stats.ReallocCalls, stats.InPlaceResizes, stats.CopiedResizes)
	printInfo("  Splits:    %d\n", stats.SplitCount)
	printInfo("  Coalesces: %d\n", stats.CoalesceCount)
	printInfo("  No space:  %d\n", noSpace)
	printInfo("  Live:      %d blocks\n", len(live))
	return nil
}

func allocStats(a alloc.Allocator) alloc.Stats {
	switch impl := a.(type) {
	case *alloc.ListAllocator:
		return impl.Stats()
	case *alloc.ScanAllocator:
		return impl.Stats()
	}
	return alloc.Stats{}
}
