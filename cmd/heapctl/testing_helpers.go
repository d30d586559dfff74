package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/heapkit/heapkit/heap"
	"github.com/heapkit/heapkit/heap/alloc"
)

// makeSegment creates a file-backed segment with a few blocks laid out:
// two used allocations and one freed in between.
func makeSegment(t *testing.T, size uint64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.heap")

	seg, err := heap.Create(path, size)
	if err != nil {
		t.Fatalf("failed to create segment: %v", err)
	}
	defer seg.Close()

	la, err := alloc.NewList(seg, nil)
	if err != nil {
		t.Fatalf("failed to initialize heap: %v", err)
	}
	if _, _, err := la.Alloc(32); err != nil {
		t.Fatalf("alloc: %v", err)
	}
	b, _, err := la.Alloc(64)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if _, _, err := la.Alloc(32); err != nil {
		t.Fatalf("alloc: %v", err)
	}
	if err := la.Free(b); err != nil {
		t.Fatalf("free: %v", err)
	}
	if err := seg.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := sonic.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
