package main

import (
	"testing"
)

func TestDumpCommand(t *testing.T) {
	path := makeSegment(t, 1024)

	tests := []struct {
		name        string
		json        bool
		wantContain []string
	}{
		{
			name: "dump text",
			json: false,
			wantContain: []string{
				"segment: 1024 bytes",
				"block @0x000008",
				"payload=64 free",
				"used",
			},
		},
		{
			name:        "dump json",
			json:        true,
			wantContain: []string{`"blocks"`, `"payload"`, `"free"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOut = tt.json
			defer func() { jsonOut = false }()

			output, err := captureOutput(t, func() error {
				return runDump([]string{path})
			})
			if err != nil {
				t.Fatalf("runDump: %v", err)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDumpMissingFile(t *testing.T) {
	if _, err := captureOutput(t, func() error {
		return runDump([]string{"/nonexistent/arena.heap"})
	}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInfoCommand(t *testing.T) {
	path := makeSegment(t, 1024)

	t.Run("text", func(t *testing.T) {
		output, err := captureOutput(t, func() error {
			return runInfo([]string{path})
		})
		if err != nil {
			t.Fatalf("runInfo: %v", err)
		}
		assertContains(t, output, []string{
			"Size: 1024 bytes",
			"Used: 2 blocks",
			"Free: 2 blocks",
			"Valid: yes",
		})
	})

	t.Run("json", func(t *testing.T) {
		jsonOut = true
		defer func() { jsonOut = false }()

		output, err := captureOutput(t, func() error {
			return runInfo([]string{path})
		})
		if err != nil {
			t.Fatalf("runInfo: %v", err)
		}
		assertJSON(t, output)
		assertContains(t, output, []string{`"valid": true`, `"used_blocks": 2`})
	})
}

func TestInitCommand(t *testing.T) {
	path := t.TempDir() + "/new.heap"

	output, err := captureOutput(t, func() error {
		return runInit([]string{path, "4096"})
	})
	if err != nil {
		t.Fatalf("runInit: %v", err)
	}
	assertContains(t, output, []string{"4096 bytes", "4088 free"})

	if _, err := captureOutput(t, func() error {
		return runInit([]string{path, "not-a-number"})
	}); err == nil {
		t.Fatal("expected error for bad size")
	}
}
