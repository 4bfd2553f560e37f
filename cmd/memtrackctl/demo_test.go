package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := []struct {
		name        string
		mmap        bool
		budget      int
		leak        bool
		wantJSON    bool
		wantContain []string
	}{
		{
			name: "default workload leaks one block",
			leak: true,
			wantContain: []string{
				"=== MEMORY STATISTICS ===",
				"=== CURRENT ALLOCATIONS ===",
				"=== MEMORY LEAK REPORT ===",
				"TOTAL LEAKS: 1 allocations, 400 bytes",
				"demo.go",
			},
		},
		{
			name: "clean workload reports no leaks",
			leak: false,
			wantContain: []string{
				"No active allocations",
				"No memory leaks detected!",
				"0 potential leak(s)",
			},
		},
		{
			name:   "budget large enough for the workload",
			leak:   false,
			budget: 1 << 20,
			wantContain: []string{
				"No memory leaks detected!",
			},
		},
		{
			name:     "json stats output",
			leak:     true,
			wantJSON: true,
			wantContain: []string{
				`"allocation_calls"`,
				`"potential_leaks"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flags
			quiet = false
			verbose = false
			jsonOut = tt.wantJSON
			demoMmap = tt.mmap
			demoBuckets = 0
			demoBudget = tt.budget
			demoLeaks = tt.leak

			output, err := captureOutput(t, runDemo)
			if err != nil {
				t.Fatalf("runDemo() error = %v\nOutput: %s", err, output)
			}

			if tt.wantJSON {
				var st map[string]any
				if err := json.Unmarshal([]byte(output), &st); err != nil {
					t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
				}
			}

			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDemoCommand_BudgetTooSmall(t *testing.T) {
	quiet = true
	jsonOut = false
	demoMmap = false
	demoBuckets = 0
	demoBudget = 100 // first malloc needs 400 bytes
	demoLeaks = false

	_, err := captureOutput(t, runDemo)
	if err == nil || !strings.Contains(err.Error(), "malloc failed") {
		t.Fatalf("expected malloc failure, got %v", err)
	}
}
