// Package testutil provides shared test infrastructure for the scheduling
// simulator: the golden dataset of expected per-policy results for the
// built-in scenarios, and assertion helpers used across sim/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_metrics.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is the expected outcome of one policy on one built-in scenario.
type GoldenTestCase struct {
	Scenario  string          `json:"scenario"`
	Policy    string          `json:"policy"`
	Quantum   int64           `json:"quantum"`
	Metrics   GoldenMetrics   `json:"metrics"`
	Processes []GoldenProcess `json:"processes"`
}

// GoldenMetrics represents the expected metrics from a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	Completed       int   `json:"completed"`
	ContextSwitches int   `json:"context_switches"`
	TotalTime       int64 `json:"total_time"`
	BusyTime        int64 `json:"busy_time"`
	IdleTime        int64 `json:"idle_time"`
	Events          int   `json:"events"`

	// Averages, compared with a relative tolerance
	AvgResponseTime   float64 `json:"avg_response_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time"`
	AvgWaitingTime    float64 `json:"avg_waiting_time"`

	EmergencyResponseMin float64 `json:"emergency_response_min"`
	EmergencyResponseMax float64 `json:"emergency_response_max"`

	CPUUtilization float64 `json:"cpu_utilization"`
	Throughput     float64 `json:"throughput"`
}

// GoldenProcess is the expected first-dispatch and completion tick of one process.
type GoldenProcess struct {
	ID         int   `json:"id"`
	Start      int64 `json:"start"`
	Completion int64 `json:"completion"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_metrics.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// TestdataPath returns the absolute path of a file under the repo root testdata/.
func TestdataPath(t *testing.T, elem ...string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	parts := append([]string{filepath.Dir(thisFile), "..", "..", "..", "testdata"}, elem...)
	return filepath.Join(parts...)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
