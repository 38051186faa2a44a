// Package testutil provides shared test infrastructure for the simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// GoldenDataset represents the structure of testdata/golden_run.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one simulation run with its expected end state.
type GoldenTestCase struct {
	Name          string                   `json:"name"`
	Stations      string                   `json:"stations"` // relative to testdata/
	Rides         string                   `json:"rides"`    // relative to testdata/
	Start         string                   `json:"start"`
	End           string                   `json:"end"`
	Ticks         int                      `json:"ticks"`
	ActiveRides   []int                    `json:"active_rides"`
	PendingEvents int                      `json:"pending_events"` // event-driven only
	PeakActive    int                      `json:"peak_active_rides"`
	StationsFinal map[string]GoldenStation `json:"stations_final"`
	Statistics    map[string]GoldenStat    `json:"statistics"`
}

// GoldenStation holds the expected final counters of one station.
type GoldenStation struct {
	NumBikes            int     `json:"num_bikes"`
	StartingRides       int     `json:"starting_rides"`
	EndingRides         int     `json:"ending_rides"`
	LowAvailabilityTime float64 `json:"low_availability_time"`
	LowUnoccupiedTime   float64 `json:"low_unoccupied_time"`
}

// GoldenStat is one expected statistics entry.
type GoldenStat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TestdataDir returns the repository's testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata")
}

// TestdataPath joins name onto TestdataDir.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(TestdataDir(t), name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "golden_run.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// MustParseTime parses a "2006-01-02 15:04" timestamp or fails the test.
func MustParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts
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
