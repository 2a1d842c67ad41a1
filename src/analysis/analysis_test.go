package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/vlad777442/adios2-transmission/src/types"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// helper building a table from throughput MB/s values; the other columns are
// derived so cross-column sums stay meaningful.
func tableFromMBps(vals ...float64) []types.StepMeasurement {
	rows := make([]types.StepMeasurement, len(vals))
	for i, v := range vals {
		rows[i] = types.StepMeasurement{
			Step:           i + 1,
			SizeMB:         v,
			TimeSec:        1,
			ThroughputMBps: v,
			ThroughputMbps: v * 8,
		}
	}
	return rows
}

func TestSummarizeMatchesDirectRecomputation(t *testing.T) {
	rows := tableFromMBps(10, 20, 30, 40)
	s := Summarize(rows)
	if s.Steps != 4 {
		t.Fatalf("steps: got %d want 4", s.Steps)
	}
	if !almostEqual(s.TotalSizeMB, 100) {
		t.Fatalf("total size: got %v want 100", s.TotalSizeMB)
	}
	if !almostEqual(s.TotalTimeSec, 4) {
		t.Fatalf("total time: got %v want 4", s.TotalTimeSec)
	}
	if !almostEqual(s.MBps.Mean, 25) {
		t.Fatalf("mean: got %v want 25", s.MBps.Mean)
	}
	// even-length median is the mean of the two middle values
	if !almostEqual(s.MBps.Median, 25) {
		t.Fatalf("median: got %v want 25", s.MBps.Median)
	}
	if !almostEqual(s.MBps.Min, 10) || !almostEqual(s.MBps.Max, 40) {
		t.Fatalf("min/max: got %v/%v want 10/40", s.MBps.Min, s.MBps.Max)
	}
	// sample standard deviation, N-1 denominator: sqrt(500/3)
	want := math.Sqrt(500.0 / 3.0)
	if !almostEqual(s.MBps.StdDev, want) {
		t.Fatalf("stddev: got %v want %v", s.MBps.StdDev, want)
	}
	if !almostEqual(s.Mbps.Mean, 200) {
		t.Fatalf("mbps mean: got %v want 200", s.Mbps.Mean)
	}
}

func TestSummarizeOddMedian(t *testing.T) {
	s := Summarize(tableFromMBps(30, 10, 20))
	if !almostEqual(s.MBps.Median, 20) {
		t.Fatalf("median: got %v want 20", s.MBps.Median)
	}
}

func TestSummarizeAllEqual(t *testing.T) {
	s := Summarize(tableFromMBps(12.5, 12.5, 12.5, 12.5, 12.5))
	if !almostEqual(s.MBps.Mean, 12.5) {
		t.Fatalf("mean: got %v want 12.5", s.MBps.Mean)
	}
	if s.MBps.StdDev != 0 {
		t.Fatalf("stddev of constant column: got %v want 0", s.MBps.StdDev)
	}
	if !almostEqual(s.MBps.Median, 12.5) {
		t.Fatalf("median: got %v want 12.5", s.MBps.Median)
	}
}

func TestSummarizeSingleRow(t *testing.T) {
	s := Summarize(tableFromMBps(42))
	if s.Steps != 1 || !almostEqual(s.MBps.Mean, 42) || s.MBps.StdDev != 0 {
		t.Fatalf("single-row summary wrong: %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Steps != 0 || s.TotalSizeMB != 0 || s.MBps.Mean != 0 {
		t.Fatalf("empty summary not zero: %+v", s)
	}
	var sb strings.Builder
	WriteReport(&sb, s) // must not panic
	if !strings.Contains(sb.String(), "Total steps: 0") {
		t.Fatalf("report missing zero row count:\n%s", sb.String())
	}
}

func TestWriteReportEndToEnd(t *testing.T) {
	rows := []types.StepMeasurement{
		{Step: 1, SizeMB: 10, TimeSec: 1.0, ThroughputMBps: 10.0, ThroughputMbps: 80.0},
		{Step: 2, SizeMB: 20, TimeSec: 2.0, ThroughputMBps: 10.0, ThroughputMbps: 80.0},
	}
	var sb strings.Builder
	WriteReport(&sb, Summarize(rows))
	out := sb.String()
	for _, want := range []string{
		"ADIOS2 Transfer Performance Summary",
		"Total steps: 2",
		"Total data transferred: 30.00 MB",
		"Total time: 3.00 seconds",
		"Average: 10.00 MB/s (80.00 Mbps)",
		"Median:  10.00 MB/s (80.00 Mbps)",
		"Std Dev: 0.00 MB/s",
		"Average: 1.500 seconds",
		"Min:     1.000 seconds",
		"Max:     2.000 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if !strings.HasPrefix(out, strings.Repeat("=", 60)+"\n") {
		t.Fatalf("report missing leading rule:\n%s", out)
	}
}
