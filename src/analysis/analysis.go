// Package analysis computes the descriptive statistics block of the transfer
// performance report.
package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vlad777442/adios2-transmission/src/types"
)

// ColumnStats bundles the descriptive statistics reported for one numeric
// column of the measurement table.
type ColumnStats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64 // sample standard deviation (N-1); 0 for fewer than 2 rows
}

// Summary captures every figure printed by the text report.
type Summary struct {
	Steps        int
	TotalSizeMB  float64
	TotalTimeSec float64
	MBps         ColumnStats
	Mbps         ColumnStats
	Time         ColumnStats
}

// Summarize computes the report statistics over the measurement table.
func Summarize(rows []types.StepMeasurement) Summary {
	if len(rows) == 0 {
		return Summary{}
	}
	column := func(sel func(types.StepMeasurement) float64) []float64 {
		out := make([]float64, len(rows))
		for i, r := range rows {
			out[i] = sel(r)
		}
		return out
	}
	sizes := column(func(m types.StepMeasurement) float64 { return m.SizeMB })
	times := column(func(m types.StepMeasurement) float64 { return m.TimeSec })
	mbs := column(func(m types.StepMeasurement) float64 { return m.ThroughputMBps })
	mbits := column(func(m types.StepMeasurement) float64 { return m.ThroughputMbps })
	return Summary{
		Steps:        len(rows),
		TotalSizeMB:  sum(sizes),
		TotalTimeSec: sum(times),
		MBps:         columnStats(mbs),
		Mbps:         columnStats(mbits),
		Time:         columnStats(times),
	}
}

func sum(a []float64) float64 {
	var s float64
	for _, v := range a {
		s += v
	}
	return s
}

func minVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// median averages the two middle elements for even-length input.
func median(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	cp := append([]float64(nil), a...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 0 {
		return (cp[n/2-1] + cp[n/2]) / 2
	}
	return cp[n/2]
}

func columnStats(a []float64) ColumnStats {
	if len(a) == 0 {
		return ColumnStats{}
	}
	cs := ColumnStats{
		Mean:   stat.Mean(a, nil),
		Median: median(a),
		Min:    minVal(a),
		Max:    maxVal(a),
	}
	if len(a) > 1 {
		cs.StdDev = stat.StdDev(a, nil)
	}
	return cs
}

// WriteReport prints the fixed summary block. Throughput and size values use
// 2 decimal places, time values 3.
func WriteReport(w io.Writer, s Summary) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ADIOS2 Transfer Performance Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total steps: %d\n", s.Steps)
	fmt.Fprintf(w, "Total data transferred: %.2f MB\n", s.TotalSizeMB)
	fmt.Fprintf(w, "Total time: %.2f seconds\n", s.TotalTimeSec)
	fmt.Fprintf(w, "\nThroughput Statistics:\n")
	fmt.Fprintf(w, "  Average: %.2f MB/s (%.2f Mbps)\n", s.MBps.Mean, s.Mbps.Mean)
	fmt.Fprintf(w, "  Median:  %.2f MB/s (%.2f Mbps)\n", s.MBps.Median, s.Mbps.Median)
	fmt.Fprintf(w, "  Min:     %.2f MB/s (%.2f Mbps)\n", s.MBps.Min, s.Mbps.Min)
	fmt.Fprintf(w, "  Max:     %.2f MB/s (%.2f Mbps)\n", s.MBps.Max, s.Mbps.Max)
	fmt.Fprintf(w, "  Std Dev: %.2f MB/s\n", s.MBps.StdDev)
	fmt.Fprintf(w, "\nTransfer Time Statistics:\n")
	fmt.Fprintf(w, "  Average: %.3f seconds\n", s.Time.Mean)
	fmt.Fprintf(w, "  Min:     %.3f seconds\n", s.Time.Min)
	fmt.Fprintf(w, "  Max:     %.3f seconds\n", s.Time.Max)
	fmt.Fprintln(w, rule)
}
