// Package types holds the shared measurement-table vocabulary used by the
// loader, analysis and report packages.
package types

// CSV header columns as written by the receiver.
const (
	ColStep           = "Step"
	ColSizeMB         = "Size(MB)"
	ColTimeSec        = "Time(s)"
	ColThroughputMBps = "Throughput(MB/s)"
	ColThroughputMbps = "Throughput(Mbps)"
)

// RequiredColumns lists every column the loader must resolve. Order matches
// the receiver's output but carries no meaning for parsing.
var RequiredColumns = []string{ColStep, ColSizeMB, ColTimeSec, ColThroughputMBps, ColThroughputMbps}

// StepMeasurement is one transfer step (one CSV row). Values are assumed
// finite and non-negative; the loader does not enforce this.
type StepMeasurement struct {
	Step           int
	SizeMB         float64
	TimeSec        float64
	ThroughputMBps float64
	ThroughputMbps float64
}
