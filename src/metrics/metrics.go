// Package metrics loads the transfer metrics table written by the receiver.
package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vlad777442/adios2-transmission/src/types"
)

// LoadFile parses a transfer metrics CSV into ordered step measurements.
// Columns are resolved by header name, so column order in the file does not
// matter; extra columns are ignored. A missing required column or a
// non-numeric cell is an error.
func LoadFile(path string) ([]types.StepMeasurement, error) {
	defer TimeTrack(time.Now(), "load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	Debugf("loaded %d steps from %s", len(rows), path)
	return rows, nil
}

func parse(r io.Reader, name string) ([]types.StepMeasurement, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file, no header row", name)
		}
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, want := range types.RequiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", name, want)
		}
	}

	var rows []types.StepMeasurement
	line := 1 // header consumed
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		line++
		cell := func(col string) (float64, error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[col]]), 64)
			if err != nil {
				return 0, fmt.Errorf("%s line %d: column %q: %w", name, line, col, err)
			}
			return v, nil
		}
		var m types.StepMeasurement
		step, err := cell(types.ColStep)
		if err != nil {
			return nil, err
		}
		m.Step = int(step)
		if m.SizeMB, err = cell(types.ColSizeMB); err != nil {
			return nil, err
		}
		if m.TimeSec, err = cell(types.ColTimeSec); err != nil {
			return nil, err
		}
		if m.ThroughputMBps, err = cell(types.ColThroughputMBps); err != nil {
			return nil, err
		}
		if m.ThroughputMbps, err = cell(types.ColThroughputMbps); err != nil {
			return nil, err
		}
		rows = append(rows, m)
	}
	return rows, nil
}
