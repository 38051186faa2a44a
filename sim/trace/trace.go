package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// TimeLayout is the timestamp format used in exported traces.
const TimeLayout = "2006-01-02 15:04"

// SimulationTrace collects tick records during a simulation run.
type SimulationTrace struct {
	Ticks []TickRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Ticks: make([]TickRecord, 0),
	}
}

// RecordTick appends a tick record.
func (st *SimulationTrace) RecordTick(record TickRecord) {
	st.Ticks = append(st.Ticks, record)
}

// CSV column headers for exported traces.
var traceColumns = []string{"clock", "active_rides"}

// ExportCSV writes one row per tick to path, overwriting it.
func ExportCSV(st *SimulationTrace, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	return writeCSV(st, file)
}

// writeCSV writes the trace to wc and closes it. A close error is reported
// when the writes themselves succeeded.
func writeCSV(st *SimulationTrace, wc io.WriteCloser) (err error) {
	defer func() {
		if closeErr := wc.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing trace file: %w", closeErr)
		}
	}()

	writer := csv.NewWriter(wc)
	if err := writer.Write(traceColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if st != nil {
		for _, r := range st.Ticks {
			if err := writer.Write([]string{r.Clock.Format(TimeLayout), strconv.Itoa(r.ActiveRides)}); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing trace file: %w", err)
	}
	return nil
}
