package sim

import (
	"time"

	"github.com/bikeshare-sim/bikeshare-sim/sim/trace"
)

// Visualizer receives the active rides once per tick and can ask the
// simulation to stop. Render must not block.
type Visualizer interface {
	Render(active []*Ride, now time.Time)
	// Closed reports whether the user asked to close the visualization.
	Closed() bool
}

// NoopVisualizer discards everything and never closes.
type NoopVisualizer struct{}

func (NoopVisualizer) Render([]*Ride, time.Time) {}
func (NoopVisualizer) Closed() bool              { return false }

// TraceVisualizer records one trace.TickRecord per rendered tick. With a
// positive MaxTicks it reports closed once that many ticks were rendered,
// which lets headless runs stop early the way a closed window would.
type TraceVisualizer struct {
	Trace    *trace.SimulationTrace
	MaxTicks int
}

// NewTraceVisualizer creates a TraceVisualizer with an empty trace.
func NewTraceVisualizer(maxTicks int) *TraceVisualizer {
	return &TraceVisualizer{Trace: trace.NewSimulationTrace(), MaxTicks: maxTicks}
}

func (v *TraceVisualizer) Render(active []*Ride, now time.Time) {
	ids := make([]int, len(active))
	for i, r := range active {
		ids[i] = int(r.ID)
	}
	v.Trace.RecordTick(trace.TickRecord{Clock: now, ActiveRides: len(active), RideIDs: ids})
}

func (v *TraceVisualizer) Closed() bool {
	return v.MaxTicks > 0 && len(v.Trace.Ticks) >= v.MaxTicks
}
