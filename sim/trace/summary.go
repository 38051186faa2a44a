package trace

import "time"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks      int
	PeakActiveRides int
	PeakClock       time.Time // first tick reaching the peak
	MeanActiveRides float64
	DistinctRides   int // rides seen active at least once
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Ticks) == 0 {
		return summary
	}

	summary.TotalTicks = len(st.Ticks)
	seen := make(map[int]struct{})
	total := 0
	for i, r := range st.Ticks {
		total += r.ActiveRides
		if i == 0 || r.ActiveRides > summary.PeakActiveRides {
			summary.PeakActiveRides = r.ActiveRides
			summary.PeakClock = r.Clock
		}
		for _, id := range r.RideIDs {
			seen[id] = struct{}{}
		}
	}
	summary.MeanActiveRides = float64(total) / float64(len(st.Ticks))
	summary.DistinctRides = len(seen)

	return summary
}
