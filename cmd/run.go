package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
	"github.com/bikeshare-sim/bikeshare-sim/sim/loader"
	"github.com/bikeshare-sim/bikeshare-sim/sim/trace"
)

// loadNetwork reads the station and ride files named by cfg.
func loadNetwork(cfg *RunConfig) (map[sim.StationID]*sim.Station, []*sim.Ride, error) {
	stations, err := loader.LoadStations(cfg.Stations)
	if err != nil {
		return nil, nil, err
	}
	rides, err := loader.LoadRides(cfg.Rides, stations)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("Loaded %d stations and %d rides", len(stations), len(rides))
	return stations, rides, nil
}

// runSimulation executes one run with the given strategy and returns the
// finished simulator together with its tick trace.
func runSimulation(cfg *RunConfig, strategy string) (*sim.Simulator, *sim.TraceVisualizer, error) {
	start, end, err := cfg.Window()
	if err != nil {
		return nil, nil, err
	}
	stations, rides, err := loadNetwork(cfg)
	if err != nil {
		return nil, nil, err
	}
	vis := sim.NewTraceVisualizer(cfg.MaxTicks)
	s, err := sim.NewSimulator(sim.NewSimConfig(strategy, sim.DefaultStep), stations, rides, vis)
	if err != nil {
		return nil, nil, err
	}
	s.Run(start, end)
	return s, vis, nil
}

// executeRun runs the configured simulation, prints its statistics to w and
// exports the tick trace if requested.
func executeRun(cfg *RunConfig, w io.Writer) error {
	wallStart := time.Now()
	s, vis, err := runSimulation(cfg, cfg.Strategy)
	if err != nil {
		return err
	}
	s.Statistics().Print(w)

	summary := trace.Summarize(vis.Trace)
	logrus.Infof("Run %s: %d ticks, peak %d active rides at %s, mean %.2f, %d distinct rides (wall %s)",
		s.ID(), summary.TotalTicks, summary.PeakActiveRides, summary.PeakClock.Format(sim.TimeLayout),
		summary.MeanActiveRides, summary.DistinctRides, time.Since(wallStart))
	logResourceUsage(s.ID())

	if cfg.Trace != "" {
		if err := trace.ExportCSV(vis.Trace, cfg.Trace); err != nil {
			return err
		}
		logrus.Infof("Wrote tick trace to %s", cfg.Trace)
	}
	return nil
}

// compareStrategies runs every strategy on the same input and returns a
// description of each station counter or trace that differs between them.
func compareStrategies(cfg *RunConfig) ([]string, error) {
	strategies := sim.StrategyNames()
	finals := make([]map[sim.StationID]sim.Station, len(strategies))
	traces := make([]*trace.SimulationTrace, len(strategies))
	for i, name := range strategies {
		s, vis, err := runSimulation(cfg, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		finals[i] = make(map[sim.StationID]sim.Station)
		for _, st := range s.Stations() {
			finals[i][st.ID] = *st
		}
		traces[i] = vis.Trace
	}

	var diffs []string
	ref := strategies[0]
	for i := 1; i < len(strategies); i++ {
		diffs = append(diffs, diffStations(ref, strategies[i], finals[0], finals[i])...)
		diffs = append(diffs, diffTraces(ref, strategies[i], traces[0], traces[i])...)
	}
	return diffs, nil
}

func diffStations(nameA, nameB string, a, b map[sim.StationID]sim.Station) []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	var diffs []string
	for _, id := range ids {
		sa, sb := a[sim.StationID(id)], b[sim.StationID(id)]
		if sa != sb {
			diffs = append(diffs, fmt.Sprintf("station %s: %s=%+v %s=%+v", id, nameA, counters(sa), nameB, counters(sb)))
		}
	}
	return diffs
}

func counters(s sim.Station) string {
	return fmt.Sprintf("{bikes:%d starts:%d ends:%d lowAvail:%g lowUnocc:%g}",
		s.NumBikes, s.StartingRides, s.EndingRides, s.LowAvailabilityTime, s.LowUnoccupiedTime)
}

func diffTraces(nameA, nameB string, a, b *trace.SimulationTrace) []string {
	if len(a.Ticks) != len(b.Ticks) {
		return []string{fmt.Sprintf("tick count: %s=%d %s=%d", nameA, len(a.Ticks), nameB, len(b.Ticks))}
	}
	var diffs []string
	for i := range a.Ticks {
		if a.Ticks[i].ActiveRides != b.Ticks[i].ActiveRides {
			diffs = append(diffs, fmt.Sprintf("active rides at %s: %s=%d %s=%d",
				a.Ticks[i].Clock.Format(sim.TimeLayout), nameA, a.Ticks[i].ActiveRides, nameB, b.Ticks[i].ActiveRides))
		}
	}
	return diffs
}
