// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// ErrUnknownStation is returned when a ride references a station id that
// the simulator does not own.
var ErrUnknownStation = errors.New("ride references unknown station")

// Simulator owns the stations, rides, active-ride set and event queue of one
// run. It is single-threaded; nothing else may touch its state during Run.
type Simulator struct {
	id       string
	stations map[StationID]*Station
	rides    []*Ride
	active   *ActiveSet
	queue    *PriorityQueue
	strategy AdvanceStrategy
	vis      Visualizer
	step     time.Duration

	clock        time.Time
	ticks        int
	nextEventSeq uint64
	log          *logrus.Entry
}

// RunResult describes how a run ended.
type RunResult struct {
	Start, End time.Time
	Ticks      int       // ticks executed
	LastTick   time.Time // zero if no tick ran
	Closed     bool      // the visualizer asked to stop before End
}

// NewSimulator creates a simulator over stations and rides. Ride ids must
// index rides. A nil vis means no visualization.
func NewSimulator(cfg SimConfig, stations map[StationID]*Station, rides []*Ride, vis Visualizer) (*Simulator, error) {
	strategy, err := NewAdvanceStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	step := cfg.Step
	if step == 0 {
		step = DefaultStep
	}
	if step < 0 {
		return nil, fmt.Errorf("step must be positive, got %s", step)
	}
	for i, ride := range rides {
		if ride.ID != RideID(i) {
			return nil, fmt.Errorf("ride at index %d has id %d", i, ride.ID)
		}
		if _, ok := stations[ride.StartStation]; !ok {
			return nil, fmt.Errorf("%w: ride_%d start %q", ErrUnknownStation, ride.ID, ride.StartStation)
		}
		if _, ok := stations[ride.EndStation]; !ok {
			return nil, fmt.Errorf("%w: ride_%d end %q", ErrUnknownStation, ride.ID, ride.EndStation)
		}
	}
	if vis == nil {
		vis = NoopVisualizer{}
	}
	id := xid.New().String()
	return &Simulator{
		id:       id,
		stations: stations,
		rides:    rides,
		active:   NewActiveSet(),
		queue:    NewPriorityQueue(),
		strategy: strategy,
		vis:      vis,
		step:     step,
		log:      logrus.WithFields(logrus.Fields{"run": id, "strategy": strategy.Name()}),
	}, nil
}

// Run simulates from start to end inclusive, one step per tick. Each tick
// accumulates degraded time (except the first, which has no elapsed
// interval), advances the strategy, then renders. The run stops early if
// the visualizer reports it was closed. If end is before start no tick runs.
//
// Each call starts from an empty queue and active-ride set; station
// counters and bike counts carry over from any previous run.
func (sim *Simulator) Run(start, end time.Time) *RunResult {
	result := &RunResult{Start: start, End: end}
	sim.queue = NewPriorityQueue()
	sim.active = NewActiveSet()
	sim.ticks = 0
	sim.strategy.Seed(sim, start)
	sim.log.Infof("Starting simulation of %d stations, %d rides from %s to %s (%d events seeded)",
		len(sim.stations), len(sim.rides), start.Format(TimeLayout), end.Format(TimeLayout), sim.queue.Len())

	for now := start; !now.After(end); now = now.Add(sim.step) {
		if now.After(start) {
			sim.updateStationTimeStats()
		}
		sim.clock = now
		sim.strategy.Advance(sim, now)
		sim.ticks++
		result.Ticks++
		result.LastTick = now

		sim.vis.Render(sim.ActiveRides(), now)
		if sim.vis.Closed() {
			sim.log.Infof("[%s] Visualizer closed, stopping simulation", now.Format(TimeLayout))
			result.Closed = true
			break
		}
	}
	sim.log.Infof("Simulation ended after %d ticks with %d active rides", result.Ticks, sim.active.Len())
	return result
}

// updateStationTimeStats adds one step of degraded time to every station
// whose condition holds.
func (sim *Simulator) updateStationTimeStats() {
	for _, station := range sim.stations {
		station.accumulate(sim.step)
	}
}

// ID returns the run's unique id.
func (sim *Simulator) ID() string { return sim.id }

// Strategy returns the name of the advance strategy in use.
func (sim *Simulator) Strategy() string { return sim.strategy.Name() }

// Clock returns the instant of the last executed tick.
func (sim *Simulator) Clock() time.Time { return sim.clock }

// Ticks returns the number of ticks executed so far.
func (sim *Simulator) Ticks() int { return sim.ticks }

// Step returns the tick length.
func (sim *Simulator) Step() time.Duration { return sim.step }

// PendingEvents returns the number of queued events.
func (sim *Simulator) PendingEvents() int { return sim.queue.Len() }

// Station returns the station with the given id, or nil.
func (sim *Simulator) Station(id StationID) *Station { return sim.stations[id] }

// Stations returns the simulator's stations sorted by id. The pointers are
// live; callers must treat them as read-only.
func (sim *Simulator) Stations() []*Station {
	out := make([]*Station, 0, len(sim.stations))
	for _, s := range sim.stations {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Ride returns the ride with the given id, or nil.
func (sim *Simulator) Ride(id RideID) *Ride {
	if id < 0 || int(id) >= len(sim.rides) {
		return nil
	}
	return sim.rides[id]
}

// IsActive reports whether the ride is currently checked out.
func (sim *Simulator) IsActive(id RideID) bool { return sim.active.Contains(id) }

// ActiveRides returns the active rides in the order they became active.
func (sim *Simulator) ActiveRides() []*Ride {
	ids := sim.active.IDs()
	out := make([]*Ride, len(ids))
	for i, id := range ids {
		out[i] = sim.rides[id]
	}
	return out
}

// Statistics computes the extremal-station report over current counters.
func (sim *Simulator) Statistics() Statistics {
	return CalculateStatistics(sim.Stations())
}
