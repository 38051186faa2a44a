package sim

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// StrategyEventDriven dispatches queued ride events up to each tick.
	StrategyEventDriven = "event-driven"
	// StrategyLinearScan rescans every ride on every tick.
	StrategyLinearScan = "linear-scan"
)

// ErrUnknownStrategy is returned for unrecognized strategy names.
var ErrUnknownStrategy = errors.New("unknown advance strategy")

// ValidStrategies is the set of recognized strategy names.
// The empty string selects the default (event-driven).
var ValidStrategies = map[string]bool{"": true, StrategyEventDriven: true, StrategyLinearScan: true}

// StrategyNames returns the non-empty strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(ValidStrategies))
	for n := range ValidStrategies {
		if n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// AdvanceStrategy updates the active-ride set and station bike counts for
// one tick. Every implementation must leave the simulator in the same state
// for the same input and window.
type AdvanceStrategy interface {
	Name() string
	// Seed is called once before the first tick.
	Seed(sim *Simulator, start time.Time)
	// Advance applies everything that happens at or before now.
	Advance(sim *Simulator, now time.Time)
}

// NewAdvanceStrategy creates the strategy registered under name.
func NewAdvanceStrategy(name string) (AdvanceStrategy, error) {
	switch name {
	case "", StrategyEventDriven:
		return &EventDriven{}, nil
	case StrategyLinearScan:
		return &LinearScan{}, nil
	default:
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
}

// EventDriven advances state only at instants where a ride starts or ends,
// pulling events from the simulator's PriorityQueue.
type EventDriven struct {
	// rides that began before the window and are still out; they join the
	// active set on the first tick.
	inFlight []RideID
}

func (*EventDriven) Name() string { return StrategyEventDriven }

// Seed queues a start event for every ride starting at or after start, and
// an end event for every ride already out at start.
func (d *EventDriven) Seed(sim *Simulator, start time.Time) {
	d.inFlight = d.inFlight[:0]
	for _, ride := range sim.rides {
		switch {
		case !ride.StartTime.Before(start):
			sim.queue.Add(sim.NewRideStartEvent(ride))
		case !ride.EndTime.Before(start):
			d.inFlight = append(d.inFlight, ride.ID)
			sim.queue.Add(sim.NewRideEndEvent(ride))
		}
	}
}

// Advance processes queued events up to and including now. On return no
// queued event has a timestamp at or before now.
func (d *EventDriven) Advance(sim *Simulator, now time.Time) {
	for _, id := range d.inFlight {
		sim.active.Add(id)
	}
	d.inFlight = d.inFlight[:0]

	for !sim.queue.IsEmpty() {
		if sim.queue.Peek().Timestamp().After(now) {
			return
		}
		ev := sim.queue.Remove()
		for _, spawned := range sim.process(ev) {
			sim.queue.Add(spawned)
		}
	}
}

// LinearScan is the reference strategy: every tick it walks all rides and
// applies the starts and ends that fall in the interval since the previous
// tick, (prev, now], or [start, now] on the first tick. Within the interval
// instants are applied in time order, and at each instant all starts run
// before all ends, matching EventKindPriority.
type LinearScan struct {
	windowStart time.Time
	prev        time.Time
	started     bool
}

func (*LinearScan) Name() string { return StrategyLinearScan }

func (l *LinearScan) Seed(_ *Simulator, start time.Time) {
	l.windowStart = start
	l.prev = time.Time{}
	l.started = false
}

// covers reports whether t falls in the interval the current tick applies.
func (l *LinearScan) covers(t, now time.Time) bool {
	if t.After(now) {
		return false
	}
	if !l.started {
		return !t.Before(l.windowStart)
	}
	return t.After(l.prev)
}

func (l *LinearScan) Advance(sim *Simulator, now time.Time) {
	var starts, ends []*Ride
	for _, ride := range sim.rides {
		if !l.started && ride.StartTime.Before(l.windowStart) && !ride.EndTime.Before(l.windowStart) {
			// Already out when the window opens.
			sim.active.Add(ride.ID)
		}
		if l.covers(ride.StartTime, now) {
			starts = append(starts, ride)
		}
		if l.covers(ride.EndTime, now) {
			ends = append(ends, ride)
		}
	}
	l.prev = now
	l.started = true

	sort.SliceStable(starts, func(i, j int) bool { return starts[i].StartTime.Before(starts[j].StartTime) })
	sort.SliceStable(ends, func(i, j int) bool { return ends[i].EndTime.Before(ends[j].EndTime) })

	i, j := 0, 0
	for i < len(starts) || j < len(ends) {
		var t time.Time
		if i < len(starts) && (j == len(ends) || !ends[j].EndTime.Before(starts[i].StartTime)) {
			t = starts[i].StartTime
		} else {
			t = ends[j].EndTime
		}
		for ; i < len(starts) && starts[i].StartTime.Equal(t); i++ {
			// The spawned end event is dropped: the scan finds the end by time.
			sim.process(sim.NewRideStartEvent(starts[i]))
		}
		for ; j < len(ends) && ends[j].EndTime.Equal(t); j++ {
			sim.process(sim.NewRideEndEvent(ends[j]))
		}
	}
}
