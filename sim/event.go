package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// EventKind names an event variant.
type EventKind string

const (
	EventKindRideStart EventKind = "RideStart"
	EventKindRideEnd   EventKind = "RideEnd"
)

// EventKindPriority orders events that share a timestamp: lower runs first.
// Starts precede ends so that a ride starting and another ending at the same
// station in the same minute resolve identically under every AdvanceStrategy.
var EventKindPriority = map[EventKind]int{
	EventKindRideStart: 1,
	EventKindRideEnd:   2,
}

// Event is a unit of simulated work. The set of variants is closed:
// *RideStartEvent and *RideEndEvent. Simulator.process dispatches on them.
type Event interface {
	Timestamp() time.Time
	Kind() EventKind
	Seq() uint64
	isEvent()
}

type baseEvent struct {
	time time.Time
	seq  uint64
	ride RideID
}

func (e *baseEvent) Timestamp() time.Time { return e.time }
func (e *baseEvent) Seq() uint64          { return e.seq }

// Ride returns the id of the ride the event belongs to.
func (e *baseEvent) Ride() RideID { return e.ride }

// RideStartEvent fires at a ride's start time.
type RideStartEvent struct {
	baseEvent
}

func (*RideStartEvent) Kind() EventKind { return EventKindRideStart }
func (*RideStartEvent) isEvent()        {}

// RideEndEvent fires at a ride's end time. It spawns nothing.
type RideEndEvent struct {
	baseEvent
}

func (*RideEndEvent) Kind() EventKind { return EventKindRideEnd }
func (*RideEndEvent) isEvent()        {}

// newEventSeq returns the next per-simulator sequence number.
func (sim *Simulator) newEventSeq() uint64 {
	sim.nextEventSeq++
	return sim.nextEventSeq
}

// NewRideStartEvent creates the start event for ride.
func (sim *Simulator) NewRideStartEvent(ride *Ride) *RideStartEvent {
	return &RideStartEvent{baseEvent{time: ride.StartTime, seq: sim.newEventSeq(), ride: ride.ID}}
}

// NewRideEndEvent creates the end event for ride.
func (sim *Simulator) NewRideEndEvent(ride *Ride) *RideEndEvent {
	return &RideEndEvent{baseEvent{time: ride.EndTime, seq: sim.newEventSeq(), ride: ride.ID}}
}

// process applies ev to the simulation state and returns the events it spawns.
func (sim *Simulator) process(ev Event) []Event {
	switch e := ev.(type) {
	case *RideStartEvent:
		return sim.handleRideStart(e)
	case *RideEndEvent:
		sim.handleRideEnd(e)
		return nil
	default:
		panic(fmt.Sprintf("process: unknown event type %T", ev))
	}
}

// handleRideStart checks a bike out of the start station when one is docked.
// The ride joins the active set either way, and its end event is always
// scheduled so a failed checkout can still return a bike.
func (sim *Simulator) handleRideStart(e *RideStartEvent) []Event {
	ride := sim.rides[e.ride]
	station := sim.stations[ride.StartStation]
	if !station.checkout() {
		logrus.Debugf("<< RideStart: ride_%d at %s, station %q empty", ride.ID, e.time.Format(TimeLayout), station.Name)
	} else {
		logrus.Debugf("<< RideStart: ride_%d at %s from %q", ride.ID, e.time.Format(TimeLayout), station.Name)
	}
	sim.active.Add(ride.ID)
	return []Event{sim.NewRideEndEvent(ride)}
}

// handleRideEnd docks the bike at the end station when a dock is free and
// drops the ride from the active set.
func (sim *Simulator) handleRideEnd(e *RideEndEvent) {
	ride := sim.rides[e.ride]
	station := sim.stations[ride.EndStation]
	if !station.dock() {
		logrus.Debugf("<< RideEnd: ride_%d at %s, station %q full", ride.ID, e.time.Format(TimeLayout), station.Name)
	} else {
		logrus.Debugf("<< RideEnd: ride_%d at %s into %q", ride.ID, e.time.Format(TimeLayout), station.Name)
	}
	sim.active.Remove(ride.ID)
}
