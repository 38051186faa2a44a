package sim

import (
	"testing"
	"time"
)

// base is 2017-06-01 08:00 UTC; at(n) is n minutes later.
var base = time.Date(2017, 6, 1, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

// testRide builds ride id from → to over [startMin, endMin] relative to base.
func testRide(id int, from, to StationID, startMin, endMin int) *Ride {
	return &Ride{
		ID:           RideID(id),
		StartStation: from,
		EndStation:   to,
		StartTime:    at(startMin),
		EndTime:      at(endMin),
	}
}

// stationMap indexes stations by id.
func stationMap(stations ...*Station) map[StationID]*Station {
	m := make(map[StationID]*Station, len(stations))
	for _, s := range stations {
		m[s.ID] = s
	}
	return m
}

// cloneStations deep-copies a station set so two simulators never share state.
func cloneStations(stations map[StationID]*Station) map[StationID]*Station {
	out := make(map[StationID]*Station, len(stations))
	for id, s := range stations {
		out[id] = s.Clone()
	}
	return out
}

func mustNewSimulator(t *testing.T, strategy string, stations map[StationID]*Station, rides []*Ride, vis Visualizer) *Simulator {
	t.Helper()
	s, err := NewSimulator(NewSimConfig(strategy, 0), stations, rides, vis)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// allStrategies lists every registered strategy for table tests.
var allStrategies = []string{StrategyEventDriven, StrategyLinearScan}

// tickFunc adapts a function into a Visualizer that never closes.
type tickFunc func(active []*Ride, now time.Time)

func (f tickFunc) Render(active []*Ride, now time.Time) { f(active, now) }
func (tickFunc) Closed() bool                           { return false }

func rideIDs(rides []*Ride) []RideID {
	ids := make([]RideID, len(rides))
	for i, r := range rides {
		ids[i] = r.ID
	}
	return ids
}
