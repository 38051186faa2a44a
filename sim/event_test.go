package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventTestSim(t *testing.T, fromBikes, toBikes int) (*Simulator, *Ride) {
	t.Helper()
	stations := stationMap(
		NewStation("from", "From", Point{}, 10, fromBikes),
		NewStation("to", "To", Point{}, 10, toBikes),
	)
	ride := testRide(0, "from", "to", 0, 5)
	return mustNewSimulator(t, StrategyEventDriven, stations, []*Ride{ride}, nil), ride
}

func TestRideStartEvent_ChecksOutAndSpawnsEnd(t *testing.T) {
	s, ride := newEventTestSim(t, 5, 5)

	spawned := s.process(s.NewRideStartEvent(ride))

	from := s.Station("from")
	assert.Equal(t, 4, from.NumBikes)
	assert.Equal(t, 1, from.StartingRides)
	assert.True(t, s.IsActive(ride.ID))

	require.Len(t, spawned, 1)
	end, ok := spawned[0].(*RideEndEvent)
	require.True(t, ok, "spawned %T, want *RideEndEvent", spawned[0])
	assert.Equal(t, ride.EndTime, end.Timestamp())
	assert.Equal(t, ride.ID, end.Ride())
}

// GIVEN an empty start station
// THEN the checkout does not happen, yet the ride is active and its end is scheduled
func TestRideStartEvent_EmptyStation_StillActiveAndSpawnsEnd(t *testing.T) {
	s, ride := newEventTestSim(t, 0, 5)

	spawned := s.process(s.NewRideStartEvent(ride))

	from := s.Station("from")
	assert.Equal(t, 0, from.NumBikes)
	assert.Equal(t, 0, from.StartingRides)
	assert.True(t, s.IsActive(ride.ID))
	require.Len(t, spawned, 1)
	assert.Equal(t, EventKindRideEnd, spawned[0].Kind())
}

func TestRideEndEvent_DocksAndDeactivates(t *testing.T) {
	s, ride := newEventTestSim(t, 5, 5)
	s.process(s.NewRideStartEvent(ride))

	spawned := s.process(s.NewRideEndEvent(ride))

	to := s.Station("to")
	assert.Empty(t, spawned)
	assert.Equal(t, 6, to.NumBikes)
	assert.Equal(t, 1, to.EndingRides)
	assert.False(t, s.IsActive(ride.ID))
}

func TestRideEndEvent_FullStation_DeactivatesWithoutDocking(t *testing.T) {
	s, ride := newEventTestSim(t, 5, 10)
	s.process(s.NewRideStartEvent(ride))

	s.process(s.NewRideEndEvent(ride))

	to := s.Station("to")
	assert.Equal(t, 10, to.NumBikes)
	assert.Equal(t, 0, to.EndingRides)
	assert.False(t, s.IsActive(ride.ID))
}

func TestRideEndEvent_NotActive_StillDocks(t *testing.T) {
	s, ride := newEventTestSim(t, 5, 5)

	s.process(s.NewRideEndEvent(ride))

	assert.Equal(t, 6, s.Station("to").NumBikes)
	assert.False(t, s.IsActive(ride.ID))
}

func TestNewEvents_SequenceNumbersIncrease(t *testing.T) {
	s, ride := newEventTestSim(t, 5, 5)
	a := s.NewRideStartEvent(ride)
	b := s.NewRideEndEvent(ride)
	c := s.NewRideStartEvent(ride)
	assert.Less(t, a.Seq(), b.Seq())
	assert.Less(t, b.Seq(), c.Seq())
}

type bogusEvent struct{}

func (bogusEvent) Timestamp() time.Time { return base }
func (bogusEvent) Kind() EventKind      { return "Bogus" }
func (bogusEvent) Seq() uint64          { return 0 }
func (bogusEvent) isEvent()             {}

func TestProcess_UnknownVariant_Panics(t *testing.T) {
	s, _ := newEventTestSim(t, 5, 5)
	assert.Panics(t, func() { s.process(bogusEvent{}) })
}
