package sim

import "time"

const (
	// LowAvailabilityThreshold is the bike count at or below which a station
	// accumulates low-availability time.
	LowAvailabilityThreshold = 5
	// LowUnoccupiedThreshold is the free-dock count at or below which a station
	// accumulates low-unoccupied time.
	LowUnoccupiedThreshold = 5
)

// StationID is the stable lookup key of a station.
type StationID string

// Point is a geographic position. It is carried through for reporting and
// rendering; the engine never reads it.
type Point struct {
	Lon float64
	Lat float64
}

// Station is one dock. Capacity is fixed for the run; NumBikes stays within
// [0, Capacity]. The four counters only ever grow.
type Station struct {
	ID       StationID
	Name     string
	Position Point
	Capacity int
	NumBikes int

	StartingRides int
	EndingRides   int

	LowAvailabilityTime float64 // seconds
	LowUnoccupiedTime   float64 // seconds
}

// NewStation creates a station with zeroed counters.
func NewStation(id StationID, name string, pos Point, capacity, numBikes int) *Station {
	return &Station{
		ID:       id,
		Name:     name,
		Position: pos,
		Capacity: capacity,
		NumBikes: numBikes,
	}
}

// LowAvailability reports whether the station is short of bikes.
func (s *Station) LowAvailability() bool {
	return s.NumBikes <= LowAvailabilityThreshold
}

// LowUnoccupied reports whether the station is short of free docks.
func (s *Station) LowUnoccupied() bool {
	return s.Capacity-s.NumBikes <= LowUnoccupiedThreshold
}

// Clone returns an independent copy of the station.
func (s *Station) Clone() *Station {
	c := *s
	return &c
}

// checkout takes a bike out of the station. Returns false, leaving the
// station untouched, when it is empty.
func (s *Station) checkout() bool {
	if s.NumBikes <= 0 {
		return false
	}
	s.NumBikes--
	s.StartingRides++
	return true
}

// dock returns a bike to the station. Returns false, leaving the station
// untouched, when it is full.
func (s *Station) dock() bool {
	if s.NumBikes >= s.Capacity {
		return false
	}
	s.NumBikes++
	s.EndingRides++
	return true
}

// accumulate adds one elapsed step to whichever degraded-time counters apply.
func (s *Station) accumulate(step time.Duration) {
	if s.LowAvailability() {
		s.LowAvailabilityTime += step.Seconds()
	}
	if s.LowUnoccupied() {
		s.LowUnoccupiedTime += step.Seconds()
	}
}
