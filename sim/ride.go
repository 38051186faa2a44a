package sim

import (
	"fmt"
	"time"
)

// RideID identifies a ride by its position in the loaded ride list.
type RideID int

// Ride is a single bike checkout. Rides are never mutated after loading;
// StartTime < EndTime is assumed but not enforced.
type Ride struct {
	ID           RideID
	StartStation StationID
	EndStation   StationID
	StartTime    time.Time
	EndTime      time.Time
}

// ActiveAt reports whether t lies within the ride's inclusive interval.
func (r *Ride) ActiveAt(t time.Time) bool {
	return !t.Before(r.StartTime) && !t.After(r.EndTime)
}

func (r *Ride) String() string {
	return fmt.Sprintf("ride_%d(%s@%s -> %s@%s)", r.ID,
		r.StartStation, r.StartTime.Format("15:04"), r.EndStation, r.EndTime.Format("15:04"))
}

// TimeLayout is the textual timestamp format of ride data and CLI flags.
const TimeLayout = "2006-01-02 15:04"
