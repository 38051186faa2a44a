// Package trace provides per-tick activity recording for simulation runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import "time"

// TickRecord captures the active-ride set observed at one tick.
type TickRecord struct {
	Clock       time.Time
	ActiveRides int
	RideIDs     []int // ride ids in the order they became active
}
