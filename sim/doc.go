// Package sim provides the core discrete-event simulation engine for the
// bike-share network.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - station.go, ride.go: the mutable dock records and the immutable rides linking them
//   - event.go: the closed set of events (RideStart, RideEnd) and their handlers
//   - queue.go: the time-ordered event queue with its deterministic tie-break
//   - strategy.go: the two interchangeable ways of advancing active-ride state
//   - simulator.go: the minute-by-minute time loop
//
// # Architecture
//
// Stations are owned by the Simulator and addressed by StationID. Rides and
// events hold ids, never station pointers. Station counters are written only
// by the two event handlers and the per-tick degraded-time accumulator.
//
// Sub-packages:
//   - sim/loader/: station JSON and ride CSV readers
//   - sim/trace/: per-tick activity recording and CSV export
//
// # Key Interfaces
//
//   - AdvanceStrategy: updates the active-ride set for one tick (linear scan or event-driven)
//   - Visualizer: once-per-tick sink for the active rides, with a close poll
package sim
