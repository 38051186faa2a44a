package sim

import "time"

// DefaultStep is the simulated duration of one tick.
const DefaultStep = time.Minute

// SimConfig groups engine settings.
type SimConfig struct {
	Strategy string        // "event-driven" (default) or "linear-scan"
	Step     time.Duration // tick length; zero means DefaultStep
}

// NewSimConfig creates a SimConfig. Zero values are kept as given and
// resolved by NewSimulator.
func NewSimConfig(strategy string, step time.Duration) SimConfig {
	return SimConfig{Strategy: strategy, Step: step}
}
