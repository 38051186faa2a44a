package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
	"github.com/bikeshare-sim/bikeshare-sim/sim/loader"
)

// RunConfig holds the settings of one simulation run. It can be loaded from
// a YAML file and overridden by explicitly set CLI flags.
type RunConfig struct {
	Stations string `yaml:"stations"`            // station JSON file
	Rides    string `yaml:"rides"`               // ride CSV file
	Start    string `yaml:"start"`               // "2006-01-02 15:04"
	End      string `yaml:"end"`                 // inclusive
	Strategy string `yaml:"strategy"`            // event-driven | linear-scan
	Log      string `yaml:"log"`                 // logrus level
	Trace    string `yaml:"trace,omitempty"`     // optional tick trace CSV output
	MaxTicks int    `yaml:"max_ticks,omitempty"` // stop after this many ticks (0 = no limit)
}

// LoadRunConfig parses a YAML run file. Unknown keys are errors so that
// typos cannot silently fall back to defaults. Relative input and output
// paths are resolved against the file's directory.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Stations, &cfg.Rides, &cfg.Trace} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	logrus.Debugf("loaded run config from %s: %+v", path, cfg)
	return &cfg, nil
}

// Validate checks that the configuration is complete and well-formed.
func (c *RunConfig) Validate() error {
	if c.Stations == "" {
		return fmt.Errorf("station file not provided")
	}
	if c.Rides == "" {
		return fmt.Errorf("ride file not provided")
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	if !sim.ValidStrategies[c.Strategy] {
		return fmt.Errorf("%w %q", sim.ErrUnknownStrategy, c.Strategy)
	}
	if _, err := logrus.ParseLevel(c.Log); c.Log != "" && err != nil {
		return fmt.Errorf("invalid log level %q", c.Log)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max ticks must be >= 0, got %d", c.MaxTicks)
	}
	return nil
}

// Window parses the start and end instants.
func (c *RunConfig) Window() (start, end time.Time, err error) {
	if c.Start == "" || c.End == "" {
		return start, end, fmt.Errorf("start and end times are required")
	}
	if start, err = loader.ParseTime(c.Start); err != nil {
		return start, end, fmt.Errorf("start: %w", err)
	}
	if end, err = loader.ParseTime(c.End); err != nil {
		return start, end, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}
