package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
)

const sampleRunFile = "../testdata/run.yaml"

// newFlagCommand returns a command with the run flags bound and reset to
// their defaults, then applies the given flag assignments.
func newFlagCommand(t *testing.T, set map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerRunFlags(c)
	for name, value := range set {
		require.NoError(t, c.Flags().Set(name, value))
	}
	return c
}

func TestLoadRunConfig_ResolvesPathsRelativeToFile(t *testing.T) {
	cfg, err := LoadRunConfig(sampleRunFile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("..", "testdata", "stations.json"), cfg.Stations)
	assert.Equal(t, filepath.Join("..", "testdata", "rides.csv"), cfg.Rides)
	assert.Equal(t, "2017-06-01 08:00", cfg.Start)
	assert.Equal(t, "2017-06-01 08:10", cfg.End)
	assert.Equal(t, sim.StrategyLinearScan, cfg.Strategy)
	assert.Equal(t, "warn", cfg.Log)
	assert.Empty(t, cfg.Trace)
	require.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_KeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "stations.json")
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stations: "+abs+"\nrides: rides.csv\n"), 0644))

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Stations)
	assert.Equal(t, filepath.Join(dir, "rides.csv"), cfg.Rides)
}

func TestLoadRunConfig_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stations: s.json\nstrategey: linear-scan\n"), 0644))

	_, err := LoadRunConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategey")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestRunConfig_Validate(t *testing.T) {
	valid := func() RunConfig {
		return RunConfig{
			Stations: "s.json",
			Rides:    "r.csv",
			Start:    "2017-06-01 08:00",
			End:      "2017-06-01 09:00",
			Strategy: sim.StrategyEventDriven,
			Log:      "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *RunConfig)
		wantErr string
	}{
		{"valid", func(c *RunConfig) {}, ""},
		{"default strategy", func(c *RunConfig) { c.Strategy = "" }, ""},
		{"end before start is allowed", func(c *RunConfig) { c.End = "2017-06-01 07:00" }, ""},
		{"missing stations", func(c *RunConfig) { c.Stations = "" }, "station file"},
		{"missing rides", func(c *RunConfig) { c.Rides = "" }, "ride file"},
		{"missing start", func(c *RunConfig) { c.Start = "" }, "required"},
		{"bad end", func(c *RunConfig) { c.End = "noon" }, "end"},
		{"unknown strategy", func(c *RunConfig) { c.Strategy = "teleport" }, "unknown advance strategy"},
		{"bad log level", func(c *RunConfig) { c.Log = "loud" }, "log level"},
		{"negative max ticks", func(c *RunConfig) { c.MaxTicks = -1 }, "max ticks"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRunConfig_Window(t *testing.T) {
	c := RunConfig{Start: "2017-06-01 08:00", End: "2017-06-01 08:10"}
	start, end, err := c.Window()
	require.NoError(t, err)
	assert.Equal(t, 10*60.0, end.Sub(start).Seconds())
}

func TestResolveRunConfig_FlagsOnly(t *testing.T) {
	c := newFlagCommand(t, map[string]string{
		"stations": "s.json",
		"rides":    "r.csv",
		"start":    "2017-06-01 08:00",
		"end":      "2017-06-01 08:30",
	})

	cfg, err := resolveRunConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "s.json", cfg.Stations)
	assert.Equal(t, sim.StrategyEventDriven, cfg.Strategy, "flag default applies")
	assert.Equal(t, "error", cfg.Log)
	assert.Zero(t, cfg.MaxTicks)
}

func TestResolveRunConfig_ExplicitFlagsOverrideFile(t *testing.T) {
	c := newFlagCommand(t, map[string]string{
		"config":    sampleRunFile,
		"strategy":  sim.StrategyEventDriven,
		"max-ticks": "3",
	})

	cfg, err := resolveRunConfig(c)
	require.NoError(t, err)
	assert.Equal(t, sim.StrategyEventDriven, cfg.Strategy, "explicit flag wins")
	assert.Equal(t, 3, cfg.MaxTicks)
	assert.Equal(t, "warn", cfg.Log, "unset flag keeps the file value")
	assert.Equal(t, filepath.Join("..", "testdata", "rides.csv"), cfg.Rides)
}

func TestResolveRunConfig_InvalidFlag(t *testing.T) {
	c := newFlagCommand(t, map[string]string{
		"stations": "s.json",
		"rides":    "r.csv",
		"start":    "2017-06-01 08:00",
		"end":      "2017-06-01 08:30",
		"strategy": "teleport",
	})

	_, err := resolveRunConfig(c)
	assert.ErrorIs(t, err, sim.ErrUnknownStrategy)
}

func testClock(t *testing.T) time.Time {
	t.Helper()
	start, _, err := (&RunConfig{Start: "2017-06-01 08:00", End: "2017-06-01 08:00"}).Window()
	require.NoError(t, err)
	return start
}
