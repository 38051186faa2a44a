package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bikeshare-sim/bikeshare-sim/sim"
)

var (
	// CLI flags for the run inputs
	configPath   string // YAML run file
	stationsPath string // Station JSON file
	ridesPath    string // Ride CSV file
	startTime    string // Window start, inclusive
	endTime      string // Window end, inclusive

	// CLI flags for engine and output
	strategy  string // Advance strategy name
	logLevel  string // Log verbosity level
	tracePath string // Tick trace CSV output
	maxTicks  int    // Stop after this many ticks (0 = no limit)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bikeshare-sim",
	Short: "Discrete-event simulator for bike-share networks",
}

// runCmd executes one simulation and prints the station statistics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bike-share simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustResolveRunConfig(cmd)
		logrus.Infof("Starting simulation over [%s, %s] with strategy %q", cfg.Start, cfg.End, cfg.Strategy)
		if err := executeRun(cfg, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs every advance strategy on the same input and checks that
// they agree
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Check that all advance strategies produce identical station counters",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustResolveRunConfig(cmd)
		diffs, err := compareStrategies(cfg)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		if len(diffs) > 0 {
			for _, d := range diffs {
				fmt.Fprintln(os.Stderr, d)
			}
			logrus.Fatalf("Strategies diverged in %d place(s)", len(diffs))
		}
		fmt.Printf("Strategies %s agree\n", strings.Join(sim.StrategyNames(), ", "))
	},
}

// mustResolveRunConfig builds the run configuration from the optional YAML
// file and the command's flags, applies the log level and exits on error.
func mustResolveRunConfig(cmd *cobra.Command) *RunConfig {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	level, err := logrus.ParseLevel(cfg.Log)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", cfg.Log)
	}
	logrus.SetLevel(level)
	return cfg
}

// resolveRunConfig loads --config if given, then overlays every flag the
// user set explicitly. Without a config file the flag values (including
// defaults) are used as is.
func resolveRunConfig(cmd *cobra.Command) (*RunConfig, error) {
	cfg := &RunConfig{
		Stations: stationsPath,
		Rides:    ridesPath,
		Start:    startTime,
		End:      endTime,
		Strategy: strategy,
		Log:      logLevel,
		Trace:    tracePath,
		MaxTicks: maxTicks,
	}
	if configPath != "" {
		fileCfg, err := LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		overlayFlags(cmd, fileCfg, cfg)
		cfg = fileCfg
	}
	if cfg.Strategy == "" {
		cfg.Strategy = sim.StrategyEventDriven
	}
	if cfg.Log == "" {
		cfg.Log = "error"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFlags copies the explicitly set flag values from src into dst.
func overlayFlags(cmd *cobra.Command, dst, src *RunConfig) {
	flags := cmd.Flags()
	if flags.Changed("stations") {
		dst.Stations = src.Stations
	}
	if flags.Changed("rides") {
		dst.Rides = src.Rides
	}
	if flags.Changed("start") {
		dst.Start = src.Start
	}
	if flags.Changed("end") {
		dst.End = src.End
	}
	if flags.Changed("strategy") {
		dst.Strategy = src.Strategy
	}
	if flags.Changed("log") {
		dst.Log = src.Log
	}
	if flags.Changed("trace") {
		dst.Trace = src.Trace
	}
	if flags.Changed("max-ticks") {
		dst.MaxTicks = src.MaxTicks
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags attaches the shared flag set to a subcommand
func registerRunFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML run file; explicitly set flags override its values")
	c.Flags().StringVar(&stationsPath, "stations", "", "Station JSON file")
	c.Flags().StringVar(&ridesPath, "rides", "", "Ride CSV file")
	c.Flags().StringVar(&startTime, "start", "", "Window start (YYYY-MM-DD HH:MM)")
	c.Flags().StringVar(&endTime, "end", "", "Window end, inclusive (YYYY-MM-DD HH:MM)")
	c.Flags().StringVar(&strategy, "strategy", sim.StrategyEventDriven, "Advance strategy ("+strings.Join(sim.StrategyNames(), ", ")+")")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&tracePath, "trace", "", "Write the per-tick active ride count to this CSV file")
	c.Flags().IntVar(&maxTicks, "max-ticks", 0, "Stop the run after this many ticks (0 = no limit)")
}

func init() {
	registerRunFlags(runCmd)
	registerRunFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
