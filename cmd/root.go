package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/terminal-sim/terminal-sim/sim/terminal"
	"github.com/terminal-sim/terminal-sim/sim/trace"
)

var (
	// CLI flags for the run itself
	horizon      float64 // Simulation horizon (in minutes); prompted for when unset
	logLevel     string  // Log verbosity level
	configPath   string  // Optional YAML terminal config
	envFile      string  // Optional .env file with TERMINAL_* overrides
	verbosity    string  // Which event-log records are printed
	printSummary bool    // Print a run summary after the finished marker

	// CLI flags for the terminal layout and timings
	seed             int64   // Seed for the arrival generator
	meanInterArrival float64 // Mean minutes between vessel arrivals
	arrivalProcess   string  // Inter-arrival distribution
	arrivalCV        float64 // Coefficient of variation for gamma/weibull arrivals
	containers       int     // Containers unloaded from every vessel
	craneTime        float64 // Crane service minutes per container
	truckTime        float64 // Truck round-trip minutes per container
	berths           int     // Number of berths
	cranes           int     // Number of cranes
	trucks           int     // Number of trucks
	craneContention  bool    // Hold a crane during crane service
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "terminal-sim",
	Short: "Discrete-event simulator for container terminal berth, crane and truck contention",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes the simulation using parameters from config, env and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the terminal simulation",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTerminal(cmd.Flags(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective terminal configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := dumpConfig(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order, and validates the result.
func resolveConfig(flags *pflag.FlagSet) (terminal.Config, error) {
	cfg := terminal.DefaultConfig()
	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return cfg, err
		}
	}
	if configPath != "" {
		var err error
		if cfg, err = loadConfigFile(configPath, cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	applyFlags(flags, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlags copies every explicitly set terminal flag into cfg.
func applyFlags(flags *pflag.FlagSet, cfg *terminal.Config) {
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("mean-inter-arrival") {
		cfg.MeanInterArrival = meanInterArrival
	}
	if flags.Changed("arrival-process") {
		cfg.Arrival.Process = arrivalProcess
	}
	if flags.Changed("arrival-cv") {
		cv := arrivalCV
		cfg.Arrival.CV = &cv
	}
	if flags.Changed("containers") {
		cfg.ContainersPerVessel = containers
	}
	if flags.Changed("crane-time") {
		cfg.CraneTime = craneTime
	}
	if flags.Changed("truck-time") {
		cfg.TruckTime = truckTime
	}
	if flags.Changed("berths") {
		cfg.Berths = berths
	}
	if flags.Changed("cranes") {
		cfg.Cranes = cranes
	}
	if flags.Changed("trucks") {
		cfg.Trucks = trucks
	}
	if flags.Changed("crane-contention") {
		cfg.CraneContention = craneContention
	}
}

// resolveHorizon takes the horizon from --horizon, then TERMINAL_HORIZON,
// and otherwise prompts the operator.
func resolveHorizon(flags *pflag.FlagSet, in io.Reader, out io.Writer) (float64, error) {
	if flags.Changed("horizon") {
		if err := terminal.ValidateHorizon(horizon); err != nil {
			return 0, err
		}
		return horizon, nil
	}
	if raw, ok := os.LookupEnv(envPrefix + "HORIZON"); ok {
		return parseHorizon(raw)
	}
	return promptHorizon(in, out)
}

// runTerminal performs one full run and writes the event log to out.
func runTerminal(flags *pflag.FlagSet, in io.Reader, out io.Writer) error {
	if !trace.IsValidVerbosity(verbosity) {
		return fmt.Errorf("unknown trace verbosity %q (valid: vessels, resources)", verbosity)
	}
	fmt.Fprintln(out, "Container Terminal Simulation")

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}
	h, err := resolveHorizon(flags, in, out)
	if err != nil {
		return err
	}

	s, err := terminal.NewSimulation(cfg)
	if err != nil {
		return err
	}
	log, err := s.Run(h)
	if err != nil {
		return err
	}
	if err := trace.Verify(log.Records); err != nil {
		return fmt.Errorf("internal scheduler fault: %w", err)
	}

	if err := log.Print(out, trace.Verbosity(verbosity)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Simulation finished.")
	if printSummary {
		s.Summary().Print(out)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := terminal.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML terminal configuration")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file with TERMINAL_* overrides")

	// Terminal layout and timings
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", defaults.Seed, "Seed for the arrival generator")
	rootCmd.PersistentFlags().Float64Var(&meanInterArrival, "mean-inter-arrival", defaults.MeanInterArrival, "Mean time between vessel arrivals (minutes)")
	rootCmd.PersistentFlags().StringVar(&arrivalProcess, "arrival-process", defaults.Arrival.Process, "Inter-arrival distribution (poisson, gamma, weibull, constant)")
	rootCmd.PersistentFlags().Float64Var(&arrivalCV, "arrival-cv", 1.0, "Coefficient of variation for gamma and weibull arrivals")
	rootCmd.PersistentFlags().IntVar(&containers, "containers", defaults.ContainersPerVessel, "Containers unloaded from each vessel")
	rootCmd.PersistentFlags().Float64Var(&craneTime, "crane-time", defaults.CraneTime, "Crane time per container (minutes)")
	rootCmd.PersistentFlags().Float64Var(&truckTime, "truck-time", defaults.TruckTime, "Truck drop-off and return time per container (minutes)")
	rootCmd.PersistentFlags().IntVar(&berths, "berths", defaults.Berths, "Number of berths")
	rootCmd.PersistentFlags().IntVar(&cranes, "cranes", defaults.Cranes, "Number of cranes")
	rootCmd.PersistentFlags().IntVar(&trucks, "trucks", defaults.Trucks, "Number of trucks")
	rootCmd.PersistentFlags().BoolVar(&craneContention, "crane-contention", defaults.CraneContention, "Hold a crane for the crane time of every container")

	// Run output
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Simulation horizon (minutes); prompted for when not set")
	runCmd.Flags().StringVar(&verbosity, "trace", string(trace.VerbosityVessels), "Event log verbosity (vessels, resources)")
	runCmd.Flags().BoolVar(&printSummary, "summary", false, "Print a run summary after the simulation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
