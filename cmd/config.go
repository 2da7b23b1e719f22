package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/terminal-sim/terminal-sim/sim/terminal"
)

// envPrefix is prepended to every environment override.
const envPrefix = "TERMINAL_"

// loadConfigFile parses a terminal YAML file over base. Fields missing from
// the file keep their value from base.
// Uses strict field checking: typos must cause errors.
func loadConfigFile(path string, base terminal.Config) (terminal.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win over the file.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg fields from TERMINAL_* environment variables.
func applyEnv(cfg *terminal.Config, lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"MEAN_INTER_ARRIVAL": &cfg.MeanInterArrival,
		"CRANE_TIME":         &cfg.CraneTime,
		"TRUCK_TIME":         &cfg.TruckTime,
	}
	for key, dst := range floats {
		if raw, ok := lookup(envPrefix + key); ok {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = v
		}
	}
	ints := map[string]*int{
		"CONTAINERS": &cfg.ContainersPerVessel,
		"BERTHS":     &cfg.Berths,
		"CRANES":     &cfg.Cranes,
		"TRUCKS":     &cfg.Trucks,
	}
	for key, dst := range ints {
		if raw, ok := lookup(envPrefix + key); ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = v
		}
	}
	if raw, ok := lookup(envPrefix + "SEED"); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		cfg.Seed = v
	}
	if raw, ok := lookup(envPrefix + "ARRIVAL_PROCESS"); ok {
		cfg.Arrival.Process = raw
	}
	return nil
}

// dumpConfig writes cfg as YAML.
func dumpConfig(w io.Writer, cfg terminal.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
