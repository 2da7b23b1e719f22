package terminal

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/terminal-sim/terminal-sim/sim"
	"github.com/terminal-sim/terminal-sim/sim/trace"
	"github.com/terminal-sim/terminal-sim/sim/workload"
)

// ErrInvalidHorizon is returned for a horizon that is not a positive finite number.
var ErrInvalidHorizon = errors.New("simulation horizon must be a positive finite number of minutes")

// Simulation wires a Simulator, a Terminal, an arrival Generator and an
// EventLog together for one run.
type Simulation struct {
	Config    Config
	RunID     string
	Sim       *sim.Simulator
	Terminal  *Terminal
	Generator *workload.Generator
	Log       *trace.EventLog
}

// NewSimulation validates cfg and builds a ready-to-run simulation. The
// arrival generator is started at time zero.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sampler := workload.NewArrivalSampler(cfg.Arrival, cfg.MeanInterArrival)
	return newSimulation(cfg, sampler), nil
}

func newSimulation(cfg Config, sampler workload.ArrivalSampler) *Simulation {
	runID := xid.New().String()
	s := sim.NewSimulator()
	log := trace.NewEventLog(runID)
	t := NewTerminal(s, cfg, log)
	gen := workload.NewGenerator(sampler, sim.NewPartitionedRNG(cfg.Seed).ForSubsystem(sim.SubsystemArrivals), t.Spawn)
	s.Start(gen)
	return &Simulation{
		Config:    cfg,
		RunID:     runID,
		Sim:       s,
		Terminal:  t,
		Generator: gen,
		Log:       log,
	}
}

// Run advances the simulation up to horizon minutes and returns the event
// log. Vessels still waiting or unloading at the horizon are abandoned.
func (s *Simulation) Run(horizon float64) (*trace.EventLog, error) {
	if err := ValidateHorizon(horizon); err != nil {
		return nil, err
	}
	entry := logrus.WithField("run", s.RunID)
	entry.Infof("Starting terminal simulation: horizon=%.2f min, berths=%d, cranes=%d, trucks=%d, seed=%d",
		horizon, s.Config.Berths, s.Config.Cranes, s.Config.Trucks, s.Config.Seed)

	n := s.Sim.RunUntil(horizon)

	entry.Infof("Simulation stopped at %.2f min after %d events; %d vessels spawned, %d events abandoned",
		s.Sim.Now(), n, s.Generator.Generated(), s.Sim.Pending())
	return s.Log, nil
}

// Summary summarizes the log up to the current simulation time.
func (s *Simulation) Summary() *trace.Summary {
	return trace.Summarize(s.Log, s.Sim.Now())
}

// ValidateHorizon checks that horizon is usable as a run length.
func ValidateHorizon(horizon float64) error {
	if math.IsNaN(horizon) || math.IsInf(horizon, 0) || horizon <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidHorizon, horizon)
	}
	return nil
}
