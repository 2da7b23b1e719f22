package workload

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/terminal-sim/terminal-sim/sim"
)

// SpawnFunc creates the process for arrival number id and starts it on s.
type SpawnFunc func(id int, s *sim.Simulator)

// Generator is the perpetual arrival process. Each time it fires it spawns
// the next arrival, draws a fresh gap from its sampler and schedules itself
// again. It never stops on its own; it simply stops being resumed once the
// simulator reaches its horizon.
type Generator struct {
	sampler ArrivalSampler
	rng     *rand.Rand
	spawn   SpawnFunc
	count   int
	started bool
}

// NewGenerator returns a Generator. Start it with sim.Start.
func NewGenerator(sampler ArrivalSampler, rng *rand.Rand, spawn SpawnFunc) *Generator {
	if sampler == nil || rng == nil || spawn == nil {
		panic("NewGenerator: sampler, rng and spawn must not be nil")
	}
	return &Generator{sampler: sampler, rng: rng, spawn: spawn}
}

// Name implements sim.Named.
func (g *Generator) Name() string { return "arrival-generator" }

// Generated returns how many arrivals have been spawned so far.
func (g *Generator) Generated() int { return g.count }

// Resume implements sim.Process.
func (g *Generator) Resume(s *sim.Simulator) {
	if g.started {
		id := g.count
		g.count++
		logrus.Debugf("[t=%10.2f] spawning arrival %d", s.Now(), id)
		g.spawn(id, s)
	}
	g.started = true
	s.Schedule(g.sampler.SampleIAT(g.rng), g)
}
