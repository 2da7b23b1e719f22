package sim

import (
	"hash/fnv"
	"math/rand"
)

// SubsystemArrivals is the RNG stream that draws vessel inter-arrival gaps.
// It uses the run seed directly, so a given --seed always yields the same
// arrival sequence.
const SubsystemArrivals = "arrivals"

// PartitionedRNG hands out one deterministic *rand.Rand per named subsystem,
// so that drawing from one stream never shifts another.
//
// Derivation:
//   - SubsystemArrivals: the seed itself
//   - any other name: seed XOR fnv1a64(name)
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG for a run seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls with the same name return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derived := p.seed
	if name != SubsystemArrivals {
		derived ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derived))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the run seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
