package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminal-sim/terminal-sim/sim"
	"github.com/terminal-sim/terminal-sim/sim/trace"
)

// handoffConfig is a small terminal where the crane-truck timings are easy to follow.
func handoffConfig() Config {
	cfg := DefaultConfig()
	cfg.ContainersPerVessel = 2
	cfg.CraneTime = 3
	cfg.TruckTime = 6
	cfg.Berths = 1
	cfg.Cranes = 1
	cfg.Trucks = 1
	return cfg
}

// spawnAt makes vessel id arrive at the given absolute time.
func spawnAt(s *sim.Simulator, term *Terminal, id int, at float64) {
	s.Schedule(at-s.Now(), sim.ProcessFunc(func(s *sim.Simulator) {
		term.Spawn(id, s)
	}))
}

func recordsFor(l *trace.EventLog, vessel int, kind trace.Kind) []trace.Record {
	var out []trace.Record
	for _, r := range l.VesselRecords() {
		if r.Vessel == vessel && r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func TestVessel_SingleBerth_SecondVesselWaitsForDeparture(t *testing.T) {
	// GIVEN one berth and vessels arriving at t=0 and t=1
	s := sim.NewSimulator()
	log := trace.NewEventLog("test")
	term := NewTerminal(s, handoffConfig(), log)
	spawnAt(s, term, 0, 0)
	spawnAt(s, term, 1, 1)

	// WHEN the run completes both vessels
	s.RunUntil(100)

	// THEN vessel 1 berths exactly when vessel 0 leaves, on the same berth
	want := []string{
		"0.00 min: Vessel 0 arrives at the terminal.",
		"0.00 min: Vessel 0 berths at Berth 1.",
		"1.00 min: Vessel 1 arrives at the terminal.",
		"3.00 min: Crane at Berth 1 unloads container 1 onto Truck 1.",
		"9.00 min: Truck 1 delivers container 1 to yard block.",
		"12.00 min: Crane at Berth 1 unloads container 2 onto Truck 1.",
		"18.00 min: Truck 1 delivers container 2 to yard block.",
		"18.00 min: Vessel 0 has finished unloading and leaves Berth 1.",
		"18.00 min: Vessel 1 berths at Berth 1.",
		"21.00 min: Crane at Berth 1 unloads container 1 onto Truck 1.",
		"27.00 min: Truck 1 delivers container 1 to yard block.",
		"30.00 min: Crane at Berth 1 unloads container 2 onto Truck 1.",
		"36.00 min: Truck 1 delivers container 2 to yard block.",
		"36.00 min: Vessel 1 has finished unloading and leaves Berth 1.",
	}
	assert.Equal(t, want, log.Lines(trace.VerbosityVessels))
	require.NoError(t, trace.Verify(log.Records))

	vessels := term.Vessels()
	require.Len(t, vessels, 2)
	assert.Equal(t, 18.0, vessels[1].BerthedAt)
	assert.Equal(t, vessels[0].DepartedAt, vessels[1].BerthedAt)
	for _, v := range vessels {
		assert.Equal(t, StateDeparted, v.State())
		assert.Equal(t, 2, v.Delivered())
	}
}

func TestVessel_SingleContainer_DeliveredNineMinutesAfterBerthing(t *testing.T) {
	// GIVEN one container per vessel, one truck, crane 3 min and truck 6 min
	cfg := handoffConfig()
	cfg.ContainersPerVessel = 1
	cfg.Arrival.Process = "constant"
	cfg.MeanInterArrival = 100
	sm, err := NewSimulation(cfg)
	require.NoError(t, err)

	// WHEN nine vessels arrive and leave
	log, err := sm.Run(950)
	require.NoError(t, err)

	// THEN each vessel has exactly one crane line and one delivery, at berth+3 and berth+9
	require.Len(t, sm.Terminal.Vessels(), 9)
	for _, v := range sm.Terminal.Vessels() {
		cranes := recordsFor(log, v.ID, trace.KindCraneUnload)
		deliveries := recordsFor(log, v.ID, trace.KindDelivery)
		require.Len(t, cranes, 1, "vessel %d", v.ID)
		require.Len(t, deliveries, 1, "vessel %d", v.ID)
		assert.InDelta(t, v.BerthedAt+3, cranes[0].Time, 1e-9)
		assert.InDelta(t, v.BerthedAt+9, deliveries[0].Time, 1e-9)
		assert.Equal(t, 1, deliveries[0].Truck)
	}
}

func TestVessel_AbandonedAtHorizon(t *testing.T) {
	// GIVEN two vessels competing for one berth
	s := sim.NewSimulator()
	log := trace.NewEventLog("test")
	term := NewTerminal(s, handoffConfig(), log)
	spawnAt(s, term, 0, 0)
	spawnAt(s, term, 1, 1)

	// WHEN the horizon falls in the middle of vessel 0's unloading
	s.RunUntil(10)

	// THEN nobody departs and the unfinished work is left in the queue
	vessels := term.Vessels()
	require.Len(t, vessels, 2)
	assert.Equal(t, StateBerthedUnloading, vessels[0].State())
	assert.Equal(t, 1, vessels[0].Delivered())
	assert.Equal(t, StateAwaitingBerth, vessels[1].State())
	assert.Equal(t, 0, vessels[1].BerthID)
	assert.Empty(t, recordsFor(log, 0, trace.KindDeparture))
	assert.Equal(t, 1, term.Berths.Queued())
	assert.Equal(t, 10.0, s.Now())
	assert.Equal(t, 1, s.Pending())
}

func TestVessel_BerthIDsStableWhileHeld(t *testing.T) {
	// GIVEN two berths and three vessels arriving together
	cfg := handoffConfig()
	cfg.Berths = 2
	cfg.Trucks = 3
	s := sim.NewSimulator()
	log := trace.NewEventLog("test")
	term := NewTerminal(s, cfg, log)
	for id := 0; id < 3; id++ {
		spawnAt(s, term, id, 0)
	}

	// WHEN all three finish
	s.RunUntil(500)

	// THEN the first two take berths 1 and 2 and the third reuses the berth freed first
	vessels := term.Vessels()
	require.Len(t, vessels, 3)
	assert.Equal(t, 1, vessels[0].BerthID)
	assert.Equal(t, 2, vessels[1].BerthID)
	assert.Equal(t, vessels[0].DepartedAt, vessels[2].BerthedAt)
	assert.Equal(t, 1, vessels[2].BerthID)
	for _, v := range vessels {
		dep := recordsFor(log, v.ID, trace.KindDeparture)
		require.Len(t, dep, 1)
		assert.Equal(t, v.BerthID, dep[0].Berth, "vessel %d leaves the berth it took", v.ID)
	}
	require.NoError(t, trace.Verify(log.Records))
}

func TestVessel_CraneContention_DelaysSecondVessel(t *testing.T) {
	tests := []struct {
		name       string
		contention bool
		wantFirst  float64
	}{
		{"contention off", false, 12},
		{"contention on", true, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN two berths, one crane and two trucks
			cfg := handoffConfig()
			cfg.Berths = 2
			cfg.Cranes = 1
			cfg.Trucks = 2
			cfg.CraneContention = tt.contention
			s := sim.NewSimulator()
			log := trace.NewEventLog("test")
			term := NewTerminal(s, cfg, log)
			spawnAt(s, term, 0, 0)
			spawnAt(s, term, 1, 3)

			// WHEN both vessels unload
			s.RunUntil(200)

			// THEN vessel 1's first crane line depends on whether the crane is contended
			cranes := recordsFor(log, 1, trace.KindCraneUnload)
			require.NotEmpty(t, cranes)
			assert.Equal(t, tt.wantFirst, cranes[0].Time)
			require.NoError(t, trace.Verify(log.Records))
		})
	}
}

func TestVessel_TrucksServeConcurrently(t *testing.T) {
	// GIVEN several berths and trucks with vessels arriving close together
	cfg := handoffConfig()
	cfg.ContainersPerVessel = 4
	cfg.Berths = 3
	cfg.Trucks = 3
	s := sim.NewSimulator()
	log := trace.NewEventLog("test")
	term := NewTerminal(s, cfg, log)
	for id := 0; id < 4; id++ {
		spawnAt(s, term, id, float64(5*(id+1)))
	}

	// WHEN the run completes
	s.RunUntil(500)

	// THEN different trucks are busy at the same time, but a single truck never is twice
	type interval struct{ from, to float64 }
	held := map[string][]interval{}
	open := map[string]float64{}
	for _, r := range log.Records {
		if !strings.HasPrefix(r.Resource, "truck-") {
			continue
		}
		switch r.Kind {
		case trace.KindGrant:
			open[r.Resource] = r.Time
		case trace.KindRelease:
			held[r.Resource] = append(held[r.Resource], interval{open[r.Resource], r.Time})
		}
	}
	overlap := false
	for a, as := range held {
		for b, bs := range held {
			if a == b {
				continue
			}
			for _, x := range as {
				for _, y := range bs {
					if x.from < y.to && y.from < x.to {
						overlap = true
					}
				}
			}
		}
	}
	assert.True(t, overlap, "expected at least two trucks to be busy at the same time")
	require.NoError(t, trace.Verify(log.Records))
}

func TestVesselState_String(t *testing.T) {
	assert.Equal(t, "arrived", StateArrived.String())
	assert.Equal(t, "awaiting_berth", StateAwaitingBerth.String())
	assert.Equal(t, "berthed_unloading", StateBerthedUnloading.String())
	assert.Equal(t, "departed", StateDeparted.String())
	assert.Equal(t, "VesselState(9)", VesselState(9).String())
}
