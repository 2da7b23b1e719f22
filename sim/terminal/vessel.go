package terminal

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/terminal-sim/terminal-sim/sim"
	"github.com/terminal-sim/terminal-sim/sim/trace"
)

// VesselState represents the lifecycle state of a vessel.
type VesselState int

const (
	StateArrived VesselState = iota
	StateAwaitingBerth
	StateBerthedUnloading
	StateDeparted
)

func (s VesselState) String() string {
	switch s {
	case StateArrived:
		return "arrived"
	case StateAwaitingBerth:
		return "awaiting_berth"
	case StateBerthedUnloading:
		return "berthed_unloading"
	case StateDeparted:
		return "departed"
	default:
		return fmt.Sprintf("VesselState(%d)", int(s))
	}
}

// unloadStep is the resume point inside StateBerthedUnloading.
type unloadStep int

const (
	stepRequestTruck unloadStep = iota
	stepAwaitTruck
	stepAwaitCrane
	stepCraneService
	stepTruckTransit
)

// Vessel is the process for one ship: wait for a berth, unload every
// container through the crane-truck handoff, release the berth and leave.
// It is an explicit state machine; Resume continues from wherever the vessel
// last suspended.
type Vessel struct {
	ID         int
	BerthID    int // 1-based berth display id, 0 until berthed
	Containers int

	ArrivedAt  float64
	BerthedAt  float64
	DepartedAt float64

	state     VesselState
	step      unloadStep
	container int // 0-based index of the container being handled
	truck     int // 0-based truck serving the current container
	delivered int

	berthReq *sim.Request
	truckReq *sim.Request
	craneReq *sim.Request

	terminal *Terminal
}

// NewVessel creates a vessel in StateArrived. It does nothing until started
// on a simulator.
func NewVessel(id, containers int, t *Terminal) *Vessel {
	return &Vessel{
		ID:         id,
		Containers: containers,
		terminal:   t,
		state:      StateArrived,
	}
}

// Name implements sim.Named.
func (v *Vessel) Name() string { return fmt.Sprintf("Vessel %d", v.ID) }

// State returns the current lifecycle state.
func (v *Vessel) State() VesselState { return v.state }

// Delivered returns the number of containers delivered to the yard so far.
func (v *Vessel) Delivered() int { return v.delivered }

// Resume implements sim.Process.
func (v *Vessel) Resume(s *sim.Simulator) {
	for {
		switch v.state {
		case StateArrived:
			v.ArrivedAt = s.Now()
			v.record(s, trace.KindArrival)
			v.state = StateAwaitingBerth
			v.berthReq = v.terminal.Berths.Request(v)
			if !v.berthReq.Granted() {
				return
			}

		case StateAwaitingBerth:
			mustHold(v, v.berthReq, "berth")
			v.BerthID = v.berthReq.Slot() + 1
			v.BerthedAt = s.Now()
			v.record(s, trace.KindBerth)
			v.state = StateBerthedUnloading
			v.step = stepRequestTruck
			v.container = 0

		case StateBerthedUnloading:
			if !v.unload(s) {
				return
			}
			v.terminal.Berths.Release(v.berthReq)
			v.DepartedAt = s.Now()
			v.record(s, trace.KindDeparture)
			v.state = StateDeparted
			logrus.Debugf("[t=%10.2f] %s departed after %.2f min", s.Now(), v.Name(), v.DepartedAt-v.ArrivedAt)
			return

		case StateDeparted:
			logrus.Warnf("[t=%10.2f] %s resumed after departure", s.Now(), v.Name())
			return
		}
	}
}

// unload advances the per-container loop until the vessel has to wait.
// It returns true once every container has been delivered.
func (v *Vessel) unload(s *sim.Simulator) bool {
	cfg := v.terminal.cfg
	for {
		switch v.step {
		case stepRequestTruck:
			if v.container >= v.Containers {
				return true
			}
			// round-robin over trucks by container index
			v.truck = v.container % len(v.terminal.Trucks)
			v.step = stepAwaitTruck
			v.truckReq = v.terminal.Trucks[v.truck].Request(v)
			if !v.truckReq.Granted() {
				return false
			}

		case stepAwaitTruck:
			mustHold(v, v.truckReq, "truck")
			if cfg.CraneContention {
				v.step = stepAwaitCrane
				v.craneReq = v.terminal.Cranes.Request(v)
				if !v.craneReq.Granted() {
					return false
				}
				continue
			}
			v.step = stepCraneService
			s.Schedule(cfg.CraneTime, v)
			return false

		case stepAwaitCrane:
			mustHold(v, v.craneReq, "crane")
			v.step = stepCraneService
			s.Schedule(cfg.CraneTime, v)
			return false

		case stepCraneService:
			v.record(s, trace.KindCraneUnload)
			if v.craneReq != nil {
				v.terminal.Cranes.Release(v.craneReq)
				v.craneReq = nil
			}
			v.step = stepTruckTransit
			s.Schedule(cfg.TruckTime, v)
			return false

		case stepTruckTransit:
			v.record(s, trace.KindDelivery)
			v.terminal.Trucks[v.truck].Release(v.truckReq)
			v.truckReq = nil
			v.delivered++
			v.container++
			v.step = stepRequestTruck
		}
	}
}

func (v *Vessel) record(s *sim.Simulator, kind trace.Kind) {
	r := trace.Record{
		Time:   s.Now(),
		Kind:   kind,
		Vessel: v.ID,
		Berth:  v.BerthID,
	}
	if kind == trace.KindCraneUnload || kind == trace.KindDelivery {
		r.Container = v.container + 1
		r.Truck = v.truck + 1
	}
	v.terminal.record(r)
}

func mustHold(v *Vessel, req *sim.Request, what string) {
	if req == nil || !req.Granted() {
		panic(fmt.Sprintf("%s resumed without holding its %s", v.Name(), what))
	}
}
