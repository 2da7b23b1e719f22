// Package terminal models a container terminal: the shared berth, crane and
// truck pools, and the vessel process that competes for them.
package terminal

import (
	"fmt"

	"github.com/terminal-sim/terminal-sim/sim"
	"github.com/terminal-sim/terminal-sim/sim/trace"
)

// Terminal owns the resource pools every vessel draws from. It lives for the
// whole run and is shared by all vessel processes.
type Terminal struct {
	Berths *sim.Resource
	Cranes *sim.Resource
	// one capacity-1 pool per truck so that trucks are independent
	Trucks []*sim.Resource

	cfg     Config
	log     *trace.EventLog
	vessels []*Vessel
}

// NewTerminal creates the pools described by cfg on s. Records are appended
// to log, which may be nil to disable recording. cfg must already be valid.
func NewTerminal(s *sim.Simulator, cfg Config, log *trace.EventLog) *Terminal {
	t := &Terminal{
		Berths: sim.NewResource(s, "berths", cfg.Berths),
		Cranes: sim.NewResource(s, "cranes", cfg.Cranes),
		Trucks: make([]*sim.Resource, cfg.Trucks),
		cfg:    cfg,
		log:    log,
	}
	for i := range t.Trucks {
		t.Trucks[i] = sim.NewResource(s, fmt.Sprintf("truck-%d", i+1), 1)
	}
	if log != nil {
		obs := &recorder{log: log}
		t.Berths.SetObserver(obs)
		t.Cranes.SetObserver(obs)
		for _, truck := range t.Trucks {
			truck.SetObserver(obs)
		}
	}
	return t
}

// Config returns the configuration the terminal was built with.
func (t *Terminal) Config() Config { return t.cfg }

// Vessels returns every vessel spawned so far, in arrival order.
func (t *Terminal) Vessels() []*Vessel { return t.vessels }

// Spawn creates vessel id and starts its process at the current time.
// It has the workload.SpawnFunc signature.
func (t *Terminal) Spawn(id int, s *sim.Simulator) {
	v := NewVessel(id, t.cfg.ContainersPerVessel, t)
	t.vessels = append(t.vessels, v)
	s.Start(v)
}

func (t *Terminal) record(r trace.Record) {
	if t.log != nil {
		t.log.Record(r)
	}
}

// recorder turns resource notifications into event-log records.
type recorder struct {
	log *trace.EventLog
}

func (o *recorder) RequestQueued(now float64, res *sim.Resource, req *sim.Request) {
	o.log.Record(o.resourceRecord(trace.KindQueued, now, res, req))
}

func (o *recorder) RequestGranted(now float64, res *sim.Resource, req *sim.Request) {
	o.log.Record(o.resourceRecord(trace.KindGrant, now, res, req))
}

func (o *recorder) RequestReleased(now float64, res *sim.Resource, req *sim.Request) {
	o.log.Record(o.resourceRecord(trace.KindRelease, now, res, req))
}

func (o *recorder) resourceRecord(kind trace.Kind, now float64, res *sim.Resource, req *sim.Request) trace.Record {
	return trace.Record{
		Time:     now,
		Kind:     kind,
		Vessel:   -1,
		Resource: res.Name(),
		Slot:     req.Slot(),
		InUse:    res.InUse(),
		Capacity: res.Capacity(),
		Holder:   req.OwnerName(),
	}
}
