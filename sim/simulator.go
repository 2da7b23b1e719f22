// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time and the event loop.
// It is single-threaded: exactly one Process runs at a time, and a process
// only gives control back by returning from Resume.
type Simulator struct {
	clock float64
	// queue holds every pending wake-up, ordered by (time, seq)
	queue   *EventQueue
	nextSeq uint64
	// number of events handed to processes so far
	dispatched int
	// true while a process is being resumed; the clock must not move then
	dispatching bool
}

// NewSimulator returns a Simulator with its clock at zero and no pending events.
func NewSimulator() *Simulator {
	return &Simulator{
		queue: NewEventQueue(),
	}
}

// Now returns the current simulation time in minutes.
func (sim *Simulator) Now() float64 {
	return sim.clock
}

// Pending returns the number of events waiting in the queue.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Dispatched returns how many events have been executed.
func (sim *Simulator) Dispatched() int {
	return sim.dispatched
}

// Schedule queues p to be resumed delay minutes from now.
// A zero delay resumes p at the current time, after every event already
// queued for that time. A negative or non-finite delay is a scheduler bug
// and panics.
func (sim *Simulator) Schedule(delay float64, p Process) {
	if p == nil {
		panic("Schedule: process must not be nil")
	}
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		panic(fmt.Sprintf("Schedule: invalid delay %v for %s at t=%.2f", delay, processName(p), sim.clock))
	}
	ev := &Event{
		time:   sim.clock + delay,
		seq:    sim.nextSeq,
		target: p,
	}
	sim.nextSeq++
	sim.queue.Schedule(ev)
}

// Start queues p to run at the current time.
func (sim *Simulator) Start(p Process) {
	sim.Schedule(0, p)
}

// RunUntil executes events in (time, seq) order until the next event lies
// beyond horizon or the queue is empty. Events scheduled exactly at horizon
// still fire. When the loop stops the clock is moved forward to horizon, and
// anything left in the queue is abandoned. Returns the number of events
// executed by this call.
func (sim *Simulator) RunUntil(horizon float64) int {
	if sim.dispatching {
		panic("RunUntil: called from inside a running process")
	}
	count := 0
	for {
		next := sim.queue.Peek()
		if next == nil || next.time > horizon {
			break
		}
		ev := sim.queue.PopNext()
		if ev.time < sim.clock {
			panic(fmt.Sprintf("RunUntil: time moved backward: popped %s while clock is %.4f", ev, sim.clock))
		}
		// advance the clock
		sim.clock = ev.time
		logrus.Debugf("[t=%10.2f] Executing %s", sim.clock, ev)

		sim.dispatching = true
		ev.target.Resume(sim)
		sim.dispatching = false

		sim.dispatched++
		count++
	}
	if horizon > sim.clock && !math.IsInf(horizon, 1) {
		sim.clock = horizon
	}
	logrus.Debugf("[t=%10.2f] Run stopped after %d events, %d pending", sim.clock, count, sim.queue.Len())
	return count
}
