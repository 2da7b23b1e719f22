package sim

import "fmt"

// Event is a pending wake-up of a Process at a point in simulated time.
// Events are ordered by Time, then by Seq, so that events scheduled for the
// same instant fire in the order they were scheduled.
type Event struct {
	time   float64 // Simulation time at which the target resumes (in minutes)
	seq    uint64  // Insertion sequence number, assigned by the Simulator
	target Process // Continuation to resume
}

// Timestamp returns the scheduled time of the event.
func (e *Event) Timestamp() float64 {
	return e.time
}

// Seq returns the insertion sequence number used to break timestamp ties.
func (e *Event) Seq() uint64 {
	return e.seq
}

// Target returns the process that is resumed when the event fires.
func (e *Event) Target() Process {
	return e.target
}

func (e *Event) String() string {
	return fmt.Sprintf("event#%d@%.2f(%s)", e.seq, e.time, processName(e.target))
}

// before reports whether e must fire before other.
func (e *Event) before(other *Event) bool {
	if e.time != other.time {
		return e.time < other.time
	}
	return e.seq < other.seq
}
