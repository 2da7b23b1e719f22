package sim

import "fmt"

// Process is a resumable unit of simulation logic, such as one vessel's
// lifecycle. The Simulator calls Resume each time an event targeting the
// process fires. Resume runs without interruption until the process either
// finishes or suspends itself by scheduling a timeout or by holding an
// ungranted resource Request, and then returns.
//
// Implementations keep their own resume point (typically a state field), so
// continuations are plain data the event queue can store.
type Process interface {
	Resume(sim *Simulator)
}

// ProcessFunc adapts an ordinary function to the Process interface.
// It is convenient for one-shot callbacks and tests.
type ProcessFunc func(sim *Simulator)

// Resume calls f(sim).
func (f ProcessFunc) Resume(sim *Simulator) {
	f(sim)
}

// Named is implemented by processes that want a readable name in logs.
type Named interface {
	Name() string
}

func processName(p Process) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
