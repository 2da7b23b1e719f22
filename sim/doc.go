// Package sim provides the discrete-event scheduling core used by the
// container terminal simulator.
//
// # Reading Guide
//
//   - event.go, event_queue.go: pending wake-ups ordered by (time, seq)
//   - simulator.go: the clock and the RunUntil event loop
//   - process.go: the Process continuation interface
//   - resource.go, queue.go: counting-semaphore resources with FIFO waiters
//   - rng.go: per-subsystem seeded random streams
//
// # Execution Model
//
// Scheduling is single-threaded and cooperative. A Process is resumed by the
// Simulator, runs until it reaches a suspension point, and returns. The two
// suspension points are a timed delay (Simulator.Schedule with a positive
// delay) and a Resource.Request that could not be granted immediately. Events
// at the same time fire in the order they were scheduled, which makes every
// run reproducible for a fixed seed.
//
// Domain packages live below this one:
//   - sim/workload/: inter-arrival samplers and the arrival generator process
//   - sim/terminal/: terminal configuration, resource pools and the vessel process
//   - sim/trace/: event-log records, invariant checks and run summaries
package sim
