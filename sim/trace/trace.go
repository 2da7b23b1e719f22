package trace

import (
	"fmt"
	"io"
)

// Verbosity controls which records are printed as log lines.
type Verbosity string

const (
	// VerbosityVessels prints the vessel lifecycle lines only.
	VerbosityVessels Verbosity = "vessels"
	// VerbosityResources additionally prints every resource wait, grant and release.
	VerbosityResources Verbosity = "resources"
)

// validVerbosities maps accepted verbosity strings.
var validVerbosities = map[Verbosity]bool{
	VerbosityVessels:   true,
	VerbosityResources: true,
	"":                 true, // empty defaults to vessels
}

// IsValidVerbosity returns true if the given string is a recognized verbosity.
func IsValidVerbosity(v string) bool {
	return validVerbosities[Verbosity(v)]
}

// EventLog collects records in the order they happen. Because the simulator
// dispatches events in nondecreasing time order, the records are time-ordered.
type EventLog struct {
	RunID   string
	Records []Record
}

// NewEventLog creates an EventLog ready for recording.
func NewEventLog(runID string) *EventLog {
	return &EventLog{
		RunID:   runID,
		Records: make([]Record, 0),
	}
}

// Record appends a record.
func (l *EventLog) Record(r Record) {
	l.Records = append(l.Records, r)
}

// VesselRecords returns only the vessel lifecycle records.
func (l *EventLog) VesselRecords() []Record {
	out := make([]Record, 0, len(l.Records))
	for _, r := range l.Records {
		if r.IsVesselEvent() {
			out = append(out, r)
		}
	}
	return out
}

// Lines returns the formatted lines selected by v.
func (l *EventLog) Lines(v Verbosity) []string {
	lines := make([]string, 0, len(l.Records))
	for _, r := range l.Records {
		if r.IsVesselEvent() || v == VerbosityResources {
			lines = append(lines, r.Line())
		}
	}
	return lines
}

// Print writes the lines selected by v to w, one per line.
func (l *EventLog) Print(w io.Writer, v Verbosity) error {
	for _, line := range l.Lines(v) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing event log: %w", err)
		}
	}
	return nil
}
