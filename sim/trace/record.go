// Package trace provides event-log recording for terminal simulations.
// This package has no dependencies on sim/ or its sub-packages — it stores pure data types.
package trace

import "fmt"

// Kind identifies what a Record describes.
type Kind string

const (
	// Vessel lifecycle kinds; these make up the human-readable log.
	KindArrival     Kind = "arrival"
	KindBerth       Kind = "berth"
	KindCraneUnload Kind = "crane_unload"
	KindDelivery    Kind = "delivery"
	KindDeparture   Kind = "departure"

	// Resource kinds, recorded for every pool.
	KindQueued  Kind = "queued"
	KindGrant   Kind = "grant"
	KindRelease Kind = "release"
)

// Record captures a single entry in the event log.
// Berth, Container and Truck are 1-based display numbers; zero means not applicable.
type Record struct {
	Time      float64
	Kind      Kind
	Vessel    int    // vessel identity; -1 for records not tied to a vessel
	Berth     int    // berth display id
	Container int    // container number within the vessel
	Truck     int    // truck number
	Resource  string // resource name, for resource kinds
	Slot      int    // 0-based unit index, for grant and release
	InUse     int    // units in use after the change
	Capacity  int    // resource capacity
	Holder    string // requesting process, for resource kinds
}

// IsVesselEvent reports whether the record is one of the five vessel lifecycle kinds.
func (r Record) IsVesselEvent() bool {
	switch r.Kind {
	case KindArrival, KindBerth, KindCraneUnload, KindDelivery, KindDeparture:
		return true
	}
	return false
}

// Description returns the event text without the timestamp.
func (r Record) Description() string {
	switch r.Kind {
	case KindArrival:
		return fmt.Sprintf("Vessel %d arrives at the terminal.", r.Vessel)
	case KindBerth:
		return fmt.Sprintf("Vessel %d berths at Berth %d.", r.Vessel, r.Berth)
	case KindCraneUnload:
		return fmt.Sprintf("Crane at Berth %d unloads container %d onto Truck %d.", r.Berth, r.Container, r.Truck)
	case KindDelivery:
		return fmt.Sprintf("Truck %d delivers container %d to yard block.", r.Truck, r.Container)
	case KindDeparture:
		return fmt.Sprintf("Vessel %d has finished unloading and leaves Berth %d.", r.Vessel, r.Berth)
	case KindQueued:
		return fmt.Sprintf("%s waits for %s (%d/%d in use).", r.Holder, r.Resource, r.InUse, r.Capacity)
	case KindGrant:
		return fmt.Sprintf("%s acquires %s unit %d (%d/%d in use).", r.Holder, r.Resource, r.Slot+1, r.InUse, r.Capacity)
	case KindRelease:
		return fmt.Sprintf("%s releases %s unit %d (%d/%d in use).", r.Holder, r.Resource, r.Slot+1, r.InUse, r.Capacity)
	default:
		return string(r.Kind)
	}
}

// Line formats the record as "<time> min: <description>" with the time
// printed to two decimal places.
func (r Record) Line() string {
	return fmt.Sprintf("%.2f min: %s", r.Time, r.Description())
}
