package trace

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error returned from Verify.
var ErrInvariant = errors.New("event log invariant violated")

// Verify replays records and checks the ordering and occupancy invariants
// every terminal run must satisfy:
//   - record times never decrease
//   - for each resource, grants minus releases stays within [0, capacity]
//   - a resource unit is never granted twice without a release in between
//   - per vessel, deliveries are in strictly increasing container order
//   - a vessel berths before any of its containers move and departs last
//
// Returns nil when all hold.
func Verify(records []Record) error {
	type vesselState struct {
		berthed       bool
		departed      bool
		lastDelivered int
	}
	inUse := make(map[string]int)
	held := make(map[string]map[int]bool)
	vessels := make(map[int]*vesselState)

	last := 0.0
	for i, r := range records {
		if r.Time < last {
			return fmt.Errorf("%w: record %d at %.2f precedes %.2f", ErrInvariant, i, r.Time, last)
		}
		last = r.Time

		switch r.Kind {
		case KindGrant:
			inUse[r.Resource]++
			if inUse[r.Resource] > r.Capacity {
				return fmt.Errorf("%w: %s in use %d exceeds capacity %d at %.2f",
					ErrInvariant, r.Resource, inUse[r.Resource], r.Capacity, r.Time)
			}
			if held[r.Resource] == nil {
				held[r.Resource] = make(map[int]bool)
			}
			if held[r.Resource][r.Slot] {
				return fmt.Errorf("%w: %s unit %d granted twice at %.2f", ErrInvariant, r.Resource, r.Slot+1, r.Time)
			}
			held[r.Resource][r.Slot] = true
		case KindRelease:
			inUse[r.Resource]--
			if inUse[r.Resource] < 0 {
				return fmt.Errorf("%w: %s released more than granted at %.2f", ErrInvariant, r.Resource, r.Time)
			}
			if !held[r.Resource][r.Slot] {
				return fmt.Errorf("%w: %s unit %d released while free at %.2f", ErrInvariant, r.Resource, r.Slot+1, r.Time)
			}
			held[r.Resource][r.Slot] = false
		}

		if !r.IsVesselEvent() {
			continue
		}
		vs, ok := vessels[r.Vessel]
		if !ok {
			vs = &vesselState{}
			vessels[r.Vessel] = vs
		}
		if vs.departed {
			return fmt.Errorf("%w: vessel %d has %s record after departure at %.2f", ErrInvariant, r.Vessel, r.Kind, r.Time)
		}
		switch r.Kind {
		case KindBerth:
			vs.berthed = true
		case KindCraneUnload, KindDelivery:
			if !vs.berthed {
				return fmt.Errorf("%w: vessel %d moves container %d before berthing", ErrInvariant, r.Vessel, r.Container)
			}
			if r.Kind == KindDelivery {
				if r.Container <= vs.lastDelivered {
					return fmt.Errorf("%w: vessel %d delivered container %d after container %d",
						ErrInvariant, r.Vessel, r.Container, vs.lastDelivered)
				}
				vs.lastDelivered = r.Container
			}
		case KindDeparture:
			if !vs.berthed {
				return fmt.Errorf("%w: vessel %d departs without berthing", ErrInvariant, r.Vessel)
			}
			vs.departed = true
		}
	}
	return nil
}
