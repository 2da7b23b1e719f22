package trace

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// ResourceSummary aggregates the grant history of one resource.
type ResourceSummary struct {
	Name        string
	Capacity    int
	Grants      int
	PeakInUse   int
	BusyTime    float64 // unit-minutes held, up to the end of the run
	Utilization float64 // BusyTime / (Capacity * run length)
}

// Summary aggregates statistics from an EventLog.
type Summary struct {
	RunID               string
	End                 float64
	VesselsArrived      int
	VesselsBerthed      int
	VesselsDeparted     int
	VesselsInFlight     int // arrived but not departed when the run ended
	ContainersDelivered int
	MeanBerthWait       float64 // minutes between arrival and berthing
	StdDevBerthWait     float64
	MeanTurnaround      float64 // minutes between arrival and departure
	Resources           []ResourceSummary // in order of first appearance
}

// Summarize computes aggregate statistics from an EventLog for a run that
// ended at time end. Safe for nil or empty logs (returns zero-value fields).
func Summarize(l *EventLog, end float64) *Summary {
	summary := &Summary{End: end}
	if l == nil {
		return summary
	}
	summary.RunID = l.RunID

	arrivals := make(map[int]float64)
	var waits, turnarounds []float64

	type occupancy struct {
		idx   int
		inUse int
		last  float64
	}
	resources := make(map[string]*occupancy)

	for _, r := range l.Records {
		switch r.Kind {
		case KindArrival:
			summary.VesselsArrived++
			arrivals[r.Vessel] = r.Time
		case KindBerth:
			summary.VesselsBerthed++
			if at, ok := arrivals[r.Vessel]; ok {
				waits = append(waits, r.Time-at)
			}
		case KindDelivery:
			summary.ContainersDelivered++
		case KindDeparture:
			summary.VesselsDeparted++
			if at, ok := arrivals[r.Vessel]; ok {
				turnarounds = append(turnarounds, r.Time-at)
			}
		case KindGrant, KindRelease:
			occ, ok := resources[r.Resource]
			if !ok {
				occ = &occupancy{idx: len(summary.Resources)}
				resources[r.Resource] = occ
				summary.Resources = append(summary.Resources, ResourceSummary{Name: r.Resource, Capacity: r.Capacity})
			}
			rs := &summary.Resources[occ.idx]
			rs.BusyTime += float64(occ.inUse) * (r.Time - occ.last)
			occ.last = r.Time
			occ.inUse = r.InUse
			if r.Kind == KindGrant {
				rs.Grants++
			}
			if r.InUse > rs.PeakInUse {
				rs.PeakInUse = r.InUse
			}
		}
	}

	summary.VesselsInFlight = summary.VesselsArrived - summary.VesselsDeparted
	for _, occ := range resources {
		rs := &summary.Resources[occ.idx]
		if end > occ.last {
			rs.BusyTime += float64(occ.inUse) * (end - occ.last)
		}
		if end > 0 && rs.Capacity > 0 {
			rs.Utilization = rs.BusyTime / (float64(rs.Capacity) * end)
		}
	}

	if len(waits) > 0 {
		summary.MeanBerthWait = stat.Mean(waits, nil)
	}
	if len(waits) > 1 {
		summary.StdDevBerthWait = stat.StdDev(waits, nil)
	}
	if len(turnarounds) > 0 {
		summary.MeanTurnaround = stat.Mean(turnarounds, nil)
	}
	return summary
}

// Print writes a human-readable report of the summary to w.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "=== Run Summary (%s) ===\n", s.RunID)
	fmt.Fprintf(w, "Simulated time       : %.2f min\n", s.End)
	fmt.Fprintf(w, "Vessels arrived      : %d\n", s.VesselsArrived)
	fmt.Fprintf(w, "Vessels berthed      : %d\n", s.VesselsBerthed)
	fmt.Fprintf(w, "Vessels departed     : %d\n", s.VesselsDeparted)
	fmt.Fprintf(w, "Vessels in flight    : %d\n", s.VesselsInFlight)
	fmt.Fprintf(w, "Containers delivered : %d\n", s.ContainersDelivered)
	fmt.Fprintf(w, "Berth wait           : mean %.2f min, stddev %.2f min\n", s.MeanBerthWait, s.StdDevBerthWait)
	fmt.Fprintf(w, "Turnaround           : mean %.2f min\n", s.MeanTurnaround)
	for _, rs := range s.Resources {
		fmt.Fprintf(w, "  %-10s cap=%d grants=%d peak=%d utilization=%.1f%%\n",
			rs.Name, rs.Capacity, rs.Grants, rs.PeakInUse, rs.Utilization*100)
	}
}
