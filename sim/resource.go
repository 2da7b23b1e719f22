package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResourceObserver receives notifications about a Resource's request lifecycle.
// All callbacks run inside the simulator step that caused them.
type ResourceObserver interface {
	RequestQueued(now float64, res *Resource, req *Request)
	RequestGranted(now float64, res *Resource, req *Request)
	RequestReleased(now float64, res *Resource, req *Request)
}

// Request is the handle returned by Resource.Request. It is granted either
// immediately or later, when an earlier holder releases; in the latter case
// the owner is resumed at the grant time and finds Granted() true.
type Request struct {
	owner       Process
	granted     bool
	released    bool
	slot        int
	requestedAt float64
	grantedAt   float64
}

// Granted reports whether the request currently holds a unit of the resource
// (or held one before it was released).
func (r *Request) Granted() bool {
	return r.granted
}

// Released reports whether the request has been given back.
func (r *Request) Released() bool {
	return r.released
}

// Slot returns the 0-based unit index held by the request, or -1 if the
// request has not been granted yet.
func (r *Request) Slot() int {
	if !r.granted {
		return -1
	}
	return r.slot
}

// RequestedAt returns the simulation time the request was made.
func (r *Request) RequestedAt() float64 {
	return r.requestedAt
}

// GrantedAt returns the simulation time the request was granted.
func (r *Request) GrantedAt() float64 {
	return r.grantedAt
}

// Wait returns how long the request spent queued before being granted.
func (r *Request) Wait() float64 {
	return r.grantedAt - r.requestedAt
}

// OwnerName returns the requesting process's name, for logs.
func (r *Request) OwnerName() string {
	return processName(r.owner)
}

func (r *Request) String() string {
	return fmt.Sprintf("req(%s)", processName(r.owner))
}

// Resource is a counting semaphore over capacity identical units with a FIFO
// wait queue. A capacity of 1 models one exclusive device such as a truck;
// capacity N models N interchangeable units such as berths.
//
// Units are tracked as slots: a grant always takes the lowest free slot, so a
// holder keeps a stable unit index for as long as it holds the grant.
type Resource struct {
	name     string
	capacity int
	inUse    int
	slots    []bool
	waitQ    *WaitQueue
	sim      *Simulator
	observer ResourceObserver
}

// NewResource creates a Resource bound to sim. Capacity must be positive;
// configuration is expected to be validated before this point, so a bad
// capacity panics.
func NewResource(sim *Simulator, name string, capacity int) *Resource {
	if capacity < 1 {
		panic(fmt.Sprintf("NewResource %q: capacity must be positive, got %d", name, capacity))
	}
	return &Resource{
		name:     name,
		capacity: capacity,
		slots:    make([]bool, capacity),
		waitQ:    &WaitQueue{},
		sim:      sim,
	}
}

// SetObserver installs an observer for grants and releases. Passing nil removes it.
func (r *Resource) SetObserver(o ResourceObserver) {
	r.observer = o
}

// Name returns the resource name used in logs.
func (r *Resource) Name() string { return r.name }

// Capacity returns the number of units.
func (r *Resource) Capacity() int { return r.capacity }

// InUse returns the number of units currently granted.
func (r *Resource) InUse() int { return r.inUse }

// Queued returns the number of requests waiting.
func (r *Resource) Queued() int { return r.waitQ.Len() }

// Request asks for one unit on behalf of owner. If a unit is free the
// returned request is already granted and the caller continues without
// suspending. Otherwise the request joins the wait queue; the caller must
// suspend (return from Resume) and will be resumed at the grant time.
func (r *Resource) Request(owner Process) *Request {
	if owner == nil {
		panic("Request: owner must not be nil")
	}
	req := &Request{
		owner:       owner,
		slot:        -1,
		requestedAt: r.sim.Now(),
	}
	if r.inUse < r.capacity {
		r.grant(req)
		return req
	}
	r.waitQ.Enqueue(req)
	logrus.Debugf("[t=%10.2f] %s queued on %s (%d waiting)", r.sim.Now(), processName(owner), r.name, r.waitQ.Len())
	if r.observer != nil {
		r.observer.RequestQueued(r.sim.Now(), r, req)
	}
	return req
}

// Release gives back the unit held by req and hands it to the oldest waiting
// request, whose owner is scheduled to resume at the current time.
// Releasing an ungranted or already released request panics.
func (r *Resource) Release(req *Request) {
	if req == nil || !req.granted {
		panic(fmt.Sprintf("Release %s: request was never granted", r.name))
	}
	if req.released {
		panic(fmt.Sprintf("Release %s: request released twice", r.name))
	}
	req.released = true
	r.slots[req.slot] = false
	r.inUse--
	if r.inUse < 0 {
		panic(fmt.Sprintf("Release %s: in-use count went negative", r.name))
	}
	if r.observer != nil {
		r.observer.RequestReleased(r.sim.Now(), r, req)
	}

	if next := r.waitQ.Dequeue(); next != nil {
		r.grant(next)
		r.sim.Schedule(0, next.owner)
	}
}

func (r *Resource) grant(req *Request) {
	if r.inUse >= r.capacity {
		panic(fmt.Sprintf("grant %s: in use %d would exceed capacity %d", r.name, r.inUse+1, r.capacity))
	}
	slot := -1
	for i, busy := range r.slots {
		if !busy {
			slot = i
			break
		}
	}
	if slot < 0 {
		panic(fmt.Sprintf("grant %s: no free slot with %d/%d in use", r.name, r.inUse, r.capacity))
	}
	r.slots[slot] = true
	r.inUse++
	req.granted = true
	req.slot = slot
	req.grantedAt = r.sim.Now()
	logrus.Debugf("[t=%10.2f] %s granted %s slot %d (%d/%d)", r.sim.Now(), processName(req.owner), r.name, slot, r.inUse, r.capacity)
	if r.observer != nil {
		r.observer.RequestGranted(r.sim.Now(), r, req)
	}
}
