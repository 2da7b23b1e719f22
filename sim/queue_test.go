package sim

import (
	"testing"
)

func TestWaitQueue_FIFO(t *testing.T) {
	// GIVEN a queue with requests [A, B, C]
	wq := &WaitQueue{}
	reqs := []*Request{{slot: -1}, {slot: -1}, {slot: -1}}
	for _, r := range reqs {
		wq.Enqueue(r)
	}

	// WHEN dequeued until empty
	// THEN they come out in insertion order
	for i, want := range reqs {
		if got := wq.Dequeue(); got != want {
			t.Errorf("Dequeue %d: got %p, want %p", i, got, want)
		}
	}
	if wq.Dequeue() != nil {
		t.Error("Dequeue on empty queue should return nil")
	}
}

func TestWaitQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with requests [A, B]
	wq := &WaitQueue{}
	reqA := &Request{}
	reqB := &Request{}
	wq.Enqueue(reqA)
	wq.Enqueue(reqB)

	// WHEN Peek() is called
	got := wq.Peek()

	// THEN it returns the front element without removing it
	if got != reqA {
		t.Errorf("Peek: got %p, want %p", got, reqA)
	}
	if wq.Len() != 2 {
		t.Errorf("Peek modified queue length: got %d, want 2", wq.Len())
	}
}

func TestWaitQueue_Peek_Empty_ReturnsNil(t *testing.T) {
	wq := &WaitQueue{}
	if got := wq.Peek(); got != nil {
		t.Errorf("Peek on empty queue: got %v, want nil", got)
	}
}

func TestWaitQueue_Enqueue_Nil_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Enqueue(nil) should panic")
		}
	}()
	(&WaitQueue{}).Enqueue(nil)
}
