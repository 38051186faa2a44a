// Implements the PriorityQueue that drives event-driven advancement.

package sim

import (
	"container/heap"
	"errors"
)

// ErrQueueUnderflow is the panic value of Remove on an empty queue.
var ErrQueueUnderflow = errors.New("priority queue underflow: remove from empty queue")

// eventHeap implements heap.Interface.
// Ordering: timestamp → kind priority → sequence number.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ei, ej := h[i], h[j]
	if !ei.Timestamp().Equal(ej.Timestamp()) {
		return ei.Timestamp().Before(ej.Timestamp())
	}
	pi, pj := EventKindPriority[ei.Kind()], EventKindPriority[ej.Kind()]
	if pi != pj {
		return pi < pj
	}
	return ei.Seq() < ej.Seq()
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}

// PriorityQueue is a min-queue of events with a total, deterministic order.
type PriorityQueue struct {
	events eventHeap
}

// NewPriorityQueue creates an empty queue.
func NewPriorityQueue() *PriorityQueue {
	q := &PriorityQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Add inserts an event in O(log n).
func (q *PriorityQueue) Add(e Event) {
	heap.Push(&q.events, e)
}

// Remove removes and returns the earliest event.
// Panics with ErrQueueUnderflow if the queue is empty; check IsEmpty first.
func (q *PriorityQueue) Remove() Event {
	if len(q.events) == 0 {
		panic(ErrQueueUnderflow)
	}
	return heap.Pop(&q.events).(Event)
}

// Peek returns the earliest event without removing it, or nil if empty.
func (q *PriorityQueue) Peek() Event {
	if len(q.events) == 0 {
		return nil
	}
	return q.events[0]
}

// IsEmpty reports whether the queue holds no events.
func (q *PriorityQueue) IsEmpty() bool {
	return len(q.events) == 0
}

// Len returns the number of queued events.
func (q *PriorityQueue) Len() int {
	return len(q.events)
}
