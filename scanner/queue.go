package scanner

import (
	"sync"

	"portprowler/port"
)

// WorkQueue hands out the ports of a Range to concurrent workers.
//
// pending starts at the number of ports and is decremented only by MarkDone,
// so it always equals unclaimed + in-flight. Wait returns when it hits zero,
// which makes "queue empty and nothing in flight" a single condition.
type WorkQueue struct {
	mu   sync.Mutex
	next int // next unclaimed port
	last int

	pending sync.WaitGroup
}

// NewWorkQueue returns a queue holding every port of r.
func NewWorkQueue(r port.Range) *WorkQueue {
	q := &WorkQueue{next: int(r.Start), last: int(r.End)}
	q.pending.Add(r.Len())
	return q
}

// Take claims the next unclaimed port. It returns false once every port has
// been claimed and never blocks beyond the internal lock.
func (q *WorkQueue) Take() (uint16, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next > q.last {
		return 0, false
	}
	p := uint16(q.next)
	q.next++
	return p, true
}

// MarkDone records that one claimed port has been fully processed.
// It must be called exactly once per successful Take.
func (q *WorkQueue) MarkDone() {
	q.pending.Done()
}

// Wait blocks until every port has been taken and marked done.
func (q *WorkQueue) Wait() {
	q.pending.Wait()
}

// Remaining returns the number of ports not yet claimed.
func (q *WorkQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next > q.last {
		return 0
	}
	return q.last - q.next + 1
}
