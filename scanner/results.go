package scanner

import (
	"sort"
	"sync"

	"portprowler/port"
)

// Results collects open ports from concurrent workers.
type Results struct {
	mu   sync.Mutex
	open []port.OpenPort
}

// NewResults returns an empty aggregator.
func NewResults() *Results {
	return &Results{}
}

// RecordOpen appends an open port. Safe for concurrent use.
func (r *Results) RecordOpen(p uint16, service string) {
	r.mu.Lock()
	r.open = append(r.open, port.OpenPort{Port: p, Service: service})
	r.mu.Unlock()
}

// Len returns the number of recorded ports.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// Snapshot returns a copy of the recorded ports sorted ascending by port.
func (r *Results) Snapshot() []port.OpenPort {
	r.mu.Lock()
	out := make([]port.OpenPort, len(r.open))
	copy(out, r.open)
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Port < out[j].Port })
	return out
}
