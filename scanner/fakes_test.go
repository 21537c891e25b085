package scanner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"portprowler/port"
)

// fakeProber reports ports in open as open and everything else closed. It
// counts calls per port and the peak number of concurrent probes.
type fakeProber struct {
	open  map[uint16]string
	delay time.Duration
	// onProbe runs after every probe with the running call total.
	onProbe func(total int64)

	mu    sync.Mutex
	calls map[uint16]int

	total    atomic.Int64
	inflight atomic.Int64
	peak     atomic.Int64
}

func newFakeProber(open map[uint16]string) *fakeProber {
	return &fakeProber{open: open, calls: make(map[uint16]int)}
}

func (f *fakeProber) Probe(ctx context.Context, ip string, p uint16) port.Outcome {
	n := f.inflight.Add(1)
	for {
		old := f.peak.Load()
		if n <= old || f.peak.CompareAndSwap(old, n) {
			break
		}
	}
	defer f.inflight.Add(-1)

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.calls[p]++
	f.mu.Unlock()
	total := f.total.Add(1)
	if f.onProbe != nil {
		f.onProbe(total)
	}

	if name, ok := f.open[p]; ok {
		return port.Outcome{Port: p, State: port.StateOpen, Service: name}
	}
	return port.Outcome{Port: p, State: port.StateClosed}
}

func (f *fakeProber) callCounts() map[uint16]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint16]int, len(f.calls))
	for p, n := range f.calls {
		out[p] = n
	}
	return out
}

type countingProgress struct {
	started  atomic.Int64
	count    atomic.Int64
	finished atomic.Bool
}

func (c *countingProgress) Start(total int) { c.started.Store(int64(total)) }
func (c *countingProgress) Increment()      { c.count.Add(1) }
func (c *countingProgress) Finish()         { c.finished.Store(true) }

type fakeResolver struct {
	ip  string
	err error
}

func (f fakeResolver) Resolve(ctx context.Context, host string) (string, error) {
	return f.ip, f.err
}

type fakeReverse struct {
	name string
	ok   bool
}

func (f fakeReverse) LookupAddr(ctx context.Context, ip string) (string, bool) {
	return f.name, f.ok
}

func openPorts(ops []port.OpenPort) []uint16 {
	out := make([]uint16, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Port)
	}
	return out
}

func equalPorts(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
