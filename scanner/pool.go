package scanner

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"portprowler/port"
)

// DefaultWorkers is the default pool size.
const DefaultWorkers = 100

// Progress observes completed ports. Implementations must be safe for
// concurrent use.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int)  {}
func (nopProgress) Increment() {}
func (nopProgress) Finish()    {}

// PoolConfig binds a worker pool to its shared state.
type PoolConfig struct {
	Size     int
	Queue    *WorkQueue
	Target   port.Target
	Prober   Prober
	Results  *Results
	Progress Progress
	Log      logrus.FieldLogger
}

// RunPool starts cfg.Size workers on cfg.Queue and returns once the queue's
// completion barrier releases. It returns the number of ports actually probed
// and, when ctx was cancelled before every port was probed, ctx's error.
func RunPool(ctx context.Context, cfg PoolConfig) (int, error) {
	if cfg.Progress == nil {
		cfg.Progress = nopProgress{}
	}
	if cfg.Log == nil {
		cfg.Log = discardLogger()
	}
	size := cfg.Size
	if size <= 0 {
		size = 1
	}
	// never more workers than ports
	if rem := cfg.Queue.Remaining(); size > rem {
		size = rem
	}

	var probed atomic.Int64
	var g errgroup.Group
	for i := 0; i < size; i++ {
		id := i
		g.Go(func() error {
			return work(ctx, id, cfg, &probed)
		})
	}

	cfg.Queue.Wait()
	err := g.Wait()
	return int(probed.Load()), err
}

// work drains the queue. After cancellation ports are still claimed and marked
// done, but not probed, so the barrier can release. It reports ctx's error if
// it skipped any port.
func work(ctx context.Context, id int, cfg PoolConfig, probed *atomic.Int64) error {
	log := cfg.Log.WithField("worker", id)
	skipped := 0
	for {
		p, ok := cfg.Queue.Take()
		if !ok {
			break
		}
		if ctx.Err() == nil {
			out := cfg.Prober.Probe(ctx, cfg.Target.IP, p)
			probed.Add(1)
			if out.State == port.StateOpen {
				cfg.Results.RecordOpen(p, out.Service)
			}
		} else {
			skipped++
		}
		cfg.Progress.Increment()
		cfg.Queue.MarkDone()
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Debug("queue drained after cancellation")
		return ctx.Err()
	}
	log.Debug("queue drained, worker exiting")
	return nil
}
