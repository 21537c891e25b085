package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"portprowler/netutil"
	"portprowler/port"
)

// ErrResolution matches any *ResolutionError via errors.Is.
var ErrResolution = errors.New("target resolution failed")

// ResolutionError is returned by Scan when the host cannot be resolved.
// No port has been probed when it is returned.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// Resolver turns a host name or IP literal into the address to scan.
type Resolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// ReverseLookup returns the PTR name for ip, if any.
type ReverseLookup interface {
	LookupAddr(ctx context.Context, ip string) (string, bool)
}

// Config contains runtime configuration for the Manager.
type Config struct {
	Workers int
	Timeout time.Duration

	Resolver Resolver      // defaults to netutil.Resolver
	Reverse  ReverseLookup // nil skips reverse lookup
	Services ServiceLookup // nil leaves every service name empty
	Prober   Prober        // defaults to a TCPProber built from Timeout and Services
	Progress Progress
	Log      logrus.FieldLogger

	// Resolved, if set, receives the report once the target is resolved and
	// before any port is probed. Only ID, Host, IP, ReverseName, Range and
	// Workers are filled in at that point.
	Resolved func(rep *port.Report)
}

// Manager orchestrates one scan at a time: resolve, seed the queue, run the
// pool, collect the report.
type Manager struct {
	cfg Config
}

// NewManager fills in defaults for unset fields of cfg.
func NewManager(cfg Config) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log == nil {
		cfg.Log = discardLogger()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = netutil.NewResolver()
	}
	if cfg.Progress == nil {
		cfg.Progress = nopProgress{}
	}
	if cfg.Prober == nil {
		cfg.Prober = NewTCPProber(cfg.Timeout, cfg.Services, cfg.Log)
	}
	return &Manager{cfg: cfg}
}

// Scan probes every port of r on host and returns the sorted report.
// Per-port failures never surface here; the only scan-level failures are an
// invalid range and a *ResolutionError.
func (m *Manager) Scan(ctx context.Context, host string, r port.Range) (*port.Report, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid port range: %w", err)
	}

	id := uuid.NewString()
	log := m.cfg.Log.WithFields(logrus.Fields{"scan_id": id, "host": host})

	ip, err := m.cfg.Resolver.Resolve(ctx, host)
	if err != nil {
		log.WithError(err).Debug("resolution failed, aborting scan")
		return nil, &ResolutionError{Host: host, Err: err}
	}
	log = log.WithField("ip", ip)

	rep := &port.Report{
		ID:      id,
		Host:    host,
		IP:      ip,
		Range:   r,
		Workers: m.cfg.Workers,
	}
	if m.cfg.Reverse != nil {
		if name, ok := m.cfg.Reverse.LookupAddr(ctx, ip); ok {
			rep.ReverseName = name
		}
	}

	if m.cfg.Resolved != nil {
		m.cfg.Resolved(rep)
	}
	log.WithFields(logrus.Fields{"range": r.String(), "workers": m.cfg.Workers}).Info("scan started")

	start := time.Now()
	q := NewWorkQueue(r)
	results := NewResults()
	m.cfg.Progress.Start(r.Len())
	probed, poolErr := RunPool(ctx, PoolConfig{
		Size:     m.cfg.Workers,
		Queue:    q,
		Target:   port.Target{Host: host, IP: ip},
		Prober:   m.cfg.Prober,
		Results:  results,
		Progress: m.cfg.Progress,
		Log:      log,
	})
	rep.Duration = time.Since(start)
	m.cfg.Progress.Finish()

	rep.Open = results.Snapshot()
	rep.Interrupted = poolErr != nil

	log.WithFields(logrus.Fields{
		"duration":    rep.Duration,
		"open":        len(rep.Open),
		"probed":      probed,
		"interrupted": rep.Interrupted,
	}).Info("scan completed")
	return rep, nil
}
