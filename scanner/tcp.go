package scanner

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"portprowler/port"
)

// DefaultTimeout is the per-probe connect timeout.
const DefaultTimeout = time.Second

// ServiceLookup maps a TCP port to its registered service name.
type ServiceLookup interface {
	Lookup(p uint16) (string, bool)
}

// Prober performs a single connect attempt.
type Prober interface {
	Probe(ctx context.Context, ip string, p uint16) port.Outcome
}

// TCPProber is a TCP connect prober. Every call opens one socket and closes it
// before returning.
type TCPProber struct {
	Timeout  time.Duration
	Services ServiceLookup
	Log      logrus.FieldLogger
}

// NewTCPProber returns a prober using timeout for every connect attempt.
// A non-positive timeout selects DefaultTimeout.
func NewTCPProber(timeout time.Duration, services ServiceLookup, log logrus.FieldLogger) *TCPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = discardLogger()
	}
	return &TCPProber{Timeout: timeout, Services: services, Log: log}
}

// Probe connects to ip:p and classifies the result. Errors never escape; they
// are folded into the returned Outcome.
func (t *TCPProber) Probe(ctx context.Context, ip string, p uint16) port.Outcome {
	addr := net.JoinHostPort(ip, strconv.Itoa(int(p)))
	d := net.Dialer{Timeout: t.dialTimeout()}
	log := t.Log
	if log == nil {
		log = discardLogger()
	}

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	res := port.Outcome{Port: p, RTT: time.Since(start)}

	if err == nil {
		_ = conn.Close()
		res.State = port.StateOpen
		if t.Services != nil {
			if name, ok := t.Services.Lookup(p); ok {
				res.Service = name
			}
		}
		log.WithFields(logrus.Fields{"addr": addr, "rtt": res.RTT}).Debug("tcp connect success")
		return res
	}

	res.State = ClassifyDialError(err)
	res.Err = err
	entry := log.WithFields(logrus.Fields{"addr": addr, "state": res.State})
	if res.State == port.StateError {
		entry.WithError(err).Debug("tcp probe error")
	} else {
		entry.Debug("tcp probe not open")
	}
	return res
}

// dialTimeout bounds every connect, including on a zero TCPProber.
func (t *TCPProber) dialTimeout() time.Duration {
	if t.Timeout <= 0 {
		return DefaultTimeout
	}
	return t.Timeout
}

// ClassifyDialError maps a dial error to a port state.
func ClassifyDialError(err error) port.State {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return port.StateClosed
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return port.StateFiltered
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return port.StateFiltered
	}
	// some platforms only surface the refusal in the message
	if strings.Contains(err.Error(), "connection refused") {
		return port.StateClosed
	}
	return port.StateError
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
