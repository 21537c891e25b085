package port

import (
	"fmt"
	"time"
)

// State classifies the outcome of a single connect probe.
type State int

const (
	StateOpen State = iota
	StateClosed
	StateFiltered // timeout, no answer within the probe deadline
	StateError    // any other I/O failure
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateFiltered:
		return "filtered"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Range is an inclusive span of TCP ports.
type Range struct {
	Start uint16
	End   uint16
}

// Validate reports whether r satisfies 1 <= Start <= End.
func (r Range) Validate() error {
	if r.Start == 0 || r.End == 0 {
		return fmt.Errorf("port numbers must be in 1..65535, got %d-%d", r.Start, r.End)
	}
	if r.Start > r.End {
		return fmt.Errorf("range start greater than end: %d-%d", r.Start, r.End)
	}
	return nil
}

// Len returns the number of ports in r, or 0 for an inverted range.
func (r Range) Len() int {
	if r.Start > r.End {
		return 0
	}
	return int(r.End) - int(r.Start) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Target is a host resolved once before scanning.
type Target struct {
	Host string // as supplied by the user
	IP   string
}

// Outcome is the classified result of probing one port.
// Service is only set for StateOpen and is empty when no name is registered.
type Outcome struct {
	Port    uint16
	State   State
	Service string
	Err     error
	RTT     time.Duration
}

// OpenPort is a retained scan result.
type OpenPort struct {
	Port    uint16
	Service string // empty when the port has no registered name
}

// Report is everything the formatter needs after a scan completes.
type Report struct {
	ID          string
	Host        string
	IP          string
	ReverseName string // empty when reverse lookup found nothing
	Range       Range
	Workers     int
	Duration    time.Duration
	Open        []OpenPort // ascending by port
	Interrupted bool       // scan cancelled before every port was probed
}
