// Package progress renders scan progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Bar draws one "Scanning Ports" bar per scan. The zero value is not usable;
// call New.
type Bar struct {
	w io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// New returns a Bar writing to w.
func New(w io.Writer) *Bar {
	return &Bar{w: w}
}

// Start resets the bar for total ports.
func (b *Bar) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("Scanning Ports"),
		progressbar.OptionSetItsString("port"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(30),
	)
}

// Increment advances the bar by one port. Calls before Start are ignored.
func (b *Bar) Increment() {
	if pb := b.current(); pb != nil {
		_ = pb.Add(1)
	}
}

// Finish fills the bar and ends the line.
func (b *Bar) Finish() {
	if pb := b.current(); pb != nil {
		_ = pb.Finish()
		fmt.Fprintln(b.w)
	}
}

// Percent reports completion in [0,1].
func (b *Bar) Percent() float64 {
	if pb := b.current(); pb != nil {
		return pb.State().CurrentPercent
	}
	return 0
}

func (b *Bar) current() *progressbar.ProgressBar {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bar
}
