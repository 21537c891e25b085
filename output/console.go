package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"portprowler/port"
)

// Placeholders substituted for absent lookups at render time.
const (
	UnknownService  = "unknown"
	NoReverseRecord = "No reverse DNS record"
	NoOpenPorts     = "No open ports found."
)

// PrintBanner announces a scan before it starts.
func PrintBanner(w io.Writer, host string, r port.Range) {
	fmt.Fprintf(w, "\nScanning target %s from port %d to %d\n\n", host, r.Start, r.End)
}

// PrintReport renders rep in full: PrintHeader followed by PrintSummary.
func PrintReport(w io.Writer, rep *port.Report) {
	PrintHeader(w, rep)
	PrintSummary(w, rep)
}

// PrintHeader writes the resolved address and reverse name. It is known
// before any port is probed.
func PrintHeader(w io.Writer, rep *port.Report) {
	reverse := rep.ReverseName
	if reverse == "" {
		reverse = NoReverseRecord
	}
	fmt.Fprintf(w, "Target IP: %s\n\n", rep.IP)
	fmt.Fprintf(w, "Reverse DNS: %s\n\n", reverse)
}

// PrintSummary writes the duration and the open port table or NoOpenPorts.
func PrintSummary(w io.Writer, rep *port.Report) {
	fmt.Fprintf(w, "Scan completed in: %s\n\n", FormatDuration(rep.Duration))
	if rep.Interrupted {
		fmt.Fprintln(w, "Scan interrupted: results are partial.")
		fmt.Fprintln(w)
	}

	if len(rep.Open) == 0 {
		fmt.Fprintln(w, NoOpenPorts)
		return
	}
	PrintTable(w, rep.Open)
}

// PrintTable writes the fixed-width PORT/STATE/SERVICE table.
func PrintTable(w io.Writer, open []port.OpenPort) {
	fmt.Fprintf(w, "%-10s%-8s%s\n", "PORT", "STATE", "SERVICE")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	for _, p := range open {
		svc := p.Service
		if svc == "" {
			svc = UnknownService
		}
		fmt.Fprintf(w, "%-10d%-8s%s\n", p.Port, "Open", svc)
	}
}

// FormatDuration rounds d for display; sub-millisecond scans keep microseconds.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}
