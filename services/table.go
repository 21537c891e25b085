// Package services maps TCP port numbers to service names, the way
// getservbyport does, with a built-in table for systems without
// /etc/services.
package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultFile is the system services database.
const DefaultFile = "/etc/services"

// IANA registrations for the ports people actually scan.
var builtin = map[uint16]string{
	7:     "echo",
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "domain",
	69:    "tftp",
	79:    "finger",
	80:    "http",
	88:    "kerberos",
	110:   "pop3",
	111:   "sunrpc",
	119:   "nntp",
	123:   "ntp",
	135:   "epmap",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	179:   "bgp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "submissions",
	514:   "shell",
	515:   "printer",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1433:  "ms-sql-s",
	1521:  "ncube-lm",
	1723:  "pptp",
	2049:  "nfs",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5432:  "postgresql",
	5900:  "rfb",
	6379:  "redis",
	8080:  "http-alt",
	11211: "memcache",
	27017: "mongodb",
}

// Table is a read-only port to name mapping once built; Lookup is safe for
// concurrent use.
type Table struct {
	names map[uint16]string
}

// New returns a table holding a copy of names.
func New(names map[uint16]string) *Table {
	t := &Table{names: make(map[uint16]string, len(names))}
	for p, n := range names {
		t.names[p] = n
	}
	return t
}

// Builtin returns a table of common IANA registrations.
func Builtin() *Table {
	return New(builtin)
}

// Lookup returns the service name registered for p.
func (t *Table) Lookup(p uint16) (string, bool) {
	if t == nil {
		return "", false
	}
	n, ok := t.names[p]
	return n, ok
}

// Len returns the number of registered ports.
func (t *Table) Len() int {
	return len(t.names)
}

// Merge adds names to t, replacing existing entries.
func (t *Table) Merge(names map[uint16]string) {
	for p, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			t.names[p] = n
		}
	}
}

// Parse reads tcp entries in services(5) format:
//
//	ssh             22/tcp                          # SSH Remote Login Protocol
//
// The first name listed for a port wins, as with getservbyport.
func Parse(r io.Reader) (map[uint16]string, error) {
	out := make(map[uint16]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			continue
		}
		num, proto, ok := strings.Cut(fields[1], "/")
		if !ok {
			return nil, fmt.Errorf("line %d: expected port/proto, got %q", line, fields[1])
		}
		if proto != "tcp" {
			continue
		}
		v, err := strconv.Atoi(num)
		if err != nil || v < 1 || v > 65535 {
			return nil, fmt.Errorf("line %d: invalid port %q", line, num)
		}
		if _, seen := out[uint16(v)]; !seen {
			out[uint16(v)] = fields[0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile parses the services database at path.
func LoadFile(path string) (map[uint16]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}
