package netutil

import (
	"context"
	"errors"
	"net"
	"strings"
)

// LookupIPFunc has the signature of (*net.Resolver).LookupIP so tests can
// substitute it.
type LookupIPFunc func(ctx context.Context, network, host string) ([]net.IP, error)

// Resolver resolves scan targets to a single address.
type Resolver struct {
	LookupIP LookupIPFunc
}

// NewResolver returns a Resolver backed by the system resolver.
func NewResolver() *Resolver {
	return &Resolver{LookupIP: net.DefaultResolver.LookupIP}
}

// Resolve returns target as-is when it is an IP literal, otherwise the first
// IPv4 address it resolves to, or the first IPv6 address when there is no A
// record.
func (r *Resolver) Resolve(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("empty target")
	}
	if ip := net.ParseIP(strings.Trim(target, "[]")); ip != nil {
		return ip.String(), nil
	}

	lookup := r.LookupIP
	if lookup == nil {
		lookup = net.DefaultResolver.LookupIP
	}
	ips, err := lookup(ctx, "ip", target)
	if err != nil {
		return "", err
	}
	ip := PreferIPv4(ips)
	if ip == nil {
		return "", errors.New("no addresses found for host")
	}
	return ip.String(), nil
}

// PreferIPv4 picks the first IPv4 address, falling back to the first address
// of any family. It returns nil for an empty slice.
func PreferIPv4(ips []net.IP) net.IP {
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4
		}
	}
	if len(ips) > 0 {
		return ips[0]
	}
	return nil
}
