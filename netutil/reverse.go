package netutil

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// DefaultResolvConf is where nameservers for PTR queries are read from.
const DefaultResolvConf = "/etc/resolv.conf"

// ReverseResolver looks up PTR records. It queries Servers in order; NXDOMAIN
// ends the lookup, any other failure moves on to the next server and finally
// to the system resolver.
type ReverseResolver struct {
	Servers  []string // host:port
	Timeout  time.Duration
	Fallback func(ctx context.Context, addr string) ([]string, error)
	Log      logrus.FieldLogger
}

// NewReverseResolver reads nameservers from resolvConf. A missing or broken
// file leaves Servers empty so every lookup goes to the system resolver.
func NewReverseResolver(resolvConf string, timeout time.Duration, log logrus.FieldLogger) *ReverseResolver {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	rr := &ReverseResolver{
		Timeout:  timeout,
		Fallback: net.DefaultResolver.LookupAddr,
		Log:      log,
	}
	cfg, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		log.WithError(err).Debug("no resolver config, reverse lookups use the system resolver")
		return rr
	}
	for _, s := range cfg.Servers {
		rr.Servers = append(rr.Servers, net.JoinHostPort(s, cfg.Port))
	}
	return rr
}

// LookupAddr returns the PTR name for ip without the trailing dot.
func (r *ReverseResolver) LookupAddr(ctx context.Context, ip string) (string, bool) {
	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		r.Log.WithError(err).WithField("ip", ip).Debug("cannot build reverse name")
		return "", false
	}

	m := new(dns.Msg)
	m.SetQuestion(arpa, dns.TypePTR)
	m.RecursionDesired = true
	c := &dns.Client{Timeout: r.Timeout}

	for _, srv := range r.Servers {
		in, _, err := c.ExchangeContext(ctx, m, srv)
		if err != nil {
			r.Log.WithError(err).WithField("server", srv).Debug("ptr query failed")
			continue
		}
		switch in.Rcode {
		case dns.RcodeSuccess:
		case dns.RcodeNameError:
			return "", false
		default:
			// SERVFAIL, REFUSED and friends say nothing about the record
			r.Log.WithFields(logrus.Fields{"server": srv, "rcode": dns.RcodeToString[in.Rcode]}).Debug("ptr query rejected")
			continue
		}
		for _, ans := range in.Answer {
			if ptr, ok := ans.(*dns.PTR); ok {
				return strings.TrimSuffix(ptr.Ptr, "."), true
			}
		}
		return "", false
	}

	if r.Fallback == nil {
		return "", false
	}
	names, err := r.Fallback(ctx, ip)
	if err != nil || len(names) == 0 {
		return "", false
	}
	return strings.TrimSuffix(names[0], "."), true
}
