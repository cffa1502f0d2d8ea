// Package probe holds the network-facing feature extractors: DNS
// resolution, TLS certificate inspection, and WHOIS lookup. Every probe is
// first-attempt-final, applies its own bounded timeout, and converts any
// error into failure markers instead of returning it.
package probe

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"

	"phishset/pkg/feature"
)

// Prober performs the network probes for a domain.
type Prober struct {
	// TLSPort is the port the certificate probe dials, "443" by default.
	TLSPort string

	dnsServer string
	timeout   time.Duration
	dnsClient dns.Client
	dialer    net.Dialer
}

// New creates a Prober that queries the given DNS server address
// (host:port) and bounds every probe with timeout.
func New(dnsServer string, timeout time.Duration) *Prober {
	return &Prober{
		TLSPort:   "443",
		dnsServer: dnsServer,
		timeout:   timeout,
	}
}

// ResolveIP resolves a domain to its first A record. Any resolution error
// (unknown host, timeout, malformed name, empty answer) yields the failure
// marker; no retries.
func (p *Prober) ResolveIP(ctx context.Context, domain string) feature.Field[string] {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	m := dns.Msg{}
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	in, _, err := p.dnsClient.ExchangeContext(ctx, &m, p.dnsServer)
	if err != nil || in.Rcode != dns.RcodeSuccess {
		return feature.Fail[string]()
	}

	for _, ans := range in.Answer {
		if a, ok := ans.(*dns.A); ok {
			return feature.Ok(a.A.String())
		}
	}
	return feature.Fail[string]()
}
