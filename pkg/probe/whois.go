package probe

import (
	"context"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"golang.org/x/net/publicsuffix"

	"phishset/pkg/feature"
)

// whoisDateLayout is the canonical form for registry dates.
const whoisDateLayout = "2006-01-02T15:04:05Z"

// WhoisInfo carries the registrant country and the domain's creation and
// expiration dates. A query-level failure marks all three failed; a
// registry response that simply omits a field fails only that field.
type WhoisInfo struct {
	Country        feature.Field[string]
	CreationDate   feature.Field[string]
	ExpirationDate feature.Field[string]
}

func failedWhois() WhoisInfo {
	return WhoisInfo{
		Country:        feature.Fail[string](),
		CreationDate:   feature.Fail[string](),
		ExpirationDate: feature.Fail[string](),
	}
}

// LookupWhois queries the registration record for a domain's apex and
// extracts registrant country, creation date, and expiration date. The
// lookup runs on its own goroutine raced against the probe timeout so a
// slow or rate-limited registry never blocks the other probes.
func (p *Prober) LookupWhois(ctx context.Context, domain string) (info WhoisInfo) {
	info = failedWhois()

	apexDomain, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return info
	}

	// The parser library has been seen to panic on exotic registry output.
	defer func() {
		if r := recover(); r != nil {
			info = failedWhois()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type whoisResult struct {
		raw string
		err error
	}
	resultChan := make(chan whoisResult, 1)

	go func() {
		raw, err := whois.Whois(apexDomain)
		resultChan <- whoisResult{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return info
	case res := <-resultChan:
		if res.err != nil {
			return info
		}

		result, parseErr := whoisparser.Parse(res.raw)
		if parseErr != nil {
			return info
		}

		if result.Registrant != nil && result.Registrant.Country != "" {
			info.Country = feature.Ok(result.Registrant.Country)
		}
		if result.Domain != nil {
			if t, ok := parseWhoisDate(result.Domain.CreatedDate); ok {
				info.CreationDate = feature.Ok(t.Format(whoisDateLayout))
			}
			if t, ok := parseWhoisDate(result.Domain.ExpirationDate); ok {
				info.ExpirationDate = feature.Ok(t.Format(whoisDateLayout))
			}
		}
	}
	return info
}
