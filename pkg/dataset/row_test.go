package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"phishset/pkg/feature"
	"phishset/pkg/probe"
)

// stubProber returns canned probe outcomes so row-builder tests stay off
// the network.
type stubProber struct {
	ip   feature.Field[string]
	cert probe.CertInfo
	who  probe.WhoisInfo
}

func (s *stubProber) ResolveIP(ctx context.Context, domain string) feature.Field[string] {
	return s.ip
}

func (s *stubProber) InspectCertificate(ctx context.Context, domain string) probe.CertInfo {
	return s.cert
}

func (s *stubProber) LookupWhois(ctx context.Context, domain string) probe.WhoisInfo {
	return s.who
}

func failingProber() *stubProber {
	return &stubProber{
		ip: feature.Fail[string](),
		cert: probe.CertInfo{
			Country:      feature.Fail[string](),
			Organization: feature.Fail[string](),
			CommonName:   feature.Fail[string](),
			NotBefore:    feature.Fail[string](),
			NotAfter:     feature.Fail[string](),
		},
		who: probe.WhoisInfo{
			Country:        feature.Fail[string](),
			CreationDate:   feature.Fail[string](),
			ExpirationDate: feature.Fail[string](),
		},
	}
}

const fixtureHTML = `<html><body>
<p>welcome to the site</p>
<a href="https://other.com/x">out</a>
<iframe src="//ads.example.net" width="0"></iframe>
</body></html>`

func TestBuildRowMaterializesDespiteProbeFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixtureHTML))
	}))
	defer ts.Close()

	e := NewExtractor(ts.Client(), failingProber(), "site.com", 5*time.Second)

	rec, err := e.BuildRow(context.Background(), ts.URL, ts.URL)
	if err != nil {
		t.Fatalf("BuildRow returned error on a successful fetch: %v", err)
	}

	u, _ := url.Parse(ts.URL)
	if rec.Domain != u.Host {
		t.Errorf("Domain = %q, want %q", rec.Domain, u.Host)
	}

	// Probe failures degrade to markers, never abort the row.
	if !rec.IPAddress.Failed() {
		t.Errorf("IP address should carry the failure marker")
	}
	if !rec.CertCountry.Failed() || !rec.WhoisCountry.Failed() {
		t.Errorf("probe-backed fields should carry failure markers")
	}

	// Analyzer results come from the single shared parse.
	if v, ok := rec.ExternalLinks.Value(); !ok || v != 1 {
		t.Errorf("external links = %v (ok=%v), want 1", v, ok)
	}
	if v, ok := rec.HTTPSLinks.Value(); !ok || v != 1 {
		t.Errorf("https links = %v (ok=%v), want 1", v, ok)
	}
	if v, ok := rec.ExternalIframes.Value(); !ok || v != 1 {
		t.Errorf("external iframes = %v (ok=%v), want 1", v, ok)
	}
	if v, ok := rec.HiddenIframes.Value(); !ok || v != 1 {
		t.Errorf("hidden iframes = %v (ok=%v), want 1", v, ok)
	}
	if v, ok := rec.LinkDensity.Value(); !ok || v != 0.2 {
		t.Errorf("link density = %v (ok=%v), want 0.2", v, ok)
	}
}

func TestBuildRowFetchFailureAbortsRow(t *testing.T) {
	e := NewExtractor(&http.Client{}, failingProber(), "site.com", time.Second)

	rec, err := e.BuildRow(context.Background(), "127.0.0.1:1", "http://127.0.0.1:1/")
	if err == nil {
		t.Fatalf("expected error for an unreachable host")
	}
	if rec != nil {
		t.Errorf("no record may be materialized when the fetch fails")
	}
}

func TestBuildRowProbeSuccessValues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>hello</body></html>`))
	}))
	defer ts.Close()

	p := failingProber()
	p.ip = feature.Ok("203.0.113.7")
	p.who.Country = feature.Ok("US")
	e := NewExtractor(ts.Client(), p, "site.com", 5*time.Second)

	rec, err := e.BuildRow(context.Background(), ts.URL, ts.URL)
	if err != nil {
		t.Fatalf("BuildRow: %v", err)
	}

	if v, ok := rec.IPAddress.Value(); !ok || v != "203.0.113.7" {
		t.Errorf("IP address = %q (ok=%v), want 203.0.113.7", v, ok)
	}
	if v, ok := rec.WhoisCountry.Value(); !ok || v != "US" {
		t.Errorf("whois country = %q (ok=%v), want US", v, ok)
	}
	// One probe failing leaves the others untouched.
	if !rec.CertCountry.Failed() {
		t.Errorf("cert fields should still be failed")
	}
}

func TestIfHTTPSReflectsOriginalURL(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"https://example.com", 1},
		{"http://example.com", 1},
		{"example.com", 0},
		{"ftp://example.com", 0},
	}
	for _, tc := range cases {
		if got := ifHTTPS(tc.raw); got != tc.want {
			t.Errorf("ifHTTPS(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
