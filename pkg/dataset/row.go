// Package dataset turns a list of URLs into a feature table: the row
// builder extracts one Record per URL, the assembler isolates per-URL
// failures across a batch, and the curator joins labels, balances classes,
// and persists the result.
package dataset

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"phishset/pkg/feature"
	"phishset/pkg/page"
	"phishset/pkg/probe"
)

// Prober is the network side of row building. Implementations must convert
// their own errors into failure markers and never block past their timeout.
type Prober interface {
	ResolveIP(ctx context.Context, domain string) feature.Field[string]
	InspectCertificate(ctx context.Context, domain string) probe.CertInfo
	LookupWhois(ctx context.Context, domain string) probe.WhoisInfo
}

// Extractor builds one feature Record per URL.
type Extractor struct {
	httpClient   *http.Client
	prober       Prober
	selfDomain   string
	fetchTimeout time.Duration
}

// NewExtractor creates an Extractor. The client is shared across rows; the
// fetch timeout bounds the single page fetch of each row.
func NewExtractor(client *http.Client, prober Prober, selfDomain string, fetchTimeout time.Duration) *Extractor {
	return &Extractor{
		httpClient:   client,
		prober:       prober,
		selfDomain:   selfDomain,
		fetchTimeout: fetchTimeout,
	}
}

// NewHTTPClient builds the shared page-fetch client. Certificate errors on
// the fetch itself are tolerated: the TLS probe renders its own verdict
// separately, and a phishing page behind a broken certificate is still a
// page worth extracting features from.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
	}
	return &http.Client{Transport: transport}
}

// BuildRow fetches httpURL exactly once, parses the document once, and fans
// out to the page analyzers and network probes. A fetch failure aborts the
// row and is returned to the caller; every other failure degrades to a
// failure marker on its own field.
func (e *Extractor) BuildRow(ctx context.Context, rawURL, httpURL string) (*feature.Record, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, httpURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("html parse failed: %w", err)
	}

	parsedURL, err := url.Parse(httpURL)
	if err != nil {
		return nil, fmt.Errorf("url parse failed: %w", err)
	}
	domain := parsedURL.Host
	host := parsedURL.Hostname()

	rec := &feature.Record{
		URL:     rawURL,
		Domain:  domain,
		IfHTTPS: ifHTTPS(rawURL),
	}

	// Analyzers all consume the one parsed document.
	rec.LinkDensity = page.LinkDensity(doc)

	links := page.ClassifyLinks(doc, domain)
	rec.ExternalLinks = links.External
	rec.InternalLinks = links.Internal
	rec.ExternalIPLinks = links.IPBased
	rec.HTTPSLinks = links.HTTPS
	rec.HTTPLinks = links.HTTP
	rec.NonLinks = links.Non

	iframes := page.AnalyzeIframes(doc, e.selfDomain)
	rec.ExternalIframes = iframes.External
	rec.HiddenIframes = iframes.Hidden

	// The probes share no state; run them independently and join all three
	// before the record is complete. Each applies its own timeout, so one
	// slow probe never delays or fails the others.
	var (
		ip   feature.Field[string]
		cert probe.CertInfo
		who  probe.WhoisInfo
		wg   sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		ip = e.prober.ResolveIP(ctx, host)
	}()
	go func() {
		defer wg.Done()
		cert = e.prober.InspectCertificate(ctx, host)
	}()
	go func() {
		defer wg.Done()
		who = e.prober.LookupWhois(ctx, host)
	}()
	wg.Wait()

	rec.IPAddress = ip
	rec.CertCountry = cert.Country
	rec.CertOrganization = cert.Organization
	rec.CertCommonName = cert.CommonName
	rec.CertNotBefore = cert.NotBefore
	rec.CertNotAfter = cert.NotAfter
	rec.WhoisCountry = who.Country
	rec.WhoisCreationDate = who.CreationDate
	rec.WhoisExpirationDate = who.ExpirationDate

	return rec, nil
}

// ifHTTPS reflects how the URL was presented to the system, not what was
// fetched: 1 when the original string carried an http/https scheme prefix.
func ifHTTPS(rawURL string) int {
	if strings.HasPrefix(rawURL, "https") || strings.HasPrefix(rawURL, "http") {
		return 1
	}
	return 0
}
