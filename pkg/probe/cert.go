package probe

import (
	"context"
	"crypto/tls"
	"net"

	"phishset/pkg/feature"
)

// certTimeLayout renders validity bounds the way a peer presents them.
const certTimeLayout = "Jan _2 15:04:05 2006 GMT"

// CertInfo carries the issuer fields and validity window of a peer
// certificate. The five fields fail atomically: a connection, handshake, or
// parsing error marks all of them failed, never a partial subset.
type CertInfo struct {
	Country      feature.Field[string]
	Organization feature.Field[string]
	CommonName   feature.Field[string]
	NotBefore    feature.Field[string]
	NotAfter     feature.Field[string]
}

func failedCert() CertInfo {
	return CertInfo{
		Country:      feature.Fail[string](),
		Organization: feature.Fail[string](),
		CommonName:   feature.Fail[string](),
		NotBefore:    feature.Fail[string](),
		NotAfter:     feature.Fail[string](),
	}
}

// InspectCertificate opens one TCP connection to the HTTPS port, performs a
// verifying TLS handshake against the system CA pool, and reads the leaf
// certificate's issuer country, organization, and common name plus its
// validity window. Exactly one attempt; no retry or backoff.
func (p *Prober) InspectCertificate(ctx context.Context, domain string) CertInfo {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rawConn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(domain, p.TLSPort))
	if err != nil {
		return failedCert()
	}
	defer rawConn.Close()

	tlsConn := tls.Client(rawConn, &tls.Config{ServerName: domain})
	defer tlsConn.Close()

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return failedCert()
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return failedCert()
	}

	issuer := certs[0].Issuer
	if len(issuer.Country) == 0 || len(issuer.Organization) == 0 || issuer.CommonName == "" {
		return failedCert()
	}

	return CertInfo{
		Country:      feature.Ok(issuer.Country[0]),
		Organization: feature.Ok(issuer.Organization[0]),
		CommonName:   feature.Ok(issuer.CommonName),
		NotBefore:    feature.Ok(certs[0].NotBefore.UTC().Format(certTimeLayout)),
		NotAfter:     feature.Ok(certs[0].NotAfter.UTC().Format(certTimeLayout)),
	}
}
