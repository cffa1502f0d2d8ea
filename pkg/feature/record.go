package feature

import "strconv"

// Record is one row of the output dataset, describing one URL. A Record is
// only materialized when the page fetch for its URL succeeded; every field
// inside it may independently be a failure marker.
type Record struct {
	URL    string
	Domain string

	IPAddress Field[string]

	LinkDensity     Field[float64]
	ExternalLinks   Field[int]
	InternalLinks   Field[int]
	ExternalIPLinks Field[int]
	HTTPLinks       Field[int]
	HTTPSLinks      Field[int]
	NonLinks        Field[int]

	ExternalIframes Field[int]
	HiddenIframes   Field[int]

	CertCountry      Field[string]
	CertOrganization Field[string]
	CertCommonName   Field[string]
	CertNotBefore    Field[string]
	CertNotAfter     Field[string]

	IfHTTPS int

	WhoisCountry        Field[string]
	WhoisCreationDate   Field[string]
	WhoisExpirationDate Field[string]
}

// Header is the column order of the output table. The label column, when
// present, is appended after these.
var Header = []string{
	"URL",
	"Domain",
	"IP Address",
	"Link Density",
	"External Links Count",
	"Internal Links Count",
	"External IP Count",
	"HTTP Count",
	"HTTPS Count",
	"Non Count",
	"External Iframes Count",
	"Hidden Iframes Count",
	"Country",
	"Organization",
	"Certificate",
	"Certificate Not Before",
	"Certificate Not After",
	"If HTTPS",
	"Whois Country",
	"Whois Creation Date",
	"Whois Expiration Date",
}

func stringCell(f Field[string]) string {
	if v, ok := f.Value(); ok {
		return v
	}
	return Sentinel
}

func intCell(f Field[int]) string {
	if v, ok := f.Value(); ok {
		return strconv.Itoa(v)
	}
	return Sentinel
}

func floatCell(f Field[float64]) string {
	if v, ok := f.Value(); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return Sentinel
}

// ToCSVRow converts the Record into a slice of strings matching Header.
func (r Record) ToCSVRow() []string {
	return []string{
		r.URL,
		r.Domain,
		stringCell(r.IPAddress),
		floatCell(r.LinkDensity),
		intCell(r.ExternalLinks),
		intCell(r.InternalLinks),
		intCell(r.ExternalIPLinks),
		intCell(r.HTTPLinks),
		intCell(r.HTTPSLinks),
		intCell(r.NonLinks),
		intCell(r.ExternalIframes),
		intCell(r.HiddenIframes),
		stringCell(r.CertCountry),
		stringCell(r.CertOrganization),
		stringCell(r.CertCommonName),
		stringCell(r.CertNotBefore),
		stringCell(r.CertNotAfter),
		strconv.Itoa(r.IfHTTPS),
		stringCell(r.WhoisCountry),
		stringCell(r.WhoisCreationDate),
		stringCell(r.WhoisExpirationDate),
	}
}
