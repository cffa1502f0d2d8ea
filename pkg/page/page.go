// Package page holds the pure analyzers that operate on an already-fetched,
// parsed HTML document. They perform no I/O; everything they need is in the
// document and the reference domain.
package page

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"phishset/pkg/feature"
)

// LinkDensity is the ratio of anchor tags to words of document text. A page
// with no words has density 0; that is a legitimate value, not a failure.
func LinkDensity(doc *goquery.Document) feature.Field[float64] {
	linkCount := doc.Find("a").Length()
	wordCount := len(strings.Fields(doc.Text()))
	if wordCount == 0 {
		return feature.Ok(0.0)
	}
	return feature.Ok(float64(linkCount) / float64(wordCount))
}

// LinkCounts classifies every anchor with an href along three independent
// axes: external/internal, scheme bucket, and IP-literal host. The six
// counts fail atomically on a parse error.
type LinkCounts struct {
	External feature.Field[int]
	Internal feature.Field[int]
	IPBased  feature.Field[int]
	HTTPS    feature.Field[int]
	HTTP     feature.Field[int]
	Non      feature.Field[int]
}

func failedLinkCounts() LinkCounts {
	return LinkCounts{
		External: feature.Fail[int](),
		Internal: feature.Fail[int](),
		IPBased:  feature.Fail[int](),
		HTTPS:    feature.Fail[int](),
		HTTP:     feature.Fail[int](),
		Non:      feature.Fail[int](),
	}
}

// ClassifyLinks counts anchors by locality, scheme, and IP-literal hosts.
// A link is external when it has a network location that does not contain
// the reference domain, internal when the location does contain it;
// relative links count toward neither but still land in a scheme bucket.
// The https/http/non buckets partition all anchors with an href.
func ClassifyLinks(doc *goquery.Document, domain string) LinkCounts {
	var external, internal, ipBased, https, http, non int
	parseFailed := false

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			parseFailed = true
			return false
		}

		if u.Host != "" {
			if strings.Contains(u.Host, domain) {
				internal++
			} else {
				external++
			}
		}

		if h := u.Hostname(); h != "" && isIPLiteral(h) {
			ipBased++
		}

		switch u.Scheme {
		case "https":
			https++
		case "http":
			http++
		default:
			non++
		}
		return true
	})

	if parseFailed {
		return failedLinkCounts()
	}
	return LinkCounts{
		External: feature.Ok(external),
		Internal: feature.Ok(internal),
		IPBased:  feature.Ok(ipBased),
		HTTPS:    feature.Ok(https),
		HTTP:     feature.Ok(http),
		Non:      feature.Ok(non),
	}
}

// isIPLiteral reports whether a hostname consists solely of digits and dots.
func isIPLiteral(host string) bool {
	stripped := strings.ReplaceAll(host, ".", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IframeCounts carries the two iframe counters. They are independent; a
// single iframe may contribute to both, one, or neither.
type IframeCounts struct {
	External feature.Field[int]
	Hidden   feature.Field[int]
}

func failedIframeCounts() IframeCounts {
	return IframeCounts{
		External: feature.Fail[int](),
		Hidden:   feature.Fail[int](),
	}
}

// AnalyzeIframes counts iframes whose src points outside selfDomain and
// iframes declared hidden. Hidden means a width or height attribute equal
// to exactly "0" as a string; "0px" does not count.
func AnalyzeIframes(doc *goquery.Document, selfDomain string) IframeCounts {
	var external, hidden int
	parseFailed := false

	doc.Find("iframe").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := s.AttrOr("src", "")
		u, err := url.Parse(src)
		if err != nil {
			parseFailed = true
			return false
		}
		if u.Host != "" && !strings.Contains(src, selfDomain) {
			external++
		}

		if s.AttrOr("width", "") == "0" || s.AttrOr("height", "") == "0" {
			hidden++
		}
		return true
	})

	if parseFailed {
		return failedIframeCounts()
	}
	return IframeCounts{
		External: feature.Ok(external),
		Hidden:   feature.Ok(hidden),
	}
}
