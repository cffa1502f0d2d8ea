package probe

import (
	"regexp"
	"time"
)

var compactDate = regexp.MustCompile(`(\d{8})`)

// parseWhoisDate tries multiple common layouts to parse a registry date
// string. Registries disagree on format, and some return several dates in
// one string; the first parseable one wins.
func parseWhoisDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	// A YYYYMMDD run anywhere in the string is the most common compact form.
	if match := compactDate.FindStringSubmatch(raw); len(match) > 1 {
		if t, err := time.Parse("20060102", match[1]); err == nil {
			return t, true
		}
	}

	layouts := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",

		"02-Jan-2006",
		"2006/01/02",
		"2006.01.02",
		"02.01.2006",

		"2006-01-02 15:04:05 MST",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
