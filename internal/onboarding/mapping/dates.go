package mapping

import (
	"regexp"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts tried, in order, for anything that is not already YYYY-MM-DD.
// Slash dates are month-first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// NormalizeDateLike renders input as a YYYY-MM-DD calendar date.
//
// A YYYY-MM-DD string is returned unchanged. Anything else is parsed against
// the known layouts and rendered as its UTC date. Empty or unparsable input
// yields ("", false).
func NormalizeDateLike(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}
	if isoDateRe.MatchString(s) {
		return s, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(isoDate), true
		}
	}
	return "", false
}

// normalizeOrEmpty is NormalizeDateLike for struct fields where "no date" is "".
func normalizeOrEmpty(input string) string {
	d, _ := NormalizeDateLike(input)
	return d
}
