// Package normalize turns raw extracted page text into record fields.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"licensure/internal/domain"
)

var spaceRun = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs to single spaces and trims the ends.
func Clean(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// dateLayouts is the fixed, ordered list of formats the licensing pages have
// been observed to use. First successful parse wins.
var dateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"01-02-2006",
	"2006/01/02",
}

// ParseDate parses page text into a date. Unparseable text reports false;
// there is no default date.
func ParseDate(s string) (time.Time, bool) {
	s = Clean(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DatePtr is ParseDate for nullable record fields.
func DatePtr(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

// Finalize applies the sentinel default: an empty license number becomes
// UNKNOWN because it participates in the persistence key and must not be
// null. Status stays empty when absent.
func Finalize(rec *domain.LicenseRecord) {
	rec.LicenseNumber = Clean(rec.LicenseNumber)
	if rec.LicenseNumber == "" {
		rec.LicenseNumber = domain.UnknownLicenseNumber
	}
	rec.Status = Clean(rec.Status)
}
