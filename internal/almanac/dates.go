package almanac

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFormat marks a malformed date string, slug, or year/month key
// supplied by an external caller. It is distinct from a missing record: a
// well-formed date with no backing data yields an empty result, not an error.
var ErrInvalidFormat = errors.New("invalid format")

const (
	storageLayout = "2006-01-02" // YYYY-MM-DD, the storage date key
	displayLayout = "02-01-2006" // DD-MM-YYYY, the display/URL format
	slugPrefix    = "malayalam-calendar-"
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ToDisplay reformats a YYYY-MM-DD storage key as DD-MM-YYYY. It checks only
// the three-part hyphen-separated numeric shape, not calendar validity.
func ToDisplay(date string) (string, error) {
	y, m, d, err := splitDateKey(date, 4, 2, 2)
	if err != nil {
		return "", err
	}
	return d + "-" + m + "-" + y, nil
}

// FromURLDate converts a DD-MM-YYYY URL segment back to the storage key.
// Callers that take the result from untrusted input must additionally check
// ValidDate: FromURLDate accepts 31-02-2026 because it only reshapes.
func FromURLDate(s string) (string, error) {
	d, m, y, err := splitDateKey(s, 2, 2, 4)
	if err != nil {
		return "", err
	}
	return y + "-" + m + "-" + d, nil
}

// splitDateKey validates a three-part hyphen-separated numeric string with
// the given segment widths and returns the segments in input order.
func splitDateKey(s string, w0, w1, w2 int) (string, string, string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("date %q: %w", s, ErrInvalidFormat)
	}
	if len(parts[0]) != w0 || len(parts[1]) != w1 || len(parts[2]) != w2 {
		return "", "", "", fmt.Errorf("date %q: %w", s, ErrInvalidFormat)
	}
	for _, p := range parts {
		if !allDigits(p) {
			return "", "", "", fmt.Errorf("date %q: %w", s, ErrInvalidFormat)
		}
	}
	return parts[0], parts[1], parts[2], nil
}

// ValidDate reports whether a YYYY-MM-DD key denotes a real calendar date.
func ValidDate(date string) bool {
	t, err := time.Parse(storageLayout, date)
	if err != nil {
		return false
	}
	// time.Parse normalizes out-of-range days (2026-04-31 -> 2026-05-01),
	// so round-trip the result to catch them.
	return t.Format(storageLayout) == date
}

// ParseMonthSlug parses a "malayalam-calendar-<month>-<year>" route slug into
// a 4-digit year and zero-padded 2-digit month. The remainder after the fixed
// prefix must split into exactly two parts, which means English month names
// with internal hyphens are unsupported by the grammar; none of the twelve
// have one. Month matching is case-insensitive.
func ParseMonthSlug(slug string) (year, month string, err error) {
	rest, found := strings.CutPrefix(slug, slugPrefix)
	if !found {
		return "", "", fmt.Errorf("slug %q: missing prefix: %w", slug, ErrInvalidFormat)
	}
	parts := strings.Split(rest, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("slug %q: %w", slug, ErrInvalidFormat)
	}
	name, yr := parts[0], parts[1]
	if len(yr) != 4 || !allDigits(yr) {
		return "", "", fmt.Errorf("slug %q: year not 4 digits: %w", slug, ErrInvalidFormat)
	}
	for i, m := range monthNames {
		if strings.EqualFold(name, m) {
			return yr, fmt.Sprintf("%02d", i+1), nil
		}
	}
	return "", "", fmt.Errorf("slug %q: unknown month %q: %w", slug, name, ErrInvalidFormat)
}

// TodayInZone returns the current date key anchored to the given timezone,
// independent of the server host timezone. Every "today" comparison and
// default-date selection in the service goes through this one function.
func TodayInZone(loc *time.Location) string {
	return time.Now().In(loc).Format(storageLayout)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
