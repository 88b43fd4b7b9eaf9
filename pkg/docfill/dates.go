package docfill

import (
	"regexp"
	"strings"
	"time"
)

// Common date format patterns tried by the generic parse step
var commonDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",

	"01/02/2006",
	"02/01/2006", // European style
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",

	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	"January 2006",
}

var (
	isoPrefixRegex    = regexp.MustCompile(`^(\d{4})-\d{2}-\d{2}`)
	trailingYearRegex = regexp.MustCompile(`/(\d{4})\s*$`)
)

// normalizeYear reduces a date string to its 4-digit year. The chain is:
// ISO YYYY-MM-DD prefix, trailing /YYYY, generic date parse, and finally
// pass-through of the raw string.
func normalizeYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if m := isoPrefixRegex.FindStringSubmatch(value); m != nil {
		return m[1]
	}

	if m := trailingYearRegex.FindStringSubmatch(value); m != nil {
		return m[1]
	}

	for _, format := range commonDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed.Format("2006")
		}
	}

	return value
}

// normalizeFreeText trims each line and drops blank lines so downstream
// bullet rendering is deterministic.
func normalizeFreeText(value string) string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// splitLines returns the non-blank, trimmed lines of a free-text field.
func splitLines(value string) []string {
	normalized := normalizeFreeText(value)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}
