package matching

import (
	"strconv"
	"strings"
)

// ParseBudget extracts a numeric amount from a free-text budget field such
// as "€1200000", "950 000 EUR" or "2,5". Every rune that is not a digit, a
// dot or a comma is stripped, then the first comma is treated as a decimal
// separator (European notation) and the longest numeric prefix is parsed.
// The prefix rule means dotted thousands groups like "1.200.000" come out as
// 1.2, a quirk of the upstream CRM that the matcher preserves. Returns
// ok=false when nothing parseable is left.
//
// K/M suffixes are NOT expanded here: "1.5M" parses as 1.5. The upstream CRM
// only expanded suffixes when formatting amounts for display, never when
// reading the budget fields, and the matcher mirrors that.
func ParseBudget(text string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		default:
			return -1
		}
	}, text)

	cleaned = strings.Replace(cleaned, ",", ".", 1)

	prefix := numericPrefix(cleaned)
	if prefix == "" || prefix == "." {
		return 0, false
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the longest leading run of digits with at most one
// decimal point.
func numericPrefix(s string) string {
	dotSeen := false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' && !dotSeen {
			dotSeen = true
			continue
		}
		return s[:i]
	}
	return s
}
