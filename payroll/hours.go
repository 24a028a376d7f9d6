/*
hours.go - Duration value normalization

PURPOSE:
  Attendance sheets are messy. The "Total Working hours" and "Extra Working
  Time" columns arrive as numbers (8, 7.5), clock-style strings ("8:30"),
  plain decimal strings ("8.5"), or nothing at all. ParseHours collapses all
  of that into decimal hours.

CONTRACT:
  ParseHours is TOTAL: defined for every input, never panics, never returns
  an error. Malformed input degrades to zero hours rather than aborting a
  batch. Callers that care about degraded values use the engine's
  Diagnostics, which tracks rows that fell back to zero.

RULES:
  nil / empty string        -> 0
  numeric                   -> value unchanged
  string containing ":"     -> HH:MM, result HH + MM/60; bad ints -> 0
  any other string          -> decimal parse; failure -> 0

SEE ALSO:
  - engine.go: Feeds both duration columns through this parser per row
*/
package payroll

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// ParseHours converts a raw duration value into decimal hours.
// Total, pure, deterministic. See the file header for the rules.
func ParseHours(value any) decimal.Decimal {
	hours, _ := parseHours(value)
	return hours
}

// parseHours additionally reports whether a non-empty value was malformed
// and fell back to zero. An absent value (nil or blank string) is a
// legitimate zero, not a fallback.
func parseHours(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, false
	case int:
		return decimal.NewFromInt(int64(v)), false
	case int32:
		return decimal.NewFromInt(int64(v)), false
	case int64:
		return decimal.NewFromInt(v), false
	case float32:
		return decimal.NewFromFloat32(v), false
	case float64:
		return decimal.NewFromFloat(v), false
	case string:
		return parseHoursString(v)
	default:
		return decimal.Zero, true
	}
}

func parseHoursString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return decimal.Zero, true
		}
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH != nil || errM != nil {
			return decimal.Zero, true
		}
		return decimal.NewFromInt(int64(h)).Add(decimal.NewFromInt(int64(m)).Div(sixty)), false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
