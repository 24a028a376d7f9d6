/*
date.go - Calendar dates with explicit validity, and holiday sets

PURPOSE:
  A record's date drives the rest-day/holiday multiplier, and the date cell
  may fail to parse. Rather than letting weekday checks run on garbage, Date
  models validity explicitly: the engine pattern-matches on valid/invalid
  instead of assuming.

HOLIDAYS:
  HolidaySet is a value type constructed fresh per run. Its zero value is
  the empty set, so callers that don't care about holidays pass nothing.

SEE ALSO:
  - engine.go: Multiplier selection over {valid, invalid} dates
  - attendance/holidays.go: Parsing a holiday list out of user text
*/
package payroll

import (
	"strings"
	"time"
)

// =============================================================================
// DATE - A calendar day that knows whether it parsed
// =============================================================================

// Date is a calendar day at day granularity, normalized to midnight UTC.
// The zero value is invalid.
type Date struct {
	t     time.Time
	valid bool
}

// NewDate constructs a valid date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), valid: true}
}

// DateOf strips the time-of-day component from t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// InvalidDate is the explicit "did not parse" value.
func InvalidDate() Date { return Date{} }

// dateLayouts are tried in order. Sheets exported from the attendance
// system carry ISO dates or ISO datetimes; manual edits show up in the
// slash and dash day-first forms.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"01/02/06",
}

// ParseDate parses a date cell. Failure yields an invalid Date, never an
// error: whether an invalid date is tolerable is the engine's decision,
// not the parser's.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidDate()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return InvalidDate()
}

func (d Date) Valid() bool            { return d.valid }
func (d Date) Time() time.Time        { return d.t }
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) Equal(other Date) bool  { return d.valid == other.valid && d.t.Equal(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// String returns the ISO form, or "" for an invalid date.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// =============================================================================
// HOLIDAY SET - Immutable once constructed, empty by default
// =============================================================================

// HolidaySet is a set of calendar dates flagged as paid holidays.
// The zero value is the empty set.
type HolidaySet struct {
	days map[Date]struct{}
}

// NewHolidaySet builds a set from the given dates. Invalid dates are
// ignored; they can never match a record.
func NewHolidaySet(dates ...Date) HolidaySet {
	days := make(map[Date]struct{}, len(dates))
	for _, d := range dates {
		if d.Valid() {
			days[d] = struct{}{}
		}
	}
	return HolidaySet{days: days}
}

// Contains reports whether d is a holiday. Invalid dates never are.
func (s HolidaySet) Contains(d Date) bool {
	if !d.Valid() {
		return false
	}
	_, ok := s.days[d]
	return ok
}

// Len returns the number of holidays in the set.
func (s HolidaySet) Len() int { return len(s.days) }

// Dates returns the holidays in the set, in no particular order.
func (s HolidaySet) Dates() []Date {
	out := make([]Date, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	return out
}
