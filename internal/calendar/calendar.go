// Package calendar normalizes every date the engine touches to a
// day-granularity value in one reference time zone, so ordering and
// equality never depend on the time-of-day or offset a caller happened
// to send.
package calendar

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// Date is a single calendar day with the time-of-day zeroed in the
// reference zone. The zero value is the invalid-date sentinel: it is
// never before, after, or equal to any valid date.
type Date struct {
	t time.Time
}

// Invalid is the sentinel for unparseable or absent dates.
var Invalid = Date{}

// New builds a Date from components in loc.
func New(year int, month time.Month, day int, loc *time.Location) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// FromTime truncates t to its own wall-clock date, re-anchored in loc.
// The year/month/day the caller saw is kept as-is; the value is never
// converted between zones first, which could slide it across midnight.
func FromTime(t time.Time, loc *time.Location) Date {
	if t.IsZero() {
		return Invalid
	}
	y, m, d := t.Date()
	return New(y, m, d, loc)
}

// Parse accepts a calendar date ("2006-01-02") or an RFC 3339 timestamp
// and truncates to the date component. Anything else yields Invalid.
func Parse(s string, loc *time.Location) Date {
	if s == "" {
		return Invalid
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return Date{t: t}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t, loc)
	}
	return Invalid
}

// Today is the current day in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc), loc)
}

// IsValid reports whether d is a real date.
func (d Date) IsValid() bool {
	return !d.t.IsZero()
}

// Before reports d < o. Always false when either side is invalid.
func (d Date) Before(o Date) bool {
	if !d.IsValid() || !o.IsValid() {
		return false
	}
	return d.t.Before(o.t)
}

// After reports d > o. Always false when either side is invalid.
func (d Date) After(o Date) bool {
	if !d.IsValid() || !o.IsValid() {
		return false
	}
	return d.t.After(o.t)
}

// Equal reports d == o. Always false when either side is invalid.
func (d Date) Equal(o Date) bool {
	if !d.IsValid() || !o.IsValid() {
		return false
	}
	return d.t.Equal(o.t)
}

// OnOrBefore reports d <= o. Always false when either side is invalid.
func (d Date) OnOrBefore(o Date) bool {
	return d.Equal(o) || d.Before(o)
}

// OnOrAfter reports d >= o. Always false when either side is invalid.
func (d Date) OnOrAfter(o Date) bool {
	return d.Equal(o) || d.After(o)
}

// AddDays returns d shifted by n calendar days. Invalid stays invalid.
func (d Date) AddDays(n int) Date {
	if !d.IsValid() {
		return Invalid
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// SpanDays is the number of days from a through b, inclusive of both
// endpoints: SpanDays(d, d) == 1. Returns 0 when b precedes a or either
// side is invalid.
func SpanDays(a, b Date) int {
	if !a.IsValid() || !b.IsValid() || b.Before(a) {
		return 0
	}
	days := 0
	for d := a; d.OnOrBefore(b); d = d.AddDays(1) {
		days++
	}
	return days
}

// Time exposes the underlying midnight instant, for storage.
func (d Date) Time() time.Time {
	return d.t
}

// String renders the wire format; the sentinel renders as "invalid".
func (d Date) String() string {
	if !d.IsValid() {
		return "invalid"
	}
	return d.t.Format(DateLayout)
}
