// Package daterange parses DD-MM-YYYY dates and builds the closed interval
// used to filter orders by creation time.
package daterange

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/guttosm/salesdata/internal/domain/models"
)

const (
	// Layout is the only accepted textual form, expressed as a Go time layout.
	Layout = "02-01-2006"

	// FormatHint is the user facing name of Layout.
	FormatHint = "DD-MM-YYYY"

	// MaxDays is the widest span accepted between start and end.
	MaxDays = 730

	MinYear = 2000
	MaxYear = 2100

	msPerDay = 24 * 60 * 60 * 1000
)

var dateFormat = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Date is a day/month/year triple whose fields passed the bound checks.
// It is not guaranteed to be a real calendar day until In succeeds.
type Date struct {
	Day   int
	Month time.Month
	Year  int

	field string
	raw   string
}

// MatchesFormat reports whether raw is literally two digits, hyphen,
// two digits, hyphen, four digits.
func MatchesFormat(raw string) bool {
	return dateFormat.MatchString(raw)
}

// ParseDate validates the format of raw and checks its day, month and year
// bounds, in that order. field names the query parameter and is carried in
// the returned *Error.
func ParseDate(field, raw string) (Date, error) {
	m := dateFormat.FindStringSubmatch(raw)
	if m == nil {
		return Date{}, &Error{
			Kind:   InvalidFormat,
			Field:  field,
			Value:  raw,
			Detail: fmt.Sprintf("%q is not in %s format", raw, FormatHint),
		}
	}

	// The regexp guarantees digits only, Atoi cannot fail.
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if day < 1 || day > 31 {
		return Date{}, &Error{
			Kind:   InvalidDay,
			Field:  field,
			Value:  raw,
			Detail: fmt.Sprintf("Invalid day: %d. Day must be between 1 and 31", day),
		}
	}
	if month < 1 || month > 12 {
		return Date{}, &Error{
			Kind:   InvalidMonth,
			Field:  field,
			Value:  raw,
			Detail: fmt.Sprintf("Invalid month: %s. Month must be between 1 and 12", m[2]),
		}
	}
	if year < MinYear || year > MaxYear {
		return Date{}, &Error{
			Kind:   InvalidYear,
			Field:  field,
			Value:  raw,
			Detail: fmt.Sprintf("Invalid year: %d. Year must be between %d and %d", year, MinYear, MaxYear),
		}
	}

	return Date{Day: day, Month: time.Month(month), Year: year, field: field, raw: raw}, nil
}

// In returns the first instant of d in loc. Validity is checked on a UTC
// construction because time.Date silently normalises overflowing values
// (31 April becomes 1 May), and a zone whose day starts inside a DST gap
// must not turn a real date into an invalid one.
func (d Date) In(loc *time.Location) (time.Time, error) {
	u := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if u.Year() != d.Year || u.Month() != d.Month || u.Day() != d.Day {
		raw := d.raw
		if raw == "" {
			raw = d.String()
		}
		return time.Time{}, &Error{
			Kind:   InvalidCalendarDate,
			Field:  d.field,
			Value:  raw,
			Detail: fmt.Sprintf("%q is not a valid calendar date", raw),
		}
	}
	return StartOfDay(d.Year, d.Month, d.Day, loc), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// NewInterval checks that start is not after end and that the span does not
// exceed maxDays, then stretches end to the last millisecond of its day.
// Both arguments are expected at start of day.
func NewInterval(start, end time.Time, maxDays int) (models.Interval, error) {
	if start.After(end) {
		return models.Interval{}, &Error{
			Kind:   InvalidRange,
			Detail: "Start date cannot be after end date",
		}
	}

	days := SpanDays(start, end)
	if days > float64(maxDays) {
		return models.Interval{}, &Error{
			Kind:          RangeTooLarge,
			Detail:        limitMessage(maxDays),
			RequestedDays: int(math.Round(days)),
		}
	}

	return models.Interval{Start: start, End: EndOfDay(end)}, nil
}

// SpanDays is the millisecond distance between start and end expressed in
// days. It is fractional across DST transitions.
func SpanDays(start, end time.Time) float64 {
	return float64(end.Sub(start).Milliseconds()) / msPerDay
}

// StartOfDay returns the first instant of the calendar day y-m-d in loc.
// Out of range values are normalised as time.Date does. When midnight does
// not exist in loc, the day starts at the end of the DST gap (01:00 for a
// one hour jump).
func StartOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
		return t
	}
	// t landed on the previous day, just before the transition.
	_, end := t.ZoneBounds()
	return end
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func limitMessage(maxDays int) string {
	switch {
	case maxDays%365 != 0:
		return fmt.Sprintf("Date range cannot exceed %d days", maxDays)
	case maxDays == 365:
		return "Date range cannot exceed 1 year (365 days)"
	default:
		return fmt.Sprintf("Date range cannot exceed %d years (%d days)", maxDays/365, maxDays)
	}
}
