package caldate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate is returned when year/month/day components do not form a
// real calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is an immutable date on the proleptic Gregorian calendar. It carries
// no time-of-day and no timezone; two Dates are the same day exactly when
// their components match. All arithmetic in this package is manual calendar
// arithmetic and never routes through time.Time.
type Date struct {
	Year  int // >= 1
	Month int // 1..12
	Day   int // 1..DaysInMonth(Year, Month)
}

// New validates the components and returns the Date.
// Year is only required to be >= 1 here; callers that need a sanity band
// (the extraction layer uses 1900-2100) enforce it on top.
func New(year, month, day int) (Date, error) {
	if year < 1 {
		return Date{}, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustNew is a fixture helper that panics on an invalid date.
func MustNew(year, month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysPerMonth is indexed by month number; February is adjusted for leap
// years in DaysInMonth.
var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month, or 0 for a
// month outside 1..12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// Weekday returns the day of the week, 0=Sunday through 6=Saturday, via
// Zeller's congruence. January and February are shifted into months 13 and
// 14 of the previous year; the raw congruence counts 0=Saturday and is
// normalized into [0,6] before rotating to 0=Sunday.
func (d Date) Weekday() int {
	y, m := d.Year, d.Month
	if m < 3 {
		m += 12
		y--
	}
	century := y / 100
	yearOfCentury := y % 100
	h := (d.Day + 13*(m+1)/5 + yearOfCentury + yearOfCentury/4 + century/4 - 2*century) % 7
	if h < 0 {
		h += 7
	}
	return (h + 6) % 7
}

// AddDays returns the date n days after d. n may be negative, span multiple
// years, and cross leap days.
func (d Date) AddDays(n int) Date {
	year, month, day := d.Year, d.Month, d.Day
	day += n
	for day > DaysInMonth(year, month) {
		day -= DaysInMonth(year, month)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	for day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day += DaysInMonth(year, month)
	}
	return Date{Year: year, Month: month, Day: day}
}

// SubDays returns the date n days before d.
func (d Date) SubDays(n int) Date {
	return d.AddDays(-n)
}

// Compare orders two dates lexicographically on (year, month, day).
// It returns -1 when a is before b, 0 when equal, and 1 when after.
func Compare(a, b Date) int {
	switch {
	case a.Year != b.Year:
		return sign(a.Year - b.Year)
	case a.Month != b.Month:
		return sign(a.Month - b.Month)
	default:
		return sign(a.Day - b.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return Compare(d, other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return Compare(d, other) > 0 }

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool { return d == other }

// String formats the date as "YYYY-MM-DD". The string form doubles as the
// index key in the date-indexed store.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseISO parses a strict "YYYY-MM-DD" string. It splits on the fixed
// pattern and integer-parses each field rather than going through a
// timestamp parser, so no timezone ever enters the picture. Fields must be
// digits only; Atoi's tolerance for a leading sign would otherwise let
// "2025-+1-15" slip through the length checks. The bool result is false
// for anything malformed.
func ParseISO(s string) (Date, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, false
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, false
	}
	year, ok := parseDigits(parts[0])
	if !ok {
		return Date{}, false
	}
	month, ok := parseDigits(parts[1])
	if !ok {
		return Date{}, false
	}
	day, ok := parseDigits(parts[2])
	if !ok {
		return Date{}, false
	}
	d, err := New(year, month, day)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// parseDigits converts a field consisting only of ASCII digits.
func parseDigits(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Range is an inclusive date interval with Start <= End.
type Range struct {
	Start Date
	End   Date
}

// NewRange validates the ordering invariant.
func NewRange(start, end Date) (Range, error) {
	if Compare(start, end) > 0 {
		return Range{}, fmt.Errorf("%w: range start %s after end %s", ErrInvalidDate, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the range, inclusive of both
// bounds.
func (r Range) Contains(d Date) bool {
	return Compare(r.Start, d) <= 0 && Compare(d, r.End) <= 0
}
