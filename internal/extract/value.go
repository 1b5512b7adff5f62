package extract

import (
	"time"

	"notecal/internal/caldate"
)

// Value is the classified form of a raw date signal pulled from a document
// property bag. Classification is an explicit tagged dispatch; nothing in
// this package inspects arbitrary values for field presence at runtime.
type Value interface {
	isValue()
}

// IsoString is a raw string expected to be in strict "YYYY-MM-DD" form.
type IsoString struct {
	Raw string
}

// Structured carries pre-split numeric year/month/day components, as
// produced by YAML maps like {year: 2025, month: 1, day: 15}.
type Structured struct {
	Year  int
	Month int
	Day   int
}

// Timestamp wraps a host-native timestamp. Only its local calendar
// components are ever read, never a UTC serialization.
type Timestamp struct {
	Time time.Time
}

// Unrecognized marks a value no parser accepts.
type Unrecognized struct{}

func (IsoString) isValue()    {}
func (Structured) isValue()   {}
func (Timestamp) isValue()    {}
func (Unrecognized) isValue() {}

// Classify maps a raw property value onto the Value union.
// YAML decoding yields time.Time for unquoted dates and map[string]any for
// nested mappings, so those are the shapes handled besides plain strings.
func Classify(raw any) Value {
	switch v := raw.(type) {
	case string:
		return IsoString{Raw: v}
	case time.Time:
		return Timestamp{Time: v}
	case map[string]any:
		year, okY := intField(v, "year")
		month, okM := intField(v, "month")
		day, okD := intField(v, "day")
		if okY && okM && okD {
			return Structured{Year: year, Month: month, Day: day}
		}
		return Unrecognized{}
	default:
		return Unrecognized{}
	}
}

// intField reads an integral numeric field from a decoded mapping. JSON
// decoding produces float64, YAML produces int, so both are accepted as
// long as the value is a whole number.
func intField(m map[string]any, key string) (int, bool) {
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// Parse resolves a raw value to a calendar date. The bool result is false
// for anything unparseable; absent and malformed are indistinguishable and
// callers never see an error.
func Parse(raw any) (caldate.Date, bool) {
	switch v := Classify(raw).(type) {
	case IsoString:
		return ParseISO(v.Raw)
	case Structured:
		return checked(v.Year, v.Month, v.Day)
	case Timestamp:
		return checked(v.Time.Year(), int(v.Time.Month()), v.Time.Day())
	default:
		return caldate.Date{}, false
	}
}

// checked validates components against the calendar and the sanity band.
func checked(year, month, day int) (caldate.Date, bool) {
	if year < minYear || year > maxYear {
		return caldate.Date{}, false
	}
	d, err := caldate.New(year, month, day)
	if err != nil {
		return caldate.Date{}, false
	}
	return d, true
}
