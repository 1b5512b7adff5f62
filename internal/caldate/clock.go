package caldate

import "time"

// Clock supplies the current calendar date. Nothing else in this package
// consults it: arithmetic and validation are clock-free, and callers that
// need "today" take a Clock so tests can pin it.
type Clock interface {
	Today() Date
}

// SystemClock reads the local calendar components of the wall clock
// directly. This is the single deliberately timezone-dependent primitive in
// the module; it never constructs a UTC-based representation.
type SystemClock struct{}

// Today returns the current local calendar date.
func (SystemClock) Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// Fixed returns a Clock that always reports d.
func Fixed(d Date) Clock {
	return fixedClock{today: d}
}

type fixedClock struct {
	today Date
}

func (c fixedClock) Today() Date { return c.today }
