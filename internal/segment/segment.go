// Package segment turns entry date ranges into render-ready month segments
// and packed bar rows. It produces plain values for a rendering client and
// holds no state of its own.
package segment

import (
	"notecal/internal/caldate"
)

// MonthSegment is the portion of an entry's date range falling inside one
// calendar month.
type MonthSegment struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	StartDay int    `json:"startDay"`
	EndDay   int    `json:"endDay"`
	EntryID  string `json:"entryId"`
}

// maxSpanMonths bounds the month walk so a corrupt range can never spin the
// loop; anything longer is truncated.
const maxSpanMonths = 24

// MonthSegments splits [start, end] into one segment per touched calendar
// month: the first segment starts on the true start day, the last ends on
// the true end day, and interior segments span their whole month. An
// inverted range (start after end) is a structural no-op and returns nil.
func MonthSegments(start, end caldate.Date, entryID string) []MonthSegment {
	if caldate.Compare(start, end) > 0 {
		return nil
	}

	var segs []MonthSegment
	year, month := start.Year, start.Month
	for i := 0; i < maxSpanMonths; i++ {
		seg := MonthSegment{
			Year:     year,
			Month:    month,
			StartDay: 1,
			EndDay:   caldate.DaysInMonth(year, month),
			EntryID:  entryID,
		}
		if year == start.Year && month == start.Month {
			seg.StartDay = start.Day
		}
		if year == end.Year && month == end.Month {
			seg.EndDay = end.Day
			segs = append(segs, seg)
			break
		}
		segs = append(segs, seg)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return segs
}

// Layout carries the geometry needed to map days of a month onto week
// columns.
type Layout struct {
	// StartDayOfWeek is the weekday (0=Sunday..6=Saturday) on which day 1
	// of the rendered month falls.
	StartDayOfWeek int
}

// BarPosition is the placement of one month segment in the calendar grid.
type BarPosition struct {
	EntryID     string `json:"entryId"`
	Row         int    `json:"row"`
	StartColumn int    `json:"startColumn"`
	EndColumn   int    `json:"endColumn"`
	Span        int    `json:"span"`
}

// BarPositions assigns each segment a row via minimum-row interval packing
// and maps its days to week columns. All segments are expected to belong to
// the same rendered month.
func BarPositions(segments []MonthSegment, layout Layout) []BarPosition {
	intervals := make([]Interval, len(segments))
	for i, s := range segments {
		intervals[i] = Interval{Start: s.StartDay, End: s.EndDay}
	}
	rows := AssignRows(intervals)

	out := make([]BarPosition, len(segments))
	for i, s := range segments {
		out[i] = BarPosition{
			EntryID:     s.EntryID,
			Row:         rows[i],
			StartColumn: (layout.StartDayOfWeek + s.StartDay - 1) % 7,
			EndColumn:   (layout.StartDayOfWeek + s.EndDay - 1) % 7,
			Span:        s.EndDay - s.StartDay + 1,
		}
	}
	return out
}
