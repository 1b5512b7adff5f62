package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_calendar_service.go -package=mocks -mock_names=CalendarService=MockCalendarService notecal/internal/service CalendarService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reindexer.go -package=mocks notecal/internal/service Reindexer

import (
	"context"
	"fmt"

	"notecal/internal/caldate"
	"notecal/internal/contextutil"
	"notecal/internal/index"
	"notecal/internal/indexer"
	"notecal/internal/segment"
)

// MonthView is everything a client needs to render one calendar month: the
// month's shape, the entries touching it, and their bar layout.
type MonthView struct {
	Year        int                    `json:"year"`
	Month       int                    `json:"month"`
	DaysInMonth int                    `json:"days_in_month"`
	FirstColumn int                    `json:"first_column"` // Grid column of day 1
	WeekStart   int                    `json:"week_start"`   // 0 = Sunday
	Entries     []*index.Entry         `json:"entries"`
	Segments    []segment.MonthSegment `json:"segments"`
	Bars        []segment.BarPosition  `json:"bars"`
}

// CalendarService provides the read side of the calendar plus reindexing.
type CalendarService interface {
	// MonthView assembles the render model for one month.
	MonthView(ctx context.Context, year, month int) (MonthView, error)
	// EntriesOn returns the entries active on an ISO date.
	EntriesOn(ctx context.Context, date string) ([]*index.Entry, error)
	// EntriesBetween returns the entries overlapping an inclusive ISO range.
	EntriesBetween(ctx context.Context, start, end string) ([]*index.Entry, error)
	// Reindex runs a full vault scan.
	Reindex(ctx context.Context) (indexer.ScanStats, error)
}

// Reindexer triggers a full scan of the vault.
// This interface is defined from the service layer's perspective (consumer-first).
type Reindexer interface {
	IndexAll(ctx context.Context) (indexer.ScanStats, error)
}

// calendarService implements CalendarService.
type calendarService struct {
	store     *index.Store
	reindexer Reindexer
	weekStart int
}

// NewCalendarService creates a new CalendarService. weekStart is the weekday
// the rendered week begins on (0 = Sunday, 1 = Monday).
func NewCalendarService(store *index.Store, reindexer Reindexer, weekStart int) CalendarService {
	return &calendarService{
		store:     store,
		reindexer: reindexer,
		weekStart: ((weekStart % 7) + 7) % 7,
	}
}

// MonthView assembles the render model for one month.
func (s *calendarService) MonthView(ctx context.Context, year, month int) (MonthView, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if month < 1 || month > 12 {
		logger.WarnContext(ctx, "invalid month in month view request", "month", month)
		return MonthView{}, &ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	if year < 1 {
		logger.WarnContext(ctx, "invalid year in month view request", "year", year)
		return MonthView{}, &ValidationError{Field: "year", Message: "must be positive"}
	}

	days := caldate.DaysInMonth(year, month)
	first := caldate.MustNew(year, month, 1)
	last := caldate.MustNew(year, month, days)

	entries := s.store.EntriesBetween(first, last)

	var segments []segment.MonthSegment
	for _, e := range entries {
		for _, seg := range segment.MonthSegments(e.Start, e.Last(), e.ID) {
			if seg.Year == year && seg.Month == month {
				segments = append(segments, seg)
			}
		}
	}

	firstColumn := (first.Weekday() - s.weekStart + 7) % 7
	bars := segment.BarPositions(segments, segment.Layout{StartDayOfWeek: firstColumn})

	logger.InfoContext(ctx, "month view assembled",
		"year", year, "month", month, "entries", len(entries), "bars", len(bars))
	return MonthView{
		Year:        year,
		Month:       month,
		DaysInMonth: days,
		FirstColumn: firstColumn,
		WeekStart:   s.weekStart,
		Entries:     entries,
		Segments:    segments,
		Bars:        bars,
	}, nil
}

// EntriesOn returns the entries active on an ISO date.
func (s *calendarService) EntriesOn(ctx context.Context, date string) ([]*index.Entry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	d, ok := caldate.ParseISO(date)
	if !ok {
		logger.WarnContext(ctx, "invalid date in entries request", "date", date)
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	entries := s.store.EntriesOn(d)
	logger.InfoContext(ctx, "entries looked up", "date", date, "count", len(entries))
	return entries, nil
}

// EntriesBetween returns the entries overlapping an inclusive ISO range.
func (s *calendarService) EntriesBetween(ctx context.Context, start, end string) ([]*index.Entry, error) {
	logger := contextutil.LoggerFromContext(ctx)

	from, ok := caldate.ParseISO(start)
	if !ok {
		logger.WarnContext(ctx, "invalid start date in range request", "start", start)
		return nil, &ValidationError{Field: "start", Message: "must be YYYY-MM-DD"}
	}
	to, ok := caldate.ParseISO(end)
	if !ok {
		logger.WarnContext(ctx, "invalid end date in range request", "end", end)
		return nil, &ValidationError{Field: "end", Message: "must be YYYY-MM-DD"}
	}
	if caldate.Compare(to, from) < 0 {
		logger.WarnContext(ctx, "inverted range in range request", "start", start, "end", end)
		return nil, &ValidationError{Field: "end", Message: fmt.Sprintf("must not precede start %s", start)}
	}

	entries := s.store.EntriesBetween(from, to)
	logger.InfoContext(ctx, "range looked up", "start", start, "end", end, "count", len(entries))
	return entries, nil
}

// Reindex runs a full vault scan.
func (s *calendarService) Reindex(ctx context.Context) (indexer.ScanStats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	stats, err := s.reindexer.IndexAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "reindex failed", "error", err)
		return stats, WrapError(err, "failed to reindex vault")
	}

	logger.InfoContext(ctx, "reindex completed",
		"files", stats.FilesScanned, "entries", stats.EntriesIndexed)
	return stats, nil
}
