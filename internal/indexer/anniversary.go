package indexer

import (
	"fmt"

	"notecal/internal/caldate"
	"notecal/internal/extract"
	"notecal/internal/index"
)

// anniversaryHorizonYears is how far around the current year projections
// are generated: today's year plus/minus this many years.
const anniversaryHorizonYears = 1

// AnniversaryExpander projects entries carrying an anniversary property
// (a birthday, a founding date) onto the same month and day of each year in
// a small horizon around today. This is deliberately the only recurrence
// the engine supports; general recurring events are out of scope.
type AnniversaryExpander struct {
	fields    []string
	clock     caldate.Clock
	projected map[string][]string // base entry id -> projection ids
}

// NewAnniversaryExpander creates an expander reading the given ordered
// property fields. An empty field list disables expansion.
func NewAnniversaryExpander(fields []string, clock caldate.Clock) *AnniversaryExpander {
	return &AnniversaryExpander{
		fields:    fields,
		clock:     clock,
		projected: make(map[string][]string),
	}
}

// Expand returns the yearly projections for an entry whose anniversary
// property parses to a date. Each projection is a single-day entry with a
// derived id "<base>@<year>"; a projection falling on the base entry's own
// start day is skipped. Feb 29 anniversaries fall back to Feb 28 in
// non-leap years. Expand records the projection ids so Projections can
// tear them down later.
func (a *AnniversaryExpander) Expand(entry *index.Entry, props map[string]any) []*index.Entry {
	delete(a.projected, entry.ID)
	if len(a.fields) == 0 || len(props) == 0 {
		return nil
	}

	source := extract.FromProperties(props, a.fields)
	if source == nil {
		return nil
	}

	today := a.clock.Today()
	var out []*index.Entry
	var ids []string
	for year := today.Year - anniversaryHorizonYears; year <= today.Year+anniversaryHorizonYears; year++ {
		day := source.Day
		if source.Month == 2 && day == 29 && !caldate.IsLeapYear(year) {
			day = 28
		}
		date, err := caldate.New(year, source.Month, day)
		if err != nil {
			continue
		}
		if date.Equal(entry.Start) {
			continue
		}

		projected := &index.Entry{
			ID:    fmt.Sprintf("%s@%d", entry.ID, year),
			Start: date,
			Meta: index.Meta{
				Title:  entry.Meta.Title,
				Tags:   entry.Meta.Tags,
				Folder: entry.Meta.Folder,
			},
		}
		out = append(out, projected)
		ids = append(ids, projected.ID)
	}

	if len(ids) > 0 {
		a.projected[entry.ID] = ids
	}
	return out
}

// Projections returns the recorded projection ids for a base entry.
func (a *AnniversaryExpander) Projections(id string) []string {
	return a.projected[id]
}

// Forget drops the projection record for a base entry.
func (a *AnniversaryExpander) Forget(id string) {
	delete(a.projected, id)
}
