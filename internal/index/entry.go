package index

import (
	"notecal/internal/caldate"
)

// Meta carries display metadata resolved from a document.
type Meta struct {
	Title      string         `json:"title"`
	Tags       []string       `json:"tags,omitempty"`
	Folder     string         `json:"folder"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Entry is a document's resolved date association. An Entry is immutable
// once indexed: re-extraction replaces it wholesale, never mutates it in
// place.
type Entry struct {
	ID    string        `json:"id"`
	Start caldate.Date  `json:"start"`
	End   *caldate.Date `json:"end,omitempty"`
	Meta  Meta          `json:"meta"`
}

// IsMultiDay reports whether the entry spans more than one day.
func (e *Entry) IsMultiDay() bool {
	return e.End != nil && !e.End.Equal(e.Start)
}

// Last returns the inclusive final day of the entry's span, which is the
// start day for single-day entries.
func (e *Entry) Last() caldate.Date {
	if e.End != nil {
		return *e.End
	}
	return e.Start
}
