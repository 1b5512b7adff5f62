package extract

import (
	"fmt"
	"regexp"

	"notecal/internal/caldate"
)

// Year sanity band applied by every extraction path. Raw caldate
// construction allows any year >= 1; extraction rejects anything outside
// this band so a stray "0001-01-01" or OCR-mangled year never becomes an
// indexed entry.
const (
	minYear = 1900
	maxYear = 2100
)

// ParseISO parses a strict "YYYY-MM-DD" string and applies the sanity band.
func ParseISO(s string) (caldate.Date, bool) {
	d, ok := caldate.ParseISO(s)
	if !ok || d.Year < minYear || d.Year > maxYear {
		return caldate.Date{}, false
	}
	return d, true
}

var isoPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// FromFilename scans a document name for ISO date substrings. The first
// occurrence is the start candidate and the second the end candidate;
// further occurrences are ignored. A coincidental unrelated number that
// happens to match the pattern is taken at face value. An unparseable first
// occurrence does not promote the second into the start slot.
func FromFilename(name string) (start, end *caldate.Date) {
	matches := isoPattern.FindAllString(name, 2)
	if len(matches) > 0 {
		if d, ok := ParseISO(matches[0]); ok {
			start = &d
		}
	}
	if len(matches) > 1 {
		if d, ok := ParseISO(matches[1]); ok {
			end = &d
		}
	}
	return start, end
}

// FromProperties tries the named fields in order and returns the first that
// parses to a date. Missing and malformed fields are skipped silently.
func FromProperties(props map[string]any, fields []string) *caldate.Date {
	for _, field := range fields {
		raw, ok := props[field]
		if !ok {
			continue
		}
		if d, ok := Parse(raw); ok {
			return &d
		}
	}
	return nil
}

// Source identifies where a date signal comes from.
type Source string

const (
	// SourceProperties draws dates from structured frontmatter properties.
	SourceProperties Source = "properties"
	// SourceFilename draws dates from ISO substrings in the document name.
	SourceFilename Source = "filename"
)

// Config controls extraction: the ordered candidate property names for each
// slot and the priority ordering over sources.
type Config struct {
	StartFields []string
	EndFields   []string
	Priority    []Source
}

// DefaultConfig mirrors the common frontmatter conventions for dated notes.
func DefaultConfig() Config {
	return Config{
		StartFields: []string{"date", "startDate", "start"},
		EndFields:   []string{"endDate", "end", "due"},
		Priority:    []Source{SourceProperties, SourceFilename},
	}
}

// Validate rejects configs with no start fields, no priority, or an unknown
// source name.
func (c Config) Validate() error {
	if len(c.StartFields) == 0 {
		return fmt.Errorf("extract config: no start fields configured")
	}
	if len(c.Priority) == 0 {
		return fmt.Errorf("extract config: no source priority configured")
	}
	for _, src := range c.Priority {
		if src != SourceProperties && src != SourceFilename {
			return fmt.Errorf("extract config: unknown source %q", src)
		}
	}
	return nil
}

// Result carries the resolved dates for one document; nil means no date was
// found for that slot.
type Result struct {
	Start *caldate.Date
	End   *caldate.Date
}

// Extract resolves the start and end dates for a document from its filename
// and property bag. Sources are evaluated in priority order and each fills
// only a still-empty slot: once a slot is resolved it is never overwritten
// by a lower-priority source, but resolving one slot at high priority does
// not block the other slot from falling back to a lower source. The two
// slots are fully independent.
func Extract(filename string, props map[string]any, cfg Config) Result {
	var res Result
	for _, src := range cfg.Priority {
		switch src {
		case SourceProperties:
			if res.Start == nil {
				res.Start = FromProperties(props, cfg.StartFields)
			}
			if res.End == nil {
				res.End = FromProperties(props, cfg.EndFields)
			}
		case SourceFilename:
			start, end := FromFilename(filename)
			if res.Start == nil {
				res.Start = start
			}
			if res.End == nil {
				res.End = end
			}
		}
	}
	return res
}
