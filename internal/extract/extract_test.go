package extract

import (
	"testing"
	"time"

	"notecal/internal/caldate"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "string", raw: "2025-01-15", want: "IsoString"},
		{name: "timestamp", raw: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), want: "Timestamp"},
		{name: "structured map", raw: map[string]any{"year": 2025, "month": 1, "day": 15}, want: "Structured"},
		{name: "map missing day", raw: map[string]any{"year": 2025, "month": 1}, want: "Unrecognized"},
		{name: "map with non-numeric year", raw: map[string]any{"year": "2025", "month": 1, "day": 15}, want: "Unrecognized"},
		{name: "integer", raw: 20250115, want: "Unrecognized"},
		{name: "nil", raw: nil, want: "Unrecognized"},
		{name: "bool", raw: true, want: "Unrecognized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			switch Classify(tt.raw).(type) {
			case IsoString:
				got = "IsoString"
			case Structured:
				got = "Structured"
			case Timestamp:
				got = "Timestamp"
			case Unrecognized:
				got = "Unrecognized"
			}
			if got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want caldate.Date
		ok   bool
	}{
		{name: "iso string", raw: "2025-01-15", want: caldate.MustNew(2025, 1, 15), ok: true},
		{name: "structured", raw: map[string]any{"year": 2024, "month": 2, "day": 29}, want: caldate.MustNew(2024, 2, 29), ok: true},
		{name: "structured float64 fields", raw: map[string]any{"year": float64(2025), "month": float64(6), "day": float64(1)}, want: caldate.MustNew(2025, 6, 1), ok: true},
		{name: "invalid structured", raw: map[string]any{"year": 2025, "month": 2, "day": 29}, ok: false},
		{name: "malformed string", raw: "January 15th", ok: false},
		{name: "year below band", raw: "1899-12-31", ok: false},
		{name: "year above band", raw: "2101-01-01", ok: false},
		{name: "unsupported type", raw: 42, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Parse(%v) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%v) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTimestampUsesLocalComponents(t *testing.T) {
	// 00:30 local on Jan 15 in UTC+9 serializes to Jan 14 in UTC; the
	// local calendar date must win.
	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2025, 1, 15, 0, 30, 0, 0, loc)

	got, ok := Parse(ts)
	if !ok {
		t.Fatal("Parse(timestamp) ok = false, want true")
	}
	if got != caldate.MustNew(2025, 1, 15) {
		t.Errorf("Parse(timestamp) = %s, want 2025-01-15", got)
	}
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantStart *caldate.Date
		wantEnd   *caldate.Date
	}{
		{
			name:      "single date",
			filename:  "2025-01-15 Dentist.md",
			wantStart: datePtr(2025, 1, 15),
		},
		{
			name:      "date range",
			filename:  "2025-01-15 - 2025-01-20 Trip.md",
			wantStart: datePtr(2025, 1, 15),
			wantEnd:   datePtr(2025, 1, 20),
		},
		{
			name:      "third occurrence ignored",
			filename:  "2025-01-15 2025-01-20 2025-01-25.md",
			wantStart: datePtr(2025, 1, 15),
			wantEnd:   datePtr(2025, 1, 20),
		},
		{
			name:     "no dates",
			filename: "Shopping list.md",
		},
		{
			name:     "invalid first match does not promote second",
			filename: "9999-99-99 then 2025-01-15.md",
			wantEnd:  datePtr(2025, 1, 15),
		},
		{
			name:      "date embedded mid-name",
			filename:  "weekly review 2025-03-02 notes.md",
			wantStart: datePtr(2025, 3, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FromFilename(tt.filename)
			if !samePtr(start, tt.wantStart) {
				t.Errorf("FromFilename(%q) start = %v, want %v", tt.filename, fmtPtr(start), fmtPtr(tt.wantStart))
			}
			if !samePtr(end, tt.wantEnd) {
				t.Errorf("FromFilename(%q) end = %v, want %v", tt.filename, fmtPtr(end), fmtPtr(tt.wantEnd))
			}
		})
	}
}

func TestFromProperties(t *testing.T) {
	props := map[string]any{
		"date":      "not a date",
		"startDate": "2025-02-15",
		"endDate":   map[string]any{"year": 2025, "month": 2, "day": 20},
	}

	// "date" is present but malformed; the next field in order wins.
	got := FromProperties(props, []string{"date", "startDate"})
	if got == nil || *got != caldate.MustNew(2025, 2, 15) {
		t.Errorf("FromProperties() = %v, want 2025-02-15", fmtPtr(got))
	}

	if got := FromProperties(props, []string{"endDate"}); got == nil || *got != caldate.MustNew(2025, 2, 20) {
		t.Errorf("FromProperties(endDate) = %v, want 2025-02-20", fmtPtr(got))
	}

	if got := FromProperties(props, []string{"missing", "alsoMissing"}); got != nil {
		t.Errorf("FromProperties(missing fields) = %v, want nil", fmtPtr(got))
	}

	if got := FromProperties(nil, []string{"date"}); got != nil {
		t.Errorf("FromProperties(nil bag) = %v, want nil", fmtPtr(got))
	}
}

func TestExtractPerFieldFallback(t *testing.T) {
	// The crux case: start resolves from properties, end independently
	// falls back to the filename even though properties won the start slot.
	cfg := Config{
		StartFields: []string{"startDate"},
		EndFields:   []string{"endDate"},
		Priority:    []Source{SourceProperties, SourceFilename},
	}

	res := Extract(
		"2025-01-15 - 2025-01-20 Trip.md",
		map[string]any{"startDate": "2025-02-15"},
		cfg,
	)

	if res.Start == nil || *res.Start != caldate.MustNew(2025, 2, 15) {
		t.Errorf("Extract() start = %v, want 2025-02-15", fmtPtr(res.Start))
	}
	if res.End == nil || *res.End != caldate.MustNew(2025, 1, 20) {
		t.Errorf("Extract() end = %v, want 2025-01-20", fmtPtr(res.End))
	}
}

func TestExtract(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		filename  string
		props     map[string]any
		wantStart *caldate.Date
		wantEnd   *caldate.Date
	}{
		{
			name:      "properties win over filename",
			filename:  "2025-01-01 note.md",
			props:     map[string]any{"date": "2025-06-15", "endDate": "2025-06-17"},
			wantStart: datePtr(2025, 6, 15),
			wantEnd:   datePtr(2025, 6, 17),
		},
		{
			name:      "filename only",
			filename:  "2025-01-15 - 2025-01-20 Trip.md",
			props:     nil,
			wantStart: datePtr(2025, 1, 15),
			wantEnd:   datePtr(2025, 1, 20),
		},
		{
			name:     "nothing resolves",
			filename: "untitled.md",
			props:    map[string]any{"tags": []string{"a"}},
		},
		{
			name:      "filename priority first",
			filename:  "2025-01-15 note.md",
			props:     map[string]any{"date": "2025-06-15"},
			wantStart: datePtr(2025, 6, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Extract(tt.filename, tt.props, cfg)
			if !samePtr(res.Start, tt.wantStart) {
				t.Errorf("Extract() start = %v, want %v", fmtPtr(res.Start), fmtPtr(tt.wantStart))
			}
			if !samePtr(res.End, tt.wantEnd) {
				t.Errorf("Extract() end = %v, want %v", fmtPtr(res.End), fmtPtr(tt.wantEnd))
			}
		})
	}
}

func TestExtractFilenameFirstPriority(t *testing.T) {
	cfg := Config{
		StartFields: []string{"date"},
		EndFields:   []string{"endDate"},
		Priority:    []Source{SourceFilename, SourceProperties},
	}

	res := Extract("2025-01-15 note.md", map[string]any{"date": "2025-06-15", "endDate": "2025-06-17"}, cfg)

	// Filename wins start; end is absent from the filename and falls back
	// to properties.
	if res.Start == nil || *res.Start != caldate.MustNew(2025, 1, 15) {
		t.Errorf("Extract() start = %v, want 2025-01-15", fmtPtr(res.Start))
	}
	if res.End == nil || *res.End != caldate.MustNew(2025, 6, 17) {
		t.Errorf("Extract() end = %v, want 2025-06-17", fmtPtr(res.End))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default is valid", cfg: DefaultConfig(), wantErr: false},
		{name: "no start fields", cfg: Config{EndFields: []string{"end"}, Priority: []Source{SourceProperties}}, wantErr: true},
		{name: "no priority", cfg: Config{StartFields: []string{"date"}}, wantErr: true},
		{name: "unknown source", cfg: Config{StartFields: []string{"date"}, Priority: []Source{"frontmatter"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func datePtr(y, m, d int) *caldate.Date {
	date := caldate.MustNew(y, m, d)
	return &date
}

func samePtr(got, want *caldate.Date) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

func fmtPtr(d *caldate.Date) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}
