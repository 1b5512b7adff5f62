package segment

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"notecal/internal/caldate"
)

func TestMonthSegments(t *testing.T) {
	tests := []struct {
		name  string
		start caldate.Date
		end   caldate.Date
		want  []MonthSegment
	}{
		{
			name:  "single day",
			start: caldate.MustNew(2025, 1, 15),
			end:   caldate.MustNew(2025, 1, 15),
			want: []MonthSegment{
				{Year: 2025, Month: 1, StartDay: 15, EndDay: 15, EntryID: "x"},
			},
		},
		{
			name:  "within one month",
			start: caldate.MustNew(2025, 1, 10),
			end:   caldate.MustNew(2025, 1, 20),
			want: []MonthSegment{
				{Year: 2025, Month: 1, StartDay: 10, EndDay: 20, EntryID: "x"},
			},
		},
		{
			name:  "month boundary crossing",
			start: caldate.MustNew(2025, 1, 28),
			end:   caldate.MustNew(2025, 2, 5),
			want: []MonthSegment{
				{Year: 2025, Month: 1, StartDay: 28, EndDay: 31, EntryID: "x"},
				{Year: 2025, Month: 2, StartDay: 1, EndDay: 5, EntryID: "x"},
			},
		},
		{
			name:  "interior months span fully",
			start: caldate.MustNew(2024, 12, 20),
			end:   caldate.MustNew(2025, 2, 10),
			want: []MonthSegment{
				{Year: 2024, Month: 12, StartDay: 20, EndDay: 31, EntryID: "x"},
				{Year: 2025, Month: 1, StartDay: 1, EndDay: 31, EntryID: "x"},
				{Year: 2025, Month: 2, StartDay: 1, EndDay: 10, EntryID: "x"},
			},
		},
		{
			name:  "leap february interior",
			start: caldate.MustNew(2024, 1, 31),
			end:   caldate.MustNew(2024, 3, 1),
			want: []MonthSegment{
				{Year: 2024, Month: 1, StartDay: 31, EndDay: 31, EntryID: "x"},
				{Year: 2024, Month: 2, StartDay: 1, EndDay: 29, EntryID: "x"},
				{Year: 2024, Month: 3, StartDay: 1, EndDay: 1, EntryID: "x"},
			},
		},
		{
			name:  "inverted range is empty",
			start: caldate.MustNew(2025, 2, 5),
			end:   caldate.MustNew(2025, 1, 28),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthSegments(tt.start, tt.end, "x")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MonthSegments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMonthSegmentsRunawayBound(t *testing.T) {
	// A decade-long range is truncated rather than walked to completion.
	got := MonthSegments(caldate.MustNew(2020, 1, 1), caldate.MustNew(2030, 1, 1), "x")
	if len(got) != 24 {
		t.Errorf("MonthSegments(10-year span) produced %d segments, want 24", len(got))
	}
}

func TestAssignRows(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		wantRows  []int
	}{
		{
			name:      "empty",
			intervals: nil,
			wantRows:  nil,
		},
		{
			name:      "single interval",
			intervals: []Interval{{1, 10}},
			wantRows:  []int{0},
		},
		{
			name:      "chained overlaps need three rows",
			intervals: []Interval{{1, 10}, {5, 15}, {10, 25}},
			wantRows:  []int{0, 1, 2},
		},
		{
			name:      "adjacent intervals share row zero",
			intervals: []Interval{{1, 5}, {6, 10}},
			wantRows:  []int{0, 0},
		},
		{
			name:      "equal endpoints overlap",
			intervals: []Interval{{1, 5}, {5, 10}},
			wantRows:  []int{0, 1},
		},
		{
			name:      "longer interval wins row zero on tied start",
			intervals: []Interval{{1, 1}, {1, 10}},
			wantRows:  []int{1, 0},
		},
		{
			name:      "row freed after gap is reused",
			intervals: []Interval{{1, 10}, {5, 8}, {12, 20}},
			wantRows:  []int{0, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignRows(tt.intervals)
			if diff := cmp.Diff(tt.wantRows, got); diff != "" {
				t.Errorf("AssignRows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestAssignRowsMinimality checks on random inputs that the rows used equal
// the maximum number of intervals simultaneously covering a single point,
// which is the optimum for interval graphs.
func TestAssignRowsMinimality(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(20)
		intervals := make([]Interval, n)
		for i := range intervals {
			start := 1 + rng.Intn(28)
			length := rng.Intn(28 - start + 1)
			intervals[i] = Interval{Start: start, End: start + length}
		}

		rows := AssignRows(intervals)

		// No two intervals in the same row may overlap.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rows[i] != rows[j] {
					continue
				}
				if intervals[i].Start <= intervals[j].End && intervals[j].Start <= intervals[i].End {
					t.Fatalf("trial %d: overlapping intervals %v and %v share row %d", trial, intervals[i], intervals[j], rows[i])
				}
			}
		}

		rowCount := 0
		for _, r := range rows {
			if r+1 > rowCount {
				rowCount = r + 1
			}
		}

		maxOverlap := 0
		for point := 1; point <= 28; point++ {
			covering := 0
			for _, iv := range intervals {
				if iv.Start <= point && point <= iv.End {
					covering++
				}
			}
			if covering > maxOverlap {
				maxOverlap = covering
			}
		}

		if rowCount != maxOverlap {
			t.Fatalf("trial %d: used %d rows, want %d for %v", trial, rowCount, maxOverlap, intervals)
		}
	}
}

func TestBarPositions(t *testing.T) {
	segments := []MonthSegment{
		{Year: 2025, Month: 1, StartDay: 1, EndDay: 10, EntryID: "a"},
		{Year: 2025, Month: 1, StartDay: 5, EndDay: 15, EntryID: "b"},
		{Year: 2025, Month: 1, StartDay: 12, EndDay: 12, EntryID: "c"},
	}

	// January 2025 starts on a Wednesday.
	got := BarPositions(segments, Layout{StartDayOfWeek: 3})

	want := []BarPosition{
		{EntryID: "a", Row: 0, StartColumn: 3, EndColumn: 5, Span: 10},
		{EntryID: "b", Row: 1, StartColumn: 0, EndColumn: 3, Span: 11},
		{EntryID: "c", Row: 0, StartColumn: 0, EndColumn: 0, Span: 1},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BarPositions() mismatch (-want +got):\n%s", diff)
	}
}

func TestBarPositionsEmpty(t *testing.T) {
	if got := BarPositions(nil, Layout{StartDayOfWeek: 0}); len(got) != 0 {
		t.Errorf("BarPositions(nil) = %v, want empty", got)
	}
}
