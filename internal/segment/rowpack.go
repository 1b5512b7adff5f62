package segment

import "sort"

// Interval is a closed integer interval used for row packing. It is
// unit-free: BarPositions maps days onto it, but the packer neither knows
// nor cares about calendar geometry.
type Interval struct {
	Start int
	End   int
}

// AssignRows partitions the intervals into the minimum number of rows such
// that no two intervals in a row overlap, and returns the 0-based row for
// each input interval, aligned by index.
//
// The greedy rule: process intervals by ascending start, breaking ties by
// longer duration first so a short same-day interval never displaces a
// long-running one from row 0. Each interval takes the lowest-indexed row
// whose last occupant ends strictly before the interval starts (intervals
// are closed, so equal endpoints overlap); if no row is free, a new one is
// allocated. The resulting row count equals the maximum number of intervals
// covering any single point, which is the minimum possible for an interval
// graph.
func AssignRows(intervals []Interval) []int {
	if len(intervals) == 0 {
		return nil
	}

	order := make([]int, len(intervals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := intervals[order[a]], intervals[order[b]]
		if ia.Start != ib.Start {
			return ia.Start < ib.Start
		}
		return ia.End-ia.Start > ib.End-ib.Start
	})

	rows := make([]int, len(intervals))
	var rowEnds []int // last-placed End per row
	for _, idx := range order {
		iv := intervals[idx]
		placed := -1
		for r, lastEnd := range rowEnds {
			if lastEnd < iv.Start {
				placed = r
				break
			}
		}
		if placed == -1 {
			placed = len(rowEnds)
			rowEnds = append(rowEnds, iv.End)
		} else {
			rowEnds[placed] = iv.End
		}
		rows[idx] = placed
	}
	return rows
}
