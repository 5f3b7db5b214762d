package domain

import "time"

// DateRange restricts rows to Start <= ts <= End. Either bound may be nil,
// which imposes no restriction on that side. End is expected to already be
// pushed to the last instant of its day by the caller.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// EndOfDay pushes t to 23:59:59.999 of the same calendar day, so an
// end-date filter is inclusive of the whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// MonthWindow returns the inclusive bounds of the calendar month containing
// now: its first instant through its last instant.
func MonthWindow(now time.Time) DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return DateRange{Start: &start, End: &end}
}

// SeriesExtremes returns the buckets with the smallest and largest counts.
// Series are ordered ascending by month, and comparisons are strict, so
// when several months tie the earliest one wins. Both results are nil for
// an empty series; for a single bucket min == max.
func SeriesExtremes(series []MonthCount) (min, max *MonthCount) {
	for i := range series {
		bucket := series[i]
		if min == nil || bucket.Count < min.Count {
			min = &bucket
		}
		if max == nil || bucket.Count > max.Count {
			max = &bucket
		}
	}
	return min, max
}
