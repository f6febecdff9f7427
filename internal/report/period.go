package report

import (
	"fmt"
	"time"

	"github.com/gerai-retail/api/internal/enum"
)

// PeriodRange returns the inclusive [start, end] window of the given
// period anchored at ref, in ref's location. Day covers midnight to the
// last nanosecond of the same date, month the calendar month, year the
// calendar year.
func PeriodRange(period string, ref time.Time) (time.Time, time.Time, error) {
	loc := ref.Location()
	switch period {
	case enum.PeriodDay:
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	case enum.PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	case enum.PeriodYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown period: %s", period)
}
