package usecases

import (
	"time"

	"traderops/internal/entities"
)

// Period bounds a stats or rating rollup.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	}
	return false
}

// Cutoff resolves the period to a YYYY-MM-DD lower bound against the given
// reference time. Week and month are rolling windows (now minus N days),
// not calendar-aligned. The empty string means no bound.
func (p Period) Cutoff(now time.Time) string {
	switch p {
	case PeriodDay:
		return now.Format(entities.DateLayout)
	case PeriodWeek:
		return now.AddDate(0, 0, -7).Format(entities.DateLayout)
	case PeriodMonth:
		return now.AddDate(0, 0, -30).Format(entities.DateLayout)
	default:
		return ""
	}
}
