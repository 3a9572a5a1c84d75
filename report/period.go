// Package report computes the period and budget summaries behind the dashboard
// charts and the data export: income-vs-expense series bucketed by calendar
// week, month or year, and per-budget spend totals with progress percentages.
package report

import (
	"fmt"
	"time"
)

// PeriodKind selects the calendar bucket used by SummarizeByPeriod.
type PeriodKind string

const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

// ParsePeriodKind validates a user-supplied period kind string.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return PeriodKind(s), nil
	}
	return "", fmt.Errorf("invalid period kind %q (want week, month or year)", s)
}

// DefaultPeriodCount is the chart window each kind uses when the caller does
// not ask for a specific count: 4 weeks, 12 months, 5 years.
func DefaultPeriodCount(kind PeriodKind) int {
	switch kind {
	case PeriodWeek:
		return 4
	case PeriodMonth:
		return 12
	default:
		return 5
	}
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// PeriodRange returns the half-open interval [start, end) of the period that
// lies `back` steps before the one containing now. back=0 is the current
// (possibly partial) period. Weeks start on Sunday; months and years are
// calendar-aligned. end is always the start of the following period, so a row
// stamped exactly on a boundary counts in exactly one period.
func PeriodRange(now time.Time, kind PeriodKind, back int) (start, end time.Time) {
	switch kind {
	case PeriodWeek:
		start = startOfWeek(now).AddDate(0, 0, -7*back)
		end = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -back, 0)
		end = start.AddDate(0, 1, 0)
	default:
		start = time.Date(now.Year()-back, 1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	}
	return start, end
}

// PeriodLabel formats the chart label for the period starting at start.
// index counts 0..count-1 from the oldest period, so weeks read
// "Week 1".."Week N" left to right regardless of the window size.
func PeriodLabel(kind PeriodKind, start time.Time, index int) string {
	switch kind {
	case PeriodWeek:
		return fmt.Sprintf("Week %d", index+1)
	case PeriodMonth:
		return start.Format("Jan")
	default:
		return start.Format("2006")
	}
}
