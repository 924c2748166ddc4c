/*
Package tenure implements the calendar arithmetic of a termination settlement.

PURPOSE:
  Pure functions from admission/termination dates to the quantities the
  settlement builder needs: tenure in days and whole months, completed years,
  statutory notice length, and the vacation and 13th-salary fractional credits
  ("avos", twelfths).

NORMALIZATION:
  Every date is reduced to its UTC calendar day before arithmetic, so a
  time-of-day or a DST shift never moves a count by one.

RULES:
  Days:               floor((end - start) / 24h) + 1   (inclusive)
  WholeMonths:        years*12 + months, +1 when day-of-month diff >= 15, floor 0
  CompletedYears:     floor(days / 365)
  NoticeDays:         30 + 3 per completed year beyond the first, capped at 90
  VacationFraction:   WholeMonths mod 12
  ThirteenthFraction: calendar month of the termination date (1-12)
*/
package tenure

import (
	"math"
	"time"
)

const (
	baseNoticeDays    = 30
	noticeDaysPerYear = 3
	maxNoticeDays     = 90
	halfMonthDays     = 15
	daysPerYear       = 365
)

// Date normalizes t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the inclusive day count between start and end.
// Negative spans yield zero or a negative count; callers decide what that means.
func Days(start, end time.Time) int {
	diff := Date(end).Sub(Date(start))
	return int(math.Floor(diff.Hours()/24)) + 1
}

// WholeMonths counts months of service, rounding a trailing half month up.
func WholeMonths(start, end time.Time) int {
	s, e := Date(start), Date(end)
	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if e.Day()-s.Day() >= halfMonthDays {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// CompletedYears returns the whole years contained in a tenure of days.
func CompletedYears(days int) int {
	if days <= 0 {
		return 0
	}
	return days / daysPerYear
}

// NoticeDays returns the statutory notice length for a tenure of days.
func NoticeDays(days int) int {
	extra := CompletedYears(days) - 1
	if extra < 0 {
		extra = 0
	}
	notice := baseNoticeDays + extra*noticeDaysPerYear
	if notice > maxNoticeDays {
		return maxNoticeDays
	}
	return notice
}

// VacationFraction returns the proportional vacation credit in twelfths.
func VacationFraction(start, end time.Time) int {
	return WholeMonths(start, end) % 12
}

// ThirteenthFraction returns the 13th-salary credit in twelfths: the month of
// termination, since the credit restarts every January.
func ThirteenthFraction(end time.Time) int {
	return int(Date(end).Month())
}

// RemainingDays returns the inclusive days from termination to the agreed
// contract end, never negative.
func RemainingDays(termination, contractEnd time.Time) int {
	d := Days(termination, contractEnd)
	if d < 0 {
		return 0
	}
	return d
}
