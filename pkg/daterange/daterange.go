package daterange

import (
	"errors"
	"fmt"
	"time"

	"leaguedash/pkg/messages"
)

// Period is the window selector used by the dashboard.
type Period string

const (
	PeriodDay    Period = "day"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// RollingDays is the length of the rolling "day" window.
const RollingDays = 7

// DateFormat is the calendar date layout used on every boundary.
// No time component, so the values compare safely against date columns.
const DateFormat = "2006-01-02"

// Range is an inclusive [start, end] date pair with a display label.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// StartString formats the start boundary as a calendar date.
func (r Range) StartString() string {
	return r.Start.Format(DateFormat)
}

// EndString formats the end boundary as a calendar date.
func (r Range) EndString() string {
	return r.End.Format(DateFormat)
}

// Days returns the inclusive length of the range in days.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// ClampStart moves the start boundary forward to min when it precedes it.
// A zero min leaves the range untouched.
func (r Range) ClampStart(min time.Time) Range {
	if min.IsZero() {
		return r
	}

	lowest := DateOnly(min)
	if !r.Start.Before(lowest) {
		return r
	}

	r.Start = lowest
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	r.Label = rangeLabel(r.Start, r.End)

	return r
}

// Previous returns the window of equal length immediately before this one.
// Used for period-over-period deltas on the summary.
func (r Range) Previous() Range {
	length := r.Days()
	start := r.Start.AddDate(0, 0, -length)
	end := r.End.AddDate(0, 0, -length)
	return Range{
		Start: start,
		End:   end,
		Label: rangeLabel(start, end),
	}
}

// DateOnly strips the time component, keeping only the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve turns a period selector and a reference date into a concrete range.
// The "day" period is a rolling window of RollingDays ending on the reference.
func Resolve(period Period, reference time.Time) (Range, error) {
	ref := DateOnly(reference)

	switch period {
	case PeriodDay:
		start := ref.AddDate(0, 0, -(RollingDays - 1))
		return Range{Start: start, End: ref, Label: rangeLabel(start, ref)}, nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Range{Start: start, End: end, Label: start.Format("January 2006")}, nil
	case PeriodYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(ref.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: end, Label: start.Format("2006")}, nil
	default:
		return Range{}, errors.New(messages.InvalidPeriod)
	}
}

// Custom builds a range from explicit boundaries. A missing start defaults to
// RollingDays before now, a missing end defaults to today.
func Custom(start, end time.Time, now time.Time) Range {
	today := DateOnly(now)

	s := DateOnly(start)
	if start.IsZero() {
		s = today.AddDate(0, 0, -RollingDays)
	}

	e := DateOnly(end)
	if end.IsZero() {
		e = today
	}

	return Range{Start: s, End: e, Label: rangeLabel(s, e)}
}

// Direction of a period navigation step.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// Navigate shifts the reference date by exactly one window length, clamped so
// the rolling window never starts before minDate nor ends after today.
func Navigate(reference time.Time, dir Direction, stepDays int, minDate, today time.Time) time.Time {
	ref := DateOnly(reference)
	min := DateOnly(minDate)
	max := DateOnly(today)

	switch dir {
	case Prev:
		ref = ref.AddDate(0, 0, -stepDays)
	case Next:
		ref = ref.AddDate(0, 0, stepDays)
	}

	// End of the window can't pass today.
	if ref.After(max) {
		ref = max
	}

	// Start of the window can't precede the minimum data date.
	lowest := min.AddDate(0, 0, stepDays-1)
	if ref.Before(lowest) {
		ref = lowest
	}

	return ref
}

func rangeLabel(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}
