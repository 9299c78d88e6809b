package kpcc

import (
	"errors"
	"math"
	"time"
)

// ErrOutOfRange is returned by DateRange.Percent for instants outside the
// range.
var ErrOutOfRange = errors.New("kpcc: date outside range")

// DateRange is a closed interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange returns the range starting at start and lasting d.
func NewDateRange(start time.Time, d time.Duration) DateRange {
	return DateRange{Start: start, End: start.Add(d)}
}

// Duration is End minus Start.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Clamp returns t limited to the range.
func (r DateRange) Clamp(t time.Time) time.Time {
	switch {
	case t.Before(r.Start):
		return r.Start
	case t.After(r.End):
		return r.End
	default:
		return t
	}
}

// Percent returns how far through the range t lies, from 0 at Start to 1 at
// End. An empty range reports 0 for its single instant.
func (r DateRange) Percent(t time.Time) (float64, error) {
	if !r.Contains(t) {
		return 0, ErrOutOfRange
	}
	total := r.Duration()
	if total <= 0 {
		return 0, nil
	}
	p := float64(t.Sub(r.Start)) / float64(total)
	return math.Min(math.Max(p, 0), 1), nil
}

// Date returns the instant at percent p through the range, rounded to the
// nearest second. p is clamped to [0, 1].
func (r DateRange) Date(p float64) time.Time {
	p = math.Min(math.Max(p, 0), 1)
	offset := time.Duration(math.Round(float64(r.Duration()) * p))
	return r.Start.Add(offset).Round(time.Second)
}

// Shift moves each bound by its own offset.
func (r DateRange) Shift(startDelta, endDelta time.Duration) DateRange {
	return DateRange{Start: r.Start.Add(startDelta), End: r.End.Add(endDelta)}
}

// Normalized pulls End back by one second so that adjacent ranges sharing a
// boundary instant do not both contain it.
func (r DateRange) Normalized() DateRange {
	return r.Shift(0, -time.Second)
}

// Equal reports whether both bounds are the same instants.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}
