package kpcc

import (
	"encoding/json"
	"fmt"
	"time"
)

// ScheduleOccurrence is one time-boxed airing within a schedule.
type ScheduleOccurrence struct {
	Title       string
	PublicURL   string
	DateRange   DateRange
	IsRecurring bool
	Program     *Program
}

type occurrenceWire struct {
	Title       string    `json:"title,omitempty"`
	PublicURL   string    `json:"public_url,omitempty"`
	StartsAt    Timestamp `json:"starts_at"`
	EndsAt      Timestamp `json:"ends_at"`
	IsRecurring bool      `json:"is_recurring,omitempty"`
	Program     *Program  `json:"program,omitempty"`
}

// MarshalJSON flattens DateRange into starts_at/ends_at.
func (o ScheduleOccurrence) MarshalJSON() ([]byte, error) {
	return json.Marshal(occurrenceWire{
		Title:       o.Title,
		PublicURL:   o.PublicURL,
		StartsAt:    NewTimestamp(o.DateRange.Start),
		EndsAt:      NewTimestamp(o.DateRange.End),
		IsRecurring: o.IsRecurring,
		Program:     o.Program,
	})
}

// UnmarshalJSON requires both starts_at and ends_at.
func (o *ScheduleOccurrence) UnmarshalJSON(data []byte) error {
	var wire occurrenceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.StartsAt.IsZero() || wire.EndsAt.IsZero() {
		return fmt.Errorf("%w: occurrence %q has no starts_at/ends_at", errSchema, wire.Title)
	}
	*o = ScheduleOccurrence{
		Title:       wire.Title,
		PublicURL:   wire.PublicURL,
		DateRange:   DateRange{Start: wire.StartsAt.Time, End: wire.EndsAt.Time},
		IsRecurring: wire.IsRecurring,
		Program:     wire.Program,
	}
	return nil
}

// NormalizedDateRange is the occurrence range with one second trimmed from
// the end, so back-to-back occurrences do not overlap.
func (o ScheduleOccurrence) NormalizedDateRange() DateRange {
	return o.DateRange.Normalized()
}

// IsCurrentAt reports whether the occurrence is airing at t. The range is
// half-open: the end instant belongs to whatever airs next.
func (o ScheduleOccurrence) IsCurrentAt(t time.Time) bool {
	return !t.Before(o.DateRange.Start) && t.Before(o.DateRange.End)
}

// Equal compares occurrences by their date range.
func (o ScheduleOccurrence) Equal(other ScheduleOccurrence) bool {
	return o.DateRange.Equal(other.DateRange)
}

// ProgramSchedule is the ordered list of occurrences the server returned.
// Ordering and non-overlap are taken as given.
type ProgramSchedule struct {
	Occurrences []ScheduleOccurrence `json:"schedule_occurrences"`
}

// DateRanges returns each occurrence's range in order.
func (s ProgramSchedule) DateRanges() []DateRange {
	out := make([]DateRange, len(s.Occurrences))
	for i, o := range s.Occurrences {
		out[i] = o.DateRange
	}
	return out
}

// NormalizedDateRanges returns each occurrence's normalized range in order.
func (s ProgramSchedule) NormalizedDateRanges() []DateRange {
	out := make([]DateRange, len(s.Occurrences))
	for i, o := range s.Occurrences {
		out[i] = o.NormalizedDateRange()
	}
	return out
}

// OccurrenceAt returns the occurrence airing at t. At a boundary shared by
// two occurrences the later one wins.
func (s ProgramSchedule) OccurrenceAt(t time.Time) (ScheduleOccurrence, bool) {
	i := s.indexAt(t)
	if i < 0 {
		return ScheduleOccurrence{}, false
	}
	return s.Occurrences[i], true
}

// Current is OccurrenceAt(now).
func (s ProgramSchedule) Current(now time.Time) (ScheduleOccurrence, bool) {
	return s.OccurrenceAt(now)
}

// OccurrenceAfter returns the occurrence following the one airing at t.
func (s ProgramSchedule) OccurrenceAfter(t time.Time) (ScheduleOccurrence, bool) {
	i := s.indexAt(t)
	if i < 0 || i+1 >= len(s.Occurrences) {
		return ScheduleOccurrence{}, false
	}
	return s.Occurrences[i+1], true
}

// TitleAt returns the title of the occurrence airing at t.
func (s ProgramSchedule) TitleAt(t time.Time) (string, bool) {
	o, ok := s.OccurrenceAt(t)
	if !ok {
		return "", false
	}
	return o.Title, true
}

func (s ProgramSchedule) indexAt(t time.Time) int {
	for i, o := range s.Occurrences {
		if o.IsCurrentAt(t) {
			return i
		}
	}
	return -1
}

// DivideIntoDays buckets occurrences by the local calendar day they start on,
// keyed 0 (the day containing now) through 6. Every key is present. An
// occurrence lands in at most one bucket; those starting outside the week are
// dropped.
func (s ProgramSchedule) DivideIntoDays(now time.Time, loc *time.Location) map[int][]ScheduleOccurrence {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	days := make(map[int][]ScheduleOccurrence, 7)
	for day := 0; day < 7; day++ {
		start := today.AddDate(0, 0, day)
		end := today.AddDate(0, 0, day+1)
		bucket := []ScheduleOccurrence{}
		for _, o := range s.Occurrences {
			if !o.DateRange.Start.Before(start) && o.DateRange.Start.Before(end) {
				bucket = append(bucket, o)
			}
		}
		days[day] = bucket
	}
	return days
}
