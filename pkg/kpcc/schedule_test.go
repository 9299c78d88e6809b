package kpcc

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func testSchedule(base time.Time) ProgramSchedule {
	occ := func(title string, startHour, hours int) ScheduleOccurrence {
		return ScheduleOccurrence{
			Title:     title,
			DateRange: NewDateRange(base.Add(time.Duration(startHour)*time.Hour), time.Duration(hours)*time.Hour),
		}
	}
	return ProgramSchedule{Occurrences: []ScheduleOccurrence{
		occ("Morning Edition", 5, 5),
		occ("AirTalk", 10, 2),
		occ("Here and Now", 12, 1),
	}}
}

func TestProgramSchedule_Lookup(t *testing.T) {
	base := time.Date(2018, time.March, 14, 0, 0, 0, 0, time.UTC)
	s := testSchedule(base)

	tests := []struct {
		name      string
		at        time.Time
		wantTitle string
		wantNext  string
	}{
		{"inside first", base.Add(6 * time.Hour), "Morning Edition", "AirTalk"},
		{"shared boundary goes to later", base.Add(10 * time.Hour), "AirTalk", "Here and Now"},
		{"last second of occurrence", base.Add(12*time.Hour - time.Second), "AirTalk", "Here and Now"},
		{"last occurrence has no next", base.Add(12*time.Hour + 30*time.Minute), "Here and Now", ""},
		{"half second before boundary", base.Add(12*time.Hour - 500*time.Millisecond), "AirTalk", "Here and Now"},
		{"gap", base.Add(2 * time.Hour), "", ""},
		{"final end instant excluded", base.Add(13 * time.Hour), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := s.TitleAt(tt.at)
			if ok != (tt.wantTitle != "") || title != tt.wantTitle {
				t.Fatalf("TitleAt = %q, %v; want %q", title, ok, tt.wantTitle)
			}
			cur, ok := s.Current(tt.at)
			if ok != (tt.wantTitle != "") || cur.Title != tt.wantTitle {
				t.Fatalf("Current = %q, %v; want %q", cur.Title, ok, tt.wantTitle)
			}
			next, ok := s.OccurrenceAfter(tt.at)
			if ok != (tt.wantNext != "") || next.Title != tt.wantNext {
				t.Fatalf("OccurrenceAfter = %q, %v; want %q", next.Title, ok, tt.wantNext)
			}
		})
	}
}

func TestProgramSchedule_Ranges(t *testing.T) {
	base := time.Date(2018, time.March, 14, 0, 0, 0, 0, time.UTC)
	s := testSchedule(base)
	ranges := s.DateRanges()
	normalized := s.NormalizedDateRanges()
	if len(ranges) != 3 || len(normalized) != 3 {
		t.Fatalf("ranges = %d, normalized = %d", len(ranges), len(normalized))
	}
	for i := range ranges {
		if !normalized[i].End.Equal(ranges[i].End.Add(-time.Second)) {
			t.Fatalf("normalized[%d] = %v, want end one second before %v", i, normalized[i], ranges[i])
		}
		if i > 0 && normalized[i-1].Contains(ranges[i].Start) {
			t.Fatalf("normalized ranges %d and %d overlap", i-1, i)
		}
	}
	if !s.Occurrences[0].Equal(ScheduleOccurrence{Title: "other", DateRange: ranges[0]}) {
		t.Fatalf("occurrences with equal ranges should be Equal")
	}
}

func TestProgramSchedule_DivideIntoDays(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	now := time.Date(2018, time.March, 14, 15, 0, 0, 0, loc)
	day := func(offset, hour int) time.Time {
		return time.Date(2018, time.March, 14+offset, hour, 0, 0, 0, loc)
	}
	s := ProgramSchedule{Occurrences: []ScheduleOccurrence{
		{Title: "yesterday", DateRange: NewDateRange(day(-1, 23), time.Hour)},
		{Title: "today early", DateRange: NewDateRange(day(0, 0), time.Hour)},
		{Title: "today late", DateRange: NewDateRange(day(0, 23), 2*time.Hour)},
		{Title: "tomorrow", DateRange: NewDateRange(day(1, 9), time.Hour)},
		{Title: "day six", DateRange: NewDateRange(day(6, 20), time.Hour)},
		{Title: "next week", DateRange: NewDateRange(day(7, 0), time.Hour)},
	}}

	days := s.DivideIntoDays(now, loc)
	if len(days) != 7 {
		t.Fatalf("DivideIntoDays returned %d buckets, want 7", len(days))
	}
	want := map[int][]string{
		0: {"today early", "today late"},
		1: {"tomorrow"},
		6: {"day six"},
	}
	for i := 0; i < 7; i++ {
		bucket, ok := days[i]
		if !ok {
			t.Fatalf("bucket %d missing", i)
		}
		if len(bucket) != len(want[i]) {
			t.Fatalf("bucket %d = %d occurrences, want %d", i, len(bucket), len(want[i]))
		}
		for j, o := range bucket {
			if o.Title != want[i][j] {
				t.Fatalf("bucket %d[%d] = %q, want %q", i, j, o.Title, want[i][j])
			}
		}
	}
}

func TestScheduleOccurrence_JSON(t *testing.T) {
	body := `{"title":"AirTalk","public_url":"https://www.scpr.org/programs/airtalk/","starts_at":"2018-03-14T10:00:00.000-07:00","ends_at":"2018-03-14T12:00:00.000-07:00","is_recurring":true,"program":{"slug":"airtalk"}}`
	var o ScheduleOccurrence
	if err := json.Unmarshal([]byte(body), &o); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if o.DateRange.Duration() != 2*time.Hour || !o.IsRecurring || o.Program.Slug != "airtalk" {
		t.Fatalf("occurrence = %#v", o)
	}
	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != body {
		t.Fatalf("Marshal =\n%s\nwant\n%s", out, body)
	}

	err = json.Unmarshal([]byte(`{"title":"x","starts_at":"2018-03-14T10:00:00.000-07:00"}`), &o)
	if !errors.Is(err, errSchema) {
		t.Fatalf("missing ends_at error = %v, want schema error", err)
	}
}
