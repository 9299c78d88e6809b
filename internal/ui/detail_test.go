package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/five82/kpcc/internal/podcast"
	"github.com/five82/kpcc/pkg/kpcc"
)

func TestRenderDetailProgramReportsPartialFailures(t *testing.T) {
	d := programDetail{
		Program:     kpcc.Program{Slug: "airtalk", Title: "AirTalk", Host: "Larry Mantle", AirStatus: kpcc.AirStatusOnAir},
		EpisodesErr: &kpcc.Error{Kind: kpcc.KindDataUnavailable, Op: "episodes", StatusCode: 503},
		Feed: podcast.Feed{Episodes: []podcast.Episode{
			{Title: "Newest", Published: time.Date(2018, 3, 14, 10, 0, 0, 0, time.UTC)},
		}},
	}

	out := renderDetail(d, GetTheme("Nightfox").Styles(), 80, time.Now())
	for _, want := range []string{"AirTalk", "Larry Mantle", "On air", "Data Unavailable (HTTP 503)", "Newest"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Press enter") {
		t.Fatalf("loaded program should not prompt to load:\n%s", out)
	}
}

func TestRenderDetailUnloadedProgramPrompts(t *testing.T) {
	out := renderDetail(kpcc.Program{Title: "Take Two"}, GetTheme("Slate").Styles(), 60, time.Now())
	if !strings.Contains(out, "Press enter") {
		t.Fatalf("expected load prompt:\n%s", out)
	}
}

func TestRenderDetailArticleBody(t *testing.T) {
	a := kpcc.Article{
		ID:     "news_story-1",
		Title:  "Heat wave lingers",
		Byline: "Staff",
		Teaser: "Short teaser",
		Body:   "<p>First paragraph.</p><p>Second paragraph.</p>",
	}
	out := renderDetail(a, GetTheme("Nightfox").Styles(), 80, time.Now())
	if !strings.Contains(out, "First paragraph.") || !strings.Contains(out, "Second paragraph.") {
		t.Fatalf("body not rendered:\n%s", out)
	}

	a.Body = ""
	out = renderDetail(a, GetTheme("Nightfox").Styles(), 80, time.Now())
	if !strings.Contains(out, "Short teaser") || !strings.Contains(out, "Press enter") {
		t.Fatalf("teaser fallback not rendered:\n%s", out)
	}
}

func TestRenderDetailListItems(t *testing.T) {
	l, err := kpcc.NewList("Homepage", kpcc.ListTypeProgram,
		kpcc.Program{Slug: "airtalk", Title: "AirTalk", Host: "Larry Mantle"},
		kpcc.Program{Slug: "take-two", Title: "Take Two"},
	)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	out := renderDetail(l, GetTheme("Nightfox").Styles(), 80, time.Now())
	for _, want := range []string{"Homepage", "Programs", "AirTalk  Larry Mantle", "Take Two"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDetailEventUsesPastTenseAfterEnd(t *testing.T) {
	start := time.Date(2018, 3, 14, 18, 0, 0, 0, time.UTC)
	e := kpcc.Event{
		ID:            77,
		Title:         "Town hall",
		Type:          kpcc.EventTownHall,
		StartsAt:      kpcc.Timestamp{Time: start},
		EndsAt:        kpcc.Timestamp{Time: start.Add(2 * time.Hour)},
		Body:          "Join us.",
		PastTenseBody: "Thanks for coming.",
	}
	styles := GetTheme("Nightfox").Styles()

	before := renderDetail(e, styles, 80, start.Add(-time.Hour))
	if !strings.Contains(before, "Join us.") {
		t.Fatalf("expected upcoming body:\n%s", before)
	}
	after := renderDetail(e, styles, 80, start.Add(3*time.Hour))
	if !strings.Contains(after, "Thanks for coming.") || strings.Contains(after, "Join us.") {
		t.Fatalf("expected past tense body:\n%s", after)
	}
}

func TestRenderDetailOccurrenceProgress(t *testing.T) {
	start := time.Date(2018, 3, 14, 12, 0, 0, 0, time.UTC)
	o := kpcc.ScheduleOccurrence{Title: "AirTalk", DateRange: kpcc.DateRange{Start: start, End: start.Add(time.Hour)}}

	out := renderDetail(o, GetTheme("Nightfox").Styles(), 80, start.Add(30*time.Minute))
	if !strings.Contains(out, "On air") || !strings.Contains(out, "50%") {
		t.Fatalf("expected progress:\n%s", out)
	}
	out = renderDetail(o, GetTheme("Nightfox").Styles(), 80, start.Add(-2*time.Hour))
	if !strings.Contains(out, "Starts in 2h") {
		t.Fatalf("expected countdown:\n%s", out)
	}
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"status", &kpcc.Error{Kind: kpcc.KindDataUnavailable, StatusCode: 404}, "Data Unavailable (HTTP 404)"},
		{"cause", &kpcc.Error{Kind: kpcc.KindDecoding, Err: errors.New("bad field")}, "Decoding: bad field"},
		{"wrapped", fmt.Errorf("lists: %w", &kpcc.Error{Kind: kpcc.KindOther}), "Other"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeError(tc.err); got != tc.want {
				t.Fatalf("describeError = %q, want %q", got, tc.want)
			}
		})
	}
}
