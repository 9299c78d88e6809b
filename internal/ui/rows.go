package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/five82/kpcc/internal/content"
	"github.com/five82/kpcc/internal/logtail"
	"github.com/five82/kpcc/internal/state"
	"github.com/five82/kpcc/pkg/kpcc"
)

// View is a top-level screen.
type View int

const (
	ViewHeadlines View = iota
	ViewPrograms
	ViewSchedule
	ViewEvents
	ViewLists
	ViewLogs
)

var viewNames = []string{"Headlines", "Programs", "Schedule", "Events", "Lists", "Logs"}

func (v View) String() string {
	if int(v) < 0 || int(v) >= len(viewNames) {
		return "Unknown"
	}
	return viewNames[v]
}

// feed is the state feed backing the view, if any.
func (v View) feed() (state.Feed, bool) {
	switch v {
	case ViewHeadlines:
		return state.FeedArticles, true
	case ViewPrograms:
		return state.FeedPrograms, true
	case ViewSchedule:
		return state.FeedSchedule, true
	case ViewEvents:
		return state.FeedEvents, true
	case ViewLists:
		return state.FeedLists, true
	default:
		return "", false
	}
}

// ParseView maps a preference value such as "programs" to a View. Unknown
// names return ViewHeadlines.
func ParseView(name string) View {
	name = strings.TrimSpace(name)
	for i, n := range viewNames {
		if strings.EqualFold(n, name) {
			return View(i)
		}
	}
	return ViewHeadlines
}

// row is one selectable line in the list pane.
type row struct {
	key    string   // stable identity, e.g. "program:airtalk"
	title  string   // left column
	meta   string   // right column
	badge  string   // badge color key
	marker string   // leading glyph, e.g. on-air indicator
	search []string // fields matched by the search box
	item   any
}

// rowsFor builds the rows of view from snap, applying the search query and,
// for headlines, the category filter.
func rowsFor(view View, snap state.Snapshot, logs []logtail.Entry, query, category string, now time.Time) []row {
	var rows []row
	switch view {
	case ViewHeadlines:
		rows = articleRows(snap.Articles, category)
	case ViewPrograms:
		rows = programRows(snap.Programs)
	case ViewSchedule:
		rows = scheduleRows(snap.Schedule, now)
	case ViewEvents:
		rows = eventRows(snap.Events)
	case ViewLists:
		rows = listRows(snap.Lists)
	case ViewLogs:
		rows = logRows(logs)
	}
	if strings.TrimSpace(query) == "" {
		return rows
	}
	return lo.Filter(rows, func(r row, _ int) bool {
		return content.Matches(query, r.search...)
	})
}

func articleRows(articles []kpcc.Article, category string) []row {
	rows := make([]row, 0, len(articles))
	for _, a := range articles {
		if category != "" && (a.Category == nil || a.Category.Slug != category) {
			continue
		}
		var cat string
		if a.Category != nil {
			cat = a.Category.Title
		}
		rows = append(rows, row{
			key:    "article:" + a.ID,
			title:  a.DisplayTitle(),
			meta:   shortTime(a.PublishedAt.Time),
			search: []string{a.Title, a.ShortTitle, a.Byline, a.Teaser, cat},
			item:   a,
		})
	}
	return rows
}

func programRows(programs []kpcc.Program) []row {
	return lo.Map(programs, func(p kpcc.Program, _ int) row {
		return row{
			key:    "program:" + p.Slug,
			title:  p.Title,
			meta:   p.Host,
			badge:  string(p.AirStatus),
			search: []string{p.Title, p.Host, p.Slug, p.Summary()},
			item:   p,
		}
	})
}

func scheduleRows(schedule kpcc.ProgramSchedule, now time.Time) []row {
	labels := dayLabels(schedule, now)
	rows := make([]row, 0, len(schedule.Occurrences))
	for _, o := range schedule.Occurrences {
		start := o.DateRange.Start.Local()
		day, ok := labels[o.DateRange.Start.UnixNano()]
		if !ok {
			day = start.Format("Jan 2")
		}
		r := row{
			key:    "occurrence:" + o.DateRange.Start.Format(time.RFC3339),
			title:  o.Title,
			meta:   fmt.Sprintf("%s %s", day, start.Format("15:04")),
			search: []string{o.Title},
			item:   o,
		}
		if o.IsCurrentAt(now) {
			r.marker = "▶"
			r.badge = "live"
		}
		rows = append(rows, r)
	}
	return rows
}

// dayLabels names the day of every occurrence starting within the coming
// week: "Today", "Tomorrow", then weekday names.
func dayLabels(schedule kpcc.ProgramSchedule, now time.Time) map[int64]string {
	labels := make(map[int64]string)
	for day, occurrences := range schedule.DivideIntoDays(now, time.Local) {
		for _, o := range occurrences {
			var label string
			switch day {
			case 0:
				label = "Today"
			case 1:
				label = "Tomorrow"
			default:
				label = o.DateRange.Start.Local().Format("Mon")
			}
			labels[o.DateRange.Start.UnixNano()] = label
		}
	}
	return labels
}

func eventRows(events []kpcc.Event) []row {
	return lo.Map(events, func(e kpcc.Event, _ int) row {
		search := []string{e.Title, e.Teaser, e.Type.Label()}
		if e.Location != nil {
			search = append(search, e.Location.Title)
			if e.Location.Address != nil {
				search = append(search, e.Location.Address.City)
			}
		}
		return row{
			key:    fmt.Sprintf("event:%d", e.ID),
			title:  e.Title,
			meta:   shortTime(e.StartsAt.Time),
			badge:  string(e.Type),
			search: search,
			item:   e,
		}
	})
}

func listRows(lists []kpcc.List) []row {
	return lo.Map(lists, func(l kpcc.List, _ int) row {
		return row{
			key:    fmt.Sprintf("list:%d", l.ID),
			title:  l.Title,
			meta:   fmt.Sprintf("%d %s", len(l.Items), plural(string(l.Type), len(l.Items))),
			search: []string{l.Title, l.Context, string(l.Type)},
			item:   l,
		}
	})
}

// logRows lists newest entries first.
func logRows(entries []logtail.Entry) []row {
	rows := make([]row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		search := []string{e.Message, e.Level}
		for _, a := range e.Attrs {
			search = append(search, a.Value)
		}
		rows = append(rows, row{
			key:    fmt.Sprintf("log:%d", i),
			title:  e.Message,
			meta:   e.Time.Local().Format("15:04:05"),
			badge:  logBadge(e.Level),
			search: search,
			item:   e,
		})
	}
	return rows
}

func logBadge(level string) string {
	switch strings.ToUpper(level) {
	case "ERROR":
		return "live"
	case "WARN":
		return "spon"
	default:
		return ""
	}
}

func shortTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2 15:04")
}

func plural(word string, n int) string {
	if n == 1 || word == "" {
		return word
	}
	return word + "s"
}

// categoryCycle returns the slug after current in categories, wrapping to ""
// (no filter) after the last one.
func categoryCycle(categories []kpcc.Category, current string) string {
	if len(categories) == 0 {
		return ""
	}
	if current == "" {
		return categories[0].Slug
	}
	_, idx, ok := lo.FindIndexOf(categories, func(c kpcc.Category) bool { return c.Slug == current })
	if !ok || idx+1 >= len(categories) {
		return ""
	}
	return categories[idx+1].Slug
}
