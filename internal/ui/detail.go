package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/kpcc/internal/content"
	"github.com/five82/kpcc/internal/logtail"
	"github.com/five82/kpcc/internal/podcast"
	"github.com/five82/kpcc/pkg/kpcc"
)

// programDetail is what loading a program gathers: the program itself plus
// its latest episodes and podcast feed, each of which may fail on its own.
type programDetail struct {
	Program     kpcc.Program
	Episodes    []kpcc.Episode
	EpisodesErr error
	Feed        podcast.Feed
	FeedErr     error
}

const podcastPreview = 5

// detailWriter accumulates styled detail lines.
type detailWriter struct {
	b      strings.Builder
	styles Styles
	width  int
}

func (w *detailWriter) title(s string) {
	w.b.WriteString(w.styles.AccentText.Bold(true).Render(wrap(s, w.width)))
	w.b.WriteString("\n")
}

func (w *detailWriter) section(s string) {
	w.b.WriteString("\n")
	w.b.WriteString(w.styles.WarningText.Bold(true).Render(s))
	w.b.WriteString("\n")
}

// field writes "label  value"; empty values are skipped.
func (w *detailWriter) field(label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	w.b.WriteString(w.styles.MutedText.Render(padRight(label, 10)))
	w.b.WriteString(w.styles.Text.Render(truncate(value, max(w.width-10, 10))))
	w.b.WriteString("\n")
}

func (w *detailWriter) text(s string) {
	if s = strings.TrimSpace(s); s == "" {
		return
	}
	w.b.WriteString(w.styles.Text.Render(wrap(s, w.width)))
	w.b.WriteString("\n")
}

func (w *detailWriter) faint(s string) {
	w.b.WriteString(w.styles.FaintText.Render(wrap(s, w.width)))
	w.b.WriteString("\n")
}

func (w *detailWriter) err(prefix string, err error) {
	w.b.WriteString(w.styles.DangerText.Render(wrap(prefix+": "+describeError(err), w.width)))
	w.b.WriteString("\n")
}

func (w *detailWriter) bullet(s string) {
	w.b.WriteString(w.styles.FaintText.Render("• "))
	w.b.WriteString(w.styles.Text.Render(truncate(s, max(w.width-2, 8))))
	w.b.WriteString("\n")
}

func (w *detailWriter) String() string {
	return strings.TrimRight(w.b.String(), "\n")
}

// renderDetail renders item (a row item or a loaded detail) for the detail
// pane.
func renderDetail(item any, styles Styles, width int, now time.Time) string {
	w := &detailWriter{styles: styles, width: max(width, 20)}
	switch v := item.(type) {
	case kpcc.Article:
		writeArticle(w, v)
	case kpcc.Program:
		writeProgram(w, programDetail{Program: v}, false)
	case programDetail:
		writeProgram(w, v, true)
	case kpcc.ScheduleOccurrence:
		writeOccurrence(w, v, now)
	case kpcc.Event:
		writeEvent(w, v, now)
	case kpcc.List:
		writeList(w, v)
	case logtail.Entry:
		writeLogEntry(w, v)
	case nil:
		w.faint("Nothing selected.")
	default:
		w.faint(fmt.Sprintf("%v", v))
	}
	return w.String()
}

func writeArticle(w *detailWriter, a kpcc.Article) {
	w.title(a.Title)
	w.field("Type", titleCase(string(a.Type)))
	w.field("By", a.Byline)
	if a.Category != nil {
		w.field("Category", a.Category.Title)
	}
	if !a.PublishedAt.IsZero() {
		w.field("Published", formatTime(a.PublishedAt.Local()))
	}
	if !a.UpdatedAt.IsZero() && !a.UpdatedAt.Equal(a.PublishedAt.Time) {
		w.field("Updated", formatTime(a.UpdatedAt.Local()))
	}
	w.field("URL", a.PublicURL)

	if len(a.Audio) > 0 {
		w.section("Audio")
		for _, au := range a.Audio {
			label := au.Description
			if label == "" {
				label = au.URL
			}
			if d := au.Duration(); d > 0 {
				label += " (" + clock(d) + ")"
			}
			w.bullet(label)
		}
	}
	if len(a.Tags) > 0 {
		tags := make([]string, 0, len(a.Tags))
		for _, t := range a.Tags {
			tags = append(tags, t.Title)
		}
		w.field("Tags", strings.Join(tags, ", "))
	}

	w.section("Story")
	body := content.Text(a.Body, a.PublicURL)
	if body == "" {
		w.text(a.Teaser)
		w.faint("Press enter to load the full story.")
		return
	}
	w.text(body)
}

func writeProgram(w *detailWriter, d programDetail, loaded bool) {
	p := d.Program
	w.title(p.Title)
	w.field("Host", p.Host)
	w.field("Status", airStatusLabel(p.AirStatus))
	w.field("Airs", p.AirTime)
	w.field("Phone", p.PhoneNumber)
	if p.TwitterHandle != "" {
		w.field("Twitter", "@"+strings.TrimPrefix(p.TwitterHandle, "@"))
	}
	w.field("URL", p.PublicURL)
	w.field("Podcast", p.FeedURL())

	if summary := content.Text(p.Summary(), p.PublicURL); summary != "" {
		w.section("About")
		w.text(summary)
	}

	if !loaded {
		w.b.WriteString("\n")
		w.faint("Press enter to load episodes and the podcast feed.")
		return
	}

	w.section("Recent episodes")
	switch {
	case d.EpisodesErr != nil:
		w.err("episodes", d.EpisodesErr)
	case len(d.Episodes) == 0:
		w.faint("No episodes.")
	default:
		for _, e := range d.Episodes {
			w.bullet(strings.TrimSpace(shortTime(e.AirDate.Time) + "  " + e.Title))
		}
	}

	w.section("Podcast")
	switch {
	case d.FeedErr != nil:
		w.err("feed", d.FeedErr)
	case len(d.Feed.Episodes) == 0:
		w.faint("No podcast episodes.")
	default:
		for _, e := range d.Feed.Episodes[:min(len(d.Feed.Episodes), podcastPreview)] {
			w.bullet(strings.TrimSpace(shortTime(e.Published) + "  " + e.Title))
		}
	}
}

func writeOccurrence(w *detailWriter, o kpcc.ScheduleOccurrence, now time.Time) {
	w.title(o.Title)
	r := o.DateRange
	w.field("Airs", formatSpan(r.Start.Local(), r.End.Local()))
	w.field("Length", humanizeDuration(r.Duration()))
	if o.IsRecurring {
		w.field("Repeats", "yes")
	}
	if o.Program != nil {
		w.field("Program", o.Program.Title)
		w.field("Host", o.Program.Host)
	}
	w.field("URL", o.PublicURL)

	switch {
	case o.IsCurrentAt(now):
		w.section("On air")
		if pct, err := r.Percent(now); err == nil {
			w.b.WriteString(progressBar(pct, min(w.width-8, 40), w.styles))
			w.b.WriteString("\n")
			w.faint(humanizeDuration(r.End.Sub(now)) + " remaining")
		}
	case now.Before(r.Start):
		w.b.WriteString("\n")
		w.faint("Starts in " + humanizeDuration(r.Start.Sub(now)))
	default:
		w.b.WriteString("\n")
		w.faint("Aired " + humanizeDuration(now.Sub(r.End)) + " ago")
	}
}

func writeEvent(w *detailWriter, e kpcc.Event, now time.Time) {
	w.title(e.Title)
	w.field("Type", e.Type.Label())
	r := e.DateRange()
	if e.IsAllDay {
		w.field("When", r.Start.Local().Format("Mon Jan 2")+" (all day)")
	} else {
		w.field("When", formatSpan(r.Start.Local(), r.End.Local()))
	}
	if loc := e.Location; loc != nil {
		w.field("Where", loc.Title)
		if a := loc.Address; a != nil {
			w.field("", strings.TrimSpace(a.Line1+" "+a.Line2))
			w.field("", strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.City, a.State, a.ZipCode)))
		}
	}
	if e.Sponsor != nil {
		w.field("Sponsor", e.Sponsor.Title)
	}
	if e.Program != nil {
		w.field("Program", e.Program.Title)
	}
	if e.Hashtag != "" {
		w.field("Hashtag", "#"+e.Hashtag)
	}
	w.field("RSVP", e.RSVPURL)
	w.field("URL", e.PublicURL)

	body := e.Body
	if !r.End.IsZero() && now.After(r.End) && e.PastTenseBody != "" {
		body = e.PastTenseBody
	}
	if text := content.Text(body, e.PublicURL); text != "" {
		w.section("Details")
		w.text(text)
	} else if e.Teaser != "" {
		w.section("Details")
		w.text(e.Teaser)
	}
}

func writeList(w *detailWriter, l kpcc.List) {
	w.title(l.Title)
	w.field("Context", l.Context)
	w.field("Holds", titleCase(plural(string(l.Type), 2)))
	if !l.StartsAt.IsZero() {
		w.field("From", formatTime(l.StartsAt.Local()))
	}
	if !l.EndsAt.IsZero() {
		w.field("Until", formatTime(l.EndsAt.Local()))
	}

	w.section("Items")
	if len(l.Items) == 0 {
		w.faint("Empty list.")
		return
	}
	switch l.Type {
	case kpcc.ListTypeArticle:
		for _, a := range l.Articles() {
			w.bullet(a.DisplayTitle())
		}
	case kpcc.ListTypeProgram:
		for _, p := range l.Programs() {
			w.bullet(strings.TrimSpace(p.Title + "  " + p.Host))
		}
	case kpcc.ListTypeEpisode:
		for _, e := range l.Episodes() {
			w.bullet(strings.TrimSpace(shortTime(e.AirDate.Time) + "  " + e.Title))
		}
	}
}

func writeLogEntry(w *detailWriter, e logtail.Entry) {
	w.title(e.Message)
	if !e.Time.IsZero() {
		w.field("Time", e.Time.Local().Format("2006-01-02 15:04:05.000"))
	}
	w.field("Level", e.Level)
	for _, a := range e.Attrs {
		w.field(a.Key, a.Value)
	}
	if len(e.Attrs) == 0 && e.Time.IsZero() {
		w.section("Raw")
		w.text(e.Raw)
	}
}

func airStatusLabel(s kpcc.AirStatus) string {
	switch s {
	case kpcc.AirStatusOnAir:
		return "On air"
	case kpcc.AirStatusOnlineOnly:
		return "Online only"
	case kpcc.AirStatusArchived:
		return "Archived"
	case kpcc.AirStatusHidden:
		return "Hidden"
	default:
		return string(s)
	}
}

func progressBar(pct float64, width int, styles Styles) string {
	width = max(width, 10)
	filled := int(pct*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return styles.SuccessText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", width-filled)) +
		styles.MutedText.Render(fmt.Sprintf(" %3.0f%%", pct*100))
}

// describeError shortens API errors for the status line.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *kpcc.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	kind := titleCase(apiErr.Kind.String())
	switch {
	case apiErr.StatusCode != 0:
		return fmt.Sprintf("%s (HTTP %d)", kind, apiErr.StatusCode)
	case apiErr.Err != nil:
		return fmt.Sprintf("%s: %v", kind, apiErr.Err)
	default:
		return kind
	}
}
