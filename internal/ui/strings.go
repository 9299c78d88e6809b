package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// truncate shortens s to fit width terminal cells, adding an ellipsis when
// something was cut. Wide runes count double.
func truncate(s string, width int) string {
	s = strings.TrimSpace(s)
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// fit truncates then pads, so columns line up.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// titleCase turns identifiers like "news_story" into "News Story".
func titleCase(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	return titleCaser.String(value)
}

// humanizeDuration renders d compactly: "now", "12s", "4m", "2h 3m", "1d".
func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return "now"
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		h := int(d / time.Hour)
		if m := int((d % time.Hour) / time.Minute); m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	}
}

// clock formats an audio length as m:ss or h:mm:ss.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon Jan 2 15:04")
}

func formatSpan(start, end time.Time) string {
	if start.IsZero() {
		return "-"
	}
	if end.IsZero() || end.Equal(start) {
		return formatTime(start)
	}
	if sameDay(start, end) {
		return start.Format("Mon Jan 2 15:04") + "–" + end.Format("15:04")
	}
	return formatTime(start) + " – " + formatTime(end)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// wrap breaks text into lines of at most width cells on word boundaries.
// Existing line breaks are kept.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var b strings.Builder
	for i, para := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		lineWidth := 0
		for j, word := range strings.Fields(para) {
			w := runewidth.StringWidth(word)
			if j > 0 && lineWidth+1+w > width {
				b.WriteByte('\n')
				lineWidth = 0
			} else if j > 0 {
				b.WriteByte(' ')
				lineWidth++
			}
			b.WriteString(word)
			lineWidth += w
		}
	}
	return b.String()
}
