package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// chromeHeight is the header, command bar and status line.
const chromeHeight = 3

func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// paneWidths splits the content area between the list and detail panes.
func (m Model) paneWidths() (list, detail int) {
	list = max(m.width*2/5, 24)
	detail = max(m.width-list, 20)
	return list, detail
}

func (m *Model) resizeDetail() {
	_, detail := m.paneWidths()
	m.detailViewport.Width = max(detail-4, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
}

// updateDetailViewport re-renders the detail pane for the current selection.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	width := m.detailViewport.Width

	r, ok := m.selectedRow()
	var b strings.Builder
	switch {
	case !ok:
		b.WriteString(styles.FaintText.Render(m.emptyMessage()))
	default:
		if m.loading[r.key] {
			b.WriteString(styles.InfoText.Render("Loading..."))
			b.WriteString("\n\n")
		}
		if err := m.detailErrs[r.key]; err != nil {
			b.WriteString(styles.DangerText.Render(wrap("Load failed: "+describeError(err), width)))
			b.WriteString("\n\n")
		}
		item := r.item
		if d, ok := m.details[r.key]; ok {
			item = d
		}
		b.WriteString(renderDetail(item, styles, width, m.now()))
	}

	m.detailViewport.SetContent(b.String())
	if r.key != m.detailKey {
		m.detailKey = r.key
		m.detailViewport.GotoTop()
	}
}

// emptyMessage explains an empty list pane.
func (m Model) emptyMessage() string {
	if m.query != "" {
		return fmt.Sprintf("No matches for %q.", m.query)
	}
	if m.currentView == ViewLogs {
		if m.logErr != nil {
			return "Logs unavailable: " + m.logErr.Error()
		}
		if m.config == nil || m.config.LogFile == "" {
			return "Logging to a file is disabled."
		}
		return "No log entries yet."
	}
	feed, _ := m.currentView.feed()
	if err := m.snapshot.FeedErrors[feed]; err != nil && !m.snapshot.HasFeed(feed) {
		return "Unavailable: " + describeError(err)
	}
	if !m.snapshot.HasFeed(feed) {
		return "Loading..."
	}
	if m.currentView == ViewHeadlines && m.category != "" {
		return "No headlines in " + m.category + "."
	}
	return "Nothing here."
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderContent lays the list and detail panes side by side.
func (m Model) renderContent() string {
	listW, detailW := m.paneWidths()
	h := m.contentHeight()

	box := func(w int) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.Border)).
			Padding(0, 1).
			Width(max(w-2, 1)).
			Height(max(h-2, 1))
	}

	list := box(listW).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(m.renderList(max(listW-4, 1), max(h-2, 1)))
	detail := box(detailW).Render(m.detailViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderList renders the rows that fit in height lines, keeping the selection
// visible.
func (m Model) renderList(width, height int) string {
	styles := m.theme.Styles()
	rows := m.rows()
	if len(rows) == 0 {
		return styles.FaintText.Render(wrap(m.emptyMessage(), width))
	}

	sel := m.selected[m.currentView]
	start := 0
	if len(rows) > height {
		start = min(max(sel-height/2, 0), len(rows)-height)
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == sel, width, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row, selected bool, width int, styles Styles) string {
	metaW := 0
	if r.meta != "" {
		metaW = min(runewidth.StringWidth(r.meta), width/3)
	}
	titleW := width - 2
	if metaW > 0 {
		titleW -= metaW + 1
	}

	title := fit(r.title, max(titleW, 1))
	meta := ""
	if metaW > 0 {
		meta = " " + runewidth.FillLeft(truncate(r.meta, metaW), metaW)
	}

	if selected {
		glyph := "  "
		switch {
		case r.marker != "":
			glyph = r.marker + " "
		case r.badge != "":
			glyph = "● "
		}
		return styles.Selected.Render(padRight(glyph+title+meta, width))
	}

	glyph := "  "
	switch {
	case r.marker != "":
		glyph = styles.DangerText.Render(r.marker) + " "
	case r.badge != "":
		glyph = styles.Dot(r.badge) + " "
	}
	return glyph + styles.Text.Render(title) + styles.MutedText.Render(meta)
}

// renderCommandBar shows the view tabs and the active filters.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	sep := styles.Text.Render("  ")

	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if View(i) == m.currentView {
			tabs = append(tabs, styles.AccentText.Bold(true).Underline(true).Render(label))
			continue
		}
		tabs = append(tabs, styles.MutedText.Render(label))
	}
	left := strings.Join(tabs, sep)

	var right []string
	if m.currentView == ViewHeadlines {
		category := "all"
		if m.category != "" {
			category = m.category
		}
		right = append(right, styles.FaintText.Render("c")+styles.Text.Render(" ")+styles.MutedText.Render(category))
	}
	right = append(right, styles.FaintText.Render("T")+styles.Text.Render(" ")+styles.MutedText.Render(m.theme.Name))
	rightStr := strings.Join(right, sep)

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 2 {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + styles.Text.Render(strings.Repeat(" ", gap)) + rightStr)
}

// renderStatusLine shows the search box, the active query or the last
// status message.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	switch {
	case m.searching:
		return m.search.View()
	case m.query != "":
		var matches string
		if n := len(m.rows()); n == 1 {
			matches = "1 match"
		} else {
			matches = fmt.Sprintf("%d matches", n)
		}
		return styles.AccentText.Render("/"+m.query) +
			styles.MutedText.Render("  "+matches) +
			styles.FaintText.Render("  esc clears")
	case m.status != "":
		return styles.WarningText.Render(truncate(m.status, m.width))
	case m.snapshot.LastError != nil:
		return styles.DangerText.Render(truncate(describeError(m.snapshot.LastError), m.width))
	default:
		return styles.FaintText.Render("enter details  / search  r refresh  h help  q quit")
	}
}
