package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kpcc/internal/state"
)

// renderHeader renders the status bar: logo, what is on air and feed health.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	sep := styles.Text.Render("  ")
	now := m.now()

	parts := []string{styles.Logo.Render("kpcc")}

	switch {
	case m.snapshot.LastUpdated.IsZero() && m.snapshot.LastError == nil:
		parts = append(parts, styles.WarningText.Bold(true).Render("Connecting..."))
		return m.headerBar(strings.Join(parts, sep))
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("● OFFLINE"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.WarningText.Render("● PARTIAL"))
	default:
		parts = append(parts, styles.SuccessText.Render("● LIVE"))
	}

	if title, ok := m.snapshot.Schedule.TitleAt(now); ok {
		parts = append(parts, styles.MutedText.Render("On air:")+styles.Text.Render(" ")+
			styles.Text.Bold(true).Render(truncate(title, 40)))
	}

	if pledgeDrive(m.snapshot) {
		parts = append(parts, styles.Badge("live", "PLEDGE DRIVE"))
	}

	if m.member != nil {
		parts = append(parts, styles.InfoText.Render(fmt.Sprintf("Member #%d", m.member.ID)))
	}

	if failures := m.snapshot.ConsecutiveFailures; failures > 0 {
		parts = append(parts, styles.DangerText.Render(fmt.Sprintf("%d failed", failures)))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render("updated "+humanizeDuration(now.Sub(m.snapshot.LastUpdated))+" ago"))
	}

	return m.headerBar(strings.Join(parts, sep))
}

func (m Model) headerBar(content string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		MaxHeight(1).
		Render(content)
}

// pledgeDrive reports whether the station settings flag a running pledge
// drive.
func pledgeDrive(snap state.Snapshot) bool {
	on, _ := snap.Settings["pledge_drive"].(bool)
	return on
}
