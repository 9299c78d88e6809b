package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string // outermost
	Surface    string // header and command bar
	FocusBg    string // focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Badges colors labels such as air status and event type.
	Badges map[string]string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	badges     map[string]string
	background string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: fg(t.Warning).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		badges:     t.Badges,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Badge renders label on the color registered for key.
func (s Styles) Badge(key, label string) string {
	color := s.badges[strings.ToLower(strings.TrimSpace(key))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(label)
}

// Dot renders a colored bullet for key.
func (s Styles) Dot(key string) string {
	color := s.badges[strings.ToLower(strings.TrimSpace(key))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

// WithBackground returns a copy whose text styles carry bgColor, so styled
// segments do not leave gaps in a colored bar.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// EdenEast/nightfox.nvim palette
	return Theme{
		Name: "Nightfox",

		Background: "#131a24",
		Surface:    "#192330",
		FocusBg:    "#212e3f",

		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",

		Border:      "#29394f",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#aeafb0",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#f4a261",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		Badges: map[string]string{
			"onair":   "#81b29a", // green
			"online":  "#63cdcf", // cyan
			"archive": "#71839b", // comment
			"hidden":  "#39506d",
			"live":    "#c94f6d", // red
			"comm":    "#9d79d6", // magenta
			"cult":    "#d67ad2", // pink
			"hall":    "#dbc074", // yellow
			"spon":    "#f4a261", // orange
			"pick":    "#719cd6", // blue
		},
	}
}

func kanagawaTheme() Theme {
	// rebelot/kanagawa.nvim "wave" palette
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		FocusBg:    "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue2
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#363646", // sumiInk5
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA",
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8",
		Success: "#98BB6C", // springGreen
		Warning: "#FFA066", // surimiOrange
		Danger:  "#E82424", // samuraiRed
		Info:    "#7FB4CA", // springBlue

		Badges: map[string]string{
			"onair":   "#98BB6C",
			"online":  "#7FB4CA",
			"archive": "#727169",
			"hidden":  "#54546D",
			"live":    "#E82424",
			"comm":    "#957FB8", // oniViolet
			"cult":    "#D27E99", // sakuraPink
			"hall":    "#E6C384", // carpYellow
			"spon":    "#FFA066",
			"pick":    "#7E9CD8",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		FocusBg:    "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		Badges: map[string]string{
			"onair":   "#22c55e",
			"online":  "#06b6d4",
			"archive": "#64748b",
			"hidden":  "#475569",
			"live":    "#dc2626",
			"comm":    "#8b5cf6",
			"cult":    "#ec4899",
			"hall":    "#eab308",
			"spon":    "#f59e0b",
			"pick":    "#38bdf8",
		},
	}
}
