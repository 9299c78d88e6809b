package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}

	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames() exposed its backing slice")
	}
}

func TestNextTheme(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
		{"", "Nightfox"},
	}
	for _, tc := range cases {
		if got := NextTheme(tc.current); got != tc.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox", got)
	}
}

func TestThemesColorEveryBadge(t *testing.T) {
	keys := []string{"onair", "online", "archive", "hidden", "live", "comm", "cult", "hall", "spon", "pick"}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, k := range keys {
			if th.Badges[k] == "" {
				t.Fatalf("theme %s has no color for badge %q", name, k)
			}
		}
	}
}
