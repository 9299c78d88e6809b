package content

import (
	"strings"
	"testing"
)

func TestText_HTMLBody(t *testing.T) {
	body := `<div>
<p>Coffee shops along Sunset Boulevard are filling up again as Echo Park residents return to their old routines.</p>



<p>Owners say weekend foot traffic is back to where it was before the street was closed for repairs last year.</p>
</div>`

	got := Text(body, "https://www.scpr.org/blogs/2018/03/14/cafe")
	if strings.Contains(got, "<p>") || strings.Contains(got, "</div>") {
		t.Fatalf("Text kept markup: %q", got)
	}
	if !strings.Contains(got, "Echo Park residents") || !strings.Contains(got, "weekend foot traffic") {
		t.Fatalf("Text dropped content: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("Text kept redundant blank lines: %q", got)
	}
}

func TestText_PlainAndEmpty(t *testing.T) {
	if got := Text("   ", ""); got != "" {
		t.Fatalf("Text(blank) = %q", got)
	}
	if got := Text("  just words\n\n\n\nmore  ", ""); got != "just words\n\nmore" {
		t.Fatalf("Text(plain) = %q", got)
	}
}

func TestStripTags(t *testing.T) {
	got := cleanText(stripTags("<p>One</p><p>Two<br>Three</p>"))
	if got != "One\n\nTwo\n\nThree" {
		t.Fatalf("stripTags = %q", got)
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Café Culture"); got != "cafe culture" {
		t.Fatalf("Fold = %q", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"empty query", "  ", []string{"anything"}, true},
		{"accent insensitive", "cafe", []string{"Café culture returns"}, true},
		{"accented query", "CAFÉ", []string{"cafe culture"}, true},
		{"terms across fields", "larry airtalk", []string{"AirTalk", "Larry Mantle"}, true},
		{"missing term", "airtalk weather", []string{"AirTalk", "Larry Mantle"}, false},
		{"no fields", "x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.query, tt.fields...); got != tt.want {
				t.Fatalf("Matches(%q, %v) = %v, want %v", tt.query, tt.fields, got, tt.want)
			}
		})
	}
}
