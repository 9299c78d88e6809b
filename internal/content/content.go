// Package content turns API article bodies into terminal-friendly text and
// folds strings for accent-insensitive search.
package content

import (
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/mozillazg/go-unidecode"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/net/html"
)

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

// Text renders an HTML article body as plain text. pageURL resolves relative
// links and may be empty. Plain text passes through trimmed.
func Text(body, pageURL string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if !strings.Contains(body, "<") {
		return cleanText(body)
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	var text string
	var catcher panics.Catcher
	catcher.Try(func() {
		article, err := readability.FromReader(strings.NewReader(body), base)
		if err == nil {
			text = article.TextContent
		}
	})
	if catcher.Recovered() != nil || strings.TrimSpace(text) == "" {
		text = stripTags(body)
	}
	return cleanText(text)
}

// stripTags collects text nodes, breaking lines at block elements.
func stripTags(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "blockquote":
				b.WriteString("\n\n")
			}
		}
	}
}

func cleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(redundantNewLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

// Fold lowercases s and transliterates it to ASCII, so "Café" and "cafe"
// compare equal.
func Fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}

// Matches reports whether every whitespace-separated term of query appears
// in at least one of fields, ignoring case and accents. An empty query
// matches everything.
func Matches(query string, fields ...string) bool {
	terms := strings.Fields(Fold(query))
	if len(terms) == 0 {
		return true
	}
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = Fold(f)
	}
	for _, term := range terms {
		found := false
		for _, f := range folded {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
