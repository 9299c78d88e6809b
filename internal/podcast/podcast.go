// Package podcast reads a program's podcast feed so the browser can list
// recent episodes next to the program detail.
package podcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
)

const maxFeedBytes = 8 << 20

// ErrNoFeed is returned when a program has no podcast URL.
var ErrNoFeed = errors.New("program has no podcast feed")

// Episode is one feed item.
type Episode struct {
	Title     string
	Summary   string
	Link      string
	AudioURL  string
	Published time.Time
}

// Feed is a parsed podcast feed, newest episode first.
type Feed struct {
	Title       string
	Description string
	Link        string
	Episodes    []Episode
}

// Reader fetches feeds over HTTP.
type Reader struct {
	http      *http.Client
	userAgent string
}

// NewReader returns a Reader. A nil client uses http.DefaultClient.
func NewReader(hc *http.Client, userAgent string) *Reader {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Reader{http: hc, userAgent: userAgent}
}

// Fetch downloads and parses the feed at feedURL.
func (r *Reader) Fetch(ctx context.Context, feedURL string) (Feed, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return Feed{}, ErrNoFeed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.5")

	resp, err := r.http.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("fetch feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Feed{}, fmt.Errorf("fetch feed: %s returned status %d", feedURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return Feed{}, fmt.Errorf("read feed: %w", err)
	}
	return Parse(body)
}

// Parse decodes RSS or Atom bytes.
func Parse(data []byte) (Feed, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Feed{}, fmt.Errorf("parse feed: empty body")
	}
	raw, err := rss.Parse(data)
	if err != nil {
		return Feed{}, fmt.Errorf("parse feed: %w", err)
	}

	feed := Feed{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Link:        raw.Link,
		Episodes:    make([]Episode, 0, len(raw.Items)),
	}
	for _, item := range raw.Items {
		if item == nil {
			continue
		}
		feed.Episodes = append(feed.Episodes, Episode{
			Title:     strings.TrimSpace(item.Title),
			Summary:   strings.TrimSpace(item.Summary),
			Link:      item.Link,
			AudioURL:  audioURL(item),
			Published: item.Date,
		})
	}
	slices.SortStableFunc(feed.Episodes, func(a, b Episode) int {
		return b.Published.Compare(a.Published)
	})
	return feed, nil
}

// audioURL picks the first audio enclosure, or the first enclosure of any
// type when none is marked audio.
func audioURL(item *rss.Item) string {
	var fallback string
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "audio/") {
			return enc.URL
		}
		if fallback == "" {
			fallback = enc.URL
		}
	}
	return fallback
}
