package kpcc

import "strings"

// AirStatus is a program's availability.
type AirStatus string

const (
	AirStatusOnAir      AirStatus = "onair"   // broadcast and online
	AirStatusOnlineOnly AirStatus = "online"  // online only, e.g. a podcast
	AirStatusArchived   AirStatus = "archive" // no longer produced
	AirStatusHidden     AirStatus = "hidden"  // not publicly available
)

// UnmarshalText rejects unknown air statuses.
func (s *AirStatus) UnmarshalText(text []byte) error {
	return unmarshalEnum(s, text, "air status",
		AirStatusOnAir, AirStatusOnlineOnly, AirStatusArchived, AirStatusHidden)
}

// Program is a show. Programs are keyed by slug.
type Program struct {
	Title           string    `json:"title,omitempty"`
	Slug            string    `json:"slug"`
	Host            string    `json:"host,omitempty"`
	AirStatus       AirStatus `json:"air_status,omitempty"`
	TwitterHandle   string    `json:"twitter_handle,omitempty"`
	AirTime         string    `json:"airtime,omitempty"` // human readable
	Description     string    `json:"description,omitempty"`
	DescriptionText string    `json:"description_text,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	PodcastURL      string    `json:"podcast_url,omitempty"`
	RSSURL          string    `json:"rss_url,omitempty"`
	PublicURL       string    `json:"public_url,omitempty"`
	IsHouse         bool      `json:"is_kpcc,omitempty"`
}

func (Program) listItem() ListType { return ListTypeProgram }

// Equal reports whether p and other share a slug.
func (p Program) Equal(other Program) bool {
	return p.Slug == other.Slug
}

// Summary returns the plain-text description, falling back to the HTML one.
func (p Program) Summary() string {
	if strings.TrimSpace(p.DescriptionText) != "" {
		return p.DescriptionText
	}
	return p.Description
}

// FeedURL returns the podcast feed, falling back to the RSS feed.
func (p Program) FeedURL() string {
	if p.PodcastURL != "" {
		return p.PodcastURL
	}
	return p.RSSURL
}
