package kpcc

// EventType classifies an event.
type EventType string

const (
	EventCommunityEngagement EventType = "comm"
	EventCultural            EventType = "cult"
	EventTownHall            EventType = "hall"
	EventSponsored           EventType = "spon"
	EventStaffPick           EventType = "pick"
)

// UnmarshalText rejects unknown event types.
func (t *EventType) UnmarshalText(text []byte) error {
	return unmarshalEnum(t, text, "event type",
		EventCommunityEngagement, EventCultural, EventTownHall, EventSponsored, EventStaffPick)
}

// Label returns a human readable name.
func (t EventType) Label() string {
	switch t {
	case EventCommunityEngagement:
		return "Community engagement"
	case EventCultural:
		return "Cultural"
	case EventTownHall:
		return "Town hall"
	case EventSponsored:
		return "Sponsored"
	case EventStaffPick:
		return "Staff pick"
	default:
		return string(t)
	}
}

// Event is a public event, optionally tied to a program.
type Event struct {
	ID            int       `json:"id"`
	Title         string    `json:"title,omitempty"`
	PublicURL     string    `json:"public_url,omitempty"`
	UpdatedAt     Timestamp `json:"updated_at,omitzero"`
	StartsAt      Timestamp `json:"starts_at,omitzero"`
	EndsAt        Timestamp `json:"ends_at,omitzero"`
	IsAllDay      bool      `json:"is_all_day,omitempty"`
	Teaser        string    `json:"teaser,omitempty"`
	Body          string    `json:"body,omitempty"`
	PastTenseBody string    `json:"past_tense_body,omitempty"`
	Hashtag       string    `json:"hashtag,omitempty"` // without the leading '#'
	Type          EventType `json:"event_type,omitempty"`
	IsHouse       bool      `json:"is_kpcc,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Sponsor       *Sponsor  `json:"sponsor,omitempty"`
	RSVPURL       string    `json:"rsvp_url,omitempty"`
	Program       *Program  `json:"program,omitempty"`
	Assets        []Asset   `json:"assets,omitempty"`
	Audio         []Audio   `json:"audio,omitempty"`
}

// DateRange returns the span of the event. An event without an end is
// treated as instantaneous.
func (e Event) DateRange() DateRange {
	end := e.EndsAt.Time
	if end.IsZero() {
		end = e.StartsAt.Time
	}
	return DateRange{Start: e.StartsAt.Time, End: end}
}
