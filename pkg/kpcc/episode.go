package kpcc

// Episode is one airing of a program, made up of article segments.
type Episode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	AirDate   Timestamp `json:"air_date,omitzero"`
	Audio     []Audio   `json:"audio,omitempty"`
	PublicURL string    `json:"public_url,omitempty"`
	Program   *Program  `json:"program,omitempty"`
	Segments  []Article `json:"segments,omitempty"`
}

func (Episode) listItem() ListType { return ListTypeEpisode }
