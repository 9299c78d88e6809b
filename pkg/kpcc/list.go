package kpcc

import (
	"encoding/json"
	"fmt"
)

// ListType is the discriminator that names the schema of a list's items.
type ListType string

const (
	ListTypeArticle ListType = "article"
	ListTypeProgram ListType = "program"
	ListTypeEpisode ListType = "episode"
)

// ListItem is implemented by Article, Program and Episode. A list holds item
// values of exactly one of these types, matching List.Type.
type ListItem interface {
	listItem() ListType
}

// List is a curated, typed collection of articles, programs or episodes.
type List struct {
	ID        int
	Title     string
	Context   string
	Type      ListType
	StartsAt  Timestamp
	EndsAt    Timestamp
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Items     []ListItem
}

// NewList builds a list, checking that every item matches typ.
func NewList(title string, typ ListType, items ...ListItem) (List, error) {
	l := List{Title: title, Type: typ, Items: items}
	if err := l.validate(); err != nil {
		return List{}, err
	}
	return l, nil
}

// Equal reports whether l and other are the same list.
func (l List) Equal(other List) bool {
	return l.ID == other.ID
}

// Articles returns the items when the list holds articles.
func (l List) Articles() []Article { return itemsOf[Article](l.Items) }

// Programs returns the items when the list holds programs.
func (l List) Programs() []Program { return itemsOf[Program](l.Items) }

// Episodes returns the items when the list holds episodes.
func (l List) Episodes() []Episode { return itemsOf[Episode](l.Items) }

func itemsOf[T ListItem](items []ListItem) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if v, ok := item.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func (l List) validate() error {
	if !l.Type.valid() {
		return fmt.Errorf("%w: unknown list type %q", errSchema, string(l.Type))
	}
	for i, item := range l.Items {
		if item == nil {
			return fmt.Errorf("%w: list item %d is nil", errSchema, i)
		}
		if got := item.listItem(); got != l.Type {
			return fmt.Errorf("%w: list item %d is %s, list type is %s", errSchema, i, got, l.Type)
		}
	}
	return nil
}

func (t ListType) valid() bool {
	switch t {
	case ListTypeArticle, ListTypeProgram, ListTypeEpisode:
		return true
	default:
		return false
	}
}

type listFields struct {
	Title     string    `json:"title,omitempty"`
	Context   string    `json:"context,omitempty"`
	Type      ListType  `json:"type"`
	StartsAt  Timestamp `json:"starts_at,omitzero"`
	EndsAt    Timestamp `json:"ends_at,omitzero"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
	UpdatedAt Timestamp `json:"updated_at,omitzero"`
}

// MarshalJSON emits the type discriminator alongside the item array.
func (l List) MarshalJSON() ([]byte, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	items := l.Items
	if items == nil {
		items = []ListItem{}
	}
	return json.Marshal(struct {
		ID int `json:"id"`
		listFields
		Items []ListItem `json:"items"`
	}{
		ID:         l.ID,
		listFields: l.fields(),
		Items:      items,
	})
}

// UnmarshalJSON selects the item schema from the type discriminator. An
// unknown discriminator or an item that does not fit the schema fails.
func (l *List) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID *int `json:"id"`
		listFields
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.ID == nil {
		return fmt.Errorf("%w: list has no id", errSchema)
	}

	var (
		items []ListItem
		err   error
	)
	switch wire.Type {
	case ListTypeArticle:
		items, err = decodeItems[Article](ListTypeArticle, wire.Items)
	case ListTypeProgram:
		items, err = decodeItems[Program](ListTypeProgram, wire.Items)
	case ListTypeEpisode:
		items, err = decodeItems[Episode](ListTypeEpisode, wire.Items)
	default:
		return fmt.Errorf("%w: unknown list type %q", errSchema, string(wire.Type))
	}
	if err != nil {
		return fmt.Errorf("list %d: %w", *wire.ID, err)
	}

	*l = List{
		ID:        *wire.ID,
		Title:     wire.Title,
		Context:   wire.Context,
		Type:      wire.Type,
		StartsAt:  wire.StartsAt,
		EndsAt:    wire.EndsAt,
		CreatedAt: wire.CreatedAt,
		UpdatedAt: wire.UpdatedAt,
		Items:     items,
	}
	return nil
}

func (l List) fields() listFields {
	return listFields{
		Title:     l.Title,
		Context:   l.Context,
		Type:      l.Type,
		StartsAt:  l.StartsAt,
		EndsAt:    l.EndsAt,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// itemShape names the keys that identify an item schema: every key in
// required must be present and none of foreign may be.
type itemShape struct {
	required []string
	foreign  []string
}

var itemShapes = map[ListType]itemShape{
	ListTypeArticle: {required: []string{"id"}, foreign: []string{"slug", "air_status", "air_date", "segments"}},
	ListTypeProgram: {required: []string{"slug"}, foreign: []string{"air_date", "segments", "published_at", "byline"}},
	ListTypeEpisode: {required: []string{"id"}, foreign: []string{"slug", "air_status", "published_at", "byline"}},
}

func (s itemShape) check(raw json.RawMessage) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return fmt.Errorf("%w: %v", errSchema, err)
	}
	if keys == nil {
		return fmt.Errorf("%w: item is null", errSchema)
	}
	for _, k := range s.required {
		if v, ok := keys[k]; !ok || isNull(v) {
			return fmt.Errorf("%w: item has no %q", errSchema, k)
		}
	}
	for _, k := range s.foreign {
		if _, ok := keys[k]; ok {
			return fmt.Errorf("%w: item has foreign key %q", errSchema, k)
		}
	}
	return nil
}

// decodeItems decodes each item as the collection endpoints do, unknown
// fields included, after checking it has the shape of T.
func decodeItems[T ListItem](typ ListType, raw []json.RawMessage) ([]ListItem, error) {
	shape := itemShapes[typ]
	items := make([]ListItem, 0, len(raw))
	for i, r := range raw {
		if isNull(r) {
			return nil, fmt.Errorf("%w: item %d is null", errSchema, i)
		}
		if err := shape.check(r); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, fmt.Errorf("item %d: %w: %v", i, errSchema, err)
		}
		items = append(items, item)
	}
	return items, nil
}
