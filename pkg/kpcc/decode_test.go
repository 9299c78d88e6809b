package kpcc

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTimestamp_ParseAndFormat(t *testing.T) {
	ts, err := ParseTimestamp("2018-03-14T09:00:00.250-07:00")
	if err != nil {
		t.Fatalf("ParseTimestamp returned error: %v", err)
	}
	want := time.Date(2018, time.March, 14, 16, 0, 0, 250_000_000, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("ParseTimestamp = %v, want %v", ts.Time, want)
	}
	if got := ts.String(); got != "2018-03-14T09:00:00.250-07:00" {
		t.Fatalf("String = %q", got)
	}

	utc, err := ParseTimestamp("2018-03-14T16:00:00.000Z")
	if err != nil {
		t.Fatalf("ParseTimestamp(Z) returned error: %v", err)
	}
	if !utc.Equal(want.Truncate(time.Second)) {
		t.Fatalf("ParseTimestamp(Z) = %v", utc.Time)
	}

	for _, bad := range []string{"2018-03-14", "2018-03-14T09:00:00-07:00", "yesterday"} {
		if _, err := ParseTimestamp(bad); !errors.Is(err, errSchema) {
			t.Fatalf("ParseTimestamp(%q) error = %v, want schema error", bad, err)
		}
	}
}

func TestTimestamp_JSONNull(t *testing.T) {
	var v struct {
		At Timestamp `json:"at"`
	}
	if err := json.Unmarshal([]byte(`{"at":null}`), &v); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !v.At.IsZero() {
		t.Fatalf("null timestamp = %v, want zero", v.At.Time)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != `{"at":null}` {
		t.Fatalf("Marshal = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"at":12}`), &v); !errors.Is(err, errSchema) {
		t.Fatalf("numeric timestamp error = %v, want schema error", err)
	}
}

func TestDecodeEnvelope(t *testing.T) {
	got, err := decodeEnvelope[[]Category]([]byte(`{"categories":[{"slug":"local","title":"Local"}]}`), "categories")
	if err != nil {
		t.Fatalf("decodeEnvelope returned error: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "local" {
		t.Fatalf("decodeEnvelope = %#v", got)
	}

	tests := []struct {
		name string
		body string
		want Kind
	}{
		{"missing field", `{"other":[]}`, KindDecoding},
		{"wrong type", `{"categories":{"slug":"local"}}`, KindDecoding},
		{"top-level array", `[1,2]`, KindDecoding},
		{"not json", `<html>oops</html>`, KindOther},
		{"truncated", `{"categories":[`, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEnvelope[[]Category]([]byte(tt.body), "categories")
			if err == nil {
				t.Fatalf("decodeEnvelope returned nil error")
			}
			if got := classifyDecodeError(err); got != tt.want {
				t.Fatalf("classifyDecodeError = %v, want %v (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestDecodeEnvelopeRequired_NullIsUnavailable(t *testing.T) {
	_, err := decodeEnvelopeRequired[Article]([]byte(`{"article":null}`), "article")
	if got := classifyDecodeError(err); got != KindDataUnavailable {
		t.Fatalf("classifyDecodeError = %v, want data_unavailable (err %v)", got, err)
	}
}

func TestSafely_RecoversPanic(t *testing.T) {
	err := safely(func() error { panic("boom") })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("safely error = %v, want panic value", err)
	}
	if got := classifyDecodeError(err); got != KindOther {
		t.Fatalf("classifyDecodeError = %v, want other", got)
	}
}

func TestEnums_RejectUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		dest any
	}{
		{"article type", `{"id":"x","type":"podcast"}`, &Article{}},
		{"air status", `{"slug":"x","air_status":"paused"}`, &Program{}},
		{"event type", `{"id":1,"event_type":"gala"}`, &Event{}},
		{"asset native", `{"id":"v","type":"TikTok"}`, &AssetNative{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.body), tt.dest)
			if !errors.Is(err, errSchema) {
				t.Fatalf("Unmarshal error = %v, want schema error", err)
			}
		})
	}

	var p Program
	if err := json.Unmarshal([]byte(`{"slug":"x","air_status":""}`), &p); err != nil {
		t.Fatalf("empty air status returned error: %v", err)
	}
}

func TestArticle_DecodesFields(t *testing.T) {
	body := `{
		"id": "news_story-1001",
		"type": "news_story",
		"title": "Cooling centers",
		"short_title": "Cooling",
		"published_at": "2018-03-14T09:00:00.000-07:00",
		"category": {"id": 12, "slug": "local", "title": "Local"},
		"assets": [{"id": 501, "native": {"id": "abc", "type": "YoutubeVideo"}, "thumbnail": {"url": "t.jpg", "width": 10, "height": 8}}],
		"audio": [{"id": 9, "duration": 62.5, "filesize": 100, "article_obj_key": "news_story-1001"}],
		"attributions": [{"name": "Maya", "role_text": "Reporter", "role": 1}],
		"tags": [{"title": "Heat", "slug": "heat"}]
	}`
	var a Article
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if a.ID != "news_story-1001" || a.Type != ArticleNewsStory || a.DisplayTitle() != "Cooling" {
		t.Fatalf("article = %#v", a)
	}
	if a.Category == nil || a.Category.Slug != "local" {
		t.Fatalf("category = %#v", a.Category)
	}
	if len(a.Assets) != 1 || a.Assets[0].Native.Type != AssetNativeYouTube || a.Assets[0].Thumbnail.Width != 10 {
		t.Fatalf("assets = %#v", a.Assets)
	}
	if a.Audio[0].Duration() != 62500*time.Millisecond || a.Audio[0].ArticleObjectKey != "news_story-1001" {
		t.Fatalf("audio = %#v", a.Audio[0])
	}
	if a.Attributions[0].RoleText != "Reporter" || a.Tags[0].Slug != "heat" {
		t.Fatalf("attributions/tags = %#v %#v", a.Attributions, a.Tags)
	}
}

func TestListDecode_SelectsSchemaFromType(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, l List)
	}{
		{
			name: "articles",
			body: `{"id":1,"title":"Top","type":"article","items":[{"id":"a1","title":"One"},{"id":"a2","title":"Two"}]}`,
			check: func(t *testing.T, l List) {
				got := l.Articles()
				if len(got) != 2 || got[1].ID != "a2" {
					t.Fatalf("Articles = %#v", got)
				}
				if len(l.Programs()) != 0 || len(l.Episodes()) != 0 {
					t.Fatalf("article list returned other item kinds")
				}
			},
		},
		{
			name: "programs",
			body: `{"id":2,"type":"program","items":[{"title":"AirTalk","slug":"airtalk","air_status":"onair"}]}`,
			check: func(t *testing.T, l List) {
				got := l.Programs()
				if len(got) != 1 || got[0].Slug != "airtalk" {
					t.Fatalf("Programs = %#v", got)
				}
			},
		},
		{
			name: "episodes",
			body: `{"id":3,"type":"episode","items":[{"id":"e1","air_date":"2018-03-14T10:00:00.000-07:00","program":{"slug":"airtalk"}}]}`,
			check: func(t *testing.T, l List) {
				got := l.Episodes()
				if len(got) != 1 || got[0].Program.Slug != "airtalk" {
					t.Fatalf("Episodes = %#v", got)
				}
			},
		},
		{
			name: "empty items",
			body: `{"id":4,"type":"episode","items":[]}`,
			check: func(t *testing.T, l List) {
				if len(l.Items) != 0 || l.Type != ListTypeEpisode {
					t.Fatalf("list = %#v", l)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			if err := json.Unmarshal([]byte(tt.body), &l); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			tt.check(t, l)
		})
	}
}

func TestListDecode_ToleratesUnmodeledFields(t *testing.T) {
	article := `{"id":"a1","title":"T","thumbnail":"x","category":{"slug":"local","title":"Local","color":"red"}}`

	var direct Article
	if err := json.Unmarshal([]byte(article), &direct); err != nil {
		t.Fatalf("Unmarshal article returned error: %v", err)
	}

	var l List
	if err := json.Unmarshal([]byte(`{"id":1,"type":"article","items":[`+article+`]}`), &l); err != nil {
		t.Fatalf("Unmarshal list returned error: %v", err)
	}
	got := l.Articles()
	if len(got) != 1 || got[0].ID != direct.ID || got[0].Category == nil || got[0].Category.Slug != "local" {
		t.Fatalf("Articles = %#v", got)
	}

	body := `{"id":2,"type":"program","items":[{"slug":"airtalk","title":"AirTalk","schedule_note":"weekdays"}]}`
	if err := json.Unmarshal([]byte(body), &l); err != nil {
		t.Fatalf("Unmarshal program list returned error: %v", err)
	}
	if p := l.Programs(); len(p) != 1 || p[0].Slug != "airtalk" {
		t.Fatalf("Programs = %#v", p)
	}
}

func TestListDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown discriminator", `{"id":1,"type":"podcast","items":[]}`},
		{"missing discriminator", `{"id":1,"items":[{"id":"a1"}]}`},
		{"missing id", `{"type":"article","items":[]}`},
		{"program shaped as article", `{"id":1,"type":"article","items":[{"title":"AirTalk","slug":"airtalk"}]}`},
		{"article shaped as program", `{"id":1,"type":"program","items":[{"id":"a1","byline":"x"}]}`},
		{"episode shaped as article", `{"id":1,"type":"article","items":[{"id":"e1","title":"Ep","air_date":"2018-03-14T10:00:00.000-07:00"}]}`},
		{"article shaped as episode", `{"id":1,"type":"episode","items":[{"id":"a1","published_at":"2018-03-14T10:00:00.000-07:00"}]}`},
		{"program without slug", `{"id":1,"type":"program","items":[{"title":"AirTalk","air_status":"onair"}]}`},
		{"article without id", `{"id":1,"type":"article","items":[{"title":"One"}]}`},
		{"null item", `{"id":1,"type":"article","items":[null]}`},
		{"scalar item", `{"id":1,"type":"article","items":[42]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			err := json.Unmarshal([]byte(tt.body), &l)
			if err == nil {
				t.Fatalf("Unmarshal returned nil error, list = %#v", l)
			}
			if got := classifyDecodeError(err); got != KindDecoding {
				t.Fatalf("classifyDecodeError = %v, want decoding (err %v)", got, err)
			}
		})
	}
}

func TestList_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"id":9,"title":"Top","context":"homepage","type":"article","starts_at":"2018-03-14T00:00:00.000-07:00","items":[{"id":"a1","type":"news_story","title":"One"},{"id":"a2","title":"Two"}]}`,
		`{"id":10,"type":"program","items":[{"title":"AirTalk","slug":"airtalk","air_status":"onair"}]}`,
		`{"id":11,"type":"episode","items":[{"id":"e1","title":"Ep","air_date":"2018-03-14T10:00:00.000-07:00"}]}`,
	}
	for _, in := range inputs {
		var first List
		if err := json.Unmarshal([]byte(in), &first); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", in, err)
		}
		encoded, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("Marshal returned error: %v", err)
		}
		if !strings.Contains(string(encoded), `"type":"`+string(first.Type)+`"`) {
			t.Fatalf("encoded list lost discriminator: %s", encoded)
		}
		var second List
		if err := json.Unmarshal(encoded, &second); err != nil {
			t.Fatalf("re-Unmarshal returned error: %v\n%s", err, encoded)
		}
		if !second.Equal(first) || second.Type != first.Type || second.Title != first.Title ||
			second.Context != first.Context || !second.StartsAt.Equal(first.StartsAt.Time) {
			t.Fatalf("round trip mismatch:\n first %#v\nsecond %#v", first, second)
		}
		if len(second.Items) != len(first.Items) {
			t.Fatalf("items = %d, want %d", len(second.Items), len(first.Items))
		}
		again, err := json.Marshal(second)
		if err != nil {
			t.Fatalf("second Marshal returned error: %v", err)
		}
		if string(again) != string(encoded) {
			t.Fatalf("encodings differ:\n%s\n%s", encoded, again)
		}
	}
}

func TestNewList_RequiresHomogeneousItems(t *testing.T) {
	if _, err := NewList("Mixed", ListTypeArticle, Article{ID: "a1"}, Program{Slug: "airtalk"}); err == nil {
		t.Fatalf("NewList with mixed items returned nil error")
	}
	if _, err := NewList("Bad", ListType("podcast")); err == nil {
		t.Fatalf("NewList with unknown type returned nil error")
	}
	l, err := NewList("Shows", ListTypeProgram, Program{Slug: "airtalk"}, Program{Slug: "take-two"})
	if err != nil {
		t.Fatalf("NewList returned error: %v", err)
	}
	if got := l.Programs(); len(got) != 2 || got[1].Slug != "take-two" {
		t.Fatalf("Programs = %#v", got)
	}

	mixed := List{ID: 1, Type: ListTypeEpisode, Items: []ListItem{Article{ID: "a1"}}}
	if _, err := json.Marshal(mixed); err == nil {
		t.Fatalf("Marshal of mixed list returned nil error")
	}
}
