package kpcc

import (
	"context"
	"fmt"
	"strconv"
)

// Articles returns articles matching q, newest first.
func (c *Client) Articles(ctx context.Context, q ArticleQuery) ([]Article, error) {
	return fetch(ctx, c, "articles", q.request(), func(b []byte) ([]Article, error) {
		return decodeEnvelope[[]Article](b, "articles")
	})
}

// Article returns one article by id.
func (c *Client) Article(ctx context.Context, id string) (Article, error) {
	return fetchOne[Article](ctx, c, "article", "articles", id, "article")
}

// Episodes returns episodes matching q.
func (c *Client) Episodes(ctx context.Context, q EpisodeQuery) ([]Episode, error) {
	return fetch(ctx, c, "episodes", q.request(), func(b []byte) ([]Episode, error) {
		return decodeEnvelope[[]Episode](b, "episodes")
	})
}

// Episode returns one episode by id.
func (c *Client) Episode(ctx context.Context, id string) (Episode, error) {
	return fetchOne[Episode](ctx, c, "episode", "episodes", id, "episode")
}

// Events returns events matching q.
func (c *Client) Events(ctx context.Context, q EventQuery) ([]Event, error) {
	return fetch(ctx, c, "events", q.request(), func(b []byte) ([]Event, error) {
		return decodeEnvelope[[]Event](b, "events")
	})
}

// Event returns one event by id.
func (c *Client) Event(ctx context.Context, id int) (Event, error) {
	return fetchOne[Event](ctx, c, "event", "events", strconv.Itoa(id), "event")
}

// Lists returns the lists for q.Context.
func (c *Client) Lists(ctx context.Context, q ListQuery) ([]List, error) {
	return fetch(ctx, c, "lists", q.request(), func(b []byte) ([]List, error) {
		return decodeEnvelope[[]List](b, "lists")
	})
}

// List returns one list by id.
func (c *Client) List(ctx context.Context, id int) (List, error) {
	return fetchOne[List](ctx, c, "list", "lists", strconv.Itoa(id), "list")
}

// Programs returns programs matching q.
func (c *Client) Programs(ctx context.Context, q ProgramQuery) ([]Program, error) {
	return fetch(ctx, c, "programs", q.request(), func(b []byte) ([]Program, error) {
		return decodeEnvelope[[]Program](b, "programs")
	})
}

// Program returns one program by slug.
func (c *Client) Program(ctx context.Context, slug string) (Program, error) {
	return fetchOne[Program](ctx, c, "program", "programs", slug, "program")
}

// Schedule returns the schedule window selected by q.
func (c *Client) Schedule(ctx context.Context, q ScheduleQuery) (ProgramSchedule, error) {
	return fetch(ctx, c, "schedule", q.request(), func(b []byte) (ProgramSchedule, error) {
		occurrences, err := decodeEnvelope[[]ScheduleOccurrence](b, "schedule_occurrences")
		if err != nil {
			return ProgramSchedule{}, err
		}
		return ProgramSchedule{Occurrences: occurrences}, nil
	})
}

// Member looks up a member by pledge token. The token travels in the path;
// no other credential is sent. A found member is granted the pledge-free
// stream.
func (c *Client) Member(ctx context.Context, pledgeToken string) (Member, error) {
	member, err := fetchOne[Member](ctx, c, "member", "members", pledgeToken, "member")
	if err != nil {
		return Member{}, err
	}
	member.AuthenticatedStreamCodes = []string{StreamCodePledgeFree}
	return member, nil
}

// Categories returns every article category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	return fetch(ctx, c, "categories", Request{Path: "categories"}, func(b []byte) ([]Category, error) {
		return decodeEnvelope[[]Category](b, "categories")
	})
}

// Category returns one category by slug.
func (c *Client) Category(ctx context.Context, slug string) (Category, error) {
	return fetchOne[Category](ctx, c, "category", "categories", slug, "category")
}

// Settings returns the free-form settings object for an app context. The
// payload has no fixed schema.
func (c *Client) Settings(ctx context.Context, appContext string) (map[string]any, error) {
	path, err := resourcePath("settings", appContext)
	if err != nil {
		return nil, newError(KindBuildComponents, "settings", "settings", err)
	}
	return fetch(ctx, c, "settings", Request{Path: path}, decodeSettings)
}

// decodeSettings accepts only {"settings": {...}}. Any other JSON shape is
// reported as Other rather than Decoding, since there is no schema to miss.
func decodeSettings(body []byte) (map[string]any, error) {
	root, err := decode[any](body)
	if err != nil {
		return nil, err
	}
	envelope, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings response is %T, not an object", root)
	}
	settings, ok := envelope["settings"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings field is %T, not an object", envelope["settings"])
	}
	return settings, nil
}

// fetchOne retrieves collection/{id} and unwraps the singular envelope.
func fetchOne[T any](ctx context.Context, c *Client, op, collection, id, field string) (T, error) {
	var zero T
	path, err := resourcePath(collection, id)
	if err != nil {
		return zero, newError(KindBuildComponents, op, collection, err)
	}
	return fetch(ctx, c, op, Request{Path: path}, func(b []byte) (T, error) {
		return decodeEnvelopeRequired[T](b, field)
	})
}
