package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kpcc/internal/logtail"
	"github.com/five82/kpcc/internal/podcast"
	"github.com/five82/kpcc/pkg/kpcc"
)

// openSelected starts loading the full record behind the selected row.
// Rows that are already complete (log entries) or already loading are left
// alone.
func (m *Model) openSelected() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok || m.loading[r.key] {
		return nil
	}
	cmd := m.loadCmd(r)
	if cmd == nil {
		return nil
	}
	m.loading[r.key] = true
	m.status = "Loading..."
	m.updateDetailViewport()
	return cmd
}

func (m Model) loadCmd(r row) tea.Cmd {
	if m.client == nil {
		return nil
	}
	ctx, client, reader := m.ctx, m.client, m.podcasts
	rowKey := r.key

	switch v := r.item.(type) {
	case kpcc.Article:
		return func() tea.Msg {
			a, err := client.Article(ctx, v.ID)
			return detailMsg{key: rowKey, value: a, err: err}
		}
	case kpcc.Program:
		return loadProgramCmd(ctx, client, reader, rowKey, v.Slug)
	case kpcc.ScheduleOccurrence:
		if v.Program == nil || v.Program.Slug == "" {
			return nil
		}
		return loadProgramCmd(ctx, client, reader, rowKey, v.Program.Slug)
	case kpcc.Event:
		return func() tea.Msg {
			e, err := client.Event(ctx, v.ID)
			return detailMsg{key: rowKey, value: e, err: err}
		}
	case kpcc.List:
		return func() tea.Msg {
			l, err := client.List(ctx, v.ID)
			return detailMsg{key: rowKey, value: l, err: err}
		}
	case logtail.Entry:
		return nil
	default:
		return nil
	}
}

// loadProgramCmd fetches a program together with its latest episodes and
// podcast feed. The three requests run concurrently; only a failure of the
// program itself fails the load.
func loadProgramCmd(ctx context.Context, client *kpcc.Client, reader *podcast.Reader, rowKey, slug string) tea.Cmd {
	return func() tea.Msg {
		program := kpcc.Async(ctx, func(ctx context.Context) (kpcc.Program, error) {
			return client.Program(ctx, slug)
		})
		episodes := kpcc.Async(ctx, func(ctx context.Context) ([]kpcc.Episode, error) {
			return client.Episodes(ctx, kpcc.EpisodeQuery{Program: slug, Limit: podcastPreview})
		})

		p, err := program.Await(ctx)
		if err != nil {
			return detailMsg{key: rowKey, err: err}
		}

		d := programDetail{Program: p}
		var feed *kpcc.Future[podcast.Feed]
		if reader != nil && p.FeedURL() != "" {
			feedURL := p.FeedURL()
			feed = kpcc.Async(ctx, func(ctx context.Context) (podcast.Feed, error) {
				return reader.Fetch(ctx, feedURL)
			})
		}

		d.Episodes, d.EpisodesErr = episodes.Await(ctx)
		if feed != nil {
			d.Feed, d.FeedErr = feed.Await(ctx)
		}
		return detailMsg{key: rowKey, value: d}
	}
}
