package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/five82/kpcc/internal/state"
	"github.com/five82/kpcc/pkg/kpcc"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 30 * time.Second

	fetchAttempts     = 3
	defaultRetryDelay = 250 * time.Millisecond
)

// Queries selects what each poll asks the API for.
type Queries struct {
	Articles        kpcc.ArticleQuery
	Events          kpcc.EventQuery
	Lists           kpcc.ListQuery
	Schedule        kpcc.ScheduleQuery
	SettingsContext string
}

// Poller refreshes a state.Store from the API on an interval.
type Poller struct {
	client     *kpcc.Client
	store      *state.Store
	logger     *slog.Logger
	queries    Queries
	interval   time.Duration
	retryDelay time.Duration
	trigger    chan struct{}
	now        func() time.Time
}

// NewPoller returns a poller; call Start to run it.
func NewPoller(client *kpcc.Client, store *state.Store, logger *slog.Logger, queries Queries, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Poller{
		client:     client,
		store:      store,
		logger:     logger.With("component", "poller"),
		queries:    queries,
		interval:   interval,
		retryDelay: defaultRetryDelay,
		trigger:    make(chan struct{}, 1),
		now:        time.Now,
	}
}

// Start launches the background loop and returns immediately. The first
// poll comes one interval later (or on Trigger); callers wanting data up
// front call Refresh first. Consecutive total failures stretch the wait
// between polls up to maxBackoff.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		for {
			wait := calculateBackoff(p.store.Snapshot().ConsecutiveFailures, p.interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-p.trigger:
				timer.Stop()
			case <-timer.C:
			}
			p.Refresh(ctx)
		}
	}()
}

// Trigger asks the loop to poll now. It never blocks.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

type feedOutcome struct {
	feed  state.Feed
	apply func(*state.Refresh)
	err   error
}

// Refresh fetches every feed concurrently, records the outcome in the store
// and returns it.
func (p *Poller) Refresh(ctx context.Context) state.Refresh {
	if err := ctx.Err(); err != nil {
		p.store.Fail(err)
		return state.Refresh{Errors: map[state.Feed]error{}}
	}

	q := p.queries
	q.Schedule = scheduleWindow(q.Schedule, p.now())
	results := pool.NewWithResults[feedOutcome]()
	results.Go(func() feedOutcome {
		v, err := fetch(ctx, p, func(ctx context.Context) ([]kpcc.Article, error) { return p.client.Articles(ctx, q.Articles) })
		return feedOutcome{state.FeedArticles, func(r *state.Refresh) { r.Articles = v }, err}
	})
	results.Go(func() feedOutcome {
		v, err := fetch(ctx, p, func(ctx context.Context) ([]kpcc.Program, error) { return p.client.Programs(ctx, kpcc.ProgramQuery{}) })
		return feedOutcome{state.FeedPrograms, func(r *state.Refresh) { r.Programs = v }, err}
	})
	results.Go(func() feedOutcome {
		v, err := fetch(ctx, p, func(ctx context.Context) (kpcc.ProgramSchedule, error) { return p.client.Schedule(ctx, q.Schedule) })
		return feedOutcome{state.FeedSchedule, func(r *state.Refresh) { r.Schedule = v }, err}
	})
	results.Go(func() feedOutcome {
		v, err := fetch(ctx, p, func(ctx context.Context) ([]kpcc.Event, error) { return p.client.Events(ctx, q.Events) })
		return feedOutcome{state.FeedEvents, func(r *state.Refresh) { r.Events = v }, err}
	})
	results.Go(func() feedOutcome {
		v, err := fetch(ctx, p, func(ctx context.Context) ([]kpcc.List, error) { return p.client.Lists(ctx, q.Lists) })
		return feedOutcome{state.FeedLists, func(r *state.Refresh) { r.Lists = v }, err}
	})
	if q.SettingsContext != "" {
		results.Go(func() feedOutcome {
			v, err := fetch(ctx, p, func(ctx context.Context) (map[string]any, error) { return p.client.Settings(ctx, q.SettingsContext) })
			return feedOutcome{state.FeedSettings, func(r *state.Refresh) { r.Settings = v }, err}
		})
	}

	refresh := state.Refresh{
		Fetched: make(map[state.Feed]bool),
		Errors:  make(map[state.Feed]error),
	}
	for _, out := range results.Wait() {
		if out.err != nil {
			refresh.Errors[out.feed] = out.err
			kind, _ := kpcc.KindOf(out.err)
			p.logger.Warn("feed refresh failed",
				"feed", string(out.feed),
				"kind", kind.String(),
				"error", out.err,
			)
			continue
		}
		out.apply(&refresh)
		refresh.Fetched[out.feed] = true
	}
	p.logger.Debug("poll complete", "fetched", len(refresh.Fetched), "failed", len(refresh.Errors))

	p.store.Update(refresh)
	return refresh
}

// scheduleWindow anchors an open schedule query at the start of the local
// day containing now, so the week it covers is the one DivideIntoDays
// buckets. It is recomputed on every poll.
func scheduleWindow(q kpcc.ScheduleQuery, now time.Time) kpcc.ScheduleQuery {
	if q.Start.IsZero() {
		local := now.Local()
		q.Start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	}
	if q.Length <= 0 {
		q.Length = kpcc.MaxScheduleLength
	}
	return q
}

// fetch runs fn, retrying transient unavailability.
func fetch[T any](ctx context.Context, p *Poller, fn func(context.Context) (T, error)) (T, error) {
	return retry.DoWithData(
		func() (T, error) { return fn(ctx) },
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(p.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
	)
}

// retryable reports whether another attempt could succeed: network failures,
// empty bodies and server errors qualify, client errors such as 404 do not.
func retryable(err error) bool {
	if !kpcc.IsDataUnavailable(err) {
		return false
	}
	var apiErr *kpcc.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff. It never returns less than interval.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	wait := interval
	for i := 0; i < failures && wait < maxBackoff; i++ {
		wait *= 2
	}
	if wait > maxBackoff {
		wait = max(maxBackoff, interval)
	}
	return wait
}
