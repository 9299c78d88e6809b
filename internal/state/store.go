package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/kpcc/pkg/kpcc"
)

// Feed names one polled collection.
type Feed string

const (
	FeedArticles Feed = "articles"
	FeedPrograms Feed = "programs"
	FeedSchedule Feed = "schedule"
	FeedEvents   Feed = "events"
	FeedLists    Feed = "lists"
	FeedSettings Feed = "settings"
)

// AllFeeds lists every feed in display order.
var AllFeeds = []Feed{FeedArticles, FeedPrograms, FeedSchedule, FeedEvents, FeedLists, FeedSettings}

// Refresh is the outcome of one poll. A feed is present in Fetched when its
// call succeeded; failed feeds appear in Errors and keep their old data.
type Refresh struct {
	Articles []kpcc.Article
	Programs []kpcc.Program
	Schedule kpcc.ProgramSchedule
	Events   []kpcc.Event
	Lists    []kpcc.List
	Settings map[string]any

	Fetched map[Feed]bool
	Errors  map[Feed]error
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Articles []kpcc.Article
	Programs []kpcc.Program
	Schedule kpcc.ProgramSchedule
	Events   []kpcc.Event
	Lists    []kpcc.List
	Settings map[string]any

	Loaded              map[Feed]time.Time // last successful fetch per feed
	FeedErrors          map[Feed]error     // errors from the most recent poll
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // polls in a row where every feed failed
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// HasFeed reports whether feed has been fetched at least once.
func (s Snapshot) HasFeed(feed Feed) bool {
	_, ok := s.Loaded[feed]
	return ok
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update merges a poll result. Feeds that failed keep their previous data.
// A poll in which nothing succeeded counts as a consecutive failure.
func (s *Store) Update(r Refresh) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	snap := &s.snapshot
	if snap.Loaded == nil {
		snap.Loaded = make(map[Feed]time.Time)
	}
	for feed, ok := range r.Fetched {
		if !ok {
			continue
		}
		snap.Loaded[feed] = now
		switch feed {
		case FeedArticles:
			snap.Articles = slices.Clone(r.Articles)
		case FeedPrograms:
			snap.Programs = slices.Clone(r.Programs)
		case FeedSchedule:
			snap.Schedule = cloneSchedule(r.Schedule)
		case FeedEvents:
			snap.Events = slices.Clone(r.Events)
		case FeedLists:
			snap.Lists = slices.Clone(r.Lists)
		case FeedSettings:
			snap.Settings = maps.Clone(r.Settings)
		}
	}

	snap.FeedErrors = maps.Clone(r.Errors)
	snap.LastError = joinFeedErrors(r.Errors)
	snap.LastUpdated = now
	if countFetched(r.Fetched) == 0 && snap.LastError != nil {
		snap.ConsecutiveFailures++
	} else {
		snap.ConsecutiveFailures = 0
	}
}

// Fail records a poll that could not run at all.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Snapshot returns a copy of the current snapshot. The feed slices, list
// item slices and maps are copied so callers may reorder or edit them.
// Values nested deeper (an article's assets, a program pointer on an
// occurrence) are shared with the store and must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Articles = slices.Clone(s.snapshot.Articles)
	snap.Programs = slices.Clone(s.snapshot.Programs)
	snap.Schedule = cloneSchedule(s.snapshot.Schedule)
	snap.Events = slices.Clone(s.snapshot.Events)
	snap.Lists = cloneLists(s.snapshot.Lists)
	snap.Settings = maps.Clone(s.snapshot.Settings)
	snap.Loaded = maps.Clone(s.snapshot.Loaded)
	snap.FeedErrors = maps.Clone(s.snapshot.FeedErrors)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneSchedule(s kpcc.ProgramSchedule) kpcc.ProgramSchedule {
	return kpcc.ProgramSchedule{Occurrences: slices.Clone(s.Occurrences)}
}

func cloneLists(lists []kpcc.List) []kpcc.List {
	out := slices.Clone(lists)
	for i := range out {
		out[i].Items = slices.Clone(out[i].Items)
	}
	return out
}

func countFetched(fetched map[Feed]bool) int {
	n := 0
	for _, ok := range fetched {
		if ok {
			n++
		}
	}
	return n
}

func joinFeedErrors(errs map[Feed]error) error {
	var joined []error
	for _, feed := range AllFeeds {
		if err := errs[feed]; err != nil {
			joined = append(joined, fmt.Errorf("%s: %w", feed, err))
		}
	}
	return errors.Join(joined...)
}
