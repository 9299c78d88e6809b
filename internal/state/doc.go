// Package state holds the latest polled content for the browser.
//
// The poller in internal/app fetches several feeds (articles, programs,
// schedule, events, lists, settings) concurrently and hands the combined
// outcome to Store.Update. The UI reads Store.Snapshot on every tick. Both
// sides run on different goroutines; Store serializes them with a RWMutex
// and Snapshot returns copies so the UI can never observe a half-applied
// refresh or mutate stored slices.
//
// A feed that fails keeps the data from its last successful fetch. Only a
// poll in which every feed failed counts toward ConsecutiveFailures, and two
// such polls in a row mark the snapshot offline.
package state
