// Package app wires the browser together: config, the rotating log file, the
// kpcc client, the poller that keeps state.Store fresh, and the UI.
//
// Run is the only entry point cmd/kpcc needs. The poller fetches every feed
// concurrently, retries transient unavailability a few times per feed, and
// backs its interval off when whole polls fail. Errors never stop polling;
// they are logged and surfaced in the snapshot for the UI to show.
package app
