// Package ui provides the terminal browser for the KPCC content API.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the single state container; it
// reads station data from state.Store snapshots on a tick and never calls
// the feed endpoints itself. The poller in internal/app owns those.
// Detail records (a full article, a program with its episodes and podcast
// feed, an event, a list) are fetched on demand through kpcc.Client when the
// user presses enter.
//
// # Package Structure
//
//   - app.go: Options, Model, message handling and Run
//   - layout.go: pane layout, list rendering, command bar and status line
//   - header.go: on-air title, feed health, pledge drive and member badges
//   - rows.go: turns snapshots into list rows and applies search and filters
//   - detail.go: detail pane rendering per record type
//   - load.go: on-demand detail loading
//   - keys.go, help.go: key bindings and the help overlay
//   - theme.go, strings.go: colors and text helpers
//
// # Views
//
//   - Headlines: latest articles, filterable by category with "c"
//   - Programs: all programs with their air status
//   - Schedule: the week's occurrences; "n" jumps to what is on air
//   - Events: upcoming station events
//   - Lists: curated lists for the configured context
//   - Logs: the application's own log file, newest first
//
// Search ("/") matches accent-insensitively across the visible view. The
// theme ("T") is saved to the preferences file along with the current view.
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Client:  client,
//		Store:   store,
//		Refresh: poller.Trigger,
//		Config:  &cfg,
//	})
package ui
